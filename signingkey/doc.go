// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package signingkey derives an extended Ed25519 signing key from a PRK
// using the SLIP-0010 master-key construction: HMAC-SHA512 with the
// constant key "ed25519 seed" splits into a 32-byte Ed25519 seed and a
// 32-byte chain code, and the chain code allows deriving hardened child
// keys without touching the root. Signing itself is out of scope; this
// package only produces the key pair.
package signingkey
