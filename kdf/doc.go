// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package kdf turns a user passphrase into the pseudorandom key (PRK) that
// seeds the keyschedule ladder. Derivation is deterministic: the same
// passphrase always yields the same PRK, so the salt is fixed and
// domain-separated rather than random per call.
package kdf
