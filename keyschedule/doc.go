// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package keyschedule implements the three-level AEAD key ladder: a
// RootKey is indexed into an IndexedKey, which is bound to a file to
// produce the initial RatchetingKey at chunk 0. Every RatchetingKey
// seals or opens exactly one EncryptedChunk and derives the next key in
// its chain.
//
// All derivations are HKDF-Extract-then-Expand with SHA-512, producing
// 64-byte output material split into a 32-byte encryption half (the
// AES-256-GCM key) and a 32-byte chain half (the next level's HKDF
// input key material). Only chain halves ever feed a further
// derivation; a RootKey or IndexedKey's encryption half is unused.
package keyschedule
