// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package chunk defines the self-describing, on-wire EncryptedChunk
// record and its binary codec.
//
// The codec is a pure data-layer concern: it knows how to serialize and
// parse the fixed header plus variable-length AEAD payload, and it
// validates the encryption-type tag against the closed set this module
// understands. It never touches key material or performs any
// cryptographic operation; that belongs to package keyschedule.
package chunk
