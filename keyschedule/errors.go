// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package keyschedule

import "errors"

var (
	// ErrInvalidChunkDerive is returned when a RatchetingKey is asked to
	// ratchet to a chunk that isn't strictly ahead of it in the same
	// (key_index, file_id) chain, or when ratcheting would overflow
	// chunk_id.
	ErrInvalidChunkDerive = errors.New("keyschedule: cannot ratchet to the requested chunk")

	// ErrWrongEncryptionType is returned when Decrypt is asked to open a
	// chunk whose encryption_type this key cannot handle.
	ErrWrongEncryptionType = errors.New("keyschedule: chunk encryption type does not match this key")

	// ErrAEAD is returned on authenticated-decryption failure: a
	// truncated payload or a tag mismatch. It never carries plaintext or
	// key material.
	ErrAEAD = errors.New("keyschedule: authenticated decryption failed")
)
