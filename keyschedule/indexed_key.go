// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package keyschedule

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// IndexedKey is a generation under a RootKey: rotating all of a user's
// files only requires incrementing key_index and re-deriving, never
// touching the root.
type IndexedKey struct {
	material *keyMaterial
	keyIndex uint32
}

// KeyIndex returns the generation counter this key was derived under.
func (i *IndexedKey) KeyIndex() uint32 {
	return i.keyIndex
}

// KeyFor derives the initial RatchetingKey (chunk_id = 0) for the given
// file. Binding file_id into the derivation info ensures cross-file
// keys differ even though they share an IndexedKey ancestor.
func (i *IndexedKey) KeyFor(fileID uuid.UUID) (*RatchetingKey, error) {
	info := ratchetSeedInfo(i.keyIndex, fileID)

	m, err := deriveKeyMaterial(i.material.chainHalf(), aesGCMKeyLabel, info)
	if err != nil {
		return nil, fmt.Errorf("keyschedule: unable to derive ratcheting key: %w", err)
	}
	return &RatchetingKey{material: m, keyIndex: i.keyIndex, fileID: fileID, chunkID: 0}, nil
}

// Destroy wipes the indexed key's backing memory. Safe to call more
// than once.
func (i *IndexedKey) Destroy() {
	i.material.destroy()
}

// ratchetSeedInfo builds the 20-byte HKDF info used to bind an initial
// RatchetingKey to its (key_index, file_id) pair: key_index(4 LE) ||
// file_id(16).
func ratchetSeedInfo(keyIndex uint32, fileID uuid.UUID) []byte {
	info := make([]byte, 4+16)
	binary.LittleEndian.PutUint32(info[:4], keyIndex)
	copy(info[4:], fileID[:])
	return info
}
