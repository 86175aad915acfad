// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package keyschedule

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/MGibson1/pigeonhole/secret"
)

// RootKey is the top of the ladder: one per identity, its lifetime is
// the user session. Only its chain half is ever used, to derive
// IndexedKeys; its encryption half is never used to encrypt data.
type RootKey struct {
	material *keyMaterial
}

// GenerateRootKey derives the RootKey from the passphrase KDF's output.
func GenerateRootKey(prk *secret.Pinned) (*RootKey, error) {
	if prk == nil {
		return nil, errors.New("keyschedule: prk must not be nil")
	}

	m, err := deriveKeyMaterial(prk.Bytes(), aesGCMKeyLabel, nil)
	if err != nil {
		return nil, fmt.Errorf("keyschedule: unable to generate root key: %w", err)
	}
	return &RootKey{material: m}, nil
}

// Index derives the IndexedKey for the given generation counter. The
// root key is not consumed and can produce as many IndexedKeys as
// needed.
func (r *RootKey) Index(keyIndex uint32) (*IndexedKey, error) {
	var info [4]byte
	binary.LittleEndian.PutUint32(info[:], keyIndex)

	m, err := deriveKeyMaterial(r.material.chainHalf(), aesGCMKeyLabel, info[:])
	if err != nil {
		return nil, fmt.Errorf("keyschedule: unable to derive indexed key: %w", err)
	}
	return &IndexedKey{material: m, keyIndex: keyIndex}, nil
}

// Destroy wipes the root key's backing memory. Safe to call more than
// once.
func (r *RootKey) Destroy() {
	r.material.destroy()
}
