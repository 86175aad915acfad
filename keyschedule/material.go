// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package keyschedule

import (
	"crypto/sha512"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/MGibson1/pigeonhole/secret"
)

const (
	// aesGCMKeyLabel domain-separates root/indexed/ratcheting-seed
	// derivations from ratchet-step derivations.
	aesGCMKeyLabel = "aesgcm seed"
	// aesGCMRatchetLabel domain-separates one ratchet step from the
	// next.
	aesGCMRatchetLabel = "aesgcm ratchet"

	materialLen       = 64
	encryptionHalfLen = 32
)

// keyMaterial is 64 bytes of HKDF-SHA512 output held pinned, split into
// an encryption half (bytes 0:32, the AES-256-GCM key) and a chain half
// (bytes 32:64, the next level's HKDF input key material).
type keyMaterial struct {
	pinned *secret.Pinned
}

// deriveKeyMaterial computes HKDF-Extract(salt=label, ikm)
// then HKDF-Expand(info), SHA-512 throughout, producing 64 bytes.
func deriveKeyMaterial(ikm []byte, label string, info []byte) (*keyMaterial, error) {
	out := make([]byte, materialLen)
	r := hkdf.New(sha512.New, ikm, []byte(label), info)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("keyschedule: unable to derive key material: %w", err)
	}
	return &keyMaterial{pinned: secret.NewFromBytes(out)}, nil
}

func (k *keyMaterial) encryptionHalf() []byte {
	return k.pinned.Bytes()[:encryptionHalfLen]
}

func (k *keyMaterial) chainHalf() []byte {
	return k.pinned.Bytes()[encryptionHalfLen:]
}

func (k *keyMaterial) raw() []byte {
	return k.pinned.Bytes()
}

func (k *keyMaterial) destroy() {
	k.pinned.Destroy()
}
