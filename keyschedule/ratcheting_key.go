// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package keyschedule

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/MGibson1/pigeonhole/chunk"
)

// RatchetingKey is the per-chunk leaf of the ladder: its encryption
// half seals exactly one chunk, and its chain half is the one-way
// input to the next chunk's key. The triple (key_index, file_id,
// chunk_id) uniquely identifies it.
type RatchetingKey struct {
	material *keyMaterial
	keyIndex uint32
	fileID   uuid.UUID
	chunkID  uint64
}

// KeyIndex returns the generation this key belongs to.
func (k *RatchetingKey) KeyIndex() uint32 { return k.keyIndex }

// FileID returns the file this ratchet chain is bound to.
func (k *RatchetingKey) FileID() uuid.UUID { return k.fileID }

// ChunkID returns the 0-based chunk position of this key.
func (k *RatchetingKey) ChunkID() uint64 { return k.chunkID }

// NextKey derives the key for chunk_id+1. The ratchet is one-way: this
// key's chain half is the only input, so a leaked key can never recover
// an earlier position in the chain.
func (k *RatchetingKey) NextKey() (*RatchetingKey, error) {
	if k.chunkID == math.MaxUint64 {
		return nil, ErrInvalidChunkDerive
	}

	m, err := deriveKeyMaterial(k.material.chainHalf(), aesGCMRatchetLabel, nil)
	if err != nil {
		return nil, fmt.Errorf("keyschedule: unable to derive next ratchet key: %w", err)
	}
	return &RatchetingKey{
		material: m,
		keyIndex: k.keyIndex,
		fileID:   k.fileID,
		chunkID:  k.chunkID + 1,
	}, nil
}

// IsKeyFor reports whether this key's identifiers exactly match the
// given chunk.
func (k *RatchetingKey) IsKeyFor(c *chunk.EncryptedChunk) bool {
	return k.keyIndex == c.KeyIndex && k.fileID == c.FileID && k.chunkID == c.ChunkID
}

// CanRatchetTo reports whether RatchetTo would succeed: same key_index
// and file_id, and this key strictly behind the target chunk.
func (k *RatchetingKey) CanRatchetTo(c *chunk.EncryptedChunk) bool {
	return k.keyIndex == c.KeyIndex && k.fileID == c.FileID && k.chunkID < c.ChunkID
}

// RatchetTo advances this key forward, one HKDF expansion per chunk, to
// the position identified by the given chunk. It never moves backward
// and never mutates the receiver.
func (k *RatchetingKey) RatchetTo(c *chunk.EncryptedChunk) (*RatchetingKey, error) {
	if !k.CanRatchetTo(c) {
		return nil, ErrInvalidChunkDerive
	}

	next, err := k.NextKey()
	if err != nil {
		return nil, err
	}
	for !next.IsKeyFor(c) {
		stepped, err := next.NextKey()
		if err != nil {
			next.Destroy()
			return nil, err
		}
		next.Destroy()
		next = stepped
	}
	return next, nil
}

// Encrypt seals data under this key's encryption half with a random
// 12-byte nonce and returns the wire-ready EncryptedChunk along with the
// derived next key. The receiver is not modified; callers must advance
// to the returned key themselves before encrypting the next chunk.
func (k *RatchetingKey) Encrypt(data []byte) (*chunk.EncryptedChunk, *RatchetingKey, error) {
	aead, err := k.gcm()
	if err != nil {
		return nil, nil, err
	}

	nonce := make([]byte, chunk.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("keyschedule: unable to generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, data, nil)
	encryptedData := make([]byte, 0, len(nonce)+len(sealed))
	encryptedData = append(encryptedData, nonce...)
	encryptedData = append(encryptedData, sealed...)

	next, err := k.NextKey()
	if err != nil {
		return nil, nil, err
	}

	return chunk.New(chunk.AESGCM, k.keyIndex, k.fileID, k.chunkID, encryptedData), next, nil
}

// Decrypt opens the given chunk. If the chunk isn't for this exact
// position, the receiver ratchets forward internally (the receiver
// itself is not modified) before opening. A tag mismatch is reported as
// ErrAEAD without revealing any plaintext fragment.
func (k *RatchetingKey) Decrypt(c *chunk.EncryptedChunk) ([]byte, error) {
	if c.EncryptionType != chunk.AESGCM {
		return nil, ErrWrongEncryptionType
	}

	key := k
	if !k.IsKeyFor(c) {
		ratcheted, err := k.RatchetTo(c)
		if err != nil {
			return nil, err
		}
		defer ratcheted.Destroy()
		key = ratcheted
	}

	if len(c.EncryptedData) < chunk.NonceSize {
		return nil, ErrAEAD
	}
	nonce, ciphertext := c.EncryptedData[:chunk.NonceSize], c.EncryptedData[chunk.NonceSize:]

	aead, err := key.gcm()
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAEAD
	}
	return plaintext, nil
}

// Equal reports whether two RatchetingKeys hold bitwise-equal material
// and identical identifiers. The material comparison is constant-time.
func (k *RatchetingKey) Equal(other *RatchetingKey) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.keyIndex == other.keyIndex &&
		k.fileID == other.fileID &&
		k.chunkID == other.chunkID &&
		subtle.ConstantTimeCompare(k.material.raw(), other.material.raw()) == 1
}

// Destroy wipes the key's backing memory. Safe to call more than once.
func (k *RatchetingKey) Destroy() {
	k.material.destroy()
}

func (k *RatchetingKey) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(k.material.encryptionHalf())
	if err != nil {
		return nil, fmt.Errorf("keyschedule: unable to initialize AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("keyschedule: unable to initialize GCM: %w", err)
	}
	return aead, nil
}
