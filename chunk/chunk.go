// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package chunk

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// EncryptionType tags the AEAD algorithm used to seal a chunk's payload.
type EncryptionType uint8

const (
	// AESGCM marks a chunk sealed with AES-256-GCM.
	AESGCM EncryptionType = 0
	// XChaCha20Poly1305 is reserved on the wire but not implemented by
	// this module; encrypting or decrypting with it always fails.
	XChaCha20Poly1305 EncryptionType = 1
)

// String never fabricates a name for a tag outside the closed set; it
// exists for logging, not for validation.
func (t EncryptionType) String() string {
	switch t {
	case AESGCM:
		return "aes-256-gcm"
	case XChaCha20Poly1305:
		return "xchacha20-poly1305"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

const (
	// HeaderSize is the fixed-size prefix of every on-wire chunk:
	// encryption_type(1) || key_index(4) || file_id(16) || chunk_id(8).
	HeaderSize = 1 + 4 + 16 + 8
	// NonceSize is the length of the random AEAD nonce prefixing
	// encrypted_data.
	NonceSize = 12
	// TagSize is the AES-256-GCM authentication tag length.
	TagSize = 16
	// Overhead is the total non-plaintext bytes contributed by the wire
	// format: the header, the nonce and the GCM tag.
	Overhead = HeaderSize + NonceSize + TagSize
)

// ErrShortInput is returned by Parse when the input is too small to
// contain a valid header.
var ErrShortInput = errors.New("chunk: input shorter than the fixed header")

// InvalidEncryptionTypeError is returned when a tag byte outside the
// closed {AESGCM, XChaCha20Poly1305} set is encountered. Implementers
// must reject it rather than defaulting to AESGCM.
type InvalidEncryptionTypeError struct {
	Value uint8
}

func (e *InvalidEncryptionTypeError) Error() string {
	return fmt.Sprintf("chunk: invalid encryption type %d", e.Value)
}

// EncryptedChunk is the wire record for one sealed plaintext chunk.
type EncryptedChunk struct {
	EncryptionType EncryptionType
	KeyIndex       uint32
	FileID         uuid.UUID
	ChunkID        uint64
	EncryptedData  []byte // nonce || ciphertext || tag
}

// New builds an EncryptedChunk from its fields. It does not validate the
// length of encryptedData; decryption fails downstream if it is too
// short to hold a nonce and tag.
func New(encType EncryptionType, keyIndex uint32, fileID uuid.UUID, chunkID uint64, encryptedData []byte) *EncryptedChunk {
	return &EncryptedChunk{
		EncryptionType: encType,
		KeyIndex:       keyIndex,
		FileID:         fileID,
		ChunkID:        chunkID,
		EncryptedData:  encryptedData,
	}
}

// MarshalBinary serializes the chunk in the stable wire order: tag(1)
// || key_index(4 LE) || file_id(16) || chunk_id(8 LE) || encrypted_data.
// This is the only format persisted or transmitted; it must never
// change without a new EncryptionType value.
func (c *EncryptedChunk) MarshalBinary() ([]byte, error) {
	out := make([]byte, HeaderSize+len(c.EncryptedData))
	out[0] = uint8(c.EncryptionType)
	binary.LittleEndian.PutUint32(out[1:5], c.KeyIndex)
	copy(out[5:21], c.FileID[:])
	binary.LittleEndian.PutUint64(out[21:29], c.ChunkID)
	copy(out[29:], c.EncryptedData)
	return out, nil
}

// Parse decodes an EncryptedChunk from its wire representation.
func Parse(b []byte) (*EncryptedChunk, error) {
	if len(b) < HeaderSize {
		return nil, ErrShortInput
	}

	switch b[0] {
	case uint8(AESGCM), uint8(XChaCha20Poly1305):
	default:
		return nil, &InvalidEncryptionTypeError{Value: b[0]}
	}
	encType := EncryptionType(b[0])

	keyIndex := binary.LittleEndian.Uint32(b[1:5])

	fileID, err := uuid.FromBytes(b[5:21])
	if err != nil {
		return nil, fmt.Errorf("chunk: unable to parse file id: %w", err)
	}

	chunkID := binary.LittleEndian.Uint64(b[21:29])

	encryptedData := make([]byte, len(b)-HeaderSize)
	copy(encryptedData, b[HeaderSize:])

	return &EncryptedChunk{
		EncryptionType: encType,
		KeyIndex:       keyIndex,
		FileID:         fileID,
		ChunkID:        chunkID,
		EncryptedData:  encryptedData,
	}, nil
}
