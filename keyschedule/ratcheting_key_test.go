// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package keyschedule_test

import (
	"testing"

	"github.com/google/gofuzz"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/MGibson1/pigeonhole/chunk"
	"github.com/MGibson1/pigeonhole/keyschedule"
	"github.com/MGibson1/pigeonhole/secret"
)

func newRatchetingKey(t *testing.T, keyIndex uint32, fileID uuid.UUID) *keyschedule.RatchetingKey {
	t.Helper()

	prk := secret.NewFromBytes([]byte("0123456789abcdef0123456789abcdef"))
	root, err := keyschedule.GenerateRootKey(prk)
	require.NoError(t, err)

	indexed, err := root.Index(keyIndex)
	require.NoError(t, err)

	key, err := indexed.KeyFor(fileID)
	require.NoError(t, err)
	return key
}

func TestRatchetingKey_RoundTrip(t *testing.T) {
	t.Parallel()

	key := newRatchetingKey(t, 0, uuid.New())

	f := fuzz.New().NilChance(0).NumElements(0, 1024)
	for i := 0; i < 50; i++ {
		var plaintext []byte
		f.Fuzz(&plaintext)

		c, _, err := key.Encrypt(plaintext)
		require.NoError(t, err)

		out, err := key.Decrypt(c)
		require.NoError(t, err)
		require.Equal(t, plaintext, out)
	}
}

func TestRatchetingKey_NonceAndCiphertextAreUnique(t *testing.T) {
	t.Parallel()

	key := newRatchetingKey(t, 0, uuid.New())
	data := []byte("same plaintext every time")

	c1, _, err := key.Encrypt(data)
	require.NoError(t, err)
	c2, _, err := key.Encrypt(data)
	require.NoError(t, err)

	require.NotEqual(t, c1.EncryptedData[:12], c2.EncryptedData[:12], "nonces must differ")
	require.NotEqual(t, c1.EncryptedData, c2.EncryptedData, "ciphertexts must differ")
}

func TestRatchetingKey_SequentialEncryptDecrypt(t *testing.T) {
	t.Parallel()

	fileID := uuid.New()
	key := newRatchetingKey(t, 0, fileID)

	next := key
	for i := 0; i < 5; i++ {
		plaintext := []byte{byte(i), byte(i + 1), byte(i + 2)}
		c, advanced, err := next.Encrypt(plaintext)
		require.NoError(t, err)
		require.EqualValues(t, i, c.ChunkID)

		out, err := key.Decrypt(c)
		require.NoError(t, err, "a single held key must decrypt any chunk_id >= its position")
		require.Equal(t, plaintext, out)

		next = advanced
	}
}

func TestRatchetingKey_RatchetMonotonicity(t *testing.T) {
	t.Parallel()

	fileID := uuid.New()
	key := newRatchetingKey(t, 3, fileID)

	ahead := key
	for i := 0; i < 4; i++ {
		var err error
		ahead, err = ahead.NextKey()
		require.NoError(t, err)
	}

	c := chunk.New(chunk.AESGCM, 3, fileID, ahead.ChunkID(), nil)
	require.True(t, key.CanRatchetTo(c))

	// Same position cannot ratchet (strictly ahead required).
	same := chunk.New(chunk.AESGCM, 3, fileID, key.ChunkID(), nil)
	require.False(t, key.CanRatchetTo(same))

	// Wrong key_index or file_id cannot ratchet.
	wrongIndex := chunk.New(chunk.AESGCM, 99, fileID, ahead.ChunkID(), nil)
	require.False(t, key.CanRatchetTo(wrongIndex))

	wrongFile := chunk.New(chunk.AESGCM, 3, uuid.New(), ahead.ChunkID(), nil)
	require.False(t, key.CanRatchetTo(wrongFile))
}

func TestRatchetingKey_CrossIdentifierIsolation(t *testing.T) {
	t.Parallel()

	fileA, fileB := uuid.New(), uuid.New()
	keyA := newRatchetingKey(t, 0, fileA)
	keyB := newRatchetingKey(t, 0, fileB)

	c, _, err := keyA.Encrypt([]byte("for file A only"))
	require.NoError(t, err)

	_, err = keyB.Decrypt(c)
	require.Error(t, err, "a key bound to a different file_id must not decrypt")
}

func TestRatchetingKey_TagAuthenticity(t *testing.T) {
	t.Parallel()

	key := newRatchetingKey(t, 0, uuid.New())
	c, _, err := key.Encrypt([]byte("tamper with me"))
	require.NoError(t, err)

	tampered := *c
	tampered.EncryptedData = append([]byte(nil), c.EncryptedData...)
	tampered.EncryptedData[len(tampered.EncryptedData)-1] ^= 0x01

	_, err = key.Decrypt(&tampered)
	require.Error(t, err)
}

func TestRatchetingKey_Equal(t *testing.T) {
	t.Parallel()

	fileID := uuid.New()
	k1 := newRatchetingKey(t, 0, fileID)
	k2 := newRatchetingKey(t, 0, fileID)

	require.True(t, k1.Equal(k2))

	n1, err := k1.NextKey()
	require.NoError(t, err)
	require.False(t, k1.Equal(n1))
}
