// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package keyschedule

import (
	"encoding/hex"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/MGibson1/pigeonhole/secret"
)

// These vectors are reproduced from the reference implementation's own
// test suite and pin the exact byte output of every rung of the
// ladder.
func TestLadder_Vectors(t *testing.T) {
	t.Parallel()

	rootHex := "dedb48a98392ab20b4a5a7c12651d45cdacaff94462fab248ffb257d9ba2d29" +
		"c6f5ecd38fd5ddee6134fece4a3422ca3682880d0ca778fb47e26af9facecb910"
	indexedHex := "d46e11bd8e4e479a906f3d5f22276d9306635a7a52a4b3afb5cff807af6137b" +
		"2bb6f22802bf0b8a47695bdbb4bd1ff8688bde40c54a30dc05bd3447722674a32"
	chunk0Hex := "34b0cab1f40626f8588750b73b3efedb532190ecb138b974bb3049b1e3a8697" +
		"8b205a39d46ac6d141835acd0ac1fd56457390b929ac8ed6f91af01162310c3da"
	chunk1Hex := "c7c6935b3fff4c63cc806b7a7b85b6761fe4274863cf134eaf7e15c98b62495" +
		"2e83df0625dfc815013dbe3cdd60cde7be5fe75350da4f24f49a57c294255ce2c"

	prk := secret.NewFromBytes(make([]byte, 32))
	root, err := GenerateRootKey(prk)
	require.NoError(t, err)
	require.Equal(t, mustDecode(t, rootHex), root.material.raw())

	indexed, err := root.Index(0)
	require.NoError(t, err)
	require.Equal(t, mustDecode(t, indexedHex), indexed.material.raw())

	fileID := uuid.MustParse("ca14ccfe-46e1-4c7a-8e3d-8441344afc27")
	ratchet0, err := indexed.KeyFor(fileID)
	require.NoError(t, err)
	require.Equal(t, mustDecode(t, chunk0Hex), ratchet0.material.raw())
	require.Equal(t, uint64(0), ratchet0.ChunkID())

	ratchet1, err := ratchet0.NextKey()
	require.NoError(t, err)
	require.Equal(t, mustDecode(t, chunk1Hex), ratchet1.material.raw())
	require.Equal(t, uint64(1), ratchet1.ChunkID())
}

func mustDecode(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}
