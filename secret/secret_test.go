// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package secret_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MGibson1/pigeonhole/secret"
)

//nolint:paralleltest // mutates package-level test hook
func TestPinned_DestroyZeroesBackingMemory(t *testing.T) {
	secret.SetTestDisableFree(true)
	defer secret.SetTestDisableFree(false)

	raw := []byte("a very secret ratcheting key material")
	cp := make([]byte, len(raw))
	copy(cp, raw)

	p := secret.NewFromBytes(cp)
	view := p.Bytes()
	require.Equal(t, raw, view)

	p.Destroy()

	require.Equal(t, make([]byte, len(raw)), view, "backing memory must be all zero after Destroy")
}

//nolint:paralleltest
func TestPinned_DestroyIsIdempotent(t *testing.T) {
	p := secret.NewFromBytes([]byte("idempotent"))
	require.NotPanics(t, func() {
		p.Destroy()
		p.Destroy()
	})
}

func TestPinned_NilReceiverIsSafe(t *testing.T) {
	var p *secret.Pinned
	require.Nil(t, p.Bytes())
	require.Equal(t, 0, p.Len())
	require.NotPanics(t, p.Destroy)
}
