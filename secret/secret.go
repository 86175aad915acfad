// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"fmt"

	"github.com/awnumar/memguard"
)

// testDisableFree is flipped on only from test code (see
// SetTestDisableFree) to let a test inspect a secret's backing memory
// immediately after zeroization instead of having it returned to the
// platform allocator.
var testDisableFree bool

// SetTestDisableFree toggles whether Destroy actually releases a
// secret's backing memory after wiping it. With free disabled, Destroy
// still zeroes the buffer in place but leaves it mapped so a test can
// read the now-zeroed bytes through a slice obtained before Destroy was
// called. Production code must never call this.
func SetTestDisableFree(disabled bool) {
	testDisableFree = disabled
}

// Pinned holds secret bytes at a stable heap address for their entire
// lifetime: the address never changes between construction and
// Destroy, so wiping "the backing buffer" and wiping "the bytes that
// held the secret" are the same operation.
type Pinned struct {
	lb *memguard.LockedBuffer
}

// New allocates a new zero-filled Pinned secret of the given size.
func New(size int) *Pinned {
	return &Pinned{lb: memguard.NewBuffer(size)}
}

// NewFromBytes moves the given bytes into a new Pinned secret. The
// source slice is wiped in place by memguard; callers must not reuse it
// afterwards.
func NewFromBytes(b []byte) *Pinned {
	return &Pinned{lb: memguard.NewBufferFromBytes(b)}
}

// Bytes returns the secret's backing slice. The slice aliases the
// pinned buffer directly; callers must not retain it past the Pinned's
// lifetime or hand it to code that might move or copy it into
// un-pinned memory.
func (p *Pinned) Bytes() []byte {
	if p == nil || p.lb == nil {
		return nil
	}
	return p.lb.Bytes()
}

// Len returns the secret length in bytes.
func (p *Pinned) Len() int {
	if p == nil || p.lb == nil {
		return 0
	}
	return p.lb.Size()
}

// Destroy wipes the secret's backing memory. Outside of test builds
// that called SetTestDisableFree, it also releases the buffer. Safe to
// call more than once.
func (p *Pinned) Destroy() {
	if p == nil || p.lb == nil || p.lb.IsDestroyed() {
		return
	}
	if testDisableFree {
		p.lb.Melt() // NewFromBytes buffers are frozen read-only
		memguard.WipeBytes(p.lb.Bytes())
		return
	}
	p.lb.Destroy()
}

// String never reveals secret content; it exists so a Pinned can be
// embedded in structs passed to %v/%+v without leaking key material.
func (p *Pinned) String() string {
	return fmt.Sprintf("secret.Pinned{%d bytes}", p.Len())
}
