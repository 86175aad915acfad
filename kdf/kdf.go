// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package kdf

import (
	"crypto/sha256"

	"golang.org/x/crypto/argon2"

	"github.com/MGibson1/pigeonhole"
	"github.com/MGibson1/pigeonhole/secret"
)

// saltLabel is hashed to produce the fixed Argon2id salt. Using a
// domain-separated constant instead of a random salt is what makes
// derivation deterministic: the same passphrase always yields the same PRK,
// which is required since no salt is ever persisted alongside the output.
const saltLabel = "federated drive"

const (
	prkLen = 32

	// Production cost parameters. Memory-hard at 64 MiB to resist
	// GPU/ASIC brute force, three passes, four lanes.
	prodTime    = 3
	prodMemory  = 64 * 1024 // KiB
	prodThreads = 4

	// Test-mode parameters keep the suite fast; they must never be used
	// outside of pigeonhole.InTestMode.
	testTime    = 1
	testMemory  = 1 * 1024 // KiB
	testThreads = 1
)

func salt() []byte {
	sum := sha256.Sum256([]byte(saltLabel))
	return sum[:]
}

// DerivePRK stretches a passphrase into the 32-byte pseudorandom key that
// seeds keyschedule.GenerateRootKey. The passphrase bytes are moved into a
// pinned buffer before hashing; callers must not reuse the passphrase slice
// after calling this.
func DerivePRK(passphrase []byte) (*secret.Pinned, error) {
	pinnedPassphrase := secret.NewFromBytes(passphrase)
	defer pinnedPassphrase.Destroy()

	time, memory, threads := uint32(prodTime), uint32(prodMemory), uint8(prodThreads)
	if pigeonhole.InTestMode() {
		time, memory, threads = uint32(testTime), uint32(testMemory), uint8(testThreads)
	}

	prk := argon2.IDKey(pinnedPassphrase.Bytes(), salt(), time, memory, threads, prkLen)
	return secret.NewFromBytes(prk), nil
}
