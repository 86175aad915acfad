// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package signingkey

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"

	"github.com/awnumar/memguard"

	"github.com/MGibson1/pigeonhole/secret"
)

// seedKey is the fixed HMAC key mandated by SLIP-0010 for the Ed25519
// master-key construction.
const seedKey = "ed25519 seed"

// hardenedBit marks a derivation index as hardened. Ed25519 has no
// public-key-only derivation, so every child key this package produces is
// implicitly hardened regardless of whether the caller already set it.
const hardenedBit = uint32(1) << 31

// ExtendedKey is an Ed25519 signing key paired with the chain code needed
// to derive further child keys. Both halves are held in pinned, zeroizing
// buffers for their entire lifetime.
type ExtendedKey struct {
	seed      *secret.Pinned // 32-byte Ed25519 seed
	chainCode *secret.Pinned // 32-byte chain code
}

// Derive produces the master ExtendedKey from a PRK, following SLIP-0010:
// I = HMAC-SHA512(key="ed25519 seed", data=prk); the left 32 bytes become
// the Ed25519 seed, the right 32 the chain code.
func Derive(prk *secret.Pinned) (*ExtendedKey, error) {
	if prk == nil {
		return nil, errors.New("signingkey: prk must not be nil")
	}

	mac := hmac.New(sha512.New, []byte(seedKey))
	mac.Write(prk.Bytes())
	i := mac.Sum(nil)

	return &ExtendedKey{
		seed:      secret.NewFromBytes(i[:32]),
		chainCode: secret.NewFromBytes(i[32:]),
	}, nil
}

// DeriveHardenedChild derives the child ExtendedKey at the given index,
// always treated as hardened: child_I = HMAC-SHA512(key=chain_code,
// data=0x00 || parent_seed || ser32(index | 0x80000000)).
func (k *ExtendedKey) DeriveHardenedChild(index uint32) (*ExtendedKey, error) {
	data := make([]byte, 1+32+4)
	data[0] = 0x00
	copy(data[1:33], k.seed.Bytes())
	binary.BigEndian.PutUint32(data[33:], index|hardenedBit)
	defer memguard.WipeBytes(data)

	mac := hmac.New(sha512.New, k.chainCode.Bytes())
	mac.Write(data)
	i := mac.Sum(nil)

	return &ExtendedKey{
		seed:      secret.NewFromBytes(i[:32]),
		chainCode: secret.NewFromBytes(i[32:]),
	}, nil
}

// PrivateKey returns the Ed25519 private key derived from this key's seed.
// The returned key aliases no pinned memory; callers that need the raw seed
// to stay pinned must not retain the slice beyond their own use.
func (k *ExtendedKey) PrivateKey() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(k.seed.Bytes())
}

// PublicKey returns the Ed25519 verifying key for this signing key.
func (k *ExtendedKey) PublicKey() ed25519.PublicKey {
	pub, ok := k.PrivateKey().Public().(ed25519.PublicKey)
	if !ok {
		panic("signingkey: ed25519 public key has unexpected type")
	}
	return pub
}

// Destroy wipes both the seed and chain code. Safe to call more than once.
func (k *ExtendedKey) Destroy() {
	k.seed.Destroy()
	k.chainCode.Destroy()
}
