// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package secret provides pinned, zero-on-destroy containers for key
// material.
//
// Go has no hook to intercept the runtime's global allocator, so the
// zeroizing-allocator discipline is implemented per-value instead of
// process-wide: every secret produced by this module is held in a
// memguard.LockedBuffer, which mlocks its backing pages and wipes them
// on Destroy. The address of the underlying buffer never changes
// between construction and destruction, which gives the pinning
// guarantee the ladder relies on to zero exactly the bytes that held
// the secret.
package secret
