// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package chunker splits a plaintext stream into fixed-size chunks and
// content-addresses each one with SHA-256, building up a FileManifest as it
// goes. It never encrypts: callers feed each chunk's plaintext through the
// keyschedule package themselves.
package chunker
