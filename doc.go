// Package pigeonhole implements the client-side cryptographic core of a
// federated personal-drive file-encryption scheme: passphrase-derived key
// material, a three-level HKDF key ladder, authenticated chunk encryption,
// content-addressed file chunking and extended Ed25519 signing-key
// derivation.
//
// Every secret value that transits this package is held in a pinned,
// zeroizing buffer (see package secret) rather than a plain byte slice, and
// every wire format is self-describing so a corrupted or truncated chunk is
// rejected rather than silently misinterpreted.
package pigeonhole
