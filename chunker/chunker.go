// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package chunker

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/MGibson1/pigeonhole"
	"github.com/MGibson1/pigeonhole/log"
)

const (
	// prodChunkSize is the fixed plaintext chunk size used outside of
	// test mode.
	prodChunkSize = 1024
	// testChunkSize keeps fixtures small enough to exercise multi-chunk
	// behavior without large test files.
	testChunkSize = 8
)

func chunkSize() int {
	if pigeonhole.InTestMode() {
		return testChunkSize
	}
	return prodChunkSize
}

// Chunk is one fixed-size slice of a file's plaintext, identified by the
// SHA-256 digest of its bytes.
type Chunk struct {
	Data []byte
}

// ContentID returns the chunk's SHA-256 content identifier.
func (c Chunk) ContentID() [32]byte {
	return sha256.Sum256(c.Data)
}

// FileManifest accumulates the content identifiers produced while chunking
// a file. It is only Complete once iteration has reached natural EOF; a
// manifest built from a partial or aborted iteration must not be trusted as
// a full description of the file.
type FileManifest struct {
	ContentIDs [][32]byte
	Complete   bool
}

func (m *FileManifest) add(id [32]byte) {
	m.ContentIDs = append(m.ContentIDs, id)
}

func (m *FileManifest) markComplete() {
	m.Complete = true
}

// File chunks a single named file from a filesystem root. Its manifest is
// rebuilt from scratch each time Iter is called, so re-iterating after a
// prior pass always restarts from byte 0 with a clean manifest.
type File struct {
	root fs.FS
	name string

	manifest FileManifest
}

// Open returns a File ready to be chunked. It does not read the file yet;
// errors opening or stating it surface from EstimatedChunks or Iter.
func Open(root fs.FS, name string) (*File, error) {
	if root == nil {
		return nil, errors.New("chunker: root filesystem must not be nil")
	}
	return &File{root: root, name: name}, nil
}

// Manifest returns the manifest built by the most recent call to Iter (or
// All). It is only safe to treat as complete once that iteration reached
// EOF.
func (f *File) Manifest() *FileManifest {
	return &f.manifest
}

// EstimatedChunks returns the number of chunks iteration will produce,
// computed from the file's current size without reading its content. It is
// a preflight estimate only: a file modified between this call and Iter may
// produce a different number of chunks.
func (f *File) EstimatedChunks() (uint64, error) {
	fi, err := fs.Stat(f.root, f.name)
	if err != nil {
		return 0, fmt.Errorf("chunker: unable to stat %q: %w", f.name, err)
	}
	size := fi.Size()
	cs := int64(chunkSize())
	return uint64((size + cs - 1) / cs), nil
}

// All chunks the entire file in one call, returning every chunk in order.
// Iteration updates f.Manifest() exactly as Iter does.
func (f *File) All() ([]Chunk, error) {
	it, err := f.Iter()
	if err != nil {
		return nil, err
	}

	var chunks []Chunk
	for {
		c, err := it.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *c)
	}
	return chunks, nil
}

// Iter opens the file and returns an Iterator over its fixed-size chunks.
// Starting a new Iter resets the File's manifest.
func (f *File) Iter() (*Iterator, error) {
	rc, err := f.root.Open(f.name)
	if err != nil {
		return nil, fmt.Errorf("chunker: unable to open %q: %w", f.name, err)
	}

	f.manifest = FileManifest{}

	return &Iterator{
		name:     f.name,
		file:     rc,
		manifest: &f.manifest,
		buf:      make([]byte, chunkSize()),
	}, nil
}

// Iterator yields one fixed-size Chunk per call to Next, in file order.
type Iterator struct {
	name     string
	file     fs.File
	manifest *FileManifest
	buf      []byte
	closed   bool
}

// Next returns the next chunk, or io.EOF once the file is exhausted. On
// EOF, the underlying file handle is closed and the manifest is marked
// complete. Any other error leaves the manifest incomplete.
func (it *Iterator) Next() (*Chunk, error) {
	if it.closed {
		return nil, io.EOF
	}

	n, err := io.ReadFull(it.file, it.buf)
	switch {
	case errors.Is(err, io.EOF):
		it.finish()
		return nil, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		data := make([]byte, n)
		copy(data, it.buf[:n])
		it.manifest.add(sha256.Sum256(data))
		it.finish()
		return &Chunk{Data: data}, nil
	case err != nil:
		return nil, fmt.Errorf("chunker: unable to read %q: %w", it.name, err)
	}

	data := make([]byte, n)
	copy(data, it.buf[:n])
	it.manifest.add(sha256.Sum256(data))
	return &Chunk{Data: data}, nil
}

// finish marks the manifest complete and closes the file. A close error is
// logged, not returned, and does not undo completeness. Iteration is always
// driven to natural EOF before finish is called, so marking complete here is
// safe.
func (it *Iterator) finish() {
	if it.closed {
		return
	}
	it.closed = true
	it.manifest.markComplete()
	if err := it.file.Close(); err != nil {
		log.Error(err).Messagef("chunker: unable to close %q", it.name)
	}
}

// Close releases the iterator's file handle without marking the manifest
// complete. Safe to call after Next has already returned io.EOF.
func (it *Iterator) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	return it.file.Close()
}
