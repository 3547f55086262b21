// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package diskcache persists translated shader source across process
// runs, keyed by the source bytecode's content hash. It holds no GPU
// resources (those cannot survive a process exit); package program
// re-creates driver.ShaderCode/driver.Pipeline objects from the
// cached source on every run, but skips re-running the translator
// when a hit is found.
package diskcache

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// magic and version tag the on-disk file format: an 8-byte header
// (magic, version) followed by entries, each a fixed-size record
// (key, offset, size) immediately followed by its variable-length
// blob.
const (
	magic   = uint32(0x64783867) // "dx8g"
	version = uint32(1)
)

// record is one fixed-size index entry.
type record struct {
	key    uint64
	offset int64
	size   int64
}

const recordSize = 8 + 8 + 8

// Cache is an on-disk key/blob store for one directory. It loads its
// full index into memory on Open and appends new blobs on Store;
// it never rewrites or compacts the file, trading disk growth for
// simplicity (a stale or oversized cache file can simply be deleted).
type Cache struct {
	mu   sync.Mutex
	path string
	f    *os.File
	idx  map[uint64]record
}

// Open opens (creating if necessary) the cache file at
// filepath.Join(dir, "shader.cache").
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "shader.cache")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	c := &Cache{path: path, f: f, idx: map[uint64]record{}}
	if err := c.loadIndex(); err != nil {
		f.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) loadIndex() error {
	info, err := c.f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return c.writeHeader()
	}
	hdr := make([]byte, 8)
	if _, err := c.f.ReadAt(hdr, 0); err != nil {
		return err
	}
	if binary.LittleEndian.Uint32(hdr[0:4]) != magic {
		return errors.New("diskcache: bad magic")
	}
	if binary.LittleEndian.Uint32(hdr[4:8]) != version {
		return errors.New("diskcache: unsupported version")
	}
	off := int64(8)
	for off < info.Size() {
		buf := make([]byte, recordSize)
		n, err := c.f.ReadAt(buf, off)
		if n < recordSize {
			break
		}
		if err != nil {
			return err
		}
		r := record{
			key:    binary.LittleEndian.Uint64(buf[0:8]),
			offset: int64(binary.LittleEndian.Uint64(buf[8:16])),
			size:   int64(binary.LittleEndian.Uint64(buf[16:24])),
		}
		c.idx[r.key] = r
		off += recordSize + r.size
	}
	return nil
}

func (c *Cache) writeHeader() error {
	hdr := make([]byte, 8)
	binary.LittleEndian.PutUint32(hdr[0:4], magic)
	binary.LittleEndian.PutUint32(hdr[4:8], version)
	_, err := c.f.WriteAt(hdr, 0)
	return err
}

// Load returns the blob stored for key, if any.
func (c *Cache) Load(key uint64) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.idx[key]
	if !ok {
		return nil, false
	}
	buf := make([]byte, r.size)
	if _, err := c.f.ReadAt(buf, r.offset+recordSize); err != nil {
		return nil, false
	}
	return buf, true
}

// Store appends data under key. If key already has a record, Store
// keeps that record, writes nothing and returns nil.
func (c *Cache) Store(key uint64, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.idx[key]; ok {
		return nil
	}
	info, err := c.f.Stat()
	if err != nil {
		return err
	}
	off := info.Size()
	buf := make([]byte, recordSize+len(data))
	binary.LittleEndian.PutUint64(buf[0:8], key)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(off))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(len(data)))
	copy(buf[recordSize:], data)
	if _, err := c.f.WriteAt(buf, off); err != nil {
		return err
	}
	c.idx[key] = record{key: key, offset: off, size: int64(len(data))}
	return nil
}

// Stats reports the cache's entry count and on-disk file size, for
// diagnostic tools such as cmd/dx8glinfo.
type Stats struct {
	Entries int
	Bytes   int64
}

// Stats returns c's current Stats.
func (c *Cache) Stats() (Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	info, err := c.f.Stat()
	if err != nil {
		return Stats{}, err
	}
	return Stats{Entries: len(c.idx), Bytes: info.Size()}, nil
}

// Close releases the underlying file handle.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.f.Close()
}
