//go:build unix

// Package mmfile memory-maps encoded buffer files for zero-copy reads.
package mmfile

import (
	"fmt"
	"os"
	"syscall"
)

// Mapping is a read-only memory-mapped file. Close releases the pages; the
// byte slice must not be used afterwards.
type Mapping struct {
	data []byte
}

// Open maps the file at path read-only. Empty files map to an empty slice
// with nothing to release.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() // the mapping keeps pages alive without the descriptor

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return &Mapping{}, nil
	}
	if size > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("mmfile: %d bytes exceeds the address space", size)
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, int(size), syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmfile: mmap %s: %w", path, err)
	}
	return &Mapping{data: data}, nil
}

// Bytes returns the mapped content.
func (m *Mapping) Bytes() []byte { return m.data }

// Close unmaps the file. Closing twice is a no-op.
func (m *Mapping) Close() error {
	if m.data == nil {
		return nil
	}
	data := m.data
	m.data = nil
	return syscall.Munmap(data)
}
