//go:build !unix

// Package mmfile memory-maps encoded buffer files for zero-copy reads.
package mmfile

import "os"

// Mapping holds a whole-file read where mmap is unavailable.
type Mapping struct {
	data []byte
}

// Open reads the entire file into memory.
func Open(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data}, nil
}

// Bytes returns the file content.
func (m *Mapping) Bytes() []byte { return m.data }

// Close releases the content.
func (m *Mapping) Close() error {
	m.data = nil
	return nil
}
