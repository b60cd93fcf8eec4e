//go:build !linux && !darwin

package buffer

import (
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/bufkit/schema"
)

// File is a buffer loaded from a file. On platforms without the mmap path
// the whole file is read into an owned arena and Sync rewrites it.
type File struct {
	path string
	buf  *Buffer
	ro   bool
}

// OpenFile reads the file at path into an owned mutable buffer.
func OpenFile(sch *schema.Node, path string) (*File, error) {
	buf, err := readInto(sch, path, false)
	if err != nil {
		return nil, err
	}
	return &File{path: path, buf: buf}, nil
}

// OpenFileRO reads the file at path into a read-only buffer.
func OpenFileRO(sch *schema.Node, path string) (*File, error) {
	buf, err := readInto(sch, path, true)
	if err != nil {
		return nil, err
	}
	return &File{path: path, buf: buf, ro: true}, nil
}

func readInto(sch *schema.Node, path string, ro bool) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if st.Size() == 0 {
		return nil, fmt.Errorf("%w: empty file %s", ErrBadHeader, path)
	}

	data := make([]byte, st.Size())
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, err
	}
	if ro {
		return OpenReadOnly(sch, data)
	}
	return Open(sch, data)
}

// Buffer returns the loaded buffer.
func (fb *File) Buffer() *Buffer { return fb.buf }

// Sync rewrites the file from the in-memory arena. No-op for read-only files.
func (fb *File) Sync() error {
	if fb.ro {
		return nil
	}
	return os.WriteFile(fb.path, fb.buf.Bytes(), 0o644)
}

// Close releases the loaded buffer.
func (fb *File) Close() error {
	fb.buf = nil
	return nil
}
