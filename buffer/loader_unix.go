//go:build linux || darwin

package buffer

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/bufkit/internal/mmfile"
	"github.com/joshuapare/bufkit/schema"
)

// File is a buffer backed by a memory-mapped file. In-place mutations land
// directly in the page cache; Sync makes them durable. The mapping is the
// arena's physical slice, so the arena cannot grow past the file size —
// grow by compacting into an owned buffer and rewriting the file.
type File struct {
	f       *os.File
	data    []byte
	buf     *Buffer
	cleanup func() error
}

// OpenFile mmaps the file at path read-write and wraps it as a borrowed
// mutable buffer whose logical length is the file size.
func OpenFile(sch *schema.Node, path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	sz := st.Size()
	if sz == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%w: empty file %s", ErrBadHeader, path)
	}

	data, err := syscall.Mmap(
		int(f.Fd()),
		0,
		int(sz),
		syscall.PROT_READ|syscall.PROT_WRITE,
		syscall.MAP_SHARED,
	)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	buf, err := OpenBorrowed(sch, data, len(data))
	if err != nil {
		_ = syscall.Munmap(data)
		_ = f.Close()
		return nil, err
	}
	return &File{f: f, data: data, buf: buf}, nil
}

// OpenFileRO mmaps the file at path read-only and wraps it as an immutable
// zero-copy buffer.
func OpenFileRO(sch *schema.Node, path string) (*File, error) {
	m, err := mmfile.Open(path)
	if err != nil {
		return nil, err
	}
	buf, err := OpenReadOnly(sch, m.Bytes())
	if err != nil {
		_ = m.Close()
		return nil, err
	}
	return &File{buf: buf, cleanup: m.Close}, nil
}

// Buffer returns the mapped buffer.
func (fb *File) Buffer() *Buffer { return fb.buf }

// Sync flushes the mapping to disk with msync. No-op for read-only files.
func (fb *File) Sync() error {
	if fb.f == nil {
		return nil
	}
	return unix.Msync(fb.data, unix.MS_SYNC)
}

// Close unmaps the file and releases the descriptor. The buffer must not be
// used afterwards.
func (fb *File) Close() error {
	if fb.cleanup != nil {
		err := fb.cleanup()
		fb.cleanup = nil
		fb.data = nil
		return err
	}
	if fb.data != nil {
		if err := syscall.Munmap(fb.data); err != nil {
			return err
		}
		fb.data = nil
	}
	if fb.f != nil {
		err := fb.f.Close()
		fb.f = nil
		return err
	}
	return nil
}
