package buffer

import (
	"github.com/joshuapare/bufkit/schema"
)

// Factory compiles a schema document once and stamps out buffers of that
// type. The parsed schema tree is immutable and shared by every buffer the
// factory produces; the factory itself is safe for concurrent use as long
// as each buffer stays single-writer.
type Factory struct {
	sch   *schema.Node
	width AddrWidth
}

// NewFactory parses a schema document. The width is the default address
// size for buffers the factory creates; opened buffers keep whatever width
// their header declares.
func NewFactory(doc []byte, width AddrWidth) (*Factory, error) {
	sch, err := schema.Parse(doc)
	if err != nil {
		return nil, err
	}
	return &Factory{sch: sch, width: width}, nil
}

// Schema returns the shared schema tree.
func (f *Factory) Schema() *schema.Node { return f.sch }

// NewBuffer creates an empty buffer of this factory's type.
func (f *Factory) NewBuffer() *Buffer {
	return New(f.sch, f.width)
}

// OpenBuffer copies an encoded buffer into an owned, mutable arena.
func (f *Factory) OpenBuffer(data []byte) (*Buffer, error) {
	return Open(f.sch, data)
}

// OpenBufferRO wraps an encoded buffer zero-copy, read-only.
func (f *Factory) OpenBufferRO(data []byte) (*Buffer, error) {
	return OpenReadOnly(f.sch, data)
}

// OpenBufferInPlace wraps a caller-owned slice zero-copy for in-place
// mutation. length is the buffer's logical length; the rest of the slice is
// growth headroom.
func (f *Factory) OpenBufferInPlace(data []byte, length int) (*Buffer, error) {
	return OpenBorrowed(f.sch, data, length)
}
