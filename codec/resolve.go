package codec

import (
	"fmt"

	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/schema"
)

// node checks the cursor's (portal-resolved) schema kind before an
// operation; mismatches are typed errors, never panics, because cursors can
// originate from untrusted buffers.
func node(c buffer.Cursor, kinds ...schema.Kind) (*schema.Node, error) {
	n := c.Node()
	if n == nil {
		return nil, fmt.Errorf("%w: nil cursor", buffer.ErrSchemaMismatch)
	}
	n = n.Resolve()
	for _, k := range kinds {
		if n.Kind == k {
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: %s codec on %s", buffer.ErrSchemaMismatch, kinds[0], n.Kind)
}

// resolveFixed returns the value-address for a fixed-width payload,
// allocating zeroed space on first write.
func resolveFixed(b *buffer.Buffer, c buffer.Cursor, size int) (uint32, error) {
	m := b.Memory()
	addr, err := c.ValueAddr(m)
	if err != nil {
		return 0, err
	}
	if addr != 0 {
		return addr, nil
	}
	if addr, err = m.MallocZero(size); err != nil {
		return 0, err
	}
	return addr, c.SetValueAddr(m, addr)
}

// writeFixed writes a fixed-width payload in place, allocating on first write.
func writeFixed(b *buffer.Buffer, c buffer.Cursor, payload []byte) error {
	addr, err := resolveFixed(b, c, len(payload))
	if err != nil {
		return err
	}
	return b.Memory().WriteAt(addr, payload)
}

// readFixed returns the payload bytes at the cursor, or nil when absent.
func readFixed(b *buffer.Buffer, c buffer.Cursor, size int) ([]byte, error) {
	m := b.Memory()
	addr, err := c.ValueAddr(m)
	if err != nil || addr == 0 {
		return nil, err
	}
	return m.Read(addr, size)
}

// writeVar writes a u16-length-prefixed payload. The existing allocation is
// reused only when the new encoding is exactly the old size; otherwise a
// fresh allocation is made and the old bytes become garbage until
// compaction.
func writeVar(b *buffer.Buffer, c buffer.Cursor, v []byte) error {
	if len(v) > 65535 {
		return fmt.Errorf("%w: %d bytes", ErrTooLong, len(v))
	}
	m := b.Memory()
	payload := make([]byte, 2+len(v))
	payload[0] = byte(len(v) >> 8)
	payload[1] = byte(len(v))
	copy(payload[2:], v)

	addr, err := c.ValueAddr(m)
	if err != nil {
		return err
	}
	if addr != 0 {
		old, err := m.Read(addr, 2)
		if err != nil {
			return err
		}
		oldLen := int(old[0])<<8 | int(old[1])
		if oldLen == len(v) {
			return m.WriteAt(addr, payload)
		}
	}
	if addr, err = m.Malloc(payload); err != nil {
		return err
	}
	return c.SetValueAddr(m, addr)
}

// readVar returns a u16-length-prefixed payload's bytes, or nil when absent.
func readVar(b *buffer.Buffer, c buffer.Cursor) ([]byte, error) {
	m := b.Memory()
	addr, err := c.ValueAddr(m)
	if err != nil || addr == 0 {
		return nil, err
	}
	pre, err := m.Read(addr, 2)
	if err != nil {
		return nil, err
	}
	n := int(pre[0])<<8 | int(pre[1])
	return m.Read(addr+2, n)
}
