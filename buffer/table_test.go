package buffer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bufkit/internal/format"
)

// wideTableSchema declares eight u8 columns c0..c7, spanning two vtables.
func wideTableSchema() string {
	cols := make([]string, 8)
	for i := range cols {
		cols[i] = fmt.Sprintf(`["c%d", {"type": "u8"}]`, i)
	}
	return `{"type": "table", "columns": [` + strings.Join(cols, ",") + `]}`
}

func TestTableSelectAllocatesVtablesLazily(t *testing.T) {
	b := New(mustSchema(t, wideTableSchema()), Addr16)
	vtSize := PtrVtable.Size(Addr16)

	before := b.Len()
	c7, _, err := b.TableSelect(b.Root(), "c7", true)
	require.NoError(t, err)
	assert.Equal(t, 2*vtSize, b.Len()-before,
		"column 7 sits in the second vtable, so exactly two get allocated")
	writeScalar(t, b, c7, []byte{7})

	// Column 0's slot already exists in the first vtable.
	before = b.Len()
	c0, ok, err := b.TableSelect(b.Root(), "c0", true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, before, b.Len(), "no new vtable for an already-covered index")

	addr, err := c0.ValueAddr(b.mem)
	require.NoError(t, err)
	assert.Zero(t, addr, "column 0 was never written, it reads absent")
	assert.Equal(t, []byte{7}, readScalar(t, b, c7, 1))
}

func TestTableSelectWithoutCreate(t *testing.T) {
	b := New(mustSchema(t, wideTableSchema()), Addr16)

	_, ok, err := b.TableSelect(b.Root(), "c0", false)
	require.NoError(t, err)
	assert.False(t, ok, "no vtable yet, nothing to resolve")
	assert.Equal(t, 4, b.Len())

	_, _, err = b.TableSelect(b.Root(), "nope", false)
	require.ErrorIs(t, err, ErrUnknownColumn)
}

func TestTableDelete(t *testing.T) {
	b := New(mustSchema(t, wideTableSchema()), Addr16)
	c, _, err := b.TableSelect(b.Root(), "c2", true)
	require.NoError(t, err)
	writeScalar(t, b, c, []byte{9})

	ok, err := b.TableDelete(b.Root(), "c2")
	require.NoError(t, err)
	require.True(t, ok)

	c, ok, err = b.TableSelect(b.Root(), "c2", false)
	require.NoError(t, err)
	require.True(t, ok, "the slot survives, only the value is cleared")
	addr, err := c.ValueAddr(b.mem)
	require.NoError(t, err)
	assert.Zero(t, addr)

	ok, err = b.TableDelete(b.Root(), "c2")
	require.NoError(t, err)
	assert.False(t, ok, "deleting an absent column reports false")
}

func TestTableIterYieldsEveryColumn(t *testing.T) {
	b := New(mustSchema(t, wideTableSchema()), Addr16)
	c, _, err := b.TableSelect(b.Root(), "c5", true)
	require.NoError(t, err)
	writeScalar(t, b, c, []byte{5})

	var names []string
	var present []bool
	err = b.TableIter(b.Root(), func(e TableEntry) error {
		names = append(names, e.Name)
		present = append(present, e.Present)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"c0", "c1", "c2", "c3", "c4", "c5", "c6", "c7"}, names)
	assert.Equal(t, []bool{false, false, false, false, false, true, false, false}, present)
}

func TestTableVtableCycleIsCorrupt(t *testing.T) {
	b := New(mustSchema(t, wideTableSchema()), Addr16)
	c, _, err := b.TableSelect(b.Root(), "c0", true)
	require.NoError(t, err)
	writeScalar(t, b, c, []byte{1})

	// Point the first vtable's next field back at itself.
	vt, err := b.Root().ValueAddr(b.mem)
	require.NoError(t, err)
	a := uint32(b.mem.width.Bytes())
	require.NoError(t, b.mem.putAddr(vt+uint32(format.VtableSlots)*a, vt))

	_, err = b.Savings()
	require.ErrorIs(t, err, ErrCorrupt, "cyclic vtable chain must surface within the hop cap")
}

// TestTableSelectLastAddressableColumn walks the full vtable chain to the
// final slot of the widest table the format addresses.
func TestTableSelectLastAddressableColumn(t *testing.T) {
	cols := make([]string, format.MaxVtableValues)
	for i := range cols {
		cols[i] = fmt.Sprintf(`["c%d", {"type": "u8"}]`, i)
	}
	doc := `{"type": "table", "columns": [` + strings.Join(cols, ",") + `]}`
	b := New(mustSchema(t, doc), Addr16)

	last := fmt.Sprintf("c%d", format.MaxVtableValues-1)
	c, _, err := b.TableSelect(b.Root(), last, true)
	require.NoError(t, err, "the final slot sits in vtable %d", format.MaxVtableHops-1)
	writeScalar(t, b, c, []byte{0x5a})
	assert.Equal(t, []byte{0x5a}, readScalar(t, b, c, 1))
}
