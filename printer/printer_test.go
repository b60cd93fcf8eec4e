package printer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/bufkit/buffer"
	"github.com/joshuapare/bufkit/codec"
	"github.com/joshuapare/bufkit/schema"
)

const profileSchema = `{
	"type": "table",
	"columns": [
		["name", {"type": "string"}],
		["age", {"type": "u8"}],
		["tags", {"type": "list", "of": {"type": "string"}}],
		["attrs", {"type": "map", "value": {"type": "i32"}}]
	]
}`

func buildProfile(t *testing.T) *buffer.Buffer {
	t.Helper()
	sch, err := schema.Parse([]byte(profileSchema))
	require.NoError(t, err)
	b := buffer.New(sch, buffer.Addr16)

	cur, _, err := b.Select([]string{"name"}, true)
	require.NoError(t, err)
	require.NoError(t, codec.SetString(b, cur, "ada"))

	cur, _, err = b.Select([]string{"age"}, true)
	require.NoError(t, err)
	require.NoError(t, codec.SetUint8(b, cur, 36))

	cur, _, err = b.Select([]string{"tags", "0"}, true)
	require.NoError(t, err)
	require.NoError(t, codec.SetString(b, cur, "math"))
	cur, _, err = b.Select([]string{"tags", "2"}, true)
	require.NoError(t, err)
	require.NoError(t, codec.SetString(b, cur, "engines"))

	cur, _, err = b.Select([]string{"attrs", "born"}, true)
	require.NoError(t, err)
	require.NoError(t, codec.SetInt32(b, cur, 1815))
	return b
}

func TestRenderTable(t *testing.T) {
	b := buildProfile(t)

	v, err := Render(b, Options{})
	require.NoError(t, err)

	obj, ok := v.(map[string]any)
	require.True(t, ok, "table should render as an object")
	assert.Equal(t, "ada", obj["name"])
	assert.Equal(t, uint64(36), obj["age"])

	tags, ok := obj["tags"].([]any)
	require.True(t, ok)
	require.Len(t, tags, 3, "sparse list should render with its gap")
	assert.Equal(t, "math", tags[0])
	assert.Nil(t, tags[1])
	assert.Equal(t, "engines", tags[2])

	attrs, ok := obj["attrs"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, int64(1815), attrs["born"])
}

func TestRenderSkipsAbsentColumns(t *testing.T) {
	sch, err := schema.Parse([]byte(profileSchema))
	require.NoError(t, err)
	b := buffer.New(sch, buffer.Addr16)

	cur, _, err := b.Select([]string{"age"}, true)
	require.NoError(t, err)
	require.NoError(t, codec.SetUint8(b, cur, 1))

	v, err := Render(b, Options{})
	require.NoError(t, err)
	obj := v.(map[string]any)
	assert.Len(t, obj, 1)
	_, present := obj["name"]
	assert.False(t, present, "absent column should not render")
}

func TestRenderIncludeAbsent(t *testing.T) {
	sch, err := schema.Parse([]byte(`{"type": "table", "columns": [
		["count", {"type": "u16", "default": 7}],
		["label", {"type": "string"}]
	]}`))
	require.NoError(t, err)
	b := buffer.New(sch, buffer.Addr16)

	v, err := Render(b, Options{IncludeAbsent: true})
	require.NoError(t, err)
	obj := v.(map[string]any)
	assert.Equal(t, uint64(7), obj["count"], "absent scalar should render its default")
}

func TestRenderTuple(t *testing.T) {
	sch, err := schema.Parse([]byte(`{"type": "tuple", "values": [
		{"type": "u16"}, {"type": "string"}
	]}`))
	require.NoError(t, err)
	b := buffer.New(sch, buffer.Addr16)

	cur, _, err := b.Select([]string{"1"}, true)
	require.NoError(t, err)
	require.NoError(t, codec.SetString(b, cur, "only"))

	v, err := Render(b, Options{})
	require.NoError(t, err)
	arr, ok := v.([]any)
	require.True(t, ok)
	require.Len(t, arr, 2)
	assert.Nil(t, arr[0])
	assert.Equal(t, "only", arr[1])
}

func TestJSONOutput(t *testing.T) {
	b := buildProfile(t)

	out, err := JSON(b, Options{})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "ada", decoded["name"])
	assert.Equal(t, float64(36), decoded["age"])
}

func TestRenderPath(t *testing.T) {
	b := buildProfile(t)

	v, found, err := RenderPath(b, []string{"attrs", "born"}, Options{})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(1815), v)

	_, found, err = RenderPath(b, []string{"attrs", "missing"}, Options{})
	require.NoError(t, err)
	assert.False(t, found)
}
