package schema

// Kind identifies the type of a schema node.
type Kind uint8

const (
	None Kind = iota

	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Bool
	String
	Bytes
	Date
	UUID
	ULID
	Decimal
	Geo
	Enum

	Map
	List
	Table
	Tuple
	Any
	Portal
)

// kindNames maps the canonical type name of each kind.
var kindNames = map[Kind]string{
	Int8:    "i8",
	Int16:   "i16",
	Int32:   "i32",
	Int64:   "i64",
	Uint8:   "u8",
	Uint16:  "u16",
	Uint32:  "u32",
	Uint64:  "u64",
	Float32: "f32",
	Float64: "f64",
	Bool:    "bool",
	String:  "string",
	Bytes:   "bytes",
	Date:    "date",
	UUID:    "uuid",
	ULID:    "ulid",
	Decimal: "dec",
	Geo:     "geo",
	Enum:    "option",
	Map:     "map",
	List:    "list",
	Table:   "table",
	Tuple:   "tuple",
	Any:     "any",
	Portal:  "portal",
}

// typeNames maps every accepted spelling in a schema document to its kind
// plus, for the geo family, the implied payload size.
var typeNames = map[string]struct {
	kind Kind
	size int
}{
	"i8":     {Int8, 0},
	"int8":   {Int8, 0},
	"i16":    {Int16, 0},
	"int16":  {Int16, 0},
	"i32":    {Int32, 0},
	"int32":  {Int32, 0},
	"i64":    {Int64, 0},
	"int64":  {Int64, 0},
	"u8":     {Uint8, 0},
	"uint8":  {Uint8, 0},
	"u16":    {Uint16, 0},
	"uint16": {Uint16, 0},
	"u32":    {Uint32, 0},
	"uint32": {Uint32, 0},
	"u64":    {Uint64, 0},
	"uint64": {Uint64, 0},
	"f32":    {Float32, 0},
	"float":  {Float32, 0},
	"f64":    {Float64, 0},
	"double": {Float64, 0},
	"bool":   {Bool, 0},
	"string": {String, 0},
	"bytes":  {Bytes, 0},
	"date":   {Date, 0},
	"uuid":   {UUID, 0},
	"ulid":   {ULID, 0},
	"dec":    {Decimal, 0},
	"geo4":   {Geo, 4},
	"geo8":   {Geo, 8},
	"geo16":  {Geo, 16},
	"option": {Enum, 0},
	"enum":   {Enum, 0},
	"map":    {Map, 0},
	"list":   {List, 0},
	"table":  {Table, 0},
	"tuple":  {Tuple, 0},
	"any":    {Any, 0},
	"portal": {Portal, 0},
}

// String returns the canonical type name of the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "none"
}

// Scalar reports whether the kind is a leaf value (not a collection).
func (k Kind) Scalar() bool {
	switch k {
	case Map, List, Table, Tuple, Any, Portal, None:
		return false
	}
	return true
}

// Collection reports whether the kind stores child values through its own
// item or slot records.
func (k Kind) Collection() bool {
	switch k {
	case Map, List, Table, Tuple:
		return true
	}
	return false
}
