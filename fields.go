package mkconfgen

import "fmt"

// Field is one typed item of a configuration record. The set of
// implementations is closed: *IntField, *UintField, *FloatField, *WStrField.
type Field interface {
	Key() string
	Reset()
	field()
}

// IntField stores a signed integer.
type IntField struct {
	Name     string
	Dst      *int64
	Default  int64
	Validate func(int64) bool
}

// UintField stores an unsigned integer.
type UintField struct {
	Name     string
	Dst      *uint64
	Default  uint64
	Validate func(uint64) bool
}

// FloatField stores a floating point number.
type FloatField struct {
	Name     string
	Dst      *float64
	Default  float64
	Validate func(float64) bool
}

// WStrField stores a string of fewer than Capacity characters.
type WStrField struct {
	Name     string
	Dst      *string
	Default  string
	Capacity int
	Validate func(string) bool
}

func (f *IntField) Key() string   { return f.Name }
func (f *UintField) Key() string  { return f.Name }
func (f *FloatField) Key() string { return f.Name }
func (f *WStrField) Key() string  { return f.Name }

func (f *IntField) Reset()   { *f.Dst = f.Default }
func (f *UintField) Reset()  { *f.Dst = f.Default }
func (f *FloatField) Reset() { *f.Dst = f.Default }
func (f *WStrField) Reset()  { *f.Dst = f.Default }

func (*IntField) field()   {}
func (*UintField) field()  {}
func (*FloatField) field() {}
func (*WStrField) field()  {}

// Fields is an ordered field table; the order defines the key indices.
type Fields []Field

// Init stores every default into its destination.
func (fs Fields) Init() {
	for _, f := range fs {
		f.Reset()
	}
}

// KeyTable returns the keys of fs in order.
func (fs Fields) KeyTable() KeyTable {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Key()
	}
	return NewKeyTable(names...)
}

// ParseValue converts raw for field index and commits it on success.
func (fs Fields) ParseValue(index int, raw string, quoted bool) (ErrorKind, bool) {
	if index < 0 || index >= len(fs) {
		return Undefined, false
	}
	switch f := fs[index].(type) {
	case *IntField:
		v, kind, ok := ParseInt(raw, quoted)
		if !ok {
			return kind, false
		}
		if kind, ok := Check(v, f.Validate); !ok {
			return kind, false
		}
		*f.Dst = v
	case *UintField:
		v, kind, ok := ParseUint(raw, quoted)
		if !ok {
			return kind, false
		}
		if kind, ok := Check(v, f.Validate); !ok {
			return kind, false
		}
		*f.Dst = v
	case *FloatField:
		v, kind, ok := ParseFloat(raw, quoted)
		if !ok {
			return kind, false
		}
		if kind, ok := Check(v, f.Validate); !ok {
			return kind, false
		}
		*f.Dst = v
	case *WStrField:
		v, kind, ok := ParseWStr(raw, quoted, f.Capacity)
		if !ok {
			return kind, false
		}
		if kind, ok := Check(v, f.Validate); !ok {
			return kind, false
		}
		*f.Dst = v
	default:
		panic(fmt.Sprintf("mkconfgen: unexpected field type %T", f))
	}
	return 0, true
}

// Load reads cur into the destinations of fs.
func (fs Fields) Load(cur Cursor, opts ...LoadOpt) (LoadErrors, error) {
	return Load(cur, fs.KeyTable(), fs.ParseValue, opts...)
}
