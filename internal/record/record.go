// Package record builds loadable field tables straight from a parsed schema,
// without generating code.
package record

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	mkconfgen "github.com/zirkelkoenig/MKConfGen"
	"github.com/zirkelkoenig/MKConfGen/internal/ir"
)

// Options resolve the parts of a schema that refer to Go code.
type Options struct {
	// Consts maps symbolic literals (capacities, numeric defaults) to values.
	Consts map[string]int64
	// Validators maps callback names to func(int64) bool, func(uint64) bool,
	// func(float64) bool or func(string) bool, matching the item kind.
	Validators map[string]any
}

// Record holds one value per item of a def.
type Record struct {
	Def    *ir.Def
	Fields mkconfgen.Fields
	// Skipped lists validator callbacks absent from Options.Validators; their
	// items load without validation.
	Skipped []string

	values []any
}

// New builds a Record for d and stores the defaults.
func New(d *ir.Def, opts Options) (*Record, error) {
	r := &Record{Def: d}
	for _, it := range d.Items {
		f, v, err := r.field(it, opts)
		if err != nil {
			return nil, fmt.Errorf("record: %s.%s: %w", d.Name, it.Name, err)
		}
		r.Fields = append(r.Fields, f)
		r.values = append(r.values, v)
	}
	r.Init()
	return r, nil
}

func (r *Record) field(it *ir.Item, opts Options) (mkconfgen.Field, any, error) {
	cb, hasCB := opts.Validators[it.Validate]
	if it.Validate != "" && !hasCB {
		r.Skipped = append(r.Skipped, it.Validate)
	}
	switch it.Kind {
	case ir.KindInt:
		def, err := resolveInt(it.Default, opts.Consts)
		if err != nil {
			return nil, nil, err
		}
		f := &mkconfgen.IntField{Name: it.Name, Dst: new(int64), Default: def}
		if hasCB {
			fn, ok := cb.(func(int64) bool)
			if !ok {
				return nil, nil, fmt.Errorf("validator %s has type %T, want func(int64) bool", it.Validate, cb)
			}
			f.Validate = fn
		}
		return f, f.Dst, nil
	case ir.KindUint:
		def, err := resolveUint(it.Default, opts.Consts)
		if err != nil {
			return nil, nil, err
		}
		f := &mkconfgen.UintField{Name: it.Name, Dst: new(uint64), Default: def}
		if hasCB {
			fn, ok := cb.(func(uint64) bool)
			if !ok {
				return nil, nil, fmt.Errorf("validator %s has type %T, want func(uint64) bool", it.Validate, cb)
			}
			f.Validate = fn
		}
		return f, f.Dst, nil
	case ir.KindFloat:
		def, err := strconv.ParseFloat(it.Default, 64)
		if err != nil {
			c, ok := opts.Consts[it.Default]
			if !ok {
				return nil, nil, fmt.Errorf("default %q: %w", it.Default, err)
			}
			def = float64(c)
		}
		f := &mkconfgen.FloatField{Name: it.Name, Dst: new(float64), Default: def}
		if hasCB {
			fn, ok := cb.(func(float64) bool)
			if !ok {
				return nil, nil, fmt.Errorf("validator %s has type %T, want func(float64) bool", it.Validate, cb)
			}
			f.Validate = fn
		}
		return f, f.Dst, nil
	case ir.KindWStr:
		capacity, err := resolveInt(it.Capacity, opts.Consts)
		if err != nil {
			return nil, nil, fmt.Errorf("capacity: %w", err)
		}
		if capacity <= 0 {
			return nil, nil, fmt.Errorf("capacity %d is not positive", capacity)
		}
		if i := it.BadEscape(); i >= 0 {
			return nil, nil, fmt.Errorf("default: unsupported escape at offset %d", i)
		}
		def := it.StringValue()
		if n := utf8.RuneCountInString(def); int64(n) >= capacity {
			return nil, nil, fmt.Errorf("default has %d characters, capacity %d allows at most %d", n, capacity, capacity-1)
		}
		f := &mkconfgen.WStrField{Name: it.Name, Dst: new(string), Default: def, Capacity: int(capacity)}
		if hasCB {
			fn, ok := cb.(func(string) bool)
			if !ok {
				return nil, nil, fmt.Errorf("validator %s has type %T, want func(string) bool", it.Validate, cb)
			}
			f.Validate = fn
		}
		return f, f.Dst, nil
	}
	return nil, nil, fmt.Errorf("unknown item kind %v", it.Kind)
}

func resolveInt(lit string, consts map[string]int64) (int64, error) {
	v, err := strconv.ParseInt(lit, 0, 64)
	if err == nil {
		return v, nil
	}
	if c, ok := consts[lit]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("literal %q is neither an integer nor a known constant", lit)
}

func resolveUint(lit string, consts map[string]int64) (uint64, error) {
	v, err := strconv.ParseUint(lit, 0, 64)
	if err == nil {
		return v, nil
	}
	if c, ok := consts[lit]; ok && c >= 0 {
		return uint64(c), nil
	}
	return 0, fmt.Errorf("literal %q is neither an unsigned integer nor a known constant", lit)
}

// Init restores every default.
func (r *Record) Init() { r.Fields.Init() }

// Load reads cur into the record.
func (r *Record) Load(cur mkconfgen.Cursor, opts ...mkconfgen.LoadOpt) (mkconfgen.LoadErrors, error) {
	return r.Fields.Load(cur, opts...)
}

// Value returns the current value of item name.
func (r *Record) Value(name string) (any, bool) {
	for i, it := range r.Def.Items {
		if it.Name == name {
			return deref(r.values[i]), true
		}
	}
	return nil, false
}

// Map returns the current values keyed by item name.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(r.values))
	for i, it := range r.Def.Items {
		m[it.Name] = deref(r.values[i])
	}
	return m
}

func deref(p any) any {
	switch v := p.(type) {
	case *int64:
		return *v
	case *uint64:
		return *v
	case *float64:
		return *v
	case *string:
		return *v
	}
	return nil
}

// YAML renders the values in declaration order.
func (r *Record) YAML() ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for i, it := range r.Def.Items {
		var val yaml.Node
		if err := val.Encode(deref(r.values[i])); err != nil {
			return nil, fmt.Errorf("record: encode %s: %w", it.Name, err)
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: it.Name}
		if hs := r.Def.HeadingsAt(i); len(hs) > 0 {
			key.HeadComment = strings.Join(hs, "\n")
		}
		root.Content = append(root.Content, key, &val)
	}
	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("record: marshal: %w", err)
	}
	return out, nil
}
