package ir

// Package ir defines the schema model built by the DSL parser and consumed by
// the code generator, the dynamic record builder and the exporters. This
// package is internal and not part of the public API.
//
// All text is owned; nothing refers back to the source buffer.

import (
	"fmt"
	"strings"
)

// ItemKind identifies the value type of an Item.
type ItemKind int

const (
	KindInt ItemKind = iota
	KindUint
	KindFloat
	KindWStr
)

var kindNames = [...]string{
	KindInt:   "int",
	KindUint:  "uint",
	KindFloat: "float",
	KindWStr:  "wstr",
}

func (k ItemKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ItemKind(%d)", int(k))
	}
	return kindNames[k]
}

func (k ItemKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("ir: invalid item kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *ItemKind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = ItemKind(i)
			return nil
		}
	}
	return fmt.Errorf("ir: unknown item kind %q", b)
}

// File is one parsed schema source.
type File struct {
	Head string `json:"head,omitempty" yaml:"head,omitempty"` // text before MKCONFGEN_FILE_BEGIN
	Defs []*Def `json:"defs" yaml:"defs"`
}

// Def is one configuration record.
type Def struct {
	Name     string    `json:"name" yaml:"name"`
	Headings []Heading `json:"headings,omitempty" yaml:"headings,omitempty"`
	Items    []*Item   `json:"items" yaml:"items"`
	// Unbound lists VALIDATE bindings whose item was not declared before them.
	Unbound []Binding `json:"unbound,omitempty" yaml:"unbound,omitempty"`
	Line    int       `json:"line" yaml:"line"`
}

// Heading marks a group boundary: it precedes Items[Index].
type Heading struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name" yaml:"name"`
}

// Item is one typed field. Default and Capacity are literal source text.
type Item struct {
	Kind     ItemKind `json:"kind" yaml:"kind"`
	Name     string   `json:"name" yaml:"name"`
	Default  string   `json:"default" yaml:"default"`
	Capacity string   `json:"capacity,omitempty" yaml:"capacity,omitempty"` // KindWStr only
	Validate string   `json:"validate,omitempty" yaml:"validate,omitempty"`
	Line     int      `json:"line" yaml:"line"`
}

// StringValue returns the value of a string default. `\"` is the only
// escape; it stands for a quote.
func (it *Item) StringValue() string { return strings.ReplaceAll(it.Default, `\"`, `"`) }

// BadEscape reports the index of the first backslash in Default that does not
// start `\"`, or -1.
func (it *Item) BadEscape() int {
	for i := 0; i < len(it.Default); i++ {
		if it.Default[i] != '\\' {
			continue
		}
		if i+1 >= len(it.Default) || it.Default[i+1] != '"' {
			return i
		}
		i++
	}
	return -1
}

// Binding is a VALIDATE(item, callback) statement.
type Binding struct {
	Item     string `json:"item" yaml:"item"`
	Callback string `json:"callback" yaml:"callback"`
	Line     int    `json:"line" yaml:"line"`
}

// Bind attaches callback to every item named item. It reports whether any
// item matched.
func (d *Def) Bind(item, callback string) bool {
	found := false
	for _, it := range d.Items {
		if it.Name == item {
			it.Validate = callback
			found = true
		}
	}
	return found
}

// Item returns the first item called name.
func (d *Def) Item(name string) (*Item, bool) {
	for _, it := range d.Items {
		if it.Name == name {
			return it, true
		}
	}
	return nil, false
}

// HeadingsAt returns the headings placed before item i, in declaration order.
func (d *Def) HeadingsAt(i int) []string {
	var out []string
	for _, h := range d.Headings {
		if h.Index == i {
			out = append(out, h.Name)
		}
	}
	return out
}

// Def returns the def called name.
func (f *File) Def(name string) (*Def, bool) {
	for _, d := range f.Defs {
		if d.Name == name {
			return d, true
		}
	}
	return nil, false
}
