package mkconfgen

import "fmt"

// KeyTable lists the keys of one configuration record in declaration order.
// Keys holds every key concatenated; key i spans Keys[Offsets[i]:Offsets[i+1]].
// Offsets therefore has one more entry than there are keys.
type KeyTable struct {
	Keys    string
	Offsets []int
}

// NewKeyTable builds a KeyTable from key names.
func NewKeyTable(names ...string) KeyTable {
	offsets := make([]int, 0, len(names)+1)
	n := 0
	for _, name := range names {
		offsets = append(offsets, n)
		n += len(name)
	}
	offsets = append(offsets, n)
	keys := make([]byte, 0, n)
	for _, name := range names {
		keys = append(keys, name...)
	}
	return KeyTable{Keys: string(keys), Offsets: offsets}
}

// Len returns the number of keys.
func (t KeyTable) Len() int {
	if len(t.Offsets) == 0 {
		return 0
	}
	return len(t.Offsets) - 1
}

// Key returns key i.
func (t KeyTable) Key(i int) string { return t.Keys[t.Offsets[i]:t.Offsets[i+1]] }

// Index looks key up by exact length and content.
func (t KeyTable) Index(key string) (int, bool) {
	for i := 0; i < t.Len(); i++ {
		start, end := t.Offsets[i], t.Offsets[i+1]
		if end-start == len(key) && t.Keys[start:end] == key {
			return i, true
		}
	}
	return -1, false
}

// Validate checks the offsets against the key buffer.
func (t KeyTable) Validate() error {
	if len(t.Offsets) == 0 {
		if t.Keys != "" {
			return fmt.Errorf("mkconfgen: key table has %d key bytes but no offsets", len(t.Keys))
		}
		return nil
	}
	if t.Offsets[0] != 0 {
		return fmt.Errorf("mkconfgen: key table offsets must start at 0, got %d", t.Offsets[0])
	}
	for i := 1; i < len(t.Offsets); i++ {
		if t.Offsets[i] < t.Offsets[i-1] {
			return fmt.Errorf("mkconfgen: key table offset %d decreases (%d < %d)", i, t.Offsets[i], t.Offsets[i-1])
		}
	}
	if last := t.Offsets[len(t.Offsets)-1]; last != len(t.Keys) {
		return fmt.Errorf("mkconfgen: key table offsets end at %d, key buffer has %d bytes", last, len(t.Keys))
	}
	return nil
}
