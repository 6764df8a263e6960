package mkconfgen_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	mkconfgen "github.com/zirkelkoenig/MKConfGen"
)

func TestNewKeyTable_Layout(t *testing.T) {
	kt := mkconfgen.NewKeyTable("timeout", "name", "x")
	want := mkconfgen.KeyTable{Keys: "timeoutnamex", Offsets: []int{0, 7, 11, 12}}
	if diff := cmp.Diff(want, kt); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}
	if kt.Len() != 3 || kt.Key(1) != "name" {
		t.Fatalf("Len=%d Key(1)=%q", kt.Len(), kt.Key(1))
	}
	if err := kt.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestKeyTable_IndexExactMatch(t *testing.T) {
	kt := mkconfgen.NewKeyTable("ab", "abc", "b")
	for key, want := range map[string]int{"ab": 0, "abc": 1, "b": 2} {
		if got, ok := kt.Index(key); !ok || got != want {
			t.Fatalf("Index(%q) = %d, %v", key, got, ok)
		}
	}
	for _, key := range []string{"a", "abcd", "bc", ""} {
		if _, ok := kt.Index(key); ok {
			t.Fatalf("Index(%q) unexpectedly matched", key)
		}
	}
}

func TestKeyTable_Validate(t *testing.T) {
	bad := []mkconfgen.KeyTable{
		{Keys: "ab"},
		{Keys: "ab", Offsets: []int{1, 2}},
		{Keys: "ab", Offsets: []int{0, 2, 1}},
		{Keys: "abc", Offsets: []int{0, 2}},
	}
	for _, kt := range bad {
		if err := kt.Validate(); err == nil {
			t.Fatalf("expected error for %+v", kt)
		}
	}
	var empty mkconfgen.KeyTable
	if err := empty.Validate(); err != nil || empty.Len() != 0 {
		t.Fatalf("empty table: len=%d err=%v", empty.Len(), err)
	}
}
