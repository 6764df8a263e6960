package mkconfgen_test

import (
	"testing"

	mkconfgen "github.com/zirkelkoenig/MKConfGen"
)

func TestParseInt(t *testing.T) {
	cases := []struct {
		raw    string
		quoted bool
		want   int64
		kind   mkconfgen.ErrorKind
		ok     bool
	}{
		{"42", false, 42, 0, true},
		{"-17", false, -17, 0, true},
		{"0x1f", false, 31, 0, true},
		{"0b101", false, 5, 0, true},
		{"42", true, 0, mkconfgen.ValueType, false},
		{"4 2", false, 0, mkconfgen.ValueType, false},
		{"", false, 0, mkconfgen.ValueType, false},
		{"9223372036854775807", false, 1<<63 - 1, 0, true},
		{"-9223372036854775808", false, -1 << 63, 0, true},
		{"9223372036854775808", false, 0, mkconfgen.ValueOverflow, false},
		{"-9223372036854775809", false, 0, mkconfgen.ValueOverflow, false},
	}
	for _, tc := range cases {
		v, kind, ok := mkconfgen.ParseInt(tc.raw, tc.quoted)
		if v != tc.want || kind != tc.kind || ok != tc.ok {
			t.Fatalf("ParseInt(%q, %v) = %d, %v, %v", tc.raw, tc.quoted, v, kind, ok)
		}
	}
}

func TestParseUint(t *testing.T) {
	if v, _, ok := mkconfgen.ParseUint("18446744073709551615", false); !ok || v != 1<<64-1 {
		t.Fatalf("max uint64 rejected: %d %v", v, ok)
	}
	if _, kind, _ := mkconfgen.ParseUint("18446744073709551616", false); kind != mkconfgen.ValueOverflow {
		t.Fatalf("expected overflow, got %v", kind)
	}
	if _, kind, _ := mkconfgen.ParseUint("-1", false); kind != mkconfgen.ValueType {
		t.Fatalf("expected type error for negative input, got %v", kind)
	}
	if _, kind, _ := mkconfgen.ParseUint("1", true); kind != mkconfgen.ValueType {
		t.Fatalf("expected type error for quoted input, got %v", kind)
	}
}

func TestParseFloat(t *testing.T) {
	if v, _, ok := mkconfgen.ParseFloat("2.5e-1", false); !ok || v != 0.25 {
		t.Fatalf("got %v %v", v, ok)
	}
	for _, raw := range []string{"1e400", "-1e400", "inf", "-Inf"} {
		if _, kind, ok := mkconfgen.ParseFloat(raw, false); ok || kind != mkconfgen.ValueOverflow {
			t.Fatalf("%q: expected overflow, got %v %v", raw, kind, ok)
		}
	}
	if _, kind, _ := mkconfgen.ParseFloat("1.5", true); kind != mkconfgen.ValueType {
		t.Fatalf("expected type error for quoted input, got %v", kind)
	}
	if _, kind, _ := mkconfgen.ParseFloat("1.5.2", false); kind != mkconfgen.ValueType {
		t.Fatalf("expected type error, got %v", kind)
	}
}

func TestParseWStr(t *testing.T) {
	if v, _, ok := mkconfgen.ParseWStr("ab", true, 3); !ok || v != "ab" {
		t.Fatalf("got %q %v", v, ok)
	}
	// capacity counts characters, not bytes
	if _, _, ok := mkconfgen.ParseWStr("日本", true, 3); !ok {
		t.Fatalf("two characters must fit capacity 3")
	}
	if _, kind, _ := mkconfgen.ParseWStr("abc", true, 3); kind != mkconfgen.ValueOverflow {
		t.Fatalf("expected overflow at capacity, got %v", kind)
	}
	if _, kind, _ := mkconfgen.ParseWStr("abc", false, 8); kind != mkconfgen.ValueType {
		t.Fatalf("expected type error for bare input, got %v", kind)
	}
}

func TestCheck(t *testing.T) {
	positive := func(v int64) bool { return v > 0 }
	if _, ok := mkconfgen.Check(int64(1), positive); !ok {
		t.Fatalf("valid value rejected")
	}
	if kind, ok := mkconfgen.Check(int64(0), positive); ok || kind != mkconfgen.ValueInvalid {
		t.Fatalf("expected VALUE_INVALID, got %v %v", kind, ok)
	}
	if _, ok := mkconfgen.Check[int64](0, nil); !ok {
		t.Fatalf("nil validator must accept")
	}
}
