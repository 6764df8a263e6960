package mkconfgen_test

import (
	"testing"

	mkconfgen "github.com/zirkelkoenig/MKConfGen"
)

func TestFields_ParseValueDispatch(t *testing.T) {
	var s server
	fs := serverFields(&s)
	fs.Init()

	if kind, ok := fs.ParseValue(0, "30", false); !ok {
		t.Fatalf("uint rejected: %v", kind)
	}
	if kind, ok := fs.ParseValue(1, "hi", true); !ok {
		t.Fatalf("wstr rejected: %v", kind)
	}
	if kind, ok := fs.ParseValue(2, "0", false); ok || kind != mkconfgen.ValueInvalid {
		t.Fatalf("validator not applied: %v %v", kind, ok)
	}
	if kind, ok := fs.ParseValue(3, "0.75", false); !ok {
		t.Fatalf("float rejected: %v", kind)
	}
	if kind, ok := fs.ParseValue(4, "1", false); ok || kind != mkconfgen.Undefined {
		t.Fatalf("out of range index: %v %v", kind, ok)
	}
	if s.Timeout != 30 || s.Name != "hi" || s.Count != 1 || s.Ratio != 0.75 {
		t.Fatalf("unexpected record %+v", s)
	}
}

func TestFields_ValidatorScenario(t *testing.T) {
	var count int64
	fs := mkconfgen.Fields{&mkconfgen.IntField{Name: "count", Dst: &count, Default: 5, Validate: func(v int64) bool { return v != 0 }}}
	fs.Init()

	errs, _ := fs.Load(mkconfgen.NewStringCursor("count = 0\n"))
	if len(errs) != 1 || errs[0].Kind != mkconfgen.ValueInvalid || count != 5 {
		t.Fatalf("count = 0: errs=%v count=%d", errs, count)
	}
	errs, _ = fs.Load(mkconfgen.NewStringCursor("count = 1\n"))
	if len(errs) != 0 || count != 1 {
		t.Fatalf("count = 1: errs=%v count=%d", errs, count)
	}
}

func TestFields_KeyTableOrder(t *testing.T) {
	var s server
	kt := serverFields(&s).KeyTable()
	if kt.Keys != "timeoutnamecountratio" || kt.Len() != 4 {
		t.Fatalf("unexpected key table %+v", kt)
	}
}
