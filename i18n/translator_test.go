package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("KEY_FORMAT", nil); msg != "malformed key" {
		t.Fatalf("expected english message, got %q", msg)
	}

	SetLanguage("ja")
	defer SetLanguage("en")
	if msg := T("KEY_FORMAT", nil); msg == "malformed key" || msg == "KEY_FORMAT" {
		t.Fatalf("expected japanese message, got %q", msg)
	}
}

func TestTranslator_Placeholders(t *testing.T) {
	got := T("unbound_validator", map[string]string{"callback": "checkPort", "item": "prot"})
	if got != "validator checkPort names unknown item prot" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if got := T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("expected code fallback, got %q", got)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if got := T("NO_VALUE", nil); got != "X:NO_VALUE" {
		t.Fatalf("custom translator not used: %q", got)
	}
}
