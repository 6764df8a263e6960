package gen

import (
	"errors"
	"fmt"
	"go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	mkconfgen "github.com/zirkelkoenig/MKConfGen"
	"github.com/zirkelkoenig/MKConfGen/internal/ir"
)

// GoName converts a configuration key to an exported Go identifier:
// "max_conn" becomes "MaxConn".
func GoName(key string) string {
	var b strings.Builder
	for _, part := range strings.Split(key, "_") {
		if part == "" {
			continue
		}
		b.WriteString(upperFirst(part))
	}
	return b.String()
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}

// ValidKey reports whether name can appear as a key in a configuration file.
func ValidKey(name string) bool {
	if name == "" || len(name) > mkconfgen.MaxKeyLength {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// validCallback accepts an identifier optionally qualified by a package name.
func validCallback(name string) bool {
	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return false
	}
	for _, p := range parts {
		if !token.IsIdentifier(p) {
			return false
		}
	}
	return true
}

// Validate checks that every def and item of f maps to distinct, valid Go
// identifiers and configuration keys. All problems are reported together.
func Validate(f *ir.File) error {
	var errs []error
	types := map[string]string{}
	for _, d := range f.Defs {
		typ := upperFirst(d.Name)
		if !token.IsIdentifier(d.Name) {
			errs = append(errs, fmt.Errorf("gen: line %d: definition name %q is not a Go identifier", d.Line, d.Name))
		} else if prev, dup := types[typ]; dup {
			errs = append(errs, fmt.Errorf("gen: line %d: definition %q collides with %q", d.Line, d.Name, prev))
		} else {
			types[typ] = d.Name
		}

		keys := map[string]bool{}
		fields := map[string]string{}
		for _, it := range d.Items {
			if !ValidKey(it.Name) {
				errs = append(errs, fmt.Errorf("gen: line %d: %s.%s: invalid key (letters, digits and '_', at most %d characters)", it.Line, d.Name, it.Name, mkconfgen.MaxKeyLength))
				continue
			}
			if keys[it.Name] {
				errs = append(errs, fmt.Errorf("gen: line %d: %s.%s: duplicate item", it.Line, d.Name, it.Name))
				continue
			}
			keys[it.Name] = true
			field := GoName(it.Name)
			if !token.IsIdentifier(field) {
				errs = append(errs, fmt.Errorf("gen: line %d: %s.%s: field name %q is not a Go identifier", it.Line, d.Name, it.Name, field))
				continue
			}
			if prev, dup := fields[field]; dup {
				errs = append(errs, fmt.Errorf("gen: line %d: %s.%s: field %s collides with item %s", it.Line, d.Name, it.Name, field, prev))
				continue
			}
			fields[field] = it.Name
			if it.Validate != "" && !validCallback(it.Validate) {
				errs = append(errs, fmt.Errorf("gen: line %d: %s.%s: validator %q is not a Go identifier", it.Line, d.Name, it.Name, it.Validate))
			}
			if it.Kind == ir.KindWStr {
				errs = append(errs, checkString(d, it)...)
			}
		}
	}
	return errors.Join(errs...)
}

// checkString checks a string default against its escape rule and, when the
// capacity is an integer literal, against the capacity.
func checkString(d *ir.Def, it *ir.Item) []error {
	var errs []error
	if it.Capacity == "" {
		errs = append(errs, fmt.Errorf("gen: line %d: %s.%s: missing capacity", it.Line, d.Name, it.Name))
	}
	if i := it.BadEscape(); i >= 0 {
		errs = append(errs, fmt.Errorf("gen: line %d: %s.%s: unsupported escape at offset %d of default (only \\\" is allowed)", it.Line, d.Name, it.Name, i))
		return errs
	}
	capacity, err := strconv.ParseInt(it.Capacity, 0, 64)
	if err != nil {
		return errs
	}
	if capacity <= 0 {
		return append(errs, fmt.Errorf("gen: line %d: %s.%s: capacity %d is not positive", it.Line, d.Name, it.Name, capacity))
	}
	if n := utf8.RuneCountInString(it.StringValue()); int64(n) >= capacity {
		errs = append(errs, fmt.Errorf("gen: line %d: %s.%s: default has %d characters, capacity %d allows at most %d", it.Line, d.Name, it.Name, n, capacity, capacity-1))
	}
	return errs
}
