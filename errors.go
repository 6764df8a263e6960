package mkconfgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zirkelkoenig/MKConfGen/i18n"
)

// ErrorKind classifies a recoverable configuration load failure.
type ErrorKind int

const (
	Undefined     ErrorKind = iota // Dispatch index without a matching item.
	KeyFormat                      // The key is malformed.
	KeyLength                      // The key is too long.
	NoValue                        // The line contains a key but no value.
	ValueFormat                    // The value is malformed.
	ValueLength                    // The value is too long.
	ValueType                      // The value has the wrong type.
	ValueOverflow                  // The number is out of range or the string exceeds its capacity.
	ValueInvalid                   // The value was rejected by its validator.
)

var kindNames = [...]string{
	Undefined:     "UNDEFINED",
	KeyFormat:     "KEY_FORMAT",
	KeyLength:     "KEY_LENGTH",
	NoValue:       "NO_VALUE",
	ValueFormat:   "VALUE_FORMAT",
	ValueLength:   "VALUE_LENGTH",
	ValueType:     "VALUE_TYPE",
	ValueOverflow: "VALUE_OVERFLOW",
	ValueInvalid:  "VALUE_INVALID",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name.
func (k ErrorKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("mkconfgen: invalid error kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText decodes a kind name as produced by MarshalText.
func (k *ErrorKind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = ErrorKind(i)
			return nil
		}
	}
	return fmt.Errorf("mkconfgen: unknown error kind %q", b)
}

// LoadError describes one rejected line.
type LoadError struct {
	Kind ErrorKind `json:"kind" yaml:"kind"`
	Line int       `json:"line" yaml:"line"` // 1-based logical line.
}

// Message returns the localized description of the error kind.
func (e LoadError) Message() string { return i18n.T(e.Kind.String(), nil) }

func (e LoadError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message())
}

// LoadErrors is the list of errors produced by one Load call, in line order.
type LoadErrors []LoadError

// Error summarizes the first few errors.
func (errs LoadErrors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(errs), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at line %d", errs[i].Kind, errs[i].Line)
	}
	if len(errs) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(errs))
	}
	return b.String()
}

// Count returns the number of errors of the given kind.
func (errs LoadErrors) Count(kind ErrorKind) int {
	n := 0
	for _, e := range errs {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// AsLoadErrors extracts LoadErrors from an error using errors.As.
func AsLoadErrors(err error) (LoadErrors, bool) {
	if err == nil {
		return nil, false
	}
	var errs LoadErrors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}
