package dsl

import (
	"errors"
	"fmt"
)

// SyntaxError reports the first malformed construct of a schema source.
// Parsing never continues past it.
type SyntaxError struct {
	Line int    `json:"line" yaml:"line"`
	Col  int    `json:"col" yaml:"col"`
	Msg  string `json:"msg" yaml:"msg"`
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("dsl: %d:%d: %s", e.Line, e.Col, e.Msg)
}

// AsSyntaxError extracts a *SyntaxError from err using errors.As.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
