package mkconfgen

import (
	"errors"
	"math"
	"strconv"
	"unicode/utf8"
)

// Standard value parsers. Generated dispatchers call these before the item's
// validator; a false result carries the error kind to record.

// ParseInt converts a bare signed integer token. Base prefixes are honored.
func ParseInt(raw string, quoted bool) (int64, ErrorKind, bool) {
	if quoted {
		return 0, ValueType, false
	}
	v, err := strconv.ParseInt(raw, 0, 64)
	if err != nil {
		return 0, numErrKind(err), false
	}
	return v, 0, true
}

// ParseUint converts a bare unsigned integer token. Base prefixes are honored.
func ParseUint(raw string, quoted bool) (uint64, ErrorKind, bool) {
	if quoted {
		return 0, ValueType, false
	}
	v, err := strconv.ParseUint(raw, 0, 64)
	if err != nil {
		return 0, numErrKind(err), false
	}
	return v, 0, true
}

// ParseFloat converts a bare floating point token. Infinite results are
// treated as overflow.
func ParseFloat(raw string, quoted bool) (float64, ErrorKind, bool) {
	if quoted {
		return 0, ValueType, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, numErrKind(err), false
	}
	if math.IsInf(v, 0) {
		return 0, ValueOverflow, false
	}
	return v, 0, true
}

// ParseWStr accepts a quoted string holding fewer than capacity characters.
func ParseWStr(raw string, quoted bool, capacity int) (string, ErrorKind, bool) {
	if !quoted {
		return "", ValueType, false
	}
	if utf8.RuneCountInString(raw) >= capacity {
		return "", ValueOverflow, false
	}
	return raw, 0, true
}

func numErrKind(err error) ErrorKind {
	if errors.Is(err, strconv.ErrRange) {
		return ValueOverflow
	}
	return ValueType
}

// Check applies an optional validator to a parsed value.
func Check[T any](v T, validate func(T) bool) (ErrorKind, bool) {
	if validate != nil && !validate(v) {
		return ValueInvalid, false
	}
	return 0, true
}
