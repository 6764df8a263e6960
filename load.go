package mkconfgen

import "fmt"

// Load reads `key = value` lines from cur and hands every value whose key is
// listed in keys to parse. Malformed lines are recorded in the returned
// LoadErrors and skipped. Unknown keys are ignored without error.
//
// Loading stops early only when the input ends inside a key, before a value
// or inside a quoted value; the triggering error is still recorded. The
// returned error is non-nil only when cur stopped abnormally.
func Load(cur Cursor, keys KeyTable, parse ValueParser, opts ...LoadOpt) (LoadErrors, error) {
	if parse == nil {
		return nil, fmt.Errorf("mkconfgen: nil value parser")
	}
	if err := keys.Validate(); err != nil {
		return nil, err
	}
	l := &loader{
		cur:   cur,
		keys:  keys,
		parse: parse,
		opt:   normalizeLoadOpt(opts),
		line:  1,
	}
	l.run()
	if err := cur.Err(); err != nil {
		return l.errs, fmt.Errorf("mkconfgen: read input at line %d: %w", l.line, err)
	}
	return l.errs, nil
}

type loader struct {
	cur   Cursor
	keys  KeyTable
	parse ValueParser
	opt   LoadOpt

	pending    rune
	hasPending bool

	line int
	errs LoadErrors

	key   []rune
	value []rune
}

func (l *loader) read() (rune, bool) {
	if l.hasPending {
		l.hasPending = false
		return l.pending, true
	}
	return l.cur.Next()
}

// next returns the next character with "\r\n" and "\r" folded into '\n'.
func (l *loader) next() (rune, bool) {
	r, ok := l.read()
	if !ok || r != '\r' {
		return r, ok
	}
	if n, ok := l.read(); ok && n != '\n' {
		l.pending, l.hasPending = n, true
	}
	return '\n', true
}

func (l *loader) fail(kind ErrorKind) {
	l.errs = append(l.errs, LoadError{Kind: kind, Line: l.line})
}

// skipLine consumes input through the next line break. It reports false at
// end of input.
func (l *loader) skipLine() bool {
	for {
		r, ok := l.next()
		if !ok {
			return false
		}
		if r == '\n' {
			l.line++
			return true
		}
	}
}

// endLine finishes the current line given the last character read.
func (l *loader) endLine(r rune) bool {
	if r == '\n' {
		l.line++
		return true
	}
	return l.skipLine()
}

func isBlank(r rune) bool { return r == ' ' || r == '\t' }

func isLetter(r rune) bool { return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') }

func isKeyStart(r rune) bool { return isLetter(r) || r == '_' }

func isKeyChar(r rune) bool { return isKeyStart(r) || (r >= '0' && r <= '9') }

func (l *loader) run() {
	for {
		r, ok := l.next()
		if !ok {
			return
		}
		switch {
		case isBlank(r):
			continue
		case r == '\n':
			l.line++
			continue
		case r == '#':
			if !l.skipLine() {
				return
			}
			continue
		case !isKeyStart(r):
			l.fail(KeyFormat)
			if !l.skipLine() {
				return
			}
			continue
		}
		if !l.entry(r) {
			return
		}
	}
}

// entry parses one `key = value` line starting at the first key character.
// It reports false when loading must stop.
func (l *loader) entry(r rune) bool {
	var ok bool

	l.key = append(l.key[:0], r)
	for {
		if r, ok = l.next(); !ok {
			l.fail(NoValue)
			return false
		}
		if !isKeyChar(r) {
			break
		}
		if len(l.key) >= l.opt.MaxKeyLength {
			l.fail(KeyLength)
			return l.skipLine()
		}
		l.key = append(l.key, r)
	}

	for isBlank(r) {
		if r, ok = l.next(); !ok {
			l.fail(NoValue)
			return false
		}
	}
	if r != '=' {
		if r == '#' || r == '\n' {
			l.fail(NoValue)
		} else {
			l.fail(KeyFormat)
		}
		return l.endLine(r)
	}

	if r, ok = l.next(); !ok {
		l.fail(NoValue)
		return false
	}
	for isBlank(r) {
		if r, ok = l.next(); !ok {
			l.fail(NoValue)
			return false
		}
	}
	if r == '#' || r == '\n' {
		l.fail(NoValue)
		return l.endLine(r)
	}

	if r == '"' {
		return l.quoted()
	}
	return l.raw(r)
}

func (l *loader) quoted() bool {
	l.value = l.value[:0]
	for {
		r, ok := l.next()
		if !ok {
			l.fail(ValueFormat)
			return false
		}
		switch {
		case r == '\n':
			l.fail(ValueFormat)
			l.line++
			return true
		case r == '"':
			if n := len(l.value); n > 0 && l.value[n-1] == '\\' {
				l.value[n-1] = '"'
				continue
			}
			l.dispatch(true)
			return l.skipLine()
		case len(l.value) >= l.opt.MaxValueLength:
			l.fail(ValueLength)
			return l.skipLine()
		}
		l.value = append(l.value, r)
	}
}

func (l *loader) raw(r rune) bool {
	l.value = append(l.value[:0], r)
	for {
		r, ok := l.next()
		if !ok {
			l.dispatch(false)
			return false
		}
		if isBlank(r) || r == '\n' {
			l.dispatch(false)
			return l.endLine(r)
		}
		if len(l.value) >= l.opt.MaxValueLength {
			l.fail(ValueLength)
			return l.skipLine()
		}
		l.value = append(l.value, r)
	}
}

func (l *loader) dispatch(quoted bool) {
	idx, found := l.keys.Index(string(l.key))
	if !found {
		return
	}
	if kind, ok := l.parse(idx, string(l.value), quoted); !ok {
		l.fail(kind)
	}
}
