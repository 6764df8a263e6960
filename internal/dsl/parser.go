// Package dsl parses mkconfgen schema sources into the ir model.
//
// A schema is a sequence of MKCONFGEN_ tokens following free text (the head):
//
//	MKCONFGEN_FILE_BEGIN
//	MKCONFGEN_DEF_BEGIN(Server)
//	    MKCONFGEN_HEADING(Network)
//	    MKCONFGEN_ITEM_UINT(port, 8080)
//	    MKCONFGEN_ITEM_WSTR(host, 64, L"localhost")
//	    MKCONFGEN_VALIDATE(port, validatePort)
//	MKCONFGEN_DEF_END
//	MKCONFGEN_FILE_END
//
// The parser is a set of state functions; each consumes one construct and
// returns the next state. The first error stops parsing.
package dsl

import (
	"fmt"
	"io"
	"strings"

	mkconfgen "github.com/zirkelkoenig/MKConfGen"
	"github.com/zirkelkoenig/MKConfGen/internal/ir"
)

const (
	tokenPrefix    = "MKCONFGEN_"
	tokenFileBegin = tokenPrefix + "FILE_BEGIN"

	kwFileEnd   = "FILE_END"
	kwDefBegin  = "DEF_BEGIN"
	kwDefEnd    = "DEF_END"
	kwHeading   = "HEADING"
	kwItemInt   = "ITEM_INT"
	kwItemUint  = "ITEM_UINT"
	kwItemFloat = "ITEM_FLOAT"
	kwItemWStr  = "ITEM_WSTR"
	kwValidate  = "VALIDATE"
)

// Parse reads a schema from cur. A failing cursor is reported as a wrapped
// read error rather than a syntax error.
func Parse(cur mkconfgen.Cursor) (*ir.File, error) {
	p := &parser{cur: cur, line: 1, col: 1, file: &ir.File{}}
	for state := stateHead; state != nil; {
		state = state(p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("dsl: read schema: %w", err)
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.file, nil
}

// ParseString parses a schema held in memory.
func ParseString(src string) (*ir.File, error) { return Parse(mkconfgen.NewStringCursor(src)) }

// ParseReader parses a UTF-8 schema stream.
func ParseReader(r io.Reader) (*ir.File, error) { return Parse(mkconfgen.NewReaderCursor(r)) }

type stateFn func(*parser) stateFn

type parser struct {
	cur mkconfgen.Cursor

	// one folded character of lookahead plus one raw character held back
	// while folding "\r\n"
	peekR   rune
	peekOK  bool
	hasPeek bool
	rawR    rune
	hasRaw  bool

	line, col int

	file *ir.File
	def  *ir.Def
	err  error
}

func (p *parser) read() (rune, bool) {
	if p.hasRaw {
		p.hasRaw = false
		return p.rawR, true
	}
	return p.cur.Next()
}

func (p *parser) fold() (rune, bool) {
	r, ok := p.read()
	if !ok || r != '\r' {
		return r, ok
	}
	if n, ok := p.read(); ok && n != '\n' {
		p.rawR, p.hasRaw = n, true
	}
	return '\n', true
}

func (p *parser) peek() (rune, bool) {
	if !p.hasPeek {
		p.peekR, p.peekOK = p.fold()
		p.hasPeek = true
	}
	return p.peekR, p.peekOK
}

func (p *parser) next() (rune, bool) {
	r, ok := p.peek()
	if !ok {
		return 0, false
	}
	p.hasPeek = false
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
	return r, true
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' }

func (p *parser) skipSpace() {
	for {
		r, ok := p.peek()
		if !ok || !isSpace(r) {
			return
		}
		p.next()
	}
}

func (p *parser) errorf(format string, args ...any) stateFn {
	p.err = &SyntaxError{Line: p.line, Col: p.col, Msg: fmt.Sprintf(format, args...)}
	return nil
}

func (p *parser) errorAt(line, col int, format string, args ...any) stateFn {
	p.err = &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
	return nil
}

// stateHead collects free text up to and including MKCONFGEN_FILE_BEGIN.
func stateHead(p *parser) stateFn {
	var head strings.Builder
	for {
		r, ok := p.next()
		if !ok {
			return p.errorf("missing %s", tokenFileBegin)
		}
		head.WriteRune(r)
		if r == 'N' && strings.HasSuffix(head.String(), tokenFileBegin) {
			break
		}
	}
	if r, ok := p.peek(); !ok || !isSpace(r) {
		return p.errorf("%s must be followed by white space", tokenFileBegin)
	}
	text := head.String()
	p.file.Head = strings.TrimSpace(text[:len(text)-len(tokenFileBegin)])
	return stateFile
}

// keyword reads MKCONFGEN_<NAME> and returns NAME. ok is false after an error.
func (p *parser) keyword() (kw string, line, col int, ok bool) {
	p.skipSpace()
	line, col = p.line, p.col
	if _, more := p.peek(); !more {
		p.errorf("unexpected end of input, expected %s token", tokenPrefix)
		return "", line, col, false
	}
	for i := 0; i < len(tokenPrefix); i++ {
		r, more := p.next()
		if !more || r != rune(tokenPrefix[i]) {
			p.errorAt(line, col, "expected %s token", tokenPrefix)
			return "", line, col, false
		}
	}
	var b strings.Builder
	for {
		r, more := p.peek()
		if !more || !(r == '_' || (r >= 'A' && r <= 'Z')) {
			break
		}
		b.WriteRune(r)
		p.next()
	}
	return b.String(), line, col, true
}

func stateFile(p *parser) stateFn {
	kw, line, col, ok := p.keyword()
	if !ok {
		return nil
	}
	switch kw {
	case kwFileEnd:
		return nil
	case kwDefBegin:
		return stateDefBegin
	}
	return p.errorAt(line, col, "unexpected %s%s outside of a definition", tokenPrefix, kw)
}

func stateDefBegin(p *parser) stateFn {
	line := p.line
	if !p.expect('(') {
		return nil
	}
	name, ok := p.bare(')', "definition name")
	if !ok || !p.expect(')') {
		return nil
	}
	p.def = &ir.Def{Name: name, Line: line}
	p.file.Defs = append(p.file.Defs, p.def)
	return stateDef
}

func stateDef(p *parser) stateFn {
	kw, line, col, ok := p.keyword()
	if !ok {
		return nil
	}
	switch kw {
	case kwHeading:
		return stateHeading
	case kwItemInt:
		return stateItem(ir.KindInt, line)
	case kwItemUint:
		return stateItem(ir.KindUint, line)
	case kwItemFloat:
		return stateItem(ir.KindFloat, line)
	case kwItemWStr:
		return stateWStr(line)
	case kwValidate:
		return stateValidate(line)
	case kwDefEnd:
		if r, more := p.peek(); !more || !isSpace(r) {
			return p.errorf("%s%s must be followed by white space", tokenPrefix, kwDefEnd)
		}
		p.def = nil
		return stateFile
	}
	return p.errorAt(line, col, "unexpected %s%s inside definition %s", tokenPrefix, kw, p.def.Name)
}

func stateHeading(p *parser) stateFn {
	if !p.expect('(') {
		return nil
	}
	var (
		name string
		ok   bool
	)
	p.skipSpace()
	if r, more := p.peek(); more && r == '"' {
		name, ok = p.quoted(false)
	} else {
		name, ok = p.bare(')', "heading")
	}
	if !ok || !p.expect(')') {
		return nil
	}
	p.def.Headings = append(p.def.Headings, ir.Heading{Index: len(p.def.Items), Name: name})
	return stateDef
}

func stateItem(kind ir.ItemKind, line int) stateFn {
	return func(p *parser) stateFn {
		if !p.expect('(') {
			return nil
		}
		name, ok := p.bare(',', "item name")
		if !ok || !p.expect(',') {
			return nil
		}
		def, ok := p.bare(')', "default value")
		if !ok || !p.expect(')') {
			return nil
		}
		p.def.Items = append(p.def.Items, &ir.Item{Kind: kind, Name: name, Default: def, Line: line})
		return stateDef
	}
}

func stateWStr(line int) stateFn {
	return func(p *parser) stateFn {
		if !p.expect('(') {
			return nil
		}
		name, ok := p.bare(',', "item name")
		if !ok || !p.expect(',') {
			return nil
		}
		capacity, ok := p.bare(',', "capacity")
		if !ok || !p.expect(',') {
			return nil
		}
		p.skipSpace()
		def, ok := p.quoted(true)
		if !ok || !p.expect(')') {
			return nil
		}
		p.def.Items = append(p.def.Items, &ir.Item{Kind: ir.KindWStr, Name: name, Default: def, Capacity: capacity, Line: line})
		return stateDef
	}
}

// stateValidate binds a callback to earlier items of the same name. A binding
// without a matching item is recorded in Def.Unbound and otherwise ignored.
func stateValidate(line int) stateFn {
	return func(p *parser) stateFn {
		if !p.expect('(') {
			return nil
		}
		item, ok := p.bare(',', "item name")
		if !ok || !p.expect(',') {
			return nil
		}
		callback, ok := p.bare(')', "callback name")
		if !ok || !p.expect(')') {
			return nil
		}
		if !p.def.Bind(item, callback) {
			p.def.Unbound = append(p.def.Unbound, ir.Binding{Item: item, Callback: callback, Line: line})
		}
		return stateDef
	}
}

func (p *parser) expect(want rune) bool {
	p.skipSpace()
	r, ok := p.peek()
	if !ok {
		p.errorf("unexpected end of input, expected %q", want)
		return false
	}
	if r != want {
		p.errorf("expected %q, found %q", want, r)
		return false
	}
	p.next()
	return true
}

// bare reads a token ending at white space or delim.
func (p *parser) bare(delim rune, what string) (string, bool) {
	p.skipSpace()
	var b strings.Builder
	for {
		r, ok := p.peek()
		if !ok {
			p.errorf("unexpected end of input in %s", what)
			return "", false
		}
		if isSpace(r) || r == delim {
			break
		}
		b.WriteRune(r)
		p.next()
	}
	if b.Len() == 0 {
		p.errorf("empty %s", what)
		return "", false
	}
	return b.String(), true
}

// quoted reads "..." (optionally L"..." when wide is set) and returns the
// content verbatim. The closing quote is the first one not preceded by a
// backslash.
func (p *parser) quoted(wide bool) (string, bool) {
	if r, ok := p.peek(); ok && wide && r == 'L' {
		p.next()
	}
	if r, ok := p.peek(); !ok || r != '"' {
		if !ok {
			p.errorf("unexpected end of input, expected string")
		} else {
			p.errorf("expected string, found %q", r)
		}
		return "", false
	}
	line, col := p.line, p.col
	p.next()
	var b strings.Builder
	var prev rune
	for {
		r, ok := p.next()
		if !ok {
			p.errorAt(line, col, "unterminated string")
			return "", false
		}
		if r == '\n' {
			p.errorAt(line, col, "newline in string")
			return "", false
		}
		if r == '"' && prev != '\\' {
			return b.String(), true
		}
		b.WriteRune(r)
		prev = r
	}
}
