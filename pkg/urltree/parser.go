package urltree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vango-dev/outlet/pkg/routepath"
)

// Parse errors. A *ParseError returned by Parse wraps one of these.
var (
	ErrUnterminatedGroup  = errors.New("unterminated outlet group")
	ErrEmptySegmentParams = errors.New("matrix parameters without a path segment")
	ErrInvalidEscape      = errors.New("invalid percent escape")
	ErrForbiddenChar      = errors.New("forbidden character")
	ErrUnexpectedChar     = errors.New("unexpected character")
	ErrDuplicateOutlet    = errors.New("duplicate outlet")
)

// ParseError describes a malformed navigation string.
type ParseError struct {
	// Input is the string that failed to parse.
	Input string

	// Offset is the byte offset in Input where parsing failed.
	Offset int

	// Err is one of the sentinel parse errors.
	Err error

	// Detail optionally names the offending token.
	Detail string
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("parse %q: %v at offset %d (%s)", e.Input, e.Err, e.Offset, e.Detail)
	}
	return fmt.Sprintf("parse %q: %v at offset %d", e.Input, e.Err, e.Offset)
}

// Unwrap returns the sentinel error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses a navigation string into a URL tree.
func Parse(input string) (*URLTree, error) {
	if off, err := routepath.CheckChars(input); err != nil {
		sentinel := ErrForbiddenChar
		if errors.Is(err, routepath.ErrInvalidPercentEscape) {
			sentinel = ErrInvalidEscape
		}
		return nil, &ParseError{Input: input, Offset: off, Err: sentinel}
	}

	p := &parser{input: input}

	root, err := p.parseRoot()
	if err != nil {
		return nil, err
	}
	query, err := p.parseQuery()
	if err != nil {
		return nil, err
	}
	fragment, err := p.parseFragment()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.fail(ErrUnexpectedChar, string(p.input[p.pos]))
	}

	return &URLTree{root: root, queryParams: query, fragment: fragment}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// static tables.
func MustParse(input string) *URLTree {
	t, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	input string
	pos   int
}

func (p *parser) fail(err error, detail string) *ParseError {
	return &ParseError{Input: p.input, Offset: p.pos, Err: err, Detail: detail}
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek(c byte) bool {
	return p.pos < len(p.input) && p.input[p.pos] == c
}

func (p *parser) peekStr(s string) bool {
	return strings.HasPrefix(p.input[p.pos:], s)
}

// atRunEnd reports whether the current position ends a segment run.
func (p *parser) atRunEnd() bool {
	return p.atEnd() || p.peek('?') || p.peek('#') || p.peek(')')
}

// scan returns the longest prefix at pos made of bytes not in stop,
// without consuming it.
func (p *parser) scan(stop string) string {
	rest := p.input[p.pos:]
	if i := strings.IndexAny(rest, stop); i >= 0 {
		return rest[:i]
	}
	return rest
}

const (
	pathStop  = "/()?;=&#"
	paramStop = "/()?;=&#"
	queryStop = "&#"
)

func (p *parser) decode(raw string, at int) (string, error) {
	s, err := routepath.Decode(raw)
	if err != nil {
		return "", &ParseError{Input: p.input, Offset: at, Err: ErrInvalidEscape}
	}
	return s, nil
}

func (p *parser) parseRoot() (*SegmentGroup, error) {
	if p.peek('/') {
		p.pos++
	}
	if p.atEnd() || p.peek('?') || p.peek('#') {
		return EmptyGroup(), nil
	}

	children, err := p.parseChildren()
	if err != nil {
		return nil, err
	}
	return NewGroup(nil, children...), nil
}

// parseChildren parses a segment run with its nested and sibling groups,
// returning the outlets they form at the current level.
func (p *parser) parseChildren() ([]Child, error) {
	var segments []Segment
	if !p.peek('(') {
		seg, err := p.parseSegment()
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)

		for p.peek('/') && !p.peekStr("//") && !p.peekStr("/(") {
			p.pos++
			if p.atRunEnd() {
				break
			}
			seg, err := p.parseSegment()
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)
		}
	}

	var nested []Child
	if p.peekStr("/(") {
		p.pos++
		var err error
		if nested, err = p.parseParens(); err != nil {
			return nil, err
		}
	}

	var out []Child
	if len(segments) > 0 || len(nested) > 0 {
		out = append(out, Child{Outlet: PrimaryOutlet, Group: NewGroup(segments, nested...)})
	}

	if p.peek('(') {
		at := p.pos
		siblings, err := p.parseParens()
		if err != nil {
			return nil, err
		}
		for _, s := range siblings {
			if containsOutlet(out, s.Outlet) {
				return nil, &ParseError{Input: p.input, Offset: at, Err: ErrDuplicateOutlet, Detail: s.Outlet}
			}
			out = append(out, s)
		}
	}

	return out, nil
}

func (p *parser) parseSegment() (Segment, error) {
	start := p.pos
	raw := p.scan(pathStop)
	if raw == "" {
		if p.peek(';') {
			return Segment{}, p.fail(ErrEmptySegmentParams, "")
		}
		if p.atEnd() {
			return Segment{}, p.fail(ErrUnexpectedChar, "end of input")
		}
		return Segment{}, p.fail(ErrUnexpectedChar, string(p.input[p.pos]))
	}
	p.pos += len(raw)

	path, err := p.decode(raw, start)
	if err != nil {
		return Segment{}, err
	}

	var params Params
	for p.peek(';') {
		p.pos++
		keyAt := p.pos
		rawKey := p.scan(paramStop)
		if rawKey == "" {
			return Segment{}, p.fail(ErrUnexpectedChar, "empty matrix parameter name")
		}
		p.pos += len(rawKey)

		var rawValue string
		valueAt := p.pos
		if p.peek('=') {
			p.pos++
			valueAt = p.pos
			rawValue = p.scan(paramStop)
			p.pos += len(rawValue)
		}

		key, err := p.decode(rawKey, keyAt)
		if err != nil {
			return Segment{}, err
		}
		value, err := p.decode(rawValue, valueAt)
		if err != nil {
			return Segment{}, err
		}
		if params == nil {
			params = make(Params)
		}
		params[key] = value
	}

	return Segment{Path: path, Params: params}, nil
}

// parseParens parses "(outlet:group//outlet:group)" starting at '('.
func (p *parser) parseParens() ([]Child, error) {
	open := p.pos
	p.pos++

	var out []Child
	for {
		if p.atEnd() {
			return nil, &ParseError{Input: p.input, Offset: open, Err: ErrUnterminatedGroup}
		}
		if p.peek(')') {
			p.pos++
			break
		}

		outlet := PrimaryOutlet
		nameAt := p.pos
		if raw := p.scan(pathStop); strings.Contains(raw, ":") {
			rawName, _, _ := strings.Cut(raw, ":")
			if rawName == "" {
				return nil, p.fail(ErrUnexpectedChar, "empty outlet name")
			}
			name, err := p.decode(rawName, nameAt)
			if err != nil {
				return nil, err
			}
			outlet = name
			p.pos += len(rawName) + 1
		}

		children, err := p.parseChildren()
		if err != nil {
			return nil, err
		}
		if containsOutlet(out, outlet) {
			return nil, &ParseError{Input: p.input, Offset: nameAt, Err: ErrDuplicateOutlet, Detail: outlet}
		}
		out = append(out, Child{Outlet: outlet, Group: collapse(children)})

		switch {
		case p.peekStr("//"):
			p.pos += 2
		case p.peek(')'):
		case p.atEnd():
			return nil, &ParseError{Input: p.input, Offset: open, Err: ErrUnterminatedGroup}
		default:
			return nil, p.fail(ErrUnexpectedChar, string(p.input[p.pos]))
		}
	}

	if len(out) == 0 {
		return nil, &ParseError{Input: p.input, Offset: open, Err: ErrUnexpectedChar, Detail: "empty outlet group"}
	}
	return out, nil
}

// collapse turns the outlets parsed inside one parenthesized entry into the
// group stored under that entry's outlet name.
func collapse(children []Child) *SegmentGroup {
	if len(children) == 1 && children[0].Outlet == PrimaryOutlet {
		return children[0].Group
	}
	return NewGroup(nil, children...)
}

func containsOutlet(children []Child, outlet string) bool {
	for _, c := range children {
		if c.Outlet == outlet {
			return true
		}
	}
	return false
}

// parseQuery parses "?k=v&k2=v2". Repeated keys keep the last value.
func (p *parser) parseQuery() (Params, error) {
	params := make(Params)
	if !p.peek('?') {
		return params, nil
	}
	p.pos++

	for !p.atEnd() && !p.peek('#') {
		at := p.pos
		raw := p.scan(queryStop)
		p.pos += len(raw)
		if p.peek('&') {
			p.pos++
		}
		if raw == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(raw, "=")
		if rawKey == "" {
			continue
		}
		key, err := p.decode(rawKey, at)
		if err != nil {
			return nil, err
		}
		value, err := p.decode(rawValue, at+len(rawKey)+1)
		if err != nil {
			return nil, err
		}
		params[key] = value
	}
	return params, nil
}

func (p *parser) parseFragment() (string, error) {
	if !p.peek('#') {
		return "", nil
	}
	p.pos++
	at := p.pos
	raw := p.input[p.pos:]
	p.pos = len(p.input)
	return p.decode(raw, at)
}
