package html

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"pkt.systems/htree/dom"
)

// rootTagName names the element synthesized when the document does not have
// exactly one top-level node.
const rootTagName = "html"

var parserPool = sync.Pool{
	New: func() any {
		return &parser{}
	},
}

// parser is a single-use cursor over an immutable input. It only moves
// forward and needs one rune of lookahead.
type parser struct {
	input    string
	pos      int
	depth    int
	maxDepth int

	nodes   int
	deepest int
}

func (p *parser) reset(input string, maxDepth int) {
	*p = parser{input: input, maxDepth: maxDepth}
}

// Parse parses markup and returns the root of the tree. When the input holds
// exactly one top-level node that node is the root; otherwise the top-level
// nodes are wrapped in a synthetic <html> element.
//
// Any structural violation aborts the parse and returns a *SyntaxError; no
// partial tree is returned.
func Parse(input string, opts ...Option) (*dom.Node, error) {
	cfg := resolveConfig(opts)
	start := time.Now()

	p := parserPool.Get().(*parser)
	p.reset(input, cfg.maxDepth)
	root, err := p.parseDocument()
	nodes, deepest := p.nodes, p.deepest
	p.reset("", 0)
	parserPool.Put(p)

	if err != nil {
		if cfg.logger.Enabled(context.Background(), slog.LevelDebug) {
			args := []any{"bytes", len(input), "error", err}
			var syntaxErr *SyntaxError
			if errors.As(err, &syntaxErr) {
				args = append(args, "kind", syntaxErr.Kind.String(), "loc", syntaxErr.Loc.String())
			}
			cfg.logger.Debug("parse failed", args...)
		}
		return nil, err
	}
	if cfg.logger.Enabled(context.Background(), slog.LevelDebug) {
		cfg.logger.Debug("parse complete",
			"bytes", len(input),
			"nodes", nodes,
			"depth", deepest,
			"duration", time.Since(start),
		)
	}
	return root, nil
}

// ParseBytes validates src with ValidateInput, drops a leading byte order
// mark and parses the rest.
func ParseBytes(src []byte, opts ...Option) (*dom.Node, error) {
	if err := ValidateInput(src); err != nil {
		return nil, err
	}
	return Parse(string(trimBOM(src)), opts...)
}

// ParseReader reads r to the end and parses it with ParseBytes.
func ParseReader(r io.Reader, opts ...Option) (*dom.Node, error) {
	if r == nil {
		return nil, fmt.Errorf("parse: reader is nil")
	}
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse: read: %w", err)
	}
	return ParseBytes(src, opts...)
}

func (p *parser) parseDocument() (*dom.Node, error) {
	nodes, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	// A closing tag with nothing open ends the document; whatever follows it
	// is not read.
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return dom.Elem(rootTagName, dom.AttrMap{}, nodes), nil
}

// parseNodes parses siblings until end of input or a closing tag.
func (p *parser) parseNodes() ([]*dom.Node, error) {
	var nodes []*dom.Node
	for {
		p.skipSpace()
		if p.eof() || p.startsWith("</") {
			break
		}
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func (p *parser) parseNode() (*dom.Node, error) {
	if r, ok := p.peek(); ok && r == '<' {
		return p.parseElement()
	}
	return p.parseText(), nil
}

func (p *parser) parseText() *dom.Node {
	p.nodes++
	return dom.Text(p.consumeWhile(isTextRune))
}

func (p *parser) parseElement() (*dom.Node, error) {
	if err := p.expect('<'); err != nil {
		return nil, err
	}
	tagName := p.tagName()
	if tagName == "" {
		return nil, p.missingName("tag name")
	}
	attrs, err := p.parseAttributes()
	if err != nil {
		return nil, err
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}

	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return nil, p.fail(NestingTooDeep,
			fmt.Sprintf("at most %d nested elements", p.maxDepth),
			strconv.Quote("<"+tagName+">"))
	}
	if p.depth > p.deepest {
		p.deepest = p.depth
	}
	children, err := p.parseNodes()
	p.depth--
	if err != nil {
		return nil, err
	}

	if err := p.expect('<'); err != nil {
		return nil, err
	}
	if err := p.expect('/'); err != nil {
		return nil, err
	}
	closeAt := p.pos
	closing := p.tagName()
	if closing != tagName {
		if closing == "" && p.eof() {
			return nil, p.fail(UnexpectedEndOfInput, strconv.Quote(tagName), "")
		}
		return nil, p.failAt(closeAt, TagMismatch, strconv.Quote(tagName), strconv.Quote(closing))
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}

	p.nodes++
	return dom.Elem(tagName, attrs, children), nil
}

// parseAttributes parses whitespace separated name="value" pairs up to, but
// not including, the closing '>'. Later duplicates overwrite earlier ones.
func (p *parser) parseAttributes() (dom.AttrMap, error) {
	attrs := dom.AttrMap{}
	for {
		p.skipSpace()
		r, ok := p.peek()
		if !ok {
			return nil, p.fail(UnexpectedEndOfInput, quoteRune('>'), "")
		}
		if r == '>' {
			return attrs, nil
		}
		name, value, err := p.parseAttr()
		if err != nil {
			return nil, err
		}
		attrs[name] = value
	}
}

func (p *parser) parseAttr() (string, string, error) {
	// An empty name is allowed; a non-name character fails at the '=' check.
	name := p.tagName()
	if err := p.expect('='); err != nil {
		return "", "", err
	}
	value, err := p.parseAttrValue()
	if err != nil {
		return "", "", err
	}
	return name, value, nil
}

// parseAttrValue parses a value quoted with either ' or ". The opening quote
// is also the terminator; there are no escapes.
func (p *parser) parseAttrValue() (string, error) {
	r, ok := p.peek()
	if !ok {
		return "", p.fail(UnexpectedEndOfInput, "quoted value", "")
	}
	if r != '"' && r != '\'' {
		return "", p.fail(UnexpectedCharacter, "quoted value", quoteRune(r))
	}
	open := p.next()
	value := p.consumeWhile(func(c rune) bool { return c != open })
	if err := p.expect(open); err != nil {
		return "", err
	}
	return value, nil
}

func (p *parser) tagName() string {
	return p.consumeWhile(isNameRune)
}

func (p *parser) skipSpace() {
	p.consumeWhile(unicode.IsSpace)
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

// peek returns the rune at the cursor; ok is false at end of input.
func (p *parser) peek() (rune, bool) {
	if p.eof() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(p.input[p.pos:])
	return r, true
}

func (p *parser) startsWith(s string) bool {
	return strings.HasPrefix(p.input[p.pos:], s)
}

// next consumes one rune. The caller checks eof first.
func (p *parser) next() rune {
	r, size := utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += size
	return r
}

// consumeWhile consumes the longest run of runes satisfying test and returns
// it as a slice of the input.
func (p *parser) consumeWhile(test func(rune) bool) string {
	start := p.pos
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !test(r) {
			break
		}
		p.pos += size
	}
	return p.input[start:p.pos]
}

func (p *parser) expect(want rune) error {
	r, ok := p.peek()
	if !ok {
		return p.fail(UnexpectedEndOfInput, quoteRune(want), "")
	}
	if r != want {
		return p.fail(UnexpectedCharacter, quoteRune(want), quoteRune(r))
	}
	p.next()
	return nil
}

func (p *parser) missingName(what string) error {
	r, ok := p.peek()
	if !ok {
		return p.fail(UnexpectedEndOfInput, what, "")
	}
	return p.fail(EmptyTagName, what, quoteRune(r))
}

func (p *parser) fail(kind ErrorKind, expected, found string) error {
	return p.failAt(p.pos, kind, expected, found)
}

func (p *parser) failAt(pos int, kind ErrorKind, expected, found string) error {
	return &SyntaxError{
		Kind:     kind,
		Loc:      locate(p.input, pos),
		Expected: expected,
		Found:    found,
	}
}

func isNameRune(r rune) bool {
	return r < utf8.RuneSelf && ('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
}

func isTextRune(r rune) bool {
	return r != '<'
}

func quoteRune(r rune) string {
	return strconv.QuoteRune(r)
}
