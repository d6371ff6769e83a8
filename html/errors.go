package html

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnexpectedEOF reports input that ended where more was required.
	ErrUnexpectedEOF = errors.New("unexpected end of input")
	// ErrUnexpectedChar reports a required literal that was not present.
	ErrUnexpectedChar = errors.New("unexpected character")
	// ErrTagMismatch reports a closing tag that does not match its opening tag.
	ErrTagMismatch = errors.New("mismatched closing tag")
	// ErrEmptyTagName reports a missing tag name.
	ErrEmptyTagName = errors.New("empty tag name")
	// ErrTooDeep reports element nesting beyond the configured limit.
	ErrTooDeep = errors.New("elements nested too deeply")
	// ErrInvalidUTF8 reports invalid UTF-8 input.
	ErrInvalidUTF8 = errors.New("invalid utf-8 input")
	// ErrBinaryInput reports input that appears to be binary.
	ErrBinaryInput = errors.New("binary input detected")
)

// ErrorKind classifies a SyntaxError.
type ErrorKind int

const (
	// UnexpectedEndOfInput: a character was required but input was exhausted.
	UnexpectedEndOfInput ErrorKind = iota + 1
	// UnexpectedCharacter: a required literal was expected, another was found.
	UnexpectedCharacter
	// TagMismatch: the closing tag name differs from the opening tag name.
	TagMismatch
	// EmptyTagName: a required tag name was empty.
	EmptyTagName
	// NestingTooDeep: element nesting exceeded the configured limit.
	NestingTooDeep
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case UnexpectedCharacter:
		return "UnexpectedCharacter"
	case TagMismatch:
		return "TagMismatch"
	case EmptyTagName:
		return "EmptyTagName"
	case NestingTooDeep:
		return "NestingTooDeep"
	default:
		return "UnknownError"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case UnexpectedEndOfInput:
		return ErrUnexpectedEOF
	case UnexpectedCharacter:
		return ErrUnexpectedChar
	case TagMismatch:
		return ErrTagMismatch
	case EmptyTagName:
		return ErrEmptyTagName
	case NestingTooDeep:
		return ErrTooDeep
	default:
		return nil
	}
}

// Location is a cursor position in the input.
type Location struct {
	Line int // 1-indexed line number
	Col  int // 1-indexed column, counted in runes
	Pos  int // 0-indexed byte offset
}

// String returns line:col.
func (loc Location) String() string {
	return fmt.Sprintf("%d:%d", loc.Line, loc.Col)
}

func locate(input string, pos int) Location {
	if pos > len(input) {
		pos = len(input)
	}
	before := input[:pos]
	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	col := utf8.RuneCountInString(before[lineStart:]) + 1
	return Location{Line: line, Col: col, Pos: pos}
}

// SyntaxError is returned for every structural violation. Parsing stops at
// the first one and no tree is returned.
type SyntaxError struct {
	Kind     ErrorKind
	Loc      Location
	Expected string // what the grammar required, if known
	Found    string // what was present, if anything
}

func (e *SyntaxError) Error() string {
	msg := e.Kind.sentinel()
	if msg == nil {
		msg = errors.New(e.Kind.String())
	}
	var b strings.Builder
	b.WriteString(e.Loc.String())
	b.WriteString(": ")
	b.WriteString(msg.Error())
	switch {
	case e.Expected != "" && e.Found != "":
		fmt.Fprintf(&b, ": expected %s, found %s", e.Expected, e.Found)
	case e.Expected != "":
		fmt.Fprintf(&b, ": expected %s", e.Expected)
	case e.Found != "":
		fmt.Fprintf(&b, ": found %s", e.Found)
	}
	return b.String()
}

// Unwrap returns the sentinel matching Kind, so errors.Is works with
// ErrTagMismatch and friends.
func (e *SyntaxError) Unwrap() error {
	return e.Kind.sentinel()
}
