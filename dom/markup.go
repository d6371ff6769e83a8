package dom

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// ErrUnquotableValue reports an attribute value containing both quote
// characters, which the markup grammar cannot express.
var ErrUnquotableValue = errors.New("attribute value contains both quote characters")

// SortedNames returns the attribute names in lexical order.
func (m AttrMap) SortedNames() []string {
	return slices.Sorted(maps.Keys(m))
}

// QuoteValue returns the quote character used to serialize value: '"' unless
// value contains one, then '\''.
func QuoteValue(value string) (byte, error) {
	hasDouble := strings.IndexByte(value, '"') >= 0
	hasSingle := strings.IndexByte(value, '\'') >= 0
	switch {
	case hasDouble && hasSingle:
		return 0, ErrUnquotableValue
	case hasDouble:
		return '\'', nil
	default:
		return '"', nil
	}
}

// WriteMarkup serializes n as markup. Text is written verbatim; there is no
// entity encoding. Trees produced by html.Parse parse back into an equal
// tree. Hand-built trees may not: leading whitespace in text, text holding
// '<', adjacent text nodes and non-alphanumeric names do not survive a
// reparse.
func (n *Node) WriteMarkup(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := writeNode(bw, n, false); err != nil {
		return err
	}
	return bw.Flush()
}

// Markup returns n serialized as markup. Unquotable attribute values are
// replaced by an empty value; use WriteMarkup to detect them.
func (n *Node) Markup() string {
	var b strings.Builder
	bw := bufio.NewWriter(&b)
	_ = writeNode(bw, n, true)
	_ = bw.Flush()
	return b.String()
}

func writeNode(w *bufio.Writer, n *Node, lenient bool) error {
	if n == nil {
		return nil
	}
	switch n.Type {
	case TextNode:
		_, err := w.WriteString(n.Text)
		return err
	case ElementNode:
	default:
		return fmt.Errorf("markup: invalid node type %s", n.Type)
	}
	tag := n.TagName()
	w.WriteByte('<')
	w.WriteString(tag)
	for _, name := range n.Element.Attributes.SortedNames() {
		value := n.Element.Attributes[name]
		quote, err := QuoteValue(value)
		if err != nil {
			if !lenient {
				return fmt.Errorf("markup: <%s %s>: %w", tag, name, err)
			}
			quote, value = '"', ""
		}
		w.WriteByte(' ')
		w.WriteString(name)
		w.WriteByte('=')
		w.WriteByte(quote)
		w.WriteString(value)
		w.WriteByte(quote)
	}
	w.WriteByte('>')
	for _, child := range n.Children {
		if err := writeNode(w, child, lenient); err != nil {
			return err
		}
	}
	w.WriteString("</")
	w.WriteString(tag)
	_, err := w.WriteString(">")
	return err
}
