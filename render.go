package htree

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"sync"

	"pkt.systems/htree/dom"
	"pkt.systems/htree/html"
	"pkt.systems/htree/internal/palette"
)

const (
	guideBranch = "├── "
	guideLast   = "└── "
	guidePipe   = "│   "
	guideBlank  = "    "
	guideWidth  = 4
	indentWidth = 2
)

var treeWriterPool = sync.Pool{
	New: func() any {
		return &treeWriter{w: bufio.NewWriterSize(nil, 4096)}
	},
}

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Width   int
	Theme   Theme
	Options []RenderOption
}

// TreeRequest configures RenderTree.
type TreeRequest struct {
	Root    *dom.Node
	Writer  io.Writer
	Width   int
	Theme   Theme
	Options []RenderOption
}

// Render reads markup from a stream, parses it and writes the tree dump.
// Input is validated as UTF-8 text before parsing.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	cfg := resolveRenderConfig(req.Options)
	root, err := html.ParseReader(req.Reader, cfg.parse...)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return RenderTree(TreeRequest{
		Root:    root,
		Writer:  req.Writer,
		Width:   req.Width,
		Theme:   req.Theme,
		Options: req.Options,
	})
}

// RenderTree writes one line per node of req.Root. Elements print as their
// start tag with attributes in name order, text nodes as Go-quoted strings.
// A positive Width truncates text lines so they fit.
func RenderTree(req TreeRequest) error {
	if req.Root == nil {
		return fmt.Errorf("render: root is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	theme := req.Theme
	if theme == nil {
		theme = DefaultTheme()
	}
	tw := treeWriterPool.Get().(*treeWriter)
	tw.reset(req.Writer, req.Width, theme.Styles(), resolveRenderConfig(req.Options))
	err := tw.render(req.Root)
	tw.reset(io.Discard, 0, Styles{}, renderConfig{})
	treeWriterPool.Put(tw)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

type treeFrame struct {
	node *dom.Node
	next int
}

type treeWriter struct {
	w      *bufio.Writer
	width  int
	styles Styles
	cfg    renderConfig
	stack  []treeFrame
	// last[i] records whether the ancestor at depth i+1 is its parent's last child.
	last []bool
	line []byte
}

func (tw *treeWriter) reset(w io.Writer, width int, styles Styles, cfg renderConfig) {
	tw.w.Reset(w)
	tw.width = width
	tw.styles = styles
	tw.cfg = cfg
	tw.stack = tw.stack[:0]
	tw.last = tw.last[:0]
	tw.line = tw.line[:0]
}

func (tw *treeWriter) render(root *dom.Node) error {
	if err := tw.writeLine(root, 0); err != nil {
		return err
	}
	tw.stack = append(tw.stack, treeFrame{node: root})
	for len(tw.stack) > 0 {
		top := &tw.stack[len(tw.stack)-1]
		if top.next >= len(top.node.Children) {
			tw.stack = tw.stack[:len(tw.stack)-1]
			continue
		}
		child := top.node.Children[top.next]
		top.next++
		depth := len(tw.stack)
		tw.last = append(tw.last[:depth-1], top.next == len(top.node.Children))
		if err := tw.writeLine(child, depth); err != nil {
			return err
		}
		if len(child.Children) > 0 {
			tw.stack = append(tw.stack, treeFrame{node: child})
		}
	}
	return tw.w.Flush()
}

func (tw *treeWriter) writeLine(n *dom.Node, depth int) error {
	tw.line = tw.line[:0]
	prefixWidth := tw.appendPrefix(depth)
	switch {
	case n.IsElement():
		tw.appendElement(n.Element)
	case n.IsText():
		text := strconv.Quote(n.Text)
		if tw.width > 0 {
			text = truncateWithEllipsis(text, max(tw.width-prefixWidth, 1))
		}
		tw.appendStyled(tw.styles.Text, text)
	default:
		return fmt.Errorf("invalid node type %v at depth %d", n.Type, depth)
	}
	tw.line = append(tw.line, '\n')
	_, err := tw.w.Write(tw.line)
	return err
}

func (tw *treeWriter) appendPrefix(depth int) int {
	if depth == 0 {
		return 0
	}
	if tw.cfg.noGuides {
		for i := 0; i < depth; i++ {
			tw.line = append(tw.line, "  "...)
		}
		return depth * indentWidth
	}
	guide := tw.styles.Guide.Prefix
	tw.line = append(tw.line, guide...)
	for i := 0; i < depth-1; i++ {
		if tw.last[i] {
			tw.line = append(tw.line, guideBlank...)
		} else {
			tw.line = append(tw.line, guidePipe...)
		}
	}
	if tw.last[depth-1] {
		tw.line = append(tw.line, guideLast...)
	} else {
		tw.line = append(tw.line, guideBranch...)
	}
	if guide != "" {
		tw.line = append(tw.line, palette.Reset...)
	}
	return depth * guideWidth
}

func (tw *treeWriter) appendElement(el *dom.ElementData) {
	tw.appendStyled(tw.styles.Punct, "<")
	tw.appendStyled(tw.styles.Tag, el.TagName)
	for _, name := range el.Attributes.SortedNames() {
		value := el.Attributes[name]
		quote, err := dom.QuoteValue(value)
		if err != nil {
			quote = '"'
		}
		tw.line = append(tw.line, ' ')
		tw.appendStyled(tw.styles.AttrName, name)
		tw.appendStyled(tw.styles.Punct, "=")
		shown := value
		if tw.cfg.osc8 && linkAttribute(name) {
			shown = hyperlink(value, value)
		}
		q := string(quote)
		tw.appendStyled(tw.styles.AttrValue, q+shown+q)
	}
	tw.appendStyled(tw.styles.Punct, ">")
}

func (tw *treeWriter) appendStyled(st Style, s string) {
	if st.Prefix == "" {
		tw.line = append(tw.line, s...)
		return
	}
	tw.line = append(tw.line, st.Prefix...)
	tw.line = append(tw.line, s...)
	tw.line = append(tw.line, palette.Reset...)
}
