package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/version"

	"pkt.systems/htree"
	"pkt.systems/htree/dom"
	"pkt.systems/htree/html"
	"pkt.systems/htree/internal/logging"
	"pkt.systems/htree/query"
)

const (
	defaultThemeName = "default"
	defaultWidth     = 80
	defaultFormat    = "tree"
)

func init() {
	version.SetDefaultModule("pkt.systems/htree")
}

func main() {
	var (
		format     string
		themeName  string
		widthFlag  int
		osc8Flag   string
		listThemes bool
		outPath    string
		boring     bool
		noGuides   bool
		xpathExpr  string
		maxDepth   int
		logLevel   string
		logFormat  string
		showVer    bool
	)

	flags := pflag.NewFlagSet("htree", pflag.ExitOnError)
	flags.StringVarP(&format, "format", "f", defaultFormat, "Output format: tree|markup|json|hash")
	flags.StringVarP(&themeName, "theme", "t", defaultThemeName, "Theme name")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Output width override (0 uses terminal width if available, -1 disables truncation)")
	flags.StringVarP(&osc8Flag, "osc8", "8", "auto", "OSC8 hyperlinks on href/src: auto|on|off")
	flags.BoolVar(&listThemes, "list-themes", false, "List available themes")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.BoolVarP(&boring, "boring", "b", false, "Generate non-ANSI output")
	flags.BoolVar(&noGuides, "no-guides", false, "Indent with spaces instead of box-drawing guides")
	flags.StringVarP(&xpathExpr, "xpath", "x", "", "Print only nodes (or the value) selected by an XPath expression")
	flags.IntVar(&maxDepth, "max-depth", html.DefaultMaxDepth, "Maximum element nesting depth (0 disables the limit)")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	flags.StringVar(&logFormat, "log-format", "text", "Log format: text|json")
	flags.BoolVar(&showVer, "version", false, "Print version and exit")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: htree [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nInputs are files, file:// or http(s):// URLs and are concatenated.")
		fmt.Fprintln(os.Stderr, "If no input is provided, markup is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if showVer {
		fmt.Fprintln(os.Stdout, version.Module(), version.Current())
		return
	}
	if listThemes {
		printThemes(os.Stdout)
		return
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --log-level %q: %v\n", logLevel, err)
		os.Exit(2)
	}
	logFmt, err := logging.ParseFormat(logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --log-format %q: %v\n", logFormat, err)
		os.Exit(2)
	}
	logging.InitLogger(level, logFmt, os.Stderr)

	format = strings.ToLower(strings.TrimSpace(format))
	if !validFormat(format) {
		fmt.Fprintf(os.Stderr, "invalid --format %q: expected tree|markup|json|hash\n", format)
		os.Exit(2)
	}

	theme, ok := htree.ThemeByName(themeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown theme %q\n\n", themeName)
		printThemes(os.Stderr)
		os.Exit(2)
	}
	osc8, err := resolveOSC8(osc8Flag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid --osc8 %q: %v\n", osc8Flag, err)
		os.Exit(2)
	}

	args := flags.Args()
	label := inputLabel(args)
	reader, closer, err := openInputs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open input: %v\n", err)
		os.Exit(1)
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}
	logging.InputOpened(label, "inputs", len(args))

	root, err := html.ParseReader(reader, html.WithMaxDepth(maxDepth), html.WithLogger(logging.GetLogger()))
	if err != nil {
		logging.InputFailed(label, err)
		fmt.Fprintln(os.Stderr, describeError(label, err))
		os.Exit(1)
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	if boring || (outPath != "" && !isTerminal(writer)) {
		theme = htree.BoringTheme()
	}
	if boring && osc8Flag == "on" {
		logging.Warn("osc8 hyperlinks disabled by --boring")
	}
	cfg := emitConfig{
		format: format,
		width:  resolveWidth(widthFlag),
		theme:  theme,
		options: []htree.RenderOption{
			htree.WithOSC8(osc8 && !boring),
			htree.WithGuides(!noGuides),
		},
	}

	logging.Debug("emit", "format", cfg.format, "width", cfg.width, "theme", cfg.theme.Name(), "xpath", xpathExpr)
	if xpathExpr != "" {
		err = emitQuery(writer, root, xpathExpr, cfg)
	} else {
		err = emit(writer, []*dom.Node{root}, cfg)
	}
	if err != nil {
		if errors.Is(err, query.ErrInvalidExpr) {
			fmt.Fprintf(os.Stderr, "invalid --xpath: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
}

type emitConfig struct {
	format  string
	width   int
	theme   htree.Theme
	options []htree.RenderOption
}

func validFormat(format string) bool {
	switch format {
	case "tree", "markup", "json", "hash":
		return true
	}
	return false
}

// emit writes each node in the configured format.
func emit(w io.Writer, nodes []*dom.Node, cfg emitConfig) error {
	for _, n := range nodes {
		var err error
		switch cfg.format {
		case "markup":
			if err = n.WriteMarkup(w); err == nil {
				_, err = io.WriteString(w, "\n")
			}
		case "json":
			var data []byte
			if data, err = json.Marshal(n); err == nil {
				_, err = w.Write(append(data, '\n'))
			}
		case "hash":
			_, err = fmt.Fprintln(w, dom.FingerprintHex(n))
		default:
			err = htree.RenderTree(htree.TreeRequest{
				Root:    n,
				Writer:  w,
				Width:   cfg.width,
				Theme:   cfg.theme,
				Options: cfg.options,
			})
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// emitQuery evaluates expr against root. Node sets go through emit; scalar
// results print on a single line.
func emitQuery(w io.Writer, root *dom.Node, expr string, cfg emitConfig) error {
	result, err := query.NewDocument(root).Evaluate(expr)
	if err != nil {
		return err
	}
	if nodes, ok := result.([]*dom.Node); ok {
		return emit(w, nodes, cfg)
	}
	_, err = fmt.Fprintln(w, formatScalar(result))
	return err
}

func formatScalar(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

// describeError renders parse failures as "source: line:col: message".
func describeError(label string, err error) string {
	var syntaxErr *html.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("%s: %v", label, syntaxErr)
	}
	return fmt.Sprintf("%s: %v", label, err)
}

func inputLabel(args []string) string {
	switch len(args) {
	case 0:
		return "<stdin>"
	case 1:
		return args[0]
	default:
		return strings.Join(args, "+")
	}
}

func printThemes(w io.Writer) {
	for _, name := range htree.AvailableThemes() {
		fmt.Fprintln(w, name)
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	if width < 0 {
		return 0
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

func resolveOSC8(mode string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return htree.DetectOSC8Support(), nil
	case "on", "true", "1", "yes":
		return true, nil
	case "off", "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("expected auto|on|off")
	}
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(normalizePath(path))
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
