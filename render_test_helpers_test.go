package htree

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

var ansiRegexp = regexp.MustCompile("\x1b\\[[0-9;]*[A-Za-z]")
var osc8Regexp = regexp.MustCompile("\x1b\\]8;;.*?\x1b\\\\")

func stripANSI(s string) string {
	s = ansiRegexp.ReplaceAllString(s, "")
	s = osc8Regexp.ReplaceAllString(s, "")
	return s
}

func renderMarkup(t *testing.T, src string, width int, opts ...RenderOption) string {
	t.Helper()
	return renderMarkupWithTheme(t, src, width, DefaultTheme(), opts...)
}

func renderMarkupWithTheme(t *testing.T, src string, width int, theme Theme, opts ...RenderOption) string {
	t.Helper()
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader:  strings.NewReader(src),
		Writer:  &out,
		Width:   width,
		Theme:   theme,
		Options: opts,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out.String()
}

func lines(s ...string) string {
	return strings.Join(s, "\n") + "\n"
}
