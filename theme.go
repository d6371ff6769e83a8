package htree

import (
	"sort"
	"strings"

	"pkt.systems/htree/internal/palette"
)

// Style describes a terminal style as an ANSI prefix sequence.
type Style struct {
	Prefix string
}

// Styles groups the semantic styles used by the tree renderer.
type Styles struct {
	Tag       Style
	AttrName  Style
	AttrValue Style
	Punct     Style
	Text      Style
	Guide     Style
}

// Theme provides named styles for tree rendering.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition. A zero Styles renders
// plain text.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

func style(prefixes ...string) Style {
	var b strings.Builder
	for _, p := range prefixes {
		b.WriteString(p)
	}
	return Style{Prefix: b.String()}
}

func stylesFromPalette(p palette.Palette) Styles {
	return Styles{
		Tag:       style(palette.Bold, p.Tag),
		AttrName:  style(p.AttrName),
		AttrValue: style(p.AttrValue),
		Punct:     style(p.Punct),
		Text:      style(p.Text),
		Guide:     style(palette.Dim, p.Guide),
	}
}

func newBuiltin(name string, p palette.Palette) Theme {
	return theme{name: name, styles: stylesFromPalette(p)}
}

var builtinThemes = map[string]Theme{
	"default":          newBuiltin("default", palette.PaletteDefault),
	"dracula":          newBuiltin("dracula", palette.PaletteDracula),
	"nord":             newBuiltin("nord", palette.PaletteNord),
	"gruvbox":          newBuiltin("gruvbox", palette.PaletteGruvbox),
	"gruvbox-light":    newBuiltin("gruvbox-light", palette.PaletteGruvboxLight),
	"tokyo-night":      newBuiltin("tokyo-night", palette.PaletteTokyoNight),
	"catppuccin-mocha": newBuiltin("catppuccin-mocha", palette.PaletteCatppuccinMocha),
	"solarized-dark":   newBuiltin("solarized-dark", palette.PaletteSolarizedDark),
	"solarized-light":  newBuiltin("solarized-light", palette.PaletteSolarizedLight),
	"one-dark":         newBuiltin("one-dark", palette.PaletteOneDark),
	"github-light":     newBuiltin("github-light", palette.PaletteGithubLight),
	"rose-pine":        newBuiltin("rose-pine", palette.PaletteRosePine),
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return builtinThemes["default"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["default"]
}

// BoringTheme returns a theme without any ANSI styling.
func BoringTheme() Theme {
	return NewTheme("boring", Styles{})
}
