// Package palette holds the ANSI colour palettes behind the built-in tree
// themes.
package palette

import (
	"fmt"
	"strconv"
	"strings"
)

// SGR attribute sequences.
const (
	Reset     = "\x1b[0m"
	Bold      = "\x1b[1m"
	Dim       = "\x1b[2m"
	Italic    = "\x1b[3m"
	Underline = "\x1b[4m"
)

// Palette assigns a foreground sequence to each part of a tree line.
type Palette struct {
	Tag       string
	AttrName  string
	AttrValue string
	Punct     string
	Text      string
	Guide     string
}

// Hex returns a 24-bit foreground sequence for a "#rrggbb" colour. Malformed
// input yields an empty sequence.
func Hex(color string) string {
	color = strings.TrimPrefix(color, "#")
	if len(color) != 6 {
		return ""
	}
	v, err := strconv.ParseUint(color, 16, 32)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", v>>16&0xff, v>>8&0xff, v&0xff)
}

// PaletteDefault sticks to the 16-colour range so it works on any terminal.
var PaletteDefault = Palette{
	Tag:       "\x1b[34m",
	AttrName:  "\x1b[36m",
	AttrValue: "\x1b[32m",
	Punct:     "\x1b[90m",
	Text:      "",
	Guide:     "\x1b[90m",
}

var PaletteDracula = Palette{
	Tag:       Hex("#ff79c6"),
	AttrName:  Hex("#50fa7b"),
	AttrValue: Hex("#f1fa8c"),
	Punct:     Hex("#6272a4"),
	Text:      Hex("#f8f8f2"),
	Guide:     Hex("#44475a"),
}

var PaletteNord = Palette{
	Tag:       Hex("#81a1c1"),
	AttrName:  Hex("#8fbcbb"),
	AttrValue: Hex("#a3be8c"),
	Punct:     Hex("#4c566a"),
	Text:      Hex("#d8dee9"),
	Guide:     Hex("#434c5e"),
}

var PaletteGruvbox = Palette{
	Tag:       Hex("#fb4934"),
	AttrName:  Hex("#fabd2f"),
	AttrValue: Hex("#b8bb26"),
	Punct:     Hex("#928374"),
	Text:      Hex("#ebdbb2"),
	Guide:     Hex("#504945"),
}

var PaletteGruvboxLight = Palette{
	Tag:       Hex("#9d0006"),
	AttrName:  Hex("#b57614"),
	AttrValue: Hex("#79740e"),
	Punct:     Hex("#928374"),
	Text:      Hex("#3c3836"),
	Guide:     Hex("#d5c4a1"),
}

var PaletteTokyoNight = Palette{
	Tag:       Hex("#f7768e"),
	AttrName:  Hex("#7dcfff"),
	AttrValue: Hex("#9ece6a"),
	Punct:     Hex("#565f89"),
	Text:      Hex("#c0caf5"),
	Guide:     Hex("#3b4261"),
}

var PaletteCatppuccinMocha = Palette{
	Tag:       Hex("#cba6f7"),
	AttrName:  Hex("#89b4fa"),
	AttrValue: Hex("#a6e3a1"),
	Punct:     Hex("#6c7086"),
	Text:      Hex("#cdd6f4"),
	Guide:     Hex("#45475a"),
}

var PaletteSolarizedDark = Palette{
	Tag:       Hex("#268bd2"),
	AttrName:  Hex("#b58900"),
	AttrValue: Hex("#2aa198"),
	Punct:     Hex("#586e75"),
	Text:      Hex("#93a1a1"),
	Guide:     Hex("#073642"),
}

var PaletteSolarizedLight = Palette{
	Tag:       Hex("#268bd2"),
	AttrName:  Hex("#b58900"),
	AttrValue: Hex("#2aa198"),
	Punct:     Hex("#93a1a1"),
	Text:      Hex("#586e75"),
	Guide:     Hex("#eee8d5"),
}

var PaletteOneDark = Palette{
	Tag:       Hex("#e06c75"),
	AttrName:  Hex("#d19a66"),
	AttrValue: Hex("#98c379"),
	Punct:     Hex("#5c6370"),
	Text:      Hex("#abb2bf"),
	Guide:     Hex("#3e4451"),
}

var PaletteGithubLight = Palette{
	Tag:       Hex("#116329"),
	AttrName:  Hex("#0550ae"),
	AttrValue: Hex("#0a3069"),
	Punct:     Hex("#6e7781"),
	Text:      Hex("#24292f"),
	Guide:     Hex("#d0d7de"),
}

var PaletteRosePine = Palette{
	Tag:       Hex("#eb6f92"),
	AttrName:  Hex("#c4a7e7"),
	AttrValue: Hex("#f6c177"),
	Punct:     Hex("#6e6a86"),
	Text:      Hex("#e0def4"),
	Guide:     Hex("#403d52"),
}
