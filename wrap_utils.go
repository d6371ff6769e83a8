package htree

import (
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

const ellipsis = "…"

// truncateWithEllipsis shortens text to at most limit printable cells. Text
// that already fits is returned unchanged.
func truncateWithEllipsis(text string, limit int) string {
	if ansi.PrintableRuneWidth(text) <= limit {
		return text
	}
	if limit <= 1 {
		return ellipsis
	}
	return truncate.StringWithTail(text, uint(limit), ellipsis)
}
