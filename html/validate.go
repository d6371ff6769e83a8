package html

import (
	"fmt"
	"unicode/utf8"
)

const (
	minBinarySample = 64
	maxControlPct   = 2
)

// ValidateInput returns an error if src is not valid UTF-8 or appears to be
// binary. Errors wrap ErrInvalidUTF8 or ErrBinaryInput and carry the
// location of the offending byte.
func ValidateInput(src []byte) error {
	var total, control int
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size == 1 {
			return fmt.Errorf("%s: %w", locate(string(src[:i]), i), ErrInvalidUTF8)
		}
		total++
		if r == 0 {
			return fmt.Errorf("%s: %w", locate(string(src[:i]), i), ErrBinaryInput)
		}
		if isControlRune(r) {
			control++
		}
		i += size
	}
	if total >= minBinarySample && control*100 >= total*maxControlPct {
		return ErrBinaryInput
	}
	return nil
}

func isControlRune(r rune) bool {
	if r == '\n' || r == '\r' || r == '\t' {
		return false
	}
	if r < 0x20 || r == 0x7F {
		return true
	}
	return false
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
