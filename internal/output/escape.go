package output

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Escape strips terminal escape sequences from s and replaces control
// characters with U+FFFD. Line breaks and tabs become spaces.
func Escape(s string) string {
	s = ansi.Strip(whitespace.Replace(s))
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return unicode.ReplacementChar
		}
		return r
	}, s)
}

var whitespace = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")
