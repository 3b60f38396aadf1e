// Package shell interprets bookmark command lines against a storage.Store.
package shell

import "strings"

// Tokenize splits a command line on spaces. A double or single quote toggles
// quoting regardless of which kind opened it; quotes are dropped and spaces
// inside quotes are kept. Tabs are ordinary characters. Unbalanced quotes are
// not an error.
//
//	add "https://x.com" "My Site"  => ["add" "https://x.com" "My Site"]
//	a"b c"d                        => ["ab cd"]
//	"it's here"                    => ["its" "here"]
func Tokenize(line string) []string {
	tokens := []string{}
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"' || r == '\'':
			inQuotes = !inQuotes
		case r == ' ' && !inQuotes:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// JoinArgs joins arguments into a line for display, quoting those that
// contain spaces. An argument holding both a space and a double quote is
// wrapped in single quotes instead.
func JoinArgs(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		switch {
		case !strings.Contains(a, " "):
			parts[i] = a
		case strings.Contains(a, `"`):
			parts[i] = "'" + a + "'"
		default:
			parts[i] = `"` + a + `"`
		}
	}
	return strings.Join(parts, " ")
}
