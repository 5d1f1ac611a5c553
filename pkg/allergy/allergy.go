// Package allergy turns free-text allergy input into the normalized ingredient
// names that get linked to a user.
package allergy

import "strings"

// Tokenize extracts maximal runs of letters from the input, in order of first
// appearance, with duplicates removed. Digits, punctuation and separators are
// discarded outright: "peanuts, tree-nuts!" becomes [peanuts tree nuts].
func Tokenize(freeText string) []string {
	var (
		tokens  []string
		current strings.Builder
	)

	seen := make(map[string]struct{})

	flush := func() {
		if current.Len() == 0 {
			return
		}

		token := current.String()
		current.Reset()

		if _, found := seen[token]; found {
			return
		}

		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}

	for _, r := range freeText {
		if isLetter(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}

	flush()

	return tokens
}

// Restrictions renders the display form of an allergy list: comma-and-space
// joined, no leading separator.
func Restrictions(names []string) string {
	return strings.Join(names, ", ")
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
