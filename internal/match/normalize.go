package match

import (
	"strings"
	"unicode"
)

// accessorPrefixes are the leading words FoldAccessor drops.
var accessorPrefixes = []string{"get", "set", "is", "m"}

// Words splits an identifier into words, keeping their case. A separator
// ('_', '-' or ' ') ends a word, and so does a change from lower to upper
// case or the last capital of an acronym followed by a lower-case letter.
//
//	"maxHealth" -> [max Health]
//	"XMLParser" -> [XML Parser]
//	"m_speed"   -> [m speed]
func Words(s string) []string {
	var (
		words []string
		runes = []rune(s)
		start = -1
	)

	flush := func(end int) {
		if start >= 0 {
			words = append(words, string(runes[start:end]))
			start = -1
		}
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush(i)
			continue
		}
		if start >= 0 && boundary(runes, i) {
			flush(i)
		}
		if start < 0 {
			start = i
		}
	}
	flush(len(runes))

	return words
}

// Fold reduces an identifier to lower-case letters and digits, so
// "MaxHealth", "max_health" and "MAXHEALTH" fold the same.
func Fold(s string) string {
	return strings.ToLower(strings.Join(Words(s), ""))
}

// FoldAccessor is Fold without a leading accessor word: "GetCount",
// "m_count" and "count" all fold to "count". Only a whole word is dropped,
// "Settings" keeps its "set", and a lone word is never dropped.
func FoldAccessor(s string) string {
	words := Words(s)
	if len(words) > 1 {
		for _, prefix := range accessorPrefixes {
			if strings.EqualFold(words[0], prefix) {
				words = words[1:]
				break
			}
		}
	}

	return strings.ToLower(strings.Join(words, ""))
}

// boundary reports whether a new word starts at runes[i]. runes[i-1] is
// known to be part of the current word.
func boundary(runes []rune, i int) bool {
	if !unicode.IsUpper(runes[i]) {
		return false
	}
	if !unicode.IsUpper(runes[i-1]) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
