// Package numeral converts between integers and the numbering systems used
// by classical transcriptions: Roman numerals (chapter and letter headers)
// and spelled-out English ordinals (book headers such as "BOOK TWELVE").
package numeral

import (
	"fmt"
	"strings"
)

// romanValue pairs a numeral token with its integer value. The table is
// ordered for greedy longest-match scanning, with subtractive forms (CM, XC,
// IX, ...) listed ahead of the plain letters they prefix.
type romanValue struct {
	token string
	value int
}

var romanValues = []romanValue{
	{"M", 1000}, {"CM", 900}, {"D", 500}, {"CD", 400},
	{"C", 100}, {"XC", 90}, {"L", 50}, {"XL", 40},
	{"X", 10}, {"IX", 9}, {"V", 5}, {"IV", 4}, {"I", 1},
}

// FromRoman converts a Roman numeral string to an integer using greedy
// left-to-right matching against the value table. Characters outside the
// Roman alphabet stop the scan; an empty or unparseable string yields 0.
func FromRoman(s string) int {
	result := 0
	i := 0
	for _, rv := range romanValues {
		for strings.HasPrefix(s[i:], rv.token) {
			result += rv.value
			i += len(rv.token)
		}
	}
	return result
}

// ToRoman converts a positive integer to its canonical Roman numeral.
// Non-positive values yield an empty string.
func ToRoman(n int) string {
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			b.WriteString(rv.token)
			n -= rv.value
		}
	}
	return b.String()
}

// IsRoman reports whether every character of s belongs to the Roman numeral
// alphabet. It does not check that s is canonically formed.
func IsRoman(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch r {
		case 'I', 'V', 'X', 'L', 'C', 'D', 'M':
		default:
			return false
		}
	}
	return true
}

// ordinalWords maps the spelled-out book numbers used by the Meditations
// transcription to their values.
var ordinalWords = map[string]int{
	"ONE": 1, "TWO": 2, "THREE": 3, "FOUR": 4, "FIVE": 5, "SIX": 6,
	"SEVEN": 7, "EIGHT": 8, "NINE": 9, "TEN": 10, "ELEVEN": 11, "TWELVE": 12,
}

// FromOrdinalWord converts an upper-case spelled ordinal ("ONE".."TWELVE")
// to its integer value. The second return value reports whether the word is
// in the supported range.
func FromOrdinalWord(s string) (int, bool) {
	n, ok := ordinalWords[s]
	return n, ok
}

// ToOrdinalWord converts an integer in 1..12 to its upper-case spelled
// ordinal. Values outside the range return an error.
func ToOrdinalWord(n int) (string, error) {
	for word, v := range ordinalWords {
		if v == n {
			return word, nil
		}
	}
	return "", fmt.Errorf("no ordinal word for %d", n)
}
