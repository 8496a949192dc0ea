// Package textnorm holds the Hebrew letter rules used by the letter-reveal
// puzzle: vocalization stripping and final-form letter equivalence.
package textnorm

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// vocalization matches the combining marks of the Hebrew block (cantillation,
// nikud, dagesh, shin/sin dots). Hebrew punctuation in the same block is kept.
var vocalization = runes.Predicate(func(r rune) bool {
	return r >= 0x0591 && r <= 0x05C7 && unicode.Is(unicode.Mn, r)
})

var finalForms = map[rune]rune{
	'ך': 'כ',
	'ם': 'מ',
	'ן': 'נ',
	'ף': 'פ',
	'ץ': 'צ',
}

// Alphabet is the 22 standard Hebrew letters, in order.
var Alphabet = []rune("אבגדהוזחטיכלמנסעפצקרשת")

// StripDiacritics decomposes s and removes Hebrew vocalization marks.
func StripDiacritics(s string) string {
	// Chains keep state, so one is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(vocalization), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// LetterClass maps a final-form letter to its standard form. Every other rune
// maps to itself.
func LetterClass(r rune) rune {
	if std, ok := finalForms[r]; ok {
		return std
	}
	return r
}

// IsLetter reports whether r is a Hebrew letter, standard or final form.
func IsLetter(r rune) bool {
	return r >= 'א' && r <= 'ת'
}

// Letters returns the runes of the stripped word.
func Letters(word string) []rune {
	return []rune(StripDiacritics(word))
}

// Classes returns the distinct letter classes of the stripped word.
func Classes(word string) map[rune]struct{} {
	set := make(map[rune]struct{})
	for _, r := range Letters(word) {
		set[LetterClass(r)] = struct{}{}
	}
	return set
}
