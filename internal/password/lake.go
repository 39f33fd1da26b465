package password

import (
	"fmt"
	"strings"
	"unicode"

	"password-forge/pkg/policy"
)

// Canonical ASCII classes before policy exclusions are applied.
const (
	canonicalLower   = "abcdefghijklmnopqrstuvwxyz"
	canonicalUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	canonicalDigits  = "0123456789"
	canonicalSpecial = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	// Visually ambiguous characters removed when the policy excludes
	// similar-looking glyphs.
	similarChars = "l1IoO0"
)

// CharacterLake holds the policy-filtered character subsets the generator
// draws from and validates against. Built once per generator, never mutated
// afterward, so concurrent reads need no locking.
type CharacterLake struct {
	pol *policy.Policy

	lower   []rune
	upper   []rune
	digits  []rune
	special []rune
}

// NewCharacterLake derives the four character subsets from the policy.
// Subsets are rebuilt in full from the canonical classes; exclusions never
// mutate an existing lake.
func NewCharacterLake(pol *policy.Policy) *CharacterLake {
	if pol == nil {
		pol = policy.Default()
	}

	excluded := pol.ExcludeChars
	if pol.SimilarExcluded() {
		excluded += similarChars
	}

	return &CharacterLake{
		pol:     pol,
		lower:   filterClass(canonicalLower, excluded, unicode.ToLower),
		upper:   filterClass(canonicalUpper, excluded, unicode.ToUpper),
		digits:  filterClass(canonicalDigits, excluded, nil),
		special: filterClass(canonicalSpecial, excluded, nil),
	}
}

// filterClass removes excluded characters from a canonical class. When a
// case mapping is given, exclusions apply case-insensitively so that
// excluding "a" also removes "A" from the uppercase class.
func filterClass(class, excluded string, caseMap func(rune) rune) []rune {
	drop := make(map[rune]struct{}, len(excluded))
	for _, r := range excluded {
		if caseMap != nil {
			r = caseMap(r)
		}
		drop[r] = struct{}{}
	}

	out := make([]rune, 0, len(class))
	for _, r := range class {
		if _, skip := drop[r]; !skip {
			out = append(out, r)
		}
	}
	return out
}

// Digits returns the allowed digit characters.
func (cl *CharacterLake) Digits() []rune { return cl.digits }

// Special returns the allowed special characters.
func (cl *CharacterLake) Special() []rune { return cl.special }

// AlphabetFor returns the draw alphabet for a category. It fails with a
// configuration error when exclusions have emptied a class the category
// needs; drawing from an empty class would otherwise loop to exhaustion
// without ever producing a compliant candidate.
func (cl *CharacterLake) AlphabetFor(category Category) ([]rune, error) {
	type class struct {
		name  string
		runes []rune
	}

	var classes []class
	switch category {
	case Alphanumeric:
		classes = []class{{"lowercase", cl.lower}, {"uppercase", cl.upper}, {"digit", cl.digits}}
	case Complex:
		classes = []class{{"lowercase", cl.lower}, {"uppercase", cl.upper}, {"digit", cl.digits}, {"special", cl.special}}
	case Passphrase:
		classes = []class{{"lowercase", cl.lower}, {"uppercase", cl.upper}}
	default:
		return nil, fmt.Errorf("%w: unknown category %q", ErrInputValidation, category)
	}

	alphabet := make([]rune, 0, 96)
	for _, class := range classes {
		if len(class.runes) == 0 {
			return nil, fmt.Errorf("%w: exclusions emptied the %s class required by category %s",
				ErrConfiguration, class.name, category)
		}
		alphabet = append(alphabet, class.runes...)
	}
	return alphabet, nil
}

// IsCompliant reports whether candidate satisfies every policy minimum for
// the category. Character categories also check the policy length bounds;
// passphrase candidates are bounded by word count before generation, so
// only the upper/lower minimums apply to the joined string.
func (cl *CharacterLake) IsCompliant(candidate string, category Category) bool {
	if category != Passphrase {
		n := len([]rune(candidate))
		if n < cl.pol.MinLength || n > cl.pol.MaxLength {
			return false
		}
	}

	var digitCount, specialCount, upperCount, lowerCount int
	for _, r := range candidate {
		switch {
		case containsRune(cl.digits, r):
			digitCount++
		case containsRune(cl.special, r):
			specialCount++
		case containsRune(cl.upper, r):
			upperCount++
		case containsRune(cl.lower, r):
			lowerCount++
		}
	}

	switch category {
	case Alphanumeric:
		return digitCount >= cl.pol.MinDigits &&
			upperCount >= cl.pol.MinUpper &&
			lowerCount >= cl.pol.MinLower
	case Complex:
		return digitCount >= cl.pol.MinDigits &&
			specialCount >= cl.pol.MinSpecial &&
			upperCount >= cl.pol.MinUpper &&
			lowerCount >= cl.pol.MinLower
	case Passphrase:
		return upperCount >= cl.pol.MinUpper &&
			lowerCount >= cl.pol.MinLower
	default:
		return false
	}
}

// Excluded reports whether the character is banned by the policy, either
// explicitly or via the similar-character rule.
func (cl *CharacterLake) Excluded(r rune) bool {
	if strings.ContainsRune(cl.pol.ExcludeChars, r) {
		return true
	}
	return cl.pol.SimilarExcluded() && strings.ContainsRune(similarChars, r)
}

func containsRune(set []rune, r rune) bool {
	for _, c := range set {
		if c == r {
			return true
		}
	}
	return false
}
