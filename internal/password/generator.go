package password

import (
	"fmt"
	"strings"
	"unicode"

	"password-forge/internal/corpus"
	"password-forge/pkg/policy"
)

// DefaultMaxAttempts bounds the rejection-sampling retry loop. Exhausting
// it is a policy violation, not a crash: tight policies (short length,
// high minimums) can make a compliant draw arbitrarily improbable.
const DefaultMaxAttempts = 100

// Separators a Strong or Paranoid passphrase may be joined with.
var passphraseSeparators = []string{"-", "_", ".", " ", ""}

// Generator produces passwords and passphrases satisfying its policy. All
// fields are read-only after construction, so a single Generator is safe
// for concurrent use.
type Generator struct {
	pol         *policy.Policy
	lake        *CharacterLake
	words       *corpus.Corpus
	maxAttempts int
}

// Option customizes generator construction.
type Option func(*Generator)

// WithCorpus attaches a word corpus for passphrase generation. Words whose
// raw or capitalized form contains a policy-excluded character are dropped
// so passphrase output honors the same exclusions as character passwords at
// every strength.
func WithCorpus(c *corpus.Corpus) Option {
	return func(g *Generator) { g.words = c }
}

// WithMaxAttempts overrides the rejection-sampling attempt ceiling.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

// New builds a generator around the policy, defaulting it when nil. The
// policy is validated once here; generation never revalidates it.
func New(pol *policy.Policy, opts ...Option) (*Generator, error) {
	if pol == nil {
		pol = policy.Default()
	}
	if err := pol.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	g := &Generator{
		pol:         pol,
		lake:        NewCharacterLake(pol),
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.words != nil {
		// Strong and Paranoid capitalize words, so a word is only kept
		// when its capitalized form is clean too: "iris" is unexcluded
		// rune by rune, but capitalizes to "Iris" whose I is in the
		// similar-character set.
		filtered := g.words.Filter(func(word string) bool {
			return !g.containsExcluded(word) && !g.containsExcluded(capitalize(word))
		})
		if filtered.Len() == 0 {
			return nil, fmt.Errorf("%w: policy exclusions removed every corpus word", ErrConfiguration)
		}
		g.words = filtered
	}

	return g, nil
}

func (g *Generator) containsExcluded(word string) bool {
	for _, r := range word {
		if g.lake.Excluded(r) {
			return true
		}
	}
	return false
}

// Policy returns the policy the generator enforces.
func (g *Generator) Policy() *policy.Policy { return g.pol }

// Lake returns the derived character subsets.
func (g *Generator) Lake() *CharacterLake { return g.lake }

// Generate produces one password of the given category and strength.
// For character categories, length is the character count; for
// Passphrase it is the word count, bounded by the policy word bounds.
func (g *Generator) Generate(length int, category Category, strength Strength) (string, error) {
	return g.generate(length, category, strength, g.sourceFor(strength))
}

// GenerateSeeded is Generate with a caller-supplied source. Only the Basic
// strength accepts one; it exists so reproducible runs can be seeded
// explicitly. Cryptographic strengths reject it to keep their output
// non-reproducible.
func (g *Generator) GenerateSeeded(length int, category Category, strength Strength, src Source) (string, error) {
	if strength != Basic {
		return "", fmt.Errorf("%w: seeded generation is only valid at basic strength", ErrInputValidation)
	}
	return g.generate(length, category, strength, src)
}

// GenerateMultiple produces count independent passwords with identical
// parameters. The first failure aborts the batch; no partial results are
// returned.
func (g *Generator) GenerateMultiple(count, length int, category Category, strength Strength) ([]string, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInputValidation, count)
	}
	results := make([]string, 0, count)
	for i := 0; i < count; i++ {
		pw, err := g.Generate(length, category, strength)
		if err != nil {
			return nil, err
		}
		results = append(results, pw)
	}
	return results, nil
}

// sourceFor binds the randomness source once per call. Basic is the only
// strength allowed to use the fast non-cryptographic source.
func (g *Generator) sourceFor(strength Strength) Source {
	if strength == Basic {
		return newBasicSource()
	}
	return cryptoSource{}
}

func (g *Generator) generate(length int, category Category, strength Strength, src Source) (string, error) {
	switch strength {
	case Basic, Strong, Paranoid:
	default:
		return "", fmt.Errorf("%w: unknown strength %q", ErrInputValidation, strength)
	}

	if category == Passphrase {
		if length < g.pol.MinWords || length > g.pol.MaxWords {
			return "", fmt.Errorf("%w: word count must be between %d and %d, got %d",
				ErrInputValidation, g.pol.MinWords, g.pol.MaxWords, length)
		}
		return g.generatePassphrase(length, strength, src)
	}

	if length < g.pol.MinLength || length > g.pol.MaxLength {
		return "", fmt.Errorf("%w: password length must be between %d and %d, got %d",
			ErrInputValidation, g.pol.MinLength, g.pol.MaxLength, length)
	}

	alphabet, err := g.lake.AlphabetFor(category)
	if err != nil {
		return "", err
	}

	// Rejection sampling: draw uniformly over the whole alphabet and retry
	// until the candidate meets every minimum. Uniform over the alphabet
	// beats constructive placement, at the cost of a bounded retry loop.
	buf := make([]rune, length)
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		for i := range buf {
			r, err := src.Choice(alphabet)
			if err != nil {
				return "", err
			}
			buf[i] = r
		}
		candidate := string(buf)
		if g.lake.IsCompliant(candidate, category) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: no compliant password after %d attempts", ErrPolicyViolation, g.maxAttempts)
}

func (g *Generator) generatePassphrase(wordCount int, strength Strength, src Source) (string, error) {
	if g.words == nil {
		return "", fmt.Errorf("%w: passphrase generation requires a word corpus", ErrResource)
	}

	tokens := make([]string, 0, wordCount+2)
	for i := 0; i < wordCount; i++ {
		idx, err := src.Below(g.words.Len())
		if err != nil {
			return "", err
		}
		tokens = append(tokens, g.words.Word(idx))
	}

	separator := " "
	switch strength {
	case Strong:
		for i := range tokens {
			flip, err := src.Below(2)
			if err != nil {
				return "", err
			}
			if flip == 1 {
				tokens[i] = capitalize(tokens[i])
			}
		}
		digit, err := g.drawDigit(src)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, digit)
		separator, err = g.drawSeparator(src)
		if err != nil {
			return "", err
		}

	case Paranoid:
		for i := range tokens {
			tokens[i] = capitalize(tokens[i])
		}
		digit, err := g.drawDigit(src)
		if err != nil {
			return "", err
		}
		special, err := g.drawSpecial(src)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, digit, special)
		if err := src.Shuffle(tokens); err != nil {
			return "", err
		}
		separator, err = g.drawSeparator(src)
		if err != nil {
			return "", err
		}
	}

	return strings.Join(tokens, separator), nil
}

func (g *Generator) drawDigit(src Source) (string, error) {
	digits := g.lake.Digits()
	if len(digits) == 0 {
		return "", fmt.Errorf("%w: exclusions emptied the digit class required by passphrase strengthening", ErrConfiguration)
	}
	r, err := src.Choice(digits)
	if err != nil {
		return "", err
	}
	return string(r), nil
}

func (g *Generator) drawSpecial(src Source) (string, error) {
	special := g.lake.Special()
	if len(special) == 0 {
		return "", fmt.Errorf("%w: exclusions emptied the special class required by passphrase strengthening", ErrConfiguration)
	}
	r, err := src.Choice(special)
	if err != nil {
		return "", err
	}
	return string(r), nil
}

func (g *Generator) drawSeparator(src Source) (string, error) {
	i, err := src.Below(len(passphraseSeparators))
	if err != nil {
		return "", err
	}
	return passphraseSeparators[i], nil
}

// capitalize uppercases the first letter and lowercases the rest.
func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
