package password

import "fmt"

// Category selects which character or word universe a request draws from.
type Category uint8

const (
	// Alphanumeric draws from lowercase, uppercase and digits.
	Alphanumeric Category = iota + 1
	// Complex draws from lowercase, uppercase, digits and specials.
	Complex
	// Passphrase draws whole words from the corpus instead of characters.
	Passphrase
)

func (c Category) String() string {
	switch c {
	case Alphanumeric:
		return "alphanumeric"
	case Complex:
		return "complex"
	case Passphrase:
		return "passphrase"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// ParseCategory maps a category name to its value. Unknown names are an
// input validation error.
func ParseCategory(name string) (Category, error) {
	switch name {
	case "alphanumeric":
		return Alphanumeric, nil
	case "complex":
		return Complex, nil
	case "passphrase":
		return Passphrase, nil
	default:
		return 0, fmt.Errorf("%w: unknown category %q", ErrInputValidation, name)
	}
}

// Strength selects the randomness source and, for passphrases, the
// transformation pipeline.
type Strength uint8

const (
	// Basic uses the fast non-cryptographic source and applies no
	// passphrase transformations. Not suitable for real secrets.
	Basic Strength = iota + 1
	// Strong uses the CSPRNG; passphrases get coin-flip capitalization
	// and a trailing digit token.
	Strong
	// Paranoid uses the CSPRNG; passphrases get full capitalization, a
	// digit and a special token, and a random reordering of all tokens.
	Paranoid
)

func (s Strength) String() string {
	switch s {
	case Basic:
		return "basic"
	case Strong:
		return "strong"
	case Paranoid:
		return "paranoid"
	default:
		return fmt.Sprintf("strength(%d)", uint8(s))
	}
}

// ParseStrength maps a strength name to its value. Unknown names are an
// input validation error.
func ParseStrength(name string) (Strength, error) {
	switch name {
	case "basic":
		return Basic, nil
	case "strong":
		return Strong, nil
	case "paranoid":
		return Paranoid, nil
	default:
		return 0, fmt.Errorf("%w: unknown strength %q", ErrInputValidation, name)
	}
}
