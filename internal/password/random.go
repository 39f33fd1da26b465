package password

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mathrand "math/rand"
	"time"
)

// Source is the randomness capability the generator draws from. One
// implementation is bound per Generate call based on strength; the two are
// never mixed within a single call.
type Source interface {
	// Below returns a uniform integer in [0, n). n must be positive.
	Below(n int) (int, error)
	// Choice returns a uniform element of alphabet.
	Choice(alphabet []rune) (rune, error)
	// Shuffle permutes tokens in place with a uniform permutation.
	Shuffle(tokens []string) error
}

// cryptoSource reads from the operating system CSPRNG. Default for every
// strength except Basic.
type cryptoSource struct{}

func (cryptoSource) Below(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("below: bound must be positive, got %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to draw secure random index: %w", err)
	}
	return int(v.Int64()), nil
}

func (s cryptoSource) Choice(alphabet []rune) (rune, error) {
	i, err := s.Below(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[i], nil
}

func (s cryptoSource) Shuffle(tokens []string) error {
	// Fisher-Yates over the CSPRNG.
	for i := len(tokens) - 1; i > 0; i-- {
		j, err := s.Below(i + 1)
		if err != nil {
			return err
		}
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}
	return nil
}

// basicSource is a fast PRNG bound to the Basic strength. NOT suitable for
// secrets: its output is fully reproducible from the seed.
type basicSource struct {
	rng *mathrand.Rand
}

// NewBasicSource returns the fast non-cryptographic source seeded with the
// given value. Identical seeds produce identical draw sequences, which is
// the documented contract of Basic strength.
func NewBasicSource(seed int64) Source {
	return &basicSource{rng: mathrand.New(mathrand.NewSource(seed))}
}

func newBasicSource() Source {
	return NewBasicSource(time.Now().UnixNano())
}

func (b *basicSource) Below(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("below: bound must be positive, got %d", n)
	}
	return b.rng.Intn(n), nil
}

func (b *basicSource) Choice(alphabet []rune) (rune, error) {
	i, err := b.Below(len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[i], nil
}

func (b *basicSource) Shuffle(tokens []string) error {
	b.rng.Shuffle(len(tokens), func(i, j int) {
		tokens[i], tokens[j] = tokens[j], tokens[i]
	})
	return nil
}
