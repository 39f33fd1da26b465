package policy

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EmbeddedPolicyYAML holds build-time injected YAML. Empty when not provided.
// Set via: -ldflags "-X 'password-forge/pkg/policy.EmbeddedPolicyYAML=...'"
var EmbeddedPolicyYAML string

// Default bounds applied when a field is absent from the policy definition.
const (
	DefaultMinLength  = 12
	DefaultMaxLength  = 128
	DefaultMinDigits  = 2
	DefaultMinSpecial = 2
	DefaultMinUpper   = 1
	DefaultMinLower   = 1
	DefaultMinWords   = 3
	DefaultMaxWords   = 20
)

// Policy describes the composition constraints a generated password must satisfy.
// Instances are immutable after construction; the generator only reads them.
type Policy struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	MinLength  int `yaml:"min_length"`
	MaxLength  int `yaml:"max_length"`
	MinDigits  int `yaml:"min_digits"`
	MinSpecial int `yaml:"min_special"`
	MinUpper   int `yaml:"min_upper"`
	MinLower   int `yaml:"min_lower"`

	// Passphrase word counts are bounded separately from character lengths.
	MinWords int `yaml:"min_words"`
	MaxWords int `yaml:"max_words"`

	ExcludeChars   string `yaml:"exclude_chars"`
	ExcludeSimilar *bool  `yaml:"exclude_similar"`

	Source string `yaml:"-"`
}

// Default returns the stock policy: 12-128 chars, two digits, two specials,
// one upper, one lower, similar-looking characters excluded.
func Default() *Policy {
	excludeSimilar := true
	return &Policy{
		Name:           "default",
		MinLength:      DefaultMinLength,
		MaxLength:      DefaultMaxLength,
		MinDigits:      DefaultMinDigits,
		MinSpecial:     DefaultMinSpecial,
		MinUpper:       DefaultMinUpper,
		MinLower:       DefaultMinLower,
		MinWords:       DefaultMinWords,
		MaxWords:       DefaultMaxWords,
		ExcludeChars:   "",
		ExcludeSimilar: &excludeSimilar,
	}
}

// SimilarExcluded reports whether visually similar characters are removed.
// Defaults to true when the field is absent from the YAML definition.
func (p *Policy) SimilarExcluded() bool {
	if p.ExcludeSimilar == nil {
		return true
	}
	return *p.ExcludeSimilar
}

// Validate rejects policies that can never produce a compliant password.
func (p *Policy) Validate() error {
	if p.MinLength <= 0 {
		return errors.New("min_length must be greater than 0")
	}
	if p.MaxLength < p.MinLength {
		return fmt.Errorf("max_length %d is smaller than min_length %d", p.MaxLength, p.MinLength)
	}
	if p.MinDigits < 0 || p.MinSpecial < 0 || p.MinUpper < 0 || p.MinLower < 0 {
		return errors.New("per-class minimums must not be negative")
	}
	if sum := p.MinDigits + p.MinSpecial + p.MinUpper + p.MinLower; sum > p.MaxLength {
		return fmt.Errorf("per-class minimums total %d which exceeds max_length %d", sum, p.MaxLength)
	}
	if p.MinWords <= 0 {
		return errors.New("min_words must be greater than 0")
	}
	if p.MaxWords < p.MinWords {
		return fmt.Errorf("max_words %d is smaller than min_words %d", p.MaxWords, p.MinWords)
	}
	return nil
}

// FromYAML parses a raw YAML policy definition. Absent numeric fields fall
// back to the stock defaults so partial policies stay usable.
func FromYAML(data string) (*Policy, error) {
	trimmed := strings.TrimSpace(data)
	if trimmed == "" {
		return nil, errors.New("policy YAML is empty")
	}
	pol := Default()
	pol.Name = ""
	if err := yaml.Unmarshal([]byte(trimmed), pol); err != nil {
		return nil, fmt.Errorf("failed to parse policy YAML: %w", err)
	}
	if pol.Name == "" {
		return nil, errors.New("policy missing required field 'name'")
	}
	if err := pol.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy %q: %w", pol.Name, err)
	}
	return pol, nil
}

// LoadFile loads a policy from a YAML file path.
func LoadFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file %s: %w", path, err)
	}
	pol, err := FromYAML(string(data))
	if err != nil {
		return nil, err
	}
	pol.Source = path
	return pol, nil
}

// LoadEmbedded parses the embedded policy definition if present.
func LoadEmbedded() (*Policy, error) {
	if !HasEmbedded() {
		return nil, errors.New("no embedded policy available")
	}
	raw := strings.TrimSpace(EmbeddedPolicyYAML)
	pol, err := FromYAML(raw)
	if err == nil {
		pol.Source = "embedded"
		return pol, nil
	}

	// Allow base64 encoded payloads for ease of ldflags embedding
	decoded, decodeErr := base64.StdEncoding.DecodeString(raw)
	if decodeErr != nil {
		return nil, err
	}
	pol, err = FromYAML(string(decoded))
	if err != nil {
		return nil, err
	}
	pol.Source = "embedded"
	return pol, nil
}

// HasEmbedded reports whether a build-time policy is embedded.
func HasEmbedded() bool {
	return strings.TrimSpace(EmbeddedPolicyYAML) != ""
}
