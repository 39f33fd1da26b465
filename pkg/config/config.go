package config

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"password-forge/pkg/policy"
)

// String defaults are overrideable at build time via -ldflags -X
// Example: -ldflags "-X 'password-forge/pkg/config.DefaultCategoryStr=passphrase'"
var (
	DefaultLengthStr       = "16"
	DefaultCategoryStr     = "complex"
	DefaultStrengthStr     = "strong"
	DefaultCountStr        = "1"
	DefaultPolicyPathStr   = ""
	DefaultWordlistStr     = ""
	DefaultWordlistDirStr  = ""
	DefaultWordlistGlobStr = ""
	DefaultOutputStr       = ""
	DefaultSealStr         = "false"
	DefaultSeedStr         = "0" // 0 -> time-based seed for basic strength
	DefaultShowHelpStr     = "false"
	DefaultVerboseStr      = "false"
	DefaultQuietStr        = "false"
)

// SealPassphraseEnv names the environment variable consulted for the
// sealing passphrase when -seal is set.
const SealPassphraseEnv = "PASSFORGE_SEAL_PASSPHRASE"

type Config struct {
	Length        int
	Category      string
	Strength      string
	Count         int
	PolicyPath    string
	PolicyName    string
	Wordlist      string
	WordlistDir   string
	WordlistGlobs string
	Output        string
	Seal          bool
	Seed          int64
	ShowHelp      bool
	Verbose       bool
	Quiet         bool
	ActivePolicy  *policy.Policy
}

func DefaultConfig() *Config {
	return &Config{
		Length:        parseIntOr(DefaultLengthStr, 16),
		Category:      orString(DefaultCategoryStr, "complex"),
		Strength:      orString(DefaultStrengthStr, "strong"),
		Count:         parseIntOr(DefaultCountStr, 1),
		PolicyPath:    orString(DefaultPolicyPathStr, ""),
		Wordlist:      orString(DefaultWordlistStr, ""),
		WordlistDir:   orString(DefaultWordlistDirStr, ""),
		WordlistGlobs: orString(DefaultWordlistGlobStr, ""),
		Output:        orString(DefaultOutputStr, ""),
		Seal:          parseBoolOr(DefaultSealStr, false),
		Seed:          parseInt64Or(DefaultSeedStr, 0),
		ShowHelp:      parseBoolOr(DefaultShowHelpStr, false),
		Verbose:       parseBoolOr(DefaultVerboseStr, false),
		Quiet:         parseBoolOr(DefaultQuietStr, false),
	}
}

func ParseFlags(appName string) (*Config, error) {
	config := DefaultConfig()

	flag.IntVar(&config.Length, "length", config.Length, "Password length, or word count for passphrases")
	flag.StringVar(&config.Category, "category", config.Category, "Password category: alphanumeric, complex or passphrase")
	flag.StringVar(&config.Strength, "strength", config.Strength, "Strength level: basic, strong or paranoid")
	flag.IntVar(&config.Count, "count", config.Count, "Number of passwords to generate")
	flag.StringVar(&config.PolicyPath, "policy", config.PolicyPath, "Path to policy YAML")
	flag.StringVar(&config.Wordlist, "wordlist", config.Wordlist, "Path to word list (plain text or packed .words.lz4)")
	flag.StringVar(&config.WordlistDir, "wordlist-dir", config.WordlistDir, "Directory to discover word lists in")
	flag.StringVar(&config.WordlistGlobs, "wordlist-glob", config.WordlistGlobs, "Comma-separated glob patterns for word list discovery")
	flag.StringVar(&config.Output, "output", config.Output, "Write the result record to this file instead of stdout")
	flag.BoolVar(&config.Seal, "seal", config.Seal, "Encrypt the saved record under a passphrase ("+SealPassphraseEnv+")")
	flag.Int64Var(&config.Seed, "seed", config.Seed, "Seed for basic strength (0 for time-based); ignored otherwise")
	flag.BoolVar(&config.Verbose, "verbose", config.Verbose, "Enable verbose output")
	flag.BoolVar(&config.Quiet, "quiet", config.Quiet, "Suppress non-error output")
	flag.BoolVar(&config.ShowHelp, "help", config.ShowHelp, "Show help message")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", appName)
		fmt.Fprintf(os.Stderr, "\nA policy-driven password and passphrase generator.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -length 20 -category complex -strength paranoid\n", appName)
		fmt.Fprintf(os.Stderr, "  %s -length 5 -category passphrase -wordlist eff_large_wordlist.txt\n", appName)
		fmt.Fprintf(os.Stderr, "  %s -count 5 -output creds.json -seal\n", appName)
		fmt.Fprintf(os.Stderr, "\nNote: basic strength uses a fast NON-cryptographic generator.\n")
		fmt.Fprintf(os.Stderr, "Use strong or paranoid for anything that protects real accounts.\n")
	}

	flag.Parse()

	if config.ShowHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Load policy (CLI path has priority, otherwise embedded definition)
	var loadedPolicy *policy.Policy
	if config.PolicyPath != "" {
		loaded, err := policy.LoadFile(config.PolicyPath)
		if err != nil {
			return nil, err
		}
		loadedPolicy = loaded
	} else if policy.HasEmbedded() {
		loaded, err := policy.LoadEmbedded()
		if err != nil {
			return nil, err
		}
		loadedPolicy = loaded
	}

	if loadedPolicy != nil {
		config.ActivePolicy = loadedPolicy
		config.PolicyName = loadedPolicy.Name
		if config.PolicyPath == "" {
			config.PolicyPath = loadedPolicy.Source
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.Length <= 0 {
		return fmt.Errorf("length must be greater than 0")
	}
	if c.Count <= 0 {
		return fmt.Errorf("count must be greater than 0")
	}
	switch c.Category {
	case "alphanumeric", "complex", "passphrase":
	default:
		return fmt.Errorf("unknown category: %s", c.Category)
	}
	switch c.Strength {
	case "basic", "strong", "paranoid":
	default:
		return fmt.Errorf("unknown strength: %s", c.Strength)
	}
	if c.Wordlist != "" && c.WordlistDir != "" {
		return fmt.Errorf("wordlist and wordlist-dir are mutually exclusive")
	}
	if c.WordlistGlobs != "" && c.WordlistDir == "" {
		return fmt.Errorf("wordlist-glob requires wordlist-dir")
	}
	if c.Seal && c.Output == "" {
		return fmt.Errorf("seal requires output")
	}
	return nil
}

// Globs splits the comma-separated discovery patterns.
func (c *Config) Globs() []string {
	if strings.TrimSpace(c.WordlistGlobs) == "" {
		return nil
	}
	parts := strings.Split(c.WordlistGlobs, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// SealPassphrase returns the sealing passphrase from the environment.
func (c *Config) SealPassphrase() ([]byte, error) {
	pass := os.Getenv(SealPassphraseEnv)
	if strings.TrimSpace(pass) == "" {
		return nil, fmt.Errorf("sealing requested but %s is not set", SealPassphraseEnv)
	}
	return []byte(pass), nil
}

func (c *Config) PrintConfig(appName string) {
	fmt.Printf("🔧 %s Configuration\n", appName)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("🔤 Category: %s\n", c.Category)
	fmt.Printf("💪 Strength: %s\n", c.Strength)
	if c.Category == "passphrase" {
		fmt.Printf("📏 Words: %d\n", c.Length)
	} else {
		fmt.Printf("📏 Length: %d\n", c.Length)
	}
	fmt.Printf("🔢 Count: %d\n", c.Count)
	if c.PolicyName != "" {
		fmt.Printf("📝 Policy: %s (%s)\n", c.PolicyName, c.PolicyPath)
	} else if c.PolicyPath != "" {
		fmt.Printf("📝 Policy: %s\n", c.PolicyPath)
	}
	if c.Wordlist != "" {
		fmt.Printf("📚 Word list: %s\n", c.Wordlist)
	}
	if c.WordlistDir != "" {
		fmt.Printf("📚 Word list dir: %s\n", c.WordlistDir)
	}
	if c.Output != "" {
		fmt.Printf("💾 Output: %s (%s)\n", c.Output, map[bool]string{true: "sealed", false: "plaintext"}[c.Seal])
	}
	fmt.Printf("💻 Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// Helpers for parsing ldflag-provided strings
func parseBoolOr(val string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	case "0", "f", "false", "n", "no", "off":
		return false
	default:
		return fallback
	}
}

func parseIntOr(val string, fallback int) int {
	s := strings.TrimSpace(val)
	if s == "" {
		return fallback
	}
	sign := 1
	idx := 0
	if s[0] == '-' {
		sign = -1
		idx = 1
	}
	n := 0
	for ; idx < len(s); idx++ {
		ch := s[idx]
		if ch < '0' || ch > '9' {
			return fallback
		}
		n = n*10 + int(ch-'0')
	}
	return sign * n
}

func parseInt64Or(val string, fallback int64) int64 {
	s := strings.TrimSpace(val)
	if s == "" {
		return fallback
	}
	sign := int64(1)
	idx := 0
	if s[0] == '-' {
		sign = -1
		idx = 1
	}
	var n int64
	for ; idx < len(s); idx++ {
		ch := s[idx]
		if ch < '0' || ch > '9' {
			return fallback
		}
		n = n*10 + int64(ch-'0')
	}
	return sign * n
}

func orString(val string, fallback string) string {
	s := strings.TrimSpace(val)
	if s == "" {
		return fallback
	}
	return s
}
