package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"password-forge/internal/corpus"
)

func main() {
	var (
		input  string
		output string
		verify bool
	)

	flag.StringVar(&input, "in", "", "Word list to pack (plain text, required)")
	flag.StringVar(&output, "out", "", "Output path (default: <in>"+corpus.PackedExt+")")
	flag.BoolVar(&verify, "verify", true, "Reload the packed list and compare word counts")
	flag.Parse()

	if input == "" {
		fmt.Fprintln(os.Stderr, "error: -in is required (e.g., -in eff_large_wordlist.txt)")
		os.Exit(2)
	}
	if output == "" {
		output = strings.TrimSuffix(input, ".txt") + corpus.PackedExt
	}

	original, err := corpus.Load(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", input, err)
		os.Exit(1)
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", input, err)
		os.Exit(1)
	}

	fmt.Printf("📦 Packing %s (%d words)...\n", input, original.Len())
	packed, err := corpus.Pack(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to pack: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(output, packed, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", output, err)
		os.Exit(1)
	}

	if verify {
		reloaded, err := corpus.Load(output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "verification failed: %v\n", err)
			os.Exit(1)
		}
		if reloaded.Len() != original.Len() {
			fmt.Fprintf(os.Stderr, "verification failed: %d words in, %d words out\n", original.Len(), reloaded.Len())
			os.Exit(1)
		}
	}

	ratio := corpus.CompressionRatio(raw, packed)
	fmt.Println("✅ Packed word list written:")
	fmt.Printf("   • %s (%d -> %d bytes, ratio %.2f)\n", output, len(raw), len(packed), ratio)
	fmt.Println()
	fmt.Println("Usage example:")
	fmt.Printf("  ./passgen -category passphrase -length 5 -wordlist %s\n", output)
}
