package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"password-forge/internal/corpus"
	"password-forge/internal/output"
	"password-forge/internal/password"
	"password-forge/pkg/policy"
)

var version = "dev"

func main() {
	if err := runWizard(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "\nerror: %v\n", err)
		if errors.Is(err, password.ErrInputValidation) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func runWizard(in *os.File) error {
	reader := bufio.NewReader(in)

	fmt.Printf("🔐 Password Forge %s — interactive wizard\n", version)
	fmt.Println(strings.Repeat("=", 50))

	fmt.Println("\nPassword Categories:")
	fmt.Println("  1. Alphanumeric (letters and numbers)")
	fmt.Println("  2. Complex (letters, numbers, and special characters)")
	fmt.Println("  3. Passphrase (memorable words)")

	category, err := promptCategory(reader)
	if err != nil {
		return err
	}

	lengthPrompt := "Enter password length: "
	if category == password.Passphrase {
		lengthPrompt = "Enter number of words: "
	}
	length, err := promptInt(reader, lengthPrompt)
	if err != nil {
		return err
	}

	fmt.Println("\nPassword Strength Levels:")
	fmt.Println("  1. Basic (faster, NOT suitable for real secrets)")
	fmt.Println("  2. Strong (recommended)")
	fmt.Println("  3. Paranoid (maximum security)")

	strength, err := promptStrength(reader)
	if err != nil {
		return err
	}

	opts := []password.Option{}
	if category == password.Passphrase {
		path, promptErr := prompt(reader, "\nPath to word list: ")
		if promptErr != nil {
			return promptErr
		}
		words, loadErr := corpus.Load(path)
		if loadErr != nil {
			return fmt.Errorf("%w: %v", password.ErrResource, loadErr)
		}
		opts = append(opts, password.WithCorpus(words))
	}

	gen, err := password.New(policy.Default(), opts...)
	if err != nil {
		return err
	}

	result, err := gen.Generate(length, category, strength)
	if err != nil {
		return err
	}

	fmt.Println("\n✅ Generated Password:")
	fmt.Println(result)

	save, err := prompt(reader, "\nSave to file? (y/n): ")
	if err != nil {
		return err
	}
	if strings.ToLower(save) != "y" {
		return nil
	}

	filename, err := prompt(reader, "Enter filename: ")
	if err != nil {
		return err
	}
	rec := output.NewRecord([]string{result}, category, strength, length)
	if err := rec.Save(filename, nil); err != nil {
		return err
	}
	fmt.Printf("💾 Password saved to %s\n", filename)
	return nil
}

func promptCategory(reader *bufio.Reader) (password.Category, error) {
	choice, err := prompt(reader, "\nSelect category (1-3): ")
	if err != nil {
		return 0, err
	}
	switch choice {
	case "1":
		return password.Alphanumeric, nil
	case "2":
		return password.Complex, nil
	case "3":
		return password.Passphrase, nil
	default:
		return 0, fmt.Errorf("%w: invalid category selection %q", password.ErrInputValidation, choice)
	}
}

func promptStrength(reader *bufio.Reader) (password.Strength, error) {
	choice, err := prompt(reader, "\nSelect strength level (1-3): ")
	if err != nil {
		return 0, err
	}
	switch choice {
	case "1":
		return password.Basic, nil
	case "2":
		return password.Strong, nil
	case "3":
		return password.Paranoid, nil
	default:
		return 0, fmt.Errorf("%w: invalid strength selection %q", password.ErrInputValidation, choice)
	}
}

func promptInt(reader *bufio.Reader, label string) (int, error) {
	raw, err := prompt(reader, label)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(raw)
	if convErr != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", password.ErrInputValidation, raw)
	}
	return n, nil
}

func prompt(reader *bufio.Reader, label string) (string, error) {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
