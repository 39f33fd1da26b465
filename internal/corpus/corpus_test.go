package corpus

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestNewDropsBlanksAndDuplicates(t *testing.T) {
	c, err := New([]string{"amber", "", "  stream  ", "amber", "marsh"})
	if err != nil {
		t.Fatalf("failed to build corpus: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("got %d words, want 3", c.Len())
	}
	if c.Word(0) != "amber" || c.Word(1) != "stream" || c.Word(2) != "marsh" {
		t.Fatalf("unexpected word order: %v", c.Words())
	}
}

func TestNewRejectsEmptyInput(t *testing.T) {
	if _, err := New([]string{"", "  "}); err == nil {
		t.Fatal("expected error for corpus with no usable words")
	}
}

func TestFilterKeepsReceiverIntact(t *testing.T) {
	c, err := New([]string{"amber", "stream", "marsh"})
	if err != nil {
		t.Fatalf("failed to build corpus: %v", err)
	}
	filtered := c.Filter(func(w string) bool { return w != "stream" })
	if filtered.Len() != 2 {
		t.Fatalf("filtered corpus has %d words, want 2", filtered.Len())
	}
	if c.Len() != 3 {
		t.Fatalf("filter mutated the receiver: %d words", c.Len())
	}
}

func TestLoadPlainTextWithDicewarePrefixes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	content := "# comment line\n11111\tamber\n11112\tstream\n\nmarsh\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write word list: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("got %d words, want 3", c.Len())
	}
	if c.Word(0) != "amber" || c.Word(1) != "stream" || c.Word(2) != "marsh" {
		t.Fatalf("unexpected words: %v", c.Words())
	}
}

func TestPackRoundTrip(t *testing.T) {
	raw := bytes.Repeat([]byte("amber\nstream\nmarsh\nquartz\ntundra\n"), 64)

	packed, err := Pack(raw)
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	if !IsPacked(packed) {
		t.Fatal("packed data is missing the magic header")
	}
	if len(packed) >= len(raw) {
		t.Fatalf("packed size %d not smaller than original %d", len(packed), len(raw))
	}

	restored, err := Unpack(packed)
	if err != nil {
		t.Fatalf("unpack failed: %v", err)
	}
	if !bytes.Equal(restored, raw) {
		t.Fatal("unpacked data does not match original")
	}
}

func TestLoadPackedWordList(t *testing.T) {
	raw := bytes.Repeat([]byte("amber\nstream\nmarsh\nquartz\ntundra\n"), 16)
	packed, err := Pack(raw)
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "words"+PackedExt)
	if err := os.WriteFile(path, packed, 0o644); err != nil {
		t.Fatalf("failed to write packed list: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if c.Len() != 5 {
		t.Fatalf("got %d distinct words, want 5", c.Len())
	}
}

func TestUnpackRejectsForeignData(t *testing.T) {
	if _, err := Unpack([]byte("just some text, not packed")); err == nil {
		t.Fatal("expected error for unpacked input")
	}
}

func TestDiscoverMergesMatchedLists(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "extra"), 0o755); err != nil {
		t.Fatalf("failed to create subdirectory: %v", err)
	}
	files := map[string]string{
		"first.txt":        "amber\nstream\n",
		"extra/second.txt": "stream\nmarsh\n",
		"ignored.dat":      "quartz\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	c, err := Discover(dir, []string{"**/*.txt"})
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if c.Len() != 3 {
		t.Fatalf("got %d merged words, want 3 (duplicates removed, .dat ignored)", c.Len())
	}
}

func TestDiscoverFailsWithoutMatches(t *testing.T) {
	dir := t.TempDir()
	if _, err := Discover(dir, []string{"**/*.txt"}); err == nil {
		t.Fatal("expected error when no word lists match")
	}
}
