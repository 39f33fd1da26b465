package password

import "testing"

func TestBasicSourceIsReproducible(t *testing.T) {
	alphabet := []rune("abcdefghijklmnopqrstuvwxyz")

	a := NewBasicSource(42)
	b := NewBasicSource(42)
	for i := 0; i < 256; i++ {
		ra, err := a.Choice(alphabet)
		if err != nil {
			t.Fatalf("choice failed: %v", err)
		}
		rb, err := b.Choice(alphabet)
		if err != nil {
			t.Fatalf("choice failed: %v", err)
		}
		if ra != rb {
			t.Fatalf("draw %d diverged: %q vs %q", i, ra, rb)
		}
	}
}

func TestBelowStaysInRange(t *testing.T) {
	sources := map[string]Source{
		"basic":  NewBasicSource(7),
		"crypto": cryptoSource{},
	}
	for name, src := range sources {
		for i := 0; i < 1000; i++ {
			v, err := src.Below(13)
			if err != nil {
				t.Fatalf("%s: below failed: %v", name, err)
			}
			if v < 0 || v >= 13 {
				t.Fatalf("%s: below(13) returned %d", name, v)
			}
		}
	}
}

func TestBelowRejectsNonPositiveBound(t *testing.T) {
	for _, src := range []Source{NewBasicSource(1), cryptoSource{}} {
		if _, err := src.Below(0); err == nil {
			t.Fatal("expected error for bound 0")
		}
		if _, err := src.Below(-3); err == nil {
			t.Fatal("expected error for negative bound")
		}
	}
}

func TestShufflePreservesElements(t *testing.T) {
	for _, src := range []Source{NewBasicSource(99), cryptoSource{}} {
		tokens := []string{"amber", "stream", "marsh", "quartz", "tundra", "whisk"}
		counts := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			counts[tok]++
		}

		if err := src.Shuffle(tokens); err != nil {
			t.Fatalf("shuffle failed: %v", err)
		}
		if len(tokens) != 6 {
			t.Fatalf("shuffle changed length to %d", len(tokens))
		}
		for _, tok := range tokens {
			counts[tok]--
		}
		for tok, n := range counts {
			if n != 0 {
				t.Fatalf("shuffle lost or duplicated token %q", tok)
			}
		}
	}
}
