package password

import (
	"strings"
	"testing"
)

func TestGenerate_ContainsEveryClass(t *testing.T) {
	for i := 0; i < 50; i++ {
		pwd, err := Generate(DefaultGeneratedLength)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(pwd) != DefaultGeneratedLength {
			t.Fatalf("expected length %d, got %d", DefaultGeneratedLength, len(pwd))
		}
		for _, set := range []string{upper, lower, digits, symbols} {
			if !strings.ContainsAny(pwd, set) {
				t.Fatalf("password %q missing a character from %q", pwd, set)
			}
		}
	}
}

func TestGenerate_MinimumLength(t *testing.T) {
	pwd, err := Generate(3)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(pwd) != minGeneratedLength {
		t.Fatalf("expected length %d, got %d", minGeneratedLength, len(pwd))
	}
}

func TestGenerate_Distinct(t *testing.T) {
	a, _ := Generate(16)
	b, _ := Generate(16)
	if a == b {
		t.Fatalf("expected distinct passwords, got %q twice", a)
	}
}
