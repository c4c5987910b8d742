package textutil

import (
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"already canonical", "JOHN SMITH", "JOHN SMITH"},
		{"lowercase", "john smith", "JOHN SMITH"},
		{"punctuation removed", "O'Brien, Mary-Jane.", "OBRIEN MARYJANE"},
		{"digits removed", "R2D2 UNIT 7", "RD UNIT"},
		{"whitespace collapsed", "  JOHN \t\n  SMITH  ", "JOHN SMITH"},
		{"diacritics folded", "José Müller", "JOSE MULLER"},
		{"non latin dropped", "राम KUMAR", "KUMAR"},
		{"only symbols", "123 -- !!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"john   smith",
		"José Müller-Lüdenscheidt",
		"  Name: ANIL\tKUMAR 1990 ",
		"ǅemal Ǉubo",
		"ß straße",
		" LEADING NBSP",
	}
	for _, input := range inputs {
		once := NormalizeName(input)
		twice := NormalizeName(once)
		if once != twice {
			t.Errorf("NormalizeName not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestNormalizeNamePtr(t *testing.T) {
	if got := NormalizeNamePtr(nil); got != "" {
		t.Fatalf("expected empty string for nil, got %q", got)
	}
	name := "jane doe"
	if got := NormalizeNamePtr(&name); got != "JANE DOE" {
		t.Fatalf("unexpected normalized name %q", got)
	}
}

func TestNameTokens(t *testing.T) {
	tokens := NameTokens("john  SMITH john")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 distinct tokens, got %v", tokens)
	}
	for _, want := range []string{"JOHN", "SMITH"} {
		if _, ok := tokens[want]; !ok {
			t.Errorf("expected token %q in %v", want, tokens)
		}
	}
	if len(NameTokens("")) != 0 {
		t.Fatal("expected no tokens for empty name")
	}
}

func TestSanitizeCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "-"},
		{"   ", "-"},
		{"a\nb", "a b"},
		{"\tJOHN\r\n", "JOHN"},
	}
	for _, tt := range tests {
		if got := SanitizeCell(tt.input); got != tt.want {
			t.Errorf("SanitizeCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
	if got := OptionalCell(nil); got != "-" {
		t.Errorf("OptionalCell(nil) = %q, want -", got)
	}
}
