// ABOUTME: Tests for text normalization and tokenization
// ABOUTME: Verifies punctuation stripping, idempotence and stop-word removal
package core

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase and punctuation", "What are your hours?", "what are your hours"},
		{"keeps digits and underscore", "Order_ID #123!", "order_id 123"},
		{"keeps whitespace", "a\tb\nc", "a\tb\nc"},
		{"non-latin letters", "¿Cuál es el HORARIO?", "cuál es el horario"},
		{"symbols only", "!!! ??? ---", "  "},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"What are your hours?",
		"Hello, World!! (test) 42% off",
		"Ünïcödé — dashes… and “quotes”",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize("What are your opening hours, on a Sunday?")
	want := []string{"opening", "hours", "sunday"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokenize() = %v, want %v", got, want)
	}

	if got := tokenize("I a x"); len(got) != 0 {
		t.Errorf("single-rune tokens should be dropped, got %v", got)
	}
}
