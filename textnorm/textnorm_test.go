package textnorm

import (
	"reflect"
	"testing"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "simple sentence",
			input: "The clinic opens at 9am.",
			want:  []string{"the", "clinic", "opens", "at", "9am"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "   \n\t ",
			want:  nil,
		},
		{
			name:  "punctuation only",
			input: "?! ... --",
			want:  nil,
		},
		{
			name:  "mixed case and punctuation",
			input: "PRICE: $45, per night!",
			want:  []string{"price", "45", "per", "night"},
		},
		{
			name:  "unicode whitespace and hyphens",
			input: "fill\u2011level\u00A0sensor",
			want:  []string{"fill-level", "sensor"},
		},
		{
			name:  "zero-width characters stripped",
			input: "zero\u200Bwidth",
			want:  []string{"zerowidth"},
		},
		{
			name:  "byte order mark stripped",
			input: "\uFEFFThe clinic opens\u200D at 9am",
			want:  []string{"the", "clinic", "opens", "at", "9am"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokens(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokensDeterministic(t *testing.T) {
	input := "Same input must always yield the same tokens, every time."
	first := Tokens(input)
	for i := 0; i < 10; i++ {
		if got := Tokens(input); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: Tokens not deterministic: %v vs %v", i, got, first)
		}
	}
}

func TestSignificantTerms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "filters stop words and short words",
			input: "When does the clinic open and what is the price?",
			want:  []string{"clinic", "open", "price"},
		},
		{
			name:  "deduplicates",
			input: "price price PRICE",
			want:  []string{"price"},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SignificantTerms(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SignificantTerms(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenSet(t *testing.T) {
	set := TokenSet("a b b c")
	if len(set) != 3 {
		t.Errorf("TokenSet: got %d entries, want 3", len(set))
	}
	if TokenSet("") != nil {
		t.Error("TokenSet of empty input should be nil")
	}
}
