package claims

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Claim
	}{
		{
			name:  "two sentences",
			input: "The clinic opens at 9am. We also offer specially subsidized rooms.",
			want: []Claim{
				{Text: "The clinic opens at 9am.", Position: 0},
				{Text: "We also offer specially subsidized rooms.", Position: 1},
			},
		},
		{
			name:  "empty response",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "  \n ",
			want:  nil,
		},
		{
			name:  "no sentence boundary yields single claim",
			input: "a single span of text without terminal punctuation",
			want:  []Claim{{Text: "a single span of text without terminal punctuation", Position: 0}},
		},
		{
			name:  "short single fragment is kept",
			input: "ok",
			want:  []Claim{{Text: "ok", Position: 0}},
		},
		{
			name:  "boilerplate fragment dropped",
			input: "The maximum operating temperature is 85 degrees. Thanks. The rating is 24VDC as specified.",
			want: []Claim{
				{Text: "The maximum operating temperature is 85 degrees.", Position: 0},
				{Text: "The rating is 24VDC as specified.", Position: 1},
			},
		},
		{
			name:  "question and exclamation boundaries",
			input: "Is the sensor calibrated? Yes, it was calibrated last week! Recalibration is due in June.",
			want: []Claim{
				{Text: "Is the sensor calibrated?", Position: 0},
				{Text: "Yes, it was calibrated last week!", Position: 1},
				{Text: "Recalibration is due in June.", Position: 2},
			},
		},
		{
			name:  "abbreviations do not split",
			input: "Contact Dr. Smith for details, e.g. by phone. The office handles approx. forty cases a week.",
			want: []Claim{
				{Text: "Contact Dr. Smith for details, e.g. by phone.", Position: 0},
				{Text: "The office handles approx. forty cases a week.", Position: 1},
			},
		},
		{
			name:  "sentence ending in the word no splits",
			input: "The answer is no. However, exceptions can be requested in writing.",
			want: []Claim{
				{Text: "The answer is no.", Position: 0},
				{Text: "However, exceptions can be requested in writing.", Position: 1},
			},
		},
		{
			name:  "numbered abbreviation does not split",
			input: "Parking is behind building No. 12 on the east side. Spaces are assigned monthly.",
			want: []Claim{
				{Text: "Parking is behind building No. 12 on the east side.", Position: 0},
				{Text: "Spaces are assigned monthly.", Position: 1},
			},
		},
		{
			name:  "decimal numbers do not split",
			input: "The tolerance is 3.5 millimeters at most. Larger deviations are rejected.",
			want: []Claim{
				{Text: "The tolerance is 3.5 millimeters at most.", Position: 0},
				{Text: "Larger deviations are rejected.", Position: 1},
			},
		},
	}

	e := NewSentenceExtractor(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtractDeterministic(t *testing.T) {
	e := NewSentenceExtractor(3)
	input := "First claim here. Second claim follows. Third one ends it."
	first := e.Extract(input)
	for i := 0; i < 5; i++ {
		if got := e.Extract(input); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: Extract not deterministic", i)
		}
	}
}

func TestExtractMinTokens(t *testing.T) {
	// With a higher minimum, shorter sentences drop out and positions
	// stay sequential over the survivors.
	e := NewSentenceExtractor(5)
	got := e.Extract("Too short. This sentence clearly has enough tokens to survive. Also short.")
	want := []Claim{{Text: "This sentence clearly has enough tokens to survive.", Position: 0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}
