package lang

import (
	"testing"
)

func TestSingular(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"worlds", "world"},
		{"entries", "entry"},
		{"aliases", "alias"},
		{"settings", "setting"},
		{"items", "item"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Singular(tt.input); got != tt.expected {
				t.Errorf("Singular(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		count    int
		word     string
		expected string
	}{
		{0, "world", "0 worlds"},
		{1, "world", "1 world"},
		{3, "world", "3 worlds"},
		{2, "entry", "2 entries"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := Count(tt.count, tt.word); got != tt.expected {
				t.Errorf("Count(%d, %q) = %q, want %q", tt.count, tt.word, got, tt.expected)
			}
		})
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"bridge", "Bridge"},
		{"unknown key", "Unknown key"},
		{"ALREADY", "ALREADY"},
		{"a", "A"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Capitalize(tt.input); got != tt.expected {
				t.Errorf("Capitalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEnumerator(t *testing.T) {
	tests := []struct {
		name     string
		enum     Enumerator
		elements []string
		expected string
	}{
		{
			name:     "single element",
			enum:     Enumerator{},
			elements: []string{"keys"},
			expected: "keys",
		},
		{
			name:     "two elements",
			enum:     Enumerator{},
			elements: []string{"keys", "items"},
			expected: "keys and items",
		},
		{
			name:     "three elements",
			enum:     Enumerator{},
			elements: []string{"keys", "settings", "items"},
			expected: "keys, settings, and items",
		},
		{
			name:     "with or operator",
			enum:     Enumerator{Operator: "or"},
			elements: []string{"file", "paste"},
			expected: "file or paste",
		},
		{
			name:     "with pattern",
			enum:     Enumerator{Pattern: "[%s]", Operator: "or"},
			elements: []string{"file", "paste"},
			expected: "[file] or [paste]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.enum.Do(tt.elements...); got != tt.expected {
				t.Errorf("Enumerator.Do(%v) = %q, want %q", tt.elements, got, tt.expected)
			}
		})
	}
}

func TestDidYouMean(t *testing.T) {
	tests := []struct {
		options  []string
		expected string
	}{
		{nil, ""},
		{[]string{"bridge"}, `, did you mean "bridge"?`},
		{[]string{"bow", "bombs"}, `, did you mean "bow" or "bombs"?`},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := DidYouMean(tt.options...); got != tt.expected {
				t.Errorf("DidYouMean(%q) = %q, want %q", tt.options, got, tt.expected)
			}
		})
	}
}
