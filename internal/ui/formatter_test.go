package ui

import (
	"testing"
)

func TestPadRight(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "pad short string",
			input:    "hello",
			width:    10,
			expected: "hello     ",
		},
		{
			name:     "no padding needed",
			input:    "hello",
			width:    5,
			expected: "hello",
		},
		{
			name:     "string longer than width",
			input:    "hello world",
			width:    5,
			expected: "hello world",
		},
		{
			name:     "empty string",
			input:    "",
			width:    5,
			expected: "     ",
		},
		{
			name:     "zero width",
			input:    "hello",
			width:    0,
			expected: "hello",
		},
		{
			name:     "unicode characters",
			input:    "こんにちは",
			width:    15,
			expected: "こんにちは     ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PadRight(tt.input, tt.width)
			if got != tt.expected {
				t.Errorf("PadRight(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{name: "fits", input: "hello", width: 10, expected: "hello"},
		{name: "exact", input: "hello", width: 5, expected: "hello"},
		{name: "too long", input: "hello world", width: 8, expected: "hello..."},
		{name: "wide runes", input: "こんにちは", width: 7, expected: "こん..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.width)
			if got != tt.expected {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
			}
		})
	}
}

func TestCell(t *testing.T) {
	got := Cell("a very long pull request title", 10)
	if got != "a very ..." {
		t.Errorf("Cell() = %q", got)
	}
	if got := Cell("short", 8); got != "short   " {
		t.Errorf("Cell() = %q", got)
	}
}
