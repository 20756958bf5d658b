package pipeline

import "testing"

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"LF unchanged", "a\nb", "a\nb"},
		{"CRLF to LF", "a\r\nb", "a\nb"},
		{"CR to LF", "a\rb", "a\nb"},
		{"mixed", "a\r\nb\rc\nd", "a\nb\nc\nd"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeLineEndings(tt.input); got != tt.expected {
				t.Errorf("NormalizeLineEndings() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCompressBlankLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"single blank kept", "a\n\nb", "a\n\nb"},
		{"three newlines compressed", "a\n\n\nb", "a\n\nb"},
		{"many compressed", "a\n\n\n\n\n\nb", "a\n\nb"},
		{"multiple groups", "a\n\n\n\nb\n\n\n\nc", "a\n\nb\n\nc"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CompressBlankLines(tt.input); got != tt.expected {
				t.Errorf("CompressBlankLines() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPreprocessMarkdown(t *testing.T) {
	t.Parallel()

	input := "# Title\r\n\r\n\r\n\r\nbody\r\n"
	want := "# Title\n\nbody\n"
	if got := PreprocessMarkdown(input); got != want {
		t.Errorf("PreprocessMarkdown() = %q, want %q", got, want)
	}
}
