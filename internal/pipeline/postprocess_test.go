package pipeline

import "testing"

func TestRewritePlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "image syntax form",
			input:    "![](IMAGE_PLACEHOLDER_1)",
			expected: "![](images/figure_1.png)",
		},
		{
			name:     "attribute form",
			input:    `<img src="IMAGE_PLACEHOLDER_2">`,
			expected: `<img src="images/figure_2.png">`,
		},
		{
			name:     "multiple placeholders keep their numbers",
			input:    "![](IMAGE_PLACEHOLDER_1) text ![](IMAGE_PLACEHOLDER_12)",
			expected: "![](images/figure_1.png) text ![](images/figure_12.png)",
		},
		{
			name:     "no placeholder untouched",
			input:    "plain text",
			expected: "plain text",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := RewritePlaceholders(tt.input); got != tt.expected {
				t.Errorf("RewritePlaceholders() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestUnescapePunctuation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "escaped underscore",
			input:    `p\_value`,
			expected: "p_value",
		},
		{
			name:     "escaped parentheses",
			input:    `print\(x\)`,
			expected: "print(x)",
		},
		{
			name:     "escaped brackets",
			input:    `\[note\]`,
			expected: "[note]",
		},
		{
			name:     "escaped quotes",
			input:    `\"hi\" and \'bye\'`,
			expected: `"hi" and 'bye'`,
		},
		{
			name:     "escaped period",
			input:    `end\.`,
			expected: "end.",
		},
		{
			name:     "escaped hyphen",
			input:    `non\-stop`,
			expected: "non-stop",
		},
		{
			name:     "backslash before other characters untouched",
			input:    `literal \n stays`,
			expected: `literal \n stays`,
		},
		{
			name:     "escaped asterisk untouched",
			input:    `keep \* escaped`,
			expected: `keep \* escaped`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := UnescapePunctuation(tt.input); got != tt.expected {
				t.Errorf("UnescapePunctuation(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPostprocessMarkdown_Order(t *testing.T) {
	t.Parallel()

	// Placeholders are rewritten before escape cleanup, so the cleanup
	// sees (and fixes) escaping around the final path.
	input := `!\[\](IMAGE_PLACEHOLDER_1)`
	want := "![](images/figure_1.png)"
	if got := PostprocessMarkdown(input); got != want {
		t.Errorf("PostprocessMarkdown(%q) = %q, want %q", input, got, want)
	}
}
