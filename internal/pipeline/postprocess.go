package pipeline

import "regexp"

// PlaceholderPrefix is the synthetic reference the extractor substitutes
// for embedded images. The full form is IMAGE_PLACEHOLDER_<n> with n
// assigned sequentially from 1 within one extraction.
const PlaceholderPrefix = "IMAGE_PLACEHOLDER_"

// Precompiled patterns for post-processing. Order of application matters:
// placeholders are rewritten first so the escape cleanup sees final paths.
var (
	placeholderPattern = regexp.MustCompile(PlaceholderPrefix + `(\d+)`)

	escapedPunctuation = regexp.MustCompile(`\\([_()\[\]"'])`)
	escapedPeriod      = regexp.MustCompile(`\\\.`)
	escapedHyphen      = regexp.MustCompile(`\\-`)
)

// PostprocessMarkdown rewrites raw extractor output into final markdown:
// synthetic image placeholders become canonical figure paths, then
// over-escaped punctuation is unescaped.
func PostprocessMarkdown(raw string) string {
	out := RewritePlaceholders(raw)
	out = UnescapePunctuation(out)
	return out
}

// RewritePlaceholders converts every IMAGE_PLACEHOLDER_<n> occurrence,
// whether in attribute form or finished image syntax, to the canonical
// path images/figure_<n>.png.
func RewritePlaceholders(content string) string {
	return placeholderPattern.ReplaceAllString(content, "images/figure_$1.png")
}

// UnescapePunctuation strips backslashes the extractor adds in front of
// punctuation that markdown consumers do not need escaped. Backslashes
// before any other character are left untouched.
func UnescapePunctuation(content string) string {
	content = escapedPunctuation.ReplaceAllString(content, "$1")
	content = escapedPeriod.ReplaceAllString(content, ".")
	content = escapedHyphen.ReplaceAllString(content, "-")
	return content
}
