package document

// Styling constants for the DOCX rendering of each block and run kind.
// Spacing values are twentieths of a point, font sizes are half-points,
// and colors are hex RGB without the leading '#'. Downstream output is
// byte-for-byte reproducible, so these values must not drift.

// BorderSpec describes one paragraph border line.
type BorderSpec struct {
	Style string // WordprocessingML border style, e.g. "single"
	Size  int    // eighths of a point
	Color string
}

// BlockStyle fixes the paragraph-level rendering of a block kind.
type BlockStyle struct {
	SpacingBefore int
	SpacingAfter  int
	LineSpacing   int // 0 = renderer default
	Shading       string
	IndentLeft    int
	IndentRight   int
	BorderAll     *BorderSpec // uniform border on all four sides
	BorderBottom  *BorderSpec // bottom border only (rules)
}

// RunStyle fixes the character-level rendering of a run kind.
type RunStyle struct {
	Font      string
	Size      int // half-points, 0 = renderer default
	Bold      bool
	Italic    bool
	Underline bool
	Color     string
	Shading   string
}

// MonospaceFont is used for code blocks and inline code spans.
const MonospaceFont = "Courier New"

// Block styles.
var (
	HeadingStyle = BlockStyle{SpacingBefore: 400, SpacingAfter: 200}

	ParagraphStyle = BlockStyle{SpacingAfter: 150}

	BulletStyle = BlockStyle{SpacingAfter: 100}

	CodeBlockStyle = BlockStyle{
		SpacingBefore: 240,
		SpacingAfter:  240,
		LineSpacing:   320,
		Shading:       "F5F5F5",
		IndentLeft:    120,
		IndentRight:   120,
		BorderAll:     &BorderSpec{Style: "single", Size: 4, Color: "D0D0D0"},
	}

	RuleStyle = BlockStyle{
		SpacingBefore: 200,
		SpacingAfter:  200,
		BorderBottom:  &BorderSpec{Style: "single", Size: 6, Color: "A0A0A0"},
	}
)

// Run styles.
var (
	HyperlinkStyle = RunStyle{Underline: true, Color: "0563C1"}

	InlineCodeStyle = RunStyle{Font: MonospaceFont, Color: "C7254E", Shading: "F0F0F0"}

	CodeTextStyle = RunStyle{Font: MonospaceFont, Size: 18}

	MissingImageStyle = RunStyle{Bold: true, Color: "FF0000"}
)

// Embedded images render at a fixed display extent (EMUs); preserving the
// original pixel dimensions is out of scope.
const (
	ImageExtentCX = 5486400 // 6.0 in
	ImageExtentCY = 3429000 // 3.75 in
)

// Paragraph style names written by the encoder and recognized by the
// extractor. The extractor additionally accepts "Source Code" (see the
// ooxml package) for documents produced by other tools.
const (
	StyleNameHeadingPrefix = "Heading" // Heading1..Heading4
	StyleNameCode          = "Code"
	StyleNameCodeText      = "CodeText"
	StyleNameListParagraph = "ListParagraph"
)
