// Package document defines the structured document model produced by the
// markdown compiler and consumed by the DOCX encoder, plus the static style
// table that fixes every spacing, font, and color decision.
package document

// MaxHeadingLevel is the deepest heading the document model supports.
// Markdown depths beyond this clamp to it.
const MaxHeadingLevel = 4

// Block is one top-level structural unit of a Document.
type Block interface {
	block()
}

// Run is one styled span of text or embedded content inside a Paragraph.
type Run interface {
	run()
}

// Document is an ordered sequence of blocks in markdown source order.
// It is append-only during compilation and immutable once returned.
type Document struct {
	Blocks []Block
}

// Append adds a block, preserving source order.
func (d *Document) Append(b Block) {
	d.Blocks = append(d.Blocks, b)
}

// Heading is a section heading at level 1..MaxHeadingLevel.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is a sequence of inline runs.
type Paragraph struct {
	Runs []Run
}

// BulletItem is a single flattened list item (nesting is not modeled).
type BulletItem struct {
	Text string
}

// CodeBlock holds the lines of a code block in original order.
// Language is the fence info string when the source carried one.
type CodeBlock struct {
	Lines    []string
	Language string
}

// Rule is a horizontal rule.
type Rule struct{}

func (Heading) block()    {}
func (Paragraph) block()  {}
func (BulletItem) block() {}
func (CodeBlock) block()  {}
func (Rule) block()       {}

// PlainText is unstyled text.
type PlainText struct {
	Text string
}

// Bold is strongly emphasized text.
type Bold struct {
	Text string
}

// Italic is emphasized text.
type Italic struct {
	Text string
}

// InlineCode is a monospace code span.
type InlineCode struct {
	Text string
}

// Hyperlink is underlined link text pointing at HRef.
type Hyperlink struct {
	Text string
	HRef string
}

// Image is a successfully resolved embedded image.
// Data is never empty; a failed resolution yields MissingImage instead.
type Image struct {
	Data []byte
}

// MissingImage marks an image reference that could not be resolved.
// HRef carries the original reference text for diagnostics.
type MissingImage struct {
	HRef string
}

// LineBreak is an explicit break inside a paragraph.
type LineBreak struct{}

func (PlainText) run()    {}
func (Bold) run()         {}
func (Italic) run()       {}
func (InlineCode) run()   {}
func (Hyperlink) run()    {}
func (Image) run()        {}
func (MissingImage) run() {}
func (LineBreak) run()    {}

// ClampHeadingLevel collapses markdown heading depths beyond
// MaxHeadingLevel to MaxHeadingLevel and floors invalid depths at 1.
func ClampHeadingLevel(depth int) int {
	if depth < 1 {
		return 1
	}
	if depth > MaxHeadingLevel {
		return MaxHeadingLevel
	}
	return depth
}
