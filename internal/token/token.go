// Package token defines the markdown token stream consumed by the compiler
// and the goldmark-backed tokenizer that produces it.
package token

// Kind discriminates block-level tokens.
type Kind int

const (
	KindHeading Kind = iota
	KindParagraph
	KindList
	KindCode
	KindRule
	KindOther
)

// InlineKind discriminates inline children of a paragraph token.
type InlineKind int

const (
	InlineText InlineKind = iota
	InlineStrong
	InlineEmphasis
	InlineCodeSpan
	InlineLink
	InlineImage
	InlineLineBreak
)

// Token is one block-level syntactic unit of markdown source.
// Fields are populated according to Kind; unrelated fields stay zero.
type Token struct {
	Kind     Kind
	Depth    int      // KindHeading: source heading depth (may exceed 4)
	Text     string   // KindHeading, KindCode, KindOther: literal text
	Language string   // KindCode: fence info string, may be empty
	Children []Inline // KindParagraph: inline children in source order
	Items    []string // KindList: flattened item texts
}

// Inline is one inline-level child of a paragraph token.
type Inline struct {
	Kind InlineKind
	Text string // display text; empty for line breaks and most images
	HRef string // InlineLink, InlineImage: destination
}
