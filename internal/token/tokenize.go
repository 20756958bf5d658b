package token

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Tokenize parses markdown source into a flat token stream. It never
// fails: constructs the token model does not cover become KindOther
// tokens carrying their literal text.
func Tokenize(source []byte) []Token {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(source))

	var tokens []Token
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		tokens = append(tokens, blockToken(n, source)...)
	}
	return tokens
}

func blockToken(n ast.Node, source []byte) []Token {
	switch node := n.(type) {
	case *ast.Heading:
		return []Token{{Kind: KindHeading, Depth: node.Level, Text: textOf(node, source)}}

	case *ast.Paragraph:
		return []Token{{
			Kind:     KindParagraph,
			Text:     textOf(node, source),
			Children: inlineChildren(node, source),
		}}

	case *ast.List:
		return []Token{{Kind: KindList, Items: listItems(node, source)}}

	case *ast.FencedCodeBlock:
		return []Token{{
			Kind:     KindCode,
			Text:     codeText(node, source),
			Language: string(node.Language(source)),
		}}

	case *ast.CodeBlock:
		return []Token{{Kind: KindCode, Text: codeText(node, source)}}

	case *ast.ThematicBreak:
		return []Token{{Kind: KindRule}}

	case *ast.Blockquote:
		// Quotes are not modeled; surface each inner block as its own token
		// so quoted paragraphs still reach the document.
		var tokens []Token
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			tokens = append(tokens, blockToken(c, source)...)
		}
		return tokens

	default:
		return []Token{{Kind: KindOther, Text: textOf(n, source)}}
	}
}

// inlineChildren walks a paragraph's inline nodes in source order.
func inlineChildren(p ast.Node, source []byte) []Inline {
	var children []Inline
	for n := p.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Text:
			txt := string(node.Segment.Value(source))
			if node.SoftLineBreak() {
				txt += " "
			}
			if txt != "" {
				children = append(children, Inline{Kind: InlineText, Text: txt})
			}
			if node.HardLineBreak() {
				children = append(children, Inline{Kind: InlineLineBreak})
			}

		case *ast.Emphasis:
			kind := InlineEmphasis
			if node.Level >= 2 {
				kind = InlineStrong
			}
			children = append(children, Inline{Kind: kind, Text: textOf(node, source)})

		case *ast.CodeSpan:
			children = append(children, Inline{Kind: InlineCodeSpan, Text: textOf(node, source)})

		case *ast.Link:
			children = append(children, Inline{
				Kind: InlineLink,
				Text: textOf(node, source),
				HRef: string(node.Destination),
			})

		case *ast.AutoLink:
			url := string(node.URL(source))
			children = append(children, Inline{Kind: InlineLink, Text: url, HRef: url})

		case *ast.Image:
			children = append(children, Inline{
				Kind: InlineImage,
				Text: textOf(node, source),
				HRef: string(node.Destination),
			})

		default:
			if txt := textOf(n, source); txt != "" {
				children = append(children, Inline{Kind: InlineText, Text: txt})
			}
		}
	}
	return children
}

// listItems flattens a list, including nested sublists, into item texts.
func listItems(list *ast.List, source []byte) []string {
	var items []string
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		var text strings.Builder
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				if text.Len() > 0 {
					items = append(items, text.String())
					text.Reset()
				}
				items = append(items, listItems(nested, source)...)
				continue
			}
			text.WriteString(textOf(c, source))
		}
		if text.Len() > 0 {
			items = append(items, text.String())
		}
	}
	return items
}

// codeText concatenates a code block's lines, dropping the trailing newline
// so a k-line block splits into exactly k lines.
func codeText(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// textOf concatenates the literal text of a node's descendants.
func textOf(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := c.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(source))
			if node.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
