package pipeline

import (
	"fmt"
	"strings"

	"github.com/alnah/go-md2docx/internal/assets"
	"github.com/alnah/go-md2docx/internal/document"
	"github.com/alnah/go-md2docx/internal/token"
)

// Log levels reported through the conversion log callback.
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Logf receives one conversion log message. Implementations are invoked
// synchronously, in chronological order.
type Logf func(message, level string)

// Compile turns a markdown token stream into a Document, resolving image
// references against m. It never fails: unresolved images become visible
// MissingImage markers and unknown tokens degrade to plain paragraphs, so
// a complete Document is always returned.
func Compile(tokens []token.Token, m assets.Map, logf Logf) *document.Document {
	if logf == nil {
		logf = func(string, string) {}
	}

	doc := &document.Document{}
	for _, tok := range tokens {
		compileToken(doc, tok, m, logf)
	}
	return doc
}

func compileToken(doc *document.Document, tok token.Token, m assets.Map, logf Logf) {
	switch tok.Kind {
	case token.KindHeading:
		doc.Append(document.Heading{
			Level: document.ClampHeadingLevel(tok.Depth),
			Text:  tok.Text,
		})

	case token.KindParagraph:
		doc.Append(document.Paragraph{Runs: compileInlines(tok, m, logf)})

	case token.KindList:
		for _, item := range tok.Items {
			doc.Append(document.BulletItem{Text: item})
		}

	case token.KindCode:
		doc.Append(document.CodeBlock{
			Lines:    strings.Split(tok.Text, "\n"),
			Language: tok.Language,
		})

	case token.KindRule:
		doc.Append(document.Rule{})

	default:
		// Unknown tokens pass their literal text through as a plain
		// paragraph; tokens with no text are dropped.
		if tok.Text != "" {
			doc.Append(document.Paragraph{
				Runs: []document.Run{document.PlainText{Text: tok.Text}},
			})
		}
	}
}

// compileInlines emits one run per inline child, in source order.
// A paragraph without inline children falls back to its raw text.
func compileInlines(tok token.Token, m assets.Map, logf Logf) []document.Run {
	if len(tok.Children) == 0 {
		return []document.Run{document.PlainText{Text: tok.Text}}
	}

	runs := make([]document.Run, 0, len(tok.Children))
	for _, child := range tok.Children {
		switch child.Kind {
		case token.InlineImage:
			runs = append(runs, resolveImage(child.HRef, m, logf))

		case token.InlineLink:
			runs = append(runs, document.Hyperlink{Text: child.Text, HRef: child.HRef})

		case token.InlineStrong:
			runs = append(runs, document.Bold{Text: child.Text})

		case token.InlineEmphasis:
			runs = append(runs, document.Italic{Text: child.Text})

		case token.InlineCodeSpan:
			runs = append(runs, document.InlineCode{Text: child.Text})

		case token.InlineLineBreak:
			runs = append(runs, document.LineBreak{})

		default:
			runs = append(runs, document.PlainText{Text: child.Text})
		}
	}
	return runs
}

// resolveImage resolves one image reference. Failure never aborts the
// document: it yields a marker carrying the original href and a warning.
func resolveImage(href string, m assets.Map, logf Logf) document.Run {
	data, ok := assets.Resolve(href, m)
	if !ok {
		logf(fmt.Sprintf("image not found: %s", href), LevelWarning)
		return document.MissingImage{HRef: href}
	}
	logf(fmt.Sprintf("embedded image %s (%d bytes)", href, len(data)), LevelSuccess)
	return document.Image{Data: data}
}
