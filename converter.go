package md2docx

import (
	"context"

	"github.com/alnah/go-md2docx/internal/assets"
	"github.com/alnah/go-md2docx/internal/document"
	"github.com/alnah/go-md2docx/internal/ooxml"
	"github.com/alnah/go-md2docx/internal/pipeline"
	"github.com/alnah/go-md2docx/internal/token"
)

// Compile-time interface implementation checks.
var (
	_ docEncoder = (*ooxml.Encoder)(nil)
	_ docDecoder = (*ooxml.Decoder)(nil)
	_ Polisher   = (PolisherFunc)(nil)
)

// docEncoder abstracts the DOCX package encoder (injectable in tests).
type docEncoder interface {
	Encode(ctx context.Context, doc *document.Document) ([]byte, error)
}

// docDecoder abstracts the DOCX package decoder (injectable in tests).
type docDecoder interface {
	Decode(ctx context.Context, data []byte, logf pipeline.Logf) (*ooxml.Extraction, error)
}

// Converter runs conversions in both directions. A Converter holds no
// per-conversion state and is safe for concurrent use; each invocation
// owns its asset map, placeholder counter, and in-progress document.
type Converter struct {
	encoder  docEncoder
	decoder  docDecoder
	polisher Polisher
}

// NewConverter creates a Converter with the default DOCX codec.
// Use options to customize behavior (e.g., WithPolisher).
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		encoder: ooxml.NewEncoder(),
		decoder: ooxml.NewDecoder(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CompileAndEncode converts markdown into a DOCX package: preprocess,
// tokenize, compile against the asset map, encode. Image references that
// cannot be resolved never abort the conversion; they become visible
// in-document markers and a warning in the log. The only fatal path is
// the encoder, whose error is logged and returned unchanged.
func (c *Converter) CompileAndEncode(ctx context.Context, input CompileInput) (*CompileResult, error) {
	if input.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}
	logf := toLogf(input.Log)

	mdContent := pipeline.PreprocessMarkdown(input.Markdown)
	tokens := token.Tokenize([]byte(mdContent))
	doc := pipeline.Compile(tokens, assets.Map(input.Assets), logf)

	data, err := c.encoder.Encode(ctx, doc)
	if err != nil {
		logf(err.Error(), pipeline.LevelError)
		return nil, err
	}
	return &CompileResult{DOCX: data}, nil
}

// DecodeAndExtract converts a DOCX package into markdown: decode and
// extract (embedded images deferred to placeholder references), rewrite
// placeholders to canonical figure paths, strip over-escaped punctuation,
// then optionally polish. Decode failures are fatal and return with no
// partial markdown; polish failures are swallowed.
func (c *Converter) DecodeAndExtract(ctx context.Context, input ExtractInput) (*ExtractResult, error) {
	if len(input.Data) == 0 {
		return nil, ErrEmptyInput
	}
	logf := toLogf(input.Log)

	extraction, err := c.decoder.Decode(ctx, input.Data, logf)
	if err != nil {
		return nil, err
	}

	mdContent := pipeline.PostprocessMarkdown(extraction.Markdown)
	mdContent = c.polish(ctx, mdContent, input.Log)

	return &ExtractResult{Markdown: mdContent, Images: extraction.Images}, nil
}

// toLogf adapts the public Sink to the internal log callback.
func toLogf(sink Sink) pipeline.Logf {
	if sink == nil {
		return func(string, string) {}
	}
	return func(message, level string) {
		sink(message, Level(level))
	}
}
