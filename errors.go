package md2docx

import (
	"errors"

	"github.com/alnah/go-md2docx/internal/ooxml"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrEmptyInput    = errors.New("document bytes cannot be empty")
)

// Codec failures surface unchanged from the DOCX codec; they are aliased
// here so callers can test for them without importing internal packages.
var (
	// ErrMalformedDocument indicates the decoder could not parse the input.
	ErrMalformedDocument = ooxml.ErrMalformedDocument

	// ErrEncode indicates the encoder could not produce a package.
	ErrEncode = ooxml.ErrEncode
)
