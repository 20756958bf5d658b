package ooxml

import "errors"

// Sentinel errors for DOCX codec operations.
var (
	// ErrMalformedDocument indicates the input bytes are not a readable
	// DOCX package (bad ZIP container, missing or unparseable parts).
	ErrMalformedDocument = errors.New("malformed docx document")

	// ErrEmptyDocument indicates an encode request with no blocks.
	ErrEmptyDocument = errors.New("document has no blocks")

	// ErrEncode indicates the package could not be assembled.
	ErrEncode = errors.New("docx encoding failed")
)
