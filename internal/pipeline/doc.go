// Package pipeline implements the conversion stages between the markdown
// token stream and the document model: preprocessing of raw markdown,
// compilation of tokens into a Document, and post-processing of extracted
// markdown (placeholder rewriting and escape cleanup).
package pipeline
