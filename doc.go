// Package md2docx converts between markdown and DOCX documents.
//
// # Quick Start
//
// Create a converter and run either direction:
//
//	conv := md2docx.NewConverter()
//
//	result, err := conv.CompileAndEncode(ctx, md2docx.CompileInput{
//	    Markdown: "# Hello\n\nSee ![](img/chart.png)",
//	    Assets:   md2docx.AssetMap{"img/chart.png": chartBytes},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.docx", result.DOCX, 0644)
//
//	extracted, err := conv.DecodeAndExtract(ctx, md2docx.ExtractInput{Data: docxBytes})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.md", []byte(extracted.Markdown), 0644)
//
// # Conversion Pipeline
//
// Markdown to DOCX:
//
//  1. Preprocessing (line normalization, blank-line compression)
//  2. Tokenization via Goldmark
//  3. Compilation into the document model, resolving image references
//     against the caller-supplied AssetMap
//  4. DOCX package encoding
//
// DOCX to markdown:
//
//  1. Package decoding and markdown extraction (embedded images become
//     sequential placeholder references)
//  2. Post-processing (canonical images/figure_<n>.png paths, escape
//     cleanup)
//  3. Optional polishing (fail-open; see WithPolisher)
//
// # Asset Resolution
//
// Image references resolve against the AssetMap through a four-step
// cascade: exact key, key without a leading "./" or "/", basename match,
// then suffix match. Ties are broken lexicographically, so resolution is
// deterministic. A reference that resolves through no step renders as a
// bold red marker carrying the original reference text and logs a
// warning; it never fails the conversion.
//
// # Logging
//
// Both directions accept an optional Sink that receives progress
// messages synchronously, in chronological order. Messages carry a Level
// of info, success, warning, or error.
//
// # Concurrency
//
// A Converter is stateless and safe for concurrent use. Each conversion
// owns its counters and in-progress document; the only caller obligation
// is not to mutate an AssetMap while a conversion is reading it.
package md2docx
