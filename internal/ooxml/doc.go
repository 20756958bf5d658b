// Package ooxml implements the default DOCX container codec: encoding the
// document model into a WordprocessingML package and extracting markdown
// back out of one.
//
// The package format is a ZIP archive whose main part is word/document.xml.
// Encoding writes a minimal valid package (content types, relationships,
// styles, numbering, media parts); decoding stream-parses document.xml,
// resolving hyperlink and image relationships through the part's rels.
package ooxml
