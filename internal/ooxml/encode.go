package ooxml

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/alnah/go-md2docx/internal/document"
)

// xmlEscaper covers the five characters that must not appear raw in
// WordprocessingML text or attribute content.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Encoder assembles a Document into a DOCX package.
type Encoder struct{}

// NewEncoder creates the default DOCX encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// relationship is one entry of the document part's rels.
type relationship struct {
	id       string
	relType  string
	target   string
	external bool
}

// mediaItem is one embedded image part.
type mediaItem struct {
	name string
	data []byte
}

// encodeState accumulates the document body, relationships, and media
// parts while blocks are rendered.
type encodeState struct {
	body    strings.Builder
	rels    []relationship
	media   []mediaItem
	nextRel int
}

const (
	relTypeHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relTypeImage     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relTypeNumbering = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
)

// Encode renders the document into DOCX bytes. The block order of doc is
// the paragraph order of the output, and all styling comes from the static
// style table, so output is reproducible byte for byte.
func (e *Encoder) Encode(ctx context.Context, doc *document.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil || len(doc.Blocks) == 0 {
		return nil, ErrEmptyDocument
	}

	st := &encodeState{nextRel: 3} // rId1 and rId2 are styles and numbering
	for _, b := range doc.Blocks {
		st.writeBlock(b)
	}

	return assemblePackage(st)
}

func (st *encodeState) addRel(relType, target string, external bool) string {
	id := fmt.Sprintf("rId%d", st.nextRel)
	st.nextRel++
	st.rels = append(st.rels, relationship{id: id, relType: relType, target: target, external: external})
	return id
}

func (st *encodeState) writeBlock(b document.Block) {
	switch block := b.(type) {
	case document.Heading:
		st.writeHeading(block)
	case document.Paragraph:
		st.writeParagraph(block)
	case document.BulletItem:
		st.writeBulletItem(block)
	case document.CodeBlock:
		st.writeCodeBlock(block)
	case document.Rule:
		st.writeRule()
	}
}

func (st *encodeState) writeHeading(h document.Heading) {
	pPr := "<w:pPr>" +
		fmt.Sprintf(`<w:pStyle w:val="%s%d"/>`, document.StyleNameHeadingPrefix, h.Level) +
		spacingXML(document.HeadingStyle) +
		"</w:pPr>"
	st.body.WriteString("<w:p>" + pPr + textRun(document.RunStyle{}, "", h.Text) + "</w:p>")
}

func (st *encodeState) writeParagraph(p document.Paragraph) {
	st.body.WriteString("<w:p><w:pPr>" + spacingXML(document.ParagraphStyle) + "</w:pPr>")
	for _, r := range p.Runs {
		st.writeRun(r)
	}
	st.body.WriteString("</w:p>")
}

func (st *encodeState) writeRun(r document.Run) {
	switch run := r.(type) {
	case document.PlainText:
		st.body.WriteString(textRun(document.RunStyle{}, "", run.Text))
	case document.Bold:
		st.body.WriteString(textRun(document.RunStyle{Bold: true}, "", run.Text))
	case document.Italic:
		st.body.WriteString(textRun(document.RunStyle{Italic: true}, "", run.Text))
	case document.InlineCode:
		st.body.WriteString(textRun(document.InlineCodeStyle, document.StyleNameCodeText, run.Text))
	case document.Hyperlink:
		id := st.addRel(relTypeHyperlink, run.HRef, true)
		st.body.WriteString(fmt.Sprintf(`<w:hyperlink r:id="%s">`, id) +
			textRun(document.HyperlinkStyle, "", run.Text) +
			"</w:hyperlink>")
	case document.Image:
		st.writeImage(run)
	case document.MissingImage:
		// Framed by breaks so the marker stands on its own line.
		st.body.WriteString("<w:r><w:br/></w:r>" +
			textRun(document.MissingImageStyle, "", run.HRef) +
			"<w:r><w:br/></w:r>")
	case document.LineBreak:
		st.body.WriteString("<w:r><w:br/></w:r>")
	}
}

func (st *encodeState) writeImage(img document.Image) {
	n := len(st.media) + 1
	name := fmt.Sprintf("image%d%s", n, mediaExt(img.Data))
	st.media = append(st.media, mediaItem{name: name, data: img.Data})
	id := st.addRel(relTypeImage, "media/"+name, false)

	st.body.WriteString(fmt.Sprintf(`<w:r><w:drawing><wp:inline distT="0" distB="0" distL="0" distR="0">`+
		`<wp:extent cx="%d" cy="%d"/>`+
		`<wp:docPr id="%d" name="figure %d"/>`+
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:pic>`+
		`<pic:nvPicPr><pic:cNvPr id="%d" name="figure %d"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%d" cy="%d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`,
		document.ImageExtentCX, document.ImageExtentCY,
		n, n, n, n, id,
		document.ImageExtentCX, document.ImageExtentCY))
}

func (st *encodeState) writeBulletItem(item document.BulletItem) {
	pPr := "<w:pPr>" +
		fmt.Sprintf(`<w:pStyle w:val="%s"/>`, document.StyleNameListParagraph) +
		`<w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr>` +
		spacingXML(document.BulletStyle) +
		"</w:pPr>"
	st.body.WriteString("<w:p>" + pPr + textRun(document.RunStyle{}, "", item.Text) + "</w:p>")
}

// writeCodeBlock renders k lines as k fixed-width runs separated by k-1
// explicit breaks inside one bordered, shaded paragraph.
func (st *encodeState) writeCodeBlock(cb document.CodeBlock) {
	bs := document.CodeBlockStyle
	pPr := "<w:pPr>" +
		fmt.Sprintf(`<w:pStyle w:val="%s"/>`, document.StyleNameCode) +
		borderAllXML(*bs.BorderAll) +
		shadingXML(bs.Shading) +
		spacingXML(bs) +
		fmt.Sprintf(`<w:ind w:left="%d" w:right="%d"/>`, bs.IndentLeft, bs.IndentRight) +
		"</w:pPr>"

	st.body.WriteString("<w:p>" + pPr)
	for i, line := range cb.Lines {
		if i > 0 {
			st.body.WriteString("<w:r><w:br/></w:r>")
		}
		st.body.WriteString(textRun(document.CodeTextStyle, "", line))
	}
	st.body.WriteString("</w:p>")
}

func (st *encodeState) writeRule() {
	bs := document.RuleStyle
	pPr := "<w:pPr>" +
		fmt.Sprintf(`<w:pBdr><w:bottom w:val="%s" w:sz="%d" w:space="1" w:color="%s"/></w:pBdr>`,
			bs.BorderBottom.Style, bs.BorderBottom.Size, bs.BorderBottom.Color) +
		spacingXML(bs) +
		"</w:pPr>"
	st.body.WriteString("<w:p>" + pPr + "</w:p>")
}

// textRun builds one run with character properties from the style table.
func textRun(rs document.RunStyle, rStyle, text string) string {
	var rPr strings.Builder
	if rStyle != "" {
		rPr.WriteString(fmt.Sprintf(`<w:rStyle w:val="%s"/>`, rStyle))
	}
	if rs.Font != "" {
		rPr.WriteString(fmt.Sprintf(`<w:rFonts w:ascii="%s" w:hAnsi="%s" w:cs="%s"/>`, rs.Font, rs.Font, rs.Font))
	}
	if rs.Bold {
		rPr.WriteString("<w:b/>")
	}
	if rs.Italic {
		rPr.WriteString("<w:i/>")
	}
	if rs.Underline {
		rPr.WriteString(`<w:u w:val="single"/>`)
	}
	if rs.Color != "" {
		rPr.WriteString(fmt.Sprintf(`<w:color w:val="%s"/>`, rs.Color))
	}
	if rs.Shading != "" {
		rPr.WriteString(fmt.Sprintf(`<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, rs.Shading))
	}
	if rs.Size > 0 {
		rPr.WriteString(fmt.Sprintf(`<w:sz w:val="%d"/>`, rs.Size))
	}

	props := ""
	if rPr.Len() > 0 {
		props = "<w:rPr>" + rPr.String() + "</w:rPr>"
	}
	return "<w:r>" + props + `<w:t xml:space="preserve">` + xmlEscaper.Replace(text) + "</w:t></w:r>"
}

func spacingXML(bs document.BlockStyle) string {
	attrs := ""
	if bs.SpacingBefore > 0 {
		attrs += fmt.Sprintf(` w:before="%d"`, bs.SpacingBefore)
	}
	if bs.SpacingAfter > 0 {
		attrs += fmt.Sprintf(` w:after="%d"`, bs.SpacingAfter)
	}
	if bs.LineSpacing > 0 {
		attrs += fmt.Sprintf(` w:line="%d" w:lineRule="auto"`, bs.LineSpacing)
	}
	if attrs == "" {
		return ""
	}
	return "<w:spacing" + attrs + "/>"
}

func borderAllXML(b document.BorderSpec) string {
	side := func(name string) string {
		return fmt.Sprintf(`<w:%s w:val="%s" w:sz="%d" w:space="1" w:color="%s"/>`, name, b.Style, b.Size, b.Color)
	}
	return "<w:pBdr>" + side("top") + side("left") + side("bottom") + side("right") + "</w:pBdr>"
}

func shadingXML(fill string) string {
	if fill == "" {
		return ""
	}
	return fmt.Sprintf(`<w:shd w:val="clear" w:color="auto" w:fill="%s"/>`, fill)
}

// mediaExt sniffs the payload for a known image format.
func mediaExt(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return ".jpeg"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

// assemblePackage writes all parts into the ZIP container in a fixed order
// with zero timestamps, keeping the output deterministic.
func assemblePackage(st *encodeState) ([]byte, error) {
	var relsXML strings.Builder
	relsXML.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n" +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + "\n" +
		`<Relationship Id="rId1" Type="` + relTypeStyles + `" Target="styles.xml"/>` + "\n" +
		`<Relationship Id="rId2" Type="` + relTypeNumbering + `" Target="numbering.xml"/>` + "\n")
	for _, rel := range st.rels {
		relsXML.WriteString(fmt.Sprintf(`<Relationship Id="%s" Type="%s" Target="%s"`,
			rel.id, rel.relType, xmlEscaper.Replace(rel.target)))
		if rel.external {
			relsXML.WriteString(` TargetMode="External"`)
		}
		relsXML.WriteString("/>\n")
	}
	relsXML.WriteString("</Relationships>")

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/document.xml", []byte(documentHeader + st.body.String() + documentFooter)},
		{"word/_rels/document.xml.rels", []byte(relsXML.String())},
		{"word/styles.xml", []byte(stylesXML)},
		{"word/numbering.xml", []byte(numberingXML)},
	}
	for _, m := range st.media {
		parts = append(parts, struct {
			name string
			data []byte
		}{"word/media/" + m.name, m.data})
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		f, err := zw.CreateHeader(&zip.FileHeader{Name: part.name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("%w: creating part %s: %v", ErrEncode, part.name, err)
		}
		if _, err := f.Write(part.data); err != nil {
			return nil, fmt.Errorf("%w: writing part %s: %v", ErrEncode, part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing package: %v", ErrEncode, err)
	}
	return buf.Bytes(), nil
}
