package ooxml

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/alnah/go-md2docx/internal/pipeline"
)

// Extraction is the result of decoding one DOCX package. Markdown still
// carries IMAGE_PLACEHOLDER_<n> references; Images holds the payloads in
// figure order so callers can materialize images/figure_<n>.png.
type Extraction struct {
	Markdown string
	Images   [][]byte
}

// Decoder extracts markdown from a DOCX package.
type Decoder struct{}

// NewDecoder creates the default DOCX decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Paragraph styles the extractor maps back to markdown. "Source Code" and
// "SourceCode" cover documents produced by other tools.
var (
	headingMarkers = map[string]string{
		"Heading1": "#",
		"Heading2": "##",
		"Heading3": "###",
	}
	codeParagraphStyles = map[string]bool{
		"Code":        true,
		"SourceCode":  true,
		"Source Code": true,
	}
)

// Decode parses the package and walks word/document.xml into markdown.
// Malformed input is fatal: the error is logged and returned with no
// partial markdown. Placeholder numbering starts at 1 on every call.
func (d *Decoder) Decode(ctx context.Context, data []byte, logf pipeline.Logf) (*Extraction, error) {
	if logf == nil {
		logf = func(string, string) {}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		logf(err.Error(), pipeline.LevelError)
		return nil, err
	}

	var docFile *zip.File
	media := make(map[string][]byte)
	var relsData []byte
	for _, f := range zr.File {
		switch {
		case f.Name == "word/document.xml":
			docFile = f
		case f.Name == "word/_rels/document.xml.rels":
			relsData, err = readZipFile(f)
			if err != nil {
				err = fmt.Errorf("%w: %v", ErrMalformedDocument, err)
				logf(err.Error(), pipeline.LevelError)
				return nil, err
			}
		case strings.HasPrefix(f.Name, "word/media/"):
			payload, err := readZipFile(f)
			if err != nil {
				err = fmt.Errorf("%w: %v", ErrMalformedDocument, err)
				logf(err.Error(), pipeline.LevelError)
				return nil, err
			}
			media[strings.TrimPrefix(f.Name, "word/")] = payload
		}
	}
	if docFile == nil {
		err = fmt.Errorf("%w: word/document.xml not found", ErrMalformedDocument)
		logf(err.Error(), pipeline.LevelError)
		return nil, err
	}

	rc, err := docFile.Open()
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		logf(err.Error(), pipeline.LevelError)
		return nil, err
	}
	defer rc.Close()

	p := &docParser{
		rels:  parseRels(relsData),
		media: media,
		logf:  logf,
	}
	if err := p.parse(rc); err != nil {
		err = fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		logf(err.Error(), pipeline.LevelError)
		return nil, err
	}

	return &Extraction{Markdown: p.out.String(), Images: p.images}, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// parseRels maps relationship IDs to targets. A missing or unparseable
// rels part degrades to an empty map: hyperlinks lose their destination
// and images their payload, but text extraction still succeeds.
func parseRels(data []byte) map[string]string {
	rels := make(map[string]string)
	if len(data) == 0 {
		return rels
	}
	var parsed struct {
		Relationships []struct {
			ID     string `xml:"Id,attr"`
			Target string `xml:"Target,attr"`
		} `xml:"Relationship"`
	}
	if err := xml.Unmarshal(data, &parsed); err != nil {
		return rels
	}
	for _, rel := range parsed.Relationships {
		rels[rel.ID] = rel.Target
	}
	return rels
}

// docParser stream-parses word/document.xml, tracking paragraph, run, and
// hyperlink context to produce markdown.
type docParser struct {
	out    strings.Builder
	images [][]byte
	rels   map[string]string
	media  map[string][]byte
	logf   pipeline.Logf

	stack []string

	inPara    bool
	paraStyle string
	isList    bool
	paraMD    strings.Builder

	inRun   bool
	runBold bool
	runItal bool
	runCode bool
	runText strings.Builder

	inLink     bool
	linkTarget string
	linkMD     strings.Builder

	codeLines []string // pending code block, flushed at the next non-code paragraph
}

func (p *docParser) push(name string) { p.stack = append(p.stack, name) }
func (p *docParser) pop() {
	if len(p.stack) > 0 {
		p.stack = p.stack[:len(p.stack)-1]
	}
}
func (p *docParser) inCtx(name string) bool {
	for _, s := range p.stack {
		if s == name {
			return true
		}
	}
	return false
}

func (p *docParser) inCodePara() bool {
	return codeParagraphStyles[p.paraStyle]
}

func (p *docParser) parse(r io.Reader) error {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			p.push(t.Name.Local)
			p.handleStart(t)
		case xml.EndElement:
			p.handleEnd(t.Name.Local)
			p.pop()
		case xml.CharData:
			if p.inRun && p.inCtx("t") {
				p.runText.WriteString(string(t))
			}
		}
	}
	p.flushCode()
	return nil
}

func (p *docParser) handleStart(t xml.StartElement) {
	switch t.Name.Local {
	case "p":
		p.inPara = true
		p.paraStyle = ""
		p.isList = false
		p.paraMD.Reset()

	case "pStyle":
		if p.inPara && p.inCtx("pPr") {
			p.paraStyle = attrVal(t, "val")
		}

	case "numPr":
		if p.inPara && p.inCtx("pPr") {
			p.isList = true
		}

	case "r":
		if p.inPara {
			p.inRun = true
			p.runBold = false
			p.runItal = false
			p.runCode = false
			p.runText.Reset()
		}

	case "b":
		if p.inRun && p.inCtx("rPr") && attrVal(t, "val") != "0" && attrVal(t, "val") != "false" {
			p.runBold = true
		}

	case "i":
		if p.inRun && p.inCtx("rPr") && attrVal(t, "val") != "0" && attrVal(t, "val") != "false" {
			p.runItal = true
		}

	case "rStyle":
		if p.inRun && p.inCtx("rPr") && attrVal(t, "val") == "CodeText" {
			p.runCode = true
		}

	case "br":
		if p.inRun {
			p.runText.WriteByte('\n')
		}

	case "hyperlink":
		if p.inPara {
			p.inLink = true
			p.linkTarget = p.rels[attrVal(t, "id")]
			p.linkMD.Reset()
		}

	case "blip":
		if p.inPara {
			p.interceptImage(attrVal(t, "embed"))
		}
	}
}

func (p *docParser) handleEnd(local string) {
	switch local {
	case "r":
		if p.inRun {
			p.endRun()
			p.inRun = false
		}

	case "hyperlink":
		if p.inLink {
			p.paraMD.WriteString("[" + p.linkMD.String() + "](" + p.linkTarget + ")")
			p.inLink = false
		}

	case "p":
		if p.inPara {
			p.endPara()
			p.inPara = false
		}
	}
}

func (p *docParser) endRun() {
	text := p.runText.String()
	if text == "" {
		return
	}

	var md string
	switch {
	case p.inCodePara():
		md = text // code lines stay verbatim
	case p.runCode:
		md = "`" + text + "`"
	default:
		md = applyEmphasis(escapeMarkdown(text), p.runBold, p.runItal)
	}

	if p.inLink {
		p.linkMD.WriteString(md)
	} else {
		p.paraMD.WriteString(md)
	}
}

func (p *docParser) endPara() {
	if p.inCodePara() {
		p.codeLines = append(p.codeLines, strings.Split(p.paraMD.String(), "\n")...)
		return
	}

	p.flushCode()

	text := strings.TrimSpace(p.paraMD.String())
	if text == "" {
		return
	}

	if marker, ok := headingMarkers[p.paraStyle]; ok {
		p.out.WriteString(marker + " " + text + "\n\n")
		return
	}
	if p.isList || p.paraStyle == "ListParagraph" {
		p.out.WriteString("- " + text + "\n")
		return
	}
	p.out.WriteString(text + "\n\n")
}

// flushCode emits the pending code paragraphs as one fenced block, with a
// best-effort language guess.
func (p *docParser) flushCode() {
	if len(p.codeLines) == 0 {
		return
	}
	code := strings.Join(p.codeLines, "\n")
	p.codeLines = nil
	p.out.WriteString("```" + guessLanguage(code) + "\n" + code + "\n```\n\n")
}

// interceptImage substitutes the next sequential placeholder for an
// embedded image instead of inlining its data.
func (p *docParser) interceptImage(relID string) {
	target := p.rels[relID]
	p.images = append(p.images, p.media[target])
	n := len(p.images)

	placeholder := fmt.Sprintf("%s%d", pipeline.PlaceholderPrefix, n)
	p.paraMD.WriteString("![](" + placeholder + ")")
	p.logf(fmt.Sprintf("embedded image %d deferred as %s", n, placeholder), pipeline.LevelInfo)
}

// guessLanguage asks chroma to identify the code block's language for the
// fence info string. Unknown content yields a bare fence.
func guessLanguage(code string) string {
	lexer := lexers.Analyse(code)
	if lexer == nil {
		return ""
	}
	cfg := lexer.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}

// markdownEscapes is the character set escaped in extracted plain text.
// The post-processor strips the escapes markdown consumers do not need.
const markdownEscapes = "\\`*_[]()#.-\"'!"

func escapeMarkdown(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 128 && strings.ContainsRune(markdownEscapes, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func applyEmphasis(text string, bold, italic bool) string {
	switch {
	case bold && italic:
		return "***" + text + "***"
	case bold:
		return "**" + text + "**"
	case italic:
		return "*" + text + "*"
	}
	return text
}

func attrVal(t xml.StartElement, localName string) string {
	for _, a := range t.Attr {
		if a.Name.Local == localName {
			return a.Value
		}
	}
	return ""
}
