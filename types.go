package md2docx

// Level classifies conversion log messages.
type Level string

// Log levels, in increasing severity. Success marks a resolved image;
// warnings are recoverable (missing assets, failed polish); errors always
// accompany a returned error.
const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Sink receives conversion log messages. It is invoked synchronously, in
// chronological order, from the goroutine running the conversion. A nil
// sink discards all messages.
type Sink func(message string, level Level)

// AssetMap maps image reference strings (relative paths, bare filenames,
// or nested folder paths) to binary payloads. The converter never mutates
// it; the caller owns it for the duration of one conversion.
type AssetMap map[string][]byte

// CompileInput contains the parameters for markdown-to-DOCX conversion.
type CompileInput struct {
	Markdown string   // markdown source (required)
	Assets   AssetMap // image payloads keyed by reference (optional)
	Log      Sink     // conversion log (optional)
}

// CompileResult holds the encoded document.
type CompileResult struct {
	DOCX []byte
}

// ExtractInput contains the parameters for DOCX-to-markdown extraction.
type ExtractInput struct {
	Data []byte // DOCX package bytes (required)
	Log  Sink   // conversion log (optional)
}

// ExtractResult holds the extracted markdown and the deferred image
// payloads. The markdown references images/figure_<n>.png; Images[n-1]
// carries the corresponding payload (nil when the package part was
// missing), so callers can materialize the files next to the markdown.
type ExtractResult struct {
	Markdown string
	Images   [][]byte
}

// Option configures a Converter.
type Option func(*Converter)

// WithPolisher sets an optional markdown refinement step applied after
// extraction. The polisher is fail-open: any error or panic is logged as
// a warning and the unpolished text is used.
func WithPolisher(p Polisher) Option {
	return func(c *Converter) {
		c.polisher = p
	}
}
