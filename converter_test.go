package md2docx

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/alnah/go-md2docx/internal/document"
	"github.com/alnah/go-md2docx/internal/ooxml"
	"github.com/alnah/go-md2docx/internal/pipeline"
)

// sinkRecorder captures log messages for assertions.
type sinkRecorder struct {
	mu       sync.Mutex
	messages []string
	levels   []Level
}

func (r *sinkRecorder) sink(message string, level Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
	r.levels = append(r.levels, level)
}

func (r *sinkRecorder) has(level Level, substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.messages {
		if r.levels[i] == level && strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

const sampleMarkdown = `# Title

Some **bold** and *italic* text with ` + "`code`" + ` and a [link](https://example.com).

- first item
- second item

` + "```go\nfmt.Println(\"hi\")\n```" + `

---

![diagram](./img/diagram.png)
`

func TestCompileAndEncode_EmptyMarkdown(t *testing.T) {
	t.Parallel()

	c := NewConverter()
	if _, err := c.CompileAndEncode(context.Background(), CompileInput{}); !errors.Is(err, ErrEmptyMarkdown) {
		t.Errorf("CompileAndEncode() error = %v, want ErrEmptyMarkdown", err)
	}
}

func TestDecodeAndExtract_EmptyInput(t *testing.T) {
	t.Parallel()

	c := NewConverter()
	if _, err := c.DecodeAndExtract(context.Background(), ExtractInput{}); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("DecodeAndExtract() error = %v, want ErrEmptyInput", err)
	}
}

func TestCompileAndEncode_ProducesPackage(t *testing.T) {
	t.Parallel()

	rec := &sinkRecorder{}
	c := NewConverter()
	res, err := c.CompileAndEncode(context.Background(), CompileInput{
		Markdown: sampleMarkdown,
		Assets:   AssetMap{"img/diagram.png": []byte("pngbytes")},
		Log:      rec.sink,
	})
	if err != nil {
		t.Fatalf("CompileAndEncode() error = %v", err)
	}
	if len(res.DOCX) == 0 {
		t.Fatal("CompileAndEncode() produced no bytes")
	}
	// DOCX packages are ZIP containers.
	if !bytes.HasPrefix(res.DOCX, []byte("PK")) {
		t.Error("output is not a ZIP container")
	}
	if !rec.has(LevelSuccess, "img/diagram.png") {
		t.Errorf("no success log for resolved image, got %v", rec.messages)
	}
}

func TestCompileAndEncode_MissingAssetWarns(t *testing.T) {
	t.Parallel()

	rec := &sinkRecorder{}
	c := NewConverter()
	res, err := c.CompileAndEncode(context.Background(), CompileInput{
		Markdown: "![gone](./img/gone.png)\n",
		Log:      rec.sink,
	})
	if err != nil {
		t.Fatalf("CompileAndEncode() error = %v, missing assets must not abort", err)
	}
	if len(res.DOCX) == 0 {
		t.Fatal("no output despite recoverable failure")
	}
	if !rec.has(LevelWarning, "./img/gone.png") {
		t.Errorf("no warning for unresolved image, got %v", rec.messages)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	c := NewConverter()
	compiled, err := c.CompileAndEncode(context.Background(), CompileInput{
		Markdown: sampleMarkdown,
		Assets:   AssetMap{"img/diagram.png": []byte("pngbytes")},
	})
	if err != nil {
		t.Fatalf("CompileAndEncode() error = %v", err)
	}

	res, err := c.DecodeAndExtract(context.Background(), ExtractInput{Data: compiled.DOCX})
	if err != nil {
		t.Fatalf("DecodeAndExtract() error = %v", err)
	}

	md := res.Markdown
	for _, want := range []string{
		"# Title",
		"**bold**",
		"*italic*",
		"`code`",
		"[link](https://example.com)",
		"- first item",
		"![](images/figure_1.png)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("extracted markdown missing %q\n%s", want, md)
		}
	}
	if strings.Contains(md, pipeline.PlaceholderPrefix) {
		t.Error("extracted markdown still contains raw placeholders")
	}
	if len(res.Images) != 1 || !bytes.Equal(res.Images[0], []byte("pngbytes")) {
		t.Errorf("Images = %v, want the original payload", res.Images)
	}
}

func TestDecodeAndExtract_MalformedInput(t *testing.T) {
	t.Parallel()

	rec := &sinkRecorder{}
	c := NewConverter()
	res, err := c.DecodeAndExtract(context.Background(), ExtractInput{
		Data: []byte("definitely not a docx"),
		Log:  rec.sink,
	})
	if !errors.Is(err, ErrMalformedDocument) {
		t.Fatalf("DecodeAndExtract() error = %v, want ErrMalformedDocument", err)
	}
	if res != nil {
		t.Error("malformed input must not yield partial markdown")
	}
	if !rec.has(LevelError, "malformed") {
		t.Errorf("no error-level log, got %v", rec.messages)
	}
}

// failingEncoder stands in for the DOCX encoder to exercise the fatal path.
type failingEncoder struct{ err error }

func (f *failingEncoder) Encode(_ context.Context, _ *document.Document) ([]byte, error) {
	return nil, f.err
}

func TestCompileAndEncode_EncoderFailureLoggedAndPropagated(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("disk full")
	rec := &sinkRecorder{}
	c := NewConverter()
	c.encoder = &failingEncoder{err: sentinel}

	_, err := c.CompileAndEncode(context.Background(), CompileInput{
		Markdown: "# x\n",
		Log:      rec.sink,
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("CompileAndEncode() error = %v, want the encoder error unchanged", err)
	}
	if !rec.has(LevelError, "disk full") {
		t.Errorf("encoder failure not logged at error level, got %v", rec.messages)
	}
}

// stubDecoder returns a fixed extraction to isolate post-processing.
type stubDecoder struct{ markdown string }

func (s *stubDecoder) Decode(_ context.Context, _ []byte, _ pipeline.Logf) (*ooxml.Extraction, error) {
	return &ooxml.Extraction{Markdown: s.markdown}, nil
}

func TestDecodeAndExtract_Postprocessing(t *testing.T) {
	t.Parallel()

	c := NewConverter()
	c.decoder = &stubDecoder{markdown: `before p\_value ![](IMAGE_PLACEHOLDER_1) after\.`}

	res, err := c.DecodeAndExtract(context.Background(), ExtractInput{Data: []byte("x")})
	if err != nil {
		t.Fatalf("DecodeAndExtract() error = %v", err)
	}
	want := "before p_value ![](images/figure_1.png) after."
	if res.Markdown != want {
		t.Errorf("Markdown = %q, want %q", res.Markdown, want)
	}
}

func TestConverter_ConcurrentUse(t *testing.T) {
	t.Parallel()

	c := NewConverter()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := c.CompileAndEncode(context.Background(), CompileInput{Markdown: sampleMarkdown})
			if err != nil {
				t.Errorf("CompileAndEncode() error = %v", err)
				return
			}
			if _, err := c.DecodeAndExtract(context.Background(), ExtractInput{Data: res.DOCX}); err != nil {
				t.Errorf("DecodeAndExtract() error = %v", err)
			}
		}()
	}
	wg.Wait()
}
