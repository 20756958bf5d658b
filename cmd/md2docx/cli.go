package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	md2docx "github.com/alnah/go-md2docx"
)

// Sentinel errors for CLI operations.
var (
	ErrUnsupportedInput = errors.New("input must have a .md, .markdown, or .docx extension")
	ErrReadInput        = errors.New("failed to read input file")
)

// defaultConfigName is written by --init-config.
const defaultConfigName = "md2docx.yaml"

// imageRefPattern finds markdown image references so their payloads can
// be loaded into the AssetMap before compilation.
var imageRefPattern = regexp.MustCompile(`!\[[^\]]*\]\(([^)\s]+)`)

// run resolves config, builds the converter, and processes every input.
func run(flags *cliFlags, stdout, stderr io.Writer) error {
	if flags.initConfig {
		if err := WriteDefaultConfig(defaultConfigName); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Created %s\n", defaultConfigName)
		return nil
	}

	cfg := DefaultConfig()
	if flags.config != "" {
		loaded, err := LoadConfig(flags.config)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	workers := cfg.Workers
	if flags.workers > 0 {
		workers = flags.workers
	}

	polishCmd := cfg.Polish.Command
	if flags.polishCmd != "" {
		polishCmd = flags.polishCmd
	}
	if flags.noPolish {
		polishCmd = ""
	}

	var opts []md2docx.Option
	if polishCmd != "" {
		opts = append(opts, md2docx.WithPolisher(newCommandPolisher(polishCmd)))
	}
	conv := md2docx.NewConverter(opts...)

	outputDir := cfg.Output.Dir
	sink := newStderrSink(stderr, flags.verbose)

	return convertAll(conv, flags.inputs, workers, flags.output, outputDir, sink, stdout)
}

// convertAll processes inputs through a bounded worker pool. Failures are
// collected per input so one bad file does not stop the batch.
func convertAll(conv *md2docx.Converter, inputs []string, workers int, output, outputDir string, sink md2docx.Sink, stdout io.Writer) error {
	if workers < 1 {
		workers = 1
	}

	batch := len(inputs) > 1
	sem := make(chan struct{}, workers)
	errs := make([]error, len(inputs))

	var wg sync.WaitGroup
	var outMu sync.Mutex
	for i, input := range inputs {
		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			created, err := convertOne(conv, input, output, outputDir, batch, sink)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", input, err)
				return
			}
			outMu.Lock()
			for _, path := range created {
				fmt.Fprintf(stdout, "Created %s\n", path)
			}
			outMu.Unlock()
		}(i, input)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// convertOne dispatches on the input extension and returns the paths it
// created.
func convertOne(conv *md2docx.Converter, input, output, outputDir string, batch bool, sink md2docx.Sink) ([]string, error) {
	switch strings.ToLower(filepath.Ext(input)) {
	case ".md", ".markdown":
		return compileFile(conv, input, output, outputDir, batch, sink)
	case ".docx":
		return extractFile(conv, input, output, outputDir, batch, sink)
	default:
		return nil, fmt.Errorf("%w: got %q", ErrUnsupportedInput, filepath.Ext(input))
	}
}

// compileFile converts one markdown file to DOCX, loading referenced
// images from disk relative to the source file.
func compileFile(conv *md2docx.Converter, input, output, outputDir string, batch bool, sink md2docx.Sink) ([]string, error) {
	content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	result, err := conv.CompileAndEncode(context.Background(), md2docx.CompileInput{
		Markdown: string(content),
		Assets:   collectAssets(string(content), filepath.Dir(input)),
		Log:      sink,
	})
	if err != nil {
		return nil, err
	}

	outPath := resolveOutput(input, ".docx", output, outputDir, batch)
	if err := os.WriteFile(outPath, result.DOCX, 0o644); err != nil {
		return nil, err
	}
	return []string{outPath}, nil
}

// extractFile converts one DOCX file to markdown and materializes the
// deferred image payloads as images/figure_<n>.png next to the output.
func extractFile(conv *md2docx.Converter, input, output, outputDir string, batch bool, sink md2docx.Sink) ([]string, error) {
	content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
	}

	result, err := conv.DecodeAndExtract(context.Background(), md2docx.ExtractInput{
		Data: content,
		Log:  sink,
	})
	if err != nil {
		return nil, err
	}

	outPath := resolveOutput(input, ".md", output, outputDir, batch)
	if err := os.WriteFile(outPath, []byte(result.Markdown), 0o644); err != nil {
		return nil, err
	}
	created := []string{outPath}

	if hasPayload(result.Images) {
		imagesDir := filepath.Join(filepath.Dir(outPath), "images")
		if err := os.MkdirAll(imagesDir, 0o755); err != nil {
			return created, err
		}
		for i, data := range result.Images {
			if len(data) == 0 {
				continue
			}
			figPath := filepath.Join(imagesDir, fmt.Sprintf("figure_%d.png", i+1))
			if err := os.WriteFile(figPath, data, 0o644); err != nil {
				return created, err
			}
			created = append(created, figPath)
		}
	}
	return created, nil
}

// collectAssets reads every locally referenced image into an AssetMap,
// keyed by the reference exactly as written so exact-match resolution
// succeeds. Unreadable references are skipped; the compiler reports them
// as warnings with an in-document marker.
func collectAssets(markdown, baseDir string) md2docx.AssetMap {
	assets := md2docx.AssetMap{}
	for _, match := range imageRefPattern.FindAllStringSubmatch(markdown, -1) {
		href := match[1]
		if strings.Contains(href, "://") {
			continue // remote references are not fetched
		}
		if _, ok := assets[href]; ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(baseDir, filepath.FromSlash(href))) // #nosec G304
		if err != nil {
			continue
		}
		assets[href] = data
	}
	return assets
}

// resolveOutput picks the output path: explicit --output wins (treated as
// a directory for batch input), then the configured output directory,
// then the input's own directory.
func resolveOutput(input, ext, output, outputDir string, batch bool) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ext

	if output != "" {
		if batch || isDir(output) {
			return filepath.Join(output, base)
		}
		return output
	}
	if outputDir != "" {
		return filepath.Join(outputDir, base)
	}
	return filepath.Join(filepath.Dir(input), base)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func hasPayload(images [][]byte) bool {
	for _, data := range images {
		if len(data) > 0 {
			return true
		}
	}
	return false
}

// newStderrSink renders conversion log messages to stderr. Verbose mode
// shows everything; otherwise only warnings and errors surface. Safe for
// concurrent use by the batch worker pool.
func newStderrSink(w io.Writer, verbose bool) md2docx.Sink {
	var mu sync.Mutex
	return func(message string, level md2docx.Level) {
		if !verbose && level != md2docx.LevelWarning && level != md2docx.LevelError {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "[%s] %s\n", level, message)
	}
}
