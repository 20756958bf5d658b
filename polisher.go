package md2docx

import (
	"context"
	"fmt"
)

// Polisher refines extracted markdown text. Implementations may call out
// to anything (a subprocess, a remote service); the converter imposes no
// deadline, so implementations wanting bounded latency must honor ctx.
type Polisher interface {
	Polish(ctx context.Context, text string) (string, error)
}

// PolisherFunc adapts a function to the Polisher interface.
type PolisherFunc func(ctx context.Context, text string) (string, error)

// Polish implements Polisher.
func (f PolisherFunc) Polish(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// polish applies the configured polisher fail-open: any error or panic is
// reported as a warning and the original text is returned unchanged.
func (c *Converter) polish(ctx context.Context, text string, sink Sink) (out string) {
	if c.polisher == nil {
		return text
	}

	out = text
	defer func() {
		if r := recover(); r != nil {
			logTo(sink, fmt.Sprintf("polish panicked, keeping original text: %v", r), LevelWarning)
			out = text
		}
	}()

	polished, err := c.polisher.Polish(ctx, text)
	if err != nil {
		logTo(sink, fmt.Sprintf("polish failed, keeping original text: %v", err), LevelWarning)
		return text
	}
	if polished == "" {
		logTo(sink, "polish returned empty text, keeping original", LevelWarning)
		return text
	}
	return polished
}

func logTo(sink Sink, message string, level Level) {
	if sink != nil {
		sink(message, level)
	}
}
