package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrEmptyPolishCommand indicates a polish command with no executable.
var ErrEmptyPolishCommand = errors.New("polish command cannot be empty")

// commandPolisher pipes markdown through an external command: the text is
// written to stdin and the polished result read from stdout. The library
// wraps it fail-open, so a failing command never breaks extraction.
type commandPolisher struct {
	name string
	args []string
}

// newCommandPolisher splits command on whitespace; no shell is involved.
func newCommandPolisher(command string) *commandPolisher {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return &commandPolisher{}
	}
	return &commandPolisher{name: fields[0], args: fields[1:]}
}

// Polish implements md2docx.Polisher.
func (p *commandPolisher) Polish(ctx context.Context, text string) (string, error) {
	if p.name == "" {
		return "", ErrEmptyPolishCommand
	}

	cmd := exec.CommandContext(ctx, p.name, p.args...) // #nosec G204 -- user-configured command
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("%s: %w: %s", p.name, err, strings.TrimSpace(stderr.String()))
		}
		return "", fmt.Errorf("%s: %w", p.name, err)
	}
	return stdout.String(), nil
}
