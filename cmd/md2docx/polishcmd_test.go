package main

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test relies on unix core utilities")
	}
}

func TestCommandPolisher_Passthrough(t *testing.T) {
	t.Parallel()
	requireUnix(t)

	p := newCommandPolisher("cat")
	got, err := p.Polish(context.Background(), "# hello\n")
	if err != nil {
		t.Fatalf("Polish() error = %v", err)
	}
	if got != "# hello\n" {
		t.Errorf("Polish() = %q, want input passed through", got)
	}
}

func TestCommandPolisher_Transform(t *testing.T) {
	t.Parallel()
	requireUnix(t)

	p := newCommandPolisher("tr a-z A-Z")
	got, err := p.Polish(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Polish() error = %v", err)
	}
	if got != "HELLO" {
		t.Errorf("Polish() = %q, want %q", got, "HELLO")
	}
}

func TestCommandPolisher_Failure(t *testing.T) {
	t.Parallel()
	requireUnix(t)

	p := newCommandPolisher("false")
	if _, err := p.Polish(context.Background(), "text"); err == nil {
		t.Error("Polish() succeeded, want exit status error")
	}
}

func TestCommandPolisher_NotFound(t *testing.T) {
	t.Parallel()

	p := newCommandPolisher("definitely-not-a-real-command-xyz")
	_, err := p.Polish(context.Background(), "text")
	if err == nil {
		t.Fatal("Polish() succeeded, want command-not-found error")
	}
	if !strings.Contains(err.Error(), "definitely-not-a-real-command-xyz") {
		t.Errorf("error does not name the command: %v", err)
	}
}

func TestCommandPolisher_Empty(t *testing.T) {
	t.Parallel()

	p := newCommandPolisher("   ")
	if _, err := p.Polish(context.Background(), "text"); !errors.Is(err, ErrEmptyPolishCommand) {
		t.Errorf("Polish() error = %v, want ErrEmptyPolishCommand", err)
	}
}

func TestCommandPolisher_CanceledContext(t *testing.T) {
	t.Parallel()
	requireUnix(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newCommandPolisher("cat")
	if _, err := p.Polish(ctx, "text"); err == nil {
		t.Error("Polish() succeeded with canceled context")
	}
}
