package main

import (
	"errors"
	"testing"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want cliFlags
	}{
		{
			name: "single input",
			args: []string{"doc.md"},
			want: cliFlags{inputs: []string{"doc.md"}},
		},
		{
			name: "multiple inputs with output dir",
			args: []string{"-o", "out", "a.md", "b.docx"},
			want: cliFlags{inputs: []string{"a.md", "b.docx"}, output: "out"},
		},
		{
			name: "all options",
			args: []string{"-c", "cfg.yaml", "-w", "4", "--polish-cmd", "fmt-md", "--no-polish", "-v", "doc.md"},
			want: cliFlags{
				inputs:    []string{"doc.md"},
				config:    "cfg.yaml",
				workers:   4,
				polishCmd: "fmt-md",
				noPolish:  true,
				verbose:   true,
			},
		},
		{
			name: "version needs no input",
			args: []string{"--version"},
			want: cliFlags{version: true},
		},
		{
			name: "init-config needs no input",
			args: []string{"--init-config"},
			want: cliFlags{initConfig: true},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseFlags(tt.args)
			if err != nil {
				t.Fatalf("parseFlags(%v) error = %v", tt.args, err)
			}
			if len(got.inputs) != len(tt.want.inputs) {
				t.Fatalf("inputs = %v, want %v", got.inputs, tt.want.inputs)
			}
			for i := range got.inputs {
				if got.inputs[i] != tt.want.inputs[i] {
					t.Errorf("inputs[%d] = %q, want %q", i, got.inputs[i], tt.want.inputs[i])
				}
			}
			if got.output != tt.want.output {
				t.Errorf("output = %q, want %q", got.output, tt.want.output)
			}
			if got.config != tt.want.config {
				t.Errorf("config = %q, want %q", got.config, tt.want.config)
			}
			if got.workers != tt.want.workers {
				t.Errorf("workers = %d, want %d", got.workers, tt.want.workers)
			}
			if got.polishCmd != tt.want.polishCmd {
				t.Errorf("polishCmd = %q, want %q", got.polishCmd, tt.want.polishCmd)
			}
			if got.noPolish != tt.want.noPolish {
				t.Errorf("noPolish = %v, want %v", got.noPolish, tt.want.noPolish)
			}
			if got.verbose != tt.want.verbose {
				t.Errorf("verbose = %v, want %v", got.verbose, tt.want.verbose)
			}
			if got.version != tt.want.version {
				t.Errorf("version = %v, want %v", got.version, tt.want.version)
			}
			if got.initConfig != tt.want.initConfig {
				t.Errorf("initConfig = %v, want %v", got.initConfig, tt.want.initConfig)
			}
		})
	}
}

func TestParseFlags_NoInput(t *testing.T) {
	t.Parallel()

	if _, err := parseFlags(nil); !errors.Is(err, ErrNoInput) {
		t.Errorf("parseFlags() error = %v, want ErrNoInput", err)
	}
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	t.Parallel()

	if _, err := parseFlags([]string{"--bogus", "doc.md"}); err == nil {
		t.Error("parseFlags() accepted an unknown flag")
	}
}
