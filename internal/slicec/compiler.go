// Package slicec is the boundary to the external Slice compiler. The
// language server never parses Slice itself: it invokes the compiler with a
// list of resolved reference paths and decodes the compilation dump it
// returns.
package slicec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"slice-language-server/internal/ast"
	"slice-language-server/internal/diag"
)

// Options are the resolved inputs for one compiler invocation.
type Options struct {
	// References are the search paths the compiler consults to resolve
	// cross-file references, in order.
	References []string
	// LintLevels are the configured per-lint level overrides applied by
	// RemapDiagnostics after compilation.
	LintLevels map[string]string
}

// CompilationState is the output of one successful compiler run. Files is
// keyed by absolute file path.
type CompilationState struct {
	Files       map[string]*ast.File
	Diagnostics []diag.Diagnostic
}

// Compiler abstracts the external Slice compiler. Implementations must be
// safe to call repeatedly; each call is one full compilation.
type Compiler interface {
	Compile(ctx context.Context, opts Options) (*CompilationState, error)
}

// CompileFunc adapts a function to the Compiler interface.
type CompileFunc func(ctx context.Context, opts Options) (*CompilationState, error)

func (f CompileFunc) Compile(ctx context.Context, opts Options) (*CompilationState, error) {
	return f(ctx, opts)
}

// DefaultCommand is the compiler executable looked up on PATH when no
// explicit path is configured.
const DefaultCommand = "slicec"

// CommandCompiler shells out to the slicec binary and decodes the JSON
// compilation dump it writes to stdout.
type CommandCompiler struct {
	// Path of the slicec executable; DefaultCommand when empty.
	Path string
}

// NewCommandCompiler returns a CommandCompiler running the given executable.
func NewCommandCompiler(path string) *CommandCompiler {
	if path == "" {
		path = DefaultCommand
	}
	return &CommandCompiler{Path: path}
}

// Compile runs the compiler over the reference paths. A non-zero exit with a
// decodable dump still counts as success — the compiler exits non-zero when
// it reports errors. Anything else (missing binary, undecodable output) is
// an invocation failure.
func (c *CommandCompiler) Compile(ctx context.Context, opts Options) (*CompilationState, error) {
	args := []string{"--dump-json"}
	for _, ref := range opts.References {
		args = append(args, "-R", ref)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if stdout.Len() > 0 {
		state, err := DecodeCompilationState(stdout.Bytes())
		if err == nil {
			return state, nil
		}
		return nil, fmt.Errorf("decoding %s output: %w", c.Path, err)
	}
	if runErr != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("running %s: %w: %s", c.Path, runErr, msg)
		}
		return nil, fmt.Errorf("running %s: %w", c.Path, runErr)
	}
	return nil, fmt.Errorf("%s produced no output", c.Path)
}
