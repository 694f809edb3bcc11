package command

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
)

// RunOptions controls how a build tool process is started. Env entries are
// appended to the current environment.
type RunOptions struct {
	Dir    string
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// RunResult holds everything the process wrote, whether or not it was also
// streamed.
type RunResult struct {
	Stdout []byte
	Stderr []byte
}

// Runner starts external processes. Tests substitute a recording fake.
type Runner interface {
	Run(ctx context.Context, command string, args []string, opts RunOptions) (RunResult, error)
}

// CmdRunner runs processes with os/exec.
type CmdRunner struct{}

func (CmdRunner) Run(ctx context.Context, command string, args []string, opts RunOptions) (RunResult, error) {
	var stdout, stderr bytes.Buffer

	proc := exec.CommandContext(ctx, command, args...)
	proc.Dir = opts.Dir
	proc.Stdin = opts.Stdin
	proc.Stdout = tee(&stdout, opts.Stdout)
	proc.Stderr = tee(&stderr, opts.Stderr)
	if len(opts.Env) > 0 {
		proc.Env = append(os.Environ(), opts.Env...)
	}

	err := proc.Run()
	return RunResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, err
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

var _ Runner = CmdRunner{}

// Run executes c through r.
func (c Command) Run(ctx context.Context, r Runner, opts RunOptions) (RunResult, error) {
	return r.Run(ctx, c.Executable, c.Args(), opts)
}
