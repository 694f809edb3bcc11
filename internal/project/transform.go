package project

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"payarakit/internal/command"
	"payarakit/internal/logx"
	"payarakit/internal/product"
)

// ErrTimeout is returned when a migration output never appears.
var ErrTimeout = errors.New("migration timed out")

const (
	migratedSuffix = "-JakartaEE10"

	DefaultMigrationTimeout = 5 * time.Minute
	DefaultPollInterval     = time.Second
)

// TransformTarget is where the migrated copy of source is written.
func TransformTarget(source, destDir string) string {
	return filepath.Join(destDir, filepath.Base(filepath.Clean(source))+migratedSuffix)
}

// WaitForFile polls for path every interval until it exists, ctx ends or
// timeout elapses.
func WaitForFile(ctx context.Context, fs afero.Fs, path string, timeout, interval time.Duration) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if ok, _ := afero.Exists(fs, path); ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("%w: %s did not appear within %s", ErrTimeout, path, timeout)
		case <-ticker.C:
		}
	}
}

// Migration runs the Jakarta EE transformer and waits for its output.
type Migration struct {
	Runner     command.Runner
	Fs         afero.Fs
	Executable string
	Timeout    time.Duration
	Interval   time.Duration
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     logrus.FieldLogger
}

// Run migrates the project at source into destDir and returns the new
// project directory. It succeeds once the transformer exits cleanly and the
// output directory exists.
func (m Migration) Run(ctx context.Context, line product.Line, backend product.Backend, source, destDir string) (string, error) {
	logger := logx.OrDiscard(m.Logger)
	if m.Fs == nil {
		m.Fs = afero.NewOsFs()
	}
	if m.Timeout <= 0 {
		m.Timeout = DefaultMigrationTimeout
	}
	if m.Interval <= 0 {
		m.Interval = DefaultPollInterval
	}
	target := TransformTarget(source, destDir)

	cmd, err := command.Synthesize(command.Request{
		Line:       line,
		Backend:    backend,
		Action:     command.Transform,
		Executable: m.Executable,
		Source:     source,
		Target:     target,
	})
	if err != nil {
		return "", err
	}
	logger.Infof("running %s", cmd)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	go func() {
		_, err := cmd.Run(ctx, m.Runner, command.RunOptions{Dir: source, Stdout: m.Stdout, Stderr: m.Stderr})
		runErr <- err
	}()

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- WaitForFile(ctx, m.Fs, target, m.Timeout, m.Interval)
	}()

	var exited, appeared bool
	for !(exited && appeared) {
		select {
		case err := <-runErr:
			if err != nil {
				return "", fmt.Errorf("run transformer: %w", err)
			}
			exited = true
		case err := <-waitErr:
			if err != nil {
				logger.Errorf("wait for %s: %v", target, err)
				return "", err
			}
			appeared = true
		}
	}
	logger.Infof("migrated %s to %s", source, target)
	return target, nil
}
