package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RunWithWork starts a bubbletea program for model and runs work alongside
// it. The context passed to work is cancelled if the user quits early.
func RunWithWork(ctx context.Context, out io.Writer, model ProgressModel, work func(ctx context.Context, send func(tea.Msg))) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))

	go func() {
		// Let bubbletea render the initial frame.
		time.Sleep(50 * time.Millisecond)
		work(ctx, func(msg tea.Msg) { p.Send(msg) })
		p.Send(WorkDoneMsg{})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(ProgressModel); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
