package tui

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// StatusWriter redraws a single spinner line in place while a long
// blocking step, such as waiting for a migration, runs in the background.
type StatusWriter struct {
	w       io.Writer
	mu      sync.Mutex
	message string
	started time.Time
	done    chan struct{}
	exited  chan struct{}
	stopped bool
}

// NewStatusWriter starts the spinner on w.
func NewStatusWriter(w io.Writer) *StatusWriter {
	sw := &StatusWriter{
		w:       w,
		started: time.Now(),
		done:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	go sw.loop()
	return sw
}

// Update replaces the message and restarts the elapsed clock.
func (sw *StatusWriter) Update(msg string) {
	sw.mu.Lock()
	sw.message = msg
	sw.started = time.Now()
	sw.mu.Unlock()
}

// Stop clears the status line and stops the spinner.
func (sw *StatusWriter) Stop() {
	sw.Finish("", "")
}

// Finish stops the spinner and, when msg is set, leaves a final line styled
// for status.
func (sw *StatusWriter) Finish(status, msg string) {
	sw.mu.Lock()
	if sw.stopped {
		sw.mu.Unlock()
		return
	}
	sw.stopped = true
	elapsed := time.Since(sw.started)
	sw.mu.Unlock()
	close(sw.done)
	<-sw.exited

	fmt.Fprint(sw.w, "\r\033[K")
	if msg != "" {
		fmt.Fprintf(sw.w, "%s (%s)\n", StatusStyle(status).Render(msg), formatElapsed(elapsed))
	}
}

func (sw *StatusWriter) loop() {
	defer close(sw.exited)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for tick := 0; ; tick++ {
		select {
		case <-sw.done:
			return
		case <-ticker.C:
			sw.mu.Lock()
			msg, start := sw.message, sw.started
			sw.mu.Unlock()
			fmt.Fprintf(sw.w, "\r\033[K%s %s (%s)", spinnerFrames[tick%len(spinnerFrames)], msg, formatElapsed(time.Since(start)))
		}
	}
}

// formatElapsed formats a duration for display in the status line.
func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < 10*time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
