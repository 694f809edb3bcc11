package tui

import (
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/term"
)

// OutputMode describes how progress output should be rendered.
type OutputMode int

const (
	// ModeTUI uses bubbletea for interactive rendering.
	ModeTUI OutputMode = iota
	// ModePlain writes static tables after the work completes.
	ModePlain
	// ModeJSON writes structured JSON output.
	ModeJSON
)

// DetectMode determines the appropriate output mode for the given writer.
func DetectMode(out io.Writer, jsonOutput bool) OutputMode {
	if jsonOutput {
		return ModeJSON
	}
	if !IsTerminal(out) {
		return ModePlain
	}
	if runtime.GOOS != "windows" {
		t := os.Getenv("TERM")
		if t == "" || strings.EqualFold(t, "dumb") {
			return ModePlain
		}
	}
	return ModeTUI
}

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
