package tui

import "payarakit/internal/remote"

// RowUpdateMsg updates a single row's fields by column name.
type RowUpdateMsg struct {
	Key    string
	Fields map[string]string
}

// WorkDoneMsg signals that all background work has completed.
type WorkDoneMsg struct{}

// ErrorMsg signals a fatal error; the TUI should quit.
type ErrorMsg struct {
	Err error
}

// linksMsg delivers a finished remote listing to the picker.
type linksMsg remote.Result
