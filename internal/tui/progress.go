package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const tickInterval = 120 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// tickMsg drives the footer spinner.
type tickMsg time.Time

// Column defines a single column in the progress table.
type Column struct {
	Header string
	Width  int
}

// Row holds the field values for a single table row.
type Row struct {
	Key    string
	Fields []string
}

// ProgressModel renders one row per background job, for example one
// namespace listing per subscription, and quits once WorkDoneMsg arrives.
type ProgressModel struct {
	columns  []Column
	rows     []Row
	rowIndex map[string]int
	verb     string
	done     bool
	err      error

	// statusCol is the index of the STATUS column, -1 if absent.
	statusCol int
	tick      int
}

// NewProgressModel creates a progress model. verb labels the footer
// ("Fetching 2/5...").
func NewProgressModel(verb string, columns []Column) ProgressModel {
	statusCol := -1
	for i, c := range columns {
		if strings.EqualFold(c.Header, "STATUS") {
			statusCol = i
			break
		}
	}
	return ProgressModel{
		columns:   columns,
		rowIndex:  make(map[string]int),
		verb:      verb,
		statusCol: statusCol,
	}
}

// AddRow pre-populates a row. Call this before the program starts.
func (m *ProgressModel) AddRow(key string, fields []string) {
	padded := make([]string, len(m.columns))
	copy(padded, fields)
	m.rowIndex[key] = len(m.rows)
	m.rows = append(m.rows, Row{Key: key, Fields: padded})
}

func scheduleTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init satisfies the tea.Model interface.
func (m ProgressModel) Init() tea.Cmd {
	return scheduleTick()
}

// Update satisfies the tea.Model interface.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.tick++
		if m.done {
			return m, nil
		}
		return m, scheduleTick()
	case RowUpdateMsg:
		m.apply(msg)
		return m, nil
	case WorkDoneMsg:
		return m.finish(nil)
	case ErrorMsg:
		return m.finish(msg.Err)
	case tea.KeyMsg:
		if k := msg.String(); k == "ctrl+c" || k == "q" {
			return m.finish(nil)
		}
	}
	return m, nil
}

// apply copies the fields of msg into the matching row. Unknown keys and
// columns are ignored.
func (m *ProgressModel) apply(msg RowUpdateMsg) {
	idx, ok := m.rowIndex[msg.Key]
	if !ok {
		return
	}
	for col, c := range m.columns {
		if v, ok := msg.Fields[c.Header]; ok {
			m.rows[idx].Fields[col] = v
		}
	}
}

func (m ProgressModel) finish(err error) (tea.Model, tea.Cmd) {
	m.done = true
	m.err = err
	return m, tea.Quit
}

// View satisfies the tea.Model interface.
func (m ProgressModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	widths := make([]int, len(m.columns))
	cells := make([]string, len(m.columns))
	for i, c := range m.columns {
		widths[i] = max(len(c.Header), c.Width)
		cells[i] = HeaderStyle.Render(pad(c.Header, widths[i]))
	}

	lines := []string{strings.Join(cells, "  ")}
	for _, row := range m.rows {
		for i, v := range row.Fields {
			v = pad(TruncateWithEllipsis(v, widths[i]), widths[i])
			if i == m.statusCol {
				v = StatusStyle(strings.TrimSpace(v)).Render(v)
			}
			cells[i] = v
		}
		lines = append(lines, strings.Join(cells, "  "))
	}

	if !m.done {
		processed, total := m.progressCounts()
		frame := spinnerFrames[m.tick%len(spinnerFrames)]
		lines = append(lines, "", fmt.Sprintf("%s %s %d/%d...", frame, m.verb, processed, total))
	}
	return strings.Join(lines, "\n") + "\n"
}

// progressCounts returns (processed, total); a row counts as processed once
// its status is neither blank, pending nor loading.
func (m ProgressModel) progressCounts() (processed, total int) {
	total = len(m.rows)
	if m.statusCol < 0 {
		return 0, total
	}
	for _, row := range m.rows {
		if !unprocessed[strings.TrimSpace(row.Fields[m.statusCol])] {
			processed++
		}
	}
	return processed, total
}

var unprocessed = map[string]bool{"": true, "pending": true, "loading": true}

// Done reports whether the work finished or the user quit.
func (m ProgressModel) Done() bool { return m.done }

// Err returns the error that ended the program, if any.
func (m ProgressModel) Err() error { return m.err }

func pad(s string, width int) string {
	if n := width - len(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// NonEmptyOrDash returns "-" for blank values and the trimmed value
// otherwise.
func NonEmptyOrDash(value string) string {
	if value = strings.TrimSpace(value); value != "" {
		return value
	}
	return "-"
}

// TruncateWithEllipsis shortens value to at most max bytes, ending in "..."
// when there is room for it.
func TruncateWithEllipsis(value string, max int) string {
	value = strings.TrimSpace(value)
	switch {
	case max <= 0:
		return ""
	case len(value) <= max:
		return value
	case max <= 3:
		return value[:max]
	}
	return value[:max-3] + "..."
}
