package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"payarakit/internal/remote"
)

// ErrCancelled is returned when the user leaves the picker without choosing.
var ErrCancelled = errors.New("selection cancelled")

// Picker shows the Loading placeholder next to a spinner while a remote
// listing is in flight, then lets the user choose one entry.
type Picker struct {
	title   string
	results <-chan remote.Result
	spinner spinner.Model

	loading   bool
	links     []remote.Link
	cursor    int
	chosen    int
	cancelled bool
	err       error
}

// NewPicker creates a picker fed by one asynchronous listing.
func NewPicker(title string, results <-chan remote.Result) Picker {
	return Picker{
		title:   title,
		results: results,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(StatusStyle("loading"))),
		loading: true,
		chosen:  -1,
	}
}

func (p Picker) waitForLinks() tea.Msg {
	return linksMsg(<-p.results)
}

// Init satisfies the tea.Model interface.
func (p Picker) Init() tea.Cmd {
	return tea.Batch(p.spinner.Tick, p.waitForLinks)
}

// Update satisfies the tea.Model interface.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case linksMsg:
		p.loading = false
		p.links = msg.Links
		p.err = msg.Err
		if p.err != nil || len(p.links) == 0 {
			return p, tea.Quit
		}
		return p, nil

	case spinner.TickMsg:
		if !p.loading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			p.cancelled = true
			return p, tea.Quit
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.links)-1 {
				p.cursor++
			}
		case "enter":
			if !p.loading && len(p.links) > 0 {
				p.chosen = p.cursor
				return p, tea.Quit
			}
		}
	}
	return p, nil
}

// View satisfies the tea.Model interface.
func (p Picker) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(p.title))
	b.WriteByte('\n')

	switch {
	case p.loading:
		fmt.Fprintf(&b, "%s %s\n", p.spinner.View(), remote.Loading)
	case p.err != nil:
		fmt.Fprintf(&b, "%s\n", StatusStyle("error").Render(p.err.Error()))
	case len(p.links) == 0:
		b.WriteString(StatusStyle("empty").Render("nothing to choose from"))
		b.WriteByte('\n')
	default:
		for i, link := range p.links {
			if i == p.cursor {
				b.WriteString(CursorStyle.Render("> " + link.Title))
			} else {
				b.WriteString("  " + link.Title)
			}
			b.WriteByte('\n')
		}
		b.WriteString("\n↑/↓ to move, enter to select, esc to cancel\n")
	}
	return b.String()
}

// Selected returns the chosen link once the picker has finished.
func (p Picker) Selected() (remote.Link, error) {
	switch {
	case p.err != nil:
		return remote.Link{}, p.err
	case p.cancelled, p.chosen < 0:
		return remote.Link{}, ErrCancelled
	}
	return p.links[p.chosen], nil
}

// Pick runs a picker over results and returns the chosen link.
func Pick(in io.Reader, out io.Writer, title string, results <-chan remote.Result) (remote.Link, error) {
	prog := tea.NewProgram(NewPicker(title, results), tea.WithInput(in), tea.WithOutput(out))
	final, err := prog.Run()
	if err != nil {
		return remote.Link{}, err
	}
	return final.(Picker).Selected()
}
