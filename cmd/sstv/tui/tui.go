// Package tui drives a live scanline progress display during encode/decode,
// built on github.com/charmbracelet/bubbletea and
// github.com/charmbracelet/lipgloss. A transmission can take minutes; this
// is the only feedback that anything is moving.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// rowDone reports that one scanline has been synthesized or recovered.
type rowDone struct {
	row, total int
}

// done signals that the transfer has finished and the program should exit.
type done struct{}

type model struct {
	row, total int
	label      string
	finished   bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case rowDone:
		m.row, m.total = msg.row, msg.total
		return m, nil
	case done:
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

const barWidth = 40

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	trackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (m model) View() string {
	if m.total <= 0 {
		return ""
	}
	pct := float64(m.row) / float64(m.total)
	if pct > 1 {
		pct = 1
	}
	filled := int(pct * float64(barWidth))
	bar := barStyle.Render(strings.Repeat("#", filled)) + trackStyle.Render(strings.Repeat(".", barWidth-filled))
	status := "line"
	if m.finished {
		status = "done"
	}
	return fmt.Sprintf("%s [%s] %s %d/%d\n", labelStyle.Render(m.label), bar, status, m.row, m.total)
}

// Progress wraps a running bubbletea program that renders scanline
// completion as a live progress bar.
type Progress struct {
	program *tea.Program
	done    chan struct{}
}

// NewProgress starts the progress display for a transfer labeled by label
// (e.g. "encode M1", "decode PD120"). Run must be called from its own
// goroutine; Advance/Finish may then be called from the encode/decode loop.
func NewProgress(label string) *Progress {
	m := model{label: label}
	return &Progress{program: tea.NewProgram(m), done: make(chan struct{})}
}

// Run blocks until the display quits (via Finish, or the user pressing q /
// ctrl+c). Call it in its own goroutine.
func (p *Progress) Run() error {
	defer close(p.done)
	_, err := p.program.Run()
	return err
}

// Advance reports that row of total scanlines has completed.
func (p *Progress) Advance(row, total int) {
	p.program.Send(rowDone{row: row, total: total})
}

// Finish signals the display to render its final state and exit, then
// blocks until Run has returned.
func (p *Progress) Finish() {
	p.program.Send(done{})
	<-p.done
}
