// Package ui is the terminal companion spec.md §6 describes: a
// bubbletea program that renders scenario metadata, a progress gauge
// (now/duration), and consumes q/Esc as quit.
package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TickMsg is the Go shape of spec.md §6's CurrentTime(u64) message.
type TickMsg struct {
	Now      uint64
	Duration uint64
}

// QuitMsg lets the simulation side end the program even if the user
// never pressed q — a fatal config/IO error, or normal completion.
type QuitMsg struct{ Err error }

var titleStyle = lipgloss.NewStyle().Bold(true)

// Model is the bubbletea program state. It holds no simulation state of
// its own beyond the latest Tick — all of that lives in
// package config's Simulation, which this package never touches
// directly (the channel contract is the only coupling, per spec.md §5).
type Model struct {
	Scenario string
	progress progress.Model

	now, duration uint64
	quitting      bool
	err           error

	onQuit func()
}

// New constructs the program model. onQuit, if non-nil, is called
// exactly once when the user quits from the keyboard (q/Esc/ctrl+c) —
// the simulation-side context cancellation hook.
func New(scenario string, onQuit func()) Model {
	return Model{
		Scenario: scenario,
		progress: progress.New(progress.WithDefaultGradient()),
		onQuit:   onQuit,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			if m.onQuit != nil {
				m.onQuit()
			}
			return m, tea.Quit
		}
	case tea.MouseMsg:
		// accepted, nothing currently reacts to it — the program must
		// still be built with tea.WithMouseCellMotion for these to
		// arrive at all, which is what makes Mouse a real channel
		// message rather than a dead case.
	case tea.WindowSizeMsg:
		w := msg.Width - 4
		if w < 0 {
			w = 0
		}
		m.progress.Width = w
	case TickMsg:
		m.now, m.duration = msg.Now, msg.Duration
		if m.duration > 0 && m.now >= m.duration {
			m.quitting = true
			return m, tea.Quit
		}
	case QuitMsg:
		m.quitting = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		if m.err != nil {
			return fmt.Sprintf("disolv: %v\n", m.err)
		}
		return "disolv: done\n"
	}
	frac := 0.0
	if m.duration > 0 {
		frac = float64(m.now) / float64(m.duration)
	}
	return fmt.Sprintf(
		"%s\n\n%s\n\nt=%d/%d  (q to quit)\n",
		titleStyle.Render(m.Scenario), m.progress.ViewAs(frac), m.now, m.duration,
	)
}
