// Package tui renders the intervention countdown.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)
	messageStyle = lipgloss.NewStyle().Bold(true)
	clockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

// TimerModel counts down the intervention duration while showing its
// message.
type TimerModel struct {
	timer    timer.Model
	message  string
	done     bool
	quitting bool
}

// NewTimer creates a countdown model for the given message and duration.
func NewTimer(message string, seconds int) TimerModel {
	return TimerModel{
		timer:   timer.New(time.Duration(seconds) * time.Second),
		message: message,
	}
}

func (m TimerModel) Init() tea.Cmd {
	return m.timer.Init()
}

func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timer.TickMsg, timer.StartStopMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case timer.TimeoutMsg:
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ":
			return m, m.timer.Toggle()
		}
	}
	return m, nil
}

func (m TimerModel) View() string {
	if m.done {
		return boxStyle.Render(messageStyle.Render(m.message)+
			"\n\nTime's up. How did it go? Record it with 'unstick session checkin'.") + "\n"
	}
	if m.quitting {
		return ""
	}

	body := messageStyle.Render(m.message) +
		"\n\n" + clockStyle.Render(fmt.Sprintf("Time remaining: %s", m.timer.View())) +
		"\n\n" + helpStyle.Render("space pause/resume · q quit")
	return boxStyle.Render(body) + "\n"
}

// RunTimer runs the countdown to completion (or until the user quits).
// A non-positive duration is a no-op.
func RunTimer(message string, seconds int) error {
	if seconds <= 0 {
		return nil
	}
	p := tea.NewProgram(NewTimer(message, seconds))
	_, err := p.Run()
	return err
}
