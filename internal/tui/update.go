package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/caretend/caretend/internal/constants"
	"github.com/caretend/caretend/internal/models"
	"github.com/caretend/caretend/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case derivedMsg:
		m.state = models.DayState(msg)
		m.err = nil
		m.items = flattenItems(m.state)
		if m.cursor >= len(m.items) {
			m.cursor = len(m.items) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case deriveErrMsg:
		m.err = msg.err
		return m, nil

	case tickMsg:
		// A new minute may open or close routine windows; a new day
		// swaps the whole date over.
		m.date = time.Now().Format(constants.DateFormat)
		return m, tea.Batch(m.derive(), tickCmd())

	case changedMsg:
		return m, tea.Batch(m.derive(), m.waitForChange())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if ref, ok := m.selected(); ok {
			return m, m.mutate(func() error {
				return m.cfg.SetDone(m.date, ref.routineID, ref.itemID, !ref.done)
			})
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		if ref, ok := m.selected(); ok {
			return m, m.mutate(func() error {
				return m.cfg.ClearOverride(m.date, ref.routineID, ref.itemID)
			})
		}
		return m, nil

	case key.Matches(msg, m.keys.Snooze):
		if ref, ok := m.selected(); ok {
			until := utils.MinuteOfDay(time.Now()) + 60
			if until >= 24*60 {
				until = 24*60 - 1
			}
			return m, m.mutate(func() error {
				return m.cfg.Snooze(m.date, ref.routineID, ref.itemID, until)
			})
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.derive()
	}

	return m, nil
}

func (m Model) selected() (itemRef, bool) {
	if len(m.items) == 0 || m.cursor < 0 || m.cursor >= len(m.items) {
		return itemRef{}, false
	}
	return m.items[m.cursor], true
}

// mutate runs a store mutation then re-derives. The mutation also
// publishes on the bus, but this model consumes its own notification
// slot via waitForChange, so deriving directly keeps the screen fresh
// even if the notification was coalesced away.
func (m Model) mutate(fn func() error) tea.Cmd {
	derive := m.derive()
	return func() tea.Msg {
		if err := fn(); err != nil {
			return deriveErrMsg{err}
		}
		return derive()
	}
}
