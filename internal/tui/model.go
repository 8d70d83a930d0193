package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/caretend/caretend/internal/bus"
	"github.com/caretend/caretend/internal/constants"
	"github.com/caretend/caretend/internal/models"
)

// Config wires the dashboard to the rest of the app without the tui
// package knowing about storage. Every mutation goes through a closure
// and the bus notification triggers re-derivation, so the screen never
// holds state the deriver didn't produce.
type Config struct {
	Derive        func(date string, now time.Time) (models.DayState, error)
	SetDone       func(date, routineID, itemID string, done bool) error
	ClearOverride func(date, routineID, itemID string) error
	Snooze        func(date, routineID, itemID string, untilMin int) error
	Bus           *bus.Bus
}

// itemRef addresses one visible item row for cursor navigation.
type itemRef struct {
	routineID string
	itemID    string
	done      bool
}

type Model struct {
	cfg    Config
	date   string
	state  models.DayState
	items  []itemRef
	cursor int

	keys     KeyMap
	help     help.Model
	showHelp bool
	err      error
	width    int
	height   int
	quitting bool

	notify <-chan bus.Topic
	cancel func()
}

func NewModel(cfg Config) Model {
	ch, cancel := cfg.Bus.Subscribe(
		bus.TopicPlan, bus.TopicLogs, bus.TopicMedications,
		bus.TopicAppointments, bus.TopicOverrides,
	)
	return Model{
		cfg:    cfg,
		date:   time.Now().Format(constants.DateFormat),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		notify: ch,
		cancel: cancel,
	}
}

type tickMsg time.Time

type derivedMsg models.DayState

type changedMsg bus.Topic

type deriveErrMsg struct{ err error }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.derive(), tickCmd(), m.waitForChange())
}

// derive recomputes the day state. It runs as a command so a slow
// store never blocks the event loop.
func (m Model) derive() tea.Cmd {
	cfg, date := m.cfg, m.date
	return func() tea.Msg {
		state, err := cfg.Derive(date, time.Now())
		if err != nil {
			return deriveErrMsg{err}
		}
		return derivedMsg(state)
	}
}

// tickCmd fires at the top of the next minute so routine windows open
// and close on time.
func tickCmd() tea.Cmd {
	now := time.Now()
	next := now.Truncate(time.Minute).Add(time.Minute)
	return tea.Tick(next.Sub(now), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.notify
	return func() tea.Msg {
		topic, ok := <-ch
		if !ok {
			return nil
		}
		return changedMsg(topic)
	}
}

// flattenItems rebuilds the cursor targets from the derived state.
func flattenItems(state models.DayState) []itemRef {
	var refs []itemRef
	for _, rs := range state.Routines {
		for _, is := range rs.Items {
			refs = append(refs, itemRef{
				routineID: rs.Routine.ID,
				itemID:    is.Item.ID,
				done:      is.Status == models.ItemStatusDone,
			})
		}
	}
	return refs
}
