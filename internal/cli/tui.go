package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/caretend/caretend/internal/bus"
	"github.com/caretend/caretend/internal/models"
	"github.com/caretend/caretend/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	cfg := tui.Config{
		Derive: func(date string, now time.Time) (models.DayState, error) {
			return ctx.DeriveDay(date, now, true)
		},
		SetDone: func(date, routineID, itemID string, done bool) error {
			ov := models.Override{
				Date:      date,
				RoutineID: routineID,
				ItemID:    itemID,
				Done:      done,
				Timestamp: time.Now().Format(time.RFC3339),
			}
			if err := ctx.Store.SaveOverride(ov); err != nil {
				return err
			}
			ctx.Bus.Publish(bus.TopicOverrides)
			return nil
		},
		ClearOverride: func(date, routineID, itemID string) error {
			if err := ctx.Store.ClearOverride(date, routineID, itemID); err != nil {
				return err
			}
			ctx.Bus.Publish(bus.TopicOverrides)
			return nil
		},
		Snooze: func(date, routineID, itemID string, untilMin int) error {
			ov := models.Override{
				Date:           date,
				RoutineID:      routineID,
				ItemID:         itemID,
				Done:           false,
				Timestamp:      time.Now().Format(time.RFC3339),
				SnoozeUntilMin: &untilMin,
			}
			if err := ctx.Store.SaveOverride(ov); err != nil {
				return err
			}
			ctx.Bus.Publish(bus.TopicOverrides)
			return nil
		},
		Bus: ctx.Bus,
	}

	p := tea.NewProgram(tui.NewModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
