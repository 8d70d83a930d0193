package cli

import (
	"fmt"
	"time"

	"github.com/caretend/caretend/internal/bus"
	"github.com/caretend/caretend/internal/careplan"
	"github.com/caretend/caretend/internal/deriver"
	"github.com/caretend/caretend/internal/models"
	"github.com/caretend/caretend/internal/storage"
	"github.com/caretend/caretend/internal/utils"
)

// Context is shared by every command. Commands read and write through
// Store, publish change notifications on Bus, and never compute day
// status themselves: that is the deriver's job.
type Context struct {
	Store   storage.Provider
	Bus     *bus.Bus
	Plans   *careplan.Service
	Deriver *deriver.Deriver
}

// DayInputs materializes everything the deriver needs for a date. The
// plan comes from the frozen snapshot, never the live plan.
func (c *Context) DayInputs(date string, now time.Time, validate bool) (deriver.Inputs, error) {
	in := deriver.Inputs{Date: date, Now: now, ValidateReferences: validate}

	plan, err := c.Plans.EffectiveForDate(date)
	if err != nil {
		return in, err
	}
	in.Plan = plan

	if in.Medications, err = c.Store.GetMedications(true); err != nil {
		return in, err
	}
	// Upcoming, not just the date's: reference validation must see an
	// appointment scheduled on a later day. The deriver's timeline
	// filters to the exact date itself.
	if in.Appointments, err = c.Store.GetUpcomingAppointments(date); err != nil {
		return in, err
	}
	if in.Doses, err = c.Store.GetDoseEvents(date); err != nil {
		return in, err
	}
	if in.Vitals, err = c.Store.GetVitalsEntries(date); err != nil {
		return in, err
	}
	if in.Meals, err = c.Store.GetMealEntries(date); err != nil {
		return in, err
	}
	if in.Moods, err = c.Store.GetMoodEntries(date); err != nil {
		return in, err
	}
	if in.Hydration, err = c.Store.GetHydrationEntries(date); err != nil {
		return in, err
	}
	if in.Sleep, err = c.Store.GetSleepEntries(date); err != nil {
		return in, err
	}
	if in.Overrides, err = c.Store.GetOverrides(date); err != nil {
		return in, err
	}

	return in, nil
}

// DeriveDay is the common read path for day/now/tui style commands.
func (c *Context) DeriveDay(date string, now time.Time, validate bool) (models.DayState, error) {
	in, err := c.DayInputs(date, now, validate)
	if err != nil {
		return models.DayState{}, err
	}
	return c.Deriver.DeriveDayState(in), nil
}

// resolveDate validates an explicit date flag or defaults to today.
func resolveDate(date string) (string, error) {
	if date == "" {
		return utils.Today(), nil
	}
	if !utils.ValidateDateFormat(date) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

// resolveTime validates an explicit time flag or defaults to now.
func resolveTime(timeStr string) (string, error) {
	if timeStr == "" {
		return time.Now().Format("15:04"), nil
	}
	if !utils.ValidateTimeFormat(timeStr) {
		return "", fmt.Errorf("invalid time format: %s (expected HH:MM)", timeStr)
	}
	return timeStr, nil
}

func statusMark(status models.ItemStatus) string {
	switch status {
	case models.ItemStatusDone:
		return "[x]"
	case models.ItemStatusPartial:
		return "[~]"
	default:
		return "[ ]"
	}
}

func routineBadge(status models.RoutineStatus) string {
	switch status {
	case models.RoutineCompleted:
		return "done"
	case models.RoutineAvailable:
		return "now"
	default:
		return "later"
	}
}
