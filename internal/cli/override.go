package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/caretend/caretend/internal/bus"
	"github.com/caretend/caretend/internal/models"
	"github.com/caretend/caretend/internal/utils"
)

type OverrideCmd struct {
	Done   OverrideDoneCmd   `cmd:"" help:"Mark an item done regardless of logs."`
	Undone OverrideUndoneCmd `cmd:"" help:"Mark an item not done regardless of logs."`
	Clear  OverrideClearCmd  `cmd:"" help:"Remove an override so logs decide again."`
	Snooze OverrideSnoozeCmd `cmd:"" help:"Postpone an item until later today."`
}

type OverrideDoneCmd struct {
	Item string `arg:"" help:"Item label or id."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *OverrideDoneCmd) Run(ctx *Context) error {
	return applyOverride(ctx, c.Date, c.Item, true, nil)
}

type OverrideUndoneCmd struct {
	Item string `arg:"" help:"Item label or id."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *OverrideUndoneCmd) Run(ctx *Context) error {
	return applyOverride(ctx, c.Date, c.Item, false, nil)
}

type OverrideClearCmd struct {
	Item string `arg:"" help:"Item label or id."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *OverrideClearCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	routineID, itemID, label, err := findPlanItem(ctx, date, c.Item)
	if err != nil {
		return err
	}

	if err := ctx.Store.ClearOverride(date, routineID, itemID); err != nil {
		return err
	}
	ctx.Bus.Publish(bus.TopicOverrides)

	fmt.Printf("Cleared override on %q for %s, logs decide again\n", label, date)
	return nil
}

type OverrideSnoozeCmd struct {
	Item  string `arg:"" help:"Item label or id."`
	Until string `help:"Time in HH:MM format to snooze until." default:""`
	For   int    `help:"Minutes to snooze for (default: 60)." default:"0"`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *OverrideSnoozeCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	until := 0
	switch {
	case c.Until != "":
		min, err := utils.ParseTimeToMinutes(c.Until)
		if err != nil {
			return fmt.Errorf("invalid time format: %s (expected HH:MM)", c.Until)
		}
		until = min
	case c.For > 0:
		until = utils.MinuteOfDay(time.Now()) + c.For
	default:
		until = utils.MinuteOfDay(time.Now()) + 60
	}
	if until >= 24*60 {
		until = 24*60 - 1
	}

	return applyOverride(ctx, c.Date, c.Item, false, &until)
}

func applyOverride(ctx *Context, dateFlag, itemRef string, done bool, snoozeUntilMin *int) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(dateFlag)
	if err != nil {
		return err
	}
	routineID, itemID, label, err := findPlanItem(ctx, date, itemRef)
	if err != nil {
		return err
	}

	ov := models.Override{
		Date:           date,
		RoutineID:      routineID,
		ItemID:         itemID,
		Done:           done,
		Timestamp:      time.Now().Format(time.RFC3339),
		SnoozeUntilMin: snoozeUntilMin,
	}
	if err := ctx.Store.SaveOverride(ov); err != nil {
		return err
	}
	ctx.Bus.Publish(bus.TopicOverrides)

	switch {
	case snoozeUntilMin != nil:
		fmt.Printf("Snoozed %q until %s\n", label, utils.FormatMinutes(*snoozeUntilMin))
	case done:
		fmt.Printf("Marked %q done for %s\n", label, date)
	default:
		fmt.Printf("Marked %q not done for %s\n", label, date)
	}
	return nil
}

// findPlanItem resolves an item label or id against the date's frozen
// plan. Labels match case-insensitively; an ambiguous label errors
// rather than guessing.
func findPlanItem(ctx *Context, date, ref string) (routineID, itemID, label string, err error) {
	plan, err := ctx.Plans.EffectiveForDate(date)
	if err != nil {
		return "", "", "", err
	}

	type match struct {
		routineID string
		item      models.CarePlanItem
	}
	var matches []match

	for _, routine := range plan.Routines {
		for _, item := range routine.Items {
			if item.ID == ref || strings.EqualFold(item.Label, ref) {
				matches = append(matches, match{routine.ID, item})
			}
		}
	}

	switch len(matches) {
	case 0:
		return "", "", "", fmt.Errorf("no plan item matching %q on %s", ref, date)
	case 1:
		m := matches[0]
		return m.routineID, m.item.ID, m.item.Label, nil
	default:
		return "", "", "", fmt.Errorf("item %q is ambiguous, use the item id", ref)
	}
}
