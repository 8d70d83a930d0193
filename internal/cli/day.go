package cli

import (
	"fmt"
	"time"

	"github.com/caretend/caretend/internal/models"
)

type DayCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *DayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	state, err := ctx.DeriveDay(date, time.Now(), true)
	if err != nil {
		return err
	}

	if len(state.Routines) == 0 {
		fmt.Printf("No care plan configured for %s.\n", date)
		fmt.Println("Set one up with 'caretend plan init'.")
		return nil
	}

	fmt.Printf("Care day for %s\n\n", date)
	printProgress(state.Progress)
	fmt.Println()

	for _, rs := range state.Routines {
		window := formatWindow(rs.Routine.Window)
		fmt.Printf("%s %s (%s) [%s] %d/%d\n",
			rs.Routine.Emoji, rs.Routine.Name, window, routineBadge(rs.Status),
			rs.CompletedItems, rs.TotalItems)
		for _, is := range rs.Items {
			line := fmt.Sprintf("  %s %s", statusMark(is.Status), is.Item.Label)
			if is.Expected > 1 {
				line += fmt.Sprintf(" (%d/%d)", is.Completed, is.Expected)
			}
			if is.Overridden {
				line += " *"
			}
			if is.SnoozedUntilMin != nil {
				line += fmt.Sprintf(" (snoozed until %02d:%02d)", *is.SnoozedUntilMin/60, *is.SnoozedUntilMin%60)
			}
			fmt.Println(line)
		}
		fmt.Println()
	}

	printTimeline(state.Timeline)

	if state.AllComplete {
		fmt.Println("\nEverything done for today. Nice work.")
	} else if state.NextAction != nil {
		printNextAction(state.NextAction)
	}

	for _, w := range state.Warnings {
		fmt.Printf("\nwarning: plan item %s references missing %s %s\n",
			w.ItemID, warningNoun(w.Kind), w.MissingID)
	}

	return nil
}

func printProgress(p models.Progress) {
	buckets := []struct {
		label string
		cp    models.CategoryProgress
	}{
		{"Meds", p.Meds},
		{"Vitals", p.Vitals},
		{"Meals", p.Meals},
		{"Mood", p.Mood},
		{"Water", p.Hydration},
		{"Sleep", p.Sleep},
	}

	for _, b := range buckets {
		if b.cp.Expected == 0 {
			continue
		}
		fmt.Printf("%-7s %d/%d\n", b.label, b.cp.Completed, b.cp.Expected)
	}
}

func printTimeline(entries []models.TimelineEntry) {
	if len(entries) == 0 {
		return
	}

	fmt.Println("Timeline:")
	for _, e := range entries {
		subtitle := ""
		if e.Subtitle != "" {
			subtitle = "  " + e.Subtitle
		}
		fmt.Printf("  %-12s %s%s [%s]\n", e.Time, e.Title, subtitle, routineBadge(e.Status))
	}
}

func printNextAction(na *models.NextAction) {
	emoji := na.Emoji
	if emoji != "" {
		emoji += " "
	}
	fmt.Printf("\nNext: %s%s (%s, %d remaining)\n", emoji, na.Label, na.RoutineName, na.Remaining)
}

func formatWindow(w models.TimeWindow) string {
	if w.Start == "" && w.End == "" {
		return "all day"
	}
	return w.Start + "-" + w.End
}

func warningNoun(kind models.WarningKind) string {
	if kind == models.WarnMissingAppointment {
		return "appointment"
	}
	return "medication"
}
