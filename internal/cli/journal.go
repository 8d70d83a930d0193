package cli

import (
	"fmt"
)

type JournalCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

// Run prints the raw log records for a date, untouched by derivation.
func (c *JournalCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}

	fmt.Printf("Journal for %s\n\n", date)
	empty := true

	doses, err := ctx.Store.GetDoseEvents(date)
	if err != nil {
		return err
	}
	if len(doses) > 0 {
		empty = false
		fmt.Println("Medications:")
		for _, d := range doses {
			med, err := ctx.Store.GetMedication(d.MedicationID)
			name := d.MedicationID
			if err == nil {
				name = med.Name
			}
			verb := "taken"
			if !d.Taken {
				verb = "skipped"
			}
			fmt.Printf("  %s  %s %s\n", orDash(d.Time), name, verb)
		}
	}

	vitals, err := ctx.Store.GetVitalsEntries(date)
	if err != nil {
		return err
	}
	if len(vitals) > 0 {
		empty = false
		fmt.Println("Vitals:")
		for _, v := range vitals {
			fmt.Printf("  %s  %s\n", orDash(v.Time), formatVitals(v))
		}
	}

	meals, err := ctx.Store.GetMealEntries(date)
	if err != nil {
		return err
	}
	if len(meals) > 0 {
		empty = false
		fmt.Println("Meals:")
		for _, m := range meals {
			desc := ""
			if m.Description != "" {
				desc = " - " + m.Description
			}
			fmt.Printf("  %s  %s%s\n", orDash(m.Time), m.MealType, desc)
		}
	}

	moods, err := ctx.Store.GetMoodEntries(date)
	if err != nil {
		return err
	}
	if len(moods) > 0 {
		empty = false
		fmt.Println("Mood:")
		for _, m := range moods {
			note := ""
			if m.Note != "" {
				note = " - " + m.Note
			}
			fmt.Printf("  %s  %d/5%s\n", orDash(m.Time), m.Rating, note)
		}
	}

	hydration, err := ctx.Store.GetHydrationEntries(date)
	if err != nil {
		return err
	}
	if len(hydration) > 0 {
		empty = false
		total := 0
		for _, h := range hydration {
			total += h.Glasses
		}
		fmt.Printf("Water: %d glass(es)\n", total)
	}

	sleep, err := ctx.Store.GetSleepEntries(date)
	if err != nil {
		return err
	}
	if len(sleep) > 0 {
		empty = false
		fmt.Println("Sleep:")
		for _, s := range sleep {
			quality := ""
			if s.Quality != "" {
				quality = " (" + s.Quality + ")"
			}
			fmt.Printf("  %.1f hours%s\n", s.Hours, quality)
		}
	}

	if empty {
		fmt.Println("Nothing logged yet.")
	}
	return nil
}

func orDash(timeStr string) string {
	if timeStr == "" {
		return "--:--"
	}
	return timeStr
}
