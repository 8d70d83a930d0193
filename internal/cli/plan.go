package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/caretend/caretend/internal/constants"
	"github.com/caretend/caretend/internal/models"
	"github.com/caretend/caretend/internal/utils"
)

type PlanCmd struct {
	Show       PlanShowCmd       `cmd:"" help:"Show the live care plan." default:"1"`
	Init       PlanInitCmd       `cmd:"" help:"Set up a care plan interactively."`
	RoutineAdd PlanRoutineAddCmd `cmd:"" name:"routine-add" help:"Add a routine to the plan."`
	ItemAdd    PlanItemAddCmd    `cmd:"" name:"item-add" help:"Add an item to a routine."`
	RoutineRm  PlanRoutineRmCmd  `cmd:"" name:"routine-rm" help:"Remove a routine from the plan."`
}

type PlanShowCmd struct{}

func (c *PlanShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	plan, err := ctx.Plans.Live()
	if err != nil {
		return err
	}
	if plan.IsEmpty() {
		fmt.Println("No care plan configured. Run 'caretend plan init' to set one up.")
		return nil
	}

	fmt.Printf("Care plan for %s\n", patientOrDefault(plan.PatientName))
	fmt.Println("Edits apply from tomorrow; today runs on this morning's snapshot.")
	fmt.Println()

	for _, routine := range plan.Routines {
		fmt.Printf("%s %s (%s)\n", routine.Emoji, routine.Name, formatWindow(routine.Window))
		for _, item := range routine.Items {
			target := ""
			if item.Target > 1 {
				target = fmt.Sprintf(" x%d", item.Target)
			}
			fmt.Printf("  - %s [%s]%s\n", item.Label, item.Type, target)
		}
	}
	return nil
}

type PlanInitCmd struct{}

// Run walks the caregiver through first-time plan setup. The generated
// routines are a starting point; routine-add and item-add refine them.
func (c *PlanInitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	existing, err := ctx.Plans.Live()
	if err != nil {
		return err
	}
	if !existing.IsEmpty() {
		return fmt.Errorf("a care plan already exists, edit it with 'caretend plan routine-add' and 'caretend plan item-add'")
	}

	var patientName string
	var slots []string
	trackMeds := true
	trackVitals := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Who are you caring for?").
				Value(&patientName),
			huh.NewMultiSelect[string]().
				Title("Which routines do you want?").
				Options(
					huh.NewOption("Morning", constants.SlotMorning).Selected(true),
					huh.NewOption("Afternoon", constants.SlotAfternoon),
					huh.NewOption("Evening", constants.SlotEvening).Selected(true),
				).
				Value(&slots),
			huh.NewConfirm().
				Title("Track medications?").
				Value(&trackMeds),
			huh.NewConfirm().
				Title("Track vitals (blood pressure, glucose...)?").
				Value(&trackVitals),
		),
	).WithTheme(huh.ThemeDracula())

	if err := form.Run(); err != nil {
		return err
	}
	if len(slots) == 0 {
		return fmt.Errorf("pick at least one routine")
	}

	plan := models.CarePlan{PatientName: patientName}
	for _, slot := range slots {
		plan.Routines = append(plan.Routines, starterRoutine(slot, trackMeds, trackVitals))
	}

	if err := ctx.Plans.Save(plan); err != nil {
		return err
	}

	fmt.Printf("Care plan created with %d routine(s).\n", len(plan.Routines))
	fmt.Println("Review it with 'caretend plan show'.")
	return nil
}

func starterRoutine(slot string, trackMeds, trackVitals bool) models.Routine {
	routine := models.Routine{
		Window: defaultWindow(slot),
	}

	switch slot {
	case constants.SlotMorning:
		routine.Name = "Morning"
		routine.Emoji = "🌅"
		if trackMeds {
			routine.Items = append(routine.Items, models.CarePlanItem{
				Type: models.ItemMeds, Label: "Morning meds", Emoji: "💊", Target: 1,
				Metadata: models.ItemMetadata{TimeSlot: constants.SlotMorning},
			})
		}
		if trackVitals {
			routine.Items = append(routine.Items, models.CarePlanItem{
				Type: models.ItemVitals, Label: "Check vitals", Emoji: "🩺", Target: 1,
			})
		}
		routine.Items = append(routine.Items,
			models.CarePlanItem{Type: models.ItemMeals, Label: "Breakfast", Emoji: "🍞", Target: 1,
				Metadata: models.ItemMetadata{MealTypes: []string{"breakfast"}}},
			models.CarePlanItem{Type: models.ItemHydration, Label: "Water", Emoji: "💧", Target: constants.DefaultHydrationTarget},
		)
	case constants.SlotAfternoon:
		routine.Name = "Afternoon"
		routine.Emoji = "☀️"
		if trackMeds {
			routine.Items = append(routine.Items, models.CarePlanItem{
				Type: models.ItemMeds, Label: "Afternoon meds", Emoji: "💊", Target: 1,
				Metadata: models.ItemMetadata{TimeSlot: constants.SlotAfternoon},
			})
		}
		routine.Items = append(routine.Items, models.CarePlanItem{
			Type: models.ItemMeals, Label: "Lunch", Emoji: "🥗", Target: 1,
			Metadata: models.ItemMetadata{MealTypes: []string{"lunch"}},
		})
	case constants.SlotEvening:
		routine.Name = "Evening"
		routine.Emoji = "🌙"
		if trackMeds {
			routine.Items = append(routine.Items, models.CarePlanItem{
				Type: models.ItemMeds, Label: "Evening meds", Emoji: "💊", Target: 1,
				Metadata: models.ItemMetadata{TimeSlot: constants.SlotEvening},
			})
		}
		routine.Items = append(routine.Items,
			models.CarePlanItem{Type: models.ItemMeals, Label: "Dinner", Emoji: "🍽️", Target: 1,
				Metadata: models.ItemMetadata{MealTypes: []string{"dinner"}}},
			models.CarePlanItem{Type: models.ItemMood, Label: "Mood check-in", Emoji: "🙂", Target: 1},
			models.CarePlanItem{Type: models.ItemSleep, Label: "Sleep log", Emoji: "😴", Target: 1},
		)
	}

	return routine
}

func defaultWindow(slot string) models.TimeWindow {
	switch slot {
	case constants.SlotMorning:
		return models.TimeWindow{Start: "07:00", End: "10:00"}
	case constants.SlotAfternoon:
		return models.TimeWindow{Start: "12:00", End: "15:00"}
	case constants.SlotEvening:
		return models.TimeWindow{Start: "18:00", End: "21:00"}
	default:
		return models.TimeWindow{}
	}
}

type PlanRoutineAddCmd struct {
	Name  string `arg:"" help:"Routine name."`
	Start string `help:"Window start in HH:MM format." default:""`
	End   string `help:"Window end in HH:MM format." default:""`
	Emoji string `help:"Emoji shown next to the routine." default:""`
}

func (c *PlanRoutineAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	for _, bound := range []string{c.Start, c.End} {
		if bound != "" && !utils.ValidateTimeFormat(bound) {
			return fmt.Errorf("invalid time format: %s (expected HH:MM)", bound)
		}
	}

	routine := models.Routine{
		Name:   c.Name,
		Emoji:  c.Emoji,
		Window: models.TimeWindow{Start: c.Start, End: c.End},
	}
	if err := ctx.Plans.AddRoutine(routine); err != nil {
		return err
	}

	fmt.Printf("Added routine %q (takes effect tomorrow)\n", c.Name)
	return nil
}

type PlanItemAddCmd struct {
	Routine string `arg:"" help:"Routine name or id."`
	Label   string `arg:"" help:"Item label."`
	Type    string `help:"Item type (meds, vitals, meals, mood, hydration, sleep, appointment, custom)." default:"custom"`
	Target  int    `help:"How many times the item should be done." default:"1"`
	Emoji   string `help:"Emoji shown next to the item." default:""`
	Meds    string `help:"Comma-separated medication ids for a meds item." default:""`
	Slot    string `help:"Medication time slot filter (morning, afternoon, evening, night)." default:""`
	Meals   string `help:"Comma-separated meal types for a meals item." default:""`
}

func (c *PlanItemAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	itemType := models.ItemType(strings.ToLower(c.Type))
	switch itemType {
	case models.ItemMeds, models.ItemVitals, models.ItemMeals, models.ItemMood,
		models.ItemHydration, models.ItemSleep, models.ItemAppointment, models.ItemCustom:
	default:
		return fmt.Errorf("unknown item type %q", c.Type)
	}
	if c.Target < 0 {
		return fmt.Errorf("target must be zero or more")
	}

	item := models.CarePlanItem{
		Type:   itemType,
		Label:  c.Label,
		Emoji:  c.Emoji,
		Target: c.Target,
		Metadata: models.ItemMetadata{
			MedicationIDs: splitList(c.Meds),
			TimeSlot:      strings.ToLower(c.Slot),
			MealTypes:     splitList(c.Meals),
		},
	}
	if err := ctx.Plans.AddItem(c.Routine, item); err != nil {
		return err
	}

	fmt.Printf("Added item %q to routine %q (takes effect tomorrow)\n", c.Label, c.Routine)
	return nil
}

type PlanRoutineRmCmd struct {
	Routine string `arg:"" help:"Routine name or id."`
}

func (c *PlanRoutineRmCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Plans.RemoveRoutine(c.Routine); err != nil {
		return err
	}
	fmt.Printf("Removed routine %q (takes effect tomorrow)\n", c.Routine)
	return nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
