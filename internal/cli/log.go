package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/caretend/caretend/internal/bus"
	"github.com/caretend/caretend/internal/models"
)

type LogCmd struct {
	Med    LogMedCmd    `cmd:"" help:"Log a medication dose."`
	Vitals LogVitalsCmd `cmd:"" help:"Log vital sign readings."`
	Meal   LogMealCmd   `cmd:"" help:"Log a meal."`
	Water  LogWaterCmd  `cmd:"" help:"Log glasses of water."`
	Mood   LogMoodCmd   `cmd:"" help:"Log a mood check-in."`
	Sleep  LogSleepCmd  `cmd:"" help:"Log last night's sleep."`
}

type LogMedCmd struct {
	Medication string `arg:"" help:"Medication name or id."`
	Skipped    bool   `help:"Record the dose as skipped instead of taken."`
	Date       string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Time       string `help:"Time in HH:MM format (default: now)." default:""`
}

func (c *LogMedCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	timeStr, err := resolveTime(c.Time)
	if err != nil {
		return err
	}

	med, err := findMedication(ctx, c.Medication)
	if err != nil {
		return err
	}

	ev := models.DoseEvent{
		ID:           uuid.NewString(),
		Date:         date,
		MedicationID: med.ID,
		Taken:        !c.Skipped,
		Time:         timeStr,
	}
	if err := ctx.Store.AddDoseEvent(ev); err != nil {
		return err
	}
	ctx.Bus.Publish(bus.TopicLogs)

	verb := "taken"
	if c.Skipped {
		verb = "skipped"
	}
	fmt.Printf("Logged %s as %s for %s\n", med.Name, verb, date)
	return nil
}

// findMedication resolves an id or a case-insensitive name against the
// active medication list.
func findMedication(ctx *Context, ref string) (models.Medication, error) {
	if med, err := ctx.Store.GetMedication(ref); err == nil {
		return med, nil
	}

	meds, err := ctx.Store.GetMedications(false)
	if err != nil {
		return models.Medication{}, err
	}
	for _, med := range meds {
		if strings.EqualFold(med.Name, ref) {
			return med, nil
		}
	}
	return models.Medication{}, fmt.Errorf("medication %q not found", ref)
}

type LogVitalsCmd struct {
	Systolic  int     `help:"Systolic blood pressure (mmHg)." default:"-1"`
	Diastolic int     `help:"Diastolic blood pressure (mmHg)." default:"-1"`
	HeartRate int     `help:"Heart rate (bpm)." default:"-1"`
	Glucose   float64 `help:"Blood glucose (mg/dL)." default:"-1"`
	Weight    float64 `help:"Weight (lbs or kg, your choice, just be consistent)." default:"-1"`
	Date      string  `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Time      string  `help:"Time in HH:MM format (default: now)." default:""`
}

func (c *LogVitalsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	timeStr, err := resolveTime(c.Time)
	if err != nil {
		return err
	}

	entry := models.VitalsEntry{
		ID:   uuid.NewString(),
		Date: date,
		Time: timeStr,
	}
	if c.Systolic >= 0 {
		entry.Systolic = &c.Systolic
	}
	if c.Diastolic >= 0 {
		entry.Diastolic = &c.Diastolic
	}
	if c.HeartRate >= 0 {
		entry.HeartRate = &c.HeartRate
	}
	if c.Glucose >= 0 {
		entry.Glucose = &c.Glucose
	}
	if c.Weight >= 0 {
		entry.Weight = &c.Weight
	}

	if entry.Systolic == nil && entry.Diastolic == nil && entry.HeartRate == nil &&
		entry.Glucose == nil && entry.Weight == nil {
		return fmt.Errorf("no readings given, pass at least one of --systolic, --diastolic, --heart-rate, --glucose, --weight")
	}

	if err := ctx.Store.AddVitalsEntry(entry); err != nil {
		return err
	}
	ctx.Bus.Publish(bus.TopicLogs)

	fmt.Printf("Logged vitals for %s: %s\n", date, formatVitals(entry))
	return nil
}

func formatVitals(v models.VitalsEntry) string {
	var parts []string
	if v.Systolic != nil || v.Diastolic != nil {
		sys, dia := "?", "?"
		if v.Systolic != nil {
			sys = fmt.Sprintf("%d", *v.Systolic)
		}
		if v.Diastolic != nil {
			dia = fmt.Sprintf("%d", *v.Diastolic)
		}
		parts = append(parts, fmt.Sprintf("BP %s/%s", sys, dia))
	}
	if v.HeartRate != nil {
		parts = append(parts, fmt.Sprintf("HR %d", *v.HeartRate))
	}
	if v.Glucose != nil {
		parts = append(parts, fmt.Sprintf("glucose %.0f", *v.Glucose))
	}
	if v.Weight != nil {
		parts = append(parts, fmt.Sprintf("weight %.1f", *v.Weight))
	}
	return strings.Join(parts, ", ")
}

type LogMealCmd struct {
	Type        string `arg:"" help:"Meal type (breakfast, lunch, dinner, snack)."`
	Description string `help:"What was eaten." default:""`
	Date        string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Time        string `help:"Time in HH:MM format (default: now)." default:""`
}

func (c *LogMealCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	timeStr, err := resolveTime(c.Time)
	if err != nil {
		return err
	}

	entry := models.MealEntry{
		ID:          uuid.NewString(),
		Date:        date,
		Time:        timeStr,
		MealType:    strings.ToLower(c.Type),
		Description: c.Description,
	}
	if err := ctx.Store.AddMealEntry(entry); err != nil {
		return err
	}
	ctx.Bus.Publish(bus.TopicLogs)

	fmt.Printf("Logged %s for %s\n", entry.MealType, date)
	return nil
}

type LogWaterCmd struct {
	Glasses int    `arg:"" optional:"" help:"Glasses of water to add." default:"1"`
	Date    string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *LogWaterCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	if c.Glasses < 1 {
		return fmt.Errorf("glasses must be at least 1")
	}

	entry := models.HydrationEntry{
		ID:      uuid.NewString(),
		Date:    date,
		Glasses: c.Glasses,
	}
	if err := ctx.Store.AddHydrationEntry(entry); err != nil {
		return err
	}
	ctx.Bus.Publish(bus.TopicLogs)

	fmt.Printf("Logged %d glass(es) of water for %s\n", c.Glasses, date)
	return nil
}

type LogMoodCmd struct {
	Rating int    `arg:"" help:"Mood rating from 1 (low) to 5 (great)."`
	Note   string `help:"Optional note." default:""`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Time   string `help:"Time in HH:MM format (default: now)." default:""`
}

func (c *LogMoodCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	timeStr, err := resolveTime(c.Time)
	if err != nil {
		return err
	}
	if c.Rating < 1 || c.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}

	entry := models.MoodEntry{
		ID:     uuid.NewString(),
		Date:   date,
		Time:   timeStr,
		Rating: c.Rating,
		Note:   c.Note,
	}
	if err := ctx.Store.AddMoodEntry(entry); err != nil {
		return err
	}
	ctx.Bus.Publish(bus.TopicLogs)

	fmt.Printf("Logged mood %d/5 for %s\n", c.Rating, date)
	return nil
}

type LogSleepCmd struct {
	Hours   float64 `arg:"" help:"Hours slept."`
	Quality string  `help:"Sleep quality (poor, fair, good)." default:""`
	Date    string  `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *LogSleepCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	date, err := resolveDate(c.Date)
	if err != nil {
		return err
	}
	if c.Hours <= 0 || c.Hours > 24 {
		return fmt.Errorf("hours must be between 0 and 24")
	}

	entry := models.SleepEntry{
		ID:      uuid.NewString(),
		Date:    date,
		Hours:   c.Hours,
		Quality: strings.ToLower(c.Quality),
	}
	if err := ctx.Store.AddSleepEntry(entry); err != nil {
		return err
	}
	ctx.Bus.Publish(bus.TopicLogs)

	fmt.Printf("Logged %.1f hours of sleep for %s\n", c.Hours, date)
	return nil
}
