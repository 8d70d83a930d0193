package deriver

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/caretend/caretend/internal/constants"
	"github.com/caretend/caretend/internal/models"
	"github.com/caretend/caretend/internal/utils"
)

// endOfDay sorts entries with unparseable times after everything else.
const endOfDay = 24 * 60

type Deriver struct{}

func New() *Deriver {
	return &Deriver{}
}

// Inputs is everything DeriveDayState needs, fully materialized by the
// caller. Plan must be the frozen snapshot for Date, not the live plan,
// so that mid-day plan edits take effect the next day.
type Inputs struct {
	Date string // YYYY-MM-DD
	Now  time.Time

	Plan         models.CarePlan
	Medications  []models.Medication
	Appointments []models.Appointment

	Doses     []models.DoseEvent
	Vitals    []models.VitalsEntry
	Meals     []models.MealEntry
	Moods     []models.MoodEntry
	Hydration []models.HydrationEntry
	Sleep     []models.SleepEntry

	Overrides []models.Override

	ValidateReferences bool
}

// DeriveDayState computes the full day view from the frozen plan, the
// day's logs, and any manual overrides. It is pure and deterministic:
// identical inputs yield identical output, and the inputs are never
// mutated. Callers may invoke it as often as they like (refresh, change
// notification) without coordination.
func (d *Deriver) DeriveDayState(in Inputs) models.DayState {
	state := models.DayState{
		Date:     in.Date,
		Routines: []models.RoutineState{},
		Timeline: []models.TimelineEntry{},
	}

	if in.Plan.IsEmpty() {
		return state
	}

	nowMin := utils.MinuteOfDay(in.Now)
	overrides := indexOverrides(in.Overrides)
	takenMeds := distinctTakenMedications(in.Doses)

	totalItems := 0
	doneItems := 0

	for _, routine := range in.Plan.Routines {
		rs := models.RoutineState{
			Routine:    routine,
			Items:      make([]models.ItemState, 0, len(routine.Items)),
			TotalItems: len(routine.Items),
		}

		for _, item := range routine.Items {
			is := d.deriveItem(item, in, takenMeds)

			if ov, ok := overrides[routine.ID+"\x00"+item.ID]; ok {
				is.Overridden = true
				if ov.Done {
					is.Completed = is.Expected
				} else {
					is.Completed = 0
				}
				if ov.SnoozeUntilMin != nil && *ov.SnoozeUntilMin > nowMin {
					snooze := *ov.SnoozeUntilMin
					is.SnoozedUntilMin = &snooze
				}
			}

			is.Status = itemStatus(is.Completed, is.Expected)
			if is.Status == models.ItemStatusDone {
				rs.CompletedItems++
			}
			rs.Items = append(rs.Items, is)
		}

		rs.Status = routineStatus(routine.Window, nowMin)
		if rs.TotalItems > 0 && rs.CompletedItems == rs.TotalItems {
			// Early completion shows as done without waiting for the window to close.
			rs.Status = models.RoutineCompleted
		}

		totalItems += rs.TotalItems
		doneItems += rs.CompletedItems
		state.Routines = append(state.Routines, rs)
	}

	state.Progress = rollUpProgress(state.Routines)
	state.Timeline = buildTimeline(state.Routines, in.Appointments, in.Date, nowMin)
	state.NextAction = nextAction(state.Routines, nowMin)
	state.AllComplete = totalItems > 0 && doneItems == totalItems

	if in.ValidateReferences {
		state.Warnings = validateReferences(in.Plan, in.Medications, in.Appointments)
	}

	return state
}

// deriveItem computes raw completion for one item from the day's logs.
// Overrides are applied by the caller on top of this.
func (d *Deriver) deriveItem(item models.CarePlanItem, in Inputs, takenMeds map[string]bool) models.ItemState {
	is := models.ItemState{
		Item:     item,
		Expected: item.Target,
	}

	switch item.Type {
	case models.ItemMeds:
		is.Completed = capAt(countMedsTaken(item, in.Medications, takenMeds), item.Target)
	case models.ItemVitals:
		is.Completed = capAt(countVitals(item, in.Vitals), item.Target)
	case models.ItemMeals:
		is.Completed = capAt(countMeals(item, in.Meals), item.Target)
	case models.ItemMood:
		// Binary regardless of target: any entry counts as checked in.
		if len(in.Moods) > 0 {
			is.Completed = 1
		}
	case models.ItemHydration:
		glasses := 0
		for _, h := range in.Hydration {
			glasses += h.Glasses
		}
		is.Completed = capAt(glasses, item.Target)
	case models.ItemSleep:
		if len(in.Sleep) > 0 {
			is.Completed = 1
		}
	case models.ItemAppointment, models.ItemCustom:
		// No log source; completion comes from manual overrides only.
	}

	return is
}

// distinctTakenMedications deduplicates dose events by medication id so
// a medication dosed twice in one day counts once.
func distinctTakenMedications(doses []models.DoseEvent) map[string]bool {
	taken := make(map[string]bool)
	for _, d := range doses {
		if d.Taken {
			taken[d.MedicationID] = true
		}
	}
	return taken
}

// countMedsTaken counts distinct medications taken today that match the
// item's filter. Filter precedence: explicit medication ids, then time
// slot (cross-referenced against active medications), then all active
// medications.
func countMedsTaken(item models.CarePlanItem, meds []models.Medication, takenMeds map[string]bool) int {
	count := 0

	if len(item.Metadata.MedicationIDs) > 0 {
		for _, id := range item.Metadata.MedicationIDs {
			if takenMeds[id] {
				count++
			}
		}
		return count
	}

	for _, med := range meds {
		if !med.Active {
			continue
		}
		if item.Metadata.TimeSlot != "" && med.TimeSlot != item.Metadata.TimeSlot {
			continue
		}
		if takenMeds[med.ID] {
			count++
		}
	}
	return count
}

// countVitals counts the item's configured vital types that have a
// reading today. Systolic and diastolic form a single combined blood
// pressure check: present if either is logged, counted at most once.
// The bpCounted flag is scoped to this call; logged entries are never
// marked in place.
func countVitals(item models.CarePlanItem, vitals []models.VitalsEntry) int {
	types := item.Metadata.VitalTypes
	if len(types) == 0 {
		types = constants.DefaultVitalTypes
	}

	count := 0
	bpCounted := false

	for _, vt := range types {
		switch vt {
		case "systolic", "diastolic", "bloodPressure":
			if bpCounted {
				continue
			}
			for _, v := range vitals {
				if v.Systolic != nil || v.Diastolic != nil {
					count++
					bpCounted = true
					break
				}
			}
		case "heartRate":
			if anyVital(vitals, func(v models.VitalsEntry) bool { return v.HeartRate != nil }) {
				count++
			}
		case "glucose":
			if anyVital(vitals, func(v models.VitalsEntry) bool { return v.Glucose != nil }) {
				count++
			}
		case "weight":
			if anyVital(vitals, func(v models.VitalsEntry) bool { return v.Weight != nil }) {
				count++
			}
		}
	}
	return count
}

func anyVital(vitals []models.VitalsEntry, pred func(models.VitalsEntry) bool) bool {
	for _, v := range vitals {
		if pred(v) {
			return true
		}
	}
	return false
}

// countMeals counts meal entries matching the item's meal-type filter
// (case-insensitive), or all logged meals when no filter is set.
func countMeals(item models.CarePlanItem, meals []models.MealEntry) int {
	if len(item.Metadata.MealTypes) == 0 {
		return len(meals)
	}

	wanted := make(map[string]bool, len(item.Metadata.MealTypes))
	for _, mt := range item.Metadata.MealTypes {
		wanted[strings.ToLower(mt)] = true
	}

	count := 0
	for _, m := range meals {
		if wanted[strings.ToLower(m.MealType)] {
			count++
		}
	}
	return count
}

func capAt(n, target int) int {
	if n > target {
		return target
	}
	return n
}

func itemStatus(completed, expected int) models.ItemStatus {
	switch {
	case completed >= expected:
		return models.ItemStatusDone
	case completed > 0:
		return models.ItemStatusPartial
	default:
		return models.ItemStatusPending
	}
}

// routineStatus positions the routine's window against the current
// time. Unparseable window times fall back to an all-day window rather
// than erroring.
func routineStatus(window models.TimeWindow, nowMin int) models.RoutineStatus {
	startMin, err := utils.ParseTimeToMinutes(window.Start)
	if err != nil {
		startMin = 0
	}
	endMin, err := utils.ParseTimeToMinutes(window.End)
	if err != nil {
		endMin = endOfDay - 1
	}

	switch {
	case nowMin < startMin:
		return models.RoutineUpcoming
	case nowMin > endMin:
		return models.RoutineCompleted
	default:
		return models.RoutineAvailable
	}
}

func indexOverrides(overrides []models.Override) map[string]models.Override {
	idx := make(map[string]models.Override, len(overrides))
	for _, ov := range overrides {
		idx[ov.RoutineID+"\x00"+ov.ItemID] = ov
	}
	return idx
}

// rollUpProgress sums per-item completion into the six category
// buckets. Appointment and custom items contribute to none.
func rollUpProgress(routines []models.RoutineState) models.Progress {
	var p models.Progress
	for _, rs := range routines {
		for _, is := range rs.Items {
			var bucket *models.CategoryProgress
			switch is.Item.Type {
			case models.ItemMeds:
				bucket = &p.Meds
			case models.ItemVitals:
				bucket = &p.Vitals
			case models.ItemMeals:
				bucket = &p.Meals
			case models.ItemMood:
				bucket = &p.Mood
			case models.ItemHydration:
				bucket = &p.Hydration
			case models.ItemSleep:
				bucket = &p.Sleep
			default:
				continue
			}
			bucket.Completed += is.Completed
			bucket.Expected += is.Expected
		}
	}
	return p
}

// buildTimeline merges routine blocks and same-day appointments into a
// single list ordered by minute-of-day. Routines are appended first, so
// a stable sort keeps them ahead of appointments at identical times.
func buildTimeline(routines []models.RoutineState, appointments []models.Appointment, date string, nowMin int) []models.TimelineEntry {
	entries := make([]models.TimelineEntry, 0, len(routines)+len(appointments))

	for _, rs := range routines {
		minutes, err := utils.ParseTimeToMinutes(rs.Routine.Window.Start)
		display := rs.Routine.Window.Start
		if err != nil {
			minutes = endOfDay
			display = "Time not set"
		}
		entries = append(entries, models.TimelineEntry{
			Kind:     models.TimelineRoutine,
			RefID:    rs.Routine.ID,
			Title:    rs.Routine.Name,
			Subtitle: itemsSubtitle(rs.CompletedItems, rs.TotalItems),
			Time:     display,
			Minutes:  minutes,
			Status:   rs.Status,
		})
	}

	for _, appt := range appointments {
		if appt.Date != date {
			continue
		}
		minutes, err := utils.ParseTimeToMinutes(appt.Time)
		display := appt.Time
		if err != nil {
			minutes = endOfDay
			display = "Time not set"
		}

		status := models.RoutineUpcoming
		if appt.Completed {
			status = models.RoutineCompleted
		} else if err == nil && minutes <= nowMin {
			status = models.RoutineAvailable
		}

		entries = append(entries, models.TimelineEntry{
			Kind:     models.TimelineAppointment,
			RefID:    appt.ID,
			Title:    appt.Title,
			Subtitle: appt.Location,
			Time:     display,
			Minutes:  minutes,
			Status:   status,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Minutes < entries[j].Minutes
	})

	return entries
}

func itemsSubtitle(completed, total int) string {
	return fmt.Sprintf("%d/%d items", completed, total)
}

// nextAction scans routines in plan order and returns the first
// not-done, not-snoozed item of the first routine that is available or
// upcoming. At most one action is ever returned so the "what's next"
// prompt stays unambiguous.
func nextAction(routines []models.RoutineState, nowMin int) *models.NextAction {
	for _, rs := range routines {
		if rs.Status == models.RoutineCompleted {
			continue
		}

		remaining := 0
		for _, is := range rs.Items {
			if is.Status != models.ItemStatusDone {
				remaining++
			}
		}

		for _, is := range rs.Items {
			if is.Status == models.ItemStatusDone {
				continue
			}
			if is.SnoozedUntilMin != nil && *is.SnoozedUntilMin > nowMin {
				continue
			}
			return &models.NextAction{
				RoutineID:   rs.Routine.ID,
				RoutineName: rs.Routine.Name,
				ItemID:      is.Item.ID,
				Label:       is.Item.Label,
				Emoji:       is.Item.Emoji,
				Remaining:   remaining,
			}
		}
	}
	return nil
}

// validateReferences cross-checks plan items against the records they
// point at. Dangling references are surfaced as advisory warnings, not
// errors: the caregiver sees them, nothing throws.
func validateReferences(plan models.CarePlan, meds []models.Medication, appointments []models.Appointment) []models.IntegrityWarning {
	medIDs := make(map[string]bool, len(meds))
	for _, m := range meds {
		medIDs[m.ID] = true
	}
	apptIDs := make(map[string]bool, len(appointments))
	for _, a := range appointments {
		apptIDs[a.ID] = true
	}

	var warnings []models.IntegrityWarning
	for _, routine := range plan.Routines {
		for _, item := range routine.Items {
			switch item.Type {
			case models.ItemMeds:
				for _, id := range item.Metadata.MedicationIDs {
					if !medIDs[id] {
						warnings = append(warnings, models.IntegrityWarning{
							Kind:      models.WarnMissingMedication,
							RoutineID: routine.ID,
							ItemID:    item.ID,
							MissingID: id,
						})
					}
				}
			case models.ItemAppointment:
				if id := item.Metadata.AppointmentID; id != "" && !apptIDs[id] {
					warnings = append(warnings, models.IntegrityWarning{
						Kind:      models.WarnMissingAppointment,
						RoutineID: routine.ID,
						ItemID:    item.ID,
						MissingID: id,
					})
				}
			}
		}
	}
	return warnings
}
