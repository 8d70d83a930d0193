package deriver

import (
	"reflect"
	"testing"
	"time"

	"github.com/caretend/caretend/internal/models"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 14, hour, min, 0, 0, time.UTC)
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

const testDate = "2026-03-14"

// morningMedsPlan is the baseline scenario plan: one "Morning" routine
// (08:00-10:00) with one meds item targeting medications A and B.
func morningMedsPlan() models.CarePlan {
	return models.CarePlan{
		ID: "plan-1",
		Routines: []models.Routine{
			{
				ID:     "routine-morning",
				Name:   "Morning",
				Window: models.TimeWindow{Start: "08:00", End: "10:00"},
				Items: []models.CarePlanItem{
					{
						ID:     "item-meds",
						Type:   models.ItemMeds,
						Label:  "Morning medications",
						Target: 2,
						Metadata: models.ItemMetadata{
							MedicationIDs: []string{"med-a", "med-b"},
						},
					},
				},
			},
		},
	}
}

func activeMeds() []models.Medication {
	return []models.Medication{
		{ID: "med-a", Name: "Lisinopril", TimeSlot: "morning", Active: true},
		{ID: "med-b", Name: "Metformin", TimeSlot: "morning", Active: true},
	}
}

func TestDeriveDayState_MorningScenarioPartial(t *testing.T) {
	d := New()

	in := Inputs{
		Date:        testDate,
		Now:         at(9, 0),
		Plan:        morningMedsPlan(),
		Medications: activeMeds(),
		Doses: []models.DoseEvent{
			{ID: "dose-1", Date: testDate, MedicationID: "med-a", Taken: true},
		},
	}

	state := d.DeriveDayState(in)

	if len(state.Routines) != 1 {
		t.Fatalf("expected 1 routine, got %d", len(state.Routines))
	}
	rs := state.Routines[0]
	if rs.Status != models.RoutineAvailable {
		t.Errorf("expected routine status available, got %s", rs.Status)
	}

	is := rs.Items[0]
	if is.Status != models.ItemStatusPartial {
		t.Errorf("expected item status partial, got %s", is.Status)
	}
	if is.Completed != 1 {
		t.Errorf("expected completed=1, got %d", is.Completed)
	}

	if state.Progress.Meds.Completed != 1 || state.Progress.Meds.Expected != 2 {
		t.Errorf("expected progress.meds 1/2, got %d/%d", state.Progress.Meds.Completed, state.Progress.Meds.Expected)
	}

	if state.NextAction == nil {
		t.Fatal("expected a next action")
	}
	if state.NextAction.ItemID != "item-meds" {
		t.Errorf("expected next action for item-meds, got %s", state.NextAction.ItemID)
	}
	if state.NextAction.Remaining != 1 {
		t.Errorf("expected 1 remaining, got %d", state.NextAction.Remaining)
	}
}

func TestDeriveDayState_MorningScenarioEarlyCompletion(t *testing.T) {
	d := New()

	in := Inputs{
		Date:        testDate,
		Now:         at(9, 0),
		Plan:        morningMedsPlan(),
		Medications: activeMeds(),
		Doses: []models.DoseEvent{
			{ID: "dose-1", Date: testDate, MedicationID: "med-a", Taken: true},
			{ID: "dose-2", Date: testDate, MedicationID: "med-b", Taken: true},
		},
	}

	state := d.DeriveDayState(in)

	rs := state.Routines[0]
	if rs.Items[0].Status != models.ItemStatusDone {
		t.Errorf("expected item done, got %s", rs.Items[0].Status)
	}
	// 09:00 is still inside the window, but every item is done.
	if rs.Status != models.RoutineCompleted {
		t.Errorf("expected routine completed via early completion, got %s", rs.Status)
	}
	if state.NextAction != nil {
		t.Errorf("expected no next action, got %+v", state.NextAction)
	}
	if !state.AllComplete {
		t.Error("expected AllComplete")
	}
}

func TestDeriveDayState_Idempotence(t *testing.T) {
	d := New()

	in := Inputs{
		Date:        testDate,
		Now:         at(14, 30),
		Plan:        morningMedsPlan(),
		Medications: activeMeds(),
		Doses: []models.DoseEvent{
			{ID: "dose-1", Date: testDate, MedicationID: "med-a", Taken: true},
		},
		Vitals: []models.VitalsEntry{
			{ID: "v-1", Date: testDate, Systolic: intPtr(128), Diastolic: intPtr(82)},
		},
		Overrides: []models.Override{
			{Date: testDate, RoutineID: "routine-morning", ItemID: "item-meds", Done: false},
		},
		ValidateReferences: true,
	}

	first := d.DeriveDayState(in)
	second := d.DeriveDayState(in)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("derivation is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestDeriveDayState_DoesNotMutateInputs(t *testing.T) {
	d := New()

	vitals := []models.VitalsEntry{
		{ID: "v-1", Date: testDate, Systolic: intPtr(128), Diastolic: intPtr(82), HeartRate: intPtr(70)},
	}
	vitalsCopy := []models.VitalsEntry{
		{ID: "v-1", Date: testDate, Systolic: intPtr(128), Diastolic: intPtr(82), HeartRate: intPtr(70)},
	}
	appts := []models.Appointment{
		{ID: "appt-2", Date: testDate, Time: "16:00", Title: "Cardiology"},
		{ID: "appt-1", Date: testDate, Time: "07:00", Title: "Labs"},
	}

	plan := morningMedsPlan()
	plan.Routines[0].Items = append(plan.Routines[0].Items, models.CarePlanItem{
		ID: "item-vitals", Type: models.ItemVitals, Label: "Check vitals", Target: 2,
		Metadata: models.ItemMetadata{VitalTypes: []string{"systolic", "diastolic", "heartRate"}},
	})

	in := Inputs{Date: testDate, Now: at(9, 0), Plan: plan, Vitals: vitals, Appointments: appts}
	d.DeriveDayState(in)
	d.DeriveDayState(in)

	if !reflect.DeepEqual(vitals, vitalsCopy) {
		t.Error("vitals input was mutated by derivation")
	}
	// Appointment order must survive timeline sorting.
	if appts[0].ID != "appt-2" || appts[1].ID != "appt-1" {
		t.Error("appointments input was reordered by derivation")
	}
}

func TestDeriveDayState_OverridePrecedence(t *testing.T) {
	d := New()

	base := Inputs{
		Date:        testDate,
		Now:         at(9, 0),
		Plan:        morningMedsPlan(),
		Medications: activeMeds(),
		Doses: []models.DoseEvent{
			{ID: "dose-1", Date: testDate, MedicationID: "med-a", Taken: true},
		},
	}

	// done: true forces completion to target regardless of logs.
	in := base
	in.Overrides = []models.Override{{Date: testDate, RoutineID: "routine-morning", ItemID: "item-meds", Done: true}}
	state := d.DeriveDayState(in)
	is := state.Routines[0].Items[0]
	if is.Completed != 2 || is.Status != models.ItemStatusDone {
		t.Errorf("done override: expected completed=2/done, got %d/%s", is.Completed, is.Status)
	}
	if !is.Overridden {
		t.Error("expected Overridden flag")
	}

	// done: false forces completion to 0 even with a logged dose.
	in = base
	in.Overrides = []models.Override{{Date: testDate, RoutineID: "routine-morning", ItemID: "item-meds", Done: false}}
	state = d.DeriveDayState(in)
	is = state.Routines[0].Items[0]
	if is.Completed != 0 || is.Status != models.ItemStatusPending {
		t.Errorf("undone override: expected completed=0/pending, got %d/%s", is.Completed, is.Status)
	}
}

func TestDeriveDayState_SnoozeSkipsNextAction(t *testing.T) {
	d := New()

	plan := morningMedsPlan()
	plan.Routines[0].Items = append(plan.Routines[0].Items, models.CarePlanItem{
		ID: "item-water", Type: models.ItemHydration, Label: "Water", Target: 8,
	})

	in := Inputs{
		Date:        testDate,
		Now:         at(9, 0),
		Plan:        plan,
		Medications: activeMeds(),
		Overrides: []models.Override{
			// Snoozed until 11:00; still pending but not actionable yet.
			{Date: testDate, RoutineID: "routine-morning", ItemID: "item-meds", Done: false, SnoozeUntilMin: intPtr(11 * 60)},
		},
	}

	state := d.DeriveDayState(in)

	if state.NextAction == nil {
		t.Fatal("expected a next action")
	}
	if state.NextAction.ItemID != "item-water" {
		t.Errorf("expected snoozed item to be skipped, next action was %s", state.NextAction.ItemID)
	}
	if state.Routines[0].Items[0].SnoozedUntilMin == nil {
		t.Error("expected snooze to be recorded on the item state")
	}
}

func TestDeriveDayState_BloodPressureCountsOnce(t *testing.T) {
	d := New()

	plan := models.CarePlan{
		ID: "plan-1",
		Routines: []models.Routine{{
			ID: "r-1", Name: "Checks", Window: models.TimeWindow{Start: "08:00", End: "20:00"},
			Items: []models.CarePlanItem{{
				ID: "item-vitals", Type: models.ItemVitals, Label: "Vitals", Target: 2,
				Metadata: models.ItemMetadata{VitalTypes: []string{"systolic", "diastolic"}},
			}},
		}},
	}

	in := Inputs{
		Date: testDate,
		Now:  at(9, 0),
		Plan: plan,
		Vitals: []models.VitalsEntry{
			{ID: "v-1", Date: testDate, Systolic: intPtr(130), Diastolic: intPtr(85)},
		},
	}

	state := d.DeriveDayState(in)

	if got := state.Routines[0].Items[0].Completed; got != 1 {
		t.Errorf("BP pair must count once, got %d", got)
	}
}

func TestDeriveDayState_VitalsScenarioBPPlusHeartRate(t *testing.T) {
	d := New()

	plan := models.CarePlan{
		ID: "plan-1",
		Routines: []models.Routine{{
			ID: "r-1", Name: "Checks", Window: models.TimeWindow{Start: "08:00", End: "20:00"},
			Items: []models.CarePlanItem{{
				ID: "item-vitals", Type: models.ItemVitals, Label: "Vitals", Target: 2,
				Metadata: models.ItemMetadata{VitalTypes: []string{"systolic", "diastolic", "heartRate"}},
			}},
		}},
	}

	in := Inputs{
		Date: testDate,
		Now:  at(9, 0),
		Plan: plan,
		Vitals: []models.VitalsEntry{
			{ID: "v-1", Date: testDate, Systolic: intPtr(130), HeartRate: intPtr(72)},
		},
	}

	state := d.DeriveDayState(in)

	is := state.Routines[0].Items[0]
	if is.Completed != 2 {
		t.Errorf("expected completed=2 (BP pair + heart rate), got %d", is.Completed)
	}
	if is.Status != models.ItemStatusDone {
		t.Errorf("expected done, got %s", is.Status)
	}
}

func TestDeriveDayState_VitalsDefaultSet(t *testing.T) {
	d := New()

	plan := models.CarePlan{
		ID: "plan-1",
		Routines: []models.Routine{{
			ID: "r-1", Name: "Checks", Window: models.TimeWindow{Start: "08:00", End: "20:00"},
			Items: []models.CarePlanItem{{
				ID: "item-vitals", Type: models.ItemVitals, Label: "Vitals", Target: 4,
			}},
		}},
	}

	in := Inputs{
		Date: testDate,
		Now:  at(9, 0),
		Plan: plan,
		Vitals: []models.VitalsEntry{
			{ID: "v-1", Date: testDate, Glucose: floatPtr(104), Weight: floatPtr(142.5)},
		},
	}

	state := d.DeriveDayState(in)

	if got := state.Routines[0].Items[0].Completed; got != 2 {
		t.Errorf("expected glucose + weight = 2 against the default vital set, got %d", got)
	}
}

func TestDeriveDayState_MedicationDedup(t *testing.T) {
	d := New()

	in := Inputs{
		Date:        testDate,
		Now:         at(9, 0),
		Plan:        morningMedsPlan(),
		Medications: activeMeds(),
		Doses: []models.DoseEvent{
			{ID: "dose-1", Date: testDate, MedicationID: "med-a", Taken: true, Time: "08:05"},
			{ID: "dose-2", Date: testDate, MedicationID: "med-a", Taken: true, Time: "08:40"},
		},
	}

	state := d.DeriveDayState(in)

	if got := state.Routines[0].Items[0].Completed; got != 1 {
		t.Errorf("double-dosed medication must count once, got %d", got)
	}
}

func TestDeriveDayState_MedsTimeSlotFilter(t *testing.T) {
	d := New()

	plan := models.CarePlan{
		ID: "plan-1",
		Routines: []models.Routine{{
			ID: "r-1", Name: "Evening", Window: models.TimeWindow{Start: "18:00", End: "21:00"},
			Items: []models.CarePlanItem{{
				ID: "item-evening-meds", Type: models.ItemMeds, Label: "Evening meds", Target: 1,
				Metadata: models.ItemMetadata{TimeSlot: "evening"},
			}},
		}},
	}

	meds := []models.Medication{
		{ID: "med-a", Name: "Lisinopril", TimeSlot: "morning", Active: true},
		{ID: "med-c", Name: "Atorvastatin", TimeSlot: "evening", Active: true},
		{ID: "med-d", Name: "Old script", TimeSlot: "evening", Active: false},
	}

	in := Inputs{
		Date:        testDate,
		Now:         at(19, 0),
		Plan:        plan,
		Medications: meds,
		Doses: []models.DoseEvent{
			// Morning med taken; must not count toward the evening slot item.
			{ID: "dose-1", Date: testDate, MedicationID: "med-a", Taken: true},
			// Inactive med taken; excluded from the slot cross-reference.
			{ID: "dose-2", Date: testDate, MedicationID: "med-d", Taken: true},
		},
	}

	state := d.DeriveDayState(in)
	if got := state.Routines[0].Items[0].Completed; got != 0 {
		t.Errorf("expected 0 evening meds taken, got %d", got)
	}

	in.Doses = append(in.Doses, models.DoseEvent{ID: "dose-3", Date: testDate, MedicationID: "med-c", Taken: true})
	state = d.DeriveDayState(in)
	if got := state.Routines[0].Items[0].Completed; got != 1 {
		t.Errorf("expected evening med to count, got %d", got)
	}
}

func TestDeriveDayState_MealsMoodSleepHydration(t *testing.T) {
	d := New()

	plan := models.CarePlan{
		ID: "plan-1",
		Routines: []models.Routine{{
			ID: "r-1", Name: "All day", Window: models.TimeWindow{Start: "07:00", End: "22:00"},
			Items: []models.CarePlanItem{
				{ID: "i-meals", Type: models.ItemMeals, Label: "Meals", Target: 3,
					Metadata: models.ItemMetadata{MealTypes: []string{"Breakfast", "lunch", "dinner"}}},
				{ID: "i-mood", Type: models.ItemMood, Label: "Mood check", Target: 1},
				{ID: "i-sleep", Type: models.ItemSleep, Label: "Sleep log", Target: 1},
				{ID: "i-water", Type: models.ItemHydration, Label: "Water", Target: 8},
			},
		}},
	}

	in := Inputs{
		Date: testDate,
		Now:  at(20, 0),
		Plan: plan,
		Meals: []models.MealEntry{
			{ID: "m-1", Date: testDate, MealType: "breakfast"},
			{ID: "m-2", Date: testDate, MealType: "LUNCH"},
			{ID: "m-3", Date: testDate, MealType: "snack"}, // filtered out
		},
		Moods:     []models.MoodEntry{{ID: "mo-1", Date: testDate, Rating: 4}},
		Sleep:     []models.SleepEntry{{ID: "s-1", Date: testDate, Hours: 7.5}},
		Hydration: []models.HydrationEntry{{ID: "h-1", Date: testDate, Glasses: 6}, {ID: "h-2", Date: testDate, Glasses: 5}},
	}

	state := d.DeriveDayState(in)
	items := state.Routines[0].Items

	if items[0].Completed != 2 {
		t.Errorf("meals: expected 2 (snack filtered, case-insensitive match), got %d", items[0].Completed)
	}
	if items[1].Completed != 1 {
		t.Errorf("mood: expected binary 1, got %d", items[1].Completed)
	}
	if items[2].Completed != 1 {
		t.Errorf("sleep: expected binary 1, got %d", items[2].Completed)
	}
	if items[3].Completed != 8 {
		t.Errorf("hydration: expected 11 glasses capped at 8, got %d", items[3].Completed)
	}
}

func TestDeriveDayState_ProgressRollUpConservation(t *testing.T) {
	d := New()

	plan := models.CarePlan{
		ID: "plan-1",
		Routines: []models.Routine{
			{
				ID: "r-1", Name: "Morning", Window: models.TimeWindow{Start: "08:00", End: "10:00"},
				Items: []models.CarePlanItem{
					{ID: "i-1", Type: models.ItemMeds, Label: "AM meds", Target: 2,
						Metadata: models.ItemMetadata{MedicationIDs: []string{"med-a", "med-b"}}},
					{ID: "i-2", Type: models.ItemHydration, Label: "Water", Target: 4},
				},
			},
			{
				ID: "r-2", Name: "Evening", Window: models.TimeWindow{Start: "18:00", End: "21:00"},
				Items: []models.CarePlanItem{
					{ID: "i-3", Type: models.ItemHydration, Label: "More water", Target: 4},
					{ID: "i-4", Type: models.ItemAppointment, Label: "Checkup", Target: 1,
						Metadata: models.ItemMetadata{AppointmentID: "appt-1"}},
				},
			},
		},
	}

	in := Inputs{
		Date:        testDate,
		Now:         at(12, 0),
		Plan:        plan,
		Medications: activeMeds(),
		Doses: []models.DoseEvent{
			{ID: "dose-1", Date: testDate, MedicationID: "med-b", Taken: true},
		},
		Hydration: []models.HydrationEntry{{ID: "h-1", Date: testDate, Glasses: 5}},
	}

	state := d.DeriveDayState(in)

	var meds, hydration models.CategoryProgress
	for _, rs := range state.Routines {
		for _, is := range rs.Items {
			switch is.Item.Type {
			case models.ItemMeds:
				meds.Completed += is.Completed
				meds.Expected += is.Expected
			case models.ItemHydration:
				hydration.Completed += is.Completed
				hydration.Expected += is.Expected
			}
		}
	}

	if state.Progress.Meds != meds {
		t.Errorf("meds roll-up mismatch: progress %+v, summed %+v", state.Progress.Meds, meds)
	}
	if state.Progress.Hydration != hydration {
		t.Errorf("hydration roll-up mismatch: progress %+v, summed %+v", state.Progress.Hydration, hydration)
	}
	// Appointment items roll into no bucket.
	zero := models.CategoryProgress{}
	if state.Progress.Vitals != zero || state.Progress.Mood != zero {
		t.Error("unrelated buckets must stay zeroed")
	}
}

func TestDeriveDayState_TimelineOrdering(t *testing.T) {
	d := New()

	plan := models.CarePlan{
		ID: "plan-1",
		Routines: []models.Routine{
			{ID: "r-evening", Name: "Evening", Window: models.TimeWindow{Start: "18:00", End: "21:00"}},
			{ID: "r-morning", Name: "Morning", Window: models.TimeWindow{Start: "08:00", End: "10:00"}},
		},
	}

	in := Inputs{
		Date: testDate,
		Now:  at(12, 0),
		Plan: plan,
		Appointments: []models.Appointment{
			{ID: "appt-1", Date: testDate, Time: "08:00", Title: "Labs"},
			{ID: "appt-2", Date: testDate, Time: "13:30", Title: "Physio"},
			{ID: "appt-other-day", Date: "2026-03-15", Time: "09:00", Title: "Dentist"},
			{ID: "appt-untimed", Date: testDate, Title: "Pharmacy pickup"},
		},
	}

	state := d.DeriveDayState(in)

	if len(state.Timeline) != 5 {
		t.Fatalf("expected 5 timeline entries, got %d", len(state.Timeline))
	}
	for i := 1; i < len(state.Timeline); i++ {
		if state.Timeline[i].Minutes < state.Timeline[i-1].Minutes {
			t.Errorf("timeline not sorted at %d: %d < %d", i, state.Timeline[i].Minutes, state.Timeline[i-1].Minutes)
		}
	}
	// Tie at 08:00: routine entry precedes the appointment.
	if state.Timeline[0].Kind != models.TimelineRoutine || state.Timeline[0].RefID != "r-morning" {
		t.Errorf("expected morning routine first at the 08:00 tie, got %s %s", state.Timeline[0].Kind, state.Timeline[0].RefID)
	}
	if state.Timeline[1].RefID != "appt-1" {
		t.Errorf("expected appointment second at the 08:00 tie, got %s", state.Timeline[1].RefID)
	}
	// Untimed appointment sorts last with a placeholder label.
	last := state.Timeline[len(state.Timeline)-1]
	if last.RefID != "appt-untimed" || last.Time != "Time not set" {
		t.Errorf("expected untimed appointment last with placeholder, got %+v", last)
	}
	// Labs at 08:00 has passed by 12:00 and is not marked complete.
	if state.Timeline[1].Status != models.RoutineAvailable {
		t.Errorf("expected past-time appointment available, got %s", state.Timeline[1].Status)
	}
}

func TestDeriveDayState_NextActionSkipsCompletedRoutine(t *testing.T) {
	d := New()

	plan := models.CarePlan{
		ID: "plan-1",
		Routines: []models.Routine{
			{
				ID: "r-morning", Name: "Morning", Window: models.TimeWindow{Start: "06:00", End: "08:00"},
				Items: []models.CarePlanItem{
					{ID: "i-1", Type: models.ItemCustom, Label: "Stretching", Target: 1},
				},
			},
			{
				ID: "r-midday", Name: "Midday", Window: models.TimeWindow{Start: "11:00", End: "14:00"},
				Items: []models.CarePlanItem{
					{ID: "i-2", Type: models.ItemMood, Label: "Mood check", Target: 1},
				},
			},
		},
	}

	// 09:00: the morning window has closed, so its pending custom item
	// must never be the next action.
	in := Inputs{Date: testDate, Now: at(9, 0), Plan: plan}
	state := d.DeriveDayState(in)

	if state.Routines[0].Status != models.RoutineCompleted {
		t.Fatalf("expected morning routine completed by time, got %s", state.Routines[0].Status)
	}
	if state.NextAction == nil {
		t.Fatal("expected a next action from the midday routine")
	}
	if state.NextAction.RoutineID != "r-midday" {
		t.Errorf("next action drawn from completed routine: %+v", state.NextAction)
	}
}

func TestDeriveDayState_EmptyPlan(t *testing.T) {
	d := New()

	state := d.DeriveDayState(Inputs{Date: testDate, Now: at(9, 0)})

	if state.Date != testDate {
		t.Errorf("expected date %s, got %s", testDate, state.Date)
	}
	if state.Routines == nil || len(state.Routines) != 0 {
		t.Errorf("expected empty routines slice, got %v", state.Routines)
	}
	if state.Timeline == nil || len(state.Timeline) != 0 {
		t.Errorf("expected empty timeline slice, got %v", state.Timeline)
	}
	if state.NextAction != nil {
		t.Error("expected nil next action")
	}
	if state.AllComplete {
		t.Error("empty plan must not report AllComplete")
	}
	if state.Progress != (models.Progress{}) {
		t.Errorf("expected zeroed progress, got %+v", state.Progress)
	}
}

func TestDeriveDayState_IntegrityWarnings(t *testing.T) {
	d := New()

	plan := models.CarePlan{
		ID: "plan-1",
		Routines: []models.Routine{{
			ID: "r-1", Name: "Morning", Window: models.TimeWindow{Start: "08:00", End: "10:00"},
			Items: []models.CarePlanItem{
				{ID: "i-1", Type: models.ItemMeds, Label: "Meds", Target: 1,
					Metadata: models.ItemMetadata{MedicationIDs: []string{"med-a", "X"}}},
				{ID: "i-2", Type: models.ItemAppointment, Label: "Visit", Target: 1,
					Metadata: models.ItemMetadata{AppointmentID: "appt-gone"}},
			},
		}},
	}

	in := Inputs{
		Date:               testDate,
		Now:                at(9, 0),
		Plan:               plan,
		Medications:        []models.Medication{{ID: "med-a", Name: "Lisinopril", Active: true}},
		Appointments:       []models.Appointment{{ID: "appt-1", Date: testDate, Title: "Labs"}},
		ValidateReferences: true,
	}

	state := d.DeriveDayState(in)

	if len(state.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %+v", len(state.Warnings), state.Warnings)
	}
	if state.Warnings[0].Kind != models.WarnMissingMedication || state.Warnings[0].MissingID != "X" {
		t.Errorf("expected missing_medication for X, got %+v", state.Warnings[0])
	}
	if state.Warnings[1].Kind != models.WarnMissingAppointment || state.Warnings[1].MissingID != "appt-gone" {
		t.Errorf("expected missing_appointment for appt-gone, got %+v", state.Warnings[1])
	}

	// Validation off: no warnings regardless of dangling references.
	in.ValidateReferences = false
	if w := d.DeriveDayState(in).Warnings; len(w) != 0 {
		t.Errorf("expected no warnings with validation disabled, got %+v", w)
	}
}

func TestDeriveDayState_MalformedWindowFallsBack(t *testing.T) {
	d := New()

	plan := models.CarePlan{
		ID: "plan-1",
		Routines: []models.Routine{{
			ID: "r-1", Name: "Anytime", Window: models.TimeWindow{Start: "not-a-time", End: ""},
			Items: []models.CarePlanItem{
				{ID: "i-1", Type: models.ItemMood, Label: "Mood", Target: 1},
			},
		}},
	}

	state := d.DeriveDayState(Inputs{Date: testDate, Now: at(9, 0), Plan: plan})

	// Malformed window degrades to an all-day available routine.
	if state.Routines[0].Status != models.RoutineAvailable {
		t.Errorf("expected available fallback for malformed window, got %s", state.Routines[0].Status)
	}
	if state.Timeline[0].Time != "Time not set" {
		t.Errorf("expected placeholder time label, got %q", state.Timeline[0].Time)
	}
}
