package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caretend/caretend/internal/models"
)

func kinds(conflicts []Conflict) []ConflictKind {
	out := make([]ConflictKind, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, c.Kind)
	}
	return out
}

func TestCheckPlanClean(t *testing.T) {
	plan := models.CarePlan{
		Routines: []models.Routine{
			{
				ID:     "r1",
				Name:   "Morning",
				Window: models.TimeWindow{Start: "08:00", End: "10:00"},
				Items: []models.CarePlanItem{
					{ID: "i1", Type: models.ItemMeds, Label: "Meds", Target: 2,
						Metadata: models.ItemMetadata{MedicationIDs: []string{"med-a"}}},
				},
			},
		},
	}
	meds := []models.Medication{{ID: "med-a", Name: "Lisinopril", Active: true}}

	conflicts := CheckPlan(plan, meds, nil)
	assert.Empty(t, conflicts)
}

func TestCheckPlanMalformedWindow(t *testing.T) {
	plan := models.CarePlan{
		Routines: []models.Routine{
			{ID: "r1", Name: "Morning", Window: models.TimeWindow{Start: "8am", End: "10:00"}},
		},
	}

	conflicts := CheckPlan(plan, nil, nil)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictMalformedTime, conflicts[0].Kind)
	assert.Contains(t, conflicts[0].Detail, "8am")
}

func TestCheckPlanEmptyWindowBoundsAllowed(t *testing.T) {
	plan := models.CarePlan{
		Routines: []models.Routine{
			{ID: "r1", Name: "Anytime"},
		},
	}

	assert.Empty(t, CheckPlan(plan, nil, nil))
}

func TestCheckPlanNegativeTarget(t *testing.T) {
	plan := models.CarePlan{
		Routines: []models.Routine{
			{
				ID: "r1", Name: "Morning",
				Window: models.TimeWindow{Start: "08:00", End: "10:00"},
				Items: []models.CarePlanItem{
					{ID: "i1", Type: models.ItemHydration, Label: "Water", Target: -3},
				},
			},
		},
	}

	conflicts := CheckPlan(plan, nil, nil)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictNegativeTarget, conflicts[0].Kind)
}

func TestCheckPlanDuplicateRoutineNames(t *testing.T) {
	plan := models.CarePlan{
		Routines: []models.Routine{
			{ID: "r1", Name: "Morning", Window: models.TimeWindow{Start: "08:00", End: "10:00"}},
			{ID: "r2", Name: "morning ", Window: models.TimeWindow{Start: "11:00", End: "12:00"}},
		},
	}

	conflicts := CheckPlan(plan, nil, nil)
	require.Len(t, conflicts, 1)
	assert.Equal(t, ConflictDuplicateRoutine, conflicts[0].Kind)
}

func TestCheckPlanDanglingReferences(t *testing.T) {
	plan := models.CarePlan{
		Routines: []models.Routine{
			{
				ID: "r1", Name: "Morning",
				Window: models.TimeWindow{Start: "08:00", End: "10:00"},
				Items: []models.CarePlanItem{
					{ID: "i1", Type: models.ItemMeds, Label: "Meds", Target: 1,
						Metadata: models.ItemMetadata{MedicationIDs: []string{"gone"}}},
					{ID: "i2", Type: models.ItemAppointment, Label: "Checkup", Target: 1,
						Metadata: models.ItemMetadata{AppointmentID: "missing"}},
				},
			},
		},
	}

	conflicts := CheckPlan(plan, nil, nil)
	assert.ElementsMatch(t,
		[]ConflictKind{ConflictMissingMedication, ConflictMissingAppointment},
		kinds(conflicts))
}

func TestFormatReport(t *testing.T) {
	assert.Equal(t, "No problems found.", FormatReport(nil))

	report := FormatReport([]Conflict{
		{Kind: ConflictNegativeTarget, Routine: "Morning", Item: "Water", Detail: "target is -3, must be zero or more"},
	})
	assert.Contains(t, report, "1 problem(s) found")
	assert.Contains(t, report, "Morning / Water")
}
