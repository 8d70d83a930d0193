package careplan

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caretend/caretend/internal/bus"
	"github.com/caretend/caretend/internal/models"
	"github.com/caretend/caretend/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "caretend.json"))
	require.NoError(t, store.Init())
	return New(store, bus.New())
}

func samplePlan() models.CarePlan {
	return models.CarePlan{
		PatientName: "Rosa",
		Routines: []models.Routine{
			{
				ID:     "routine-morning",
				Name:   "Morning",
				Window: models.TimeWindow{Start: "08:00", End: "10:00"},
				Items: []models.CarePlanItem{
					{ID: "item-meds", Type: models.ItemMeds, Label: "Morning meds", Target: 2},
				},
			},
		},
	}
}

func TestSaveAssignsIDAndTimestamp(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.Save(samplePlan()))

	live, err := svc.Live()
	require.NoError(t, err)
	assert.NotEmpty(t, live.ID)
	assert.NotEmpty(t, live.UpdatedAt)
	assert.Equal(t, "Rosa", live.PatientName)
}

func TestEffectiveForDateFreezesOnFirstAccess(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Save(samplePlan()))

	frozen, err := svc.EffectiveForDate("2026-03-14")
	require.NoError(t, err)
	require.Len(t, frozen.Routines, 1)

	// Edit the live plan after the snapshot was taken.
	require.NoError(t, svc.AddRoutine(models.Routine{
		Name:   "Evening",
		Window: models.TimeWindow{Start: "18:00", End: "21:00"},
	}))

	again, err := svc.EffectiveForDate("2026-03-14")
	require.NoError(t, err)
	assert.Len(t, again.Routines, 1, "same-day derivation must keep the frozen plan")

	tomorrow, err := svc.EffectiveForDate("2026-03-15")
	require.NoError(t, err)
	assert.Len(t, tomorrow.Routines, 2, "edits apply from the next frozen date")
}

func TestEffectiveForDateEmptyPlan(t *testing.T) {
	svc := newTestService(t)

	plan, err := svc.EffectiveForDate("2026-03-14")
	require.NoError(t, err)
	assert.True(t, plan.IsEmpty())
}

func TestAddItemByRoutineName(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Save(samplePlan()))

	err := svc.AddItem("Morning", models.CarePlanItem{
		Type:   models.ItemHydration,
		Label:  "Water",
		Target: 8,
	})
	require.NoError(t, err)

	live, err := svc.Live()
	require.NoError(t, err)
	require.Len(t, live.Routines[0].Items, 2)
	assert.NotEmpty(t, live.Routines[0].Items[1].ID)
}

func TestAddItemUnknownRoutine(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Save(samplePlan()))

	err := svc.AddItem("Night", models.CarePlanItem{Type: models.ItemSleep, Label: "Sleep", Target: 1})
	assert.ErrorContains(t, err, "not found")
}

func TestRemoveRoutine(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Save(samplePlan()))

	require.NoError(t, svc.RemoveRoutine("routine-morning"))

	live, err := svc.Live()
	require.NoError(t, err)
	assert.True(t, live.IsEmpty())
}

func TestSavePublishesPlanTopic(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "caretend.json"))
	require.NoError(t, store.Init())
	b := bus.New()
	svc := New(store, b)

	ch, cancel := b.Subscribe(bus.TopicPlan)
	defer cancel()

	require.NoError(t, svc.Save(samplePlan()))

	select {
	case topic := <-ch:
		assert.Equal(t, bus.TopicPlan, topic)
	default:
		t.Fatal("expected a plan notification after save")
	}
}
