package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caretend/caretend/internal/bus"
	"github.com/caretend/caretend/internal/careplan"
	"github.com/caretend/caretend/internal/deriver"
	"github.com/caretend/caretend/internal/models"
	"github.com/caretend/caretend/internal/storage"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "caretend.json"))
	require.NoError(t, store.Init())
	b := bus.New()
	return &Context{
		Store:   store,
		Bus:     b,
		Plans:   careplan.New(store, b),
		Deriver: deriver.New(),
	}
}

func apptPlan(appointmentID string) models.CarePlan {
	return models.CarePlan{
		Routines: []models.Routine{
			{
				ID:     "routine-week",
				Name:   "This week",
				Window: models.TimeWindow{Start: "08:00", End: "20:00"},
				Items: []models.CarePlanItem{
					{
						ID: "item-appt", Type: models.ItemAppointment,
						Label: "Cardiology follow-up", Target: 1,
						Metadata: models.ItemMetadata{AppointmentID: appointmentID},
					},
				},
			},
		},
	}
}

func TestDeriveDayReferencedFutureAppointmentNotFlagged(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.Plans.Save(apptPlan("appt-future")))
	require.NoError(t, ctx.Store.AddAppointment(models.Appointment{
		ID: "appt-future", Date: "2026-03-15", Time: "09:30", Title: "Cardiology",
	}))

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
	state, err := ctx.DeriveDay("2026-03-14", now, true)
	require.NoError(t, err)

	assert.Empty(t, state.Warnings,
		"an appointment scheduled on a later day is a valid reference")

	// The future appointment still stays off this date's timeline.
	for _, e := range state.Timeline {
		assert.NotEqual(t, models.TimelineAppointment, e.Kind)
	}
}

func TestDeriveDayDanglingAppointmentStillFlagged(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.Plans.Save(apptPlan("appt-gone")))

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
	state, err := ctx.DeriveDay("2026-03-14", now, true)
	require.NoError(t, err)

	require.Len(t, state.Warnings, 1)
	assert.Equal(t, models.WarnMissingAppointment, state.Warnings[0].Kind)
	assert.Equal(t, "appt-gone", state.Warnings[0].MissingID)
}

func TestDeriveDaySameDayAppointmentOnTimeline(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.Plans.Save(apptPlan("appt-today")))
	require.NoError(t, ctx.Store.AddAppointment(models.Appointment{
		ID: "appt-today", Date: "2026-03-14", Time: "09:30", Title: "Cardiology",
	}))

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
	state, err := ctx.DeriveDay("2026-03-14", now, true)
	require.NoError(t, err)

	assert.Empty(t, state.Warnings)

	found := false
	for _, e := range state.Timeline {
		if e.Kind == models.TimelineAppointment && e.RefID == "appt-today" {
			found = true
		}
	}
	assert.True(t, found, "same-day appointment belongs on the timeline")
}
