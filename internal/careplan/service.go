package careplan

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/caretend/caretend/internal/bus"
	"github.com/caretend/caretend/internal/logger"
	"github.com/caretend/caretend/internal/models"
	"github.com/caretend/caretend/internal/storage"
)

// Service owns the two lives of the care plan: the live plan that the
// caregiver edits, and the per-date frozen snapshots that derivation
// reads. A date's snapshot is taken on first access and never replaced,
// so plan edits made mid-day take effect the following day.
type Service struct {
	store storage.Provider
	bus   *bus.Bus
}

func New(store storage.Provider, b *bus.Bus) *Service {
	return &Service{store: store, bus: b}
}

// Live returns the editable plan. An unconfigured plan comes back empty,
// not as an error.
func (s *Service) Live() (models.CarePlan, error) {
	return s.store.GetCarePlan()
}

// Save persists the live plan and notifies subscribers. Existing
// snapshots are untouched; the new plan reaches derivation the next
// time a fresh date is frozen.
func (s *Service) Save(plan models.CarePlan) error {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	plan.UpdatedAt = time.Now().Format(time.RFC3339)

	if err := s.store.SaveCarePlan(plan); err != nil {
		return err
	}
	s.bus.Publish(bus.TopicPlan)
	return nil
}

// EffectiveForDate returns the plan derivation should use for a date.
// The first call for a date freezes the current live plan as that
// date's snapshot; later calls return the frozen copy even after edits.
func (s *Service) EffectiveForDate(date string) (models.CarePlan, error) {
	snapshot, ok, err := s.store.GetPlanSnapshot(date)
	if err != nil {
		return models.CarePlan{}, err
	}
	if ok {
		return snapshot, nil
	}

	live, err := s.store.GetCarePlan()
	if err != nil {
		return models.CarePlan{}, err
	}
	if err := s.store.SavePlanSnapshot(date, live); err != nil {
		return models.CarePlan{}, err
	}
	logger.Debug("froze plan snapshot", "date", date, "routines", len(live.Routines))
	return live, nil
}

// AddRoutine appends a routine to the live plan, assigning IDs to the
// routine and any items that lack one.
func (s *Service) AddRoutine(routine models.Routine) error {
	plan, err := s.store.GetCarePlan()
	if err != nil {
		return err
	}

	if routine.ID == "" {
		routine.ID = uuid.NewString()
	}
	for i := range routine.Items {
		if routine.Items[i].ID == "" {
			routine.Items[i].ID = uuid.NewString()
		}
	}

	plan.Routines = append(plan.Routines, routine)
	return s.Save(plan)
}

// AddItem appends an item to the named routine in the live plan.
func (s *Service) AddItem(routineID string, item models.CarePlanItem) error {
	plan, err := s.store.GetCarePlan()
	if err != nil {
		return err
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	for i := range plan.Routines {
		if plan.Routines[i].ID == routineID || plan.Routines[i].Name == routineID {
			plan.Routines[i].Items = append(plan.Routines[i].Items, item)
			return s.Save(plan)
		}
	}
	return fmt.Errorf("routine %s not found", routineID)
}

// RemoveRoutine drops a routine from the live plan by ID or name.
func (s *Service) RemoveRoutine(routineID string) error {
	plan, err := s.store.GetCarePlan()
	if err != nil {
		return err
	}

	for i := range plan.Routines {
		if plan.Routines[i].ID == routineID || plan.Routines[i].Name == routineID {
			plan.Routines = append(plan.Routines[:i], plan.Routines[i+1:]...)
			return s.Save(plan)
		}
	}
	return fmt.Errorf("routine %s not found", routineID)
}

// SetPatientName updates the display name on the live plan.
func (s *Service) SetPatientName(name string) error {
	plan, err := s.store.GetCarePlan()
	if err != nil {
		return err
	}
	plan.PatientName = name
	return s.Save(plan)
}
