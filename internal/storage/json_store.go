package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/caretend/caretend/internal/models"
)

// fileData is the on-disk layout of the JSON store: one document
// holding everything, written atomically on each mutation.
type fileData struct {
	Version       int                                 `json:"version"`
	CarePlan      models.CarePlan                     `json:"care_plan"`
	PlanSnapshots map[string]models.CarePlan          `json:"plan_snapshots"`
	Medications   map[string]models.Medication        `json:"medications"`
	Appointments  map[string]models.Appointment       `json:"appointments"`
	Doses         map[string][]models.DoseEvent       `json:"doses"`
	Vitals        map[string][]models.VitalsEntry     `json:"vitals"`
	Meals         map[string][]models.MealEntry       `json:"meals"`
	Moods         map[string][]models.MoodEntry       `json:"moods"`
	Hydration     map[string][]models.HydrationEntry  `json:"hydration"`
	Sleep         map[string][]models.SleepEntry      `json:"sleep"`
	Overrides     map[string][]models.Override        `json:"overrides"`
	Contacts      map[string]models.CareContact       `json:"contacts"`
}

// JSONStore is a single-file Provider. It doubles as the in-memory
// test double for the service layer: point it at a temp dir and go.
type JSONStore struct {
	path string
	data *fileData
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func emptyFileData() *fileData {
	return &fileData{
		Version:       1,
		PlanSnapshots: make(map[string]models.CarePlan),
		Medications:   make(map[string]models.Medication),
		Appointments:  make(map[string]models.Appointment),
		Doses:         make(map[string][]models.DoseEvent),
		Vitals:        make(map[string][]models.VitalsEntry),
		Meals:         make(map[string][]models.MealEntry),
		Moods:         make(map[string][]models.MoodEntry),
		Hydration:     make(map[string][]models.HydrationEntry),
		Sleep:         make(map[string][]models.SleepEntry),
		Overrides:     make(map[string][]models.Override),
		Contacts:      make(map[string]models.CareContact),
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.data = emptyFileData()
	return s.save()
}

func (s *JSONStore) Load() error {
	if s.data != nil {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'caretend init' first")
		}
		return err
	}

	data := emptyFileData()
	if err := json.Unmarshal(raw, data); err != nil {
		return fmt.Errorf("failed to parse storage file: %w", err)
	}
	s.data = data
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Care plan

func (s *JSONStore) GetCarePlan() (models.CarePlan, error) {
	return s.data.CarePlan, nil
}

func (s *JSONStore) SaveCarePlan(plan models.CarePlan) error {
	s.data.CarePlan = plan
	return s.save()
}

func (s *JSONStore) GetPlanSnapshot(date string) (models.CarePlan, bool, error) {
	snap, ok := s.data.PlanSnapshots[date]
	return snap, ok, nil
}

func (s *JSONStore) SavePlanSnapshot(date string, plan models.CarePlan) error {
	s.data.PlanSnapshots[date] = plan
	return s.save()
}

// Medications

func (s *JSONStore) AddMedication(med models.Medication) error {
	s.data.Medications[med.ID] = med
	return s.save()
}

func (s *JSONStore) GetMedication(id string) (models.Medication, error) {
	med, ok := s.data.Medications[id]
	if !ok || med.DeletedAt != nil {
		return models.Medication{}, fmt.Errorf("medication %s not found", id)
	}
	return med, nil
}

func (s *JSONStore) GetMedications(includeInactive bool) ([]models.Medication, error) {
	var meds []models.Medication
	for _, med := range s.data.Medications {
		if med.DeletedAt != nil {
			continue
		}
		if !includeInactive && !med.Active {
			continue
		}
		meds = append(meds, med)
	}
	sort.Slice(meds, func(i, j int) bool { return meds[i].Name < meds[j].Name })
	return meds, nil
}

func (s *JSONStore) UpdateMedication(med models.Medication) error {
	if _, ok := s.data.Medications[med.ID]; !ok {
		return fmt.Errorf("medication %s not found", med.ID)
	}
	s.data.Medications[med.ID] = med
	return s.save()
}

func (s *JSONStore) DeleteMedication(id string) error {
	med, ok := s.data.Medications[id]
	if !ok {
		return fmt.Errorf("medication %s not found", id)
	}
	now := nowRFC3339()
	med.DeletedAt = &now
	med.Active = false
	s.data.Medications[id] = med
	return s.save()
}

// Appointments

func (s *JSONStore) AddAppointment(appt models.Appointment) error {
	s.data.Appointments[appt.ID] = appt
	return s.save()
}

func (s *JSONStore) GetAppointment(id string) (models.Appointment, error) {
	appt, ok := s.data.Appointments[id]
	if !ok || appt.DeletedAt != nil {
		return models.Appointment{}, fmt.Errorf("appointment %s not found", id)
	}
	return appt, nil
}

func (s *JSONStore) GetAppointmentsForDate(date string) ([]models.Appointment, error) {
	var appts []models.Appointment
	for _, appt := range s.data.Appointments {
		if appt.DeletedAt == nil && appt.Date == date {
			appts = append(appts, appt)
		}
	}
	sortAppointments(appts)
	return appts, nil
}

func (s *JSONStore) GetUpcomingAppointments(fromDate string) ([]models.Appointment, error) {
	var appts []models.Appointment
	for _, appt := range s.data.Appointments {
		if appt.DeletedAt == nil && appt.Date >= fromDate {
			appts = append(appts, appt)
		}
	}
	sortAppointments(appts)
	return appts, nil
}

func (s *JSONStore) UpdateAppointment(appt models.Appointment) error {
	if _, ok := s.data.Appointments[appt.ID]; !ok {
		return fmt.Errorf("appointment %s not found", appt.ID)
	}
	s.data.Appointments[appt.ID] = appt
	return s.save()
}

func (s *JSONStore) DeleteAppointment(id string) error {
	appt, ok := s.data.Appointments[id]
	if !ok {
		return fmt.Errorf("appointment %s not found", id)
	}
	now := nowRFC3339()
	appt.DeletedAt = &now
	s.data.Appointments[id] = appt
	return s.save()
}

// Log records

func (s *JSONStore) AddDoseEvent(ev models.DoseEvent) error {
	s.data.Doses[ev.Date] = append(s.data.Doses[ev.Date], ev)
	return s.save()
}

func (s *JSONStore) GetDoseEvents(date string) ([]models.DoseEvent, error) {
	return s.data.Doses[date], nil
}

func (s *JSONStore) AddVitalsEntry(entry models.VitalsEntry) error {
	s.data.Vitals[entry.Date] = append(s.data.Vitals[entry.Date], entry)
	return s.save()
}

func (s *JSONStore) GetVitalsEntries(date string) ([]models.VitalsEntry, error) {
	return s.data.Vitals[date], nil
}

func (s *JSONStore) AddMealEntry(entry models.MealEntry) error {
	s.data.Meals[entry.Date] = append(s.data.Meals[entry.Date], entry)
	return s.save()
}

func (s *JSONStore) GetMealEntries(date string) ([]models.MealEntry, error) {
	return s.data.Meals[date], nil
}

func (s *JSONStore) AddMoodEntry(entry models.MoodEntry) error {
	s.data.Moods[entry.Date] = append(s.data.Moods[entry.Date], entry)
	return s.save()
}

func (s *JSONStore) GetMoodEntries(date string) ([]models.MoodEntry, error) {
	return s.data.Moods[date], nil
}

func (s *JSONStore) AddHydrationEntry(entry models.HydrationEntry) error {
	s.data.Hydration[entry.Date] = append(s.data.Hydration[entry.Date], entry)
	return s.save()
}

func (s *JSONStore) GetHydrationEntries(date string) ([]models.HydrationEntry, error) {
	return s.data.Hydration[date], nil
}

func (s *JSONStore) AddSleepEntry(entry models.SleepEntry) error {
	s.data.Sleep[entry.Date] = append(s.data.Sleep[entry.Date], entry)
	return s.save()
}

func (s *JSONStore) GetSleepEntries(date string) ([]models.SleepEntry, error) {
	return s.data.Sleep[date], nil
}

// Overrides

func (s *JSONStore) SaveOverride(ov models.Override) error {
	list := s.data.Overrides[ov.Date]
	replaced := false
	for i, existing := range list {
		if existing.RoutineID == ov.RoutineID && existing.ItemID == ov.ItemID {
			list[i] = ov
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, ov)
	}
	s.data.Overrides[ov.Date] = list
	return s.save()
}

func (s *JSONStore) GetOverrides(date string) ([]models.Override, error) {
	return s.data.Overrides[date], nil
}

func (s *JSONStore) ClearOverride(date, routineID, itemID string) error {
	list := s.data.Overrides[date]
	for i, ov := range list {
		if ov.RoutineID == routineID && ov.ItemID == itemID {
			s.data.Overrides[date] = append(list[:i], list[i+1:]...)
			return s.save()
		}
	}
	return nil
}

// Care circle

func (s *JSONStore) AddContact(contact models.CareContact) error {
	s.data.Contacts[contact.ID] = contact
	return s.save()
}

func (s *JSONStore) GetContacts() ([]models.CareContact, error) {
	var contacts []models.CareContact
	for _, c := range s.data.Contacts {
		contacts = append(contacts, c)
	}
	sort.Slice(contacts, func(i, j int) bool { return contacts[i].Name < contacts[j].Name })
	return contacts, nil
}

func (s *JSONStore) DeleteContact(id string) error {
	if _, ok := s.data.Contacts[id]; !ok {
		return fmt.Errorf("contact %s not found", id)
	}
	delete(s.data.Contacts, id)
	return s.save()
}

func sortAppointments(appts []models.Appointment) {
	sort.Slice(appts, func(i, j int) bool {
		if appts[i].Date != appts[j].Date {
			return appts[i].Date < appts[j].Date
		}
		return appts[i].Time < appts[j].Time
	})
}
