package storage

import "github.com/caretend/caretend/internal/models"

// Provider is the persistence boundary. All implementations key log
// records by date (YYYY-MM-DD) and treat them as append-only facts.
//
// The care plan has two read paths: GetCarePlan returns the live plan
// (settings/editing surface) and GetPlanSnapshot returns the frozen
// copy for a date. Derivation must only ever see snapshots so mid-day
// plan edits take effect the next day.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Care plan. GetCarePlan returns an empty plan (IsEmpty) when none
	// has been configured yet, not an error.
	GetCarePlan() (models.CarePlan, error)
	SaveCarePlan(models.CarePlan) error
	GetPlanSnapshot(date string) (models.CarePlan, bool, error)
	SavePlanSnapshot(date string, plan models.CarePlan) error

	// Medications (soft delete)
	AddMedication(models.Medication) error
	GetMedication(id string) (models.Medication, error)
	GetMedications(includeInactive bool) ([]models.Medication, error)
	UpdateMedication(models.Medication) error
	DeleteMedication(id string) error

	// Appointments (soft delete)
	AddAppointment(models.Appointment) error
	GetAppointment(id string) (models.Appointment, error)
	GetAppointmentsForDate(date string) ([]models.Appointment, error)
	GetUpcomingAppointments(fromDate string) ([]models.Appointment, error)
	UpdateAppointment(models.Appointment) error
	DeleteAppointment(id string) error

	// Log records
	AddDoseEvent(models.DoseEvent) error
	GetDoseEvents(date string) ([]models.DoseEvent, error)
	AddVitalsEntry(models.VitalsEntry) error
	GetVitalsEntries(date string) ([]models.VitalsEntry, error)
	AddMealEntry(models.MealEntry) error
	GetMealEntries(date string) ([]models.MealEntry, error)
	AddMoodEntry(models.MoodEntry) error
	GetMoodEntries(date string) ([]models.MoodEntry, error)
	AddHydrationEntry(models.HydrationEntry) error
	GetHydrationEntries(date string) ([]models.HydrationEntry, error)
	AddSleepEntry(models.SleepEntry) error
	GetSleepEntries(date string) ([]models.SleepEntry, error)

	// Overrides, unique on (date, routine, item); SaveOverride upserts.
	SaveOverride(models.Override) error
	GetOverrides(date string) ([]models.Override, error)
	ClearOverride(date, routineID, itemID string) error

	// Care circle
	AddContact(models.CareContact) error
	GetContacts() ([]models.CareContact, error)
	DeleteContact(id string) error
}
