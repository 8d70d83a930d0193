package models

type ItemType string

const (
	ItemMeds        ItemType = "meds"
	ItemVitals      ItemType = "vitals"
	ItemMeals       ItemType = "meals"
	ItemMood        ItemType = "mood"
	ItemHydration   ItemType = "hydration"
	ItemSleep       ItemType = "sleep"
	ItemAppointment ItemType = "appointment"
	ItemCustom      ItemType = "custom"
)

// TimeWindow bounds a routine within the day. Times are HH:MM strings.
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ItemMetadata carries type-specific filters for a care plan item.
// Only the fields relevant to the item's type are populated.
type ItemMetadata struct {
	MedicationIDs []string `json:"medication_ids,omitempty"`
	TimeSlot      string   `json:"time_slot,omitempty"`
	VitalTypes    []string `json:"vital_types,omitempty"`
	MealTypes     []string `json:"meal_types,omitempty"`
	AppointmentID string   `json:"appointment_id,omitempty"`
}

// CarePlanItem is one schedulable unit of caregiving work within a routine.
type CarePlanItem struct {
	ID       string       `json:"id"`
	Type     ItemType     `json:"type"`
	Label    string       `json:"label"`
	Emoji    string       `json:"emoji,omitempty"`
	Target   int          `json:"target"`
	Metadata ItemMetadata `json:"metadata,omitempty"`
}

// Routine is a named, time-windowed group of care tasks (e.g. "Morning").
type Routine struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Emoji  string         `json:"emoji,omitempty"`
	Window TimeWindow     `json:"window"`
	Items  []CarePlanItem `json:"items"`
}

// CarePlan is the caregiver's configured set of routines for one patient.
type CarePlan struct {
	ID          string    `json:"id"`
	PatientName string    `json:"patient_name,omitempty"`
	Routines    []Routine `json:"routines"`
	UpdatedAt   string    `json:"updated_at,omitempty"` // RFC3339 timestamp
}

// IsEmpty reports whether the plan has no routines configured.
func (p CarePlan) IsEmpty() bool {
	return len(p.Routines) == 0
}

// Override is a caregiver's manual correction for one item on one date.
// At most one override exists per (date, routine, item) tuple; the
// storage layer upserts on that key.
type Override struct {
	Date           string `json:"date"`
	RoutineID      string `json:"routine_id"`
	ItemID         string `json:"item_id"`
	Done           bool   `json:"done"`
	Timestamp      string `json:"timestamp"` // RFC3339 timestamp
	SnoozeUntilMin *int   `json:"snooze_until_min,omitempty"`
}
