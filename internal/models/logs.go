package models

// Medication is an active prescription or supplement tracked for the
// care recipient. TimeSlot groups medications into rough day parts so
// plan items can filter on them.
type Medication struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Dosage    string  `json:"dosage,omitempty"`
	TimeSlot  string  `json:"time_slot,omitempty"`
	Active    bool    `json:"active"`
	DeletedAt *string `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// Appointment is a scheduled visit (doctor, therapy, etc.).
type Appointment struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`           // YYYY-MM-DD
	Time      string  `json:"time,omitempty"` // HH:MM
	Title     string  `json:"title"`
	Location  string  `json:"location,omitempty"`
	Provider  string  `json:"provider,omitempty"`
	Notes     string  `json:"notes,omitempty"`
	Completed bool    `json:"completed"`
	DeletedAt *string `json:"deleted_at,omitempty"`
}

// Log records are append-only facts. The deriver aggregates them per
// date and never mutates them.

type DoseEvent struct {
	ID           string `json:"id"`
	Date         string `json:"date"`
	MedicationID string `json:"medication_id"`
	Taken        bool   `json:"taken"`
	Time         string `json:"time,omitempty"` // HH:MM
}

// VitalsEntry holds one set of readings. Nil means the vital was not
// measured; the deriver must never treat a nil field as a zero reading.
type VitalsEntry struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	Time      string   `json:"time,omitempty"`
	Systolic  *int     `json:"systolic,omitempty"`
	Diastolic *int     `json:"diastolic,omitempty"`
	HeartRate *int     `json:"heart_rate,omitempty"`
	Glucose   *float64 `json:"glucose,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
}

type MealEntry struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Time        string `json:"time,omitempty"`
	MealType    string `json:"meal_type"` // breakfast, lunch, dinner, snack
	Description string `json:"description,omitempty"`
}

type MoodEntry struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Time   string `json:"time,omitempty"`
	Rating int    `json:"rating"` // 1 (low) to 5 (great)
	Note   string `json:"note,omitempty"`
}

type HydrationEntry struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Glasses int    `json:"glasses"`
}

type SleepEntry struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"`
	Hours   float64 `json:"hours"`
	Quality string  `json:"quality,omitempty"` // poor, fair, good
}
