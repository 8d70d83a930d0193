package models

// DayState is derived, never persisted. The care plan, overrides, and
// log records are the source of truth; DayState is a recomputable view.

type ItemStatus string

const (
	ItemStatusPending ItemStatus = "pending"
	ItemStatusPartial ItemStatus = "partial"
	ItemStatusDone    ItemStatus = "done"
)

type RoutineStatus string

const (
	RoutineUpcoming  RoutineStatus = "upcoming"
	RoutineAvailable RoutineStatus = "available"
	RoutineCompleted RoutineStatus = "completed"
)

// CategoryProgress is one completed/expected pair for a progress ring.
type CategoryProgress struct {
	Completed int `json:"completed"`
	Expected  int `json:"expected"`
}

// Progress rolls item completion into the six trackable categories.
// Appointment and custom items do not contribute to any bucket.
type Progress struct {
	Meds      CategoryProgress `json:"meds"`
	Vitals    CategoryProgress `json:"vitals"`
	Meals     CategoryProgress `json:"meals"`
	Mood      CategoryProgress `json:"mood"`
	Hydration CategoryProgress `json:"hydration"`
	Sleep     CategoryProgress `json:"sleep"`
}

// ItemState is one item's derived completion for the day.
type ItemState struct {
	Item            CarePlanItem `json:"item"`
	Completed       int          `json:"completed"`
	Expected        int          `json:"expected"`
	Status          ItemStatus   `json:"status"`
	Overridden      bool         `json:"overridden"`
	SnoozedUntilMin *int         `json:"snoozed_until_min,omitempty"`
}

// RoutineState is one routine's derived status plus its item breakdown.
type RoutineState struct {
	Routine        Routine       `json:"routine"`
	Status         RoutineStatus `json:"status"`
	Items          []ItemState   `json:"items"`
	CompletedItems int           `json:"completed_items"`
	TotalItems     int           `json:"total_items"`
}

type TimelineKind string

const (
	TimelineRoutine     TimelineKind = "routine"
	TimelineAppointment TimelineKind = "appointment"
)

// TimelineEntry is one row of the merged day timeline. Minutes is the
// minute-of-day used for ordering; entries with unparseable times sort
// last and render "Time not set".
type TimelineEntry struct {
	Kind     TimelineKind  `json:"kind"`
	RefID    string        `json:"ref_id"`
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle,omitempty"`
	Time     string        `json:"time"`
	Minutes  int           `json:"minutes"`
	Status   RoutineStatus `json:"status"`
}

// NextAction is the single highest-priority thing to do next. The
// one-item contract is deliberate: the "what's next" prompt must be
// unambiguous.
type NextAction struct {
	RoutineID   string `json:"routine_id"`
	RoutineName string `json:"routine_name"`
	ItemID      string `json:"item_id"`
	Label       string `json:"label"`
	Emoji       string `json:"emoji,omitempty"`
	Remaining   int    `json:"remaining"`
}

type WarningKind string

const (
	WarnMissingMedication  WarningKind = "missing_medication"
	WarnMissingAppointment WarningKind = "missing_appointment"
)

// IntegrityWarning flags a plan item referencing a record that no
// longer exists. Advisory only, never fatal.
type IntegrityWarning struct {
	Kind      WarningKind `json:"kind"`
	RoutineID string      `json:"routine_id"`
	ItemID    string      `json:"item_id"`
	MissingID string      `json:"missing_id"`
}

// DayState is the deriver's full output for one date.
type DayState struct {
	Date        string             `json:"date"`
	Progress    Progress           `json:"progress"`
	Routines    []RoutineState     `json:"routines"`
	Timeline    []TimelineEntry    `json:"timeline"`
	NextAction  *NextAction        `json:"next_action,omitempty"`
	AllComplete bool               `json:"all_complete"`
	Warnings    []IntegrityWarning `json:"warnings,omitempty"`
}
