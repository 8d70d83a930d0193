package validation

import (
	"fmt"
	"strings"

	"github.com/caretend/caretend/internal/models"
	"github.com/caretend/caretend/internal/utils"
)

type ConflictKind string

const (
	ConflictMalformedTime      ConflictKind = "malformed_time"
	ConflictNegativeTarget     ConflictKind = "negative_target"
	ConflictDuplicateRoutine   ConflictKind = "duplicate_routine"
	ConflictMissingMedication  ConflictKind = "missing_medication"
	ConflictMissingAppointment ConflictKind = "missing_appointment"
)

// Conflict is one advisory finding about the configured plan. Findings
// never block logging or derivation; they surface in 'caretend doctor'
// so the caregiver can clean up.
type Conflict struct {
	Kind    ConflictKind
	Routine string
	Item    string
	Detail  string
}

func (c Conflict) String() string {
	where := c.Routine
	if c.Item != "" {
		where += " / " + c.Item
	}
	if where == "" {
		return fmt.Sprintf("[%s] %s", c.Kind, c.Detail)
	}
	return fmt.Sprintf("[%s] %s: %s", c.Kind, where, c.Detail)
}

// CheckPlan inspects the live plan against the configured medications
// and appointments and returns every conflict found.
func CheckPlan(plan models.CarePlan, meds []models.Medication, appts []models.Appointment) []Conflict {
	var conflicts []Conflict

	medIDs := make(map[string]bool, len(meds))
	for _, med := range meds {
		medIDs[med.ID] = true
	}
	apptIDs := make(map[string]bool, len(appts))
	for _, appt := range appts {
		apptIDs[appt.ID] = true
	}

	seenNames := make(map[string]bool, len(plan.Routines))
	for _, routine := range plan.Routines {
		name := strings.ToLower(strings.TrimSpace(routine.Name))
		if seenNames[name] {
			conflicts = append(conflicts, Conflict{
				Kind:    ConflictDuplicateRoutine,
				Routine: routine.Name,
				Detail:  "another routine already uses this name",
			})
		}
		seenNames[name] = true

		conflicts = append(conflicts, checkWindow(routine)...)

		for _, item := range routine.Items {
			if item.Target < 0 {
				conflicts = append(conflicts, Conflict{
					Kind:    ConflictNegativeTarget,
					Routine: routine.Name,
					Item:    item.Label,
					Detail:  fmt.Sprintf("target is %d, must be zero or more", item.Target),
				})
			}

			for _, id := range item.Metadata.MedicationIDs {
				if !medIDs[id] {
					conflicts = append(conflicts, Conflict{
						Kind:    ConflictMissingMedication,
						Routine: routine.Name,
						Item:    item.Label,
						Detail:  fmt.Sprintf("references medication %s which does not exist", id),
					})
				}
			}

			if id := item.Metadata.AppointmentID; id != "" && !apptIDs[id] {
				conflicts = append(conflicts, Conflict{
					Kind:    ConflictMissingAppointment,
					Routine: routine.Name,
					Item:    item.Label,
					Detail:  fmt.Sprintf("references appointment %s which does not exist", id),
				})
			}
		}
	}

	return conflicts
}

func checkWindow(routine models.Routine) []Conflict {
	var conflicts []Conflict
	for _, bound := range []struct {
		label string
		value string
	}{
		{"start", routine.Window.Start},
		{"end", routine.Window.End},
	} {
		if bound.value == "" {
			continue
		}
		if _, err := utils.ParseTimeToMinutes(bound.value); err != nil {
			conflicts = append(conflicts, Conflict{
				Kind:    ConflictMalformedTime,
				Routine: routine.Name,
				Detail:  fmt.Sprintf("window %s %q is not HH:MM", bound.label, bound.value),
			})
		}
	}
	return conflicts
}

// FormatReport renders conflicts for the terminal. An empty slice reads
// as a clean bill of health.
func FormatReport(conflicts []Conflict) string {
	if len(conflicts) == 0 {
		return "No problems found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d problem(s) found:\n", len(conflicts))
	for _, c := range conflicts {
		b.WriteString("  - " + c.String() + "\n")
	}
	return b.String()
}
