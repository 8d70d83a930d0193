package cli

import (
	"fmt"

	"github.com/caretend/caretend/internal/validation"
)

type InitCmd struct{}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	fmt.Printf("Initialized caretend storage at %s\n", ctx.Store.GetConfigPath())
	fmt.Println("Next: set up a care plan with 'caretend plan init'")
	return nil
}

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	plan, err := ctx.Plans.Live()
	if err != nil {
		return err
	}
	meds, err := ctx.Store.GetMedications(true)
	if err != nil {
		return err
	}
	appts, err := ctx.Store.GetUpcomingAppointments("0000-01-01")
	if err != nil {
		return err
	}

	fmt.Printf("Storage: %s\n", ctx.Store.GetConfigPath())
	if plan.IsEmpty() {
		fmt.Println("Care plan: not configured")
	} else {
		fmt.Printf("Care plan: %d routine(s) for %s\n", len(plan.Routines), patientOrDefault(plan.PatientName))
	}
	fmt.Printf("Medications: %d\n", len(meds))
	fmt.Printf("Appointments: %d\n", len(appts))
	fmt.Println()

	conflicts := validation.CheckPlan(plan, meds, appts)
	fmt.Print(validation.FormatReport(conflicts))
	return nil
}

func patientOrDefault(name string) string {
	if name == "" {
		return "your patient"
	}
	return name
}
