package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/caretend/caretend/internal/bus"
	"github.com/caretend/caretend/internal/models"
)

type MedCmd struct {
	Add    MedAddCmd    `cmd:"" help:"Add a medication."`
	List   MedListCmd   `cmd:"" help:"List medications."`
	Remove MedRemoveCmd `cmd:"" help:"Remove a medication (soft delete)."`
}

type MedAddCmd struct {
	Name   string `arg:"" help:"Medication name."`
	Dosage string `help:"Dosage description, e.g. '10mg'." default:""`
	Slot   string `help:"Time slot (morning, afternoon, evening, night)." default:""`
}

func (c *MedAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	meds, err := ctx.Store.GetMedications(true)
	if err != nil {
		return err
	}
	for _, med := range meds {
		if strings.EqualFold(med.Name, c.Name) {
			return fmt.Errorf("medication %q already exists", c.Name)
		}
	}

	med := models.Medication{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Dosage:   c.Dosage,
		TimeSlot: strings.ToLower(c.Slot),
		Active:   true,
	}
	if err := ctx.Store.AddMedication(med); err != nil {
		return err
	}
	ctx.Bus.Publish(bus.TopicMedications)

	fmt.Printf("Added medication: %s\n", c.Name)
	return nil
}

type MedListCmd struct {
	All bool `help:"Include inactive medications."`
}

func (c *MedListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	meds, err := ctx.Store.GetMedications(c.All)
	if err != nil {
		return err
	}
	if len(meds) == 0 {
		fmt.Println("No medications configured.")
		return nil
	}

	for _, med := range meds {
		details := med.Dosage
		if med.TimeSlot != "" {
			if details != "" {
				details += ", "
			}
			details += med.TimeSlot
		}
		if details != "" {
			details = " (" + details + ")"
		}
		status := ""
		if !med.Active {
			status = " [INACTIVE]"
		}
		fmt.Printf("%s%s%s\n  id: %s\n", med.Name, details, status, med.ID)
	}
	return nil
}

type MedRemoveCmd struct {
	Medication string `arg:"" help:"Medication name or id."`
}

func (c *MedRemoveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	med, err := findMedication(ctx, c.Medication)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteMedication(med.ID); err != nil {
		return err
	}
	ctx.Bus.Publish(bus.TopicMedications)

	fmt.Printf("Removed medication: %s\n", med.Name)
	fmt.Println("Past dose logs are kept; plan items referencing it will show in 'caretend doctor'.")
	return nil
}
