package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/caretend/caretend/internal/bus"
	"github.com/caretend/caretend/internal/models"
	"github.com/caretend/caretend/internal/utils"
)

type ApptCmd struct {
	Add      ApptAddCmd      `cmd:"" help:"Add an appointment."`
	List     ApptListCmd     `cmd:"" help:"List upcoming appointments."`
	Complete ApptCompleteCmd `cmd:"" help:"Mark an appointment as completed."`
	Remove   ApptRemoveCmd   `cmd:"" help:"Remove an appointment (soft delete)."`
}

type ApptAddCmd struct {
	Title    string `arg:"" help:"Appointment title."`
	Date     string `arg:"" help:"Date in YYYY-MM-DD format."`
	Time     string `help:"Time in HH:MM format. Leave empty if not scheduled yet." default:""`
	Location string `help:"Where the appointment is." default:""`
	Provider string `help:"Doctor or provider name." default:""`
	Notes    string `help:"Free-form notes." default:""`
}

func (c *ApptAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if !utils.ValidateDateFormat(c.Date) {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Date)
	}
	if c.Time != "" && !utils.ValidateTimeFormat(c.Time) {
		return fmt.Errorf("invalid time format: %s (expected HH:MM)", c.Time)
	}

	appt := models.Appointment{
		ID:       uuid.NewString(),
		Date:     c.Date,
		Time:     c.Time,
		Title:    c.Title,
		Location: c.Location,
		Provider: c.Provider,
		Notes:    c.Notes,
	}
	if err := ctx.Store.AddAppointment(appt); err != nil {
		return err
	}
	ctx.Bus.Publish(bus.TopicAppointments)

	when := c.Date
	if c.Time != "" {
		when += " " + c.Time
	}
	fmt.Printf("Added appointment %q on %s\n", c.Title, when)
	return nil
}

type ApptListCmd struct {
	Date string `help:"Only show appointments on this date." default:""`
}

func (c *ApptListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var appts []models.Appointment
	var err error
	if c.Date != "" {
		if !utils.ValidateDateFormat(c.Date) {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Date)
		}
		appts, err = ctx.Store.GetAppointmentsForDate(c.Date)
	} else {
		appts, err = ctx.Store.GetUpcomingAppointments(utils.Today())
	}
	if err != nil {
		return err
	}

	if len(appts) == 0 {
		fmt.Println("No appointments found.")
		return nil
	}

	for _, appt := range appts {
		timeStr := appt.Time
		if timeStr == "" {
			timeStr = "time not set"
		}
		status := ""
		if appt.Completed {
			status = " [DONE]"
		}
		fmt.Printf("%s %s  %s%s\n", appt.Date, timeStr, appt.Title, status)
		if appt.Location != "" || appt.Provider != "" {
			fmt.Printf("  %s", appt.Location)
			if appt.Provider != "" {
				fmt.Printf(" (%s)", appt.Provider)
			}
			fmt.Println()
		}
		fmt.Printf("  id: %s\n", appt.ID)
	}
	return nil
}

type ApptCompleteCmd struct {
	ID string `arg:"" help:"Appointment id."`
}

func (c *ApptCompleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	appt, err := ctx.Store.GetAppointment(c.ID)
	if err != nil {
		return err
	}
	appt.Completed = true
	if err := ctx.Store.UpdateAppointment(appt); err != nil {
		return err
	}
	ctx.Bus.Publish(bus.TopicAppointments)

	fmt.Printf("Marked appointment %q as completed\n", appt.Title)
	return nil
}

type ApptRemoveCmd struct {
	ID string `arg:"" help:"Appointment id."`
}

func (c *ApptRemoveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Store.DeleteAppointment(c.ID); err != nil {
		return err
	}
	ctx.Bus.Publish(bus.TopicAppointments)

	fmt.Println("Removed appointment.")
	return nil
}
