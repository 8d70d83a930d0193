package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/caretend/caretend/internal/bus"
	"github.com/caretend/caretend/internal/keyring"
	"github.com/caretend/caretend/internal/models"
	"github.com/caretend/caretend/internal/storage"
)

type CircleCmd struct {
	Add        CircleAddCmd        `cmd:"" help:"Add a care circle contact."`
	List       CircleListCmd       `cmd:"" help:"List care circle contacts."`
	Remove     CircleRemoveCmd     `cmd:"" help:"Remove a contact."`
	Connect    CircleConnectCmd    `cmd:"" help:"Store the shared database connection in the OS keyring."`
	Disconnect CircleDisconnectCmd `cmd:"" help:"Forget the shared database connection."`
}

type CircleAddCmd struct {
	Name         string `arg:"" help:"Contact name."`
	Relationship string `help:"Relationship to the patient, e.g. 'daughter'." default:""`
	Phone        string `help:"Phone number." default:""`
	Email        string `help:"Email address." default:""`
	Role         string `help:"Access role (primary, helper, viewer)." default:"helper"`
}

func (c *CircleAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	role := models.ContactRole(strings.ToLower(c.Role))
	switch role {
	case models.RolePrimary, models.RoleHelper, models.RoleViewer:
	default:
		return fmt.Errorf("unknown role %q (expected primary, helper, or viewer)", c.Role)
	}

	contact := models.CareContact{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Relationship: c.Relationship,
		Phone:        c.Phone,
		Email:        c.Email,
		Role:         role,
	}
	if err := ctx.Store.AddContact(contact); err != nil {
		return err
	}
	ctx.Bus.Publish(bus.TopicContacts)

	fmt.Printf("Added %s to the care circle as %s\n", c.Name, role)
	return nil
}

type CircleListCmd struct{}

func (c *CircleListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	contacts, err := ctx.Store.GetContacts()
	if err != nil {
		return err
	}
	if len(contacts) == 0 {
		fmt.Println("No care circle contacts yet.")
		return nil
	}

	for _, contact := range contacts {
		details := contact.Relationship
		for _, extra := range []string{contact.Phone, contact.Email} {
			if extra == "" {
				continue
			}
			if details != "" {
				details += ", "
			}
			details += extra
		}
		if details != "" {
			details = " (" + details + ")"
		}
		fmt.Printf("%s [%s]%s\n  id: %s\n", contact.Name, contact.Role, details, contact.ID)
	}

	if keyring.HasConnectionString() {
		fmt.Println("\nShared database: connected")
	}
	return nil
}

type CircleRemoveCmd struct {
	ID string `arg:"" help:"Contact id."`
}

func (c *CircleRemoveCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	if err := ctx.Store.DeleteContact(c.ID); err != nil {
		return err
	}
	ctx.Bus.Publish(bus.TopicContacts)

	fmt.Println("Removed contact.")
	return nil
}

type CircleConnectCmd struct {
	ConnString string `arg:"" help:"PostgreSQL connection string for the shared database."`
}

func (c *CircleConnectCmd) Run(ctx *Context) error {
	if !strings.HasPrefix(c.ConnString, "postgres://") && !strings.HasPrefix(c.ConnString, "postgresql://") {
		return fmt.Errorf("expected a postgres:// connection string")
	}
	if storage.HasEmbeddedCredentials(c.ConnString) {
		// Storing it in the keyring is the point, so inline passwords are
		// allowed here, unlike on the --config flag.
		fmt.Println("Note: the password will be kept in the OS keyring, not on disk.")
	}

	if err := keyring.SetConnectionString(c.ConnString); err != nil {
		return err
	}

	fmt.Println("Care circle connection stored in the OS keyring.")
	fmt.Println("Run commands against it with 'caretend --shared ...'")
	return nil
}

type CircleDisconnectCmd struct{}

func (c *CircleDisconnectCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		return err
	}
	fmt.Println("Care circle connection removed from the OS keyring.")
	return nil
}
