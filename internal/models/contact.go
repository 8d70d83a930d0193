package models

type ContactRole string

const (
	RolePrimary ContactRole = "primary"
	RoleHelper  ContactRole = "helper"
	RoleViewer  ContactRole = "viewer"
)

// CareContact is a member of the care circle: family or friends who
// share caregiving duties for the recipient.
type CareContact struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Relationship string      `json:"relationship,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Email        string      `json:"email,omitempty"`
	Role         ContactRole `json:"role"`
}
