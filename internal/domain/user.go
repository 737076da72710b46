// Package domain contains the core business entities for Backoffice.
// These are pure Go structs with no external dependencies, representing
// the dashboard's view of the storefront's users, products and orders.
package domain

import "fmt"

// UserNumberWidth is the zero-padded width of the display user number.
const UserNumberWidth = 7

// Default labels applied to users the upstream API knows nothing about.
const (
	DefaultRole       = "GENERAL MANAGER"
	DefaultDepartment = "Management"
)

// Address is the subset of the upstream address the dashboard tracks.
// House number and postal code are deliberately not modeled.
type Address struct {
	City   string `json:"city"`
	Street string `json:"street"`
}

// User represents a dashboard user.
// The upstream API is the source of truth for identity fields; role,
// department and the boolean flags exist only locally (see UserOverlay).
type User struct {
	// ID is assigned by the upstream API on creation and immutable
	// thereafter. Only the fallback path synthesizes IDs.
	ID int64 `json:"id"`

	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`

	// Address is optional; users created through the fallback path may
	// not have one.
	Address *Address `json:"address,omitempty"`

	// Role and Department have no upstream representation.
	Role       string `json:"role"`
	Department string `json:"department"`

	Admin          bool `json:"admin"`
	Representative bool `json:"representative"`

	// UserNumber is the display code derived from ID, zero-padded to
	// UserNumberWidth digits.
	UserNumber string `json:"user_number"`
}

// FormatUserNumber renders an ID as the zero-padded display code.
func FormatUserNumber(id int64) string {
	return fmt.Sprintf("%0*d", UserNumberWidth, id)
}

// UserOverlay holds the locally-only user fields. The upstream API cannot
// store them, so they are persisted in the fallback store on every create
// and update and merged back onto users on every read.
type UserOverlay struct {
	UserID         int64  `json:"user_id"`
	Role           string `json:"role"`
	Department     string `json:"department"`
	Admin          bool   `json:"admin"`
	Representative bool   `json:"representative"`
}

// ApplyOverlay copies the locally-only fields onto the user.
func (u *User) ApplyOverlay(o UserOverlay) {
	u.Role = o.Role
	u.Department = o.Department
	u.Admin = o.Admin
	u.Representative = o.Representative
}

// Overlay extracts the locally-only fields of the user.
func (u *User) Overlay() UserOverlay {
	return UserOverlay{
		UserID:         u.ID,
		Role:           u.Role,
		Department:     u.Department,
		Admin:          u.Admin,
		Representative: u.Representative,
	}
}
