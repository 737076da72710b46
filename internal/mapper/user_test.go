package mapper

import (
	"testing"

	"github.com/mertkaya-dev/backoffice/internal/domain"
	"github.com/mertkaya-dev/backoffice/internal/storefront"
)

func TestUserFromAPI(t *testing.T) {
	apiUser := storefront.User{
		ID:       42,
		Username: "johnd",
		Email:    "john@gmail.com",
		Phone:    "1-570-236-7033",
		Name:     storefront.Name{FirstName: "john", LastName: "doe"},
		Address: &storefront.Address{
			City:    "kilcoole",
			Street:  "new road",
			Number:  7682,
			Zipcode: "12926-3874",
		},
	}

	user := UserFromAPI(apiUser)

	if user.ID != 42 {
		t.Errorf("expected id 42, got %d", user.ID)
	}
	if user.FirstName != "john" || user.LastName != "doe" {
		t.Errorf("unexpected name split: %q %q", user.FirstName, user.LastName)
	}
	if user.UserNumber != "0000042" {
		t.Errorf("expected user number 0000042, got %q", user.UserNumber)
	}
	if user.Role != domain.DefaultRole {
		t.Errorf("expected default role, got %q", user.Role)
	}
	if user.Department != domain.DefaultDepartment {
		t.Errorf("expected default department, got %q", user.Department)
	}
	if user.Admin || user.Representative {
		t.Error("expected boolean flags to default to false")
	}
	if user.Address == nil {
		t.Fatal("expected address to be mapped")
	}
	if user.Address.City != "kilcoole" || user.Address.Street != "new road" {
		t.Errorf("unexpected address: %+v", user.Address)
	}
}

func TestUserFromAPI_NoAddress(t *testing.T) {
	user := UserFromAPI(storefront.User{ID: 1, Username: "x"})
	if user.Address != nil {
		t.Errorf("expected nil address, got %+v", user.Address)
	}
}

func TestUserToAPI_FillsUnsetAddressFields(t *testing.T) {
	out := UserToAPI(domain.User{
		Username: "johnd",
		Address:  &domain.Address{City: "kilcoole", Street: "new road"},
	})

	if out.Address == nil {
		t.Fatal("expected address on wire shape")
	}
	if out.Address.Number != 0 || out.Address.Zipcode != "" {
		t.Errorf("expected zero number and empty zipcode, got %d %q", out.Address.Number, out.Address.Zipcode)
	}
}

// Round-trip preserves the identity fields; role, department and flags are
// intentionally lost in the outbound direction and restored via the overlay.
func TestUserRoundTrip(t *testing.T) {
	original := domain.User{
		ID:             7,
		Username:       "derek",
		Email:          "derek@gmail.com",
		FirstName:      "derek",
		LastName:       "powell",
		Phone:          "1-956-001-1945",
		Address:        &domain.Address{City: "san Antonio", Street: "adams St"},
		Role:           "SUPERVISOR",
		Department:     "Sales",
		Admin:          true,
		Representative: true,
	}

	wire := UserToAPI(original)
	wire.ID = original.ID
	back := UserFromAPI(wire)

	if back.Username != original.Username ||
		back.Email != original.Email ||
		back.Phone != original.Phone ||
		back.FirstName != original.FirstName ||
		back.LastName != original.LastName {
		t.Errorf("identity fields not preserved: %+v", back)
	}
	if back.Address == nil || *back.Address != *original.Address {
		t.Errorf("address not preserved: %+v", back.Address)
	}
	if back.Role == original.Role || back.Admin {
		t.Error("lossy fields unexpectedly preserved through the wire shape")
	}
}
