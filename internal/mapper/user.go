// Package mapper translates between the upstream storefront's wire shapes
// and the dashboard's domain entities. Mapping is pure and stateless; the
// only I/O is the injected product lookup used when building orders.
package mapper

import (
	"github.com/mertkaya-dev/backoffice/internal/domain"
	"github.com/mertkaya-dev/backoffice/internal/storefront"
)

// UserFromAPI converts an upstream user record into a dashboard user.
// Extended address fields (house number, postal code) are dropped because
// the dashboard does not track them. Role, department and the boolean flags
// have no upstream representation and receive defaults; the service layer
// merges the persisted overlay on top.
func UserFromAPI(u storefront.User) domain.User {
	user := domain.User{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.Name.FirstName,
		LastName:   u.Name.LastName,
		Phone:      u.Phone,
		Role:       domain.DefaultRole,
		Department: domain.DefaultDepartment,
		UserNumber: domain.FormatUserNumber(u.ID),
	}
	if u.Address != nil {
		user.Address = &domain.Address{
			City:   u.Address.City,
			Street: u.Address.Street,
		}
	}
	return user
}

// UserToAPI converts a dashboard user into the upstream wire shape.
// Fields the upstream cannot represent (role, department, flags, user
// number) are dropped; the address number and zipcode are filled with
// zero values. This direction is lossy by design - the overlay collection
// keeps the locally-only fields.
func UserToAPI(u domain.User) storefront.User {
	out := storefront.User{
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Name: storefront.Name{
			FirstName: u.FirstName,
			LastName:  u.LastName,
		},
	}
	if u.Address != nil {
		out.Address = &storefront.Address{
			City:    u.Address.City,
			Street:  u.Address.Street,
			Number:  0,
			Zipcode: "",
		}
	}
	return out
}
