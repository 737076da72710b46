package service

import (
	"context"

	"github.com/mertkaya-dev/backoffice/internal/storefront"
)

// Upstream client interfaces, satisfied by *storefront.Client. Defined here
// so the facades can be tested against stub upstreams.

// UserAPI is the upstream surface for the users collection.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]storefront.User, error)
	GetUser(ctx context.Context, id int64) (*storefront.User, error)
	CreateUser(ctx context.Context, user storefront.User) (*storefront.User, error)
	UpdateUser(ctx context.Context, id int64, user storefront.User) (*storefront.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// ProductAPI is the upstream surface for the catalog.
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]storefront.Product, error)
	GetProduct(ctx context.Context, id int64) (*storefront.Product, error)
}

// CartAPI is the upstream surface for the carts (orders) collection.
type CartAPI interface {
	ListCarts(ctx context.Context) ([]storefront.Cart, error)
	ListCartsByUser(ctx context.Context, userID int64) ([]storefront.Cart, error)
	GetCart(ctx context.Context, id int64) (*storefront.Cart, error)
	CreateCart(ctx context.Context, cart storefront.Cart) (*storefront.Cart, error)
	UpdateCart(ctx context.Context, id int64, cart storefront.Cart) (*storefront.Cart, error)
	DeleteCart(ctx context.Context, id int64) error
}
