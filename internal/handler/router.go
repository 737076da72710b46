// Package handler provides the HTTP API for the Backoffice dashboard.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/mertkaya-dev/backoffice/internal/domain"
	"github.com/mertkaya-dev/backoffice/internal/service"
)

// Service interfaces consumed by the handlers, satisfied by the service
// package's facades.

// UserService manages dashboard users.
type UserService interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	Update(ctx context.Context, id int64, patch service.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ProductService reads the storefront catalog.
type ProductService interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// OrderService manages orders and their lines.
type OrderService interface {
	GetAll(ctx context.Context) ([]domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByDateRange(ctx context.Context, from, to time.Time, userID *int64) ([]domain.Order, error)
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	Update(ctx context.Context, id int64, order domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id int64) (bool, error)
	AddProduct(ctx context.Context, orderID int64, input service.AddProductInput) (*domain.OrderLine, error)
	UpdateProduct(ctx context.Context, orderID, lineID int64, patch service.LinePatch) (*domain.OrderLine, error)
	DeleteProduct(ctx context.Context, orderID, lineID int64) (bool, error)
}

// SessionService issues and validates session tokens.
type SessionService interface {
	Login(ctx context.Context, username, password string) (*service.Session, error)
	Validate(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
}

// CookieConfig describes the session cookie the API sets on login.
type CookieConfig struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// Router builds the API's HTTP handler.
type Router struct {
	users    UserService
	products ProductService
	orders   OrderService
	sessions SessionService
	cookie   CookieConfig
	logger   zerolog.Logger
}

// RouterConfig contains the router's dependencies.
type RouterConfig struct {
	UserService    UserService
	ProductService ProductService
	OrderService   OrderService
	SessionService SessionService
	Cookie         CookieConfig
	Logger         zerolog.Logger
}

// NewRouter creates a Router.
func NewRouter(config RouterConfig) *Router {
	return &Router{
		users:    config.UserService,
		products: config.ProductService,
		orders:   config.OrderService,
		sessions: config.SessionService,
		cookie:   config.Cookie,
		logger:   config.Logger.With().Str("component", "router").Logger(),
	}
}

// Handler returns the main HTTP handler.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(rt.requestLogger)

	r.Get("/health", rt.handleHealth)

	r.Route("/api", func(api chi.Router) {
		api.Post("/session", rt.handleLogin)

		api.Group(func(authed chi.Router) {
			authed.Use(rt.requireSession)

			authed.Delete("/session", rt.handleLogout)

			authed.Route("/users", func(r chi.Router) {
				r.Get("/", rt.handleListUsers)
				r.Post("/", rt.handleCreateUser)
				r.Get("/{id}", rt.handleGetUser)
				r.Put("/{id}", rt.handleUpdateUser)
				r.Delete("/{id}", rt.handleDeleteUser)
			})

			authed.Route("/products", func(r chi.Router) {
				r.Get("/", rt.handleListProducts)
				r.Get("/{id}", rt.handleGetProduct)
			})

			authed.Route("/orders", func(r chi.Router) {
				r.Get("/", rt.handleListOrders)
				r.Post("/", rt.handleCreateOrder)
				r.Get("/{id}", rt.handleGetOrder)
				r.Put("/{id}", rt.handleUpdateOrder)
				r.Delete("/{id}", rt.handleDeleteOrder)

				r.Post("/{id}/products", rt.handleAddOrderLine)
				r.Put("/{id}/products/{lineId}", rt.handleUpdateOrderLine)
				r.Delete("/{id}/products/{lineId}", rt.handleDeleteOrderLine)
			})
		})
	})

	return r
}

func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
