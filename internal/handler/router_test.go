package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mertkaya-dev/backoffice/internal/domain"
	"github.com/mertkaya-dev/backoffice/internal/service"
	"github.com/mertkaya-dev/backoffice/internal/storefront"
)

const testToken = "11111111-2222-3333-4444-555555555555"

// Stub services; unset funcs panic so tests fail loudly on unexpected calls.

type fakeUsers struct {
	getAll  func(ctx context.Context) ([]domain.User, error)
	getByID func(ctx context.Context, id int64) (*domain.User, error)
	create  func(ctx context.Context, user domain.User) (*domain.User, error)
	update  func(ctx context.Context, id int64, patch service.UserPatch) (*domain.User, error)
	delete  func(ctx context.Context, id int64) (bool, error)
}

func (f *fakeUsers) GetAll(ctx context.Context) ([]domain.User, error) { return f.getAll(ctx) }
func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return f.getByID(ctx, id)
}
func (f *fakeUsers) Create(ctx context.Context, user domain.User) (*domain.User, error) {
	return f.create(ctx, user)
}
func (f *fakeUsers) Update(ctx context.Context, id int64, patch service.UserPatch) (*domain.User, error) {
	return f.update(ctx, id, patch)
}
func (f *fakeUsers) Delete(ctx context.Context, id int64) (bool, error) { return f.delete(ctx, id) }

type fakeProducts struct {
	getAll  func(ctx context.Context) ([]domain.Product, error)
	getByID func(ctx context.Context, id int64) (*domain.Product, error)
}

func (f *fakeProducts) GetAll(ctx context.Context) ([]domain.Product, error) { return f.getAll(ctx) }
func (f *fakeProducts) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return f.getByID(ctx, id)
}

type fakeOrders struct {
	getAll      func(ctx context.Context) ([]domain.Order, error)
	getByID     func(ctx context.Context, id int64) (*domain.Order, error)
	byDateRange func(ctx context.Context, from, to time.Time, userID *int64) ([]domain.Order, error)
	create      func(ctx context.Context, order domain.Order) (*domain.Order, error)
	update      func(ctx context.Context, id int64, order domain.Order) (*domain.Order, error)
	delete      func(ctx context.Context, id int64) (bool, error)
	addLine     func(ctx context.Context, orderID int64, input service.AddProductInput) (*domain.OrderLine, error)
	updateLine  func(ctx context.Context, orderID, lineID int64, patch service.LinePatch) (*domain.OrderLine, error)
	deleteLine  func(ctx context.Context, orderID, lineID int64) (bool, error)
}

func (f *fakeOrders) GetAll(ctx context.Context) ([]domain.Order, error) { return f.getAll(ctx) }
func (f *fakeOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	return f.getByID(ctx, id)
}
func (f *fakeOrders) GetByDateRange(ctx context.Context, from, to time.Time, userID *int64) ([]domain.Order, error) {
	return f.byDateRange(ctx, from, to, userID)
}
func (f *fakeOrders) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	return f.create(ctx, order)
}
func (f *fakeOrders) Update(ctx context.Context, id int64, order domain.Order) (*domain.Order, error) {
	return f.update(ctx, id, order)
}
func (f *fakeOrders) Delete(ctx context.Context, id int64) (bool, error) { return f.delete(ctx, id) }
func (f *fakeOrders) AddProduct(ctx context.Context, orderID int64, input service.AddProductInput) (*domain.OrderLine, error) {
	return f.addLine(ctx, orderID, input)
}
func (f *fakeOrders) UpdateProduct(ctx context.Context, orderID, lineID int64, patch service.LinePatch) (*domain.OrderLine, error) {
	return f.updateLine(ctx, orderID, lineID, patch)
}
func (f *fakeOrders) DeleteProduct(ctx context.Context, orderID, lineID int64) (bool, error) {
	return f.deleteLine(ctx, orderID, lineID)
}

type fakeSessions struct {
	login    func(ctx context.Context, username, password string) (*service.Session, error)
	validate func(ctx context.Context, token string) (string, error)
	logout   func(ctx context.Context, token string) error
}

func (f *fakeSessions) Login(ctx context.Context, username, password string) (*service.Session, error) {
	return f.login(ctx, username, password)
}
func (f *fakeSessions) Validate(ctx context.Context, token string) (string, error) {
	return f.validate(ctx, token)
}
func (f *fakeSessions) Logout(ctx context.Context, token string) error { return f.logout(ctx, token) }

func acceptToken(ctx context.Context, token string) (string, error) {
	if token == testToken {
		return "admin", nil
	}
	return "", service.ErrSessionNotFound
}

func newTestRouter(cfg RouterConfig) http.Handler {
	if cfg.SessionService == nil {
		cfg.SessionService = &fakeSessions{validate: acceptToken}
	}
	cfg.Cookie = CookieConfig{Name: "backoffice_session", TTL: time.Hour}
	cfg.Logger = zerolog.Nop()
	return NewRouter(cfg).Handler()
}

func doRequest(h http.Handler, method, target, body string, authed bool) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if authed {
		req.AddCookie(&http.Cookie{Name: "backoffice_session", Value: testToken})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterHealth(t *testing.T) {
	h := newTestRouter(RouterConfig{})

	rec := doRequest(h, http.MethodGet, "/health", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestRouterRequiresSession(t *testing.T) {
	h := newTestRouter(RouterConfig{})

	rec := doRequest(h, http.MethodGet, "/api/users/", "", false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
	req.AddCookie(&http.Cookie{Name: "backoffice_session", Value: "stale-token"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouterLogin(t *testing.T) {
	sessions := &fakeSessions{
		login: func(ctx context.Context, username, password string) (*service.Session, error) {
			if username != "admin" || password != "secret" {
				return nil, service.ErrInvalidCredentials
			}
			return &service.Session{Token: testToken, Username: username}, nil
		},
	}
	h := newTestRouter(RouterConfig{SessionService: sessions})

	rec := doRequest(h, http.MethodPost, "/api/session", `{"username":"admin","password":"secret"}`, false)
	require.Equal(t, http.StatusCreated, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "backoffice_session", cookies[0].Name)
	assert.Equal(t, testToken, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	rec = doRequest(h, http.MethodPost, "/api/session", `{"username":"admin","password":"wrong"}`, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(h, http.MethodPost, "/api/session", `{not json`, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterLogout(t *testing.T) {
	sessions := &fakeSessions{
		validate: acceptToken,
		logout: func(ctx context.Context, token string) error {
			assert.Equal(t, testToken, token)
			return nil
		},
	}
	h := newTestRouter(RouterConfig{SessionService: sessions})

	rec := doRequest(h, http.MethodDelete, "/api/session", "", true)
	require.Equal(t, http.StatusNoContent, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestRouterListUsers(t *testing.T) {
	users := &fakeUsers{
		getAll: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{{ID: 1, Username: "johnd", UserNumber: "0000001"}}, nil
		},
	}
	h := newTestRouter(RouterConfig{UserService: users})

	rec := doRequest(h, http.MethodGet, "/api/users/", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "johnd", got[0].Username)
}

func TestRouterGetUserErrors(t *testing.T) {
	users := &fakeUsers{
		getByID: func(ctx context.Context, id int64) (*domain.User, error) {
			switch id {
			case 404:
				return nil, domain.ErrUserNotFound
			default:
				return nil, storefront.ErrUnavailable
			}
		},
	}
	h := newTestRouter(RouterConfig{UserService: users})

	rec := doRequest(h, http.MethodGet, "/api/users/abc", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(h, http.MethodGet, "/api/users/404", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(h, http.MethodGet, "/api/users/7", "", true)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"upstream service unavailable"}`, rec.Body.String())
}

func TestRouterCreateUser(t *testing.T) {
	users := &fakeUsers{
		create: func(ctx context.Context, user domain.User) (*domain.User, error) {
			user.ID = 11
			user.UserNumber = "0000011"
			return &user, nil
		},
	}
	h := newTestRouter(RouterConfig{UserService: users})

	rec := doRequest(h, http.MethodPost, "/api/users/", `{"username":"newbie","email":"n@example.com"}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, int64(11), got.ID)

	rec = doRequest(h, http.MethodPost, "/api/users/", `{"email":"n@example.com"}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterUpdateUserPassesPatch(t *testing.T) {
	var received service.UserPatch
	users := &fakeUsers{
		update: func(ctx context.Context, id int64, patch service.UserPatch) (*domain.User, error) {
			received = patch
			return &domain.User{ID: id}, nil
		},
	}
	h := newTestRouter(RouterConfig{UserService: users})

	rec := doRequest(h, http.MethodPut, "/api/users/3", `{"email":"new@example.com","admin":true}`, true)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, received.Email)
	assert.Equal(t, "new@example.com", *received.Email)
	require.NotNil(t, received.Admin)
	assert.True(t, *received.Admin)
	assert.Nil(t, received.Username, "absent fields must stay nil")
}

func TestRouterDeleteUser(t *testing.T) {
	users := &fakeUsers{
		delete: func(ctx context.Context, id int64) (bool, error) { return id == 5, nil },
	}
	h := newTestRouter(RouterConfig{UserService: users})

	rec := doRequest(h, http.MethodDelete, "/api/users/5", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":true}`, rec.Body.String())

	rec = doRequest(h, http.MethodDelete, "/api/users/6", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":false}`, rec.Body.String())
}

func TestRouterListOrdersDateFilter(t *testing.T) {
	var gotFrom, gotTo time.Time
	var gotUser *int64
	orders := &fakeOrders{
		byDateRange: func(ctx context.Context, from, to time.Time, userID *int64) ([]domain.Order, error) {
			gotFrom, gotTo, gotUser = from, to, userID
			return []domain.Order{}, nil
		},
	}
	h := newTestRouter(RouterConfig{OrderService: orders})

	rec := doRequest(h, http.MethodGet, "/api/orders/?from=2020-01-02&to=2020-03-01&user_id=2", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), gotFrom)
	// A date-only upper bound covers the whole day.
	assert.True(t, gotTo.After(time.Date(2020, 3, 1, 23, 59, 59, 0, time.UTC)))
	require.NotNil(t, gotUser)
	assert.Equal(t, int64(2), *gotUser)

	rec = doRequest(h, http.MethodGet, "/api/orders/?from=notadate", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterListOrdersWithoutFilter(t *testing.T) {
	orders := &fakeOrders{
		getAll: func(ctx context.Context) ([]domain.Order, error) {
			return []domain.Order{{ID: 1}}, nil
		},
	}
	h := newTestRouter(RouterConfig{OrderService: orders})

	rec := doRequest(h, http.MethodGet, "/api/orders/", "", true)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 1)
}

func TestRouterAddOrderLine(t *testing.T) {
	orders := &fakeOrders{
		addLine: func(ctx context.Context, orderID int64, input service.AddProductInput) (*domain.OrderLine, error) {
			if input.ProductID == 0 || input.Quantity <= 0 {
				return nil, service.ErrInvalidInput
			}
			return &domain.OrderLine{ID: 3, ProductID: input.ProductID, Quantity: input.Quantity, Price: input.Price}, nil
		},
	}
	h := newTestRouter(RouterConfig{OrderService: orders})

	rec := doRequest(h, http.MethodPost, "/api/orders/1/products", `{"product_id":2,"quantity":3,"price":5}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)

	var line domain.OrderLine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &line))
	assert.Equal(t, int64(3), line.ID)

	rec = doRequest(h, http.MethodPost, "/api/orders/1/products", `{"product_id":2}`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouterUpdateOrderLineNotFound(t *testing.T) {
	orders := &fakeOrders{
		updateLine: func(ctx context.Context, orderID, lineID int64, patch service.LinePatch) (*domain.OrderLine, error) {
			return nil, domain.ErrOrderLineNotFound
		},
	}
	h := newTestRouter(RouterConfig{OrderService: orders})

	rec := doRequest(h, http.MethodPut, "/api/orders/1/products/9", `{"quantity":2}`, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouterDeleteOrderLine(t *testing.T) {
	orders := &fakeOrders{
		deleteLine: func(ctx context.Context, orderID, lineID int64) (bool, error) {
			return lineID == 2, nil
		},
	}
	h := newTestRouter(RouterConfig{OrderService: orders})

	rec := doRequest(h, http.MethodDelete, "/api/orders/1/products/2", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":true}`, rec.Body.String())

	rec = doRequest(h, http.MethodDelete, "/api/orders/1/products/9", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":false}`, rec.Body.String())
}
