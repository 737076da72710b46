package storefront

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, zerolog.Nop(), nil)
}

func TestClient_GetUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/3", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 3,
			"email": "kevin@gmail.com",
			"username": "kevinryan",
			"name": {"firstname": "kevin", "lastname": "ryan"},
			"address": {"city": "Cullman", "street": "Frances Ct", "number": 86, "zipcode": "29567-1452"},
			"phone": "1-567-094-1345"
		}`))
	})

	user, err := c.GetUser(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "kevin", user.Name.FirstName)
	assert.Equal(t, "ryan", user.Name.LastName)
	require.NotNil(t, user.Address)
	assert.Equal(t, "Cullman", user.Address.City)
}

func TestClient_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetUser(context.Background(), 999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClient_ServerErrorIsUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := c.ListUsers(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestClient_TransportErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	c := NewClient(srv.URL, time.Second, zerolog.Nop(), nil)
	_, err := c.ListCarts(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestClient_MalformedBodyIsUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})

	_, err := c.ListProducts(context.Background())
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestClient_CreateCartSendsProjection(t *testing.T) {
	var gotBody []byte
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/carts", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = buf
		w.Write([]byte(`{"id": 11, "userId": 1, "date": "2024-03-02T00:00:00.000Z", "products": [{"productId": 5, "quantity": 2}]}`))
	})

	created, err := c.CreateCart(context.Background(), Cart{
		UserID:   1,
		Date:     "2024-03-02T00:00:00.000Z",
		Products: []CartItem{{ProductID: 5, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), created.ID)
	assert.JSONEq(t, `{"id":0,"userId":1,"date":"2024-03-02T00:00:00.000Z","products":[{"productId":5,"quantity":2}]}`, string(gotBody))
}

func TestClient_DeleteUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/users/7", r.URL.Path)
		w.Write([]byte(`{"id": 7}`))
	})

	require.NoError(t, c.DeleteUser(context.Background(), 7))
}
