package mapper

import (
	"context"
	"testing"
	"time"

	"github.com/mertkaya-dev/backoffice/internal/domain"
	"github.com/mertkaya-dev/backoffice/internal/storefront"
)

func catalogLookup(products map[int64]domain.Product) ProductLookup {
	return func(_ context.Context, id int64) (*domain.Product, error) {
		if p, ok := products[id]; ok {
			return &p, nil
		}
		return nil, domain.ErrProductNotFound
	}
}

func TestOrderFromCart(t *testing.T) {
	cart := storefront.Cart{
		ID:     5,
		UserID: 2,
		Date:   "2020-03-02T00:00:00.000Z",
		Products: []storefront.CartItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	}
	lookup := catalogLookup(map[int64]domain.Product{
		1: {ID: 1, Title: "backpack", Price: 10},
		2: {ID: 2, Title: "shirt", Price: 5},
	})

	order := OrderFromCart(context.Background(), cart, lookup)

	if order.ID != 5 || order.UserID != 2 {
		t.Errorf("unexpected identity: %+v", order)
	}
	if len(order.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(order.Lines))
	}
	if order.Total != 25 {
		t.Errorf("expected total 25, got %v", order.Total)
	}
	if order.Lines[0].Price != 10 || order.Lines[0].Title != "backpack" {
		t.Errorf("line snapshot not resolved: %+v", order.Lines[0])
	}
	want := time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC)
	if !order.Date.Equal(want) {
		t.Errorf("expected date %v, got %v", want, order.Date)
	}
}

func TestOrderFromCart_OmitsUnresolvableLines(t *testing.T) {
	cart := storefront.Cart{
		ID:     9,
		UserID: 1,
		Date:   "2020-01-01T00:00:00Z",
		Products: []storefront.CartItem{
			{ProductID: 1, Quantity: 3},
			{ProductID: 404, Quantity: 5},
		},
	}
	lookup := catalogLookup(map[int64]domain.Product{
		1: {ID: 1, Title: "backpack", Price: 10},
	})

	order := OrderFromCart(context.Background(), cart, lookup)

	if len(order.Lines) != 1 {
		t.Fatalf("expected unresolvable line to be omitted, got %d lines", len(order.Lines))
	}
	if order.Total != 30 {
		t.Errorf("total must only cover included lines, got %v", order.Total)
	}
}

func TestCartFromOrder_ProjectsLines(t *testing.T) {
	order := domain.Order{
		ID:     3,
		UserID: 8,
		Date:   time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Lines: []domain.OrderLine{
			{ID: 1, ProductID: 4, Quantity: 2, Price: 99, Title: "monitor"},
		},
		Total: 198,
	}

	cart := CartFromOrder(order)

	if cart.UserID != 8 {
		t.Errorf("expected userId 8, got %d", cart.UserID)
	}
	if cart.Date != "2024-06-01T12:00:00Z" {
		t.Errorf("unexpected date encoding: %q", cart.Date)
	}
	if len(cart.Products) != 1 {
		t.Fatalf("expected 1 projected item, got %d", len(cart.Products))
	}
	item := cart.Products[0]
	if item.ProductID != 4 || item.Quantity != 2 {
		t.Errorf("unexpected projection: %+v", item)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339 with millis", "2020-03-02T00:00:00.000Z", time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2024-06-01T12:30:00Z", time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)},
		{"bare date", "2024-06-01", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"garbage", "not-a-date", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
