package mapper

import (
	"context"
	"time"

	"github.com/mertkaya-dev/backoffice/internal/domain"
	"github.com/mertkaya-dev/backoffice/internal/storefront"
)

// ProductLookup resolves a product by ID, typically against the upstream
// catalog. OrderFromCart uses it to snapshot price and title per line.
type ProductLookup func(ctx context.Context, id int64) (*domain.Product, error)

// OrderFromCart converts an upstream cart into a dashboard order. Each cart
// item is resolved through lookup, sequentially and in item order; items
// whose lookup fails are omitted and the total is computed over the lines
// that remain. Line IDs mirror the product ID on initial mapping; lines
// added later through the facade get max+1 IDs.
func OrderFromCart(ctx context.Context, cart storefront.Cart, lookup ProductLookup) domain.Order {
	order := domain.Order{
		ID:     cart.ID,
		UserID: cart.UserID,
		Date:   ParseDate(cart.Date),
		Lines:  make([]domain.OrderLine, 0, len(cart.Products)),
	}

	for _, item := range cart.Products {
		product, err := lookup(ctx, item.ProductID)
		if err != nil {
			continue
		}
		order.Lines = append(order.Lines, domain.OrderLine{
			ID:        item.ProductID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Title:     product.Title,
			ImageURL:  product.ImageURL,
		})
	}

	order.RecomputeTotal()
	return order
}

// CartFromOrder projects a dashboard order onto the upstream wire shape.
// Only userId, date and {productId, quantity} pairs are sent back; price and
// title are derived values and never written upstream.
func CartFromOrder(o domain.Order) storefront.Cart {
	cart := storefront.Cart{
		UserID:   o.UserID,
		Date:     o.Date.UTC().Format(time.RFC3339),
		Products: make([]storefront.CartItem, 0, len(o.Lines)),
	}
	for _, line := range o.Lines {
		cart.Products = append(cart.Products, storefront.CartItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}
	return cart
}

// ProductFromAPI converts an upstream catalog record into a dashboard product.
func ProductFromAPI(p storefront.Product) domain.Product {
	return domain.Product{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		ImageURL: p.Image,
	}
}

// ParseDate parses an upstream date string. The upstream emits RFC 3339
// timestamps (with or without fractional seconds); a bare date is accepted
// as well. Unparseable input yields the zero time.
func ParseDate(s string) time.Time {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}
