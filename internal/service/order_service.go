package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mertkaya-dev/backoffice/internal/domain"
	"github.com/mertkaya-dev/backoffice/internal/fallback"
	"github.com/mertkaya-dev/backoffice/internal/mapper"
	"github.com/mertkaya-dev/backoffice/internal/metrics"
	"github.com/mertkaya-dev/backoffice/internal/storefront"
)

// OrderService manages orders (upstream carts). Order lines have no
// upstream endpoint of their own: every line mutation re-fetches the order,
// rewrites the line sequence in memory, recomputes the total and writes the
// whole order back.
type OrderService struct {
	api      CartAPI
	products ProductAPI
	orders   *fallback.Collection[domain.Order]
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewOrderService creates an OrderService over the given upstream client
// and fallback store.
func NewOrderService(api CartAPI, products ProductAPI, store fallback.Store, m *metrics.Metrics, logger zerolog.Logger) *OrderService {
	return &OrderService{
		api:      api,
		products: products,
		orders:   fallback.NewCollection(store, ordersCollection, func(o domain.Order) int64 { return o.ID }),
		metrics:  m,
		logger:   logger.With().Str("service", "order").Logger(),
	}
}

// lookup resolves catalog products for line snapshots. Lookups run one at a
// time, in line order.
func (s *OrderService) lookup(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	product := mapper.ProductFromAPI(*p)
	return &product, nil
}

// GetAll returns all orders. On any upstream failure it returns the
// fallback collection contents as previously persisted, in stored order.
func (s *OrderService) GetAll(ctx context.Context) ([]domain.Order, error) {
	carts, err := s.api.ListCarts(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("upstream list failed, serving fallback orders")
		s.metrics.ObserveFallback(ordersCollection, "get_all")
		return s.orders.All(ctx)
	}

	orders := make([]domain.Order, 0, len(carts))
	for _, cart := range carts {
		orders = append(orders, mapper.OrderFromCart(ctx, cart, s.lookup))
	}
	return orders, nil
}

// GetByID returns one order from the upstream, with every line's product
// snapshot resolved.
func (s *OrderService) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	cart, err := s.api.GetCart(ctx, id)
	if err != nil {
		if errors.Is(err, storefront.ErrNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		s.logger.Warn().Err(err).Int64("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}

	order := mapper.OrderFromCart(ctx, *cart, s.lookup)
	return &order, nil
}

// GetByDateRange returns the orders whose date falls within [from, to],
// bounds inclusive. When userID is non-nil only that user's orders are
// fetched. The upstream has no server-side date filtering; the range is
// applied client-side after mapping.
func (s *OrderService) GetByDateRange(ctx context.Context, from, to time.Time, userID *int64) ([]domain.Order, error) {
	var (
		orders []domain.Order
		err    error
	)
	if userID != nil {
		var carts []storefront.Cart
		carts, err = s.api.ListCartsByUser(ctx, *userID)
		if err != nil {
			return nil, fmt.Errorf("list orders for user %d: %w", *userID, err)
		}
		orders = make([]domain.Order, 0, len(carts))
		for _, cart := range carts {
			orders = append(orders, mapper.OrderFromCart(ctx, cart, s.lookup))
		}
	} else {
		orders, err = s.GetAll(ctx)
		if err != nil {
			return nil, err
		}
	}

	filtered := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.Date.Before(from) || o.Date.After(to) {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered, nil
}

// Create creates an order. Only the line projection (productId, quantity)
// plus user and date go upstream; totals and snapshots are recomputed from
// the response. On upstream failure the order is persisted locally with a
// synthesized max+1 ID.
func (s *OrderService) Create(ctx context.Context, order domain.Order) (*domain.Order, error) {
	created, err := s.api.CreateCart(ctx, mapper.CartFromOrder(order))
	if err != nil {
		s.logger.Warn().Err(err).Msg("upstream create failed, creating order in fallback store")
		return s.createLocal(ctx, order)
	}

	result := mapper.OrderFromCart(ctx, *created, s.lookup)
	if err := s.orders.Append(ctx, result); err != nil {
		s.logger.Error().Err(err).Int64("order_id", result.ID).Msg("failed to mirror created order into fallback store")
	}

	s.logger.Info().Int64("order_id", result.ID).Int64("user_id", result.UserID).Msg("order created")
	return &result, nil
}

// createLocal persists an order straight into the fallback store.
func (s *OrderService) createLocal(ctx context.Context, order domain.Order) (*domain.Order, error) {
	existing, err := s.orders.All(ctx)
	if err != nil {
		return nil, err
	}

	order.ID = nextID(existing, func(o domain.Order) int64 { return o.ID })
	order.RecomputeTotal()

	if err := s.orders.Append(ctx, order); err != nil {
		return nil, err
	}

	s.metrics.ObserveFallback(ordersCollection, "create")
	s.logger.Info().Int64("order_id", order.ID).Msg("order created in fallback store")
	return &order, nil
}

// Update replaces an order. The total is recomputed before persisting on
// either path; it is never trusted from the caller or from storage.
func (s *OrderService) Update(ctx context.Context, id int64, order domain.Order) (*domain.Order, error) {
	order.ID = id
	order.RecomputeTotal()

	updated, err := s.api.UpdateCart(ctx, id, mapper.CartFromOrder(order))
	if err != nil {
		s.logger.Warn().Err(err).Int64("order_id", id).Msg("upstream update failed, updating fallback record")
		return s.updateLocal(ctx, id, order)
	}

	result := mapper.OrderFromCart(ctx, *updated, s.lookup)
	result.ID = id

	s.logger.Info().Int64("order_id", id).Msg("order updated")
	return &result, nil
}

// updateLocal replaces the order record in the fallback store.
func (s *OrderService) updateLocal(ctx context.Context, id int64, order domain.Order) (*domain.Order, error) {
	if err := s.orders.ReplaceByID(ctx, id, order); err != nil {
		if errors.Is(err, fallback.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	s.metrics.ObserveFallback(ordersCollection, "update")
	s.logger.Info().Int64("order_id", id).Msg("order updated in fallback store")
	return &order, nil
}

// Delete removes an order, with the same semantics as UserService.Delete.
func (s *OrderService) Delete(ctx context.Context, id int64) (bool, error) {
	if err := s.api.DeleteCart(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("order_id", id).Msg("upstream delete failed, removing from fallback store")
		removed, rmErr := s.orders.RemoveByID(ctx, id)
		if rmErr != nil {
			return false, rmErr
		}
		if removed {
			s.metrics.ObserveFallback(ordersCollection, "delete")
		}
		return removed, nil
	}

	if _, err := s.orders.RemoveByID(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to remove mirrored order")
	}

	s.logger.Info().Int64("order_id", id).Msg("order deleted")
	return true, nil
}

// AddProductInput describes a new order line. Price and title are snapshots
// chosen by the caller; they are not re-resolved afterwards.
type AddProductInput struct {
	ProductID int64
	Quantity  int64
	Price     float64
	Title     string
	ImageURL  string
}

// AddProduct appends a line to an order. The new line's ID is
// max(existing line IDs)+1, or 1 for an empty order. The whole order is
// rewritten upstream; there is no line-level endpoint.
func (s *OrderService) AddProduct(ctx context.Context, orderID int64, input AddProductInput) (*domain.OrderLine, error) {
	if input.ProductID == 0 || input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: product id and positive quantity required", ErrInvalidInput)
	}

	order, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	line := domain.OrderLine{
		ID:        order.NextLineID(),
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Price:     input.Price,
		Title:     input.Title,
		ImageURL:  input.ImageURL,
	}
	order.Lines = append(order.Lines, line)
	order.RecomputeTotal()

	if _, err := s.Update(ctx, orderID, *order); err != nil {
		return nil, err
	}
	return &line, nil
}

// LinePatch carries the fields of a partial order line update.
type LinePatch struct {
	Quantity *int64
	Price    *float64
	Title    *string
}

// Apply merges the set fields onto the line.
func (p LinePatch) Apply(l *domain.OrderLine) {
	if p.Quantity != nil {
		l.Quantity = *p.Quantity
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.Title != nil {
		l.Title = *p.Title
	}
}

// UpdateProduct merges a patch onto one line of an order and rewrites the
// whole order with a recomputed total.
func (s *OrderService) UpdateProduct(ctx context.Context, orderID, lineID int64, patch LinePatch) (*domain.OrderLine, error) {
	order, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	i := order.LineIndex(lineID)
	if i < 0 {
		return nil, domain.ErrOrderLineNotFound
	}

	patch.Apply(&order.Lines[i])
	order.RecomputeTotal()

	if _, err := s.Update(ctx, orderID, *order); err != nil {
		return nil, err
	}
	line := order.Lines[i]
	return &line, nil
}

// DeleteProduct removes one line from an order and rewrites the whole order
// with a recomputed total. Reports whether a line was removed.
func (s *OrderService) DeleteProduct(ctx context.Context, orderID, lineID int64) (bool, error) {
	order, err := s.GetByID(ctx, orderID)
	if err != nil {
		return false, err
	}

	i := order.LineIndex(lineID)
	if i < 0 {
		return false, nil
	}

	order.Lines = append(order.Lines[:i], order.Lines[i+1:]...)
	order.RecomputeTotal()

	if _, err := s.Update(ctx, orderID, *order); err != nil {
		return false, err
	}
	return true, nil
}
