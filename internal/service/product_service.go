package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mertkaya-dev/backoffice/internal/domain"
	"github.com/mertkaya-dev/backoffice/internal/mapper"
	"github.com/mertkaya-dev/backoffice/internal/storefront"
)

// ProductService exposes the storefront catalog. Products are read-only:
// always fetched from the upstream, never created or edited locally, and
// never written to the fallback store.
type ProductService struct {
	api    ProductAPI
	logger zerolog.Logger
}

// NewProductService creates a ProductService.
func NewProductService(api ProductAPI, logger zerolog.Logger) *ProductService {
	return &ProductService{
		api:    api,
		logger: logger.With().Str("service", "product").Logger(),
	}
}

// GetAll returns the full catalog.
func (s *ProductService) GetAll(ctx context.Context) ([]domain.Product, error) {
	apiProducts, err := s.api.ListProducts(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]domain.Product, 0, len(apiProducts))
	for _, p := range apiProducts {
		products = append(products, mapper.ProductFromAPI(p))
	}
	return products, nil
}

// GetByID returns one catalog entry.
func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.api.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, storefront.ErrNotFound) {
			return nil, domain.ErrProductNotFound
		}
		s.logger.Warn().Err(err).Int64("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}

	product := mapper.ProductFromAPI(*p)
	return &product, nil
}
