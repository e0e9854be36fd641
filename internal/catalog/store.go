package catalog

import (
	"context"
	"errors"
)

var ErrBrandExists = errors.New("brand name or slug already exists")

type Store interface {
	Ping(ctx context.Context) error

	// ListProducts returns products newest first with their brand joined.
	ListProducts(ctx context.Context) ([]Product, error)
	// ListBrands returns brands ordered by name.
	ListBrands(ctx context.Context) ([]Brand, error)
	GetProduct(ctx context.Context, id string) (Product, bool, error)

	CreateBrand(ctx context.Context, b Brand) error
	// UpdateBrand reports false when no brand has b.ID.
	UpdateBrand(ctx context.Context, b Brand) (bool, error)
}
