package catalog

import (
	"context"
	"fmt"
)

// Loader fetches a fresh Snapshot from a Store. On failure it still returns
// an empty snapshot alongside the error so callers can render something.
type Loader struct {
	Store Store
}

func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	products, err := l.Store.ListProducts(ctx)
	if err != nil {
		return NewSnapshot(nil, nil), fmt.Errorf("load products: %w", err)
	}

	brands, err := l.Store.ListBrands(ctx)
	if err != nil {
		return NewSnapshot(nil, nil), fmt.Errorf("load brands: %w", err)
	}

	return NewSnapshot(products, brands), nil
}
