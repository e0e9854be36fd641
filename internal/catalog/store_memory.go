package catalog

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemStore struct {
	mu       sync.RWMutex
	products map[string]Product
	brands   map[string]Brand
}

// NewMemStore stores the given rows. Product.Brand is ignored on input and
// joined from brands on every read.
func NewMemStore(brands []Brand, products []Product) *MemStore {
	s := &MemStore{
		products: make(map[string]Product, len(products)),
		brands:   make(map[string]Brand, len(brands)),
	}
	for _, b := range brands {
		s.brands[b.ID] = b
	}
	for _, p := range products {
		p.Brand = nil
		s.products[p.ID] = p
	}
	return s
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) ListProducts(ctx context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, s.join(p))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemStore) GetProduct(ctx context.Context, id string) (Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return Product{}, false, nil
	}
	return s.join(p), true, nil
}

func (s *MemStore) ListBrands(ctx context.Context) ([]Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Brand, 0, len(s.brands))
	for _, b := range s.brands {
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemStore) CreateBrand(ctx context.Context, b Brand) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conflicts(b) {
		return ErrBrandExists
	}
	s.brands[b.ID] = b
	return nil
}

func (s *MemStore) UpdateBrand(ctx context.Context, b Brand) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.brands[b.ID]
	if !ok {
		return false, nil
	}
	if s.conflicts(b) {
		return false, ErrBrandExists
	}
	b.CreatedAt = cur.CreatedAt
	s.brands[b.ID] = b
	return true, nil
}

// conflicts reports whether another brand already uses b's name or slug.
func (s *MemStore) conflicts(b Brand) bool {
	for id, other := range s.brands {
		if id == b.ID {
			continue
		}
		if other.Name == b.Name || other.Slug == b.Slug {
			return true
		}
	}
	return false
}

func (s *MemStore) join(p Product) Product {
	if b, ok := s.brands[p.BrandID]; ok {
		p.Brand = &b
	}
	return p
}

// DemoCatalog is the seed data used when no database is configured.
func DemoCatalog() ([]Brand, []Product) {
	t0 := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	brands := []Brand{
		{ID: "b-glow", Name: "Glow", Slug: "glow", Description: "Everyday skincare", CreatedAt: t0, UpdatedAt: t0},
		{ID: "b-luxe", Name: "Luxe", Slug: "luxe", Description: "Colour cosmetics", CreatedAt: t0, UpdatedAt: t0},
	}

	products := []Product{
		{
			ID: "p-rose-cream", Name: "Rose Cream", PriceCents: 4500, Category: "Skincare",
			Description: "Hydrating face cream with rose extract", BrandID: "b-glow", Slug: "rose-cream",
			CreatedAt: t0.Add(2 * time.Hour), UpdatedAt: t0.Add(2 * time.Hour),
		},
		{
			ID: "p-matte-lipstick", Name: "Matte Lipstick", PriceCents: 2500, Category: "Makeup",
			Description: "Long-wear matte finish", BrandID: "b-luxe", Slug: "matte-lipstick",
			CreatedAt: t0.Add(time.Hour), UpdatedAt: t0.Add(time.Hour),
		},
		{
			ID: "p-clay-mask", Name: "Clay Mask", PriceCents: 3000, Category: "Skincare",
			Description: "Purifying kaolin mask", BrandID: "b-glow", Slug: "clay-mask",
			CreatedAt: t0, UpdatedAt: t0,
		},
	}
	return brands, products
}
