package catalog

import "strings"

// Snapshot is an immutable catalog view with a case-folded search index.
// Its Filter returns exactly what Filter returns for the same products.
type Snapshot struct {
	products   []Product
	brands     []Brand
	categories []string
	folded     []foldedProduct
}

type foldedProduct struct {
	name        string
	description string
	category    string
	brand       string
	hasBrand    bool
}

func NewSnapshot(products []Product, brands []Brand) *Snapshot {
	s := &Snapshot{
		products: cloneProducts(products),
		brands:   append([]Brand{}, brands...),
	}
	s.categories = Categories(s.products)

	s.folded = make([]foldedProduct, len(s.products))
	for i, p := range s.products {
		brand, ok := p.BrandName()
		s.folded[i] = foldedProduct{
			name:        strings.ToLower(p.Name),
			description: strings.ToLower(p.Description),
			category:    strings.ToLower(p.Category),
			brand:       strings.ToLower(brand),
			hasBrand:    ok,
		}
	}
	return s
}

func (s *Snapshot) Len() int { return len(s.products) }

func (s *Snapshot) Products() []Product {
	return cloneProducts(s.products)
}

func (s *Snapshot) Brands() []Brand {
	return append([]Brand{}, s.brands...)
}

func (s *Snapshot) Categories() []string {
	return append([]string{}, s.categories...)
}

func (s *Snapshot) Filter(sel Selection) []Product {
	sel = sel.Normalize()
	query := strings.ToLower(sel.Query)

	out := make([]Product, 0, len(s.products))
	for i, p := range s.products {
		if !matchCategory(p, sel.Category) || !matchBrand(p, sel.Brand) {
			continue
		}
		if query != "" && !s.folded[i].contains(query) {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	return out
}

// cloneProduct detaches the joined brand so callers cannot reach the
// snapshot's copy through the pointer.
func cloneProduct(p Product) Product {
	if p.Brand != nil {
		b := *p.Brand
		p.Brand = &b
	}
	return p
}

func cloneProducts(products []Product) []Product {
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = cloneProduct(p)
	}
	return out
}

func (f foldedProduct) contains(q string) bool {
	return strings.Contains(f.name, q) ||
		strings.Contains(f.description, q) ||
		strings.Contains(f.category, q) ||
		(f.hasBrand && strings.Contains(f.brand, q))
}

// View is what the storefront product page renders.
type View struct {
	Products   []Product `json:"products"`
	Categories []string  `json:"categories"`
	Brands     []Brand   `json:"brands"`
	Selection  Selection `json:"selection"`
	Filtered   bool      `json:"filtered"`
	Shown      int       `json:"shown"`
	Total      int       `json:"total"`
}

func (s *Snapshot) View(sel Selection) View {
	sel = sel.Normalize()
	products := s.Filter(sel)
	return View{
		Products:   products,
		Categories: s.Categories(),
		Brands:     s.Brands(),
		Selection:  sel,
		Filtered:   sel.Active(),
		Shown:      len(products),
		Total:      len(s.products),
	}
}
