package catalog

import "strings"

// All disables filtering on a dimension.
const All = "all"

type Selection struct {
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Query    string `json:"query"`
}

func DefaultSelection() Selection {
	return Selection{Category: All, Brand: All}
}

// Normalize maps an unset dimension to All.
func (s Selection) Normalize() Selection {
	if s.Category == "" {
		s.Category = All
	}
	if s.Brand == "" {
		s.Brand = All
	}
	return s
}

// Active reports whether any dimension narrows the catalog.
func (s Selection) Active() bool {
	s = s.Normalize()
	return s.Category != All || s.Brand != All || s.Query != ""
}

// BrandSelection is the brand-carousel shortcut: it picks a brand and
// resets the other dimensions.
func BrandSelection(name string) Selection {
	if name == "" {
		name = All
	}
	return Selection{Category: All, Brand: name}
}

// Categories lists the distinct categories in first-occurrence order.
func Categories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := make([]string, 0, len(products))
	for _, p := range products {
		if _, dup := seen[p.Category]; dup {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// Filter returns the products matching every dimension of sel, in snapshot
// order. The input slice is never modified.
func Filter(products []Product, sel Selection) []Product {
	sel = sel.Normalize()
	query := strings.ToLower(sel.Query)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if !matchCategory(p, sel.Category) || !matchBrand(p, sel.Brand) || !matchQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchCategory(p Product, category string) bool {
	return category == All || p.Category == category
}

func matchBrand(p Product, brand string) bool {
	if brand == All {
		return true
	}
	name, ok := p.BrandName()
	return ok && name == brand
}

// query must already be lower-cased.
func matchQuery(p Product, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Category), query) {
		return true
	}
	name, ok := p.BrandName()
	return ok && strings.Contains(strings.ToLower(name), query)
}
