package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_MatchesNaiveScan(t *testing.T) {
	products := fixture()
	snap := NewSnapshot(products, []Brand{*glow, *luxe})

	categories := append([]string{All, "Nope"}, Categories(products)...)
	brands := []string{All, "Glow", "Luxe", "Missing"}
	queries := []string{"", "r", "ROSE", "luxe", "skin", "vitamin", " ", "gone", "zz"}

	for _, c := range categories {
		for _, b := range brands {
			for _, q := range queries {
				sel := Selection{Category: c, Brand: b, Query: q}
				require.Equal(t, Filter(products, sel), snap.Filter(sel), "%+v", sel)
			}
		}
	}
}

func TestSnapshot_IsolatedFromCaller(t *testing.T) {
	products := fixture()
	snap := NewSnapshot(products, nil)

	products[0].Name = "Changed"
	assert.Equal(t, "Rose Cream", snap.Products()[0].Name)

	out := snap.Products()
	out[1].Name = "Changed"
	assert.Equal(t, "Matte Lipstick", snap.Products()[1].Name)
}

func TestSnapshot_BrandIsolatedFromCaller(t *testing.T) {
	brand := &Brand{ID: "b1", Name: "Glow"}
	products := []Product{
		{ID: "1", Name: "Rose Cream", Category: "Skincare", BrandID: "b1", Brand: brand},
		{ID: "2", Name: "Clay Mask", Category: "Skincare", BrandID: "b1", Brand: brand},
	}
	snap := NewSnapshot(products, nil)

	brand.Name = "Renamed"

	byBrand := snap.Filter(Selection{Brand: "Glow"})
	byQuery := snap.Filter(Selection{Query: "glow"})
	assert.Len(t, byBrand, 2)
	assert.Equal(t, byBrand, byQuery)
	assert.Empty(t, snap.Filter(Selection{Brand: "Renamed"}))

	for _, sel := range []Selection{{Brand: "Glow"}, {Query: "glow"}, {Query: "renamed"}} {
		assert.Equal(t, Filter(snap.Products(), sel), snap.Filter(sel), "%+v", sel)
	}

	byBrand[0].Brand.Name = "Mutated"
	name, ok := snap.Products()[0].BrandName()
	require.True(t, ok)
	assert.Equal(t, "Glow", name)
}

func TestSnapshot_View(t *testing.T) {
	snap := NewSnapshot(fixture(), []Brand{*glow, *luxe})

	v := snap.View(Selection{Brand: "Luxe"})
	assert.Equal(t, []string{"Matte Lipstick", "Luxe Liner"}, names(v.Products))
	assert.Equal(t, 2, v.Shown)
	assert.Equal(t, 5, v.Total)
	assert.True(t, v.Filtered)
	assert.Equal(t, Selection{Category: All, Brand: "Luxe"}, v.Selection)
	assert.Equal(t, []string{"Skincare", "Makeup"}, v.Categories)
	assert.Len(t, v.Brands, 2)

	empty := NewSnapshot(nil, nil).View(DefaultSelection())
	assert.Equal(t, 0, empty.Total)
	assert.NotNil(t, empty.Products)
	assert.NotNil(t, empty.Categories)
	assert.NotNil(t, empty.Brands)
	assert.False(t, empty.Filtered)
}
