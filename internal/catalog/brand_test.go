package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBrand(t *testing.T) {
	v := NewValidator()

	in, err := validateBrand(v, BrandInput{Name: "  Glow & Co ", LogoURL: "https://cdn.example.com/glow.png"})
	require.NoError(t, err)
	assert.Equal(t, "Glow & Co", in.Name)
	assert.Equal(t, "glow-co", in.Slug)

	in, err = validateBrand(v, BrandInput{Name: "Glow", Slug: "custom-slug"})
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", in.Slug)

	_, err = validateBrand(v, BrandInput{Name: "", LogoURL: "not a url"})
	require.ErrorIs(t, err, ErrInvalidBrand)

	var verr *BrandValidationError
	require.ErrorAs(t, err, &verr)
	fields := map[string]string{}
	for _, f := range verr.Fields {
		fields[f.Field] = f.Rule
	}
	assert.Equal(t, "required", fields["name"])
	assert.Equal(t, "required", fields["slug"], "no name means no derived slug")
	assert.Equal(t, "url", fields["logo_url"])
}
