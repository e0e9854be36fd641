package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Glow":               "glow",
		"Glow & Co.":         "glow-co",
		"  La Roche-Posay  ": "la-roche-posay",
		"The   Ordinary":     "the-ordinary",
		"L'Oréal Paris":      "loral-paris",
		"--Dash--Brand--":    "dash-brand",
		"":                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}
