package catalog

import "time"

type Brand struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	LogoURL     string    `json:"logo_url,omitempty"`
	Description string    `json:"description,omitempty"`
	WebsiteURL  string    `json:"website_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product carries the brand joined at read time. Brand is nil when BrandID
// points at a brand that does not exist.
type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	PriceCents      int64     `json:"price_cents"`
	Description     string    `json:"description"`
	HowToUse        string    `json:"how_to_use,omitempty"`
	Category        string    `json:"category"`
	BrandID         string    `json:"brand_id"`
	ImageURL        string    `json:"image_url,omitempty"`
	Slug            string    `json:"slug"`
	WhatsAppMessage string    `json:"whatsapp_message,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Brand *Brand `json:"brand,omitempty"`
}

func (p Product) BrandName() (string, bool) {
	if p.Brand == nil {
		return "", false
	}
	return p.Brand.Name, true
}
