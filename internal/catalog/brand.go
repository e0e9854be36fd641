package catalog

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var ErrInvalidBrand = errors.New("invalid brand")

// BrandInput is the admin form payload for creating or editing a brand.
type BrandInput struct {
	Name        string `json:"name" validate:"required,max=120"`
	Slug        string `json:"slug" validate:"required,max=140"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
	Description string `json:"description" validate:"max=2000"`
	WebsiteURL  string `json:"website_url" validate:"omitempty,url"`
}

// FieldError names one rejected field of a BrandInput.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

type BrandValidationError struct {
	Fields []FieldError
}

func (e *BrandValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "invalid brand: " + strings.Join(names, ", ")
}

func (e *BrandValidationError) Unwrap() error { return ErrInvalidBrand }

// NewValidator reports field errors under their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// normalize trims every field and fills a missing slug from the name.
func (in BrandInput) normalize() BrandInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.TrimSpace(in.Slug)
	in.LogoURL = strings.TrimSpace(in.LogoURL)
	in.Description = strings.TrimSpace(in.Description)
	in.WebsiteURL = strings.TrimSpace(in.WebsiteURL)
	if in.Slug == "" {
		in.Slug = Slugify(in.Name)
	}
	return in
}

func validateBrand(v *validator.Validate, in BrandInput) (BrandInput, error) {
	in = in.normalize()

	err := v.Struct(in)
	if err == nil {
		return in, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return BrandInput{}, err
	}

	out := &BrandValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
	}
	return BrandInput{}, out
}

func newBrand(in BrandInput, now time.Time) Brand {
	return Brand{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Slug:        in.Slug,
		LogoURL:     in.LogoURL,
		Description: in.Description,
		WebsiteURL:  in.WebsiteURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
