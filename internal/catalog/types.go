package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// NoCategory is shown wherever a product has no category.
	NoCategory = "No Category"

	// PlaceholderImage stands in for products without images.
	PlaceholderImage = "https://via.placeholder.com/50"
)

// Product mirrors an entry of the products collection endpoint.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    *Category       `json:"category,omitempty"`
	Images      []string        `json:"images"`
	CreationAt  string          `json:"creationAt,omitempty"`
	UpdatedAt   string          `json:"updatedAt,omitempty"`
}

// Category is the nested category object of a product.
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Image string `json:"image,omitempty"`
}

// CategoryName returns the category name or NoCategory when absent.
func (p Product) CategoryName() string {
	if p.Category == nil || strings.TrimSpace(p.Category.Name) == "" {
		return NoCategory
	}
	return p.Category.Name
}

// Thumbnail returns the first image URL or PlaceholderImage.
func (p Product) Thumbnail() string {
	for _, img := range p.Images {
		if trimmed := strings.TrimSpace(img); trimmed != "" {
			return trimmed
		}
	}
	return PlaceholderImage
}

// PriceLabel formats the price with a currency prefix, e.g. "$42" or "$9.5".
func (p Product) PriceLabel() string {
	return "$" + p.Price.String()
}

// ParsedUpdatedAt returns the parsed UpdatedAt timestamp.
func (p Product) ParsedUpdatedAt() time.Time {
	return parseTime(p.UpdatedAt)
}

// Clone returns a copy that shares no slices or pointers with p.
func (p Product) Clone() Product {
	dup := p
	if p.Category != nil {
		cat := *p.Category
		dup.Category = &cat
	}
	if p.Images != nil {
		dup.Images = append([]string(nil), p.Images...)
	}
	return dup
}

// NewProductInput is the body of a create request.
type NewProductInput struct {
	Title       string   `json:"title" validate:"required"`
	Price       int      `json:"price" validate:"gte=0"`
	Description string   `json:"description" validate:"required"`
	CategoryID  int      `json:"categoryId" validate:"gt=0"`
	Images      []string `json:"images" validate:"required,min=1,dive,url"`
}

// ProductPatch is the body of a partial update; nil fields are left untouched.
type ProductPatch struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Price       *int    `json:"price,omitempty" validate:"omitempty,gte=0"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
}

// Empty reports whether the patch would change nothing.
func (p ProductPatch) Empty() bool {
	return p.Title == nil && p.Price == nil && p.Description == nil
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
