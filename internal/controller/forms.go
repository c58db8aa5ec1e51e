package controller

import (
	"strconv"
	"strings"

	"github.com/five82/shopkeep/internal/catalog"
)

// CreateForm holds the raw text of the create form fields.
type CreateForm struct {
	Title       string
	Price       string
	Description string
	CategoryID  string
	Images      string // comma or whitespace separated URLs
}

// Input coerces the form into a request body. Numeric fields that do not
// parse produce a *catalog.ValidationError listing every bad field.
func (f CreateForm) Input() (catalog.NewProductInput, error) {
	var msgs []string
	price, err := parseWhole(f.Price)
	if err != nil {
		msgs = append(msgs, "price must be a whole number")
	}
	categoryID, err := parseWhole(f.CategoryID)
	if err != nil {
		msgs = append(msgs, "category id must be a whole number")
	}
	if len(msgs) > 0 {
		return catalog.NewProductInput{}, &catalog.ValidationError{Op: "create product", Messages: msgs}
	}
	return catalog.NewProductInput{
		Title:       strings.TrimSpace(f.Title),
		Price:       price,
		Description: strings.TrimSpace(f.Description),
		CategoryID:  categoryID,
		Images:      SplitImages(f.Images),
	}, nil
}

// UpdateForm holds the raw text of the edit form fields. Blank fields are
// left out of the patch.
type UpdateForm struct {
	Title       string
	Price       string
	Description string
}

// Patch converts the form into a partial update.
func (f UpdateForm) Patch() (catalog.ProductPatch, error) {
	var patch catalog.ProductPatch
	if title := strings.TrimSpace(f.Title); title != "" {
		patch.Title = &title
	}
	if desc := strings.TrimSpace(f.Description); desc != "" {
		patch.Description = &desc
	}
	if strings.TrimSpace(f.Price) != "" {
		price, err := parseWhole(f.Price)
		if err != nil {
			return catalog.ProductPatch{}, &catalog.ValidationError{
				Op:       "update product",
				Messages: []string{"price must be a whole number"},
			}
		}
		patch.Price = &price
	}
	return patch, nil
}

// FormFromProduct pre-fills the edit form with p's current values.
func FormFromProduct(p catalog.Product) UpdateForm {
	return UpdateForm{
		Title:       p.Title,
		Price:       p.Price.String(),
		Description: p.Description,
	}
}

// SplitImages splits a list of URLs separated by commas, spaces or newlines.
func SplitImages(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t' || r == '\r'
	})
}

// parseWhole accepts integers and prices with a zero fractional part such as
// "12.00", which is how the API renders whole prices back to the edit form.
func parseWhole(raw string) (int, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	if whole, frac, ok := strings.Cut(raw, "."); ok && strings.Trim(frac, "0") == "" {
		raw = whole
	}
	return strconv.Atoi(raw)
}
