package storefront

import (
	"strings"

	"quickview-proxy/internal/model"
)

// transformProduct converts the platform's product resource into the
// display-ready model: description stripped to text, prices normalized to
// int64 minor units, option names flattened.
func transformProduct(raw *productJSON) *model.Product {
	p := &model.Product{
		Handle:        raw.Handle,
		Title:         raw.Title,
		Description:   model.StripTags(raw.Description),
		FeaturedImage: raw.FeaturedImage,
		Images:        raw.Images,
		Options:       []string(raw.Options),
	}

	p.Variants = make([]model.Variant, 0, len(raw.Variants))
	for _, rv := range raw.Variants {
		p.Variants = append(p.Variants, model.Variant{
			ID:        rv.ID,
			Title:     rv.Title,
			Price:     normalizePrice(rv.Price.String()),
			Available: rv.Available,
			Option1:   rv.Option1,
			Option2:   rv.Option2,
			Option3:   rv.Option3,
		})
	}

	return p
}

// normalizePrice converts a wire price to minor units. A decimal point
// marks a major-unit amount ("19.99"); anything else is already minor
// units ("1999").
func normalizePrice(s string) int64 {
	if strings.Contains(s, ".") {
		return model.ParseCents(s)
	}
	return model.ParseMinorUnits(s)
}
