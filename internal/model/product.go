// Package model defines the core quick-view domain types: products, variants,
// money, and the shared error model. Shared by the storefront client, the
// session manager, and the API handlers.
package model

// Product is a storefront product as fetched for a quick-view session.
// Immutable once fetched; owned by the active session and replaced wholesale
// when the next quick view opens.
type Product struct {
	Handle        string    `json:"handle"`
	Title         string    `json:"title"`
	Description   string    `json:"description"` // Tag-stripped plain text, display-ready
	FeaturedImage string    `json:"featured_image,omitempty"`
	Images        []string  `json:"images,omitempty"`
	Options       []string  `json:"options"` // Ordered option names, e.g. ["Color","Size"]
	Variants      []Variant `json:"variants"`
}

// Variant is a purchasable combination of a product's option values.
// Option1-3 align positionally with Product.Options; unused slots are empty.
//
// Invariant: within one product, the tuple of non-empty option values is
// unique per variant.
type Variant struct {
	ID        int64  `json:"id"`
	Title     string `json:"title,omitempty"` // Display suffix, e.g. "Black / Medium"
	Price     int64  `json:"price"`           // Minor currency units (cents)
	Available bool   `json:"available"`
	Option1   string `json:"option1,omitempty"`
	Option2   string `json:"option2,omitempty"`
	Option3   string `json:"option3,omitempty"`
}

// MaxOptions is the platform's cap on option axes per product.
const MaxOptions = 3

// OptionValue returns the variant's value for the option at position i
// (0-based), or "" for positions beyond the third slot.
func (v *Variant) OptionValue(i int) string {
	switch i {
	case 0:
		return v.Option1
	case 1:
		return v.Option2
	case 2:
		return v.Option3
	default:
		return ""
	}
}

// OptionValues returns the variant's option values in positional order,
// trimmed to the product's option count.
func (v *Variant) OptionValues(optionCount int) []string {
	if optionCount > MaxOptions {
		optionCount = MaxOptions
	}
	values := make([]string, 0, optionCount)
	for i := 0; i < optionCount; i++ {
		values = append(values, v.OptionValue(i))
	}
	return values
}

// FirstPurchasable returns the variant to pre-select when a quick view opens:
// the first variant flagged available, or the first variant in list order if
// none are. Returns nil for a product with no variants.
func (p *Product) FirstPurchasable() *Variant {
	for i := range p.Variants {
		if p.Variants[i].Available {
			return &p.Variants[i]
		}
	}
	if len(p.Variants) > 0 {
		return &p.Variants[0]
	}
	return nil
}
