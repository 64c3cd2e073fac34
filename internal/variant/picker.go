package variant

import "quickview-proxy/internal/model"

// Picker is one selectable control group: an option name plus the distinct
// values the shopper can choose from, in first-occurrence order across the
// variant list.
type Picker struct {
	Option string   `json:"option"`
	Values []string `json:"values"`
}

// Contains reports whether the picker offers the given value.
func (p *Picker) Contains(value string) bool {
	for _, v := range p.Values {
		if v == value {
			return true
		}
	}
	return false
}

// BuildPickers derives one picker per product option, in catalog order.
// Values are deduplicated preserving first occurrence; empty values
// (variants with fewer option slots than expected) are skipped.
func BuildPickers(p *model.Product) []Picker {
	pickers := make([]Picker, 0, len(p.Options))
	for i, name := range p.Options {
		seen := make(map[string]bool)
		picker := Picker{Option: name}
		for vi := range p.Variants {
			value := p.Variants[vi].OptionValue(i)
			if value == "" || seen[value] {
				continue
			}
			seen[value] = true
			picker.Values = append(picker.Values, value)
		}
		pickers = append(pickers, picker)
	}
	return pickers
}

// SeedSelection builds the initial selection for a freshly opened quick view
// by simulating a pick of each option value of the first purchasable variant
// (first available, else first in list order). A seed value missing from the
// rendered picker leaves that option unselected; the data invariant makes
// that unreachable in practice, but a partial seed still resolves the same
// way manual clicks would.
//
// Returns the selection and the variant it resolves to (nil for a product
// with no variants).
func SeedSelection(p *model.Product, pickers []Picker) (Selection, *model.Variant) {
	sel := make(Selection, len(p.Options))

	initial := p.FirstPurchasable()
	if initial == nil {
		return sel, nil
	}

	for i, name := range p.Options {
		value := initial.OptionValue(i)
		if value == "" {
			continue
		}
		if i < len(pickers) && !pickers[i].Contains(value) {
			continue
		}
		sel[name] = value
	}

	return sel, Resolve(p, sel)
}
