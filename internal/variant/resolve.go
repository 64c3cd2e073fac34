// Package variant implements option/variant reconciliation for quick-view
// sessions: resolving a partial selection to a unique variant, deriving the
// picker groups shown to the shopper, and seeding the initial selection.
//
// All functions are pure; session state lives in the session package.
package variant

import "quickview-proxy/internal/model"

// Selection maps option names to chosen values, built incrementally as the
// shopper picks. At most one value per option; may cover fewer options than
// the product defines while interaction is in progress.
type Selection map[string]string

// Clone returns an independent copy of the selection.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Resolve finds the variant matching the selection, or nil.
//
// A variant matches iff, for every option with a non-empty entry in the
// selection, the variant's positional value equals the selected value.
// Options absent from the selection are wildcards. Returns the first match
// in list order, so an empty selection resolves to the first variant.
//
// Linear scan: catalogs run to tens of variants, and the uniqueness
// invariant on option tuples makes list order irrelevant for full
// selections anyway.
func Resolve(p *model.Product, sel Selection) *model.Variant {
	for i := range p.Variants {
		if matches(&p.Variants[i], p.Options, sel) {
			return &p.Variants[i]
		}
	}
	return nil
}

// matches reports whether v satisfies every selected option value.
func matches(v *model.Variant, options []string, sel Selection) bool {
	for i, name := range options {
		want, ok := sel[name]
		if !ok || want == "" {
			continue // unselected option is a wildcard
		}
		if v.OptionValue(i) != want {
			return false
		}
	}
	return true
}
