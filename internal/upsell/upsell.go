// Package upsell implements the bundled-item promotion applied after a
// successful primary cart add. The rule is merchant policy, configured per
// listing section and evaluated against the confirmed variant's option
// values.
package upsell

import (
	"strconv"
	"strings"

	"quickview-proxy/internal/model"
)

// The rule fires on substring containment, not exact option values:
// "Blackout" and "Medium-Large" both satisfy it. That looseness is the
// merchant's stated policy and must not be tightened.
const (
	colorNeedle = "black"
	sizeNeedle  = "medium"
)

// ParseVariantID parses a section-supplied upsell variant identifier.
// Sections carry the ID as a string attribute; absent or non-numeric input
// leaves the promotion inert, so both report ok=false rather than an error.
func ParseVariantID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Matches reports whether the variant's option values satisfy the bundle
// condition: at least one case-folded value containing "black" AND at least
// one containing "medium". A single value can satisfy both needles.
func Matches(v *model.Variant) bool {
	if v == nil {
		return false
	}

	var hasColor, hasSize bool
	for i := 0; i < model.MaxOptions; i++ {
		value := strings.ToLower(v.OptionValue(i))
		if value == "" {
			continue
		}
		if strings.Contains(value, colorNeedle) {
			hasColor = true
		}
		if strings.Contains(value, sizeNeedle) {
			hasSize = true
		}
	}
	return hasColor && hasSize
}

// Evaluate decides whether a bundled add should follow the primary add:
// the variant must match the rule and the section must carry a valid upsell
// variant ID. Returns the variant to add and whether to add it.
func Evaluate(v *model.Variant, upsellVariantID int64) (int64, bool) {
	if upsellVariantID <= 0 {
		return 0, false
	}
	if !Matches(v) {
		return 0, false
	}
	return upsellVariantID, true
}
