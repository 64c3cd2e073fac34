package upsell

import (
	"testing"

	"quickview-proxy/internal/model"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name    string
		variant *model.Variant
		want    bool
	}{
		{
			"black medium fires",
			&model.Variant{Option1: "Black", Option2: "Medium"},
			true,
		},
		{
			"black small does not",
			&model.Variant{Option1: "Black", Option2: "Small"},
			false,
		},
		{
			"white medium does not",
			&model.Variant{Option1: "White", Option2: "Medium"},
			false,
		},
		{
			"substring match is intentionally loose",
			&model.Variant{Option1: "Blackout", Option2: "Medium-ish"},
			true,
		},
		{
			"case folded",
			&model.Variant{Option1: "BLACK", Option2: "MEDIUM"},
			true,
		},
		{
			"reversed slots",
			&model.Variant{Option1: "Medium", Option2: "Black"},
			true,
		},
		{
			"single slot satisfying both needles",
			&model.Variant{Option1: "Black-Medium"},
			true,
		},
		{
			"third slot counts",
			&model.Variant{Option1: "Cotton", Option2: "Black", Option3: "Medium"},
			true,
		},
		{
			"no options",
			&model.Variant{},
			false,
		},
		{
			"nil variant",
			nil,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.variant); got != tt.want {
				t.Errorf("Matches(%+v) = %v, want %v", tt.variant, got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	matching := &model.Variant{Option1: "Black", Option2: "Medium"}

	tests := []struct {
		name     string
		variant  *model.Variant
		configID int64
		wantID   int64
		wantAdd  bool
	}{
		{"configured and matching", matching, 40712345, 40712345, true},
		{"no configured id", matching, 0, 0, false},
		{"negative id treated as unset", matching, -1, 0, false},
		{"configured but not matching", &model.Variant{Option1: "Black", Option2: "Small"}, 40712345, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, add := Evaluate(tt.variant, tt.configID)
			if id != tt.wantID || add != tt.wantAdd {
				t.Errorf("Evaluate() = (%d, %v), want (%d, %v)", id, add, tt.wantID, tt.wantAdd)
			}
		})
	}
}

func TestParseVariantID(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantID int64
		wantOK bool
	}{
		{"numeric", "40712345", 40712345, true},
		{"padded", " 42 ", 42, true},
		{"empty", "", 0, false},
		{"non numeric", "abc", 0, false},
		{"zero", "0", 0, false},
		{"negative", "-7", 0, false},
		{"decimal", "40.5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseVariantID(tt.raw)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("ParseVariantID(%q) = (%d, %v), want (%d, %v)", tt.raw, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}
