package variant

import (
	"testing"

	"quickview-proxy/internal/model"
)

// testProduct returns a two-option catalog shaped like a typical apparel
// listing: Color x Size with one sold-out combination.
func testProduct() *model.Product {
	return &model.Product{
		Handle:  "classic-tee",
		Title:   "Classic Tee",
		Options: []string{"Color", "Size"},
		Variants: []model.Variant{
			{ID: 101, Title: "Black / Small", Price: 1999, Available: false, Option1: "Black", Option2: "Small"},
			{ID: 102, Title: "Black / Medium", Price: 1999, Available: true, Option1: "Black", Option2: "Medium"},
			{ID: 103, Title: "White / Small", Price: 1899, Available: true, Option1: "White", Option2: "Small"},
			{ID: 104, Title: "White / Medium", Price: 1899, Available: true, Option1: "White", Option2: "Medium"},
		},
	}
}

func TestResolve(t *testing.T) {
	p := testProduct()

	tests := []struct {
		name   string
		sel    Selection
		wantID int64 // 0 = expect nil
	}{
		{"full selection", Selection{"Color": "Black", "Size": "Medium"}, 102},
		{"other full selection", Selection{"Color": "White", "Size": "Small"}, 103},
		{"partial matches first in order", Selection{"Color": "White"}, 103},
		{"empty selection returns first variant", Selection{}, 101},
		{"nil selection returns first variant", nil, 101},
		{"no match", Selection{"Color": "Red"}, 0},
		{"conflicting pair", Selection{"Color": "Red", "Size": "Medium"}, 0},
		{"empty value is wildcard", Selection{"Color": "", "Size": "Small"}, 101},
		{"unknown option name ignored", Selection{"Material": "Wool", "Color": "White"}, 103},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(p, tt.sel)
			if tt.wantID == 0 {
				if got != nil {
					t.Errorf("Resolve() = variant %d, want nil", got.ID)
				}
				return
			}
			if got == nil {
				t.Fatalf("Resolve() = nil, want variant %d", tt.wantID)
			}
			if got.ID != tt.wantID {
				t.Errorf("Resolve() = variant %d, want %d", got.ID, tt.wantID)
			}
		})
	}
}

func TestResolveSingleOption(t *testing.T) {
	p := &model.Product{
		Options: []string{"Size"},
		Variants: []model.Variant{
			{ID: 1, Option1: "Small", Available: true},
			{ID: 2, Option1: "Large", Available: true},
		},
	}

	got := Resolve(p, Selection{"Size": "Large"})
	if got == nil || got.ID != 2 {
		t.Fatalf("Resolve(Size=Large) = %+v, want variant 2", got)
	}
}

func TestResolveNoVariants(t *testing.T) {
	p := &model.Product{Options: []string{"Size"}}
	if got := Resolve(p, Selection{}); got != nil {
		t.Errorf("Resolve() on empty catalog = %+v, want nil", got)
	}
}
