// Package storefront implements the HTTP client for the commerce platform's
// storefront endpoints: the per-product JSON resource and the cart add
// endpoint. All platform wire types, transforms, and error mapping live
// here.
package storefront

import (
	"encoding/json"
	"fmt"
)

// === Platform API Response Types ===

// productJSON is the per-product resource at GET /products/{handle}.js.
type productJSON struct {
	Handle        string        `json:"handle"`
	Title         string        `json:"title"`
	Description   string        `json:"description"` // merchant-authored HTML
	FeaturedImage string        `json:"featured_image"`
	Images        []string      `json:"images"`
	Options       optionNames   `json:"options"`
	Variants      []variantJSON `json:"variants"`
}

// variantJSON is one purchasable combination in the product resource.
// Price arrives as a bare number in minor units on current storefronts, but
// older themes proxy it through as a decimal string ("19.99"); json.Number
// absorbs both and the transform normalizes.
type variantJSON struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	Price     json.Number `json:"price"`
	Available bool        `json:"available"`
	Option1   string      `json:"option1"`
	Option2   string      `json:"option2"`
	Option3   string      `json:"option3"`
}

// optionNames tolerates both shapes the platform serves for options:
// a plain array of names (["Color","Size"]) and an array of objects
// ([{"name":"Color","position":1,...}]).
type optionNames []string

func (o *optionNames) UnmarshalJSON(data []byte) error {
	var plain []string
	if err := json.Unmarshal(data, &plain); err == nil {
		*o = plain
		return nil
	}

	var structured []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &structured); err != nil {
		return fmt.Errorf("options: unsupported shape: %w", err)
	}

	names := make([]string, 0, len(structured))
	for _, s := range structured {
		names = append(names, s.Name)
	}
	*o = names
	return nil
}

// === Platform API Request Types ===

// cartAddRequest is the body for POST /cart/add.js.
type cartAddRequest struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

// === Error Types ===

// errorResponse is the platform's error body shape. The cart endpoint uses
// description, the product endpoint plain message; both are best-effort.
type errorResponse struct {
	Status      int    `json:"status,omitempty"`
	Message     string `json:"message,omitempty"`
	Description string `json:"description,omitempty"`
}

func (e *errorResponse) text() string {
	if e.Description != "" {
		return e.Description
	}
	return e.Message
}
