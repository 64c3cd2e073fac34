// Package gateway defines the contract between the quick-view workflow and
// the commerce platform's two pre-existing endpoints: product lookup and
// cart add. The storefront package provides the HTTP implementation.
package gateway

import (
	"context"
	"encoding/json"

	"quickview-proxy/internal/model"
)

// Gateway abstracts the platform endpoints the quick view depends on.
//
// Both operations make exactly one attempt; retry policy belongs to the
// shopper's next click, never to the gateway.
type Gateway interface {
	// GetProduct fetches the per-product JSON resource for a handle (slug).
	// The returned product is display-ready: description tag-stripped,
	// prices in minor units.
	GetProduct(ctx context.Context, handle string) (*model.Product, error)

	// AddToCart posts one line item {id, quantity} to the cart. Success is
	// any 2xx status; the response body is returned raw since callers only
	// need it to confirm success.
	AddToCart(ctx context.Context, variantID int64, quantity int) (json.RawMessage, error)
}
