package gateway

import (
	"context"
	"encoding/json"

	"quickview-proxy/internal/model"
)

// Mock implements Gateway for testing.
// Each method can be configured via function fields.
type Mock struct {
	GetProductFunc func(ctx context.Context, handle string) (*model.Product, error)
	AddToCartFunc  func(ctx context.Context, variantID int64, quantity int) (json.RawMessage, error)
}

// GetProduct calls the configured GetProductFunc or reports not found.
func (m *Mock) GetProduct(ctx context.Context, handle string) (*model.Product, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(ctx, handle)
	}
	return nil, model.NewNotFoundError("product")
}

// AddToCart calls the configured AddToCartFunc or returns an error.
func (m *Mock) AddToCart(ctx context.Context, variantID int64, quantity int) (json.RawMessage, error) {
	if m.AddToCartFunc != nil {
		return m.AddToCartFunc(ctx, variantID, quantity)
	}
	return nil, model.NewInternalError(nil)
}

// Verify Mock implements Gateway interface at compile time.
var _ Gateway = (*Mock)(nil)
