// MCP transport handler using the official MCP Go SDK. Exposes the
// quick-view workflow as tools so agent clients can drive the same
// open/select/add lifecycle as the widget.
package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"quickview-proxy/internal/model"
	"quickview-proxy/internal/page"
)

// === MCP Tool Input Types ===
// No page exists on the MCP side, so the per-request values the widget
// sends in the Quickview-Context header arrive as tool inputs instead.

// OpenQuickviewInput is the input schema for open_quickview.
type OpenQuickviewInput struct {
	Handle string `json:"handle" jsonschema:"product handle,required"`
}

// SelectOptionInput is the input schema for select_option.
type SelectOptionInput struct {
	Option string `json:"option" jsonschema:"option name,required"`
	Value  string `json:"value" jsonschema:"option value,required"`
}

// AddToCartInput is the input schema for add_to_cart.
type AddToCartInput struct {
	Quantity        int   `json:"quantity,omitempty" jsonschema:"quantity, defaults to 1"`
	UpsellVariantID int64 `json:"upsell_variant_id,omitempty" jsonschema:"upsell variant to pair with a matching selection"`
}

// CloseQuickviewInput is the input schema for close_quickview.
type CloseQuickviewInput struct{}

// NewMCPServer creates an MCP server with the quick-view tools registered.
// The tools run through the same dispatch functions as the REST endpoint.
func (h *Handler) NewMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "quickview-proxy",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			Instructions: "Storefront quick view. Open a product by handle, " +
				"pick option values, then add the selected variant to the cart.",
		},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "open_quickview",
		Description: "Open the quick view for a product handle. Returns the render state with pickers and the seeded selection.",
	}, h.mcpOpenQuickview)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "select_option",
		Description: "Apply one picker choice to the open quick view.",
	}, h.mcpSelectOption)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_to_cart",
		Description: "Add the selected variant to the cart, then close the quick view.",
	}, h.mcpAddToCart)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "close_quickview",
		Description: "Close the quick view without adding anything.",
	}, h.mcpCloseQuickview)

	return server
}

// NewMCPHandler returns an HTTP handler for the MCP endpoint.
// Mount this at /mcp on your mux.
func (h *Handler) NewMCPHandler() http.Handler {
	server := h.NewMCPServer()
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server { return server },
		nil,
	)
}

// === Tool Handlers ===

func (h *Handler) mcpOpenQuickview(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input OpenQuickviewInput,
) (*mcp.CallToolResult, *EventResult, error) {
	result, err := h.eventOpen(ctx, &Event{Kind: TriggerOpen, Handle: input.Handle})
	if err != nil {
		return nil, nil, h.mcpError(err)
	}
	return nil, result, nil
}

func (h *Handler) mcpSelectOption(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SelectOptionInput,
) (*mcp.CallToolResult, *EventResult, error) {
	result, err := h.eventSelect(ctx, &Event{Kind: TriggerSelect, Option: input.Option, Value: input.Value})
	if err != nil {
		return nil, nil, h.mcpError(err)
	}
	return nil, result, nil
}

func (h *Handler) mcpAddToCart(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input AddToCartInput,
) (*mcp.CallToolResult, *EventResult, error) {
	if input.UpsellVariantID > 0 {
		ctx = page.NewContext(ctx, &page.Context{UpsellVariantID: input.UpsellVariantID})
	}

	result, err := h.eventAdd(ctx, &Event{Kind: TriggerAdd, Quantity: input.Quantity})
	if err != nil {
		return nil, nil, h.mcpError(err)
	}
	return nil, result, nil
}

func (h *Handler) mcpCloseQuickview(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input CloseQuickviewInput,
) (*mcp.CallToolResult, *EventResult, error) {
	result, err := h.eventClose(ctx, &Event{Kind: TriggerClose})
	if err != nil {
		return nil, nil, h.mcpError(err)
	}
	return nil, result, nil
}

// mcpError converts service errors to MCP-friendly errors.
func (h *Handler) mcpError(err error) error {
	err = h.eventError(err)
	if apiErr, ok := err.(*model.APIError); ok {
		return fmt.Errorf("%s: %s", apiErr.Code, apiErr.Message)
	}
	// Don't leak internal error details
	h.logger.Error("mcp internal error", "error", err.Error())
	return fmt.Errorf("internal error")
}
