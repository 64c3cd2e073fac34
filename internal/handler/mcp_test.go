package handler

import (
	"context"
	"strings"
	"testing"

	"quickview-proxy/internal/gateway"
	"quickview-proxy/internal/session"
)

func TestMCPServerCreation(t *testing.T) {
	h := newTestHandler(&gateway.Mock{}, Options{})

	if h.NewMCPServer() == nil {
		t.Fatal("NewMCPServer returned nil")
	}
	if h.NewMCPHandler() == nil {
		t.Fatal("NewMCPHandler returned nil")
	}
}

func TestMCPToolFlow(t *testing.T) {
	mock := &gateway.Mock{}
	serveProduct(mock, blackTee())
	adds := recordAdds(mock)
	h := newTestHandler(mock, Options{})
	ctx := context.Background()

	_, result, err := h.mcpOpenQuickview(ctx, nil, OpenQuickviewInput{Handle: "black-tee"})
	if err != nil {
		t.Fatalf("open_quickview: %v", err)
	}
	if result.Session.State != session.StateOpen || result.Session.VariantID != 201 {
		t.Fatalf("open result = %+v, want open with variant 201", result.Session)
	}

	_, result, err = h.mcpSelectOption(ctx, nil, SelectOptionInput{Option: "Size", Value: "Medium"})
	if err != nil {
		t.Fatalf("select_option: %v", err)
	}
	if result.Session.VariantID != 201 {
		t.Errorf("VariantID = %d, want 201", result.Session.VariantID)
	}

	// Tool input stands in for the page context's upsell attribute
	_, result, err = h.mcpAddToCart(ctx, nil, AddToCartInput{UpsellVariantID: 777})
	if err != nil {
		t.Fatalf("add_to_cart: %v", err)
	}
	if len(*adds) != 2 || (*adds)[1].VariantID != 777 {
		t.Errorf("adds = %+v, want selected then upsell 777", *adds)
	}
	if !result.UpsellAdded || result.Redirect == "" {
		t.Errorf("result = %+v, want upsell added and redirect", result)
	}
	if result.Session.State != session.StateClosed {
		t.Error("session not closed after add")
	}
}

func TestMCPToolErrors(t *testing.T) {
	h := newTestHandler(&gateway.Mock{}, Options{})
	ctx := context.Background()

	if _, _, err := h.mcpOpenQuickview(ctx, nil, OpenQuickviewInput{}); err == nil {
		t.Error("open without handle = nil error, want error")
	}

	_, _, err := h.mcpSelectOption(ctx, nil, SelectOptionInput{Option: "Color", Value: "Red"})
	if err == nil || !strings.Contains(err.Error(), "NO_ACTIVE_SESSION") {
		t.Errorf("select without session = %v, want NO_ACTIVE_SESSION", err)
	}

	_, result, err := h.mcpCloseQuickview(ctx, nil, CloseQuickviewInput{})
	if err != nil {
		t.Fatalf("close_quickview: %v", err)
	}
	if result.Session.State != session.StateClosed {
		t.Error("close on closed session should stay closed")
	}
}
