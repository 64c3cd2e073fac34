package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"quickview-proxy/internal/model"
	"quickview-proxy/internal/page"
	"quickview-proxy/internal/session"
	"quickview-proxy/internal/upsell"
)

// TriggerKind classifies a widget event.
type TriggerKind string

const (
	TriggerOpen   TriggerKind = "open"   // quick-view trigger clicked
	TriggerSelect TriggerKind = "select" // picker value clicked
	TriggerAdd    TriggerKind = "add"    // add-to-cart clicked
	TriggerClose  TriggerKind = "close"  // close control or backdrop clicked
	TriggerEscape TriggerKind = "escape" // Escape key pressed
)

// Event is one widget interaction forwarded to the service.
type Event struct {
	Kind     TriggerKind `json:"kind"`
	Handle   string      `json:"handle,omitempty"`   // open
	Option   string      `json:"option,omitempty"`   // select
	Value    string      `json:"value,omitempty"`    // select
	Quantity int         `json:"quantity,omitempty"` // add, defaults to 1
}

// EventResult is the response to a processed event.
type EventResult struct {
	Session     *session.Snapshot `json:"session"`
	Redirect    string            `json:"redirect,omitempty"`
	UpsellAdded bool              `json:"upsell_added,omitempty"`
}

type eventFunc func(ctx context.Context, e *Event) (*EventResult, error)

// handleEvent classifies an incoming widget event and routes it through the
// dispatch table.
// POST /quickview/events
func (h *Handler) handleEvent(w http.ResponseWriter, r *http.Request) {
	var event Event
	if err := decodeJSON(r, &event); err != nil {
		h.writeError(w, err, false)
		return
	}

	fn, ok := h.dispatch[event.Kind]
	if !ok {
		h.writeError(w, model.NewValidationError("kind", "unknown trigger kind"), false)
		return
	}

	result, err := fn(r.Context(), &event)
	if err != nil {
		h.writeError(w, h.eventError(err), event.Kind == TriggerAdd)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// eventOpen fetches the product and renders it into the session. A token is
// issued before the fetch so that an open overtaken by a newer trigger is
// discarded instead of clobbering the newer content.
func (h *Handler) eventOpen(ctx context.Context, e *Event) (*EventResult, error) {
	if e.Handle == "" {
		return nil, model.NewValidationError("handle", "product handle required")
	}

	token := h.sessions.NextToken()

	product, err := h.gateway.GetProduct(ctx, e.Handle)
	if err != nil {
		return nil, err
	}

	snap, err := h.sessions.Open(token, product)
	if err != nil {
		return nil, err
	}

	h.logger.Info("quick view opened",
		slog.String("handle", e.Handle),
		slog.Int64("variant_id", snap.VariantID),
	)

	return &EventResult{Session: snap}, nil
}

// eventSelect applies one picker choice.
func (h *Handler) eventSelect(ctx context.Context, e *Event) (*EventResult, error) {
	snap, err := h.sessions.Select(e.Option, e.Value)
	if err != nil {
		return nil, err
	}
	return &EventResult{Session: snap}, nil
}

// eventAdd adds the selected variant to the cart, evaluates the upsell rule,
// then closes the quick view and redirects to the cart page.
//
// The upsell add is best-effort: its failure is logged and swallowed so the
// shopper's primary add still lands them on the cart page. A primary add
// failure keeps the quick view open and is reported retryable.
func (h *Handler) eventAdd(ctx context.Context, e *Event) (*EventResult, error) {
	quantity := e.Quantity
	if quantity == 0 {
		quantity = 1
	}

	v, err := h.sessions.CurrentVariant()
	if err != nil {
		return nil, err
	}

	if _, err := h.gateway.AddToCart(ctx, v.ID, quantity); err != nil {
		return nil, err
	}

	result := &EventResult{Redirect: h.opts.CartURL}

	upsellID := page.FromContext(ctx).UpsellVariantID
	if upsellID == 0 {
		upsellID = h.opts.UpsellVariantID
	}
	if id, ok := upsell.Evaluate(v, upsellID); ok {
		if _, err := h.gateway.AddToCart(ctx, id, 1); err != nil {
			h.logger.Warn("upsell add failed",
				slog.Int64("upsell_variant_id", id),
				slog.String("error", err.Error()),
			)
		} else {
			result.UpsellAdded = true
		}
	}

	h.sessions.Close()
	result.Session = h.sessions.Snapshot()

	h.logger.Info("added to cart",
		slog.Int64("variant_id", v.ID),
		slog.Int("quantity", quantity),
		slog.Bool("upsell_added", result.UpsellAdded),
	)

	return result, nil
}

// eventClose closes the quick view. Idempotent.
func (h *Handler) eventClose(ctx context.Context, e *Event) (*EventResult, error) {
	h.sessions.Close()
	return &EventResult{Session: h.sessions.Snapshot()}, nil
}

// eventEscape closes the quick view only when one is open, matching the
// keydown listener's guard.
func (h *Handler) eventEscape(ctx context.Context, e *Event) (*EventResult, error) {
	h.sessions.Escape()
	return &EventResult{Session: h.sessions.Snapshot()}, nil
}

// eventError maps session lifecycle errors onto the API error taxonomy.
// Gateway errors already carry APIError and pass through unchanged.
func (h *Handler) eventError(err error) error {
	switch {
	case errors.Is(err, session.ErrSuperseded):
		return &model.APIError{
			Code:       "SUPERSEDED",
			Message:    "a newer quick view owns the session",
			StatusCode: http.StatusConflict,
			Err:        err,
		}
	case errors.Is(err, session.ErrClosed):
		return &model.APIError{
			Code:       "NO_ACTIVE_SESSION",
			Message:    "no quick view open",
			StatusCode: http.StatusConflict,
			Err:        err,
		}
	case errors.Is(err, session.ErrNoVariant):
		return model.NewValidationError("selection", "no variant selected")
	default:
		return err
	}
}
