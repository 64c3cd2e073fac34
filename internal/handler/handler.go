// Package handler provides the HTTP surface of the quick-view service: the
// widget event dispatcher, the session snapshot endpoint, and the MCP
// transport.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"quickview-proxy/internal/gateway"
	"quickview-proxy/internal/model"
	"quickview-proxy/internal/session"
)

// Options carries shop-level settings the handlers need.
type Options struct {
	// CartURL is where the widget navigates after a successful add.
	CartURL string

	// UpsellVariantID is the shop-wide upsell fallback applied when the
	// request's page context carries none. 0 = no fallback.
	UpsellVariantID int64
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	gateway  gateway.Gateway
	sessions *session.Manager
	opts     Options
	logger   *slog.Logger

	dispatch map[TriggerKind]eventFunc
}

// New creates a Handler wired to the given gateway and session manager.
func New(gw gateway.Gateway, sessions *session.Manager, opts Options, logger *slog.Logger) *Handler {
	h := &Handler{
		gateway:  gw,
		sessions: sessions,
		opts:     opts,
		logger:   logger,
	}

	// Dispatch table keyed by trigger kind; the single event endpoint
	// classifies and routes, mirroring the widget's delegated listener.
	h.dispatch = map[TriggerKind]eventFunc{
		TriggerOpen:   h.eventOpen,
		TriggerSelect: h.eventSelect,
		TriggerAdd:    h.eventAdd,
		TriggerClose:  h.eventClose,
		TriggerEscape: h.eventEscape,
	}

	return h
}

// RegisterRoutes registers all HTTP routes with the given ServeMux.
// Uses Go 1.22+ method routing patterns.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Widget event endpoint - all triggers arrive here
	mux.HandleFunc("POST /quickview/events", h.handleEvent)

	// Current render state, for widget re-hydration after page restore
	mux.HandleFunc("GET /quickview/session", h.handleSession)

	// MCP transport - agent clients drive the same workflow as the widget
	mux.Handle("/mcp", h.NewMCPHandler())

	// Health check
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /healthz", h.handleHealth)
}

// handleSession returns the current session snapshot.
// GET /quickview/session
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, &EventResult{Session: h.sessions.Snapshot()})
}

// healthResponse is the JSON structure for health responses.
type healthResponse struct {
	Status string `json:"status"`
}

// handleHealth reports service liveness.
// GET /health
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// === Response Helpers ===

// writeJSON sends a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError sends an error response, extracting status/code from APIError
// if present. Uses errors.As() to unwrap error chains. retryable tells the
// widget to re-enable the control that triggered the event, making the
// shopper's next click the retry mechanism.
func (h *Handler) writeError(w http.ResponseWriter, err error, retryable bool) {
	var apiErr *model.APIError

	if errors.As(err, &apiErr) {
		// Found APIError in error chain - use it
	} else {
		// Wrap unexpected errors
		apiErr = &model.APIError{
			Code:       "INTERNAL_ERROR",
			Message:    "an internal error occurred",
			StatusCode: http.StatusInternalServerError,
		}
		h.logger.Error("internal error", slog.String("error", err.Error()))
	}

	h.writeJSON(w, apiErr.StatusCode, errorResponse{
		Error: errorBody{
			Code:      apiErr.Code,
			Message:   apiErr.Message,
			Retryable: retryable,
		},
	})
}

// errorResponse is the JSON structure for error responses.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

// MaxRequestBodySize limits JSON request bodies to 64KB; widget events are
// tiny and anything bigger is noise.
const MaxRequestBodySize = 64 << 10

// decodeJSON reads JSON from request body into v.
// Limits body size to MaxRequestBodySize to prevent memory exhaustion.
// Returns an APIError if decoding fails.
func decodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Don't expose internal error details to client
		return model.NewValidationError("body", "invalid JSON")
	}
	return nil
}
