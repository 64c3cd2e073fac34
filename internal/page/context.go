// Package page carries per-request page context from the listing page to
// the quick-view workflow. The widget forwards what it reads off the
// enclosing grid section (section ID and the section's upsell variant
// attribute) plus its own version, as one RFC 8941 structured header:
//
//	Quickview-Context: section="main-grid";upsell=40712345, widget="1.4.0"
//
// The section walk itself (nearest marked ancestor, else first in document)
// happens in the page; this service only consumes the result. An absent or
// malformed header degrades to an empty context, which leaves the upsell
// promotion inert for the request.
package page

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dunglas/httpsfv"

	"quickview-proxy/internal/upsell"
)

// HeaderName is the structured header the widget sends on every event.
const HeaderName = "Quickview-Context"

// Context is the parsed page context for one request.
type Context struct {
	// SectionID identifies the listing grid section that hosted the
	// trigger, for logging only.
	SectionID string

	// UpsellVariantID is the section's configured upsell variant, 0 when
	// absent or non-numeric (promotion inert).
	UpsellVariantID int64

	// WidgetVersion is the widget build that sent the event, e.g. "1.4.0".
	WidgetVersion string
}

// ParseHeader extracts the page context from a Quickview-Context header
// value (RFC 8941 Dictionary).
//
// Returns an error if the header is empty or malformed; callers decide
// whether that degrades (middleware) or fails (nothing currently does).
func ParseHeader(header string) (*Context, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return nil, errors.New("empty Quickview-Context header")
	}

	dict, err := httpsfv.UnmarshalDictionary([]string{header})
	if err != nil {
		return nil, fmt.Errorf("invalid Quickview-Context header: %w", err)
	}

	pc := &Context{}

	if member, ok := dict.Get("section"); ok {
		item, ok := member.(httpsfv.Item)
		if !ok {
			return nil, errors.New("section value must be an item")
		}
		if id, ok := item.Value.(string); ok {
			pc.SectionID = id
		}
		if raw, ok := item.Params.Get("upsell"); ok {
			pc.UpsellVariantID = upsellID(raw)
		}
	}

	if member, ok := dict.Get("widget"); ok {
		if item, ok := member.(httpsfv.Item); ok {
			if v, ok := item.Value.(string); ok {
				pc.WidgetVersion = v
			}
		}
	}

	return pc, nil
}

// upsellID normalizes the upsell parameter. Sections store the attribute as
// a string, so it may arrive as an sfv integer or a quoted string; anything
// non-numeric or non-positive leaves the promotion inert.
func upsellID(raw interface{}) int64 {
	switch v := raw.(type) {
	case int64:
		if v > 0 {
			return v
		}
	case string:
		if id, ok := upsell.ParseVariantID(v); ok {
			return id
		}
	}
	return 0
}

// === Request Context Plumbing ===

type contextKey struct{}

// NewContext returns a copy of parent carrying the page context.
func NewContext(parent context.Context, pc *Context) context.Context {
	return context.WithValue(parent, contextKey{}, pc)
}

// FromContext returns the page context attached by the middleware. Always
// non-nil: requests without a usable header get an empty context.
func FromContext(ctx context.Context) *Context {
	if pc, ok := ctx.Value(contextKey{}).(*Context); ok {
		return pc
	}
	return &Context{}
}
