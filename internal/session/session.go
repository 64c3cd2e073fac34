// Package session owns the quick-view session singleton: its open/close
// lifecycle, the page scroll lock, and the selection state the pickers
// mutate. Only one quick view is ever visible, so the manager holds exactly
// one session, created lazily and reused across opens.
package session

import (
	"errors"
	"sync"

	"quickview-proxy/internal/model"
	"quickview-proxy/internal/variant"
)

// State is the session lifecycle state.
type State string

const (
	StateClosed State = "closed"
	StateOpen   State = "open"
)

var (
	// ErrSuperseded reports that an open completed with a stale trigger
	// token and was discarded. A newer quick view owns the session.
	ErrSuperseded = errors.New("superseded by a newer quick view")

	// ErrClosed reports an operation that requires an open quick view.
	ErrClosed = errors.New("no quick view open")

	// ErrNoVariant reports an add with no resolved variant selection.
	ErrNoVariant = errors.New("no variant selected")
)

// Snapshot is the render state returned to the widget after every event.
type Snapshot struct {
	State          State             `json:"state"`
	Handle         string            `json:"handle,omitempty"`
	Title          string            `json:"title,omitempty"`
	Description    string            `json:"description,omitempty"`
	Image          string            `json:"image,omitempty"`
	Pickers        []variant.Picker  `json:"pickers,omitempty"`
	Selection      variant.Selection `json:"selection,omitempty"`
	VariantID      int64             `json:"variant_id,omitempty"` // 0 = unresolved
	VariantTitle   string            `json:"variant_title,omitempty"`
	Price          int64             `json:"price,omitempty"`
	PriceFormatted string            `json:"price_formatted,omitempty"`
	Available      bool              `json:"available,omitempty"`
	ScrollLocked   bool              `json:"scroll_locked"`
}

// session is the singleton's mutable content. Created once, then reset on
// every successful open; it never accumulates state from a prior product.
type session struct {
	product   *model.Product
	pickers   []variant.Picker
	selection variant.Selection
	variantID int64
}

// Manager coordinates the quick-view singleton. The page event loop is
// single-threaded, but this service is not, so all access goes through one
// mutex. Trigger tokens are issued monotonically: an open whose token is no
// longer the newest issued is discarded, making "last trigger wins"
// deterministic instead of a race on network timing.
type Manager struct {
	currency string
	locale   string

	mu           sync.Mutex
	issued       uint64 // newest trigger token handed out
	state        State
	scrollLocked bool
	sess         *session // lazily created, reused afterwards
}

// NewManager creates a session manager formatting prices in the given
// currency and locale.
func NewManager(currency, locale string) *Manager {
	return &Manager{
		currency: currency,
		locale:   locale,
		state:    StateClosed,
	}
}

// NextToken issues the trigger token for a new open. Call before starting
// the product fetch; pass the token to Open when the fetch resolves.
func (m *Manager) NextToken() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued++
	return m.issued
}

// Open renders the fetched product into the session and transitions to
// open. Replaces title, description, media, pickers, and selection
// wholesale, and seeds the selection from the first purchasable variant so
// the initial display matches what manual clicks through those values would
// produce. Applies the page scroll lock.
//
// Returns ErrSuperseded without touching the session if a newer trigger
// token has been issued since this open started.
func (m *Manager) Open(token uint64, p *model.Product) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token != m.issued {
		return nil, ErrSuperseded
	}

	m.ensure()
	pickers := variant.BuildPickers(p)
	sel, resolved := variant.SeedSelection(p, pickers)

	m.sess.product = p
	m.sess.pickers = pickers
	m.sess.selection = sel
	m.sess.variantID = 0
	if resolved != nil {
		m.sess.variantID = resolved.ID
	}

	m.state = StateOpen
	m.scrollLocked = true

	return m.snapshotLocked(), nil
}

// Select applies one picker choice: replaces any prior value for the option,
// re-resolves, and records the resolved variant when the selection now
// disambiguates one. An unresolved selection keeps the previously recorded
// variant, matching how the widget leaves price/title untouched until a
// match appears.
func (m *Manager) Select(option, value string) (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateOpen {
		return nil, ErrClosed
	}

	picker := m.pickerFor(option)
	if picker == nil {
		return nil, model.NewValidationError("option", "unknown option "+option)
	}
	if !picker.Contains(value) {
		return nil, model.NewValidationError("value", "no such value for "+option)
	}

	m.sess.selection[option] = value
	if resolved := variant.Resolve(m.sess.product, m.sess.selection); resolved != nil {
		m.sess.variantID = resolved.ID
	}

	return m.snapshotLocked(), nil
}

// CurrentVariant returns the variant recorded for the open session,
// for the add-to-cart flow. ErrClosed when no session is open; ErrNoVariant
// when the selection never resolved.
func (m *Manager) CurrentVariant() (*model.Variant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateOpen {
		return nil, ErrClosed
	}
	if m.sess.variantID == 0 {
		return nil, ErrNoVariant
	}
	for i := range m.sess.product.Variants {
		if m.sess.product.Variants[i].ID == m.sess.variantID {
			return &m.sess.product.Variants[i], nil
		}
	}
	return nil, ErrNoVariant
}

// Close transitions to closed and releases the scroll lock. Idempotent:
// closing a closed session is a no-op. The session content is kept for
// reuse; the next open replaces it.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateClosed
	m.scrollLocked = false
}

// Escape closes the session only if it is open, reporting whether a close
// happened. Escape on a closed session changes nothing.
func (m *Manager) Escape() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateOpen {
		return false
	}
	m.state = StateClosed
	m.scrollLocked = false
	return true
}

// Snapshot returns the current render state.
func (m *Manager) Snapshot() *Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// ScrollLocked reports whether the page scroll lock is applied.
func (m *Manager) ScrollLocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scrollLocked
}

// ensure lazily creates the singleton session content.
func (m *Manager) ensure() {
	if m.sess == nil {
		m.sess = &session{}
	}
}

func (m *Manager) pickerFor(option string) *variant.Picker {
	for i := range m.sess.pickers {
		if m.sess.pickers[i].Option == option {
			return &m.sess.pickers[i]
		}
	}
	return nil
}

// snapshotLocked builds a Snapshot. Caller holds m.mu.
func (m *Manager) snapshotLocked() *Snapshot {
	snap := &Snapshot{
		State:        m.state,
		ScrollLocked: m.scrollLocked,
	}
	if m.state != StateOpen || m.sess == nil || m.sess.product == nil {
		return snap
	}

	p := m.sess.product
	snap.Handle = p.Handle
	snap.Title = p.Title
	snap.Description = p.Description
	snap.Image = p.FeaturedImage
	if snap.Image == "" && len(p.Images) > 0 {
		snap.Image = p.Images[0]
	}
	snap.Pickers = m.sess.pickers
	snap.Selection = m.sess.selection.Clone()
	snap.VariantID = m.sess.variantID

	for i := range p.Variants {
		if p.Variants[i].ID == m.sess.variantID {
			v := &p.Variants[i]
			snap.VariantTitle = v.Title
			snap.Price = v.Price
			snap.PriceFormatted = model.FormatMinorUnits(v.Price, m.currency, m.locale)
			snap.Available = v.Available
			break
		}
	}

	return snap
}
