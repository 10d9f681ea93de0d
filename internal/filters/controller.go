package filters

import (
	"fmt"
	"net/url"

	pkgerrors "github.com/farmlinkhq/farmlink-backend/pkg/errors"
)

// Navigator owns the query string the controller operates on. In the web app
// this is the browser URL; in tests and server-side consumers it is whatever
// holds the current query. Passing it in explicitly keeps the controller free
// of process-wide state.
type Navigator interface {
	Query() url.Values
	Navigate(url.Values)
}

// Controller exposes read/update/clear operations over the externally owned
// query string. It keeps no filter state of its own: every read re-decodes
// the navigator's query, so State is never stale.
type Controller struct {
	nav      Navigator
	codec    Codec
	currency string
}

// NewController builds a controller bound to the given navigator.
func NewController(nav Navigator, codec Codec) (*Controller, error) {
	if nav == nil {
		return nil, fmt.Errorf("navigator required")
	}
	return &Controller{nav: nav, codec: codec, currency: "$"}, nil
}

// WithCurrency overrides the currency symbol used by Label.
func (c *Controller) WithCurrency(symbol string) *Controller {
	c.currency = symbol
	return c
}

// State decodes the current filter state from the navigator's query string.
func (c *Controller) State() State {
	state, err := c.codec.Decode(c.nav.Query())
	if err != nil {
		return DefaultState()
	}
	return state
}

// Update sets one field and writes the resulting query string back through
// the navigator. Changing any field other than page resets the page to 1.
// Unknown keys follow the codec policy: dropped under ignore, kept verbatim
// under preserve, rejected with a validation error under reject.
func (c *Controller) Update(key, value string) error {
	current := c.nav.Query()

	state, err := c.codec.Decode(current)
	if err != nil {
		return err
	}

	if !state.set(key, value) {
		switch c.codec.Unknown {
		case UnknownKeysReject:
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown filter parameter").
				WithDetails(map[string]any{"field": key})
		case UnknownKeysIgnore:
			return nil
		}
	}

	next := c.codec.Encode(state, key)
	if c.codec.Unknown == UnknownKeysPreserve {
		carryUnknownKeys(current, next)
		if !IsKnownKey(key) {
			if value == "" {
				next.Del(key)
			} else {
				next.Set(key, value)
			}
		}
	}

	c.nav.Navigate(next)
	return nil
}

// Clear resets every filter by navigating to the empty query string.
func (c *Controller) Clear() {
	next := url.Values{}
	if c.codec.Unknown == UnknownKeysPreserve {
		carryUnknownKeys(c.nav.Query(), next)
	}
	c.nav.Navigate(next)
}

// Remove clears a single filter. The price range is treated as one unit, and
// the product filter resets to its sentinel rather than an empty value.
func (c *Controller) Remove(key string) error {
	switch key {
	case "price":
		current := c.nav.Query()
		state, err := c.codec.Decode(current)
		if err != nil {
			return err
		}
		state.MinPrice = ""
		state.MaxPrice = ""
		next := c.codec.Encode(state, KeyMinPrice)
		if c.codec.Unknown == UnknownKeysPreserve {
			carryUnknownKeys(current, next)
		}
		c.nav.Navigate(next)
		return nil
	case KeyProduct:
		return c.Update(KeyProduct, AllProducts)
	default:
		return c.Update(key, "")
	}
}

// HasActiveFilters reports whether any filter is set on the current state.
func (c *Controller) HasActiveFilters() bool {
	return c.State().HasActiveFilters()
}

// ActiveFilterCount counts the active filters on the current state.
func (c *Controller) ActiveFilterCount() int {
	return c.State().ActiveFilterCount()
}

// Label renders the chip text shown for an active filter.
func (c *Controller) Label(key, value string) string {
	switch key {
	case KeySearch:
		return fmt.Sprintf("Search: %q", value)
	case KeyCategory:
		return "Category: " + value
	case KeyProduct:
		return "Product: " + value
	case KeyMinPrice:
		return "Min: " + c.currency + value
	case KeyMaxPrice:
		return "Max: " + c.currency + value
	case KeyMarket:
		return "Market: " + value
	}
	return value
}

func carryUnknownKeys(from, to url.Values) {
	for key, vals := range from {
		if IsKnownKey(key) {
			continue
		}
		for _, v := range vals {
			to.Add(key, v)
		}
	}
}
