package filters

import (
	"net/url"
	"strconv"

	pkgerrors "github.com/farmlinkhq/farmlink-backend/pkg/errors"
)

// UnknownKeyPolicy controls how the codec treats query parameters that are
// not filter fields.
type UnknownKeyPolicy int

const (
	// UnknownKeysIgnore drops unknown parameters on decode and encode.
	UnknownKeysIgnore UnknownKeyPolicy = iota
	// UnknownKeysPreserve carries unknown parameters through untouched.
	UnknownKeysPreserve
	// UnknownKeysReject fails decoding when an unknown parameter is present.
	UnknownKeysReject
)

var knownKeys = map[string]struct{}{
	KeySearch:    {},
	KeyCategory:  {},
	KeyProduct:   {},
	KeyMinPrice:  {},
	KeyMaxPrice:  {},
	KeyMarket:    {},
	KeySortBy:    {},
	KeySortOrder: {},
	KeyPage:      {},
	KeyLimit:     {},
}

// Codec maps State to and from its query-string representation.
type Codec struct {
	Unknown UnknownKeyPolicy
}

// Decode reads a State from query parameters. Missing keys take their
// defaults and malformed numeric values fall back rather than failing, so
// decoding only errors under UnknownKeysReject.
func (c Codec) Decode(values url.Values) (State, error) {
	state := DefaultState()
	for key := range values {
		if _, ok := knownKeys[key]; !ok {
			if c.Unknown == UnknownKeysReject {
				return DefaultState(), pkgerrors.New(pkgerrors.CodeValidation, "unknown filter parameter").
					WithDetails(map[string]any{"field": key})
			}
			continue
		}
		state.set(key, values.Get(key))
	}
	return state, nil
}

// Encode serializes a State, omitting every field equal to its default or
// sentinel so the query string stays minimal. When changedKey names a field
// other than page, the page is reset to 1 and written explicitly: changing
// any filter always lands the user back on the first page.
func (c Codec) Encode(state State, changedKey string) url.Values {
	resetPage := changedKey != "" && changedKey != KeyPage
	if resetPage {
		state.Page = DefaultPage
	}

	values := url.Values{}
	if state.Search != "" {
		values.Set(KeySearch, state.Search)
	}
	if state.Category != "" && state.Category != AllCategories {
		values.Set(KeyCategory, state.Category)
	}
	if state.Product != "" && state.Product != AllProducts {
		values.Set(KeyProduct, state.Product)
	}
	if state.MinPrice != "" {
		values.Set(KeyMinPrice, state.MinPrice)
	}
	if state.MaxPrice != "" {
		values.Set(KeyMaxPrice, state.MaxPrice)
	}
	if state.Market != "" {
		values.Set(KeyMarket, state.Market)
	}
	if state.SortBy != "" && state.SortBy != DefaultSortBy {
		values.Set(KeySortBy, state.SortBy)
	}
	if state.SortOrder != "" && state.SortOrder != SortDesc {
		values.Set(KeySortOrder, string(state.SortOrder))
	}
	if state.Page != DefaultPage || resetPage {
		values.Set(KeyPage, strconv.Itoa(state.Page))
	}
	if state.Limit != 0 && state.Limit != DefaultLimit {
		values.Set(KeyLimit, strconv.Itoa(state.Limit))
	}
	return values
}

// IsKnownKey reports whether key is a filter field.
func IsKnownKey(key string) bool {
	_, ok := knownKeys[key]
	return ok
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
