package filters

// Sentinel values representing "no filter set" on the wire. The front end
// encodes unset dropdowns as "all", so the wire format keeps them.
const (
	AllCategories = "all"
	AllProducts   = "all"
)

// Defaults for sort and pagination.
const (
	DefaultSortBy = "createdAt"
	DefaultPage   = 1
	DefaultLimit  = 20
)

// SortOrder is the catalog sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Field keys as they appear in the query string.
const (
	KeySearch    = "search"
	KeyCategory  = "category"
	KeyProduct   = "product"
	KeyMinPrice  = "minPrice"
	KeyMaxPrice  = "maxPrice"
	KeyMarket    = "market"
	KeySortBy    = "sortBy"
	KeySortOrder = "sortOrder"
	KeyPage      = "page"
	KeyLimit     = "limit"
)

// State is the canonical snapshot of the catalog filter, sort, and pagination
// values. It is always fully reconstructible from the query string alone:
// no other component holds filter state.
type State struct {
	Search    string
	Category  string
	Product   string
	MinPrice  string
	MaxPrice  string
	Market    string
	SortBy    string
	SortOrder SortOrder
	Page      int
	Limit     int
}

// DefaultState returns the state representing an empty query string.
func DefaultState() State {
	return State{
		Category:  AllCategories,
		Product:   AllProducts,
		SortBy:    DefaultSortBy,
		SortOrder: SortDesc,
		Page:      DefaultPage,
		Limit:     DefaultLimit,
	}
}

// HasActiveFilters reports whether any filter differs from its default.
// Sort and pagination never count as active.
func (s State) HasActiveFilters() bool {
	return s.ActiveFilterCount() > 0
}

// ActiveFilterCount counts active filters, with the price range counting as
// a single unit when either bound is set.
func (s State) ActiveFilterCount() int {
	count := 0
	if s.Search != "" {
		count++
	}
	if s.Category != AllCategories {
		count++
	}
	if s.Product != AllProducts {
		count++
	}
	if s.MinPrice != "" || s.MaxPrice != "" {
		count++
	}
	if s.Market != "" {
		count++
	}
	return count
}

// set assigns value to the field named by key, reporting whether the key is
// a known filter field. Numeric fields fall back to their defaults when the
// value does not parse.
func (s *State) set(key, value string) bool {
	switch key {
	case KeySearch:
		s.Search = value
	case KeyCategory:
		if value == "" {
			value = AllCategories
		}
		s.Category = value
	case KeyProduct:
		if value == "" {
			value = AllProducts
		}
		s.Product = value
	case KeyMinPrice:
		s.MinPrice = value
	case KeyMaxPrice:
		s.MaxPrice = value
	case KeyMarket:
		s.Market = value
	case KeySortBy:
		if value == "" {
			value = DefaultSortBy
		}
		s.SortBy = value
	case KeySortOrder:
		s.SortOrder = parseSortOrder(value)
	case KeyPage:
		s.Page = parsePositiveInt(value, DefaultPage)
	case KeyLimit:
		s.Limit = parsePositiveInt(value, DefaultLimit)
	default:
		return false
	}
	return true
}

func parseSortOrder(value string) SortOrder {
	if value == string(SortAsc) {
		return SortAsc
	}
	return SortDesc
}
