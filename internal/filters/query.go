package filters

import "strconv"

// ApiQuery is the backend-facing request derived from a State. Descending
// sorts are marked with a leading minus on the sort field; that wire
// convention is shared with the data layer and must not change.
type ApiQuery struct {
	Search    string   `json:"search,omitempty"`
	Category  string   `json:"category,omitempty"`
	ProductID string   `json:"productId,omitempty"`
	MinPrice  *float64 `json:"minPrice,omitempty"`
	MaxPrice  *float64 `json:"maxPrice,omitempty"`
	MarketID  string   `json:"marketId,omitempty"`
	Sort      string   `json:"sort"`
	Page      int      `json:"page"`
	Limit     int      `json:"limit"`
}

// BuildQuery derives the API request parameters from a filter state. It is a
// pure function: unset fields are omitted, sentinels are stripped, and price
// bounds are parsed to numbers (silently dropped when unparseable).
func BuildQuery(state State) ApiQuery {
	q := ApiQuery{
		Page:  state.Page,
		Limit: state.Limit,
	}

	if state.Search != "" {
		q.Search = state.Search
	}
	if state.Category != "" && state.Category != AllCategories {
		q.Category = state.Category
	}
	if state.Product != "" && state.Product != AllProducts {
		q.ProductID = state.Product
	}
	if state.MinPrice != "" {
		if v, err := strconv.ParseFloat(state.MinPrice, 64); err == nil {
			q.MinPrice = &v
		}
	}
	if state.MaxPrice != "" {
		if v, err := strconv.ParseFloat(state.MaxPrice, 64); err == nil {
			q.MaxPrice = &v
		}
	}
	if state.Market != "" {
		q.MarketID = state.Market
	}

	sortBy := state.SortBy
	if sortBy == "" {
		sortBy = DefaultSortBy
	}
	if state.SortOrder == SortAsc {
		q.Sort = sortBy
	} else {
		q.Sort = "-" + sortBy
	}

	return q
}
