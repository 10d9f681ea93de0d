package filters

import (
	"net/url"
	"testing"
)

func TestDecodeEmptyQueryYieldsDefaults(t *testing.T) {
	state, err := Codec{}.Decode(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != DefaultState() {
		t.Fatalf("expected default state, got %+v", state)
	}
}

func TestDecodeReadsKnownKeys(t *testing.T) {
	values := url.Values{}
	values.Set("search", "tomato")
	values.Set("category", "veg-1")
	values.Set("minPrice", "10")
	values.Set("sortBy", "price")
	values.Set("sortOrder", "asc")
	values.Set("page", "3")
	values.Set("limit", "50")

	state, err := Codec{}.Decode(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state.Search != "tomato" || state.Category != "veg-1" || state.MinPrice != "10" {
		t.Fatalf("unexpected filter fields: %+v", state)
	}
	if state.SortBy != "price" || state.SortOrder != SortAsc {
		t.Fatalf("unexpected sort fields: %+v", state)
	}
	if state.Page != 3 || state.Limit != 50 {
		t.Fatalf("unexpected pagination: page=%d limit=%d", state.Page, state.Limit)
	}
	if state.Product != AllProducts || state.Market != "" {
		t.Fatalf("missing keys should keep defaults: %+v", state)
	}
}

func TestDecodeMalformedNumbersFallBack(t *testing.T) {
	cases := []struct {
		name      string
		key       string
		value     string
		wantPage  int
		wantLimit int
	}{
		{"nonNumericPage", "page", "abc", DefaultPage, DefaultLimit},
		{"negativePage", "page", "-2", DefaultPage, DefaultLimit},
		{"zeroPage", "page", "0", DefaultPage, DefaultLimit},
		{"nonNumericLimit", "limit", "lots", DefaultPage, DefaultLimit},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values := url.Values{}
			values.Set(tc.key, tc.value)
			state, err := Codec{}.Decode(values)
			if err != nil {
				t.Fatalf("malformed numbers must not fail decode: %v", err)
			}
			if state.Page != tc.wantPage || state.Limit != tc.wantLimit {
				t.Fatalf("expected page=%d limit=%d, got page=%d limit=%d", tc.wantPage, tc.wantLimit, state.Page, state.Limit)
			}
		})
	}
}

func TestDecodeInvalidSortOrderFallsBackToDesc(t *testing.T) {
	values := url.Values{}
	values.Set("sortOrder", "sideways")
	state, err := Codec{}.Decode(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.SortOrder != SortDesc {
		t.Fatalf("expected desc fallback, got %q", state.SortOrder)
	}
}

func TestDecodeUnknownKeyPolicies(t *testing.T) {
	values := url.Values{}
	values.Set("utm_source", "newsletter")
	values.Set("search", "kale")

	t.Run("ignore", func(t *testing.T) {
		state, err := Codec{Unknown: UnknownKeysIgnore}.Decode(values)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.Search != "kale" {
			t.Fatalf("known keys should still decode: %+v", state)
		}
	})

	t.Run("preserve", func(t *testing.T) {
		if _, err := (Codec{Unknown: UnknownKeysPreserve}).Decode(values); err != nil {
			t.Fatalf("preserve must not fail decode: %v", err)
		}
	})

	t.Run("reject", func(t *testing.T) {
		if _, err := (Codec{Unknown: UnknownKeysReject}).Decode(values); err == nil {
			t.Fatal("expected validation error for unknown key")
		}
	})
}

func TestEncodeOmitsDefaults(t *testing.T) {
	encoded := Codec{}.Encode(DefaultState(), "")
	if len(encoded) != 0 {
		t.Fatalf("default state must encode to the empty query string, got %v", encoded)
	}
}

func TestEncodeResetsPageWhenFilterChanges(t *testing.T) {
	state := DefaultState()
	state.Search = "basil"
	state.Page = 3

	encoded := Codec{}.Encode(state, KeySearch)
	if got := encoded.Get("page"); got != "1" {
		t.Fatalf("expected page reset to 1, got %q", got)
	}

	// Changing the page itself must not reset it.
	state = DefaultState()
	state.Page = 3
	encoded = Codec{}.Encode(state, KeyPage)
	if got := encoded.Get("page"); got != "3" {
		t.Fatalf("expected page to stick at 3, got %q", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	states := []State{
		DefaultState(),
		{Search: "carrot", Category: "veg-2", Product: AllProducts, MinPrice: "5", MaxPrice: "12.50", Market: "mkt-1", SortBy: "price", SortOrder: SortAsc, Page: 4, Limit: 50},
		{Category: AllCategories, Product: "prod-9", SortBy: DefaultSortBy, SortOrder: SortDesc, Page: 1, Limit: 20},
	}

	codec := Codec{}
	for _, want := range states {
		got, err := codec.Decode(codec.Encode(want, ""))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Fatalf("round trip mismatch:\n want %+v\n got  %+v", want, got)
		}
	}
}

func TestRoundTripNormalizesSentinels(t *testing.T) {
	// Encoding "all" then decoding must yield "all" again, never "".
	state := DefaultState()
	codec := Codec{}
	got, err := codec.Decode(codec.Encode(state, ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Category != AllCategories || got.Product != AllProducts {
		t.Fatalf("sentinels lost in round trip: %+v", got)
	}
}
