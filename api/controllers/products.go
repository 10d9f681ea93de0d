package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/farmlinkhq/farmlink-backend/api/responses"
	"github.com/farmlinkhq/farmlink-backend/api/validators"
	"github.com/farmlinkhq/farmlink-backend/internal/catalog"
	"github.com/farmlinkhq/farmlink-backend/internal/filters"
	pkgerrors "github.com/farmlinkhq/farmlink-backend/pkg/errors"
	"github.com/farmlinkhq/farmlink-backend/pkg/logger"
)

// BrowseProducts serves the public catalog. The raw query string goes
// through the filter codec, so the endpoint accepts exactly the parameters
// the storefront URL carries and applies the same defaults.
func BrowseProducts(svc catalog.Service, codec filters.Codec, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		state, err := codec.Decode(r.URL.Query())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Browse(r.Context(), filters.BuildQuery(state))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetProduct serves a single public product page.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}
