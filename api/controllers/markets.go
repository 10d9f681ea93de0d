package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/farmlinkhq/farmlink-backend/api/responses"
	"github.com/farmlinkhq/farmlink-backend/api/validators"
	"github.com/farmlinkhq/farmlink-backend/internal/markets"
	"github.com/farmlinkhq/farmlink-backend/pkg/logger"
)

// ListMarkets serves the public market list used by storefront filters.
func ListMarkets(svc markets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listed, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

// GetMarket serves a single market.
func GetMarket(svc markets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		marketID, err := validators.ParsePathUUID(chi.URLParam(r, "marketId"), "marketId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		market, err := svc.GetByID(r.Context(), marketID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, market)
	}
}

// AdminCreateMarket inserts a market.
func AdminCreateMarket(svc markets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createMarketRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		market, err := svc.Create(r.Context(), markets.CreateMarketInput{
			Name:   payload.Name,
			City:   payload.City,
			Region: payload.Region,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, market)
	}
}

type createMarketRequest struct {
	Name   string  `json:"name" validate:"required"`
	City   string  `json:"city" validate:"required"`
	Region *string `json:"region,omitempty"`
}
