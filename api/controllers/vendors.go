package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/farmlinkhq/farmlink-backend/api/responses"
	"github.com/farmlinkhq/farmlink-backend/api/validators"
	"github.com/farmlinkhq/farmlink-backend/internal/vendors"
	"github.com/farmlinkhq/farmlink-backend/pkg/logger"
)

// AdminRegisterVendor creates a vendor profile.
func AdminRegisterVendor(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload registerVendorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.Register(r.Context(), vendors.RegisterVendorInput{
			CompanyName: payload.CompanyName,
			ContactName: payload.ContactName,
			Email:       payload.Email,
			Phone:       payload.Phone,
			City:        payload.City,
			Region:      payload.Region,
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, vendor)
	}
}

// AdminListVendors lists vendor profiles; ?active=true narrows to active ones.
func AdminListVendors(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		activeOnly, err := validators.ParseQueryBool(r, "active", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, err := svc.List(r.Context(), activeOnly)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listed)
	}
}

// AdminGetVendor returns one vendor profile.
func AdminGetVendor(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := validators.ParsePathUUID(chi.URLParam(r, "vendorId"), "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.GetByID(r.Context(), vendorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vendor)
	}
}

// AdminUpdateVendor applies a partial update to a vendor profile.
func AdminUpdateVendor(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := validators.ParsePathUUID(chi.URLParam(r, "vendorId"), "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateVendorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.Update(r.Context(), vendorID, vendors.UpdateVendorInput{
			CompanyName: payload.CompanyName,
			ContactName: payload.ContactName,
			Phone:       payload.Phone,
			City:        payload.City,
			Region:      payload.Region,
			Description: payload.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vendor)
	}
}

// AdminSetVendorActive activates or deactivates a vendor.
func AdminSetVendorActive(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vendorID, err := validators.ParsePathUUID(chi.URLParam(r, "vendorId"), "vendorId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setVendorActiveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vendor, err := svc.SetActive(r.Context(), vendorID, *payload.Active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vendor)
	}
}

type registerVendorRequest struct {
	CompanyName string  `json:"company_name" validate:"required"`
	ContactName *string `json:"contact_name,omitempty"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       *string `json:"phone,omitempty"`
	City        *string `json:"city,omitempty"`
	Region      *string `json:"region,omitempty"`
	Description *string `json:"description,omitempty"`
}

type updateVendorRequest struct {
	CompanyName *string `json:"company_name,omitempty"`
	ContactName *string `json:"contact_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	City        *string `json:"city,omitempty"`
	Region      *string `json:"region,omitempty"`
	Description *string `json:"description,omitempty"`
}

type setVendorActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}
