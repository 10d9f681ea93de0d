package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/farmlinkhq/farmlink-backend/api/responses"
	"github.com/farmlinkhq/farmlink-backend/api/validators"
	"github.com/farmlinkhq/farmlink-backend/internal/categories"
	pkgerrors "github.com/farmlinkhq/farmlink-backend/pkg/errors"
	"github.com/farmlinkhq/farmlink-backend/pkg/logger"
)

// ListCategories serves the public category tree used by storefront filters.
func ListCategories(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listed, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

// AdminCreateCategory inserts a category.
func AdminCreateCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := categories.CreateCategoryInput{
			Name: payload.Name,
			Slug: payload.Slug,
		}
		if payload.ParentID != nil {
			parentID, err := uuid.Parse(*payload.ParentID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid parent_id"))
				return
			}
			input.ParentID = &parentID
		}

		category, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, category)
	}
}

// AdminUpdateCategory renames or reparents a category.
func AdminUpdateCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParsePathUUID(chi.URLParam(r, "categoryId"), "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := categories.UpdateCategoryInput{Name: payload.Name}
		if payload.ParentID != nil {
			parentID, err := uuid.Parse(*payload.ParentID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid parent_id"))
				return
			}
			input.ParentID = &parentID
		}

		category, err := svc.Update(r.Context(), categoryID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, category)
	}
}

// AdminDeleteCategory removes an empty category.
func AdminDeleteCategory(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParsePathUUID(chi.URLParam(r, "categoryId"), "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), categoryID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type createCategoryRequest struct {
	Name     string  `json:"name" validate:"required"`
	Slug     string  `json:"slug" validate:"required"`
	ParentID *string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
}

type updateCategoryRequest struct {
	Name     *string `json:"name,omitempty"`
	ParentID *string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
}
