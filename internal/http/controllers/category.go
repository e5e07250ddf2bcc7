package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/gomart/gomart/internal/http/errors"
	"github.com/gomart/gomart/internal/http/helpers"
	"github.com/gomart/gomart/internal/service"
)

// CategoryController expone los endpoints de categorías.
type CategoryController struct {
	svc *service.CategoryService
}

func NewCategoryController(svc *service.CategoryService) *CategoryController {
	return &CategoryController{svc: svc}
}

func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	body, err := helpers.ReadJSON(r)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	helpers.WriteEnvelope(w, c.svc.CreateCategory(r.Context(), body))
}

func (c *CategoryController) ReadOne(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	helpers.WriteEnvelope(w, c.svc.ReadCategoryByID(r.Context(), id))
}

func (c *CategoryController) ReadAll(w http.ResponseWriter, r *http.Request) {
	helpers.WriteEnvelope(w, c.svc.ReadCategories(r.Context()))
}

func (c *CategoryController) ReadFiltered(w http.ResponseWriter, r *http.Request) {
	options := helpers.QueryOptions(r.URL.Query())
	helpers.WriteEnvelope(w, c.svc.ReadCategoriesByFilter(r.Context(), options))
}

func (c *CategoryController) UpdateOne(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	data, err := helpers.ReadJSON(r)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	helpers.WriteEnvelope(w, c.svc.UpdateCategoryByID(r.Context(), id, data))
}

func (c *CategoryController) UpdateMany(w http.ResponseWriter, r *http.Request) {
	data, err := helpers.ReadJSON(r)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	options := helpers.QueryOptions(r.URL.Query())
	helpers.WriteEnvelope(w, c.svc.UpdateCategories(r.Context(), options, data))
}

func (c *CategoryController) DeleteOne(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	helpers.WriteEnvelope(w, c.svc.DeleteCategoryByID(r.Context(), id))
}

func (c *CategoryController) DeleteMany(w http.ResponseWriter, r *http.Request) {
	options := helpers.QueryOptions(r.URL.Query())
	helpers.WriteEnvelope(w, c.svc.DeleteCategories(r.Context(), options))
}
