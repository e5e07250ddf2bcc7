package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/gomart/gomart/internal/http/errors"
	"github.com/gomart/gomart/internal/http/helpers"
	"github.com/gomart/gomart/internal/service"
)

// StoreController expone los endpoints de tiendas.
type StoreController struct {
	svc *service.StoreService
}

func NewStoreController(svc *service.StoreService) *StoreController {
	return &StoreController{svc: svc}
}

func (c *StoreController) Create(w http.ResponseWriter, r *http.Request) {
	body, err := helpers.ReadJSON(r)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	helpers.WriteEnvelope(w, c.svc.CreateStore(r.Context(), body))
}

func (c *StoreController) ReadOne(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	helpers.WriteEnvelope(w, c.svc.ReadStoreByID(r.Context(), id))
}

func (c *StoreController) ReadAll(w http.ResponseWriter, r *http.Request) {
	helpers.WriteEnvelope(w, c.svc.ReadStores(r.Context()))
}

func (c *StoreController) ReadFiltered(w http.ResponseWriter, r *http.Request) {
	options := helpers.QueryOptions(r.URL.Query())
	helpers.WriteEnvelope(w, c.svc.ReadStoresByFilter(r.Context(), options))
}

func (c *StoreController) UpdateOne(w http.ResponseWriter, r *http.Request) {
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
	helpers.WriteEnvelope(w, c.svc.UpdateStoreByID(r.Context(), id, data))
}

func (c *StoreController) UpdateMany(w http.ResponseWriter, r *http.Request) {
	data, err := helpers.ReadJSON(r)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	options := helpers.QueryOptions(r.URL.Query())
	helpers.WriteEnvelope(w, c.svc.UpdateStores(r.Context(), options, data))
}

func (c *StoreController) DeleteOne(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	helpers.WriteEnvelope(w, c.svc.DeleteStoreByID(r.Context(), id))
}

func (c *StoreController) DeleteMany(w http.ResponseWriter, r *http.Request) {
	options := helpers.QueryOptions(r.URL.Query())
	helpers.WriteEnvelope(w, c.svc.DeleteStores(r.Context(), options))
}
