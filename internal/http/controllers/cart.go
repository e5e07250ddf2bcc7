package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/gomart/gomart/internal/http/errors"
	"github.com/gomart/gomart/internal/http/helpers"
	"github.com/gomart/gomart/internal/service"
)

// CartController expone los endpoints de carritos.
type CartController struct {
	svc *service.CartService
}

func NewCartController(svc *service.CartService) *CartController {
	return &CartController{svc: svc}
}

func (c *CartController) Create(w http.ResponseWriter, r *http.Request) {
	body, err := helpers.ReadJSON(r)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	helpers.WriteEnvelope(w, c.svc.CreateCart(r.Context(), body))
}

func (c *CartController) ReadOne(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	helpers.WriteEnvelope(w, c.svc.ReadCartByID(r.Context(), id))
}

func (c *CartController) ReadAll(w http.ResponseWriter, r *http.Request) {
	helpers.WriteEnvelope(w, c.svc.ReadCarts(r.Context()))
}

func (c *CartController) ReadFiltered(w http.ResponseWriter, r *http.Request) {
	options := helpers.QueryOptions(r.URL.Query())
	helpers.WriteEnvelope(w, c.svc.ReadCartsByFilter(r.Context(), options))
}

func (c *CartController) UpdateOne(w http.ResponseWriter, r *http.Request) {
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
	helpers.WriteEnvelope(w, c.svc.UpdateCartByID(r.Context(), id, data))
}

func (c *CartController) UpdateMany(w http.ResponseWriter, r *http.Request) {
	data, err := helpers.ReadJSON(r)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	options := helpers.QueryOptions(r.URL.Query())
	helpers.WriteEnvelope(w, c.svc.UpdateCarts(r.Context(), options, data))
}

func (c *CartController) DeleteOne(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	helpers.WriteEnvelope(w, c.svc.DeleteCartByID(r.Context(), id))
}

func (c *CartController) DeleteMany(w http.ResponseWriter, r *http.Request) {
	options := helpers.QueryOptions(r.URL.Query())
	helpers.WriteEnvelope(w, c.svc.DeleteCarts(r.Context(), options))
}
