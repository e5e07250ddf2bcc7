package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/gomart/gomart/internal/http/errors"
	"github.com/gomart/gomart/internal/http/helpers"
	"github.com/gomart/gomart/internal/service"
)

// OrderController expone los endpoints de órdenes.
type OrderController struct {
	svc *service.OrderService
}

func NewOrderController(svc *service.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	body, err := helpers.ReadJSON(r)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	helpers.WriteEnvelope(w, c.svc.CreateOrder(r.Context(), body))
}

func (c *OrderController) ReadOne(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	helpers.WriteEnvelope(w, c.svc.ReadOrderByID(r.Context(), id))
}

func (c *OrderController) ReadAll(w http.ResponseWriter, r *http.Request) {
	helpers.WriteEnvelope(w, c.svc.ReadOrders(r.Context()))
}

func (c *OrderController) ReadFiltered(w http.ResponseWriter, r *http.Request) {
	options := helpers.QueryOptions(r.URL.Query())
	helpers.WriteEnvelope(w, c.svc.ReadOrdersByFilter(r.Context(), options))
}

func (c *OrderController) UpdateOne(w http.ResponseWriter, r *http.Request) {
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
	helpers.WriteEnvelope(w, c.svc.UpdateOrderByID(r.Context(), id, data))
}

func (c *OrderController) UpdateMany(w http.ResponseWriter, r *http.Request) {
	data, err := helpers.ReadJSON(r)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	options := helpers.QueryOptions(r.URL.Query())
	helpers.WriteEnvelope(w, c.svc.UpdateOrders(r.Context(), options, data))
}

func (c *OrderController) DeleteOne(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	helpers.WriteEnvelope(w, c.svc.DeleteOrderByID(r.Context(), id))
}

func (c *OrderController) DeleteMany(w http.ResponseWriter, r *http.Request) {
	options := helpers.QueryOptions(r.URL.Query())
	helpers.WriteEnvelope(w, c.svc.DeleteOrders(r.Context(), options))
}
