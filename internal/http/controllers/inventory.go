package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/gomart/gomart/internal/http/errors"
	"github.com/gomart/gomart/internal/http/helpers"
	"github.com/gomart/gomart/internal/service"
)

// InventoryController expone los endpoints del catálogo de productos.
type InventoryController struct {
	svc *service.InventoryService
}

func NewInventoryController(svc *service.InventoryService) *InventoryController {
	return &InventoryController{svc: svc}
}

func (c *InventoryController) Create(w http.ResponseWriter, r *http.Request) {
	body, err := helpers.ReadJSON(r)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	helpers.WriteEnvelope(w, c.svc.CreateInventory(r.Context(), body))
}

func (c *InventoryController) ReadOne(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	helpers.WriteEnvelope(w, c.svc.ReadInventoryByID(r.Context(), id))
}

func (c *InventoryController) ReadAll(w http.ResponseWriter, r *http.Request) {
	helpers.WriteEnvelope(w, c.svc.ReadInventories(r.Context()))
}

func (c *InventoryController) ReadFiltered(w http.ResponseWriter, r *http.Request) {
	options := helpers.QueryOptions(r.URL.Query())
	helpers.WriteEnvelope(w, c.svc.ReadInventoriesByFilter(r.Context(), options))
}

// Search maneja GET /inventories/search?keyword=...&keys=name,description.
// keyword y keys son propios de la búsqueda; el resto de los query
// params sigue siendo filtro/paginación normal.
func (c *InventoryController) Search(w http.ResponseWriter, r *http.Request) {
	options := helpers.QueryOptions(r.URL.Query())
	keys, _ := options["keys"].(string)
	keyword, _ := options["keyword"].(string)
	delete(options, "keys")
	delete(options, "keyword")

	helpers.WriteEnvelope(w, c.svc.SearchInventories(r.Context(), keys, keyword, options))
}

func (c *InventoryController) UpdateOne(w http.ResponseWriter, r *http.Request) {
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
	helpers.WriteEnvelope(w, c.svc.UpdateInventoryByID(r.Context(), id, data))
}

func (c *InventoryController) UpdateMany(w http.ResponseWriter, r *http.Request) {
	data, err := helpers.ReadJSON(r)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	options := helpers.QueryOptions(r.URL.Query())
	helpers.WriteEnvelope(w, c.svc.UpdateInventories(r.Context(), options, data))
}

func (c *InventoryController) DeleteOne(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	helpers.WriteEnvelope(w, c.svc.DeleteInventoryByID(r.Context(), id))
}

func (c *InventoryController) DeleteMany(w http.ResponseWriter, r *http.Request) {
	options := helpers.QueryOptions(r.URL.Query())
	helpers.WriteEnvelope(w, c.svc.DeleteInventories(r.Context(), options))
}
