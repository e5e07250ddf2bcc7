package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/gomart/gomart/internal/domain/model"
	"github.com/gomart/gomart/internal/events"
	"github.com/gomart/gomart/internal/observability/logger"
	"github.com/gomart/gomart/internal/query"
	"github.com/gomart/gomart/internal/response"
	"github.com/gomart/gomart/internal/store"
	"github.com/gomart/gomart/internal/store/gateway"
	"github.com/gomart/gomart/internal/validation"
)

// searchableInventoryFields son los campos sobre los que opera la
// búsqueda por keyword cuando el cliente no pide otros.
const searchableInventoryFields = "name,description"

// InventoryService maneja el catálogo de productos.
type InventoryService struct {
	gw      *gateway.Gateway[model.Inventory]
	emitter events.Emitter
	name    string
	log     *zap.Logger
}

func NewInventoryService(deps Deps) *InventoryService {
	return &InventoryService{
		gw:      gateway.New[model.Inventory](deps.Store.Collection(model.CollectionInventory)),
		emitter: deps.Emitter,
		name:    "InventoryService",
		log:     logger.Named("service.inventory"),
	}
}

// CreateInventory publica un producto.
func (s *InventoryService) CreateInventory(ctx context.Context, body store.Document) response.Envelope {
	const op = "createInventory"

	if err := validation.CreateInventory(body); err != nil {
		return response.Fail(err.Error(), 400)
	}

	sellerID, _ := store.AsInt64(body["sellerId"])
	categoryID, _ := store.AsInt64(body["categoryId"])
	quantity, _ := store.AsInt64(body["quantity"])
	price, _ := store.AsFloat64(body["price"])

	item := model.Inventory{
		SellerID:    sellerID,
		CategoryID:  categoryID,
		Name:        store.AsString(body["name"]),
		Description: store.AsString(body["description"]),
		Quantity:    quantity,
		Price:       price,
	}

	created, err := s.gw.CreateRecord(ctx, item)
	if err != nil {
		return failWith(s.name, op, err)
	}
	s.log.Info("inventory created", logger.RecordID(created.ID), logger.SellerID(created.SellerID))
	return response.FromSingleRead(created)
}

// ReadInventoryByID devuelve un producto activo por id.
func (s *InventoryService) ReadInventoryByID(ctx context.Context, id int64) response.Envelope {
	const op = "readInventoryById"
	if id <= 0 {
		return response.Fail("Invalid ID supplied.", 400)
	}

	conds := idConditions(id)
	conds[store.FieldIsActive] = true
	res, err := s.gw.ReadRecords(ctx, conds, "", "", false, 0, 1)
	if err != nil {
		return failWith(s.name, op, err)
	}
	if len(res.Records) == 0 {
		return response.Fail("Resource not found", 404)
	}
	return response.FromSingleRead(res.Records[0])
}

// ReadInventories lista los productos activos.
func (s *InventoryService) ReadInventories(ctx context.Context) response.Envelope {
	const op = "readInventories"

	res, err := s.gw.ReadRecords(ctx, activeOnly(), "", "", false, 0, query.Build(nil).Limit)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromMultipleRead(res.Records)
}

// ReadInventoriesByFilter lista productos según los query params crudos.
func (s *InventoryService) ReadInventoriesByFilter(ctx context.Context, options map[string]any) response.Envelope {
	const op = "readInventoriesByFilter"

	result, err := readByFilter(ctx, s.gw, options, nil)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromMultipleRead(result)
}

// SearchInventories busca por keyword con regex case-insensitive sobre
// los campos pedidos en keys (default name,description). El resto de
// options sigue el camino normal del query builder.
func (s *InventoryService) SearchInventories(ctx context.Context, keys, keyword string, options map[string]any) response.Envelope {
	const op = "searchInventories"

	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return response.Fail("keyword is required", 400)
	}
	if strings.TrimSpace(keys) == "" {
		keys = searchableInventoryFields
	}

	wildcard := query.BuildWildcardOptions(keys, keyword)
	result, err := readByFilter(ctx, s.gw, options, wildcard)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromMultipleRead(result)
}

// UpdateInventoryByID aplica data al producto id.
func (s *InventoryService) UpdateInventoryByID(ctx context.Context, id int64, data store.Document) response.Envelope {
	const op = "updateInventoryById"
	if id <= 0 {
		return response.Fail("Invalid ID supplied.", 400)
	}
	if err := validation.UpdateInventory(data); err != nil {
		return response.Fail(err.Error(), 400)
	}

	out, err := s.gw.UpdateRecords(ctx, idConditions(id), data)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromUpdate(out, data, s.emitter, "inventory.updated")
}

// UpdateInventories aplica data a los productos que matcheen options.
func (s *InventoryService) UpdateInventories(ctx context.Context, options map[string]any, data store.Document) response.Envelope {
	const op = "updateInventories"

	if err := validation.UpdateInventory(data); err != nil {
		return response.Fail(err.Error(), 400)
	}
	spec := query.Build(options)
	out, err := s.gw.UpdateRecords(ctx, spec.SeekConditions, data)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromUpdate(out, data, s.emitter, "inventory.updated")
}

// DeleteInventoryByID hace soft-delete del producto id.
func (s *InventoryService) DeleteInventoryByID(ctx context.Context, id int64) response.Envelope {
	const op = "deleteInventoryById"
	if id <= 0 {
		return response.Fail("Invalid ID supplied.", 400)
	}
	out, err := s.gw.DeleteRecords(ctx, idConditions(id))
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromDelete(out)
}

// DeleteInventories hace soft-delete masivo según options.
func (s *InventoryService) DeleteInventories(ctx context.Context, options map[string]any) response.Envelope {
	const op = "deleteInventories"

	spec := query.Build(options)
	out, err := s.gw.DeleteRecords(ctx, spec.SeekConditions)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromDelete(out)
}
