package service

import (
	"context"

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

// StoreService maneja las tiendas de los sellers.
type StoreService struct {
	gw      *gateway.Gateway[model.Store]
	emitter events.Emitter
	name    string
	log     *zap.Logger
}

func NewStoreService(deps Deps) *StoreService {
	return &StoreService{
		gw:      gateway.New[model.Store](deps.Store.Collection(model.CollectionStore)),
		emitter: deps.Emitter,
		name:    "StoreService",
		log:     logger.Named("service.store"),
	}
}

// CreateStore da de alta una tienda.
func (s *StoreService) CreateStore(ctx context.Context, body store.Document) response.Envelope {
	const op = "createStore"

	if err := validation.CreateStore(body); err != nil {
		return response.Fail(err.Error(), 400)
	}

	sellerID, _ := store.AsInt64(body["sellerId"])
	shop := model.Store{
		Name:        store.AsString(body["name"]),
		Description: store.AsString(body["description"]),
		SellerID:    sellerID,
	}

	created, err := s.gw.CreateRecord(ctx, shop)
	if err != nil {
		return failWith(s.name, op, err)
	}
	s.log.Info("store created", logger.RecordID(created.ID), logger.SellerID(created.SellerID))
	return response.FromSingleRead(created)
}

// ReadStoreByID devuelve una tienda activa por id.
func (s *StoreService) ReadStoreByID(ctx context.Context, id int64) response.Envelope {
	const op = "readStoreById"
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

// ReadStores lista las tiendas activas.
func (s *StoreService) ReadStores(ctx context.Context) response.Envelope {
	const op = "readStores"

	res, err := s.gw.ReadRecords(ctx, activeOnly(), "", "", false, 0, query.Build(nil).Limit)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromMultipleRead(res.Records)
}

// ReadStoresByFilter lista tiendas según los query params crudos.
func (s *StoreService) ReadStoresByFilter(ctx context.Context, options map[string]any) response.Envelope {
	const op = "readStoresByFilter"

	result, err := readByFilter(ctx, s.gw, options, nil)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromMultipleRead(result)
}

// UpdateStoreByID aplica data a la tienda id.
func (s *StoreService) UpdateStoreByID(ctx context.Context, id int64, data store.Document) response.Envelope {
	const op = "updateStoreById"
	if id <= 0 {
		return response.Fail("Invalid ID supplied.", 400)
	}
	if err := validation.UpdateStore(data); err != nil {
		return response.Fail(err.Error(), 400)
	}

	out, err := s.gw.UpdateRecords(ctx, idConditions(id), data)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromUpdate(out, data, s.emitter, "store.updated")
}

// UpdateStores aplica data a las tiendas que matcheen options.
func (s *StoreService) UpdateStores(ctx context.Context, options map[string]any, data store.Document) response.Envelope {
	const op = "updateStores"

	if err := validation.UpdateStore(data); err != nil {
		return response.Fail(err.Error(), 400)
	}
	spec := query.Build(options)
	out, err := s.gw.UpdateRecords(ctx, spec.SeekConditions, data)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromUpdate(out, data, s.emitter, "store.updated")
}

// DeleteStoreByID hace soft-delete de la tienda id.
func (s *StoreService) DeleteStoreByID(ctx context.Context, id int64) response.Envelope {
	const op = "deleteStoreById"
	if id <= 0 {
		return response.Fail("Invalid ID supplied.", 400)
	}
	out, err := s.gw.DeleteRecords(ctx, idConditions(id))
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromDelete(out)
}

// DeleteStores hace soft-delete masivo según options.
func (s *StoreService) DeleteStores(ctx context.Context, options map[string]any) response.Envelope {
	const op = "deleteStores"

	spec := query.Build(options)
	out, err := s.gw.DeleteRecords(ctx, spec.SeekConditions)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromDelete(out)
}
