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

// CartService maneja los carritos de compra.
type CartService struct {
	gw      *gateway.Gateway[model.Cart]
	emitter events.Emitter
	name    string
	log     *zap.Logger
}

func NewCartService(deps Deps) *CartService {
	return &CartService{
		gw:      gateway.New[model.Cart](deps.Store.Collection(model.CollectionCart)),
		emitter: deps.Emitter,
		name:    "CartService",
		log:     logger.Named("service.cart"),
	}
}

// CreateCart da de alta un carrito para un usuario.
func (s *CartService) CreateCart(ctx context.Context, body store.Document) response.Envelope {
	const op = "createCart"

	if err := validation.CreateCart(body); err != nil {
		return response.Fail(err.Error(), 400)
	}

	userID, _ := store.AsInt64(body["userId"])
	cart := model.Cart{UserID: userID}
	if v, ok := body["products"].([]any); ok {
		cart.Products = v
	}

	created, err := s.gw.CreateRecord(ctx, cart)
	if err != nil {
		return failWith(s.name, op, err)
	}
	s.log.Info("cart created", logger.RecordID(created.ID), logger.UserID(created.UserID))
	return response.FromSingleRead(created)
}

// ReadCartByID devuelve un carrito activo por id.
func (s *CartService) ReadCartByID(ctx context.Context, id int64) response.Envelope {
	const op = "readCartById"
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

// ReadCarts lista los carritos activos.
func (s *CartService) ReadCarts(ctx context.Context) response.Envelope {
	const op = "readCarts"

	res, err := s.gw.ReadRecords(ctx, activeOnly(), "", "", false, 0, query.Build(nil).Limit)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromMultipleRead(res.Records)
}

// ReadCartsByFilter lista carritos según los query params crudos.
func (s *CartService) ReadCartsByFilter(ctx context.Context, options map[string]any) response.Envelope {
	const op = "readCartsByFilter"

	result, err := readByFilter(ctx, s.gw, options, nil)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromMultipleRead(result)
}

// UpdateCartByID aplica data al carrito id.
func (s *CartService) UpdateCartByID(ctx context.Context, id int64, data store.Document) response.Envelope {
	const op = "updateCartById"
	if id <= 0 {
		return response.Fail("Invalid ID supplied.", 400)
	}

	out, err := s.gw.UpdateRecords(ctx, idConditions(id), data)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromUpdate(out, data, s.emitter, "cart.updated")
}

// UpdateCarts aplica data a los carritos que matcheen options.
func (s *CartService) UpdateCarts(ctx context.Context, options map[string]any, data store.Document) response.Envelope {
	const op = "updateCarts"

	spec := query.Build(options)
	out, err := s.gw.UpdateRecords(ctx, spec.SeekConditions, data)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromUpdate(out, data, s.emitter, "cart.updated")
}

// DeleteCartByID hace soft-delete del carrito id.
func (s *CartService) DeleteCartByID(ctx context.Context, id int64) response.Envelope {
	const op = "deleteCartById"
	if id <= 0 {
		return response.Fail("Invalid ID supplied.", 400)
	}
	out, err := s.gw.DeleteRecords(ctx, idConditions(id))
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromDelete(out)
}

// DeleteCarts hace soft-delete masivo según options.
func (s *CartService) DeleteCarts(ctx context.Context, options map[string]any) response.Envelope {
	const op = "deleteCarts"

	spec := query.Build(options)
	out, err := s.gw.DeleteRecords(ctx, spec.SeekConditions)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromDelete(out)
}
