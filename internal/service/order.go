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

// OrderService maneja las órdenes de compra.
type OrderService struct {
	gw      *gateway.Gateway[model.Order]
	emitter events.Emitter
	name    string
	log     *zap.Logger
}

func NewOrderService(deps Deps) *OrderService {
	return &OrderService{
		gw:      gateway.New[model.Order](deps.Store.Collection(model.CollectionOrder)),
		emitter: deps.Emitter,
		name:    "OrderService",
		log:     logger.Named("service.order"),
	}
}

// CreateOrder registra una orden y emite order.created.
func (s *OrderService) CreateOrder(ctx context.Context, body store.Document) response.Envelope {
	const op = "createOrder"

	if err := validation.CreateOrder(body); err != nil {
		return response.Fail(err.Error(), 400)
	}

	userID, _ := store.AsInt64(body["userId"])
	amount, _ := store.AsFloat64(body["amount"])
	order := model.Order{
		UserID:   userID,
		Products: body["products"].(map[string]any),
		Amount:   amount,
	}

	created, err := s.gw.CreateRecord(ctx, order)
	if err != nil {
		return failWith(s.name, op, err)
	}
	s.emitter.Emit("order.created", created)
	s.log.Info("order created", logger.RecordID(created.ID), logger.UserID(created.UserID))
	return response.FromSingleRead(created)
}

// ReadOrderByID devuelve una orden activa por id.
func (s *OrderService) ReadOrderByID(ctx context.Context, id int64) response.Envelope {
	const op = "readOrderById"
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

// ReadOrders lista las órdenes activas.
func (s *OrderService) ReadOrders(ctx context.Context) response.Envelope {
	const op = "readOrders"

	res, err := s.gw.ReadRecords(ctx, activeOnly(), "", "", false, 0, query.Build(nil).Limit)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromMultipleRead(res.Records)
}

// ReadOrdersByFilter lista órdenes según los query params crudos.
func (s *OrderService) ReadOrdersByFilter(ctx context.Context, options map[string]any) response.Envelope {
	const op = "readOrdersByFilter"

	result, err := readByFilter(ctx, s.gw, options, nil)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromMultipleRead(result)
}

// UpdateOrderByID aplica data a la orden id.
func (s *OrderService) UpdateOrderByID(ctx context.Context, id int64, data store.Document) response.Envelope {
	const op = "updateOrderById"
	if id <= 0 {
		return response.Fail("Invalid ID supplied.", 400)
	}

	out, err := s.gw.UpdateRecords(ctx, idConditions(id), data)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromUpdate(out, data, s.emitter, "order.updated")
}

// UpdateOrders aplica data a las órdenes que matcheen options.
func (s *OrderService) UpdateOrders(ctx context.Context, options map[string]any, data store.Document) response.Envelope {
	const op = "updateOrders"

	spec := query.Build(options)
	out, err := s.gw.UpdateRecords(ctx, spec.SeekConditions, data)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromUpdate(out, data, s.emitter, "order.updated")
}

// DeleteOrderByID hace soft-delete de la orden id.
func (s *OrderService) DeleteOrderByID(ctx context.Context, id int64) response.Envelope {
	const op = "deleteOrderById"
	if id <= 0 {
		return response.Fail("Invalid ID supplied.", 400)
	}
	out, err := s.gw.DeleteRecords(ctx, idConditions(id))
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromDelete(out)
}

// DeleteOrders hace soft-delete masivo según options.
func (s *OrderService) DeleteOrders(ctx context.Context, options map[string]any) response.Envelope {
	const op = "deleteOrders"

	spec := query.Build(options)
	out, err := s.gw.DeleteRecords(ctx, spec.SeekConditions)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromDelete(out)
}
