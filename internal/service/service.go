// Package service implementa los services por entidad. Cada service
// compone el gateway tipado de su entidad, el query builder, el
// normalizador de respuestas y su validador — composición explícita,
// sin jerarquías de herencia.
//
// Todo método es un único boundary de error: cualquier fallo interno se
// convierte en un envelope "[<Service>] <método>: <detalle>" con status
// 500; el cliente nunca ve un panic ni un stack trace.
package service

import (
	"context"
	"fmt"

	"github.com/gomart/gomart/internal/cache"
	"github.com/gomart/gomart/internal/events"
	"github.com/gomart/gomart/internal/query"
	"github.com/gomart/gomart/internal/response"
	"github.com/gomart/gomart/internal/security/password"
	"github.com/gomart/gomart/internal/security/token"
	"github.com/gomart/gomart/internal/store"
	"github.com/gomart/gomart/internal/store/gateway"
)

// Deps agrupa los colaboradores compartidos por todos los services.
type Deps struct {
	Store    store.Store
	Emitter  events.Emitter
	Cache    cache.Cache
	Tokens   *token.Issuer
	Password password.Params
}

// Services agrupa los services ya construidos, listos para el router.
type Services struct {
	User      *UserService
	Store     *StoreService
	Inventory *InventoryService
	Category  *CategoryService
	Cart      *CartService
	Order     *OrderService
}

// New construye todos los services sobre deps.
func New(deps Deps) *Services {
	return &Services{
		User:      NewUserService(deps),
		Store:     NewStoreService(deps),
		Inventory: NewInventoryService(deps),
		Category:  NewCategoryService(deps),
		Cart:      NewCartService(deps),
		Order:     NewOrderService(deps),
	}
}

// failWith arma el envelope de fallo interno con el contexto
// service+método, status 500.
func failWith(service, method string, err error) response.Envelope {
	return response.Fail(fmt.Sprintf("[%s] %s: %v", service, method, err), 500)
}

// activeOnly son las condiciones estándar de los listados.
func activeOnly() store.Conditions {
	return store.Conditions{
		store.FieldIsActive:  true,
		store.FieldIsDeleted: false,
	}
}

// readByFilter es el camino común de las lecturas filtradas: arma la
// spec desde las opciones crudas, mergea condiciones extra y ejecuta.
func readByFilter[T any](ctx context.Context, gw *gateway.Gateway[T], options map[string]any, extra store.Conditions) (any, error) {
	spec := query.Build(options)
	conds := spec.SeekConditions
	for k, v := range extra {
		conds[k] = v
	}

	res, err := gw.ReadRecords(ctx, conds, spec.FieldsToReturn, spec.SortCondition, spec.Count, spec.Skip, spec.Limit)
	if err != nil {
		return nil, err
	}
	if res.Count != nil {
		return map[string]int64{"count": *res.Count}, nil
	}
	return res.Records, nil
}

// idConditions arma las condiciones de un match por id secuencial.
func idConditions(id int64) store.Conditions {
	return store.Conditions{store.FieldID: id}
}
