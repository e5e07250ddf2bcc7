// Package http arma la superficie REST: router, métricas y servidor.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gomart/gomart/internal/domain/model"
	"github.com/gomart/gomart/internal/http/controllers"
	httperrors "github.com/gomart/gomart/internal/http/errors"
	"github.com/gomart/gomart/internal/http/middlewares"
	"github.com/gomart/gomart/internal/rate"
	"github.com/gomart/gomart/internal/security/token"
	"github.com/gomart/gomart/internal/service"
	"github.com/gomart/gomart/internal/store"
)

// RouterConfig agrupa lo que necesita el router para armarse.
type RouterConfig struct {
	Services *service.Services
	Store    store.Store
	Issuer   *token.Issuer

	CORSOrigins     []string
	MetricsRegistry prometheus.Registerer

	// LoginLimiter protege registro y login; nil lo desactiva
	LoginLimiter rate.Limiter
}

// NewRouter arma el chi.Mux completo con middlewares globales, guards
// por rol y todas las rutas de entidades.
//
// Convención de rutas por entidad:
//
//	POST   /<entidad>           crear
//	GET    /<entidad>           listar activos
//	GET    /<entidad>/filter    listar con filtros/paginación
//	GET    /<entidad>/{id}      leer uno
//	PUT    /<entidad>/{id}      update individual
//	PUT    /<entidad>           update masivo (filtro en query params)
//	DELETE /<entidad>/{id}      soft-delete individual
//	DELETE /<entidad>           soft-delete masivo
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	metricsHandler := RegisterMetrics(cfg.MetricsRegistry)

	// Middlewares globales, de afuera hacia adentro
	r.Use(middlewares.WithRequestID())
	r.Use(middlewares.WithRecover())
	r.Use(middlewares.WithLogging())
	r.Use(withMetrics(routePattern))
	r.Use(middlewares.WithCORS(middlewares.DefaultCORS(cfg.CORSOrigins)))

	requireAuth := middlewares.RequireAuth(cfg.Issuer)
	adminOnly := middlewares.RequireRole(model.RoleAdmin)
	sellerOrAdmin := middlewares.RequireRole(model.RoleSeller, model.RoleAdmin)

	// --- Infraestructura ---
	health := controllers.NewHealthController(cfg.Store)
	r.Get("/healthz", health.Live)
	r.Get("/readyz", health.Ready)
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrNotFound)
	})

	// --- Usuarios ---
	user := controllers.NewUserController(cfg.Services.User)
	r.Route("/users", func(r chi.Router) {
		// Registro y login son públicos, pero con rate limit por IP
		limited := middlewares.WithRateLimit(cfg.LoginLimiter)
		r.With(limited).Post("/", user.Create)
		r.With(limited).Post("/login", user.Login)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/{id}", user.ReadOne)
			r.Put("/{id}", user.UpdateOne)
			r.Delete("/{id}", user.DeleteOne)
		})

		// Listados y operaciones masivas solo para admin
		r.Group(func(r chi.Router) {
			r.Use(requireAuth, adminOnly)
			r.Get("/", user.ReadAll)
			r.Get("/filter", user.ReadFiltered)
			r.Put("/", user.UpdateMany)
			r.Delete("/", user.DeleteMany)
		})
	})

	// --- Tiendas ---
	shop := controllers.NewStoreController(cfg.Services.Store)
	r.Route("/stores", func(r chi.Router) {
		r.Get("/", shop.ReadAll)
		r.Get("/filter", shop.ReadFiltered)
		r.Get("/{id}", shop.ReadOne)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, sellerOrAdmin)
			r.Post("/", shop.Create)
			r.Put("/{id}", shop.UpdateOne)
			r.Put("/", shop.UpdateMany)
			r.Delete("/{id}", shop.DeleteOne)
			r.Delete("/", shop.DeleteMany)
		})
	})

	// --- Inventario ---
	inventory := controllers.NewInventoryController(cfg.Services.Inventory)
	r.Route("/inventories", func(r chi.Router) {
		r.Get("/", inventory.ReadAll)
		r.Get("/filter", inventory.ReadFiltered)
		r.Get("/search", inventory.Search)
		r.Get("/{id}", inventory.ReadOne)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, sellerOrAdmin)
			r.Post("/", inventory.Create)
			r.Put("/{id}", inventory.UpdateOne)
			r.Put("/", inventory.UpdateMany)
			r.Delete("/{id}", inventory.DeleteOne)
			r.Delete("/", inventory.DeleteMany)
		})
	})

	// --- Categorías ---
	category := controllers.NewCategoryController(cfg.Services.Category)
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", category.ReadAll)
		r.Get("/filter", category.ReadFiltered)
		r.Get("/{id}", category.ReadOne)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth, adminOnly)
			r.Post("/", category.Create)
			r.Put("/{id}", category.UpdateOne)
			r.Put("/", category.UpdateMany)
			r.Delete("/{id}", category.DeleteOne)
			r.Delete("/", category.DeleteMany)
		})
	})

	// --- Carritos ---
	cart := controllers.NewCartController(cfg.Services.Cart)
	r.Route("/carts", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", cart.Create)
		r.Get("/", cart.ReadAll)
		r.Get("/filter", cart.ReadFiltered)
		r.Get("/{id}", cart.ReadOne)
		r.Put("/{id}", cart.UpdateOne)
		r.Put("/", cart.UpdateMany)
		r.Delete("/{id}", cart.DeleteOne)
		r.Delete("/", cart.DeleteMany)
	})

	// --- Órdenes ---
	order := controllers.NewOrderController(cfg.Services.Order)
	r.Route("/orders", func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/", order.Create)
		r.Get("/", order.ReadAll)
		r.Get("/filter", order.ReadFiltered)
		r.Get("/{id}", order.ReadOne)
		r.Put("/{id}", order.UpdateOne)

		// Las masivas sobre órdenes son operación administrativa
		r.Group(func(r chi.Router) {
			r.Use(adminOnly)
			r.Put("/", order.UpdateMany)
			r.Delete("/{id}", order.DeleteOne)
			r.Delete("/", order.DeleteMany)
		})
	})

	return r
}

// routePattern devuelve el patrón chi de la ruta para los labels de
// métricas (cardinalidad acotada).
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
