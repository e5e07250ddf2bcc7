// Package events provee el sink de notificaciones fire-and-forget que el
// normalizador de respuestas dispara en updates exitosos.
//
// Backends:
//   - log:   registra el evento con zap (default)
//   - redis: publica el evento como JSON en un canal pub/sub
//   - noop:  descarta todo
//
// Emit nunca bloquea al caller ni propaga errores: la entrega es best-effort.
package events

import (
	"context"
	"encoding/json"
	"time"

	rdb "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/gomart/gomart/internal/observability/logger"
)

// Emitter es el contrato del sink de eventos.
type Emitter interface {
	Emit(event string, payload any)
}

// Config selecciona el backend.
type Config struct {
	Kind    string // "log" | "redis" | "noop"
	Addr    string // redis addr
	DB      int
	Channel string // canal pub/sub; default "gomart.events"
}

// New construye el emitter según config.
func New(cfg Config) Emitter {
	switch cfg.Kind {
	case "redis":
		ch := cfg.Channel
		if ch == "" {
			ch = "gomart.events"
		}
		return &redisEmitter{
			client:  rdb.NewClient(&rdb.Options{Addr: cfg.Addr, DB: cfg.DB}),
			channel: ch,
			log:     logger.Named("events.redis"),
		}
	case "noop":
		return Noop{}
	default:
		return &logEmitter{log: logger.Named("events")}
	}
}

// Noop descarta todos los eventos.
type Noop struct{}

func (Noop) Emit(string, any) {}

type logEmitter struct {
	log *zap.Logger
}

func (e *logEmitter) Emit(event string, payload any) {
	e.log.Info("event emitted", logger.Event(event), logger.Any("payload", payload))
}

type redisEmitter struct {
	client  *rdb.Client
	channel string
	log     *zap.Logger
}

type envelope struct {
	Event   string    `json:"event"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload"`
}

func (e *redisEmitter) Emit(event string, payload any) {
	// Fire-and-forget: no bloquear el request por el broker.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		raw, err := json.Marshal(envelope{Event: event, At: time.Now().UTC(), Payload: payload})
		if err != nil {
			e.log.Warn("event marshal failed", logger.Event(event), logger.Err(err))
			return
		}
		if err := e.client.Publish(ctx, e.channel, raw).Err(); err != nil {
			e.log.Warn("event publish failed", logger.Event(event), logger.Err(err))
		}
	}()
}
