// Package cache provee un cache de lecturas best-effort con TTL.
// Lo usan los services de catálogo (categorías, inventario) para las
// listas calientes; nunca es fuente de verdad y no garantiza consistencia.
package cache

import "time"

// Cache es el contrato mínimo de un cache de bytes.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
}

// Config selecciona el backend.
type Config struct {
	Kind       string // "memory" | "redis" | "off"
	DefaultTTL time.Duration

	// Redis
	Addr   string
	DB     int
	Prefix string
}

// New construye el cache según config. "off" devuelve un noop.
func New(cfg Config) Cache {
	ttl := cfg.DefaultTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	switch cfg.Kind {
	case "redis":
		return newRedis(cfg.Addr, cfg.DB, cfg.Prefix)
	case "off":
		return Noop{}
	default:
		return newMemory(ttl)
	}
}

// Noop es un cache que no guarda nada.
type Noop struct{}

func (Noop) Get(string) ([]byte, bool)         { return nil, false }
func (Noop) Set(string, []byte, time.Duration) {}
func (Noop) Delete(string)                     {}
