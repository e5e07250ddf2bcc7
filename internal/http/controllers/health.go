package controllers

import (
	"net/http"

	"github.com/gomart/gomart/internal/http/helpers"
	"github.com/gomart/gomart/internal/store"
)

// HealthController expone el estado del proceso y del storage.
type HealthController struct {
	st store.Store
}

func NewHealthController(st store.Store) *HealthController {
	return &HealthController{st: st}
}

// Live responde 200 mientras el proceso esté vivo.
func (c *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready responde 200 solo si el storage contesta el ping.
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	if err := c.st.Ping(r.Context()); err != nil {
		helpers.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"detail": err.Error(),
		})
		return
	}
	helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
