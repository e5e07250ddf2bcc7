// Package helpers agrupa utilidades chicas de la capa HTTP: lectura de
// bodies JSON, escritura de envelopes y parseo de query params.
package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gomart/gomart/internal/response"
	"github.com/gomart/gomart/internal/store"
)

// maxBodyBytes limita el tamaño del body aceptado (1 MiB).
const maxBodyBytes = 1 << 20

// ReadJSON decodifica el body a un documento genérico.
// Rechaza bodies vacíos y JSON malformado.
func ReadJSON(r *http.Request) (store.Document, error) {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	var doc store.Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid json body: %w", err)
	}
	return doc, nil
}

// WriteJSON serializa v con el status dado.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteEnvelope escribe un envelope de service. El status HTTP sale del
// envelope mismo; sendRawResponse manda el payload pelado con el
// responseType declarado en lugar del envelope completo.
func WriteEnvelope(w http.ResponseWriter, env response.Envelope) {
	if env.SendRawResponse {
		ct := env.ResponseType
		if ct == "" {
			ct = "application/octet-stream"
		}
		w.Header().Set("Content-Type", ct)
		w.WriteHeader(env.Status)
		if b, ok := env.Payload.([]byte); ok {
			_, _ = w.Write(b)
			return
		}
		_, _ = fmt.Fprint(w, env.Payload)
		return
	}
	WriteJSON(w, env.Status, env)
}

// QueryOptions aplana los query params a un mapping de opciones: primer
// valor de cada clave, como strings (el query builder coerciona).
func QueryOptions(values url.Values) map[string]any {
	options := make(map[string]any, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			options[k] = vs[0]
		}
	}
	return options
}

// ParseID parsea el path param id a entero. 0 y negativos se rechazan
// en el service, acá solo se valida que sea numérico.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be an integer, got %q", raw)
	}
	return id, nil
}
