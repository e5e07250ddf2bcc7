// Package response normaliza los resultados del gateway al envelope
// uniforme {payload, error, status, responseType, sendRawResponse} que
// devuelven todos los services. Funciones puras de mapeo, sin I/O; la
// única excepción es la notificación fire-and-forget de FromUpdate.
package response

import (
	"github.com/gomart/gomart/internal/events"
	"github.com/gomart/gomart/internal/store"
)

// Envelope es la respuesta uniforme de todo método de service.
// Exactamente uno de Payload / Error es significativo.
type Envelope struct {
	Payload         any    `json:"payload"`
	Error           string `json:"error,omitempty"`
	Status          int    `json:"status"`
	ResponseType    string `json:"responseType,omitempty"`
	SendRawResponse bool   `json:"sendRawResponse,omitempty"`
}

// Identifiable lo implementa todo registro con metadata (model.Metadata).
type Identifiable interface {
	RecordID() int64
}

// Ok arma un envelope de éxito. Status default: 200.
func Ok(payload any, status ...int) Envelope {
	code := 200
	if len(status) > 0 {
		code = status[0]
	}
	return Envelope{
		Payload:      payload,
		Status:       code,
		ResponseType: "application/json",
	}
}

// Fail arma un envelope de fallo. Status default: 400.
func Fail(message string, status ...int) Envelope {
	code := 400
	if len(status) > 0 {
		code = status[0]
	}
	return Envelope{Error: message, Status: code}
}

// FromSingleRead mapea una lectura individual: éxito si el registro existe
// y tiene id positivo; si no, 404.
func FromSingleRead(rec Identifiable) Envelope {
	if rec != nil && rec.RecordID() > 0 {
		return Ok(rec)
	}
	return Fail("Resource not found", 404)
}

// FromMultipleRead mapea una lectura múltiple: éxito tanto para un
// descriptor {count} como para una lista (incluida la vacía).
func FromMultipleRead(result any) Envelope {
	if result == nil {
		return Fail("Resources not found", 404)
	}
	return Ok(result)
}

// UpdatePayload es el payload de un update exitoso: el outcome del motor
// mergeado con el data original, como devolvía el servicio histórico.
type UpdatePayload struct {
	store.Outcome
	Data store.Document `json:"data,omitempty"`
}

// FromUpdate mapea el outcome de un update:
//   - acknowledged y Modified > 0  => 200 (y dispara la notificación si hay)
//   - acknowledged y Modified == 0 => 210 (éxito sin cambios)
//   - cualquier otra cosa          => "Update failed" con status 200
//
// El status 200 para el fallo lógico es contrato heredado: los clientes
// existentes chequean el envelope, no la clase del status HTTP.
func FromUpdate(out store.Outcome, data store.Document, emitter events.Emitter, event string) Envelope {
	payload := UpdatePayload{Outcome: out, Data: data}
	if out.Acknowledged && out.Modified > 0 {
		if emitter != nil && event != "" {
			emitter.Emit(event, payload)
		}
		return Ok(payload)
	}
	if out.Acknowledged {
		return Ok(payload, 210)
	}
	return Fail("Update failed", 200)
}

// FromDelete mapea el outcome de un soft-delete: éxito solo si modificó
// al menos un registro. Un delete repetido devuelve "Deletion failed."
// porque el registro ya estaba inactivo.
func FromDelete(out store.Outcome) Envelope {
	if out.Modified > 0 {
		return Ok(out)
	}
	return Fail("Deletion failed.", 200)
}
