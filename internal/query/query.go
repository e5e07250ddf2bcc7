// Package query traduce los query params crudos de un request en una
// especificación estructurada de búsqueda: condiciones de igualdad,
// proyección, orden y paginación. Transformación pura, nunca falla:
// entradas malformadas degradan a los defaults.
package query

import (
	"math"
	"strings"

	"github.com/gomart/gomart/internal/store"
)

// Claves reservadas del mapping de opciones. Todo lo demás se interpreta
// como condición de igualdad campo = valor.
const (
	keyFields = "fields"
	keySort   = "sort"
	keySkip   = "skip"
	keyLimit  = "limit"
	keyCount  = "count"
)

// Spec es el resultado de Build, listo para pasarle al gateway.
type Spec struct {
	SeekConditions store.Conditions
	FieldsToReturn string // campos separados por espacio; "" = todos
	SortCondition  string // claves separadas por espacio, "-" = descendente
	Skip           int64
	Limit          int64
	Count          bool
}

// Build arma una Spec desde un mapping arbitrario de opciones
// (producido por el parseo del query string o por el campo "options"
// del body). Ninguna clave es requerida.
func Build(options map[string]any) Spec {
	spec := Spec{
		SeekConditions: store.Conditions{},
		FieldsToReturn: joinCSV(options[keyFields]),
		SortCondition:  joinCSV(options[keySort]),
		Skip:           0,
		Limit:          math.MaxInt64,
		Count:          store.AsBool(options[keyCount]),
	}

	if n, ok := store.AsInt64(options[keySkip]); ok && n > 0 {
		spec.Skip = n
	}
	if n, ok := store.AsInt64(options[keyLimit]); ok && n > 0 {
		spec.Limit = n
	}

	for k, v := range options {
		switch k {
		case keyFields, keySort, keySkip, keyLimit, keyCount:
			continue
		}
		spec.SeekConditions[k] = v
	}
	return spec
}

// BuildWildcardOptions arma un fragmento OR de matches substring
// case-insensitive: uno por cada campo de keysCsv, todos contra keyword.
// Se mergea dentro de las seek conditions para búsqueda de texto.
// No valida: el caller debe rechazar keys/keyword vacíos antes.
func BuildWildcardOptions(keysCsv, keyword string) store.Conditions {
	var or []store.Conditions
	for _, field := range strings.Split(keysCsv, ",") {
		or = append(or, store.Conditions{
			field: store.Regex{Pattern: keyword, CaseInsensitive: true},
		})
	}
	return store.Conditions{store.OrKey: or}
}

// joinCSV convierte "a,b,c" en "a b c" preservando prefijos (ej: "-x").
func joinCSV(v any) string {
	if v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		s = store.AsString(v)
	}
	if s == "" {
		return ""
	}
	return strings.Join(strings.Split(s, ","), " ")
}

// ParseFields vuelve a separar un FieldsToReturn en lista de campos.
func ParseFields(fieldsToReturn string) []string {
	return splitTokens(fieldsToReturn)
}

// ParseSort convierte un SortCondition ("-x y") en claves de orden.
func ParseSort(sortCondition string) []store.SortKey {
	var keys []store.SortKey
	for _, tok := range splitTokens(sortCondition) {
		if strings.HasPrefix(tok, "-") {
			keys = append(keys, store.SortKey{Field: tok[1:], Desc: true})
			continue
		}
		keys = append(keys, store.SortKey{Field: tok})
	}
	return keys
}

func splitTokens(s string) []string {
	var out []string
	for _, tok := range strings.Fields(s) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}
