// Package store define la abstracción de almacenamiento documental:
// una Collection por entidad (user, store, inventory, category, cart, order)
// con operaciones insert-one / find / count / update-many y un contador
// atómico por colección para el id secuencial visible.
//
// Backends:
//   - pg:     PostgreSQL (tabla con columna jsonb + columnas de metadata)
//   - memory: in-process, para tests y desarrollo
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Document es un registro plano campo -> valor, listo para serializar.
type Document map[string]any

// Conditions son condiciones de búsqueda. Cada clave es igualdad exacta
// contra el campo homónimo. La clave reservada "$or" contiene un
// []Conditions que se combina con OR (usada por la búsqueda wildcard).
type Conditions map[string]any

// Regex es una condición de substring case-insensitive opcional.
// Se usa como valor dentro de un fragmento "$or".
type Regex struct {
	Pattern         string
	CaseInsensitive bool
}

// OrKey es la clave reservada para fragmentos OR dentro de Conditions.
const OrKey = "$or"

// SortKey es una clave de ordenamiento ya parseada.
type SortKey struct {
	Field string
	Desc  bool
}

// FindOptions controla una lectura: proyección, orden y paginación.
// Fields vacío significa "todos los campos". Limit <= 0 significa sin tope.
type FindOptions struct {
	Fields []string
	Sort   []SortKey
	Skip   int64
	Limit  int64
}

// Outcome describe el resultado de un update/delete multi-match.
// Equivale al descriptor {n, nModified, ok} del motor original.
type Outcome struct {
	Matched      int64 `json:"matched"`
	Modified     int64 `json:"modified"`
	Acknowledged bool  `json:"acknowledged"`
}

// Collection es el contrato mínimo que el gateway necesita del motor.
type Collection interface {
	Name() string

	// InsertOne persiste el documento tal cual (metadata incluida).
	InsertOne(ctx context.Context, doc Document) (Document, error)

	// Find devuelve los documentos que matchean, materializados.
	Find(ctx context.Context, conds Conditions, opts FindOptions) ([]Document, error)

	// Count devuelve la cardinalidad del match.
	Count(ctx context.Context, conds Conditions) (int64, error)

	// UpdateMany aplica set sobre todos los que matcheen. El touch de
	// updatedOn es implícito y no cuenta para Modified: un documento solo
	// cuenta como modificado si algún campo de set cambió de valor.
	UpdateMany(ctx context.Context, conds Conditions, set Document) (Outcome, error)

	// NextID devuelve el siguiente id secuencial de la colección (atómico).
	NextID(ctx context.Context) (int64, error)
}

// Store agrupa las colecciones de un backend ya abierto.
type Store interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close()
}

// Errores sentinela del paquete.
var (
	ErrNotFound       = errors.New("store: record not found")
	ErrUnknownDriver  = errors.New("store: unknown driver")
	ErrNotImplemented = errors.New("store: not implemented")
)

// Config selecciona e inicializa un backend.
type Config struct {
	Driver string // "postgres" | "memory"
	DSN    string

	MaxConns int32
}

// Adapter construye un Store a partir de la config.
// Los backends se registran en init() (patrón registry).
type Adapter interface {
	Driver() string
	Open(ctx context.Context, cfg Config) (Store, error)
}

var (
	adaptersMu sync.RWMutex
	adapters   = map[string]Adapter{}
)

// RegisterAdapter registra un backend. Llamar desde init() del adapter.
func RegisterAdapter(a Adapter) {
	adaptersMu.Lock()
	defer adaptersMu.Unlock()
	adapters[a.Driver()] = a
}

// Open abre el backend indicado por cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	adaptersMu.RLock()
	a, ok := adapters[strings.ToLower(strings.TrimSpace(cfg.Driver))]
	adaptersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	return a.Open(ctx, cfg)
}

// =================================================================================
// METADATA
// =================================================================================

// Campos de metadata que todo registro lleva. "uid" es el identificador
// nativo (uuid) del motor; "id" es el secuencial visible para clientes.
const (
	FieldUID       = "uid"
	FieldID        = "id"
	FieldIsActive  = "isActive"
	FieldIsDeleted = "isDeleted"
	FieldTimeStamp = "timeStamp"
	FieldCreatedOn = "createdOn"
	FieldUpdatedOn = "updatedOn"
)

// IsMetaField reporta si el campo es metadata gestionada por el sistema.
func IsMetaField(name string) bool {
	switch name {
	case FieldUID, FieldID, FieldIsActive, FieldIsDeleted,
		FieldTimeStamp, FieldCreatedOn, FieldUpdatedOn:
		return true
	}
	return false
}

// =================================================================================
// COERCIÓN DE VALORES
// =================================================================================
// Las condiciones llegan como strings (query params) pero los documentos
// guardan números/bools. Ambos backends comparan con la misma semántica
// laxa para que el comportamiento sea idéntico.

// AsString normaliza cualquier valor escalar a string.
func AsString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// JSON decodifica números como float64; evitar "7.000000"
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// AsInt64 intenta coercionar v a entero. ok=false si no es numérico.
func AsInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// AsBool coerciona v a booleano con la semántica del query param
// ("true"/"1" => true; todo lo demás => false).
func AsBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == "true" || s == "1"
	case float64:
		return t != 0
	case int:
		return t != 0
	}
	return false
}

// LooseEqual compara dos valores con coerción: numérico si ambos lo son,
// string normalizado en caso contrario.
func LooseEqual(a, b any) bool {
	if an, ok := AsFloat64(a); ok {
		if bn, ok := AsFloat64(b); ok {
			return an == bn
		}
	}
	return AsString(a) == AsString(b)
}

// =================================================================================
// HELPERS DE DOCUMENTOS
// =================================================================================

// Project devuelve una copia del documento con solo los campos pedidos.
// fields vacío devuelve copia completa. La metadata "uid"/"id" se conserva
// siempre para que el cliente pueda referenciar el registro.
func Project(doc Document, fields []string) Document {
	if len(fields) == 0 {
		return CloneDocument(doc)
	}
	out := Document{}
	for _, f := range fields {
		if v, ok := doc[f]; ok {
			out[f] = v
		}
	}
	if v, ok := doc[FieldUID]; ok {
		out[FieldUID] = v
	}
	if v, ok := doc[FieldID]; ok {
		out[FieldID] = v
	}
	return out
}

// CloneDocument copia superficialmente un documento.
func CloneDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// SortDocuments ordena in-place según las claves dadas (estable).
func SortDocuments(docs []Document, keys []SortKey) {
	if len(keys) == 0 {
		return
	}
	sort.SliceStable(docs, func(i, j int) bool {
		for _, k := range keys {
			c := compareValues(docs[i][k.Field], docs[j][k.Field])
			if c == 0 {
				continue
			}
			if k.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareValues(a, b any) int {
	if an, aok := AsFloat64(a); aok {
		if bn, bok := AsFloat64(b); bok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(AsString(a), AsString(b))
}

// AsFloat64 intenta coercionar v a float64. ok=false si no es numérico.
func AsFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
