// Package gateway implementa el acceso genérico a registros: un Gateway
// tipado por entidad, ligado a una Collection en su construcción, con el
// contrato uniforme de cuatro operaciones (create / read / update / delete
// lógico) que comparten todos los services.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gomart/gomart/internal/observability/logger"
	"github.com/gomart/gomart/internal/query"
	"github.com/gomart/gomart/internal/store"
)

// ReadResult es el resultado de una lectura: o una cardinalidad (modo
// count) o la secuencia materializada de registros.
type ReadResult[T any] struct {
	Count   *int64 `json:"count,omitempty"`
	Records []T    `json:"records,omitempty"`
}

// Gateway es el acceso a registros de una entidad concreta.
// T es el struct de dominio (model.User, model.Inventory, ...).
type Gateway[T any] struct {
	col store.Collection
	log *zap.Logger
}

// New liga un Gateway a la colección de su entidad.
func New[T any](col store.Collection) *Gateway[T] {
	return &Gateway[T]{
		col: col,
		log: logger.Named("gateway." + col.Name()),
	}
}

// Collection expone la colección subyacente (la usan los tests y el seed).
func (g *Gateway[T]) Collection() store.Collection { return g.col }

// CreateRecord persiste un registro nuevo. Descarta cualquier id provisto
// por el caller, asigna uid (identificador nativo, único de verdad) e id
// secuencial desde el contador atómico de la colección, y puebla la
// metadata por defecto. Los errores de storage vuelven envueltos, nunca
// como panic.
func (g *Gateway[T]) CreateRecord(ctx context.Context, data T) (T, error) {
	var zero T

	doc, err := toDocument(data)
	if err != nil {
		return zero, fmt.Errorf("createRecord: %w", err)
	}
	delete(doc, store.FieldID)
	delete(doc, store.FieldUID)

	id, err := g.col.NextID(ctx)
	if err != nil {
		g.log.Error("createRecord: next id", zap.Error(err))
		return zero, fmt.Errorf("createRecord: %w", err)
	}

	now := time.Now().UTC()
	doc[store.FieldUID] = uuid.NewString()
	doc[store.FieldID] = id
	doc[store.FieldIsActive] = true
	doc[store.FieldIsDeleted] = false
	doc[store.FieldTimeStamp] = now.UnixMilli()
	doc[store.FieldCreatedOn] = now
	doc[store.FieldUpdatedOn] = now

	stored, err := g.col.InsertOne(ctx, doc)
	if err != nil {
		g.log.Error("createRecord: insert", zap.Error(err))
		return zero, fmt.Errorf("createRecord: %w", err)
	}
	return fromDocument[T](stored)
}

// ReadRecords ejecuta una lectura. Con count=true devuelve solo la
// cardinalidad; si no, la secuencia de registros honrando proyección,
// orden, skip y limit. El caller es responsable de incluir isActive /
// isDeleted en las condiciones si quiere filtrar soft-deletes.
func (g *Gateway[T]) ReadRecords(ctx context.Context, conds store.Conditions, fieldsToReturn, sortCondition string, count bool, skip, limit int64) (ReadResult[T], error) {
	if count {
		n, err := g.col.Count(ctx, conds)
		if err != nil {
			g.log.Error("readRecords: count", zap.Error(err))
			return ReadResult[T]{}, fmt.Errorf("readRecords: %w", err)
		}
		return ReadResult[T]{Count: &n}, nil
	}

	docs, err := g.col.Find(ctx, conds, store.FindOptions{
		Fields: query.ParseFields(fieldsToReturn),
		Sort:   query.ParseSort(sortCondition),
		Skip:   skip,
		Limit:  limit,
	})
	if err != nil {
		g.log.Error("readRecords: find", zap.Error(err))
		return ReadResult[T]{}, fmt.Errorf("readRecords: %w", err)
	}

	records := make([]T, 0, len(docs))
	for _, d := range docs {
		rec, err := fromDocument[T](d)
		if err != nil {
			return ReadResult[T]{}, fmt.Errorf("readRecords: %w", err)
		}
		records = append(records, rec)
	}
	return ReadResult[T]{Records: records}, nil
}

// UpdateRecords aplica data a todos los registros que matcheen conds.
// La metadata gestionada (uid, id, timeStamp, createdOn, updatedOn) se
// descarta de data; updatedOn se toca siempre como parte del update.
func (g *Gateway[T]) UpdateRecords(ctx context.Context, conds store.Conditions, data store.Document) (store.Outcome, error) {
	set := store.CloneDocument(data)
	delete(set, store.FieldUID)
	delete(set, store.FieldID)
	delete(set, store.FieldTimeStamp)
	delete(set, store.FieldCreatedOn)
	delete(set, store.FieldUpdatedOn)

	out, err := g.col.UpdateMany(ctx, conds, set)
	if err != nil {
		g.log.Error("updateRecords", zap.Error(err))
		return store.Outcome{}, fmt.Errorf("updateRecords: %w", err)
	}
	return out, nil
}

// DeleteRecords hace soft-delete multi-match: isActive=false,
// isDeleted=true, updatedOn tocado. Nunca borra físicamente.
func (g *Gateway[T]) DeleteRecords(ctx context.Context, conds store.Conditions) (store.Outcome, error) {
	out, err := g.col.UpdateMany(ctx, conds, store.Document{
		store.FieldIsActive:  false,
		store.FieldIsDeleted: true,
	})
	if err != nil {
		g.log.Error("deleteRecords", zap.Error(err))
		return store.Outcome{}, fmt.Errorf("deleteRecords: %w", err)
	}
	return out, nil
}

// LegacyNextID calcula el id como lo hacía la versión original: cantidad
// de registros con timeStamp anterior + 1.
//
// Deprecated: esta estrategia tiene una ventana de carrera — dos creates
// concurrentes pueden computar el mismo id antes de que cualquiera
// persista. Se conserva solo como documentación del defecto (hay un test
// que lo demuestra); CreateRecord usa el contador atómico de la colección.
func (g *Gateway[T]) LegacyNextID(ctx context.Context, timeStamp int64) (int64, error) {
	var n int64
	docs, err := g.col.Find(ctx, store.Conditions{}, store.FindOptions{})
	if err != nil {
		return 0, err
	}
	for _, d := range docs {
		if ts, ok := store.AsInt64(d[store.FieldTimeStamp]); ok && ts < timeStamp {
			n++
		}
	}
	return n + 1, nil
}

func toDocument(v any) (store.Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	doc := store.Document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func fromDocument[T any](doc store.Document) (T, error) {
	var out T
	raw, err := json.Marshal(doc)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}
