package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/gomart/gomart/internal/cache"
	"github.com/gomart/gomart/internal/domain/model"
	"github.com/gomart/gomart/internal/events"
	"github.com/gomart/gomart/internal/observability/logger"
	"github.com/gomart/gomart/internal/query"
	"github.com/gomart/gomart/internal/response"
	"github.com/gomart/gomart/internal/store"
	"github.com/gomart/gomart/internal/store/gateway"
	"github.com/gomart/gomart/internal/validation"
)

// categoryListKey es la clave del listado completo en cache. Las
// categorías cambian poco y se leen en cada render de catálogo.
const (
	categoryListKey = "categories:all"
	categoryListTTL = 5 * time.Minute
)

// CategoryService maneja las categorías del catálogo.
type CategoryService struct {
	gw      *gateway.Gateway[model.Category]
	emitter events.Emitter
	cache   cache.Cache
	name    string
	log     *zap.Logger
}

func NewCategoryService(deps Deps) *CategoryService {
	return &CategoryService{
		gw:      gateway.New[model.Category](deps.Store.Collection(model.CollectionCategory)),
		emitter: deps.Emitter,
		cache:   deps.Cache,
		name:    "CategoryService",
		log:     logger.Named("service.category"),
	}
}

// CreateCategory da de alta una categoría e invalida el listado cacheado.
func (s *CategoryService) CreateCategory(ctx context.Context, body store.Document) response.Envelope {
	const op = "createCategory"

	if err := validation.CreateCategory(body); err != nil {
		return response.Fail(err.Error(), 400)
	}

	cat := model.Category{
		Name:        store.AsString(body["name"]),
		Description: store.AsString(body["description"]),
	}

	created, err := s.gw.CreateRecord(ctx, cat)
	if err != nil {
		return failWith(s.name, op, err)
	}
	s.cache.Delete(categoryListKey)
	s.log.Info("category created", logger.RecordID(created.ID))
	return response.FromSingleRead(created)
}

// ReadCategoryByID devuelve una categoría activa por id.
func (s *CategoryService) ReadCategoryByID(ctx context.Context, id int64) response.Envelope {
	const op = "readCategoryById"
	if id <= 0 {
		return response.Fail("Invalid ID supplied.", 400)
	}

	conds := idConditions(id)
	conds[store.FieldIsActive] = true
	res, err := s.gw.ReadRecords(ctx, conds, "", "", false, 0, 1)
	if err != nil {
		return failWith(s.name, op, err)
	}
	if len(res.Records) == 0 {
		return response.Fail("Resource not found", 404)
	}
	return response.FromSingleRead(res.Records[0])
}

// ReadCategories lista las categorías activas, con cache de por medio.
func (s *CategoryService) ReadCategories(ctx context.Context) response.Envelope {
	const op = "readCategories"

	if raw, ok := s.cache.Get(categoryListKey); ok {
		var cached []model.Category
		if err := json.Unmarshal(raw, &cached); err == nil {
			return response.FromMultipleRead(cached)
		}
		// Entrada corrupta: se descarta y se relee
		s.cache.Delete(categoryListKey)
	}

	res, err := s.gw.ReadRecords(ctx, activeOnly(), "", "", false, 0, query.Build(nil).Limit)
	if err != nil {
		return failWith(s.name, op, err)
	}
	if raw, err := json.Marshal(res.Records); err == nil {
		s.cache.Set(categoryListKey, raw, categoryListTTL)
	}
	return response.FromMultipleRead(res.Records)
}

// ReadCategoriesByFilter lista categorías según los query params crudos.
func (s *CategoryService) ReadCategoriesByFilter(ctx context.Context, options map[string]any) response.Envelope {
	const op = "readCategoriesByFilter"

	result, err := readByFilter(ctx, s.gw, options, nil)
	if err != nil {
		return failWith(s.name, op, err)
	}
	return response.FromMultipleRead(result)
}

// UpdateCategoryByID aplica data a la categoría id.
func (s *CategoryService) UpdateCategoryByID(ctx context.Context, id int64, data store.Document) response.Envelope {
	const op = "updateCategoryById"
	if id <= 0 {
		return response.Fail("Invalid ID supplied.", 400)
	}

	out, err := s.gw.UpdateRecords(ctx, idConditions(id), data)
	if err != nil {
		return failWith(s.name, op, err)
	}
	if out.Modified > 0 {
		s.cache.Delete(categoryListKey)
	}
	return response.FromUpdate(out, data, s.emitter, "category.updated")
}

// UpdateCategories aplica data a las categorías que matcheen options.
func (s *CategoryService) UpdateCategories(ctx context.Context, options map[string]any, data store.Document) response.Envelope {
	const op = "updateCategories"

	spec := query.Build(options)
	out, err := s.gw.UpdateRecords(ctx, spec.SeekConditions, data)
	if err != nil {
		return failWith(s.name, op, err)
	}
	if out.Modified > 0 {
		s.cache.Delete(categoryListKey)
	}
	return response.FromUpdate(out, data, s.emitter, "category.updated")
}

// DeleteCategoryByID hace soft-delete de la categoría id.
func (s *CategoryService) DeleteCategoryByID(ctx context.Context, id int64) response.Envelope {
	const op = "deleteCategoryById"
	if id <= 0 {
		return response.Fail("Invalid ID supplied.", 400)
	}
	out, err := s.gw.DeleteRecords(ctx, idConditions(id))
	if err != nil {
		return failWith(s.name, op, err)
	}
	if out.Modified > 0 {
		s.cache.Delete(categoryListKey)
	}
	return response.FromDelete(out)
}

// DeleteCategories hace soft-delete masivo según options.
func (s *CategoryService) DeleteCategories(ctx context.Context, options map[string]any) response.Envelope {
	const op = "deleteCategories"

	spec := query.Build(options)
	out, err := s.gw.DeleteRecords(ctx, spec.SeekConditions)
	if err != nil {
		return failWith(s.name, op, err)
	}
	if out.Modified > 0 {
		s.cache.Delete(categoryListKey)
	}
	return response.FromDelete(out)
}
