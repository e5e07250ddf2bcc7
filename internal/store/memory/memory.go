// Package memory implementa el backend in-process del store.
// Pensado para tests y desarrollo local; misma semántica de matching
// que el adapter de PostgreSQL.
package memory

import (
	"context"
	"regexp"
	"sync"
	"time"

	"github.com/gomart/gomart/internal/store"
)

func init() {
	store.RegisterAdapter(adapter{})
}

type adapter struct{}

func (adapter) Driver() string { return "memory" }

func (adapter) Open(_ context.Context, _ store.Config) (store.Store, error) {
	return New(), nil
}

// Store mantiene una colección por entidad, creadas on-demand.
type Store struct {
	mu    sync.Mutex
	colls map[string]*Collection
}

// New crea un Store vacío.
func New() *Store {
	return &Store{colls: map[string]*Collection{}}
}

func (s *Store) Collection(name string) store.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.colls[name]
	if !ok {
		c = &Collection{name: name}
		s.colls[name] = c
	}
	return c
}

func (s *Store) Ping(ctx context.Context) error { return nil }
func (s *Store) Close()                         {}

// Collection es una colección documental en memoria.
type Collection struct {
	mu     sync.Mutex
	name   string
	docs   []store.Document
	lastID int64
}

func (c *Collection) Name() string { return c.name }

func (c *Collection) NextID(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastID++
	return c.lastID, nil
}

func (c *Collection) InsertOne(ctx context.Context, doc store.Document) (store.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs = append(c.docs, store.CloneDocument(doc))
	return store.CloneDocument(doc), nil
}

func (c *Collection) Find(ctx context.Context, conds store.Conditions, opts store.FindOptions) ([]store.Document, error) {
	c.mu.Lock()
	var matched []store.Document
	for _, d := range c.docs {
		if Matches(d, conds) {
			matched = append(matched, store.CloneDocument(d))
		}
	}
	c.mu.Unlock()

	store.SortDocuments(matched, opts.Sort)

	if opts.Skip > 0 {
		if opts.Skip >= int64(len(matched)) {
			matched = nil
		} else {
			matched = matched[opts.Skip:]
		}
	}
	if opts.Limit > 0 && opts.Limit < int64(len(matched)) {
		matched = matched[:opts.Limit]
	}

	out := make([]store.Document, 0, len(matched))
	for _, d := range matched {
		out = append(out, store.Project(d, opts.Fields))
	}
	return out, nil
}

func (c *Collection) Count(ctx context.Context, conds store.Conditions) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, d := range c.docs {
		if Matches(d, conds) {
			n++
		}
	}
	return n, nil
}

func (c *Collection) UpdateMany(ctx context.Context, conds store.Conditions, set store.Document) (store.Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := store.Outcome{Acknowledged: true}
	now := time.Now().UTC()
	for i, d := range c.docs {
		if !Matches(d, conds) {
			continue
		}
		out.Matched++
		changed := false
		for k, v := range set {
			if !hasKey(d, k) || !store.LooseEqual(d[k], v) {
				changed = true
			}
			c.docs[i][k] = v
		}
		// El touch de updatedOn es implícito y no cuenta como modificación:
		// un soft-delete repetido debe reportar Modified = 0.
		if changed {
			c.docs[i][store.FieldUpdatedOn] = now
			out.Modified++
		}
	}
	return out, nil
}

func hasKey(d store.Document, k string) bool {
	_, ok := d[k]
	return ok
}

// Matches evalúa condiciones de igualdad laxa más fragmentos $or
// con Regex substring case-insensitive.
func Matches(doc store.Document, conds store.Conditions) bool {
	for k, v := range conds {
		if k == store.OrKey {
			branches, ok := v.([]store.Conditions)
			if !ok || !matchesAny(doc, branches) {
				return false
			}
			continue
		}
		if rx, ok := v.(store.Regex); ok {
			if !regexMatch(doc[k], rx) {
				return false
			}
			continue
		}
		got, ok := doc[k]
		if !ok || !store.LooseEqual(got, v) {
			return false
		}
	}
	return true
}

func matchesAny(doc store.Document, branches []store.Conditions) bool {
	for _, b := range branches {
		if Matches(doc, b) {
			return true
		}
	}
	return false
}

func regexMatch(v any, rx store.Regex) bool {
	pattern := rx.Pattern
	if rx.CaseInsensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(store.AsString(v))
}
