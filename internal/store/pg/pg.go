// Package pg implementa el backend PostgreSQL del store documental.
// Cada entidad vive en su propia tabla: columnas de metadata + una columna
// jsonb con los campos propios del registro, y una sequence por tabla para
// el id secuencial visible.
package pg

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gomart/gomart/internal/store"
)

func init() {
	store.RegisterAdapter(adapter{})
}

type adapter struct{}

func (adapter) Driver() string { return "postgres" }

func (adapter) Open(ctx context.Context, cfg store.Config) (store.Store, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg: parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: connect: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Store es el backend PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

func (s *Store) Collection(name string) store.Collection {
	return &Collection{pool: s.pool, table: pgIdentifier(name)}
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }
func (s *Store) Close()                         { s.pool.Close() }

// Pool expone el pool subyacente (lo usan migrate y seed).
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// validIdentifier restringe nombres de tabla a identificadores seguros.
var validIdentifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func pgIdentifier(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if !validIdentifier.MatchString(name) {
		// Un nombre inválido solo puede venir de un bug de wiring interno.
		panic(fmt.Sprintf("pg: invalid collection name %q", name))
	}
	return name
}

// Columnas de metadata y su mapeo documento <-> tabla.
var metaColumns = map[string]string{
	store.FieldUID:       "uid",
	store.FieldID:        "id",
	store.FieldIsActive:  "is_active",
	store.FieldIsDeleted: "is_deleted",
	store.FieldTimeStamp: "time_stamp",
	store.FieldCreatedOn: "created_on",
	store.FieldUpdatedOn: "updated_on",
}

// Collection es una tabla documental.
type Collection struct {
	pool  *pgxpool.Pool
	table string
}

func (c *Collection) Name() string { return c.table }

func (c *Collection) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := c.pool.QueryRow(ctx, fmt.Sprintf(`SELECT nextval('%s_id_seq')`, c.table)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("pg: nextval %s: %w", c.table, err)
	}
	return id, nil
}

func (c *Collection) InsertOne(ctx context.Context, doc store.Document) (store.Document, error) {
	meta, body := splitMeta(doc)
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("pg: marshal doc: %w", err)
	}

	q := fmt.Sprintf(`
		INSERT INTO %s (uid, id, doc, is_active, is_deleted, time_stamp, created_on, updated_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, c.table)

	_, err = c.pool.Exec(ctx, q,
		meta[store.FieldUID], meta[store.FieldID], raw,
		store.AsBool(meta[store.FieldIsActive]), store.AsBool(meta[store.FieldIsDeleted]),
		meta[store.FieldTimeStamp], meta[store.FieldCreatedOn], meta[store.FieldUpdatedOn],
	)
	if err != nil {
		return nil, fmt.Errorf("pg: insert into %s: %w", c.table, err)
	}
	return store.CloneDocument(doc), nil
}

func (c *Collection) Find(ctx context.Context, conds store.Conditions, opts store.FindOptions) ([]store.Document, error) {
	where, args := buildWhere(conds)

	var sb strings.Builder
	fmt.Fprintf(&sb, `SELECT uid, id, doc, is_active, is_deleted, time_stamp, created_on, updated_on FROM %s`, c.table)
	if where != "" {
		sb.WriteString(" WHERE " + where)
	}
	if ob := buildOrderBy(opts.Sort); ob != "" {
		sb.WriteString(" ORDER BY " + ob)
	}
	if opts.Limit > 0 && opts.Limit < math.MaxInt64 {
		fmt.Fprintf(&sb, " LIMIT %d", opts.Limit)
	}
	if opts.Skip > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", opts.Skip)
	}

	rows, err := c.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("pg: find in %s: %w", c.table, err)
	}
	defer rows.Close()

	var out []store.Document
	for rows.Next() {
		var (
			uid, id              any
			raw                  []byte
			isActive, isDeleted  bool
			timeStamp            int64
			createdOn, updatedOn time.Time
		)
		if err := rows.Scan(&uid, &id, &raw, &isActive, &isDeleted, &timeStamp, &createdOn, &updatedOn); err != nil {
			return nil, fmt.Errorf("pg: scan %s: %w", c.table, err)
		}
		doc := store.Document{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("pg: unmarshal doc: %w", err)
		}
		doc[store.FieldUID] = store.AsString(uid)
		doc[store.FieldID] = id
		doc[store.FieldIsActive] = isActive
		doc[store.FieldIsDeleted] = isDeleted
		doc[store.FieldTimeStamp] = timeStamp
		doc[store.FieldCreatedOn] = createdOn
		doc[store.FieldUpdatedOn] = updatedOn
		out = append(out, store.Project(doc, opts.Fields))
	}
	return out, rows.Err()
}

func (c *Collection) Count(ctx context.Context, conds store.Conditions) (int64, error) {
	where, args := buildWhere(conds)
	q := fmt.Sprintf(`SELECT count(*) FROM %s`, c.table)
	if where != "" {
		q += " WHERE " + where
	}
	var n int64
	if err := c.pool.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("pg: count %s: %w", c.table, err)
	}
	return n, nil
}

func (c *Collection) UpdateMany(ctx context.Context, conds store.Conditions, set store.Document) (store.Outcome, error) {
	out := store.Outcome{}

	matched, err := c.Count(ctx, conds)
	if err != nil {
		return out, err
	}
	out.Matched = matched

	meta, body := splitMeta(set)
	where, args := buildWhere(conds)

	sets := []string{"updated_on = now()"}
	if len(body) > 0 {
		raw, err := json.Marshal(body)
		if err != nil {
			return out, fmt.Errorf("pg: marshal set: %w", err)
		}
		args = append(args, raw)
		sets = append(sets, fmt.Sprintf("doc = doc || $%d::jsonb", len(args)))
	}
	for _, field := range []string{store.FieldIsActive, store.FieldIsDeleted} {
		if v, ok := meta[field]; ok {
			args = append(args, store.AsBool(v))
			sets = append(sets, fmt.Sprintf("%s = $%d", metaColumns[field], len(args)))
		}
	}

	// Solo se actualizan filas donde algún campo realmente cambie, para que
	// Modified refleje cambios reales (soft-delete repetido => Modified 0).
	guards := []string{}
	if len(body) > 0 {
		guards = append(guards, fmt.Sprintf("NOT (doc @> $%d::jsonb)", jsonSetPlaceholder(sets)))
	}
	for _, field := range []string{store.FieldIsActive, store.FieldIsDeleted} {
		if v, ok := meta[field]; ok {
			guards = append(guards, fmt.Sprintf("%s IS DISTINCT FROM %t", metaColumns[field], store.AsBool(v)))
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "UPDATE %s SET %s", c.table, strings.Join(sets, ", "))
	clause := where
	if len(guards) > 0 {
		g := "(" + strings.Join(guards, " OR ") + ")"
		if clause != "" {
			clause += " AND " + g
		} else {
			clause = g
		}
	}
	if clause != "" {
		sb.WriteString(" WHERE " + clause)
	}

	tag, err := c.pool.Exec(ctx, sb.String(), args...)
	if err != nil {
		return out, fmt.Errorf("pg: update %s: %w", c.table, err)
	}
	out.Modified = tag.RowsAffected()
	out.Acknowledged = true
	return out, nil
}

// jsonSetPlaceholder localiza el placeholder del set jsonb en la lista de sets.
func jsonSetPlaceholder(sets []string) int {
	for _, s := range sets {
		if strings.HasPrefix(s, "doc = doc || $") {
			var n int
			fmt.Sscanf(s, "doc = doc || $%d::jsonb", &n)
			return n
		}
	}
	return 0
}

// splitMeta separa metadata del cuerpo del documento.
func splitMeta(doc store.Document) (meta store.Document, body store.Document) {
	meta, body = store.Document{}, store.Document{}
	for k, v := range doc {
		if store.IsMetaField(k) {
			meta[k] = v
			continue
		}
		body[k] = v
	}
	return meta, body
}

// buildWhere compila Conditions a SQL parametrizado. Igualdad laxa: los
// campos del doc se comparan como texto (doc->>k), metadata por columna.
func buildWhere(conds store.Conditions) (string, []any) {
	var (
		parts []string
		args  []any
	)
	add := func(clause string, vals ...any) {
		args = append(args, vals...)
		parts = append(parts, clause)
	}

	for k, v := range conds {
		if k == store.OrKey {
			branches, ok := v.([]store.Conditions)
			if !ok {
				continue
			}
			var orParts []string
			for _, b := range branches {
				w, a := buildWhereOffset(b, len(args))
				if w != "" {
					orParts = append(orParts, "("+w+")")
					args = append(args, a...)
				}
			}
			if len(orParts) > 0 {
				parts = append(parts, "("+strings.Join(orParts, " OR ")+")")
			}
			continue
		}
		if col, ok := metaColumns[k]; ok {
			switch k {
			case store.FieldIsActive, store.FieldIsDeleted:
				add(fmt.Sprintf("%s = $%d", col, len(args)+1), store.AsBool(v))
			case store.FieldID, store.FieldTimeStamp:
				if n, ok := store.AsInt64(v); ok {
					add(fmt.Sprintf("%s = $%d", col, len(args)+1), n)
				} else {
					// id no numérico no matchea nada
					parts = append(parts, "false")
				}
			default:
				add(fmt.Sprintf("%s::text = $%d", col, len(args)+1), store.AsString(v))
			}
			continue
		}
		if rx, ok := v.(store.Regex); ok {
			op := "~"
			if rx.CaseInsensitive {
				op = "~*"
			}
			add(fmt.Sprintf("doc->>%s %s $%d", quoteLiteral(k), op, len(args)+1), rx.Pattern)
			continue
		}
		add(fmt.Sprintf("doc->>%s = $%d", quoteLiteral(k), len(args)+1), store.AsString(v))
	}
	return strings.Join(parts, " AND "), args
}

// buildWhereOffset compila una rama de $or con placeholders corridos.
func buildWhereOffset(conds store.Conditions, offset int) (string, []any) {
	w, args := buildWhere(conds)
	if offset == 0 || w == "" {
		return w, args
	}
	// Renumerar placeholders: $1..$n -> $offset+1..$offset+n
	for i := len(args); i >= 1; i-- {
		w = strings.ReplaceAll(w, fmt.Sprintf("$%d", i), fmt.Sprintf("$%d", i+offset))
	}
	return w, args
}

// quoteLiteral protege el nombre de campo usado como literal jsonb.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func buildOrderBy(keys []store.SortKey) string {
	var parts []string
	for _, k := range keys {
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		if col, ok := metaColumns[k.Field]; ok {
			parts = append(parts, col+" "+dir)
			continue
		}
		parts = append(parts, fmt.Sprintf("doc->>%s %s", quoteLiteral(k.Field), dir))
	}
	return strings.Join(parts, ", ")
}
