package memory

import (
	"context"
	"testing"

	"github.com/gomart/gomart/internal/store"
)

func TestMatches_LooseEquality(t *testing.T) {
	t.Parallel()
	doc := store.Document{"sellerId": float64(7), "role": "seller", "isActive": true}

	cases := []struct {
		conds store.Conditions
		want  bool
	}{
		{store.Conditions{}, true},
		{store.Conditions{"sellerId": "7"}, true},
		{store.Conditions{"sellerId": 7}, true},
		{store.Conditions{"sellerId": "8"}, false},
		{store.Conditions{"role": "seller", "isActive": "true"}, true},
		{store.Conditions{"missing": "x"}, false},
	}
	for _, c := range cases {
		if got := Matches(doc, c.conds); got != c.want {
			t.Fatalf("Matches(%v) = %v, quería %v", c.conds, got, c.want)
		}
	}
}

func TestMatches_RegexOr(t *testing.T) {
	t.Parallel()
	doc := store.Document{"name": "Running Shoe"}

	conds := store.Conditions{store.OrKey: []store.Conditions{
		{"name": store.Regex{Pattern: "shoe", CaseInsensitive: true}},
		{"description": store.Regex{Pattern: "shoe", CaseInsensitive: true}},
	}}
	if !Matches(doc, conds) {
		t.Fatal("el OR debería matchear por name")
	}

	conds = store.Conditions{store.OrKey: []store.Conditions{
		{"name": store.Regex{Pattern: "^shoe$", CaseInsensitive: true}},
	}}
	if Matches(doc, conds) {
		t.Fatal("regex anclado no debería matchear")
	}
}

func TestUpdateMany_ModifiedCountsRealChanges(t *testing.T) {
	t.Parallel()
	col := New().Collection("things")
	ctx := context.Background()

	if _, err := col.InsertOne(ctx, store.Document{"id": int64(1), "state": "a"}); err != nil {
		t.Fatalf("InsertOne: %v", err)
	}

	out, err := col.UpdateMany(ctx, store.Conditions{"id": 1}, store.Document{"state": "b"})
	if err != nil || out.Matched != 1 || out.Modified != 1 {
		t.Fatalf("primer update: %v %+v", err, out)
	}

	// Mismo valor: matchea pero no modifica
	out, err = col.UpdateMany(ctx, store.Conditions{"id": 1}, store.Document{"state": "b"})
	if err != nil || out.Matched != 1 || out.Modified != 0 {
		t.Fatalf("update idéntico: %v %+v", err, out)
	}
}

func TestFind_SortSkipLimitProjection(t *testing.T) {
	t.Parallel()
	col := New().Collection("things")
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := col.InsertOne(ctx, store.Document{"id": int64(i), "n": i * 10, "tag": "x"})
		if err != nil {
			t.Fatalf("InsertOne: %v", err)
		}
	}

	docs, err := col.Find(ctx, store.Conditions{"tag": "x"}, store.FindOptions{
		Sort:   []store.SortKey{{Field: "n", Desc: true}},
		Skip:   1,
		Limit:  2,
		Fields: []string{"n"},
	})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("esperaba 2 docs, got %d", len(docs))
	}
	if n, _ := store.AsInt64(docs[0]["n"]); n != 40 {
		t.Fatalf("orden desc + skip: %+v", docs)
	}
	if _, ok := docs[0]["tag"]; ok {
		t.Fatal("proyección: tag no debería estar")
	}
	if _, ok := docs[0][store.FieldID]; !ok {
		t.Fatal("proyección: id debe conservarse siempre")
	}
}

func TestOpen_RegistryDriver(t *testing.T) {
	t.Parallel()
	s, err := store.Open(context.Background(), store.Config{Driver: "memory"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
