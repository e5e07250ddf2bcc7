package gateway

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gomart/gomart/internal/domain/model"
	"github.com/gomart/gomart/internal/store"
	"github.com/gomart/gomart/internal/store/memory"
)

func newInventoryGateway(t *testing.T) *Gateway[model.Inventory] {
	t.Helper()
	mem := memory.New()
	return New[model.Inventory](mem.Collection(model.CollectionInventory))
}

func TestCreateRecord_PopulatesMetadata(t *testing.T) {
	t.Parallel()
	g := newInventoryGateway(t)

	rec, err := g.CreateRecord(context.Background(), model.Inventory{
		Metadata: model.Metadata{ID: 999}, // el id del caller se descarta
		Name:     "zapatilla",
		Price:    49.9,
	})
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}
	if rec.ID != 1 {
		t.Fatalf("id secuencial: esperaba 1, got %d", rec.ID)
	}
	if rec.UID == "" {
		t.Fatal("uid nativo no asignado")
	}
	if !rec.IsActive || rec.IsDeleted {
		t.Fatalf("flags default: %+v", rec.Metadata)
	}
	if rec.TimeStamp == 0 || rec.CreatedOn.IsZero() || rec.UpdatedOn.IsZero() {
		t.Fatalf("timestamps default: %+v", rec.Metadata)
	}
	if rec.Name != "zapatilla" || rec.Price != 49.9 {
		t.Fatalf("campos propios: %+v", rec)
	}
}

func TestCreateRecord_ConcurrentIDsAreUnique(t *testing.T) {
	t.Parallel()
	g := newInventoryGateway(t)

	const n = 50
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := g.CreateRecord(context.Background(), model.Inventory{Name: "x"})
			if err != nil {
				t.Errorf("CreateRecord: %v", err)
				return
			}
			ids <- rec.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("id duplicado bajo concurrencia: %d", id)
		}
		seen[id] = true
	}
	for i := int64(1); i <= n; i++ {
		if !seen[i] {
			t.Fatalf("falta el id %d en el set {1..%d}", i, n)
		}
	}
}

// El cálculo histórico (count de timeStamps anteriores + 1) computa el
// mismo id para dos creates que ven el mismo estado: el defecto que el
// contador atómico reemplaza.
func TestLegacyNextID_IsDuplicateProne(t *testing.T) {
	t.Parallel()
	g := newInventoryGateway(t)
	ctx := context.Background()

	if _, err := g.CreateRecord(ctx, model.Inventory{Name: "a"}); err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}

	ts := int64(1<<62) + 1 // posterior a todo lo existente
	first, err := g.LegacyNextID(ctx, ts)
	if err != nil {
		t.Fatalf("LegacyNextID: %v", err)
	}
	second, err := g.LegacyNextID(ctx, ts)
	if err != nil {
		t.Fatalf("LegacyNextID: %v", err)
	}
	if first != second {
		t.Fatalf("esperaba ids duplicados sin escritura intermedia, got %d y %d", first, second)
	}
}

func TestReadRecords_CountAndPagination(t *testing.T) {
	t.Parallel()
	g := newInventoryGateway(t)
	ctx := context.Background()

	for _, name := range []string{"alfa", "beta", "gama", "delta"} {
		if _, err := g.CreateRecord(ctx, model.Inventory{Name: name, SellerID: 1}); err != nil {
			t.Fatalf("CreateRecord: %v", err)
		}
	}

	res, err := g.ReadRecords(ctx, store.Conditions{"sellerId": "1"}, "", "", true, 0, 0)
	if err != nil {
		t.Fatalf("ReadRecords count: %v", err)
	}
	if res.Count == nil || *res.Count != 4 {
		t.Fatalf("count: %+v", res)
	}

	res, err = g.ReadRecords(ctx, store.Conditions{}, "name", "-id", false, 1, 2)
	if err != nil {
		t.Fatalf("ReadRecords page: %v", err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("esperaba 2 registros, got %d", len(res.Records))
	}
	// orden -id con skip 1: ids 3, 2
	if res.Records[0].ID != 3 || res.Records[1].ID != 2 {
		t.Fatalf("orden/paginación: %+v", res.Records)
	}
	// proyección: name presente, price ausente
	if res.Records[0].Name == "" || res.Records[0].Price != 0 {
		t.Fatalf("proyección: %+v", res.Records[0])
	}
}

func TestUpdateRecords_StripsMetadataAndTouches(t *testing.T) {
	t.Parallel()
	g := newInventoryGateway(t)
	ctx := context.Background()

	created, err := g.CreateRecord(ctx, model.Inventory{Name: "alfa", Price: 10})
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}

	time.Sleep(2 * time.Millisecond) // separa updatedOn del createdOn
	out, err := g.UpdateRecords(ctx, store.Conditions{"id": created.ID}, store.Document{
		"price":     20.5,
		"timeStamp": 1,     // metadata: debe descartarse
		"createdOn": "hoy", // metadata: debe descartarse
	})
	if err != nil {
		t.Fatalf("UpdateRecords: %v", err)
	}
	if out.Matched != 1 || out.Modified != 1 || !out.Acknowledged {
		t.Fatalf("outcome: %+v", out)
	}

	res, err := g.ReadRecords(ctx, store.Conditions{"id": created.ID}, "", "", false, 0, 0)
	if err != nil || len(res.Records) != 1 {
		t.Fatalf("relectura: %v %+v", err, res)
	}
	got := res.Records[0]
	if got.Price != 20.5 {
		t.Fatalf("price no actualizado: %+v", got)
	}
	if got.TimeStamp != created.TimeStamp {
		t.Fatal("timeStamp no debe cambiar en update")
	}
	if !got.UpdatedOn.After(created.UpdatedOn) {
		t.Fatal("updatedOn debe tocarse en update")
	}
}

func TestUpdateRecords_NoMatchIsZeroOutcome(t *testing.T) {
	t.Parallel()
	g := newInventoryGateway(t)

	out, err := g.UpdateRecords(context.Background(), store.Conditions{"id": 7}, store.Document{"price": 9.99})
	if err != nil {
		t.Fatalf("UpdateRecords: %v", err)
	}
	if out.Matched != 0 || out.Modified != 0 {
		t.Fatalf("outcome sin match: %+v", out)
	}
}

func TestDeleteRecords_SoftAndIdempotent(t *testing.T) {
	t.Parallel()
	g := newInventoryGateway(t)
	ctx := context.Background()

	created, err := g.CreateRecord(ctx, model.Inventory{Name: "alfa"})
	if err != nil {
		t.Fatalf("CreateRecord: %v", err)
	}

	out, err := g.DeleteRecords(ctx, store.Conditions{"id": created.ID})
	if err != nil {
		t.Fatalf("DeleteRecords: %v", err)
	}
	if out.Modified != 1 {
		t.Fatalf("primer delete: %+v", out)
	}

	// El registro sigue existiendo, solo marcado
	res, err := g.ReadRecords(ctx, store.Conditions{"id": created.ID}, "", "", false, 0, 0)
	if err != nil || len(res.Records) != 1 {
		t.Fatalf("relectura: %v %+v", err, res)
	}
	if res.Records[0].IsActive || !res.Records[0].IsDeleted {
		t.Fatalf("flags post-delete: %+v", res.Records[0].Metadata)
	}

	// Segundo delete del mismo set: matched 1, modified 0
	out, err = g.DeleteRecords(ctx, store.Conditions{"id": created.ID})
	if err != nil {
		t.Fatalf("segundo delete: %v", err)
	}
	if out.Matched != 1 || out.Modified != 0 {
		t.Fatalf("idempotencia: %+v", out)
	}
}

func TestReadRecords_WildcardOr(t *testing.T) {
	t.Parallel()
	g := newInventoryGateway(t)
	ctx := context.Background()

	for _, it := range []model.Inventory{
		{Name: "Running Shoe", Description: "liviana"},
		{Name: "Bota", Description: "de cuero, tipo shoe"},
		{Name: "Gorra", Description: "algodón"},
	} {
		if _, err := g.CreateRecord(ctx, it); err != nil {
			t.Fatalf("CreateRecord: %v", err)
		}
	}

	conds := store.Conditions{
		store.OrKey: []store.Conditions{
			{"name": store.Regex{Pattern: "shoe", CaseInsensitive: true}},
			{"description": store.Regex{Pattern: "shoe", CaseInsensitive: true}},
		},
	}
	res, err := g.ReadRecords(ctx, conds, "", "id", false, 0, 0)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("esperaba 2 matches, got %+v", res.Records)
	}
}
