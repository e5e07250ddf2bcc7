package response

import (
	"testing"

	"github.com/gomart/gomart/internal/store"
)

type rec struct{ id int64 }

func (r rec) RecordID() int64 { return r.id }

type captureEmitter struct {
	event   string
	payload any
	calls   int
}

func (c *captureEmitter) Emit(event string, payload any) {
	c.event = event
	c.payload = payload
	c.calls++
}

func TestOkFail_Defaults(t *testing.T) {
	ok := Ok("x")
	if ok.Status != 200 || ok.Payload != "x" || ok.Error != "" {
		t.Fatalf("Ok: %+v", ok)
	}
	f := Fail("boom")
	if f.Status != 400 || f.Error != "boom" || f.Payload != nil {
		t.Fatalf("Fail: %+v", f)
	}
	if c := Fail("nope", 500); c.Status != 500 {
		t.Fatalf("Fail con status: %+v", c)
	}
}

func TestFromSingleRead(t *testing.T) {
	if env := FromSingleRead(rec{id: 3}); env.Status != 200 {
		t.Fatalf("registro válido: %+v", env)
	}
	if env := FromSingleRead(rec{id: 0}); env.Status != 404 || env.Error != "Resource not found" {
		t.Fatalf("id cero: %+v", env)
	}
	if env := FromSingleRead(nil); env.Status != 404 {
		t.Fatalf("nil: %+v", env)
	}
}

func TestFromMultipleRead(t *testing.T) {
	// lista vacía es éxito
	if env := FromMultipleRead([]rec{}); env.Status != 200 {
		t.Fatalf("lista vacía: %+v", env)
	}
	n := int64(4)
	if env := FromMultipleRead(map[string]any{"count": n}); env.Status != 200 {
		t.Fatalf("count: %+v", env)
	}
	if env := FromMultipleRead(nil); env.Status != 404 {
		t.Fatalf("nil: %+v", env)
	}
}

func TestFromUpdate_ModifiedEmitsEvent(t *testing.T) {
	em := &captureEmitter{}
	out := store.Outcome{Matched: 1, Modified: 1, Acknowledged: true}

	env := FromUpdate(out, store.Document{"price": 9.99}, em, "inventory.updated")
	if env.Status != 200 || env.Error != "" {
		t.Fatalf("update ok: %+v", env)
	}
	if em.calls != 1 || em.event != "inventory.updated" {
		t.Fatalf("emitter: %+v", em)
	}
}

func TestFromUpdate_NoopIs210(t *testing.T) {
	em := &captureEmitter{}
	out := store.Outcome{Matched: 1, Modified: 0, Acknowledged: true}

	env := FromUpdate(out, nil, em, "user.updated")
	if env.Status != 210 || env.Error != "" {
		t.Fatalf("update sin cambios: %+v", env)
	}
	if em.calls != 0 {
		t.Fatal("no debe emitir evento si no hubo modificación")
	}
}

func TestFromUpdate_FailureKeeps200(t *testing.T) {
	env := FromUpdate(store.Outcome{}, nil, nil, "")
	if env.Status != 200 || env.Error != "Update failed" {
		t.Fatalf("update fallido: %+v", env)
	}
}

func TestFromDelete(t *testing.T) {
	if env := FromDelete(store.Outcome{Modified: 2, Acknowledged: true}); env.Status != 200 || env.Error != "" {
		t.Fatalf("delete ok: %+v", env)
	}
	env := FromDelete(store.Outcome{Matched: 1, Modified: 0, Acknowledged: true})
	if env.Status != 200 || env.Error != "Deletion failed." {
		t.Fatalf("delete repetido: %+v", env)
	}
}
