package service

import (
	"context"
	"testing"

	"github.com/gomart/gomart/internal/cache"
	"github.com/gomart/gomart/internal/domain/model"
	"github.com/gomart/gomart/internal/events"
	"github.com/gomart/gomart/internal/security/password"
	"github.com/gomart/gomart/internal/security/token"
	"github.com/gomart/gomart/internal/store"
	"github.com/gomart/gomart/internal/store/memory"
)

func testDeps() Deps {
	return Deps{
		Store:    memory.New(),
		Emitter:  events.Noop{},
		Cache:    cache.Noop{},
		Tokens:   token.NewIssuer("test-secret", "gomart-test"),
		Password: password.Params{Cost: 4}, // cost mínimo para tests rápidos
	}
}

func validUserBody() store.Document {
	return store.Document{
		"firstName": "Elena",
		"lastName":  "Quiroga",
		"userName":  "elenaq01",
		"password":  "hunter2hunter2",
		"email":     "elena@example.com",
	}
}

func TestUserRegisterAndLogin(t *testing.T) {
	svcs := New(testDeps())
	ctx := context.Background()

	env := svcs.User.CreateUser(ctx, validUserBody())
	if env.Error != "" {
		t.Fatalf("CreateUser: unexpected error %q", env.Error)
	}
	if env.Status != 200 {
		t.Fatalf("CreateUser: status = %d, want 200", env.Status)
	}
	user, ok := env.Payload.(model.User)
	if !ok {
		t.Fatalf("CreateUser: payload is %T, want model.User", env.Payload)
	}
	if user.ID != 1 {
		t.Fatalf("CreateUser: id = %d, want 1", user.ID)
	}
	if user.UID == "" {
		t.Fatal("CreateUser: uid not assigned")
	}
	if user.Role != model.RoleShopper {
		t.Fatalf("CreateUser: role = %q, want shopper", user.Role)
	}
	if user.Password != "" {
		t.Fatal("CreateUser: payload leaked the password hash")
	}

	login := svcs.User.Login(ctx, store.Document{
		"email":    "elena@example.com",
		"password": "hunter2hunter2",
	})
	if login.Error != "" || login.Status != 200 {
		t.Fatalf("Login: error=%q status=%d", login.Error, login.Status)
	}
	payload := login.Payload.(struct {
		model.User
		Token string `json:"token"`
	})
	if payload.Token == "" {
		t.Fatal("Login: no token issued")
	}
	if payload.Password != "" {
		t.Fatal("Login: payload leaked the password hash")
	}

	bad := svcs.User.Login(ctx, store.Document{
		"email":    "elena@example.com",
		"password": "wrong-password",
	})
	if bad.Status != 401 {
		t.Fatalf("Login with wrong password: status = %d, want 401", bad.Status)
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svcs := New(testDeps())
	ctx := context.Background()

	if env := svcs.User.CreateUser(ctx, validUserBody()); env.Error != "" {
		t.Fatalf("first CreateUser: %q", env.Error)
	}
	body := validUserBody()
	body["userName"] = "otrousuario"
	env := svcs.User.CreateUser(ctx, body)
	if env.Status != 400 || env.Error == "" {
		t.Fatalf("duplicate email: status=%d error=%q, want 400 with error", env.Status, env.Error)
	}
}

func TestCreateUserRejectsShortPassword(t *testing.T) {
	svcs := New(testDeps())
	body := validUserBody()
	body["password"] = "short"

	env := svcs.User.CreateUser(context.Background(), body)
	if env.Status != 400 {
		t.Fatalf("status = %d, want 400", env.Status)
	}
}

func TestUpdateInventoryNonExistentIsAcknowledgedNoop(t *testing.T) {
	svcs := New(testDeps())

	env := svcs.Inventory.UpdateInventoryByID(context.Background(), 42, store.Document{"price": 12.5})
	if env.Status != 210 || env.Error != "" {
		t.Fatalf("status=%d error=%q, want acknowledged noop 210", env.Status, env.Error)
	}
}

func TestInventorySearchByKeyword(t *testing.T) {
	svcs := New(testDeps())
	ctx := context.Background()

	seed := []store.Document{
		{"categoryId": 1, "sellerId": 1, "name": "Guitarra criolla", "description": "seis cuerdas", "quantity": 3, "price": 120.0},
		{"categoryId": 1, "sellerId": 1, "name": "Bajo eléctrico", "description": "cuatro cuerdas", "quantity": 1, "price": 340.0},
		{"categoryId": 2, "sellerId": 2, "name": "Atril", "description": "para partituras", "quantity": 9, "price": 15.0},
	}
	for _, doc := range seed {
		if env := svcs.Inventory.CreateInventory(ctx, doc); env.Error != "" {
			t.Fatalf("seed: %q", env.Error)
		}
	}

	env := svcs.Inventory.SearchInventories(ctx, "", "cuerdas", nil)
	if env.Error != "" || env.Status != 200 {
		t.Fatalf("search: error=%q status=%d", env.Error, env.Status)
	}
	items, ok := env.Payload.([]model.Inventory)
	if !ok {
		t.Fatalf("payload is %T, want []model.Inventory", env.Payload)
	}
	if len(items) != 2 {
		t.Fatalf("matched %d items, want 2", len(items))
	}

	empty := svcs.Inventory.SearchInventories(ctx, "name", "   ", nil)
	if empty.Status != 400 {
		t.Fatalf("empty keyword: status = %d, want 400", empty.Status)
	}
}

func TestDeleteUserIsIdempotentLogicalFailure(t *testing.T) {
	svcs := New(testDeps())
	ctx := context.Background()

	if env := svcs.User.CreateUser(ctx, validUserBody()); env.Error != "" {
		t.Fatalf("CreateUser: %q", env.Error)
	}

	first := svcs.User.DeleteUserByID(ctx, 1)
	if first.Error != "" || first.Status != 200 {
		t.Fatalf("first delete: error=%q status=%d", first.Error, first.Status)
	}
	second := svcs.User.DeleteUserByID(ctx, 1)
	if second.Status != 200 || second.Error != "Deletion failed." {
		t.Fatalf("second delete: status=%d error=%q, want 200 %q", second.Status, second.Error, "Deletion failed.")
	}
}

func TestReadUsersByFilterCount(t *testing.T) {
	svcs := New(testDeps())
	ctx := context.Background()

	for _, email := range []string{"a-uno@example.com", "b-dos@example.com"} {
		body := validUserBody()
		body["email"] = email
		body["userName"] = "user_" + email[:5]
		if env := svcs.User.CreateUser(ctx, body); env.Error != "" {
			t.Fatalf("seed %s: %q", email, env.Error)
		}
	}

	env := svcs.User.ReadUsersByFilter(ctx, map[string]any{"count": true})
	if env.Error != "" {
		t.Fatalf("filter count: %q", env.Error)
	}
	counts, ok := env.Payload.(map[string]int64)
	if !ok {
		t.Fatalf("payload is %T, want map[string]int64", env.Payload)
	}
	if counts["count"] != 2 {
		t.Fatalf("count = %d, want 2", counts["count"])
	}
}
