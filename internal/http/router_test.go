package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gomart/gomart/internal/cache"
	"github.com/gomart/gomart/internal/events"
	"github.com/gomart/gomart/internal/security/password"
	"github.com/gomart/gomart/internal/security/token"
	"github.com/gomart/gomart/internal/service"
	"github.com/gomart/gomart/internal/store/memory"
)

type envelope struct {
	Payload json.RawMessage `json:"payload"`
	Error   string          `json:"error"`
	Status  int             `json:"status"`
}

func newTestServer(t *testing.T) (*httptest.Server, *token.Issuer) {
	t.Helper()

	st := memory.New()
	issuer := token.NewIssuer("router-test-secret", "gomart-test")
	svcs := service.New(service.Deps{
		Store:    st,
		Emitter:  events.Noop{},
		Cache:    cache.Noop{},
		Tokens:   issuer,
		Password: password.Params{Cost: 4},
	})

	router := NewRouter(RouterConfig{
		Services: svcs,
		Store:    st,
		Issuer:   issuer,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, issuer
}

func doJSON(t *testing.T, method, url, bearer string, body any) (*http.Response, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp, env
}

func registerBody() map[string]any {
	return map[string]any{
		"firstName": "Nadia",
		"lastName":  "Ferreyra",
		"userName":  "nadiafe01",
		"password":  "supersecreta1",
		"email":     "nadia@example.com",
	}
}

func TestRegisterAndLoginFlow(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/users", "", registerBody())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, env.Error)

	var created struct {
		ID       int64  `json:"id"`
		UID      string `json:"uid"`
		Role     string `json:"role"`
		Password string `json:"password"`
	}
	require.NoError(t, json.Unmarshal(env.Payload, &created))
	require.EqualValues(t, 1, created.ID)
	require.NotEmpty(t, created.UID)
	require.Equal(t, "shopper", created.Role)
	require.Empty(t, created.Password, "el hash no debe salir por la API")

	resp, env = doJSON(t, http.MethodPost, srv.URL+"/users/login", "", map[string]any{
		"email":    "nadia@example.com",
		"password": "supersecreta1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Payload, &login))
	require.NotEmpty(t, login.Token)

	// Con el token puede leer su propio registro
	resp, env = doJSON(t, http.MethodGet, srv.URL+"/users/1", login.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, env.Error)
}

func TestRoleGuards(t *testing.T) {
	srv, issuer := newTestServer(t)

	// Sin token
	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/users", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Token de shopper no alcanza para listar usuarios
	shopper, err := issuer.Issue(map[string]any{"id": 7, "role": "shopper"})
	require.NoError(t, err)
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/users", shopper, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admin sí
	admin, err := issuer.Issue(map[string]any{"id": 1, "role": "admin"})
	require.NoError(t, err)
	resp, env := doJSON(t, http.MethodGet, srv.URL+"/users", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, env.Error)

	// Shopper tampoco puede publicar inventario
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/inventories", shopper, map[string]any{
		"categoryId": 1, "sellerId": 7, "name": "Parlante", "quantity": 2, "price": 99.9,
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCatalogIsPublicAndSearchValidates(t *testing.T) {
	srv, issuer := newTestServer(t)

	seller, err := issuer.Issue(map[string]any{"id": 2, "role": "seller"})
	require.NoError(t, err)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/inventories", seller, map[string]any{
		"categoryId": 1, "sellerId": 2, "name": "Mate imperial", "description": "calabaza", "quantity": 5, "price": 30,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, env.Error)

	// Lectura pública, sin token
	resp, env = doJSON(t, http.MethodGet, srv.URL+"/inventories", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Payload, &items))
	require.Len(t, items, 1)

	resp, env = doJSON(t, http.MethodGet, srv.URL+"/inventories/search?keyword=imperial", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Payload, &items))
	require.Len(t, items, 1)

	// keyword vacío: rechazo del service
	resp, env = doJSON(t, http.MethodGet, srv.URL+"/inventories/search", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotEmpty(t, env.Error)
}

func TestHealthAndUnknownRoute(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/no-such-route")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvalidJSONBodyIs400(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/users", bytes.NewBufferString("{no-es-json"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
