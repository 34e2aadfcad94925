package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"starwars/internal/app"
	"starwars/internal/config"
	"starwars/internal/database"
	"starwars/internal/models"
)

const testJWTSecret = "test_jwt_secret"

type testEnv struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
}

// setupApp sets up a Fiber app for testing with a fresh in-memory SQLite
// database and all handlers and services.
func setupApp(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{JWTSecret: testJWTSecret, JWTTTL: time.Hour}
	return &testEnv{t: t, app: app.New(cfg, db, nil), db: db}
}

// TestMain silences logging during tests
func TestMain(m *testing.M) {
	log.Logger = log.Output(io.Discard)
	os.Exit(m.Run())
}

func (e *testEnv) do(method, path string, body any, token string) (int, []byte) {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(e.t, err)
	return resp.StatusCode, raw
}

func (e *testEnv) createUser(username, password string) {
	e.t.Helper()
	status, body := e.do(http.MethodPost, "/users", map[string]any{
		"username": username,
		"email":    username + "@rebels.org",
		"password": password,
	}, "")
	require.Equal(e.t, http.StatusCreated, status, string(body))
}

func (e *testEnv) login(username, password string) string {
	e.t.Helper()
	status, body := e.do(http.MethodPost, "/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(e.t, http.StatusOK, status, string(body))

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(e.t, json.Unmarshal(body, &resp))
	require.NotEmpty(e.t, resp.Token)
	return resp.Token
}

func (e *testEnv) createPlanet(name string) uint {
	e.t.Helper()
	status, body := e.do(http.MethodPost, "/planets", map[string]any{
		"name": name, "diameter": 10465, "population": 200000, "climate": "arid", "terrain": "desert",
	}, "")
	require.Equal(e.t, http.StatusCreated, status, string(body))

	var resp struct {
		Planet models.PlanetResponse `json:"planet"`
	}
	require.NoError(e.t, json.Unmarshal(body, &resp))
	return resp.Planet.ID
}

func (e *testEnv) createPerson(name, hairColor string) uint {
	e.t.Helper()
	status, body := e.do(http.MethodPost, "/people", map[string]any{"name": name, "hair_color": hairColor}, "")
	require.Equal(e.t, http.StatusCreated, status, string(body))

	var resp struct {
		Character models.PersonResponse `json:"character"`
	}
	require.NoError(e.t, json.Unmarshal(body, &resp))
	return resp.Character.ID
}

func (e *testEnv) countFavorites() int64 {
	e.t.Helper()
	var n int64
	require.NoError(e.t, e.db.Model(&models.Favorite{}).Count(&n).Error)
	return n
}

func errorMsg(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Msg        string `json:"msg"`
		StatusCode int    `json:"status_code"`
	}
	require.NoError(t, json.Unmarshal(body, &resp), string(body))
	return resp.Msg
}

func TestPeople_CreateAndGet(t *testing.T) {
	env := setupApp(t)

	status, body := env.do(http.MethodPost, "/people", map[string]string{"name": "Luke", "hair_color": "blond"}, "")
	require.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"msg":"char added successfully","character":{"id":1,"name":"Luke","hair_color":"blond"}}`, string(body))

	status, body = env.do(http.MethodGet, "/people/1", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":1,"name":"Luke","hair_color":"blond"}`, string(body))

	status, body = env.do(http.MethodGet, "/people", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"id":1,"name":"Luke","hair_color":"blond"}]`, string(body))
}

func TestPeople_Errors(t *testing.T) {
	env := setupApp(t)

	status, body := env.do(http.MethodGet, "/people/99", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "wrong character id", errorMsg(t, body))

	status, body = env.do(http.MethodGet, "/people/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, errorMsg(t, body))

	status, body = env.do(http.MethodPost, "/people", map[string]string{"hair_color": "blond"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "name required", errorMsg(t, body))

	status, body = env.do(http.MethodPost, "/people", map[string]string{"name": "Luke"}, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "hair_color required", errorMsg(t, body))

	status, body = env.do(http.MethodPost, "/people", map[string]any{"name": "Luke", "hair_color": "blond", "homeplanet_id": 42}, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "wrong planet id", errorMsg(t, body))

	status, body = env.do(http.MethodGet, "/people", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestPeople_WithHomeplanet(t *testing.T) {
	env := setupApp(t)
	planetID := env.createPlanet("Tatooine")

	status, body := env.do(http.MethodPost, "/people", map[string]any{"name": "Luke", "hair_color": "blond", "homeplanet_id": planetID}, "")
	require.Equal(t, http.StatusCreated, status, string(body))

	var person models.Person
	require.NoError(t, env.db.First(&person).Error)
	require.NotNil(t, person.HomeplanetID)
	assert.Equal(t, planetID, *person.HomeplanetID)
}

func TestPlanets_CreateAndGet(t *testing.T) {
	env := setupApp(t)

	planet := map[string]any{"name": "Tatooine", "diameter": 10465, "population": 200000, "climate": "arid", "terrain": "desert"}
	status, body := env.do(http.MethodPost, "/planets", planet, "")
	require.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"msg":"planet added successfully","planet":{"id":1,"name":"Tatooine","diameter":10465,"population":200000,"climate":"arid","terrain":"desert"}}`, string(body))

	status, body = env.do(http.MethodGet, "/planet/1", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":1,"name":"Tatooine","diameter":10465,"population":200000,"climate":"arid","terrain":"desert"}`, string(body))

	// GET /planets lists planets, not people
	env.createPerson("Luke", "blond")
	status, body = env.do(http.MethodGet, "/planets", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"id":1,"name":"Tatooine","diameter":10465,"population":200000,"climate":"arid","terrain":"desert"}]`, string(body))

	status, body = env.do(http.MethodGet, "/planet/2", nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "wrong planet id", errorMsg(t, body))
}

func TestPlanets_RequiredFields(t *testing.T) {
	env := setupApp(t)

	full := map[string]any{"name": "Hoth", "diameter": 7200, "population": 0, "climate": "frozen", "terrain": "tundra"}
	for _, field := range []string{"name", "diameter", "population", "climate", "terrain"} {
		t.Run(field, func(t *testing.T) {
			body := map[string]any{}
			for k, v := range full {
				if k != field {
					body[k] = v
				}
			}
			status, raw := env.do(http.MethodPost, "/planets", body, "")
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, field+" required", errorMsg(t, raw))
		})
	}

	// Zero values are present, not missing
	status, raw := env.do(http.MethodPost, "/planets", full, "")
	assert.Equal(t, http.StatusCreated, status, string(raw))

	status, raw = env.do(http.MethodPost, "/planets", "not an object", "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid request body", errorMsg(t, raw))
}

func TestUsers_CreateAndList(t *testing.T) {
	env := setupApp(t)

	status, body := env.do(http.MethodPost, "/users", map[string]any{
		"username": "luke", "email": "luke@rebels.org", "password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"msg":"user added successfully","user":{"id":1,"username":"luke","email":"luke@rebels.org","favorites":null}}`, string(body))

	status, body = env.do(http.MethodGet, "/users", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"id":1,"username":"luke","email":"luke@rebels.org","favorites":null}]`, string(body))
	assert.NotContains(t, string(body), "password")

	var stored models.User
	require.NoError(t, env.db.First(&stored).Error)
	assert.NotEqual(t, "password123", stored.Password)
	assert.True(t, stored.IsActive)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	env := setupApp(t)
	env.createUser("luke", "password123")

	status, body := env.do(http.MethodPost, "/users", map[string]any{
		"username": "skywalker", "email": "luke@rebels.org", "password": "x",
	}, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.NotEmpty(t, errorMsg(t, body))

	var users []models.User
	require.NoError(t, env.db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "luke", users[0].Username)
}

func TestLogin(t *testing.T) {
	env := setupApp(t)
	env.createUser("luke", "password123")

	status, body := env.do(http.MethodPost, "/login", map[string]string{"username": "luke", "password": "password123"}, "")
	require.Equal(t, http.StatusOK, status)
	var resp struct {
		Token    string              `json:"token"`
		Identity models.UserResponse `json:"identity"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "luke", resp.Identity.Username)

	for name, creds := range map[string]map[string]string{
		"wrong password":   {"username": "luke", "password": "nope"},
		"unknown user":     {"username": "vader", "password": "password123"},
		"missing password": {"username": "luke"},
	} {
		t.Run(name, func(t *testing.T) {
			status, body := env.do(http.MethodPost, "/login", creds, "")
			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, "Wrong username or password", errorMsg(t, body))
			assert.NotContains(t, string(body), "token")
		})
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	env := setupApp(t)
	status, body := env.do(http.MethodPost, "/users", map[string]any{
		"username": "han", "email": "han@rebels.org", "password": "falcon", "is_active": false,
	}, "")
	require.Equal(t, http.StatusCreated, status, string(body))

	status, _ = env.do(http.MethodPost, "/login", map[string]string{"username": "han", "password": "falcon"}, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	env := setupApp(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/users/favorites"},
		{http.MethodPost, "/favorite/planet/1"},
		{http.MethodDelete, "/favorite/planet/1"},
		{http.MethodPost, "/favorite/people/1"},
		{http.MethodDelete, "/favorite/people/1"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			status, _ := env.do(r.method, r.path, nil, "")
			assert.Equal(t, http.StatusUnauthorized, status)

			status, _ = env.do(r.method, r.path, nil, "not-a-jwt")
			assert.Equal(t, http.StatusUnauthorized, status)
		})
	}
	assert.Zero(t, env.countFavorites())
}

func TestFavorites_Lifecycle(t *testing.T) {
	env := setupApp(t)
	env.createUser("luke", "password123")
	token := env.login("luke", "password123")
	planetID := env.createPlanet("Tatooine")
	personID := env.createPerson("Leia", "brown")

	// Empty list, not a message
	status, body := env.do(http.MethodGet, "/users/favorites", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, body = env.do(http.MethodPost, fmt.Sprintf("/favorite/planet/%d", planetID), nil, token)
	require.Equal(t, http.StatusCreated, status, string(body))
	assert.JSONEq(t, `{"msg":"Favorite added","favorite":{"id":1,"name":"luke","planet":"Tatooine","people":null}}`, string(body))

	status, body = env.do(http.MethodPost, fmt.Sprintf("/favorite/people/%d", personID), nil, token)
	require.Equal(t, http.StatusCreated, status, string(body))

	// The same token sees the new favorites
	status, body = env.do(http.MethodGet, "/users/favorites", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[
		{"id":1,"name":"luke","planet":"Tatooine","people":null},
		{"id":2,"name":"luke","planet":null,"people":"Leia"}
	]`, string(body))

	status, body = env.do(http.MethodGet, "/users", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"planet":"Tatooine"`)

	status, body = env.do(http.MethodDelete, fmt.Sprintf("/favorite/planet/%d", planetID), nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"msg":"favorite planet deleted"}`, string(body))

	status, body = env.do(http.MethodDelete, fmt.Sprintf("/favorite/people/%d", personID), nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"msg":"favorite character deleted"}`, string(body))

	assert.Zero(t, env.countFavorites())
}

func TestFavorites_Errors(t *testing.T) {
	env := setupApp(t)
	env.createUser("luke", "password123")
	token := env.login("luke", "password123")
	planetID := env.createPlanet("Tatooine")

	status, body := env.do(http.MethodPost, "/favorite/planet/99", nil, token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "wrong planet id", errorMsg(t, body))

	status, body = env.do(http.MethodPost, "/favorite/people/99", nil, token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "wrong char id", errorMsg(t, body))
	assert.Zero(t, env.countFavorites())

	status, body = env.do(http.MethodDelete, "/favorite/people/99", nil, token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "wrong character id", errorMsg(t, body))

	status, body = env.do(http.MethodDelete, fmt.Sprintf("/favorite/planet/%d", planetID), nil, token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "wrong planet id", errorMsg(t, body))

	status, _ = env.do(http.MethodPost, "/favorite/planet/0", nil, token)
	assert.Equal(t, http.StatusBadRequest, status)

	// Duplicate
	status, _ = env.do(http.MethodPost, fmt.Sprintf("/favorite/planet/%d", planetID), nil, token)
	require.Equal(t, http.StatusCreated, status)
	status, _ = env.do(http.MethodPost, fmt.Sprintf("/favorite/planet/%d", planetID), nil, token)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, int64(1), env.countFavorites())
}

func TestFavorites_ScopedToCaller(t *testing.T) {
	env := setupApp(t)
	env.createUser("luke", "password123")
	env.createUser("leia", "password456")
	lukeToken := env.login("luke", "password123")
	leiaToken := env.login("leia", "password456")
	planetID := env.createPlanet("Alderaan")

	status, _ := env.do(http.MethodPost, fmt.Sprintf("/favorite/planet/%d", planetID), nil, lukeToken)
	require.Equal(t, http.StatusCreated, status)

	status, body := env.do(http.MethodGet, "/users/favorites", nil, leiaToken)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, _ = env.do(http.MethodDelete, fmt.Sprintf("/favorite/planet/%d", planetID), nil, leiaToken)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, int64(1), env.countFavorites())
}

func TestSitemapAndHealth(t *testing.T) {
	env := setupApp(t)

	status, body := env.do(http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `{"method":"GET","path":"/people"}`)
	assert.Contains(t, string(body), `{"method":"POST","path":"/favorite/planet/:id"}`)

	status, body = env.do(http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"status":"healthy"`)
}

func TestErrorBody_Shape(t *testing.T) {
	env := setupApp(t)

	status, body := env.do(http.MethodGet, "/no-such-route", nil, "")
	assert.Equal(t, http.StatusNotFound, status)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Contains(t, resp, "msg")
	assert.Contains(t, resp, "message")
	assert.EqualValues(t, http.StatusNotFound, resp["status_code"])
}
