package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/auth-service/internal/config"
)

// newTestServer assembles the full application against an in-memory
// database. These are the end-to-end tests: real router, real middleware,
// real bcrypt, real SQLite.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.Config{
		Port:        0,
		Environment: "test",
		DBPath:      ":memory:",
		JWTSecret:   "e2e-test-secret-that-is-32-chars!!!!",
		CORSOrigins: []string{"http://localhost:3000"},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := New(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })
	return srv
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

type authBody struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"user"`
	Error string `json:"error"`
}

func decodeAuth(t *testing.T, rec *httptest.ResponseRecorder) authBody {
	t.Helper()
	var body authBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWelcome(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Message string `json:"message"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Welcome to Inside My Mind API", body.Message)
	assert.Equal(t, "1.0.0", body.Version)
}

func TestRegisterThenDuplicate(t *testing.T) {
	srv := newTestServer(t)

	payload := `{"email":"a@x.com","password":"password123","name":"A B"}`

	first := do(t, srv, http.MethodPost, "/auth/register", payload)
	require.Equal(t, http.StatusCreated, first.Code)

	body := decodeAuth(t, first)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "a@x.com", body.User.Email)
	assert.NotContains(t, first.Body.String(), "passwordHash")

	second := do(t, srv, http.MethodPost, "/auth/register", payload)
	require.Equal(t, http.StatusBadRequest, second.Code)
	assert.Equal(t, "User with this email already exists", decodeAuth(t, second).Error)
}

func TestLoginFlow(t *testing.T) {
	srv := newTestServer(t)

	register := do(t, srv, http.MethodPost, "/auth/register",
		`{"email":"login@x.com","password":"password123","name":"Login User"}`)
	require.Equal(t, http.StatusCreated, register.Code)

	good := do(t, srv, http.MethodPost, "/auth/login",
		`{"email":"login@x.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, good.Code)
	assert.NotEmpty(t, decodeAuth(t, good).Token)

	bad := do(t, srv, http.MethodPost, "/auth/login",
		`{"email":"login@x.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, bad.Code)
	assert.Equal(t, "Invalid email or password", decodeAuth(t, bad).Error)
}

func TestMe(t *testing.T) {
	srv := newTestServer(t)

	register := do(t, srv, http.MethodPost, "/auth/register",
		`{"email":"me@x.com","password":"password123","name":"Me User"}`)
	require.Equal(t, http.StatusCreated, register.Code)
	token := decodeAuth(t, register).Token

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "me@x.com", body.User.Email)
}

func TestMe_RequiresToken(t *testing.T) {
	srv := newTestServer(t)

	anonymous := do(t, srv, http.MethodGet, "/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status      string `json:"status"`
		Environment string `json:"environment"`
		Database    string `json:"database"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ok", body.Database)
	assert.Equal(t, "test", body.Environment)
}

func TestHealth_StorageDown(t *testing.T) {
	srv := newTestServer(t)

	// Closing the database makes the probe fail; the process keeps serving.
	require.NoError(t, srv.Close())

	rec := do(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.Equal(t, "error", body.Database)
}
