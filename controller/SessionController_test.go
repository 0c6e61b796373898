package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farm-market-session/controller"
	"farm-market-session/dto"
	"farm-market-session/metrics"
	"farm-market-session/model"
	"farm-market-session/repository"
	"farm-market-session/service"
	"farm-market-session/util"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "controller-secret"

func newTestApp(t *testing.T, rateLimit int) *fiber.App {
	t.Helper()
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	svc := service.NewSessionService(
		util.NewHMACDecoder([]byte(secret)),
		repository.NewInMemorySessionRepo(),
		util.NewSealer("k"),
		nil,
		collector,
	)

	app := fiber.New()
	controller.SetupRoutes(app, svc, collector, reg, util.Config{
		RateLimitMax:    rateLimit,
		RateLimitWindow: time.Minute,
	})
	return app
}

func authResponse(t *testing.T, id int64, role model.Role, ttl time.Duration) dto.AuthResponse {
	t.Helper()
	token, err := util.NewHMACSigner([]byte(secret)).Sign(util.NewPayload(id, "a@x.com", role, time.Now(), ttl))
	require.NoError(t, err)
	return dto.AuthResponse{
		Token: token,
		User:  &model.User{ID: id, Email: "a@x.com", FirstName: "A", LastName: "B", Role: role},
	}
}

func do(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

func TestSessionLifecycle(t *testing.T) {
	app := newTestApp(t, 100)

	// Act 1: nobody signed in
	status, body := do(t, app, http.MethodGet, "/api/v1/session", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "no active session", body["error"])

	// Act 2: establish
	status, body = do(t, app, http.MethodPost, "/api/v1/session", authResponse(t, 1, model.RoleBuyer, time.Hour))
	require.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, body["session_id"])
	assert.NotContains(t, body, "token", "raw token is never echoed")
	user := body["user"].(map[string]interface{})
	assert.Equal(t, float64(1), user["id"])
	assert.Equal(t, "buyer", user["role"])
	assert.Equal(t, "A", user["firstName"])

	// Act 3: read it back
	status, current := do(t, app, http.MethodGet, "/api/v1/session", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, body["session_id"], current["session_id"])

	// Act 4: sign out, twice
	status, _ = do(t, app, http.MethodDelete, "/api/v1/session", nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = do(t, app, http.MethodDelete, "/api/v1/session", nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = do(t, app, http.MethodGet, "/api/v1/session", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestEstablish_ErrorMapping(t *testing.T) {
	app := newTestApp(t, 100)

	inconsistent := authResponse(t, 1, model.RoleBuyer, time.Hour)
	inconsistent.User.ID = 2

	badToken := authResponse(t, 1, model.RoleBuyer, time.Hour)
	badToken.Token = "invalid.token.string"

	expired := authResponse(t, 1, model.RoleBuyer, -time.Hour)

	missingUser := dto.AuthResponse{Token: "abc"}

	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"inconsistent user", inconsistent, http.StatusUnprocessableEntity},
		{"bad signature", badToken, http.StatusUnauthorized},
		{"missing user", missingUser, http.StatusBadRequest},
		{"expired token", expired, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, http.MethodPost, "/api/v1/session", tt.body)
			assert.Equal(t, tt.status, status)
			assert.NotEmpty(t, body["error"])
		})
	}

	// nothing above may have produced a session
	status, _ := do(t, app, http.MethodGet, "/api/v1/session", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestEstablish_MalformedBody(t *testing.T) {
	app := newTestApp(t, 100)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEstablish_RateLimited(t *testing.T) {
	app := newTestApp(t, 2)
	body := authResponse(t, 1, model.RoleBuyer, time.Hour)

	for i := 0; i < 2; i++ {
		status, _ := do(t, app, http.MethodPost, "/api/v1/session", body)
		require.Equal(t, http.StatusCreated, status)
	}

	status, resp := do(t, app, http.MethodPost, "/api/v1/session", body)
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "rate limit exceeded", resp["error"])
}

func TestDecodeEndpoint(t *testing.T) {
	app := newTestApp(t, 100)

	live := authResponse(t, 5, model.RoleFarmer, time.Hour)
	status, body := do(t, app, http.MethodPost, "/api/v1/token/decode", dto.DecodeRequest{Token: live.Token})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["expired"])
	payload := body["payload"].(map[string]interface{})
	assert.Equal(t, float64(5), payload["id"])
	assert.Equal(t, "farmer", payload["role"])

	old := authResponse(t, 5, model.RoleFarmer, -time.Minute)
	status, body = do(t, app, http.MethodPost, "/api/v1/token/decode", dto.DecodeRequest{Token: old.Token})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["expired"])

	status, _ = do(t, app, http.MethodPost, "/api/v1/token/decode", dto.DecodeRequest{Token: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = do(t, app, http.MethodPost, "/api/v1/token/decode", dto.DecodeRequest{})
	assert.Equal(t, http.StatusBadRequest, status)

	// decoding never establishes a session
	status, _ = do(t, app, http.MethodGet, "/api/v1/session", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t, 100)

	status, body := do(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	do(t, app, http.MethodPost, "/api/v1/session", authResponse(t, 1, model.RoleBuyer, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "farm_session_established_total 1")
	assert.Contains(t, string(raw), "farm_http_request_duration_seconds")
}
