package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta"
	"github.com/vfg2006/meta-capi-gateway/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-capi-gateway/internal/config"
	"github.com/vfg2006/meta-capi-gateway/internal/usecases/authenticating"
	"github.com/vfg2006/meta-capi-gateway/internal/usecases/forwarding"
	"github.com/vfg2006/meta-capi-gateway/internal/usecases/normalizing"
)

type capturedRequest struct {
	path string
	body map[string]any
}

// newTestServer monta a cadeia completa apontando para uma Meta falsa
func newTestServer(t *testing.T, token, secret string, upstream http.HandlerFunc) (*Server, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	fake := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, jsoniter.Unmarshal(raw, &captured.body))
		upstream(w, r)
	}))
	t.Cleanup(fake.Close)

	cfg := &config.Config{
		Server: config.Server{Host: "localhost", Port: "0"},
		Meta: config.Meta{
			URL:     fake.URL + "/v22.0",
			Version: "v22.0",
			PixelID: "1234567890",
		},
		Auth: config.Auth{Secret: secret},
	}

	sender := meta.New(cfg, metaclient.NewClient(cfg))
	forwarder := forwarding.NewService(normalizing.NewService(cfg), sender, config.StaticCredential(token))

	srv, err := New(cfg, forwarder, authenticating.NewService(cfg))
	require.NoError(t, err)
	return srv, captured
}

func metaOK(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"events_received":1}`))
}

const purchaseBody = `{"events":[{"event_name":"Purchase","event_time":1700000000,"action_source":"website","user_data":{"em":"Test@Example.com","client_ip_address":"{{client_ip}}"},"custom_data":{"value":19.99,"currency":"USD"}}]}`

func TestServer_EndToEnd(t *testing.T) {
	srv, captured := newTestServer(t, "token-123", "", metaOK)

	req := httptest.NewRequest(http.MethodPost, "/v1/events", bytes.NewBufferString(purchaseBody))
	req.Header.Set("X-Forwarded-For", "203.0.113.5")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"status":200,"meta_response":{"events_received":1},"events_count":1}`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))

	assert.Equal(t, "/v22.0/1234567890/events", captured.path)
	assert.Equal(t, "token-123", captured.body["access_token"])
	assert.Contains(t, captured.body, "test_event_code")
	assert.Nil(t, captured.body["test_event_code"])

	data, ok := captured.body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)

	event := data[0].(map[string]any)
	userData := event["user_data"].(map[string]any)
	assert.Equal(t, "973dfe463ec85785f5f95af5ba3906eedb2d931c24e69824a89ea65dba4e813b", userData["em"])
	assert.Equal(t, "203.0.113.5", userData["client_ip_address"])
	assert.Equal(t, map[string]any{"value": 19.99, "currency": "USD"}, event["custom_data"])
}

func TestServer_UpstreamRejection(t *testing.T) {
	srv, _ := newTestServer(t, "token-123", "", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Error validating access token","type":"OAuthException","code":190}}`))
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/events", bytes.NewBufferString(purchaseBody)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.JSONEq(t, `{"success":false,"status":401,"meta_response":{"error":{"message":"Error validating access token","type":"OAuthException","code":190}},"events_count":1}`, rec.Body.String())
}

func TestServer_Preflight(t *testing.T) {
	srv, captured := newTestServer(t, "token-123", "segredo", metaOK)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/v1/events", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, captured.path)
}

func TestServer_AuthRequiredWhenSecretSet(t *testing.T) {
	srv, captured := newTestServer(t, "token-123", "segredo", metaOK)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/events", bytes.NewBufferString(purchaseBody)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, captured.path)

	token, err := authenticating.NewService(&config.Config{Auth: config.Auth{Secret: "segredo"}}).GenerateToken("site", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/events", bytes.NewBufferString(purchaseBody))
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Routes(t *testing.T) {
	srv, _ := newTestServer(t, "token-123", "", metaOK)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "healthcheck", method: http.MethodGet, path: "/healthcheck", wantStatus: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{name: "rota inexistente", method: http.MethodGet, path: "/v1/nada", wantStatus: http.StatusNotFound},
		{name: "método não permitido", method: http.MethodGet, path: "/v1/events", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
