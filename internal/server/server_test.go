package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/saakhtemaan/internal/auth"
	"github.com/mmynk/saakhtemaan/internal/events"
	"github.com/mmynk/saakhtemaan/internal/storage/sqlite"
	"github.com/mmynk/saakhtemaan/pkg/api"
	"github.com/mmynk/saakhtemaan/pkg/api/apiconnect"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)

	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>dashboard</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(static, "app.js"), []byte("console.log(1)"), 0o644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(Deps{
		Store:          store,
		Authenticator:  auth.NewPasswordAuthenticator(store, bcrypt.MinCost),
		JWT:            auth.NewJWTManager("server-test-secret", time.Hour),
		Publisher:      events.NewLogPublisher(logger),
		Registry:       prometheus.NewRegistry(),
		Logger:         logger,
		StaticDir:      static,
		AllowedOrigins: []string{"https://dashboard.example"},
	})

	server := httptest.NewServer(handler)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRPCAndMetrics(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()
	client := apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL)

	reg, err := client.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email: "m@example.com", DisplayName: "m", Password: "long-password",
	}))
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Msg.Token)

	_, err = client.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))

	status, body := get(t, server.URL+"/metrics")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `saakhtemaan_rpc_requests_total{code="ok",procedure="/saakhtemaan.v1.AuthService/Register"} 1`)
	assert.Contains(t, body, `code="unauthenticated"`)
}

func TestJSONOverPlainHTTP(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Post(server.URL+apiconnect.AuthServiceRegisterProcedure, "application/json",
		strings.NewReader(`{"email":"web@example.com","display_name":"web","password":"long-password"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"token":`)
}

func TestStaticAndHealth(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/healthz", http.StatusOK, "ok"},
		{"/", http.StatusOK, "dashboard"},
		{"/app.js", http.StatusOK, "console.log"},
		{"/buildings/123", http.StatusOK, "dashboard"},
		{"/saakhtemaan.v1.NoSuchService/Call", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := get(t, server.URL+tt.path)
			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, body, tt.wantBody)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+apiconnect.AuthServiceLoginProcedure, nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://dashboard.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "content-type,authorization")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "https://dashboard.example", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServeShutsDownWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
