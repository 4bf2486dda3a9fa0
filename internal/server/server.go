// Package server assembles the HTTP handler: Connect services, exports,
// metrics and the static dashboard.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/saakhtemaan/internal/auth"
	"github.com/mmynk/saakhtemaan/internal/events"
	"github.com/mmynk/saakhtemaan/internal/export"
	"github.com/mmynk/saakhtemaan/internal/middleware"
	"github.com/mmynk/saakhtemaan/internal/service"
	"github.com/mmynk/saakhtemaan/internal/storage"
	"github.com/mmynk/saakhtemaan/pkg/api/apiconnect"
)

// Deps are the collaborators the handler is built from.
type Deps struct {
	Store         storage.Store
	Authenticator auth.Authenticator
	JWT           *auth.JWTManager
	Publisher     events.Publisher
	Registry      *prometheus.Registry
	Logger        *slog.Logger

	// StaticDir is served for every non-API path; empty disables it.
	StaticDir      string
	AllowedOrigins []string
}

// NewHandler wires every route. The result speaks HTTP/1.1 and h2c.
func NewHandler(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}

	metrics := middleware.NewMetrics(d.Registry)
	opts := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.RequireAuth(d.JWT,
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
		),
		middleware.LoggingInterceptor(),
		middleware.ValidationInterceptor(middleware.NewValidator()),
	)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(apiconnect.NewAuthServiceHandler(service.NewAuthService(d.Authenticator, d.JWT, d.Store, d.Logger), opts))
	mux.Handle(apiconnect.NewBuildingServiceHandler(service.NewBuildingService(d.Store), opts))
	mux.Handle(apiconnect.NewChargeServiceHandler(service.NewChargeService(d.Store, d.Publisher), opts))
	mux.Handle(apiconnect.NewPaymentServiceHandler(service.NewPaymentService(d.Store, d.Publisher), opts))
	mux.Handle(apiconnect.NewFundServiceHandler(service.NewFundService(d.Store), opts))

	export.NewHandler(d.Store).Register(mux, func(next http.Handler) http.Handler {
		return middleware.RequireAuthHTTP(d.JWT, next)
	})

	mux.Handle("GET /metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	if d.StaticDir != "" {
		mux.Handle("/", staticHandler(d.StaticDir))
	}

	co := cors.New(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms", "Content-Disposition"},
	})

	// Wrap with h2c for HTTP/2 without TLS
	return h2c.NewHandler(middleware.HTTPLogging(co.Handler(mux)), &http2.Server{})
}

// staticHandler serves the dashboard, falling back to index.html for
// unknown paths so client-side routes work.
func staticHandler(staticDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Unknown Connect procedures are API errors, not pages
		if strings.HasPrefix(r.URL.Path, apiconnect.PackagePrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean("/"+urlPath))
		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

// Serve runs an HTTP server on addr until ctx is done, then shuts it down.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
