package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/acerto/acerto/internal/apperr"
	"github.com/acerto/acerto/internal/auth"
	"github.com/acerto/acerto/internal/config"
	"github.com/acerto/acerto/internal/core"
	"github.com/acerto/acerto/internal/ids"
	"github.com/acerto/acerto/internal/middleware"
	"github.com/acerto/acerto/internal/proofs"
	"github.com/acerto/acerto/internal/service"
	"github.com/acerto/acerto/internal/storage"
	"github.com/acerto/acerto/internal/storage/memory"
	"github.com/acerto/acerto/internal/storage/sqlite"
	"github.com/acerto/acerto/pkg/api/apiconnect"
	"github.com/acerto/acerto/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func serveCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.load()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, logging.Setup(cfg.LogLevel))
		},
	}
	cmd.Flags().StringVar(&f.addr, "addr", "", "Listen address (default: ACERTO_ADDR)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("Storage initialized", "kind", cfg.Store.Kind, "database", cfg.Store.DBPath)

	proofStore, err := openProofs(ctx, cfg)
	if err != nil {
		return err
	}

	handler := newHandler(ctx, cfg, store, proofStore, logger)

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		// Wrap with h2c for HTTP/2 without TLS (required for Connect)
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", cfg.Server.Addr, "url", cfg.Server.PublicBaseURL)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (storage.Store, error) {
	switch cfg.Kind {
	case config.StoreSQLite:
		store, err := sqlite.New(ctx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		return store, nil
	default:
		return memory.New(), nil
	}
}

func openProofs(ctx context.Context, cfg *config.Config) (proofs.Store, error) {
	if cfg.Proofs.Kind != config.ProofsMinIO {
		return proofs.NewInline(cfg.Proofs.MaxBytes), nil
	}

	store, err := proofs.NewMinIO(cfg.MinIO, cfg.Proofs.MaxBytes)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// newHandler wires the services, interceptors and plain HTTP routes.
// Background work started here stops with ctx.
func newHandler(ctx context.Context, cfg *config.Config, store storage.Store, proofStore proofs.Store, logger *slog.Logger) http.Handler {
	var clock ids.Clock = ids.SystemClock
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TTL, clock)

	groups := core.NewGroupService(store, clock)
	invites := core.NewInviteService(store, clock, cfg.Invite.TTL)
	expenses := core.NewExpenseService(store, clock)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(reg)

	// Outermost first. The rate limiter runs after auth to key by user.
	interceptors := []connect.Interceptor{
		metrics.Interceptor(),
		middleware.Logging(logger),
		middleware.Authenticate(jwtManager, service.PublicProcedures...),
	}
	if cfg.RateLimit.RPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		limiter.StartCleanup(ctx, time.Minute)
		interceptors = append(interceptors, limiter.Interceptor())
	}
	opts := connect.WithInterceptors(interceptors...)

	inviteSvc := service.NewInviteService(groups, invites, cfg.Server.PublicBaseURL, logger)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(auth.NewPasswordAuthenticator(store, clock), store, jwtManager, logger), opts))
	mux.Handle(apiconnect.NewGroupServiceHandler(service.NewGroupService(groups, clock, logger), opts))
	mux.Handle(apiconnect.NewInviteServiceHandler(inviteSvc, opts))
	mux.Handle(apiconnect.NewExpenseServiceHandler(service.NewExpenseService(groups, expenses, proofStore, logger), opts))
	mux.Handle(apiconnect.NewActivityServiceHandler(service.NewActivityService(groups, clock, logger), opts))

	mux.HandleFunc("GET /invite/{token}", inviteHandler(inviteSvc))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Add logging and CORS middleware
	return loggingMiddleware(corsMiddleware(mux))
}

// inviteHandler resolves join links opened outside the app.
func inviteHandler(invites *service.InviteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := invites.Resolve(r.Context(), r.PathValue("token"))
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, resp)
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		default:
			slog.Error("Invite lookup failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
