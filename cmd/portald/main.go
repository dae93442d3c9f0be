package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"resnet-portal/internal/common"
	"resnet-portal/internal/config"
	"resnet-portal/internal/store"
	"resnet-portal/internal/user"

	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

func main() {
	logger, cleanupLogger := common.InitializeLogger()
	defer cleanupLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backends, cleanupBackends, err := common.InitializeBackends(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize backends", zap.Error(err))
	}
	defer cleanupBackends()

	view := user.NewView(user.NewResolver(backends...), cfg.Portal)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		serveView(w, r, func() (any, error) {
			return view.Get(r.Context(), r.PathValue("id"))
		})
	})
	mux.HandleFunc("GET /by-ip/{ip}", func(w http.ResponseWriter, r *http.Request) {
		serveView(w, r, func() (any, error) {
			return view.FromIP(r.Context(), r.PathValue("ip"))
		})
	})
	mux.HandleFunc("GET /by-mac/{mac}", func(w http.ResponseWriter, r *http.Request) {
		serveView(w, r, func() (any, error) {
			return view.FromMAC(r.Context(), r.PathValue("mac"))
		})
	})

	// h2c so the portal speaks HTTP/2 behind the campus reverse proxy
	// without terminating TLS itself.
	server := &http.Server{
		Addr:              cfg.Portal.ListenAddr,
		Handler:           h2c.NewHandler(mux, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Shutdown did not complete cleanly", zap.Error(err))
		}
	}()

	logger.Info("Portal listening", zap.String("addr", cfg.Portal.ListenAddr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func serveView(w http.ResponseWriter, r *http.Request, lookup func() (any, error)) {
	result, err := lookup()
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, store.ErrAccountNotFound):
			status = http.StatusNotFound
		case errors.Is(err, store.ErrBackendUnavailable):
			status = http.StatusBadGateway
		}
		zap.L().Warn("Lookup failed",
			zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		zap.L().Warn("Failed to encode response", zap.Error(err))
	}
}
