// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpin "github.com/Madman-dev/ZZin/internal/adapters/in/http"
	"github.com/Madman-dev/ZZin/internal/infra/config"
	"github.com/Madman-dev/ZZin/internal/infra/logging"
	"github.com/Madman-dev/ZZin/internal/platform/di"
)

const serviceName = "zzin-api"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logging.InitLogger(serviceName, "development")
		log.Fatal().Err(err).Msg("[boot] config load failed")
	}
	logger := logging.InitLogger(serviceName, cfg.Environment)

	// ─────────────────────────────────────────────────────────────
	// Lightweight healthz first; keep it even if DI fails
	// ─────────────────────────────────────────────────────────────
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cont, err := di.NewContainer(ctx, cfg, logger); err != nil {
		logger.Warn().Err(err).Msg("[boot] di init failed (serving /healthz only)")
	} else {
		defer cont.Close()
		if cont.Verifier == nil {
			logger.Warn().Msg("[boot] no token verifier; POST /reviews will answer 503")
		}
		mux.Handle("/", httpin.NewRouter(cont.RouterDeps()))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      di.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// ─────────────────────────────────────────────────────────────
	// Graceful shutdown
	// ─────────────────────────────────────────────────────────────
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		sig := <-c
		logger.Info().Str("signal", sig.String()).Msg("[boot] shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("[boot] server shutdown error")
		}
		close(idleConnsClosed)
	}()

	logger.Info().Str("port", cfg.Port).Str("backend", cfg.StoreBackend).Msg("[boot] listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("[boot] server error")
	}

	<-idleConnsClosed
	logger.Info().Msg("[boot] server stopped")
}
