package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// startHealthcheckServer serves an HTTP aliveness endpoint while a run is
// in flight; long iperf3 plans can run for minutes, so an external checker
// needs something to poll. The returned func shuts the server down.
func (a *App) startHealthcheckServer(ctx context.Context, port int) func() {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		a.logger.Info("Health check server starting.", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("Health check server failed unexpectedly.", "error", err)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("Health check server shutdown failed.", "error", err)
			return
		}
		a.logger.Debug("Health check server shut down gracefully.")
	}
}
