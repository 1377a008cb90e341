// CLAUDE:SUMMARY Read-only HTTP API over the scan history: latest palette, scan list, single scan.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/colorscan/config"
	"github.com/hazyhaar/colorscan/history"
)

// runServe exposes the scan history over HTTP until the context is
// cancelled.
func runServe(ctx context.Context, logger *slog.Logger, cfg *config.Config, addr string) error {
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(store),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("colorscan: serving history", "addr", addr, "db", cfg.HistoryDB)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("colorscan: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRouter(store *history.Store) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Get("/api/scans", func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", 50)
		scans, err := store.List(r.Context(), limit)
		if err != nil {
			writeError(w, 500, err)
			return
		}
		if scans == nil {
			scans = []*history.Scan{}
		}
		writeJSON(w, 200, scans)
	})

	r.Get("/api/scans/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, 400, fmt.Errorf("bad scan id"))
			return
		}
		scan, err := store.Get(r.Context(), id)
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, 404, err)
			return
		}
		if err != nil {
			writeError(w, 500, err)
			return
		}
		writeScanResult(w, scan)
	})

	r.Get("/api/latest", func(w http.ResponseWriter, r *http.Request) {
		scan, err := store.Latest(r.Context())
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, 404, err)
			return
		}
		if err != nil {
			writeError(w, 500, err)
			return
		}
		writeScanResult(w, scan)
	})

	return r
}

// writeScanResult serves the stored palette JSON verbatim when the run
// succeeded, with the row metadata alongside.
func writeScanResult(w http.ResponseWriter, scan *history.Scan) {
	resp := map[string]any{"scan": scan}
	if scan.ResultJSON != "" {
		resp["result"] = json.RawMessage(scan.ResultJSON)
	}
	writeJSON(w, 200, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
