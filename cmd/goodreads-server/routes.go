package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/katzenj/goodreads-analytics/services/dashboard"
	"github.com/katzenj/goodreads-analytics/services/goodreads"
	"github.com/katzenj/goodreads-analytics/services/syncer"
)

func registerRoutes(mux *http.ServeMux, coordinator syncer.Coordinator, dashboards dashboard.Service) {
	mux.HandleFunc("GET /api/dashboard", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		readerID, err := goodreads.ResolveReaderID(r.URL.Query().Get("reader"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		var year *int64
		if raw := r.URL.Query().Get("year"); raw != "" && raw != "All time" {
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, err)
				return
			}
			year = &n
		}

		// stale rows trigger a sync first so the dashboard reflects
		// the latest stored state; the cooldown inside Sync keeps
		// repeated loads from hammering the site
		fresh, err := coordinator.Fresh(ctx, readerID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if !fresh {
			_, syncErr := coordinator.Sync(ctx, readerID)
			if syncErr != nil {
				// a failed refresh still leaves the previously stored
				// state intact; serve that when it exists
				synced, err := coordinator.Synced(ctx, readerID)
				if err != nil || !synced {
					writeError(w, http.StatusBadGateway, syncErr)
					return
				}
				slog.WarnContext(ctx, "refresh failed, serving stored dashboard", "err", syncErr)
			}
		}

		view, err := dashboards.View(ctx, readerID, year)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJson(w, http.StatusOK, view)
	})

	mux.HandleFunc("POST /api/sync", func(w http.ResponseWriter, r *http.Request) {
		readerID, err := goodreads.ResolveReaderID(r.URL.Query().Get("reader"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		result, err := coordinator.Sync(r.Context(), readerID)
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeJson(w, http.StatusOK, map[string]any{
			"status":  string(result.Status),
			"pages":   result.Pages,
			"records": result.Records,
		})
	})
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if errors.Is(err, goodreads.ErrInvalidReader) {
		status = http.StatusBadRequest
	}
	writeJson(w, status, map[string]any{"error": err.Error()})
}
