package main

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/allsmog/dlogproto/pkg/group"
	"github.com/allsmog/dlogproto/pkg/measurement"
)

// newServer builds the optional HTTP surface: POST /run drives one
// commit/decommit plus Sigma-DH round and returns its outcome; GET /report
// serves the most recent measurement JSON written by /run.
func newServer(g group.Group, t int, sampler group.Sampler, rateLimitPerMinute int) http.Handler {
	var (
		mu             sync.RWMutex
		lastReportPath string
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.With(rateLimit(rateLimitPerMinute, time.Minute)).Post("/run", func(w http.ResponseWriter, req *http.Request) {
		m := measurement.New(subtaskNames, 1)
		correlationID := uuid.NewString()

		result, err := runRound(g, t, sampler, m, 0, correlationID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		args := []string{g.Name(), correlationID}
		if err := m.Finish("dlogproto-demo", args); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if path, err := measurement.ReportPath("dlogproto-demo", args); err == nil {
			mu.Lock()
			lastReportPath = path
			mu.Unlock()
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	})

	r.Get("/report", func(w http.ResponseWriter, req *http.Request) {
		mu.RLock()
		path := lastReportPath
		mu.RUnlock()

		if path == "" {
			http.Error(w, "no report has been generated yet", http.StatusNotFound)
			return
		}
		http.ServeFile(w, req, path)
	})

	return r
}
