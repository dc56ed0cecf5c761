package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gocanopy/dealsense/internal/app"
	"github.com/gocanopy/dealsense/internal/history"
	"github.com/gocanopy/dealsense/internal/models"
	"github.com/gocanopy/dealsense/internal/samples"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	h := s.store.Load()
	resp := map[string]interface{}{
		"state":            s.session.State(),
		"total_deals":      h.TotalDeals,
		"average_cap_rate": h.AverageCapRate,
		"total_value":      h.TotalValue,
		"storage": map[string]interface{}{
			"backend": s.config.Storage.Backend,
			"disk_usage_bytes": history.DiskUsageBytes(
				s.config.Storage.HistoryPath,
				s.config.Storage.DatabasePath,
				s.config.Storage.IndexPath,
			),
		},
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	var req models.UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("upload request", zap.String("name", req.Name), zap.Int64("size", req.Size))
	doc, err := s.session.SelectDocument(req)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusAccepted, doc)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleSessionReset(w http.ResponseWriter, r *http.Request) {
	s.session.Reset()
	s.respondJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleListSamples(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"samples": samples.All()})
}

func (s *Server) handleLoadSample(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, ok := s.session.LoadSample(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "sample not found")
		return
	}
	s.respondJSON(w, http.StatusAccepted, doc)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.store.Load())
}

func (s *Server) handleSearchAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.index == nil {
		s.respondError(w, http.StatusNotImplemented, "search not enabled")
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	hits, err := s.index.Search(q, limit)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Hydrate matches from the store; an indexed id may have been evicted
	// since, those hits are skipped.
	results := make([]*models.AnalysisResult, 0, len(hits))
	for _, hit := range hits {
		if a, ok := s.store.GetByID(hit.ID); ok {
			results = append(results, a)
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"query":   q,
		"results": results,
	})
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, ok := s.store.GetByID(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "analysis not found")
		return
	}
	s.respondJSON(w, http.StatusOK, a)
}

func (s *Server) handleShareAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, ok := s.store.GetByID(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "analysis not found")
		return
	}
	s.respondJSON(w, http.StatusOK, app.BuildShareInfo(s.config.Server.PublicURL, a))
}

func (s *Server) handleClearAnalyses(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(); err != nil {
		s.logger.Error("clear history failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if s.index != nil {
		if err := s.index.Rebuild(nil); err != nil {
			s.logger.Warn("failed to reset search index", zap.Error(err))
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	insight := history.Insights(s.store)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":        insight.Message,
		"has_history":    insight.HasHistory,
		"returning_user": history.IsReturningUser(s.store),
		"summary":        history.FormatSummary(s.store),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
