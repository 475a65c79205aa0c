package http

import (
	"net/http"

	"cashdesk-backend/internal/domain"
)

func (s *Server) handleSystemBalance(w http.ResponseWriter, r *http.Request) {
	sys, err := s.reports.SystemBalance(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sys)
}

func (s *Server) handleDailyProfit(w http.ResponseWriter, r *http.Request) {
	p, err := s.reports.DailyProfit(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProfitRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	profits, err := s.reports.ProfitRange(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profits)
}

func (s *Server) handleListAuditLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.AuditFilter{
		EntityType: q.Get("entity_type"),
		ActionType: q.Get("action_type"),
		From:       timeParam(r, "from"),
		To:         timeParam(r, "to"),
	}
	page, pageSize := paging(r)
	entries, total, err := s.audit.List(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: entries, Total: total, Page: page})
}
