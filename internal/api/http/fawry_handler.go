package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"cashdesk-backend/internal/domain"
)

type fawryRequest struct {
	Amount      decimal.Decimal        `json:"amount"`
	Type        domain.TransactionType `json:"type"`
	Fees        decimal.Decimal        `json:"fees"`
	Description string                 `json:"description,omitempty"`
}

func (req *fawryRequest) toOperation(actorID string) domain.FawryOperation {
	return domain.FawryOperation{
		Amount:      req.Amount,
		Type:        req.Type,
		ManualFees:  req.Fees,
		Description: req.Description,
		ActorID:     actorID,
	}
}

func (s *Server) handleFawryRegular(w http.ResponseWriter, r *http.Request) {
	var req fawryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := s.fawry.RecordRegular(r.Context(), req.toOperation(operatorID(r)))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleFawryPurchases(w http.ResponseWriter, r *http.Request) {
	var req fawryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := s.fawry.RecordPurchases(r.Context(), req.toOperation(operatorID(r)))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleListFawryTransactions(w http.ResponseWriter, r *http.Request) {
	var serviceType *domain.FawryServiceType
	if raw := r.URL.Query().Get("service_type"); raw != "" {
		st := domain.FawryServiceType(raw)
		serviceType = &st
	}
	page, pageSize := paging(r)
	txs, total, err := s.fawry.ListTransactions(r.Context(), serviceType, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: txs, Total: total, Page: page})
}

func (s *Server) handleFawrySummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.fawry.ChannelSummaries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}
