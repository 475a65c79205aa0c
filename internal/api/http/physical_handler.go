package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"cashdesk-backend/internal/domain"
)

type physicalCashRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

func (s *Server) handlePhysicalDeposit(w http.ResponseWriter, r *http.Request) {
	var req physicalCashRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := s.physicalCash.Deposit(r.Context(), req.Amount, req.Description, operatorID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handlePhysicalWithdraw(w http.ResponseWriter, r *http.Request) {
	var req physicalCashRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := s.physicalCash.Withdraw(r.Context(), req.Amount, req.Description, operatorID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleGetPhysicalTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := s.physicalCash.GetTransaction(r.Context(), pathID(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleListPhysicalTransactions(w http.ResponseWriter, r *http.Request) {
	var txType *domain.TransactionType
	if raw := r.URL.Query().Get("type"); raw != "" {
		t := domain.TransactionType(raw)
		txType = &t
	}
	page, pageSize := paging(r)
	txs, total, err := s.physicalCash.ListTransactions(r.Context(), txType, timeParam(r, "from"), timeParam(r, "to"), page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: txs, Total: total, Page: page})
}
