package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"cashdesk-backend/internal/domain"
)

type instaPayAccountRequest struct {
	PhoneNumber       string          `json:"phone_number"`
	BankAccountNumber string          `json:"bank_account_number"`
	BankName          string          `json:"bank_name"`
	CurrentBalance    decimal.Decimal `json:"current_balance"`
}

func (s *Server) handleCreateInstaPayAccount(w http.ResponseWriter, r *http.Request) {
	var req instaPayAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PhoneNumber == "" || req.BankAccountNumber == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "phone_number and bank_account_number are required"})
		return
	}
	acct := &domain.InstaPayAccount{
		PhoneNumber:       req.PhoneNumber,
		BankAccountNumber: req.BankAccountNumber,
		BankName:          req.BankName,
		CurrentBalance:    req.CurrentBalance,
	}
	if err := s.instaPay.CreateAccount(r.Context(), acct, operatorID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, acct)
}

func (s *Server) handleUpdateInstaPayAccount(w http.ResponseWriter, r *http.Request) {
	var req instaPayAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PhoneNumber == "" || req.BankAccountNumber == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "phone_number and bank_account_number are required"})
		return
	}
	acct := &domain.InstaPayAccount{
		ID:                pathID(r, "id"),
		PhoneNumber:       req.PhoneNumber,
		BankAccountNumber: req.BankAccountNumber,
		BankName:          req.BankName,
	}
	if err := s.instaPay.UpdateAccount(r.Context(), acct, operatorID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (s *Server) handleListInstaPayAccounts(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"
	accts, err := s.instaPay.ListAccounts(r.Context(), activeOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accts)
}

func (s *Server) handleGetInstaPayAccount(w http.ResponseWriter, r *http.Request) {
	acct, err := s.instaPay.GetAccount(r.Context(), pathID(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

type instaPayOperationRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	FeeRate     decimal.Decimal `json:"fee_rate"`
	Fees        decimal.Decimal `json:"fees,omitempty"`
	Description string          `json:"description,omitempty"`
}

func (s *Server) handleInstaPayWithdraw(w http.ResponseWriter, r *http.Request) {
	var req instaPayOperationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := s.instaPay.Withdraw(r.Context(), domain.InstaPayOperation{
		AccountID:   pathID(r, "id"),
		Amount:      req.Amount,
		FeeRate:     req.FeeRate,
		FeeAmount:   req.Fees,
		Description: req.Description,
		ActorID:     operatorID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleInstaPayDeposit(w http.ResponseWriter, r *http.Request) {
	var req instaPayOperationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := s.instaPay.Deposit(r.Context(), domain.InstaPayOperation{
		AccountID:   pathID(r, "id"),
		Amount:      req.Amount,
		FeeRate:     req.FeeRate,
		FeeAmount:   req.Fees,
		Description: req.Description,
		ActorID:     operatorID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleListInstaPayTransactions(w http.ResponseWriter, r *http.Request) {
	var accountID *int32
	if raw := r.URL.Query().Get("account_id"); raw != "" {
		id := pathIDFromString(raw)
		accountID = &id
	}
	page, pageSize := paging(r)
	txs, total, err := s.instaPay.ListTransactions(r.Context(), accountID, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: txs, Total: total, Page: page})
}
