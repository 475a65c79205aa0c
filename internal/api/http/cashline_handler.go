package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"cashdesk-backend/internal/domain"
)

type cashLineRequest struct {
	PhoneNumber          string             `json:"phone_number"`
	OwnerName            string             `json:"owner_name"`
	NationalID           string             `json:"national_id"`
	NetworkType          domain.NetworkType `json:"network_type"`
	CurrentBalance       decimal.Decimal    `json:"current_balance"`
	DailyWithdrawLimit   decimal.Decimal    `json:"daily_withdraw_limit"`
	DailyDepositLimit    decimal.Decimal    `json:"daily_deposit_limit"`
	MonthlyWithdrawLimit decimal.Decimal    `json:"monthly_withdraw_limit"`
	MonthlyDepositLimit  decimal.Decimal    `json:"monthly_deposit_limit"`
}

func (req *cashLineRequest) toDomain() *domain.CashLine {
	return &domain.CashLine{
		PhoneNumber:          req.PhoneNumber,
		OwnerName:            req.OwnerName,
		NationalID:           req.NationalID,
		NetworkType:          req.NetworkType,
		CurrentBalance:       req.CurrentBalance,
		DailyWithdrawLimit:   req.DailyWithdrawLimit,
		DailyDepositLimit:    req.DailyDepositLimit,
		MonthlyWithdrawLimit: req.MonthlyWithdrawLimit,
		MonthlyDepositLimit:  req.MonthlyDepositLimit,
	}
}

func (s *Server) handleCreateCashLine(w http.ResponseWriter, r *http.Request) {
	var req cashLineRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.PhoneNumber == "" || req.OwnerName == "" || req.NationalID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "phone_number, owner_name and national_id are required"})
		return
	}
	line := req.toDomain()
	if err := s.cashLines.CreateLine(r.Context(), line, operatorID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, line)
}

func (s *Server) handleListCashLines(w http.ResponseWriter, r *http.Request) {
	lines, err := s.cashLines.ListLines(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

func (s *Server) handleGetCashLine(w http.ResponseWriter, r *http.Request) {
	line, err := s.cashLines.GetLine(r.Context(), pathID(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, line)
}

func (s *Server) handleUpdateCashLine(w http.ResponseWriter, r *http.Request) {
	var req cashLineRequest
	if !decodeBody(w, r, &req) {
		return
	}
	line := req.toDomain()
	line.ID = pathID(r, "id")
	if err := s.cashLines.UpdateLine(r.Context(), line, operatorID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, line)
}

func (s *Server) handleDeleteCashLine(w http.ResponseWriter, r *http.Request) {
	if err := s.cashLines.DeleteLine(r.Context(), pathID(r, "id"), operatorID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleFreezeCashLine(w http.ResponseWriter, r *http.Request) {
	if err := s.cashLines.FreezeLine(r.Context(), pathID(r, "id"), operatorID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleUnfreezeCashLine(w http.ResponseWriter, r *http.Request) {
	if err := s.cashLines.UnfreezeLine(r.Context(), pathID(r, "id"), operatorID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

type cashOperationRequest struct {
	Amount          decimal.Decimal    `json:"amount"`
	CommissionRate  decimal.Decimal    `json:"commission_rate"`
	DepositType     domain.DepositType `json:"deposit_type,omitempty"`
	RecipientNumber string             `json:"recipient_number,omitempty"`
	Description     string             `json:"description,omitempty"`
}

func (s *Server) handleCashWithdraw(w http.ResponseWriter, r *http.Request) {
	var req cashOperationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := s.cashLines.Withdraw(r.Context(), domain.CashOperation{
		CashLineID:      pathID(r, "id"),
		Amount:          req.Amount,
		CommissionRate:  req.CommissionRate,
		RecipientNumber: req.RecipientNumber,
		Description:     req.Description,
		ActorID:         operatorID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleCashDeposit(w http.ResponseWriter, r *http.Request) {
	var req cashOperationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := s.cashLines.Deposit(r.Context(), domain.CashOperation{
		CashLineID:      pathID(r, "id"),
		Amount:          req.Amount,
		CommissionRate:  req.CommissionRate,
		DepositType:     req.DepositType,
		RecipientNumber: req.RecipientNumber,
		Description:     req.Description,
		ActorID:         operatorID(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleGetCashTransaction(w http.ResponseWriter, r *http.Request) {
	t, err := s.cashLines.GetTransaction(r.Context(), pathID(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleListCashTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.CashTransactionFilter{
		From:   timeParam(r, "from"),
		To:     timeParam(r, "to"),
		Search: q.Get("search"),
	}
	if raw := q.Get("cash_line_id"); raw != "" {
		id := pathIDFromString(raw)
		filter.CashLineID = &id
	}
	if raw := q.Get("type"); raw != "" {
		t := domain.TransactionType(raw)
		filter.Type = &t
	}
	if raw := q.Get("status"); raw != "" {
		st := domain.TransactionStatus(raw)
		filter.Status = &st
	}

	page, pageSize := paging(r)
	txs, total, err := s.cashLines.ListTransactions(r.Context(), filter, page, pageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pagedResponse{Items: txs, Total: total, Page: page})
}

func (s *Server) handleCashDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := s.cashLines.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}
