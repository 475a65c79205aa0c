package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"cashdesk-backend/internal/domain"
)

type supplierRequest struct {
	Name           string              `json:"name"`
	Type           domain.SupplierType `json:"type"`
	PhoneNumber    string              `json:"phone_number,omitempty"`
	Email          string              `json:"email,omitempty"`
	OpeningBalance decimal.Decimal     `json:"opening_balance"`
}

func (s *Server) handleCreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}
	if req.Type == "" {
		req.Type = domain.SupplierTypeSupplier
	}
	sup := &domain.Supplier{
		Name:           req.Name,
		Type:           req.Type,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
		OpeningBalance: req.OpeningBalance,
	}
	if err := s.suppliers.CreateSupplier(r.Context(), sup, operatorID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sup)
}

func (s *Server) handleUpdateSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if !decodeBody(w, r, &req) {
		return
	}
	sup := &domain.Supplier{
		ID:             pathID(r, "id"),
		Name:           req.Name,
		Type:           req.Type,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
		OpeningBalance: req.OpeningBalance,
	}
	if err := s.suppliers.UpdateSupplier(r.Context(), sup, operatorID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sup)
}

func (s *Server) handleGetSupplier(w http.ResponseWriter, r *http.Request) {
	sup, err := s.suppliers.GetSupplier(r.Context(), pathID(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sup)
}

func (s *Server) handleListSuppliers(w http.ResponseWriter, r *http.Request) {
	sups, err := s.suppliers.ListSuppliers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sups)
}

func (s *Server) handleSupplierTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := s.suppliers.Totals(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

type supplierEntryRequest struct {
	Amount          decimal.Decimal  `json:"amount"`
	Type            domain.EntryType `json:"type"`
	Description     string           `json:"description,omitempty"`
	TransactionDate *time.Time       `json:"transaction_date,omitempty"`
}

func (s *Server) handleRecordSupplierEntry(w http.ResponseWriter, r *http.Request) {
	var req supplierEntryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	entry := &domain.SupplierTransaction{
		SupplierID:  pathID(r, "id"),
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
		UserID:      operatorID(r),
	}
	if req.TransactionDate != nil {
		entry.TransactionDate = *req.TransactionDate
	}
	created, err := s.suppliers.RecordEntry(r.Context(), entry)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleEditSupplierEntry(w http.ResponseWriter, r *http.Request) {
	var req supplierEntryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	entry := &domain.SupplierTransaction{
		ID:          pathID(r, "txID"),
		SupplierID:  pathID(r, "id"),
		Amount:      req.Amount,
		Type:        req.Type,
		Description: req.Description,
		UserID:      operatorID(r),
	}
	if req.TransactionDate != nil {
		entry.TransactionDate = *req.TransactionDate
	}
	if err := s.suppliers.EditEntry(r.Context(), entry, operatorID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleListSupplierEntries(w http.ResponseWriter, r *http.Request) {
	var entryType *domain.EntryType
	if raw := r.URL.Query().Get("type"); raw != "" {
		t := domain.EntryType(raw)
		entryType = &t
	}
	entries, err := s.suppliers.ListEntries(r.Context(), pathID(r, "id"), entryType, timeParam(r, "from"), timeParam(r, "to"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
