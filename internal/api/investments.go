package api

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/fintrack/internal/ledger"
)

type investmentRequest struct {
	ProfileID int64  `json:"profile_id"`
	Name      string `json:"investment_name"`
	Type      string `json:"investment_type"`
}

type investmentTransactionRequest struct {
	InvestmentID int64           `json:"investment_id"`
	AccountID    int64           `json:"account_id"`
	Type         string          `json:"transaction_type"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Date         string          `json:"transaction_date"`
}

func (h *handler) createInvestment(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	inv, err := h.ledger.CreateInvestment(r.Context(), UserIDFrom(r.Context()), req.ProfileID, req.Name, req.Type)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, inv)
}

func (h *handler) listInvestments(w http.ResponseWriter, r *http.Request) {
	profileID, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	list, err := h.ledger.ListInvestments(r.Context(), UserIDFrom(r.Context()), profileID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (h *handler) createInvestmentTransaction(w http.ResponseWriter, r *http.Request) {
	var req investmentTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.InvestmentID <= 0 || req.AccountID <= 0 {
		WriteError(w, http.StatusBadRequest, "investment_id and account_id are required")
		return
	}
	date, err := parseDate(req.Date, h.loc)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var at time.Time
	if date != nil {
		at = *date
	}

	tx, err := h.ledger.CreateInvestmentTransaction(r.Context(), UserIDFrom(r.Context()), ledger.InvestmentTransactionInput{
		InvestmentID: req.InvestmentID,
		AccountID:    req.AccountID,
		Type:         req.Type,
		Quantity:     req.Quantity,
		PricePerUnit: req.PricePerUnit,
		Date:         at,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, tx)
}

func (h *handler) listInvestmentTransactions(w http.ResponseWriter, r *http.Request) {
	investmentID, ok := idParam(w, r, "investmentID")
	if !ok {
		return
	}
	list, err := h.ledger.ListInvestmentTransactions(r.Context(), UserIDFrom(r.Context()), investmentID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}
