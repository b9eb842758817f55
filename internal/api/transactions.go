package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/fintrack/internal/export"
	"gitlab.com/yelinaung/fintrack/internal/ledger"
	"gitlab.com/yelinaung/fintrack/internal/logger"
)

type createTransactionRequest struct {
	AccountID       int64           `json:"account_id"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	CategoryID      *int64          `json:"category_id"`
	PaymentMethodID *int64          `json:"payment_method_id"`
}

func (h *handler) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.AccountID <= 0 {
		WriteError(w, http.StatusBadRequest, "account_id is required")
		return
	}

	tx, err := h.ledger.CreateTransaction(r.Context(), UserIDFrom(r.Context()), ledger.CreateTransactionInput{
		AccountID:       req.AccountID,
		Type:            req.Type,
		Amount:          req.Amount,
		CategoryID:      req.CategoryID,
		PaymentMethodID: req.PaymentMethodID,
		Description:     req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, tx)
}

func (h *handler) deleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.ledger.DeleteTransaction(r.Context(), UserIDFrom(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, message(fmt.Sprintf("Transaction %d deleted", id)))
}

func (h *handler) listAccountTransactions(w http.ResponseWriter, r *http.Request) {
	accountID, ok := idParam(w, r, "accountID")
	if !ok {
		return
	}
	txs, err := h.ledger.ListAccountTransactions(r.Context(), UserIDFrom(r.Context()), accountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, txs)
}

func (h *handler) exportAccountTransactions(w http.ResponseWriter, r *http.Request) {
	accountID, ok := idParam(w, r, "accountID")
	if !ok {
		return
	}
	txs, err := h.ledger.ListAccountTransactions(r.Context(), UserIDFrom(r.Context()), accountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	data, err := export.TransactionsCSV(txs, h.loc)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.TransactionsFilename(accountID, time.Now().In(h.loc))))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to write CSV export")
	}
}

func (h *handler) listProfileTransactions(w http.ResponseWriter, r *http.Request) {
	profileID, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	limit, ok := intQuery(w, r, "limit")
	if !ok {
		return
	}
	txs, err := h.ledger.ListProfileTransactions(r.Context(), UserIDFrom(r.Context()), profileID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, txs)
}

func (h *handler) listRecentTransactions(w http.ResponseWriter, r *http.Request) {
	limit, ok := intQuery(w, r, "limit")
	if !ok {
		return
	}
	txs, err := h.ledger.ListRecentTransactions(r.Context(), UserIDFrom(r.Context()), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, txs)
}

func message(msg string) map[string]string {
	return map[string]string{"message": msg}
}

// parseDate reads a YYYY-MM-DD date as midnight in loc. Empty input yields nil.
func parseDate(raw string, loc *time.Location) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ledger.ErrInvalidInput, raw)
	}
	return &t, nil
}
