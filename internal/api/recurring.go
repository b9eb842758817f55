package api

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/fintrack/internal/ledger"
)

type recurringRequest struct {
	ProfileID   int64           `json:"profile_id"`
	CategoryID  *int64          `json:"category_id"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   string          `json:"frequency"`
	EndDate     string          `json:"end_date"`
}

type executeRecurringRequest struct {
	RecurringID     int64  `json:"recurringId"`
	AccountID       int64  `json:"accountId"`
	PaymentMethodID *int64 `json:"paymentMethodId"`
}

func (h *handler) recurringInput(req recurringRequest) (ledger.RecurringInput, error) {
	end, err := parseDate(req.EndDate, h.loc)
	if err != nil {
		return ledger.RecurringInput{}, err
	}
	return ledger.RecurringInput{
		ProfileID:   req.ProfileID,
		CategoryID:  req.CategoryID,
		Type:        req.Type,
		Description: req.Description,
		Amount:      req.Amount,
		Frequency:   req.Frequency,
		EndDate:     end,
	}, nil
}

func (h *handler) createRecurring(w http.ResponseWriter, r *http.Request) {
	var req recurringRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, err := h.recurringInput(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	rt, err := h.ledger.CreateRecurring(r.Context(), UserIDFrom(r.Context()), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, rt)
}

func (h *handler) listRecurring(w http.ResponseWriter, r *http.Request) {
	profileID, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	list, err := h.ledger.ListRecurring(r.Context(), UserIDFrom(r.Context()), profileID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (h *handler) updateRecurring(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req recurringRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	in, err := h.recurringInput(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	rt, err := h.ledger.UpdateRecurring(r.Context(), UserIDFrom(r.Context()), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, rt)
}

func (h *handler) deleteRecurring(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.ledger.DeleteRecurring(r.Context(), UserIDFrom(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, message(fmt.Sprintf("Recurring transaction %d deleted", id)))
}

func (h *handler) executeRecurring(w http.ResponseWriter, r *http.Request) {
	var req executeRecurringRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RecurringID <= 0 || req.AccountID <= 0 {
		WriteError(w, http.StatusBadRequest, "recurringId and accountId are required")
		return
	}
	tx, err := h.ledger.ExecuteRecurring(r.Context(), UserIDFrom(r.Context()), ledger.ExecuteRecurringInput{
		RecurringID:     req.RecurringID,
		AccountID:       req.AccountID,
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, tx)
}
