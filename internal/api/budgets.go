package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/fintrack/internal/charts"
	"gitlab.com/yelinaung/fintrack/internal/ledger"
	"gitlab.com/yelinaung/fintrack/internal/logger"
)

type budgetRequest struct {
	ProfileID  int64           `json:"profile_id"`
	CategoryID int64           `json:"category_id"`
	Budget     decimal.Decimal `json:"budget"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
}

type budgetUpdateRequest struct {
	Budget decimal.Decimal `json:"budget"`
}

func (h *handler) createBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := h.ledger.CreateBudget(r.Context(), UserIDFrom(r.Context()), ledger.BudgetInput{
		ProfileID:  req.ProfileID,
		CategoryID: req.CategoryID,
		Limit:      req.Budget,
		Month:      req.Month,
		Year:       req.Year,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, b)
}

// periodParams reads {profileID}/{year}/{month} from the URL.
func periodParams(w http.ResponseWriter, r *http.Request) (profileID int64, year, month int, ok bool) {
	profileID, ok = idParam(w, r, "profileID")
	if !ok {
		return 0, 0, 0, false
	}
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid year")
		return 0, 0, 0, false
	}
	month, err = strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid month")
		return 0, 0, 0, false
	}
	return profileID, year, month, true
}

func (h *handler) listBudgets(w http.ResponseWriter, r *http.Request) {
	profileID, year, month, ok := periodParams(w, r)
	if !ok {
		return
	}
	budgets, err := h.ledger.ListBudgets(r.Context(), UserIDFrom(r.Context()), profileID, year, month)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, budgets)
}

func (h *handler) budgetChart(w http.ResponseWriter, r *http.Request) {
	profileID, year, month, ok := periodParams(w, r)
	if !ok {
		return
	}
	budgets, err := h.ledger.ListBudgets(r.Context(), UserIDFrom(r.Context()), profileID, year, month)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	png, err := charts.BudgetSpendChart(budgets, fmt.Sprintf("%s %d", time.Month(month), year))
	if errors.Is(err, charts.ErrNoSpending) {
		WriteError(w, http.StatusNotFound, "No budget spending for this period")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		logger.Log.Warn().Err(err).Msg("Failed to write chart")
	}
}

func (h *handler) updateBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req budgetUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	b, err := h.ledger.UpdateBudget(r.Context(), UserIDFrom(r.Context()), id, req.Budget)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, b)
}

func (h *handler) deleteBudget(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.ledger.DeleteBudget(r.Context(), UserIDFrom(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, message(fmt.Sprintf("Budget %d deleted", id)))
}
