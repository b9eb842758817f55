package api

import (
	"net/http"

	"github.com/shopspring/decimal"
)

type netWorthResponse struct {
	NetWorth decimal.Decimal `json:"netWorth"`
}

func (h *handler) userNetWorth(w http.ResponseWriter, r *http.Request) {
	total, err := h.ledger.UserNetWorth(r.Context(), UserIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, netWorthResponse{NetWorth: total})
}

func (h *handler) profileNetWorth(w http.ResponseWriter, r *http.Request) {
	profileID, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	total, err := h.ledger.CurrentNetWorth(r.Context(), UserIDFrom(r.Context()), profileID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, netWorthResponse{NetWorth: total})
}

func (h *handler) netWorthHistory(w http.ResponseWriter, r *http.Request) {
	profileID, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	days, ok := intQuery(w, r, "days")
	if !ok {
		return
	}
	// Absent means the default window; an explicit value must be in range.
	if r.URL.Query().Has("days") && (days < 1 || days > 3650) {
		WriteError(w, http.StatusBadRequest, "days must be between 1 and 3650")
		return
	}
	points, err := h.ledger.HistoricalNetWorth(r.Context(), UserIDFrom(r.Context()), profileID, days)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, points)
}
