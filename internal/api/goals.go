package api

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/fintrack/internal/ledger"
)

type goalRequest struct {
	ProfileID     int64           `json:"profile_id"`
	Name          string          `json:"goal_name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    string          `json:"target_date"`
	Status        string          `json:"status"`
}

// goalUpdateRequest leaves omitted fields untouched.
type goalUpdateRequest struct {
	Name          *string          `json:"goal_name"`
	TargetAmount  *decimal.Decimal `json:"target_amount"`
	CurrentAmount *decimal.Decimal `json:"current_amount"`
	TargetDate    *string          `json:"target_date"`
	Status        *string          `json:"status"`
}

func (h *handler) createGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	due, err := parseDate(req.TargetDate, h.loc)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	g, err := h.ledger.CreateGoal(r.Context(), UserIDFrom(r.Context()), ledger.GoalInput{
		ProfileID:     req.ProfileID,
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		TargetDate:    due,
		Status:        req.Status,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, g)
}

func (h *handler) listGoals(w http.ResponseWriter, r *http.Request) {
	profileID, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	list, err := h.ledger.ListGoals(r.Context(), UserIDFrom(r.Context()), profileID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (h *handler) updateGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req goalUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	upd := ledger.GoalUpdate{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Status:        req.Status,
	}
	if req.TargetDate != nil {
		due, err := parseDate(*req.TargetDate, h.loc)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		upd.TargetDate = due
	}
	g, err := h.ledger.UpdateGoal(r.Context(), UserIDFrom(r.Context()), id, upd)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, g)
}

func (h *handler) deleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.ledger.DeleteGoal(r.Context(), UserIDFrom(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, message(fmt.Sprintf("Financial goal with id %d deleted.", id)))
}
