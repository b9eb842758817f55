package api

import (
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/fintrack/internal/ledger"
)

type profileRequest struct {
	Name string `json:"profile_name"`
	Type string `json:"profile_type"`
}

type accountRequest struct {
	ProfileID int64           `json:"profile_id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

type accountUpdateRequest struct {
	Name    string           `json:"name"`
	Balance *decimal.Decimal `json:"balance"`
}

func (h *handler) createProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.ledger.CreateProfile(r.Context(), UserIDFrom(r.Context()), req.Name, req.Type)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, p)
}

func (h *handler) listProfiles(w http.ResponseWriter, r *http.Request) {
	list, err := h.ledger.ListProfiles(r.Context(), UserIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (h *handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req profileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p, err := h.ledger.UpdateProfile(r.Context(), UserIDFrom(r.Context()), id, req.Name, req.Type)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

func (h *handler) deleteProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.ledger.DeleteProfile(r.Context(), UserIDFrom(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, message(fmt.Sprintf("Profile %d deleted", id)))
}

func (h *handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := h.ledger.CreateAccount(r.Context(), UserIDFrom(r.Context()), req.ProfileID, req.Name, req.Balance)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, a)
}

func (h *handler) getAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	a, err := h.ledger.GetAccount(r.Context(), UserIDFrom(r.Context()), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, a)
}

func (h *handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	list, err := h.ledger.ListAccounts(r.Context(), UserIDFrom(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (h *handler) listProfileAccounts(w http.ResponseWriter, r *http.Request) {
	profileID, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	list, err := h.ledger.ListProfileAccounts(r.Context(), UserIDFrom(r.Context()), profileID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (h *handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req accountUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	a, err := h.ledger.UpdateAccount(r.Context(), UserIDFrom(r.Context()), id, ledger.AccountUpdate{
		Name:    req.Name,
		Balance: req.Balance,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, a)
}

func (h *handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.ledger.DeleteAccount(r.Context(), UserIDFrom(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, message(fmt.Sprintf("Account %d deleted", id)))
}

func (h *handler) listPaymentMethods(w http.ResponseWriter, r *http.Request) {
	list, err := h.ledger.ListPaymentMethods(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}
