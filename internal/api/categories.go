package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gitlab.com/yelinaung/fintrack/internal/gemini"
	"gitlab.com/yelinaung/fintrack/internal/models"
)

type categoryRequest struct {
	ProfileID        int64  `json:"profile_id"`
	Name             string `json:"name"`
	ParentCategoryID *int64 `json:"parent_category_id"`
}

type categoryRenameRequest struct {
	Name string `json:"name"`
}

type suggestRequest struct {
	ProfileID   int64  `json:"profile_id"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type suggestResponse struct {
	CategoryID int64   `json:"category_id"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

func (h *handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.ledger.CreateCategory(r.Context(), UserIDFrom(r.Context()), req.ProfileID, req.Name, req.ParentCategoryID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, c)
}

func (h *handler) listCategories(w http.ResponseWriter, r *http.Request) {
	profileID, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	list, err := h.ledger.ListCategories(r.Context(), UserIDFrom(r.Context()), profileID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (h *handler) renameCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req categoryRenameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.ledger.RenameCategory(r.Context(), UserIDFrom(r.Context()), id, req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, c)
}

func (h *handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.ledger.DeleteCategory(r.Context(), UserIDFrom(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, message(fmt.Sprintf("Category with id %d deleted.", id)))
}

func (h *handler) suggestCategory(w http.ResponseWriter, r *http.Request) {
	if h.suggester == nil {
		WriteError(w, http.StatusServiceUnavailable, "Category suggestions are not configured")
		return
	}
	var req suggestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		WriteError(w, http.StatusBadRequest, "description is required")
		return
	}
	if req.Type == "" {
		req.Type = models.TransactionTypeExpense
	}

	categories, err := h.ledger.ListCategories(r.Context(), UserIDFrom(r.Context()), req.ProfileID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if len(categories) == 0 {
		WriteError(w, http.StatusNotFound, "Profile has no categories")
		return
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}

	s, err := h.suggester.SuggestCategory(r.Context(), req.Description, req.Type, names)
	if errors.Is(err, gemini.ErrNoMatch) {
		WriteError(w, http.StatusNotFound, "No matching category")
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	c := matchCategory(s.Category, categories)
	if c == nil {
		WriteError(w, http.StatusNotFound, "No matching category")
		return
	}
	WriteJSON(w, http.StatusOK, suggestResponse{
		CategoryID: c.ID,
		Category:   c.Name,
		Confidence: s.Confidence,
		Reasoning:  s.Reasoning,
	})
}
