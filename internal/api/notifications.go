package api

import (
	"fmt"
	"net/http"
)

type notificationRequest struct {
	ProfileID int64  `json:"profile_id"`
	Message   string `json:"message"`
}

func (h *handler) createNotification(w http.ResponseWriter, r *http.Request) {
	var req notificationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	n, err := h.ledger.CreateNotification(r.Context(), UserIDFrom(r.Context()), req.ProfileID, req.Message)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, n)
}

func (h *handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	h.writeNotifications(w, r, false)
}

func (h *handler) listUnreadNotifications(w http.ResponseWriter, r *http.Request) {
	h.writeNotifications(w, r, true)
}

func (h *handler) writeNotifications(w http.ResponseWriter, r *http.Request, unreadOnly bool) {
	profileID, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	list, err := h.ledger.ListNotifications(r.Context(), UserIDFrom(r.Context()), profileID, unreadOnly)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, list)
}

func (h *handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.ledger.MarkNotificationRead(r.Context(), UserIDFrom(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, message("Notification marked as read"))
}

func (h *handler) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	profileID, ok := idParam(w, r, "profileID")
	if !ok {
		return
	}
	n, err := h.ledger.MarkAllNotificationsRead(r.Context(), UserIDFrom(r.Context()), profileID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("%d notifications marked as read", n),
		"updated": n,
	})
}

func (h *handler) deleteNotification(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.ledger.DeleteNotification(r.Context(), UserIDFrom(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, message(fmt.Sprintf("Notification %d deleted", id)))
}
