package ledger

import (
	"context"
	"strings"

	"gitlab.com/yelinaung/fintrack/internal/models"
)

// ListNotifications returns a profile's notifications, newest first.
func (s *Service) ListNotifications(ctx context.Context, userID, profileID int64, unreadOnly bool) ([]models.Notification, error) {
	r := s.read()
	if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
		return nil, err
	}
	return r.notifications.ListByProfile(ctx, profileID, unreadOnly)
}

// CreateNotification stores a user-written notification.
func (s *Service) CreateNotification(ctx context.Context, userID, profileID int64, message string) (*models.Notification, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, invalidf("message is required")
	}
	n := &models.Notification{ProfileID: profileID, Message: message}
	err := s.inTx(ctx, func(r repos) error {
		if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
			return err
		}
		return translate(r.notifications.Create(ctx, n), "notification")
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// MarkNotificationRead flags one notification as read.
func (s *Service) MarkNotificationRead(ctx context.Context, userID, notificationID int64) error {
	return s.inTx(ctx, func(r repos) error {
		if _, err := ownedNotification(ctx, r, userID, notificationID); err != nil {
			return err
		}
		return translate(r.notifications.MarkRead(ctx, notificationID), "notification")
	})
}

// MarkAllNotificationsRead flags every notification of a profile as read and
// returns how many changed.
func (s *Service) MarkAllNotificationsRead(ctx context.Context, userID, profileID int64) (int, error) {
	var n int
	err := s.inTx(ctx, func(r repos) error {
		if _, err := authorizeProfile(ctx, r, userID, profileID); err != nil {
			return err
		}
		var err error
		n, err = r.notifications.MarkAllRead(ctx, profileID)
		return err
	})
	return n, err
}

// DeleteNotification removes a notification.
func (s *Service) DeleteNotification(ctx context.Context, userID, notificationID int64) error {
	return s.inTx(ctx, func(r repos) error {
		if _, err := ownedNotification(ctx, r, userID, notificationID); err != nil {
			return err
		}
		return translate(r.notifications.Delete(ctx, notificationID), "notification")
	})
}

func ownedNotification(ctx context.Context, r repos, userID, id int64) (*models.Notification, error) {
	n, err := r.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "notification")
	}
	if _, err := authorizeProfile(ctx, r, userID, n.ProfileID); err != nil {
		return nil, err
	}
	return n, nil
}
