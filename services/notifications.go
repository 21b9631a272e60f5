package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"blog-service/configs"
	"blog-service/models"
	"blog-service/store"
)

const notificationPageSize = 10

// NotificationService serves a user's notification feed. Self-triggered
// entries are never surfaced.
type NotificationService struct {
	notifications store.NotificationStore
	log           *logrus.Entry

	pending sync.WaitGroup
}

func NewNotificationService(notifications store.NotificationStore) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		log:           configs.LogWithContext("notifications", "core"),
	}
}

// HasUnseen reports whether any unseen notification exists for the user.
func (s *NotificationService) HasUnseen(ctx context.Context, userID string) (bool, error) {
	return s.notifications.HasUnseen(ctx, userID)
}

// feedQuery translates the "all"/type filter into a store query.
func feedQuery(userID, filter string) store.NotificationQuery {
	q := store.NotificationQuery{NotificationFor: userID}
	if filter != "" && filter != "all" {
		q.Type = models.NotificationType(filter)
	}
	return q
}

// List returns one feed page, newest first. deletedDocCount is the number of
// notifications the client removed locally since its last fetch and shifts
// the offset accordingly; it is trusted as supplied. Listing marks the whole
// filtered query seen, detached from the response - seen is advisory UI
// state and may lag.
func (s *NotificationService) List(ctx context.Context, userID, filter string, page, deletedDocCount int64) ([]models.Notification, error) {
	if page < 1 {
		page = 1
	}
	q := feedQuery(userID, filter)
	q.Skip = (page-1)*notificationPageSize - deletedDocCount
	if q.Skip < 0 {
		q.Skip = 0
	}
	q.Limit = notificationPageSize

	notifications, err := s.notifications.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.notifications.MarkSeen(context.Background(), feedQuery(userID, filter)); err != nil {
			s.log.WithError(err).WithField("user", userID).
				Warn("failed to mark notifications seen")
		}
	}()

	return notifications, nil
}

// Count returns the total number of notifications matching the filter.
func (s *NotificationService) Count(ctx context.Context, userID, filter string) (int64, error) {
	return s.notifications.Count(ctx, feedQuery(userID, filter))
}

// Drain blocks until detached seen-marking work has finished.
func (s *NotificationService) Drain() {
	s.pending.Wait()
}
