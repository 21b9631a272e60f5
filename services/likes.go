package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-service/configs"
	"blog-service/models"
	"blog-service/store"
)

// LikeService toggles likes on a blog. The like notification doubles as the
// like record itself: it exists exactly while the user likes the blog.
type LikeService struct {
	blogs         store.BlogStore
	notifications store.NotificationStore
	publisher     Publisher
	log           *logrus.Entry
}

func NewLikeService(blogs store.BlogStore, notifications store.NotificationStore, publisher Publisher) *LikeService {
	return &LikeService{
		blogs:         blogs,
		notifications: notifications,
		publisher:     publisher,
		log:           configs.LogWithContext("likes", "core"),
	}
}

// LikeBlog applies the toggle implied by isLikedByUser and returns the new
// liked state. The flag is the client's belief about its own state and is
// trusted as-is; a stale client can therefore skew the counter. Known
// limitation, kept for wire compatibility.
func (s *LikeService) LikeBlog(ctx context.Context, blogID primitive.ObjectID, userID string, isLikedByUser bool) (bool, error) {
	if blogID.IsZero() {
		return false, ErrMissingBlogID
	}

	blog, err := s.blogs.FindByID(ctx, blogID)
	if errors.Is(err, store.ErrNoDocument) {
		return false, ErrBlogNotFound
	}
	if err != nil {
		return false, err
	}

	var inc int64 = 1
	if isLikedByUser {
		inc = -1
	}
	if err := s.blogs.ApplyActivity(ctx, blogID, models.ActivityDelta{Likes: inc}); err != nil {
		return false, err
	}

	if isLikedByUser {
		if err := s.notifications.DeleteLike(ctx, blogID, userID); err != nil {
			return false, err
		}
		return false, nil
	}

	notification := models.Notification{
		Type:            models.LikeNotification,
		Blog:            blogID,
		NotificationFor: blog.Author,
		User:            userID,
		CreatedAt:       time.Now(),
	}
	if err := s.notifications.Insert(ctx, &notification); err != nil {
		return false, err
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, notification); err != nil {
			s.log.WithError(err).Warn("failed to publish like notification")
		}
	}
	return true, nil
}

// IsLikedByUser reports whether the user currently likes the blog.
func (s *LikeService) IsLikedByUser(ctx context.Context, blogID primitive.ObjectID, userID string) (bool, error) {
	if blogID.IsZero() {
		return false, ErrMissingBlogID
	}
	return s.notifications.LikeExists(ctx, blogID, userID)
}
