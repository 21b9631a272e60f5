// Package store owns persistence for the comments, notifications, blogs and
// users collections. Services talk to these interfaces only; the Mongo
// implementation is the production store and Memory backs the tests.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-service/models"
)

// ErrNoDocument is returned when a lookup matches nothing. The Mongo
// implementation maps mongo.ErrNoDocuments onto it.
var ErrNoDocument = errors.New("store: no document found")

// NotificationQuery selects a recipient's feed. Entries triggered by the
// recipient themselves are always excluded. An empty Type means all types.
type NotificationQuery struct {
	NotificationFor string
	Type            models.NotificationType
	Skip            int64
	Limit           int64
}

// BlogQuery selects published blogs unless Draft overrides it. Zero-valued
// fields are ignored. Results are ordered by publishedAt descending.
type BlogQuery struct {
	Tag           string
	Search        string // case-insensitive title match
	Author        string
	EliminateSlug string
	Draft         *bool
	Skip          int64
	Limit         int64
}

type CommentStore interface {
	// Insert assigns the comment an id and persists it.
	Insert(ctx context.Context, c *models.Comment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Comment, error)
	// FindTopLevel returns non-reply comments for a blog, newest first.
	FindTopLevel(ctx context.Context, blogID primitive.ObjectID, skip, limit int64) ([]models.Comment, error)
	// PushChild appends childID to the parent's children list.
	PushChild(ctx context.Context, parentID, childID primitive.ObjectID) error
	// PullChild removes childID from the parent's children list. A missing
	// parent is a no-op: during a cascade the parent is usually gone already.
	PullChild(ctx context.Context, parentID, childID primitive.ObjectID) error
	// Delete removes the comment. Deleting an absent comment is a no-op.
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByBlog(ctx context.Context, blogID primitive.ObjectID) error
}

type NotificationStore interface {
	Insert(ctx context.Context, n *models.Notification) error
	// SetReply links a reply comment back onto the notification it answers.
	SetReply(ctx context.Context, notificationID, replyID primitive.ObjectID) error
	// ClearReplyRef unsets the reply field on any notification pointing at
	// replyID. The records themselves survive.
	ClearReplyRef(ctx context.Context, replyID primitive.ObjectID) error
	DeleteByComment(ctx context.Context, commentID primitive.ObjectID) error
	DeleteByBlog(ctx context.Context, blogID primitive.ObjectID) error
	// DeleteLike removes the like notification for a (blog, user) pair.
	DeleteLike(ctx context.Context, blogID primitive.ObjectID, userID string) error
	LikeExists(ctx context.Context, blogID primitive.ObjectID, userID string) (bool, error)
	HasUnseen(ctx context.Context, userID string) (bool, error)
	Find(ctx context.Context, q NotificationQuery) ([]models.Notification, error)
	Count(ctx context.Context, q NotificationQuery) (int64, error)
	// MarkSeen flags every notification matching the query as seen,
	// ignoring Skip/Limit.
	MarkSeen(ctx context.Context, q NotificationQuery) error
}

type BlogStore interface {
	Insert(ctx context.Context, b *models.Blog) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*models.Blog, error)
	UpdateBySlug(ctx context.Context, slug string, u models.BlogUpdate) error
	// DeleteBySlug removes the blog and returns the deleted document.
	DeleteBySlug(ctx context.Context, slug string) (*models.Blog, error)
	// ApplyActivity adds the delta to the activity counters as one atomic
	// increment; concurrent writers must not lose updates.
	ApplyActivity(ctx context.Context, id primitive.ObjectID, d models.ActivityDelta) error
	// GetAndCountRead fetches a blog by slug, incrementing total_reads by inc.
	GetAndCountRead(ctx context.Context, slug string, inc int64) (*models.Blog, error)
	PushComment(ctx context.Context, id, commentID primitive.ObjectID) error
	PullComment(ctx context.Context, id, commentID primitive.ObjectID) error
	Find(ctx context.Context, q BlogQuery) ([]models.Blog, error)
	Count(ctx context.Context, q BlogQuery) (int64, error)
	// Trending returns published blogs by reads, then likes, then recency.
	Trending(ctx context.Context, limit int64) ([]models.Blog, error)
}

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Search(ctx context.Context, query string, limit int64) ([]models.User, error)
	// Summaries resolves display-safe projections for a set of user ids.
	Summaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error)
	// ApplyAccountDelta atomically adjusts total_posts / total_reads.
	ApplyAccountDelta(ctx context.Context, id string, posts, reads int64) error
	PushBlog(ctx context.Context, id string, blogID primitive.ObjectID) error
	PullBlog(ctx context.Context, id string, blogID primitive.ObjectID) error
}
