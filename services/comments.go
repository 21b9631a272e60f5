package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-service/configs"
	"blog-service/models"
	"blog-service/store"
)

const (
	commentPageSize = 5
	replyPageSize   = 5
)

// CommentService mutates the comment forest of a blog. The comment insert is
// the correctness boundary of every operation: counter updates, parent links
// and notifications that follow it are applied best-effort and only logged
// when they fail.
type CommentService struct {
	comments      store.CommentStore
	notifications store.NotificationStore
	blogs         store.BlogStore
	users         store.UserStore
	publisher     Publisher
	log           *logrus.Entry

	cascades sync.WaitGroup
}

func NewCommentService(
	comments store.CommentStore,
	notifications store.NotificationStore,
	blogs store.BlogStore,
	users store.UserStore,
	publisher Publisher,
) *CommentService {
	return &CommentService{
		comments:      comments,
		notifications: notifications,
		blogs:         blogs,
		users:         users,
		publisher:     publisher,
		log:           configs.LogWithContext("comments", "core"),
	}
}

type AddCommentInput struct {
	BlogID         primitive.ObjectID
	BlogAuthor     string
	CommentedBy    string
	Comment        string
	ReplyingTo     *primitive.ObjectID
	NotificationID *primitive.ObjectID
}

// CommentWithAuthor is a comment together with the display-safe projection of
// its author and the rendering depth the caller asked for.
type CommentWithAuthor struct {
	models.Comment
	CommentedByUser models.UserSummary `json:"commented_by_user"`
	ChildrenLevel   int                `json:"childrenLevel"`
}

// AddComment creates a top-level comment or a reply. Once the comment itself
// is persisted the operation reports success; every later step may fail
// individually without rolling anything back.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Comment) == "" {
		return nil, ErrEmptyComment
	}
	if in.BlogID.IsZero() {
		return nil, ErrMissingBlogID
	}

	comment := &models.Comment{
		BlogID:      in.BlogID,
		BlogAuthor:  in.BlogAuthor,
		CommentedBy: in.CommentedBy,
		Comment:     in.Comment,
		Children:    []primitive.ObjectID{},
		CommentedAt: time.Now(),
	}
	if in.ReplyingTo != nil {
		comment.Parent = in.ReplyingTo
		comment.IsReply = true
	}

	if err := s.comments.Insert(ctx, comment); err != nil {
		return nil, err
	}

	delta := models.ActivityDelta{Comments: 1}
	if comment.Parent == nil {
		delta.ParentComments = 1
	}
	if err := s.blogs.ApplyActivity(ctx, in.BlogID, delta); err != nil {
		s.log.WithError(err).WithField("blog", in.BlogID.Hex()).
			Warn("failed to update blog activity counters")
	}
	if err := s.blogs.PushComment(ctx, in.BlogID, comment.ID); err != nil {
		s.log.WithError(err).WithField("blog", in.BlogID.Hex()).
			Warn("failed to append comment to blog")
	}

	notification := models.Notification{
		Type:            models.CommentNotification,
		Blog:            in.BlogID,
		NotificationFor: in.BlogAuthor,
		User:            in.CommentedBy,
		Comment:         &comment.ID,
		CreatedAt:       time.Now(),
	}

	if comment.Parent != nil {
		notification.Type = models.ReplyNotification
		notification.RepliedOnComment = comment.Parent

		parent, err := s.comments.FindByID(ctx, *comment.Parent)
		if err != nil {
			// The reply still stands; the parent link and its author just
			// cannot be resolved anymore.
			s.log.WithError(err).WithField("parent", comment.Parent.Hex()).
				Warn("reply parent could not be loaded")
		} else {
			notification.NotificationFor = parent.CommentedBy
			if err := s.comments.PushChild(ctx, parent.ID, comment.ID); err != nil {
				s.log.WithError(err).WithField("parent", parent.ID.Hex()).
					Warn("failed to append reply to parent comment")
			}
		}

		if in.NotificationID != nil {
			if err := s.notifications.SetReply(ctx, *in.NotificationID, comment.ID); err != nil {
				s.log.WithError(err).WithField("notification", in.NotificationID.Hex()).
					Warn("failed to link reply to its notification")
			}
		}
	}

	if err := s.notifications.Insert(ctx, &notification); err != nil {
		s.log.WithError(err).Warn("failed to store notification")
	} else {
		s.publish(ctx, notification)
	}

	return comment, nil
}

// DeleteComment removes a comment and its entire reply subtree. Authorization
// and existence are checked synchronously; the cascade itself runs detached
// and the caller never waits for it.
func (s *CommentService) DeleteComment(ctx context.Context, commentID primitive.ObjectID, requesterID string) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if errors.Is(err, store.ErrNoDocument) {
		return ErrCommentNotFound
	}
	if err != nil {
		return err
	}
	if requesterID != comment.CommentedBy && requesterID != comment.BlogAuthor {
		return ErrNotCommentAuthor
	}

	s.cascades.Add(1)
	go func() {
		defer s.cascades.Done()
		s.cascade(context.Background(), commentID)
	}()
	return nil
}

// cascade walks the subtree with an explicit worklist so a pathological reply
// chain cannot grow the call stack. Per-node deletion is idempotent; a node
// that is already gone is skipped silently, everything else is logged and the
// walk continues.
func (s *CommentService) cascade(ctx context.Context, rootID primitive.ObjectID) {
	work := []primitive.ObjectID{rootID}
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]

		comment, err := s.comments.FindByID(ctx, id)
		if err != nil {
			if !errors.Is(err, store.ErrNoDocument) {
				s.log.WithError(err).WithField("comment", id.Hex()).
					Error("cascade could not load comment")
			}
			continue
		}

		if err := s.comments.Delete(ctx, id); err != nil {
			s.log.WithError(err).WithField("comment", id.Hex()).
				Error("cascade could not delete comment")
			continue
		}

		if comment.Parent != nil {
			if err := s.comments.PullChild(ctx, *comment.Parent, id); err != nil {
				s.log.WithError(err).WithField("parent", comment.Parent.Hex()).
					Warn("cascade could not detach comment from parent")
			}
		}
		if err := s.notifications.DeleteByComment(ctx, id); err != nil {
			s.log.WithError(err).WithField("comment", id.Hex()).
				Warn("cascade could not delete comment notifications")
		}
		if err := s.notifications.ClearReplyRef(ctx, id); err != nil {
			s.log.WithError(err).WithField("comment", id.Hex()).
				Warn("cascade could not clear reply references")
		}
		if err := s.blogs.PullComment(ctx, comment.BlogID, id); err != nil {
			s.log.WithError(err).WithField("blog", comment.BlogID.Hex()).
				Warn("cascade could not detach comment from blog")
		}

		delta := models.ActivityDelta{Comments: -1}
		if comment.Parent == nil {
			delta.ParentComments = -1
		}
		if err := s.blogs.ApplyActivity(ctx, comment.BlogID, delta); err != nil {
			s.log.WithError(err).WithField("blog", comment.BlogID.Hex()).
				Warn("cascade could not update blog activity counters")
		}

		work = append(work, comment.Children...)
	}
}

// Drain blocks until all in-flight delete cascades have finished. Called on
// shutdown so detached work is not cut off with the process.
func (s *CommentService) Drain() {
	s.cascades.Wait()
}

// GetBlogComments returns one page of top-level comments, newest first.
func (s *CommentService) GetBlogComments(ctx context.Context, blogID primitive.ObjectID, skip int64) ([]CommentWithAuthor, error) {
	if blogID.IsZero() {
		return nil, ErrMissingBlogID
	}
	comments, err := s.comments.FindTopLevel(ctx, blogID, skip, commentPageSize)
	if err != nil {
		return nil, err
	}
	return s.withAuthors(ctx, comments, 0), nil
}

// GetReplies pages through a comment's children. The slice of children ids is
// taken in stored order, then the loaded replies are returned newest first.
// An unknown comment id yields an empty page, not an error.
func (s *CommentService) GetReplies(ctx context.Context, commentID primitive.ObjectID, skip int64, childrenLevel int) ([]CommentWithAuthor, error) {
	parent, err := s.comments.FindByID(ctx, commentID)
	if errors.Is(err, store.ErrNoDocument) {
		return []CommentWithAuthor{}, nil
	}
	if err != nil {
		return nil, err
	}

	if skip < 0 {
		skip = 0
	}
	if skip >= int64(len(parent.Children)) {
		return []CommentWithAuthor{}, nil
	}
	end := skip + replyPageSize
	if end > int64(len(parent.Children)) {
		end = int64(len(parent.Children))
	}

	replies, err := s.comments.FindByIDs(ctx, parent.Children[skip:end])
	if err != nil {
		return nil, err
	}
	sort.Slice(replies, func(i, j int) bool {
		return replies[i].CommentedAt.After(replies[j].CommentedAt)
	})
	return s.withAuthors(ctx, replies, childrenLevel), nil
}

// withAuthors attaches user summaries to comments. Author resolution is
// advisory display data, so a failing lookup degrades to empty summaries.
func (s *CommentService) withAuthors(ctx context.Context, comments []models.Comment, childrenLevel int) []CommentWithAuthor {
	ids := make([]string, 0, len(comments))
	seen := map[string]bool{}
	for _, c := range comments {
		if !seen[c.CommentedBy] {
			seen[c.CommentedBy] = true
			ids = append(ids, c.CommentedBy)
		}
	}

	summaries, err := s.users.Summaries(ctx, ids)
	if err != nil {
		s.log.WithError(err).Warn("failed to resolve comment authors")
		summaries = map[string]models.UserSummary{}
	}

	out := make([]CommentWithAuthor, 0, len(comments))
	for _, c := range comments {
		out = append(out, CommentWithAuthor{
			Comment:         c,
			CommentedByUser: summaries[c.CommentedBy],
			ChildrenLevel:   childrenLevel,
		})
	}
	return out
}

func (s *CommentService) publish(ctx context.Context, n models.Notification) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, n); err != nil {
		s.log.WithError(err).Warn("failed to publish notification")
	}
}
