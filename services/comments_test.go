package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-service/models"
	"blog-service/store"
)

// capturePublisher records published notifications instead of hitting Redis.
type capturePublisher struct {
	mu    sync.Mutex
	notes []models.Notification
}

func (p *capturePublisher) Publish(ctx context.Context, n models.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notes = append(p.notes, n)
	return nil
}

func (p *capturePublisher) published() []models.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Notification{}, p.notes...)
}

func newCommentFixture(t *testing.T) (*CommentService, *store.Memory, *capturePublisher, *models.Blog) {
	t.Helper()
	mem := store.NewMemory()
	pub := &capturePublisher{}
	svc := NewCommentService(mem.Comments(), mem.Notifications(), mem.Blogs(), mem.Users(), pub)

	blog := &models.Blog{
		BlogID: "test-blog-slug",
		Title:  "Test Blog",
		Author: "bob",
	}
	require.NoError(t, mem.Blogs().Insert(context.Background(), blog))
	return svc, mem, pub, blog
}

func TestAddCommentTopLevel(t *testing.T) {
	svc, mem, pub, blog := newCommentFixture(t)
	ctx := context.Background()

	comment, err := svc.AddComment(ctx, AddCommentInput{
		BlogID:      blog.ID,
		BlogAuthor:  blog.Author,
		CommentedBy: "alice",
		Comment:     "great post",
	})
	require.NoError(t, err)
	require.False(t, comment.ID.IsZero())
	assert.False(t, comment.IsReply)
	assert.Nil(t, comment.Parent)

	updated, err := mem.Blogs().FindByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Activity.TotalComments)
	assert.Equal(t, int64(1), updated.Activity.TotalParentComments)
	assert.Equal(t, []primitive.ObjectID{comment.ID}, updated.Comments)

	notes, err := mem.Notifications().Find(ctx, store.NotificationQuery{NotificationFor: "bob", Limit: 10})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.CommentNotification, notes[0].Type)
	assert.Equal(t, "alice", notes[0].User)
	require.NotNil(t, notes[0].Comment)
	assert.Equal(t, comment.ID, *notes[0].Comment)

	require.Len(t, pub.published(), 1)
	assert.Equal(t, models.CommentNotification, pub.published()[0].Type)
}

func TestAddCommentReply(t *testing.T) {
	svc, mem, _, blog := newCommentFixture(t)
	ctx := context.Background()

	parent, err := svc.AddComment(ctx, AddCommentInput{
		BlogID:      blog.ID,
		BlogAuthor:  blog.Author,
		CommentedBy: "alice",
		Comment:     "first",
	})
	require.NoError(t, err)

	reply, err := svc.AddComment(ctx, AddCommentInput{
		BlogID:      blog.ID,
		BlogAuthor:  blog.Author,
		CommentedBy: "carol",
		Comment:     "replying",
		ReplyingTo:  &parent.ID,
	})
	require.NoError(t, err)
	assert.True(t, reply.IsReply)
	require.NotNil(t, reply.Parent)
	assert.Equal(t, parent.ID, *reply.Parent)

	// reply lands on the parent's children list
	reloaded, err := mem.Comments().FindByID(ctx, parent.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{reply.ID}, reloaded.Children)

	// reply counts toward total comments but not parent comments
	updated, err := mem.Blogs().FindByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Activity.TotalComments)
	assert.Equal(t, int64(1), updated.Activity.TotalParentComments)

	// notification goes to the parent comment's author, not the blog author
	notes, err := mem.Notifications().Find(ctx, store.NotificationQuery{NotificationFor: "alice", Limit: 10})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, models.ReplyNotification, notes[0].Type)
	assert.Equal(t, "carol", notes[0].User)
	require.NotNil(t, notes[0].RepliedOnComment)
	assert.Equal(t, parent.ID, *notes[0].RepliedOnComment)
}

func TestAddCommentLinksReplyToNotification(t *testing.T) {
	svc, mem, _, blog := newCommentFixture(t)
	ctx := context.Background()

	parent, err := svc.AddComment(ctx, AddCommentInput{
		BlogID:      blog.ID,
		BlogAuthor:  blog.Author,
		CommentedBy: "alice",
		Comment:     "first",
	})
	require.NoError(t, err)

	notes, err := mem.Notifications().Find(ctx, store.NotificationQuery{NotificationFor: "bob", Limit: 10})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	notificationID := notes[0].ID

	reply, err := svc.AddComment(ctx, AddCommentInput{
		BlogID:         blog.ID,
		BlogAuthor:     blog.Author,
		CommentedBy:    "bob",
		Comment:        "thanks",
		ReplyingTo:     &parent.ID,
		NotificationID: &notificationID,
	})
	require.NoError(t, err)

	notes, err = mem.Notifications().Find(ctx, store.NotificationQuery{NotificationFor: "bob", Limit: 10})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.NotNil(t, notes[0].Reply)
	assert.Equal(t, reply.ID, *notes[0].Reply)
}

func TestAddCommentValidation(t *testing.T) {
	svc, mem, pub, blog := newCommentFixture(t)
	ctx := context.Background()

	_, err := svc.AddComment(ctx, AddCommentInput{
		BlogID:      blog.ID,
		BlogAuthor:  blog.Author,
		CommentedBy: "alice",
		Comment:     "   ",
	})
	assert.ErrorIs(t, err, ErrEmptyComment)

	_, err = svc.AddComment(ctx, AddCommentInput{
		BlogAuthor:  blog.Author,
		CommentedBy: "alice",
		Comment:     "hello",
	})
	assert.ErrorIs(t, err, ErrMissingBlogID)

	// nothing was written
	updated, err := mem.Blogs().FindByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Zero(t, updated.Activity.TotalComments)
	assert.Empty(t, updated.Comments)
	assert.Empty(t, pub.published())
}

func TestDeleteCommentAuthorization(t *testing.T) {
	svc, mem, _, blog := newCommentFixture(t)
	ctx := context.Background()

	comment, err := svc.AddComment(ctx, AddCommentInput{
		BlogID:      blog.ID,
		BlogAuthor:  blog.Author,
		CommentedBy: "alice",
		Comment:     "mine",
	})
	require.NoError(t, err)

	err = svc.DeleteComment(ctx, comment.ID, "carol")
	assert.ErrorIs(t, err, ErrNotCommentAuthor)
	svc.Drain()

	// untouched
	_, err = mem.Comments().FindByID(ctx, comment.ID)
	assert.NoError(t, err)
	updated, err := mem.Blogs().FindByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Activity.TotalComments)
}

func TestDeleteCommentNotFound(t *testing.T) {
	svc, _, _, _ := newCommentFixture(t)
	err := svc.DeleteComment(context.Background(), primitive.NewObjectID(), "alice")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestDeleteCommentBlogAuthorMayDelete(t *testing.T) {
	svc, mem, _, blog := newCommentFixture(t)
	ctx := context.Background()

	comment, err := svc.AddComment(ctx, AddCommentInput{
		BlogID:      blog.ID,
		BlogAuthor:  blog.Author,
		CommentedBy: "alice",
		Comment:     "rude comment",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComment(ctx, comment.ID, "bob"))
	svc.Drain()

	_, err = mem.Comments().FindByID(ctx, comment.ID)
	assert.ErrorIs(t, err, store.ErrNoDocument)
}

func TestDeleteCommentCascade(t *testing.T) {
	svc, mem, _, blog := newCommentFixture(t)
	ctx := context.Background()

	root, err := svc.AddComment(ctx, AddCommentInput{
		BlogID:      blog.ID,
		BlogAuthor:  blog.Author,
		CommentedBy: "alice",
		Comment:     "root",
	})
	require.NoError(t, err)
	reply1, err := svc.AddComment(ctx, AddCommentInput{
		BlogID:      blog.ID,
		BlogAuthor:  blog.Author,
		CommentedBy: "carol",
		Comment:     "reply one",
		ReplyingTo:  &root.ID,
	})
	require.NoError(t, err)
	reply2, err := svc.AddComment(ctx, AddCommentInput{
		BlogID:      blog.ID,
		BlogAuthor:  blog.Author,
		CommentedBy: "alice",
		Comment:     "reply two",
		ReplyingTo:  &reply1.ID,
	})
	require.NoError(t, err)

	before, err := mem.Blogs().FindByID(ctx, blog.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), before.Activity.TotalComments)
	require.Equal(t, int64(1), before.Activity.TotalParentComments)

	require.NoError(t, svc.DeleteComment(ctx, root.ID, "alice"))
	svc.Drain()

	for _, id := range []primitive.ObjectID{root.ID, reply1.ID, reply2.ID} {
		_, err := mem.Comments().FindByID(ctx, id)
		assert.ErrorIs(t, err, store.ErrNoDocument)
	}

	after, err := mem.Blogs().FindByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Zero(t, after.Activity.TotalComments)
	assert.Zero(t, after.Activity.TotalParentComments)
	assert.Empty(t, after.Comments)

	// the whole subtree's notifications went with it
	for _, user := range []string{"bob", "alice", "carol"} {
		count, err := mem.Notifications().Count(ctx, store.NotificationQuery{NotificationFor: user})
		require.NoError(t, err)
		assert.Zero(t, count, "leftover notifications for %s", user)
	}
}

func TestDeleteReplyClearsNotificationBacklink(t *testing.T) {
	svc, mem, _, blog := newCommentFixture(t)
	ctx := context.Background()

	parent, err := svc.AddComment(ctx, AddCommentInput{
		BlogID:      blog.ID,
		BlogAuthor:  blog.Author,
		CommentedBy: "alice",
		Comment:     "question",
	})
	require.NoError(t, err)

	notes, err := mem.Notifications().Find(ctx, store.NotificationQuery{NotificationFor: "bob", Limit: 10})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	notificationID := notes[0].ID

	reply, err := svc.AddComment(ctx, AddCommentInput{
		BlogID:         blog.ID,
		BlogAuthor:     blog.Author,
		CommentedBy:    "bob",
		Comment:        "answer",
		ReplyingTo:     &parent.ID,
		NotificationID: &notificationID,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComment(ctx, reply.ID, "bob"))
	svc.Drain()

	// the original comment notification survives with the backlink cleared
	notes, err = mem.Notifications().Find(ctx, store.NotificationQuery{NotificationFor: "bob", Limit: 10})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Nil(t, notes[0].Reply)

	// the parent lost the child but is still there
	reloaded, err := mem.Comments().FindByID(ctx, parent.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Children)
}

func TestGetBlogCommentsPagination(t *testing.T) {
	svc, mem, _, blog := newCommentFixture(t)
	ctx := context.Background()

	require.NoError(t, mem.Users().Insert(ctx, &models.User{
		ID:           "alice",
		PersonalInfo: models.PersonalInfo{Username: "alice01", FirstName: "Alice"},
	}))

	var last *models.Comment
	for i := 0; i < 7; i++ {
		c, err := svc.AddComment(ctx, AddCommentInput{
			BlogID:      blog.ID,
			BlogAuthor:  blog.Author,
			CommentedBy: "alice",
			Comment:     "comment",
		})
		require.NoError(t, err)
		last = c
	}

	page1, err := svc.GetBlogComments(ctx, blog.ID, 0)
	require.NoError(t, err)
	require.Len(t, page1, 5)
	assert.Equal(t, last.ID, page1[0].ID) // newest first
	assert.Equal(t, "alice01", page1[0].CommentedByUser.Username)

	page2, err := svc.GetBlogComments(ctx, blog.ID, 5)
	require.NoError(t, err)
	assert.Len(t, page2, 2)
}

func TestGetRepliesPagination(t *testing.T) {
	svc, _, _, blog := newCommentFixture(t)
	ctx := context.Background()

	parent, err := svc.AddComment(ctx, AddCommentInput{
		BlogID:      blog.ID,
		BlogAuthor:  blog.Author,
		CommentedBy: "alice",
		Comment:     "root",
	})
	require.NoError(t, err)

	replies := make([]*models.Comment, 7)
	for i := range replies {
		r, err := svc.AddComment(ctx, AddCommentInput{
			BlogID:      blog.ID,
			BlogAuthor:  blog.Author,
			CommentedBy: "carol",
			Comment:     "reply",
			ReplyingTo:  &parent.ID,
		})
		require.NoError(t, err)
		replies[i] = r
	}

	// the first page slices the first five children, then orders them newest
	// first within the page
	page1, err := svc.GetReplies(ctx, parent.ID, 0, 1)
	require.NoError(t, err)
	require.Len(t, page1, 5)
	for i, want := range []int{4, 3, 2, 1, 0} {
		assert.Equal(t, replies[want].ID, page1[i].ID)
	}
	assert.Equal(t, 1, page1[0].ChildrenLevel)

	page2, err := svc.GetReplies(ctx, parent.ID, 5, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, replies[6].ID, page2[0].ID)
	assert.Equal(t, replies[5].ID, page2[1].ID)

	empty, err := svc.GetReplies(ctx, parent.ID, 7, 1)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetRepliesUnknownComment(t *testing.T) {
	svc, _, _, _ := newCommentFixture(t)
	replies, err := svc.GetReplies(context.Background(), primitive.NewObjectID(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, replies)
}
