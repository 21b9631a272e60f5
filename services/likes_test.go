package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-service/models"
	"blog-service/store"
)

func newLikeFixture(t *testing.T) (*LikeService, *store.Memory, *capturePublisher, *models.Blog) {
	t.Helper()
	mem := store.NewMemory()
	pub := &capturePublisher{}
	svc := NewLikeService(mem.Blogs(), mem.Notifications(), pub)

	blog := &models.Blog{
		BlogID: "liked-blog-slug",
		Title:  "Liked Blog",
		Author: "bob",
	}
	require.NoError(t, mem.Blogs().Insert(context.Background(), blog))
	return svc, mem, pub, blog
}

func TestLikeBlogToggle(t *testing.T) {
	svc, mem, pub, blog := newLikeFixture(t)
	ctx := context.Background()

	liked, err := svc.LikeBlog(ctx, blog.ID, "alice", false)
	require.NoError(t, err)
	assert.True(t, liked)

	updated, err := mem.Blogs().FindByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Activity.TotalLikes)

	exists, err := svc.IsLikedByUser(ctx, blog.ID, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	require.Len(t, pub.published(), 1)
	assert.Equal(t, models.LikeNotification, pub.published()[0].Type)
	assert.Equal(t, "bob", pub.published()[0].NotificationFor)
	assert.Equal(t, "alice", pub.published()[0].User)

	// unlike round-trips back to the initial state
	liked, err = svc.LikeBlog(ctx, blog.ID, "alice", true)
	require.NoError(t, err)
	assert.False(t, liked)

	updated, err = mem.Blogs().FindByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Zero(t, updated.Activity.TotalLikes)

	exists, err = svc.IsLikedByUser(ctx, blog.ID, "alice")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLikeBlogUnknownBlog(t *testing.T) {
	svc, _, _, _ := newLikeFixture(t)
	_, err := svc.LikeBlog(context.Background(), primitive.NewObjectID(), "alice", false)
	assert.ErrorIs(t, err, ErrBlogNotFound)
}

func TestLikeBlogMissingID(t *testing.T) {
	svc, _, _, _ := newLikeFixture(t)
	_, err := svc.LikeBlog(context.Background(), primitive.ObjectID{}, "alice", false)
	assert.ErrorIs(t, err, ErrMissingBlogID)
	_, err = svc.IsLikedByUser(context.Background(), primitive.ObjectID{}, "alice")
	assert.ErrorIs(t, err, ErrMissingBlogID)
}

func TestLikeBlogIndependentUsers(t *testing.T) {
	svc, mem, _, blog := newLikeFixture(t)
	ctx := context.Background()

	_, err := svc.LikeBlog(ctx, blog.ID, "alice", false)
	require.NoError(t, err)
	_, err = svc.LikeBlog(ctx, blog.ID, "carol", false)
	require.NoError(t, err)

	updated, err := mem.Blogs().FindByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Activity.TotalLikes)

	_, err = svc.LikeBlog(ctx, blog.ID, "alice", true)
	require.NoError(t, err)

	exists, err := svc.IsLikedByUser(ctx, blog.ID, "carol")
	require.NoError(t, err)
	assert.True(t, exists, "carol's like must survive alice's unlike")
}
