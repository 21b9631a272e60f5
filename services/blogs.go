package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"blog-service/configs"
	"blog-service/models"
	"blog-service/store"
	"blog-service/utils"
)

const (
	latestPageSize      = 3
	trendingLimit       = 5
	searchPageSize      = 2
	userWrittenPageSize = 2

	trendingCacheKey = "trending:blogs"
	trendingCacheTTL = 10 * time.Minute
)

// BlogService covers the blog lifecycle around the comment core: publishing,
// listing, search, read tracking and the delete cascade over a blog's
// comments and notifications.
type BlogService struct {
	blogs         store.BlogStore
	comments      store.CommentStore
	notifications store.NotificationStore
	users         store.UserStore
	cache         *redis.Client
	log           *logrus.Entry
}

func NewBlogService(
	blogs store.BlogStore,
	comments store.CommentStore,
	notifications store.NotificationStore,
	users store.UserStore,
	cache *redis.Client,
) *BlogService {
	return &BlogService{
		blogs:         blogs,
		comments:      comments,
		notifications: notifications,
		users:         users,
		cache:         cache,
		log:           configs.LogWithContext("blogs", "core"),
	}
}

type PublishBlogInput struct {
	ID      string // existing slug when republishing
	Title   string
	Des     string
	Banner  string
	Content map[string]interface{}
	Tags    []string
	Draft   bool
}

func validatePublish(in PublishBlogInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrMissingTitle
	}
	if in.Draft {
		return nil
	}
	if in.Des == "" || len(in.Des) > 200 {
		return ErrInvalidDes
	}
	if in.Banner == "" {
		return ErrMissingBanner
	}
	if len(in.Tags) == 0 || len(in.Tags) > 10 {
		return ErrInvalidTags
	}
	if len(in.Content) == 0 {
		return ErrMissingContent
	}
	return nil
}

// Publish creates a blog or, when in.ID names an existing slug, updates it.
// Returns the blog's slug.
func (s *BlogService) Publish(ctx context.Context, authorID string, in PublishBlogInput) (string, error) {
	if err := validatePublish(in); err != nil {
		return "", err
	}

	tags := make([]string, len(in.Tags))
	for i, tag := range in.Tags {
		tags[i] = strings.ToLower(tag)
	}

	if in.ID != "" {
		err := s.blogs.UpdateBySlug(ctx, in.ID, models.BlogUpdate{
			Title:   in.Title,
			Des:     in.Des,
			Banner:  in.Banner,
			Content: in.Content,
			Tags:    tags,
			Draft:   in.Draft,
		})
		if errors.Is(err, store.ErrNoDocument) {
			return "", ErrBlogNotFound
		}
		if err != nil {
			return "", err
		}
		return in.ID, nil
	}

	blog := &models.Blog{
		BlogID:      utils.Slugify(in.Title),
		Title:       in.Title,
		Des:         in.Des,
		Banner:      in.Banner,
		Content:     in.Content,
		Tags:        tags,
		Author:      authorID,
		Draft:       in.Draft,
		PublishedAt: time.Now(),
	}
	if err := s.blogs.Insert(ctx, blog); err != nil {
		return "", err
	}

	var postInc int64
	if !in.Draft {
		postInc = 1
	}
	if err := s.users.ApplyAccountDelta(ctx, authorID, postInc, 0); err != nil {
		s.log.WithError(err).WithField("author", authorID).
			Warn("failed to update author post count")
	}
	if err := s.users.PushBlog(ctx, authorID, blog.ID); err != nil {
		s.log.WithError(err).WithField("author", authorID).
			Warn("failed to append blog to author")
	}
	return blog.BlogID, nil
}

// Get fetches a blog by slug. Unless mode is "edit" the fetch counts as a
// read on both the blog and its author. Drafts stay hidden unless the caller
// asked for one.
func (s *BlogService) Get(ctx context.Context, slug string, draft bool, mode string) (*models.Blog, error) {
	if slug == "" {
		return nil, ErrMissingBlogID
	}

	var inc int64 = 1
	if mode == "edit" {
		inc = 0
	}
	blog, err := s.blogs.GetAndCountRead(ctx, slug, inc)
	if errors.Is(err, store.ErrNoDocument) {
		return nil, ErrBlogNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.users.ApplyAccountDelta(ctx, blog.Author, 0, inc); err != nil {
		s.log.WithError(err).WithField("author", blog.Author).
			Warn("failed to update author read count")
	}

	if blog.Draft && !draft {
		return nil, ErrDraftBlog
	}
	return blog, nil
}

// Latest returns one page of published blogs, newest first.
func (s *BlogService) Latest(ctx context.Context, page int64) ([]models.Blog, error) {
	if page < 1 {
		page = 1
	}
	return s.blogs.Find(ctx, store.BlogQuery{
		Skip:  (page - 1) * latestPageSize,
		Limit: latestPageSize,
	})
}

func (s *BlogService) LatestCount(ctx context.Context) (int64, error) {
	return s.blogs.Count(ctx, store.BlogQuery{})
}

// Trending returns the most-read published blogs, served from a short-lived
// Redis cache when one is configured.
func (s *BlogService) Trending(ctx context.Context) ([]models.Blog, error) {
	if s.cache != nil {
		data, err := s.cache.Get(ctx, trendingCacheKey).Bytes()
		if err == nil {
			blogs := []models.Blog{}
			if err := json.Unmarshal(data, &blogs); err == nil {
				return blogs, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.WithError(err).Warn("trending cache read failed")
		}
	}

	blogs, err := s.blogs.Trending(ctx, trendingLimit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(blogs); err == nil {
			if err := s.cache.Set(ctx, trendingCacheKey, data, trendingCacheTTL).Err(); err != nil {
				s.log.WithError(err).Warn("trending cache write failed")
			}
		}
	}
	return blogs, nil
}

type SearchBlogsInput struct {
	Tag           string
	Query         string
	Author        string
	EliminateBlog string
	Page          int64
	Limit         int64
}

func searchQuery(in SearchBlogsInput) store.BlogQuery {
	return store.BlogQuery{
		Tag:           in.Tag,
		Search:        in.Query,
		Author:        in.Author,
		EliminateSlug: in.EliminateBlog,
	}
}

// Search filters published blogs by tag, title text or author.
func (s *BlogService) Search(ctx context.Context, in SearchBlogsInput) ([]models.Blog, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = searchPageSize
	}
	q := searchQuery(in)
	q.Skip = (in.Page - 1) * limit
	q.Limit = limit
	return s.blogs.Find(ctx, q)
}

func (s *BlogService) SearchCount(ctx context.Context, in SearchBlogsInput) (int64, error) {
	return s.blogs.Count(ctx, searchQuery(in))
}

// UserWritten pages through the caller's own blogs, drafts included when
// asked. deletedDocCount shifts the offset for client-side deletions and is
// trusted as supplied.
func (s *BlogService) UserWritten(ctx context.Context, authorID string, draft bool, query string, page, deletedDocCount int64) ([]models.Blog, error) {
	if page < 1 {
		page = 1
	}
	skip := (page-1)*userWrittenPageSize - deletedDocCount
	if skip < 0 {
		skip = 0
	}
	return s.blogs.Find(ctx, store.BlogQuery{
		Author: authorID,
		Search: query,
		Draft:  &draft,
		Skip:   skip,
		Limit:  userWrittenPageSize,
	})
}

func (s *BlogService) UserWrittenCount(ctx context.Context, authorID string, draft bool, query string) (int64, error) {
	return s.blogs.Count(ctx, store.BlogQuery{
		Author: authorID,
		Search: query,
		Draft:  &draft,
	})
}

// Delete removes a blog and, best-effort, everything hanging off it: its
// notifications, its comment forest and the author's bookkeeping.
func (s *BlogService) Delete(ctx context.Context, slug, requesterID string) error {
	blog, err := s.blogs.FindBySlug(ctx, slug)
	if errors.Is(err, store.ErrNoDocument) {
		return ErrBlogNotFound
	}
	if err != nil {
		return err
	}
	if blog.Author != requesterID {
		return ErrNotBlogAuthor
	}

	if _, err := s.blogs.DeleteBySlug(ctx, slug); err != nil {
		return err
	}

	if err := s.notifications.DeleteByBlog(ctx, blog.ID); err != nil {
		s.log.WithError(err).WithField("blog", blog.ID.Hex()).
			Warn("failed to delete blog notifications")
	}
	if err := s.comments.DeleteByBlog(ctx, blog.ID); err != nil {
		s.log.WithError(err).WithField("blog", blog.ID.Hex()).
			Warn("failed to delete blog comments")
	}
	if err := s.users.PullBlog(ctx, blog.Author, blog.ID); err != nil {
		s.log.WithError(err).WithField("author", blog.Author).
			Warn("failed to detach blog from author")
	}
	if err := s.users.ApplyAccountDelta(ctx, blog.Author, -1, 0); err != nil {
		s.log.WithError(err).WithField("author", blog.Author).
			Warn("failed to update author post count")
	}
	return nil
}
