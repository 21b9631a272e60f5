package services

import "errors"

// Validation and authorization failures abort an operation before any write.
// Everything the store reports after the primary write is logged, not
// surfaced.
var (
	ErrEmptyComment     = errors.New("comment text is required")
	ErrMissingBlogID    = errors.New("blog id is required")
	ErrMissingTitle     = errors.New("title is required")
	ErrInvalidDes       = errors.New("description is required and must be 200 characters or less")
	ErrMissingBanner    = errors.New("banner is required for publishing")
	ErrInvalidTags      = errors.New("between 1 and 10 tags are required")
	ErrMissingContent   = errors.New("blog content is required for publishing")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrBlogNotFound     = errors.New("blog not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrDraftBlog        = errors.New("draft blogs are not accessible")
	ErrNotCommentAuthor = errors.New("only the comment author or the blog author can delete this comment")
	ErrNotBlogAuthor    = errors.New("only the blog author can delete this blog")
)
