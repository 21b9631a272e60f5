package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity holds the denormalized per-blog counters. They track the comments
// and notifications collections approximately, never transactionally.
type Activity struct {
	TotalLikes          int64 `json:"total_likes" bson:"total_likes"`
	TotalComments       int64 `json:"total_comments" bson:"total_comments"`
	TotalReads          int64 `json:"total_reads" bson:"total_reads"`
	TotalParentComments int64 `json:"total_parent_comments" bson:"total_parent_comments"`
}

// ActivityDelta is applied to a blog's counters as a single atomic $inc.
type ActivityDelta struct {
	Likes          int64
	Comments       int64
	ParentComments int64
	Reads          int64
}

type Blog struct {
	ID          primitive.ObjectID     `json:"_id,omitempty" bson:"_id,omitempty"`
	BlogID      string                 `json:"blog_id" bson:"blog_id"` // URL slug
	Title       string                 `json:"title" bson:"title"`
	Des         string                 `json:"des" bson:"des"`
	Banner      string                 `json:"banner" bson:"banner"`
	Content     map[string]interface{} `json:"content" bson:"content"`
	Tags        []string               `json:"tags" bson:"tags"`
	Author      string                 `json:"author" bson:"author"`
	Comments    []primitive.ObjectID   `json:"comments" bson:"comments"`
	Activity    Activity               `json:"activity" bson:"activity"`
	Draft       bool                   `json:"draft" bson:"draft"`
	PublishedAt time.Time              `json:"publishedAt" bson:"publishedAt"`
}

// BlogUpdate carries the editable fields for republishing an existing post.
type BlogUpdate struct {
	Title   string                 `bson:"title"`
	Des     string                 `bson:"des"`
	Banner  string                 `bson:"banner"`
	Content map[string]interface{} `bson:"content"`
	Tags    []string               `bson:"tags"`
	Draft   bool                   `bson:"draft"`
}
