package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a node in a blog's comment forest. Top-level comments have no
// Parent; replies carry the parent id and appear in the parent's Children
// list in insertion order.
type Comment struct {
	ID          primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	BlogID      primitive.ObjectID   `json:"blog_id" bson:"blog_id"`
	BlogAuthor  string               `json:"blog_author" bson:"blog_author"`
	CommentedBy string               `json:"commented_by" bson:"commented_by"`
	Comment     string               `json:"comment" bson:"comment"`
	Parent      *primitive.ObjectID  `json:"parent,omitempty" bson:"parent,omitempty"`
	IsReply     bool                 `json:"isReply" bson:"isReply"`
	Children    []primitive.ObjectID `json:"children" bson:"children"`
	CommentedAt time.Time            `json:"commentedAt" bson:"commentedAt"`
}

type CommentBody struct {
	BlogID         string `json:"blog_id"`
	BlogAuthor     string `json:"blog_author"`
	Comment        string `json:"comment"`
	ReplyingTo     string `json:"replying_to,omitempty"`
	NotificationID string `json:"notification_id,omitempty"`
}
