package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	LikeNotification    NotificationType = "like"
	CommentNotification NotificationType = "comment"
	ReplyNotification   NotificationType = "reply"
)

// Notification is a feed entry produced as a side effect of likes, comments
// and replies. For the like type at most one record exists per (user, blog)
// pair and it lives exactly as long as the like itself.
type Notification struct {
	ID               primitive.ObjectID  `json:"_id,omitempty" bson:"_id,omitempty"`
	Type             NotificationType    `json:"type" bson:"type"`
	Blog             primitive.ObjectID  `json:"blog" bson:"blog"`
	NotificationFor  string              `json:"notification_for" bson:"notification_for"`
	User             string              `json:"user" bson:"user"` // the person who triggered this notification
	Comment          *primitive.ObjectID `json:"comment,omitempty" bson:"comment,omitempty"`
	RepliedOnComment *primitive.ObjectID `json:"replied_on_comment,omitempty" bson:"replied_on_comment,omitempty"`
	Reply            *primitive.ObjectID `json:"reply,omitempty" bson:"reply,omitempty"`
	Seen             bool                `json:"seen" bson:"seen"`
	CreatedAt        time.Time           `json:"createdAt" bson:"createdAt"`
}
