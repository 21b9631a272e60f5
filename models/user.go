package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PersonalInfo struct {
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
	Email     string `json:"email,omitempty" bson:"email,omitempty"`
	Username  string `json:"username" bson:"username"`
	Bio       string `json:"bio" bson:"bio"`
	Avatar    string `json:"avatar" bson:"avatar"`
}

type SocialLinks struct {
	Youtube   string `json:"youtube" bson:"youtube"`
	Instagram string `json:"instagram" bson:"instagram"`
	Facebook  string `json:"facebook" bson:"facebook"`
	Twitter   string `json:"twitter" bson:"twitter"`
	Github    string `json:"github" bson:"github"`
	Website   string `json:"website" bson:"website"`
}

type AccountInfo struct {
	TotalPosts int64 `json:"total_posts" bson:"total_posts"`
	TotalReads int64 `json:"total_reads" bson:"total_reads"`
}

// User is the profile document. Credentials never live here; identity is
// established upstream and arrives as a plain user id.
type User struct {
	ID           string               `json:"_id" bson:"_id"`
	PersonalInfo PersonalInfo         `json:"personal_info" bson:"personal_info"`
	SocialLinks  SocialLinks          `json:"social_links" bson:"social_links"`
	AccountInfo  AccountInfo          `json:"account_info" bson:"account_info"`
	Blogs        []primitive.ObjectID `json:"blogs,omitempty" bson:"blogs,omitempty"`
	JoinedAt     time.Time            `json:"joinedAt" bson:"joinedAt"`
}

// UserSummary is the display-safe author projection attached to comments.
type UserSummary struct {
	ID        string `json:"_id" bson:"_id"`
	Username  string `json:"username" bson:"username"`
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
	Avatar    string `json:"avatar" bson:"avatar"`
}
