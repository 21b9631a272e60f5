package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-service/models"
)

type MongoComments struct {
	coll *mongo.Collection
}

func NewMongoComments(coll *mongo.Collection) *MongoComments {
	return &MongoComments{coll: coll}
}

func (s *MongoComments) Insert(ctx context.Context, c *models.Comment) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.CommentedAt.IsZero() {
		c.CommentedAt = time.Now()
	}
	if c.Children == nil {
		c.Children = []primitive.ObjectID{}
	}
	_, err := s.coll.InsertOne(ctx, c)
	return err
}

func (s *MongoComments) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	comment := models.Comment{}
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *MongoComments) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Comment, error) {
	if len(ids) == 0 {
		return []models.Comment{}, nil
	}
	cur, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	comments := []models.Comment{}
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *MongoComments) FindTopLevel(ctx context.Context, blogID primitive.ObjectID, skip, limit int64) ([]models.Comment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "commentedAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := s.coll.Find(ctx, bson.M{"blog_id": blogID, "isReply": false}, opts)
	if err != nil {
		return nil, err
	}
	comments := []models.Comment{}
	if err := cur.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *MongoComments) PushChild(ctx context.Context, parentID, childID primitive.ObjectID) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": parentID},
		bson.M{"$push": bson.M{"children": childID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (s *MongoComments) PullChild(ctx context.Context, parentID, childID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": parentID},
		bson.M{"$pull": bson.M{"children": childID}})
	return err
}

func (s *MongoComments) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MongoComments) DeleteByBlog(ctx context.Context, blogID primitive.ObjectID) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"blog_id": blogID})
	return err
}

type MongoNotifications struct {
	coll *mongo.Collection
}

func NewMongoNotifications(coll *mongo.Collection) *MongoNotifications {
	return &MongoNotifications{coll: coll}
}

func (s *MongoNotifications) Insert(ctx context.Context, n *models.Notification) error {
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	_, err := s.coll.InsertOne(ctx, n)
	return err
}

func (s *MongoNotifications) SetReply(ctx context.Context, notificationID, replyID primitive.ObjectID) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": notificationID},
		bson.M{"$set": bson.M{"reply": replyID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (s *MongoNotifications) ClearReplyRef(ctx context.Context, replyID primitive.ObjectID) error {
	_, err := s.coll.UpdateMany(ctx,
		bson.M{"reply": replyID},
		bson.M{"$unset": bson.M{"reply": 1}})
	return err
}

func (s *MongoNotifications) DeleteByComment(ctx context.Context, commentID primitive.ObjectID) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"comment": commentID})
	return err
}

func (s *MongoNotifications) DeleteByBlog(ctx context.Context, blogID primitive.ObjectID) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"blog": blogID})
	return err
}

func likeFilter(blogID primitive.ObjectID, userID string) bson.M {
	return bson.M{"blog": blogID, "user": userID, "type": models.LikeNotification}
}

func (s *MongoNotifications) DeleteLike(ctx context.Context, blogID primitive.ObjectID, userID string) error {
	_, err := s.coll.DeleteOne(ctx, likeFilter(blogID, userID))
	return err
}

func (s *MongoNotifications) LikeExists(ctx context.Context, blogID primitive.ObjectID, userID string) (bool, error) {
	count, err := s.coll.CountDocuments(ctx, likeFilter(blogID, userID), options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *MongoNotifications) HasUnseen(ctx context.Context, userID string) (bool, error) {
	filter := bson.M{
		"notification_for": userID,
		"seen":             false,
		"user":             bson.M{"$ne": userID},
	}
	count, err := s.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func notificationFilter(q NotificationQuery) bson.M {
	filter := bson.M{
		"notification_for": q.NotificationFor,
		"user":             bson.M{"$ne": q.NotificationFor},
	}
	if q.Type != "" {
		filter["type"] = q.Type
	}
	return filter
}

func (s *MongoNotifications) Find(ctx context.Context, q NotificationQuery) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(q.Skip).
		SetLimit(q.Limit)
	cur, err := s.coll.Find(ctx, notificationFilter(q), opts)
	if err != nil {
		return nil, err
	}
	notifications := []models.Notification{}
	if err := cur.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *MongoNotifications) Count(ctx context.Context, q NotificationQuery) (int64, error) {
	return s.coll.CountDocuments(ctx, notificationFilter(q))
}

func (s *MongoNotifications) MarkSeen(ctx context.Context, q NotificationQuery) error {
	_, err := s.coll.UpdateMany(ctx, notificationFilter(q), bson.M{"$set": bson.M{"seen": true}})
	return err
}

type MongoBlogs struct {
	coll *mongo.Collection
}

func NewMongoBlogs(coll *mongo.Collection) *MongoBlogs {
	return &MongoBlogs{coll: coll}
}

func (s *MongoBlogs) Insert(ctx context.Context, b *models.Blog) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.PublishedAt.IsZero() {
		b.PublishedAt = time.Now()
	}
	if b.Comments == nil {
		b.Comments = []primitive.ObjectID{}
	}
	_, err := s.coll.InsertOne(ctx, b)
	return err
}

func (s *MongoBlogs) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	blog := models.Blog{}
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (s *MongoBlogs) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	blog := models.Blog{}
	err := s.coll.FindOne(ctx, bson.M{"blog_id": slug}).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (s *MongoBlogs) UpdateBySlug(ctx context.Context, slug string, u models.BlogUpdate) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"blog_id": slug}, bson.M{"$set": u})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (s *MongoBlogs) DeleteBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	blog := models.Blog{}
	err := s.coll.FindOneAndDelete(ctx, bson.M{"blog_id": slug}).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (s *MongoBlogs) ApplyActivity(ctx context.Context, id primitive.ObjectID, d models.ActivityDelta) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{
		"activity.total_likes":           d.Likes,
		"activity.total_comments":        d.Comments,
		"activity.total_parent_comments": d.ParentComments,
		"activity.total_reads":           d.Reads,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (s *MongoBlogs) GetAndCountRead(ctx context.Context, slug string, inc int64) (*models.Blog, error) {
	blog := models.Blog{}
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"blog_id": slug},
		bson.M{"$inc": bson.M{"activity.total_reads": inc}}).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

func (s *MongoBlogs) PushComment(ctx context.Context, id, commentID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"comments": commentID}})
	return err
}

func (s *MongoBlogs) PullComment(ctx context.Context, id, commentID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"comments": commentID}})
	return err
}

func blogFilter(q BlogQuery) bson.M {
	draft := false
	if q.Draft != nil {
		draft = *q.Draft
	}
	filter := bson.M{"draft": draft}
	if q.Tag != "" {
		filter["tags"] = q.Tag
	}
	if q.Search != "" {
		filter["title"] = primitive.Regex{Pattern: q.Search, Options: "i"}
	}
	if q.Author != "" {
		filter["author"] = q.Author
	}
	if q.EliminateSlug != "" {
		filter["blog_id"] = bson.M{"$ne": q.EliminateSlug}
	}
	return filter
}

func (s *MongoBlogs) Find(ctx context.Context, q BlogQuery) ([]models.Blog, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}}).
		SetSkip(q.Skip).
		SetLimit(q.Limit)
	cur, err := s.coll.Find(ctx, blogFilter(q), opts)
	if err != nil {
		return nil, err
	}
	blogs := []models.Blog{}
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

func (s *MongoBlogs) Count(ctx context.Context, q BlogQuery) (int64, error) {
	return s.coll.CountDocuments(ctx, blogFilter(q))
}

func (s *MongoBlogs) Trending(ctx context.Context, limit int64) ([]models.Blog, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "activity.total_reads", Value: -1},
			{Key: "activity.total_likes", Value: -1},
			{Key: "publishedAt", Value: -1},
		}).
		SetLimit(limit)
	cur, err := s.coll.Find(ctx, bson.M{"draft": false}, opts)
	if err != nil {
		return nil, err
	}
	blogs := []models.Blog{}
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, err
	}
	return blogs, nil
}

type MongoUsers struct {
	coll *mongo.Collection
}

func NewMongoUsers(coll *mongo.Collection) *MongoUsers {
	return &MongoUsers{coll: coll}
}

func (s *MongoUsers) Insert(ctx context.Context, u *models.User) error {
	if u.JoinedAt.IsZero() {
		u.JoinedAt = time.Now()
	}
	_, err := s.coll.InsertOne(ctx, u)
	return err
}

func (s *MongoUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	user := models.User{}
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user := models.User{}
	err := s.coll.FindOne(ctx, bson.M{"personal_info.username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoDocument
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MongoUsers) Search(ctx context.Context, query string, limit int64) ([]models.User, error) {
	filter := bson.M{"personal_info.username": primitive.Regex{Pattern: query, Options: "i"}}
	cur, err := s.coll.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoUsers) Summaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error) {
	summaries := map[string]models.UserSummary{}
	if len(ids) == 0 {
		return summaries, nil
	}
	cur, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		summaries[u.ID] = models.UserSummary{
			ID:        u.ID,
			Username:  u.PersonalInfo.Username,
			FirstName: u.PersonalInfo.FirstName,
			LastName:  u.PersonalInfo.LastName,
			Avatar:    u.PersonalInfo.Avatar,
		}
	}
	return summaries, nil
}

func (s *MongoUsers) ApplyAccountDelta(ctx context.Context, id string, posts, reads int64) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{
		"account_info.total_posts": posts,
		"account_info.total_reads": reads,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (s *MongoUsers) PushBlog(ctx context.Context, id string, blogID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"blogs": blogID}})
	return err
}

func (s *MongoUsers) PullBlog(ctx context.Context, id string, blogID primitive.ObjectID) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"blogs": blogID}})
	return err
}
