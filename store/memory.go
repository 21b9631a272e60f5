package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-service/models"
)

// Memory is an in-process document store with the same observable behavior
// as the Mongo implementation. It backs the unit tests; there is no
// in-process MongoDB to embed the way a sqlite test database can be.
type Memory struct {
	mu            sync.Mutex
	seq           int64
	comments      map[primitive.ObjectID]*models.Comment
	commentSeq    map[primitive.ObjectID]int64
	notifications map[primitive.ObjectID]*models.Notification
	notifSeq      map[primitive.ObjectID]int64
	blogs         map[primitive.ObjectID]*models.Blog
	blogSeq       map[primitive.ObjectID]int64
	users         map[string]*models.User
}

func NewMemory() *Memory {
	return &Memory{
		comments:      map[primitive.ObjectID]*models.Comment{},
		commentSeq:    map[primitive.ObjectID]int64{},
		notifications: map[primitive.ObjectID]*models.Notification{},
		notifSeq:      map[primitive.ObjectID]int64{},
		blogs:         map[primitive.ObjectID]*models.Blog{},
		blogSeq:       map[primitive.ObjectID]int64{},
		users:         map[string]*models.User{},
	}
}

func (m *Memory) Comments() CommentStore           { return &memoryComments{m} }
func (m *Memory) Notifications() NotificationStore { return &memoryNotifications{m} }
func (m *Memory) Blogs() BlogStore                 { return &memoryBlogs{m} }
func (m *Memory) Users() UserStore                 { return &memoryUsers{m} }

func (m *Memory) nextSeq() int64 {
	m.seq++
	return m.seq
}

// newer reports whether a sorts after b by timestamp, breaking ties by
// insertion order so same-instant writes still order deterministically.
func newer(aT time.Time, aSeq int64, bT time.Time, bSeq int64) bool {
	if !aT.Equal(bT) {
		return aT.After(bT)
	}
	return aSeq > bSeq
}

func copyComment(c *models.Comment) *models.Comment {
	cp := *c
	cp.Children = append([]primitive.ObjectID{}, c.Children...)
	if c.Parent != nil {
		p := *c.Parent
		cp.Parent = &p
	}
	return &cp
}

type memoryComments struct{ m *Memory }

func (s *memoryComments) Insert(ctx context.Context, c *models.Comment) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if c.CommentedAt.IsZero() {
		c.CommentedAt = time.Now()
	}
	if c.Children == nil {
		c.Children = []primitive.ObjectID{}
	}
	s.m.comments[c.ID] = copyComment(c)
	s.m.commentSeq[c.ID] = s.m.nextSeq()
	return nil
}

func (s *memoryComments) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	c, ok := s.m.comments[id]
	if !ok {
		return nil, ErrNoDocument
	}
	return copyComment(c), nil
}

func (s *memoryComments) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Comment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	comments := []models.Comment{}
	for _, id := range ids {
		if c, ok := s.m.comments[id]; ok {
			comments = append(comments, *copyComment(c))
		}
	}
	return comments, nil
}

func (s *memoryComments) FindTopLevel(ctx context.Context, blogID primitive.ObjectID, skip, limit int64) ([]models.Comment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	matched := []*models.Comment{}
	for _, c := range s.m.comments {
		if c.BlogID == blogID && !c.IsReply {
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return newer(matched[i].CommentedAt, s.m.commentSeq[matched[i].ID],
			matched[j].CommentedAt, s.m.commentSeq[matched[j].ID])
	})
	comments := []models.Comment{}
	for i := skip; i < int64(len(matched)) && int64(len(comments)) < limit; i++ {
		comments = append(comments, *copyComment(matched[i]))
	}
	return comments, nil
}

func (s *memoryComments) PushChild(ctx context.Context, parentID, childID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	parent, ok := s.m.comments[parentID]
	if !ok {
		return ErrNoDocument
	}
	parent.Children = append(parent.Children, childID)
	return nil
}

func (s *memoryComments) PullChild(ctx context.Context, parentID, childID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	parent, ok := s.m.comments[parentID]
	if !ok {
		return nil // parent already gone, matches UpdateOne matching nothing
	}
	children := parent.Children[:0]
	for _, id := range parent.Children {
		if id != childID {
			children = append(children, id)
		}
	}
	parent.Children = children
	return nil
}

func (s *memoryComments) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.comments, id)
	return nil
}

func (s *memoryComments) DeleteByBlog(ctx context.Context, blogID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for id, c := range s.m.comments {
		if c.BlogID == blogID {
			delete(s.m.comments, id)
		}
	}
	return nil
}

func copyNotification(n *models.Notification) *models.Notification {
	cp := *n
	if n.Comment != nil {
		v := *n.Comment
		cp.Comment = &v
	}
	if n.RepliedOnComment != nil {
		v := *n.RepliedOnComment
		cp.RepliedOnComment = &v
	}
	if n.Reply != nil {
		v := *n.Reply
		cp.Reply = &v
	}
	return &cp
}

type memoryNotifications struct{ m *Memory }

func (s *memoryNotifications) Insert(ctx context.Context, n *models.Notification) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	s.m.notifications[n.ID] = copyNotification(n)
	s.m.notifSeq[n.ID] = s.m.nextSeq()
	return nil
}

func (s *memoryNotifications) SetReply(ctx context.Context, notificationID, replyID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	n, ok := s.m.notifications[notificationID]
	if !ok {
		return ErrNoDocument
	}
	n.Reply = &replyID
	return nil
}

func (s *memoryNotifications) ClearReplyRef(ctx context.Context, replyID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, n := range s.m.notifications {
		if n.Reply != nil && *n.Reply == replyID {
			n.Reply = nil
		}
	}
	return nil
}

func (s *memoryNotifications) DeleteByComment(ctx context.Context, commentID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for id, n := range s.m.notifications {
		if n.Comment != nil && *n.Comment == commentID {
			delete(s.m.notifications, id)
		}
	}
	return nil
}

func (s *memoryNotifications) DeleteByBlog(ctx context.Context, blogID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for id, n := range s.m.notifications {
		if n.Blog == blogID {
			delete(s.m.notifications, id)
		}
	}
	return nil
}

func (s *memoryNotifications) DeleteLike(ctx context.Context, blogID primitive.ObjectID, userID string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for id, n := range s.m.notifications {
		if n.Type == models.LikeNotification && n.Blog == blogID && n.User == userID {
			delete(s.m.notifications, id)
			return nil
		}
	}
	return nil
}

func (s *memoryNotifications) LikeExists(ctx context.Context, blogID primitive.ObjectID, userID string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, n := range s.m.notifications {
		if n.Type == models.LikeNotification && n.Blog == blogID && n.User == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryNotifications) HasUnseen(ctx context.Context, userID string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, n := range s.m.notifications {
		if n.NotificationFor == userID && !n.Seen && n.User != userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryNotifications) matched(q NotificationQuery) []*models.Notification {
	matched := []*models.Notification{}
	for _, n := range s.m.notifications {
		if n.NotificationFor != q.NotificationFor || n.User == q.NotificationFor {
			continue
		}
		if q.Type != "" && n.Type != q.Type {
			continue
		}
		matched = append(matched, n)
	}
	return matched
}

func (s *memoryNotifications) Find(ctx context.Context, q NotificationQuery) ([]models.Notification, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	matched := s.matched(q)
	sort.Slice(matched, func(i, j int) bool {
		return newer(matched[i].CreatedAt, s.m.notifSeq[matched[i].ID],
			matched[j].CreatedAt, s.m.notifSeq[matched[j].ID])
	})
	notifications := []models.Notification{}
	for i := q.Skip; i < int64(len(matched)) && int64(len(notifications)) < q.Limit; i++ {
		notifications = append(notifications, *copyNotification(matched[i]))
	}
	return notifications, nil
}

func (s *memoryNotifications) Count(ctx context.Context, q NotificationQuery) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return int64(len(s.matched(q))), nil
}

func (s *memoryNotifications) MarkSeen(ctx context.Context, q NotificationQuery) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, n := range s.matched(q) {
		n.Seen = true
	}
	return nil
}

func copyBlog(b *models.Blog) *models.Blog {
	cp := *b
	cp.Comments = append([]primitive.ObjectID{}, b.Comments...)
	cp.Tags = append([]string{}, b.Tags...)
	return &cp
}

type memoryBlogs struct{ m *Memory }

func (s *memoryBlogs) Insert(ctx context.Context, b *models.Blog) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.PublishedAt.IsZero() {
		b.PublishedAt = time.Now()
	}
	if b.Comments == nil {
		b.Comments = []primitive.ObjectID{}
	}
	s.m.blogs[b.ID] = copyBlog(b)
	s.m.blogSeq[b.ID] = s.m.nextSeq()
	return nil
}

func (s *memoryBlogs) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	b, ok := s.m.blogs[id]
	if !ok {
		return nil, ErrNoDocument
	}
	return copyBlog(b), nil
}

func (s *memoryBlogs) bySlug(slug string) *models.Blog {
	for _, b := range s.m.blogs {
		if b.BlogID == slug {
			return b
		}
	}
	return nil
}

func (s *memoryBlogs) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	b := s.bySlug(slug)
	if b == nil {
		return nil, ErrNoDocument
	}
	return copyBlog(b), nil
}

func (s *memoryBlogs) UpdateBySlug(ctx context.Context, slug string, u models.BlogUpdate) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	b := s.bySlug(slug)
	if b == nil {
		return ErrNoDocument
	}
	b.Title = u.Title
	b.Des = u.Des
	b.Banner = u.Banner
	b.Content = u.Content
	b.Tags = append([]string{}, u.Tags...)
	b.Draft = u.Draft
	return nil
}

func (s *memoryBlogs) DeleteBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	b := s.bySlug(slug)
	if b == nil {
		return nil, ErrNoDocument
	}
	delete(s.m.blogs, b.ID)
	return copyBlog(b), nil
}

func (s *memoryBlogs) ApplyActivity(ctx context.Context, id primitive.ObjectID, d models.ActivityDelta) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	b, ok := s.m.blogs[id]
	if !ok {
		return ErrNoDocument
	}
	b.Activity.TotalLikes += d.Likes
	b.Activity.TotalComments += d.Comments
	b.Activity.TotalParentComments += d.ParentComments
	b.Activity.TotalReads += d.Reads
	return nil
}

func (s *memoryBlogs) GetAndCountRead(ctx context.Context, slug string, inc int64) (*models.Blog, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	b := s.bySlug(slug)
	if b == nil {
		return nil, ErrNoDocument
	}
	// FindOneAndUpdate returns the pre-update document
	cp := copyBlog(b)
	b.Activity.TotalReads += inc
	return cp, nil
}

func (s *memoryBlogs) PushComment(ctx context.Context, id, commentID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	b, ok := s.m.blogs[id]
	if !ok {
		return nil
	}
	b.Comments = append(b.Comments, commentID)
	return nil
}

func (s *memoryBlogs) PullComment(ctx context.Context, id, commentID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	b, ok := s.m.blogs[id]
	if !ok {
		return nil
	}
	comments := b.Comments[:0]
	for _, cid := range b.Comments {
		if cid != commentID {
			comments = append(comments, cid)
		}
	}
	b.Comments = comments
	return nil
}

func (s *memoryBlogs) matched(q BlogQuery) []*models.Blog {
	draft := false
	if q.Draft != nil {
		draft = *q.Draft
	}
	matched := []*models.Blog{}
	for _, b := range s.m.blogs {
		if b.Draft != draft {
			continue
		}
		if q.Tag != "" && !containsTag(b.Tags, q.Tag) {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(q.Search)) {
			continue
		}
		if q.Author != "" && b.Author != q.Author {
			continue
		}
		if q.EliminateSlug != "" && b.BlogID == q.EliminateSlug {
			continue
		}
		matched = append(matched, b)
	}
	return matched
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (s *memoryBlogs) Find(ctx context.Context, q BlogQuery) ([]models.Blog, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	matched := s.matched(q)
	sort.Slice(matched, func(i, j int) bool {
		return newer(matched[i].PublishedAt, s.m.blogSeq[matched[i].ID],
			matched[j].PublishedAt, s.m.blogSeq[matched[j].ID])
	})
	blogs := []models.Blog{}
	for i := q.Skip; i < int64(len(matched)) && int64(len(blogs)) < q.Limit; i++ {
		blogs = append(blogs, *copyBlog(matched[i]))
	}
	return blogs, nil
}

func (s *memoryBlogs) Count(ctx context.Context, q BlogQuery) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return int64(len(s.matched(q))), nil
}

func (s *memoryBlogs) Trending(ctx context.Context, limit int64) ([]models.Blog, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	matched := []*models.Blog{}
	for _, b := range s.m.blogs {
		if !b.Draft {
			matched = append(matched, b)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.Activity.TotalReads != b.Activity.TotalReads {
			return a.Activity.TotalReads > b.Activity.TotalReads
		}
		if a.Activity.TotalLikes != b.Activity.TotalLikes {
			return a.Activity.TotalLikes > b.Activity.TotalLikes
		}
		return newer(a.PublishedAt, s.m.blogSeq[a.ID], b.PublishedAt, s.m.blogSeq[b.ID])
	})
	blogs := []models.Blog{}
	for i := 0; i < len(matched) && int64(len(blogs)) < limit; i++ {
		blogs = append(blogs, *copyBlog(matched[i]))
	}
	return blogs, nil
}

func copyUser(u *models.User) *models.User {
	cp := *u
	cp.Blogs = append([]primitive.ObjectID{}, u.Blogs...)
	return &cp
}

type memoryUsers struct{ m *Memory }

func (s *memoryUsers) Insert(ctx context.Context, u *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if u.JoinedAt.IsZero() {
		u.JoinedAt = time.Now()
	}
	s.m.users[u.ID] = copyUser(u)
	return nil
}

func (s *memoryUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil, ErrNoDocument
	}
	return copyUser(u), nil
}

func (s *memoryUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.PersonalInfo.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, ErrNoDocument
}

func (s *memoryUsers) Search(ctx context.Context, query string, limit int64) ([]models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	users := []models.User{}
	for _, u := range s.m.users {
		if int64(len(users)) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(u.PersonalInfo.Username), strings.ToLower(query)) {
			users = append(users, *copyUser(u))
		}
	}
	return users, nil
}

func (s *memoryUsers) Summaries(ctx context.Context, ids []string) (map[string]models.UserSummary, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	summaries := map[string]models.UserSummary{}
	for _, id := range ids {
		if u, ok := s.m.users[id]; ok {
			summaries[id] = models.UserSummary{
				ID:        u.ID,
				Username:  u.PersonalInfo.Username,
				FirstName: u.PersonalInfo.FirstName,
				LastName:  u.PersonalInfo.LastName,
				Avatar:    u.PersonalInfo.Avatar,
			}
		}
	}
	return summaries, nil
}

func (s *memoryUsers) ApplyAccountDelta(ctx context.Context, id string, posts, reads int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return ErrNoDocument
	}
	u.AccountInfo.TotalPosts += posts
	u.AccountInfo.TotalReads += reads
	return nil
}

func (s *memoryUsers) PushBlog(ctx context.Context, id string, blogID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil
	}
	u.Blogs = append(u.Blogs, blogID)
	return nil
}

func (s *memoryUsers) PullBlog(ctx context.Context, id string, blogID primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil
	}
	blogs := u.Blogs[:0]
	for _, bid := range u.Blogs {
		if bid != blogID {
			blogs = append(blogs, bid)
		}
	}
	u.Blogs = blogs
	return nil
}
