package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-service/controllers"
	"blog-service/middleware"
	"blog-service/models"
	"blog-service/responses"
	"blog-service/services"
	"blog-service/store"
)

func newCommentHandlers(t *testing.T) (*services.CommentService, *store.Memory, *models.Blog) {
	t.Helper()
	mem := store.NewMemory()
	svc := services.NewCommentService(mem.Comments(), mem.Notifications(), mem.Blogs(), mem.Users(), nil)

	blog := &models.Blog{BlogID: "handler-blog", Title: "Handler Blog", Author: "bob"}
	require.NoError(t, mem.Blogs().Insert(context.Background(), blog))
	return svc, mem, blog
}

func postJSON(t *testing.T, handler http.Handler, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) responses.APIResponse {
	t.Helper()
	var body responses.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAddCommentHandler(t *testing.T) {
	svc, mem, blog := newCommentHandlers(t)
	handler := middleware.RequireUser(controllers.AddComment(svc))

	rec := postJSON(t, handler, "/api/v1/blog/add-comment", "alice", models.CommentBody{
		BlogID:     blog.ID.Hex(),
		BlogAuthor: "bob",
		Comment:    "nice one",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.True(t, body.Success)

	updated, err := mem.Blogs().FindByID(context.Background(), blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Activity.TotalComments)
}

func TestAddCommentHandlerRejectsBadInput(t *testing.T) {
	svc, _, blog := newCommentHandlers(t)
	handler := middleware.RequireUser(controllers.AddComment(svc))

	// malformed blog id
	rec := postJSON(t, handler, "/api/v1/blog/add-comment", "alice", models.CommentBody{
		BlogID:  "not-a-hex-id",
		Comment: "hello",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// empty comment body
	rec = postJSON(t, handler, "/api/v1/blog/add-comment", "alice", models.CommentBody{
		BlogID:     blog.ID.Hex(),
		BlogAuthor: "bob",
		Comment:    "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, decodeResponse(t, rec).Success)

	// anonymous caller
	rec = postJSON(t, handler, "/api/v1/blog/add-comment", "", models.CommentBody{
		BlogID:     blog.ID.Hex(),
		BlogAuthor: "bob",
		Comment:    "hello",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteCommentHandlerAuthorization(t *testing.T) {
	svc, _, blog := newCommentHandlers(t)
	add := middleware.RequireUser(controllers.AddComment(svc))
	del := middleware.RequireUser(controllers.DeleteComment(svc))

	rec := postJSON(t, add, "/api/v1/blog/add-comment", "alice", models.CommentBody{
		BlogID:     blog.ID.Hex(),
		BlogAuthor: "bob",
		Comment:    "to be deleted",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		Data models.Comment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = postJSON(t, del, "/api/v1/blog/delete-comment", "carol", map[string]string{
		"_id": created.Data.ID.Hex(),
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = postJSON(t, del, "/api/v1/blog/delete-comment", "alice", map[string]string{
		"_id": created.Data.ID.Hex(),
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.Drain()
}

func TestGetBlogCommentsHandler(t *testing.T) {
	svc, _, blog := newCommentHandlers(t)
	add := middleware.RequireUser(controllers.AddComment(svc))
	list := controllers.GetBlogComments(svc)

	for i := 0; i < 2; i++ {
		rec := postJSON(t, add, "/api/v1/blog/add-comment", "alice", models.CommentBody{
			BlogID:     blog.ID.Hex(),
			BlogAuthor: "bob",
			Comment:    "hello",
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := postJSON(t, list, "/api/v1/blog/get-blog-comments", "", map[string]interface{}{
		"blog_id": blog.ID.Hex(),
		"skip":    0,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []services.CommentWithAuthor `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
}

func TestDeleteCommentHandlerUnknownComment(t *testing.T) {
	svc, _, _ := newCommentHandlers(t)
	del := middleware.RequireUser(controllers.DeleteComment(svc))

	rec := postJSON(t, del, "/api/v1/blog/delete-comment", "alice", map[string]string{
		"_id": "ffffffffffffffffffffffff",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
