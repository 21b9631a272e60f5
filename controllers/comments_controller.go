package controllers

import (
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-service/middleware"
	"blog-service/models"
	"blog-service/services"
)

func AddComment(svc *services.CommentService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := models.CommentBody{}
		if err := decodeBody(r, &body); err != nil {
			errorResponse(rw, err, http.StatusBadRequest)
			return
		}

		blogID, err := primitive.ObjectIDFromHex(body.BlogID)
		if err != nil {
			errorResponse(rw, fmt.Errorf("invalid blog id"), http.StatusBadRequest)
			return
		}

		in := services.AddCommentInput{
			BlogID:      blogID,
			BlogAuthor:  body.BlogAuthor,
			CommentedBy: middleware.UserID(r),
			Comment:     body.Comment,
		}
		if body.ReplyingTo != "" {
			parentID, err := primitive.ObjectIDFromHex(body.ReplyingTo)
			if err != nil {
				errorResponse(rw, fmt.Errorf("invalid parent comment id"), http.StatusBadRequest)
				return
			}
			in.ReplyingTo = &parentID
		}
		if body.NotificationID != "" {
			notificationID, err := primitive.ObjectIDFromHex(body.NotificationID)
			if err != nil {
				errorResponse(rw, fmt.Errorf("invalid notification id"), http.StatusBadRequest)
				return
			}
			in.NotificationID = &notificationID
		}

		comment, err := svc.AddComment(ctx, in)
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "comment added successfully", comment)
	}
}

func GetBlogComments(svc *services.CommentService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := struct {
			BlogID string `json:"blog_id"`
			Skip   int64  `json:"skip"`
		}{}
		if err := decodeBody(r, &body); err != nil {
			errorResponse(rw, err, http.StatusBadRequest)
			return
		}

		blogID, err := primitive.ObjectIDFromHex(body.BlogID)
		if err != nil {
			errorResponse(rw, fmt.Errorf("invalid blog id"), http.StatusBadRequest)
			return
		}

		comments, err := svc.GetBlogComments(ctx, blogID, body.Skip)
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "blog comments fetched successfully", comments)
	}
}

func GetReplies(svc *services.CommentService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := struct {
			ID            string `json:"_id"`
			Skip          int64  `json:"skip"`
			ChildrenLevel int    `json:"childrenLevel"`
		}{}
		if err := decodeBody(r, &body); err != nil {
			errorResponse(rw, err, http.StatusBadRequest)
			return
		}

		commentID, err := primitive.ObjectIDFromHex(body.ID)
		if err != nil {
			errorResponse(rw, fmt.Errorf("invalid comment id"), http.StatusBadRequest)
			return
		}

		replies, err := svc.GetReplies(ctx, commentID, body.Skip, body.ChildrenLevel)
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "replies fetched successfully", replies)
	}
}

func DeleteComment(svc *services.CommentService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := struct {
			ID string `json:"_id"`
		}{}
		if err := decodeBody(r, &body); err != nil {
			errorResponse(rw, err, http.StatusBadRequest)
			return
		}

		commentID, err := primitive.ObjectIDFromHex(body.ID)
		if err != nil {
			errorResponse(rw, fmt.Errorf("invalid comment id"), http.StatusBadRequest)
			return
		}

		if err := svc.DeleteComment(ctx, commentID, middleware.UserID(r)); err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "comment deleted successfully", nil)
	}
}
