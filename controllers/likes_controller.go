package controllers

import (
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-service/middleware"
	"blog-service/services"
)

func LikeBlog(svc *services.LikeService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := struct {
			BlogID        string `json:"blog_id"`
			IsLikedByUser bool   `json:"islikedByUser"`
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

		liked, err := svc.LikeBlog(ctx, blogID, middleware.UserID(r), body.IsLikedByUser)
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "like toggled successfully", map[string]bool{"liked_by_user": liked})
	}
}

func IsLikedByUser(svc *services.LikeService) http.HandlerFunc {
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

		blogID, err := primitive.ObjectIDFromHex(body.ID)
		if err != nil {
			errorResponse(rw, fmt.Errorf("invalid blog id"), http.StatusBadRequest)
			return
		}

		liked, err := svc.IsLikedByUser(ctx, blogID, middleware.UserID(r))
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "like state fetched successfully", map[string]bool{"result": liked})
	}
}
