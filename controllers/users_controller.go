package controllers

import (
	"fmt"
	"net/http"

	"blog-service/services"
)

func SearchUsers(svc *services.UserService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := struct {
			Query string `json:"query"`
		}{}
		if err := decodeBody(r, &body); err != nil {
			errorResponse(rw, err, http.StatusBadRequest)
			return
		}
		if body.Query == "" {
			errorResponse(rw, fmt.Errorf("query is required"), http.StatusBadRequest)
			return
		}

		users, err := svc.Search(ctx, body.Query)
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "users fetched successfully", users)
	}
}

func GetProfile(svc *services.UserService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := struct {
			Username string `json:"username"`
		}{}
		if err := decodeBody(r, &body); err != nil {
			errorResponse(rw, err, http.StatusBadRequest)
			return
		}

		user, err := svc.Profile(ctx, body.Username)
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "user profile fetched successfully", user)
	}
}
