package controllers

import (
	"net/http"

	"blog-service/middleware"
	"blog-service/services"
)

func NewNotification(svc *services.NotificationService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		available, err := svc.HasUnseen(ctx, middleware.UserID(r))
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "notification state fetched successfully",
			map[string]bool{"new_notification_available": available})
	}
}

func Notifications(svc *services.NotificationService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := struct {
			Page            int64  `json:"page"`
			Filter          string `json:"filter"`
			DeletedDocCount int64  `json:"deletedDocCount"`
		}{}
		if err := decodeBody(r, &body); err != nil {
			errorResponse(rw, err, http.StatusBadRequest)
			return
		}

		notifications, err := svc.List(ctx, middleware.UserID(r), body.Filter, body.Page, body.DeletedDocCount)
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "notifications fetched successfully", notifications)
	}
}

func AllNotificationsCount(svc *services.NotificationService) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext()
		defer cancel()

		body := struct {
			Filter string `json:"filter"`
		}{}
		if err := decodeBody(r, &body); err != nil {
			errorResponse(rw, err, http.StatusBadRequest)
			return
		}

		count, err := svc.Count(ctx, middleware.UserID(r), body.Filter)
		if err != nil {
			serviceErrorResponse(rw, err)
			return
		}
		successResponse(rw, "notifications count fetched successfully",
			map[string]int64{"totalDocs": count})
	}
}
