package routes

import (
	"github.com/gorilla/mux"

	"blog-service/controllers"
	"blog-service/middleware"
	"blog-service/services"
)

func NotificationRoutes(router *mux.Router, svc *services.NotificationService) {
	router.Handle("/api/v1/blog/new-notification", middleware.RequireUser(controllers.NewNotification(svc))).Methods("GET")
	router.Handle("/api/v1/blog/notifications", middleware.RequireUser(controllers.Notifications(svc))).Methods("POST")
	router.Handle("/api/v1/blog/all-notifications-count", middleware.RequireUser(controllers.AllNotificationsCount(svc))).Methods("POST")
}
