package routes

import (
	"github.com/gorilla/mux"

	"blog-service/controllers"
	"blog-service/middleware"
	"blog-service/services"
)

func CommentRoutes(router *mux.Router, svc *services.CommentService) {
	router.Handle("/api/v1/blog/add-comment", middleware.RequireUser(controllers.AddComment(svc))).Methods("POST")
	router.HandleFunc("/api/v1/blog/get-blog-comments", controllers.GetBlogComments(svc)).Methods("POST")
	router.HandleFunc("/api/v1/blog/get-replies", controllers.GetReplies(svc)).Methods("POST")
	router.Handle("/api/v1/blog/delete-comment", middleware.RequireUser(controllers.DeleteComment(svc))).Methods("POST")
}
