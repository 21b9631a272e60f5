package routes

import (
	"github.com/gorilla/mux"

	"blog-service/controllers"
	"blog-service/middleware"
	"blog-service/services"
)

func LikesRoutes(router *mux.Router, svc *services.LikeService) {
	router.Handle("/api/v1/blog/like-blog", middleware.RequireUser(controllers.LikeBlog(svc))).Methods("POST")
	router.Handle("/api/v1/blog/isliked-by-user", middleware.RequireUser(controllers.IsLikedByUser(svc))).Methods("POST")
}
