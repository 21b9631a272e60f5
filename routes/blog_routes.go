package routes

import (
	"github.com/gorilla/mux"

	"blog-service/controllers"
	"blog-service/middleware"
	"blog-service/services"
)

func BlogRoutes(router *mux.Router, svc *services.BlogService) {
	router.Handle("/api/v1/blog/create-blog", middleware.RequireUser(controllers.CreateBlog(svc))).Methods("POST")
	router.HandleFunc("/api/v1/blog/get-blog", controllers.GetBlog(svc)).Methods("POST")
	router.HandleFunc("/api/v1/blog/latest-blogs", controllers.LatestBlogs(svc)).Methods("POST")
	router.HandleFunc("/api/v1/blog/all-latest-blogs-count", controllers.AllLatestBlogsCount(svc)).Methods("POST")
	router.HandleFunc("/api/v1/blog/trending-blogs", controllers.TrendingBlogs(svc)).Methods("GET")
	router.HandleFunc("/api/v1/blog/search-blogs", controllers.SearchBlogs(svc)).Methods("POST")
	router.HandleFunc("/api/v1/blog/search-blogs-count", controllers.SearchBlogsCount(svc)).Methods("POST")
	router.Handle("/api/v1/blog/user-written-blogs", middleware.RequireUser(controllers.UserWrittenBlogs(svc))).Methods("POST")
	router.Handle("/api/v1/blog/user-written-blogs-count", middleware.RequireUser(controllers.UserWrittenBlogsCount(svc))).Methods("POST")
	router.Handle("/api/v1/blog/delete-blog", middleware.RequireUser(controllers.DeleteBlog(svc))).Methods("POST")
}
