package routes

import (
	"github.com/gorilla/mux"

	"blog-service/controllers"
	"blog-service/services"
)

func UserRoutes(router *mux.Router, svc *services.UserService) {
	router.HandleFunc("/api/v1/blog/search-users", controllers.SearchUsers(svc)).Methods("POST")
	router.HandleFunc("/api/v1/blog/get-profile", controllers.GetProfile(svc)).Methods("POST")
}
