package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"blog-service/configs"
	"blog-service/middleware"
	"blog-service/routes"
	"blog-service/services"
	"blog-service/store"
)

func main() {
	configs.InitLogger()
	logger := configs.LogWithContext("main", "startup")

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware)

	// MongoDB is mandatory; retry a few times to ride out slow container starts.
	var dbErr error
	for attempt := 1; attempt <= 5; attempt++ {
		dbErr = configs.ConnectDB()
		if dbErr == nil {
			break
		}
		logger.WithError(dbErr).WithField("attempt", attempt).Warn("MongoDB connection failed, retrying")
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	if dbErr != nil {
		logger.WithError(dbErr).Fatal("Could not connect to MongoDB")
	}

	// Redis is optional: without it the trending cache and the notification
	// channel are disabled but the API stays up.
	if err := configs.ConnectREDISDB(); err != nil {
		logger.WithError(err).Warn("Redis unavailable, continuing without cache and pubsub")
	}

	comments := store.NewMongoComments(configs.GetCollection(configs.DB, "comments"))
	notifications := store.NewMongoNotifications(configs.GetCollection(configs.DB, "notifications"))
	blogs := store.NewMongoBlogs(configs.GetCollection(configs.DB, "blogs"))
	users := store.NewMongoUsers(configs.GetCollection(configs.DB, "users"))

	var publisher services.Publisher
	if client := configs.GetRedisClient(); client != nil {
		publisher = services.NewRedisPublisher(client, configs.NotificationChannel())
	}

	commentService := services.NewCommentService(comments, notifications, blogs, users, publisher)
	likeService := services.NewLikeService(blogs, notifications, publisher)
	notificationService := services.NewNotificationService(notifications)
	blogService := services.NewBlogService(blogs, comments, notifications, users, configs.GetRedisClient())
	userService := services.NewUserService(users)

	routes.BlogRoutes(router, blogService)
	routes.CommentRoutes(router, commentService)
	routes.LikesRoutes(router, likeService)
	routes.NotificationRoutes(router, notificationService)
	routes.UserRoutes(router, userService)

	router.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
		rw.WriteHeader(http.StatusOK)
		rw.Write([]byte("ok"))
	}).Methods("GET")
	router.HandleFunc("/ready", func(rw http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := configs.DB.Ping(ctx, nil); err != nil {
			rw.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		rw.WriteHeader(http.StatusOK)
	}).Methods("GET")

	srv := &http.Server{
		Addr:         ":" + configs.EnvPort(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("port", configs.EnvPort()).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}

	// Let in-flight cascades and seen-markers finish before the process exits.
	commentService.Drain()
	notificationService.Drain()

	if err := configs.DB.Disconnect(context.Background()); err != nil {
		logger.WithError(err).Error("MongoDB disconnect failed")
	}
	logger.Info("Server stopped")
}
