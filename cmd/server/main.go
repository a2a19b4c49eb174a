package main

import (
	"fmt"
	"log"
	"net/http"

	"arguefc/backend/internal/auth"
	"arguefc/backend/internal/config"
	"arguefc/backend/internal/database"
	"arguefc/backend/internal/handler"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "arguefc/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Argue FC API
// @version         1.0
// @description     This is the API for the Argue FC social service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Public shareable-link resolution. Auth is optional: it only widens
	// visibility for posts from private accounts.
	router.GET("/p/:slug", auth.OptionalAuthMiddleware(), handler.GetSharedPost)

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)

			otpRoutes := authRoutes.Group("")
			otpRoutes.Use(auth.AuthMiddleware())
			{
				otpRoutes.PATCH("/verify_otp", handler.VerifyOTP)
				otpRoutes.PATCH("/regenerate_otp", handler.RegenerateOTP)
			}
		}

		// Account routes (protected)
		accountRoutes := apiV1.Group("/accounts")
		accountRoutes.Use(auth.AuthMiddleware())
		{
			accountRoutes.GET("/me", handler.GetMe)
			accountRoutes.PUT("/me", handler.UpdateMe)
		}

		// Friendship routes (protected)
		friendRoutes := apiV1.Group("/friends")
		friendRoutes.Use(auth.AuthMiddleware())
		{
			friendRoutes.GET("/friends_details", handler.GetFriendsDetails)
			friendRoutes.GET("/followers", handler.GetFollowers)
			friendRoutes.GET("/followings", handler.GetFollowings)
			friendRoutes.GET("/blocked", handler.GetBlocked)
			friendRoutes.GET("/new_requests", handler.GetNewRequests)
			friendRoutes.GET("/suggest", handler.Suggest)

			friendRoutes.GET("/:id/view_account", handler.ViewAccount)
			friendRoutes.POST("/:id/send_request", handler.SendRequest)
			friendRoutes.POST("/:id/accept_request", handler.AcceptRequest)
			friendRoutes.DELETE("/:id/decline_request", handler.DeclineRequest)
			friendRoutes.PUT("/:id/block_unblock_toggle", handler.BlockUnblockToggle)
			friendRoutes.PUT("/:id/follow_unfollow_toggle", handler.FollowUnfollowToggle)
		}

		// Post routes (protected)
		postRoutes := apiV1.Group("/posts")
		postRoutes.Use(auth.AuthMiddleware())
		{
			postRoutes.POST("", handler.CreatePost)
			postRoutes.GET("", handler.GetMyPosts)
			postRoutes.GET("/my_feeds", handler.MyFeeds)
			postRoutes.GET("/get_reposts", handler.GetReposts)
			postRoutes.GET("/get_bookmarks", handler.GetBookmarks)
			postRoutes.GET("/:id", handler.GetPost)

			postRoutes.POST("/:id/like_unlike_post", handler.LikeUnlikePost)
			postRoutes.POST("/:id/bookmark_unbookmark", handler.BookmarkUnbookmark)
			postRoutes.POST("/:id/repost_unrepost", handler.RepostUnrepost)
			postRoutes.POST("/comment", handler.Comment)
			postRoutes.POST("/reply_comment", handler.ReplyComment)
			postRoutes.POST("/like_unlike_comment", handler.LikeUnlikeComment)
		}

		// Club routes (protected)
		clubRoutes := apiV1.Group("/clubs")
		clubRoutes.Use(auth.AuthMiddleware())
		{
			clubRoutes.GET("", handler.GetClubInterests)
		}

		// Admin routes (protected by auth and admin check)
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
		{
			adminRoutes.POST("/clubs", handler.CreateClubInterest)
		}
	}

	fmt.Println("Server is running on " + config.AppConfig.ServerAddr)
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(config.AppConfig.ServerAddr))
}
