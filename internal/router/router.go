package router

import (
	"educonnect/internal/handlers"
	"educonnect/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	resourceHandler := handlers.NewResourceHandler()
	dealHandler := handlers.NewDealHandler()
	communityHandler := handlers.NewCommunityHandler()

	// Resolve the caller on every request; list endpoints use it only to
	// derive saved/liked flags.
	r.Use(middleware.LoadUser())

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	resources := r.Group("/resources")
	{
		resources.GET("", resourceHandler.List)
		resources.GET("/categories", resourceHandler.Categories)
		resources.GET("/saved", middleware.AuthRequired(), resourceHandler.Saved)
		resources.GET("/applications", middleware.AuthRequired(), resourceHandler.Applications)
		resources.GET("/:id", resourceHandler.Get)
		resources.POST("/:id/save", middleware.AuthRequired(), resourceHandler.ToggleSave)
		resources.POST("/:id/apply", middleware.AuthRequired(), resourceHandler.Apply)
	}

	deals := r.Group("/deals")
	{
		deals.GET("", dealHandler.List)
		deals.GET("/categories", dealHandler.Categories)
		deals.GET("/saved", middleware.AuthRequired(), dealHandler.Saved)
		deals.GET("/:id", dealHandler.Get)
		deals.POST("/:id/save", middleware.AuthRequired(), dealHandler.ToggleSave)
	}

	community := r.Group("/community")
	{
		community.GET("/posts", communityHandler.List)
		community.GET("/categories", communityHandler.Categories)
		community.GET("/posts/:id", communityHandler.Get)
		community.POST("/posts", middleware.AuthRequired(), communityHandler.Create)
		community.POST("/posts/:id/like", middleware.AuthRequired(), communityHandler.ToggleLike)
		community.POST("/posts/:id/comments", middleware.AuthRequired(), communityHandler.AddComment)
	}
}
