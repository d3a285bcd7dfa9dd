// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"circle/internal/delivery/api/middleware"
	"circle/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	GraphHandler   *handler.GraphHandler
	PostHandler    *handler.PostHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	graphHandler   *handler.GraphHandler
	postHandler    *handler.PostHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		graphHandler:   params.GraphHandler,
		postHandler:    params.PostHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")
	auth := r.authMiddleware.Authenticate

	// Account routes. Registration, login and public profiles need no token.
	usersGroup := apiV1.Group("/users")
	{
		usersGroup.POST("", r.accountHandler.Register)
		usersGroup.POST("/login", r.accountHandler.Login)
		usersGroup.POST("/logout", r.accountHandler.Logout, auth)
		usersGroup.POST("/logoutAll", r.accountHandler.LogoutAll, auth)
		usersGroup.POST("/search", r.accountHandler.Search, auth)

		usersGroup.GET("/me", r.accountHandler.Me, auth)
		usersGroup.PATCH("/me", r.accountHandler.UpdateMe, auth)
		usersGroup.DELETE("/me", r.accountHandler.DeleteMe, auth)
		usersGroup.GET("/me/sessions", r.accountHandler.ListSessions, auth)
		usersGroup.POST("/me/avatar", r.accountHandler.UploadAvatar, auth)
		usersGroup.DELETE("/me/avatar", r.accountHandler.DeleteAvatar, auth)

		usersGroup.GET("/:id", r.accountHandler.Profile)
		usersGroup.GET("/:id/avatar", r.accountHandler.GetAvatar)
	}

	// Follow graph routes
	{
		usersGroup.POST("/follow", r.graphHandler.Follow, auth)
		usersGroup.POST("/unfollow", r.graphHandler.Unfollow, auth)
		usersGroup.POST("/follow/qr", r.graphHandler.FollowByQRCode, auth)
		usersGroup.GET("/me/qr", r.graphHandler.FollowQRCode, auth)
	}

	// Post routes. Single posts and their images are public.
	postsGroup := apiV1.Group("/posts")
	{
		postsGroup.POST("", r.postHandler.Create, auth)
		postsGroup.GET("", r.postHandler.Feed, auth)
		postsGroup.GET("/self", r.postHandler.OwnPosts, auth)

		postsGroup.GET("/:id", r.postHandler.Get)
		postsGroup.PATCH("/:id", r.postHandler.Update, auth)
		postsGroup.DELETE("/:id", r.postHandler.Delete, auth)
		postsGroup.POST("/:id/like", r.postHandler.Like, auth)
		postsGroup.POST("/:id/unlike", r.postHandler.Unlike, auth)
		postsGroup.POST("/:id/comments", r.postHandler.AddComment, auth)

		postsGroup.GET("/:id/image", r.postHandler.GetImage)
		postsGroup.POST("/:id/image", r.postHandler.UploadImage, auth)
		postsGroup.DELETE("/:id/image", r.postHandler.DeleteImage, auth)
	}
}
