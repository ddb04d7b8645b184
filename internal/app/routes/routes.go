package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/communitree/backend/internal/app/controllers"
	"github.com/communitree/backend/internal/middleware"
)

// SetupCommunityRoutes configures the community service routes. Every route
// requires a valid bearer token.
func SetupCommunityRoutes(
	router *gin.Engine,
	communityController *controllers.CommunityController,
	membershipController *controllers.MembershipController,
	hierarchyController *controllers.HierarchyController,
	authMiddleware *middleware.AuthMiddleware,
) {
	community := router.Group("/api/community")
	community.Use(authMiddleware.JWTAuth())
	{
		// Lifecycle
		community.POST("/register", communityController.Register)
		community.GET("/search", communityController.Search)
		community.POST("/delete-community", communityController.Delete)

		// Membership
		community.POST("/join", membershipController.Join)
		community.POST("/join-response", membershipController.JoinResponse)
		community.GET("/members", communityController.Members)
		community.POST("/remove-member", communityController.RemoveMember)

		// Hierarchy
		community.POST("/create-child-of", hierarchyController.CreateChildOf)
		community.GET("/leader-node-and-tree", hierarchyController.LeaderNodeAndTree)
		community.POST("/delete-user-node", hierarchyController.DeleteUserNode)

		// Caller profile
		community.GET("/user-details", communityController.UserDetails)
	}

	// Health check endpoint (public)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

// SetupNotifierRoutes configures the notification channel routes. Every route
// requires a valid bearer token.
func SetupNotifierRoutes(
	router *gin.Engine,
	notificationController *controllers.NotificationController,
	authMiddleware *middleware.AuthMiddleware,
) {
	notify := router.Group("/api/notify")
	notify.Use(authMiddleware.JWTAuth())
	{
		notify.POST("", notificationController.Notify)
		notify.GET("/fetch", notificationController.Fetch)
		notify.POST("/mark-handled", notificationController.MarkHandled)
	}

	// Health check endpoint (public)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
