package routes

import (
	"Roomio/config"
	"Roomio/controllers"
	"Roomio/middleware"
	"Roomio/services"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps are the collaborators the HTTP routes need. Presence may be nil.
type Deps struct {
	Config   *config.Config
	Services *services.Services
	Limiter  middleware.Limiter
	Presence controllers.PresenceReader
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, deps Deps) {
	cfg, svc := deps.Config, deps.Services

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/ping", controllers.Ping)

	api := router.Group("/api")

	// Public, limited per client IP
	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(deps.Limiter, cfg.RateLimitPerMinute))
	{
		auth.POST("/signup", controllers.SignUp(svc.Users))

		auth.POST("/login", controllers.Login(svc.Users, cfg))

		auth.POST("/logout", controllers.Logout)
	}

	// Everything else needs a user, limited per user
	authenticated := api.Group("/")
	authenticated.Use(middleware.AuthRequired(cfg.JWTSecret))
	authenticated.Use(middleware.RateLimit(deps.Limiter, cfg.RateLimitPerMinute))
	{
		users := authenticated.Group("/users")
		{
			users.GET("/me", controllers.GetMe(svc.Users))
			users.PATCH("/me", controllers.UpdateMe(svc.Users))
			users.GET("/:id", controllers.GetUser(svc.Users))
			users.GET("/:id/presence", controllers.GetPresence(svc.Users, deps.Presence))
		}

		friends := authenticated.Group("/friends")
		{
			friends.GET("", controllers.ListFriends(svc.Friends))
			friends.GET("/requests", controllers.ListFriendRequests(svc.Friends))
			friends.POST("/requests", controllers.SendFriendRequest(svc.Friends))
			friends.PATCH("/requests/:requestId", controllers.RespondFriendRequest(svc.Friends))
			friends.DELETE("/requests/:requestId", controllers.CancelFriendRequest(svc.Friends))
		}

		matches := authenticated.Group("/matches")
		{
			matches.GET("", controllers.ListMatches(svc.Matches))
			matches.GET("/candidates", controllers.ListCandidates(svc.Matches))
			matches.POST("/swipe", controllers.Swipe(svc.Matches))
		}

		chats := authenticated.Group("/chats")
		{
			chats.GET("", controllers.ListChats(svc.Chats))
			chats.POST("", controllers.OpenChat(svc.Chats))
			chats.GET("/:chatId/messages", controllers.GetMessages(svc.Chats))
			chats.POST("/:chatId/messages", controllers.SendMessage(svc.Chats))
			chats.GET("/:chatId/pins", controllers.ListPins(svc.Chats))
		}

		authenticated.POST("/pin", controllers.PinMessage(svc.Chats))
		authenticated.DELETE("/pin", controllers.UnpinMessage(svc.Chats))

		groups := authenticated.Group("/groups")
		{
			groups.GET("", controllers.ListGroups(svc.Groups))
			groups.POST("", controllers.CreateGroup(svc.Groups))
			groups.GET("/:groupId", controllers.GetGroup(svc.Groups))
			groups.POST("/:groupId/leave", controllers.LeaveGroup(svc.Groups))

			groups.GET("/:groupId/invites", controllers.ListInvites(svc.Groups))
			groups.POST("/:groupId/invites", controllers.CreateInvite(svc.Groups))
			groups.DELETE("/:groupId/invites/:inviteId", controllers.RevokeInvite(svc.Groups))

			groups.GET("/:groupId/expenses", controllers.ListExpenses(svc.Expenses))
			groups.POST("/:groupId/expenses", controllers.AddExpense(svc.Expenses))
			groups.GET("/:groupId/expenses/export", controllers.ExportExpenses(svc.Expenses))
			groups.GET("/:groupId/balances", controllers.GetBalances(svc.Expenses))
			groups.GET("/:groupId/settlements", controllers.GetSettlements(svc.Expenses))
		}

		authenticated.POST("/invites/:token/accept", controllers.AcceptInvite(svc.Groups))

		market := authenticated.Group("/marketplace")
		{
			market.GET("", controllers.ListItems(svc.Marketplace))
			market.POST("", controllers.CreateItem(svc.Marketplace))
			market.GET("/:itemId", controllers.GetItem(svc.Marketplace))
			market.PATCH("/:itemId", controllers.UpdateItem(svc.Marketplace))
			market.DELETE("/:itemId", controllers.DeleteItem(svc.Marketplace))
		}
	}
}
