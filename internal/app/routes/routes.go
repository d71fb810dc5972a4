package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sembesalum/tu-chat-api/internal/app/controllers"
	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth         *controllers.AuthController
	User         *controllers.UserController
	Directory    *controllers.DirectoryController
	Material     *controllers.MaterialController
	Event        *controllers.EventController
	Blog         *controllers.BlogController
	Leader       *controllers.LeaderController
	Notification *controllers.NotificationController
	Community    *controllers.CommunityController
	Chat         *controllers.ChatController
	Product      *controllers.ProductController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	c Controllers,
	authMiddleware *middleware.AuthMiddleware,
	authLimiter *middleware.RateLimiter,
) {
	required := authMiddleware.JWTAuth()
	optional := authMiddleware.OptionalAuth()

	// --- Auth ---
	router.POST("/register/", c.Auth.Register)
	router.POST("/login/", authLimiter.Limit(), c.Auth.Login)
	router.POST("/logout/", required, c.Auth.Logout)
	router.GET("/validate-token/", required, c.Auth.ValidateToken)

	passwordReset := router.Group("/password-reset", authLimiter.Limit())
	{
		passwordReset.POST("/request-otp/", c.Auth.RequestOTP)
		passwordReset.POST("/verify-otp/", c.Auth.VerifyOTP)
		passwordReset.POST("/reset-password/", c.Auth.ResetPassword)
	}

	// --- Profiles ---
	router.GET("/profile/", required, c.User.GetOwnProfile)
	router.GET("/user-profile/:user_id/", c.User.GetProfile)
	router.PUT("/update-profile/:user_id/", required, c.User.UpdateProfile)
	router.GET("/users/", c.User.ListUsers)

	// --- Directory ---
	router.GET("/universities/", c.Directory.ListUniversities)
	router.GET("/universities/:university_id/campuses/", c.Directory.ListCampuses)
	router.GET("/campuses/", c.Directory.ListCampuses)
	router.GET("/campuses/:campus_id/courses/", c.Directory.ListCourses)
	router.GET("/courses/", c.Directory.ListCourses)

	// --- Materials ---
	router.POST("/materials/add/", required, c.Material.CreateMaterial)
	router.GET("/materials/:university_id/:campus_id/:course_id/", c.Material.ListMaterials)
	router.GET("/materials/:university_id/:campus_id/:course_id/:material_type/", c.Material.ListMaterials)

	// --- Events ---
	router.GET("/events/", c.Event.ListEvents)
	router.POST("/events/", required, c.Event.CreateEvent)
	router.GET("/events/:university_id", c.Event.ListEvents)

	// --- Blogs and comments ---
	router.GET("/blogs/", c.Blog.ListBlogs)
	router.POST("/blogs/", required, c.Blog.CreateBlog)
	router.GET("/blogs/breaking/", c.Blog.ListBreakingNews)
	router.GET("/blogs/:university_id", c.Blog.ListBlogs)

	router.GET("/blog/:blog_id/comments/", c.Blog.ListComments)
	router.POST("/blog/:blog_id/comments/", optional, c.Blog.CreateComment)

	comments := router.Group("/comments/:comment_id")
	{
		comments.GET("/replies/", c.Blog.ListReplies)
		comments.POST("/replies/", optional, c.Blog.Reply)
		comments.POST("/like/", required, c.Blog.ToggleLike)
		comments.DELETE("/", required, c.Blog.DeleteComment)
	}

	// --- Leaders and notifications ---
	router.POST("/leaders/add/", required, c.Leader.CreateLeader)
	router.GET("/leaders/:university_id/:campus_id/", c.Leader.ListLeaders)

	router.GET("/notification/", c.Notification.ListNotifications)
	router.POST("/notification/:id/read/", required, c.Notification.MarkAsRead)

	// --- Communities and groups ---
	router.GET("/communities/", c.Community.ListCommunities)
	router.POST("/communities/create/", required, c.Community.CreateCommunity)
	router.GET("/communities/:community_id/groups/", c.Community.ListGroups)

	groups := router.Group("/groups")
	{
		groups.GET("/", c.Community.ListGroups)
		groups.POST("/create/", required, c.Community.CreateGroup)
		groups.POST("/join/:group_id/", required, c.Community.JoinGroup)
		groups.DELETE("/leave/:group_id/", required, c.Community.LeaveGroup)
		groups.PUT("/promote/:user_id/:group_id/", required, c.Community.PromoteUser)
		groups.POST("/:group_id/follow/", optional, c.Community.ToggleFollow)

		groups.GET("/:group_id/messages/", c.Chat.ListGroupMessages)
		groups.POST("/:group_id/messages/send/", optional, c.Chat.SendGroupMessage)
	}

	// --- Direct messages and blocking ---
	messages := router.Group("/messages")
	{
		messages.PUT("/mark-as-read/:message_id/", required, c.Chat.MarkMessageAsRead)
		messages.POST("/send-direct/:user_id/", optional, c.Chat.SendDirectMessage)
		messages.GET("/get-sms/:recipient/", c.Chat.GetDirectMessages)
		messages.GET("/chat-users/:user_id/", c.Chat.ListChatPartners)
		messages.DELETE("/:message_id/", optional, c.Chat.DeleteDirectMessage)
	}

	router.POST("/block/", required, c.Chat.BlockUser)
	router.POST("/unblock/", required, c.Chat.UnblockUser)
	router.POST("/block/status/", required, c.Chat.BlockStatus)

	// --- Marketplace ---
	products := router.Group("/products")
	{
		products.GET("/", c.Product.ListProducts)
		products.GET("/category/:category/", c.Product.ListProductsByCategory)
		products.POST("/add/", optional, c.Product.CreateProduct)
		products.PUT("/:id/update/", optional, c.Product.UpdateProduct)
		products.POST("/:id/mark-as-sold/", optional, c.Product.MarkAsSold)
		products.POST("/:id/delete/", optional, c.Product.DeleteProduct)
	}

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}, ""))
	})
}
