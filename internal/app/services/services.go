package services

import (
	"github.com/sembesalum/tu-chat-api/internal/app/repositories"
	"github.com/sembesalum/tu-chat-api/internal/pkg/auth"
	"github.com/sembesalum/tu-chat-api/internal/pkg/email"
	"github.com/sembesalum/tu-chat-api/internal/pkg/filestorage"
	"github.com/sembesalum/tu-chat-api/internal/pkg/logger"
)

// Services holds every service of the API
type Services struct {
	AuthService         AuthService
	ProfileService      ProfileService
	DirectoryService    DirectoryService
	MaterialService     MaterialService
	EventService        EventService
	BlogService         BlogService
	LeaderService       LeaderService
	NotificationService NotificationService
	CommunityService    CommunityService
	ChatService         ChatService
	ProductService      ProductService
}

// Dependencies are the collaborators the services are built from
type Dependencies struct {
	Repos      *repositories.Repositories
	JWTService *auth.JWTService
	Email      email.EmailService
	Storage    filestorage.FileStorage
	Auth       AuthConfig
}

// NewServices wires every service from its repositories
func NewServices(deps Dependencies) *Services {
	r := deps.Repos
	profiles := NewProfileService(r.UserRepository, deps.Storage, logger.Component("profile"))
	return &Services{
		AuthService: NewAuthService(
			r.DirectoryRepository, r.UserRepository, r.TokenRepository, r.OTPRepository,
			deps.JWTService, deps.Email, profiles, deps.Auth, logger.Component("auth"),
		),
		ProfileService:      profiles,
		DirectoryService:    NewDirectoryService(r.DirectoryRepository),
		MaterialService:     NewMaterialService(r.MaterialRepository, r.DirectoryRepository, deps.Storage, logger.Component("material")),
		EventService:        NewEventService(r.EventRepository, r.DirectoryRepository, deps.Storage, logger.Component("event")),
		BlogService:         NewBlogService(r.BlogRepository, r.CommentRepository, r.DirectoryRepository, deps.Storage, logger.Component("blog")),
		LeaderService:       NewLeaderService(r.LeaderRepository, r.DirectoryRepository, deps.Storage, logger.Component("leader")),
		NotificationService: NewNotificationService(r.NotificationRepository),
		CommunityService:    NewCommunityService(r.CommunityRepository, r.GroupRepository, deps.Storage, logger.Component("community")),
		ChatService:         NewChatService(r.GroupRepository, r.GroupMessageRepository, r.DirectMessageRepository, r.UserRepository, logger.Component("chat")),
		ProductService:      NewProductService(r.ProductRepository, deps.Storage, logger.Component("product")),
	}
}
