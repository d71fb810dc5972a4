package services

import (
	"context"
	"time"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/app/repositories"
)

// The interfaces below list what each service needs from storage. The
// repositories package satisfies all of them.

type DirectoryRepository interface {
	ListUniversities(ctx context.Context) ([]models.University, error)
	ListCampuses(ctx context.Context, universityID *int64) ([]models.Campus, error)
	ListCourses(ctx context.Context, campusID, universityID *int64) ([]models.Course, error)
	FindUniversityIDByName(ctx context.Context, name string) (int64, error)
	FindCampusIDByName(ctx context.Context, universityID int64, name string) (int64, error)
	FindCourseIDByName(ctx context.Context, campusID int64, name string) (int64, error)
	CampusBelongsTo(ctx context.Context, campusID, universityID int64) (bool, error)
	CourseBelongsTo(ctx context.Context, courseID, campusID int64) (bool, error)
	UniversityExists(ctx context.Context, id int64) (bool, error)
}

type UserRepository interface {
	CreateUserWithProfile(ctx context.Context, user *models.User, profile *models.Profile) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
	GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, update repositories.ProfileUpdate) error
}

type TokenRepository interface {
	CreateToken(ctx context.Context, tokenID string, userID int64, expiresAt *time.Time) error
	GetToken(ctx context.Context, tokenID string) (*models.AuthToken, error)
	DeleteToken(ctx context.Context, tokenID string) error
}

type OTPRepository interface {
	Upsert(ctx context.Context, userID int64, code string) error
	Get(ctx context.Context, userID int64) (*models.OTP, error)
	MarkVerified(ctx context.Context, userID int64, code string) (bool, error)
	ConsumeAndSetPassword(ctx context.Context, userID int64, passwordHash string) error
}

type MaterialRepository interface {
	Create(ctx context.Context, m *models.Material) error
	List(ctx context.Context, f repositories.MaterialFilter) ([]models.Material, error)
}

type EventRepository interface {
	Create(ctx context.Context, e *models.Event) error
	List(ctx context.Context, universityID *int64) ([]models.Event, error)
}

type BlogRepository interface {
	Create(ctx context.Context, b *models.Blog) error
	List(ctx context.Context, f repositories.BlogFilter) ([]models.Blog, error)
	GetByID(ctx context.Context, id int64) (*models.Blog, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *models.BlogComment) error
	ListByBlog(ctx context.Context, blogID int64) ([]models.BlogComment, error)
	ListReplies(ctx context.Context, parentID int64) ([]models.BlogComment, error)
	GetByID(ctx context.Context, id int64) (*models.BlogComment, error)
	Delete(ctx context.Context, id int64) error
	ToggleLike(ctx context.Context, commentID, userID int64) (bool, int, error)
}

type LeaderRepository interface {
	Create(ctx context.Context, l *models.Leader) error
	List(ctx context.Context, universityID, campusID int64) ([]models.Leader, error)
}

type NotificationRepository interface {
	List(ctx context.Context) ([]models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

type CommunityRepository interface {
	Create(ctx context.Context, c *models.Community) error
	List(ctx context.Context) ([]models.Community, error)
	GetByID(ctx context.Context, id int64) (*models.Community, error)
}

type GroupRepository interface {
	Create(ctx context.Context, g *models.Group) error
	List(ctx context.Context, communityID *int64) ([]models.Group, error)
	GetByID(ctx context.Context, id int64) (*models.Group, error)
	ToggleFollow(ctx context.Context, userID, groupID int64) (*models.FollowState, error)
	IsFollower(ctx context.Context, userID, groupID int64) (bool, error)
	Join(ctx context.Context, userID, groupID int64) (*models.Membership, error)
	Leave(ctx context.Context, userID, groupID int64) error
	GetMembership(ctx context.Context, userID, groupID int64) (*models.Membership, error)
	Promote(ctx context.Context, userID, groupID int64) (*models.Membership, error)
}

type GroupMessageRepository interface {
	Create(ctx context.Context, m *models.GroupMessage) error
	ListByGroup(ctx context.Context, groupID int64) ([]models.GroupMessage, error)
	MarkRead(ctx context.Context, id int64) error
}

type DirectMessageRepository interface {
	Create(ctx context.Context, m *models.DirectMessage) error
	Thread(ctx context.Context, a, b int64) ([]models.DirectMessage, error)
	ChatPartners(ctx context.Context, userID int64) ([]models.ChatPartner, error)
	GetByID(ctx context.Context, id int64) (*models.DirectMessage, error)
	Delete(ctx context.Context, id int64) error
	Block(ctx context.Context, blockerID, blockedID int64) (bool, error)
	Unblock(ctx context.Context, blockerID, blockedID int64) (bool, error)
	IsBlocked(ctx context.Context, blockerID, blockedID int64) (bool, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	List(ctx context.Context, category *models.ProductCategory) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Update(ctx context.Context, id int64, changes repositories.ProductChanges) error
	Delete(ctx context.Context, id int64) error
}
