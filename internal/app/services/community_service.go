package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/filestorage"
)

// Follow toggle messages
const (
	msgFollowed   = "You are now following this group."
	msgUnfollowed = "You have unfollowed this group."
)

// CommunityService handles communities, their groups, follows and memberships
type CommunityService interface {
	CreateCommunity(ctx context.Context, adminID int64, req *dto.CreateCommunityRequest) (*dto.CommunityResponse, error)
	ListCommunities(ctx context.Context) ([]dto.CommunityResponse, error)

	CreateGroup(ctx context.Context, adminID int64, req *dto.CreateGroupRequest, picture *multipart.FileHeader) (*dto.GroupResponse, error)
	ListGroups(ctx context.Context, communityID *int64) ([]dto.GroupResponse, error)
	ToggleFollow(ctx context.Context, userID, groupID int64) (*dto.FollowResponse, error)
	JoinGroup(ctx context.Context, userID, groupID int64) (*dto.MembershipResponse, error)
	LeaveGroup(ctx context.Context, userID, groupID int64) error
	PromoteUser(ctx context.Context, callerID, userID, groupID int64) (*dto.MembershipResponse, error)
}

type communityServiceImpl struct {
	communityRepo CommunityRepository
	groupRepo     GroupRepository
	storage       filestorage.FileStorage
	logger        zerolog.Logger
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(
	communityRepo CommunityRepository,
	groupRepo GroupRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) CommunityService {
	return &communityServiceImpl{
		communityRepo: communityRepo,
		groupRepo:     groupRepo,
		storage:       storage,
		logger:        logger,
	}
}

func communityResponse(c *models.Community) dto.CommunityResponse {
	return dto.CommunityResponse{ID: c.ID, Name: c.Name, Description: c.Description, Admin: c.AdminID}
}

func (s *communityServiceImpl) groupResponse(ctx context.Context, g *models.Group) dto.GroupResponse {
	return dto.GroupResponse{
		ID:                g.ID,
		Name:              g.Name,
		Description:       g.Description,
		ProfilePicture:    mediaURL(ctx, s.storage, g.ProfilePicture),
		Community:         g.CommunityID,
		CreatedAt:         g.CreatedAt,
		Admin:             g.AdminID,
		FollowerCount:     g.FollowerCount,
		Username:          g.AdminUsername,
		InteractionPolicy: string(g.InteractionPolicy),
	}
}

func membershipResponse(m *models.Membership) *dto.MembershipResponse {
	return &dto.MembershipResponse{ID: m.ID, User: m.UserID, Group: m.GroupID, IsAdmin: m.IsAdmin}
}

// isGroupAdmin reports whether userID administers the group, either as its
// creator or through an admin membership
func isGroupAdmin(ctx context.Context, repo GroupRepository, g *models.Group, userID int64) (bool, error) {
	if g.AdminID == userID {
		return true, nil
	}
	m, err := repo.GetMembership(ctx, userID, g.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return false, nil
		}
		return false, err
	}
	return m.IsAdmin, nil
}

func (s *communityServiceImpl) CreateCommunity(ctx context.Context, adminID int64, req *dto.CreateCommunityRequest) (*dto.CommunityResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("Name is required")
	}
	c := &models.Community{Name: name, Description: req.Description, AdminID: adminID}
	if err := s.communityRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("communityID", c.ID).Int64("adminID", adminID).Msg("Community created")
	resp := communityResponse(c)
	return &resp, nil
}

func (s *communityServiceImpl) ListCommunities(ctx context.Context) ([]dto.CommunityResponse, error) {
	communities, err := s.communityRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CommunityResponse, 0, len(communities))
	for i := range communities {
		resp = append(resp, communityResponse(&communities[i]))
	}
	return resp, nil
}

// CreateGroup creates a group in an existing community with the caller as its admin
func (s *communityServiceImpl) CreateGroup(ctx context.Context, adminID int64, req *dto.CreateGroupRequest, picture *multipart.FileHeader) (*dto.GroupResponse, error) {
	if _, err := s.communityRepo.GetByID(ctx, req.CommunityID); err != nil {
		return nil, err
	}

	policy := models.PolicyEveryone
	if req.InteractionPolicy != "" {
		policy = models.InteractionPolicy(req.InteractionPolicy)
		if !policy.Valid() {
			return nil, apperrors.NewBadRequestError("Invalid interaction policy")
		}
	}

	stored, err := saveOptional(s.storage, picture, filestorage.DirGroups)
	if err != nil {
		return nil, err
	}
	g := &models.Group{
		CommunityID:       req.CommunityID,
		AdminID:           adminID,
		Name:              strings.TrimSpace(req.Name),
		Description:       req.Description,
		ProfilePicture:    stored,
		InteractionPolicy: policy,
	}
	if err := s.groupRepo.Create(ctx, g); err != nil {
		discard(s.storage, stored)
		return nil, err
	}

	created, err := s.groupRepo.GetByID(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("groupID", g.ID).Int64("communityID", g.CommunityID).Msg("Group created")
	resp := s.groupResponse(ctx, created)
	return &resp, nil
}

// ListGroups returns all groups, or those of one community
func (s *communityServiceImpl) ListGroups(ctx context.Context, communityID *int64) ([]dto.GroupResponse, error) {
	if communityID != nil {
		if _, err := s.communityRepo.GetByID(ctx, *communityID); err != nil {
			return nil, err
		}
	}
	groups, err := s.groupRepo.List(ctx, communityID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		resp = append(resp, s.groupResponse(ctx, &groups[i]))
	}
	return resp, nil
}

// ToggleFollow follows the group, or unfollows it when already following
func (s *communityServiceImpl) ToggleFollow(ctx context.Context, userID, groupID int64) (*dto.FollowResponse, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	state, err := s.groupRepo.ToggleFollow(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	msg := msgUnfollowed
	if state.IsFollowing {
		msg = msgFollowed
	}
	s.logger.Debug().Int64("userID", userID).Int64("groupID", groupID).Bool("following", state.IsFollowing).Msg("Follow toggled")
	return &dto.FollowResponse{Message: msg, FollowerCount: state.FollowerCount, IsFollowing: state.IsFollowing}, nil
}

func (s *communityServiceImpl) JoinGroup(ctx context.Context, userID, groupID int64) (*dto.MembershipResponse, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	m, err := s.groupRepo.Join(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	return membershipResponse(m), nil
}

func (s *communityServiceImpl) LeaveGroup(ctx context.Context, userID, groupID int64) error {
	return s.groupRepo.Leave(ctx, userID, groupID)
}

// PromoteUser makes an existing member an admin. Only a group admin may promote.
func (s *communityServiceImpl) PromoteUser(ctx context.Context, callerID, userID, groupID int64) (*dto.MembershipResponse, error) {
	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	admin, err := isGroupAdmin(ctx, s.groupRepo, g, callerID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, apperrors.NewForbiddenError("Only group admins can promote members")
	}

	m, err := s.groupRepo.Promote(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("userID", userID).Int64("groupID", groupID).Int64("by", callerID).Msg("Member promoted")
	return membershipResponse(m), nil
}
