package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
)

// Messaging errors
var (
	ErrNotFollower      = apperrors.NewForbiddenError("You must follow this group to send messages.")
	ErrAdminsOnlyGroup  = apperrors.NewForbiddenError("Only group admins can send messages in this group.")
	ErrBlockedBy        = apperrors.NewForbiddenError("You cannot send messages to this user as they have blocked you.")
	ErrBlockedTarget    = apperrors.NewForbiddenError("You have blocked this user. Unblock them to send messages.")
	ErrMessageToSelf    = apperrors.NewBadRequestError("You cannot send a message to yourself.")
	ErrBlockSelf        = apperrors.NewBadRequestError("You cannot block yourself.")
	ErrNotBlocked       = apperrors.NewResourceNotFoundError("User is not blocked.")
	ErrSenderMissing    = apperrors.NewResourceNotFoundError("Sender not found.")
	ErrRecipientMissing = apperrors.NewResourceNotFoundError("Recipient not found.")
)

// Block outcomes
const (
	MsgBlocked        = "User blocked successfully."
	MsgAlreadyBlocked = "User is already blocked."
	MsgUnblocked      = "User unblocked successfully."
)

// ChatService handles group broadcast messages, direct messages and blocks
type ChatService interface {
	SendGroupMessage(ctx context.Context, groupID, senderID int64, req *dto.SendGroupMessageRequest) (*dto.GroupMessageResponse, error)
	ListGroupMessages(ctx context.Context, groupID int64) ([]dto.GroupMessageResponse, error)
	MarkMessageAsRead(ctx context.Context, messageID int64) error

	SendDirectMessage(ctx context.Context, senderID int64, req *dto.SendDirectMessageRequest) (*dto.DirectMessageResponse, error)
	GetDirectMessages(ctx context.Context, senderID, recipientID int64) ([]dto.DirectMessageResponse, error)
	ListChatPartners(ctx context.Context, userID int64) (*dto.ChatUsersResponse, error)
	DeleteDirectMessage(ctx context.Context, messageID, userID int64) error

	Block(ctx context.Context, blockerID, blockedID int64) (string, error)
	Unblock(ctx context.Context, blockerID, blockedID int64) error
	IsBlocked(ctx context.Context, blockerID, blockedID int64) (bool, error)
}

type chatServiceImpl struct {
	groupRepo         GroupRepository
	groupMessageRepo  GroupMessageRepository
	directMessageRepo DirectMessageRepository
	userRepo          UserRepository
	logger            zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	groupRepo GroupRepository,
	groupMessageRepo GroupMessageRepository,
	directMessageRepo DirectMessageRepository,
	userRepo UserRepository,
	logger zerolog.Logger,
) ChatService {
	return &chatServiceImpl{
		groupRepo:         groupRepo,
		groupMessageRepo:  groupMessageRepo,
		directMessageRepo: directMessageRepo,
		userRepo:          userRepo,
		logger:            logger,
	}
}

func groupMessageResponse(m *models.GroupMessage) dto.GroupMessageResponse {
	return dto.GroupMessageResponse{
		ID:        m.ID,
		UserID:    m.SenderID,
		Group:     m.GroupID,
		Content:   m.Content,
		Timestamp: m.Timestamp,
		Read:      m.Read,
		Username:  m.Username,
	}
}

func directMessageResponse(m *models.DirectMessage) dto.DirectMessageResponse {
	return dto.DirectMessageResponse{
		ID:                m.ID,
		Sender:            m.SenderID,
		Recipient:         m.RecipientID,
		Content:           m.Content,
		Timestamp:         m.Timestamp,
		RecipientUsername: m.RecipientUsername,
		SenderUsername:    m.SenderUsername,
	}
}

// SendGroupMessage posts to a group. The sender must follow the group, and
// must administer it when the group only lets admins post.
func (s *chatServiceImpl) SendGroupMessage(ctx context.Context, groupID, senderID int64, req *dto.SendGroupMessageRequest) (*dto.GroupMessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	username := strings.TrimSpace(req.Username)
	if content == "" || username == "" {
		return nil, apperrors.NewBadRequestError("Content and username are required.")
	}

	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	following, err := s.groupRepo.IsFollower(ctx, senderID, groupID)
	if err != nil {
		return nil, err
	}
	if !following {
		return nil, ErrNotFollower
	}
	if g.InteractionPolicy == models.PolicyAdminsOnly {
		admin, err := isGroupAdmin(ctx, s.groupRepo, g, senderID)
		if err != nil {
			return nil, err
		}
		if !admin {
			return nil, ErrAdminsOnlyGroup
		}
	}

	m := &models.GroupMessage{GroupID: groupID, SenderID: senderID, Username: username, Content: content}
	if err := s.groupMessageRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Debug().Int64("groupID", groupID).Int64("senderID", senderID).Int64("messageID", m.ID).Msg("Group message sent")
	resp := groupMessageResponse(m)
	return &resp, nil
}

// ListGroupMessages returns every message of the group in storage order
func (s *chatServiceImpl) ListGroupMessages(ctx context.Context, groupID int64) ([]dto.GroupMessageResponse, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	messages, err := s.groupMessageRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.GroupMessageResponse, 0, len(messages))
	for i := range messages {
		resp = append(resp, groupMessageResponse(&messages[i]))
	}
	return resp, nil
}

func (s *chatServiceImpl) MarkMessageAsRead(ctx context.Context, messageID int64) error {
	return s.groupMessageRepo.MarkRead(ctx, messageID)
}

// SendDirectMessage delivers a message unless either side blocks the other
func (s *chatServiceImpl) SendDirectMessage(ctx context.Context, senderID int64, req *dto.SendDirectMessageRequest) (*dto.DirectMessageResponse, error) {
	content := strings.TrimSpace(req.Content)
	if req.Recipient <= 0 || content == "" {
		return nil, apperrors.NewBadRequestError("Recipient and content are required.")
	}
	if senderID == req.Recipient {
		return nil, ErrMessageToSelf
	}

	sender, err := s.userRepo.GetUserByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.userRepo.GetUserByID(ctx, req.Recipient)
	if err != nil {
		return nil, err
	}

	blocked, err := s.directMessageRepo.IsBlocked(ctx, recipient.ID, sender.ID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrBlockedBy
	}
	blocked, err = s.directMessageRepo.IsBlocked(ctx, sender.ID, recipient.ID)
	if err != nil {
		return nil, err
	}
	if blocked {
		return nil, ErrBlockedTarget
	}

	m := &models.DirectMessage{
		SenderID:          sender.ID,
		RecipientID:       recipient.ID,
		Content:           content,
		SenderUsername:    sender.Username,
		RecipientUsername: recipient.Username,
	}
	if err := s.directMessageRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	resp := directMessageResponse(m)
	return &resp, nil
}

// GetDirectMessages returns the thread between two users, oldest first. An
// empty thread is a not found error.
func (s *chatServiceImpl) GetDirectMessages(ctx context.Context, senderID, recipientID int64) ([]dto.DirectMessageResponse, error) {
	if err := s.userExists(ctx, recipientID, ErrRecipientMissing); err != nil {
		return nil, err
	}
	if err := s.userExists(ctx, senderID, ErrSenderMissing); err != nil {
		return nil, err
	}

	messages, err := s.directMessageRepo.Thread(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, apperrors.ErrNoMessages
	}
	resp := make([]dto.DirectMessageResponse, 0, len(messages))
	for i := range messages {
		resp = append(resp, directMessageResponse(&messages[i]))
	}
	return resp, nil
}

// userExists returns missing when id names no user
func (s *chatServiceImpl) userExists(ctx context.Context, id int64, missing error) error {
	_, err := s.userRepo.GetUserByID(ctx, id)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return missing
	}
	return err
}

func (s *chatServiceImpl) ListChatPartners(ctx context.Context, userID int64) (*dto.ChatUsersResponse, error) {
	partners, err := s.directMessageRepo.ChatPartners(ctx, userID)
	if err != nil {
		return nil, err
	}
	users := make([]dto.ChatPartnerResponse, 0, len(partners))
	for _, p := range partners {
		users = append(users, dto.ChatPartnerResponse{Recipient: p.UserID, Username: p.Username})
	}
	return &dto.ChatUsersResponse{Users: users}, nil
}

// DeleteDirectMessage removes a message on behalf of its sender or recipient
func (s *chatServiceImpl) DeleteDirectMessage(ctx context.Context, messageID, userID int64) error {
	m, err := s.directMessageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if m.SenderID != userID && m.RecipientID != userID {
		return apperrors.NewForbiddenError("You can only delete messages you sent or received.")
	}
	return s.directMessageRepo.Delete(ctx, messageID)
}

// Block stops blockedID from messaging blockerID and deletes the pair's
// existing messages. It returns the outcome message.
func (s *chatServiceImpl) Block(ctx context.Context, blockerID, blockedID int64) (string, error) {
	if blockerID == blockedID {
		return "", ErrBlockSelf
	}
	if _, err := s.userRepo.GetUserByID(ctx, blockedID); err != nil {
		return "", err
	}

	created, err := s.directMessageRepo.Block(ctx, blockerID, blockedID)
	if err != nil {
		return "", err
	}
	if !created {
		return MsgAlreadyBlocked, nil
	}
	s.logger.Info().Int64("blockerID", blockerID).Int64("blockedID", blockedID).Msg("User blocked")
	return MsgBlocked, nil
}

func (s *chatServiceImpl) Unblock(ctx context.Context, blockerID, blockedID int64) error {
	removed, err := s.directMessageRepo.Unblock(ctx, blockerID, blockedID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotBlocked
	}
	return nil
}

func (s *chatServiceImpl) IsBlocked(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	return s.directMessageRepo.IsBlocked(ctx, blockerID, blockedID)
}
