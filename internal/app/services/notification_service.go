package services

import (
	"context"

	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
)

// NotificationService lists broadcast notifications
type NotificationService interface {
	ListNotifications(ctx context.Context) ([]dto.NotificationResponse, error)
	MarkAsRead(ctx context.Context, id int64) error
}

type notificationServiceImpl struct {
	repo NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo NotificationRepository) NotificationService {
	return &notificationServiceImpl{repo: repo}
}

func (s *notificationServiceImpl) ListNotifications(ctx context.Context) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, dto.NotificationResponse{ID: n.ID, Title: n.Title, Content: n.Content, Time: n.Time, Read: n.Read})
	}
	return resp, nil
}

func (s *notificationServiceImpl) MarkAsRead(ctx context.Context, id int64) error {
	return s.repo.MarkRead(ctx, id)
}
