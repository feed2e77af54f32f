package services

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	dbm "fundhub/internal/models/db_models"
	"fundhub/internal/models/response_models"
	"fundhub/internal/repositories"
	"fundhub/pkg/utils"
)

type NotificationServiceInterface interface {
	// Notify is fire-and-forget: failures are logged, never propagated.
	Notify(ctx context.Context, userID uuid.UUID, kind dbm.NotificationType, message string, payload map[string]any)
	List(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.NotificationResponse, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
}

type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationServiceInterface {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, kind dbm.NotificationType, message string, payload map[string]any) {
	raw, _ := json.Marshal(payload)
	n := &dbm.Notification{
		UserID:  userID,
		Type:    kind,
		Message: message,
		Payload: raw,
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("failed to write notification for user %s: %v", userID, err)
	}
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]response_models.NotificationResponse, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, response_models.NotificationResponse{
			ID:        n.ID.String(),
			Type:      string(n.Type),
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return responses, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.notificationRepo.MarkRead(ctx, id, userID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}
