package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/courtside-dev/referee-system/models"
	"github.com/courtside-dev/referee-system/repositories"
)

var (
	ErrNotificationNotFound     = errors.New("notification not found")
	ErrNotificationForbidden    = errors.New("not authorized to act on this notification")
	ErrNotificationInvalidInput = errors.New("userId, title and message are required")
	ErrNotificationInvalidType  = errors.New("invalid notification type")
)

// NotificationPusher delivers a notification to any live connections of the
// recipient. Implemented by realtime.Hub; delivery is best effort.
type NotificationPusher interface {
	PushToUser(userID int, messageType string, payload interface{})
}

type NotificationService interface {
	ListForUser(ctx context.Context, userID int) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID, actingUserID int) (*models.Notification, error)
	MarkAllRead(ctx context.Context, userID int) error
	Delete(ctx context.Context, notificationID, actingUserID int) error
	Create(ctx context.Context, input CreateNotificationInput) (*models.Notification, error)

	// AssignmentNotifier: the assignment ledger emits created assignments
	// into the outbox through this method.
	AssignmentNotifier
}

type CreateNotificationInput struct {
	UserID  int                     `json:"userId"`
	Title   string                  `json:"title"`
	Message string                  `json:"message"`
	Type    models.NotificationType `json:"type"`
	GameID  *int                    `json:"gameId"`
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	pusher           NotificationPusher
	logger           *slog.Logger
}

// NewNotificationService builds the outbox service. pusher may be nil
// (tests); nothing then goes over websockets.
func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	pusher NotificationPusher,
	logger *slog.Logger,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		pusher:           pusher,
		logger:           logger,
	}
}

func (s *notificationService) ListForUser(ctx context.Context, userID int) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for user %d: %w", userID, err)
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, actingUserID int) (*models.Notification, error) {
	notification, err := s.getOwned(ctx, notificationID, actingUserID)
	if err != nil {
		return nil, err
	}

	if err := s.notificationRepo.MarkRead(ctx, notificationID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to mark notification %d read: %w", notificationID, err)
	}

	notification.Read = true
	return notification, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID int) error {
	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return fmt.Errorf("failed to mark notifications read for user %d: %w", userID, err)
	}
	return nil
}

func (s *notificationService) Delete(ctx context.Context, notificationID, actingUserID int) error {
	if _, err := s.getOwned(ctx, notificationID, actingUserID); err != nil {
		return err
	}

	if err := s.notificationRepo.Delete(ctx, notificationID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to delete notification %d: %w", notificationID, err)
	}
	return nil
}

// Create writes a notification for an arbitrary recipient. Admin-only at
// the API boundary.
func (s *notificationService) Create(ctx context.Context, input CreateNotificationInput) (*models.Notification, error) {
	if input.UserID <= 0 || input.Title == "" || input.Message == "" {
		return nil, ErrNotificationInvalidInput
	}
	notificationType := input.Type
	if notificationType == "" {
		notificationType = models.NotificationSystem
	}
	if !notificationType.Valid() {
		return nil, ErrNotificationInvalidType
	}

	notification := &models.Notification{
		UserID:  input.UserID,
		Title:   input.Title,
		Message: input.Message,
		Type:    notificationType,
		GameID:  input.GameID,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.push(notification)
	return notification, nil
}

// AssignmentCreated implements AssignmentNotifier. The outbox write rides
// alongside the assignment write, not inside it: a failure here is logged
// and the assignment stands (acceptable lost-notification behavior).
func (s *notificationService) AssignmentCreated(ctx context.Context, assignment *models.Assignment, game *models.Game) {
	gameID := game.ID
	notification := &models.Notification{
		UserID: assignment.UserID,
		Title:  "New Game Assignment",
		Message: fmt.Sprintf("You have been assigned as %s for the game %s on %s at %s.",
			assignment.Role, game.Teams, game.GameDate, game.StartTime),
		Type:   models.NotificationAssignment,
		GameID: &gameID,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error("failed to create assignment notification",
			slog.Int("assignment_id", assignment.ID),
			slog.Int("user_id", assignment.UserID),
			slog.Any("error", err))
		return
	}

	s.push(notification)
}

func (s *notificationService) push(notification *models.Notification) {
	if s.pusher == nil {
		return
	}
	s.pusher.PushToUser(notification.UserID, "NOTIFICATION", notification)
}

func (s *notificationService) getOwned(ctx context.Context, notificationID, actingUserID int) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to load notification %d: %w", notificationID, err)
	}
	if notification.UserID != actingUserID {
		return nil, ErrNotificationForbidden
	}
	return notification, nil
}
