package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/courtside-dev/referee-system/models"
	"github.com/courtside-dev/referee-system/repositories"
)

var (
	ErrAssignmentNotFound     = errors.New("assignment not found")
	ErrAssignmentDuplicate    = errors.New("assignment already exists")
	ErrAssignmentForbidden    = errors.New("not authorized to act on this assignment")
	ErrAssignmentGameRequired = errors.New("gameId and userId are required")
)

// AssignmentNotifier receives the side effect of a created assignment. The
// ledger emits through this interface so notification delivery stays
// decoupled; implementations must not fail the assignment write.
type AssignmentNotifier interface {
	AssignmentCreated(ctx context.Context, assignment *models.Assignment, game *models.Game)
}

type AssignmentService interface {
	Create(ctx context.Context, input CreateAssignmentInput) (*models.Assignment, error)
	Accept(ctx context.Context, assignmentID, actingUserID int) (*models.Assignment, error)
	Decline(ctx context.Context, assignmentID, actingUserID int) (*models.Assignment, error)
	Delete(ctx context.Context, assignmentID int) error
	ListForUser(ctx context.Context, userID int) ([]models.Assignment, error)
}

type CreateAssignmentInput struct {
	GameID int    `json:"gameId"`
	UserID int    `json:"userId"`
	Role   string `json:"role"`
	Fee    string `json:"fee"`
}

type assignmentService struct {
	assignmentRepo repositories.AssignmentRepository
	gameRepo       repositories.GameRepository
	userRepo       repositories.UserRepository
	notifier       AssignmentNotifier
}

func NewAssignmentService(
	assignmentRepo repositories.AssignmentRepository,
	gameRepo repositories.GameRepository,
	userRepo repositories.UserRepository,
	notifier AssignmentNotifier,
) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		gameRepo:       gameRepo,
		userRepo:       userRepo,
		notifier:       notifier,
	}
}

// Create inserts a pending assignment for a (game, user) pair. Both
// referenced records must exist; the pair must not already be assigned. The
// existence pre-check reproduces the reference behavior, and the unique
// constraint maps a racing duplicate insert to the same error. The fee
// defaults to the game's fee when not supplied. On success a notification
// is emitted to the assignee; that write is independent of this one.
func (s *assignmentService) Create(ctx context.Context, input CreateAssignmentInput) (*models.Assignment, error) {
	if input.GameID <= 0 || input.UserID <= 0 {
		return nil, ErrAssignmentGameRequired
	}

	game, err := s.gameRepo.GetByID(ctx, input.GameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to load game %d: %w", input.GameID, err)
	}

	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %d: %w", input.UserID, err)
	}

	if _, err := s.assignmentRepo.GetByGameAndUser(ctx, input.GameID, input.UserID); err == nil {
		return nil, ErrAssignmentDuplicate
	} else if !errors.Is(err, repositories.ErrAssignmentNotFound) {
		return nil, fmt.Errorf("failed to check existing assignment: %w", err)
	}

	fee := input.Fee
	if fee == "" {
		fee = game.Fee
	}

	assignment := &models.Assignment{
		GameID: input.GameID,
		UserID: input.UserID,
		Role:   input.Role,
		Status: models.AssignmentStatusPending,
		Fee:    fee,
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAssignmentConflict):
			return nil, ErrAssignmentDuplicate
		case errors.Is(err, repositories.ErrAssignmentGameInvalid):
			return nil, ErrGameNotFound
		case errors.Is(err, repositories.ErrAssignmentUserInvalid):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	if s.notifier != nil {
		s.notifier.AssignmentCreated(ctx, assignment, game)
	}

	return assignment, nil
}

func (s *assignmentService) Accept(ctx context.Context, assignmentID, actingUserID int) (*models.Assignment, error) {
	return s.transition(ctx, assignmentID, actingUserID, models.AssignmentStatusAccepted)
}

func (s *assignmentService) Decline(ctx context.Context, assignmentID, actingUserID int) (*models.Assignment, error) {
	return s.transition(ctx, assignmentID, actingUserID, models.AssignmentStatusDeclined)
}

// transition moves an assignment to a terminal status. Only the assigned
// user may act; the acting identity always comes from the authenticated
// caller, never from the request body. Re-applying the same terminal status
// rewrites it unchanged; concurrent accept/decline is last-write-wins.
func (s *assignmentService) transition(ctx context.Context, assignmentID, actingUserID int, status models.AssignmentStatus) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrAssignmentNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to load assignment %d: %w", assignmentID, err)
	}

	if assignment.UserID != actingUserID {
		return nil, ErrAssignmentForbidden
	}

	if err := s.assignmentRepo.UpdateStatus(ctx, assignmentID, status); err != nil {
		if errors.Is(err, repositories.ErrAssignmentNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to update assignment %d status: %w", assignmentID, err)
	}

	assignment.Status = status
	return assignment, nil
}

func (s *assignmentService) Delete(ctx context.Context, assignmentID int) error {
	err := s.assignmentRepo.Delete(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrAssignmentNotFound) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to delete assignment %d: %w", assignmentID, err)
	}
	return nil
}

func (s *assignmentService) ListForUser(ctx context.Context, userID int) ([]models.Assignment, error) {
	assignments, err := s.assignmentRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for user %d: %w", userID, err)
	}
	return assignments, nil
}
