package services

import (
	"context"
	"errors"
	"testing"

	"github.com/courtside-dev/referee-system/models"
)

type assignmentFixture struct {
	service  AssignmentService
	notifier *recordingNotifier
	game     *models.Game
	referee  *models.User
}

func newAssignmentFixture(t *testing.T) *assignmentFixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	referee := &models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleReferee}
	if err := userRepo.Create(context.Background(), referee); err != nil {
		t.Fatalf("seed referee: %v", err)
	}

	gameRepo := newFakeGameRepo()
	game := &models.Game{
		Teams:     "Eagles vs Hawks",
		GameDate:  "2026-09-12",
		StartTime: "14:00",
		Status:    models.GameStatusScheduled,
		Fee:       "60.00",
	}
	if err := gameRepo.Create(context.Background(), game); err != nil {
		t.Fatalf("seed game: %v", err)
	}

	notifier := &recordingNotifier{}
	return &assignmentFixture{
		service:  NewAssignmentService(newFakeAssignmentRepo(), gameRepo, userRepo, notifier),
		notifier: notifier,
		game:     game,
		referee:  referee,
	}
}

func TestCreateAssignmentDefaultsFeeFromGame(t *testing.T) {
	f := newAssignmentFixture(t)

	assignment, err := f.service.Create(context.Background(), CreateAssignmentInput{
		GameID: f.game.ID,
		UserID: f.referee.ID,
		Role:   "Head Referee",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if assignment.Status != models.AssignmentStatusPending {
		t.Errorf("Status = %q, want pending", assignment.Status)
	}
	if assignment.Fee != "60.00" {
		t.Errorf("Fee = %q, want game fee 60.00", assignment.Fee)
	}
}

func TestCreateAssignmentExplicitFeeWins(t *testing.T) {
	f := newAssignmentFixture(t)

	assignment, err := f.service.Create(context.Background(), CreateAssignmentInput{
		GameID: f.game.ID,
		UserID: f.referee.ID,
		Role:   "Assistant Referee",
		Fee:    "45.00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if assignment.Fee != "45.00" {
		t.Errorf("Fee = %q, want 45.00", assignment.Fee)
	}
}

func TestCreateAssignmentEmitsNotification(t *testing.T) {
	f := newAssignmentFixture(t)

	assignment, err := f.service.Create(context.Background(), CreateAssignmentInput{
		GameID: f.game.ID,
		UserID: f.referee.ID,
		Role:   "Head Referee",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(f.notifier.assignments) != 1 {
		t.Fatalf("notifier called %d times, want 1", len(f.notifier.assignments))
	}
	if f.notifier.assignments[0].ID != assignment.ID {
		t.Errorf("notified assignment %d, want %d", f.notifier.assignments[0].ID, assignment.ID)
	}
	if f.notifier.games[0].ID != f.game.ID {
		t.Errorf("notified game %d, want %d", f.notifier.games[0].ID, f.game.ID)
	}
}

func TestCreateAssignmentValidation(t *testing.T) {
	f := newAssignmentFixture(t)

	if _, err := f.service.Create(context.Background(), CreateAssignmentInput{UserID: f.referee.ID}); !errors.Is(err, ErrAssignmentGameRequired) {
		t.Errorf("missing gameId = %v, want ErrAssignmentGameRequired", err)
	}
	if _, err := f.service.Create(context.Background(), CreateAssignmentInput{GameID: 999, UserID: f.referee.ID}); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("unknown game = %v, want ErrGameNotFound", err)
	}
	if _, err := f.service.Create(context.Background(), CreateAssignmentInput{GameID: f.game.ID, UserID: 999}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown user = %v, want ErrUserNotFound", err)
	}
}

func TestCreateAssignmentDuplicatePair(t *testing.T) {
	f := newAssignmentFixture(t)
	input := CreateAssignmentInput{GameID: f.game.ID, UserID: f.referee.ID, Role: "Head Referee"}

	if _, err := f.service.Create(context.Background(), input); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := f.service.Create(context.Background(), input); !errors.Is(err, ErrAssignmentDuplicate) {
		t.Errorf("second Create = %v, want ErrAssignmentDuplicate", err)
	}
	if len(f.notifier.assignments) != 1 {
		t.Errorf("notifier called %d times, want 1", len(f.notifier.assignments))
	}
}

func TestAcceptAssignment(t *testing.T) {
	f := newAssignmentFixture(t)
	assignment, err := f.service.Create(context.Background(), CreateAssignmentInput{
		GameID: f.game.ID,
		UserID: f.referee.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	accepted, err := f.service.Accept(context.Background(), assignment.ID, f.referee.ID)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if accepted.Status != models.AssignmentStatusAccepted {
		t.Errorf("Status = %q, want accepted", accepted.Status)
	}

	// Re-accepting is idempotent.
	again, err := f.service.Accept(context.Background(), assignment.ID, f.referee.ID)
	if err != nil {
		t.Fatalf("second Accept: %v", err)
	}
	if again.Status != models.AssignmentStatusAccepted {
		t.Errorf("Status after re-accept = %q, want accepted", again.Status)
	}
}

func TestDeclineAssignment(t *testing.T) {
	f := newAssignmentFixture(t)
	assignment, err := f.service.Create(context.Background(), CreateAssignmentInput{
		GameID: f.game.ID,
		UserID: f.referee.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	declined, err := f.service.Decline(context.Background(), assignment.ID, f.referee.ID)
	if err != nil {
		t.Fatalf("Decline: %v", err)
	}
	if declined.Status != models.AssignmentStatusDeclined {
		t.Errorf("Status = %q, want declined", declined.Status)
	}
}

func TestTransitionRequiresOwner(t *testing.T) {
	f := newAssignmentFixture(t)
	assignment, err := f.service.Create(context.Background(), CreateAssignmentInput{
		GameID: f.game.ID,
		UserID: f.referee.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	otherUserID := f.referee.ID + 100
	if _, err := f.service.Accept(context.Background(), assignment.ID, otherUserID); !errors.Is(err, ErrAssignmentForbidden) {
		t.Fatalf("Accept by non-owner = %v, want ErrAssignmentForbidden", err)
	}

	// The rejected attempt must not have touched the status.
	own, err := f.service.ListForUser(context.Background(), f.referee.ID)
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(own) != 1 || own[0].Status != models.AssignmentStatusPending {
		t.Errorf("assignment status after forbidden accept = %+v, want pending", own)
	}
}

func TestDeleteAssignment(t *testing.T) {
	f := newAssignmentFixture(t)
	assignment, err := f.service.Create(context.Background(), CreateAssignmentInput{
		GameID: f.game.ID,
		UserID: f.referee.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := f.service.Delete(context.Background(), assignment.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := f.service.Delete(context.Background(), assignment.ID); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("second Delete = %v, want ErrAssignmentNotFound", err)
	}
}
