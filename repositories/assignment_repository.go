package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courtside-dev/referee-system/models"
	"github.com/lib/pq"
)

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrAssignmentConflict is raised by the unique (game_id, user_id)
	// constraint. The service layer also pre-checks the pair; the
	// constraint is the backstop that closes the check-then-insert race.
	ErrAssignmentConflict    = errors.New("assignment already exists for this game and user")
	ErrAssignmentGameInvalid = errors.New("assignment references a missing game")
	ErrAssignmentUserInvalid = errors.New("assignment references a missing user")
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id int) (*models.Assignment, error)
	GetByGameAndUser(ctx context.Context, gameID, userID int) (*models.Assignment, error)
	UpdateStatus(ctx context.Context, id int, status models.AssignmentStatus) error
	Delete(ctx context.Context, id int) error
	ListByUser(ctx context.Context, userID int) ([]models.Assignment, error)
	CountByStatus(ctx context.Context, status models.AssignmentStatus) (int, error)
}

type postgresAssignmentRepository struct {
	db *sql.DB
}

func NewPostgresAssignmentRepository(db *sql.DB) AssignmentRepository {
	return &postgresAssignmentRepository{db: db}
}

func (r *postgresAssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	query := `
		INSERT INTO assignments (game_id, user_id, role, status, fee)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		assignment.GameID,
		assignment.UserID,
		assignment.Role,
		assignment.Status,
		assignment.Fee,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "assignments_game_id_user_id_key" {
					return ErrAssignmentConflict
				}
			case "23503":
				if pqErr.Constraint == "assignments_game_id_fkey" {
					return ErrAssignmentGameInvalid
				}
				if pqErr.Constraint == "assignments_user_id_fkey" {
					return ErrAssignmentUserInvalid
				}
			}
		}
		return err
	}
	return nil
}

const assignmentWithGameQuery = `
	SELECT
		a.id, a.game_id, a.user_id, a.role, a.status, a.fee, a.created_at, a.updated_at,
		g.id, g.teams, g.game_date::text, to_char(g.start_time, 'HH24:MI'),
		coalesce(to_char(g.end_time, 'HH24:MI'), ''), g.location, g.fee
	FROM assignments a
	JOIN games g ON g.id = a.game_id`

func (r *postgresAssignmentRepository) GetByID(ctx context.Context, id int) (*models.Assignment, error) {
	row := r.db.QueryRowContext(ctx, assignmentWithGameQuery+` WHERE a.id = $1`, id)

	assignment, err := scanAssignmentWithGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

func (r *postgresAssignmentRepository) GetByGameAndUser(ctx context.Context, gameID, userID int) (*models.Assignment, error) {
	query := `
		SELECT id, game_id, user_id, role, status, fee, created_at, updated_at
		FROM assignments
		WHERE game_id = $1 AND user_id = $2`

	assignment := &models.Assignment{}
	err := r.db.QueryRowContext(ctx, query, gameID, userID).Scan(
		&assignment.ID,
		&assignment.GameID,
		&assignment.UserID,
		&assignment.Role,
		&assignment.Status,
		&assignment.Fee,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

func (r *postgresAssignmentRepository) UpdateStatus(ctx context.Context, id int, status models.AssignmentStatus) error {
	query := `UPDATE assignments SET status = $1, updated_at = now() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAssignmentNotFound)
}

func (r *postgresAssignmentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAssignmentNotFound)
}

// ListByUser returns the caller's assignments joined with the owning game,
// soonest game first.
func (r *postgresAssignmentRepository) ListByUser(ctx context.Context, userID int) ([]models.Assignment, error) {
	query := assignmentWithGameQuery + `
		WHERE a.user_id = $1
		ORDER BY g.game_date ASC, g.start_time ASC, a.id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]models.Assignment, 0)
	for rows.Next() {
		assignment, err := scanAssignmentWithGame(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *postgresAssignmentRepository) CountByStatus(ctx context.Context, status models.AssignmentStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM assignments WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count assignments by status %s: %w", status, err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAssignmentWithGame(row rowScanner) (*models.Assignment, error) {
	assignment := &models.Assignment{}
	game := &models.Game{}

	err := row.Scan(
		&assignment.ID,
		&assignment.GameID,
		&assignment.UserID,
		&assignment.Role,
		&assignment.Status,
		&assignment.Fee,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
		&game.ID,
		&game.Teams,
		&game.GameDate,
		&game.StartTime,
		&game.EndTime,
		&game.Location,
		&game.Fee,
	)
	if err != nil {
		return nil, err
	}

	assignment.Game = game
	return assignment, nil
}
