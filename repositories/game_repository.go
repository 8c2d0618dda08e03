package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/courtside-dev/referee-system/models"
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id int) (*models.Game, error)
	GetByIDWithAssignments(ctx context.Context, id int) (*models.Game, error)
	List(ctx context.Context) ([]models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)
	CountUpcoming(ctx context.Context) (int, error)
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

// Date and time columns are selected as text so the model carries the same
// "2006-01-02" / "15:04:05" strings the API exchanges; ordering and range
// predicates stay on the typed columns.
const gameColumns = `
	id, teams, game_date::text, to_char(start_time, 'HH24:MI'),
	coalesce(to_char(end_time, 'HH24:MI'), ''), location, address, league,
	division, status, notes, fee, referees_needed, created_at, updated_at`

func (r *postgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (teams, game_date, start_time, end_time, location, address,
			league, division, status, notes, fee, referees_needed)
		VALUES ($1, $2::date, $3::time, NULLIF($4, '')::time, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		game.Teams,
		game.GameDate,
		game.StartTime,
		game.EndTime,
		game.Location,
		game.Address,
		game.League,
		game.Division,
		game.Status,
		game.Notes,
		game.Fee,
		game.RefereesNeeded,
	).Scan(&game.ID, &game.CreatedAt, &game.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}
	return nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	query := `SELECT` + gameColumns + ` FROM games WHERE id = $1`

	game := &models.Game{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&game.ID,
		&game.Teams,
		&game.GameDate,
		&game.StartTime,
		&game.EndTime,
		&game.Location,
		&game.Address,
		&game.League,
		&game.Division,
		&game.Status,
		&game.Notes,
		&game.Fee,
		&game.RefereesNeeded,
		&game.CreatedAt,
		&game.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

// GetByIDWithAssignments loads a game together with its assignments and the
// assigned users' public fields.
func (r *postgresGameRepository) GetByIDWithAssignments(ctx context.Context, id int) (*models.Game, error) {
	game, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT a.id, a.role, a.status, a.fee, u.id, u.name, u.email, u.phone
		FROM assignments a
		JOIN users u ON u.id = a.user_id
		WHERE a.game_id = $1
		ORDER BY a.id ASC`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments for game %d: %w", id, err)
	}
	defer rows.Close()

	assignments := make([]models.GameAssignment, 0)
	for rows.Next() {
		var ga models.GameAssignment
		if err := rows.Scan(
			&ga.ID,
			&ga.Role,
			&ga.Status,
			&ga.Fee,
			&ga.User.ID,
			&ga.User.Name,
			&ga.User.Email,
			&ga.User.Phone,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, ga)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	game.Assignments = assignments
	return game, nil
}

func (r *postgresGameRepository) List(ctx context.Context) ([]models.Game, error) {
	query := `SELECT` + gameColumns + ` FROM games ORDER BY game_date ASC, start_time ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		var game models.Game
		if err := rows.Scan(
			&game.ID,
			&game.Teams,
			&game.GameDate,
			&game.StartTime,
			&game.EndTime,
			&game.Location,
			&game.Address,
			&game.League,
			&game.Division,
			&game.Status,
			&game.Notes,
			&game.Fee,
			&game.RefereesNeeded,
			&game.CreatedAt,
			&game.UpdatedAt,
		); err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *postgresGameRepository) Update(ctx context.Context, game *models.Game) error {
	query := `
		UPDATE games SET
			teams = $1,
			game_date = $2::date,
			start_time = $3::time,
			end_time = NULLIF($4, '')::time,
			location = $5,
			address = $6,
			league = $7,
			division = $8,
			status = $9,
			notes = $10,
			fee = $11,
			referees_needed = $12,
			updated_at = now()
		WHERE id = $13`

	result, err := r.db.ExecContext(ctx, query,
		game.Teams,
		game.GameDate,
		game.StartTime,
		game.EndTime,
		game.Location,
		game.Address,
		game.League,
		game.Division,
		game.Status,
		game.Notes,
		game.Fee,
		game.RefereesNeeded,
		game.ID,
	)
	if err != nil {
		return err
	}

	return checkAffectedRows(result, ErrGameNotFound)
}

// Delete removes the game; its assignments go with it (ON DELETE CASCADE)
// and notifications keep their rows with game_id nulled.
func (r *postgresGameRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM games`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return count, nil
}

func (r *postgresGameRepository) CountUpcoming(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM games WHERE game_date >= CURRENT_DATE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count upcoming games: %w", err)
	}
	return count, nil
}
