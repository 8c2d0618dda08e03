package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/courtside-dev/referee-system/models"
	"github.com/lib/pq"
)

var (
	ErrAvailabilityNotFound = errors.New("availability not found")
	// ErrAvailabilityConflict surfaces the unique (user_id, date)
	// constraint when two upserts for the same date race past the
	// find-or-create check.
	ErrAvailabilityConflict = errors.New("availability already exists for this date")
)

type AvailabilityRepository interface {
	Create(ctx context.Context, availability *models.Availability) error
	GetByUserAndDate(ctx context.Context, userID int, date string) (*models.Availability, error)
	UpdateType(ctx context.Context, id int, availabilityType models.AvailabilityType) error
	ListByUser(ctx context.Context, userID int) ([]models.Availability, error)
	ListRange(ctx context.Context, startDate, endDate string) ([]models.Availability, error)
}

type postgresAvailabilityRepository struct {
	db *sql.DB
}

func NewPostgresAvailabilityRepository(db *sql.DB) AvailabilityRepository {
	return &postgresAvailabilityRepository{db: db}
}

func (r *postgresAvailabilityRepository) Create(ctx context.Context, availability *models.Availability) error {
	query := `
		INSERT INTO availabilities (user_id, date, type)
		VALUES ($1, $2::date, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		availability.UserID,
		availability.Date,
		availability.Type,
	).Scan(&availability.ID, &availability.CreatedAt, &availability.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && pqErr.Constraint == "availabilities_user_id_date_key" {
			return ErrAvailabilityConflict
		}
		return err
	}
	return nil
}

func (r *postgresAvailabilityRepository) GetByUserAndDate(ctx context.Context, userID int, date string) (*models.Availability, error) {
	query := `
		SELECT id, user_id, date::text, type, created_at, updated_at
		FROM availabilities
		WHERE user_id = $1 AND date = $2::date`

	availability := &models.Availability{}
	err := r.db.QueryRowContext(ctx, query, userID, date).Scan(
		&availability.ID,
		&availability.UserID,
		&availability.Date,
		&availability.Type,
		&availability.CreatedAt,
		&availability.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAvailabilityNotFound
		}
		return nil, err
	}
	return availability, nil
}

func (r *postgresAvailabilityRepository) UpdateType(ctx context.Context, id int, availabilityType models.AvailabilityType) error {
	query := `UPDATE availabilities SET type = $1, updated_at = now() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, availabilityType, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrAvailabilityNotFound)
}

func (r *postgresAvailabilityRepository) ListByUser(ctx context.Context, userID int) ([]models.Availability, error) {
	query := `
		SELECT id, user_id, date::text, type, created_at, updated_at
		FROM availabilities
		WHERE user_id = $1
		ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.Availability, 0)
	for rows.Next() {
		var availability models.Availability
		if err := rows.Scan(
			&availability.ID,
			&availability.UserID,
			&availability.Date,
			&availability.Type,
			&availability.CreatedAt,
			&availability.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, availability)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListRange returns every referee's availability whose date falls inside the
// inclusive [startDate, endDate] range, joined with the owning user's public
// fields.
func (r *postgresAvailabilityRepository) ListRange(ctx context.Context, startDate, endDate string) ([]models.Availability, error) {
	query := `
		SELECT a.id, a.user_id, a.date::text, a.type, a.created_at, a.updated_at,
			u.id, u.name, u.email, u.phone
		FROM availabilities a
		JOIN users u ON u.id = a.user_id
		WHERE a.date BETWEEN $1::date AND $2::date
		ORDER BY a.date ASC, u.name ASC`

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]models.Availability, 0)
	for rows.Next() {
		var availability models.Availability
		var user models.UserPublicInfo
		if err := rows.Scan(
			&availability.ID,
			&availability.UserID,
			&availability.Date,
			&availability.Type,
			&availability.CreatedAt,
			&availability.UpdatedAt,
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Phone,
		); err != nil {
			return nil, err
		}
		availability.User = &user
		entries = append(entries, availability)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
