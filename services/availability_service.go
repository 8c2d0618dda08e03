package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/courtside-dev/referee-system/models"
	"github.com/courtside-dev/referee-system/repositories"
)

const dateLayout = "2006-01-02"

var (
	ErrAvailabilityInvalidInput  = errors.New("invalid availability data")
	ErrAvailabilityInvalidDate   = errors.New("availability dates must be formatted YYYY-MM-DD")
	ErrAvailabilityInvalidType   = errors.New("availability type must be AVAILABLE, UNAVAILABLE or TENTATIVE")
	ErrAvailabilityDatesRequired = errors.New("start date and end date are required")
)

type AvailabilityService interface {
	ListForUser(ctx context.Context, userID int) ([]models.Availability, error)
	Upsert(ctx context.Context, userID int, entries map[string]models.AvailabilityType) ([]models.Availability, error)
	RangeQuery(ctx context.Context, startDate, endDate string) ([]models.Availability, error)
}

type availabilityService struct {
	availabilityRepo repositories.AvailabilityRepository
}

func NewAvailabilityService(availabilityRepo repositories.AvailabilityRepository) AvailabilityService {
	return &availabilityService{availabilityRepo: availabilityRepo}
}

func (s *availabilityService) ListForUser(ctx context.Context, userID int) ([]models.Availability, error) {
	entries, err := s.availabilityRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability for user %d: %w", userID, err)
	}
	return entries, nil
}

// Upsert applies find-or-create-then-update semantics per date: a missing
// (user, date) record is created, an existing one has its type overwritten.
// Writing the same type twice leaves exactly one record. Dates are
// processed in sorted order so the response is deterministic.
func (s *availabilityService) Upsert(ctx context.Context, userID int, entries map[string]models.AvailabilityType) ([]models.Availability, error) {
	// A missing availabilities object is invalid; an empty one is a no-op
	// that returns an empty array.
	if entries == nil {
		return nil, ErrAvailabilityInvalidInput
	}

	dates := make([]string, 0, len(entries))
	for date, availabilityType := range entries {
		if _, err := time.Parse(dateLayout, date); err != nil {
			return nil, ErrAvailabilityInvalidDate
		}
		if !availabilityType.Valid() {
			return nil, ErrAvailabilityInvalidType
		}
		dates = append(dates, date)
	}
	sort.Strings(dates)

	results := make([]models.Availability, 0, len(dates))
	for _, date := range dates {
		availabilityType := entries[date]

		existing, err := s.availabilityRepo.GetByUserAndDate(ctx, userID, date)
		switch {
		case err == nil:
			if err := s.availabilityRepo.UpdateType(ctx, existing.ID, availabilityType); err != nil {
				return nil, fmt.Errorf("failed to update availability for %s: %w", date, err)
			}
			existing.Type = availabilityType
			results = append(results, *existing)

		case errors.Is(err, repositories.ErrAvailabilityNotFound):
			created := &models.Availability{
				UserID: userID,
				Date:   date,
				Type:   availabilityType,
			}
			if err := s.availabilityRepo.Create(ctx, created); err != nil {
				// A concurrent upsert won the insert; overwrite its type.
				if errors.Is(err, repositories.ErrAvailabilityConflict) {
					winner, getErr := s.availabilityRepo.GetByUserAndDate(ctx, userID, date)
					if getErr != nil {
						return nil, fmt.Errorf("failed to resolve availability conflict for %s: %w", date, getErr)
					}
					if err := s.availabilityRepo.UpdateType(ctx, winner.ID, availabilityType); err != nil {
						return nil, fmt.Errorf("failed to update availability for %s: %w", date, err)
					}
					winner.Type = availabilityType
					results = append(results, *winner)
					continue
				}
				return nil, fmt.Errorf("failed to create availability for %s: %w", date, err)
			}
			results = append(results, *created)

		default:
			return nil, fmt.Errorf("failed to look up availability for %s: %w", date, err)
		}
	}

	return results, nil
}

// RangeQuery returns all referees' availability inside the inclusive date
// range, joined with each owner's public fields. Admin-only at the API
// boundary.
func (s *availabilityService) RangeQuery(ctx context.Context, startDate, endDate string) ([]models.Availability, error) {
	if startDate == "" || endDate == "" {
		return nil, ErrAvailabilityDatesRequired
	}
	if _, err := time.Parse(dateLayout, startDate); err != nil {
		return nil, ErrAvailabilityInvalidDate
	}
	if _, err := time.Parse(dateLayout, endDate); err != nil {
		return nil, ErrAvailabilityInvalidDate
	}

	entries, err := s.availabilityRepo.ListRange(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query availability range: %w", err)
	}
	return entries, nil
}
