package services

import (
	"context"
	"fmt"

	"github.com/courtside-dev/referee-system/models"
	"github.com/courtside-dev/referee-system/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	userRepo       repositories.UserRepository
	gameRepo       repositories.GameRepository
	assignmentRepo repositories.AssignmentRepository
}

func NewDashboardService(
	userRepo repositories.UserRepository,
	gameRepo repositories.GameRepository,
	assignmentRepo repositories.AssignmentRepository,
) DashboardService {
	return &dashboardService{
		userRepo:       userRepo,
		gameRepo:       gameRepo,
		assignmentRepo: assignmentRepo,
	}
}

// GetStats gathers the admin dashboard counters. The five counts are
// independent single-row queries, so they fan out concurrently.
func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.userRepo.CountByRole(ctx, models.RoleReferee)
		stats.Referees = count
		return err
	})
	g.Go(func() error {
		count, err := s.gameRepo.Count(ctx)
		stats.GamesTotal = count
		return err
	})
	g.Go(func() error {
		count, err := s.gameRepo.CountUpcoming(ctx)
		stats.UpcomingGames = count
		return err
	})
	g.Go(func() error {
		count, err := s.assignmentRepo.CountByStatus(ctx, models.AssignmentStatusPending)
		stats.PendingAssignments = count
		return err
	})
	g.Go(func() error {
		count, err := s.assignmentRepo.CountByStatus(ctx, models.AssignmentStatusAccepted)
		stats.AcceptedAssignments = count
		return err
	})

	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, fmt.Errorf("failed to gather dashboard stats: %w", err)
	}
	return stats, nil
}
