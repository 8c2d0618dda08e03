package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/courtside-dev/referee-system/models"
	"github.com/courtside-dev/referee-system/repositories"
)

var (
	ErrGameNotFound       = errors.New("game not found")
	ErrGameFieldsRequired = errors.New("teams, gameDate and startTime are required")
)

type GameService interface {
	CreateGame(ctx context.Context, input GameInput) (*models.Game, error)
	GetGameByID(ctx context.Context, id int) (*models.Game, error)
	GetAllGames(ctx context.Context) ([]models.Game, error)
	UpdateGame(ctx context.Context, id int, input GameInput) (*models.Game, error)
	DeleteGame(ctx context.Context, id int) error
}

// GameInput is used for both create and update. On update, empty fields
// keep the stored value (falsy merge, see UpdateGame).
type GameInput struct {
	Teams          string `json:"teams"`
	GameDate       string `json:"gameDate"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	Location       string `json:"location"`
	Address        string `json:"address"`
	League         string `json:"league"`
	Division       string `json:"division"`
	Status         string `json:"status"`
	Notes          string `json:"notes"`
	Fee            string `json:"fee"`
	RefereesNeeded int    `json:"refereesNeeded"`
}

type gameService struct {
	gameRepo repositories.GameRepository
}

func NewGameService(gameRepo repositories.GameRepository) GameService {
	return &gameService{gameRepo: gameRepo}
}

func (s *gameService) CreateGame(ctx context.Context, input GameInput) (*models.Game, error) {
	if strings.TrimSpace(input.Teams) == "" ||
		strings.TrimSpace(input.GameDate) == "" ||
		strings.TrimSpace(input.StartTime) == "" {
		return nil, ErrGameFieldsRequired
	}

	status := models.GameStatus(input.Status)
	if status == "" {
		status = models.GameStatusScheduled
	}
	refereesNeeded := input.RefereesNeeded
	if refereesNeeded == 0 {
		refereesNeeded = 3
	}

	game := &models.Game{
		Teams:          input.Teams,
		GameDate:       input.GameDate,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		Location:       input.Location,
		Address:        input.Address,
		League:         input.League,
		Division:       input.Division,
		Status:         status,
		Notes:          input.Notes,
		Fee:            input.Fee,
		RefereesNeeded: refereesNeeded,
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return game, nil
}

func (s *gameService) GetGameByID(ctx context.Context, id int) (*models.Game, error) {
	game, err := s.gameRepo.GetByIDWithAssignments(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	return game, nil
}

func (s *gameService) GetAllGames(ctx context.Context) ([]models.Game, error) {
	games, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

// UpdateGame applies replace-if-provided merge semantics: an empty string
// (or zero refereesNeeded) is indistinguishable from "not provided" and
// keeps the stored value. Known quirk inherited from the reference API —
// a field cannot be cleared through this endpoint.
func (s *gameService) UpdateGame(ctx context.Context, id int, input GameInput) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}

	game.Teams = mergeField(input.Teams, game.Teams)
	game.GameDate = mergeField(input.GameDate, game.GameDate)
	game.StartTime = mergeField(input.StartTime, game.StartTime)
	game.EndTime = mergeField(input.EndTime, game.EndTime)
	game.Location = mergeField(input.Location, game.Location)
	game.Address = mergeField(input.Address, game.Address)
	game.League = mergeField(input.League, game.League)
	game.Division = mergeField(input.Division, game.Division)
	game.Status = models.GameStatus(mergeField(input.Status, string(game.Status)))
	game.Notes = mergeField(input.Notes, game.Notes)
	game.Fee = mergeField(input.Fee, game.Fee)
	if input.RefereesNeeded != 0 {
		game.RefereesNeeded = input.RefereesNeeded
	}

	if err := s.gameRepo.Update(ctx, game); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to update game %d: %w", id, err)
	}
	return game, nil
}

func (s *gameService) DeleteGame(ctx context.Context, id int) error {
	err := s.gameRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to delete game %d: %w", id, err)
	}
	return nil
}
