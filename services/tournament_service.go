package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ligafc/league-admin/models"
	"github.com/ligafc/league-admin/repositories"
)

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error)
	UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id int) error

	AddCategory(ctx context.Context, tournamentID int, name string) (*models.Category, error)
	ListCategories(ctx context.Context, tournamentID int) ([]*models.Category, error)

	SetTariff(ctx context.Context, input SetTariffInput) (*models.Tariff, error)
	ListTariffs(ctx context.Context, tournamentID int) ([]*models.Tariff, error)
}

type CreateTournamentInput struct {
	Name          string  `json:"name"`
	Season        string  `json:"season"`
	Description   *string `json:"description,omitempty"`
	MatchdayCount int     `json:"matchday_count"`
}

type SetTariffInput struct {
	TournamentID int   `json:"tournament_id"`
	// CategoryID nil configures the tournament-wide default tariff, the
	// fallback used when a team's category has no tariff of its own.
	CategoryID  *int  `json:"category_id,omitempty"`
	YellowCents int64 `json:"yellow_cents"`
	RedCents    int64 `json:"red_cents"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	categoryRepo   repositories.CategoryRepository
	tariffRepo     repositories.TariffRepository
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	categoryRepo repositories.CategoryRepository,
	tariffRepo repositories.TariffRepository,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		categoryRepo:   categoryRepo,
		tariffRepo:     tariffRepo,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: tournament name is required", ErrValidationFailed)
	}
	if input.MatchdayCount <= 0 {
		return nil, ErrTournamentInvalidMatchdayCount
	}

	tournament := &models.Tournament{
		Name:          name,
		Season:        strings.TrimSpace(input.Season),
		Description:   input.Description,
		Status:        models.StatusSoon,
		MatchdayCount: input.MatchdayCount,
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	categories, err := s.categoryRepo.ListByTournament(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament categories: %w", err)
	}
	tournament.Categories = make([]models.Category, 0, len(categories))
	for _, category := range categories {
		tournament.Categories = append(tournament.Categories, *category)
	}
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	return s.tournamentRepo.List(ctx, status)
}

func (s *tournamentService) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) (*models.Tournament, error) {
	switch status {
	case models.StatusSoon, models.StatusRegistration, models.StatusActive, models.StatusCompleted, models.StatusCanceled:
	default:
		return nil, ErrTournamentInvalidStatus
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	if !isValidTournamentStatusTransition(tournament.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTournamentInvalidStatusTransition, tournament.Status, status)
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update tournament status: %w", err)
	}
	tournament.Status = status
	return tournament, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	err := s.tournamentRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrTournamentNotFound) {
		return ErrTournamentNotFound
	}
	return err
}

func (s *tournamentService) AddCategory(ctx context.Context, tournamentID int, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrValidationFailed)
	}

	category := &models.Category{
		TournamentID: tournamentID,
		Name:         name,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrCategoryTournamentInvalid) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *tournamentService) ListCategories(ctx context.Context, tournamentID int) ([]*models.Category, error) {
	return s.categoryRepo.ListByTournament(ctx, tournamentID)
}

func (s *tournamentService) SetTariff(ctx context.Context, input SetTariffInput) (*models.Tariff, error) {
	if input.YellowCents < 0 || input.RedCents < 0 {
		return nil, ErrAmountInvalid
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		if category.TournamentID != input.TournamentID {
			return nil, fmt.Errorf("%w: category %d belongs to tournament %d", ErrValidationFailed, category.ID, category.TournamentID)
		}
	}

	tariff := &models.Tariff{
		TournamentID: input.TournamentID,
		CategoryID:   input.CategoryID,
		YellowCents:  input.YellowCents,
		RedCents:     input.RedCents,
	}
	if err := s.tariffRepo.Upsert(ctx, tariff); err != nil {
		return nil, fmt.Errorf("failed to set tariff: %w", err)
	}
	return tariff, nil
}

func (s *tournamentService) ListTariffs(ctx context.Context, tournamentID int) ([]*models.Tariff, error) {
	return s.tariffRepo.ListByTournament(ctx, tournamentID)
}
