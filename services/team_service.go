package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ligafc/league-admin/models"
	"github.com/ligafc/league-admin/repositories"
	"github.com/ligafc/league-admin/storage"
)

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeamsByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error)
	RenameTeam(ctx context.Context, id int, name string) (*models.Team, error)
	UploadCrest(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
}

type CreateTeamInput struct {
	TournamentID int    `json:"tournament_id"`
	CategoryID   int    `json:"category_id"`
	Name         string `json:"name"`
}

type teamService struct {
	teamRepo     repositories.TeamRepository
	categoryRepo repositories.CategoryRepository
	playerRepo   repositories.PlayerRepository
	uploader     storage.FileUploader
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	categoryRepo repositories.CategoryRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
) TeamService {
	return &teamService{
		teamRepo:     teamRepo,
		categoryRepo: categoryRepo,
		playerRepo:   playerRepo,
		uploader:     uploader,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if category.TournamentID != input.TournamentID {
		return nil, fmt.Errorf("%w: category %d belongs to tournament %d", ErrValidationFailed, category.ID, category.TournamentID)
	}

	team := &models.Team{
		TournamentID: input.TournamentID,
		CategoryID:   input.CategoryID,
		Name:         name,
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTeamCategoryInvalid):
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	team.Category = category
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	players, err := s.playerRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load team players: %w", err)
	}
	team.Players = make([]models.Player, 0, len(players))
	for _, player := range players {
		populatePlayerPhotoURL(player, s.uploader)
		team.Players = append(team.Players, *player)
	}

	populateTeamCrestURL(team, s.uploader)
	return team, nil
}

func (s *teamService) ListTeamsByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	for _, team := range teams {
		populateTeamCrestURL(team, s.uploader)
	}
	return teams, nil
}

func (s *teamService) RenameTeam(ctx context.Context, id int, name string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	if err := s.teamRepo.UpdateName(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		}
		return nil, err
	}
	return s.GetTeamByID(ctx, id)
}

func (s *teamService) UploadCrest(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("teams/%d/crest%s", id, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload team crest: %w", err)
	}

	oldKey := team.CrestKey
	if err := s.teamRepo.UpdateCrestKey(ctx, id, &key); err != nil {
		return nil, fmt.Errorf("failed to persist team crest key: %w", err)
	}
	if oldKey != nil && *oldKey != key {
		// Old crest is replaced; a failed delete only leaks an orphan object.
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	team.CrestKey = &key
	populateTeamCrestURL(team, s.uploader)
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return err
	}

	if team.CrestKey != nil {
		_ = s.uploader.Delete(ctx, *team.CrestKey)
	}
	return nil
}
