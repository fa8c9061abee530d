package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ligafc/league-admin/models"
	"github.com/ligafc/league-admin/repositories"
	"github.com/ligafc/league-admin/storage"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	ListPlayersByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
	UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	UploadPhoto(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
}

type CreatePlayerInput struct {
	TeamID      int        `json:"team_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	ShirtNumber *int       `json:"shirt_number,omitempty"`
}

type UpdatePlayerInput struct {
	TeamID      *int       `json:"team_id,omitempty"`
	FirstName   *string    `json:"first_name,omitempty"`
	LastName    *string    `json:"last_name,omitempty"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	ShirtNumber *int       `json:"shirt_number,omitempty"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	uploader   storage.FileUploader
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	uploader storage.FileUploader,
) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		uploader:   uploader,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, ErrPlayerNameRequired
	}

	if _, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	player := &models.Player{
		TeamID:      input.TeamID,
		FirstName:   firstName,
		LastName:    lastName,
		BirthDate:   input.BirthDate,
		ShirtNumber: input.ShirtNumber,
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNumberConflict):
			return nil, ErrShirtNumberConflict
		case errors.Is(err, repositories.ErrPlayerTeamInvalid):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	populatePlayerPhotoURL(player, s.uploader)
	return player, nil
}

func (s *playerService) ListPlayersByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	for _, player := range players {
		populatePlayerPhotoURL(player, s.uploader)
	}
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	if input.TeamID != nil {
		player.TeamID = *input.TeamID
	}
	if input.FirstName != nil {
		player.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		player.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.BirthDate != nil {
		player.BirthDate = input.BirthDate
	}
	if input.ShirtNumber != nil {
		player.ShirtNumber = input.ShirtNumber
	}
	if player.FirstName == "" || player.LastName == "" {
		return nil, ErrPlayerNameRequired
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerNumberConflict):
			return nil, ErrShirtNumberConflict
		case errors.Is(err, repositories.ErrPlayerTeamInvalid):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	populatePlayerPhotoURL(player, s.uploader)
	return player, nil
}

func (s *playerService) UploadPhoto(ctx context.Context, id int, contentType string, reader io.Reader) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("players/%d/photo%s", id, ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, reader); err != nil {
		return nil, fmt.Errorf("failed to upload player photo: %w", err)
	}

	oldKey := player.PhotoKey
	if err := s.playerRepo.UpdatePhotoKey(ctx, id, &key); err != nil {
		return nil, fmt.Errorf("failed to persist player photo key: %w", err)
	}
	if oldKey != nil && *oldKey != key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	player.PhotoKey = &key
	populatePlayerPhotoURL(player, s.uploader)
	return player, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}

	if player.PhotoKey != nil {
		_ = s.uploader.Delete(ctx, *player.PhotoKey)
	}
	return nil
}
