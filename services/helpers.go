package services

import (
	"fmt"
	"strings"

	"github.com/ligafc/league-admin/models"
	"github.com/ligafc/league-admin/storage"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func isValidTournamentStatusTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.TournamentStatus][]models.TournamentStatus{
		models.StatusSoon:         {models.StatusRegistration, models.StatusCanceled},
		models.StatusRegistration: {models.StatusActive, models.StatusCanceled},
		models.StatusActive:       {models.StatusCompleted, models.StatusCanceled},
		models.StatusCompleted:    {},
		models.StatusCanceled:     {},
	}
	for _, allowed := range allowedTransitions[current] {
		if next == allowed {
			return true
		}
	}
	return false
}

func isValidMatchStatusTransition(current, next models.MatchStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.MatchStatus][]models.MatchStatus{
		models.MatchStatusScheduled:  {models.MatchStatusInProgress, models.MatchStatusCanceled},
		models.MatchStatusInProgress: {models.MatchStatusCompleted, models.MatchStatusCanceled},
		models.MatchStatusCompleted:  {},
		models.MatchStatusCanceled:   {},
	}
	for _, allowed := range allowedTransitions[current] {
		if next == allowed {
			return true
		}
	}
	return false
}

func populateTeamCrestURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.CrestKey != nil && *team.CrestKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.CrestKey)
		if url != "" {
			team.CrestURL = &url
		}
	}
}

func populatePlayerPhotoURL(player *models.Player, uploader storage.FileUploader) {
	if player != nil && player.PhotoKey != nil && *player.PhotoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*player.PhotoKey)
		if url != "" {
			player.PhotoURL = &url
		}
	}
}

func populateSignatureImageURL(signature *models.Signature, uploader storage.FileUploader) {
	if signature != nil && signature.ImageKey != nil && *signature.ImageKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*signature.ImageKey)
		if url != "" {
			signature.ImageURL = &url
		}
	}
}

// GetExtensionFromContentType maps an image content type to a file extension
// for storage keys.
func GetExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && strings.HasPrefix(parts[0], "image") && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("could not determine file extension from content type: %q", contentType)
	}
}
