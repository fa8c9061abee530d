package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ligafc/league-admin/live"
	"github.com/ligafc/league-admin/models"
	"github.com/ligafc/league-admin/repositories"
	"github.com/ligafc/league-admin/storage"
	"golang.org/x/sync/errgroup"
)

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatchSheet(ctx context.Context, id int) (*models.Match, error)
	ListMatches(ctx context.Context, tournamentID int, matchday *int, status *models.MatchStatus) ([]*models.Match, error)
	StartMatch(ctx context.Context, id int) (*models.Match, error)
	// CloseMatch completes the match; the final score is derived from the
	// recorded goals, not entered separately.
	CloseMatch(ctx context.Context, id int) (*models.Match, error)
	CancelMatch(ctx context.Context, id int) (*models.Match, error)

	CallUpPlayer(ctx context.Context, input CallUpInput) (*models.CallUp, error)
	ListCallUps(ctx context.Context, matchID, teamID int) ([]*models.CallUp, error)
	SetCaptain(ctx context.Context, matchID, teamID, playerID int) error
	RemoveCallUp(ctx context.Context, id int) error

	RecordGoal(ctx context.Context, input RecordGoalInput) (*models.Goal, error)
	RecordCard(ctx context.Context, input RecordCardInput) (*models.Card, error)
	UndoCard(ctx context.Context, cardID int) error
	RecordSubstitution(ctx context.Context, input RecordSubstitutionInput) (*models.Substitution, error)

	SignMatch(ctx context.Context, input SignMatchInput) (*models.Signature, error)
}

type CreateMatchInput struct {
	TournamentID int       `json:"tournament_id"`
	Matchday     int       `json:"matchday"`
	LocalTeamID  int       `json:"local_team_id"`
	VisitTeamID  int       `json:"visit_team_id"`
	Kickoff      time.Time `json:"kickoff"`
}

type CallUpInput struct {
	MatchID   int  `json:"match_id"`
	TeamID    int  `json:"team_id"`
	PlayerID  int  `json:"player_id"`
	IsCaptain bool `json:"is_captain"`
}

type RecordGoalInput struct {
	MatchID  int  `json:"match_id"`
	TeamID   int  `json:"team_id"`
	PlayerID int  `json:"player_id"`
	Minute   *int `json:"minute,omitempty"`
	OwnGoal  bool `json:"own_goal"`
}

type RecordCardInput struct {
	MatchID  int             `json:"match_id"`
	TeamID   int             `json:"team_id"`
	PlayerID int             `json:"player_id"`
	Kind     models.CardKind `json:"kind"`
	Minute   *int            `json:"minute,omitempty"`
}

type RecordSubstitutionInput struct {
	MatchID     int  `json:"match_id"`
	TeamID      int  `json:"team_id"`
	PlayerOutID int  `json:"player_out_id"`
	PlayerInID  int  `json:"player_in_id"`
	Minute      *int `json:"minute,omitempty"`
}

type SignMatchInput struct {
	MatchID    int
	Role       models.SignatureRole
	SignerName string
	// Optional signature image; both must be set together.
	ImageContentType string
	ImageReader      io.Reader
}

type matchService struct {
	matchRepo      repositories.MatchRepository
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	goalRepo       repositories.GoalRepository
	cardRepo       repositories.CardRepository
	subRepo        repositories.SubstitutionRepository
	callUpRepo     repositories.CallUpRepository
	signatureRepo  repositories.SignatureRepository
	uploader       storage.FileUploader
	hub            *live.Hub
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	goalRepo repositories.GoalRepository,
	cardRepo repositories.CardRepository,
	subRepo repositories.SubstitutionRepository,
	callUpRepo repositories.CallUpRepository,
	signatureRepo repositories.SignatureRepository,
	uploader storage.FileUploader,
	hub *live.Hub,
) MatchService {
	return &matchService{
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		goalRepo:       goalRepo,
		cardRepo:       cardRepo,
		subRepo:        subRepo,
		callUpRepo:     callUpRepo,
		signatureRepo:  signatureRepo,
		uploader:       uploader,
		hub:            hub,
	}
}

func matchRoom(matchID int) string {
	return "match_" + strconv.Itoa(matchID)
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.Matchday < 1 {
		return nil, ErrMatchdayInvalid
	}
	if input.LocalTeamID == input.VisitTeamID {
		return nil, ErrMatchTeamsEqual
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, input.TournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if input.Matchday > tournament.MatchdayCount {
		return nil, ErrMatchdayOutOfRange
	}

	for _, teamID := range []int{input.LocalTeamID, input.VisitTeamID} {
		team, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, err
		}
		if team.TournamentID != input.TournamentID {
			return nil, ErrTeamTournamentMismatch
		}
	}

	match := &models.Match{
		TournamentID: input.TournamentID,
		Matchday:     input.Matchday,
		LocalTeamID:  input.LocalTeamID,
		VisitTeamID:  input.VisitTeamID,
		Kickoff:      input.Kickoff,
		Status:       models.MatchStatusScheduled,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) GetMatchSheet(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		goals, fetchErr := s.goalRepo.ListByMatch(gCtx, id)
		if fetchErr != nil {
			return fmt.Errorf("failed to load match goals: %w", fetchErr)
		}
		match.Goals = make([]models.Goal, 0, len(goals))
		for _, goal := range goals {
			match.Goals = append(match.Goals, *goal)
		}
		return nil
	})
	g.Go(func() error {
		cards, fetchErr := s.cardRepo.ListByMatch(gCtx, id)
		if fetchErr != nil {
			return fmt.Errorf("failed to load match cards: %w", fetchErr)
		}
		match.Cards = make([]models.Card, 0, len(cards))
		for _, card := range cards {
			match.Cards = append(match.Cards, *card)
		}
		return nil
	})
	g.Go(func() error {
		subs, fetchErr := s.subRepo.ListByMatch(gCtx, id)
		if fetchErr != nil {
			return fmt.Errorf("failed to load match substitutions: %w", fetchErr)
		}
		match.Substitutions = make([]models.Substitution, 0, len(subs))
		for _, sub := range subs {
			match.Substitutions = append(match.Substitutions, *sub)
		}
		return nil
	})
	g.Go(func() error {
		signatures, fetchErr := s.signatureRepo.ListByMatch(gCtx, id)
		if fetchErr != nil {
			return fmt.Errorf("failed to load match signatures: %w", fetchErr)
		}
		match.Signatures = make([]models.Signature, 0, len(signatures))
		for _, signature := range signatures {
			populateSignatureImageURL(signature, s.uploader)
			match.Signatures = append(match.Signatures, *signature)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) ListMatches(ctx context.Context, tournamentID int, matchday *int, status *models.MatchStatus) ([]*models.Match, error) {
	if matchday != nil && *matchday < 1 {
		return nil, ErrMatchdayInvalid
	}
	return s.matchRepo.ListByTournament(ctx, tournamentID, matchday, status)
}

func (s *matchService) StartMatch(ctx context.Context, id int) (*models.Match, error) {
	return s.transitionMatch(ctx, id, models.MatchStatusInProgress)
}

func (s *matchService) CloseMatch(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if match.Status == models.MatchStatusCompleted {
		return nil, ErrMatchAlreadyClosed
	}
	if !isValidMatchStatusTransition(match.Status, models.MatchStatusCompleted) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrValidationFailed, match.Status, models.MatchStatusCompleted)
	}

	goals, err := s.goalRepo.ListByMatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals for final score: %w", err)
	}
	localGoals, visitGoals := 0, 0
	for _, goal := range goals {
		// goal.TeamID is the credited team; own goals are already stored
		// against the benefiting side.
		switch goal.TeamID {
		case match.LocalTeamID:
			localGoals++
		case match.VisitTeamID:
			visitGoals++
		}
	}

	if err := s.matchRepo.UpdateStatusScore(ctx, id, models.MatchStatusCompleted, &localGoals, &visitGoals); err != nil {
		return nil, fmt.Errorf("failed to close match: %w", err)
	}
	match.Status = models.MatchStatusCompleted
	match.LocalGoals = &localGoals
	match.VisitGoals = &visitGoals

	s.hub.BroadcastToRoom(matchRoom(id), live.Message{Type: live.EventMatchStatus, Payload: match})
	return match, nil
}

func (s *matchService) CancelMatch(ctx context.Context, id int) (*models.Match, error) {
	return s.transitionMatch(ctx, id, models.MatchStatusCanceled)
}

func (s *matchService) transitionMatch(ctx context.Context, id int, next models.MatchStatus) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if !isValidMatchStatusTransition(match.Status, next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrValidationFailed, match.Status, next)
	}

	if err := s.matchRepo.UpdateStatusScore(ctx, id, next, match.LocalGoals, match.VisitGoals); err != nil {
		return nil, fmt.Errorf("failed to update match status: %w", err)
	}
	match.Status = next

	s.hub.BroadcastToRoom(matchRoom(id), live.Message{Type: live.EventMatchStatus, Payload: match})
	return match, nil
}

func (s *matchService) CallUpPlayer(ctx context.Context, input CallUpInput) (*models.CallUp, error) {
	if _, err := s.openMatchForTeam(ctx, input.MatchID, input.TeamID, true); err != nil {
		return nil, err
	}

	callUp := &models.CallUp{
		MatchID:   input.MatchID,
		TeamID:    input.TeamID,
		PlayerID:  input.PlayerID,
		IsCaptain: input.IsCaptain,
	}
	if err := s.callUpRepo.Create(ctx, callUp); err != nil {
		switch {
		case errors.Is(err, repositories.ErrCallUpPlayerConflict):
			return nil, ErrCallUpConflict
		case errors.Is(err, repositories.ErrEventReferenceInvalid):
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to call up player: %w", err)
	}
	return callUp, nil
}

func (s *matchService) ListCallUps(ctx context.Context, matchID, teamID int) ([]*models.CallUp, error) {
	callUps, err := s.callUpRepo.ListByMatchTeam(ctx, matchID, teamID)
	if err != nil {
		return nil, err
	}
	for _, callUp := range callUps {
		populatePlayerPhotoURL(callUp.Player, s.uploader)
	}
	return callUps, nil
}

func (s *matchService) SetCaptain(ctx context.Context, matchID, teamID, playerID int) error {
	if _, err := s.openMatchForTeam(ctx, matchID, teamID, true); err != nil {
		return err
	}
	if err := s.callUpRepo.SetCaptain(ctx, matchID, teamID, playerID); err != nil {
		if errors.Is(err, repositories.ErrCallUpNotFound) {
			return ErrCallUpNotFound
		}
		return fmt.Errorf("failed to set captain: %w", err)
	}
	return nil
}

func (s *matchService) RemoveCallUp(ctx context.Context, id int) error {
	err := s.callUpRepo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrCallUpNotFound) {
		return ErrCallUpNotFound
	}
	return err
}

func (s *matchService) RecordGoal(ctx context.Context, input RecordGoalInput) (*models.Goal, error) {
	if _, err := s.openMatchForTeam(ctx, input.MatchID, input.TeamID, false); err != nil {
		return nil, err
	}

	goal := &models.Goal{
		MatchID:  input.MatchID,
		TeamID:   input.TeamID,
		PlayerID: input.PlayerID,
		Minute:   input.Minute,
		OwnGoal:  input.OwnGoal,
	}
	if err := s.goalRepo.Create(ctx, goal); err != nil {
		if errors.Is(err, repositories.ErrEventReferenceInvalid) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to record goal: %w", err)
	}

	s.hub.BroadcastToRoom(matchRoom(input.MatchID), live.Message{Type: live.EventGoal, Payload: goal})
	return goal, nil
}

func (s *matchService) RecordCard(ctx context.Context, input RecordCardInput) (*models.Card, error) {
	if input.Kind != models.CardYellow && input.Kind != models.CardRed {
		return nil, fmt.Errorf("%w: unknown card kind %q", ErrValidationFailed, input.Kind)
	}

	match, err := s.openMatchForTeam(ctx, input.MatchID, input.TeamID, false)
	if err != nil {
		return nil, err
	}

	card := &models.Card{
		TournamentID: match.TournamentID,
		MatchID:      match.ID,
		Matchday:     match.Matchday,
		TeamID:       input.TeamID,
		PlayerID:     input.PlayerID,
		Kind:         input.Kind,
		Minute:       input.Minute,
	}
	if err := s.cardRepo.Create(ctx, card); err != nil {
		if errors.Is(err, repositories.ErrCardPlayerInvalid) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to record card: %w", err)
	}

	s.hub.BroadcastToRoom(matchRoom(match.ID), live.Message{Type: live.EventCard, Payload: card})
	return card, nil
}

// UndoCard removes a mistakenly issued card. The next settlement
// recomputation simply no longer sees the row; nothing else to invalidate.
func (s *matchService) UndoCard(ctx context.Context, cardID int) error {
	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return ErrCardNotFound
		}
		return err
	}

	if err := s.cardRepo.Delete(ctx, cardID); err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return ErrCardNotFound
		}
		return fmt.Errorf("failed to undo card: %w", err)
	}

	s.hub.BroadcastToRoom(matchRoom(card.MatchID), live.Message{Type: live.EventCardUndone, Payload: card})
	return nil
}

func (s *matchService) RecordSubstitution(ctx context.Context, input RecordSubstitutionInput) (*models.Substitution, error) {
	if input.PlayerOutID == input.PlayerInID {
		return nil, fmt.Errorf("%w: a player cannot replace themselves", ErrValidationFailed)
	}
	if _, err := s.openMatchForTeam(ctx, input.MatchID, input.TeamID, false); err != nil {
		return nil, err
	}

	sub := &models.Substitution{
		MatchID:     input.MatchID,
		TeamID:      input.TeamID,
		PlayerOutID: input.PlayerOutID,
		PlayerInID:  input.PlayerInID,
		Minute:      input.Minute,
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		if errors.Is(err, repositories.ErrEventReferenceInvalid) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to record substitution: %w", err)
	}

	s.hub.BroadcastToRoom(matchRoom(input.MatchID), live.Message{Type: live.EventSubstitution, Payload: sub})
	return sub, nil
}

func (s *matchService) SignMatch(ctx context.Context, input SignMatchInput) (*models.Signature, error) {
	if input.SignerName == "" {
		return nil, ErrSignerNameRequired
	}
	switch input.Role {
	case models.SignatureReferee, models.SignatureLocalCaptain, models.SignatureVisitCaptain:
	default:
		return nil, fmt.Errorf("%w: unknown signature role %q", ErrValidationFailed, input.Role)
	}

	match, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	signature := &models.Signature{
		MatchID:    match.ID,
		Role:       input.Role,
		SignerName: input.SignerName,
	}

	if input.ImageReader != nil {
		ext, extErr := GetExtensionFromContentType(input.ImageContentType)
		if extErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, extErr)
		}
		key := fmt.Sprintf("matches/%d/signatures/%s%s", match.ID, input.Role, ext)
		if _, upErr := s.uploader.Upload(ctx, key, input.ImageContentType, input.ImageReader); upErr != nil {
			return nil, fmt.Errorf("failed to upload signature image: %w", upErr)
		}
		signature.ImageKey = &key
	}

	if err := s.signatureRepo.Create(ctx, signature); err != nil {
		switch {
		case errors.Is(err, repositories.ErrSignatureRoleConflict):
			return nil, ErrSignatureConflict
		case errors.Is(err, repositories.ErrSignatureMatchInvalid):
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to record signature: %w", err)
	}

	populateSignatureImageURL(signature, s.uploader)
	return signature, nil
}

// openMatchForTeam loads the match and checks the team plays in it.
// allowScheduled additionally admits matches that have not kicked off yet
// (call-ups and captain changes happen before the whistle).
func (s *matchService) openMatchForTeam(ctx context.Context, matchID, teamID int, allowScheduled bool) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	switch match.Status {
	case models.MatchStatusInProgress:
	case models.MatchStatusScheduled:
		if !allowScheduled {
			return nil, ErrMatchNotOpenForEvents
		}
	default:
		return nil, ErrMatchNotOpenForEvents
	}

	if teamID != match.LocalTeamID && teamID != match.VisitTeamID {
		return nil, ErrTeamNotInMatch
	}
	return match, nil
}
