package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ligafc/league-admin/live"
	"github.com/ligafc/league-admin/models"
	"github.com/ligafc/league-admin/repositories"
)

type matchFixture struct {
	matchRepo      *MockMatchRepository
	tournamentRepo *MockTournamentRepository
	teamRepo       *MockTeamRepository
	goalRepo       *MockGoalRepository
	cardRepo       *MockCardRepository
	subRepo        *MockSubstitutionRepository
	callUpRepo     *MockCallUpRepository
	signatureRepo  *MockSignatureRepository
	service        MatchService
}

func newMatchFixture() *matchFixture {
	f := &matchFixture{
		matchRepo:      new(MockMatchRepository),
		tournamentRepo: new(MockTournamentRepository),
		teamRepo:       new(MockTeamRepository),
		goalRepo:       new(MockGoalRepository),
		cardRepo:       new(MockCardRepository),
		subRepo:        new(MockSubstitutionRepository),
		callUpRepo:     new(MockCallUpRepository),
		signatureRepo:  new(MockSignatureRepository),
	}
	f.service = NewMatchService(
		f.matchRepo,
		f.tournamentRepo,
		f.teamRepo,
		f.goalRepo,
		f.cardRepo,
		f.subRepo,
		f.callUpRepo,
		f.signatureRepo,
		nil,
		live.NewHub(),
	)
	return f
}

func inProgressMatch() *models.Match {
	return &models.Match{
		ID:           7,
		TournamentID: 1,
		Matchday:     3,
		LocalTeamID:  10,
		VisitTeamID:  20,
		Status:       models.MatchStatusInProgress,
	}
}

func TestCreateMatch(t *testing.T) {
	t.Run("rejects a team playing itself", func(t *testing.T) {
		f := newMatchFixture()
		_, err := f.service.CreateMatch(context.Background(), CreateMatchInput{
			TournamentID: 1, Matchday: 1, LocalTeamID: 10, VisitTeamID: 10, Kickoff: time.Now(),
		})
		assert.ErrorIs(t, err, ErrMatchTeamsEqual)
	})

	t.Run("rejects matchday beyond the tournament calendar", func(t *testing.T) {
		f := newMatchFixture()
		f.tournamentRepo.On("GetByID", mock.Anything, 1).
			Return(&models.Tournament{ID: 1, MatchdayCount: 10}, nil)

		_, err := f.service.CreateMatch(context.Background(), CreateMatchInput{
			TournamentID: 1, Matchday: 11, LocalTeamID: 10, VisitTeamID: 20, Kickoff: time.Now(),
		})
		assert.ErrorIs(t, err, ErrMatchdayOutOfRange)
	})

	t.Run("rejects teams from another tournament", func(t *testing.T) {
		f := newMatchFixture()
		f.tournamentRepo.On("GetByID", mock.Anything, 1).
			Return(&models.Tournament{ID: 1, MatchdayCount: 10}, nil)
		f.teamRepo.On("GetByID", mock.Anything, 10).
			Return(&models.Team{ID: 10, TournamentID: 2}, nil)

		_, err := f.service.CreateMatch(context.Background(), CreateMatchInput{
			TournamentID: 1, Matchday: 1, LocalTeamID: 10, VisitTeamID: 20, Kickoff: time.Now(),
		})
		assert.ErrorIs(t, err, ErrTeamTournamentMismatch)
	})

	t.Run("creates a scheduled match", func(t *testing.T) {
		f := newMatchFixture()
		f.tournamentRepo.On("GetByID", mock.Anything, 1).
			Return(&models.Tournament{ID: 1, MatchdayCount: 10}, nil)
		f.teamRepo.On("GetByID", mock.Anything, 10).
			Return(&models.Team{ID: 10, TournamentID: 1}, nil)
		f.teamRepo.On("GetByID", mock.Anything, 20).
			Return(&models.Team{ID: 20, TournamentID: 1}, nil)
		f.matchRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Match")).Return(nil)

		match, err := f.service.CreateMatch(context.Background(), CreateMatchInput{
			TournamentID: 1, Matchday: 1, LocalTeamID: 10, VisitTeamID: 20, Kickoff: time.Now(),
		})
		require.NoError(t, err)
		assert.Equal(t, models.MatchStatusScheduled, match.Status)
	})
}

func TestCloseMatchDerivesScoreFromGoals(t *testing.T) {
	f := newMatchFixture()
	f.matchRepo.On("GetByID", mock.Anything, 7).Return(inProgressMatch(), nil)
	f.goalRepo.On("ListByMatch", mock.Anything, 7).Return([]*models.Goal{
		{MatchID: 7, TeamID: 10},
		{MatchID: 7, TeamID: 10},
		{MatchID: 7, TeamID: 20},
		// Own goal stored against the benefiting side, like any other goal.
		{MatchID: 7, TeamID: 20, OwnGoal: true},
	}, nil)

	f.matchRepo.On("UpdateStatusScore", mock.Anything, 7, models.MatchStatusCompleted, mock.Anything, mock.Anything).
		Return(nil)

	match, err := f.service.CloseMatch(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, models.MatchStatusCompleted, match.Status)
	require.NotNil(t, match.LocalGoals)
	require.NotNil(t, match.VisitGoals)
	assert.Equal(t, 2, *match.LocalGoals)
	assert.Equal(t, 2, *match.VisitGoals)
}

func TestCloseMatchTwiceFails(t *testing.T) {
	f := newMatchFixture()
	closed := inProgressMatch()
	closed.Status = models.MatchStatusCompleted
	f.matchRepo.On("GetByID", mock.Anything, 7).Return(closed, nil)

	_, err := f.service.CloseMatch(context.Background(), 7)
	assert.ErrorIs(t, err, ErrMatchAlreadyClosed)
}

func TestStartMatchRequiresScheduled(t *testing.T) {
	f := newMatchFixture()
	completed := inProgressMatch()
	completed.Status = models.MatchStatusCompleted
	f.matchRepo.On("GetByID", mock.Anything, 7).Return(completed, nil)

	_, err := f.service.StartMatch(context.Background(), 7)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestRecordCardDenormalizesMatchContext(t *testing.T) {
	f := newMatchFixture()
	f.matchRepo.On("GetByID", mock.Anything, 7).Return(inProgressMatch(), nil)
	f.cardRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Card")).Return(nil)

	card, err := f.service.RecordCard(context.Background(), RecordCardInput{
		MatchID: 7, TeamID: 10, PlayerID: 100, Kind: models.CardYellow,
	})
	require.NoError(t, err)

	// Tournament and matchday are copied from the match so the settlement
	// queries can accumulate cards without joins.
	assert.Equal(t, 1, card.TournamentID)
	assert.Equal(t, 3, card.Matchday)
	assert.Equal(t, models.CardYellow, card.Kind)
}

func TestRecordCardRejectsForeignTeam(t *testing.T) {
	f := newMatchFixture()
	f.matchRepo.On("GetByID", mock.Anything, 7).Return(inProgressMatch(), nil)

	_, err := f.service.RecordCard(context.Background(), RecordCardInput{
		MatchID: 7, TeamID: 99, PlayerID: 100, Kind: models.CardRed,
	})
	assert.ErrorIs(t, err, ErrTeamNotInMatch)
}

func TestRecordCardRequiresOpenMatch(t *testing.T) {
	f := newMatchFixture()
	scheduled := inProgressMatch()
	scheduled.Status = models.MatchStatusScheduled
	f.matchRepo.On("GetByID", mock.Anything, 7).Return(scheduled, nil)

	_, err := f.service.RecordCard(context.Background(), RecordCardInput{
		MatchID: 7, TeamID: 10, PlayerID: 100, Kind: models.CardYellow,
	})
	assert.ErrorIs(t, err, ErrMatchNotOpenForEvents)
}

func TestUndoCardDeletesTheRow(t *testing.T) {
	f := newMatchFixture()
	card := &models.Card{ID: 42, MatchID: 7, TeamID: 10, Kind: models.CardYellow}
	f.cardRepo.On("GetByID", mock.Anything, 42).Return(card, nil)
	f.cardRepo.On("Delete", mock.Anything, 42).Return(nil)

	err := f.service.UndoCard(context.Background(), 42)
	require.NoError(t, err)
	f.cardRepo.AssertExpectations(t)
}

func TestUndoCardUnknownCard(t *testing.T) {
	f := newMatchFixture()
	f.cardRepo.On("GetByID", mock.Anything, 42).Return(nil, repositories.ErrCardNotFound)

	err := f.service.UndoCard(context.Background(), 42)
	assert.ErrorIs(t, err, ErrCardNotFound)
}

func TestCallUpAllowedBeforeKickoff(t *testing.T) {
	f := newMatchFixture()
	scheduled := inProgressMatch()
	scheduled.Status = models.MatchStatusScheduled
	f.matchRepo.On("GetByID", mock.Anything, 7).Return(scheduled, nil)
	f.callUpRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.CallUp")).Return(nil)

	callUp, err := f.service.CallUpPlayer(context.Background(), CallUpInput{
		MatchID: 7, TeamID: 10, PlayerID: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, callUp.PlayerID)
}

func TestCallUpDuplicatePlayer(t *testing.T) {
	f := newMatchFixture()
	f.matchRepo.On("GetByID", mock.Anything, 7).Return(inProgressMatch(), nil)
	f.callUpRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.CallUp")).
		Return(repositories.ErrCallUpPlayerConflict)

	_, err := f.service.CallUpPlayer(context.Background(), CallUpInput{
		MatchID: 7, TeamID: 10, PlayerID: 100,
	})
	assert.ErrorIs(t, err, ErrCallUpConflict)
}

func TestRecordSubstitutionSelfReplacement(t *testing.T) {
	f := newMatchFixture()

	_, err := f.service.RecordSubstitution(context.Background(), RecordSubstitutionInput{
		MatchID: 7, TeamID: 10, PlayerOutID: 100, PlayerInID: 100,
	})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestSignMatch(t *testing.T) {
	t.Run("requires a signer name", func(t *testing.T) {
		f := newMatchFixture()
		_, err := f.service.SignMatch(context.Background(), SignMatchInput{
			MatchID: 7, Role: models.SignatureReferee,
		})
		assert.ErrorIs(t, err, ErrSignerNameRequired)
	})

	t.Run("one signature per role", func(t *testing.T) {
		f := newMatchFixture()
		f.matchRepo.On("GetByID", mock.Anything, 7).Return(inProgressMatch(), nil)
		f.signatureRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Signature")).
			Return(repositories.ErrSignatureRoleConflict)

		_, err := f.service.SignMatch(context.Background(), SignMatchInput{
			MatchID: 7, Role: models.SignatureReferee, SignerName: "J. Torres",
		})
		assert.ErrorIs(t, err, ErrSignatureConflict)
	})

	t.Run("records a plain signature", func(t *testing.T) {
		f := newMatchFixture()
		f.matchRepo.On("GetByID", mock.Anything, 7).Return(inProgressMatch(), nil)
		f.signatureRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Signature")).Return(nil)

		signature, err := f.service.SignMatch(context.Background(), SignMatchInput{
			MatchID: 7, Role: models.SignatureLocalCaptain, SignerName: "A. Ruiz",
		})
		require.NoError(t, err)
		assert.Equal(t, models.SignatureLocalCaptain, signature.Role)
		assert.Nil(t, signature.ImageKey)
	})
}
