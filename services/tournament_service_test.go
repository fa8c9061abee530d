package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ligafc/league-admin/models"
	"github.com/ligafc/league-admin/repositories"
)

type tournamentFixture struct {
	tournamentRepo *MockTournamentRepository
	categoryRepo   *MockCategoryRepository
	tariffRepo     *MockTariffRepository
	service        TournamentService
}

func newTournamentFixture() *tournamentFixture {
	f := &tournamentFixture{
		tournamentRepo: new(MockTournamentRepository),
		categoryRepo:   new(MockCategoryRepository),
		tariffRepo:     new(MockTariffRepository),
	}
	f.service = NewTournamentService(f.tournamentRepo, f.categoryRepo, f.tariffRepo)
	return f
}

func TestCreateTournament(t *testing.T) {
	t.Run("requires a positive matchday count", func(t *testing.T) {
		f := newTournamentFixture()
		_, err := f.service.CreateTournament(context.Background(), CreateTournamentInput{
			Name: "Liga Municipal", Season: "2026", MatchdayCount: 0,
		})
		assert.ErrorIs(t, err, ErrTournamentInvalidMatchdayCount)
	})

	t.Run("starts in soon", func(t *testing.T) {
		f := newTournamentFixture()
		f.tournamentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Tournament")).Return(nil)

		tournament, err := f.service.CreateTournament(context.Background(), CreateTournamentInput{
			Name: "Liga Municipal", Season: "2026", MatchdayCount: 18,
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusSoon, tournament.Status)
	})

	t.Run("name and season must be unique together", func(t *testing.T) {
		f := newTournamentFixture()
		f.tournamentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Tournament")).
			Return(repositories.ErrTournamentNameConflict)

		_, err := f.service.CreateTournament(context.Background(), CreateTournamentInput{
			Name: "Liga Municipal", Season: "2026", MatchdayCount: 18,
		})
		assert.ErrorIs(t, err, ErrTournamentNameConflict)
	})
}

func TestUpdateTournamentStatus(t *testing.T) {
	t.Run("allows registration to active", func(t *testing.T) {
		f := newTournamentFixture()
		f.tournamentRepo.On("GetByID", mock.Anything, 1).
			Return(&models.Tournament{ID: 1, Status: models.StatusRegistration}, nil)
		f.tournamentRepo.On("UpdateStatus", mock.Anything, 1, models.StatusActive).Return(nil)

		tournament, err := f.service.UpdateStatus(context.Background(), 1, models.StatusActive)
		require.NoError(t, err)
		assert.Equal(t, models.StatusActive, tournament.Status)
	})

	t.Run("rejects leaving a completed tournament", func(t *testing.T) {
		f := newTournamentFixture()
		f.tournamentRepo.On("GetByID", mock.Anything, 1).
			Return(&models.Tournament{ID: 1, Status: models.StatusCompleted}, nil)

		_, err := f.service.UpdateStatus(context.Background(), 1, models.StatusActive)
		assert.ErrorIs(t, err, ErrTournamentInvalidStatusTransition)
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		f := newTournamentFixture()
		_, err := f.service.UpdateStatus(context.Background(), 1, "archived")
		assert.ErrorIs(t, err, ErrTournamentInvalidStatus)
	})
}

func TestSetTariff(t *testing.T) {
	t.Run("rejects negative prices", func(t *testing.T) {
		f := newTournamentFixture()
		_, err := f.service.SetTariff(context.Background(), SetTariffInput{
			TournamentID: 1, YellowCents: -1, RedCents: 500,
		})
		assert.ErrorIs(t, err, ErrAmountInvalid)
	})

	t.Run("nil category configures the tournament default", func(t *testing.T) {
		f := newTournamentFixture()
		f.tariffRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*models.Tariff")).Return(nil)

		tariff, err := f.service.SetTariff(context.Background(), SetTariffInput{
			TournamentID: 1, YellowCents: 500, RedCents: 1000,
		})
		require.NoError(t, err)
		assert.Nil(t, tariff.CategoryID)
		f.categoryRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("category must belong to the tournament", func(t *testing.T) {
		f := newTournamentFixture()
		categoryID := 9
		f.categoryRepo.On("GetByID", mock.Anything, categoryID).
			Return(&models.Category{ID: categoryID, TournamentID: 2}, nil)

		_, err := f.service.SetTariff(context.Background(), SetTariffInput{
			TournamentID: 1, CategoryID: &categoryID, YellowCents: 500, RedCents: 1000,
		})
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("zero prices are a valid configuration", func(t *testing.T) {
		f := newTournamentFixture()
		f.tariffRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*models.Tariff")).Return(nil)

		tariff, err := f.service.SetTariff(context.Background(), SetTariffInput{
			TournamentID: 1, YellowCents: 0, RedCents: 0,
		})
		require.NoError(t, err)
		assert.Zero(t, tariff.YellowCents)
		assert.Zero(t, tariff.RedCents)
	})
}

func TestAddCategory(t *testing.T) {
	t.Run("requires a name", func(t *testing.T) {
		f := newTournamentFixture()
		_, err := f.service.AddCategory(context.Background(), 1, "   ")
		assert.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("maps a missing tournament", func(t *testing.T) {
		f := newTournamentFixture()
		f.categoryRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Category")).
			Return(repositories.ErrCategoryTournamentInvalid)

		_, err := f.service.AddCategory(context.Background(), 99, "Veteranos")
		assert.ErrorIs(t, err, ErrTournamentNotFound)
	})
}
