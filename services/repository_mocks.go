package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ligafc/league-admin/models"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTournamentRepository is a mock implementation of repositories.TournamentRepository.
type MockTournamentRepository struct {
	mock.Mock
}

func (m *MockTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	args := m.Called(ctx, tournament)
	return args.Error(0)
}

func (m *MockTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) List(ctx context.Context, status *models.TournamentStatus) ([]*models.Tournament, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tournament), args.Error(1)
}

func (m *MockTournamentRepository) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTournamentRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository.
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Category, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTeamRepository is a mock implementation of repositories.TeamRepository.
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, team *models.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Team), args.Error(1)
}

func (m *MockTeamRepository) UpdateName(ctx context.Context, id int, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockTeamRepository) UpdateCrestKey(ctx context.Context, id int, crestKey *string) error {
	args := m.Called(ctx, id, crestKey)
	return args.Error(0)
}

func (m *MockTeamRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPlayerRepository is a mock implementation of repositories.PlayerRepository.
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *MockPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) Update(ctx context.Context, player *models.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *MockPlayerRepository) UpdatePhotoKey(ctx context.Context, id int, photoKey *string) error {
	args := m.Called(ctx, id, photoKey)
	return args.Error(0)
}

func (m *MockPlayerRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMatchRepository is a mock implementation of repositories.MatchRepository.
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) Create(ctx context.Context, match *models.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchRepository) ListByTournament(ctx context.Context, tournamentID int, matchday *int, status *models.MatchStatus) ([]*models.Match, error) {
	args := m.Called(ctx, tournamentID, matchday, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Match), args.Error(1)
}

func (m *MockMatchRepository) UpdateStatusScore(ctx context.Context, id int, status models.MatchStatus, localGoals, visitGoals *int) error {
	args := m.Called(ctx, id, status, localGoals, visitGoals)
	return args.Error(0)
}

func (m *MockMatchRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGoalRepository is a mock implementation of repositories.GoalRepository.
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.Goal, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Goal), args.Error(1)
}

func (m *MockGoalRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSubstitutionRepository is a mock implementation of repositories.SubstitutionRepository.
type MockSubstitutionRepository struct {
	mock.Mock
}

func (m *MockSubstitutionRepository) Create(ctx context.Context, sub *models.Substitution) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubstitutionRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.Substitution, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Substitution), args.Error(1)
}

func (m *MockSubstitutionRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCallUpRepository is a mock implementation of repositories.CallUpRepository.
type MockCallUpRepository struct {
	mock.Mock
}

func (m *MockCallUpRepository) Create(ctx context.Context, callUp *models.CallUp) error {
	args := m.Called(ctx, callUp)
	return args.Error(0)
}

func (m *MockCallUpRepository) ListByMatchTeam(ctx context.Context, matchID, teamID int) ([]*models.CallUp, error) {
	args := m.Called(ctx, matchID, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CallUp), args.Error(1)
}

func (m *MockCallUpRepository) SetCaptain(ctx context.Context, matchID, teamID, playerID int) error {
	args := m.Called(ctx, matchID, teamID, playerID)
	return args.Error(0)
}

func (m *MockCallUpRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCardRepository is a mock implementation of repositories.CardRepository.
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, card *models.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) GetByID(ctx context.Context, id int) (*models.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.Card, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Card), args.Error(1)
}

func (m *MockCardRepository) ListByTeamUpToMatchday(ctx context.Context, tournamentID, teamID, matchday int) ([]*models.Card, error) {
	args := m.Called(ctx, tournamentID, teamID, matchday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Card), args.Error(1)
}

func (m *MockCardRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSignatureRepository is a mock implementation of repositories.SignatureRepository.
type MockSignatureRepository struct {
	mock.Mock
}

func (m *MockSignatureRepository) Create(ctx context.Context, signature *models.Signature) error {
	args := m.Called(ctx, signature)
	return args.Error(0)
}

func (m *MockSignatureRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.Signature, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Signature), args.Error(1)
}

func (m *MockSignatureRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockChargeRepository is a mock implementation of repositories.ChargeRepository.
type MockChargeRepository struct {
	mock.Mock
}

func (m *MockChargeRepository) Create(ctx context.Context, charge *models.ManualCharge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

func (m *MockChargeRepository) ListByTeamUpToMatchday(ctx context.Context, tournamentID, teamID, matchday int) ([]*models.ManualCharge, error) {
	args := m.Called(ctx, tournamentID, teamID, matchday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ManualCharge), args.Error(1)
}

func (m *MockChargeRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of repositories.PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByTeamUpToMatchday(ctx context.Context, tournamentID, teamID, matchday int) ([]*models.Payment, error) {
	args := m.Called(ctx, tournamentID, teamID, matchday)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTariffRepository is a mock implementation of repositories.TariffRepository.
type MockTariffRepository struct {
	mock.Mock
}

func (m *MockTariffRepository) Upsert(ctx context.Context, tariff *models.Tariff) error {
	args := m.Called(ctx, tariff)
	return args.Error(0)
}

func (m *MockTariffRepository) GetForCategory(ctx context.Context, tournamentID, categoryID int) (*models.Tariff, error) {
	args := m.Called(ctx, tournamentID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tariff), args.Error(1)
}

func (m *MockTariffRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Tariff, error) {
	args := m.Called(ctx, tournamentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Tariff), args.Error(1)
}
