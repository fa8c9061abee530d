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

type settlementFixture struct {
	teamRepo    *MockTeamRepository
	cardRepo    *MockCardRepository
	chargeRepo  *MockChargeRepository
	paymentRepo *MockPaymentRepository
	tariffRepo  *MockTariffRepository
	service     SettlementService
}

func newSettlementFixture() *settlementFixture {
	f := &settlementFixture{
		teamRepo:    new(MockTeamRepository),
		cardRepo:    new(MockCardRepository),
		chargeRepo:  new(MockChargeRepository),
		paymentRepo: new(MockPaymentRepository),
		tariffRepo:  new(MockTariffRepository),
	}
	f.service = NewSettlementService(f.teamRepo, f.cardRepo, f.chargeRepo, f.paymentRepo, f.tariffRepo)
	return f
}

// expectTeam wires the happy-path lookups for one team: the team row, its
// tariff, and the cumulative card/charge/payment lists up to the matchday.
func (f *settlementFixture) expectTeam(tournamentID, teamID, categoryID, matchday int, tariff *models.Tariff, cards []*models.Card, charges []*models.ManualCharge, payments []*models.Payment) {
	f.teamRepo.On("GetByID", mock.Anything, teamID).
		Return(&models.Team{ID: teamID, TournamentID: tournamentID, CategoryID: categoryID}, nil)
	if tariff != nil {
		f.tariffRepo.On("GetForCategory", mock.Anything, tournamentID, categoryID).Return(tariff, nil)
	} else {
		f.tariffRepo.On("GetForCategory", mock.Anything, tournamentID, categoryID).Return(nil, repositories.ErrTariffNotFound)
	}
	f.cardRepo.On("ListByTeamUpToMatchday", mock.Anything, tournamentID, teamID, matchday).Return(cards, nil)
	f.chargeRepo.On("ListByTeamUpToMatchday", mock.Anything, tournamentID, teamID, matchday).Return(charges, nil)
	f.paymentRepo.On("ListByTeamUpToMatchday", mock.Anything, tournamentID, teamID, matchday).Return(payments, nil)
}

func yellowCards(teamID, n int) []*models.Card {
	cards := make([]*models.Card, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, &models.Card{TeamID: teamID, Kind: models.CardYellow})
	}
	return cards
}

func TestDetailedBreakdownEmptyLedger(t *testing.T) {
	f := newSettlementFixture()
	tariff := &models.Tariff{TournamentID: 1, YellowCents: 500, RedCents: 1000}
	f.expectTeam(1, 10, 3, 1, tariff, nil, nil, nil)
	f.expectTeam(1, 20, 3, 1, tariff, nil, nil, nil)

	settlement, err := f.service.DetailedBreakdown(context.Background(), 1, 10, 20, 1)
	require.NoError(t, err)

	for _, side := range []SettlementDetail{settlement.Local, settlement.Visit} {
		assert.Zero(t, side.Yellows)
		assert.Zero(t, side.Reds)
		assert.Zero(t, side.ChargedCents)
		assert.Zero(t, side.PaymentsTotalCents)
		assert.Zero(t, side.BalanceCents)
		assert.False(t, side.Partial)
		assert.Empty(t, side.Charges)
		assert.Empty(t, side.Payments)
	}
	assert.Equal(t, 10, settlement.Local.TeamID)
	assert.Equal(t, 20, settlement.Visit.TeamID)
}

func TestDetailedBreakdownCardArithmetic(t *testing.T) {
	f := newSettlementFixture()
	tariff := &models.Tariff{TournamentID: 1, YellowCents: 500, RedCents: 1000}

	cards := append(yellowCards(10, 2), &models.Card{TeamID: 10, Kind: models.CardRed})
	f.expectTeam(1, 10, 3, 4, tariff, cards, nil, nil)
	f.expectTeam(1, 20, 3, 4, tariff, nil, nil, nil)

	settlement, err := f.service.DetailedBreakdown(context.Background(), 1, 10, 20, 4)
	require.NoError(t, err)

	local := settlement.Local
	assert.Equal(t, 2, local.Yellows)
	assert.Equal(t, 1, local.Reds)
	assert.Equal(t, int64(500), local.YellowPriceCents)
	assert.Equal(t, int64(1000), local.RedPriceCents)
	assert.Equal(t, int64(1000), local.YellowAmountCents)
	assert.Equal(t, int64(1000), local.RedAmountCents)
	assert.Equal(t, int64(2000), local.ChargedCents)
	assert.Equal(t, int64(2000), local.BalanceCents)
	assert.False(t, local.Partial)
}

func TestDetailedBreakdownGlobalChargeAtFirstMatchday(t *testing.T) {
	f := newSettlementFixture()
	tariff := &models.Tariff{TournamentID: 1, YellowCents: 500, RedCents: 1000}

	// A global charge carries no matchday; the repository includes it in
	// every cumulative query, matchday 1 included.
	global := &models.ManualCharge{TournamentID: 1, TeamID: 10, AmountCents: 2500}
	f.expectTeam(1, 10, 3, 1, tariff, nil, []*models.ManualCharge{global}, nil)
	f.expectTeam(1, 20, 3, 1, tariff, nil, nil, nil)

	settlement, err := f.service.DetailedBreakdown(context.Background(), 1, 10, 20, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(2500), settlement.Local.ChargesTotalCents)
	assert.Equal(t, int64(2500), settlement.Local.ChargedCents)
	assert.Len(t, settlement.Local.Charges, 1)
	assert.Nil(t, settlement.Local.Charges[0].Matchday)
}

func TestDetailedBreakdownPaymentsReduceBalance(t *testing.T) {
	f := newSettlementFixture()
	tariff := &models.Tariff{TournamentID: 1, YellowCents: 1000, RedCents: 2000}

	payments := []*models.Payment{{TournamentID: 1, TeamID: 10, Matchday: 1, AmountCents: 1500}}
	f.expectTeam(1, 10, 3, 2, tariff, yellowCards(10, 2), nil, payments)
	f.expectTeam(1, 20, 3, 2, tariff, nil, nil, nil)

	settlement, err := f.service.DetailedBreakdown(context.Background(), 1, 10, 20, 2)
	require.NoError(t, err)

	assert.Equal(t, int64(2000), settlement.Local.ChargedCents)
	assert.Equal(t, int64(1500), settlement.Local.PaymentsTotalCents)
	assert.Equal(t, int64(500), settlement.Local.BalanceCents)
}

func TestDetailedBreakdownOverpaymentGoesNegative(t *testing.T) {
	f := newSettlementFixture()
	tariff := &models.Tariff{TournamentID: 1, YellowCents: 500, RedCents: 1000}

	payments := []*models.Payment{{TournamentID: 1, TeamID: 10, Matchday: 1, AmountCents: 3000}}
	f.expectTeam(1, 10, 3, 1, tariff, yellowCards(10, 1), nil, payments)
	f.expectTeam(1, 20, 3, 1, tariff, nil, nil, nil)

	settlement, err := f.service.DetailedBreakdown(context.Background(), 1, 10, 20, 1)
	require.NoError(t, err)

	// Overpayment is kept as a negative saldo, never clamped to zero.
	assert.Equal(t, int64(-2500), settlement.Local.BalanceCents)
	assert.False(t, settlement.Local.Partial)
}

func TestDetailedBreakdownUnknownTeamIsPartialZero(t *testing.T) {
	f := newSettlementFixture()
	tariff := &models.Tariff{TournamentID: 1, YellowCents: 500, RedCents: 1000}

	f.teamRepo.On("GetByID", mock.Anything, 99).Return(nil, repositories.ErrTeamNotFound)
	f.expectTeam(1, 20, 3, 1, tariff, nil, nil, nil)

	settlement, err := f.service.DetailedBreakdown(context.Background(), 1, 99, 20, 1)
	require.NoError(t, err)

	assert.True(t, settlement.Local.Partial)
	assert.Zero(t, settlement.Local.BalanceCents)
	assert.Zero(t, settlement.Local.ChargedCents)
	assert.False(t, settlement.Visit.Partial)

	// The zero side must not have touched the ledgers.
	f.cardRepo.AssertNotCalled(t, "ListByTeamUpToMatchday", mock.Anything, 1, 99, 1)
}

func TestDetailedBreakdownMissingTariffIsPartial(t *testing.T) {
	f := newSettlementFixture()

	charges := []*models.ManualCharge{{TournamentID: 1, TeamID: 10, AmountCents: 1200}}
	f.expectTeam(1, 10, 3, 1, nil, yellowCards(10, 3), charges, nil)
	f.expectTeam(1, 20, 5, 1, nil, nil, nil, nil)

	settlement, err := f.service.DetailedBreakdown(context.Background(), 1, 10, 20, 1)
	require.NoError(t, err)

	local := settlement.Local
	assert.True(t, local.Partial)
	// Cards are still counted, they just price at zero.
	assert.Equal(t, 3, local.Yellows)
	assert.Zero(t, local.YellowAmountCents)
	// Manual charges do not depend on the tariff and survive intact.
	assert.Equal(t, int64(1200), local.ChargesTotalCents)
	assert.Equal(t, int64(1200), local.BalanceCents)
}

func TestDetailedBreakdownEndToEnd(t *testing.T) {
	f := newSettlementFixture()
	tariff := &models.Tariff{TournamentID: 1, YellowCents: 300, RedCents: 800}

	cards := append(yellowCards(10, 3), &models.Card{TeamID: 10, Kind: models.CardRed})
	charges := []*models.ManualCharge{{TournamentID: 1, TeamID: 10, AmountCents: 2000}}
	payments := []*models.Payment{{TournamentID: 1, TeamID: 10, Matchday: 2, AmountCents: 1000}}

	f.expectTeam(1, 10, 3, 5, tariff, cards, charges, payments)
	f.expectTeam(1, 20, 3, 5, tariff, nil, nil, nil)

	settlement, err := f.service.DetailedBreakdown(context.Background(), 1, 10, 20, 5)
	require.NoError(t, err)

	local := settlement.Local
	assert.Equal(t, int64(900), local.YellowAmountCents)
	assert.Equal(t, int64(800), local.RedAmountCents)
	assert.Equal(t, int64(2000), local.ChargesTotalCents)
	assert.Equal(t, int64(3700), local.ChargedCents)
	assert.Equal(t, int64(1000), local.PaymentsTotalCents)
	assert.Equal(t, int64(2700), local.BalanceCents)
}

func TestDetailedBreakdownBalanceGrowsWithMatchday(t *testing.T) {
	f := newSettlementFixture()
	tariff := &models.Tariff{TournamentID: 1, YellowCents: 500, RedCents: 1000}

	// The cumulative lists at matchday 3 are a superset of those at
	// matchday 2; with no payment in between the saldo can only grow.
	earlyCards := yellowCards(10, 2)
	lateCards := append(yellowCards(10, 2), &models.Card{TeamID: 10, Kind: models.CardRed})
	earlyCharges := []*models.ManualCharge{{TournamentID: 1, TeamID: 10, AmountCents: 700}}
	lateCharges := []*models.ManualCharge{
		{TournamentID: 1, TeamID: 10, AmountCents: 700},
		{TournamentID: 1, TeamID: 10, AmountCents: 300},
	}

	f.expectTeam(1, 10, 3, 2, tariff, earlyCards, earlyCharges, nil)
	f.expectTeam(1, 20, 3, 2, tariff, nil, nil, nil)
	f.expectTeam(1, 10, 3, 3, tariff, lateCards, lateCharges, nil)
	f.expectTeam(1, 20, 3, 3, tariff, nil, nil, nil)

	early, err := f.service.DetailedBreakdown(context.Background(), 1, 10, 20, 2)
	require.NoError(t, err)
	late, err := f.service.DetailedBreakdown(context.Background(), 1, 10, 20, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(1700), early.Local.BalanceCents)
	assert.Equal(t, int64(3000), late.Local.BalanceCents)
	assert.LessOrEqual(t, early.Local.BalanceCents, late.Local.BalanceCents)
}

func TestDetailedBreakdownReadIsIdempotent(t *testing.T) {
	f := newSettlementFixture()
	tariff := &models.Tariff{TournamentID: 1, YellowCents: 300, RedCents: 800}

	f.expectTeam(1, 10, 3, 2, tariff, yellowCards(10, 2), nil, nil)
	f.expectTeam(1, 20, 3, 2, tariff, nil, nil, nil)

	first, err := f.service.DetailedBreakdown(context.Background(), 1, 10, 20, 2)
	require.NoError(t, err)
	second, err := f.service.DetailedBreakdown(context.Background(), 1, 10, 20, 2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDetailedBreakdownRejectsInvalidMatchday(t *testing.T) {
	f := newSettlementFixture()

	_, err := f.service.DetailedBreakdown(context.Background(), 1, 10, 20, 0)
	assert.ErrorIs(t, err, ErrMatchdayInvalid)

	_, err = f.service.DetailedBreakdown(context.Background(), 1, 10, 20, -3)
	assert.ErrorIs(t, err, ErrMatchdayInvalid)
}

func TestTeamBalancesCondensesBreakdown(t *testing.T) {
	f := newSettlementFixture()
	tariff := &models.Tariff{TournamentID: 1, YellowCents: 500, RedCents: 1000}

	f.expectTeam(1, 10, 3, 1, tariff, yellowCards(10, 1), nil, nil)
	f.expectTeam(1, 20, 5, 1, nil, nil, nil, nil)

	balances, err := f.service.TeamBalances(context.Background(), 1, 10, 20, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(500), balances.Local.BalanceCents)
	assert.False(t, balances.Local.Partial)
	assert.Zero(t, balances.Visit.BalanceCents)
	assert.True(t, balances.Visit.Partial)
}

func TestRegisterPayment(t *testing.T) {
	t.Run("rejects non-positive amount", func(t *testing.T) {
		f := newSettlementFixture()
		_, err := f.service.RegisterPayment(context.Background(), RegisterPaymentInput{
			TournamentID: 1, TeamID: 10, Matchday: 1, AmountCents: 0,
		})
		assert.ErrorIs(t, err, ErrAmountInvalid)
	})

	t.Run("rejects invalid matchday", func(t *testing.T) {
		f := newSettlementFixture()
		_, err := f.service.RegisterPayment(context.Background(), RegisterPaymentInput{
			TournamentID: 1, TeamID: 10, Matchday: 0, AmountCents: 1000,
		})
		assert.ErrorIs(t, err, ErrMatchdayInvalid)
	})

	t.Run("maps unknown team to not found", func(t *testing.T) {
		f := newSettlementFixture()
		f.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Payment")).
			Return(repositories.ErrPaymentTeamInvalid)

		_, err := f.service.RegisterPayment(context.Background(), RegisterPaymentInput{
			TournamentID: 1, TeamID: 99, Matchday: 1, AmountCents: 1000,
		})
		assert.ErrorIs(t, err, ErrTeamNotFound)
	})

	t.Run("persists and trims the description", func(t *testing.T) {
		f := newSettlementFixture()
		f.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Payment")).Return(nil)

		desc := "  abono jornada 3  "
		payment, err := f.service.RegisterPayment(context.Background(), RegisterPaymentInput{
			TournamentID: 1, TeamID: 10, Matchday: 3, AmountCents: 1500, Description: &desc,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1500), payment.AmountCents)
		require.NotNil(t, payment.Description)
		assert.Equal(t, "abono jornada 3", *payment.Description)
		f.paymentRepo.AssertExpectations(t)
	})

	t.Run("duplicate submissions both persist", func(t *testing.T) {
		f := newSettlementFixture()
		f.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Payment")).Return(nil).Twice()

		input := RegisterPaymentInput{TournamentID: 1, TeamID: 10, Matchday: 1, AmountCents: 1000}
		_, err := f.service.RegisterPayment(context.Background(), input)
		require.NoError(t, err)
		_, err = f.service.RegisterPayment(context.Background(), input)
		require.NoError(t, err)

		f.paymentRepo.AssertNumberOfCalls(t, "Create", 2)
	})
}

func TestAddManualCharge(t *testing.T) {
	t.Run("rejects non-positive amount", func(t *testing.T) {
		f := newSettlementFixture()
		_, err := f.service.AddManualCharge(context.Background(), AddManualChargeInput{
			TournamentID: 1, TeamID: 10, AmountCents: -100,
		})
		assert.ErrorIs(t, err, ErrAmountInvalid)
	})

	t.Run("rejects invalid explicit matchday", func(t *testing.T) {
		f := newSettlementFixture()
		day := 0
		_, err := f.service.AddManualCharge(context.Background(), AddManualChargeInput{
			TournamentID: 1, TeamID: 10, Matchday: &day, AmountCents: 500,
		})
		assert.ErrorIs(t, err, ErrMatchdayInvalid)
	})

	t.Run("accepts a global charge with no matchday", func(t *testing.T) {
		f := newSettlementFixture()
		f.chargeRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.ManualCharge")).Return(nil)

		charge, err := f.service.AddManualCharge(context.Background(), AddManualChargeInput{
			TournamentID: 1, TeamID: 10, AmountCents: 2000,
		})
		require.NoError(t, err)
		assert.Nil(t, charge.Matchday)
		assert.Equal(t, int64(2000), charge.AmountCents)
	})
}

func TestListManualCharges(t *testing.T) {
	f := newSettlementFixture()

	localCharges := []*models.ManualCharge{{ID: 1, TeamID: 10, AmountCents: 500}}
	visitCharges := []*models.ManualCharge{{ID: 2, TeamID: 20, AmountCents: 700}}
	f.chargeRepo.On("ListByTeamUpToMatchday", mock.Anything, 1, 10, 2).Return(localCharges, nil)
	f.chargeRepo.On("ListByTeamUpToMatchday", mock.Anything, 1, 20, 2).Return(visitCharges, nil)

	charges, err := f.service.ListManualCharges(context.Background(), 1, 10, 20, 2)
	require.NoError(t, err)

	require.Len(t, charges, 2)
	assert.Equal(t, 10, charges[0].TeamID)
	assert.Equal(t, 20, charges[1].TeamID)
}
