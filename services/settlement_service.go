package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ligafc/league-admin/models"
	"github.com/ligafc/league-admin/repositories"
	"golang.org/x/sync/errgroup"
)

// SettlementDetail is one team's side of a match settlement. Field names on
// the wire keep the Spanish terms the admin UI renders (amarillas, cargos,
// saldo); every amount is integer cents.
//
// Saldo is never clamped: a team that overpaid shows a negative balance and
// the UI decides how to present credit.
type SettlementDetail struct {
	TeamID            int                   `json:"team_id"`
	Yellows           int                   `json:"amarillas"`
	Reds              int                   `json:"rojas"`
	YellowPriceCents  int64                 `json:"valor_amarilla_cents"`
	RedPriceCents     int64                 `json:"valor_roja_cents"`
	YellowAmountCents int64                 `json:"importe_amarillas_cents"`
	RedAmountCents    int64                 `json:"importe_rojas_cents"`
	Charges           []models.ManualCharge `json:"cargos"`
	ChargesTotalCents int64                 `json:"suma_cargos_cents"`
	// ChargedCents = YellowAmountCents + RedAmountCents + ChargesTotalCents.
	ChargedCents       int64            `json:"importe_cents"`
	Payments           []models.Payment `json:"pagos"`
	PaymentsTotalCents int64            `json:"suma_pagos_cents"`
	// BalanceCents = ChargedCents - PaymentsTotalCents, signed.
	BalanceCents int64 `json:"saldo_cents"`
	// Partial marks a side computed with missing reference data (unknown
	// team or unconfigured tariff). The amounts degrade to zero instead of
	// failing so the settlement panel stays renderable; Partial lets callers
	// tell that zero apart from a genuinely empty ledger.
	Partial bool `json:"partial"`
}

// MatchSettlement is the full per-matchday breakdown for both teams of a
// match, cumulative over all matchdays up to and including the requested one.
type MatchSettlement struct {
	TournamentID int              `json:"tournament_id"`
	Matchday     int              `json:"matchday"`
	Local        SettlementDetail `json:"local"`
	Visit        SettlementDetail `json:"visitante"`
}

// TeamBalance is the condensed form used by the match list view.
type TeamBalance struct {
	TeamID       int   `json:"team_id"`
	BalanceCents int64 `json:"saldo_cents"`
	Partial      bool  `json:"partial"`
}

type MatchBalances struct {
	Local TeamBalance `json:"local"`
	Visit TeamBalance `json:"visitante"`
}

type RegisterPaymentInput struct {
	TournamentID int     `json:"tournament_id"`
	TeamID       int     `json:"team_id"`
	Matchday     int     `json:"matchday"`
	AmountCents  int64   `json:"amount_cents"`
	Description  *string `json:"description,omitempty"`
}

type AddManualChargeInput struct {
	TournamentID int     `json:"tournament_id"`
	TeamID       int     `json:"team_id"`
	// Matchday nil registers a global charge, applied from matchday 1 on.
	Matchday    *int    `json:"matchday,omitempty"`
	AmountCents int64   `json:"amount_cents"`
	Description *string `json:"description,omitempty"`
}

type SettlementService interface {
	TeamBalances(ctx context.Context, tournamentID, localTeamID, visitTeamID, matchday int) (*MatchBalances, error)
	DetailedBreakdown(ctx context.Context, tournamentID, localTeamID, visitTeamID, matchday int) (*MatchSettlement, error)
	RegisterPayment(ctx context.Context, input RegisterPaymentInput) (*models.Payment, error)
	AddManualCharge(ctx context.Context, input AddManualChargeInput) (*models.ManualCharge, error)
	ListManualCharges(ctx context.Context, tournamentID, localTeamID, visitTeamID, matchday int) ([]models.ManualCharge, error)
}

type settlementService struct {
	teamRepo    repositories.TeamRepository
	cardRepo    repositories.CardRepository
	chargeRepo  repositories.ChargeRepository
	paymentRepo repositories.PaymentRepository
	tariffRepo  repositories.TariffRepository
}

func NewSettlementService(
	teamRepo repositories.TeamRepository,
	cardRepo repositories.CardRepository,
	chargeRepo repositories.ChargeRepository,
	paymentRepo repositories.PaymentRepository,
	tariffRepo repositories.TariffRepository,
) SettlementService {
	return &settlementService{
		teamRepo:    teamRepo,
		cardRepo:    cardRepo,
		chargeRepo:  chargeRepo,
		paymentRepo: paymentRepo,
		tariffRepo:  tariffRepo,
	}
}

func (s *settlementService) TeamBalances(ctx context.Context, tournamentID, localTeamID, visitTeamID, matchday int) (*MatchBalances, error) {
	settlement, err := s.DetailedBreakdown(ctx, tournamentID, localTeamID, visitTeamID, matchday)
	if err != nil {
		return nil, err
	}
	return &MatchBalances{
		Local: TeamBalance{
			TeamID:       settlement.Local.TeamID,
			BalanceCents: settlement.Local.BalanceCents,
			Partial:      settlement.Local.Partial,
		},
		Visit: TeamBalance{
			TeamID:       settlement.Visit.TeamID,
			BalanceCents: settlement.Visit.BalanceCents,
			Partial:      settlement.Visit.Partial,
		},
	}, nil
}

func (s *settlementService) DetailedBreakdown(ctx context.Context, tournamentID, localTeamID, visitTeamID, matchday int) (*MatchSettlement, error) {
	if matchday < 1 {
		return nil, ErrMatchdayInvalid
	}

	settlement := &MatchSettlement{
		TournamentID: tournamentID,
		Matchday:     matchday,
	}

	// The two sides are independent sums, so compute them concurrently.
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		detail, err := s.teamDetail(gCtx, tournamentID, localTeamID, matchday)
		if err != nil {
			return fmt.Errorf("local team %d: %w", localTeamID, err)
		}
		settlement.Local = *detail
		return nil
	})
	g.Go(func() error {
		detail, err := s.teamDetail(gCtx, tournamentID, visitTeamID, matchday)
		if err != nil {
			return fmt.Errorf("visiting team %d: %w", visitTeamID, err)
		}
		settlement.Visit = *detail
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return settlement, nil
}

// teamDetail recomputes one team's cumulative settlement from the persisted
// event log. There is no cached running balance anywhere: identical inputs
// against unchanged rows always produce identical output.
func (s *settlementService) teamDetail(ctx context.Context, tournamentID, teamID, matchday int) (*SettlementDetail, error) {
	detail := &SettlementDetail{
		TeamID:   teamID,
		Charges:  []models.ManualCharge{},
		Payments: []models.Payment{},
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			// Lenient by design: an unknown team renders as a zero balance
			// flagged partial instead of breaking the settlement panel.
			detail.Partial = true
			return detail, nil
		}
		return nil, err
	}

	var (
		cards    []*models.Card
		charges  []*models.ManualCharge
		payments []*models.Payment
		tariff   *models.Tariff
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var fetchErr error
		cards, fetchErr = s.cardRepo.ListByTeamUpToMatchday(gCtx, tournamentID, teamID, matchday)
		return fetchErr
	})
	g.Go(func() error {
		var fetchErr error
		charges, fetchErr = s.chargeRepo.ListByTeamUpToMatchday(gCtx, tournamentID, teamID, matchday)
		return fetchErr
	})
	g.Go(func() error {
		var fetchErr error
		payments, fetchErr = s.paymentRepo.ListByTeamUpToMatchday(gCtx, tournamentID, teamID, matchday)
		return fetchErr
	})
	g.Go(func() error {
		found, fetchErr := s.tariffRepo.GetForCategory(gCtx, tournamentID, team.CategoryID)
		if fetchErr != nil {
			if errors.Is(fetchErr, repositories.ErrTariffNotFound) {
				// No category tariff and no tournament default: card prices
				// degrade to zero and the side is flagged partial.
				return nil
			}
			return fetchErr
		}
		tariff = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if tariff != nil {
		detail.YellowPriceCents = tariff.YellowCents
		detail.RedPriceCents = tariff.RedCents
	} else {
		detail.Partial = true
	}

	for _, card := range cards {
		switch card.Kind {
		case models.CardYellow:
			detail.Yellows++
		case models.CardRed:
			detail.Reds++
		}
	}
	detail.YellowAmountCents = int64(detail.Yellows) * detail.YellowPriceCents
	detail.RedAmountCents = int64(detail.Reds) * detail.RedPriceCents

	for _, charge := range charges {
		detail.Charges = append(detail.Charges, *charge)
		detail.ChargesTotalCents += charge.AmountCents
	}
	for _, payment := range payments {
		detail.Payments = append(detail.Payments, *payment)
		detail.PaymentsTotalCents += payment.AmountCents
	}

	detail.ChargedCents = detail.YellowAmountCents + detail.RedAmountCents + detail.ChargesTotalCents
	detail.BalanceCents = detail.ChargedCents - detail.PaymentsTotalCents
	return detail, nil
}

func (s *settlementService) RegisterPayment(ctx context.Context, input RegisterPaymentInput) (*models.Payment, error) {
	if input.Matchday < 1 {
		return nil, ErrMatchdayInvalid
	}
	if input.AmountCents <= 0 {
		return nil, ErrAmountInvalid
	}

	payment := &models.Payment{
		TournamentID: input.TournamentID,
		TeamID:       input.TeamID,
		Matchday:     input.Matchday,
		AmountCents:  input.AmountCents,
		Description:  trimDescription(input.Description),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, repositories.ErrPaymentTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to register payment: %w", err)
	}
	return payment, nil
}

func (s *settlementService) AddManualCharge(ctx context.Context, input AddManualChargeInput) (*models.ManualCharge, error) {
	if input.Matchday != nil && *input.Matchday < 1 {
		return nil, ErrMatchdayInvalid
	}
	if input.AmountCents <= 0 {
		return nil, ErrAmountInvalid
	}

	charge := &models.ManualCharge{
		TournamentID: input.TournamentID,
		TeamID:       input.TeamID,
		Matchday:     input.Matchday,
		AmountCents:  input.AmountCents,
		Description:  trimDescription(input.Description),
	}

	if err := s.chargeRepo.Create(ctx, charge); err != nil {
		if errors.Is(err, repositories.ErrChargeTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to add manual charge: %w", err)
	}
	return charge, nil
}

func (s *settlementService) ListManualCharges(ctx context.Context, tournamentID, localTeamID, visitTeamID, matchday int) ([]models.ManualCharge, error) {
	if matchday < 1 {
		return nil, ErrMatchdayInvalid
	}

	charges := make([]models.ManualCharge, 0)
	for _, teamID := range []int{localTeamID, visitTeamID} {
		teamCharges, err := s.chargeRepo.ListByTeamUpToMatchday(ctx, tournamentID, teamID, matchday)
		if err != nil {
			return nil, err
		}
		for _, charge := range teamCharges {
			charges = append(charges, *charge)
		}
	}
	return charges, nil
}

func trimDescription(description *string) *string {
	if description == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*description)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
