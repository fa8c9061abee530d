package handlers

import (
	"net/http"

	"github.com/ligafc/league-admin/services"
)

type SettlementHandler struct {
	settlementService services.SettlementService
}

func NewSettlementHandler(ss services.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: ss}
}

// settlementQuery extracts the four parameters every settlement read needs:
// tournament_id, local_team_id, visit_team_id and matchday.
func settlementQuery(r *http.Request) (tournamentID, localTeamID, visitTeamID, matchday int, err error) {
	if tournamentID, err = getIntQuery(r, "tournament_id"); err != nil {
		return
	}
	if localTeamID, err = getIntQuery(r, "local_team_id"); err != nil {
		return
	}
	if visitTeamID, err = getIntQuery(r, "visit_team_id"); err != nil {
		return
	}
	matchday, err = getIntQuery(r, "matchday")
	return
}

// GetBalances serves the condensed per-team balances shown on the match list.
func (h *SettlementHandler) GetBalances(w http.ResponseWriter, r *http.Request) {
	tournamentID, localTeamID, visitTeamID, matchday, err := settlementQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	balances, err := h.settlementService.TeamBalances(r.Context(), tournamentID, localTeamID, visitTeamID, matchday)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, balances, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBreakdown serves the full settlement panel: card counts, tariff prices,
// manual charges, payments and the resulting saldo for both teams.
func (h *SettlementHandler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	tournamentID, localTeamID, visitTeamID, matchday, err := settlementQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	settlement, err := h.settlementService.DetailedBreakdown(r.Context(), tournamentID, localTeamID, visitTeamID, matchday)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, settlement, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SettlementHandler) RegisterPayment(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterPaymentInput
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	payment, err := h.settlementService.RegisterPayment(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"payment": payment,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SettlementHandler) AddManualCharge(w http.ResponseWriter, r *http.Request) {
	var input services.AddManualChargeInput
	err := readJSON(w, r, &input)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	charge, err := h.settlementService.AddManualCharge(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"charge": charge,
	}

	err = writeJSON(w, http.StatusCreated, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SettlementHandler) ListManualCharges(w http.ResponseWriter, r *http.Request) {
	tournamentID, localTeamID, visitTeamID, matchday, err := settlementQuery(r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	charges, err := h.settlementService.ListManualCharges(r.Context(), tournamentID, localTeamID, visitTeamID, matchday)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"charges": charges,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
