package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business-rule errors
	ErrValidationFailed       = errors.New("validation failed")
	ErrPasswordTooShort       = errors.New("password is too short")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrTeamNameRequired       = errors.New("team name is required")
	ErrPlayerNameRequired     = errors.New("player first and last name are required")
	ErrMatchdayInvalid        = errors.New("matchday must be a positive integer")
	ErrMatchdayOutOfRange     = errors.New("matchday exceeds the tournament matchday count")
	ErrAmountInvalid          = errors.New("amount must be a positive number of cents")
	ErrMatchTeamsEqual        = errors.New("local and visiting team must differ")
	ErrMatchNotOpenForEvents  = errors.New("match is not open for recording events")
	ErrMatchAlreadyClosed     = errors.New("match is already closed")
	ErrTeamNotInMatch         = errors.New("team does not play in this match")
	ErrTeamTournamentMismatch = errors.New("team does not belong to this tournament")
	ErrSignerNameRequired     = errors.New("signer name is required")

	// Conflicts
	ErrUserEmailConflict      = errors.New("email address is already in use")
	ErrTeamNameConflict       = errors.New("team name is already in use")
	ErrTournamentNameConflict = errors.New("tournament name already exists for this season")
	ErrShirtNumberConflict    = errors.New("shirt number is already taken in this team")
	ErrCallUpConflict         = errors.New("player is already called up for this match")
	ErrSignatureConflict      = errors.New("signature for this role is already recorded")

	// Authentication / authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Entity-specific not-found errors (more context than plain ErrNotFound)
	ErrUserNotFound       = errors.New("user not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrCardNotFound       = errors.New("card not found")
	ErrCallUpNotFound     = errors.New("call-up not found")

	// Tournament lifecycle
	ErrTournamentInvalidStatus           = errors.New("invalid tournament status provided")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")
	ErrTournamentInvalidMatchdayCount    = errors.New("tournament matchday count must be positive")
)
