package ws

import (
	"errors"

	"wordduel/internal/model"
)

// Reject codes surfaced to clients
const (
	CodeInvalidWord           = "INVALID_WORD"
	CodeNotYourTurn           = "NOT_YOUR_TURN"
	CodeUnknownParticipant    = "UNKNOWN_PARTICIPANT"
	CodeMatchFull             = "MATCH_FULL"
	CodeMatchNotFound         = "MATCH_NOT_FOUND"
	CodeOpponentSecretMissing = "OPPONENT_SECRET_MISSING"
	CodeSecretAlreadySet      = "SECRET_ALREADY_SET"
	CodeMatchFinished         = "MATCH_FINISHED"
	CodeAlreadyInMatch        = "ALREADY_IN_MATCH"
	CodeInvalidMessage        = "INVALID_MESSAGE"
	CodeInternalError         = "INTERNAL_ERROR"
)

// rejectionFor converts a model error into the rejection payload sent to
// the offending connection. Unrecognized errors collapse to an internal
// error so nothing leaks to the client.
func rejectionFor(err error) RejectedPayload {
	switch {
	case errors.Is(err, model.ErrInvalidWord):
		return RejectedPayload{CodeInvalidWord, "Not an accepted five-letter word"}
	case errors.Is(err, model.ErrNotYourTurn):
		return RejectedPayload{CodeNotYourTurn, "It's not your turn"}
	case errors.Is(err, model.ErrUnknownParticipant):
		return RejectedPayload{CodeUnknownParticipant, "You are not part of this match"}
	case errors.Is(err, model.ErrMatchFull):
		return RejectedPayload{CodeMatchFull, "Match already has two players"}
	case errors.Is(err, model.ErrMatchNotFound):
		return RejectedPayload{CodeMatchNotFound, "Match not found"}
	case errors.Is(err, model.ErrOpponentSecretMissing):
		return RejectedPayload{CodeOpponentSecretMissing, "Your opponent has not set a secret yet"}
	case errors.Is(err, model.ErrSecretAlreadySet):
		return RejectedPayload{CodeSecretAlreadySet, "Your secret is already set"}
	case errors.Is(err, model.ErrMatchFinished):
		return RejectedPayload{CodeMatchFinished, "The match is over"}
	case errors.Is(err, model.ErrAlreadyInMatch):
		return RejectedPayload{CodeAlreadyInMatch, "You are already in a match"}
	default:
		return RejectedPayload{CodeInternalError, "Internal server error"}
	}
}
