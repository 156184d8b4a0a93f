package model

import "errors"

// Common errors used across the application. All are recoverable by the
// caller: they surface as a rejection to the offending connection and never
// mutate match state.
var (
	ErrMatchNotFound         = errors.New("match not found")
	ErrMatchFull             = errors.New("match is full")
	ErrAlreadyInMatch        = errors.New("connection is already in a match")
	ErrMatchFinished         = errors.New("match is finished")
	ErrUnknownParticipant    = errors.New("connection is not a participant in this match")
	ErrInvalidWord           = errors.New("word is not an accepted five-letter word")
	ErrSecretAlreadySet      = errors.New("secret has already been set")
	ErrNotYourTurn           = errors.New("not this participant's turn")
	ErrOpponentSecretMissing = errors.New("opponent has not set a secret")

	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
	ErrLengthMismatch      = errors.New("guess and secret lengths differ")
)
