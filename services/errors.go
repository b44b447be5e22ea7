package services

import "errors"

var (
	// ErrNotOnboarded: the operation needs a profile and there is none.
	ErrNotOnboarded = errors.New("profile not onboarded")
	// ErrAlreadyOnboarded: CreateProfile on an install that has a profile.
	ErrAlreadyOnboarded = errors.New("profile already exists")
	// ErrValidation: malformed input, nothing was changed.
	ErrValidation = errors.New("validation failed")
	// ErrInsufficientCoins: a paid flow could not cover its cost.
	ErrInsufficientCoins = errors.New("insufficient coins")
	// ErrTournamentNotFound: unknown tournament id.
	ErrTournamentNotFound = errors.New("tournament not found")
	// ErrIO: the blob store failed to read or write.
	ErrIO = errors.New("storage I/O failed")
)
