package types

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrBadCredentials   = errors.New("invalid email or password")
	ErrListingNotFound  = errors.New("listing not found")
	ErrResponseNotFound = errors.New("response not found")
	ErrDonationNotFound = errors.New("donation not found")

	// ErrDonationProcessed covers every failed confirm/reject guard:
	// wrong id, wrong fund, or a donation already in a terminal state.
	ErrDonationProcessed = errors.New("donation not found or already processed")

	ErrInvalidAmount = errors.New("amount must be a positive number")
	ErrForbidden     = errors.New("forbidden")
)
