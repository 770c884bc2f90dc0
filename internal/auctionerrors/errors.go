package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrNoBids          = errors.New("no bids found for listing")
)

// Business logic errors
var (
	ErrValidation    = errors.New("invalid input")
	ErrBidTooLow     = errors.New("bid amount too low")
	ErrListingClosed = errors.New("listing is closed")
	ErrNotOwner      = errors.New("caller does not own the listing")
	ErrUsernameTaken = errors.New("username already taken")
	ErrBadCreds      = errors.New("invalid username or password")
)
