package store

import "errors"

// ErrNotFound is returned when a row doesn't exist, is soft-deleted, or is
// owned by a different caller. The three cases are indistinguishable on
// purpose: the owner filter excludes foreign rows at the statement level.
var ErrNotFound = errors.New("row not found")

// ErrInvalidTransition is returned when a campaign status transition is not
// allowed from the row's current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrAlreadyApproved is returned when approving a campaign that has already
// been approved. The approved flag is settable once.
var ErrAlreadyApproved = errors.New("campaign already approved")
