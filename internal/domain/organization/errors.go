package organization

import (
	"errors"
	"fmt"
)

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrDuplicateOwner       = errors.New("user already owns an organization")
	ErrNoSeatsAvailable     = errors.New("organization has no available seats")
	ErrNotInOrganization    = errors.New("trainer not found in this organization")
	ErrInvalidSeatCount     = errors.New("must purchase at least 1 seat")
	ErrNoPlan               = errors.New("organization has no subscription plan")
	ErrAlreadyOnPlan        = errors.New("already on this plan")
	ErrInsufficientSeats    = errors.New("new plan does not include enough seats")

	ErrInvitationNotFound = errors.New("invalid invitation token")
	ErrInvitationNotValid = errors.New("invitation has expired or was already accepted")
	ErrEmailMismatch      = errors.New("invitation is for a different email address")
)

// NewNoSeatsError reports seat exhaustion including the used/total counts.
func NewNoSeatsError(used, total int) error {
	return fmt.Errorf("%w: %d/%d seats used", ErrNoSeatsAvailable, used, total)
}

// NewInsufficientSeatsError reports a plan change below current headcount.
func NewInsufficientSeatsError(included, used int) error {
	return fmt.Errorf("%w: plan includes %d seats but %d trainers are attached", ErrInsufficientSeats, included, used)
}
