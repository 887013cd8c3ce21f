package booking

import "errors"

var (
	// ErrBookingNotFound indicates the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrBookingNotCompleted indicates commission can only be applied to
	// completed bookings.
	ErrBookingNotCompleted = errors.New("booking is not completed")

	// ErrCommissionAlreadyApplied indicates the booking already carries a
	// commission split.
	ErrCommissionAlreadyApplied = errors.New("commission already applied to booking")
)
