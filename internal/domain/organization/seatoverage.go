package organization

import (
	"fmt"
	"time"
)

// OverageValidity is how long a purchased seat block stays valid.
const OverageValidity = 30 * 24 * time.Hour

// SeatOverage is a purchased block of extra seats for an organization.
// Prices are in minor currency units.
type SeatOverage struct {
	id             uint
	sid            string
	organizationID uint
	seatsPurchased int
	pricePerSeat   int64
	totalPrice     int64
	startDate      time.Time
	endDate        time.Time
	isActive       bool
	createdAt      time.Time
}

// NewSeatOverage records the purchase of seatsPurchased overage seats at
// pricePerSeat, valid for OverageValidity from now.
func NewSeatOverage(organizationID uint, seatsPurchased int, pricePerSeat int64, now time.Time) (*SeatOverage, error) {
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}
	if seatsPurchased <= 0 {
		return nil, ErrInvalidSeatCount
	}
	if pricePerSeat < 0 {
		return nil, fmt.Errorf("price per seat cannot be negative")
	}

	return &SeatOverage{
		organizationID: organizationID,
		seatsPurchased: seatsPurchased,
		pricePerSeat:   pricePerSeat,
		totalPrice:     int64(seatsPurchased) * pricePerSeat,
		startDate:      now,
		endDate:        now.Add(OverageValidity),
		isActive:       true,
		createdAt:      now,
	}, nil
}

// ReconstructSeatOverage reconstructs a seat overage from persistence.
func ReconstructSeatOverage(
	id uint,
	sid string,
	organizationID uint,
	seatsPurchased int,
	pricePerSeat, totalPrice int64,
	startDate, endDate time.Time,
	isActive bool,
	createdAt time.Time,
) (*SeatOverage, error) {
	if id == 0 {
		return nil, fmt.Errorf("seat overage ID cannot be zero")
	}

	return &SeatOverage{
		id:             id,
		sid:            sid,
		organizationID: organizationID,
		seatsPurchased: seatsPurchased,
		pricePerSeat:   pricePerSeat,
		totalPrice:     totalPrice,
		startDate:      startDate,
		endDate:        endDate,
		isActive:       isActive,
		createdAt:      createdAt,
	}, nil
}

func (so *SeatOverage) ID() uint             { return so.id }
func (so *SeatOverage) SID() string          { return so.sid }
func (so *SeatOverage) OrganizationID() uint { return so.organizationID }
func (so *SeatOverage) SeatsPurchased() int  { return so.seatsPurchased }
func (so *SeatOverage) PricePerSeat() int64  { return so.pricePerSeat }
func (so *SeatOverage) TotalPrice() int64    { return so.totalPrice }
func (so *SeatOverage) StartDate() time.Time { return so.startDate }
func (so *SeatOverage) EndDate() time.Time   { return so.endDate }
func (so *SeatOverage) IsActive() bool       { return so.isActive }
func (so *SeatOverage) CreatedAt() time.Time { return so.createdAt }

// SetID sets the overage ID (only for persistence layer use)
func (so *SeatOverage) SetID(id uint) error {
	if so.id != 0 {
		return fmt.Errorf("seat overage ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("seat overage ID cannot be zero")
	}
	so.id = id
	return nil
}

// SetSID sets the short ID (only for persistence layer use)
func (so *SeatOverage) SetSID(sid string) {
	if so.sid == "" {
		so.sid = sid
	}
}
