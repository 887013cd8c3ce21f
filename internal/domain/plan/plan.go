package plan

import (
	"fmt"
	"time"
)

// Currency is the only billing currency supported. All amounts are stored
// in minor units (centimes).
const Currency = "MAD"

// Key identifies a subscription plan. Plans are looked up by key, never
// duplicated.
type Key string

const (
	KeyBasic    Key = "basic"
	KeyPremium  Key = "premium"
	KeyClub     Key = "club"
	KeyGoldClub Key = "gold_club"
)

var validKeys = map[Key]bool{
	KeyBasic:    true,
	KeyPremium:  true,
	KeyClub:     true,
	KeyGoldClub: true,
}

// ParseKey validates a plan key string.
func ParseKey(s string) (Key, error) {
	k := Key(s)
	if !validKeys[k] {
		return "", fmt.Errorf("%w: %s", ErrUnknownPlan, s)
	}
	return k, nil
}

// Plan is the subscription plan aggregate. Prices are in minor currency
// units (MAD centimes); commissionRate is an integer percent in [0, 100].
type Plan struct {
	id                  uint
	sid                 string
	key                 Key
	name                string
	description         string
	priceMonthly        int64
	priceAnnual         int64
	isOrgPlan           bool
	includedSeats       int
	overagePricePerSeat int64
	commissionRate      int
	trialDays           int
	isTrialAvailable    bool
	isActive            bool
	features            []string
	createdAt           time.Time
	updatedAt           time.Time
}

// NewPlan creates a new plan definition.
func NewPlan(key Key, name, description string, priceMonthly, priceAnnual int64, commissionRate, trialDays int) (*Plan, error) {
	if !validKeys[key] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlan, key)
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if priceMonthly < 0 || priceAnnual < 0 {
		return nil, fmt.Errorf("plan price cannot be negative")
	}
	if commissionRate < 0 || commissionRate > 100 {
		return nil, fmt.Errorf("commission rate must be between 0 and 100")
	}
	if trialDays < 0 {
		return nil, fmt.Errorf("trial days cannot be negative")
	}

	now := time.Now().UTC()
	return &Plan{
		key:              key,
		name:             name,
		description:      description,
		priceMonthly:     priceMonthly,
		priceAnnual:      priceAnnual,
		commissionRate:   commissionRate,
		trialDays:        trialDays,
		isTrialAvailable: trialDays > 0,
		isActive:         true,
		features:         []string{},
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// ReconstructPlan reconstructs a plan from persistence.
func ReconstructPlan(
	sqlID uint,
	sid string,
	key Key,
	name, description string,
	priceMonthly, priceAnnual int64,
	isOrgPlan bool,
	includedSeats int,
	overagePricePerSeat int64,
	commissionRate, trialDays int,
	isTrialAvailable, isActive bool,
	features []string,
	createdAt, updatedAt time.Time,
) (*Plan, error) {
	if sqlID == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if !validKeys[key] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlan, key)
	}
	if features == nil {
		features = []string{}
	}

	return &Plan{
		id:                  sqlID,
		sid:                 sid,
		key:                 key,
		name:                name,
		description:         description,
		priceMonthly:        priceMonthly,
		priceAnnual:         priceAnnual,
		isOrgPlan:           isOrgPlan,
		includedSeats:       includedSeats,
		overagePricePerSeat: overagePricePerSeat,
		commissionRate:      commissionRate,
		trialDays:           trialDays,
		isTrialAvailable:    isTrialAvailable,
		isActive:            isActive,
		features:            features,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}, nil
}

func (p *Plan) ID() uint                   { return p.id }
func (p *Plan) SID() string                { return p.sid }
func (p *Plan) Key() Key                   { return p.key }
func (p *Plan) Name() string               { return p.name }
func (p *Plan) Description() string        { return p.description }
func (p *Plan) PriceMonthly() int64        { return p.priceMonthly }
func (p *Plan) PriceAnnual() int64         { return p.priceAnnual }
func (p *Plan) IsOrgPlan() bool            { return p.isOrgPlan }
func (p *Plan) IncludedSeats() int         { return p.includedSeats }
func (p *Plan) OveragePricePerSeat() int64 { return p.overagePricePerSeat }
func (p *Plan) CommissionRate() int        { return p.commissionRate }
func (p *Plan) TrialDays() int             { return p.trialDays }
func (p *Plan) IsTrialAvailable() bool     { return p.isTrialAvailable }
func (p *Plan) IsActive() bool             { return p.isActive }
func (p *Plan) Features() []string         { return p.features }
func (p *Plan) CreatedAt() time.Time       { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time       { return p.updatedAt }

// SetID sets the plan ID (only for persistence layer use).
func (p *Plan) SetID(sqlID uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if sqlID == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = sqlID
	return nil
}

// SetSID sets the plan short ID (only for persistence layer use).
func (p *Plan) SetSID(sid string) {
	if p.sid == "" {
		p.sid = sid
	}
}

// MarkAsOrgPlan converts the plan into an organization plan with seat
// allowances.
func (p *Plan) MarkAsOrgPlan(includedSeats int, overagePricePerSeat int64) error {
	if includedSeats <= 0 {
		return fmt.Errorf("organization plan must include at least one seat")
	}
	if overagePricePerSeat < 0 {
		return fmt.Errorf("overage price cannot be negative")
	}
	p.isOrgPlan = true
	p.includedSeats = includedSeats
	p.overagePricePerSeat = overagePricePerSeat
	p.updatedAt = time.Now().UTC()
	return nil
}

// SetFeatures replaces the marketing feature list.
func (p *Plan) SetFeatures(features []string) {
	if features == nil {
		features = []string{}
	}
	p.features = features
	p.updatedAt = time.Now().UTC()
}

// Deactivate hides the plan from new subscribers. Existing subscriptions are
// untouched.
func (p *Plan) Deactivate() {
	p.isActive = false
	p.updatedAt = time.Now().UTC()
}
