package organization

import (
	"fmt"
	"strings"
	"time"
)

// InviteValidity is how long an invitation token stays valid.
const InviteValidity = 7 * 24 * time.Hour

// Invitation is a time-limited token letting a trainer join an organization.
// Invitations are unique per (organization, email); re-inviting the same
// email rotates the token and resets acceptance.
type Invitation struct {
	id             uint
	sid            string
	organizationID uint
	email          string
	token          string
	invitedByID    uint
	accepted       bool
	acceptedByID   *uint
	acceptedAt     *time.Time
	expiresAt      time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

// NewInvitation creates an invitation expiring at now+InviteValidity.
func NewInvitation(organizationID uint, email, token string, invitedByID uint, now time.Time) (*Invitation, error) {
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}
	if email == "" {
		return nil, fmt.Errorf("invitation email is required")
	}
	if token == "" {
		return nil, fmt.Errorf("invitation token is required")
	}

	return &Invitation{
		organizationID: organizationID,
		email:          strings.ToLower(email),
		token:          token,
		invitedByID:    invitedByID,
		expiresAt:      now.Add(InviteValidity),
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructInvitation reconstructs an invitation from persistence.
func ReconstructInvitation(
	id uint,
	sid string,
	organizationID uint,
	email, token string,
	invitedByID uint,
	accepted bool,
	acceptedByID *uint,
	acceptedAt *time.Time,
	expiresAt, createdAt, updatedAt time.Time,
) (*Invitation, error) {
	if id == 0 {
		return nil, fmt.Errorf("invitation ID cannot be zero")
	}
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}

	return &Invitation{
		id:             id,
		sid:            sid,
		organizationID: organizationID,
		email:          strings.ToLower(email),
		token:          token,
		invitedByID:    invitedByID,
		accepted:       accepted,
		acceptedByID:   acceptedByID,
		acceptedAt:     acceptedAt,
		expiresAt:      expiresAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (i *Invitation) ID() uint             { return i.id }
func (i *Invitation) SID() string          { return i.sid }
func (i *Invitation) OrganizationID() uint { return i.organizationID }
func (i *Invitation) Email() string        { return i.email }
func (i *Invitation) Token() string        { return i.token }
func (i *Invitation) InvitedByID() uint    { return i.invitedByID }
func (i *Invitation) Accepted() bool       { return i.accepted }
func (i *Invitation) AcceptedByID() *uint  { return i.acceptedByID }
func (i *Invitation) AcceptedAt() *time.Time { return i.acceptedAt }
func (i *Invitation) ExpiresAt() time.Time { return i.expiresAt }
func (i *Invitation) CreatedAt() time.Time { return i.createdAt }
func (i *Invitation) UpdatedAt() time.Time { return i.updatedAt }

// SetID sets the invitation ID (only for persistence layer use)
func (i *Invitation) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("invitation ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("invitation ID cannot be zero")
	}
	i.id = id
	return nil
}

// SetSID sets the short ID (only for persistence layer use)
func (i *Invitation) SetSID(sid string) {
	if i.sid == "" {
		i.sid = sid
	}
}

// IsValid reports whether the invitation can still be accepted at now.
func (i *Invitation) IsValid(now time.Time) bool {
	return !i.accepted && now.Before(i.expiresAt)
}

// Renew rotates the token and extends expiry, resetting acceptance. This is
// the upsert path when the same email is re-invited: the previous token is
// silently revoked.
func (i *Invitation) Renew(token string, invitedByID uint, now time.Time) error {
	if token == "" {
		return fmt.Errorf("invitation token is required")
	}
	i.token = token
	i.invitedByID = invitedByID
	i.accepted = false
	i.acceptedByID = nil
	i.acceptedAt = nil
	i.expiresAt = now.Add(InviteValidity)
	i.updatedAt = now
	return nil
}

// Accept validates and consumes the invitation for the given trainer.
func (i *Invitation) Accept(trainerID uint, trainerEmail string, now time.Time) error {
	if !i.IsValid(now) {
		return ErrInvitationNotValid
	}
	if !strings.EqualFold(i.email, trainerEmail) {
		return ErrEmailMismatch
	}

	i.accepted = true
	i.acceptedByID = &trainerID
	i.acceptedAt = &now
	i.updatedAt = now
	return nil
}
