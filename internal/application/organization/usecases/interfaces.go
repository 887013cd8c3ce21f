package usecases

import (
	"context"
	"time"
)

// InvitationMailer delivers invitation emails. Implementations live in the
// infrastructure layer; delivery failures must not fail the invite itself.
type InvitationMailer interface {
	SendInvitation(ctx context.Context, toEmail, orgName, token string, expiresAt time.Time) error
}
