package subscription

import "errors"

var (
	ErrSubscriptionNotFound       = errors.New("trainer subscription not found")
	ErrAlreadySubscribed          = errors.New("trainer already has a subscription")
	ErrNoSubscription             = errors.New("trainer has no subscription")
	ErrAlreadyOnPlan              = errors.New("already on this plan")
	ErrTrialNotAvailable          = errors.New("plan does not offer a trial")
	ErrTrialAlreadyUsed           = errors.New("free trial already used")
	ErrAlreadyInOrganization      = errors.New("trainer already linked to this organization")
	ErrAlreadyInOtherOrganization = errors.New("trainer is already linked to another organization")
)
