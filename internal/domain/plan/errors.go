package plan

import "errors"

var (
	ErrUnknownPlan   = errors.New("subscription plan does not exist")
	ErrPlanInactive  = errors.New("subscription plan inactive")
	ErrKeyExists     = errors.New("plan key already exists")
	ErrNotOrgPlan    = errors.New("plan is not an organization plan")
	ErrNotTrainerPlan = errors.New("plan is not a trainer plan")
)
