package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommissionPolicy_FallsBackOnInvalidRate(t *testing.T) {
	assert.Equal(t, DefaultCommissionRate, NewCommissionPolicy(-1).DefaultRate())
	assert.Equal(t, DefaultCommissionRate, NewCommissionPolicy(101).DefaultRate())
	assert.Equal(t, 25, NewCommissionPolicy(25).DefaultRate())
}

func TestCommissionPolicy_EffectiveRate(t *testing.T) {
	policy := NewCommissionPolicy(20)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	p := noTrialPlan(t, 8) // 10 percent commission

	active, err := NewTrainerSubscription(1)
	require.NoError(t, err)
	require.NoError(t, active.StartPaid(p, now))

	expired, err := NewTrainerSubscription(2)
	require.NoError(t, err)
	require.NoError(t, expired.StartPaid(p, now.Add(-60*24*time.Hour)))

	cancelled, err := NewTrainerSubscription(3)
	require.NoError(t, err)
	require.NoError(t, cancelled.StartPaid(p, now))
	cancelled.Cancel()

	tests := []struct {
		name string
		sub  *TrainerSubscription
		want int
	}{
		{"active subscription uses plan rate", active, 10},
		{"expired subscription falls back", expired, 20},
		{"cancelled subscription falls back", cancelled, 20},
		{"nil subscription falls back", nil, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.EffectiveRate(tt.sub, p, now))
		})
	}
}

func TestCommissionPolicy_EffectiveRate_NilPlan(t *testing.T) {
	policy := NewCommissionPolicy(20)
	sub, err := NewTrainerSubscription(1)
	require.NoError(t, err)

	assert.Equal(t, 20, policy.EffectiveRate(sub, nil, time.Now()))
}
