package organization

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitmo-inc/fitmo/internal/domain/plan"
)

func orgPlan(t *testing.T, id uint, includedSeats int) *plan.Plan {
	t.Helper()
	p, err := plan.ReconstructPlan(
		id, fmt.Sprintf("plan_org%d", id), plan.KeyClub, "Club", "",
		50000, 500000,
		true, includedSeats, 5000,
		10, 14,
		true, true,
		nil,
		time.Now(), time.Now(),
	)
	require.NoError(t, err)
	return p
}

func testOrg(t *testing.T) *Organization {
	t.Helper()
	org, err := NewOrganization(1, "Atlas Gym", "owner@atlasgym.ma")
	require.NoError(t, err)
	require.NoError(t, org.SetID(1))
	return org
}

func TestNewOrganization_Validation(t *testing.T) {
	_, err := NewOrganization(0, "Atlas Gym", "owner@atlasgym.ma")
	assert.Error(t, err)

	_, err = NewOrganization(1, "", "owner@atlasgym.ma")
	assert.Error(t, err)

	_, err = NewOrganization(1, "Atlas Gym", "")
	assert.Error(t, err)
}

func TestOrganization_OccupySeat_FullCapacity(t *testing.T) {
	org := testOrg(t)
	p := orgPlan(t, 11, 10)
	require.NoError(t, org.AttachPlanWithTrial(p, time.Now().UTC()))

	for i := 0; i < 10; i++ {
		require.NoError(t, org.OccupySeat(p))
	}
	assert.Equal(t, 10, org.SeatsUsed())
	assert.Equal(t, 0, org.AvailableSeats(p))

	err := org.OccupySeat(p)
	require.ErrorIs(t, err, ErrNoSeatsAvailable)
	assert.Contains(t, err.Error(), "10/10 seats used")
	assert.Equal(t, 10, org.SeatsUsed())
}

func TestOrganization_OccupySeat_WithoutPlan(t *testing.T) {
	org := testOrg(t)

	err := org.OccupySeat(nil)
	assert.ErrorIs(t, err, ErrNoSeatsAvailable)
}

func TestOrganization_ExtraSeatsExtendCapacity(t *testing.T) {
	org := testOrg(t)
	p := orgPlan(t, 11, 2)
	require.NoError(t, org.AttachPlanWithTrial(p, time.Now().UTC()))

	require.NoError(t, org.OccupySeat(p))
	require.NoError(t, org.OccupySeat(p))
	assert.ErrorIs(t, org.OccupySeat(p), ErrNoSeatsAvailable)

	require.NoError(t, org.AddExtraSeats(3))
	assert.Equal(t, 5, org.TotalSeats(p))
	require.NoError(t, org.OccupySeat(p))
	assert.Equal(t, 3, org.SeatsUsed())
}

func TestOrganization_AddExtraSeats_Invalid(t *testing.T) {
	org := testOrg(t)

	assert.ErrorIs(t, org.AddExtraSeats(0), ErrInvalidSeatCount)
	assert.ErrorIs(t, org.AddExtraSeats(-5), ErrInvalidSeatCount)
}

func TestOrganization_ReleaseSeat(t *testing.T) {
	org := testOrg(t)
	p := orgPlan(t, 11, 2)
	require.NoError(t, org.AttachPlanWithTrial(p, time.Now().UTC()))
	require.NoError(t, org.OccupySeat(p))

	org.ReleaseSeat()
	assert.Equal(t, 0, org.SeatsUsed())

	org.ReleaseSeat()
	assert.Equal(t, 0, org.SeatsUsed())
}

func TestOrganization_ChangePlan(t *testing.T) {
	org := testOrg(t)
	oldPlan := orgPlan(t, 11, 10)
	require.NoError(t, org.AttachPlanWithTrial(oldPlan, time.Now().UTC()))
	require.NoError(t, org.AddExtraSeats(5))

	for i := 0; i < 4; i++ {
		require.NoError(t, org.OccupySeat(oldPlan))
	}

	newPlan := orgPlan(t, 12, 20)
	require.NoError(t, org.ChangePlan(newPlan))

	assert.Equal(t, uint(12), *org.PlanID())
	// Purchased overage is plan-specific and resets on change.
	assert.Equal(t, 0, org.ExtraSeatsPurchased())
	assert.Equal(t, 4, org.SeatsUsed())
}

func TestOrganization_ChangePlan_InsufficientSeats(t *testing.T) {
	org := testOrg(t)
	oldPlan := orgPlan(t, 11, 10)
	require.NoError(t, org.AttachPlanWithTrial(oldPlan, time.Now().UTC()))

	for i := 0; i < 6; i++ {
		require.NoError(t, org.OccupySeat(oldPlan))
	}

	smallPlan := orgPlan(t, 12, 5)
	err := org.ChangePlan(smallPlan)
	require.ErrorIs(t, err, ErrInsufficientSeats)
	assert.Equal(t, uint(11), *org.PlanID())
}

func TestOrganization_ChangePlan_SamePlan(t *testing.T) {
	org := testOrg(t)
	p := orgPlan(t, 11, 10)
	require.NoError(t, org.AttachPlanWithTrial(p, time.Now().UTC()))

	assert.ErrorIs(t, org.ChangePlan(p), ErrAlreadyOnPlan)
}

func TestOrganization_ChangePlan_NonOrgPlan(t *testing.T) {
	org := testOrg(t)
	require.NoError(t, org.AttachPlanWithTrial(orgPlan(t, 11, 10), time.Now().UTC()))

	trainerPlan, err := plan.ReconstructPlan(
		13, "plan_basic", plan.KeyBasic, "Basic", "",
		10000, 100000,
		false, 0, 0,
		20, 14,
		true, true,
		nil,
		time.Now(), time.Now(),
	)
	require.NoError(t, err)

	assert.ErrorIs(t, org.ChangePlan(trainerPlan), plan.ErrNotOrgPlan)
}

func TestOrganization_AttachPlanWithTrial(t *testing.T) {
	org := testOrg(t)
	p := orgPlan(t, 11, 10)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, org.AttachPlanWithTrial(p, now))

	assert.True(t, org.IsTrial())
	require.NotNil(t, org.TrialEnd())
	assert.Equal(t, now.Add(14*24*time.Hour), *org.TrialEnd())
}

func TestOrganization_RenewUntil_ConvertsTrialToPaid(t *testing.T) {
	org := testOrg(t)
	require.NoError(t, org.AttachPlanWithTrial(orgPlan(t, 11, 10), time.Now().UTC()))

	end := time.Now().UTC().Add(30 * 24 * time.Hour)
	org.RenewUntil(end)

	assert.False(t, org.IsTrial())
	assert.True(t, org.IsActive())
	require.NotNil(t, org.SubscriptionEnd())
	assert.Equal(t, end, *org.SubscriptionEnd())
}
