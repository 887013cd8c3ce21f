package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Key
		wantErr bool
	}{
		{"basic", "basic", KeyBasic, false},
		{"premium", "premium", KeyPremium, false},
		{"club", "club", KeyClub, false},
		{"gold club", "gold_club", KeyGoldClub, false},
		{"unknown key", "platinum", "", true},
		{"empty", "", "", true},
		{"case sensitive", "Basic", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownPlan)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewPlan_Validation(t *testing.T) {
	tests := []struct {
		name           string
		key            Key
		planName       string
		priceMonthly   int64
		priceAnnual    int64
		commissionRate int
		trialDays      int
		wantErr        bool
	}{
		{"valid", KeyBasic, "Basic", 10000, 100000, 20, 14, false},
		{"zero trial", KeyPremium, "Premium", 20000, 200000, 10, 0, false},
		{"unknown key", Key("platinum"), "Platinum", 10000, 100000, 20, 0, true},
		{"empty name", KeyBasic, "", 10000, 100000, 20, 0, true},
		{"negative monthly price", KeyBasic, "Basic", -1, 100000, 20, 0, true},
		{"negative annual price", KeyBasic, "Basic", 10000, -1, 20, 0, true},
		{"rate above 100", KeyBasic, "Basic", 10000, 100000, 101, 0, true},
		{"negative rate", KeyBasic, "Basic", 10000, 100000, -1, 0, true},
		{"negative trial days", KeyBasic, "Basic", 10000, 100000, 20, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPlan(tt.key, tt.planName, "", tt.priceMonthly, tt.priceAnnual, tt.commissionRate, tt.trialDays)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, p.Key())
			assert.True(t, p.IsActive())
			assert.Equal(t, tt.trialDays > 0, p.IsTrialAvailable())
		})
	}
}

func TestPlan_MarkAsOrgPlan(t *testing.T) {
	p, err := NewPlan(KeyClub, "Club", "", 50000, 500000, 10, 14)
	require.NoError(t, err)

	require.NoError(t, p.MarkAsOrgPlan(10, 5000))
	assert.True(t, p.IsOrgPlan())
	assert.Equal(t, 10, p.IncludedSeats())
	assert.Equal(t, int64(5000), p.OveragePricePerSeat())
}

func TestPlan_MarkAsOrgPlan_Invalid(t *testing.T) {
	p, err := NewPlan(KeyClub, "Club", "", 50000, 500000, 10, 14)
	require.NoError(t, err)

	assert.Error(t, p.MarkAsOrgPlan(0, 5000))
	assert.Error(t, p.MarkAsOrgPlan(10, -1))
	assert.False(t, p.IsOrgPlan())
}

func TestPlan_Deactivate(t *testing.T) {
	p, err := NewPlan(KeyBasic, "Basic", "", 10000, 100000, 20, 14)
	require.NoError(t, err)

	p.Deactivate()
	assert.False(t, p.IsActive())
}
