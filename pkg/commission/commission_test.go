package commission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeeklySettlementPolicy_ResolveShare_Defaults(t *testing.T) {
	policy := WeeklySettlementPolicy{}

	tests := []struct {
		name string
		plan Plan
		want int
	}{
		{"Basic plan", PlanBasic, 60},
		{"Standard alias", PlanStandard, 60},
		{"Premium plan", PlanPremium, 70},
		{"Elite plan", PlanElite, 80},
		{"Free plan settles like basic", PlanFree, 60},
		{"Unrecognized plan settles like basic", Plan("gold"), 60},
		{"Empty plan settles like basic", Plan(""), 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.ResolveShare(tt.plan, Settings{}))
		})
	}
}

func TestWeeklySettlementPolicy_ResolveShare_Overrides(t *testing.T) {
	policy := WeeklySettlementPolicy{}

	t.Run("Valid override replaces default", func(t *testing.T) {
		overrides := Settings{"pricing_elite_share": "85"}
		assert.Equal(t, 85, policy.ResolveShare(PlanElite, overrides))
	})

	t.Run("Override only applies to its own plan", func(t *testing.T) {
		overrides := Settings{"pricing_elite_share": "85"}
		assert.Equal(t, 70, policy.ResolveShare(PlanPremium, overrides))
	})

	t.Run("Unparsable override falls back to default", func(t *testing.T) {
		overrides := Settings{"pricing_premium_share": "seventy"}
		assert.Equal(t, 70, policy.ResolveShare(PlanPremium, overrides))
	})

	t.Run("Nil settings use defaults", func(t *testing.T) {
		assert.Equal(t, 80, policy.ResolveShare(PlanElite, nil))
	})
}

func TestWeeklySettlementPolicy_PlatformCharge(t *testing.T) {
	policy := WeeklySettlementPolicy{}

	tests := []struct {
		name      string
		overrides Settings
		want      int
	}{
		{"Absent defaults to zero", Settings{}, 0},
		{"Configured charge", Settings{SettlementPlatformChargeKey: "7"}, 7},
		{"Unparsable defaults to zero", Settings{SettlementPlatformChargeKey: "₹7"}, 0},
		{"Nil settings", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.PlatformCharge(tt.overrides))
		})
	}
}

func TestLiveEstimatePolicy_ResolveShare(t *testing.T) {
	policy := LiveEstimatePolicy{}

	assert.Equal(t, 30, policy.ResolveShare(PlanFree))
	assert.Equal(t, 40, policy.ResolveShare(PlanStandard))
	assert.Equal(t, 50, policy.ResolveShare(PlanPremium))
	assert.Equal(t, 70, policy.ResolveShare(PlanElite))
	assert.Equal(t, 30, policy.ResolveShare(Plan("unknown")), "unknown plans estimate like free")
}

func TestNetPayout(t *testing.T) {
	tests := []struct {
		name    string
		revenue float64
		orders  int
		share   int
		fee     float64
		want    float64
	}{
		{"Premium weekly run", 10000, 50, 70, 7, 6650},
		{"Zero revenue", 0, 50, 70, 7, 0},
		{"Zero orders skips fee deduction", 10000, 0, 70, 7, 7000},
		{"Fees exceed gross share clamps to zero", 100, 100, 60, 7, 0},
		{"Full share no fees", 5000, 0, 100, 0, 5000},
		{"Zero share", 5000, 10, 0, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NetPayout(tt.revenue, tt.orders, tt.share, tt.fee))
		})
	}
}

// Property coverage: the floor invariant and monotonicity over a grid of
// representative inputs.
func TestNetPayout_Properties(t *testing.T) {
	revenues := []float64{0, 1, 99.5, 100, 2500, 10000, 123456.78}
	orderCounts := []int{0, 1, 7, 50, 500}
	shares := []int{0, 1, 30, 60, 70, 80, 100}
	fees := []float64{0, 1, 7, 12.5}

	t.Run("Never negative", func(t *testing.T) {
		for _, rev := range revenues {
			for _, orders := range orderCounts {
				for _, share := range shares {
					for _, fee := range fees {
						assert.GreaterOrEqual(t, NetPayout(rev, orders, share, fee), 0.0)
					}
				}
			}
		}
	})

	t.Run("Zero orders equals gross share", func(t *testing.T) {
		for _, rev := range revenues {
			for _, share := range shares {
				for _, fee := range fees {
					assert.Equal(t, rev*float64(share)/100, NetPayout(rev, 0, share, fee))
				}
			}
		}
	})

	t.Run("Monotonic in revenue", func(t *testing.T) {
		for _, orders := range orderCounts {
			for _, share := range shares {
				for _, fee := range fees {
					prev := NetPayout(revenues[0], orders, share, fee)
					for _, rev := range revenues[1:] {
						next := NetPayout(rev, orders, share, fee)
						assert.GreaterOrEqual(t, next, prev)
						prev = next
					}
				}
			}
		}
	})

	t.Run("Antitonic in orders", func(t *testing.T) {
		for _, rev := range revenues {
			for _, share := range shares {
				for _, fee := range fees {
					prev := NetPayout(rev, orderCounts[0], share, fee)
					for _, orders := range orderCounts[1:] {
						next := NetPayout(rev, orders, share, fee)
						assert.LessOrEqual(t, next, prev)
						prev = next
					}
				}
			}
		}
	})
}

func TestCompute(t *testing.T) {
	t.Run("Premium with configured platform charge", func(t *testing.T) {
		overrides := Settings{SettlementPlatformChargeKey: "7"}
		b := Compute(PlanPremium, overrides, 10000, 50)

		assert.Equal(t, 70, b.SharePercent)
		assert.Equal(t, 7000.0, b.GrossShare)
		assert.Equal(t, 7.0, b.FeePerOrder)
		assert.Equal(t, 350.0, b.TotalFeeDeducted)
		assert.Equal(t, 6650.0, b.NetPayout)
	})

	t.Run("No settings at all", func(t *testing.T) {
		b := Compute(PlanElite, nil, 1000, 20)

		assert.Equal(t, 80, b.SharePercent)
		assert.Equal(t, 0.0, b.TotalFeeDeducted)
		assert.Equal(t, 800.0, b.NetPayout)
	})
}
