package commission

import (
	"fmt"
	"strconv"

	"github.com/thekada/kada-backend/pkg/logger"
)

// Plan identifies a franchise subscription tier.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanBasic   Plan = "basic"
	PlanPremium Plan = "premium"
	PlanElite   Plan = "elite"

	// PlanStandard is the UI alias for basic; both resolve identically.
	PlanStandard Plan = "standard"
)

// Settings is the admin-configured key/value override map, as returned by
// the business-settings store. Values are raw strings and may not parse.
type Settings map[string]string

// SettlementPlatformChargeKey is the per-order platform fee (₹) applied
// during weekly settlement. Absent or unparsable means 0.
const SettlementPlatformChargeKey = "payout_platform_charge"

// WeeklySettlementPolicy resolves the revenue-share percentage used by the
// admin-side weekly payout run. Defaults can be overridden per plan through
// business settings (`pricing_<plan>_share`).
//
// This table is intentionally separate from LiveEstimatePolicy: the two are
// distinct business policies (weekly settlement vs. franchise-facing live
// estimate) and must not be merged without a product decision.
type WeeklySettlementPolicy struct{}

// settlement share defaults, percent of reported revenue
var settlementShareDefaults = map[Plan]int{
	PlanFree:     60,
	PlanBasic:    60,
	PlanStandard: 60,
	PlanPremium:  70,
	PlanElite:    80,
}

const settlementFallbackShare = 60 // unrecognized plans settle like basic

// ResolveShare returns the effective share percentage for a plan, applying
// any `pricing_<plan>_share` override. A malformed override never blocks a
// payout run: it falls back to the default and logs a warning so the
// misconfiguration is discoverable.
func (WeeklySettlementPolicy) ResolveShare(plan Plan, overrides Settings) int {
	share, ok := settlementShareDefaults[plan]
	if !ok {
		share = settlementFallbackShare
	}

	key := fmt.Sprintf("pricing_%s_share", plan)
	raw, present := overrides[key]
	if !present {
		return share
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("Ignoring unparsable share override setting", map[string]interface{}{
			"key":     key,
			"value":   raw,
			"default": share,
		})
		return share
	}
	return parsed
}

// PlatformCharge returns the per-order fee (₹) deducted at settlement time.
// Absent or malformed settings default to 0, again with a warning on
// malformed input.
func (WeeklySettlementPolicy) PlatformCharge(overrides Settings) int {
	raw, present := overrides[SettlementPlatformChargeKey]
	if !present {
		return 0
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("Ignoring unparsable platform charge setting", map[string]interface{}{
			"key":   SettlementPlatformChargeKey,
			"value": raw,
		})
		return 0
	}
	return parsed
}

// LiveEstimatePolicy is the franchise-facing commission table used by the
// live stats dashboard. It is a fixed policy with no admin overrides.
type LiveEstimatePolicy struct{}

var liveEstimateShares = map[Plan]int{
	PlanFree:     30,
	PlanStandard: 40,
	PlanBasic:    40,
	PlanPremium:  50,
	PlanElite:    70,
}

const (
	// LivePlatformCharge is the fixed per-delivered-order fee (₹) shown in
	// franchise-facing revenue estimates.
	LivePlatformCharge = 7

	// LiveAdminCommissionRate is the assumed platform commission rate that
	// feeds per-order admin_commission values.
	LiveAdminCommissionRate = 0.10
)

// ResolveShare returns the fraction (percent) of accumulated admin
// commission the franchise keeps in the live estimate. Unknown plans
// estimate like free.
func (LiveEstimatePolicy) ResolveShare(plan Plan) int {
	if share, ok := liveEstimateShares[plan]; ok {
		return share
	}
	return liveEstimateShares[PlanFree]
}
