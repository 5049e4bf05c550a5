package commission

// NetPayout computes the franchise's net weekly payout:
//
//	gross = revenue * sharePercent / 100
//	fees  = orders * feePerOrder
//	net   = max(0, gross - fees)
//
// Amounts are decimal rupees; no rounding happens here, display rounding is
// a presentation concern. sharePercent is not clamped: out-of-range values
// propagate arithmetically. Callers must not pass negative inputs.
func NetPayout(revenue float64, orders int, sharePercent int, feePerOrder float64) float64 {
	gross := revenue * float64(sharePercent) / 100
	fees := float64(orders) * feePerOrder

	net := gross - fees
	if net < 0 {
		return 0
	}
	return net
}

// Breakdown carries every intermediate figure of a payout computation so
// the admin preview can show exactly what will be persisted.
type Breakdown struct {
	SharePercent     int     `json:"share_percentage"`
	GrossShare       float64 `json:"gross_share"`
	FeePerOrder      float64 `json:"platform_fee_per_order"`
	TotalFeeDeducted float64 `json:"total_fee_deducted"`
	NetPayout        float64 `json:"net_payout"`
}

// Compute resolves the settlement share and platform charge for a plan and
// returns the full payout breakdown for the given admin-entered figures.
func Compute(plan Plan, overrides Settings, revenue float64, orders int) Breakdown {
	policy := WeeklySettlementPolicy{}
	share := policy.ResolveShare(plan, overrides)
	fee := float64(policy.PlatformCharge(overrides))

	return Breakdown{
		SharePercent:     share,
		GrossShare:       revenue * float64(share) / 100,
		FeePerOrder:      fee,
		TotalFeeDeducted: float64(orders) * fee,
		NetPayout:        NetPayout(revenue, orders, share, fee),
	}
}
