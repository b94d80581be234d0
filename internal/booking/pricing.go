package booking

import "math/rand"

// PricingPolicy quotes the dollar amounts attached to booking operations.
type PricingPolicy interface {
	RefundAmount() int
	ChangeFee() int
	UpgradeCost() int
}

// StandardPricing quotes a flat change fee and randomized refund and upgrade
// amounts within the fare-class bands.
type StandardPricing struct{}

func (StandardPricing) RefundAmount() int { return 200 + rand.Intn(301) }
func (StandardPricing) ChangeFee() int    { return 75 }
func (StandardPricing) UpgradeCost() int  { return 50 + rand.Intn(101) }

// FixedPricing quotes constant amounts, used in tests.
type FixedPricing struct {
	Refund  int
	Fee     int
	Upgrade int
}

func (p FixedPricing) RefundAmount() int { return p.Refund }
func (p FixedPricing) ChangeFee() int    { return p.Fee }
func (p FixedPricing) UpgradeCost() int  { return p.Upgrade }
