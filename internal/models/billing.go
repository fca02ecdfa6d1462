package models

import "fmt"

// Billing is a monetary charge against a patient. The base amount and the
// discount are fixed at creation; only the paid flag changes afterwards.
type Billing struct {
	ID          int     `json:"id"`
	Description string  `json:"description,omitempty"`
	BaseAmount  float64 `json:"base_amount"`
	DiscountPct float64 `json:"discount_pct"`
	Paid        bool    `json:"paid"`
}

// FinalAmount returns the insurance-adjusted amount due.
func (b *Billing) FinalAmount() float64 {
	return b.BaseAmount * (1 - b.DiscountPct/100)
}

// Validate checks that the billing record is valid.
func (b *Billing) Validate() error {
	if b.ID < 1 {
		return fmt.Errorf("bill id must be positive")
	}
	if b.BaseAmount < 0 {
		return fmt.Errorf("base_amount must be non-negative")
	}
	if b.DiscountPct < 0 || b.DiscountPct > 100 {
		return fmt.Errorf("discount_pct must be between 0 and 100")
	}
	return nil
}
