package domain

// CustomerProfile is the upstream categorizer's output for one customer.
// The planner treats Category as opaque and UpsellEligible as a gate; the
// financial indicators are carried through for audit only.
type CustomerProfile struct {
	CustomerID          string             `json:"customer_id"`
	Name                string             `json:"name,omitempty"`
	Category            CustomerCategory   `json:"category"`
	UpsellEligible      bool               `json:"upsell_eligible"`
	UpsellProducts      []string           `json:"upsell_products,omitempty"`
	FinancialIndicators map[string]float64 `json:"financial_indicators,omitempty"`
}
