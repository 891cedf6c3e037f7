package costing

import (
	"fmt"

	"github.com/ignite/outreach-planner/internal/domain"
)

// PlanCost is the priced summary of one communication plan.
type PlanCost struct {
	PlanID           string                                    `json:"plan_id"`
	TotalCost        float64                                   `json:"total_cost"`
	TotalCarbonGrams float64                                   `json:"total_carbon_g"`
	PerChannel       map[domain.Channel]ChannelCostCalculation `json:"per_channel"`
	Scenario         string                                    `json:"scenario_used"`
}

// ChannelUsage is how often a channel appears across a batch and what it
// cost in total.
type ChannelUsage struct {
	Volume    int     `json:"volume"`
	TotalCost float64 `json:"total_cost"`
}

// BaselineCost is the uniform-letter comparison: every customer in the
// batch gets exactly one letter, priced at the batch's true volume so the
// bulk discount applies.
type BaselineCost struct {
	Description      string  `json:"description"`
	TotalCost        float64 `json:"total_cost"`
	TotalCarbonGrams float64 `json:"total_carbon_g"`
	CostPerCustomer  float64 `json:"cost_per_customer"`
}

// Savings compares baseline against the optimized plans, absolute and as a
// percentage (0 when the baseline is 0).
type Savings struct {
	Cost          float64 `json:"cost_savings"`
	CostPercent   float64 `json:"cost_savings_percentage"`
	CarbonGrams   float64 `json:"carbon_savings_g"`
	CarbonPercent float64 `json:"carbon_savings_percentage"`
}

// BatchCost aggregates plan costs over a batch of customers.
type BatchCost struct {
	Customers        int                             `json:"total_customers"`
	TotalCost        float64                         `json:"total_cost"`
	TotalCarbonGrams float64                         `json:"total_carbon_g"`
	CostPerCustomer  float64                         `json:"cost_per_customer"`
	ChannelUsage     map[domain.Channel]ChannelUsage `json:"channel_usage"`
	Baseline         BaselineCost                    `json:"baseline"`
	Savings          Savings                         `json:"savings"`
	Scenario         string                          `json:"scenario_used"`
}

// EvaluatePlan prices a plan: each step is costed individually at volume 1
// (repeat channels count every time), with braille and audio mapped onto
// their production-cost equivalents and phone steps carrying no unit cost.
// Evaluation is read-only; the plan is never modified.
func EvaluatePlan(plan domain.CommunicationPlan, scenario CostScenario) (PlanCost, error) {
	out := PlanCost{
		PlanID:     plan.ID,
		PerChannel: make(map[domain.Channel]ChannelCostCalculation),
		Scenario:   scenario.Name,
	}

	for _, step := range plan.Steps {
		priced, ok := CostChannel(step.Channel)
		if !ok {
			continue
		}
		calc, err := Cost(priced, 1, scenario)
		if err != nil {
			return PlanCost{}, fmt.Errorf("evaluate plan %s: %w", plan.ID, err)
		}
		out.TotalCost += calc.TotalCost
		out.TotalCarbonGrams += calc.TotalCarbonGrams

		// Breakdown keyed by the timeline channel, not the priced one, so
		// braille and audio stay visible in reports.
		agg := out.PerChannel[step.Channel]
		agg.Channel = step.Channel
		agg.Volume += 1
		agg.UnitCost = calc.UnitCost
		agg.DiscountApplied = calc.DiscountApplied
		agg.DiscountedUnitCost = calc.DiscountedUnitCost
		agg.TotalCost += calc.TotalCost
		agg.TotalCarbonGrams += calc.TotalCarbonGrams
		out.PerChannel[step.Channel] = agg
	}

	return out, nil
}

// EvaluateBatch aggregates already-evaluated plan costs and compares them to
// the uniform-letter baseline. The baseline is deliberately priced at the
// batch's true volume while the optimized side prices each customer at
// volume 1: the baseline models one bulk mailing, the optimized side models
// per-customer sends that never reach a discount tier on their own.
// An empty batch returns a zero-valued aggregate.
func EvaluateBatch(planCosts []PlanCost, scenario CostScenario) (BatchCost, error) {
	out := BatchCost{
		Customers:    len(planCosts),
		ChannelUsage: make(map[domain.Channel]ChannelUsage),
		Scenario:     scenario.Name,
	}
	if len(planCosts) == 0 {
		return out, nil
	}

	for _, pc := range planCosts {
		out.TotalCost += pc.TotalCost
		out.TotalCarbonGrams += pc.TotalCarbonGrams
		for ch, calc := range pc.PerChannel {
			u := out.ChannelUsage[ch]
			u.Volume += calc.Volume
			u.TotalCost += calc.TotalCost
			out.ChannelUsage[ch] = u
		}
	}
	out.CostPerCustomer = out.TotalCost / float64(out.Customers)

	baseline, err := Cost(domain.ChannelLetter, len(planCosts), scenario)
	if err != nil {
		return BatchCost{}, fmt.Errorf("evaluate batch baseline: %w", err)
	}
	out.Baseline = BaselineCost{
		Description:      "Everyone gets a letter",
		TotalCost:        baseline.TotalCost,
		TotalCarbonGrams: baseline.TotalCarbonGrams,
		CostPerCustomer:  baseline.TotalCost / float64(out.Customers),
	}

	out.Savings = Savings{
		Cost:        out.Baseline.TotalCost - out.TotalCost,
		CarbonGrams: out.Baseline.TotalCarbonGrams - out.TotalCarbonGrams,
	}
	if out.Baseline.TotalCost > 0 {
		out.Savings.CostPercent = out.Savings.Cost / out.Baseline.TotalCost * 100
	}
	if out.Baseline.TotalCarbonGrams > 0 {
		out.Savings.CarbonPercent = out.Savings.CarbonGrams / out.Baseline.TotalCarbonGrams * 100
	}

	return out, nil
}
