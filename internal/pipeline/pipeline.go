// Package pipeline wires the planner stages together: validate input, build
// the initial timeline, compose the rule phases, trim to the channel budget,
// and price the result. One plan per (customer, letter) pair, flowing
// strictly forward and never mutated after evaluation.
package pipeline

import (
	"context"
	"fmt"

	"github.com/ignite/outreach-planner/internal/costing"
	"github.com/ignite/outreach-planner/internal/domain"
	"github.com/ignite/outreach-planner/internal/optimizer"
	"github.com/ignite/outreach-planner/internal/rules"
)

// Engine runs the planning pipeline. All stages are pure transformations;
// the only collaborator consulted is the content generator, and only before
// rule composition so composed plans are final.
type Engine struct {
	scenarios *costing.Registry
	content   ContentGenerator
	workers   int
}

// PlanResult pairs a finalized plan with its priced summary.
type PlanResult struct {
	CustomerID   string                   `json:"customer_id"`
	CustomerName string                   `json:"customer_name,omitempty"`
	Plan         domain.CommunicationPlan `json:"plan"`
	Cost         costing.PlanCost         `json:"cost_breakdown"`
}

// NewEngine creates a planning engine. workers bounds batch parallelism;
// values below 1 fall back to a sensible default.
func NewEngine(scenarios *costing.Registry, content ContentGenerator, workers int) *Engine {
	if workers < 1 {
		workers = defaultWorkers
	}
	return &Engine{scenarios: scenarios, content: content, workers: workers}
}

// validate rejects malformed input before any pipeline stage runs. No
// partial repair is attempted.
func validate(profile domain.CustomerProfile, letter domain.LetterClassification) error {
	if profile.CustomerID == "" {
		return fmt.Errorf("%w: missing customer id", domain.ErrInvalidInput)
	}
	if !profile.Category.Valid() {
		return fmt.Errorf("%w: missing or unknown customer category %q", domain.ErrInvalidInput, profile.Category)
	}
	if !letter.Classification.Valid() {
		return fmt.Errorf("%w: missing or unknown classification %q", domain.ErrInvalidInput, letter.Classification)
	}
	return nil
}

// Plan runs the full pipeline for one customer with the given scenario
// snapshot. The snapshot is held for the whole call, so a concurrent
// scenario switch never affects an in-flight plan.
func (e *Engine) Plan(ctx context.Context, profile domain.CustomerProfile,
	letter domain.LetterClassification, scenario costing.CostScenario) (PlanResult, error) {

	if err := validate(profile, letter); err != nil {
		return PlanResult{}, err
	}

	plan := rules.Build(profile.Category, letter.Classification)
	plan.CustomerID = profile.CustomerID
	plan.Upsell = rules.DecideUpsell(profile, letter.Classification)

	if e.content != nil {
		assets, err := e.content.Generate(ctx, plan.Channels(), profile, letter.Classification)
		if err != nil {
			return PlanResult{}, fmt.Errorf("generate content for %s: %w", profile.CustomerID, err)
		}
		for ch, text := range assets {
			plan.Assets[ch] = text
		}
	}

	plan = rules.Compose(plan, profile)

	// The composer may have downgraded the classification (vulnerable
	// promotional block); the optimizer budget follows the plan, not the
	// original letter.
	plan = optimizer.Optimize(plan, plan.Classification, plan.Category)

	cost, err := costing.EvaluatePlan(plan, scenario)
	if err != nil {
		return PlanResult{}, err
	}

	return PlanResult{
		CustomerID:   profile.CustomerID,
		CustomerName: profile.Name,
		Plan:         plan,
		Cost:         cost,
	}, nil
}
