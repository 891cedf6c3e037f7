package rules

import (
	"github.com/ignite/outreach-planner/internal/domain"
)

// Rule names recorded in the risk log when a final invariant actually
// changed the plan.
const (
	ruleVulnerableOverride = "rule:vulnerable_protection_override"
	ruleRegulatoryOverride = "rule:regulatory_compliance_override"
)

// Compose runs the fixed three-phase rule pipeline over a plan and returns
// the composed plan. The phase order is category rules, then classification
// rules, then the final invariants; it is never reconfigurable per call and
// the final invariants can never be skipped. Each phase works on a copy and
// renumbers on exit, so the input plan is left untouched.
//
// The classification used for dispatch is the plan's own: the promotional
// rule may downgrade a vulnerable customer's plan to information, and later
// consumers (optimizer, evaluator) must see the downgraded classification.
func Compose(plan domain.CommunicationPlan, profile domain.CustomerProfile) domain.CommunicationPlan {
	out := plan

	// Phase A: exactly one category rule.
	if rule, ok := categoryRules[out.Category]; ok {
		out = rule(out)
	}

	// Phase B: exactly one classification rule.
	if rule, ok := messageRules[out.Classification]; ok {
		out = rule(out)
	}

	// Phase C: final invariants, fixed order, unconditional. Both
	// procedures are idempotent, so re-running them after Phase B already
	// invoked them is safe.
	if out.Category == domain.CategoryVulnerable {
		protected, mutated := enforceVulnerableProtection(out)
		out = protected
		if mutated {
			out.LogRisk(ruleVulnerableOverride)
		}
	}
	if out.Classification == domain.ClassificationRegulatory {
		compliant, mutated := enforceRegulatoryCompliance(out, out.Category)
		out = compliant
		if mutated {
			out.LogRisk(ruleRegulatoryOverride)
		}
	}

	out.Renumber()
	return out
}
