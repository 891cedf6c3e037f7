package rules

import (
	"fmt"
	"regexp"

	"github.com/ignite/outreach-planner/internal/domain"
)

// Risk log annotations written by the invariant procedures.
const (
	NoteVulnerableProtection  = "VULNERABLE CUSTOMER PROTECTION: all sales and promotional content removed"
	noteRegulatoryCompliance  = "REGULATORY COMPLIANCE: durable medium requirement met via %s"
	neutralSupportMessage     = "We're here to help with your banking needs. Contact us for support."
	promotionalDisclaimerNote = "PROMOTIONAL: standard terms and conditions apply to all offers"
)

// promoPattern matches the fixed promotional vocabulary the generator and
// the promotional embellishment use. Asset text matching it is stripped by
// the protection procedure.
var promoPattern = regexp.MustCompile(`(?i)\b(exclusive|offer|upgrade|premium)\b`)

// enforceVulnerableProtection removes all sales content from a plan. It is
// unconditional, idempotent and cannot be skipped by any other rule: the
// upsell decision is forced off, any asset text matching the promotional
// pattern is replaced with a neutral support message, and a protection
// annotation is prepended to the risk log.
//
// Returns the new plan and whether anything actually changed.
func enforceVulnerableProtection(plan domain.CommunicationPlan) (domain.CommunicationPlan, bool) {
	out := plan.Clone()
	mutated := false

	if out.Upsell.Included || out.Upsell.Product != "" || out.Upsell.Message != "" {
		mutated = true
	}
	out.Upsell = domain.UpsellDecision{
		Included:  false,
		Reasoning: "Removed for vulnerable customer protection",
	}

	for ch, text := range out.Assets {
		if promoPattern.MatchString(text) {
			out.Assets[ch] = neutralSupportMessage
			mutated = true
		}
	}

	before := len(out.RiskLog)
	out.PrependRisk(NoteVulnerableProtection)
	if len(out.RiskLog) != before {
		mutated = true
	}

	return out, mutated
}

// enforceRegulatoryCompliance guarantees a regulatory plan carries at least
// one durable medium appropriate to the customer segment. The check is a
// membership test over the category's durable channel set, so the procedure
// is naturally idempotent: when a durable step already exists it is a no-op,
// otherwise the segment's preferred durable channel is inserted at position
// one with a compliance annotation.
func enforceRegulatoryCompliance(plan domain.CommunicationPlan, category domain.CustomerCategory) (domain.CommunicationPlan, bool) {
	for _, step := range plan.Steps {
		if category.IsDurable(step.Channel) {
			return plan, false
		}
	}

	out := plan.Clone()
	preferred := category.PreferredDurable()
	out.InsertStep(0, domain.ChannelStep{
		Channel:        preferred,
		When:           domain.TimingImmediate,
		Purpose:        fmt.Sprintf("Regulatory compliance via durable medium (%s)", preferred),
		Rationale:      fmt.Sprintf("Regulatory requirement met via %s", preferred),
		ComplianceNote: fmt.Sprintf("Durable medium requirement satisfied via %s", preferred),
	})
	out.PrependRisk(fmt.Sprintf(noteRegulatoryCompliance, preferred))

	if preferred != domain.ChannelLetter {
		out.LogRisk("COST OPTIMIZATION: email used as durable medium for digitally-capable customer")
	}

	return out, true
}
