package rules

import (
	"strings"

	"github.com/ignite/outreach-planner/internal/domain"
)

// classificationRule mutates a plan for one message type. Exactly one rule
// fires per composition, dispatched by the plan's classification.
type classificationRule func(domain.CommunicationPlan) domain.CommunicationPlan

var messageRules = map[domain.MessageClassification]classificationRule{
	domain.ClassificationRegulatory:  applyRegulatory,
	domain.ClassificationPromotional: applyPromotional,
	domain.ClassificationInformation: applyInformation,
}

// applyRegulatory guarantees a durable medium via the shared compliance
// procedure and enforces formal tone on the text assets.
func applyRegulatory(plan domain.CommunicationPlan) domain.CommunicationPlan {
	out, mutated := enforceRegulatoryCompliance(plan, plan.Category)
	if !mutated {
		out = plan.Clone()
	}
	out = ensureFormalTone(out)
	out.Renumber()
	return out
}

// ensureFormalTone prefixes the written assets with a formal notice marker.
// The prefix check keeps repeated application from stacking markers.
func ensureFormalTone(plan domain.CommunicationPlan) domain.CommunicationPlan {
	for _, ch := range []domain.Channel{domain.ChannelEmail, domain.ChannelLetter, domain.ChannelInApp} {
		if text, ok := plan.Assets[ch]; ok && !strings.HasPrefix(text, "Important notice:") {
			plan.Assets[ch] = "Important notice: " + text
		}
	}
	if sms, ok := plan.Assets[domain.ChannelSMS]; ok && !strings.HasPrefix(sms, "IMPORTANT:") {
		sms = "IMPORTANT: " + sms
		if len(sms) > 160 {
			sms = sms[:160]
		}
		plan.Assets[domain.ChannelSMS] = sms
	}
	return plan
}

// applyPromotional blocks sales content outright for vulnerable customers,
// reclassifying the message as information; for everyone else it embellishes
// the plan with the upsell material when one is included and records the
// standard promotional disclaimer.
func applyPromotional(plan domain.CommunicationPlan) domain.CommunicationPlan {
	if plan.Category == domain.CategoryVulnerable {
		out, _ := enforceVulnerableProtection(plan)
		out.Classification = domain.ClassificationInformation
		out.LogRisk("Promotional content blocked for vulnerable customer; reclassified as information")
		out.Renumber()
		return out
	}

	out := plan.Clone()

	if out.Upsell.Included && out.Upsell.Message != "" {
		for _, ch := range []domain.Channel{domain.ChannelEmail, domain.ChannelInApp} {
			text, ok := out.Assets[ch]
			if !ok || strings.Contains(text, "Exclusive offer:") {
				continue
			}
			out.Assets[ch] = text + "\n\nExclusive offer: " + out.Upsell.Message
		}
	}

	out.LogRisk(promotionalDisclaimerNote)
	out.Renumber()
	return out
}

// applyInformation optimizes for clarity: long SMS copy is replaced with a
// short pointer, in-app presence is guaranteed, and accessibility customers
// also get an audio step.
func applyInformation(plan domain.CommunicationPlan) domain.CommunicationPlan {
	out := plan.Clone()

	if sms, ok := out.Assets[domain.ChannelSMS]; ok && len(sms) > 140 {
		out.Assets[domain.ChannelSMS] = "Account update available. Check app or call us for details."
	}

	if !out.HasChannel(domain.ChannelInApp) {
		out.AppendStep(domain.ChannelStep{
			Channel:   domain.ChannelInApp,
			When:      domain.TimingImmediate,
			Purpose:   "Clear in-app notification",
			Rationale: "Convenient access to information",
		})
	}

	if out.Category == domain.CategoryAccessibility && !out.HasChannel(domain.ChannelAudio) {
		out.AppendStep(domain.ChannelStep{
			Channel:   domain.ChannelAudio,
			When:      domain.TimingImmediate,
			Purpose:   "Audio format for accessibility",
			Rationale: "Ensuring information is accessible to all customers",
		})
	}

	out.Renumber()
	return out
}
