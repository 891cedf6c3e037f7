// Package rules turns a (customer category, letter classification) pair into
// a communication plan and then runs the fixed three-phase rule pipeline
// over it: category rules, classification rules, and the final invariants
// that protect vulnerable customers and regulatory delivery.
package rules

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/ignite/outreach-planner/internal/domain"
)

// Build creates the initial channel timeline for a category/classification
// pair from the template rules. Classification-mandatory channels go first,
// then category default channels up to the tighter of the two channel
// budgets. Nothing is ever removed at this stage; if the mandatory channels
// alone fill the budget the default channels are simply skipped.
func Build(category domain.CustomerCategory, classification domain.MessageClassification) domain.CommunicationPlan {
	strategy := category.Strategy()
	classRules := classification.Rules()

	plan := domain.CommunicationPlan{
		ID:             uuid.NewString(),
		Category:       category,
		Classification: classification,
		Assets:         make(map[domain.Channel]string),
	}

	for _, ch := range classRules.MandatoryChannels {
		plan.Steps = append(plan.Steps, domain.ChannelStep{
			Channel:   ch,
			When:      domain.TimingImmediate,
			Purpose:   fmt.Sprintf("Mandatory %s communication", classification),
			Rationale: fmt.Sprintf("Required for %s compliance", classification),
		})
	}

	budget := classRules.MaxChannels
	if strategy.MaxChannels < budget {
		budget = strategy.MaxChannels
	}

	for _, ch := range strategy.DefaultChannels {
		if len(plan.Steps) >= budget {
			break
		}
		if plan.HasChannel(ch) {
			continue
		}
		plan.Steps = append(plan.Steps, domain.ChannelStep{
			Channel:   ch,
			When:      ch.DefaultTiming(),
			Purpose:   channelPurpose(ch, classification),
			Rationale: channelRationale(ch, category),
		})
	}

	plan.Renumber()
	return plan
}

func channelPurpose(ch domain.Channel, classification domain.MessageClassification) string {
	switch ch {
	case domain.ChannelInApp:
		return fmt.Sprintf("%s notification for digital-first experience", classification)
	case domain.ChannelEmail:
		return fmt.Sprintf("%s communication with full details", classification)
	case domain.ChannelSMS:
		return fmt.Sprintf("Quick %s alert and summary", classification)
	case domain.ChannelLetter:
		return fmt.Sprintf("Formal %s documentation", classification)
	case domain.ChannelPhone:
		return fmt.Sprintf("Personal support call for %s matter", classification)
	case domain.ChannelVoiceNote:
		return fmt.Sprintf("Audio version for convenient %s access", classification)
	case domain.ChannelBraille:
		return fmt.Sprintf("Accessible %s format", classification)
	case domain.ChannelAudio:
		return fmt.Sprintf("Audio %s communication", classification)
	default:
		return fmt.Sprintf("%s communication", classification)
	}
}

func channelRationale(ch domain.Channel, category domain.CustomerCategory) string {
	switch ch {
	case domain.ChannelInApp:
		return fmt.Sprintf("%s customers prefer app-based communication", category)
	case domain.ChannelEmail:
		return fmt.Sprintf("Suitable for %s customers with digital capability", category)
	case domain.ChannelSMS:
		return fmt.Sprintf("Quick reach for %s customers", category)
	case domain.ChannelLetter:
		return fmt.Sprintf("Preferred method for %s customers", category)
	case domain.ChannelPhone:
		return fmt.Sprintf("%s customers benefit from personal contact", category)
	case domain.ChannelVoiceNote:
		return fmt.Sprintf("Audio convenience for %s customers", category)
	case domain.ChannelBraille:
		return fmt.Sprintf("Accessibility requirement for %s customers", category)
	case domain.ChannelAudio:
		return fmt.Sprintf("Alternative format for %s customers", category)
	default:
		return fmt.Sprintf("Appropriate for %s customers", category)
	}
}

// DecideUpsell gates sales content at build time: never for regulatory
// letters, never for vulnerable customers, otherwise from the categorizer's
// eligibility flag. The final invariants re-enforce the vulnerable case even
// if a caller sets the decision by hand.
func DecideUpsell(profile domain.CustomerProfile, classification domain.MessageClassification) domain.UpsellDecision {
	if classification == domain.ClassificationRegulatory {
		return domain.UpsellDecision{Reasoning: "No upsell on regulatory communications"}
	}
	if profile.Category == domain.CategoryVulnerable {
		return domain.UpsellDecision{Reasoning: "No upsell for vulnerable customers"}
	}
	if !profile.UpsellEligible {
		return domain.UpsellDecision{Reasoning: "Customer not eligible for upsell"}
	}

	product := "Premium Account"
	message := "Consider our Premium Account for additional benefits"
	if profile.Category == domain.CategoryDigitalFirst || profile.Category == domain.CategoryAssistedDigital {
		product = "Premium Digital Banking"
		message = "Upgrade to Premium Digital Banking for enhanced features"
	}
	if len(profile.UpsellProducts) > 0 {
		product = profile.UpsellProducts[0]
	}
	return domain.UpsellDecision{
		Included:  true,
		Product:   product,
		Message:   message,
		Reasoning: "Customer profile suggests suitability for " + product,
	}
}
