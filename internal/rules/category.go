package rules

import (
	"strings"

	"github.com/ignite/outreach-planner/internal/domain"
)

// categoryRule mutates a plan for one customer segment. Exactly one rule
// fires per composition, dispatched by category; every insert is guarded
// by a presence check so rules are idempotent.
type categoryRule func(domain.CommunicationPlan) domain.CommunicationPlan

var categoryRules = map[domain.CustomerCategory]categoryRule{
	domain.CategoryDigitalFirst:    applyDigitalFirst,
	domain.CategoryAssistedDigital: applyAssistedDigital,
	domain.CategoryLowDigital:      applyLowDigital,
	domain.CategoryAccessibility:   applyAccessibility,
	domain.CategoryVulnerable:      applyVulnerable,
}

// applyDigitalFirst drops phone contact, makes in-app the lead channel and
// adds a voice note for convenience.
func applyDigitalFirst(plan domain.CommunicationPlan) domain.CommunicationPlan {
	out := plan.Clone()

	out.RemoveChannel(domain.ChannelPhone)
	delete(out.Assets, domain.ChannelPhone)

	if !out.HasChannel(domain.ChannelInApp) {
		out.InsertStep(0, domain.ChannelStep{
			Channel:   domain.ChannelInApp,
			When:      domain.TimingImmediate,
			Purpose:   "Primary notification for digital-first customer",
			Rationale: "Digital-first customers prefer app notifications",
		})
	}

	if !out.HasChannel(domain.ChannelVoiceNote) {
		out.AppendStep(domain.ChannelStep{
			Channel:   domain.ChannelVoiceNote,
			When:      domain.TimingImmediate,
			Purpose:   "Audio version for multitasking convenience",
			Rationale: "Digital users often multitask and appreciate audio options",
		})
	}

	// Voice note narrates the in-app text when no script was generated.
	if _, ok := out.Assets[domain.ChannelVoiceNote]; !ok {
		if text, ok := out.Assets[domain.ChannelInApp]; ok {
			out.Assets[domain.ChannelVoiceNote] = text
		}
	}

	out.Renumber()
	return out
}

// applyAssistedDigital offers a coaching call to help with digital adoption.
func applyAssistedDigital(plan domain.CommunicationPlan) domain.CommunicationPlan {
	out := plan.Clone()

	if !hasPurposeMarker(out, "coaching") {
		out.AppendStep(domain.ChannelStep{
			Channel:   domain.ChannelPhone,
			When:      domain.TimingPlusThreeDay,
			Purpose:   "Optional coaching call for digital banking setup",
			Rationale: "Assisted-digital customers benefit from guided digital onboarding",
		})
	}

	if _, ok := out.Assets[domain.ChannelPhone]; !ok {
		out.Assets[domain.ChannelPhone] = "Hi [Name], this is [Agent] from [Bank]. " +
			"We noticed you received our recent communication. " +
			"I'm calling to see if you'd like help setting up online banking or our mobile app. " +
			"Would you have 10 minutes for me to walk you through it?"
	}

	out.Renumber()
	return out
}

// applyLowDigital leads with a letter and follows up with a gentle coaching
// call.
func applyLowDigital(plan domain.CommunicationPlan) domain.CommunicationPlan {
	out := plan.Clone()

	if !out.HasChannel(domain.ChannelLetter) {
		out.InsertStep(0, domain.ChannelStep{
			Channel:   domain.ChannelLetter,
			When:      domain.TimingImmediate,
			Purpose:   "Primary communication via preferred postal method",
			Rationale: "Low-digital customers prefer traditional postal communication",
		})
	}

	if !hasPurposeMarker(out, "coaching") {
		out.AppendStep(domain.ChannelStep{
			Channel:   domain.ChannelPhone,
			When:      domain.TimingPlusFiveDay,
			Purpose:   "Optional coaching call to introduce digital banking benefits",
			Rationale: "Gentle introduction to digital services for offline-preferred customers",
		})
	}

	// Letters to offline-preferred customers point at the digital
	// alternatives once.
	if body, ok := out.Assets[domain.ChannelLetter]; ok && !strings.Contains(strings.ToLower(body), "online") {
		out.Assets[domain.ChannelLetter] = body +
			"\n\nFor your convenience, you can also view this information online " +
			"or via our mobile app. Call us if you'd like help getting started."
	}

	out.Renumber()
	return out
}

// applyAccessibility guarantees braille and audio formats are available.
func applyAccessibility(plan domain.CommunicationPlan) domain.CommunicationPlan {
	out := plan.Clone()

	if !out.HasChannel(domain.ChannelBraille) {
		out.AppendStep(domain.ChannelStep{
			Channel:   domain.ChannelBraille,
			When:      domain.TimingImmediate,
			Purpose:   "Accessible format for visually impaired customers",
			Rationale: "Ensuring equal access to information",
		})
	}

	if !out.HasChannel(domain.ChannelAudio) {
		out.AppendStep(domain.ChannelStep{
			Channel:   domain.ChannelAudio,
			When:      domain.TimingImmediate,
			Purpose:   "Audio version for accessibility",
			Rationale: "Multiple accessible formats for different needs",
		})
	}

	if _, ok := out.Assets[domain.ChannelBraille]; !ok {
		if text, ok := out.Assets[domain.ChannelInApp]; ok {
			out.Assets[domain.ChannelBraille] = text
		}
	}

	out.Renumber()
	return out
}

// applyVulnerable adds a proactive callback with a supportive script. The
// sales-content protection itself lives in the final invariants, not here.
func applyVulnerable(plan domain.CommunicationPlan) domain.CommunicationPlan {
	out := plan.Clone()

	if !hasPurposeMarker(out, "callback") {
		out.InsertStep(1, domain.ChannelStep{
			Channel:   domain.ChannelPhone,
			When:      domain.TimingPlusOneDay,
			Purpose:   "Proactive callback offer for extra support",
			Rationale: "Vulnerable customers benefit from personal contact and reassurance",
		})
	}

	out.Assets[domain.ChannelPhone] = "Hello [Name], this is [Agent] from [Bank]. " +
		"We wanted to make sure you received and understood our recent communication. " +
		"Is there anything we can help explain? We're here to support you, and there's no rush. " +
		"Would you prefer to discuss this now or schedule a callback at a more convenient time?"

	out.Renumber()
	return out
}

func hasPurposeMarker(plan domain.CommunicationPlan, marker string) bool {
	for _, s := range plan.Steps {
		if strings.Contains(strings.ToLower(s.Purpose), marker) {
			return true
		}
	}
	return false
}
