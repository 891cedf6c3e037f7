package costing

import (
	"fmt"

	"github.com/ignite/outreach-planner/internal/domain"
)

// ChannelCostCalculation is the priced result of sending `Volume` units on
// one channel under one scenario.
type ChannelCostCalculation struct {
	Channel            domain.Channel `json:"channel"`
	Volume             int            `json:"volume"`
	UnitCost           float64        `json:"unit_cost"`
	DiscountApplied    float64        `json:"discount_applied"`
	DiscountedUnitCost float64        `json:"discounted_unit_cost"`
	TotalCost          float64        `json:"total_cost"`
	TotalCarbonGrams   float64        `json:"total_carbon_g"`
}

// unitCost returns the per-unit monetary cost for the channels the catalog
// prices directly. The bool is false for unregistered channels.
func unitCost(r ChannelRates, ch domain.Channel) (float64, bool) {
	switch ch {
	case domain.ChannelLetter:
		return r.LetterPostage + r.LetterPrinting + r.LetterEnvelope + r.LetterStaffTime, true
	case domain.ChannelEmail:
		return r.Email + r.EmailStaffMinutes/60*r.StaffHourlyRate, true
	case domain.ChannelSMS:
		return r.SMS + r.SMSStaffMinutes/60*r.StaffHourlyRate, true
	case domain.ChannelInApp:
		return r.InApp, true
	case domain.ChannelVoiceNote:
		return r.VoiceNote, true
	default:
		return 0, false
	}
}

func carbonPerUnit(r ChannelRates, ch domain.Channel) float64 {
	switch ch {
	case domain.ChannelLetter:
		return r.LetterCarbonGrams
	case domain.ChannelEmail:
		return r.EmailCarbonGrams
	case domain.ChannelSMS:
		return r.SMSCarbonGrams
	case domain.ChannelInApp:
		return r.InAppCarbonGrams
	case domain.ChannelVoiceNote:
		// Voice notes are generated and delivered digitally; footprint is
		// comparable to email.
		return r.EmailCarbonGrams
	default:
		return 0
	}
}

// Cost prices `volume` communications on a channel under the given scenario.
// The volume discount applies to the monetary cost only; carbon scales
// linearly and is never discounted. Requesting an unregistered channel
// returns domain.ErrUnknownChannel and fails only this calculation.
func Cost(ch domain.Channel, volume int, scenario CostScenario) (ChannelCostCalculation, error) {
	unit, ok := unitCost(scenario.Rates, ch)
	if !ok {
		return ChannelCostCalculation{}, fmt.Errorf("cost %s: %w", ch, domain.ErrUnknownChannel)
	}

	discount := scenario.Discounts.RateFor(volume)
	discounted := unit * (1 - discount)

	return ChannelCostCalculation{
		Channel:            ch,
		Volume:             volume,
		UnitCost:           unit,
		DiscountApplied:    discount,
		DiscountedUnitCost: discounted,
		TotalCost:          discounted * float64(volume),
		TotalCarbonGrams:   carbonPerUnit(scenario.Rates, ch) * float64(volume),
	}, nil
}

// CostChannel maps a timeline channel onto the channel the catalog prices it
// as. Braille production is costed like a letter and audio like a voice
// note; phone calls carry no direct unit cost in this model, so the bool is
// false for them.
func CostChannel(ch domain.Channel) (domain.Channel, bool) {
	switch ch {
	case domain.ChannelLetter, domain.ChannelEmail, domain.ChannelSMS,
		domain.ChannelInApp, domain.ChannelVoiceNote:
		return ch, true
	case domain.ChannelBraille:
		return domain.ChannelLetter, true
	case domain.ChannelAudio:
		return domain.ChannelVoiceNote, true
	default:
		return "", false
	}
}
