// Package optimizer trims a communication plan down to its classification's
// channel budget using the customer segment's priority ranking, without ever
// dropping mandatory or durable-medium steps.
package optimizer

import (
	"sort"

	"github.com/ignite/outreach-planner/internal/domain"
)

const optimizationNote = "Channel prioritized for cost efficiency"

// Optimize enforces the classification's channel budget on a plan. Plans
// already within budget are returned unchanged. Over-budget regulatory plans
// keep at most one durable step (preferring the segment's preferred durable
// channel) plus at most one other step; all other plans keep mandatory and
// durable steps unconditionally and fill the remaining budget with the
// highest-ranked other channels. Kept steps are tagged with an optimization
// annotation and the result is renumbered.
//
// Never fails on well-formed input, and never returns more steps than the
// classification allows.
func Optimize(plan domain.CommunicationPlan, classification domain.MessageClassification, category domain.CustomerCategory) domain.CommunicationPlan {
	budget := classification.Rules().MaxChannels
	if len(plan.Steps) <= budget {
		return plan
	}

	if classification == domain.ClassificationRegulatory {
		return optimizeRegulatory(plan, category)
	}

	out := plan.Clone()

	mandatory := map[domain.Channel]bool{}
	for _, ch := range classification.Rules().MandatoryChannels {
		mandatory[ch] = true
	}

	var kept, other []domain.ChannelStep
	for _, s := range out.Steps {
		if mandatory[s.Channel] || category.IsDurable(s.Channel) {
			kept = append(kept, s)
		} else {
			other = append(other, s)
		}
	}

	rank := priorityRank(category)
	sort.SliceStable(other, func(i, j int) bool {
		return rank(other[i].Channel) < rank(other[j].Channel)
	})

	for _, s := range other {
		if len(kept) >= budget {
			break
		}
		kept = append(kept, s)
	}

	// A plan can carry more protected steps than the budget allows. When
	// that happens mandatory steps win, then higher-ranked channels, and
	// the rest are trimmed like everything else.
	if len(kept) > budget {
		sort.SliceStable(kept, func(i, j int) bool {
			mi, mj := mandatory[kept[i].Channel], mandatory[kept[j].Channel]
			if mi != mj {
				return mi
			}
			return rank(kept[i].Channel) < rank(kept[j].Channel)
		})
		kept = kept[:budget]
	}

	out.Steps = annotate(kept)
	out.Renumber()
	out.LogRisk("Cost optimizer trimmed plan to channel budget")
	return out
}

// optimizeRegulatory reduces a regulatory plan to one durable step plus at
// most one confirmation step, preferring the segment's preferred durable
// channel when several qualify.
func optimizeRegulatory(plan domain.CommunicationPlan, category domain.CustomerCategory) domain.CommunicationPlan {
	out := plan.Clone()

	var durable, other []domain.ChannelStep
	for _, s := range out.Steps {
		if category.IsDurable(s.Channel) {
			durable = append(durable, s)
		} else {
			other = append(other, s)
		}
	}

	var kept []domain.ChannelStep
	preferred := category.PreferredDurable()
	for _, s := range durable {
		if s.Channel == preferred {
			kept = append(kept, s)
			break
		}
	}
	if len(kept) == 0 && len(durable) > 0 {
		kept = append(kept, durable[0])
	}
	if len(other) > 0 {
		kept = append(kept, other[0])
	}

	for i := range kept {
		if kept[i].ComplianceNote == "" {
			kept[i].ComplianceNote = "Regulatory durable medium requirement"
		}
	}

	out.Steps = annotate(kept)
	out.Renumber()
	out.LogRisk("Cost optimizer trimmed regulatory plan to durable medium plus confirmation")
	return out
}

// priorityRank returns a ranking function over channels from the segment's
// fixed total order. Channels missing from the order rank last.
func priorityRank(category domain.CustomerCategory) func(domain.Channel) int {
	order := category.Strategy().PriorityOrder
	pos := make(map[domain.Channel]int, len(order))
	for i, ch := range order {
		pos[ch] = i
	}
	return func(ch domain.Channel) int {
		if p, ok := pos[ch]; ok {
			return p
		}
		return len(order)
	}
}

func annotate(steps []domain.ChannelStep) []domain.ChannelStep {
	for i := range steps {
		if steps[i].OptimizationNote == "" {
			steps[i].OptimizationNote = optimizationNote
		}
	}
	return steps
}
