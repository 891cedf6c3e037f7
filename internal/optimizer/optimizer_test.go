package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/outreach-planner/internal/domain"
)

func stepsFor(channels ...domain.Channel) []domain.ChannelStep {
	out := make([]domain.ChannelStep, len(channels))
	for i, ch := range channels {
		out[i] = domain.ChannelStep{Step: i + 1, Channel: ch}
	}
	return out
}

func TestOptimizeWithinBudgetUntouched(t *testing.T) {
	plan := domain.CommunicationPlan{
		Classification: domain.ClassificationInformation,
		Steps:          stepsFor(domain.ChannelInApp, domain.ChannelEmail),
	}

	out := Optimize(plan, domain.ClassificationInformation, domain.CategoryDigitalFirst)

	assert.Equal(t, plan.Channels(), out.Channels())
	assert.Empty(t, out.Steps[0].OptimizationNote)
	assert.Empty(t, out.RiskLog)
}

func TestOptimizeTrimsByPriority(t *testing.T) {
	// Information allows 2 channels; digital-first ranks in_app highest.
	plan := domain.CommunicationPlan{
		Classification: domain.ClassificationInformation,
		Steps: stepsFor(domain.ChannelPhone, domain.ChannelVoiceNote,
			domain.ChannelSMS, domain.ChannelInApp),
	}

	out := Optimize(plan, domain.ClassificationInformation, domain.CategoryDigitalFirst)

	require.Len(t, out.Steps, 2)
	assert.Equal(t, []domain.Channel{domain.ChannelInApp, domain.ChannelVoiceNote}, out.Channels())
	for i, step := range out.Steps {
		assert.Equal(t, i+1, step.Step)
		assert.NotEmpty(t, step.OptimizationNote)
	}
	assert.NotEmpty(t, out.RiskLog)
	// The input plan is untouched.
	assert.Len(t, plan.Steps, 4)
}

func TestOptimizeKeepsDurableSteps(t *testing.T) {
	// Low-digital plans treat only letter as durable; an over-budget plan
	// keeps the letter unconditionally.
	plan := domain.CommunicationPlan{
		Classification: domain.ClassificationInformation,
		Steps: stepsFor(domain.ChannelSMS, domain.ChannelEmail,
			domain.ChannelLetter),
	}

	out := Optimize(plan, domain.ClassificationInformation, domain.CategoryLowDigital)

	require.Len(t, out.Steps, 2)
	assert.True(t, out.HasChannel(domain.ChannelLetter))
}

func TestOptimizeRegulatoryKeepsPreferredDurablePlusOne(t *testing.T) {
	plan := domain.CommunicationPlan{
		Classification: domain.ClassificationRegulatory,
		Steps: stepsFor(domain.ChannelLetter, domain.ChannelEmail,
			domain.ChannelInApp, domain.ChannelVoiceNote),
	}

	out := Optimize(plan, domain.ClassificationRegulatory, domain.CategoryDigitalFirst)

	require.Len(t, out.Steps, 2)
	// Digital-first prefers email as the durable medium.
	assert.Equal(t, domain.ChannelEmail, out.Steps[0].Channel)
	assert.Equal(t, domain.ChannelVoiceNote, out.Steps[1].Channel)
	assert.NotEmpty(t, out.Steps[0].ComplianceNote)
}

func TestOptimizeRegulatoryFallsBackToAnyDurable(t *testing.T) {
	// No email step present: the letter is kept as the durable medium.
	plan := domain.CommunicationPlan{
		Classification: domain.ClassificationRegulatory,
		Steps: stepsFor(domain.ChannelLetter, domain.ChannelInApp,
			domain.ChannelVoiceNote),
	}

	out := Optimize(plan, domain.ClassificationRegulatory, domain.CategoryLowDigital)

	require.NotEmpty(t, out.Steps)
	assert.Equal(t, domain.ChannelLetter, out.Steps[0].Channel)
	assert.LessOrEqual(t, len(out.Steps), 2)
}

func TestOptimizeNeverExceedsBudget(t *testing.T) {
	all := stepsFor(domain.AllChannels...)

	for _, cat := range domain.AllCategories {
		for _, cls := range domain.AllClassifications {
			plan := domain.CommunicationPlan{Classification: cls, Steps: all}
			out := Optimize(plan, cls, cat)
			assert.LessOrEqual(t, len(out.Steps), cls.Rules().MaxChannels, "%s/%s", cat, cls)
			for i, step := range out.Steps {
				assert.Equal(t, i+1, step.Step, "%s/%s", cat, cls)
			}
		}
	}
}
