package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func samplePlan() CommunicationPlan {
	return CommunicationPlan{
		ID: "plan-1",
		Steps: []ChannelStep{
			{Step: 1, Channel: ChannelLetter},
			{Step: 2, Channel: ChannelPhone},
		},
		Assets:  map[Channel]string{ChannelLetter: "body"},
		RiskLog: []string{"note"},
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := samplePlan()
	clone := original.Clone()

	clone.Steps[0].Channel = ChannelEmail
	clone.Assets[ChannelLetter] = "changed"
	clone.RiskLog[0] = "changed"

	assert.Equal(t, ChannelLetter, original.Steps[0].Channel)
	assert.Equal(t, "body", original.Assets[ChannelLetter])
	assert.Equal(t, "note", original.RiskLog[0])
}

func TestInsertStepClampsPosition(t *testing.T) {
	plan := samplePlan()
	plan.InsertStep(99, ChannelStep{Channel: ChannelSMS})
	assert.Equal(t, ChannelSMS, plan.Steps[len(plan.Steps)-1].Channel)

	plan.InsertStep(-5, ChannelStep{Channel: ChannelEmail})
	assert.Equal(t, ChannelEmail, plan.Steps[0].Channel)

	for i, s := range plan.Steps {
		assert.Equal(t, i+1, s.Step)
	}
}

func TestRemoveChannel(t *testing.T) {
	plan := samplePlan()

	assert.True(t, plan.RemoveChannel(ChannelPhone))
	assert.False(t, plan.HasChannel(ChannelPhone))
	assert.False(t, plan.RemoveChannel(ChannelPhone))
	assert.Equal(t, 1, plan.Steps[0].Step)
}

func TestPrependRiskDeduplicates(t *testing.T) {
	plan := samplePlan()

	plan.PrependRisk("warning")
	plan.PrependRisk("warning")

	assert.Equal(t, []string{"warning", "note"}, plan.RiskLog)
}

func TestChannelsInStepOrder(t *testing.T) {
	plan := samplePlan()
	plan.AppendStep(ChannelStep{Channel: ChannelLetter})

	assert.Equal(t, []Channel{ChannelLetter, ChannelPhone, ChannelLetter}, plan.Channels())
}

func TestChannelValid(t *testing.T) {
	assert.True(t, ChannelBraille.Valid())
	assert.False(t, Channel("smoke_signal").Valid())
}

func TestDefaultTiming(t *testing.T) {
	assert.Equal(t, TimingImmediate, ChannelInApp.DefaultTiming())
	assert.Equal(t, TimingImmediate, ChannelLetter.DefaultTiming())
	assert.Equal(t, TimingPlusOneHour, ChannelSMS.DefaultTiming())
	assert.Equal(t, TimingPlusOneDay, ChannelPhone.DefaultTiming())
	assert.Equal(t, TimingPlusOneDay, ChannelBraille.DefaultTiming())
}

func TestDurableChannels(t *testing.T) {
	assert.True(t, CategoryDigitalFirst.IsDurable(ChannelEmail))
	assert.True(t, CategoryDigitalFirst.IsDurable(ChannelInApp))
	assert.False(t, CategoryLowDigital.IsDurable(ChannelEmail))

	for _, cat := range AllCategories {
		assert.True(t, cat.IsDurable(ChannelLetter), "letter is durable for %s", cat)
	}

	assert.Equal(t, ChannelEmail, CategoryAssistedDigital.PreferredDurable())
	assert.Equal(t, ChannelLetter, CategoryVulnerable.PreferredDurable())
}

func TestStrategyFallback(t *testing.T) {
	// Unknown categories use the digital-first strategy rather than a zero
	// value.
	s := CustomerCategory("mystery").Strategy()
	assert.Equal(t, CategoryDigitalFirst.Strategy().MaxChannels, s.MaxChannels)
	assert.NotEmpty(t, s.DefaultChannels)
}
