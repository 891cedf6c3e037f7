package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/outreach-planner/internal/domain"
)

func profileFor(cat domain.CustomerCategory) domain.CustomerProfile {
	return domain.CustomerProfile{CustomerID: "CUST-001", Category: cat}
}

func TestComposeDigitalFirstDropsPhone(t *testing.T) {
	plan := domain.CommunicationPlan{
		Category:       domain.CategoryDigitalFirst,
		Classification: domain.ClassificationInformation,
		Assets:         map[domain.Channel]string{},
		Steps: []domain.ChannelStep{
			{Step: 1, Channel: domain.ChannelPhone},
		},
	}

	out := Compose(plan, profileFor(domain.CategoryDigitalFirst))

	assert.Equal(t, []domain.Channel{domain.ChannelInApp, domain.ChannelVoiceNote}, out.Channels())
	assert.False(t, out.HasChannel(domain.ChannelPhone))
	for i, step := range out.Steps {
		assert.Equal(t, i+1, step.Step)
	}
	// The input plan is untouched.
	assert.Equal(t, []domain.Channel{domain.ChannelPhone}, plan.Channels())
}

func TestComposeDigitalFirstVoiceNoteNarratesInApp(t *testing.T) {
	plan := Build(domain.CategoryDigitalFirst, domain.ClassificationInformation)
	plan.Assets[domain.ChannelInApp] = "Your statement is ready."

	out := Compose(plan, profileFor(domain.CategoryDigitalFirst))

	assert.Equal(t, "Your statement is ready.", out.Assets[domain.ChannelVoiceNote])
}

func TestComposeVulnerablePromotionalBlocked(t *testing.T) {
	plan := Build(domain.CategoryVulnerable, domain.ClassificationPromotional)
	plan.Upsell = domain.UpsellDecision{
		Included: true,
		Product:  "Premium Account",
		Message:  "Upgrade today for exclusive benefits",
	}
	plan.Assets[domain.ChannelLetter] = "Take advantage of this exclusive offer to upgrade your account."

	out := Compose(plan, profileFor(domain.CategoryVulnerable))

	assert.False(t, out.Upsell.Included)
	assert.Empty(t, out.Upsell.Product)
	assert.Equal(t, domain.ClassificationInformation, out.Classification)
	assert.Equal(t, neutralSupportMessage, out.Assets[domain.ChannelLetter])
	assert.Contains(t, out.RiskLog, NoteVulnerableProtection)
	assert.Contains(t, out.RiskLog,
		"Promotional content blocked for vulnerable customer; reclassified as information")

	for _, text := range out.Assets {
		assert.NotRegexp(t, `(?i)\b(exclusive|offer|upgrade|premium)\b`, text)
	}
}

func TestComposeVulnerableAlwaysProtectedEvenForInformation(t *testing.T) {
	plan := Build(domain.CategoryVulnerable, domain.ClassificationInformation)
	// A caller forcing the decision by hand is still overridden.
	plan.Upsell = domain.UpsellDecision{Included: true, Product: "Premium Account"}

	out := Compose(plan, profileFor(domain.CategoryVulnerable))

	assert.False(t, out.Upsell.Included)
	assert.Contains(t, out.RiskLog, NoteVulnerableProtection)
}

func TestComposeVulnerableAddsCallback(t *testing.T) {
	plan := Build(domain.CategoryVulnerable, domain.ClassificationInformation)

	out := Compose(plan, profileFor(domain.CategoryVulnerable))

	found := false
	for _, step := range out.Steps {
		if step.Channel == domain.ChannelPhone && step.When == domain.TimingPlusOneDay {
			found = true
		}
	}
	assert.True(t, found, "expected a next-day callback step")
	assert.Contains(t, out.Assets[domain.ChannelPhone], "no rush")
}

func TestComposeLowDigitalRegulatoryLeadsWithLetter(t *testing.T) {
	plan := domain.CommunicationPlan{
		Category:       domain.CategoryLowDigital,
		Classification: domain.ClassificationRegulatory,
		Assets:         map[domain.Channel]string{},
	}

	out := Compose(plan, profileFor(domain.CategoryLowDigital))

	require.NotEmpty(t, out.Steps)
	assert.Equal(t, domain.ChannelLetter, out.Steps[0].Channel)
	assert.Equal(t, 1, out.Steps[0].Step)
	// Letter satisfies the durable requirement, so the final invariant
	// leaves the plan alone and logs no override.
	assert.NotContains(t, out.RiskLog, ruleRegulatoryOverride)
}

func TestComposeRegulatoryDigitalFirstGetsEmailDurable(t *testing.T) {
	plan := domain.CommunicationPlan{
		Category:       domain.CategoryDigitalFirst,
		Classification: domain.ClassificationRegulatory,
		Assets:         map[domain.Channel]string{},
		Steps: []domain.ChannelStep{
			{Step: 1, Channel: domain.ChannelVoiceNote},
		},
	}

	out := Compose(plan, profileFor(domain.CategoryDigitalFirst))

	// Digital-first durable set includes email; the compliance procedure
	// inserts it first rather than falling back to post.
	require.NotEmpty(t, out.Steps)
	assert.Equal(t, domain.ChannelEmail, out.Steps[0].Channel)
	assert.NotEmpty(t, out.Steps[0].ComplianceNote)
}

func TestComposeRegulatoryFormalTone(t *testing.T) {
	plan := Build(domain.CategoryAssistedDigital, domain.ClassificationRegulatory)
	plan.Assets[domain.ChannelEmail] = "Your overdraft terms are changing."
	plan.Assets[domain.ChannelSMS] = "Your overdraft terms are changing."

	out := Compose(plan, profileFor(domain.CategoryAssistedDigital))

	assert.Equal(t, "Important notice: Your overdraft terms are changing.", out.Assets[domain.ChannelEmail])
	assert.Equal(t, "IMPORTANT: Your overdraft terms are changing.", out.Assets[domain.ChannelSMS])
	assert.LessOrEqual(t, len(out.Assets[domain.ChannelSMS]), 160)
}

func TestComposePromotionalEmbellishment(t *testing.T) {
	plan := Build(domain.CategoryDigitalFirst, domain.ClassificationPromotional)
	plan.Upsell = DecideUpsell(domain.CustomerProfile{
		Category:       domain.CategoryDigitalFirst,
		UpsellEligible: true,
	}, domain.ClassificationPromotional)
	plan.Assets[domain.ChannelEmail] = "Here's what's new this month."

	out := Compose(plan, profileFor(domain.CategoryDigitalFirst))

	assert.Contains(t, out.Assets[domain.ChannelEmail], "Exclusive offer:")
	assert.Contains(t, out.RiskLog, promotionalDisclaimerNote)
}

func TestComposeInformationShortensSMS(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "update "
	}
	plan := Build(domain.CategoryAssistedDigital, domain.ClassificationInformation)
	plan.Assets[domain.ChannelSMS] = long

	out := Compose(plan, profileFor(domain.CategoryAssistedDigital))

	assert.LessOrEqual(t, len(out.Assets[domain.ChannelSMS]), 140)
}

func TestComposeAccessibilityFormats(t *testing.T) {
	plan := Build(domain.CategoryAccessibility, domain.ClassificationInformation)

	out := Compose(plan, profileFor(domain.CategoryAccessibility))

	assert.True(t, out.HasChannel(domain.ChannelBraille))
	assert.True(t, out.HasChannel(domain.ChannelAudio))
}

func TestVulnerableProtectionIdempotent(t *testing.T) {
	plan := Build(domain.CategoryVulnerable, domain.ClassificationPromotional)
	plan.Upsell = domain.UpsellDecision{Included: true, Product: "Premium Account", Message: "Upgrade now"}
	plan.Assets[domain.ChannelLetter] = "An exclusive offer for you"

	once, mutated := enforceVulnerableProtection(plan)
	assert.True(t, mutated)

	twice, mutated := enforceVulnerableProtection(once)
	assert.False(t, mutated)
	assert.Equal(t, once.Upsell, twice.Upsell)
	assert.Equal(t, once.Assets, twice.Assets)
	assert.Equal(t, once.RiskLog, twice.RiskLog)
}

func TestRegulatoryComplianceIdempotent(t *testing.T) {
	plan := domain.CommunicationPlan{
		Category:       domain.CategoryLowDigital,
		Classification: domain.ClassificationRegulatory,
		Assets:         map[domain.Channel]string{},
		Steps: []domain.ChannelStep{
			{Step: 1, Channel: domain.ChannelPhone},
		},
	}

	once, mutated := enforceRegulatoryCompliance(plan, plan.Category)
	assert.True(t, mutated)
	assert.Equal(t, domain.ChannelLetter, once.Steps[0].Channel)

	twice, mutated := enforceRegulatoryCompliance(once, once.Category)
	assert.False(t, mutated)
	assert.Equal(t, once.Channels(), twice.Channels())
	assert.Equal(t, once.RiskLog, twice.RiskLog)
}

func TestComposeFixedPointAfterProtection(t *testing.T) {
	// A vulnerable promotional plan is downgraded to information on first
	// composition; re-composing the downgraded plan keeps it protected.
	plan := Build(domain.CategoryVulnerable, domain.ClassificationPromotional)
	plan.Upsell = domain.UpsellDecision{Included: true, Product: "Premium Account", Message: "Upgrade"}

	once := Compose(plan, profileFor(domain.CategoryVulnerable))
	twice := Compose(once, profileFor(domain.CategoryVulnerable))

	assert.Equal(t, domain.ClassificationInformation, twice.Classification)
	assert.False(t, twice.Upsell.Included)
	for _, text := range twice.Assets {
		assert.NotRegexp(t, `(?i)\b(exclusive|offer|upgrade|premium)\b`, text)
	}
}

func TestComposeAllCombinationsInvariants(t *testing.T) {
	for _, cat := range domain.AllCategories {
		for _, cls := range domain.AllClassifications {
			plan := Build(cat, cls)
			plan.Upsell = DecideUpsell(domain.CustomerProfile{
				Category:       cat,
				UpsellEligible: true,
			}, cls)

			out := Compose(plan, profileFor(cat))

			// Contiguous 1..N step numbering.
			for i, step := range out.Steps {
				assert.Equal(t, i+1, step.Step, "%s/%s", cat, cls)
			}

			// Vulnerable plans never carry sales content.
			if cat == domain.CategoryVulnerable {
				assert.False(t, out.Upsell.Included, "%s/%s", cat, cls)
				for _, text := range out.Assets {
					assert.NotRegexp(t, `(?i)\b(exclusive|offer|upgrade|premium)\b`, text, "%s/%s", cat, cls)
				}
			}

			// Regulatory plans always carry a durable medium.
			if out.Classification == domain.ClassificationRegulatory {
				durable := false
				for _, step := range out.Steps {
					if cat.IsDurable(step.Channel) {
						durable = true
					}
				}
				assert.True(t, durable, "%s/%s", cat, cls)
			}
		}
	}
}
