package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ignite/outreach-planner/internal/domain"
)

func TestBuildDigitalFirstInformation(t *testing.T) {
	plan := Build(domain.CategoryDigitalFirst, domain.ClassificationInformation)

	// Information allows 2 channels and has no mandatory ones, so the first
	// two category defaults fill the budget.
	assert.Equal(t, []domain.Channel{domain.ChannelInApp, domain.ChannelEmail}, plan.Channels())
	assert.Equal(t, 1, plan.Steps[0].Step)
	assert.Equal(t, 2, plan.Steps[1].Step)
	assert.NotEmpty(t, plan.ID)
}

func TestBuildRegulatoryMandatoryLetterFirst(t *testing.T) {
	plan := Build(domain.CategoryDigitalFirst, domain.ClassificationRegulatory)

	assert.Equal(t, domain.ChannelLetter, plan.Steps[0].Channel)
	assert.Contains(t, plan.Steps[0].Purpose, "Mandatory")
	// Regulatory budget is 2: letter plus the top category default.
	assert.Len(t, plan.Steps, 2)
	assert.Equal(t, domain.ChannelInApp, plan.Steps[1].Channel)
}

func TestBuildVulnerableRegulatory(t *testing.T) {
	plan := Build(domain.CategoryVulnerable, domain.ClassificationRegulatory)

	// Letter is both mandatory and the segment default; it is not added
	// twice.
	assert.Equal(t, []domain.Channel{domain.ChannelLetter, domain.ChannelPhone}, plan.Channels())
}

func TestBuildPromotionalUsesWiderBudget(t *testing.T) {
	plan := Build(domain.CategoryAccessibility, domain.ClassificationPromotional)

	// Promotional allows 4 channels; accessibility defaults fill all of
	// them.
	assert.Equal(t, []domain.Channel{
		domain.ChannelLetter, domain.ChannelBraille,
		domain.ChannelAudio, domain.ChannelPhone,
	}, plan.Channels())
}

func TestBuildStepsAlwaysContiguous(t *testing.T) {
	for _, cat := range domain.AllCategories {
		for _, cls := range domain.AllClassifications {
			plan := Build(cat, cls)
			for i, step := range plan.Steps {
				assert.Equal(t, i+1, step.Step, "%s/%s", cat, cls)
			}
		}
	}
}

func TestDecideUpsell(t *testing.T) {
	tests := []struct {
		name     string
		profile  domain.CustomerProfile
		cls      domain.MessageClassification
		included bool
		product  string
	}{
		{
			name:    "regulatory never upsells",
			profile: domain.CustomerProfile{Category: domain.CategoryDigitalFirst, UpsellEligible: true},
			cls:     domain.ClassificationRegulatory,
		},
		{
			name:    "vulnerable never upsells",
			profile: domain.CustomerProfile{Category: domain.CategoryVulnerable, UpsellEligible: true},
			cls:     domain.ClassificationPromotional,
		},
		{
			name:    "ineligible customer",
			profile: domain.CustomerProfile{Category: domain.CategoryDigitalFirst},
			cls:     domain.ClassificationPromotional,
		},
		{
			name:     "digital first gets digital product",
			profile:  domain.CustomerProfile{Category: domain.CategoryDigitalFirst, UpsellEligible: true},
			cls:      domain.ClassificationPromotional,
			included: true,
			product:  "Premium Digital Banking",
		},
		{
			name:     "low digital gets premium account",
			profile:  domain.CustomerProfile{Category: domain.CategoryLowDigital, UpsellEligible: true},
			cls:      domain.ClassificationInformation,
			included: true,
			product:  "Premium Account",
		},
		{
			name: "explicit product list wins",
			profile: domain.CustomerProfile{
				Category:       domain.CategoryDigitalFirst,
				UpsellEligible: true,
				UpsellProducts: []string{"Travel Insurance", "ISA"},
			},
			cls:      domain.ClassificationPromotional,
			included: true,
			product:  "Travel Insurance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecideUpsell(tt.profile, tt.cls)
			assert.Equal(t, tt.included, got.Included)
			assert.Equal(t, tt.product, got.Product)
			assert.NotEmpty(t, got.Reasoning)
		})
	}
}
