// Package costing implements the channel catalog and cost model: named cost
// scenarios with volume discounts, per-plan cost evaluation, and batch
// aggregation against a uniform-letter baseline.
package costing

// ChannelRates holds the per-unit cost assumptions for one scenario.
// Letter cost is built from its physical components plus staff handling
// time; digital channels are a flat per-send rate plus a staff-time share.
type ChannelRates struct {
	// Physical channels
	LetterPostage   float64 `json:"letter_postage" yaml:"letter_postage"`
	LetterPrinting  float64 `json:"letter_printing" yaml:"letter_printing"`
	LetterEnvelope  float64 `json:"letter_envelope" yaml:"letter_envelope"`
	LetterStaffTime float64 `json:"letter_staff_time" yaml:"letter_staff_time"`

	// Digital channels
	Email     float64 `json:"email_cost" yaml:"email_cost"`
	SMS       float64 `json:"sms_cost" yaml:"sms_cost"`
	InApp     float64 `json:"in_app_notification" yaml:"in_app_notification"`
	VoiceNote float64 `json:"voice_note_generation" yaml:"voice_note_generation"`

	// Staff time shares (minutes per communication) and the hourly rate
	// they are costed at.
	EmailStaffMinutes float64 `json:"email_staff_minutes" yaml:"email_staff_minutes"`
	SMSStaffMinutes   float64 `json:"sms_staff_minutes" yaml:"sms_staff_minutes"`
	StaffHourlyRate   float64 `json:"staff_hourly_rate" yaml:"staff_hourly_rate"`

	// Environmental impact in CO2 grams per communication. Carbon is
	// volume-scaled but never discounted.
	LetterCarbonGrams float64 `json:"letter_carbon_g" yaml:"letter_carbon_g"`
	EmailCarbonGrams  float64 `json:"email_carbon_g" yaml:"email_carbon_g"`
	SMSCarbonGrams    float64 `json:"sms_carbon_g" yaml:"sms_carbon_g"`
	InAppCarbonGrams  float64 `json:"in_app_carbon_g" yaml:"in_app_carbon_g"`
}

// VolumeDiscounts defines three non-overlapping volume tiers. The rate of
// the highest threshold met or exceeded applies.
type VolumeDiscounts struct {
	SmallThreshold  int     `json:"small_volume_threshold" yaml:"small_volume_threshold"`
	MediumThreshold int     `json:"medium_volume_threshold" yaml:"medium_volume_threshold"`
	LargeThreshold  int     `json:"large_volume_threshold" yaml:"large_volume_threshold"`
	SmallRate       float64 `json:"small_discount" yaml:"small_discount"`
	MediumRate      float64 `json:"medium_discount" yaml:"medium_discount"`
	LargeRate       float64 `json:"large_discount" yaml:"large_discount"`
}

// RateFor returns the discount rate for a volume: the rate of the highest
// tier the volume reaches, 0 below the small threshold.
func (d VolumeDiscounts) RateFor(volume int) float64 {
	switch {
	case volume >= d.LargeThreshold && d.LargeThreshold > 0:
		return d.LargeRate
	case volume >= d.MediumThreshold && d.MediumThreshold > 0:
		return d.MediumRate
	case volume >= d.SmallThreshold && d.SmallThreshold > 0:
		return d.SmallRate
	default:
		return 0
	}
}

// CostScenario is a named, immutable set of cost assumptions. Callers hold
// scenario values by copy; switching the registry's current scenario never
// mutates a snapshot already handed out.
type CostScenario struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Rates       ChannelRates    `json:"costs" yaml:"costs"`
	Discounts   VolumeDiscounts `json:"discounts" yaml:"discounts"`
}

// Built-in scenario names.
const (
	ScenarioRealistic    = "realistic"
	ScenarioConservative = "conservative"
	ScenarioOptimistic   = "optimistic"
)

func standardDiscounts() VolumeDiscounts {
	return VolumeDiscounts{
		SmallThreshold:  100,
		MediumThreshold: 1000,
		LargeThreshold:  5000,
		SmallRate:       0,
		MediumRate:      0.05,
		LargeRate:       0.15,
	}
}

func standardCarbon(r ChannelRates) ChannelRates {
	r.LetterCarbonGrams = 25.0
	r.EmailCarbonGrams = 0.3
	r.SMSCarbonGrams = 0.1
	r.InAppCarbonGrams = 0.05
	return r
}

func standardStaffTime(r ChannelRates) ChannelRates {
	r.EmailStaffMinutes = 0.1
	r.SMSStaffMinutes = 0.05
	r.StaffHourlyRate = 15.0
	return r
}

// DefaultScenarios returns the three built-in scenarios. Carbon figures and
// staff-time shares are held constant across scenarios; only the monetary
// unit costs move.
func DefaultScenarios() []CostScenario {
	realistic := standardCarbon(standardStaffTime(ChannelRates{
		LetterPostage:   0.85,
		LetterPrinting:  0.08,
		LetterEnvelope:  0.03,
		LetterStaffTime: 0.50,
		Email:           0.002,
		SMS:             0.05,
		InApp:           0.001,
		VoiceNote:       0.02,
	}))
	conservative := standardCarbon(standardStaffTime(ChannelRates{
		LetterPostage:   1.20,
		LetterPrinting:  0.15,
		LetterEnvelope:  0.05,
		LetterStaffTime: 1.25,
		Email:           0.005,
		SMS:             0.08,
		InApp:           0.003,
		VoiceNote:       0.035,
	}))
	optimistic := standardCarbon(standardStaffTime(ChannelRates{
		LetterPostage:   0.65,
		LetterPrinting:  0.04,
		LetterEnvelope:  0.02,
		LetterStaffTime: 0.25,
		Email:           0.001,
		SMS:             0.03,
		InApp:           0.0005,
		VoiceNote:       0.015,
	}))

	return []CostScenario{
		{
			Name:        ScenarioRealistic,
			Description: "Realistic costs based on current UK market rates",
			Rates:       realistic,
			Discounts:   standardDiscounts(),
		},
		{
			Name:        ScenarioConservative,
			Description: "Higher costs for worst-case planning",
			Rates:       conservative,
			Discounts:   standardDiscounts(),
		},
		{
			Name:        ScenarioOptimistic,
			Description: "Lower costs with automation and bulk discounts",
			Rates:       optimistic,
			Discounts:   standardDiscounts(),
		},
	}
}
