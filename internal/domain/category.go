package domain

// CustomerCategory enumerates the customer segments produced by the upstream
// categorizer. The planner consumes the label as an opaque enum; it never
// second-guesses the categorization itself.
type CustomerCategory string

const (
	CategoryDigitalFirst    CustomerCategory = "digital_first"
	CategoryAssistedDigital CustomerCategory = "assisted_digital"
	CategoryLowDigital      CustomerCategory = "low_digital"
	CategoryAccessibility   CustomerCategory = "accessibility"
	CategoryVulnerable      CustomerCategory = "vulnerable"
)

// AllCategories lists every customer category.
var AllCategories = []CustomerCategory{
	CategoryDigitalFirst, CategoryAssistedDigital, CategoryLowDigital,
	CategoryAccessibility, CategoryVulnerable,
}

// Valid reports whether cc is a known category.
func (cc CustomerCategory) Valid() bool {
	for _, c := range AllCategories {
		if cc == c {
			return true
		}
	}
	return false
}

// CategoryStrategy is the default communication strategy for a customer
// segment: which channels to start from, how many a plan may carry, and the
// order channels are preferred in when the optimizer has to trim.
type CategoryStrategy struct {
	DefaultChannels []Channel `json:"default_channels"`
	MaxChannels     int       `json:"max_channels"`
	// PriorityOrder is a total order over all channels. Channels earlier in
	// the slice survive cost trimming longer; channels not listed rank last.
	PriorityOrder []Channel `json:"priority_order"`
}

var categoryStrategies = map[CustomerCategory]CategoryStrategy{
	CategoryDigitalFirst: {
		DefaultChannels: []Channel{ChannelInApp, ChannelEmail, ChannelVoiceNote},
		MaxChannels:     3,
		PriorityOrder: []Channel{
			ChannelInApp, ChannelEmail, ChannelVoiceNote, ChannelSMS,
			ChannelLetter, ChannelPhone, ChannelAudio, ChannelBraille,
		},
	},
	CategoryAssistedDigital: {
		DefaultChannels: []Channel{ChannelEmail, ChannelSMS, ChannelPhone},
		MaxChannels:     3,
		PriorityOrder: []Channel{
			ChannelEmail, ChannelInApp, ChannelSMS, ChannelLetter,
			ChannelPhone, ChannelVoiceNote, ChannelAudio, ChannelBraille,
		},
	},
	CategoryLowDigital: {
		DefaultChannels: []Channel{ChannelLetter, ChannelPhone},
		MaxChannels:     2,
		PriorityOrder: []Channel{
			ChannelLetter, ChannelPhone, ChannelEmail, ChannelInApp,
			ChannelSMS, ChannelVoiceNote, ChannelAudio, ChannelBraille,
		},
	},
	CategoryAccessibility: {
		DefaultChannels: []Channel{ChannelLetter, ChannelBraille, ChannelAudio, ChannelPhone},
		MaxChannels:     4,
		PriorityOrder: []Channel{
			ChannelLetter, ChannelBraille, ChannelAudio, ChannelPhone,
			ChannelEmail, ChannelInApp, ChannelSMS, ChannelVoiceNote,
		},
	},
	CategoryVulnerable: {
		DefaultChannels: []Channel{ChannelLetter, ChannelPhone},
		MaxChannels:     2,
		PriorityOrder: []Channel{
			ChannelLetter, ChannelPhone, ChannelEmail, ChannelSMS,
			ChannelInApp, ChannelVoiceNote, ChannelAudio, ChannelBraille,
		},
	},
}

// Strategy returns the default communication strategy for the category.
// Unknown categories fall back to the digital-first strategy.
func (cc CustomerCategory) Strategy() CategoryStrategy {
	if s, ok := categoryStrategies[cc]; ok {
		return s
	}
	return categoryStrategies[CategoryDigitalFirst]
}

// DurableChannels returns the set of channels that count as a durable medium
// for this segment. Letter always qualifies; email and in-app qualify only
// for digitally-capable segments.
func (cc CustomerCategory) DurableChannels() []Channel {
	switch cc {
	case CategoryDigitalFirst, CategoryAssistedDigital:
		return []Channel{ChannelLetter, ChannelEmail, ChannelInApp}
	default:
		return []Channel{ChannelLetter}
	}
}

// PreferredDurable returns the channel to insert when a regulatory plan has
// no durable medium. Digitally-capable segments get email (cheaper than
// post); everyone else gets a letter.
func (cc CustomerCategory) PreferredDurable() Channel {
	switch cc {
	case CategoryDigitalFirst, CategoryAssistedDigital:
		return ChannelEmail
	default:
		return ChannelLetter
	}
}

// IsDurable reports whether ch is a durable medium for this segment.
func (cc CustomerCategory) IsDurable(ch Channel) bool {
	for _, d := range cc.DurableChannels() {
		if ch == d {
			return true
		}
	}
	return false
}
