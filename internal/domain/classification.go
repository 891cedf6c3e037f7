package domain

// MessageClassification enumerates the letter types produced by the upstream
// classifier.
type MessageClassification string

const (
	ClassificationRegulatory  MessageClassification = "regulatory"
	ClassificationPromotional MessageClassification = "promotional"
	ClassificationInformation MessageClassification = "information"
)

// AllClassifications lists every message classification.
var AllClassifications = []MessageClassification{
	ClassificationRegulatory, ClassificationPromotional, ClassificationInformation,
}

// Valid reports whether mc is a known classification.
func (mc MessageClassification) Valid() bool {
	for _, c := range AllClassifications {
		if mc == c {
			return true
		}
	}
	return false
}

// ClassificationRules carries the per-classification plan constraints:
// channels that must always be present, the channel budget, and the tone
// content should be written in.
type ClassificationRules struct {
	MandatoryChannels []Channel `json:"mandatory_channels"`
	MaxChannels       int       `json:"max_channels"`
	Tone              string    `json:"tone"`
}

var classificationRules = map[MessageClassification]ClassificationRules{
	ClassificationRegulatory: {
		MandatoryChannels: []Channel{ChannelLetter},
		MaxChannels:       2,
		Tone:              "formal",
	},
	ClassificationPromotional: {
		MandatoryChannels: nil,
		MaxChannels:       4,
		Tone:              "engaging",
	},
	ClassificationInformation: {
		MandatoryChannels: nil,
		MaxChannels:       2,
		Tone:              "clear",
	},
}

// Rules returns the plan constraints for the classification. Unknown
// classifications fall back to information rules.
func (mc MessageClassification) Rules() ClassificationRules {
	if r, ok := classificationRules[mc]; ok {
		return r
	}
	return classificationRules[ClassificationInformation]
}

// LetterClassification is the upstream classifier's verdict on a letter.
// Only Classification is consumed by the planner; confidence and reasoning
// are carried through for audit.
type LetterClassification struct {
	Classification MessageClassification `json:"classification"`
	Confidence     float64               `json:"confidence"`
	Reasoning      string                `json:"reasoning"`
}
