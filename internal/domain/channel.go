package domain

// Channel enumerates the delivery mechanisms the planner can schedule.
type Channel string

const (
	ChannelLetter    Channel = "letter"
	ChannelEmail     Channel = "email"
	ChannelSMS       Channel = "sms"
	ChannelInApp     Channel = "in_app"
	ChannelVoiceNote Channel = "voice_note"
	ChannelPhone     Channel = "phone"
	ChannelBraille   Channel = "braille"
	ChannelAudio     Channel = "audio"
)

// AllChannels lists every channel the planner knows about, in canonical order.
var AllChannels = []Channel{
	ChannelLetter, ChannelEmail, ChannelSMS, ChannelInApp,
	ChannelVoiceNote, ChannelPhone, ChannelBraille, ChannelAudio,
}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	for _, ch := range AllChannels {
		if c == ch {
			return true
		}
	}
	return false
}

// DefaultTiming returns the standard delivery offset for a channel.
// In-app, email, letter and voice notes go out immediately; SMS waits an
// hour so it lands after the primary notification; phone, braille and audio
// need a day of lead time.
func (c Channel) DefaultTiming() string {
	switch c {
	case ChannelInApp, ChannelEmail, ChannelLetter, ChannelVoiceNote:
		return TimingImmediate
	case ChannelSMS:
		return TimingPlusOneHour
	default:
		return TimingPlusOneDay
	}
}

// Timing offsets used in channel steps.
const (
	TimingImmediate    = "immediate"
	TimingPlusOneHour  = "+1 hour"
	TimingPlusOneDay   = "+1 day"
	TimingPlusThreeDay = "+3 days"
	TimingPlusFiveDay  = "+5 days"
)
