package domain

// ChannelStep is one scheduled touch in a communication plan. Step indices
// are 1-based and always contiguous with list order; every mutation of a
// plan renumbers.
type ChannelStep struct {
	Step             int     `json:"step"`
	Channel          Channel `json:"channel"`
	When             string  `json:"when"`
	Purpose          string  `json:"purpose"`
	Rationale        string  `json:"why"`
	ComplianceNote   string  `json:"compliance_note,omitempty"`
	OptimizationNote string  `json:"cost_optimization,omitempty"`
}

// UpsellDecision records whether a plan carries sales content and why.
type UpsellDecision struct {
	Included  bool   `json:"included"`
	Product   string `json:"product,omitempty"`
	Message   string `json:"message,omitempty"`
	Reasoning string `json:"reasoning"`
}

// CommunicationPlan is the ordered channel timeline for one (customer,
// letter) pair, plus the content assets and audit trail that go with it.
// Plans flow build -> compose -> optimize -> evaluate and are never mutated
// after evaluation.
type CommunicationPlan struct {
	ID             string                `json:"id"`
	CustomerID     string                `json:"customer_id"`
	Category       CustomerCategory      `json:"customer_category"`
	Classification MessageClassification `json:"classification"`
	Steps          []ChannelStep         `json:"timeline"`
	Assets         map[Channel]string    `json:"assets,omitempty"`
	Upsell         UpsellDecision        `json:"upsell"`
	// RiskLog is the append-only record of overrides and risks. Invariant
	// procedures prepend their annotation so the most serious override reads
	// first; nothing is ever removed.
	RiskLog []string `json:"overrides_or_risks"`
}

// Clone returns a deep copy. Rule phases work on copies so each phase
// returns a new plan value rather than mutating its input.
func (p CommunicationPlan) Clone() CommunicationPlan {
	out := p
	out.Steps = make([]ChannelStep, len(p.Steps))
	copy(out.Steps, p.Steps)
	if p.Assets != nil {
		out.Assets = make(map[Channel]string, len(p.Assets))
		for k, v := range p.Assets {
			out.Assets[k] = v
		}
	}
	out.RiskLog = make([]string, len(p.RiskLog))
	copy(out.RiskLog, p.RiskLog)
	return out
}

// Renumber restores the 1..N step index invariant after a mutation.
func (p *CommunicationPlan) Renumber() {
	for i := range p.Steps {
		p.Steps[i].Step = i + 1
	}
}

// HasChannel reports whether any step uses the given channel.
func (p CommunicationPlan) HasChannel(ch Channel) bool {
	for _, s := range p.Steps {
		if s.Channel == ch {
			return true
		}
	}
	return false
}

// Channels returns the channels in step order, repeats included.
func (p CommunicationPlan) Channels() []Channel {
	out := make([]Channel, len(p.Steps))
	for i, s := range p.Steps {
		out[i] = s.Channel
	}
	return out
}

// InsertStep inserts a step at the given position (clamped to the list) and
// renumbers.
func (p *CommunicationPlan) InsertStep(pos int, s ChannelStep) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(p.Steps) {
		pos = len(p.Steps)
	}
	p.Steps = append(p.Steps, ChannelStep{})
	copy(p.Steps[pos+1:], p.Steps[pos:])
	p.Steps[pos] = s
	p.Renumber()
}

// AppendStep appends a step and renumbers.
func (p *CommunicationPlan) AppendStep(s ChannelStep) {
	p.Steps = append(p.Steps, s)
	p.Renumber()
}

// RemoveChannel drops every step using the given channel and renumbers.
// Returns true if anything was removed.
func (p *CommunicationPlan) RemoveChannel(ch Channel) bool {
	kept := p.Steps[:0]
	removed := false
	for _, s := range p.Steps {
		if s.Channel == ch {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	p.Steps = kept
	p.Renumber()
	return removed
}

// LogRisk appends an annotation to the risk log.
func (p *CommunicationPlan) LogRisk(note string) {
	p.RiskLog = append(p.RiskLog, note)
}

// PrependRisk puts an annotation at the front of the risk log, skipping the
// write when the annotation is already present so invariant procedures stay
// idempotent.
func (p *CommunicationPlan) PrependRisk(note string) {
	for _, r := range p.RiskLog {
		if r == note {
			return
		}
	}
	p.RiskLog = append([]string{note}, p.RiskLog...)
}
