// Package content provides the template-backed default implementation of the
// content generator collaborator. Real deployments swap in an AI-backed
// generator; this one renders per-channel asset text from Liquid templates
// so the planner is fully usable offline.
package content

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/osteele/liquid"

	"github.com/ignite/outreach-planner/internal/domain"
)

// TemplateGenerator renders per-channel asset text with the Liquid template
// language. Parsed templates are cached; the engine is safe for concurrent
// use.
type TemplateGenerator struct {
	engine    *liquid.Engine
	templates map[domain.Channel]string
	cache     sync.Map // map[domain.Channel]*liquid.Template
}

// Default per-channel asset templates. Deliberately plain: tone markers and
// promotional embellishment are the rule composer's job, not the
// generator's.
var defaultTemplates = map[domain.Channel]string{
	domain.ChannelEmail: "Dear {{ customer_name | default: \"Customer\" }},\n\n" +
		"We are writing with an important {{ classification }} update about your account. " +
		"Full details are enclosed below. If anything is unclear, our team is happy to help.",
	domain.ChannelLetter: "Dear {{ customer_name | default: \"Customer\" }},\n\n" +
		"Please find enclosed an important {{ classification }} communication regarding your account.",
	domain.ChannelSMS: "{{ bank_name }}: a {{ classification }} update is available for your account. " +
		"Check the app or call us for details.",
	domain.ChannelInApp: "You have a new {{ classification }} update. " +
		"Tap to read the full message.",
	domain.ChannelVoiceNote: "Hello {{ customer_name | default: \"there\" }}, this is {{ bank_name }}. " +
		"We have a {{ classification }} update for you. Please check your app or post for the full details.",
	domain.ChannelBraille: "Important {{ classification }} communication regarding your account. " +
		"Full details follow in accessible format.",
	domain.ChannelAudio: "This is an audio version of a {{ classification }} communication " +
		"about your account from {{ bank_name }}.",
	domain.ChannelPhone: "Hi {{ customer_name | default: \"[Name]\" }}, this is [Agent] from {{ bank_name }}. " +
		"I'm calling about a recent {{ classification }} communication we sent you.",
}

// NewTemplateGenerator creates a generator with the default channel
// templates and domain-specific Liquid filters registered.
func NewTemplateGenerator() *TemplateGenerator {
	engine := liquid.NewEngine()

	// Default value filter: {{ customer_name | default: "Customer" }}
	engine.RegisterFilter("default", func(value interface{}, defaultVal string) interface{} {
		if value == nil {
			return defaultVal
		}
		s := fmt.Sprintf("%v", value)
		if s == "" || s == "<nil>" {
			return defaultVal
		}
		return value
	})

	// Sentence-case a classification label: {{ classification | label }}
	engine.RegisterFilter("label", func(value interface{}) string {
		s := strings.ReplaceAll(fmt.Sprintf("%v", value), "_", " ")
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	})

	templates := make(map[domain.Channel]string, len(defaultTemplates))
	for ch, tpl := range defaultTemplates {
		templates[ch] = tpl
	}

	return &TemplateGenerator{
		engine:    engine,
		templates: templates,
	}
}

// SetTemplate overrides the template for one channel.
func (g *TemplateGenerator) SetTemplate(ch domain.Channel, tpl string) {
	g.templates[ch] = tpl
	g.cache.Delete(ch)
}

// Generate renders asset text for each requested channel. Channels without
// a template are skipped rather than failing the whole generation.
func (g *TemplateGenerator) Generate(ctx context.Context, channels []domain.Channel,
	profile domain.CustomerProfile, classification domain.MessageClassification) (map[domain.Channel]string, error) {

	bindings := map[string]interface{}{
		"customer_name":  profile.Name,
		"customer_id":    profile.CustomerID,
		"category":       string(profile.Category),
		"classification": string(classification),
		"bank_name":      "Your Bank",
	}

	out := make(map[domain.Channel]string, len(channels))
	for _, ch := range channels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tpl, err := g.template(ch)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", ch, err)
		}
		if tpl == nil {
			continue
		}
		text, err := tpl.RenderString(bindings)
		if err != nil {
			return nil, fmt.Errorf("render %s asset: %w", ch, err)
		}
		out[ch] = text
	}
	return out, nil
}

func (g *TemplateGenerator) template(ch domain.Channel) (*liquid.Template, error) {
	if cached, ok := g.cache.Load(ch); ok {
		return cached.(*liquid.Template), nil
	}
	src, ok := g.templates[ch]
	if !ok {
		return nil, nil
	}
	tpl, err := g.engine.ParseString(src)
	if err != nil {
		return nil, err
	}
	g.cache.Store(ch, tpl)
	return tpl, nil
}
