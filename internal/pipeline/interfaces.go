package pipeline

import (
	"context"

	"github.com/ignite/outreach-planner/internal/domain"
)

// Categorizer is the upstream customer-categorization collaborator. The
// planner consumes its output labels as-is and never judges their
// correctness.
type Categorizer interface {
	Categorize(ctx context.Context, customerID string) (domain.CustomerProfile, error)
}

// LetterClassifier is the upstream letter-classification collaborator. Only
// the classification label is consumed here.
type LetterClassifier interface {
	Classify(ctx context.Context, letterText string) (domain.LetterClassification, error)
}

// ContentGenerator produces per-channel asset text for a finalized channel
// list. The planner decides which channels need content, never the wording.
type ContentGenerator interface {
	Generate(ctx context.Context, channels []domain.Channel, profile domain.CustomerProfile,
		classification domain.MessageClassification) (map[domain.Channel]string, error)
}

// VoiceSynthesizer turns finalized voice or audio channel text into a media
// file. It has no influence on plan structure; retry and backoff live on
// the collaborator's side.
type VoiceSynthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}
