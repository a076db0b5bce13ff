package generator

import (
	"context"

	"github.com/orgball2608/social-post-scheduler/internal/domain"
)

// Message is one turn of prior conversation passed along for context.
type Message struct {
	Role    string
	Content string
}

// Client produces post content from a prompt via a single structured-output
// LLM call.
type Client interface {
	GeneratePost(ctx context.Context, prompt string, history []Message) (*domain.GeneratedPost, error)
}
