package poem

import (
	"context"
	"errors"
	"time"

	"github.com/jonathan/valentino/internal/llm"
	"github.com/jonathan/valentino/internal/types"
)

// generateTimeout bounds the upstream call; the product is user-facing and
// latency-sensitive, so a hung provider must not hold the request open.
const generateTimeout = 30 * time.Second

// Generator composes one generation (or remix) cycle: clamp input, build the
// prompts, call the LLM, decode, and fall back to a template when decoding
// fails completely.
type Generator struct {
	client llm.Client
}

// NewGenerator creates a Generator on top of an LLM client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// Generate produces a poem for the given request. Decode failures are
// absorbed into the deterministic fallback and never surface as errors; only
// upstream failures do, classified into the ConfigError / UpstreamBusyError /
// GenerationError taxonomy.
//
// The timeout is derived from ctx, so a client disconnect cancels the
// in-flight upstream call.
func (g *Generator) Generate(ctx context.Context, req *types.PoemRequest) (*types.GeneratedPoem, error) {
	in := clampRequest(req)

	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	raw, err := g.client.GenerateText(ctx, buildSystemPrompt(in), buildUserPrompt(in))
	if err != nil {
		return nil, classifyUpstreamError(err)
	}

	result, err := Extract(raw)
	if err != nil {
		if errors.Is(err, ErrNoPoem) {
			fb := Fallback(in.Nickname, firstTrait(in.Traits), in.Vibe)
			return &fb, nil
		}
		return nil, err
	}

	return result, nil
}

func firstTrait(traits []string) string {
	if len(traits) == 0 {
		return ""
	}
	return traits[0]
}

func classifyUpstreamError(err error) error {
	switch {
	case llm.IsAuthError(err):
		return &ConfigError{Message: "provider credential rejected", Cause: err}
	case llm.IsQuotaError(err):
		return &UpstreamBusyError{Cause: err}
	default:
		return &GenerationError{Message: "upstream call failed", Cause: err}
	}
}
