// Package insight talks to the external text-completion service that writes
// habit/mood coaching insights.
package insight

import (
	"context"
	"errors"

	"habit-tracker/confs"

	"github.com/rs/zerolog/log"
)

// ErrDisabled is returned by Disabled for every request.
var ErrDisabled = errors.New("insight generator is not configured")

// Generator produces free text for a prompt. sessionID lets the service group
// requests from the same user.
type Generator interface {
	Complete(ctx context.Context, system, sessionID, prompt string) (string, error)
}

// Disabled is used when no API key is configured.
type Disabled struct{}

func (Disabled) Complete(context.Context, string, string, string) (string, error) {
	return "", ErrDisabled
}

// New picks the generator for cfg.
func New(cfg *confs.Config) Generator {
	if cfg.OpenAIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY not set, insights will use the fallback message")
		return Disabled{}
	}
	log.Info().Str("model", cfg.OpenAIModel).Msg("initializing OpenAI insight generator")
	return NewOpenAIGenerator(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
}
