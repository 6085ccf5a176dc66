package embedding

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Backend names accepted by NewFactory.
const (
	BackendGemini  = "gemini"
	BackendHashing = "hashing"
)

// Config selects and configures an encoder backend.
type Config struct {
	Backend string
	Gemini  GeminiConfig
	// HashingDimensions is the width of the hashing backend.
	HashingDimensions int
}

// NewFactory returns a Factory that builds the configured backend.
func NewFactory(cfg Config, logger zerolog.Logger) Factory {
	return func(ctx context.Context) (Encoder, error) {
		switch cfg.Backend {
		case BackendGemini:
			return NewGeminiEncoder(ctx, cfg.Gemini, logger)
		case BackendHashing, "":
			return NewHashingEncoder(cfg.HashingDimensions), nil
		default:
			return nil, fmt.Errorf("unknown embedding backend %q", cfg.Backend)
		}
	}
}
