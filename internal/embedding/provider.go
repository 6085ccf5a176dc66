package embedding

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

// Factory constructs an encoder. It is called at most once per successful
// initialization.
type Factory func(ctx context.Context) (Encoder, error)

// Provider owns a lazily constructed encoder shared by all callers. The first
// Get builds the encoder; concurrent callers wait for it and receive the same
// instance. A failed build is not cached, so a later Get retries.
type Provider struct {
	factory Factory
	logger  zerolog.Logger

	mu      sync.RWMutex
	encoder Encoder
}

// NewProvider creates a provider around factory.
func NewProvider(factory Factory, logger zerolog.Logger) *Provider {
	return &Provider{
		factory: factory,
		logger:  logger.With().Str("component", "embedding").Logger(),
	}
}

// Static returns a provider that always hands out enc.
func Static(enc Encoder) *Provider {
	return &Provider{
		factory: func(context.Context) (Encoder, error) { return enc, nil },
		encoder: enc,
		logger:  zerolog.Nop(),
	}
}

// Get returns the shared encoder, building it on first use.
func (p *Provider) Get(ctx context.Context) (Encoder, error) {
	p.mu.RLock()
	enc := p.encoder
	p.mu.RUnlock()
	if enc != nil {
		return enc, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.encoder != nil {
		return p.encoder, nil
	}
	if p.factory == nil {
		return nil, &EncodeError{Message: "no encoder factory configured"}
	}

	enc, err := p.factory(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("encoder initialization failed")
		return nil, err
	}

	p.encoder = enc
	p.logger.Info().
		Str("encoder", enc.Name()).
		Int("dimensions", enc.Dimensions()).
		Msg("encoder initialized")
	return enc, nil
}

// Close releases the encoder if it was built and holds resources.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if closer, ok := p.encoder.(io.Closer); ok {
		p.encoder = nil
		return closer.Close()
	}
	p.encoder = nil
	return nil
}
