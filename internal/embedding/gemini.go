package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"

	"github.com/jonathan/career-pathways/internal/metrics"
)

const (
	// DefaultGeminiModel is the embedding model used when none is configured.
	DefaultGeminiModel = "text-embedding-004"
	// DefaultGeminiDimensions is the output width of DefaultGeminiModel.
	DefaultGeminiDimensions = 768

	geminiBackend = "gemini"
)

// BreakerConfig configures the circuit breaker around remote embedding calls.
type BreakerConfig struct {
	// MaxRequests is the number of requests allowed in half-open state.
	MaxRequests uint32
	// Interval is the cyclic reset period for counts.
	Interval time.Duration
	// Timeout is the duration in open state before transitioning to half-open.
	Timeout time.Duration
	// FailureThreshold is the number of consecutive failures before opening.
	FailureThreshold uint32
}

// GeminiConfig configures a GeminiEncoder.
type GeminiConfig struct {
	APIKey            string
	Model             string
	Dimensions        int
	RequestsPerSecond float64
	Burst             int
	Breaker           BreakerConfig
}

// DefaultGeminiConfig returns production defaults without an API key.
func DefaultGeminiConfig() GeminiConfig {
	return GeminiConfig{
		Model:             DefaultGeminiModel,
		Dimensions:        DefaultGeminiDimensions,
		RequestsPerSecond: 10,
		Burst:             5,
		Breaker: BreakerConfig{
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
		},
	}
}

// contentEmbedder is the subset of *genai.EmbeddingModel the encoder uses.
type contentEmbedder interface {
	EmbedContent(ctx context.Context, parts ...genai.Part) (*genai.EmbedContentResponse, error)
}

// GeminiEncoder embeds text with the Gemini embedding API. Calls are paced by
// a token bucket and guarded by a circuit breaker.
type GeminiEncoder struct {
	client  *genai.Client
	model   contentEmbedder
	name    string
	dims    int
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]float32]
	logger  zerolog.Logger
}

// NewGeminiEncoder creates a Gemini-backed encoder.
func NewGeminiEncoder(ctx context.Context, cfg GeminiConfig, logger zerolog.Logger) (*GeminiEncoder, error) {
	if cfg.APIKey == "" {
		return nil, &EncodeError{Backend: geminiBackend, Message: "API key is required"}
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, &EncodeError{Backend: geminiBackend, Message: "failed to create client", Cause: err}
	}

	model := client.EmbeddingModel(cfg.Model)
	model.TaskType = genai.TaskTypeSemanticSimilarity

	enc := newGeminiEncoder(model, cfg, logger)
	enc.client = client
	return enc, nil
}

func newGeminiEncoder(model contentEmbedder, cfg GeminiConfig, logger zerolog.Logger) *GeminiEncoder {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := max(cfg.Burst, 1)

	enc := &GeminiEncoder{
		model:   model,
		name:    geminiBackend + ":" + cfg.Model,
		dims:    cfg.Dimensions,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger.With().Str("component", "gemini_encoder").Logger(),
	}

	threshold := cfg.Breaker.FailureThreshold
	if threshold == 0 {
		threshold = 1
	}
	enc.breaker = gobreaker.NewCircuitBreaker[[]float32](gobreaker.Settings{
		Name:        enc.name,
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			enc.logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	})
	return enc
}

func (g *GeminiEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &EncodeError{Backend: geminiBackend, Message: "text is empty"}
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, &EncodeError{Backend: geminiBackend, Message: "rate limiter wait", Cause: err}
	}

	start := time.Now()
	values, err := g.breaker.Execute(func() ([]float32, error) {
		res, err := g.model.EmbedContent(ctx, genai.Text(text))
		if err != nil {
			return nil, err
		}
		if res == nil || res.Embedding == nil || len(res.Embedding.Values) == 0 {
			return nil, errors.New("response has no embedding values")
		}
		return res.Embedding.Values, nil
	})
	metrics.RecordEmbedding(geminiBackend, time.Since(start), err)
	if err != nil {
		return nil, &EncodeError{Backend: geminiBackend, Message: "embed content failed", Cause: err}
	}

	if g.dims > 0 && len(values) != g.dims {
		return nil, &EncodeError{
			Backend: geminiBackend,
			Message: fmt.Sprintf("expected %d dimensions, got %d", g.dims, len(values)),
		}
	}
	return values, nil
}

func (g *GeminiEncoder) Dimensions() int { return g.dims }

func (g *GeminiEncoder) Name() string { return g.name }

// Close releases the underlying API client.
func (g *GeminiEncoder) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
