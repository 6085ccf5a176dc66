package embedding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEmbedder struct {
	mock.Mock
}

func (m *mockEmbedder) EmbedContent(ctx context.Context, parts ...genai.Part) (*genai.EmbedContentResponse, error) {
	args := m.Called(ctx, parts)
	res, _ := args.Get(0).(*genai.EmbedContentResponse)
	return res, args.Error(1)
}

func testGeminiConfig() GeminiConfig {
	cfg := DefaultGeminiConfig()
	cfg.Dimensions = 3
	cfg.RequestsPerSecond = 0
	cfg.Breaker = BreakerConfig{MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, FailureThreshold: 2}
	return cfg
}

func embedResponse(values ...float32) *genai.EmbedContentResponse {
	return &genai.EmbedContentResponse{Embedding: &genai.ContentEmbedding{Values: values}}
}

func TestGeminiEncoder_Encode(t *testing.T) {
	m := &mockEmbedder{}
	m.On("EmbedContent", mock.Anything, []genai.Part{genai.Text("Data Engineer: docker")}).
		Return(embedResponse(0.1, 0.2, 0.3), nil).Once()

	enc := newGeminiEncoder(m, testGeminiConfig(), zerolog.Nop())
	vec, err := enc.Encode(context.Background(), "Data Engineer: docker")
	require.NoError(t, err)

	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, "gemini:text-embedding-004", enc.Name())
	assert.Equal(t, 3, enc.Dimensions())
	m.AssertExpectations(t)
}

func TestGeminiEncoder_RejectsEmptyText(t *testing.T) {
	m := &mockEmbedder{}
	enc := newGeminiEncoder(m, testGeminiConfig(), zerolog.Nop())

	_, err := enc.Encode(context.Background(), "  ")
	require.Error(t, err)
	m.AssertNotCalled(t, "EmbedContent", mock.Anything, mock.Anything)
}

func TestGeminiEncoder_DimensionMismatch(t *testing.T) {
	m := &mockEmbedder{}
	m.On("EmbedContent", mock.Anything, mock.Anything).Return(embedResponse(1, 2), nil)

	enc := newGeminiEncoder(m, testGeminiConfig(), zerolog.Nop())
	_, err := enc.Encode(context.Background(), "go")
	assert.ErrorContains(t, err, "expected 3 dimensions, got 2")
}

func TestGeminiEncoder_EmptyResponse(t *testing.T) {
	m := &mockEmbedder{}
	m.On("EmbedContent", mock.Anything, mock.Anything).Return(&genai.EmbedContentResponse{}, nil)

	enc := newGeminiEncoder(m, testGeminiConfig(), zerolog.Nop())
	_, err := enc.Encode(context.Background(), "go")
	assert.ErrorContains(t, err, "no embedding values")
}

func TestGeminiEncoder_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	m := &mockEmbedder{}
	m.On("EmbedContent", mock.Anything, mock.Anything).Return(nil, errors.New("503 unavailable")).Times(2)

	enc := newGeminiEncoder(m, testGeminiConfig(), zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := enc.Encode(ctx, "go")
		require.ErrorContains(t, err, "503 unavailable")
	}

	_, err := enc.Encode(ctx, "go")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	m.AssertNumberOfCalls(t, "EmbedContent", 2)
}

func TestGeminiEncoder_RateLimiterHonoursContext(t *testing.T) {
	m := &mockEmbedder{}
	m.On("EmbedContent", mock.Anything, mock.Anything).Return(embedResponse(1, 2, 3), nil)

	cfg := testGeminiConfig()
	cfg.RequestsPerSecond = 0.001
	cfg.Burst = 1
	enc := newGeminiEncoder(m, cfg, zerolog.Nop())

	_, err := enc.Encode(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = enc.Encode(ctx, "second")
	assert.Error(t, err)
	m.AssertNumberOfCalls(t, "EmbedContent", 1)
}
