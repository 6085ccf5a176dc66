package embedding

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closingEncoder struct {
	*HashingEncoder
	closed bool
}

func (c *closingEncoder) Close() error {
	c.closed = true
	return nil
}

func TestProvider_BuildsOnceUnderConcurrency(t *testing.T) {
	var builds atomic.Int32
	p := NewProvider(func(ctx context.Context) (Encoder, error) {
		builds.Add(1)
		return NewHashingEncoder(8), nil
	}, zerolog.Nop())

	var wg sync.WaitGroup
	encoders := make([]Encoder, 16)
	for i := range encoders {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			enc, err := p.Get(context.Background())
			assert.NoError(t, err)
			encoders[i] = enc
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	for _, enc := range encoders {
		assert.Same(t, encoders[0], enc)
	}
}

func TestProvider_RetriesAfterFailure(t *testing.T) {
	attempts := 0
	p := NewProvider(func(ctx context.Context) (Encoder, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("model download failed")
		}
		return NewHashingEncoder(8), nil
	}, zerolog.Nop())

	_, err := p.Get(context.Background())
	require.Error(t, err)

	enc, err := p.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, enc.Dimensions())
	assert.Equal(t, 2, attempts)
}

func TestProvider_CloseReleasesEncoder(t *testing.T) {
	enc := &closingEncoder{HashingEncoder: NewHashingEncoder(8)}
	p := NewProvider(func(ctx context.Context) (Encoder, error) { return enc, nil }, zerolog.Nop())

	_, err := p.Get(context.Background())
	require.NoError(t, err)
	require.NoError(t, p.Close())
	assert.True(t, enc.closed)
}

func TestStatic(t *testing.T) {
	enc := NewHashingEncoder(4)
	got, err := Static(enc).Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, enc, got)
}

func TestStatic_GetAfterClose(t *testing.T) {
	enc := NewHashingEncoder(8)
	p := Static(enc)
	require.NoError(t, p.Close())

	got, err := p.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, enc, got)
}

func TestProvider_WithoutFactory(t *testing.T) {
	var p Provider
	_, err := p.Get(context.Background())
	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "no encoder factory configured", encErr.Message)
}

func TestNewFactory(t *testing.T) {
	ctx := context.Background()

	enc, err := NewFactory(Config{Backend: BackendHashing, HashingDimensions: 32}, zerolog.Nop())(ctx)
	require.NoError(t, err)
	assert.Equal(t, 32, enc.Dimensions())

	_, err = NewFactory(Config{Backend: BackendGemini}, zerolog.Nop())(ctx)
	var encErr *EncodeError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, "API key is required", encErr.Message)

	_, err = NewFactory(Config{Backend: "word2vec"}, zerolog.Nop())(ctx)
	assert.ErrorContains(t, err, "unknown embedding backend")
}
