package fuzzyhash

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greatroar/fuzzyhash/fingerprint"
	"github.com/greatroar/fuzzyhash/internal/extract"
)

func TestGenerateEmptyInput(t *testing.T) {
	_, err := Generate(context.Background(), nil, DefaultConfig())
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestGenerateZeroMinModulusDoesNotPanic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinModulus = 0

	assert.NotPanics(t, func() {
		_, err := Generate(context.Background(), []byte("a reasonably sized input for testing purposes"), cfg)
		require.NoError(t, err)
	})
}

func TestGenerateDeterministic(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	cfg := DefaultConfig()

	fp1, err := Generate(context.Background(), data, cfg)
	require.NoError(t, err)
	fp2, err := Generate(context.Background(), data, cfg)
	require.NoError(t, err)

	assert.True(t, fp1.Equal(fp2))
}

func TestCompareReflexive(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	cfg := DefaultConfig()

	fp, err := Generate(context.Background(), data, cfg)
	require.NoError(t, err)

	assert.Equal(t, uint8(100), Compare(fp, fp, cfg.Alpha))
}

func TestCompareSymmetric(t *testing.T) {
	a, err := Generate(context.Background(), []byte("the quick brown fox"), DefaultConfig())
	require.NoError(t, err)
	b, err := Generate(context.Background(), []byte("ZZZZZZZZZZZZZZZZZZZ"), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, Compare(a, b, 0.3), Compare(b, a, 0.3))
}

func TestCompareBounded(t *testing.T) {
	a, err := Generate(context.Background(), []byte("the quick brown fox jumps over the lazy dog"), DefaultConfig())
	require.NoError(t, err)
	b, err := Generate(context.Background(), []byte("Hello, World! This text shares almost nothing with the other."), DefaultConfig())
	require.NoError(t, err)

	score := Compare(a, b, 0.3)
	assert.LessOrEqual(t, score, uint8(100))
}

func TestCompareNearIdenticalScoresHigh(t *testing.T) {
	base := []byte("the quick brown fox jumps over the lazy dog repeatedly for a long while, over and over")
	edited := append(append([]byte{}, base...), '!')

	a, err := Generate(context.Background(), base, DefaultConfig())
	require.NoError(t, err)
	b, err := Generate(context.Background(), edited, DefaultConfig())
	require.NoError(t, err)

	assert.Greater(t, Compare(a, b, 0.3), uint8(50))
}

func TestGenerateParallelMatchesSequentialWithinFloor(t *testing.T) {
	data := make([]byte, 4*extract.ParallelThreshold)
	for i := range data {
		data[i] = byte(i * 91 % 251)
	}

	parCfg := DefaultConfig()
	parCfg.EnableParallel = true
	seqCfg := DefaultConfig()
	seqCfg.EnableParallel = false

	fpPar, err := Generate(context.Background(), data, parCfg)
	require.NoError(t, err)
	fpSeq, err := Generate(context.Background(), data, seqCfg)
	require.NoError(t, err)

	score := Compare(fpPar, fpSeq, 0.0) // content-only comparison
	assert.GreaterOrEqual(t, score, uint8(extract.ParallelSimilarityFloor))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	fp, err := Generate(context.Background(), []byte("round trip me please"), DefaultConfig())
	require.NoError(t, err)

	b := fp.Encode()
	assert.Equal(t, len(b), fp.Size())

	decoded, err := fingerprint.Decode(b)
	require.NoError(t, err)
	assert.True(t, fp.Equal(decoded))
}
