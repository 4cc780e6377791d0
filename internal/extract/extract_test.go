package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModulusBelowThreshold(t *testing.T) {
	assert.Equal(t, uint64(16), Modulus(1000, 16))
}

func TestModulusScalesWithSize(t *testing.T) {
	n := 16 * TargetFeatures * 10
	m := Modulus(n, 16)
	assert.Equal(t, uint64(n)/TargetFeatures, m)
}

func TestModulusNeverBelowMin(t *testing.T) {
	m := Modulus(1, 16)
	assert.Equal(t, uint64(16), m)
}

func TestModulusZeroMinModulusNeverZero(t *testing.T) {
	assert.Equal(t, uint64(1), Modulus(500, 0))
	assert.NotZero(t, Modulus(16*TargetFeatures*10, 0))
}

func TestSequentialDeterministic(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog, and does it again and again")

	f1 := Sequential(data, 16)
	f2 := Sequential(data, 16)

	assert.Equal(t, f1, f2)
}

func TestSequentialZeroMinModulusDoesNotPanic(t *testing.T) {
	data := make([]byte, 2000)
	for i := range data {
		data[i] = byte(i * 13 % 251)
	}

	assert.NotPanics(t, func() {
		Sequential(data, 0)
	})
}

func TestSequentialEmptyProducesEmptyFilter(t *testing.T) {
	f := Sequential(nil, 16)
	assert.True(t, f.Empty())
}

func TestSequentialShortInputNoTriggers(t *testing.T) {
	// Fewer than WindowSize bytes: no trigger can ever fire.
	f := Sequential([]byte("short"), 16)
	assert.True(t, f.Empty())
}

func TestParallelAgreesWithSequential(t *testing.T) {
	data := make([]byte, 4*ParallelThreshold)
	for i := range data {
		data[i] = byte(i * 37 % 251)
	}

	seq := Sequential(data, 16)
	par, err := Parallel(context.Background(), data, 16)
	require.NoError(t, err)

	score := seq.Jaccard(par) * 100
	assert.GreaterOrEqual(t, score, float64(ParallelSimilarityFloor))
}

func TestParallelNotRequiredToMatchByteForByte(t *testing.T) {
	data := make([]byte, 4*ParallelThreshold)
	for i := range data {
		data[i] = byte(i * 37 % 251)
	}

	seq := Sequential(data, 16)
	par, err := Parallel(context.Background(), data, 16)
	require.NoError(t, err)

	// The two filters may differ at the bit level: Parallel loses any
	// trigger within the first WindowSize bytes of a chunk after the
	// first. Every other trigger sees the same window and hash in both,
	// so Parallel's bits are a subset of Sequential's.
	merged := *seq
	merged.Union(par)
	assert.Equal(t, *seq, merged)
}
