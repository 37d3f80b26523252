package format

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifiedInt64RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 1000, 1001, 2001, math.MaxInt32, math.MaxInt64, math.MinInt64}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		values = append(values, rng.Int63()-rng.Int63())
	}

	buf := make([]byte, 8+VerifiedSize)
	for _, v := range values {
		PutVerifiedInt64(buf, 8, v)
		got, err := ReadVerifiedInt64(buf, 8)
		require.NoError(t, err, "value %d", v)
		require.Equal(t, v, got)
	}
}

func TestVerifiedInt64ZeroFilledFails(t *testing.T) {
	buf := make([]byte, VerifiedSize)
	_, err := ReadVerifiedInt64(buf, 0)
	require.ErrorIs(t, err, ErrUnverified)
}

func TestVerifiedInt64GarbageFails(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	buf := make([]byte, VerifiedSize)

	failures := 0
	const trials = 500
	for i := 0; i < trials; i++ {
		_, _ = rng.Read(buf)
		if _, err := ReadVerifiedInt64(buf, 0); err != nil {
			require.True(t, errors.Is(err, ErrUnverified))
			failures++
		}
	}
	require.Equal(t, trials, failures, "random bytes should never verify")
}

func TestVerifiedInt64TornWriteFails(t *testing.T) {
	buf := make([]byte, VerifiedSize)
	PutVerifiedInt64(buf, 0, 1001)

	// Only the value half of a later write reaches the buffer.
	PutI64(buf, 0, 1002)

	_, err := ReadVerifiedInt64(buf, 0)
	require.ErrorIs(t, err, ErrUnverified)
}

func TestVerifiedInt64SingleBitFlipFails(t *testing.T) {
	buf := make([]byte, VerifiedSize)
	for bit := 0; bit < VerifiedSize*8; bit++ {
		PutVerifiedInt64(buf, 0, 123456789)
		buf[bit/8] ^= 1 << (bit % 8)
		_, err := ReadVerifiedInt64(buf, 0)
		require.ErrorIs(t, err, ErrUnverified, "bit %d", bit)
	}
}

func TestVerifiedInt64Truncated(t *testing.T) {
	buf := make([]byte, VerifiedSize-1)
	_, err := ReadVerifiedInt64(buf, 0)
	require.ErrorIs(t, err, ErrTruncated)
}

func TestVerifiedInt64OutOfRangeOffset(t *testing.T) {
	b := make([]byte, 2*VerifiedSize)
	_, err := ReadVerifiedInt64(b, -1)
	require.ErrorIs(t, err, ErrTruncated)
	_, err = ReadVerifiedInt64(b, VerifiedSize+1)
	require.ErrorIs(t, err, ErrTruncated)
}
