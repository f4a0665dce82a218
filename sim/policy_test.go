package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantumSchedulePolicy(t *testing.T) {
	cases := map[string]QuantumSchedulePolicy{
		"fifo":     PolicyFIFO,
		"lifo":     PolicyLIFO,
		"random":   PolicyRandom,
		"weighted": PolicyWeighted,
	}
	for s, want := range cases {
		got, err := ParseQuantumSchedulePolicy(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseQuantumSchedulePolicy_Invalid(t *testing.T) {
	_, err := ParseQuantumSchedulePolicy("round-robin")
	assert.ErrorIs(t, err, ErrInvalidQuantumPolicy)
}

func TestQuantumSchedulePolicy_String(t *testing.T) {
	assert.Equal(t, "fifo", PolicyFIFO.String())
	assert.Equal(t, "lifo", PolicyLIFO.String())
	assert.Equal(t, "random", PolicyRandom.String())
	assert.Equal(t, "weighted", PolicyWeighted.String())
}

func TestQuantumSchedulePolicy_SelectIndex_FIFO(t *testing.T) {
	assert.Equal(t, 0, PolicyFIFO.selectIndex(5, nil))
}

func TestQuantumSchedulePolicy_SelectIndex_LIFO(t *testing.T) {
	assert.Equal(t, 4, PolicyLIFO.selectIndex(5, nil))
}

func TestQuantumSchedulePolicy_SelectIndex_Random_InBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		idx := PolicyRandom.selectIndex(7, rng)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 7)
	}
}

func TestQuantumSchedulePolicy_SelectIndex_WeightedPanics(t *testing.T) {
	assert.Panics(t, func() {
		PolicyWeighted.selectIndex(3, rand.New(rand.NewSource(1)))
	})
}
