package gen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeededRand(t *testing.T) {
	t.Run("same seed yields identical sequences", func(t *testing.T) {
		a := NewSeededRand(42)
		b := NewSeededRand(42)
		for i := 0; i < 100; i++ {
			assert.Equal(t, a.Int63(), b.Int63())
		}
	})

	t.Run("zero seed derives from the clock", func(t *testing.T) {
		r := NewSeededRand(0)
		require.NotNil(t, r)
		r.Int63()
	})
}

func TestWeightedIndex(t *testing.T) {
	r := NewSeededRand(1)

	t.Run("errors when no weight is positive", func(t *testing.T) {
		_, err := WeightedIndex(r, nil)
		assert.Error(t, err)

		_, err = WeightedIndex(r, []float64{0, -1, 0})
		assert.Error(t, err)
	})

	t.Run("never selects a zero-weight entry", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			idx, err := WeightedIndex(r, []float64{0, 1, 0, 3, 0})
			require.NoError(t, err)
			assert.Contains(t, []int{1, 3}, idx)
		}
	})

	t.Run("frequencies track weights", func(t *testing.T) {
		counts := make([]int, 2)
		for i := 0; i < 10000; i++ {
			idx, err := WeightedIndex(r, []float64{1, 9})
			require.NoError(t, err)
			counts[idx]++
		}
		// Weight 9 vs 1 should dominate clearly even with sampling noise.
		assert.Greater(t, counts[1], counts[0]*5)
	})
}

func TestWeightedChoice(t *testing.T) {
	r := NewSeededRand(2)

	t.Run("length mismatch errors", func(t *testing.T) {
		_, err := WeightedChoice(r, []string{"a", "b"}, []float64{1})
		assert.Error(t, err)
	})

	t.Run("single positive weight always wins", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			got, err := WeightedChoice(r, []string{"a", "b", "c"}, []float64{0, 5, 0})
			require.NoError(t, err)
			assert.Equal(t, "b", got)
		}
	})
}

func TestSample(t *testing.T) {
	r := NewSeededRand(3)
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	t.Run("returns k distinct items", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			got := Sample(r, items, 4)
			require.Len(t, got, 4)
			seen := make(map[int]bool, len(got))
			for _, v := range got {
				assert.False(t, seen[v], "duplicate %d in sample", v)
				seen[v] = true
			}
		}
	})

	t.Run("clamps k to the population size", func(t *testing.T) {
		got := Sample(r, []int{1, 2, 3}, 10)
		assert.Len(t, got, 3)
		assert.ElementsMatch(t, []int{1, 2, 3}, got)
	})

	t.Run("non-positive k yields nil", func(t *testing.T) {
		assert.Nil(t, Sample(r, items, 0))
		assert.Nil(t, Sample(r, items, -1))
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		original := []int{1, 2, 3, 4, 5}
		Sample(r, original, 3)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, original)
	})
}

func TestIntInRange(t *testing.T) {
	r := rand.New(rand.NewSource(4))

	t.Run("stays within inclusive bounds", func(t *testing.T) {
		sawLo, sawHi := false, false
		for i := 0; i < 5000; i++ {
			v := IntInRange(r, 3, 7)
			assert.GreaterOrEqual(t, v, 3)
			assert.LessOrEqual(t, v, 7)
			sawLo = sawLo || v == 3
			sawHi = sawHi || v == 7
		}
		assert.True(t, sawLo, "lower bound never drawn")
		assert.True(t, sawHi, "upper bound never drawn")
	})

	t.Run("degenerate range returns lo", func(t *testing.T) {
		assert.Equal(t, 5, IntInRange(r, 5, 5))
		assert.Equal(t, 5, IntInRange(r, 5, 2))
	})
}

func TestFloatInRange(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 1000; i++ {
		v := FloatInRange(r, 0.7, 1.5)
		assert.GreaterOrEqual(t, v, 0.7)
		assert.Less(t, v, 1.5)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 1.24, Round2(1.235))
	assert.Equal(t, 0.0, Round2(0.004))
	assert.Equal(t, 2.5, Round2(2.5))
}
