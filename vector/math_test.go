package vector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("unit length after normalize", func(t *testing.T) {
		v := []float32{3, 4}
		Normalize(v)
		assert.InDelta(t, 0.6, v[0], 1e-6)
		assert.InDelta(t, 0.8, v[1], 1e-6)

		var sum float64
		for _, x := range v {
			sum += float64(x) * float64(x)
		}
		assert.InDelta(t, 1.0, sum, 1e-6)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		v := []float32{0, 0, 0}
		Normalize(v)
		assert.Equal(t, []float32{0, 0, 0}, v)
		for _, x := range v {
			assert.False(t, math.IsNaN(float64(x)))
		}
	})
}

func TestDotEqualsCosineForUnitVectors(t *testing.T) {
	a := []float32{1, 2, 3, 4}
	b := []float32{-2, 1, 0.5, 3}
	Normalize(a)
	Normalize(b)

	cos, err := CosineSimilarity(a, b)
	require.NoError(t, err)
	assert.InDelta(t, cos, float64(Dot(a, b)), 1e-6)
}

func TestCosineSimilarity(t *testing.T) {
	t.Run("parallel vectors score 1", func(t *testing.T) {
		got, err := CosineSimilarity([]float32{1, 2}, []float32{2, 4})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got, 1e-6)
	})

	t.Run("orthogonal vectors score 0", func(t *testing.T) {
		got, err := CosineSimilarity([]float32{1, 0}, []float32{0, 1})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, got, 1e-6)
	})

	t.Run("dimension mismatch errors", func(t *testing.T) {
		_, err := CosineSimilarity([]float32{1}, []float32{1, 2})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dimension mismatch")
	})

	t.Run("zero vector scores 0", func(t *testing.T) {
		got, err := CosineSimilarity([]float32{0, 0}, []float32{1, 2})
		require.NoError(t, err)
		assert.Equal(t, 0.0, got)
	})
}

func TestTopK(t *testing.T) {
	t.Run("descending order", func(t *testing.T) {
		scores := []float32{0.1, 0.9, 0.5, 0.7}
		assert.Equal(t, []int{1, 3, 2}, TopK(scores, 3))
	})

	t.Run("ties keep lower index first", func(t *testing.T) {
		scores := []float32{0.5, 0.9, 0.5, 0.9}
		assert.Equal(t, []int{1, 3, 0, 2}, TopK(scores, 4))
	})

	t.Run("k larger than input is clamped", func(t *testing.T) {
		scores := []float32{0.2, 0.8}
		assert.Equal(t, []int{1, 0}, TopK(scores, 10))
	})

	t.Run("k zero returns nil", func(t *testing.T) {
		assert.Nil(t, TopK([]float32{1, 2}, 0))
	})
}

func TestNormalizeRows(t *testing.T) {
	m, err := NewMatrix(2, 2, []float32{3, 4, 0, 5})
	require.NoError(t, err)
	m.NormalizeRows()

	assert.InDelta(t, 0.6, m.Row(0)[0], 1e-6)
	assert.InDelta(t, 0.8, m.Row(0)[1], 1e-6)
	assert.InDelta(t, 0.0, m.Row(1)[0], 1e-6)
	assert.InDelta(t, 1.0, m.Row(1)[1], 1e-6)
}
