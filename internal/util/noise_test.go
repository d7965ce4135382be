package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNoise_Kinds(t *testing.T) {
	for _, kind := range []NoiseKind{"", NoisePerlin, NoiseSimplex} {
		n, err := NewNoise(kind, 42)
		require.NoError(t, err, "вид %q", kind)
		require.NotNil(t, n)
	}

	_, err := NewNoise("worley", 42)
	assert.Error(t, err)
}

func TestNoise_DeterministicPerSeed(t *testing.T) {
	for _, kind := range []NoiseKind{NoisePerlin, NoiseSimplex} {
		a, _ := NewNoise(kind, 7)
		b, _ := NewNoise(kind, 7)

		for i := 0; i < 50; i++ {
			x, y := float64(i)*0.37, float64(i)*0.11
			assert.Equal(t, a.Noise2D(x, y), b.Noise2D(x, y), "%s: одинаковый сид даёт одинаковый шум", kind)
			v := a.Noise2D(x, y)
			assert.True(t, v >= -1.5 && v <= 1.5, "%s: значение %f вне ожидаемого диапазона", kind, v)
		}
	}
}
