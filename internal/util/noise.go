package util

import (
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// NoiseKind выбирает алгоритм когерентного шума для карты высот
type NoiseKind string

const (
	NoisePerlin  NoiseKind = "perlin"
	NoiseSimplex NoiseKind = "simplex"
)

// Noise2D непрерывный детерминированный двумерный шум со значениями примерно в [-1, 1]
type Noise2D interface {
	Noise2D(x, y float64) float64
}

// PerlinNoise шум Перлина с фиксированными параметрами сглаживания
type PerlinNoise struct {
	p *perlin.Perlin
}

// NewPerlinNoise инициализирует генератор шума Перлина с указанным сидом
func NewPerlinNoise(seed int64) *PerlinNoise {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	return &PerlinNoise{p: perlin.NewPerlin(alpha, beta, n, seed)}
}

// Noise2D возвращает значение шума Перлина для указанных координат
func (n *PerlinNoise) Noise2D(x, y float64) float64 {
	return n.p.Noise2D(x, y)
}

// SimplexNoise шум OpenSimplex
type SimplexNoise struct {
	n opensimplex.Noise
}

// NewSimplexNoise инициализирует генератор симплекс-шума с указанным сидом
func NewSimplexNoise(seed int64) *SimplexNoise {
	return &SimplexNoise{n: opensimplex.New(seed)}
}

// Noise2D возвращает значение симплекс-шума для указанных координат
func (n *SimplexNoise) Noise2D(x, y float64) float64 {
	return n.n.Eval2(x, y)
}

// NewNoise создаёт генератор шума указанного вида. Пустой вид означает Перлин.
func NewNoise(kind NoiseKind, seed int64) (Noise2D, error) {
	switch kind {
	case NoisePerlin, "":
		return NewPerlinNoise(seed), nil
	case NoiseSimplex:
		return NewSimplexNoise(seed), nil
	default:
		return nil, fmt.Errorf("неизвестный вид шума %q", kind)
	}
}
