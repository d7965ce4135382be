package mesh

import (
	"math"

	"github.com/Ox23du/Minecraft-V2/internal/vec"
	"github.com/Ox23du/Minecraft-V2/internal/world/block"
)

// VertexColor возвращает цвет вершины: базовый цвет типа с детерминированным
// шумом. Шум зависит только от порядкового номера вершины в буфере типа и
// нормали грани, но не от позиции в мире.
func VertexColor(id block.BlockID, normal vec.Vec3, ordinal int) block.Color {
	kind, _ := block.Get(id)
	c := kind.Color

	nx, ny, nz := float64(normal.X), float64(normal.Y), float64(normal.Z)
	seed := float64(ordinal)*7 + nx*13 + ny*17 + nz*19

	switch id {
	case block.GrassBlockID:
		// Верх зеленее, бока ближе к земле
		top := ny > 0
		amount := 0.1
		if top {
			amount = 0.2
		}
		v := wave(seed*1.3) * amount
		if top {
			c.R = math.Max(0.1, c.R-v*0.3)
			c.G = math.Min(1, c.G+v*0.2)
			c.B = math.Max(0.1, c.B-v*0.4)
		} else {
			c.R = math.Min(1, c.R+v)
			c.G = math.Min(1, c.G+v*0.8)
			c.B = math.Min(1, c.B+v*0.6)
		}

	case block.LogBlockID:
		v := wave(seed*0.8) * 0.12
		if ny != 0 {
			// Торцы светлее (кольца)
			c.R = math.Min(1, c.R+v*0.8)
			c.G = math.Min(1, c.G+v*0.6)
			c.B = math.Min(1, c.B+v*0.4)
		} else {
			// Кора темнее
			c.R = math.Max(0.2, c.R-v*0.3)
			c.G = math.Max(0.15, c.G-v*0.4)
			c.B = math.Max(0.1, c.B-v*0.5)
		}

	case block.LeafBlockID:
		v := wave(seed*1.1) * 0.18
		c.R = math.Max(0.1, c.R-v*0.5)
		c.G = math.Min(1, c.G+v*0.3)
		c.B = math.Max(0.1, c.B-v*0.3)

	default:
		// Симметричный разброс ±7.5% по каналам
		jitter := wave(seed)*0.15 - 0.075
		c.R = clamp(c.R+jitter, 0.1, 1)
		c.G = clamp(c.G+jitter, 0.1, 1)
		c.B = clamp(c.B+jitter, 0.1, 1)
	}

	return c
}

// wave отображает sin в [0,1]
func wave(x float64) float64 {
	return math.Sin(x)*0.5 + 0.5
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
