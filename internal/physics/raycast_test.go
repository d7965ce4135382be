package physics

import (
	"math"
	"testing"

	"github.com/Ox23du/Minecraft-V2/internal/vec"
	"github.com/Ox23du/Minecraft-V2/internal/world"
	"github.com/Ox23du/Minecraft-V2/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGrid(t *testing.T, x, y, z int) *world.Grid {
	t.Helper()
	g, err := world.NewGrid(x, y, z)
	require.NoError(t, err)
	return g
}

func TestRaycast_HitFromEachAxis(t *testing.T) {
	g := newGrid(t, 16, 16, 16)
	g.Set(8, 8, 8, block.StoneBlockID)
	rc := NewRaycaster(g)

	center := mgl64.Vec3{8.5, 8.5, 8.5}
	cases := []struct {
		name   string
		origin mgl64.Vec3
		normal vec.Vec3
	}{
		{"с +X", mgl64.Vec3{12.5, 8.5, 8.5}, vec.Vec3{X: 1}},
		{"с -X", mgl64.Vec3{4.5, 8.5, 8.5}, vec.Vec3{X: -1}},
		{"сверху", mgl64.Vec3{8.5, 12.5, 8.5}, vec.Vec3{Y: 1}},
		{"снизу", mgl64.Vec3{8.5, 4.5, 8.5}, vec.Vec3{Y: -1}},
		{"с +Z", mgl64.Vec3{8.5, 8.5, 12.5}, vec.Vec3{Z: 1}},
		{"с -Z", mgl64.Vec3{8.5, 8.5, 4.5}, vec.Vec3{Z: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Направление нарочно не нормализовано
			dir := center.Sub(tc.origin).Mul(3)
			hit := rc.Cast(tc.origin, dir, DefaultReach)

			require.True(t, hit.Hit)
			assert.Equal(t, vec.Vec3{X: 8, Y: 8, Z: 8}, hit.Position)
			assert.Equal(t, tc.normal, hit.Normal)
			// От центра ячейки в 4 блоках до ближайшей грани 3.5
			assert.InDelta(t, 3.5, hit.Distance, 1e-9)
		})
	}
}

func TestRaycast_Miss(t *testing.T) {
	g := newGrid(t, 16, 16, 16)
	g.Set(8, 8, 8, block.StoneBlockID)
	rc := NewRaycaster(g)

	// Луч в противоположную сторону
	hit := rc.Cast(mgl64.Vec3{4.5, 8.5, 8.5}, mgl64.Vec3{-1, 0, 0}, 100)
	assert.False(t, hit.Hit)

	// Блок дальше досягаемости
	hit = rc.Cast(mgl64.Vec3{0.5, 8.5, 8.5}, mgl64.Vec3{1, 0, 0}, DefaultReach)
	assert.False(t, hit.Hit, "блок на расстоянии 7.5 не достаётся лучом длины 5")

	hit = rc.Cast(mgl64.Vec3{0.5, 8.5, 8.5}, mgl64.Vec3{1, 0, 0}, 10)
	require.True(t, hit.Hit)
	assert.InDelta(t, 7.5, hit.Distance, 1e-9)
}

func TestRaycast_OriginInsideSolid(t *testing.T) {
	g := newGrid(t, 4, 4, 4)
	g.Set(1, 1, 1, block.DirtBlockID)

	hit := NewRaycaster(g).Cast(mgl64.Vec3{1.5, 1.5, 1.5}, mgl64.Vec3{0, 1, 0}, 5)
	require.True(t, hit.Hit)
	assert.Equal(t, vec.Vec3{X: 1, Y: 1, Z: 1}, hit.Position)
	assert.True(t, hit.Normal.IsZero())
	assert.Equal(t, 0.0, hit.Distance)
}

func TestRaycast_ZeroDirectionPanics(t *testing.T) {
	g := newGrid(t, 4, 4, 4)
	assert.Panics(t, func() {
		NewRaycaster(g).Cast(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{}, 5)
	})
}

func TestVisit_StraightLineCellCount(t *testing.T) {
	g := newGrid(t, 32, 4, 4)
	g.Set(10, 1, 1, block.StoneBlockID)

	var cells []vec.Vec3
	Visit(mgl64.Vec3{0.5, 1.5, 1.5}, mgl64.Vec3{1, 0, 0}, 100, func(cell, _ vec.Vec3, _ float64) bool {
		cells = append(cells, cell)
		return g.GetAt(cell) == block.AirBlockID
	})

	// 10 пересечённых границ, 11 посещённых ячеек
	require.Len(t, cells, 11)
	for i, c := range cells {
		assert.Equal(t, vec.Vec3{X: i, Y: 1, Z: 1}, c)
	}
}

func TestVisit_NeverSkipsCells(t *testing.T) {
	directions := []mgl64.Vec3{
		{1, 0.3, 0.2},
		{-0.7, 0.5, 0.9},
		{0.2, -1, -0.4},
		{1, 1, 0},
		{0.577, 0.577, 0.577},
	}
	origin := mgl64.Vec3{16.1, 16.2, 16.3}
	const maxDistance = 12.34

	for _, d := range directions {
		var cells []vec.Vec3
		var distances []float64
		Visit(origin, d, maxDistance, func(cell, normal vec.Vec3, distance float64) bool {
			if len(cells) > 0 {
				prev := cells[len(cells)-1]
				assert.Equal(t, 1, prev.DistanceSqTo(cell), "соседние ячейки должны быть смежны по грани")
				assert.Equal(t, prev, cell.Add(normal), "нормаль указывает обратно на предыдущую ячейку")
			}
			cells = append(cells, cell)
			distances = append(distances, distance)
			return true
		})

		// Число пересечённых границ до конца отрезка по каждой оси
		end := origin.Add(d.Normalize().Mul(maxDistance))
		crossings := 0
		for axis := 0; axis < 3; axis++ {
			crossings += int(math.Abs(math.Floor(end[axis]) - math.Floor(origin[axis])))
		}
		assert.Len(t, cells, crossings+1, "направление %v", d)

		seen := make(map[vec.Vec3]bool)
		for i, c := range cells {
			assert.False(t, seen[c], "ячейка %v посещена дважды", c)
			seen[c] = true
			if i > 0 {
				assert.GreaterOrEqual(t, distances[i], distances[i-1])
			}
		}
	}
}

func TestRaycast_ThinDiagonalWall(t *testing.T) {
	// Ступенчатая стенка толщиной в один блок по диагонали не должна пропускать луч
	g := newGrid(t, 16, 16, 16)
	for i := 0; i < 16; i++ {
		g.Set(i, 8, 15-i, block.LeafBlockID)
	}

	hit := NewRaycaster(g).Cast(mgl64.Vec3{0.5, 8.5, 0.5}, mgl64.Vec3{1, 0, 1}, 30)
	require.True(t, hit.Hit)
	assert.Equal(t, block.LeafBlockID, g.GetAt(hit.Position))
}
