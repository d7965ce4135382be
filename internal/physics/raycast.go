package physics

import (
	"math"

	"github.com/Ox23du/Minecraft-V2/internal/vec"
	"github.com/Ox23du/Minecraft-V2/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultReach дальность взаимодействия игрока с блоками
const DefaultReach = 5.0

// axisEpsilon компонента направления меньше этого значения считается нулевой
const axisEpsilon = 1e-12

// RaycastHit результат трассировки луча
type RaycastHit struct {
	Hit      bool
	Position vec.Vec3 // воксель, в который попал луч
	Normal   vec.Vec3 // нормаль грани, через которую луч вошёл в воксель
	Distance float64  // пройденное расстояние вдоль нормализованного луча
}

// Raycaster ищет первый непустой воксель вдоль луча
type Raycaster struct {
	world VoxelReader
}

// NewRaycaster создаёт трассировщик для указанного мира
func NewRaycaster(world VoxelReader) *Raycaster {
	return &Raycaster{world: world}
}

// Cast возвращает первый непустой воксель на расстоянии не больше maxDistance.
// Направление не обязано быть нормализованным, но не может быть нулевым.
func (r *Raycaster) Cast(origin, direction mgl64.Vec3, maxDistance float64) RaycastHit {
	var hit RaycastHit
	Visit(origin, direction, maxDistance, func(cell, normal vec.Vec3, distance float64) bool {
		if r.world.Get(cell.X, cell.Y, cell.Z) == block.AirBlockID {
			return true
		}
		hit = RaycastHit{Hit: true, Position: cell, Normal: normal, Distance: distance}
		return false
	})
	return hit
}

// Visit обходит воксели вдоль луча алгоритмом Amanatides–Woo (3D DDA).
//
// fn получает текущий воксель, нормаль грани входа (нулевую для стартового
// вокселя) и расстояние до точки входа; возврат false прекращает обход.
// Обход заканчивается, когда расстояние превышает maxDistance. Каждый
// пересечённый воксель посещается ровно один раз, соседние воксели всегда
// смежны по грани.
func Visit(origin, direction mgl64.Vec3, maxDistance float64, fn func(cell, normal vec.Vec3, distance float64) bool) {
	length := direction.Len()
	if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
		panic("raycast: нулевой или некорректный вектор направления")
	}
	dir := direction.Mul(1 / length)

	start := vec.FloorVec3(origin)
	cell := [3]int{start.X, start.Y, start.Z}

	var (
		step   [3]int
		tDelta [3]float64
		tMax   [3]float64
	)
	for axis := 0; axis < 3; axis++ {
		d := dir[axis]
		if d > 0 {
			step[axis] = 1
		} else {
			step[axis] = -1
		}

		// Ось, параллельная лучу, никогда не выбирается для шага
		if math.Abs(d) < axisEpsilon {
			tDelta[axis] = math.Inf(1)
			tMax[axis] = math.Inf(1)
			continue
		}

		tDelta[axis] = math.Abs(1 / d)
		c := float64(cell[axis])
		if d > 0 {
			tMax[axis] = (c + 1 - origin[axis]) * tDelta[axis]
		} else {
			tMax[axis] = (origin[axis] - c) * tDelta[axis]
		}
	}

	distance := 0.0
	var normal vec.Vec3

	for distance <= maxDistance {
		if !fn(vec.Vec3{X: cell[0], Y: cell[1], Z: cell[2]}, normal, distance) {
			return
		}

		var axis int
		switch {
		case tMax[0] < tMax[1] && tMax[0] < tMax[2]:
			axis = 0
		case tMax[1] < tMax[2]:
			axis = 1
		default:
			axis = 2
		}

		cell[axis] += step[axis]
		distance = tMax[axis]
		tMax[axis] += tDelta[axis]

		normal = vec.Vec3{}
		switch axis {
		case 0:
			normal.X = -step[0]
		case 1:
			normal.Y = -step[1]
		case 2:
			normal.Z = -step[2]
		}
	}
}
