package physics

import (
	"math"

	"github.com/Ox23du/Minecraft-V2/internal/vec"
	"github.com/Ox23du/Minecraft-V2/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
)

// Размеры коллайдера игрока в блоках
const (
	PlayerWidth  = 0.6
	PlayerHeight = 1.8
)

// VoxelReader доступ на чтение к сетке блоков.
// Реализуется world.Grid.
type VoxelReader interface {
	Get(x, y, z int) block.BlockID
	InBounds(x, y, z int) bool
	Dimensions() (sizeX, sizeY, sizeZ int)
}

// BoxCollider осевой параллелепипед, привязанный к ногам: центр по X/Z, низ по Y
type BoxCollider struct {
	Width  float64 // Ширина в блоках
	Height float64 // Высота в блоках
}

// NewBoxCollider создаёт новый коллайдер с указанными размерами
func NewBoxCollider(width, height float64) *BoxCollider {
	return &BoxCollider{
		Width:  width,
		Height: height,
	}
}

// NewPlayerCollider коллайдер игрока 0.6x1.8
func NewPlayerCollider() *BoxCollider {
	return NewBoxCollider(PlayerWidth, PlayerHeight)
}

// GetCollisionPoints возвращает 8 углов коллайдера в позиции pos
func GetCollisionPoints(pos mgl64.Vec3, collider *BoxCollider) [8]mgl64.Vec3 {
	halfWidth := collider.Width / 2
	height := collider.Height
	x, y, z := pos.X(), pos.Y(), pos.Z()

	return [8]mgl64.Vec3{
		{x - halfWidth, y, z - halfWidth},
		{x + halfWidth, y, z - halfWidth},
		{x - halfWidth, y, z + halfWidth},
		{x + halfWidth, y, z + halfWidth},
		{x - halfWidth, y + height, z - halfWidth},
		{x + halfWidth, y + height, z - halfWidth},
		{x - halfWidth, y + height, z + halfWidth},
		{x + halfWidth, y + height, z + halfWidth},
	}
}

// CheckCollision true, если хотя бы один угол коллайдера попадает в непустой
// блок или за пределы мира
func CheckCollision(pos mgl64.Vec3, collider *BoxCollider, world VoxelReader) bool {
	for _, corner := range GetCollisionPoints(pos, collider) {
		cell := vec.FloorVec3(corner)
		if !world.InBounds(cell.X, cell.Y, cell.Z) {
			return true
		}
		if world.Get(cell.X, cell.Y, cell.Z) != block.AirBlockID {
			return true
		}
	}
	return false
}

// CanMoveToPosition проверяет, может ли сущность с указанным коллайдером переместиться в указанную позицию
func CanMoveToPosition(newPos mgl64.Vec3, collider *BoxCollider, world VoxelReader) bool {
	return !CheckCollision(newPos, collider, world)
}

// IntersectsBlock проверяет пересечение коллайдера с единичным блоком в ячейке cell
func (bc *BoxCollider) IntersectsBlock(pos mgl64.Vec3, cell vec.Vec3) bool {
	halfWidth := bc.Width / 2
	minX, maxX := pos.X()-halfWidth, pos.X()+halfWidth
	minY, maxY := pos.Y(), pos.Y()+bc.Height
	minZ, maxZ := pos.Z()-halfWidth, pos.Z()+halfWidth

	bx, by, bz := float64(cell.X), float64(cell.Y), float64(cell.Z)

	return !(maxX <= bx || minX >= bx+1 ||
		maxY <= by || minY >= by+1 ||
		maxZ <= bz || minZ >= bz+1)
}

// supportSurface высота верхней грани блока под точкой y (для посадки на землю)
func supportSurface(y float64) float64 {
	return math.Floor(y) + 1
}
