package world

import (
	"errors"
	"fmt"

	"github.com/Ox23du/Minecraft-V2/internal/vec"
	"github.com/Ox23du/Minecraft-V2/internal/world/block"
)

// Размеры мира по умолчанию
const (
	DefaultSizeX = 128
	DefaultSizeY = 32
	DefaultSizeZ = 128
)

// ErrInvalidDimensions возвращается при попытке создать сетку с неположительными размерами
var ErrInvalidDimensions = errors.New("размеры мира должны быть положительными")

// Grid плотная трёхмерная сетка блоков фиксированного размера.
//
// Чтение за пределами мира возвращает воздух, запись за пределы молча
// игнорируется. Каждая принятая запись увеличивает счётчик ревизий,
// по которому рендер решает, нужно ли перестроить меш.
//
// Сетка не потокобезопасна: все чтения и записи выполняются в одном
// потоке игрового цикла.
type Grid struct {
	sizeX, sizeY, sizeZ int
	blocks              []block.BlockID
	revision            uint64
}

// NewGrid создаёт пустую (заполненную воздухом) сетку
func NewGrid(sizeX, sizeY, sizeZ int) (*Grid, error) {
	if sizeX <= 0 || sizeY <= 0 || sizeZ <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidDimensions, sizeX, sizeY, sizeZ)
	}

	return &Grid{
		sizeX:  sizeX,
		sizeY:  sizeY,
		sizeZ:  sizeZ,
		blocks: make([]block.BlockID, sizeX*sizeY*sizeZ),
	}, nil
}

// Dimensions возвращает размеры мира
func (g *Grid) Dimensions() (sizeX, sizeY, sizeZ int) {
	return g.sizeX, g.sizeY, g.sizeZ
}

// Volume возвращает общее число ячеек
func (g *Grid) Volume() int {
	return len(g.blocks)
}

// InBounds проверяет, лежит ли координата внутри мира
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.sizeX && y >= 0 && y < g.sizeY && z >= 0 && z < g.sizeZ
}

// Index переводит (x,y,z) в индекс плоского массива. Координата должна быть внутри мира.
func (g *Grid) Index(x, y, z int) int {
	return x + y*g.sizeX + z*g.sizeX*g.sizeY
}

// Coords обратное преобразование к Index
func (g *Grid) Coords(index int) vec.Vec3 {
	return vec.Vec3{
		X: index % g.sizeX,
		Y: (index / g.sizeX) % g.sizeY,
		Z: index / (g.sizeX * g.sizeY),
	}
}

// Get возвращает блок; за пределами мира всегда воздух
func (g *Grid) Get(x, y, z int) block.BlockID {
	if !g.InBounds(x, y, z) {
		return block.AirBlockID
	}
	return g.blocks[g.Index(x, y, z)]
}

// GetAt то же, что Get, для координаты вокселя
func (g *Grid) GetAt(pos vec.Vec3) block.BlockID {
	return g.Get(pos.X, pos.Y, pos.Z)
}

// Set записывает блок и увеличивает ревизию. Запись за пределы мира игнорируется.
func (g *Grid) Set(x, y, z int, id block.BlockID) {
	if !g.InBounds(x, y, z) {
		return
	}
	g.blocks[g.Index(x, y, z)] = id
	g.revision++
}

// SetAt то же, что Set, для координаты вокселя
func (g *Grid) SetAt(pos vec.Vec3, id block.BlockID) {
	g.Set(pos.X, pos.Y, pos.Z, id)
}

// SetDirect записывает блок без изменения ревизии.
// Используется генератором: ревизия поднимается один раз по окончании генерации.
func (g *Grid) SetDirect(x, y, z int, id block.BlockID) {
	if !g.InBounds(x, y, z) {
		return
	}
	g.blocks[g.Index(x, y, z)] = id
}

// Revision возвращает текущую ревизию содержимого
func (g *Grid) Revision() uint64 {
	return g.revision
}

// BumpRevision отмечает изменение содержимого, сделанное прямыми записями
func (g *Grid) BumpRevision() {
	g.revision++
}

// Neighbors возвращает соседей ячейки по 6 направлениям, лежащих внутри мира
func (g *Grid) Neighbors(pos vec.Vec3) []vec.Vec3 {
	neighbors := make([]vec.Vec3, 0, len(vec.Directions))
	for _, dir := range vec.Directions {
		n := pos.Add(dir)
		if g.InBounds(n.X, n.Y, n.Z) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// ColumnHeight возвращает высоту самого верхнего непустого блока колонки или -1
func (g *Grid) ColumnHeight(x, z int) int {
	for y := g.sizeY - 1; y >= 0; y-- {
		if g.Get(x, y, z) != block.AirBlockID {
			return y
		}
	}
	return -1
}

// Count возвращает количество ячеек указанного типа
func (g *Grid) Count(id block.BlockID) int {
	n := 0
	for _, b := range g.blocks {
		if b == id {
			n++
		}
	}
	return n
}
