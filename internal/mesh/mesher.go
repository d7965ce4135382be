package mesh

import (
	"github.com/Ox23du/Minecraft-V2/internal/vec"
	"github.com/Ox23du/Minecraft-V2/internal/world/block"
)

// Source сетка блоков, из которой строится меш. Реализуется world.Grid.
type Source interface {
	Get(x, y, z int) block.BlockID
	Dimensions() (sizeX, sizeY, sizeZ int)
}

// Geometry буферы вершин одного типа блока
type Geometry struct {
	Positions []float32 // x, y, z на вершину
	Normals   []float32 // нормаль грани на вершину
	Colors    []float32 // r, g, b на вершину
	UVs       []float32 // u, v на вершину
	Indices   []uint32  // по 6 на грань
}

// VertexCount число вершин в буфере
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// TriangleCount число треугольников в буфере
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// FaceCount число граней (квадов) в буфере
func (g *Geometry) FaceCount() int {
	return len(g.Indices) / 6
}

type face struct {
	normal  vec.Vec3
	corners [4][3]float32
}

// Углы единичного куба для каждой грани, порядок совпадает с vec.Directions
var faces = [6]face{
	{normal: vec.Directions[0], corners: [4][3]float32{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}}},
	{normal: vec.Directions[1], corners: [4][3]float32{{0, 0, 1}, {0, 1, 1}, {0, 1, 0}, {0, 0, 0}}},
	{normal: vec.Directions[2], corners: [4][3]float32{{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}}},
	{normal: vec.Directions[3], corners: [4][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}}},
	{normal: vec.Directions[4], corners: [4][3]float32{{1, 0, 1}, {1, 1, 1}, {0, 1, 1}, {0, 0, 1}}},
	{normal: vec.Directions[5], corners: [4][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}},
}

var quadUVs = [8]float32{0, 0, 1, 0, 1, 1, 0, 1}

// Build строит по буферу на каждый твёрдый тип блока.
//
// Грань выводится только если сосед по ней пустой или нетвёрдый (в том
// числе за пределами мира). Воздух и типы без единой грани в результат
// не попадают.
func Build(src Source) map[block.BlockID]*Geometry {
	sizeX, sizeY, sizeZ := src.Dimensions()
	result := make(map[block.BlockID]*Geometry)

	for x := 0; x < sizeX; x++ {
		for y := 0; y < sizeY; y++ {
			for z := 0; z < sizeZ; z++ {
				id := src.Get(x, y, z)
				if !block.IsSolid(id) {
					continue
				}

				for i := range faces {
					f := &faces[i]
					n := f.normal
					if block.IsSolid(src.Get(x+n.X, y+n.Y, z+n.Z)) {
						continue
					}

					geom, ok := result[id]
					if !ok {
						geom = &Geometry{}
						result[id] = geom
					}
					geom.appendFace(id, f, x, y, z)
				}
			}
		}
	}

	return result
}

func (g *Geometry) appendFace(id block.BlockID, f *face, x, y, z int) {
	base := uint32(g.VertexCount())
	nx, ny, nz := float32(f.normal.X), float32(f.normal.Y), float32(f.normal.Z)

	for i, c := range f.corners {
		g.Positions = append(g.Positions, float32(x)+c[0], float32(y)+c[1], float32(z)+c[2])
		g.Normals = append(g.Normals, nx, ny, nz)

		col := VertexColor(id, f.normal, int(base)+i)
		g.Colors = append(g.Colors, float32(col.R), float32(col.G), float32(col.B))
	}

	g.UVs = append(g.UVs, quadUVs[:]...)
	g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
}

// TotalFaces суммарное число граней во всех буферах
func TotalFaces(meshes map[block.BlockID]*Geometry) int {
	total := 0
	for _, g := range meshes {
		total += g.FaceCount()
	}
	return total
}
