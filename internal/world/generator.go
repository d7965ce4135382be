package world

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/Ox23du/Minecraft-V2/internal/logging"
	"github.com/Ox23du/Minecraft-V2/internal/util"
	"github.com/Ox23du/Minecraft-V2/internal/world/block"
)

// GeneratorMode вид ландшафта
type GeneratorMode string

const (
	ModeHills GeneratorMode = "hills"
	ModeFlat  GeneratorMode = "flat"
)

// Константы плоского мира
const (
	flatGrassLevel = 8
	flatDirtDepth  = 4
)

// Heightmap высота поверхности (y блока травы) для каждой колонки
type Heightmap struct {
	sizeX, sizeZ int
	heights      []int
}

func newHeightmap(sizeX, sizeZ int) *Heightmap {
	return &Heightmap{sizeX: sizeX, sizeZ: sizeZ, heights: make([]int, sizeX*sizeZ)}
}

// At возвращает высоту колонки (x, z)
func (h *Heightmap) At(x, z int) int {
	return h.heights[x+z*h.sizeX]
}

func (h *Heightmap) set(x, z, height int) {
	h.heights[x+z*h.sizeX] = height
}

// WorldGenerator генерирует ландшафт в существующую сетку
type WorldGenerator struct {
	Mode            GeneratorMode  // hills или flat
	Noise           util.NoiseKind // алгоритм шума высот
	NoiseScale      float64        // Масштаб основного шума (высота)
	BaseHeight      float64        // Средняя высота поверхности
	HeightVariation float64        // Амплитуда холмов
	ForestDensity   float64        // Вероятность дерева на подходящей колонке (от 0 до 1)
	RandomTrees     bool           // true: деревья не зависят от сида и меняются от запуска к запуску

	grid *Grid
}

// NewWorldGenerator создаёт генератор холмов с настройками по умолчанию
func NewWorldGenerator(grid *Grid) *WorldGenerator {
	return &WorldGenerator{
		Mode:            ModeHills,
		Noise:           util.NoisePerlin,
		NoiseScale:      0.05, // Настройка сглаженности ландшафта
		BaseHeight:      8,
		HeightVariation: 4,
		ForestDensity:   0.05, // 5% шанс появления дерева
		grid:            grid,
	}
}

// Generate очищает сетку и заполняет её ландшафтом для указанного сида.
// Ревизия сетки поднимается ровно один раз, после завершения генерации.
func (wg *WorldGenerator) Generate(seed int64) (*Heightmap, error) {
	started := time.Now()

	var (
		heights *Heightmap
		trees   int
		err     error
	)
	switch wg.Mode {
	case ModeHills, "":
		heights, trees, err = wg.hills(seed)
	case ModeFlat:
		heights = wg.flat()
	default:
		err = fmt.Errorf("неизвестный режим генерации %q", wg.Mode)
	}
	if err != nil {
		return nil, err
	}

	wg.grid.BumpRevision()

	logging.Debug("Мир сгенерирован: режим=%s сид=%d деревьев=%d за %v", wg.mode(), seed, trees, time.Since(started))
	return heights, nil
}

func (wg *WorldGenerator) mode() GeneratorMode {
	if wg.Mode == "" {
		return ModeHills
	}
	return wg.Mode
}

// clear заполняет всю сетку воздухом без изменения ревизии
func (wg *WorldGenerator) clear() {
	sizeX, sizeY, sizeZ := wg.grid.Dimensions()
	for x := 0; x < sizeX; x++ {
		for y := 0; y < sizeY; y++ {
			for z := 0; z < sizeZ; z++ {
				wg.grid.SetDirect(x, y, z, block.AirBlockID)
			}
		}
	}
}

// hills генерирует холмы по шуму и расставляет деревья
func (wg *WorldGenerator) hills(seed int64) (*Heightmap, int, error) {
	noise, err := util.NewNoise(wg.Noise, seed)
	if err != nil {
		return nil, 0, err
	}

	wg.clear()

	sizeX, sizeY, sizeZ := wg.grid.Dimensions()
	heights := newHeightmap(sizeX, sizeZ)

	for x := 0; x < sizeX; x++ {
		for z := 0; z < sizeZ; z++ {
			noiseValue := noise.Noise2D(float64(x)*wg.NoiseScale, float64(z)*wg.NoiseScale)
			height := int(math.Floor(wg.BaseHeight + noiseValue*wg.HeightVariation))
			height = clampInt(height, 1, sizeY-2)
			heights.set(x, z, height)

			wg.fillColumn(x, z, height)
		}
	}

	rng := wg.treeRand(seed)
	trees := 0
	for x := 1; x < sizeX-1; x++ {
		for z := 1; z < sizeZ-1; z++ {
			surface := heights.At(x, z)

			if rng.Float64() < wg.ForestDensity && surface < sizeY-6 {
				if isFlatSite(heights, x, z) {
					wg.placeTree(x, surface+1, z, rng)
					trees++
				}
			}
		}
	}

	return heights, trees, nil
}

// fillColumn камень снизу, три слоя земли, трава на поверхности
func (wg *WorldGenerator) fillColumn(x, z, height int) {
	for y := 0; y <= height; y++ {
		switch {
		case y == height:
			wg.grid.SetDirect(x, y, z, block.GrassBlockID)
		case y >= height-3:
			wg.grid.SetDirect(x, y, z, block.DirtBlockID)
		default:
			wg.grid.SetDirect(x, y, z, block.StoneBlockID)
		}
	}
}

// treeRand источник случайности для деревьев. По умолчанию выводится из сида мира,
// чтобы весь мир воспроизводился; RandomTrees возвращает поведение без сида.
func (wg *WorldGenerator) treeRand(seed int64) *rand.Rand {
	if wg.RandomTrees {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(seed*31 + 17))
}

// isFlatSite проверяет, что высоты 3x3 вокруг колонки отличаются от центра не больше чем на 1
func isFlatSite(heights *Heightmap, x, z int) bool {
	center := heights.At(x, z)
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if absInt(heights.At(x+dx, z+dz)-center) > 1 {
				return false
			}
		}
	}
	return true
}

// placeTree ставит ствол из 3-4 блоков и крону из двух колец 3x3 и верхнего листа
func (wg *WorldGenerator) placeTree(x, y, z int, rng *rand.Rand) {
	_, maxY, _ := wg.grid.Dimensions()
	trunkHeight := 3 + rng.Intn(2)

	for i := 0; i < trunkHeight; i++ {
		if y+i < maxY {
			wg.grid.SetDirect(x, y+i, z, block.LogBlockID)
		}
	}

	leafY := y + trunkHeight
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			for dy := 0; dy <= 1; dy++ {
				if leafY+dy >= maxY {
					continue
				}
				// Центр кольца пропускаем, остальные листья с вероятностью 80%
				if !(dx == 0 && dz == 0) && rng.Float64() > 0.2 {
					wg.grid.SetDirect(x+dx, leafY+dy, z+dz, block.LeafBlockID)
				}
			}
		}
	}

	if leafY+2 < maxY {
		wg.grid.SetDirect(x, leafY+2, z, block.LeafBlockID)
	}
}

// flat генерирует плоский мир: трава на y=8, четыре слоя земли, камень ниже
func (wg *WorldGenerator) flat() *Heightmap {
	wg.clear()

	sizeX, sizeY, sizeZ := wg.grid.Dimensions()
	grassLevel := clampInt(flatGrassLevel, 0, sizeY-1)
	heights := newHeightmap(sizeX, sizeZ)

	for x := 0; x < sizeX; x++ {
		for z := 0; z < sizeZ; z++ {
			heights.set(x, z, grassLevel)
			wg.grid.SetDirect(x, grassLevel, z, block.GrassBlockID)

			for y := grassLevel - 1; y >= grassLevel-flatDirtDepth && y >= 0; y-- {
				wg.grid.SetDirect(x, y, z, block.DirtBlockID)
			}
			for y := grassLevel - flatDirtDepth - 1; y >= 0; y-- {
				wg.grid.SetDirect(x, y, z, block.StoneBlockID)
			}
		}
	}

	return heights
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
