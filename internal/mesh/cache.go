package mesh

import (
	"time"

	"github.com/Ox23du/Minecraft-V2/internal/logging"
	"github.com/Ox23du/Minecraft-V2/internal/world/block"
)

// VersionedSource сетка с монотонным счётчиком изменений
type VersionedSource interface {
	Source
	Revision() uint64
}

// Cache хранит последний построенный меш и перестраивает его только
// когда ревизия сетки изменилась
type Cache struct {
	source   VersionedSource
	revision uint64
	built    bool
	current  map[block.BlockID]*Geometry

	// OnRebuild вызывается после каждой перестройки, если задан
	OnRebuild func(meshes map[block.BlockID]*Geometry, took time.Duration)
}

// NewCache создаёт пустой кэш; первый Sync всегда строит меш
func NewCache(source VersionedSource) *Cache {
	return &Cache{source: source}
}

// Sync возвращает актуальный меш и true, если он был перестроен
func (c *Cache) Sync() (map[block.BlockID]*Geometry, bool) {
	rev := c.source.Revision()
	if c.built && rev == c.revision {
		return c.current, false
	}

	start := time.Now()
	c.current = Build(c.source)
	c.revision = rev
	c.built = true
	took := time.Since(start)

	logging.Debug("🧱 Меш перестроен: ревизия %d, граней %d, %v", rev, TotalFaces(c.current), took)
	if c.OnRebuild != nil {
		c.OnRebuild(c.current, took)
	}
	return c.current, true
}

// Current последний построенный меш (nil до первого Sync)
func (c *Cache) Current() map[block.BlockID]*Geometry {
	return c.current
}

// Revision ревизия сетки, из которой построен текущий меш
func (c *Cache) Revision() uint64 {
	return c.revision
}
