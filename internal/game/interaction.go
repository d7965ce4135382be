package game

import (
	"errors"
	"fmt"

	"github.com/Ox23du/Minecraft-V2/internal/logging"
	"github.com/Ox23du/Minecraft-V2/internal/physics"
	"github.com/Ox23du/Minecraft-V2/internal/vec"
	"github.com/Ox23du/Minecraft-V2/internal/world/block"
)

// Причины отказа в установке блока
var (
	ErrNoTarget        = errors.New("нет блока под прицелом")
	ErrOutOfBounds     = errors.New("позиция за пределами мира")
	ErrOccupied        = errors.New("позиция занята")
	ErrIntersectsActor = errors.New("блок пересекается с игроком")
	ErrNotPlaceable    = errors.New("этот блок нельзя поставить")
)

// Aim трассирует луч из глаз игрока по направлению взгляда на дальность досягаемости
func (s *Session) Aim() physics.RaycastHit {
	hit := s.raycaster.Cast(s.actor.EyePosition(), s.actor.LookDirection(), s.reach)
	s.metrics.ObserveRaycast(hit.Hit)
	return hit
}

// BreakBlock мгновенно ломает блок под прицелом
func (s *Session) BreakBlock() (block.BlockID, bool) {
	hit := s.Aim()
	if !hit.Hit {
		return block.AirBlockID, false
	}
	return s.BreakBlockAt(hit.Position)
}

// BreakBlockAt заменяет блок воздухом и возвращает, что было сломано.
// Пустая ячейка или ячейка вне мира ничего не меняют и ревизию не поднимают.
func (s *Session) BreakBlockAt(pos vec.Vec3) (block.BlockID, bool) {
	id := s.grid.GetAt(pos)
	if id == block.AirBlockID {
		return block.AirBlockID, false
	}

	s.grid.SetAt(pos, block.AirBlockID)

	kind, _ := block.Get(id)
	s.metrics.BlocksBroken.WithLabelValues(kind.Name).Inc()
	logging.LogBlockChange("break", pos.X, pos.Y, pos.Z, uint16(id), s.grid.Revision())
	return id, true
}

// PlaceBlock ставит блок к грани, в которую смотрит игрок
func (s *Session) PlaceBlock(id block.BlockID) error {
	return s.PlaceAt(s.Aim(), id)
}

// PlaceAt ставит блок в соседнюю с попаданием ячейку со стороны нормали.
// Ячейка должна быть в мире, пустой и не пересекаться с коллайдером игрока.
func (s *Session) PlaceAt(hit physics.RaycastHit, id block.BlockID) error {
	if !hit.Hit {
		return ErrNoTarget
	}
	if !block.IsSolid(id) {
		return fmt.Errorf("%w: %d", ErrNotPlaceable, id)
	}

	pos := hit.Position.Add(hit.Normal)
	if !s.grid.InBounds(pos.X, pos.Y, pos.Z) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, pos)
	}
	if s.grid.GetAt(pos) != block.AirBlockID {
		return fmt.Errorf("%w: %v", ErrOccupied, pos)
	}
	if s.step.Collider().IntersectsBlock(s.actor.Position, pos) {
		return ErrIntersectsActor
	}

	s.grid.SetAt(pos, id)

	kind, _ := block.Get(id)
	s.metrics.BlocksPlaced.WithLabelValues(kind.Name).Inc()
	logging.LogBlockChange("place", pos.X, pos.Y, pos.Z, uint16(id), s.grid.Revision())
	return nil
}
