package block

import "sort"

var registry = make(map[BlockID]Kind)

// Register добавляет описание типа блока в регистр
func Register(kind Kind) {
	registry[kind.ID] = kind
}

// Get возвращает описание для указанного ID
func Get(id BlockID) (Kind, bool) {
	kind, exists := registry[id]
	return kind, exists
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := registry[id]
	return exists
}

// IsSolid возвращает true, если блок участвует в коллизиях и отсечении граней.
// Неизвестные ID считаются несплошными.
func IsSolid(id BlockID) bool {
	kind, exists := registry[id]
	return exists && kind.Solid
}

// IDs возвращает все зарегистрированные ID в порядке возрастания
func IDs() []BlockID {
	ids := make([]BlockID, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// BlockID представляет идентификатор блока
type BlockID uint16

// Константы ID блоков. Набор закрыт: генератор, мешер и физика
// рассчитывают именно на эти значения.
const (
	AirBlockID   BlockID = iota // 0 – пустота
	DirtBlockID                 // 1
	GrassBlockID                // 2
	StoneBlockID                // 3
	LogBlockID                  // 4 – ствол дерева
	LeafBlockID                 // 5 – листва
)
