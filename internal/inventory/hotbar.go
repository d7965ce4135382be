package inventory

import (
	"github.com/Ox23du/Minecraft-V2/internal/world/block"
)

const (
	// HotbarSize число слотов панели быстрого доступа
	HotbarSize = 9
	// MaxStack максимальное количество блоков в одном слоте
	MaxStack = 64
)

// Slot один слот панели; пустой слот хранит воздух и количество 0
type Slot struct {
	BlockID  block.BlockID
	Quantity int
}

// Empty true, если в слоте ничего нет
func (s Slot) Empty() bool {
	return s.Quantity <= 0
}

// Hotbar панель быстрого доступа игрока
type Hotbar struct {
	slots    [HotbarSize]Slot
	selected int
}

// NewHotbar создаёт пустую панель с выбранным первым слотом
func NewHotbar() *Hotbar {
	return &Hotbar{}
}

// Select выбирает слот по индексу; индекс вне диапазона игнорируется
func (h *Hotbar) Select(index int) bool {
	if index < 0 || index >= HotbarSize {
		return false
	}
	h.selected = index
	return true
}

// Scroll сдвигает выбор по колесу мыши с переходом через край
func (h *Hotbar) Scroll(delta int) {
	switch {
	case delta > 0:
		delta = 1
	case delta < 0:
		delta = -1
	default:
		return
	}
	h.selected = (h.selected + delta + HotbarSize) % HotbarSize
}

// SelectedIndex индекс выбранного слота
func (h *Hotbar) SelectedIndex() int {
	return h.selected
}

// Selected возвращает выбранный слот, если он не пуст
func (h *Hotbar) Selected() (Slot, bool) {
	slot := h.slots[h.selected]
	if slot.Empty() {
		return Slot{}, false
	}
	return slot, true
}

// Slot возвращает копию слота по индексу
func (h *Hotbar) Slot(index int) Slot {
	if index < 0 || index >= HotbarSize {
		return Slot{}
	}
	return h.slots[index]
}

// Slots копия всех слотов
func (h *Hotbar) Slots() [HotbarSize]Slot {
	return h.slots
}

// Add кладёт блоки сначала в первый стек того же типа, остаток в первый
// пустой слот. Возвращает, сколько удалось положить; что не влезло, теряется.
func (h *Hotbar) Add(id block.BlockID, quantity int) int {
	if id == block.AirBlockID || quantity <= 0 {
		return 0
	}

	added := 0
	for i := range h.slots {
		slot := &h.slots[i]
		if slot.BlockID == id && !slot.Empty() {
			n := min(quantity, MaxStack-slot.Quantity)
			slot.Quantity += n
			quantity -= n
			added += n
			break
		}
	}

	if quantity > 0 {
		for i := range h.slots {
			slot := &h.slots[i]
			if slot.Empty() {
				n := min(quantity, MaxStack)
				*slot = Slot{BlockID: id, Quantity: n}
				added += n
				break
			}
		}
	}

	return added
}

// Remove забирает блоки из слота; опустевший слот становится воздухом
func (h *Hotbar) Remove(index, quantity int) bool {
	if index < 0 || index >= HotbarSize || quantity <= 0 {
		return false
	}

	slot := &h.slots[index]
	if slot.Empty() {
		return false
	}

	slot.Quantity = max(0, slot.Quantity-quantity)
	if slot.Quantity == 0 {
		slot.BlockID = block.AirBlockID
	}
	return true
}

// Has true, если хотя бы один слот содержит блоки этого типа
func (h *Hotbar) Has(id block.BlockID) bool {
	for _, slot := range h.slots {
		if slot.BlockID == id && !slot.Empty() {
			return true
		}
	}
	return false
}
