package inventory

import (
	"testing"

	"github.com/Ox23du/Minecraft-V2/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHotbar_AddStacks(t *testing.T) {
	h := NewHotbar()

	assert.Equal(t, 1, h.Add(block.DirtBlockID, 1))
	assert.Equal(t, 1, h.Add(block.DirtBlockID, 1))
	assert.Equal(t, Slot{BlockID: block.DirtBlockID, Quantity: 2}, h.Slot(0))

	assert.Equal(t, 1, h.Add(block.StoneBlockID, 1))
	assert.Equal(t, block.StoneBlockID, h.Slot(1).BlockID, "новый тип занимает первый пустой слот")

	assert.Equal(t, 0, h.Add(block.AirBlockID, 5), "воздух в инвентарь не попадает")
	assert.Equal(t, 0, h.Add(block.DirtBlockID, 0))
}

func TestHotbar_StackOverflow(t *testing.T) {
	h := NewHotbar()

	assert.Equal(t, 64, h.Add(block.LogBlockID, 64))
	assert.Equal(t, 10, h.Add(block.LogBlockID, 10), "остаток уходит в пустой слот")
	assert.Equal(t, MaxStack, h.Slot(0).Quantity)
	assert.Equal(t, Slot{BlockID: block.LogBlockID, Quantity: 10}, h.Slot(1))

	assert.Equal(t, 64, h.Add(block.LeafBlockID, 100), "в один слот не больше 64")
}

func TestHotbar_Full(t *testing.T) {
	h := NewHotbar()
	for i := 0; i < HotbarSize; i++ {
		require.Equal(t, MaxStack, h.Add(block.StoneBlockID, MaxStack))
	}
	assert.Equal(t, 0, h.Add(block.StoneBlockID, 1))
	assert.Equal(t, 0, h.Add(block.DirtBlockID, 1))
}

func TestHotbar_Remove(t *testing.T) {
	h := NewHotbar()
	h.Add(block.GrassBlockID, 2)

	assert.True(t, h.Remove(0, 1))
	assert.Equal(t, 1, h.Slot(0).Quantity)

	assert.True(t, h.Remove(0, 5))
	assert.Equal(t, Slot{BlockID: block.AirBlockID}, h.Slot(0), "опустевший слот очищается")
	assert.False(t, h.Has(block.GrassBlockID))

	assert.False(t, h.Remove(0, 1), "пустой слот")
	assert.False(t, h.Remove(-1, 1))
	assert.False(t, h.Remove(HotbarSize, 1))
}

func TestHotbar_Selection(t *testing.T) {
	h := NewHotbar()
	assert.Equal(t, 0, h.SelectedIndex())

	_, ok := h.Selected()
	assert.False(t, ok, "пустой слот не выбирается как предмет")

	assert.True(t, h.Select(4))
	assert.False(t, h.Select(9))
	assert.Equal(t, 4, h.SelectedIndex())

	h.Scroll(-3)
	assert.Equal(t, 3, h.SelectedIndex(), "колесо сдвигает ровно на один слот")

	h.Select(8)
	h.Scroll(1)
	assert.Equal(t, 0, h.SelectedIndex())
	h.Scroll(-1)
	assert.Equal(t, 8, h.SelectedIndex())
	h.Scroll(0)
	assert.Equal(t, 8, h.SelectedIndex())

	h.Add(block.DirtBlockID, 3)
	h.Select(0)
	slot, ok := h.Selected()
	require.True(t, ok)
	assert.Equal(t, block.DirtBlockID, slot.BlockID)
}
