package block

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultBreakTime время ломания блока при удержании кнопки
const DefaultBreakTime = 3 * time.Second

// Color базовый цвет блока, каналы в диапазоне [0,1]
type Color struct {
	R, G, B float64
}

// ParseHexColor разбирает строку вида "#RRGGBB"
func ParseHexColor(hex string) (Color, error) {
	clean := strings.TrimPrefix(hex, "#")
	if len(clean) != 6 {
		return Color{}, fmt.Errorf("неверный формат цвета %q", hex)
	}

	value, err := strconv.ParseUint(clean, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("неверный формат цвета %q: %w", hex, err)
	}

	return Color{
		R: float64((value>>16)&0xFF) / 255,
		G: float64((value>>8)&0xFF) / 255,
		B: float64(value&0xFF) / 255,
	}, nil
}

// MustParseHexColor как ParseHexColor, но паникует на неверном вводе.
// Используется только для статической таблицы блоков.
func MustParseHexColor(hex string) Color {
	c, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Kind описывает статические свойства типа блока
type Kind struct {
	ID        BlockID
	Name      string
	Solid     bool          // участвует в коллизиях и отсечении граней
	Color     Color         // базовый цвет для вершин меша
	BreakTime time.Duration // сколько держать кнопку, чтобы сломать
	Yield     BlockID       // что попадает в инвентарь при ломании
}

func init() {
	Register(Kind{ID: AirBlockID, Name: "Air", Solid: false, Yield: AirBlockID})
	Register(Kind{
		ID:        DirtBlockID,
		Name:      "Dirt",
		Solid:     true,
		Color:     MustParseHexColor("#8B5A2B"),
		BreakTime: DefaultBreakTime,
		Yield:     DirtBlockID,
	})
	Register(Kind{
		ID:        GrassBlockID,
		Name:      "Grass",
		Solid:     true,
		Color:     MustParseHexColor("#5A8F3C"),
		BreakTime: DefaultBreakTime,
		Yield:     GrassBlockID,
	})
	Register(Kind{
		ID:        StoneBlockID,
		Name:      "Stone",
		Solid:     true,
		Color:     MustParseHexColor("#7F7F7F"),
		BreakTime: DefaultBreakTime,
		Yield:     StoneBlockID,
	})
	Register(Kind{
		ID:        LogBlockID,
		Name:      "Log",
		Solid:     true,
		Color:     MustParseHexColor("#6B4A2B"),
		BreakTime: DefaultBreakTime,
		Yield:     LogBlockID,
	})
	Register(Kind{
		ID:        LeafBlockID,
		Name:      "Leaf",
		Solid:     true,
		Color:     MustParseHexColor("#3F8A34"),
		BreakTime: DefaultBreakTime,
		Yield:     LeafBlockID,
	})
}
