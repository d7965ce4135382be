package main

import (
	"github.com/Ox23du/Minecraft-V2/internal/game"
	"github.com/Ox23du/Minecraft-V2/internal/physics"
)

// demoScript циклический сценарий ввода для безголовой симуляции:
// приземлиться, пройтись с прыжками, сломать блок под ногами, поставить его рядом
type demoScript struct {
	tickRate int
	tick     int
}

func newDemoScript(tickRate int) *demoScript {
	return &demoScript{tickRate: tickRate}
}

// Длительности фаз в секундах
const (
	phaseSettle = 2
	phaseWalk   = 4
	phaseLook   = 1
	phaseBreak  = 4
	phasePlace  = 1
	scriptCycle = phaseSettle + phaseWalk + phaseLook + phaseBreak + phasePlace
)

// Next возвращает ввод для следующего тика
func (d *demoScript) Next() game.FrameInput {
	rate := d.tickRate
	t := d.tick % (scriptCycle * rate)
	d.tick++

	var in game.FrameInput
	walkEnd := (phaseSettle + phaseWalk) * rate
	lookEnd := walkEnd + phaseLook*rate
	breakEnd := lookEnd + phaseBreak*rate

	switch {
	case t < phaseSettle*rate:
		// стоим, пока игрок не приземлится

	case t < walkEnd:
		in.Move = physics.Intents{Forward: true}
		in.MouseDX = 2
		// прыжок раз в секунду
		if (t-phaseSettle*rate)%rate == 0 {
			in.Move.Jump = true
		}

	case t < lookEnd:
		// опускаем взгляд вниз до упора
		in.MouseDY = 50

	case t == lookEnd:
		in.BreakPressed = true

	case t < breakEnd-1:
		// удерживаем кнопку

	case t == breakEnd-1:
		in.BreakReleased = true

	default:
		// поднимаем взгляд и ставим блок, если он есть
		in.MouseDY = -5
		if t == scriptCycle*rate-1 {
			in.Place = true
			in.SelectSlot = 1
		}
	}

	return in
}
