package game

import (
	"time"

	"github.com/Ox23du/Minecraft-V2/internal/physics"
	"github.com/Ox23du/Minecraft-V2/internal/vec"
)

// BreakState прогресс ломания блока при удержании кнопки.
// Время считается по тикам симуляции, а не по часам.
type BreakState struct {
	active  bool
	target  vec.Vec3
	elapsed time.Duration
	total   time.Duration
}

// Active true, пока кнопка удерживается и есть цель
func (b *BreakState) Active() bool {
	return b.active
}

// Target текущая цель ломания
func (b *BreakState) Target() (vec.Vec3, bool) {
	return b.target, b.active
}

// Progress доля выполненного ломания в диапазоне [0,1]
func (b *BreakState) Progress() float64 {
	if !b.active || b.total <= 0 {
		return 0
	}
	p := float64(b.elapsed) / float64(b.total)
	if p > 1 {
		return 1
	}
	return p
}

// Start начинает ломание блока под прицелом. Промах ничего не начинает.
func (b *BreakState) Start(hit physics.RaycastHit, breakTime time.Duration) {
	if !hit.Hit {
		b.Release()
		return
	}
	b.retarget(hit.Position, breakTime)
}

// Release сбрасывает цель и прогресс
func (b *BreakState) Release() {
	*b = BreakState{}
}

// Update продвигает ломание на dt. При смене цели прогресс начинается заново,
// при потере цели ломание прекращается. Возвращает true, когда блок доломан;
// после этого состояние сбрасывается и для следующего блока нужно новое нажатие.
func (b *BreakState) Update(hit physics.RaycastHit, dt, breakTime time.Duration) (vec.Vec3, bool) {
	if !b.active {
		return vec.Vec3{}, false
	}

	if !hit.Hit {
		b.Release()
		return vec.Vec3{}, false
	}

	if !hit.Position.Equals(b.target) {
		b.retarget(hit.Position, breakTime)
		return vec.Vec3{}, false
	}

	b.elapsed += dt
	if b.elapsed < b.total {
		return vec.Vec3{}, false
	}

	target := b.target
	b.Release()
	return target, true
}

func (b *BreakState) retarget(pos vec.Vec3, breakTime time.Duration) {
	b.active = true
	b.target = pos
	b.elapsed = 0
	b.total = breakTime
}
