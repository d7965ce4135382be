package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// EyeHeight высота камеры над ногами
const EyeHeight = 1.6

// Intents снимок нажатых клавиш движения за тик
type Intents struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool
}

// HasHorizontal true, если зажата хотя бы одна клавиша горизонтального движения
func (i Intents) HasHorizontal() bool {
	return i.Forward || i.Backward || i.Left || i.Right
}

// ActorState состояние игрока. Позиция привязана к ногам.
type ActorState struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Yaw      float64 // поворот вокруг Y, радианы
	Pitch    float64 // наклон вверх/вниз, радианы, [-π/2, π/2]
	Input    Intents
	OnGround bool
}

// NewActorState создаёт игрока в точке спавна, в воздухе и без скорости
func NewActorState(spawn mgl64.Vec3) ActorState {
	return ActorState{Position: spawn}
}

// EyePosition возвращает позицию камеры
func (a ActorState) EyePosition() mgl64.Vec3 {
	return a.Position.Add(mgl64.Vec3{0, EyeHeight, 0})
}

// LookDirection единичный вектор взгляда по yaw/pitch
func (a ActorState) LookDirection() mgl64.Vec3 {
	sinYaw, cosYaw := math.Sincos(a.Yaw)
	sinPitch, cosPitch := math.Sincos(a.Pitch)
	return mgl64.Vec3{
		-sinYaw * cosPitch,
		sinPitch,
		-cosYaw * cosPitch,
	}
}

// Look поворачивает взгляд на приращения мыши; pitch ограничен ±π/2
func (a *ActorState) Look(deltaYaw, deltaPitch float64) {
	a.Yaw -= deltaYaw
	a.Pitch = mgl64.Clamp(a.Pitch-deltaPitch, -math.Pi/2, math.Pi/2)
}
