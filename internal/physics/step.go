package physics

import (
	"math"

	"github.com/Ox23du/Minecraft-V2/internal/vec"
	"github.com/go-gl/mathgl/mgl64"
)

// Параметры движения игрока
const (
	Gravity        = -32.0    // блоков/с²
	JumpHeight     = 1.75     // высота прыжка в блоках
	MoveSpeed      = 5.0      // блоков/с
	GroundDamping  = 0.8      // множитель горизонтальной скорости за тик без ввода
	MaxDeltaTime   = 1.0 / 30 // ограничение шага на просадках кадров
	GroundProbe    = 0.1      // глубина проверки опоры под ногами
	contactEpsilon = 1e-3     // зазор при посадке и упоре в потолок
)

// JumpVelocity начальная вертикальная скорость прыжка на высоту JumpHeight
var JumpVelocity = math.Sqrt(2 * math.Abs(Gravity) * JumpHeight)

// Step продвигает состояние игрока на один тик с разрешением коллизий по осям
type Step struct {
	world    VoxelReader
	collider *BoxCollider
}

// NewStep создаёт физический шаг для мира с коллайдером игрока
func NewStep(world VoxelReader) *Step {
	return &Step{world: world, collider: NewPlayerCollider()}
}

// Collider возвращает коллайдер игрока
func (s *Step) Collider() *BoxCollider {
	return s.collider
}

// ClampDelta ограничивает шаг времени диапазоном [0, MaxDeltaTime]
func ClampDelta(dt float64) float64 {
	if dt < 0 || math.IsNaN(dt) {
		return 0
	}
	return math.Min(dt, MaxDeltaTime)
}

// Advance возвращает состояние игрока через dt секунд.
//
// Порядок: гравитация, прыжок, горизонтальное движение, затем смещение
// проверяется по осям X, Y, Z отдельно. По X и Z столкновение просто
// отменяет движение по оси; по Y игрок прижимается к грани блока и
// вертикальная скорость обнуляется.
func (s *Step) Advance(actor ActorState, input Intents, dt float64) ActorState {
	dt = ClampDelta(dt)

	velocity := actor.Velocity
	onGround := actor.OnGround

	if !onGround {
		velocity[1] += Gravity * dt
	}

	if input.Jump && onGround {
		velocity[1] = JumpVelocity
		onGround = false
	}

	move := vec.Vec2Float{}
	if input.Forward {
		move.Z -= 1
	}
	if input.Backward {
		move.Z += 1
	}
	if input.Left {
		move.X -= 1
	}
	if input.Right {
		move.X += 1
	}

	if move.Length() > 0 {
		wish := move.Normalized().RotateYaw(actor.Yaw).Mul(MoveSpeed)
		velocity[0] = wish.X
		velocity[2] = wish.Z
	} else {
		velocity[0] *= GroundDamping
		velocity[2] *= GroundDamping
	}

	delta := velocity.Mul(dt)
	position, velocity := s.resolveCollisions(actor.Position, delta, velocity)
	position, velocity = s.clampToWorld(position, velocity)

	probe := position.Sub(mgl64.Vec3{0, GroundProbe, 0})
	if CheckCollision(probe, s.collider, s.world) {
		onGround = true
		if velocity[1] <= 0 {
			velocity[1] = 0
			position[1] = s.settle(position)
		}
	} else {
		onGround = false
	}

	actor.Position = position
	actor.Velocity = velocity
	actor.Input = input
	actor.OnGround = onGround
	return actor
}

// resolveCollisions применяет смещение по осям X, Y, Z по очереди
func (s *Step) resolveCollisions(pos, delta, velocity mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	newPos := pos

	testX := newPos
	testX[0] += delta[0]
	if CanMoveToPosition(testX, s.collider, s.world) {
		newPos = testX
	}

	testY := newPos
	testY[1] += delta[1]
	if CanMoveToPosition(testY, s.collider, s.world) {
		newPos = testY
	} else {
		if delta[1] < 0 {
			newPos[1] = s.snapDown(newPos, supportSurface(testY[1])+contactEpsilon)
		} else if delta[1] > 0 {
			newPos[1] = s.snapUp(newPos, math.Floor(testY[1]+s.collider.Height)-s.collider.Height-contactEpsilon)
		}
		velocity[1] = 0
	}

	testZ := newPos
	testZ[2] += delta[2]
	if CanMoveToPosition(testZ, s.collider, s.world) {
		newPos = testZ
	}

	return newPos, velocity
}

// snapDown ищет высоту посадки при падении. Смещение за тик может быть
// больше блока, поэтому кандидат поднимается по блоку, пока коллайдер
// пересекает опору, но не выше исходной позиции.
func (s *Step) snapDown(pos mgl64.Vec3, y float64) float64 {
	candidate := pos
	candidate[1] = y
	for !CanMoveToPosition(candidate, s.collider, s.world) {
		if candidate[1] >= pos[1] {
			return pos[1]
		}
		candidate[1]++
	}
	return candidate[1]
}

// snapUp то же для удара головой о потолок: кандидат опускается по блоку
func (s *Step) snapUp(pos mgl64.Vec3, y float64) float64 {
	candidate := pos
	candidate[1] = y
	for !CanMoveToPosition(candidate, s.collider, s.world) {
		if candidate[1] <= pos[1] {
			return pos[1]
		}
		candidate[1]--
	}
	return candidate[1]
}

// clampToWorld удерживает коллайдер внутри мира и гасит скорость по упёршимся осям
func (s *Step) clampToWorld(pos, velocity mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	sizeX, sizeY, sizeZ := s.world.Dimensions()
	halfWidth := s.collider.Width / 2

	limits := [3][2]float64{
		{halfWidth, float64(sizeX) - halfWidth},
		{0, float64(sizeY) - s.collider.Height},
		{halfWidth, float64(sizeZ) - halfWidth},
	}

	for axis, lim := range limits {
		if pos[axis] < lim[0] {
			pos[axis] = lim[0]
			velocity[axis] = 0
		} else if pos[axis] > lim[1] {
			pos[axis] = lim[1]
			velocity[axis] = 0
		}
	}
	return pos, velocity
}

// settle опускает ноги на верхнюю грань опоры, найденной пробой.
// Без этого игрок мог бы зависнуть в пределах GroundProbe над землёй.
func (s *Step) settle(pos mgl64.Vec3) float64 {
	surface := supportSurface(pos[1]-GroundProbe) + contactEpsilon
	if surface >= pos[1] {
		return pos[1]
	}
	candidate := pos
	candidate[1] = surface
	if CheckCollision(candidate, s.collider, s.world) {
		return pos[1]
	}
	return surface
}
