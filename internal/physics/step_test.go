package physics

import (
	"math"
	"testing"

	"github.com/Ox23du/Minecraft-V2/internal/world"
	"github.com/Ox23du/Minecraft-V2/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFloorWorld создаёт мир 16x16x16 с каменным полом на высоте 0..floorTop
func newFloorWorld(t *testing.T, floorTop int) *world.Grid {
	t.Helper()
	g := newGrid(t, 16, 16, 16)
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			for y := 0; y <= floorTop; y++ {
				g.Set(x, y, z, block.StoneBlockID)
			}
		}
	}
	return g
}

func TestStep_FallAndLand(t *testing.T) {
	g := newFloorWorld(t, 3)
	step := NewStep(g)

	actor := NewActorState(mgl64.Vec3{8.5, 10, 8.5})
	for i := 0; i < 120; i++ {
		actor = step.Advance(actor, Intents{}, 1.0/60)
		require.GreaterOrEqual(t, actor.Position.Y(), 4.0, "игрок провалился в пол на тике %d", i)
	}

	assert.True(t, actor.OnGround, "игрок должен стоять на земле")
	assert.InDelta(t, 4.0, actor.Position.Y(), 0.01)
	assert.Equal(t, 0.0, actor.Velocity.Y())
	assert.InDelta(t, 8.5, actor.Position.X(), 1e-9)
	assert.InDelta(t, 8.5, actor.Position.Z(), 1e-9)
}

func TestStep_GravityInAir(t *testing.T) {
	g := newGrid(t, 16, 16, 16)
	step := NewStep(g)

	actor := NewActorState(mgl64.Vec3{8.5, 10, 8.5})
	actor = step.Advance(actor, Intents{}, 1.0/60)

	assert.False(t, actor.OnGround)
	assert.InDelta(t, Gravity/60, actor.Velocity.Y(), 1e-9)
	assert.Less(t, actor.Position.Y(), 10.0)
}

func TestStep_AxisIndependentSliding(t *testing.T) {
	g := newFloorWorld(t, 3)
	// Стена по x=10 высотой в два блока
	for z := 0; z < 16; z++ {
		g.Set(10, 4, z, block.StoneBlockID)
		g.Set(10, 5, z, block.StoneBlockID)
	}
	step := NewStep(g)

	actor := NewActorState(mgl64.Vec3{9.65, 4.001, 5.5})
	actor.OnGround = true

	next := step.Advance(actor, Intents{Backward: true, Right: true}, 1.0/30)

	// Движение по X упирается в стену, по Z продолжается
	assert.Equal(t, 9.65, next.Position.X())
	expectedZ := 5.5 + MoveSpeed/math.Sqrt2/30
	assert.InDelta(t, expectedZ, next.Position.Z(), 1e-9)
	assert.True(t, next.OnGround)
}

func TestStep_Jump(t *testing.T) {
	g := newFloorWorld(t, 3)
	step := NewStep(g)

	actor := NewActorState(mgl64.Vec3{8.5, 4.001, 8.5})
	actor.OnGround = true

	next := step.Advance(actor, Intents{Jump: true}, 1.0/60)
	assert.False(t, next.OnGround)
	assert.InDelta(t, JumpVelocity, next.Velocity.Y(), 1e-9)
	assert.Greater(t, next.Position.Y(), actor.Position.Y())

	// Прыжок в воздухе не срабатывает повторно
	again := step.Advance(next, Intents{Jump: true}, 1.0/60)
	assert.Less(t, again.Velocity.Y(), next.Velocity.Y())
}

func TestStep_JumpHeight(t *testing.T) {
	g := newFloorWorld(t, 3)
	step := NewStep(g)

	actor := NewActorState(mgl64.Vec3{8.5, 4.001, 8.5})
	actor.OnGround = true

	peak := actor.Position.Y()
	input := Intents{Jump: true}
	for i := 0; i < 120; i++ {
		actor = step.Advance(actor, input, 1.0/120)
		input = Intents{}
		peak = math.Max(peak, actor.Position.Y())
	}

	// На первом тике после отрыва проба ещё касается пола, поэтому
	// дискретная вершина немного выше аналитической
	assert.GreaterOrEqual(t, peak, 4.001+JumpHeight-0.05)
	assert.Less(t, peak, 4.001+JumpHeight+0.2)
	assert.True(t, actor.OnGround)
}

func TestStep_CeilingStopsJump(t *testing.T) {
	g := newFloorWorld(t, 3)
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			g.Set(x, 6, z, block.StoneBlockID)
		}
	}
	step := NewStep(g)

	actor := NewActorState(mgl64.Vec3{8.5, 4.001, 8.5})
	actor.OnGround = true

	next := step.Advance(actor, Intents{Jump: true}, 1.0/30)
	assert.InDelta(t, 6-PlayerHeight-contactEpsilon, next.Position.Y(), 1e-9)
	assert.Equal(t, 0.0, next.Velocity.Y())
}

func TestStep_DampingWithoutInput(t *testing.T) {
	g := newFloorWorld(t, 3)
	step := NewStep(g)

	actor := NewActorState(mgl64.Vec3{8.5, 4.001, 8.5})
	actor.OnGround = true
	actor.Velocity = mgl64.Vec3{1, 0, -2}

	next := step.Advance(actor, Intents{}, 1.0/60)
	assert.InDelta(t, GroundDamping, next.Velocity.X(), 1e-9)
	assert.InDelta(t, -2*GroundDamping, next.Velocity.Z(), 1e-9)
}

func TestStep_ClampToWorld(t *testing.T) {
	g := newGrid(t, 16, 16, 16)
	step := NewStep(g)

	actor := NewActorState(mgl64.Vec3{-5, 10, 8.5})
	actor.Velocity = mgl64.Vec3{-3, 0, 0}

	next := step.Advance(actor, Intents{}, 1.0/60)
	assert.InDelta(t, PlayerWidth/2, next.Position.X(), 1e-9)
	assert.Equal(t, 0.0, next.Velocity.X())
}

func TestStep_DeltaIsClamped(t *testing.T) {
	g := newGrid(t, 16, 16, 16)
	step := NewStep(g)

	actor := NewActorState(mgl64.Vec3{8.5, 10, 8.5})
	input := Intents{Forward: true}

	big := step.Advance(actor, input, 1.0)
	capped := step.Advance(actor, input, MaxDeltaTime)
	assert.Equal(t, capped.Position, big.Position)
	assert.Equal(t, capped.Velocity, big.Velocity)
}

func TestClampDelta(t *testing.T) {
	assert.Equal(t, 0.0, ClampDelta(-1))
	assert.Equal(t, 0.0, ClampDelta(math.NaN()))
	assert.Equal(t, 0.01, ClampDelta(0.01))
	assert.Equal(t, MaxDeltaTime, ClampDelta(5))
}

func TestStep_MoveForwardFollowsYaw(t *testing.T) {
	g := newFloorWorld(t, 3)
	step := NewStep(g)

	actor := NewActorState(mgl64.Vec3{8.5, 4.001, 8.5})
	actor.OnGround = true

	// yaw 0: вперёд это -Z
	next := step.Advance(actor, Intents{Forward: true}, 1.0/60)
	assert.InDelta(t, 8.5, next.Position.X(), 1e-9)
	assert.InDelta(t, 8.5-MoveSpeed/60, next.Position.Z(), 1e-9)

	// Поворот на 90° влево: вперёд это -X
	actor.Yaw = math.Pi / 2
	next = step.Advance(actor, Intents{Forward: true}, 1.0/60)
	assert.InDelta(t, 8.5-MoveSpeed/60, next.Position.X(), 1e-9)
	assert.InDelta(t, 8.5, next.Position.Z(), 1e-9)
}

// newTallWorld мир 16x40x16 с каменными слоями на высотах [from, to]
func newTallWorld(t *testing.T, layers ...[2]int) *world.Grid {
	t.Helper()
	g := newGrid(t, 16, 40, 16)
	for _, l := range layers {
		for x := 0; x < 16; x++ {
			for z := 0; z < 16; z++ {
				for y := l[0]; y <= l[1]; y++ {
					g.Set(x, y, z, block.StoneBlockID)
				}
			}
		}
	}
	return g
}

func TestStep_FastFallNeverSinksIntoFloor(t *testing.T) {
	g := newTallWorld(t, [2]int{0, 3})
	step := NewStep(g)

	// Со скоростью больше блока за тик точка проверки уходит на две ячейки вниз
	for start := 20.0; start < 30; start += 0.05 {
		actor := NewActorState(mgl64.Vec3{8.5, start, 8.5})
		for i := 0; i < 90; i++ {
			actor = step.Advance(actor, Intents{}, MaxDeltaTime)
			require.GreaterOrEqual(t, actor.Position.Y(), 4.0,
				"старт y=%.2f: игрок в полу на тике %d", start, i)
		}
		assert.True(t, actor.OnGround, "старт y=%.2f", start)
		assert.InDelta(t, 4.0, actor.Position.Y(), 0.01, "старт y=%.2f", start)

		// После посадки игрок может идти
		moved := step.Advance(actor, Intents{Forward: true}, MaxDeltaTime)
		assert.Less(t, moved.Position.Z(), actor.Position.Z(), "старт y=%.2f", start)
	}
}

func TestStep_FastRiseNeverSinksIntoCeiling(t *testing.T) {
	g := newTallWorld(t, [2]int{0, 3}, [2]int{10, 13})
	step := NewStep(g)

	actor := NewActorState(mgl64.Vec3{8.5, 4.001, 8.5})
	actor.Velocity = mgl64.Vec3{0, 60, 0}
	for i := 0; i < 60; i++ {
		actor = step.Advance(actor, Intents{}, MaxDeltaTime)
		require.LessOrEqual(t, actor.Position.Y()+PlayerHeight, 10.0, "голова в потолке на тике %d", i)
	}
	assert.True(t, actor.OnGround)
}
