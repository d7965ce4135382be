package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ox23du/Minecraft-V2/internal/config"
	"github.com/Ox23du/Minecraft-V2/internal/inventory"
	"github.com/Ox23du/Minecraft-V2/internal/logging"
	"github.com/Ox23du/Minecraft-V2/internal/mesh"
	"github.com/Ox23du/Minecraft-V2/internal/observability"
	"github.com/Ox23du/Minecraft-V2/internal/physics"
	"github.com/Ox23du/Minecraft-V2/internal/util"
	"github.com/Ox23du/Minecraft-V2/internal/vec"
	"github.com/Ox23du/Minecraft-V2/internal/world"
	"github.com/Ox23du/Minecraft-V2/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Options параметры мира и игрока для новой сессии
type Options struct {
	SizeX, SizeY, SizeZ int
	Seed                int64
	Mode                world.GeneratorMode
	Noise               util.NoiseKind
	TreeChance          float64
	RandomTrees         bool
	Spawn               mgl64.Vec3
	Reach               float64
	Sensitivity         float64
}

// DefaultOptions мир 128x32x128 с сидом 42 и спавном в (32, 20, 32)
func DefaultOptions() Options {
	return Options{
		SizeX:       world.DefaultSizeX,
		SizeY:       world.DefaultSizeY,
		SizeZ:       world.DefaultSizeZ,
		Seed:        config.DefaultSeed,
		Mode:        world.ModeHills,
		Noise:       util.NoisePerlin,
		TreeChance:  config.DefaultTreeChance,
		Spawn:       mgl64.Vec3{32, 20, 32},
		Reach:       physics.DefaultReach,
		Sensitivity: config.DefaultSensitivity,
	}
}

// OptionsFromConfig переносит настройки из файла конфигурации
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		SizeX:       cfg.World.SizeX,
		SizeY:       cfg.World.SizeY,
		SizeZ:       cfg.World.SizeZ,
		Seed:        cfg.World.GetSeed(),
		Mode:        world.GeneratorMode(cfg.World.Generator),
		Noise:       util.NoiseKind(cfg.World.Noise),
		TreeChance:  cfg.World.GetTreeChance(),
		RandomTrees: cfg.World.RandomTrees,
		Spawn:       mgl64.Vec3(cfg.Player.Spawn),
		Reach:       cfg.Player.Reach,
		Sensitivity: cfg.Player.Sensitivity,
	}
}

// FrameInput ввод игрока за один тик. Кнопки мыши и колесо приходят как события.
type FrameInput struct {
	Move physics.Intents

	// Смещение мыши в пикселях
	MouseDX, MouseDY float64

	BreakPressed  bool // левая кнопка нажата в этом тике
	BreakReleased bool // левая кнопка отпущена в этом тике
	Place         bool // правая кнопка
	Scroll        int  // знак прокрутки колеса
	SelectSlot    int  // 1..9 выбирает слот, 0 не меняет выбор
}

// TickResult что произошло за тик
type TickResult struct {
	Hit      physics.RaycastHit
	Broken   block.BlockID // AirBlockID, если ничего не сломано
	Placed   bool
	PlaceErr error
	Remeshed bool
}

// Session владеет миром, игроком, инвентарём и кэшем меша и выполняет тики
// в порядке: ввод и луч, физика, изменение мира, перестройка меша
type Session struct {
	id uuid.UUID

	grid      *world.Grid
	heights   *world.Heightmap
	raycaster *physics.Raycaster
	step      *physics.Step
	actor     physics.ActorState
	hotbar    *inventory.Hotbar
	breaking  BreakState
	meshes    *mesh.Cache

	reach       float64
	sensitivity float64
	ticks       uint64

	metrics *observability.Metrics
	tracer  trace.Tracer
}

// NewSession создаёт сетку, генерирует мир и ставит игрока на спавн.
// metrics может быть nil.
func NewSession(ctx context.Context, opts Options, metrics *observability.Metrics) (*Session, error) {
	grid, err := world.NewGrid(opts.SizeX, opts.SizeY, opts.SizeZ)
	if err != nil {
		return nil, fmt.Errorf("создание сетки: %w", err)
	}

	if metrics == nil {
		metrics = observability.NewMetrics(nil)
	}

	s := &Session{
		id:          uuid.New(),
		grid:        grid,
		raycaster:   physics.NewRaycaster(grid),
		step:        physics.NewStep(grid),
		actor:       physics.NewActorState(opts.Spawn),
		hotbar:      inventory.NewHotbar(),
		meshes:      mesh.NewCache(grid),
		reach:       opts.Reach,
		sensitivity: opts.Sensitivity,
		metrics:     metrics,
		tracer:      observability.Tracer(),
	}
	if s.reach <= 0 {
		s.reach = physics.DefaultReach
	}

	s.meshes.OnRebuild = func(m map[block.BlockID]*mesh.Geometry, took time.Duration) {
		s.metrics.ObserveMesh(mesh.TotalFaces(m), took)
	}

	if err := s.generate(ctx, opts); err != nil {
		return nil, err
	}

	logging.Info("🎮 Сессия %s: мир %dx%dx%d, сид %d, спавн (%.1f, %.1f, %.1f)",
		s.id, opts.SizeX, opts.SizeY, opts.SizeZ, opts.Seed, opts.Spawn.X(), opts.Spawn.Y(), opts.Spawn.Z())
	return s, nil
}

func (s *Session) generate(ctx context.Context, opts Options) error {
	_, span := s.tracer.Start(ctx, "world.generate", trace.WithAttributes(
		attribute.String("voxel.session", s.id.String()),
		attribute.Int64("voxel.seed", opts.Seed),
		attribute.String("voxel.mode", string(opts.Mode)),
	))
	defer span.End()

	gen := world.NewWorldGenerator(s.grid)
	gen.Mode = opts.Mode
	gen.Noise = opts.Noise
	gen.ForestDensity = opts.TreeChance
	gen.RandomTrees = opts.RandomTrees

	started := time.Now()
	heights, err := gen.Generate(opts.Seed)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("генерация мира: %w", err)
	}
	s.metrics.ObserveGeneration(time.Since(started))
	s.metrics.Revision.Set(float64(s.grid.Revision()))

	s.heights = heights
	return nil
}

// ID идентификатор сессии
func (s *Session) ID() uuid.UUID { return s.id }

// Grid сетка блоков сессии
func (s *Session) Grid() *world.Grid { return s.grid }

// Heightmap высоты поверхности после генерации
func (s *Session) Heightmap() *world.Heightmap { return s.heights }

// Actor текущее состояние игрока
func (s *Session) Actor() physics.ActorState { return s.actor }

// SetActor заменяет состояние игрока (телепорт, тесты)
func (s *Session) SetActor(a physics.ActorState) { s.actor = a }

// Hotbar инвентарь игрока
func (s *Session) Hotbar() *inventory.Hotbar { return s.hotbar }

// Breaking состояние ломания блока
func (s *Session) Breaking() *BreakState { return &s.breaking }

// Meshes последний построенный меш
func (s *Session) Meshes() map[block.BlockID]*mesh.Geometry { return s.meshes.Current() }

// Ticks число выполненных тиков
func (s *Session) Ticks() uint64 { return s.ticks }

// Tick выполняет один кадр симуляции длиной dt
func (s *Session) Tick(ctx context.Context, dt time.Duration, in FrameInput) TickResult {
	_, span := s.tracer.Start(ctx, "session.tick", trace.WithAttributes(
		attribute.String("voxel.session", s.id.String()),
		attribute.Int64("voxel.tick", int64(s.ticks)),
	))
	defer span.End()

	result := TickResult{Broken: block.AirBlockID}

	// Ввод: взгляд, выбор слота
	s.actor.Look(in.MouseDX*s.sensitivity, in.MouseDY*s.sensitivity)
	if in.SelectSlot > 0 {
		s.hotbar.Select(in.SelectSlot - 1)
	}
	s.hotbar.Scroll(in.Scroll)

	// Луч и прогресс ломания
	hit := s.Aim()
	result.Hit = hit

	var (
		breakAt   vec.Vec3
		mustBreak bool
	)
	switch {
	case in.BreakReleased:
		s.breaking.Release()
	case in.BreakPressed:
		s.breaking.Start(hit, s.breakTime(hit))
	case s.breaking.Active():
		breakAt, mustBreak = s.breaking.Update(hit, dt, s.breakTime(hit))
	}

	// Физика
	from := s.actor.Position
	s.actor = s.step.Advance(s.actor, in.Move, dt.Seconds())
	if !from.ApproxEqual(s.actor.Position) {
		logging.LogActorMovement(from.X(), from.Y(), from.Z(),
			s.actor.Position.X(), s.actor.Position.Y(), s.actor.Position.Z(), s.actor.OnGround)
	}

	// Изменение мира
	if mustBreak {
		if id, ok := s.BreakBlockAt(breakAt); ok {
			result.Broken = id
			kind, _ := block.Get(id)
			s.hotbar.Add(kind.Yield, 1)
		}
	}

	if in.Place {
		if slot, ok := s.hotbar.Selected(); ok {
			err := s.PlaceAt(hit, slot.BlockID)
			switch {
			case err == nil:
				result.Placed = true
				s.hotbar.Remove(s.hotbar.SelectedIndex(), 1)
			case errors.Is(err, ErrNoTarget):
			default:
				logging.Debug("Блок не поставлен: %v", err)
			}
			result.PlaceErr = err
		}
	}

	// Перестройка меша только при смене ревизии
	result.Remeshed = s.Remesh(ctx)

	s.ticks++
	s.metrics.Ticks.Inc()
	s.metrics.Revision.Set(float64(s.grid.Revision()))
	return result
}

// Remesh синхронизирует кэш меша с ревизией сетки
func (s *Session) Remesh(ctx context.Context) bool {
	rev := s.grid.Revision()
	if rev == s.meshes.Revision() && s.meshes.Current() != nil {
		return false
	}

	_, span := s.tracer.Start(ctx, "mesh.rebuild", trace.WithAttributes(
		attribute.String("voxel.session", s.id.String()),
		attribute.Int64("voxel.revision", int64(rev)),
	))
	defer span.End()

	meshes, rebuilt := s.meshes.Sync()
	span.SetAttributes(attribute.Int("voxel.faces", mesh.TotalFaces(meshes)))
	return rebuilt
}

func (s *Session) breakTime(hit physics.RaycastHit) time.Duration {
	if !hit.Hit {
		return 0
	}
	kind, ok := block.Get(s.grid.GetAt(hit.Position))
	if !ok || kind.BreakTime <= 0 {
		return block.DefaultBreakTime
	}
	return kind.BreakTime
}
