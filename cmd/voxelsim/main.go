package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ox23du/Minecraft-V2/internal/config"
	"github.com/Ox23du/Minecraft-V2/internal/game"
	"github.com/Ox23du/Minecraft-V2/internal/logging"
	"github.com/Ox23du/Minecraft-V2/internal/mesh"
	"github.com/Ox23du/Minecraft-V2/internal/observability"
	"github.com/Ox23du/Minecraft-V2/internal/world/block"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	configPath := flag.String("config", "", "путь к YAML конфигурации (по умолчанию $VOXEL_CONFIG)")
	ticks := flag.Int("ticks", -1, "число тиков до остановки, 0 значит до сигнала (переопределяет конфиг)")
	flag.Parse()

	if err := logging.InitDefaultLogger("voxelsim"); err != nil {
		log.Printf("❌ Ошибка инициализации логирования: %v", err)
		return 1
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка загрузки конфигурации: %v", err)
		return 1
	}
	if *ticks >= 0 {
		cfg.Sim.Ticks = *ticks
	}

	level, _ := logging.ParseLevel(cfg.Observability.LogLevel)
	logging.SetDefaultLevel(level)
	if err := logging.GetLoggerManager().ApplyLevel(level, "sim", "metrics"); err != nil {
		logging.Warn("Не удалось применить уровень логирования: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Error("❌ %v", err)
		return 1
	}
	logging.Info("👋 Симуляция остановлена")
	return 0
}

func run(ctx context.Context, cfg *config.Config) error {
	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	opts := game.OptionsFromConfig(cfg)
	logging.Info("🌍 Генерация мира %dx%dx%d (%s, шум %s, сид %d)...",
		opts.SizeX, opts.SizeY, opts.SizeZ, opts.Mode, opts.Noise, opts.Seed)

	session, err := game.NewSession(ctx, opts, metrics)
	if err != nil {
		return fmt.Errorf("создание сессии: %w", err)
	}

	obs := cfg.Observability
	if obs.Tracing {
		shutdown, err := observability.InitTelemetry(ctx, obs.ServiceName, session.ID().String())
		if err != nil {
			logging.Warn("OpenTelemetry недоступен: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logging.Warn("Ошибка остановки OpenTelemetry: %v", err)
				}
			}()
		}
	}

	if obs.MetricsEnabled {
		srv := observability.StartHTTP(fmt.Sprintf(":%d", obs.GetMetricsPort()), prometheus.DefaultGatherer)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	sampler, err := observability.NewProcessSampler()
	if err != nil {
		logging.Warn("Статистика процесса недоступна: %v", err)
	}

	return simulate(ctx, cfg.Sim, session, metrics, sampler)
}

// simulate крутит тики с фиксированной частотой до сигнала или лимита тиков
func simulate(ctx context.Context, sim config.SimConfig, session *game.Session, metrics *observability.Metrics, sampler *observability.ProcessSampler) error {
	dt := time.Second / time.Duration(sim.TickRate)
	ticker := time.NewTicker(dt)
	defer ticker.Stop()

	script := newDemoScript(sim.TickRate)
	logging.Info("▶️ Симуляция %s: %d тиков/с, лимит %d", session.ID(), sim.TickRate, sim.Ticks)

	for {
		select {
		case <-ctx.Done():
			report(session, sampler, metrics)
			return nil
		case <-ticker.C:
		}

		res := session.Tick(ctx, dt, script.Next())
		if res.Broken != block.AirBlockID {
			kind, _ := block.Get(res.Broken)
			logging.Info("⛏️ Сломан блок %s, ревизия %d", kind.Name, session.Grid().Revision())
		}
		if res.Placed {
			logging.Info("🧱 Поставлен блок, ревизия %d", session.Grid().Revision())
		}

		n := session.Ticks()
		if sim.Ticks > 0 && n >= uint64(sim.Ticks) {
			report(session, sampler, metrics)
			return nil
		}
		if n%uint64(sim.TickRate*5) == 0 {
			report(session, sampler, metrics)
		}
	}
}

func report(session *game.Session, sampler *observability.ProcessSampler, metrics *observability.Metrics) {
	simLog := logging.GetSimLogger()
	actor := session.Actor()
	simLog.Info("📊 Тик %d: игрок (%.2f, %.2f, %.2f) на земле=%v, ревизия %d, граней %d",
		session.Ticks(), actor.Position.X(), actor.Position.Y(), actor.Position.Z(), actor.OnGround,
		session.Grid().Revision(), mesh.TotalFaces(session.Meshes()))

	if sampler == nil {
		return
	}
	stats, err := sampler.Sample()
	if err != nil {
		logging.Warn("Ошибка чтения статистики процесса: %v", err)
		return
	}
	metrics.ObserveProcess(stats)
	simLog.Info("   CPU %.1f%%, RSS %.1f MB, uptime %s",
		stats.CPUPercent, float64(stats.RSSBytes)/1024/1024, observability.FormatUptime(sampler.Uptime()))
}
