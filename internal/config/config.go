package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/Ox23du/Minecraft-V2/internal/logging"
	"gopkg.in/yaml.v3"
)

// ErrInvalid возвращается Validate для некорректной конфигурации
var ErrInvalid = errors.New("некорректная конфигурация")

// Значения по умолчанию
const (
	DefaultSeed        int64 = 42
	DefaultTreeChance        = 0.05
	DefaultReach             = 5.0
	DefaultSensitivity       = 0.002
	DefaultTickRate          = 60
	DefaultMetricsPort       = 2112
	DefaultServiceName       = "voxelsim"
)

// Config корневая структура конфигурации симуляции
type Config struct {
	World         WorldConfig         `yaml:"world"`
	Player        PlayerConfig        `yaml:"player"`
	Sim           SimConfig           `yaml:"sim"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type WorldConfig struct {
	SizeX       int      `yaml:"size_x"`
	SizeY       int      `yaml:"size_y"`
	SizeZ       int      `yaml:"size_z"`
	Seed        *int64   `yaml:"seed"`
	Generator   string   `yaml:"generator"` // hills | flat
	Noise       string   `yaml:"noise"`     // perlin | simplex
	TreeChance  *float64 `yaml:"tree_chance"`
	RandomTrees bool     `yaml:"random_trees"`
}

type PlayerConfig struct {
	Spawn       [3]float64 `yaml:"spawn"`
	Reach       float64    `yaml:"reach"`
	Sensitivity float64    `yaml:"mouse_sensitivity"`
}

type SimConfig struct {
	TickRate int `yaml:"tick_rate"`
	// Ticks число тиков до остановки, 0 значит работать до сигнала
	Ticks int `yaml:"ticks"`
}

type ObservabilityConfig struct {
	MetricsEnabled bool   `yaml:"metrics_enabled"`
	MetricsPort    int    `yaml:"metrics_port"`
	Tracing        bool   `yaml:"tracing"`
	ServiceName    string `yaml:"service_name"`
	LogLevel       string `yaml:"log_level"`
}

// Default возвращает конфигурацию по умолчанию: мир 128x32x128, холмы на перлине
func Default() *Config {
	return &Config{
		World: WorldConfig{
			SizeX:     128,
			SizeY:     32,
			SizeZ:     128,
			Generator: "hills",
			Noise:     "perlin",
		},
		Player: PlayerConfig{
			Spawn:       [3]float64{32, 20, 32},
			Reach:       DefaultReach,
			Sensitivity: DefaultSensitivity,
		},
		Sim: SimConfig{
			TickRate: DefaultTickRate,
		},
		Observability: ObservabilityConfig{
			ServiceName: DefaultServiceName,
			LogLevel:    "INFO",
		},
	}
}

// GetSeed возвращает сид с приоритетом: config -> VOXEL_SEED -> 42
func (w *WorldConfig) GetSeed() int64 {
	if w.Seed != nil {
		return *w.Seed
	}
	if envVal := os.Getenv("VOXEL_SEED"); envVal != "" {
		if seed, err := strconv.ParseInt(envVal, 10, 64); err == nil {
			return seed
		}
	}
	return DefaultSeed
}

// GetTreeChance вероятность дерева на колонку; 0 в конфиге отключает деревья
func (w *WorldConfig) GetTreeChance() float64 {
	if w.TreeChance != nil {
		return *w.TreeChance
	}
	return DefaultTreeChance
}

// GetMetricsPort возвращает Prometheus метрики порт с поддержкой fallback значений
func (o *ObservabilityConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(o.MetricsPort, "VOXEL_METRICS_PORT", DefaultMetricsPort)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Validate проверяет значения, которые нельзя исправить молча
func (c *Config) Validate() error {
	w := c.World
	if w.SizeX <= 0 || w.SizeY <= 0 || w.SizeZ <= 0 {
		return fmt.Errorf("%w: размеры мира %dx%dx%d", ErrInvalid, w.SizeX, w.SizeY, w.SizeZ)
	}
	switch w.Generator {
	case "hills", "flat":
	default:
		return fmt.Errorf("%w: неизвестный генератор %q", ErrInvalid, w.Generator)
	}
	switch w.Noise {
	case "perlin", "simplex":
	default:
		return fmt.Errorf("%w: неизвестный шум %q", ErrInvalid, w.Noise)
	}
	if chance := w.GetTreeChance(); chance < 0 || chance > 1 {
		return fmt.Errorf("%w: tree_chance %v вне [0,1]", ErrInvalid, chance)
	}
	if c.Player.Reach <= 0 {
		return fmt.Errorf("%w: reach должен быть положительным", ErrInvalid)
	}
	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate должен быть положительным", ErrInvalid)
	}
	if c.Sim.Ticks < 0 {
		return fmt.Errorf("%w: ticks не может быть отрицательным", ErrInvalid)
	}
	if _, err := logging.ParseLevel(c.Observability.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", берёт путь из VOXEL_CONFIG; если и он пуст, возвращает Default().
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
	}

	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
