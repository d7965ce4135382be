package observability

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcessStats снимок потребления ресурсов процессом
type ProcessStats struct {
	CPUPercent float64
	RSSBytes   uint64
	HeapBytes  uint64
	Goroutines int
}

// ProcessSampler читает статистику текущего процесса через gopsutil
type ProcessSampler struct {
	proc      *process.Process
	startTime time.Time
}

// NewProcessSampler создаёт сэмплер для текущего процесса
func NewProcessSampler() (*ProcessSampler, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("открытие процесса: %w", err)
	}
	return &ProcessSampler{proc: proc, startTime: time.Now()}, nil
}

// Sample возвращает текущий снимок. CPU считается с момента прошлого вызова.
func (s *ProcessSampler) Sample() (ProcessStats, error) {
	var stats ProcessStats

	cpuPercent, err := s.proc.Percent(0)
	if err != nil {
		return stats, fmt.Errorf("загрузка CPU: %w", err)
	}
	stats.CPUPercent = cpuPercent

	mem, err := s.proc.MemoryInfo()
	if err != nil {
		return stats, fmt.Errorf("память процесса: %w", err)
	}
	stats.RSSBytes = mem.RSS

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	stats.HeapBytes = m.HeapAlloc
	stats.Goroutines = runtime.NumGoroutine()

	return stats, nil
}

// Uptime время с создания сэмплера
func (s *ProcessSampler) Uptime() time.Duration {
	return time.Since(s.startTime)
}

// FormatUptime форматирует длительность как "1д 2ч 3м 4с", опуская нулевые старшие части
func FormatUptime(uptime time.Duration) string {
	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	if days > 0 {
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	} else if hours > 0 {
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	}
	return fmt.Sprintf("%dс", seconds)
}
