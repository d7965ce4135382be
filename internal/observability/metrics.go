package observability

import (
	"errors"
	"net/http"
	"time"

	"github.com/Ox23du/Minecraft-V2/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voxel"

// Metrics Prometheus-метрики симуляции
type Metrics struct {
	GenerationSeconds prometheus.Histogram
	MeshRebuilds      prometheus.Counter
	MeshSeconds       prometheus.Histogram
	MeshFaces         prometheus.Gauge
	Raycasts          *prometheus.CounterVec
	BlocksBroken      *prometheus.CounterVec
	BlocksPlaced      *prometheus.CounterVec
	Revision          prometheus.Gauge
	Ticks             prometheus.Counter
	ProcessCPU        prometheus.Gauge
	ProcessRSS        prometheus.Gauge
}

// NewMetrics создаёт метрики и регистрирует их в reg.
// Повторная регистрация (например, второй сессии в том же процессе) не считается ошибкой.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GenerationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Время генерации мира.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}),
		MeshRebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mesh_rebuilds_total",
			Help:      "Число перестроек меша.",
		}),
		MeshSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mesh_rebuild_duration_seconds",
			Help:      "Время перестройки меша.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
		}),
		MeshFaces: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mesh_faces",
			Help:      "Число граней в последнем построенном меше.",
		}),
		Raycasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "raycasts_total",
			Help:      "Число трассировок луча по результату.",
		}, []string{"result"}),
		BlocksBroken: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_broken_total",
			Help:      "Сломанные блоки по типу.",
		}, []string{"kind"}),
		BlocksPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_placed_total",
			Help:      "Поставленные блоки по типу.",
		}, []string{"kind"}),
		Revision: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "world_revision",
			Help:      "Текущая ревизия сетки блоков.",
		}),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Число выполненных тиков симуляции.",
		}),
		ProcessCPU: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_cpu_percent",
			Help:      "Загрузка CPU процессом симуляции.",
		}),
		ProcessRSS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_rss_bytes",
			Help:      "Резидентная память процесса симуляции.",
		}),
	}

	if reg == nil {
		return m
	}

	collectors := []prometheus.Collector{
		m.GenerationSeconds, m.MeshRebuilds, m.MeshSeconds, m.MeshFaces,
		m.Raycasts, m.BlocksBroken, m.BlocksPlaced, m.Revision, m.Ticks,
		m.ProcessCPU, m.ProcessRSS,
	}
	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				logging.Warn("Не удалось зарегистрировать метрику: %v", err)
			}
		}
	}
	return m
}

// ObserveGeneration записывает длительность генерации
func (m *Metrics) ObserveGeneration(took time.Duration) {
	m.GenerationSeconds.Observe(took.Seconds())
}

// ObserveMesh записывает перестройку меша
func (m *Metrics) ObserveMesh(faces int, took time.Duration) {
	m.MeshRebuilds.Inc()
	m.MeshSeconds.Observe(took.Seconds())
	m.MeshFaces.Set(float64(faces))
}

// ObserveRaycast считает трассировку как попадание или промах
func (m *Metrics) ObserveRaycast(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.Raycasts.WithLabelValues(result).Inc()
}

// ObserveProcess обновляет метрики процесса из снимка ProcessStats
func (m *Metrics) ObserveProcess(stats ProcessStats) {
	m.ProcessCPU.Set(stats.CPUPercent)
	m.ProcessRSS.Set(float64(stats.RSSBytes))
}

// StartHTTP запускает HTTP-эндпоинт Prometheus на указанном адресе (например, ":2112").
// Метод неблокирующий: сервер стартует в отдельной горутине и возвращается для Shutdown.
func StartHTTP(addr string, gatherer prometheus.Gatherer) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		metricsLog := logging.GetMetricsLogger()
		metricsLog.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			metricsLog.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	return srv
}
