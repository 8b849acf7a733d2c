package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"go.uber.org/zap"
)

const (
	MetricHTTPRequests = "http_requests"
	MetricCPUPercent   = "system_cpu_percent"
	MetricMemPercent   = "system_mem_percent"
)

var (
	mu    sync.Mutex
	store tstorage.Storage
)

// Point is a single sample returned to the dashboard.
type Point struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// InitMetrics opens the embedded time-series store under the workdir.
func InitMetrics(workdir string) error {
	mu.Lock()
	defer mu.Unlock()
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "data", "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(7*24*time.Hour),
	)
	if err != nil {
		return err
	}
	store = s
	return nil
}

// Close flushes and closes the store.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	return err
}

func insert(metric string, value float64) {
	mu.Lock()
	s := store
	mu.Unlock()
	if s == nil {
		return
	}
	err := s.InsertRows([]tstorage.Row{
		{
			Metric:    metric,
			DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: value},
		},
	})
	if err != nil {
		zap.L().Debug("metrics insert failed", zap.String("metric", metric), zap.Error(err))
	}
}

// CounterInc records one occurrence of metric at the current second.
func CounterInc(metric string) {
	insert(metric, 1)
}

// GaugeSet records a gauge sample.
func GaugeSet(metric string, value float64) {
	insert(metric, value)
}

// Select returns samples of metric between start and end (unix seconds).
func Select(metric string, start, end int64) []Point {
	mu.Lock()
	s := store
	mu.Unlock()
	if s == nil {
		return nil
	}
	rows, err := s.Select(metric, nil, start, end)
	if err != nil {
		return nil
	}
	points := make([]Point, 0, len(rows))
	for _, p := range rows {
		points = append(points, Point{Timestamp: p.Timestamp, Value: p.Value})
	}
	return points
}

// SampleSystem records current CPU and memory usage gauges. Called from the
// minutely metrics cron job.
func SampleSystem() {
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		GaugeSet(MetricCPUPercent, percents[0])
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		GaugeSet(MetricMemPercent, vm.UsedPercent)
	}
}
