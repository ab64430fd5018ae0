// Package monitoring 提供预测指标与模型文件监控
package monitoring

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MetricType 指标类型
type MetricType string

const (
	MetricTypeCounter MetricType = "counter"
	MetricTypeGauge   MetricType = "gauge"
	MetricTypeSummary MetricType = "summary"
)

const (
	MetricPredictionsTotal        = "predictions_total"
	MetricPredictionsYesTotal     = "predictions_yes_total"
	MetricPredictionsNoTotal      = "predictions_no_total"
	MetricPredictionErrorsTotal   = "prediction_errors_total"
	MetricBoundaryRejectionsTotal = "boundary_rejections_total"
	MetricArtifactChangesTotal    = "artifact_changes_total"
	MetricPredictionLatency       = "prediction_latency_seconds"
	MetricUptime                  = "uptime_seconds"
)

var metricHelp = map[string]string{
	MetricPredictionsTotal:        "Predictions served",
	MetricPredictionsYesTotal:     "Predictions answered Yes",
	MetricPredictionsNoTotal:      "Predictions answered No",
	MetricPredictionErrorsTotal:   "Predictions that failed inside the classifier",
	MetricBoundaryRejectionsTotal: "Requests rejected by input validation",
	MetricArtifactChangesTotal:    "Changes to the model artifact since the model was loaded",
	MetricPredictionLatency:       "Time spent encoding and scoring a record",
	MetricUptime:                  "Seconds since the collector started",
}

// Metric 指标
type Metric struct {
	Name      string                 `json:"name"`
	Type      MetricType             `json:"type"`
	Value     float64                `json:"value"`
	Labels    map[string]string      `json:"labels,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Help      string                 `json:"help,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type latencySummary struct {
	count int64
	sum   float64
	max   float64
}

// MetricsCollector 指标收集器，进程内计数，不持久化
type MetricsCollector struct {
	mu        sync.Mutex
	counters  map[string]float64
	latency   latencySummary
	updatedAt time.Time
	startTime time.Time
}

// NewMetricsCollector 创建指标收集器
func NewMetricsCollector() *MetricsCollector {
	now := time.Now()
	return &MetricsCollector{
		counters: map[string]float64{
			MetricPredictionsTotal:        0,
			MetricPredictionsYesTotal:     0,
			MetricPredictionsNoTotal:      0,
			MetricPredictionErrorsTotal:   0,
			MetricBoundaryRejectionsTotal: 0,
			MetricArtifactChangesTotal:    0,
		},
		updatedAt: now,
		startTime: now,
	}
}

// IncrCounter 增加计数器
func (mc *MetricsCollector) IncrCounter(name string, value float64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.counters[name] += value
	mc.updatedAt = time.Now()
}

// ObservePrediction 记录一次成功的预测
func (mc *MetricsCollector) ObservePrediction(purchase bool, elapsed time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.counters[MetricPredictionsTotal]++
	if purchase {
		mc.counters[MetricPredictionsYesTotal]++
	} else {
		mc.counters[MetricPredictionsNoTotal]++
	}
	mc.observeLatency(elapsed)
}

// ObservePredictionError 记录一次失败的预测
func (mc *MetricsCollector) ObservePredictionError(elapsed time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.counters[MetricPredictionErrorsTotal]++
	mc.observeLatency(elapsed)
}

// ObserveRejection 记录一次输入校验拒绝
func (mc *MetricsCollector) ObserveRejection() {
	mc.IncrCounter(MetricBoundaryRejectionsTotal, 1)
}

func (mc *MetricsCollector) observeLatency(elapsed time.Duration) {
	seconds := elapsed.Seconds()
	mc.latency.count++
	mc.latency.sum += seconds
	if seconds > mc.latency.max {
		mc.latency.max = seconds
	}
	mc.updatedAt = time.Now()
}

// Counter 获取计数器当前值
func (mc *MetricsCollector) Counter(name string) float64 {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	return mc.counters[name]
}

// Snapshot 返回按名称排序的指标快照
func (mc *MetricsCollector) Snapshot() []Metric {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	metrics := make([]Metric, 0, len(mc.counters)+2)
	for name, value := range mc.counters {
		metrics = append(metrics, Metric{
			Name:      name,
			Type:      MetricTypeCounter,
			Value:     value,
			Timestamp: mc.updatedAt,
			Help:      metricHelp[name],
		})
	}

	average := 0.0
	if mc.latency.count > 0 {
		average = mc.latency.sum / float64(mc.latency.count)
	}
	metrics = append(metrics, Metric{
		Name:      MetricPredictionLatency,
		Type:      MetricTypeSummary,
		Value:     average,
		Timestamp: mc.updatedAt,
		Help:      metricHelp[MetricPredictionLatency],
		Metadata: map[string]interface{}{
			"count": mc.latency.count,
			"sum":   mc.latency.sum,
			"max":   mc.latency.max,
		},
	})
	metrics = append(metrics, Metric{
		Name:      MetricUptime,
		Type:      MetricTypeGauge,
		Value:     time.Since(mc.startTime).Seconds(),
		Timestamp: time.Now(),
		Help:      metricHelp[MetricUptime],
	})

	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].Name < metrics[j].Name
	})
	return metrics
}

// ExportPrometheus 导出Prometheus文本格式
func (mc *MetricsCollector) ExportPrometheus() string {
	var output strings.Builder
	for _, metric := range mc.Snapshot() {
		help := metric.Help
		if help == "" {
			help = fmt.Sprintf("Metric %s", metric.Name)
		}
		fmt.Fprintf(&output, "# HELP %s %s\n", metric.Name, help)
		fmt.Fprintf(&output, "# TYPE %s %s\n", metric.Name, metric.Type)
		if metric.Type == MetricTypeSummary {
			fmt.Fprintf(&output, "%s_sum %g\n", metric.Name, metric.Metadata["sum"])
			fmt.Fprintf(&output, "%s_count %d\n", metric.Name, metric.Metadata["count"])
			continue
		}
		fmt.Fprintf(&output, "%s %g\n", metric.Name, metric.Value)
	}
	return output.String()
}

// GetUptime 获取运行时间
func (mc *MetricsCollector) GetUptime() time.Duration {
	return time.Since(mc.startTime)
}
