package xsink

import (
	"context"

	"github.com/omeyang/logsink/internal/diag"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "github.com/omeyang/logsink/pkg/observability/xsink"

	metricWritten   = "logsink.messages.written"
	metricFiltered  = "logsink.messages.filtered"
	metricErrors    = "logsink.write.errors"
	metricRotations = "logsink.rotations"

	attrKeySink = "sink"
)

// sinkMetrics 每个 Sink 持有的指标集。
// 所有方法都对 nil 接收者与 nil 计数器安全：指标是旁路观测，
// 创建失败只发一条诊断，绝不影响日志写入路径。
type sinkMetrics struct {
	attrs       metric.MeasurementOption
	written     metric.Int64Counter
	filtered    metric.Int64Counter
	writeErrors metric.Int64Counter
	rotations   metric.Int64Counter
}

// newSinkMetrics 创建指标集。provider 为 nil 时回落到 otel 全局
// MeterProvider（未配置时为 noop）。
func newSinkMetrics(provider metric.MeterProvider, kind Kind) *sinkMetrics {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(instrumentationName)

	m := &sinkMetrics{
		attrs: metric.WithAttributes(attribute.String(attrKeySink, kind.String())),
	}

	var err error
	if m.written, err = meter.Int64Counter(metricWritten,
		metric.WithDescription("成功写入的日志条数"), metric.WithUnit("1")); err != nil {
		diag.Printf("failed to create counter %s: %v", metricWritten, err)
	}
	if m.filtered, err = meter.Int64Counter(metricFiltered,
		metric.WithDescription("因级别不足被过滤的日志条数"), metric.WithUnit("1")); err != nil {
		diag.Printf("failed to create counter %s: %v", metricFiltered, err)
	}
	if m.writeErrors, err = meter.Int64Counter(metricErrors,
		metric.WithDescription("写入或刷新失败次数"), metric.WithUnit("1")); err != nil {
		diag.Printf("failed to create counter %s: %v", metricErrors, err)
	}
	if m.rotations, err = meter.Int64Counter(metricRotations,
		metric.WithDescription("日志文件滚动次数"), metric.WithUnit("1")); err != nil {
		diag.Printf("failed to create counter %s: %v", metricRotations, err)
	}
	return m
}

func (m *sinkMetrics) incWritten() {
	if m == nil || m.written == nil {
		return
	}
	m.written.Add(context.Background(), 1, m.attrs)
}

func (m *sinkMetrics) incFiltered() {
	if m == nil || m.filtered == nil {
		return
	}
	m.filtered.Add(context.Background(), 1, m.attrs)
}

func (m *sinkMetrics) incWriteError() {
	if m == nil || m.writeErrors == nil {
		return
	}
	m.writeErrors.Add(context.Background(), 1, m.attrs)
}

func (m *sinkMetrics) incRotation() {
	if m == nil || m.rotations == nil {
		return
	}
	m.rotations.Add(context.Background(), 1, m.attrs)
}
