package observability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryMetrics_Counter(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Counter(MetricTasksCreated, 1)
	m.Counter(MetricTasksCreated, 2)

	assert.Equal(t, int64(3), m.GetCounter(MetricTasksCreated))
}

func TestInMemoryMetrics_CounterWithTags(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Counter(MetricOperationTotal, 1, T("operation", "plan_day"))
	m.Counter(MetricOperationTotal, 1, T("operation", "create_task"))
	m.Counter(MetricOperationTotal, 1, T("operation", "plan_day"))

	assert.Equal(t, int64(2), m.GetCounter(MetricOperationTotal, T("operation", "plan_day")))
	assert.Equal(t, int64(1), m.GetCounter(MetricOperationTotal, T("operation", "create_task")))

	// Untagged counter is a separate series
	assert.Zero(t, m.GetCounter(MetricOperationTotal))
}

func TestInMemoryMetrics_Gauge(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Gauge("dayflow.outbox.lag", 1.5)
	m.Gauge("dayflow.outbox.lag", 0.25)

	assert.Equal(t, 0.25, m.GetGauge("dayflow.outbox.lag"))
}

func TestInMemoryMetrics_Histogram(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Histogram(MetricPlanningDuration, 10.0)
	m.Histogram(MetricPlanningDuration, 20.0)

	values := m.GetHistogram(MetricPlanningDuration)
	assert.Equal(t, []float64{10.0, 20.0}, values)
}

func TestInMemoryMetrics_Timing(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Timing(MetricDBQueryDuration, 15*time.Millisecond)
	m.Timing(MetricDBQueryDuration, 25*time.Millisecond)

	timings := m.GetTimings(MetricDBQueryDuration)
	assert.Equal(t, []time.Duration{15 * time.Millisecond, 25 * time.Millisecond}, timings)
}

func TestInMemoryMetrics_Reset(t *testing.T) {
	m := NewInMemoryMetrics()

	m.Counter(MetricTasksCreated, 5)
	m.Gauge("dayflow.outbox.lag", 1.0)
	m.Reset()

	assert.Zero(t, m.GetCounter(MetricTasksCreated))
	assert.Zero(t, m.GetGauge("dayflow.outbox.lag"))
}

func TestInMemoryMetrics_ConcurrentAccess(t *testing.T) {
	m := NewInMemoryMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.Counter(MetricTasksCreated, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), m.GetCounter(MetricTasksCreated))
}

func TestNoopMetrics(t *testing.T) {
	var m Metrics = NoopMetrics{}

	// All calls are no-ops and must not panic.
	m.Counter(MetricTasksCreated, 1)
	m.Gauge("dayflow.outbox.lag", 1.0)
	m.Histogram(MetricPlanningDuration, 10.0)
	m.Timing(MetricDBQueryDuration, time.Millisecond)
}

func TestFormatKey(t *testing.T) {
	assert.Equal(t, "name", formatKey("name", nil))
	assert.Equal(t, "name:a=1", formatKey("name", []Tag{T("a", "1")}))
	assert.Equal(t, "name:a=1:b=2", formatKey("name", []Tag{T("a", "1"), T("b", "2")}))
}
