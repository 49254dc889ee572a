package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

const namespace = "inventario_ledger"

// Ensure Recorder implements inventory.Metrics.
var _ inventory.Metrics = (*Recorder)(nil)

// Recorder métricas Prometheus del procesador de movimientos y del API HTTP.
// Usa un registro propio para no mezclar con el global (y aislar tests).
type Recorder struct {
	registry *prometheus.Registry

	movements   *prometheus.CounterVec
	amounts     *prometheus.HistogramVec
	rejections  *prometheus.CounterVec
	httpReqs    *prometheus.CounterVec
	httpLatency *prometheus.HistogramVec
}

// NewRecorder registra los colectores. withRuntime agrega métricas de proceso y Go.
func NewRecorder(withRuntime bool) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movements_recorded_total",
			Help:      "Movimientos de inventario confirmados con sus asientos.",
		}, []string{"type", "reason"}),
		amounts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "movement_amount",
			Help:      "Monto total por movimiento confirmado.",
			Buckets:   []float64{1, 10, 50, 100, 500, 1000, 5000, 10000},
		}, []string{"type"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "postings_rejected_total",
			Help:      "Movimientos rechazados por tipo de fallo.",
		}, []string{"kind"}),
		httpReqs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	r.registry.MustRegister(r.movements, r.amounts, r.rejections, r.httpReqs, r.httpLatency)
	if withRuntime {
		r.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return r
}

// MovementRecorded cuenta un movimiento confirmado y observa su monto.
func (r *Recorder) MovementRecorded(txType, reason string, amount decimal.Decimal) {
	r.movements.WithLabelValues(txType, reason).Inc()
	r.amounts.WithLabelValues(txType).Observe(amount.InexactFloat64())
}

// PostingRejected cuenta un rechazo (validation, conflict, unclassifiable, atomicity...).
func (r *Recorder) PostingRejected(kind string) {
	r.rejections.WithLabelValues(kind).Inc()
}

// ObserveRequest registra una petición HTTP atendida.
func (r *Recorder) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	r.httpReqs.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato Prometheus.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry el registro subyacente (tests).
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }
