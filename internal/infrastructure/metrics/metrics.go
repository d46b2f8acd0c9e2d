// Package metrics expone contadores e histogramas Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resultados de una exportación SAF-T.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Metrics agrupa los colectores sobre un registro propio (no el global), de modo que
// cada servidor o test tiene sus propios valores.
type Metrics struct {
	registry         *prometheus.Registry
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	reportsGenerated *prometheus.CounterVec
	saftExports      *prometheus.CounterVec
}

// New registra los colectores del servicio más los de Go y del proceso.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "proman_http_requests_total",
			Help: "Peticiones HTTP atendidas por método, ruta y estado.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "proman_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		reportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "proman_reports_generated_total",
			Help: "Reportes generados por tipo y formato.",
		}, []string{"type", "format"}),
		saftExports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "proman_saft_exports_total",
			Help: "Exportaciones SAF-T por resultado.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration, m.reportsGenerated, m.saftExports,
	)
	return m
}

// Las etiquetas quedan retenidas en el registro: se copian para no compartir
// memoria con el buffer de la petición.

// ObserveHTTP registra una petición terminada.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	method, route = strings.Clone(method), strings.Clone(route)
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ReportGenerated cuenta un reporte entregado.
func (m *Metrics) ReportGenerated(reportType, format string) {
	m.reportsGenerated.WithLabelValues(strings.Clone(reportType), strings.Clone(format)).Inc()
}

// SAFTExport cuenta una exportación con su resultado (ResultOK, ResultInvalid, ResultError).
func (m *Metrics) SAFTExport(result string) {
	m.saftExports.WithLabelValues(result).Inc()
}

// Registry devuelve el registro (para tests y exportadores adicionales).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler http.Handler de /metrics en formato de exposición Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
