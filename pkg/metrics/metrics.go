package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса.
// Все метрики имеют label "service", чтобы несколько инстансов могли
// писать в один Prometheus без коллизий имен.
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBConnectionsOpen  *prometheus.GaugeVec
	DBConnectionsIdle  *prometheus.GaugeVec
	DBConnectionsInUse *prometheus.GaugeVec

	// Домен
	BookingsCreated   *prometheus.CounterVec
	BookingsConfirmed *prometheus.CounterVec
	BookingsCancelled *prometheus.CounterVec
	BookingsExpired   *prometheus.CounterVec
	WebhookEvents     *prometheus.CounterVec

	serviceName string
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"service", "operation"}),

		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of database query errors",
		}, []string{"service", "operation"}),

		DBConnectionsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_open",
			Help: "Number of open database connections",
		}, []string{"service"}),

		DBConnectionsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		}, []string{"service"}),

		DBConnectionsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "Number of database connections currently in use",
		}, []string{"service"}),

		BookingsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of bookings created, by initial status",
		}, []string{"service", "status"}),

		BookingsConfirmed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_confirmed_total",
			Help: "Total number of bookings confirmed by payment reconciliation",
		}, []string{"service"}),

		BookingsCancelled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_cancelled_total",
			Help: "Total number of bookings cancelled",
		}, []string{"service"}),

		BookingsExpired: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_expired_total",
			Help: "Total number of pending bookings expired by the hold-window sweep",
		}, []string{"service"}),

		WebhookEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "payment_webhook_events_total",
			Help: "Total number of payment webhook events, by processing result",
		}, []string{"service", "result"}),
	}

	// Инициализируем нулевые значения gauge-метрик
	m.DBConnectionsOpen.WithLabelValues(serviceName).Set(0)
	m.DBConnectionsIdle.WithLabelValues(serviceName).Set(0)
	m.DBConnectionsInUse.WithLabelValues(serviceName).Set(0)

	return m
}

// ObserveBookingCreated инкрементирует счетчик созданных броней
func (m *Metrics) ObserveBookingCreated(status string) {
	m.BookingsCreated.WithLabelValues(m.serviceName, status).Inc()
}

// ObserveBookingConfirmed инкрементирует счетчик подтвержденных броней
func (m *Metrics) ObserveBookingConfirmed() {
	m.BookingsConfirmed.WithLabelValues(m.serviceName).Inc()
}

// ObserveBookingCancelled инкрементирует счетчик отмененных броней
func (m *Metrics) ObserveBookingCancelled() {
	m.BookingsCancelled.WithLabelValues(m.serviceName).Inc()
}

// ObserveBookingsExpired добавляет число броней, освобожденных одним проходом
func (m *Metrics) ObserveBookingsExpired(count int) {
	m.BookingsExpired.WithLabelValues(m.serviceName).Add(float64(count))
}

// ObserveWebhookEvent инкрементирует счетчик webhook-событий по исходу
func (m *Metrics) ObserveWebhookEvent(result string) {
	m.WebhookEvents.WithLabelValues(m.serviceName, result).Inc()
}
