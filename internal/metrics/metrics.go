// Package metrics publishes Prometheus metrics for capacity use cases and
// team-level figures.
package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/alexanderramin/capacity/internal/capacity"
	"github.com/alexanderramin/capacity/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "capacity"

// Observer records every service use case and the latest team gauges on its
// own registry.
type Observer struct {
	Registry *prometheus.Registry

	useCases        *prometheus.CounterVec
	useCaseDuration *prometheus.HistogramVec
	saturationRate  *prometheus.GaugeVec
	avgLoad         *prometheus.GaugeVec
	elasticity      *prometheus.GaugeVec
}

var (
	_ service.UseCaseObserver = (*Observer)(nil)
	_ service.TeamGaugeSink   = (*Observer)(nil)
)

func NewObserver() *Observer {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	return &Observer{
		Registry: reg,
		useCases: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "use_cases_total",
			Help:      "Service use cases executed, by name and outcome",
		}, []string{"use_case", "success"}),
		useCaseDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "use_case_duration_seconds",
			Help:      "Time taken by service use cases",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"use_case"}),
		saturationRate: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "team_saturation_rate",
			Help:      "Fraction of operational users at or above full occupancy, by month",
		}, []string{"month"}),
		avgLoad: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "team_avg_load_percent",
			Help:      "Mean occupancy of operational users in percent, by month",
		}, []string{"month"}),
		elasticity: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "team_elasticity_percent",
			Help:      "Share of team capacity still free, by month",
		}, []string{"month"}),
	}
}

func (o *Observer) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	o.useCases.WithLabelValues(event.Name, strconv.FormatBool(event.Success)).Inc()
	o.useCaseDuration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
}

// SetTeamTrend replaces the trend gauges so months that left the window disappear.
func (o *Observer) SetTeamTrend(points []capacity.TrendPoint) {
	o.saturationRate.Reset()
	o.avgLoad.Reset()
	for _, p := range points {
		month := p.Month.String()
		o.saturationRate.WithLabelValues(month).Set(p.SaturationRate)
		o.avgLoad.WithLabelValues(month).Set(p.AvgLoad)
	}
}

func (o *Observer) SetTeamElasticity(month string, pct float64) {
	o.elasticity.WithLabelValues(month).Set(pct)
}

// Handler serves the registry in the Prometheus exposition format.
func (o *Observer) Handler() http.Handler {
	return promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{})
}
