package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rustyeddy/creditrisk/risk"
)

// Collector exports the outcome of every engine evaluation. It implements
// risk.Observer.
type Collector struct {
	registry    *prometheus.Registry
	evaluations *prometheus.CounterVec
	excluded    *prometheus.CounterVec
	exposure    *prometheus.GaugeVec
	rwa         *prometheus.GaugeVec
	el          *prometheus.GaugeVec
	capital     *prometheus.GaugeVec
	pd          *prometheus.HistogramVec
	logger      *zap.Logger
}

func NewCollector(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "creditrisk_evaluations_total",
			Help: "Number of portfolio evaluations",
		}, []string{"scenario"}),
		excluded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "creditrisk_loans_excluded_total",
			Help: "Loans rejected by validation and left out of aggregates",
		}, []string{"scenario"}),
		exposure: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "creditrisk_exposure",
			Help: "Total exposure at default of the last evaluation",
		}, []string{"scenario"}),
		rwa: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "creditrisk_rwa",
			Help: "Total risk-weighted assets of the last evaluation",
		}, []string{"scenario"}),
		el: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "creditrisk_expected_loss",
			Help: "Total expected loss of the last evaluation",
		}, []string{"scenario"}),
		capital: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "creditrisk_capital_requirement",
			Help: "Minimum capital of the last evaluation",
		}, []string{"scenario", "component"}),
		pd: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "creditrisk_loan_pd",
			Help:    "Distribution of per-loan PD after stress",
			Buckets: []float64{0.05, 0.10, 0.30, 1.0},
		}, []string{"scenario"}),
		logger: logger,
	}
}

// Observe records one evaluation.
func (c *Collector) Observe(r risk.Result) {
	s := r.Scenario
	c.evaluations.WithLabelValues(s).Inc()
	c.excluded.WithLabelValues(s).Add(float64(len(r.Excluded)))

	t := r.Summary.Totals
	c.exposure.WithLabelValues(s).Set(t.Exposure)
	c.rwa.WithLabelValues(s).Set(t.RWA)
	c.el.WithLabelValues(s).Set(t.EL)

	c.capital.WithLabelValues(s, "tier1").Set(r.Capital.Tier1Capital)
	c.capital.WithLabelValues(s, "total").Set(r.Capital.TotalCapital)
	c.capital.WithLabelValues(s, "with_buffer").Set(r.Capital.CapitalWithBuffer)

	h := c.pd.WithLabelValues(s)
	for _, l := range r.Loans {
		h.Observe(l.PD)
	}
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// StartServer serves /metrics on addr in the background.
func (c *Collector) StartServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		c.logger.Info("starting metrics server", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	return server
}
