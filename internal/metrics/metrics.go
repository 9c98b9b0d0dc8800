// Package metrics exports an analytics report as Prometheus gauges, written
// in the node-exporter textfile format.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/runnerr0/searchwrapped/internal/analytics"
)

const namespace = "searchwrapped"

// Collectors holds the gauges filled from one report.
type Collectors struct {
	SearchesTotal   prometheus.Gauge
	MostSearchesDay prometheus.Gauge
	LongestPause    prometheus.Gauge
	PerWeek         *prometheus.GaugeVec
	HourWeekday     *prometheus.GaugeVec
	TopTerms        *prometheus.GaugeVec
	Locations       prometheus.Gauge
}

// NewCollectors creates unregistered gauges.
func NewCollectors() *Collectors {
	return &Collectors{
		SearchesTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Number of searches in the analyzed range",
		}),
		MostSearchesDay: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "most_searches_day",
			Help:      "Searches on the busiest day",
		}),
		LongestPause: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "longest_pause_seconds",
			Help:      "Longest gap between consecutive searches",
		}),
		PerWeek: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "searches_per_week",
			Help:      "Searches per Monday-start week",
		}, []string{"week"}),
		HourWeekday: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "searches_by_hour_weekday",
			Help:      "Searches per local hour of day and weekday",
		}, []string{"hour", "weekday"}),
		TopTerms: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "top_term_searches",
			Help:      "Searches of the most frequent terms",
		}, []string{"term"}),
		Locations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "locations_total",
			Help:      "Searches with an extracted location",
		}),
	}
}

// Register adds every gauge to reg.
func (c *Collectors) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{
		c.SearchesTotal, c.MostSearchesDay, c.LongestPause,
		c.PerWeek, c.HourWeekday, c.TopTerms, c.Locations,
	} {
		if err := reg.Register(col); err != nil {
			return fmt.Errorf("register collector: %w", err)
		}
	}
	return nil
}

// Observe sets the gauges from r. Heatmap cells that are unset are skipped;
// the pause gauge is left at zero when it is undefined.
func (c *Collectors) Observe(r analytics.Report) {
	c.SearchesTotal.Set(float64(r.Facts.CountSearches))
	c.MostSearchesDay.Set(float64(r.Facts.AmountMostSearches))
	if r.Facts.LongestPause != nil {
		c.LongestPause.Set(r.Facts.LongestPause.Seconds())
	}

	for _, w := range r.Weekly {
		c.PerWeek.WithLabelValues(w.WeekStart.Format("2006-01-02")).Set(float64(w.Count))
	}

	for hour := range r.Heatmap.Cells {
		for col, day := range analytics.Weekdays {
			if v, ok := r.Heatmap.Value(hour, col); ok {
				c.HourWeekday.WithLabelValues(strconv.Itoa(hour), day.String()).Set(float64(v))
			}
		}
	}

	for _, tc := range r.TopTerms {
		c.TopTerms.WithLabelValues(tc.Term).Set(float64(tc.Count))
	}

	c.Locations.Set(float64(len(r.Locations)))
}

// NewRegistry returns a fresh registry holding the gauges for r.
func NewRegistry(r analytics.Report) (*prometheus.Registry, *Collectors, error) {
	reg := prometheus.NewRegistry()
	c := NewCollectors()
	if err := c.Register(reg); err != nil {
		return nil, nil, err
	}
	c.Observe(r)
	return reg, c, nil
}

// WriteTextfile writes the gauges for r to path for the node-exporter
// textfile collector. The file is replaced atomically.
func WriteTextfile(path string, r analytics.Report) error {
	reg, _, err := NewRegistry(r)
	if err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
