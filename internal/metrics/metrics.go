// Package metrics exports Prometheus counters for capability sessions,
// queries and diagnostic dumps. Counters are fed from the event bus.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smazurov/mediacaps/internal/events"
)

const namespace = "mediacaps"

// Collector owns a Prometheus registry and the mediacaps metric vectors.
type Collector struct {
	registry *prometheus.Registry

	sessionsOpened   *prometheus.CounterVec
	sessionsActive   *prometheus.GaugeVec
	capsEntries      *prometheus.GaugeVec
	encConfigs       *prometheus.GaugeVec
	attributeQueries *prometheus.CounterVec
	resolutionChecks *prometheus.CounterVec
	dumpFiles        *prometheus.CounterVec
	dumpBytes        *prometheus.CounterVec
	configReloads    *prometheus.CounterVec
}

// New creates a collector with its own registry. Go runtime and process
// collectors are registered alongside.
func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		sessionsOpened: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "opened_total",
			Help:      "Driver sessions opened",
		}, []string{"platform", "generation"}),
		sessionsActive: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Driver sessions currently open",
		}, []string{"platform"}),
		capsEntries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "caps",
			Name:      "entries",
			Help:      "Profile entrypoints registered by the last loaded session",
		}, []string{"platform"}),
		encConfigs: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "caps",
			Name:      "configs",
			Help:      "Configurations registered by the last loaded session",
		}, []string{"platform", "kind"}),
		attributeQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "caps",
			Name:      "attribute_queries_total",
			Help:      "Attribute queries by status",
		}, []string{"platform", "attribute", "status"}),
		resolutionChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "caps",
			Name:      "resolution_checks_total",
			Help:      "Resolution checks by direction and outcome",
		}, []string{"platform", "direction", "supported"}),
		dumpFiles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dump",
			Name:      "files_total",
			Help:      "Dump files written",
		}, []string{"attr"}),
		dumpBytes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dump",
			Name:      "bytes_total",
			Help:      "Dump bytes written",
		}, []string{"attr"}),
		configReloads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "config",
			Name:      "reloads_total",
			Help:      "Watched config reloads by result",
		}, []string{"result"}),
	}
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Attach subscribes the collector to bus and returns a function detaching it.
func (c *Collector) Attach(bus *events.Bus) func() {
	unsubs := []func(){
		bus.Subscribe(c.SessionOpened),
		bus.Subscribe(c.SessionClosed),
		bus.Subscribe(c.CapsLoaded),
		bus.Subscribe(c.AttributeQueried),
		bus.Subscribe(c.ResolutionChecked),
		bus.Subscribe(c.DumpWritten),
		bus.Subscribe(c.ConfigReloaded),
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

// SessionOpened records an opened session.
func (c *Collector) SessionOpened(e events.SessionOpenedEvent) {
	c.sessionsOpened.WithLabelValues(e.Platform, e.Generation).Inc()
	c.sessionsActive.WithLabelValues(e.Platform).Inc()
}

// SessionClosed records a closed session.
func (c *Collector) SessionClosed(e events.SessionClosedEvent) {
	c.sessionsActive.WithLabelValues(e.Platform).Dec()
}

// CapsLoaded records the size of a loaded capability table.
func (c *Collector) CapsLoaded(e events.CapsLoadedEvent) {
	c.capsEntries.WithLabelValues(e.Platform).Set(float64(e.Entries))
	c.encConfigs.WithLabelValues(e.Platform, "encode").Set(float64(e.EncConfigs))
	c.encConfigs.WithLabelValues(e.Platform, "decode").Set(float64(e.DecConfigs))
}

// AttributeQueried counts an attribute query.
func (c *Collector) AttributeQueried(e events.AttributeQueriedEvent) {
	c.attributeQueries.WithLabelValues(e.Platform, e.Attribute, e.Status).Inc()
}

// ResolutionChecked counts a resolution check.
func (c *Collector) ResolutionChecked(e events.ResolutionCheckedEvent) {
	c.resolutionChecks.WithLabelValues(e.Platform, e.Direction, strconv.FormatBool(e.Supported)).Inc()
}

// DumpWritten counts a written dump file.
func (c *Collector) DumpWritten(e events.DumpWrittenEvent) {
	c.dumpFiles.WithLabelValues(e.Attr).Inc()
	c.dumpBytes.WithLabelValues(e.Attr).Add(float64(e.Bytes))
}

// ConfigReloaded counts a config reload.
func (c *Collector) ConfigReloaded(e events.ConfigReloadedEvent) {
	result := "ok"
	if e.Error != "" {
		result = "error"
	}
	c.configReloads.WithLabelValues(result).Inc()
}
