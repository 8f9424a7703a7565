package otel

import (
	"context"
	"errors"
	"fmt"

	sessionkit "github.com/ledgerfront/sessionkit"
	"github.com/ledgerfront/sessionkit/metrics/export/internaldefs"
	"go.opentelemetry.io/otel/metric"
)

var (
	// ErrNilMeter is returned when no Meter is supplied.
	ErrNilMeter = errors.New("nil meter")
	// ErrNilSource is returned when no metrics source is supplied.
	ErrNilSource = errors.New("nil metrics source")
)

type metricsSource interface {
	MetricsSnapshot() sessionkit.MetricsSnapshot
	EventsDropped() uint64
}

type observedCounter struct {
	id         sessionkit.MetricID
	instrument metric.Int64ObservableCounter
}

// OTelExporter bridges session counters onto an OpenTelemetry Meter.
type OTelExporter struct {
	source        metricsSource
	registration  metric.Registration
	counters      []observedCounter
	eventsDropped metric.Int64ObservableCounter
}

// NewOTelExporter registers the session's counters on the meter.
func NewOTelExporter(meter metric.Meter, session *sessionkit.Session) (*OTelExporter, error) {
	return NewOTelExporterFromSource(meter, session)
}

// NewOTelExporterFromSource registers a custom source's counters on the
// meter.
func NewOTelExporterFromSource(meter metric.Meter, source metricsSource) (*OTelExporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	exporter := &OTelExporter{
		source:   source,
		counters: make([]observedCounter, 0, len(internaldefs.CounterDefs)),
	}

	observables := make([]metric.Observable, 0, len(internaldefs.CounterDefs)+1)

	for _, def := range internaldefs.CounterDefs {
		ins, err := meter.Int64ObservableCounter(def.Name, metric.WithDescription(def.Help))
		if err != nil {
			return nil, fmt.Errorf("create observable counter %s: %w", def.Name, err)
		}
		exporter.counters = append(exporter.counters, observedCounter{id: def.ID, instrument: ins})
		observables = append(observables, ins)
	}

	eventsDropped, err := meter.Int64ObservableCounter(
		internaldefs.EventsDroppedName,
		metric.WithDescription(internaldefs.EventsDroppedHelp),
	)
	if err != nil {
		return nil, fmt.Errorf("create events dropped counter: %w", err)
	}
	exporter.eventsDropped = eventsDropped
	observables = append(observables, eventsDropped)

	registration, err := meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		snapshot := exporter.source.MetricsSnapshot()
		for _, c := range exporter.counters {
			observer.ObserveInt64(c.instrument, int64(snapshot.Counters[c.id]))
		}
		observer.ObserveInt64(exporter.eventsDropped, int64(exporter.source.EventsDropped()))
		return nil
	}, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}

	exporter.registration = registration
	return exporter, nil
}

// Close unregisters the collection callback.
func (e *OTelExporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
