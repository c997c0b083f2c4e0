// Package telemetry periodically samples the EC's thermal and fan
// registers and fans the readings out to the configured sinks.
package telemetry

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/openlaptop/msiec-core/internal/attr"
	"github.com/openlaptop/msiec-core/internal/infrastructure/logging"
)

// Sample is one telemetry snapshot. Fields are nil when the model does
// not expose the reading, or when the read faulted this cycle.
type Sample struct {
	Timestamp      time.Time `json:"timestamp"`
	CPUTemperature *int      `json:"cpu_temperature,omitempty"`
	CPUFanSpeed    *int      `json:"cpu_fan_speed,omitempty"`
	GPUTemperature *int      `json:"gpu_temperature,omitempty"`
	GPUFanSpeedRaw *int      `json:"gpu_fan_speed_raw,omitempty"`
}

// Sink receives each completed sample. Implementations must not block;
// slow consumers should buffer or drop.
type Sink interface {
	Consume(s Sample)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(s Sample)

// Consume implements Sink.
func (f SinkFunc) Consume(s Sample) { f(s) }

// Sampler drives the periodic collection loop.
type Sampler struct {
	registry *attr.Registry
	interval time.Duration
	logger   *logging.Logger
	sinks    []Sink
}

// NewSampler creates a sampler over the attribute registry. Readings
// go through the registry rather than raw registers so the sampler
// respects the same capability gating as every other consumer.
func NewSampler(registry *attr.Registry, interval time.Duration, logger *logging.Logger, sinks ...Sink) *Sampler {
	return &Sampler{
		registry: registry,
		interval: interval,
		logger:   logger,
		sinks:    sinks,
	}
}

// AddSink registers an additional sink. Not safe to call after Run has
// started.
func (s *Sampler) AddSink(sink Sink) {
	s.sinks = append(s.sinks, sink)
}

// Run samples on the configured interval until ctx is cancelled. An
// immediate first sample runs before the first tick.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.collect()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.collect()
		}
	}
}

func (s *Sampler) collect() {
	sample := Sample{Timestamp: time.Now().UTC()}

	sample.CPUTemperature = s.readInt("cpu/realtime_temperature")
	sample.CPUFanSpeed = s.readInt("cpu/realtime_fan_speed")
	sample.GPUTemperature = s.readInt("gpu/realtime_temperature")
	sample.GPUFanSpeedRaw = s.readInt("gpu/realtime_fan_speed")

	for _, sink := range s.sinks {
		sink.Consume(sample)
	}
}

// readInt reads a numeric attribute, returning nil for attributes the
// model does not expose. Hard read failures are logged but do not stop
// the sampling loop.
func (s *Sampler) readInt(name string) *int {
	value, err := s.registry.Show(name)
	if err != nil {
		if errors.Is(err, attr.ErrNotSupported) || errors.Is(err, attr.ErrAddressUnknown) {
			return nil
		}
		s.logger.Warn("telemetry read failed", "attribute", name, "error", err)
		return nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		s.logger.Warn("telemetry value not numeric", "attribute", name, "value", value)
		return nil
	}
	return &n
}
