package telemetry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/openlaptop/msiec-core/internal/attr"
	"github.com/openlaptop/msiec-core/internal/ec"
	"github.com/openlaptop/msiec-core/internal/infrastructure/config"
	"github.com/openlaptop/msiec-core/internal/infrastructure/logging"
	"github.com/openlaptop/msiec-core/internal/profile"
)

type memTransport struct {
	mu   sync.Mutex
	regs [256]byte
}

func (m *memTransport) ReadByte(addr uint8) (byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.regs[addr], nil
}

func (m *memTransport) WriteByte(addr uint8, value byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs[addr] = value
	return nil
}

func (m *memTransport) set(addr uint8, value byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs[addr] = value
}

type captureSink struct {
	mu      sync.Mutex
	samples []Sample
}

func (c *captureSink) Consume(s Sample) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.samples = append(c.samples, s)
}

func (c *captureSink) last(t *testing.T) Sample {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.samples) == 0 {
		t.Fatal("no samples captured")
	}
	return c.samples[len(c.samples)-1]
}

func testLogger() *logging.Logger {
	return logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stderr"}, "test")
}

func telemetryProfile() *profile.Profile {
	return &profile.Profile{
		Name: "test",
		CPU: profile.CPU{
			RealtimeTempAddress: profile.Addr(0x68),
			RealtimeFanSpeed:    profile.Range{Address: profile.Addr(0x71), BaseMin: 0x19, BaseMax: 0x37},
		},
		GPU: profile.GPU{
			RealtimeTempAddress:     profile.Addr(0x80),
			RealtimeFanSpeedAddress: profile.Unsupported,
		},
	}
}

func TestSamplerCollectsSupportedReadings(t *testing.T) {
	tr := &memTransport{}
	tr.set(0x68, 61)
	tr.set(0x71, 0x37)
	tr.set(0x80, 48)

	registry := attr.NewRegistry(ec.New(tr), telemetryProfile())
	sink := &captureSink{}
	s := NewSampler(registry, time.Minute, testLogger(), sink)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Run(ctx) // collects once before checking ctx

	sample := sink.last(t)
	if sample.CPUTemperature == nil || *sample.CPUTemperature != 61 {
		t.Errorf("CPUTemperature = %v, want 61", sample.CPUTemperature)
	}
	if sample.CPUFanSpeed == nil || *sample.CPUFanSpeed != 100 {
		t.Errorf("CPUFanSpeed = %v, want 100", sample.CPUFanSpeed)
	}
	if sample.GPUTemperature == nil || *sample.GPUTemperature != 48 {
		t.Errorf("GPUTemperature = %v, want 48", sample.GPUTemperature)
	}
	if sample.GPUFanSpeedRaw != nil {
		t.Errorf("GPUFanSpeedRaw = %v, want nil for unsupported feature", *sample.GPUFanSpeedRaw)
	}
	if sample.Timestamp.IsZero() {
		t.Error("sample timestamp not set")
	}
}

func TestSamplerSkipsFaultedReading(t *testing.T) {
	tr := &memTransport{}
	tr.set(0x68, 50)
	tr.set(0x71, 0xff) // outside the fan range

	registry := attr.NewRegistry(ec.New(tr), telemetryProfile())
	sink := &captureSink{}
	s := NewSampler(registry, time.Minute, testLogger(), sink)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Run(ctx)

	sample := sink.last(t)
	if sample.CPUFanSpeed != nil {
		t.Errorf("CPUFanSpeed = %v, want nil for out of band raw value", *sample.CPUFanSpeed)
	}
	if sample.CPUTemperature == nil || *sample.CPUTemperature != 50 {
		t.Errorf("CPUTemperature = %v, want 50 despite fan fault", sample.CPUTemperature)
	}
}

func TestSamplerStopsOnCancel(t *testing.T) {
	tr := &memTransport{}
	registry := attr.NewRegistry(ec.New(tr), telemetryProfile())
	sink := &captureSink{}
	s := NewSampler(registry, 5*time.Millisecond, testLogger(), sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sampler did not stop after cancel")
	}
}
