package bridge

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/openlaptop/msiec-core/internal/attr"
	"github.com/openlaptop/msiec-core/internal/ec"
	"github.com/openlaptop/msiec-core/internal/infrastructure/config"
	"github.com/openlaptop/msiec-core/internal/infrastructure/logging"
	"github.com/openlaptop/msiec-core/internal/infrastructure/mqtt"
	"github.com/openlaptop/msiec-core/internal/profile"
	"github.com/openlaptop/msiec-core/internal/telemetry"
)

type fakeTransport struct {
	mu   sync.Mutex
	regs [256]byte
}

func (f *fakeTransport) ReadByte(addr uint8) (byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regs[addr], nil
}

func (f *fakeTransport) WriteByte(addr uint8, value byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs[addr] = value
	return nil
}

func (f *fakeTransport) get(addr uint8) byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regs[addr]
}

func (f *fakeTransport) set(addr uint8, value byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs[addr] = value
}

type publishedMessage struct {
	topic    string
	payload  []byte
	retained bool
}

// fakeBroker records publishes and lets tests inject inbound messages.
type fakeBroker struct {
	mu        sync.Mutex
	published []publishedMessage
	handlers  map[string]mqtt.MessageHandler
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{handlers: make(map[string]mqtt.MessageHandler)}
}

func (f *fakeBroker) Publish(topic string, payload []byte, _ byte, retained bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, publishedMessage{topic: topic, payload: payload, retained: retained})
	return nil
}

func (f *fakeBroker) Subscribe(topic string, _ byte, handler mqtt.MessageHandler) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[topic] = handler
	return nil
}

// deliver routes an inbound message through the wildcard subscription.
func (f *fakeBroker) deliver(t *testing.T, topic string, payload string) {
	t.Helper()
	f.mu.Lock()
	var handler mqtt.MessageHandler
	for pattern, h := range f.handlers {
		if strings.HasSuffix(pattern, "#") && strings.HasPrefix(topic, strings.TrimSuffix(pattern, "#")) {
			handler = h
		}
	}
	f.mu.Unlock()

	if handler == nil {
		t.Fatalf("no subscription matches topic %q", topic)
	}
	if err := handler(topic, []byte(payload)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func (f *fakeBroker) find(topic string) (publishedMessage, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.published) - 1; i >= 0; i-- {
		if f.published[i].topic == topic {
			return f.published[i], true
		}
	}
	return publishedMessage{}, false
}

func testProfile() *profile.Profile {
	return &profile.Profile{
		Name: "test",
		ShiftMode: profile.ModeTable{
			Address: profile.Addr(0xd2),
			Modes: []profile.Mode{
				{Name: profile.ShiftEco, Value: 0xc2},
				{Name: profile.ShiftComfort, Value: 0xc1},
				{Name: profile.ShiftSport, Value: 0xc0},
			},
		},
		CoolerBoost: profile.Bit{Address: profile.Addr(0x98), Bit: 7},
	}
}

func testBridge(t *testing.T) (*Bridge, *fakeBroker, *fakeTransport) {
	t.Helper()

	tr := &fakeTransport{}
	registry := attr.NewRegistry(ec.New(tr), testProfile())
	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")
	broker := newFakeBroker()
	return New(broker, registry, nil, log, 1), broker, tr
}

func TestStartPublishesSnapshot(t *testing.T) {
	b, broker, tr := testBridge(t)
	tr.set(0xd2, 0xc2)

	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	msg, ok := broker.find("msiec/state/shift_mode")
	if !ok {
		t.Fatal("no retained state published for shift_mode")
	}
	if !msg.retained {
		t.Error("state message should be retained")
	}

	var state StatePayload
	if err := json.Unmarshal(msg.payload, &state); err != nil {
		t.Fatalf("unmarshal state payload: %v", err)
	}
	if state.Value != "eco" {
		t.Errorf("snapshot value = %q, want eco", state.Value)
	}
}

func TestInboundSetAppliesWrite(t *testing.T) {
	b, broker, tr := testBridge(t)
	tr.set(0xd2, 0xc1)

	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	broker.deliver(t, "msiec/set/shift_mode", "sport")

	if got := tr.get(0xd2); got != 0xc0 {
		t.Errorf("register 0xd2 = %#02x, want 0xc0", got)
	}

	msg, ok := broker.find("msiec/state/shift_mode")
	if !ok {
		t.Fatal("no state published after write")
	}
	var state StatePayload
	if err := json.Unmarshal(msg.payload, &state); err != nil {
		t.Fatalf("unmarshal state payload: %v", err)
	}
	if state.Value != "sport" {
		t.Errorf("published value = %q, want sport", state.Value)
	}
}

func TestInboundSetRejectsInvalidValue(t *testing.T) {
	b, broker, tr := testBridge(t)
	tr.set(0xd2, 0xc1)

	if err := b.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	before := len(broker.published)

	broker.deliver(t, "msiec/set/shift_mode", "ludicrous")

	if got := tr.get(0xd2); got != 0xc1 {
		t.Errorf("register changed on invalid value: %#02x", got)
	}
	if len(broker.published) != before {
		t.Error("state published for rejected write")
	}
}

func TestConsumePublishesTelemetry(t *testing.T) {
	b, broker, _ := testBridge(t)

	temp := 57
	b.Consume(telemetry.Sample{CPUTemperature: &temp})

	msg, ok := broker.find("msiec/telemetry")
	if !ok {
		t.Fatal("no telemetry published")
	}
	if msg.retained {
		t.Error("telemetry should not be retained")
	}

	var sample telemetry.Sample
	if err := json.Unmarshal(msg.payload, &sample); err != nil {
		t.Fatalf("unmarshal telemetry: %v", err)
	}
	if sample.CPUTemperature == nil || *sample.CPUTemperature != 57 {
		t.Errorf("cpu temperature = %v, want 57", sample.CPUTemperature)
	}
}
