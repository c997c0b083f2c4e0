// Package bridge mirrors the EC attribute surface onto MQTT.
//
// Writes arrive on msiec/set/{attribute} topics, confirmed values go
// out retained on msiec/state/{attribute}, and telemetry samples are
// published on msiec/telemetry. The bridge is the MQTT counterpart of
// the REST attribute handlers: same registry, same audit trail, same
// validation.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openlaptop/msiec-core/internal/attr"
	"github.com/openlaptop/msiec-core/internal/audit"
	"github.com/openlaptop/msiec-core/internal/infrastructure/logging"
	"github.com/openlaptop/msiec-core/internal/infrastructure/mqtt"
	"github.com/openlaptop/msiec-core/internal/telemetry"
)

// auditTimeout bounds the audit insert for a broker-initiated write.
const auditTimeout = 5 * time.Second

// Broker is the MQTT surface the bridge needs. Satisfied by mqtt.Client.
type Broker interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// StatePayload is the JSON body published on state topics.
type StatePayload struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Timestamp string `json:"timestamp"`
}

// Bridge connects the attribute registry to an MQTT broker.
type Bridge struct {
	broker   Broker
	registry *attr.Registry
	audit    audit.Repository // optional
	logger   *logging.Logger
	topics   mqtt.Topics
	qos      byte
}

// New creates a bridge over the given broker and registry.
func New(broker Broker, registry *attr.Registry, auditRepo audit.Repository, logger *logging.Logger, qos byte) *Bridge {
	return &Bridge{
		broker:   broker,
		registry: registry,
		audit:    auditRepo,
		logger:   logger,
		qos:      qos,
	}
}

// Start subscribes to the inbound set topics and publishes the current
// value of every readable attribute so subscribers start from a full
// retained snapshot.
func (b *Bridge) Start() error {
	if err := b.broker.Subscribe(b.topics.AllAttributeSets(), b.qos, b.handleSet); err != nil {
		return fmt.Errorf("subscribing to set topics: %w", err)
	}

	b.publishSnapshot()
	return nil
}

// publishSnapshot publishes the current value of each readable attribute.
func (b *Bridge) publishSnapshot() {
	for _, a := range b.registry.List() {
		value, err := a.Show()
		if err != nil {
			continue
		}
		b.PublishAttributeState(a.Name, value)
	}
}

// handleSet applies a write arriving on an MQTT set topic. The payload
// is the raw attribute value, exactly what a PUT body's value field
// would carry.
func (b *Bridge) handleSet(topic string, payload []byte) error {
	name := strings.TrimPrefix(topic, b.topics.SetPrefix())
	value := strings.TrimSpace(string(payload))

	previous, prevErr := b.registry.Show(name)

	err := b.registry.Store(name, value)
	b.record(name, value, previous, prevErr == nil, err)
	if err != nil {
		b.logger.Warn("mqtt write rejected", "attribute", name, "value", value, "error", err)
		return nil // expected validation failures are not subscription errors
	}

	confirmed, err := b.registry.Show(name)
	if err != nil {
		confirmed = value
	}
	b.PublishAttributeState(name, confirmed)

	b.logger.Info("mqtt write applied", "attribute", name, "value", confirmed)
	return nil
}

// record appends the write attempt to the audit trail.
func (b *Bridge) record(name, value, previous string, havePrevious bool, storeErr error) {
	if b.audit == nil {
		return
	}

	entry := &audit.Entry{
		Attribute: name,
		Value:     value,
		Outcome:   audit.OutcomeApplied,
		Source:    "mqtt",
	}
	if storeErr == nil && havePrevious {
		entry.Detail = "previous: " + previous
	}
	if storeErr != nil {
		entry.Detail = storeErr.Error()
		if errors.Is(storeErr, attr.ErrInvalidValue) || errors.Is(storeErr, attr.ErrReadOnly) ||
			errors.Is(storeErr, attr.ErrNotSupported) || errors.Is(storeErr, attr.ErrAddressUnknown) {
			entry.Outcome = audit.OutcomeRejected
		} else {
			entry.Outcome = audit.OutcomeFailed
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()
	if err := b.audit.Record(ctx, entry); err != nil {
		b.logger.Warn("audit record failed", "attribute", name, "error", err)
	}
}

// PublishAttributeState publishes a confirmed attribute value, retained
// so late subscribers see the current state.
func (b *Bridge) PublishAttributeState(name, value string) {
	payload, err := json.Marshal(StatePayload{
		Name:      name,
		Value:     value,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}

	if err := b.broker.Publish(b.topics.AttributeState(name), payload, b.qos, true); err != nil {
		b.logger.Warn("state publish failed", "attribute", name, "error", err)
	}
}

// Consume implements telemetry.Sink by publishing each sample on the
// telemetry topic. Samples are momentary readings, not state, so they
// are not retained.
func (b *Bridge) Consume(s telemetry.Sample) {
	payload, err := json.Marshal(s)
	if err != nil {
		return
	}

	if err := b.broker.Publish(b.topics.Telemetry(), payload, b.qos, false); err != nil {
		b.logger.Warn("telemetry publish failed", "error", err)
	}
}
