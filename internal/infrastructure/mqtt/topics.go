package mqtt

import "fmt"

// TopicPrefix is the base for all daemon topics.
const TopicPrefix = "msiec"

// Topics provides builders for the daemon's MQTT topics. Using these
// helpers keeps topic naming consistent across publisher and handlers.
type Topics struct{}

// Status returns the daemon online/offline topic. Retained; also used
// as the Last Will topic.
//
// Example: msiec/status
func (Topics) Status() string {
	return TopicPrefix + "/status"
}

// AttributeState returns the retained state topic for one attribute.
// Attribute paths keep their slashes, so grouped attributes nest
// naturally in the topic tree.
//
// Example: msiec/state/shift_mode, msiec/state/cpu/realtime_temperature
func (Topics) AttributeState(name string) string {
	return fmt.Sprintf("%s/state/%s", TopicPrefix, name)
}

// AttributeSet returns the inbound write topic for one attribute.
//
// Example: msiec/set/shift_mode
func (Topics) AttributeSet(name string) string {
	return fmt.Sprintf("%s/set/%s", TopicPrefix, name)
}

// AllAttributeSets returns the wildcard pattern covering every inbound
// write topic.
//
// Example: msiec/set/#
func (Topics) AllAttributeSets() string {
	return TopicPrefix + "/set/#"
}

// SetPrefix returns the prefix to strip from an inbound write topic to
// recover the attribute name.
func (Topics) SetPrefix() string {
	return TopicPrefix + "/set/"
}

// Telemetry returns the topic for periodic telemetry samples.
//
// Example: msiec/telemetry
func (Topics) Telemetry() string {
	return TopicPrefix + "/telemetry"
}
