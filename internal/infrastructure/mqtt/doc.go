// Package mqtt wraps paho.mqtt.golang for the daemon's state and
// telemetry fan-out.
//
// The daemon publishes retained attribute state under msiec/state/...
// so late subscribers immediately see the current EC configuration,
// streams telemetry samples under msiec/telemetry, and accepts inbound
// writes on msiec/set/{attribute}. A Last Will message on msiec/status
// flips the daemon to offline if the process dies without a clean
// disconnect.
//
// All methods are safe for concurrent use. Subscriptions are tracked
// and restored automatically after a reconnect.
package mqtt
