// Package influxdb wraps the InfluxDB v2 client for long-term storage
// of EC telemetry.
//
// Temperature and fan speed samples are written through the
// non-blocking batched write API, so a slow or absent InfluxDB never
// stalls the sampler. Async write failures surface through an error
// callback rather than per-write returns.
package influxdb
