package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteThermal writes one temperature sample.
//
// Parameters:
//   - component: "cpu" or "gpu"
//   - celsius: temperature as reported by the EC
func (c *Client) WriteThermal(component string, celsius float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"thermal",
		map[string]string{"component": component},
		map[string]interface{}{"temperature_c": celsius},
		time.Now(),
	)
	c.writeAPI.WritePoint(point)
}

// WriteFanSpeed writes one fan speed sample.
//
// Parameters:
//   - component: "cpu" or "gpu"
//   - value: fan speed reading
//   - unit: "percent" for scaled readings, "raw" where no scaling is known
func (c *Client) WriteFanSpeed(component string, value float64, unit string) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"fan_speed",
		map[string]string{
			"component": component,
			"unit":      unit,
		},
		map[string]interface{}{"value": value},
		time.Now(),
	)
	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point for measurements the helpers do not
// cover. Tags index the point and should stay low-cardinality.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(write.NewPoint(measurement, tags, fields, time.Now()))
}
