package collector

import (
	"context"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/sysmoni/sysmoni/internal/model"
)

type tempListCache struct {
	sensors []host.TemperatureStat
}

func (c *Collector) collectTemps(ctx context.Context, refresh bool) []model.TempSensor {
	if refresh || c.tempCache.sensors == nil {
		sensors, err := host.SensorsTemperaturesWithContext(ctx)
		if err != nil {
			c.warnFamily("temperature", err)
			if c.tempCache.sensors == nil {
				return nil
			}
		} else {
			c.tempCache.sensors = sensors
		}
	}

	out := make([]model.TempSensor, 0, len(c.tempCache.sensors))
	for _, t := range c.tempCache.sensors {
		out = append(out, model.TempSensor{
			Name:               t.SensorKey,
			TemperatureCelsius: t.Temperature,
		})
	}
	return out
}

// ConvertCelsius converts a stored Celsius reading to the display unit
// selected by config.Config.TempUnit; sysmoni keeps Celsius as the
// canonical stored/wire unit and converts only where it's rendered,
// matching spec.md's "implementer's-choice" unit-conversion boundary.
func ConvertCelsius(c float64, unit string) float64 {
	switch unit {
	case "F":
		return c*9/5 + 32
	case "K":
		return c + 273.15
	default:
		return c
	}
}
