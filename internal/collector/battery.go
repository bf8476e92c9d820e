package collector

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sysmoni/sysmoni/internal/model"
)

// collectBattery reads power-supply state directly from sysfs, the same
// approach the teacher's sampler.battery uses, since gopsutil/v3's core
// packages don't expose a cross-platform battery reader and the pack has
// no dedicated battery library.
func (c *Collector) collectBattery(ctx context.Context) []model.Battery {
	if ctx.Err() != nil || !c.opts.WidgetsEnabled["battery"] {
		return nil
	}
	paths, err := filepath.Glob("/sys/class/power_supply/BAT*/capacity")
	if err != nil {
		c.warnFamily("battery", err)
		return nil
	}

	out := make([]model.Battery, 0, len(paths))
	for _, capPath := range paths {
		base := filepath.Dir(capPath)
		name := filepath.Base(base)

		capBytes, err := os.ReadFile(capPath)
		if err != nil {
			continue
		}
		pct := parseTrimmedFloat(string(capBytes))

		stateBytes, _ := os.ReadFile(filepath.Join(base, "status"))
		state := strings.TrimSpace(string(stateBytes))

		var secsRemaining int64
		if raw, err := os.ReadFile(filepath.Join(base, "time_to_empty_now")); err == nil {
			secsRemaining, _ = strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
		}

		out = append(out, model.Battery{
			Name:             name,
			Percent:          pct,
			State:            state,
			SecondsRemaining: secsRemaining,
		})
	}
	return out
}

func parseTrimmedFloat(s string) float64 {
	s = strings.TrimSpace(s)
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
