package collector

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"

	"github.com/sysmoni/sysmoni/internal/model"
)

type cpuState struct {
	prevTotal float64
	prevIdle  float64
	prevCore  []cpu.TimesStat
	// systemUtilFraction is the most recent overall CPU utilization
	// fraction (0-1), used by CurrentUsage-mode per-process CPU%.
	systemUtilFraction float64
}

func (c *Collector) collectCPU(ctx context.Context, elapsed time.Duration) *model.CPUStats {
	times, err := cpu.TimesWithContext(ctx, false)
	if err != nil || len(times) == 0 {
		c.warnFamily("cpu", err)
		return nil
	}

	cur := times[0]
	curTotal := cur.Total()
	curIdle := cur.Idle + cur.Iowait
	var total float64
	if c.cpuState.prevTotal > 0 {
		dt := curTotal - c.cpuState.prevTotal
		di := curIdle - c.cpuState.prevIdle
		if dt > 0 {
			total = 100 * (1 - di/dt)
		}
	}
	c.cpuState.prevTotal, c.cpuState.prevIdle = curTotal, curIdle
	c.cpuState.systemUtilFraction = total / 100

	coreTimes, err := cpu.TimesWithContext(ctx, true)
	if err != nil {
		c.warnFamily("cpu.percore", err)
		coreTimes = nil
	}
	perCore := make([]float64, len(coreTimes))
	for i, ct := range coreTimes {
		if i >= len(c.cpuState.prevCore) {
			continue
		}
		prev := c.cpuState.prevCore[i]
		dt := ct.Total() - prev.Total()
		di := (ct.Idle + ct.Iowait) - (prev.Idle + prev.Iowait)
		if dt > 0 {
			perCore[i] = 100 * (1 - di/dt)
		}
	}
	c.cpuState.prevCore = coreTimes

	stats := &model.CPUStats{PerCore: perCore}
	avg := total
	stats.Average = &avg

	if avgs, err := load.AvgWithContext(ctx); err == nil && avgs != nil {
		stats.Load1, stats.Load5, stats.Load15 = avgs.Load1, avgs.Load5, avgs.Load15
	} else if err != nil {
		c.warnFamily("load", err)
	}
	return stats
}
