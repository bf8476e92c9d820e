package collector

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/sysmoni/sysmoni/internal/model"
)

func (c *Collector) collectMemory(ctx context.Context) (memStats, swapStats *model.MemStats) {
	if v, err := mem.VirtualMemoryWithContext(ctx); err == nil && v != nil {
		pct := v.UsedPercent
		memStats = &model.MemStats{UsedBytes: v.Used, TotalBytes: v.Total, UsePercent: &pct}
	} else {
		c.warnFamily("memory", err)
	}

	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil && sw != nil {
		pct := sw.UsedPercent
		swapStats = &model.MemStats{UsedBytes: sw.Used, TotalBytes: sw.Total, UsePercent: &pct}
	} else {
		c.warnFamily("swap", err)
	}
	return
}
