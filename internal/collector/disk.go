package collector

import (
	"context"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/sysmoni/sysmoni/internal/model"
)

// diskListCache holds the last enumerated partition list, re-used between
// listRefreshEvery-spaced refreshes so usage reads don't re-walk mounts
// every tick.
type diskListCache struct {
	partitions []disk.PartitionStat
}

func (c *Collector) collectDisks(ctx context.Context, refresh bool) []model.DiskUsage {
	if refresh || c.diskCache.partitions == nil {
		parts, err := disk.PartitionsWithContext(ctx, false)
		if err != nil {
			c.warnFamily("disk.partitions", err)
			if c.diskCache.partitions == nil {
				return nil
			}
		} else {
			c.diskCache.partitions = parts
		}
	}

	out := make([]model.DiskUsage, 0, len(c.diskCache.partitions))
	for _, p := range c.diskCache.partitions {
		if strings.HasPrefix(p.Device, "/dev/loop") {
			continue
		}
		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			continue
		}
		out = append(out, model.DiskUsage{
			Name:       canonicalizeDeviceName(p.Device),
			Mount:      p.Mountpoint,
			UsedBytes:  usage.Used,
			TotalBytes: usage.Total,
			FreeBytes:  usage.Free,
		})
	}
	return out
}
