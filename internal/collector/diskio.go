package collector

import (
	"context"
	"regexp"
	"time"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/sysmoni/sysmoni/internal/model"
)

// trailingPartitionSuffix matches a trailing digit run on a Linux block
// device name (sda1 -> sda, nvme0n1p2 -> nvme0n1), the implementer's-
// choice canonicalization rule spec.md §9 leaves open: partitions of the
// same physical device collapse to one DiskIO entry, so the same
// canonical name is used for that device on every tick.
var trailingPartitionSuffix = regexp.MustCompile(`p?\d+$`)

func canonicalizeDeviceName(name string) string {
	if short := trimDevPrefix(name); short != name {
		name = short
	}
	if trailingPartitionSuffix.MatchString(name) {
		return trailingPartitionSuffix.ReplaceAllString(name, "")
	}
	return name
}

func trimDevPrefix(name string) string {
	const prefix = "/dev/"
	if len(name) > len(prefix) && name[:len(prefix)] == prefix {
		return name[len(prefix):]
	}
	return name
}

// collectDiskIO returns cumulative byte counters per canonical device.
// It computes no read/write rate, and elapsed is unused; the event loop
// stores these cumulative values in the time-series store as they are.
func (c *Collector) collectDiskIO(ctx context.Context, _ time.Duration) map[string]model.DiskIO {
	counters, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		c.warnFamily("diskio", err)
		return nil
	}

	merged := make(map[string]disk.IOCountersStat)
	for name, st := range counters {
		canon := canonicalizeDeviceName(name)
		agg := merged[canon]
		agg.ReadBytes += st.ReadBytes
		agg.WriteBytes += st.WriteBytes
		merged[canon] = agg
	}

	out := make(map[string]model.DiskIO, len(merged))
	for name, st := range merged {
		out[name] = model.DiskIO{
			ReadBytesCumulative:  st.ReadBytes,
			WriteBytesCumulative: st.WriteBytes,
		}
	}
	return out
}
