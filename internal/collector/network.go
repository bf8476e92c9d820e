package collector

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/net"

	"github.com/sysmoni/sysmoni/internal/model"
)

type netState struct {
	prevRx, prevTx uint64
	havePrev       bool
}

// collectNetwork aggregates all interfaces into one NetStats, matching
// the teacher's single combined Net RX/TX card; refreshList is currently
// unused here since net.IOCountersWithContext(false) already returns the
// single aggregate pseudo-interface, but is threaded through for symmetry
// with the disk/temperature families that do re-enumerate per-device
// lists on this cadence.
func (c *Collector) collectNetwork(ctx context.Context, elapsed time.Duration, _ bool) *model.NetStats {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil || len(counters) == 0 {
		c.warnFamily("network", err)
		return nil
	}
	cur := counters[0]

	stats := &model.NetStats{TotalRxBytes: cur.BytesRecv, TotalTxBytes: cur.BytesSent}
	if c.netState.havePrev && elapsed > 0 {
		dtSec := elapsed.Seconds()
		if cur.BytesRecv >= c.netState.prevRx {
			stats.RxBps = float64(cur.BytesRecv-c.netState.prevRx) / dtSec
		}
		if cur.BytesSent >= c.netState.prevTx {
			stats.TxBps = float64(cur.BytesSent-c.netState.prevTx) / dtSec
		}
	}
	c.netState.prevRx, c.netState.prevTx = cur.BytesRecv, cur.BytesSent
	c.netState.havePrev = true
	return stats
}
