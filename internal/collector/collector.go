// Package collector is the platform probe: it turns gopsutil reads into
// model.Sample values, one file per metric family, generalizing the
// teacher's single sampler.Sampler into spec.md §4.1's Init/Collect/Reset
// shape.
package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sysmoni/sysmoni/internal/errs"
	"github.com/sysmoni/sysmoni/internal/model"
)

// CPUPercentMode selects how per-process CPU% is normalized, per spec.md
// §4.1.
type CPUPercentMode int

const (
	Normalized CPUPercentMode = iota
	Unnormalized
	CurrentUsage
)

// Options configures a Collector at Init time.
type Options struct {
	WidgetsEnabled map[string]bool
	Filters        []string
	TempUnit       string // C|F|K
	CPUMode        CPUPercentMode
}

// listRefreshEvery bounds how often list-backed families (disks, network
// interfaces, temperature zones) re-enumerate their device lists, per
// spec.md §4.1.
const listRefreshEvery = 60 * time.Second

// platformMinInterval is the floor used to clamp Init's throwaway warm-up
// sleep; gopsutil doesn't expose a per-platform recommended interval, so
// we fall back to the teacher's implicit assumption of ~200ms.
const platformMinInterval = 200 * time.Millisecond

// Collector holds every metric family's previous-tick state, mirroring
// the teacher's mutable fields on sampler.Sampler but split into one
// struct per stateful family file (cpu.go, network.go, disk.go,
// process.go, temperature.go); memory.go, diskio.go, battery.go and
// gpu.go keep no state between ticks.
type Collector struct {
	opts Options

	lastTick time.Time

	cpuState     cpuState
	netState     netState
	diskCache    diskListCache
	tempCache    tempListCache
	procIOState  map[int32]procIOPrev
	listRefresh  listRefreshState
	warnedFamily map[string]bool
}

// New returns a zero-value Collector ready for Init.
func New(opts Options) *Collector {
	return &Collector{
		opts:         opts,
		procIOState:  make(map[int32]procIOPrev),
		warnedFamily: make(map[string]bool),
	}
}

// Init warms up every rate-based family with one throwaway Collect, then
// sleeps the clamped platform-minimum interval so the first real Collect
// has a non-zero elapsed baseline to compute deltas from.
func (c *Collector) Init(ctx context.Context) error {
	_ = c.Collect(ctx)

	wait := clampDuration(platformMinInterval, 10*time.Millisecond, 250*time.Millisecond)
	select {
	case <-time.After(wait):
	case <-ctx.Done():
		return fmt.Errorf("%w: init warm-up interrupted: %v", errs.ErrPlatformProbeFailed, ctx.Err())
	}

	c.lastTick = time.Now()
	return nil
}

// Collect takes one sample, computing rates from the elapsed wall time
// since the previous call. Any single family's failure degrades that
// field to nil/empty rather than failing the whole Sample.
func (c *Collector) Collect(ctx context.Context) model.Sample {
	now := time.Now()
	elapsed := now.Sub(c.lastTick)
	if elapsed <= 0 {
		elapsed = time.Second
	}

	refreshLists := c.listRefresh.due(now)

	s := model.Sample{Instant: now}
	s.CPU = c.collectCPU(ctx, elapsed)
	s.Memory, s.Swap = c.collectMemory(ctx)
	s.Network = c.collectNetwork(ctx, elapsed, refreshLists)
	s.Disks = c.collectDisks(ctx, refreshLists)
	s.DiskIO = c.collectDiskIO(ctx, elapsed)
	s.Temps = c.collectTemps(ctx, refreshLists)
	s.Batteries = c.collectBattery(ctx)
	s.GPUs = c.collectGPU(ctx)
	s.Processes = c.collectProcesses(ctx, elapsed)

	if refreshLists {
		c.listRefresh.mark(now)
	}
	c.lastTick = now
	return s
}

// Reset clears every family's previous-tick state, used after the event
// loop's Reset action re-arms the collector from scratch.
func (c *Collector) Reset() {
	c.cpuState = cpuState{}
	c.netState = netState{}
	c.diskCache = diskListCache{}
	c.tempCache = tempListCache{}
	c.procIOState = make(map[int32]procIOPrev)
	c.listRefresh = listRefreshState{}
	c.lastTick = time.Time{}
}

// warnFamily logs a family failure once per family name, matching
// spec.md §4.1's "deduplicated by family name" requirement.
func (c *Collector) warnFamily(family string, err error) {
	if c.warnedFamily[family] {
		return
	}
	c.warnedFamily[family] = true
	log.Printf("sysmoni: collector: %s %v", family, fmt.Errorf("%w: %v", errs.ErrPlatformFamilyMissing, err))
}

func clampDuration(v, lo, hi time.Duration) time.Duration {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type listRefreshState struct {
	lastRefresh time.Time
}

func (l *listRefreshState) due(now time.Time) bool {
	return l.lastRefresh.IsZero() || now.Sub(l.lastRefresh) >= listRefreshEvery
}

func (l *listRefreshState) mark(now time.Time) { l.lastRefresh = now }
