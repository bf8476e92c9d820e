// Package model defines the data types exchanged between the collector,
// the time-series store, the process model, and the view layer.
package model

import "time"

// CPUStats aggregates instantaneous CPU usage for one collection tick.
type CPUStats struct {
	PerCore []float64 // percent 0-100, one entry per logical core
	Average *float64  // percent 0-100, nil if the platform can't report one
	Load1   float64
	Load5   float64
	Load15  float64
}

// MemStats captures a used/total pair in bytes, shared by memory, swap,
// cache, ARC, and GPU-memory families.
type MemStats struct {
	UsedBytes   uint64
	TotalBytes  uint64
	UsePercent  *float64
}

// NetStats holds aggregate network throughput for the tick.
type NetStats struct {
	RxBps          float64
	TxBps          float64
	TotalRxBytes   uint64
	TotalTxBytes   uint64
}

// DiskUsage is a per-mount capacity snapshot.
type DiskUsage struct {
	Name       string
	Mount      string
	UsedBytes  uint64
	TotalBytes uint64
	FreeBytes  uint64
}

// DiskIO is a per-device cumulative IO counter pair, keyed by the
// canonicalized device name (see internal/collector/diskio.go).
type DiskIO struct {
	ReadBytesCumulative  uint64
	WriteBytesCumulative uint64
}

// TempSensor is one thermal zone reading in Celsius.
type TempSensor struct {
	Name             string
	TemperatureCelsius float64
}

// Battery describes one power-supply unit.
type Battery struct {
	Name             string
	Percent          float64
	State            string
	SecondsRemaining int64
}

// GPU is a single accelerator device snapshot.
type GPU struct {
	Name          string
	UtilPercent   float64
	MemUsedBytes  uint64
	MemTotalBytes uint64
	TempCelsius   float64
}

// ProcessRecord is one process's metrics for a single Sample.
//
// Invariant: StateShort is a single printable character; PID is unique
// within the owning Sample's Processes slice.
type ProcessRecord struct {
	PID            int32
	ParentPID      *int32
	Name           string
	Command        string
	CPUPercent     float64
	MemPercent     float64
	MemBytes       uint64
	ReadBps        float64
	WriteBps       float64
	TotalReadBytes  uint64
	TotalWriteBytes uint64
	StateShort     byte
	StateLong      string
	User           *string
	UID            *uint32
	CPUTime        time.Duration
	GPUMemBytes    *uint64
	GPUMemPercent  *float64
	GPUUtilPercent *float64
}

// Sample is an immutable record of one collection instant. Every metric
// family is optional (nil/empty) to tolerate partial platform support;
// callers must never assume a family's presence.
type Sample struct {
	Instant   time.Time
	CPU       *CPUStats
	Memory    *MemStats
	Swap      *MemStats
	Cache     *MemStats
	ARC       *MemStats
	GPUMemory *MemStats
	Network   *NetStats
	Disks     []DiskUsage
	DiskIO    map[string]DiskIO
	Temps     []TempSensor
	Processes []ProcessRecord
	Batteries []Battery
	GPUs      []GPU
}

// LatestSnapshot holds the most recent non-time-series values, kept
// separately from the time-series store for direct-read widgets (tables,
// gauges). It is a plain value so the freeze controller can Clone it.
type LatestSnapshot struct {
	Instant   time.Time
	Memory    *MemStats
	Swap      *MemStats
	Network   *NetStats
	Disks     []DiskUsage
	Temps     []TempSensor
	Batteries []Battery
	GPUs      []GPU
	LoadAvg   [3]float64
}

// SnapshotFrom extracts the LatestSnapshot fields from a Sample.
func SnapshotFrom(s Sample) LatestSnapshot {
	var load [3]float64
	if s.CPU != nil {
		load = [3]float64{s.CPU.Load1, s.CPU.Load5, s.CPU.Load15}
	}
	return LatestSnapshot{
		Instant:   s.Instant,
		Memory:    s.Memory,
		Swap:      s.Swap,
		Network:   s.Network,
		Disks:     append([]DiskUsage(nil), s.Disks...),
		Temps:     append([]TempSensor(nil), s.Temps...),
		Batteries: append([]Battery(nil), s.Batteries...),
		GPUs:      append([]GPU(nil), s.GPUs...),
		LoadAvg:   load,
	}
}

// Clone returns a copy with its own slices, used when freezing the view.
// The Memory, Swap and Network pointers are shared with l.
func (l LatestSnapshot) Clone() LatestSnapshot {
	c := l
	c.Disks = append([]DiskUsage(nil), l.Disks...)
	c.Temps = append([]TempSensor(nil), l.Temps...)
	c.Batteries = append([]Battery(nil), l.Batteries...)
	c.GPUs = append([]GPU(nil), l.GPUs...)
	return c
}
