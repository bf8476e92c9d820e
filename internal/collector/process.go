package collector

import (
	"context"
	"runtime"
	"sort"
	"time"

	gopsproc "github.com/shirou/gopsutil/v3/process"

	"github.com/sysmoni/sysmoni/internal/model"
)

type procIOPrev struct {
	readBytes  uint64
	writeBytes uint64
}

// collectProcesses enumerates every process, computing CPU% per the
// configured mode and I/O rates from cumulative counters, then sorts the
// result by PID ascending per spec.md §4.1's contract with
// internal/process.Model.Ingest.
func (c *Collector) collectProcesses(ctx context.Context, elapsed time.Duration) []model.ProcessRecord {
	procs, err := gopsproc.ProcessesWithContext(ctx)
	if err != nil {
		c.warnFamily("process", err)
		return nil
	}

	dtSec := elapsed.Seconds()
	if dtSec <= 0 {
		dtSec = 1
	}
	numCPU := float64(runtime.NumCPU())
	if numCPU <= 0 {
		numCPU = 1
	}

	newIO := make(map[int32]procIOPrev, len(procs))
	out := make([]model.ProcessRecord, 0, len(procs))

	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			continue
		}
		cmd, _ := p.CmdlineWithContext(ctx)
		if cmd == "" {
			cmd = name
		}

		rawPct, _ := p.CPUPercentWithContext(ctx)
		cpuPct := c.normalizeCPUPercent(rawPct, numCPU)

		memPct, _ := p.MemoryPercentWithContext(ctx)
		var memBytes uint64
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			memBytes = mi.RSS
		}

		var ppidPtr *int32
		if ppid, err := p.PpidWithContext(ctx); err == nil {
			ppidPtr = &ppid
		}

		stateShort, stateLong := processState(ctx, p)

		var userPtr *string
		var uidPtr *uint32
		if uname, err := p.UsernameWithContext(ctx); err == nil && uname != "" {
			userPtr = &uname
		}
		if uids, err := p.UidsWithContext(ctx); err == nil && len(uids) > 0 {
			u := uint32(uids[0])
			uidPtr = &u
		}

		var readBps, writeBps float64
		var totalRead, totalWrite uint64
		if counters, err := p.IOCountersWithContext(ctx); err == nil && counters != nil {
			totalRead, totalWrite = counters.ReadBytes, counters.WriteBytes
			if prev, ok := c.procIOState[p.Pid]; ok {
				if counters.ReadBytes >= prev.readBytes {
					readBps = float64(counters.ReadBytes-prev.readBytes) / dtSec
				}
				if counters.WriteBytes >= prev.writeBytes {
					writeBps = float64(counters.WriteBytes-prev.writeBytes) / dtSec
				}
			}
			newIO[p.Pid] = procIOPrev{readBytes: counters.ReadBytes, writeBytes: counters.WriteBytes}
		}

		var cpuTime time.Duration
		if times, err := p.TimesWithContext(ctx); err == nil && times != nil {
			cpuTime = time.Duration(times.Total() * float64(time.Second))
		}

		out = append(out, model.ProcessRecord{
			PID:             p.Pid,
			ParentPID:       ppidPtr,
			Name:            name,
			Command:         cmd,
			CPUPercent:      cpuPct,
			MemPercent:      float64(memPct),
			MemBytes:        memBytes,
			ReadBps:         readBps,
			WriteBps:        writeBps,
			TotalReadBytes:  totalRead,
			TotalWriteBytes: totalWrite,
			StateShort:      stateShort,
			StateLong:       stateLong,
			User:            userPtr,
			UID:             uidPtr,
			CPUTime:         cpuTime,
		})
	}

	c.procIOState = newIO
	sort.Slice(out, func(i, j int) bool { return out[i].PID < out[j].PID })
	return out
}

// normalizeCPUPercent applies the configured CPUPercentMode to gopsutil's
// raw per-process percentage (which is itself already relative to one
// core's full capacity, ala ps/top's "unnormalized" reading).
func (c *Collector) normalizeCPUPercent(raw float64, numCPU float64) float64 {
	switch c.opts.CPUMode {
	case Normalized:
		return raw / numCPU
	case CurrentUsage:
		util := c.cpuState.systemUtilFraction
		if util <= 0 {
			return raw
		}
		return raw / (util * numCPU)
	default: // Unnormalized
		return raw
	}
}

func processState(ctx context.Context, p *gopsproc.Process) (short byte, long string) {
	statuses, err := p.StatusWithContext(ctx)
	if err != nil || len(statuses) == 0 {
		return '?', "unknown"
	}
	s := statuses[0]
	if len(s) == 0 {
		return '?', "unknown"
	}
	return s[0], stateLongName(s[0])
}

func stateLongName(short byte) string {
	switch short {
	case 'R':
		return "running"
	case 'S':
		return "sleeping"
	case 'D':
		return "disk-sleep"
	case 'Z':
		return "zombie"
	case 'T':
		return "stopped"
	case 'I':
		return "idle"
	default:
		return "unknown"
	}
}
