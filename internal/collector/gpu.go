package collector

import (
	"bufio"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/sysmoni/sysmoni/internal/model"
)

// gpuProbeTimeout bounds how long a single nvidia-smi invocation may take,
// matching the teacher's runCmd timeout for GPU queries.
const gpuProbeTimeout = 400 * time.Millisecond

// collectGPU shells out to nvidia-smi exactly as the teacher's
// queryGPU does; sysmoni has no GPU-vendor SDK in its dependency pack, so
// this remains the CLI-probe approach rather than swapping in a binding
// no example repo carries.
func (c *Collector) collectGPU(ctx context.Context) []model.GPU {
	if !c.opts.WidgetsEnabled["gpu"] {
		return nil
	}

	cctx, cancel := context.WithTimeout(ctx, gpuProbeTimeout)
	defer cancel()

	out, err := exec.CommandContext(cctx, "nvidia-smi",
		"--query-gpu=name,utilization.gpu,memory.used,memory.total,temperature.gpu",
		"--format=csv,noheader,nounits").Output()
	if err != nil {
		c.warnFamily("gpu", err)
		return nil
	}

	var gpus []model.GPU
	sc := bufio.NewScanner(strings.NewReader(string(out)))
	for sc.Scan() {
		parts := strings.Split(sc.Text(), ",")
		if len(parts) < 5 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		util := parseTrimmedFloat(parts[1])
		memUsedMiB := parseTrimmedFloat(parts[2])
		memTotalMiB := parseTrimmedFloat(parts[3])
		temp := parseTrimmedFloat(parts[4])

		gpus = append(gpus, model.GPU{
			Name:          name,
			UtilPercent:   util,
			MemUsedBytes:  uint64(memUsedMiB * 1024 * 1024),
			MemTotalBytes: uint64(memTotalMiB * 1024 * 1024),
			TempCelsius:   temp,
		})
	}
	return gpus
}
