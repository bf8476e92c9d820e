package eventloop

import (
	"fmt"

	"github.com/sysmoni/sysmoni/internal/model"
	"github.com/sysmoni/sysmoni/internal/series"
)

// sampleToValues flattens one Sample's graphable metric families into the
// named-series map series.Store.Push expects; absent families simply
// contribute no keys, which Push records as a break for every series
// already tracked under that name.
func sampleToValues(s model.Sample) series.Values {
	v := make(series.Values)

	if s.CPU != nil {
		if s.CPU.Average != nil {
			v["cpu.total"] = *s.CPU.Average
		}
		for i, pct := range s.CPU.PerCore {
			v[fmt.Sprintf("cpu.core.%d", i)] = pct
		}
	}
	if s.Memory != nil {
		v["mem.used"] = float64(s.Memory.UsedBytes)
	}
	if s.Swap != nil {
		v["swap.used"] = float64(s.Swap.UsedBytes)
	}
	if s.Network != nil {
		v["net.rx"] = s.Network.RxBps
		v["net.tx"] = s.Network.TxBps
	}
	for name, io := range s.DiskIO {
		v["disk.io.read."+name] = float64(io.ReadBytesCumulative)
		v["disk.io.write."+name] = float64(io.WriteBytesCumulative)
	}
	for _, t := range s.Temps {
		v["temp."+t.Name] = t.TemperatureCelsius
	}
	for _, g := range s.GPUs {
		v["gpu.util."+g.Name] = g.UtilPercent
		v["gpu.mem."+g.Name] = float64(g.MemUsedBytes)
	}
	return v
}
