package query

// Decimal (SI, ×1000) and binary (IEC, ×1024) byte-unit multipliers, per
// spec.md §4.4's unit table.
const (
	kilo = 1000
	mega = kilo * 1000
	giga = mega * 1000
	tera = giga * 1000

	kibi = 1024
	mebi = kibi * 1024
	gibi = mebi * 1024
	tebi = gibi * 1024
)

var unitMultiplier = map[string]float64{
	"b":   1,
	"kb":  kilo,
	"mb":  mega,
	"gb":  giga,
	"tb":  tera,
	"kib": kibi,
	"mib": mebi,
	"gib": gibi,
	"tib": tebi,
}
