package normalizers

type tokenKind int

const (
	directional tokenKind = iota
	streetType
)

type expansion struct {
	word string
	kind tokenKind
}

// addressTable is the single source of address abbreviations.
// Expanded words must never appear as keys or normalization stops being idempotent.
var addressTable = map[string]expansion{
	// directionals
	"n":  {"north", directional},
	"s":  {"south", directional},
	"e":  {"east", directional},
	"w":  {"west", directional},
	"ne": {"northeast", directional},
	"nw": {"northwest", directional},
	"se": {"southeast", directional},
	"sw": {"southwest", directional},

	// street types
	"st":   {"street", streetType},
	"ave":  {"avenue", streetType},
	"blvd": {"boulevard", streetType},
	"dr":   {"drive", streetType},
	"ln":   {"lane", streetType},
	"rd":   {"road", streetType},
	"ct":   {"court", streetType},
	"cir":  {"circle", streetType},
	"pl":   {"place", streetType},
	"pkwy": {"parkway", streetType},
	"hwy":  {"highway", streetType},
	"trl":  {"trail", streetType},
	"apt":  {"apartment", streetType},
	"ste":  {"suite", streetType},
}
