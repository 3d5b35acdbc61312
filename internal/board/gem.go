// Package board holds the authoritative board state of a hex gem puzzle: the
// set of valid cells, the gem occupying each of them, and the placement
// policy that keeps freshly seeded gems from forming instant lines.
//
// The package knows nothing about rendering or about how matches are found.
// Both are reached through the Placer and Factory interfaces.
package board

// GemType identifies the kind of a gem. Only equality between types matters.
type GemType uint8

const (
	Ruby GemType = iota
	Sapphire
	Emerald
	Topaz
	Amethyst
	Pearl
	Onyx
)

// allTypes is the full enumeration in declaration order.
var allTypes = []GemType{Ruby, Sapphire, Emerald, Topaz, Amethyst, Pearl, Onyx}

// MaxTypes is the number of gem types available.
const MaxTypes = 7

// String returns a human-readable name for the gem type.
func (t GemType) String() string {
	switch t {
	case Ruby:
		return "Ruby"
	case Sapphire:
		return "Sapphire"
	case Emerald:
		return "Emerald"
	case Topaz:
		return "Topaz"
	case Amethyst:
		return "Amethyst"
	case Pearl:
		return "Pearl"
	case Onyx:
		return "Onyx"
	default:
		return "Unknown"
	}
}

// GemTypes returns the first n gem types, clamped to [1, MaxTypes].
func GemTypes(n int) []GemType {
	if n < 1 {
		n = 1
	}
	if n > MaxTypes {
		n = MaxTypes
	}
	out := make([]GemType, n)
	copy(out, allTypes[:n])
	return out
}

// Gem is a live piece on the board. The pointer is the piece handle: two
// cells never hold the same *Gem.
type Gem struct {
	ID   uint64
	Type GemType
}
