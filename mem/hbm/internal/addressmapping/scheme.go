package addressmapping

import "fmt"

// Scheme decides the order in which the address bits are assigned to levels.
// The only implementations are RoBaRaCoCh and ChRaBaRoCo.
type Scheme interface {
	Name() string

	decompose(addr uint64, bits *[NumLevels]int) Location
	compose(loc Location, bits *[NumLevels]int) uint64
}

var (
	// RoBaRaCoCh puts the channel bits at the bottom of the address so that
	// consecutive transactions go to different channels. Above the channel
	// bits come the column bits, then rank, bank group, bank and row.
	RoBaRaCoCh Scheme = roBaRaCoCh{}

	// ChRaBaRoCo slices the levels from the narrowest (column) at the bottom
	// to the widest (channel) at the top.
	ChRaBaRoCo Scheme = chRaBaRoCo{}
)

// ParseScheme finds the scheme with the given name.
func ParseScheme(name string) (Scheme, error) {
	switch name {
	case RoBaRaCoCh.Name():
		return RoBaRaCoCh, nil
	case ChRaBaRoCo.Name():
		return ChRaBaRoCo, nil
	default:
		return nil, fmt.Errorf("unsupported address mapping scheme %q", name)
	}
}

type roBaRaCoCh struct{}

func (roBaRaCoCh) Name() string { return "RoBaRaCoCh" }

func (roBaRaCoCh) decompose(addr uint64, bits *[NumLevels]int) Location {
	var loc Location

	loc[Channel] = sliceLowerBits(&addr, bits[Channel])
	loc[Column] = sliceLowerBits(&addr, bits[Column])

	for l := Rank; l <= Row; l++ {
		loc[l] = sliceLowerBits(&addr, bits[l])
	}

	return loc
}

func (roBaRaCoCh) compose(loc Location, bits *[NumLevels]int) uint64 {
	addr := uint64(0)

	for l := Row; l >= Rank; l-- {
		addr = appendBits(addr, loc[l], bits[l])
	}

	addr = appendBits(addr, loc[Column], bits[Column])
	addr = appendBits(addr, loc[Channel], bits[Channel])

	return addr
}

type chRaBaRoCo struct{}

func (chRaBaRoCo) Name() string { return "ChRaBaRoCo" }

func (chRaBaRoCo) decompose(addr uint64, bits *[NumLevels]int) Location {
	var loc Location

	for l := NumLevels - 1; l >= 0; l-- {
		loc[l] = sliceLowerBits(&addr, bits[l])
	}

	return loc
}

func (chRaBaRoCo) compose(loc Location, bits *[NumLevels]int) uint64 {
	addr := uint64(0)

	for l := Level(0); l < NumLevels; l++ {
		addr = appendBits(addr, loc[l], bits[l])
	}

	return addr
}

func sliceLowerBits(addr *uint64, bits int) int {
	lbits := *addr & (1<<uint(bits) - 1)
	*addr >>= uint(bits)

	return int(lbits)
}

func appendBits(addr uint64, coord, bits int) uint64 {
	return addr<<uint(bits) | uint64(coord)&(1<<uint(bits)-1)
}
