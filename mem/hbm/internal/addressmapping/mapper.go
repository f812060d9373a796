package addressmapping

import "log"

// Mapper converts between physical addresses and locations.
type Mapper interface {
	// Map converts a physical address to a location. The bits below the
	// transaction size are dropped.
	Map(addr uint64) Location

	// Compose is the reverse of Map. It returns the transaction-aligned
	// address of the location.
	Compose(loc Location) uint64

	// Scheme returns the interleaving scheme that the mapper uses.
	Scheme() Scheme

	// Bits returns the number of address bits assigned to each level.
	Bits() [NumLevels]int

	// TxBits returns the number of bits that address a byte within one
	// transaction.
	TxBits() int

	// Capacity returns the number of bytes that the geometry can address.
	Capacity() uint64
}

type mapperImpl struct {
	scheme   Scheme
	bits     [NumLevels]int
	txBits   int
	capacity uint64
}

func (m *mapperImpl) Map(addr uint64) Location {
	addr >>= uint(m.txBits)
	return m.scheme.decompose(addr, &m.bits)
}

func (m *mapperImpl) Compose(loc Location) uint64 {
	return m.scheme.compose(loc, &m.bits) << uint(m.txBits)
}

func (m *mapperImpl) Scheme() Scheme {
	return m.scheme
}

func (m *mapperImpl) Bits() [NumLevels]int {
	return m.bits
}

func (m *mapperImpl) TxBits() int {
	return m.txBits
}

func (m *mapperImpl) Capacity() uint64 {
	return m.capacity
}

// A Builder can build address mappers.
type Builder struct {
	busWidth     int
	prefetchSize int
	geometry     Geometry
	scheme       Scheme
}

// MakeBuilder creates a builder with the geometry of a 4Gb HBM channel.
func MakeBuilder() Builder {
	return Builder{
		busWidth:     128,
		prefetchSize: 2,
		geometry:     Geometry{8, 1, 4, 4, 1 << 14, 1 << 6},
		scheme:       RoBaRaCoCh,
	}
}

// WithBusWidth sets the number of bits transferred per beat of a channel.
func (b Builder) WithBusWidth(n int) Builder {
	b.busWidth = n
	return b
}

// WithPrefetchSize sets the number of beats in one transaction.
func (b Builder) WithPrefetchSize(n int) Builder {
	b.prefetchSize = n
	return b
}

// WithGeometry sets the number of entries at each level.
func (b Builder) WithGeometry(g Geometry) Builder {
	b.geometry = g
	return b
}

// WithScheme sets the interleaving scheme.
func (b Builder) WithScheme(s Scheme) Builder {
	b.scheme = s
	return b
}

// Build creates a new Mapper. It panics if the geometry cannot be mapped
// onto a contiguous range of address bits.
func (b Builder) Build() Mapper {
	if b.scheme == nil {
		log.Panic("address mapping scheme is not set")
	}

	m := &mapperImpl{scheme: b.scheme}

	txSize := b.prefetchSize * b.busWidth / 8
	txBits, ok := log2(txSize)
	if !ok {
		log.Panicf("transaction size %d B is not a power of 2", txSize)
	}
	m.txBits = txBits

	m.capacity = uint64(b.busWidth / 8)
	for l := Level(0); l < NumLevels; l++ {
		n, ok := log2(b.geometry[l])
		if !ok {
			log.Panicf("number of %s (%d) is not a power of 2",
				l, b.geometry[l])
		}

		m.bits[l] = n
		m.capacity *= uint64(b.geometry[l])
	}

	prefetchBits, ok := log2(b.prefetchSize)
	if !ok {
		log.Panicf("prefetch size %d is not a power of 2", b.prefetchSize)
	}

	m.bits[NumLevels-1] -= prefetchBits
	if m.bits[NumLevels-1] < 0 {
		log.Panicf("%d %ss cannot hold a prefetch of %d",
			b.geometry[NumLevels-1], NumLevels-1, b.prefetchSize)
	}

	return m
}

// log2 returns the log2 of n. It also returns false if n is not a power of 2.
func log2(n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}

	bits := 0
	for v := n; v > 1; v >>= 1 {
		bits++
	}

	return bits, n == 1<<uint(bits)
}
