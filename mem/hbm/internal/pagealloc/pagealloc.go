// Package pagealloc translates per-core virtual pages to physical frames.
package pagealloc

import (
	"fmt"
	"log"
	"math/rand"
)

// Log2PageSize is the log2 of the size of a page. Pages are always 4 KiB.
const Log2PageSize = 12

// PageSize is the number of bytes in a page.
const PageSize = 1 << Log2PageSize

const freeFrame = -1

// Policy determines how virtual pages are placed onto physical frames.
type Policy int

// A list of all supported translation policies.
const (
	PolicyNone Policy = iota
	PolicyRandom
)

func (p Policy) String() string {
	switch p {
	case PolicyNone:
		return "None"
	case PolicyRandom:
		return "Random"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a translation policy name to a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "None":
		return PolicyNone, nil
	case "Random":
		return PolicyRandom, nil
	default:
		return 0, fmt.Errorf("unsupported translation policy %q", name)
	}
}

// An Allocator converts virtual addresses to physical addresses. Once a
// (core, page) pair is translated, the translation never changes.
type Allocator interface {
	// Allocate returns the physical address of a virtual address accessed by
	// the given core.
	Allocate(addr uint64, coreID int) uint64

	// Footprint returns the number of bytes of distinct pages touched.
	Footprint() uint64

	// Replacements returns the number of times that an assigned frame is
	// handed to another page because no frame was free.
	Replacements() uint64

	// FreeFrames returns the number of frames that are never assigned.
	FreeFrames() uint64

	// StaleTranslations returns the number of translations that still point
	// to a frame that has since been handed to another page.
	StaleTranslations() int
}

type pageKey struct {
	coreID int
	vpn    uint64
}

// translationTable is shared by all policies.
type translationTable struct {
	entries   map[pageKey]uint64
	footprint uint64
}

func (t *translationTable) lookup(key pageKey) (uint64, bool) {
	pfn, found := t.entries[key]
	return pfn, found
}

func (t *translationTable) insert(key pageKey, pfn uint64) {
	t.entries[key] = pfn
	t.footprint += PageSize
}

type identityAllocator struct {
	translationTable
}

func (a *identityAllocator) Allocate(addr uint64, coreID int) uint64 {
	key := pageKey{coreID: coreID, vpn: addr >> Log2PageSize}

	if _, found := a.lookup(key); !found {
		a.insert(key, key.vpn)
	}

	return addr
}

func (a *identityAllocator) Footprint() uint64 {
	return a.footprint
}

func (a *identityAllocator) Replacements() uint64 {
	return 0
}

func (a *identityAllocator) FreeFrames() uint64 {
	return 0
}

func (a *identityAllocator) StaleTranslations() int {
	return 0
}

type randomAllocator struct {
	translationTable

	rand         *rand.Rand
	frames       []int
	remaining    uint64
	replacements uint64
}

func (a *randomAllocator) Allocate(addr uint64, coreID int) uint64 {
	key := pageKey{coreID: coreID, vpn: addr >> Log2PageSize}

	pfn, found := a.lookup(key)
	if !found {
		pfn = a.assignFrame(coreID)
		a.insert(key, pfn)
	}

	return pfn<<Log2PageSize | addr&(PageSize-1)
}

func (a *randomAllocator) assignFrame(coreID int) uint64 {
	numFrames := int64(len(a.frames))

	if a.remaining == 0 {
		// The page that previously owns the frame keeps its translation.
		pfn := uint64(a.rand.Int63n(numFrames))
		if a.frames[pfn] == freeFrame {
			log.Panicf("frame %d is free while no frame remains", pfn)
		}

		a.replacements++

		return pfn
	}

	pfn := uint64(a.rand.Int63n(numFrames))
	start := pfn

	for a.frames[pfn] != freeFrame {
		pfn = (pfn + 1) % uint64(numFrames)
		if pfn == start {
			log.Panicf("no free frame found while %d remain", a.remaining)
		}
	}

	a.frames[pfn] = coreID
	a.remaining--

	return pfn
}

func (a *randomAllocator) Footprint() uint64 {
	return a.footprint
}

func (a *randomAllocator) Replacements() uint64 {
	return a.replacements
}

func (a *randomAllocator) FreeFrames() uint64 {
	return a.remaining
}

func (a *randomAllocator) StaleTranslations() int {
	mapped := make(map[uint64]int, len(a.entries))
	for _, pfn := range a.entries {
		mapped[pfn]++
	}

	stale := 0
	for _, n := range mapped {
		stale += n - 1
	}

	return stale
}

// Builder can build Allocators.
type Builder struct {
	policy   Policy
	capacity uint64
	seed     int64
	source   rand.Source
}

// MakeBuilder creates a builder that builds identity allocators.
func MakeBuilder() Builder {
	return Builder{
		policy: PolicyNone,
		seed:   1,
	}
}

// WithPolicy sets the translation policy.
func (b Builder) WithPolicy(p Policy) Builder {
	b.policy = p
	return b
}

// WithCapacity sets the number of bytes of the physical address space. Only
// the random policy uses it.
func (b Builder) WithCapacity(bytes uint64) Builder {
	b.capacity = bytes
	return b
}

// WithSeed sets the seed of the random source used to pick frames.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithRandSource replaces the random source. It takes precedence over the
// seed.
func (b Builder) WithRandSource(src rand.Source) Builder {
	b.source = src
	return b
}

// Build creates a new Allocator.
func (b Builder) Build() Allocator {
	table := translationTable{entries: make(map[pageKey]uint64)}

	switch b.policy {
	case PolicyNone:
		return &identityAllocator{translationTable: table}
	case PolicyRandom:
		return b.buildRandom(table)
	default:
		log.Panicf("unsupported translation policy %s", b.policy)
	}

	return nil
}

func (b Builder) buildRandom(table translationTable) *randomAllocator {
	numFrames := b.capacity >> Log2PageSize
	if numFrames == 0 {
		log.Panicf("capacity %d B cannot hold a single page", b.capacity)
	}

	src := b.source
	if src == nil {
		src = rand.NewSource(b.seed)
	}

	a := &randomAllocator{
		translationTable: table,
		rand:             rand.New(src),
		frames:           make([]int, numFrames),
		remaining:        numFrames,
	}

	for i := range a.frames {
		a.frames[i] = freeFrame
	}

	return a
}
