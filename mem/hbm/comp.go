// Package hbm provides the front-end of an HBM memory system. It maps
// physical addresses onto channels, admits requests into the channel
// controllers, translates virtual pages, and aggregates the statistics of all
// the channels at the end of a run.
package hbm

import (
	"log"

	"github.com/sarchlab/hbmsim/mem/hbm/internal/accesspattern"
	"github.com/sarchlab/hbmsim/mem/hbm/internal/addressmapping"
	"github.com/sarchlab/hbmsim/mem/hbm/internal/pagealloc"
	"github.com/sarchlab/hbmsim/mem/hbm/internal/pim"
	"github.com/sarchlab/hbmsim/mem/hbm/signal"
	"github.com/sarchlab/hbmsim/mem/hbm/stats"
	"github.com/sarchlab/hbmsim/sim/hooking"
)

// Comp is an HBM memory system.
type Comp struct {
	hooking.HookableBase

	name            string
	spec            DeviceSpec
	mapper          addressmapping.Mapper
	allocator       pagealloc.Allocator
	estimator       pim.Estimator
	tracker         *accesspattern.Tracker
	ctrls           []Controller
	sink            *stats.Sink
	counters        *frontEndCounters
	pimMode         bool
	networkOverhead bool
	cachelineSize   int
	numCores        int

	finished bool
	report   stats.Report
}

// Name returns the name of the memory system.
func (c *Comp) Name() string {
	return c.name
}

// Spec returns the simulated device.
func (c *Comp) Spec() DeviceSpec {
	return c.spec
}

// NumChannels returns the number of channel controllers.
func (c *Comp) NumChannels() int {
	return len(c.ctrls)
}

// Controller returns the controller of a channel.
func (c *Comp) Controller(channelID int) Controller {
	return c.ctrls[channelID]
}

// Capacity returns the number of bytes of the memory system.
func (c *Comp) Capacity() uint64 {
	return c.mapper.Capacity()
}

// ClkNs returns the memory clock period in ns.
func (c *Comp) ClkNs() float64 {
	return c.spec.Speed.TCK
}

// NetworkOverhead tells if the hop latency delays requests.
func (c *Comp) NetworkOverhead() bool {
	return c.networkOverhead
}

// Map returns the location of a physical address.
func (c *Comp) Map(addr uint64) addressmapping.Location {
	return c.mapper.Map(addr)
}

// Submit maps a request and tries to enqueue it into the controller of its
// channel. The location and hop latency of the request are filled in even if
// the request is rejected. A rejected request should be submitted again in a
// later cycle.
//
// Request counters are only updated for accepted requests. In PIM mode the
// data movement is estimated on every attempt, so each retry of a read adds
// its hops to read_network_latency_sum again and each retry is recorded as
// another access in the access pattern table. The latency average still
// divides by accepted reads only.
func (c *Comp) Submit(req *signal.Request) bool {
	c.mustBeValidCore(req.CoreID)

	req.BurstCount = c.cachelineSize / c.spec.TransactionBytes()
	req.Location = c.mapper.Map(req.Addr)

	if c.pimMode {
		c.estimateMovement(req)
	}

	ch := req.Location[addressmapping.Channel]
	if !c.ctrls[ch].Enqueue(*req) {
		c.invoke(HookPosReqRejected, req)
		return false
	}

	c.counters.accept(req)
	c.invoke(HookPosReqAccepted, req)

	return true
}

func (c *Comp) estimateMovement(req *signal.Request) {
	req.Hops = c.estimator.Hops(
		req.CoreID,
		req.ChildID,
		req.Location[addressmapping.Channel],
		req.Location[addressmapping.BankGroup],
		req.IsRead(),
	)

	if req.IsRead() {
		c.counters.readNetworkLatencySum.Add(float64(req.Hops))
	}

	c.tracker.Record(accesspattern.Key{
		BankProduct: req.Location.BankProduct(),
		Column:      req.Location[addressmapping.Column],
		Row:         req.Location[addressmapping.Row],
	}, req.Location[addressmapping.Channel])
}

// Tick advances every controller by one cycle, in channel order.
func (c *Comp) Tick() {
	c.counters.dramCycles.Inc()

	isActive := false
	for _, ctrl := range c.ctrls {
		isActive = ctrl.IsActive() || isActive
		ctrl.Tick()
	}

	if isActive {
		c.counters.activeCycles.Inc()
	}
}

// PendingRequests returns the number of requests held by all the
// controllers at this moment.
func (c *Comp) PendingRequests() int {
	n := 0
	for _, ctrl := range c.ctrls {
		n += ctrl.QueueDepths().Total()
	}

	return n
}

// PageAllocate translates a virtual address of a core to a physical
// address.
func (c *Comp) PageAllocate(addr uint64, coreID int) uint64 {
	replacements := c.allocator.Replacements()

	pAddr := c.allocator.Allocate(addr, coreID)

	if c.allocator.Replacements() > replacements {
		c.InvokeHook(hooking.HookCtx{
			Domain: c,
			Pos:    HookPosPageReplaced,
			Cycle:  c.cycle(),
			Item:   addr,
			Detail: pAddr,
		})
	}

	return pAddr
}

// StaleTranslations returns the number of page translations that point to a
// frame that was handed to another page.
func (c *Comp) StaleTranslations() int {
	return c.allocator.StaleTranslations()
}

// RecordCore tells every controller that a core has finished.
func (c *Comp) RecordCore(coreID int) {
	for _, ctrl := range c.ctrls {
		ctrl.RecordCore(coreID)
	}
}

// AccessRecord is a flushed entry of the access pattern table.
type AccessRecord struct {
	BankProduct int
	Column      int
	Row         int
	Channels    []int
}

// AccessTableFull returns true if the access pattern table cannot take new
// keys until it is flushed.
func (c *Comp) AccessTableFull() bool {
	return c.tracker != nil && c.tracker.Full()
}

// DroppedAccesses returns the number of accesses to new keys that the full
// access pattern table did not keep. They still count in the final report.
func (c *Comp) DroppedAccesses() uint64 {
	if c.tracker == nil {
		return 0
	}

	return c.tracker.Dropped()
}

// FlushAccessTable removes the entries of the access pattern table and
// returns them. Flushed entries still count toward the final report. It
// returns nil if PIM mode is off.
func (c *Comp) FlushAccessTable() []AccessRecord {
	if c.tracker == nil {
		return nil
	}

	entries := c.tracker.Flush()
	records := make([]AccessRecord, len(entries))

	for i, e := range entries {
		records[i] = AccessRecord{
			BankProduct: e.Key.BankProduct,
			Column:      e.Key.Column,
			Row:         e.Key.Row,
			Channels:    e.Channels,
		}
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    HookPosTableFlushed,
		Cycle:  c.cycle(),
		Item:   len(records),
	})

	return records
}

func (c *Comp) cycle() uint64 {
	return uint64(c.counters.dramCycles.Value())
}

func (c *Comp) invoke(pos *hooking.HookPos, req *signal.Request) {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    pos,
		Cycle:  c.cycle(),
		Item:   *req,
	})
}

func (c *Comp) mustBeValidCore(coreID int) {
	if coreID < 0 || coreID >= c.numCores {
		log.Panicf("%s: core %d out of range [0, %d)",
			c.name, coreID, c.numCores)
	}
}
