// Package ctrl provides a channel controller for the HBM memory system.
//
// The controller keeps one read, one write, and one other queue. Each cycle it
// retires the requests whose data transfer has ended and issues at most one
// new request, preferring reads and, among the requests of a queue, the ones
// that hit an open row.
package ctrl

import (
	"log"

	"github.com/sarchlab/hbmsim/mem/hbm/signal"
	"github.com/sarchlab/hbmsim/mem/hbm/stats"
)

// Timing holds the command latencies of the channel, in memory cycles.
type Timing struct {
	CL  int
	RCD int
	RP  int
	BL  int
}

// CoreRecord is a snapshot of the row buffer outcomes of one core.
type CoreRecord struct {
	ReadHits, ReadMisses, ReadConflicts    uint64
	WriteHits, WriteMisses, WriteConflicts uint64
}

type inflight struct {
	req    signal.Request
	doneAt uint64
}

// Comp is a channel controller.
type Comp struct {
	channelID       int
	timing          Timing
	txBytes         int
	queueSize       int
	networkOverhead bool
	sink            *stats.Sink

	clk     uint64
	readQ   []signal.Request
	writeQ  []signal.Request
	otherQ  []signal.Request
	pending []inflight
	banks   map[bankKey]*bank

	coreCounts map[int]*CoreRecord
	recorded   map[int]CoreRecord

	finished bool
	cycles   uint64
}

// ChannelID returns the index of the channel that the controller drives.
func (c *Comp) ChannelID() int {
	return c.channelID
}

// Enqueue puts a request into its queue. It returns false if the queue is
// full.
func (c *Comp) Enqueue(req signal.Request) bool {
	if c.finished {
		log.Panicf("channel %d: enqueue after finish", c.channelID)
	}

	q := c.queueOf(req.Kind)
	if len(*q) >= c.queueSize {
		return false
	}

	req.ArriveCycle = c.clk
	*q = append(*q, req)

	return true
}

func (c *Comp) queueOf(kind signal.RequestKind) *[]signal.Request {
	switch kind {
	case signal.RequestKindRead:
		return &c.readQ
	case signal.RequestKindWrite:
		return &c.writeQ
	default:
		return &c.otherQ
	}
}

// Tick advances the controller by one cycle.
func (c *Comp) Tick() {
	c.clk++

	c.retire()
	c.issue()

	c.sink.ReqQueueLengthSum.Add(float64(len(c.readQ) + len(c.writeQ)))
	c.sink.ReadReqQueueLengthSum.Add(float64(len(c.readQ)))
	c.sink.WriteReqQueueLengthSum.Add(float64(len(c.writeQ)))
}

// IsActive returns true if the controller holds any request.
func (c *Comp) IsActive() bool {
	return c.QueueDepths().Total() > 0
}

// QueueDepths returns the current occupancy of the queues.
func (c *Comp) QueueDepths() signal.QueueDepths {
	return signal.QueueDepths{
		Read:    len(c.readQ),
		Write:   len(c.writeQ),
		Other:   len(c.otherQ),
		Pending: len(c.pending),
	}
}

// RecordCore takes a snapshot of the row buffer outcomes of the core.
func (c *Comp) RecordCore(coreID int) {
	if rec, found := c.coreCounts[coreID]; found {
		c.recorded[coreID] = *rec
		return
	}

	c.recorded[coreID] = CoreRecord{}
}

// Recorded returns the snapshot taken by RecordCore.
func (c *Comp) Recorded(coreID int) (CoreRecord, bool) {
	rec, found := c.recorded[coreID]
	return rec, found
}

// Finish marks the end of the simulation.
func (c *Comp) Finish(cycles uint64) {
	c.finished = true
	c.cycles = cycles
}

func (c *Comp) retire() {
	kept := c.pending[:0]

	for _, p := range c.pending {
		if p.doneAt > c.clk {
			kept = append(kept, p)
			continue
		}

		c.complete(p.req)
	}

	c.pending = kept
}

func (c *Comp) complete(req signal.Request) {
	req.DepartCycle = c.clk
	bytes := float64(c.txBytes * max(req.BurstCount, 1))

	switch req.Kind {
	case signal.RequestKindRead:
		c.sink.ReadTransactionBytes.Add(bytes)
		c.sink.ReadLatencySum.Add(float64(req.DepartCycle - req.ArriveCycle))
		c.sink.ReadQueueLatencySum.Add(float64(req.IssueCycle - req.ArriveCycle))
		c.sink.QueueingLatencySum.Add(float64(req.IssueCycle - req.ArriveCycle))
	case signal.RequestKindWrite:
		c.sink.WriteTransactionBytes.Add(bytes)
	}
}

func (c *Comp) issue() {
	for _, q := range []*[]signal.Request{&c.readQ, &c.writeQ, &c.otherQ} {
		i := c.pick(*q)
		if i < 0 {
			continue
		}

		req := (*q)[i]
		*q = append((*q)[:i], (*q)[i+1:]...)
		c.start(req)

		return
	}
}

// pick returns the index of the oldest request that hits an open row, or the
// oldest request whose bank is free if none hits. It returns -1 if no request
// can be issued.
func (c *Comp) pick(q []signal.Request) int {
	first := -1

	for i := range q {
		b := c.bankOf(q[i])
		if b.busyUntil > c.clk {
			continue
		}

		if q[i].Kind != signal.RequestKindOther &&
			b.outcome(q[i].Location[rowLevel]) == RowHit {
			return i
		}

		if first < 0 {
			first = i
		}
	}

	return first
}

func (c *Comp) start(req signal.Request) {
	req.IssueCycle = c.clk

	if req.Kind == signal.RequestKindOther {
		c.pending = append(c.pending, inflight{req: req, doneAt: c.clk + 1})
		return
	}

	b := c.bankOf(req)
	outcome, cycles := b.access(req.Location[rowLevel], c.timing)
	cycles *= max(req.BurstCount, 1)
	b.busyUntil = c.clk + uint64(cycles-c.timing.CL)

	if c.networkOverhead {
		cycles += req.Hops
	}

	c.countOutcome(req, outcome)
	c.pending = append(c.pending,
		inflight{req: req, doneAt: c.clk + uint64(cycles)})
}

func (c *Comp) bankOf(req signal.Request) *bank {
	key := bankKeyOf(req.Location)

	b, found := c.banks[key]
	if !found {
		b = &bank{}
		c.banks[key] = b
	}

	return b
}

func (c *Comp) countOutcome(req signal.Request, o RowBufferOutcome) {
	rec, found := c.coreCounts[req.CoreID]
	if !found {
		rec = &CoreRecord{}
		c.coreCounts[req.CoreID] = rec
	}

	switch o {
	case RowHit:
		c.sink.RowHits.Inc()
	case RowMiss:
		c.sink.RowMisses.Inc()
	case RowConflict:
		c.sink.RowConflicts.Inc()
	}

	if req.IsRead() {
		c.countRead(req.CoreID, rec, o)
	} else {
		c.countWrite(req.CoreID, rec, o)
	}
}

func (c *Comp) countRead(coreID int, rec *CoreRecord, o RowBufferOutcome) {
	switch o {
	case RowHit:
		rec.ReadHits++
		c.sink.ReadRowHits.Inc(coreID)
	case RowMiss:
		rec.ReadMisses++
		c.sink.ReadRowMisses.Inc(coreID)
	case RowConflict:
		rec.ReadConflicts++
		c.sink.ReadRowConflicts.Inc(coreID)
	}
}

func (c *Comp) countWrite(coreID int, rec *CoreRecord, o RowBufferOutcome) {
	switch o {
	case RowHit:
		rec.WriteHits++
		c.sink.WriteRowHits.Inc(coreID)
	case RowMiss:
		rec.WriteMisses++
		c.sink.WriteRowMisses.Inc(coreID)
	case RowConflict:
		rec.WriteConflicts++
		c.sink.WriteRowConflicts.Inc(coreID)
	}
}
