package hbm

import (
	"log"

	"github.com/sarchlab/hbmsim/mem/hbm/internal/accesspattern"
	"github.com/sarchlab/hbmsim/mem/hbm/stats"
)

// Finish ends the simulation. It lets every controller finish, derives the
// averages and rates, and returns the report. It can only be called once.
func (c *Comp) Finish() stats.Report {
	if c.finished {
		log.Panicf("%s: finish called twice", c.name)
	}
	c.finished = true

	cycles := uint64(c.counters.dramCycles.Value())
	for _, ctrl := range c.ctrls {
		ctrl.Finish(cycles)
	}

	derived := stats.Aggregator{ClkNs: c.ClkNs()}.Derive(stats.Totals{
		Cycles:                 cycles,
		ReadRequests:           c.counters.readRequests.Total(),
		ReadBytes:              c.sink.ReadTransactionBytes.Value(),
		WriteBytes:             c.sink.WriteTransactionBytes.Value(),
		ReadLatencySum:         c.sink.ReadLatencySum.Value(),
		ReadNetworkLatencySum:  c.counters.readNetworkLatencySum.Value(),
		ReadQueueLatencySum:    c.sink.ReadQueueLatencySum.Value(),
		QueueingLatencySum:     c.sink.QueueingLatencySum.Value(),
		ReqQueueLengthSum:      c.sink.ReqQueueLengthSum.Value(),
		ReadReqQueueLengthSum:  c.sink.ReadReqQueueLengthSum.Value(),
		WriteReqQueueLengthSum: c.sink.WriteReqQueueLengthSum.Value(),
	})

	c.report = c.buildReport(derived)

	return c.report
}

// Report returns the report produced by Finish.
func (c *Comp) Report() stats.Report {
	return c.report
}

func (c *Comp) maximumBandwidth() float64 {
	return c.spec.Speed.Rate * 1e6 * float64(c.spec.ChannelWidth) *
		float64(len(c.ctrls)) / 8
}

//nolint:funlen
func (c *Comp) buildReport(d stats.Derived) stats.Report {
	var r stats.Report

	f := c.counters
	s := c.sink

	r.AddValue("dram_capacity", "Number of bytes in simulated DRAM",
		float64(c.Capacity()), 0)
	r.AddScalar(f.dramCycles)
	r.AddScalar(f.incomingRequests)
	r.AddVector(f.readRequests)
	r.AddVector(f.writeRequests)
	r.AddVector(f.incomingPerChannel)
	r.AddVector(f.incomingReadPerChannel)
	r.AddScalar(f.activeCycles)
	r.AddValue("memory_footprint", "memory footprint in byte",
		float64(c.allocator.Footprint()), 0)
	r.AddValue("physical_page_replacement",
		"The number of times that physical page replacement happens.",
		float64(c.allocator.Replacements()), 0)
	r.AddValue("maximum_bandwidth",
		"The theoretical maximum bandwidth (Bps)", c.maximumBandwidth(), 0)
	r.AddValue("read_bandwidth", "Real read bandwidth(Bps)",
		d.ReadBandwidth, 0)
	r.AddValue("write_bandwidth", "Real write bandwidth(Bps)",
		d.WriteBandwidth, 0)

	for _, scalar := range s.Scalars() {
		r.AddScalar(scalar)
	}

	for _, vector := range s.Vectors() {
		r.AddVector(vector)
	}

	r.AddScalar(s.ReadLatencySum)
	r.AddValue("read_latency_avg",
		"The average memory latency cycles (in memory time domain) per "+
			"request for all read requests in this channel",
		d.ReadLatencyAvg, 6)
	r.AddScalar(f.readNetworkLatencySum)
	r.AddValue("read_network_latency_avg",
		"The average memory network latency cycles (in memory time domain) "+
			"per request for all read requests in this channel",
		d.ReadNetworkLatencyAvg, 6)
	r.AddScalar(s.ReadQueueLatencySum)
	r.AddValue("read_queue_latency_avg",
		"The read memory queue latency cycles (in memory time domain) sum "+
			"for all read requests in this channel",
		d.ReadQueueLatencyAvg, 6)
	r.AddScalar(s.QueueingLatencySum)
	r.AddValue("queueing_latency_avg",
		"The average of cycles waiting in queue before first command issued",
		d.QueueingLatencyAvg, 6)
	r.AddValue("read_latency_ns_avg",
		"The average memory latency (ns) per request for all read requests "+
			"in this channel",
		d.ReadLatencyNsAvg, 6)
	r.AddValue("queueing_latency_ns_avg",
		"The average of time (ns) waiting in queue before first command "+
			"issued",
		d.QueueingLatencyNsAvg, 6)

	r.AddScalar(s.ReqQueueLengthSum)
	r.AddValue("req_queue_length_avg",
		"Average of read and write queue length per memory cycle.",
		d.ReqQueueLengthAvg, 6)
	r.AddScalar(s.ReadReqQueueLengthSum)
	r.AddValue("read_req_queue_length_avg",
		"Read queue length average per memory cycle.",
		d.ReadReqQueueLengthAvg, 6)
	r.AddScalar(s.WriteReqQueueLengthSum)
	r.AddValue("write_req_queue_length_avg",
		"Write queue length average per memory cycle.",
		d.WriteReqQueueLengthAvg, 6)

	c.addAccessPattern(&r)

	return r
}

func (c *Comp) addAccessPattern(r *stats.Report) {
	var summary accesspattern.Summary
	if c.tracker != nil {
		summary = c.tracker.Summary()
	}

	r.AddValue("sub_count_1", "count of movement with one vault once",
		summary.Percent(accesspattern.SingleAccess), 3)
	r.AddValue("sub_count_2",
		"count of movement with one vault more than one time",
		summary.Percent(accesspattern.SameChannel), 3)
	r.AddValue("sub_count_3", "count of movement with N vaults once",
		summary.Percent(accesspattern.DistinctChannels), 3)
	r.AddValue("sub_count_4",
		"count of movement with N vaults more than one time",
		summary.Percent(accesspattern.RepeatedChannels), 3)
}
