package hbm

import (
	"github.com/sarchlab/hbmsim/mem/hbm/internal/addressmapping"
	"github.com/sarchlab/hbmsim/mem/hbm/signal"
	"github.com/sarchlab/hbmsim/mem/hbm/stats"
)

// frontEndCounters are the counters owned by the memory system itself rather
// than by the controllers.
type frontEndCounters struct {
	dramCycles            *stats.Scalar
	incomingRequests      *stats.Scalar
	activeCycles          *stats.Scalar
	readNetworkLatencySum *stats.Scalar

	readRequests           *stats.Vector
	writeRequests          *stats.Vector
	incomingPerChannel     *stats.Vector
	incomingReadPerChannel *stats.Vector
}

func newFrontEndCounters(numCores, numChannels int) *frontEndCounters {
	return &frontEndCounters{
		dramCycles: stats.NewScalar("dram_cycles",
			"Number of DRAM cycles simulated", 0),
		incomingRequests: stats.NewScalar("incoming_requests",
			"Number of incoming requests to DRAM", 0),
		activeCycles: stats.NewScalar("ramulator_active_cycles",
			"The total number of cycles that the DRAM part is active "+
				"(serving R/W)", 0),
		readNetworkLatencySum: stats.NewScalar("read_network_latency_sum",
			"The read memory network latency cycles (in memory time domain) "+
				"sum for all read requests in this channel", 0),

		readRequests: stats.NewVector("read_requests",
			"Number of incoming read requests to DRAM per core", 0, numCores),
		writeRequests: stats.NewVector("write_requests",
			"Number of incoming write requests to DRAM per core", 0, numCores),
		incomingPerChannel: stats.NewVector("incoming_requests_per_channel",
			"Number of incoming requests to each DRAM channel", 0, numChannels),
		incomingReadPerChannel: stats.NewVector(
			"incoming_read_reqs_per_channel",
			"Number of incoming read requests to each DRAM channel", 0,
			numChannels),
	}
}

func (f *frontEndCounters) accept(req *signal.Request) {
	ch := req.Location[addressmapping.Channel]

	f.incomingRequests.Inc()
	f.incomingPerChannel.Inc(ch)

	switch req.Kind {
	case signal.RequestKindRead:
		f.readRequests.Inc(req.CoreID)
		f.incomingReadPerChannel.Inc(ch)
	case signal.RequestKindWrite:
		f.writeRequests.Inc(req.CoreID)
	}
}
