package ctrl

import (
	"log"

	"github.com/sarchlab/hbmsim/mem/hbm/stats"
)

// Builder can build channel controllers.
type Builder struct {
	timing          Timing
	txBytes         int
	queueSize       int
	networkOverhead bool
	sink            *stats.Sink
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		timing:    Timing{CL: 7, RCD: 7, RP: 7, BL: 2},
		txBytes:   32,
		queueSize: 32,
	}
}

// WithTiming sets the command latencies.
func (b Builder) WithTiming(t Timing) Builder {
	b.timing = t
	return b
}

// WithTransactionBytes sets the number of bytes moved by one transaction.
func (b Builder) WithTransactionBytes(n int) Builder {
	b.txBytes = n
	return b
}

// WithQueueSize sets the capacity of each of the read, write, and other
// queues.
func (b Builder) WithQueueSize(n int) Builder {
	b.queueSize = n
	return b
}

// WithNetworkOverhead lets the hop latency of requests delay their
// completion.
func (b Builder) WithNetworkOverhead(enabled bool) Builder {
	b.networkOverhead = enabled
	return b
}

// WithSink sets the counters that the controller adds to.
func (b Builder) WithSink(s *stats.Sink) Builder {
	b.sink = s
	return b
}

// Build creates a controller for the given channel.
func (b Builder) Build(channelID int) *Comp {
	if b.sink == nil {
		log.Panic("channel controller requires a stats sink")
	}

	if b.queueSize <= 0 {
		log.Panicf("queue size must be positive, got %d", b.queueSize)
	}

	return &Comp{
		channelID:       channelID,
		timing:          b.timing,
		txBytes:         b.txBytes,
		queueSize:       b.queueSize,
		networkOverhead: b.networkOverhead,
		sink:            b.sink,
		banks:           make(map[bankKey]*bank),
		coreCounts:      make(map[int]*CoreRecord),
		recorded:        make(map[int]CoreRecord),
	}
}
