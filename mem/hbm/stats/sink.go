package stats

// Sink holds the counters that all the channel controllers add to. One sink
// is shared by every controller of a memory system. Counters only accumulate
// and all the updates happen on the simulation loop, so no locking is needed.
type Sink struct {
	ReadTransactionBytes  *Scalar
	WriteTransactionBytes *Scalar

	RowHits      *Scalar
	RowMisses    *Scalar
	RowConflicts *Scalar

	ReadRowHits       *Vector
	ReadRowMisses     *Vector
	ReadRowConflicts  *Vector
	WriteRowHits      *Vector
	WriteRowMisses    *Vector
	WriteRowConflicts *Vector

	ReadLatencySum      *Scalar
	ReadQueueLatencySum *Scalar
	QueueingLatencySum  *Scalar

	ReqQueueLengthSum      *Scalar
	ReadReqQueueLengthSum  *Scalar
	WriteReqQueueLengthSum *Scalar
}

// NewSink creates a sink with per-core vectors for numCores cores.
func NewSink(numCores int) *Sink {
	return &Sink{
		ReadTransactionBytes: NewScalar("read_transaction_bytes",
			"The total byte of read transaction", 0),
		WriteTransactionBytes: NewScalar("write_transaction_bytes",
			"The total byte of write transaction", 0),

		RowHits: NewScalar("row_hits",
			"Number of row hits", 0),
		RowMisses: NewScalar("row_misses",
			"Number of row misses", 0),
		RowConflicts: NewScalar("row_conflicts",
			"Number of row conflicts", 0),

		ReadRowHits: NewVector("read_row_hits",
			"Number of row hits for read requests", 0, numCores),
		ReadRowMisses: NewVector("read_row_misses",
			"Number of row misses for read requests", 0, numCores),
		ReadRowConflicts: NewVector("read_row_conflicts",
			"Number of row conflicts for read requests", 0, numCores),
		WriteRowHits: NewVector("write_row_hits",
			"Number of row hits for write requests", 0, numCores),
		WriteRowMisses: NewVector("write_row_misses",
			"Number of row misses for write requests", 0, numCores),
		WriteRowConflicts: NewVector("write_row_conflicts",
			"Number of row conflicts for write requests", 0, numCores),

		ReadLatencySum: NewScalar("read_latency_sum",
			"The memory latency cycles (in memory time domain) sum for all "+
				"read requests in this channel", 0),
		ReadQueueLatencySum: NewScalar("read_queue_latency_sum",
			"The read memory queue latency cycles (in memory time domain) "+
				"sum for all read requests in this channel", 0),
		QueueingLatencySum: NewScalar("queueing_latency_sum",
			"The sum of cycles waiting in queue before first command issued", 0),

		ReqQueueLengthSum: NewScalar("req_queue_length_sum",
			"Sum of read and write queue length per memory cycle.", 0),
		ReadReqQueueLengthSum: NewScalar("read_req_queue_length_sum",
			"Read queue length sum per memory cycle.", 0),
		WriteReqQueueLengthSum: NewScalar("write_req_queue_length_sum",
			"Write queue length sum per memory cycle.", 0),
	}
}

// Scalars returns the scalar counters in report order.
func (s *Sink) Scalars() []*Scalar {
	return []*Scalar{
		s.ReadTransactionBytes,
		s.WriteTransactionBytes,
		s.RowHits,
		s.RowMisses,
		s.RowConflicts,
	}
}

// Vectors returns the per-core counters in report order.
func (s *Sink) Vectors() []*Vector {
	return []*Vector{
		s.ReadRowHits,
		s.ReadRowMisses,
		s.ReadRowConflicts,
		s.WriteRowHits,
		s.WriteRowMisses,
		s.WriteRowConflicts,
	}
}
