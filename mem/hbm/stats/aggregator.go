package stats

// Totals are the run-wide sums that the derived statistics are computed
// from.
type Totals struct {
	Cycles       uint64
	ReadRequests float64

	ReadBytes  float64
	WriteBytes float64

	ReadLatencySum        float64
	ReadNetworkLatencySum float64
	ReadQueueLatencySum   float64
	QueueingLatencySum    float64

	ReqQueueLengthSum      float64
	ReadReqQueueLengthSum  float64
	WriteReqQueueLengthSum float64
}

// Derived are the averages and rates reported at the end of a run.
type Derived struct {
	ReadBandwidth  float64
	WriteBandwidth float64

	ReadLatencyAvg        float64
	ReadNetworkLatencyAvg float64
	ReadQueueLatencyAvg   float64
	QueueingLatencyAvg    float64
	ReadLatencyNsAvg      float64
	QueueingLatencyNsAvg  float64

	ReqQueueLengthAvg      float64
	ReadReqQueueLengthAvg  float64
	WriteReqQueueLengthAvg float64
}

// Aggregator derives the final statistics. Every quantity whose denominator
// is zero, such as the averages of a run without cycles or without reads, is
// reported as 0.
type Aggregator struct {
	// ClkNs is the memory clock period in nanoseconds.
	ClkNs float64
}

// Derive computes the derived statistics.
func (a Aggregator) Derive(t Totals) Derived {
	cycles := float64(t.Cycles)
	elapsedNs := cycles * a.ClkNs

	d := Derived{
		ReadBandwidth:  ratio(t.ReadBytes*1e9, elapsedNs),
		WriteBandwidth: ratio(t.WriteBytes*1e9, elapsedNs),

		ReadLatencyAvg:        ratio(t.ReadLatencySum, t.ReadRequests),
		ReadNetworkLatencyAvg: ratio(t.ReadNetworkLatencySum, t.ReadRequests),
		ReadQueueLatencyAvg:   ratio(t.ReadQueueLatencySum, t.ReadRequests),
		QueueingLatencyAvg:    ratio(t.QueueingLatencySum, t.ReadRequests),

		ReqQueueLengthAvg:      ratio(t.ReqQueueLengthSum, cycles),
		ReadReqQueueLengthAvg:  ratio(t.ReadReqQueueLengthSum, cycles),
		WriteReqQueueLengthAvg: ratio(t.WriteReqQueueLengthSum, cycles),
	}

	d.ReadLatencyNsAvg = d.ReadLatencyAvg * a.ClkNs
	d.QueueingLatencyNsAvg = d.QueueingLatencyAvg * a.ClkNs

	return d
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}

	return num / den
}
