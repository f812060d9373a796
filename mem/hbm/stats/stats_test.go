package stats_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/hbmsim/mem/hbm/stats"
)

var _ = Describe("Counters", func() {
	It("should accumulate", func() {
		s := stats.NewScalar("row_hits", "Number of row hits", 0)

		s.Inc()
		s.Add(2)

		Expect(s.Value()).To(Equal(3.0))
	})

	It("should not decrease", func() {
		s := stats.NewScalar("row_hits", "Number of row hits", 0)
		v := stats.NewVector("read_row_hits", "", 0, 2)

		Expect(func() { s.Add(-1) }).To(Panic())
		Expect(func() { v.Add(1, -1) }).To(Panic())
	})

	It("should sum the vector", func() {
		v := stats.NewVector("read_requests", "", 0, 3)

		v.Inc(0)
		v.Add(2, 4)

		Expect(v.At(2)).To(Equal(4.0))
		Expect(v.Total()).To(Equal(5.0))
	})
})

var _ = Describe("Aggregator", func() {
	It("should derive bandwidth, latency and queue length", func() {
		a := stats.Aggregator{ClkNs: 2}

		d := a.Derive(stats.Totals{
			Cycles:                 1000,
			ReadRequests:           10,
			ReadBytes:              6400,
			WriteBytes:             3200,
			ReadLatencySum:         300,
			ReadNetworkLatencySum:  60,
			ReadQueueLatencySum:    100,
			QueueingLatencySum:     120,
			ReqQueueLengthSum:      4000,
			ReadReqQueueLengthSum:  3000,
			WriteReqQueueLengthSum: 1000,
		})

		Expect(d.ReadBandwidth).To(BeNumerically("~", 3.2e9))
		Expect(d.WriteBandwidth).To(BeNumerically("~", 1.6e9))
		Expect(d.ReadLatencyAvg).To(Equal(30.0))
		Expect(d.ReadNetworkLatencyAvg).To(Equal(6.0))
		Expect(d.ReadQueueLatencyAvg).To(Equal(10.0))
		Expect(d.QueueingLatencyAvg).To(Equal(12.0))
		Expect(d.ReadLatencyNsAvg).To(Equal(60.0))
		Expect(d.QueueingLatencyNsAvg).To(Equal(24.0))
		Expect(d.ReqQueueLengthAvg).To(Equal(4.0))
		Expect(d.ReadReqQueueLengthAvg).To(Equal(3.0))
		Expect(d.WriteReqQueueLengthAvg).To(Equal(1.0))
	})

	It("should report 0 for an empty run", func() {
		d := stats.Aggregator{ClkNs: 2}.Derive(stats.Totals{ReadLatencySum: 5})

		Expect(d).To(Equal(stats.Derived{}))
	})
})

var _ = Describe("Report", func() {
	It("should expand vectors and find stats by name", func() {
		v := stats.NewVector("incoming_requests_per_channel",
			"Number of incoming requests to each DRAM channel", 0, 2)
		v.Inc(1)

		var r stats.Report
		r.AddValue("dram_cycles", "Number of DRAM cycles simulated", 7, 0)
		r.AddVector(v)

		Expect(r).To(HaveLen(3))

		value, found := r.Get("incoming_requests_per_channel[1]")
		Expect(found).To(BeTrue())
		Expect(value).To(Equal(1.0))

		_, found = r.Get("read_bandwidth")
		Expect(found).To(BeFalse())
	})

	It("should print one line per stat", func() {
		var r stats.Report
		r.AddValue("read_latency_avg", "avg", 1.5, 6)

		buf := new(bytes.Buffer)
		_, err := r.WriteTo(buf)

		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("read_latency_avg"))
		Expect(buf.String()).To(ContainSubstring("1.500000 # avg"))
	})
})
