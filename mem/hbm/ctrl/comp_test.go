package ctrl

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/hbmsim/mem/hbm/internal/addressmapping"
	"github.com/sarchlab/hbmsim/mem/hbm/signal"
	"github.com/sarchlab/hbmsim/mem/hbm/stats"
)

var _ = Describe("Comp", func() {
	var (
		sink *stats.Sink
		c    *Comp
	)

	at := func(kind signal.RequestKind, bank, row int) signal.Request {
		req := signal.Request{Kind: kind, CoreID: 1}
		req.Location[addressmapping.Bank] = bank
		req.Location[addressmapping.Row] = row

		return req
	}

	tickUntilIdle := func() {
		for i := 0; i < 1000 && c.IsActive(); i++ {
			c.Tick()
		}

		Expect(c.IsActive()).To(BeFalse())
	}

	BeforeEach(func() {
		sink = stats.NewSink(2)
		c = MakeBuilder().
			WithTiming(Timing{CL: 2, RCD: 3, RP: 4, BL: 1}).
			WithQueueSize(2).
			WithSink(sink).
			Build(3)
	})

	It("should reject requests when the queue is full", func() {
		Expect(c.Enqueue(at(signal.RequestKindRead, 0, 0))).To(BeTrue())
		Expect(c.Enqueue(at(signal.RequestKindRead, 0, 0))).To(BeTrue())
		Expect(c.Enqueue(at(signal.RequestKindRead, 0, 0))).To(BeFalse())
		Expect(c.Enqueue(at(signal.RequestKindWrite, 0, 0))).To(BeTrue())

		Expect(c.QueueDepths()).To(Equal(signal.QueueDepths{Read: 2, Write: 1}))
		Expect(c.ChannelID()).To(Equal(3))
	})

	It("should hit the row opened by the previous access", func() {
		Expect(c.Enqueue(at(signal.RequestKindRead, 0, 5))).To(BeTrue())
		c.Tick()
		Expect(c.QueueDepths().Pending).To(Equal(1))

		Expect(c.Enqueue(at(signal.RequestKindRead, 0, 5))).To(BeTrue())
		tickUntilIdle()

		Expect(sink.RowMisses.Value()).To(Equal(1.0))
		Expect(sink.RowHits.Value()).To(Equal(1.0))
		Expect(sink.ReadRowHits.At(1)).To(Equal(1.0))
		Expect(sink.ReadRowMisses.At(1)).To(Equal(1.0))
		Expect(sink.ReadTransactionBytes.Value()).To(Equal(64.0))
		Expect(sink.ReadLatencySum.Value()).To(Equal(14.0))
		Expect(sink.ReadQueueLatencySum.Value()).To(Equal(5.0))
	})

	It("should count a conflict when another row is open", func() {
		c.Enqueue(at(signal.RequestKindWrite, 1, 5))
		tickUntilIdle()
		c.Enqueue(at(signal.RequestKindWrite, 1, 6))
		tickUntilIdle()

		Expect(sink.RowConflicts.Value()).To(Equal(1.0))
		Expect(sink.WriteRowConflicts.At(1)).To(Equal(1.0))
		Expect(sink.WriteTransactionBytes.Value()).To(Equal(64.0))
		Expect(sink.ReadLatencySum.Value()).To(BeZero())
	})

	It("should issue reads before writes", func() {
		c.Enqueue(at(signal.RequestKindWrite, 0, 1))
		c.Enqueue(at(signal.RequestKindRead, 1, 1))

		c.Tick()

		Expect(c.QueueDepths()).To(Equal(
			signal.QueueDepths{Write: 1, Pending: 1}))
	})

	It("should sum the queue lengths every cycle", func() {
		c.Enqueue(at(signal.RequestKindRead, 0, 1))
		c.Enqueue(at(signal.RequestKindRead, 0, 2))
		c.Enqueue(at(signal.RequestKindWrite, 0, 3))

		c.Tick()

		Expect(sink.ReadReqQueueLengthSum.Value()).To(Equal(1.0))
		Expect(sink.WriteReqQueueLengthSum.Value()).To(Equal(1.0))
		Expect(sink.ReqQueueLengthSum.Value()).To(Equal(2.0))
	})

	It("should delay completion by the hops with network overhead", func() {
		slow := MakeBuilder().
			WithTiming(Timing{CL: 2, RCD: 3, RP: 4, BL: 1}).
			WithNetworkOverhead(true).
			WithSink(sink).
			Build(0)

		req := at(signal.RequestKindRead, 0, 0)
		req.Hops = 6
		slow.Enqueue(req)

		for slow.IsActive() {
			slow.Tick()
		}

		Expect(sink.ReadLatencySum.Value()).To(Equal(13.0))
	})

	It("should record the outcomes of a core", func() {
		c.Enqueue(at(signal.RequestKindRead, 0, 0))
		tickUntilIdle()

		c.RecordCore(1)
		c.RecordCore(0)

		rec, found := c.Recorded(1)
		Expect(found).To(BeTrue())
		Expect(rec.ReadMisses).To(Equal(uint64(1)))

		rec, found = c.Recorded(0)
		Expect(found).To(BeTrue())
		Expect(rec).To(Equal(CoreRecord{}))
	})

	It("should not accept requests after finish", func() {
		c.Finish(10)

		Expect(func() { c.Enqueue(at(signal.RequestKindRead, 0, 0)) }).
			To(Panic())
	})
})
