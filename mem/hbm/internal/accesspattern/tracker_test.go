package accesspattern

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Tracker", func() {
	var t *Tracker

	record := func(key Key, channels ...int) {
		for _, ch := range channels {
			t.Record(key, ch)
		}
	}

	BeforeEach(func() {
		t = NewTracker(0)
	})

	It("should report zero for an empty table", func() {
		s := t.Summary()

		Expect(s.Keys()).To(BeZero())
		for b := SingleAccess; b < numBuckets; b++ {
			Expect(s.Percent(b)).To(BeZero())
		}
	})

	It("should put each key into exactly one bucket", func() {
		record(Key{0, 0, 0}, 0)
		record(Key{1, 0, 0}, 2, 2, 2)
		record(Key{0, 1, 0}, 1, 3)
		record(Key{0, 0, 1}, 1, 3, 1)

		s := t.Summary()

		Expect(s.Keys()).To(Equal(uint64(4)))
		Expect(s.Percent(SingleAccess)).To(Equal(25.0))
		Expect(s.Percent(SameChannel)).To(Equal(25.0))
		Expect(s.Percent(DistinctChannels)).To(Equal(25.0))
		Expect(s.Percent(RepeatedChannels)).To(Equal(25.0))
	})

	It("should keep the access order of each key", func() {
		record(Key{2, 3, 4}, 5, 1, 5)

		records := t.Flush()

		Expect(records).To(HaveLen(1))
		Expect(records[0].Channels).To(Equal([]int{5, 1, 5}))
	})

	It("should flush in key order", func() {
		record(Key{1, 0, 0}, 0)
		record(Key{0, 2, 0}, 0)
		record(Key{0, 1, 7}, 0)

		records := t.Flush()

		Expect(records).To(HaveLen(3))
		Expect(records[0].Key).To(Equal(Key{0, 1, 7}))
		Expect(records[1].Key).To(Equal(Key{0, 2, 0}))
		Expect(records[2].Key).To(Equal(Key{1, 0, 0}))
		Expect(t.Len()).To(BeZero())
	})

	It("should keep flushed keys in the summary", func() {
		record(Key{0, 0, 0}, 1, 1)
		record(Key{0, 0, 1}, 2)
		t.Flush()

		s := t.Summary()

		Expect(s.Keys()).To(Equal(uint64(2)))
		Expect(s.Counts[SameChannel]).To(Equal(uint64(1)))
		Expect(s.Counts[SingleAccess]).To(Equal(uint64(1)))
	})

	It("should classify a key once across flushes", func() {
		t = NewTracker(1)

		record(Key{0, 0, 0}, 1)
		Expect(t.Full()).To(BeTrue())
		Expect(t.Flush()).To(HaveLen(1))
		record(Key{0, 0, 0}, 3)

		s := t.Summary()

		Expect(s.Keys()).To(Equal(uint64(1)))
		Expect(s.Percent(DistinctChannels)).To(Equal(100.0))
		Expect(s.Percent(SingleAccess)).To(BeZero())

		records := t.Flush()
		Expect(records).To(HaveLen(1))
		Expect(records[0].Channels).To(Equal([]int{3}))
	})

	It("should classify repeated channels across flushes", func() {
		record(Key{0, 0, 0}, 1, 3)
		t.Flush()
		record(Key{0, 0, 0}, 1)

		Expect(t.Summary().Counts[RepeatedChannels]).To(Equal(uint64(1)))
	})

	It("should drop new keys when the table is full", func() {
		t = NewTracker(2)

		record(Key{0, 0, 0}, 0)
		Expect(t.Full()).To(BeFalse())
		record(Key{0, 0, 1}, 0)
		Expect(t.Full()).To(BeTrue())
		record(Key{0, 0, 2}, 0)
		record(Key{0, 0, 1}, 1)

		Expect(t.Len()).To(Equal(2))
		Expect(t.Dropped()).To(Equal(uint64(1)))

		s := t.Summary()
		Expect(s.Keys()).To(Equal(uint64(3)))
		Expect(s.Counts[DistinctChannels]).To(Equal(uint64(1)))
		Expect(s.Counts[SingleAccess]).To(Equal(uint64(2)))
	})
})
