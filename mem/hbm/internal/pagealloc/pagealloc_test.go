package pagealloc

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Identity Allocator", func() {
	var a Allocator

	BeforeEach(func() {
		a = MakeBuilder().WithPolicy(PolicyNone).Build()
	})

	It("should return the address unchanged", func() {
		Expect(a.Allocate(0x12345, 0)).To(Equal(uint64(0x12345)))
		Expect(a.Allocate(0x12345, 0)).To(Equal(uint64(0x12345)))
	})

	It("should count the footprint once per core and page", func() {
		a.Allocate(0x1000, 0)
		Expect(a.Footprint()).To(Equal(uint64(PageSize)))

		a.Allocate(0x1fff, 0)
		Expect(a.Footprint()).To(Equal(uint64(PageSize)))

		a.Allocate(0x1000, 1)
		Expect(a.Footprint()).To(Equal(uint64(2 * PageSize)))
	})
})

var _ = Describe("Random Allocator", func() {
	const numFrames = 4

	var a Allocator

	BeforeEach(func() {
		a = MakeBuilder().
			WithPolicy(PolicyRandom).
			WithCapacity(numFrames * PageSize).
			WithSeed(42).
			Build()
	})

	It("should keep the page offset", func() {
		pAddr := a.Allocate(0x5abc, 0)

		Expect(pAddr & (PageSize - 1)).To(Equal(uint64(0xabc)))
		Expect(pAddr >> Log2PageSize).To(BeNumerically("<", numFrames))
	})

	It("should return the same translation on repeated access", func() {
		first := a.Allocate(0x7000, 3)

		Expect(a.Allocate(0x7010, 3)).To(Equal(first + 0x10))
		Expect(a.Footprint()).To(Equal(uint64(PageSize)))
	})

	It("should hand out distinct frames until the pool is exhausted", func() {
		frames := map[uint64]bool{}

		for i := uint64(0); i < numFrames; i++ {
			frames[a.Allocate(i*PageSize, 0)>>Log2PageSize] = true
		}

		Expect(frames).To(HaveLen(numFrames))
		Expect(a.FreeFrames()).To(BeZero())
		Expect(a.Replacements()).To(BeZero())
		Expect(a.StaleTranslations()).To(BeZero())
	})

	It("should replace a frame once the pool is exhausted", func() {
		translated := map[uint64]uint64{}
		for i := uint64(0); i < numFrames; i++ {
			translated[i] = a.Allocate(i*PageSize, 0)
		}

		extra := a.Allocate(numFrames*PageSize, 1)

		Expect(a.Replacements()).To(Equal(uint64(1)))
		Expect(a.FreeFrames()).To(BeZero())
		Expect(a.Footprint()).To(Equal(uint64((numFrames + 1) * PageSize)))
		Expect(a.StaleTranslations()).To(Equal(1))

		for i, pAddr := range translated {
			Expect(a.Allocate(i*PageSize, 0)).To(Equal(pAddr))
		}
		Expect(translated).To(ContainElement(extra))
	})

	It("should be reproducible with the same seed", func() {
		b := MakeBuilder().
			WithPolicy(PolicyRandom).
			WithCapacity(numFrames * PageSize).
			WithSeed(42).
			Build()

		for i := uint64(0); i < numFrames+2; i++ {
			Expect(b.Allocate(i*PageSize, 2)).To(Equal(a.Allocate(i*PageSize, 2)))
		}
	})

	It("should panic if the capacity cannot hold a page", func() {
		builder := MakeBuilder().WithPolicy(PolicyRandom).WithCapacity(100)

		Expect(func() { builder.Build() }).To(Panic())
	})
})

var _ = Describe("ParsePolicy", func() {
	It("should parse the policy names", func() {
		p, err := ParsePolicy("None")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(PolicyNone))

		p, err = ParsePolicy("Random")
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal(PolicyRandom))
	})

	It("should reject unknown policies", func() {
		_, err := ParsePolicy("FirstTouch")
		Expect(err).To(HaveOccurred())
	})
})
