package hbm

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	It("should accept the default configuration", func() {
		Expect(DefaultConfig().Validate()).To(Succeed())
	})

	It("should fall back to the default device", func() {
		cfg := DefaultConfig()
		cfg.Org = ""
		cfg.Speed = ""

		Expect(cfg.Validate()).To(Succeed())

		comp := MakeBuilder().WithConfig(cfg).Build("HBM")
		Expect(comp.Spec().Org.Name).To(Equal("HBM_4Gb"))
		Expect(comp.ClkNs()).To(Equal(2.0))
	})

	DescribeTable("should report invalid configurations",
		func(modify func(*Config), msg string) {
			cfg := DefaultConfig()
			modify(&cfg)

			err := cfg.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(msg))
		},
		Entry("scheme", func(c *Config) { c.Scheme = "RoCoBa" }, "RoCoBa"),
		Entry("translation", func(c *Config) { c.Translation = "LRU" }, "LRU"),
		Entry("org", func(c *Config) { c.Org = "HBM_8Gb" }, "HBM_8Gb"),
		Entry("channels", func(c *Config) { c.Channels = 6 }, "channels"),
		Entry("ranks", func(c *Config) { c.Ranks = 0 }, "ranks"),
		Entry("cacheline", func(c *Config) { c.CachelineSize = 0 }, "cacheline"),
		Entry("cores", func(c *Config) { c.NumCores = -1 }, "cores"),
		Entry("queue", func(c *Config) { c.QueueSize = 0 }, "queue"),
	)
})
