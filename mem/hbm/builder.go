package hbm

import (
	"log"

	"github.com/sarchlab/hbmsim/mem/hbm/internal/accesspattern"
	"github.com/sarchlab/hbmsim/mem/hbm/internal/addressmapping"
	"github.com/sarchlab/hbmsim/mem/hbm/internal/pagealloc"
	"github.com/sarchlab/hbmsim/mem/hbm/internal/pim"
	"github.com/sarchlab/hbmsim/mem/hbm/stats"
	"github.com/sarchlab/hbmsim/sim/hooking"
)

// Builder can build HBM memory systems.
type Builder struct {
	cfg       Config
	spec      *DeviceSpec
	estimator pim.Estimator
	factory   ControllerFactory
	hooks     []hooking.Hook
}

// MakeBuilder creates a builder with the default configuration.
func MakeBuilder() Builder {
	return Builder{
		cfg:       DefaultConfig(),
		estimator: pim.MakeEstimator(),
	}
}

// WithConfig replaces the whole configuration.
func (b Builder) WithConfig(cfg Config) Builder {
	b.cfg = cfg
	return b
}

// WithNumChannel sets the number of channels.
func (b Builder) WithNumChannel(n int) Builder {
	b.cfg.Channels = n
	return b
}

// WithNumRank sets the number of ranks per channel.
func (b Builder) WithNumRank(n int) Builder {
	b.cfg.Ranks = n
	return b
}

// WithOrg sets the organization by name, for example HBM_4Gb.
func (b Builder) WithOrg(name string) Builder {
	b.cfg.Org = name
	return b
}

// WithSpeed sets the speed bin by name, for example HBM_1Gbps.
func (b Builder) WithSpeed(name string) Builder {
	b.cfg.Speed = name
	return b
}

// WithDeviceSpec sets the device directly instead of looking up the
// organization and speed names.
func (b Builder) WithDeviceSpec(spec DeviceSpec) Builder {
	b.spec = &spec
	return b
}

// WithScheme sets the address mapping scheme, RoBaRaCoCh or ChRaBaRoCo.
func (b Builder) WithScheme(name string) Builder {
	b.cfg.Scheme = name
	return b
}

// WithTranslation sets the page translation policy, None or Random.
func (b Builder) WithTranslation(name string) Builder {
	b.cfg.Translation = name
	return b
}

// WithCachelineSize sets the number of bytes requested by each access.
func (b Builder) WithCachelineSize(n int) Builder {
	b.cfg.CachelineSize = n
	return b
}

// WithPIMMode turns on the estimation of data movement between vaults.
func (b Builder) WithPIMMode(enabled bool) Builder {
	b.cfg.PIMMode = enabled
	return b
}

// WithNetworkOverhead lets the default controllers delay requests by their
// hop latency.
func (b Builder) WithNetworkOverhead(enabled bool) Builder {
	b.cfg.NetworkOverhead = enabled
	return b
}

// WithNumCores sets the number of cores that issue requests.
func (b Builder) WithNumCores(n int) Builder {
	b.cfg.NumCores = n
	return b
}

// WithSeed sets the seed of the random page translation.
func (b Builder) WithSeed(seed int64) Builder {
	b.cfg.Seed = seed
	return b
}

// WithQueueSize sets the queue capacity of the default controllers.
func (b Builder) WithQueueSize(n int) Builder {
	b.cfg.QueueSize = n
	return b
}

// WithAccessTableLimit bounds the number of keys of the access pattern
// table. 0 means no limit.
func (b Builder) WithAccessTableLimit(n int) Builder {
	b.cfg.AccessTableLimit = n
	return b
}

// WithEstimator replaces the PIM movement costs.
func (b Builder) WithEstimator(e pim.Estimator) Builder {
	b.estimator = e
	return b
}

// WithControllerFactory replaces the default channel controllers.
func (b Builder) WithControllerFactory(f ControllerFactory) Builder {
	b.factory = f
	return b
}

// WithHook registers a hook on the memory system.
func (b Builder) WithHook(h hooking.Hook) Builder {
	b.hooks = append(b.hooks[:len(b.hooks):len(b.hooks)], h)
	return b
}

// Build creates a memory system. It panics if the configuration is invalid.
func (b Builder) Build(name string) *Comp {
	spec := b.deviceSpec()

	scheme, err := addressmapping.ParseScheme(b.cfg.Scheme)
	if err != nil {
		log.Panic(err)
	}

	policy, err := pagealloc.ParsePolicy(b.cfg.Translation)
	if err != nil {
		log.Panic(err)
	}

	b.mustBeValid()

	c := &Comp{
		name:            name,
		spec:            spec,
		estimator:       b.estimator,
		pimMode:         b.cfg.PIMMode,
		networkOverhead: b.cfg.NetworkOverhead,
		cachelineSize:   b.cfg.CachelineSize,
		numCores:        b.cfg.NumCores,
	}

	c.mapper = addressmapping.MakeBuilder().
		WithBusWidth(spec.ChannelWidth).
		WithPrefetchSize(spec.PrefetchSize).
		WithGeometry(spec.Org.Geometry).
		WithScheme(scheme).
		Build()

	c.allocator = pagealloc.MakeBuilder().
		WithPolicy(policy).
		WithCapacity(c.mapper.Capacity()).
		WithSeed(b.cfg.Seed).
		Build()

	if c.pimMode {
		c.tracker = accesspattern.NewTracker(b.cfg.AccessTableLimit)
	}

	numChannels := spec.Org.Geometry[addressmapping.Channel]
	c.sink = stats.NewSink(b.cfg.NumCores)
	c.counters = newFrontEndCounters(b.cfg.NumCores, numChannels)
	b.buildControllers(c, numChannels)

	for _, h := range b.hooks {
		c.AcceptHook(h)
	}

	return c
}

func (b Builder) deviceSpec() DeviceSpec {
	var spec DeviceSpec

	if b.spec != nil {
		spec = *b.spec
	} else {
		var err error

		cfg := b.cfg.withDefaultDevice()

		spec, err = LookupDevice(cfg.Org, cfg.Speed)
		if err != nil {
			log.Panic(err)
		}
	}

	g := &spec.Org.Geometry
	if g[addressmapping.Channel] == 0 {
		g[addressmapping.Channel] = b.cfg.Channels
	}

	if g[addressmapping.Rank] == 0 {
		g[addressmapping.Rank] = b.cfg.Ranks
	}

	return spec
}

func (b Builder) mustBeValid() {
	if b.cfg.CachelineSize <= 0 {
		log.Panicf("cacheline size must be positive, got %d",
			b.cfg.CachelineSize)
	}

	if b.cfg.NumCores <= 0 {
		log.Panicf("number of cores must be positive, got %d",
			b.cfg.NumCores)
	}
}

func (b Builder) buildControllers(c *Comp, numChannels int) {
	factory := b.factory
	if factory == nil {
		factory = defaultControllerFactory(
			b.cfg.QueueSize, b.cfg.NetworkOverhead)
	}

	c.ctrls = make([]Controller, numChannels)
	for i := range c.ctrls {
		c.ctrls[i] = factory(i, c.spec, c.sink)
	}
}
