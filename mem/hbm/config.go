package hbm

import (
	"fmt"

	"github.com/sarchlab/hbmsim/mem/hbm/internal/addressmapping"
	"github.com/sarchlab/hbmsim/mem/hbm/internal/pagealloc"
)

// Config is the set of options that a memory system is created from. It can
// be loaded from YAML.
type Config struct {
	Channels         int    `yaml:"channels"`
	Ranks            int    `yaml:"ranks"`
	Org              string `yaml:"org"`
	Speed            string `yaml:"speed"`
	Scheme           string `yaml:"scheme"`
	Translation      string `yaml:"translation"`
	CachelineSize    int    `yaml:"cacheline_size"`
	PIMMode          bool   `yaml:"pim_mode"`
	NetworkOverhead  bool   `yaml:"network_overhead"`
	NumCores         int    `yaml:"num_cores"`
	Seed             int64  `yaml:"seed"`
	QueueSize        int    `yaml:"queue_size"`
	AccessTableLimit int    `yaml:"access_table_limit"`
}

// DefaultConfig returns the configuration used when no option is given.
func DefaultConfig() Config {
	return Config{
		Channels:      8,
		Ranks:         1,
		Org:           "HBM_4Gb",
		Speed:         "HBM_1Gbps",
		Scheme:        "RoBaRaCoCh",
		Translation:   "None",
		CachelineSize: 64,
		NumCores:      1,
		Seed:          1,
		QueueSize:     32,
	}
}

// ParseScheme checks the name of an address mapping scheme.
func ParseScheme(name string) error {
	_, err := addressmapping.ParseScheme(name)
	return err
}

// ParseTranslation checks the name of a page translation policy.
func ParseTranslation(name string) error {
	_, err := pagealloc.ParsePolicy(name)
	return err
}

// Validate reports the first problem of the configuration that would make
// Build panic.
func (c Config) Validate() error {
	if err := ParseScheme(c.Scheme); err != nil {
		return err
	}

	if err := ParseTranslation(c.Translation); err != nil {
		return err
	}

	c = c.withDefaultDevice()
	if _, err := LookupDevice(c.Org, c.Speed); err != nil {
		return err
	}

	for _, n := range []struct {
		name  string
		value int
	}{
		{"channels", c.Channels},
		{"ranks", c.Ranks},
	} {
		if n.value <= 0 || n.value&(n.value-1) != 0 {
			return fmt.Errorf("%s must be a power of 2, got %d",
				n.name, n.value)
		}
	}

	if c.CachelineSize <= 0 {
		return fmt.Errorf("cacheline size must be positive, got %d",
			c.CachelineSize)
	}

	if c.NumCores <= 0 {
		return fmt.Errorf("number of cores must be positive, got %d",
			c.NumCores)
	}

	if c.QueueSize <= 0 {
		return fmt.Errorf("queue size must be positive, got %d", c.QueueSize)
	}

	return nil
}

func (c Config) withDefaultDevice() Config {
	def := DefaultConfig()

	if c.Org == "" {
		c.Org = def.Org
	}

	if c.Speed == "" {
		c.Speed = def.Speed
	}

	return c
}
