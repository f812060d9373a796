package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/hbmsim/mem/hbm"
)

// loadConfig reads a YAML configuration. Options that the file leaves out
// keep their default values. An empty path returns the default
// configuration.
func loadConfig(path string) (hbm.Config, error) {
	cfg := hbm.DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err = dec.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

type yamlStat struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
	Desc  string  `yaml:"desc"`
}

type yamlReport struct {
	Config hbm.Config `yaml:"config"`
	Stats  []yamlStat `yaml:"stats"`
}

func writeYAMLReport(w io.Writer, res result) error {
	out := yamlReport{Config: res.cfg}
	for _, s := range res.report {
		out.Stats = append(out.Stats, yamlStat{
			Name:  s.Name,
			Value: s.Value,
			Desc:  s.Desc,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("writing YAML report: %w", err)
	}

	return enc.Close()
}
