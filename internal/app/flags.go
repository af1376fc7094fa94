package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim       string
	Scale     int
	TPS       int
	Seed      int64
	Rules     string
	Signature int64
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{Sim: "automap", Scale: 32, TPS: 4, Seed: 42, Signature: -1}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.StringVar(&c.Rules, "rules", c.Rules, "YAML automaton file")
	fs.Int64Var(&c.Signature, "signature", c.Signature, "starting configuration; negative picks one from the seed")
}

// SimOptions returns the factory options for the configured sim.
func (c *Config) SimOptions() map[string]string {
	opts := map[string]string{}
	if c.Rules != "" {
		opts["rules"] = c.Rules
	}
	if c.Signature >= 0 {
		opts["signature"] = strconv.FormatInt(c.Signature, 10)
	}
	return opts
}
