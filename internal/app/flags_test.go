package app

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, "automap", cfg.Sim)
	assert.Empty(t, cfg.SimOptions())
}

func TestConfigSimOptions(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-rules", "rules/parity.yaml", "-signature", "12", "-tps", "10"}))

	assert.Equal(t, 10, cfg.TPS)
	assert.Equal(t, map[string]string{"rules": "rules/parity.yaml", "signature": "12"}, cfg.SimOptions())
}
