package nodebuilder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/availproject/avail-crawler/crawler"
	"github.com/availproject/avail-crawler/matrix"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBrokenSection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Crawler.Mode = crawler.Mode("diagonal")
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.RPC.Endpoint = ""
	assert.Error(t, cfg.Validate())
}

func TestConfigWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := DefaultConfig()
	cfg.Crawler.Enabled = true
	cfg.Crawler.Delay = 5 * time.Second
	cfg.Crawler.Mode = crawler.ModeBoth
	cfg.Crawler.Partition = matrix.Partition{Number: 2, Fraction: 10}
	cfg.RPC.Endpoint = "ws://10.0.0.1:9944"

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
