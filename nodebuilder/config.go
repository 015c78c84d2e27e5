// Package nodebuilder assembles the crawler process from its subsystems:
// configuration, the p2p network, the chain RPC connection, telemetry and
// the crawl loop itself.
package nodebuilder

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/availproject/avail-crawler/crawler"
	"github.com/availproject/avail-crawler/network/p2p"
	"github.com/availproject/avail-crawler/rpc"
	"github.com/availproject/avail-crawler/telemetry"
)

// Config is the main configuration structure for the crawler process. It
// combines configuration units for all subsystems.
type Config struct {
	Crawler   crawler.Parameters
	P2P       p2p.Config
	RPC       rpc.Config
	Telemetry telemetry.Config
}

// DefaultConfig provides a default Config.
func DefaultConfig() *Config {
	return &Config{
		Crawler:   crawler.DefaultParameters(),
		P2P:       p2p.DefaultConfig(),
		RPC:       rpc.DefaultConfig(),
		Telemetry: telemetry.DefaultConfig(),
	}
}

// Validate performs basic validation of every config section.
func (cfg *Config) Validate() error {
	if err := cfg.Crawler.Validate(); err != nil {
		return fmt.Errorf("nodebuilder: crawler config: %w", err)
	}
	if err := cfg.P2P.Validate(); err != nil {
		return fmt.Errorf("nodebuilder: p2p config: %w", err)
	}
	if err := cfg.RPC.Validate(); err != nil {
		return fmt.Errorf("nodebuilder: rpc config: %w", err)
	}
	if err := cfg.Telemetry.Validate(); err != nil {
		return fmt.Errorf("nodebuilder: telemetry config: %w", err)
	}
	return nil
}

// Encode encodes the Config as TOML to the given writer.
func (cfg *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Decode decodes the Config from TOML read off the given reader.
func (cfg *Config) Decode(r io.Reader) error {
	_, err := toml.NewDecoder(r).Decode(cfg)
	return err
}

// SaveConfig saves Config 'cfg' under the given 'path'.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return cfg.Encode(f)
}

// LoadConfig loads Config from the given 'path'.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	return &cfg, cfg.Decode(f)
}
