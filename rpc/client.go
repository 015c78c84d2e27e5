package rpc

import (
	"context"
	"fmt"

	"github.com/filecoin-project/go-jsonrpc"

	"github.com/availproject/avail-crawler/block"
)

// Config configures the connection to the chain node.
type Config struct {
	// Endpoint is the websocket address of the chain node's RPC server.
	Endpoint string
}

func DefaultConfig() Config {
	return Config{
		Endpoint: "ws://127.0.0.1:9944",
	}
}

func (cfg *Config) Validate() error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("rpc: endpoint must be set")
	}
	return nil
}

// Client subscribes to the chain node's finality stream.
type Client struct {
	api struct {
		SubscribeFinalizedHeaders func(ctx context.Context) (<-chan *block.RawHeader, error)
	}
	closer jsonrpc.ClientCloser
}

// NewClient dials the chain node at the configured endpoint.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var c Client
	closer, err := jsonrpc.NewClient(ctx, cfg.Endpoint, "chain", &c.api, nil)
	if err != nil {
		return nil, fmt.Errorf("rpc: dialing %s: %w", cfg.Endpoint, err)
	}
	c.closer = closer
	return &c, nil
}

// SubscribeFinalizedHeaders subscribes to finalized block headers. The
// returned channel closes when the subscription ends, either because ctx is
// done or the connection to the node is lost.
func (c *Client) SubscribeFinalizedHeaders(ctx context.Context) (<-chan *block.RawHeader, error) {
	return c.api.SubscribeFinalizedHeaders(ctx)
}

// Close terminates the connection to the chain node.
func (c *Client) Close() {
	c.closer()
}
