// Package p2p implements the network sampling boundary on top of a Kademlia
// DHT: cells and rows are content-addressed records put to the DHT by nodes
// holding block data, and fetched here by key.
package p2p

import (
	"context"
	"fmt"
	"sync"

	logging "github.com/ipfs/go-log/v2"
	"github.com/libp2p/go-libp2p/core/routing"
	"golang.org/x/sync/errgroup"

	"github.com/availproject/avail-crawler/matrix"
	"github.com/availproject/avail-crawler/network"
)

var log = logging.Logger("network/p2p")

const (
	cellNamespace = "avail-cell"
	rowNamespace  = "avail-row"
)

// DefaultConcurrency bounds how many DHT lookups a single Fetch call runs in
// parallel.
const DefaultConcurrency = 16

// Client fetches matrix cells and rows from a DHT-backed value store.
type Client struct {
	store       routing.ValueStore
	concurrency int
}

// Option configures the Client.
type Option func(*Client)

// WithConcurrency bounds parallel DHT lookups per Fetch call.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// NewClient creates a Client over the given value store, typically a
// *dht.IpfsDHT.
func NewClient(store routing.ValueStore, opts ...Option) *Client {
	c := &Client{
		store:       store,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchCells looks up every requested position and returns the cells that
// were found. Lookup failures are misses, not errors.
func (c *Client) FetchCells(
	ctx context.Context,
	blockNumber uint32,
	positions []matrix.Position,
) []network.Cell {
	var (
		mu      sync.Mutex
		fetched = make([]network.Cell, 0, len(positions))
	)

	var wg errgroup.Group
	wg.SetLimit(c.concurrency)
	for _, pos := range positions {
		wg.Go(func() error {
			data, err := c.store.GetValue(ctx, cellKey(blockNumber, pos))
			if err != nil {
				log.Debugw("cell lookup miss", "block", blockNumber, "position", pos, "err", err)
				return nil
			}
			mu.Lock()
			fetched = append(fetched, network.Cell{Position: pos, Data: data})
			mu.Unlock()
			return nil
		})
	}
	wg.Wait() //nolint:errcheck // workers never return errors

	return fetched
}

// FetchRows looks up the requested extended rows and returns their payloads
// aligned with the requested indices, nil where the row was not found.
func (c *Client) FetchRows(
	ctx context.Context,
	blockNumber uint32,
	_ matrix.Dimensions,
	rows []uint32,
) [][]byte {
	payloads := make([][]byte, len(rows))

	var wg errgroup.Group
	wg.SetLimit(c.concurrency)
	for i, row := range rows {
		wg.Go(func() error {
			data, err := c.store.GetValue(ctx, rowKey(blockNumber, row))
			if err != nil {
				log.Debugw("row lookup miss", "block", blockNumber, "row", row, "err", err)
				return nil
			}
			payloads[i] = data
			return nil
		})
	}
	wg.Wait() //nolint:errcheck // workers never return errors

	return payloads
}

func cellKey(blockNumber uint32, pos matrix.Position) string {
	return fmt.Sprintf("/%s/%d:%d:%d", cellNamespace, blockNumber, pos.Row, pos.Col)
}

func rowKey(blockNumber uint32, row uint32) string {
	return fmt.Sprintf("/%s/%d:%d", rowNamespace, blockNumber, row)
}
