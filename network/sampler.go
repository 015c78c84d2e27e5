// Package network defines the sampling boundary towards the peer-to-peer
// network. The crawler only measures presence or absence of requested items;
// it never inspects payload contents.
package network

import (
	"context"

	"github.com/availproject/avail-crawler/matrix"
)

// Cell is a single retrieved cell of the extended matrix.
type Cell struct {
	Position matrix.Position
	Data     []byte
}

// Sampler fetches cells and rows of a block's extended matrix from the
// network. Individual misses are not errors: FetchCells returns only the
// cells that were retrieved, and FetchRows returns a payload slice aligned
// with the requested indices where nil marks a miss. Implementations own
// their per-fetch timeouts; each call eventually returns with whatever was
// retrieved.
type Sampler interface {
	FetchCells(ctx context.Context, blockNumber uint32, positions []matrix.Position) []Cell
	FetchRows(ctx context.Context, blockNumber uint32, dims matrix.Dimensions, rows []uint32) [][]byte
}
