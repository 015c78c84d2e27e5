package crawler

import (
	"context"

	"github.com/availproject/avail-crawler/telemetry"
)

// Crawl metrics carry operational evidence about this node's view of the
// network and are restricted to the operator's own pipeline: none of them is
// exported to external telemetry consumers.
const (
	cellsSuccessRateName = "avail.crawl.cells_success_rate"
	rowsSuccessRateName  = "avail.crawl.rows_success_rate"
	blockDelayName       = "avail.crawl.block_delay"
)

// CellsSuccessRate is the fraction of requested cells retrieved for a block.
type CellsSuccessRate float64

func (CellsSuccessRate) Name() string       { return cellsSuccessRateName }
func (v CellsSuccessRate) Float64() float64 { return float64(v) }
func (CellsSuccessRate) Allowed(o telemetry.Origin) bool {
	return o == telemetry.OriginInternal
}

// RowsSuccessRate is the fraction of requested rows retrieved for a block.
type RowsSuccessRate float64

func (RowsSuccessRate) Name() string       { return rowsSuccessRateName }
func (v RowsSuccessRate) Float64() float64 { return float64(v) }
func (RowsSuccessRate) Allowed(o telemetry.Origin) bool {
	return o == telemetry.OriginInternal
}

// BlockDelay is the wall-clock seconds actually waited before sampling a
// block.
type BlockDelay float64

func (BlockDelay) Name() string       { return blockDelayName }
func (v BlockDelay) Float64() float64 { return float64(v) }
func (BlockDelay) Allowed(o telemetry.Origin) bool {
	return o == telemetry.OriginInternal
}

var (
	_ telemetry.Value = CellsSuccessRate(0)
	_ telemetry.Value = RowsSuccessRate(0)
	_ telemetry.Value = BlockDelay(0)
)

// record hands a value to the metrics sink. Delivery is best-effort;
// failures must not perturb sampling, so they are only logged.
func (c *Crawler) record(ctx context.Context, value telemetry.Value) {
	if err := c.metrics.Record(ctx, value); err != nil {
		log.Debugw("recording metric", "metric", value.Name(), "err", err)
	}
}
