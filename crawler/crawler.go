// Package crawler continuously measures block data availability: for each
// finalized block it samples a configured slice of the erasure-coded matrix
// from the peer network, records the observed success rates and forwards the
// verified block downstream.
package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	logging "github.com/ipfs/go-log/v2"

	"github.com/availproject/avail-crawler/block"
	"github.com/availproject/avail-crawler/libs/broadcast"
	"github.com/availproject/avail-crawler/network"
	"github.com/availproject/avail-crawler/rpc"
	"github.com/availproject/avail-crawler/telemetry"
)

var log = logging.Logger("crawler")

// Crawler samples the availability of every finalized block's data.
//
// It owns no shared state: the inbound event stream, the sampler, the
// metrics sink and the outbound block stream are all passed in, and the loop
// runs as a single goroutine between its suspension points. Nothing inside a
// crawl cycle aborts the loop; it terminates only when the event stream
// closes or Stop is called.
type Crawler struct {
	params Parameters

	events  *broadcast.Broadcaster[rpc.Event]
	sampler network.Sampler
	metrics telemetry.Metrics
	blocks  *broadcast.Broadcaster[*block.Verified]

	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a Crawler consuming events, sampling via sampler and
// forwarding verified blocks to blocks.
func New(
	events *broadcast.Broadcaster[rpc.Event],
	sampler network.Sampler,
	metrics telemetry.Metrics,
	blocks *broadcast.Broadcaster[*block.Verified],
	opts ...Option,
) (*Crawler, error) {
	params := DefaultParameters()
	for _, opt := range opts {
		opt(&params)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &Crawler{
		params:  params,
		events:  events,
		sampler: sampler,
		metrics: metrics,
		blocks:  blocks,
	}, nil
}

// Start subscribes to the event stream and spawns the crawl loop.
func (c *Crawler) Start(context.Context) error {
	if c.cancel != nil {
		return fmt.Errorf("crawler: already started")
	}

	sub := c.events.Subscribe()

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})

	go c.run(ctx, sub)
	return nil
}

// Stop terminates the crawl loop and waits for it to exit.
func (c *Crawler) Stop(ctx context.Context) error {
	if c.cancel == nil {
		return fmt.Errorf("crawler: not started")
	}

	c.cancel()
	select {
	case <-c.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	c.cancel = nil
	return nil
}

func (c *Crawler) run(ctx context.Context, sub *broadcast.Subscription[rpc.Event]) {
	defer close(c.done)
	defer sub.Cancel()

	log.Info("starting crawler")
	delay := Delay{Duration: c.params.Delay}

	for {
		ev, err := sub.Next(ctx)
		if errors.Is(err, broadcast.ErrClosed) {
			log.Info("event stream closed, stopping crawler")
			return
		}
		if err != nil {
			return
		}

		update, ok := ev.(rpc.HeaderUpdate)
		if !ok {
			continue
		}

		blk, err := block.NewVerified(update.Header)
		if err != nil {
			log.Errorw("header is not valid", "err", err)
			continue
		}

		if !blk.HasExtension() {
			log.Infow("skipping block without header extension", "block", blk.Number)
			if c.params.ForwardEmptyBlocks {
				c.forward(blk)
			}
			continue
		}

		if wait := delay.SleepDuration(update.ReceivedAt); wait > 0 {
			log.Infow("pacing before sampling", "block", blk.Number, "wait", wait)
			waited, ok := c.sleep(ctx, wait)
			if !ok {
				return
			}
			c.record(ctx, BlockDelay(waited.Seconds()))
		}

		log.Infow("crawling block", "block", blk.Number)
		start := time.Now()

		if c.params.Mode.SamplesCells() {
			c.sampleCells(ctx, blk)
		}
		if c.params.Mode.SamplesRows() {
			c.sampleRows(ctx, blk)
		}

		c.forward(blk)
		log.Infow("crawling block finished", "block", blk.Number, "took", time.Since(start))
	}
}

// sleep waits for the given duration and reports the wall-clock time spent
// waiting. ok is false when the context ended the wait early.
func (c *Crawler) sleep(ctx context.Context, wait time.Duration) (time.Duration, bool) {
	start := time.Now()
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-timer.C:
		return time.Since(start), true
	case <-ctx.Done():
		return 0, false
	}
}

// sampleCells fetches the configured partition of the block's extended
// matrix and records the fraction retrieved.
func (c *Crawler) sampleCells(ctx context.Context, blk *block.Verified) {
	positions := blk.Dimensions.ExtendedPartitionPositions(c.params.Partition)
	total := len(positions)
	if total == 0 {
		log.Debugw("partition slice is empty, skipping cell sampling",
			"block", blk.Number, "partition", c.params.Partition)
		return
	}

	fetched := len(c.sampler.FetchCells(ctx, blk.Number, positions))
	successRate := float64(fetched) / float64(total)
	log.Infow("fetched block cells",
		"block", blk.Number,
		"partition", c.params.Partition,
		"total", total,
		"fetched", fetched,
		"success_rate", successRate,
	)
	c.record(ctx, CellsSuccessRate(successRate))
}

// sampleRows fetches every second extended row and records the fraction
// retrieved. Extended rows come in original/parity pairs, so the stride-2
// selection is a deliberate half-density check.
func (c *Crawler) sampleRows(ctx context.Context, blk *block.Verified) {
	extendedRows := blk.Dimensions.ExtendedRows()
	rows := make([]uint32, 0, (extendedRows+1)/2)
	for row := uint32(0); row < extendedRows; row += 2 {
		rows = append(rows, row)
	}
	total := len(rows)
	if total == 0 {
		return
	}

	var fetched int
	for _, payload := range c.sampler.FetchRows(ctx, blk.Number, *blk.Dimensions, rows) {
		if payload != nil {
			fetched++
		}
	}

	successRate := float64(fetched) / float64(total)
	log.Infow("fetched block rows",
		"block", blk.Number,
		"total", total,
		"fetched", fetched,
		"success_rate", successRate,
	)
	c.record(ctx, RowsSuccessRate(successRate))
}

// forward publishes the verified block downstream. A failed send means
// nobody is listening right now; the block is dropped and crawling
// continues.
func (c *Crawler) forward(blk *block.Verified) {
	if err := c.blocks.Broadcast(blk); err != nil {
		log.Errorw("cannot forward verified block", "block", blk.Number, "err", err)
	}
}
