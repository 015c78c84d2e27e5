package crawler

import (
	"fmt"
	"time"

	"github.com/availproject/avail-crawler/matrix"
)

// DefaultDelay is the default pacing margin between block receipt and
// sampling start. Increase it when crawling large blocks that take long to
// propagate.
const DefaultDelay = 20 * time.Second

// Parameters is the set of parameters that must be configured for the
// crawler.
type Parameters struct {
	// Enabled toggles the whole crawl loop.
	Enabled bool
	// Delay is the pacing margin between block receipt and sampling start.
	Delay time.Duration
	// Mode selects which sampling strategies run per block.
	Mode Mode
	// Partition is the slice of each block's extended matrix to sample.
	Partition matrix.Partition
	// ForwardEmptyBlocks forwards blocks without an extension downstream
	// even though they are never sampled.
	ForwardEmptyBlocks bool
}

// Option is a function that configures crawler Parameters.
type Option func(*Parameters)

// DefaultParameters returns the default configuration values for the
// crawler.
func DefaultParameters() Parameters {
	return Parameters{
		Enabled:            false,
		Delay:              DefaultDelay,
		Mode:               ModeCells,
		Partition:          matrix.EntireBlock,
		ForwardEmptyBlocks: false,
	}
}

// Validate validates the values in Parameters.
func (p *Parameters) Validate() error {
	if p.Delay < 0 {
		return fmt.Errorf("crawler: invalid option: Delay is negative (%s)", p.Delay)
	}
	if err := p.Mode.Validate(); err != nil {
		return err
	}
	return p.Partition.Validate()
}

// WithDelay overrides the pacing margin.
func WithDelay(delay time.Duration) Option {
	return func(p *Parameters) {
		p.Delay = delay
	}
}

// WithMode overrides the sampling mode.
func WithMode(mode Mode) Option {
	return func(p *Parameters) {
		p.Mode = mode
	}
}

// WithPartition overrides the sampled matrix partition.
func WithPartition(partition matrix.Partition) Option {
	return func(p *Parameters) {
		p.Partition = partition
	}
}

// WithForwardEmptyBlocks forwards blocks lacking an extension downstream.
func WithForwardEmptyBlocks(forward bool) Option {
	return func(p *Parameters) {
		p.ForwardEmptyBlocks = forward
	}
}
