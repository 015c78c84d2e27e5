package crawler

import "fmt"

// Mode selects which sampling strategies run for a block.
type Mode string

const (
	// ModeCells samples individual cells of the extended matrix.
	ModeCells Mode = "cells"
	// ModeRows samples every second extended row.
	ModeRows Mode = "rows"
	// ModeBoth runs both strategies.
	ModeBoth Mode = "both"
)

func (m Mode) Validate() error {
	switch m {
	case ModeCells, ModeRows, ModeBoth:
		return nil
	default:
		return fmt.Errorf("crawler: unknown mode %q, expected one of cells, rows, both", m)
	}
}

// SamplesCells reports whether cell sampling runs in this mode.
func (m Mode) SamplesCells() bool {
	return m == ModeCells || m == ModeBoth
}

// SamplesRows reports whether row sampling runs in this mode.
func (m Mode) SamplesRows() bool {
	return m == ModeRows || m == ModeBoth
}

func (m Mode) String() string {
	return string(m)
}
