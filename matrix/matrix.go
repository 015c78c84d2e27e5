// Package matrix models the layout of a block's erasure-coded data matrix:
// its dimensions, addressable cell positions and partitioning into equal
// slices for sampling.
package matrix

import "fmt"

// ExtensionFactor is the ratio between extended and original matrix rows.
// Every original row is erasure-coded into one additional parity row.
const ExtensionFactor = 2

// Position addresses a single cell of the extended matrix.
type Position struct {
	Row uint32
	Col uint16
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Dimensions describe the original (non-extended) data matrix of a block.
type Dimensions struct {
	rows uint16
	cols uint16
}

// NewDimensions constructs Dimensions, rejecting empty matrices.
func NewDimensions(rows, cols uint16) (Dimensions, error) {
	if rows == 0 || cols == 0 {
		return Dimensions{}, fmt.Errorf("matrix: zero dimensions: %dx%d", rows, cols)
	}
	return Dimensions{rows: rows, cols: cols}, nil
}

func (d Dimensions) Rows() uint16 { return d.rows }

func (d Dimensions) Cols() uint16 { return d.cols }

// ExtendedRows returns the row count of the erasure-coded matrix.
func (d Dimensions) ExtendedRows() uint32 {
	return uint32(d.rows) * ExtensionFactor
}

// ExtendedSize returns the total cell count of the erasure-coded matrix.
func (d Dimensions) ExtendedSize() uint32 {
	return d.ExtendedRows() * uint32(d.cols)
}

// position maps a flat row-major index over the extended matrix to a Position.
func (d Dimensions) position(i uint32) Position {
	return Position{
		Row: i / uint32(d.cols),
		Col: uint16(i % uint32(d.cols)),
	}
}

// ExtendedPartitionPositions enumerates the cell positions of the given
// partition slice of the extended matrix. The extended matrix is divided
// row-major into Fraction contiguous slices of equal (ceil-divided) size and
// the Number-th slice is returned. The enumeration is a pure function of
// dimensions and partition, so it is reproducible across runs.
//
// Slices are pairwise disjoint and together cover the whole matrix; the last
// slices may be shorter or empty when the matrix does not divide evenly.
func (d Dimensions) ExtendedPartitionPositions(p Partition) []Position {
	total := d.ExtendedSize()
	size := (total + uint32(p.Fraction) - 1) / uint32(p.Fraction)

	start := size * uint32(p.Number-1)
	end := size * uint32(p.Number)
	if end > total {
		end = total
	}
	if start >= end {
		return nil
	}

	positions := make([]Position, 0, end-start)
	for i := start; i < end; i++ {
		positions = append(positions, d.position(i))
	}
	return positions
}
