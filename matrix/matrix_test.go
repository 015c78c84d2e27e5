package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDimensions(t *testing.T) {
	dims, err := NewDimensions(5, 4)
	require.NoError(t, err)
	assert.Equal(t, uint16(5), dims.Rows())
	assert.Equal(t, uint16(4), dims.Cols())
	assert.Equal(t, uint32(10), dims.ExtendedRows())
	assert.Equal(t, uint32(40), dims.ExtendedSize())

	_, err = NewDimensions(0, 4)
	require.Error(t, err)
	_, err = NewDimensions(5, 0)
	require.Error(t, err)
}

func TestExtendedPartitionPositions_EntireBlock(t *testing.T) {
	dims, err := NewDimensions(5, 4)
	require.NoError(t, err)

	positions := dims.ExtendedPartitionPositions(EntireBlock)
	require.Len(t, positions, 40)

	// row-major enumeration starts in the top-left corner
	assert.Equal(t, Position{Row: 0, Col: 0}, positions[0])
	assert.Equal(t, Position{Row: 0, Col: 3}, positions[3])
	assert.Equal(t, Position{Row: 1, Col: 0}, positions[4])
	assert.Equal(t, Position{Row: 9, Col: 3}, positions[39])
}

func TestExtendedPartitionPositions_Deterministic(t *testing.T) {
	dims, err := NewDimensions(8, 16)
	require.NoError(t, err)

	p := Partition{Number: 3, Fraction: 7}
	first := dims.ExtendedPartitionPositions(p)
	second := dims.ExtendedPartitionPositions(p)
	assert.Equal(t, first, second)
}

// Slices of any fraction must be pairwise disjoint and together cover
// exactly the entire-block enumeration.
func TestExtendedPartitionPositions_DisjointAndCovering(t *testing.T) {
	dims, err := NewDimensions(3, 7)
	require.NoError(t, err)

	whole := dims.ExtendedPartitionPositions(EntireBlock)
	require.Len(t, whole, int(dims.ExtendedSize()))

	for fraction := uint8(1); fraction <= 10; fraction++ {
		seen := make(map[Position]struct{})
		var combined []Position
		for number := uint8(1); number <= fraction; number++ {
			slice := dims.ExtendedPartitionPositions(Partition{Number: number, Fraction: fraction})
			for _, pos := range slice {
				_, dup := seen[pos]
				require.False(t, dup, "fraction %d: position %s enumerated twice", fraction, pos)
				seen[pos] = struct{}{}
			}
			combined = append(combined, slice...)
		}
		assert.Equal(t, whole, combined, "fraction %d does not cover the matrix", fraction)
	}
}

// A partition slice past the end of a small matrix is legitimately empty.
func TestExtendedPartitionPositions_EmptySlice(t *testing.T) {
	dims, err := NewDimensions(1, 1)
	require.NoError(t, err)
	require.Equal(t, uint32(2), dims.ExtendedSize())

	assert.Empty(t, dims.ExtendedPartitionPositions(Partition{Number: 3, Fraction: 3}))
	assert.Len(t, dims.ExtendedPartitionPositions(Partition{Number: 1, Fraction: 3}), 1)
}

func TestPartitionValidate(t *testing.T) {
	assert.NoError(t, EntireBlock.Validate())
	assert.NoError(t, Partition{Number: 2, Fraction: 20}.Validate())
	assert.Error(t, Partition{Number: 0, Fraction: 1}.Validate())
	assert.Error(t, Partition{Number: 2, Fraction: 1}.Validate())
	assert.Error(t, Partition{Number: 0, Fraction: 0}.Validate())
}

func TestParsePartition(t *testing.T) {
	p, err := ParsePartition("2/20")
	require.NoError(t, err)
	assert.Equal(t, Partition{Number: 2, Fraction: 20}, p)
	assert.Equal(t, "2/20", p.String())

	_, err = ParsePartition("2")
	assert.Error(t, err)
	_, err = ParsePartition("a/b")
	assert.Error(t, err)
	_, err = ParsePartition("5/2")
	assert.Error(t, err)
}

func TestPartitionTextRoundTrip(t *testing.T) {
	p := Partition{Number: 7, Fraction: 9}
	text, err := p.MarshalText()
	require.NoError(t, err)

	var got Partition
	require.NoError(t, got.UnmarshalText(text))
	assert.Equal(t, p, got)
}
