package block

import (
	"errors"
	"fmt"
)

// ErrNilHeader is returned when a nil header is offered for verification.
var ErrNilHeader = errors.New("block: nil header")

// ErrInvalidHashLength is returned when a decoded hash is not 32 bytes long.
type ErrInvalidHashLength struct {
	Length int
}

func (e *ErrInvalidHashLength) Error() string {
	return fmt.Sprintf("block: hash must be 32 bytes, got %d", e.Length)
}

// ErrInvalidDimensions is returned when a header extension declares an empty
// or otherwise unusable matrix.
type ErrInvalidDimensions struct {
	Height     uint32
	Rows, Cols uint16
}

func (e *ErrInvalidDimensions) Error() string {
	return fmt.Sprintf("block: header at height %d has invalid matrix dimensions %dx%d",
		e.Height, e.Rows, e.Cols)
}

// ErrCommitmentCount is returned when the number of per-row commitments does
// not match the extended row count declared by the header.
type ErrCommitmentCount struct {
	Height    uint32
	Want, Got int
}

func (e *ErrCommitmentCount) Error() string {
	return fmt.Sprintf("block: header at height %d carries %d row commitments, expected %d",
		e.Height, e.Got, e.Want)
}

// ErrCommitmentSize is returned when a single row commitment has the wrong
// byte length.
type ErrCommitmentSize struct {
	Height uint32
	Index  int
	Size   int
}

func (e *ErrCommitmentSize) Error() string {
	return fmt.Sprintf("block: header at height %d has a %d-byte commitment at row %d, expected %d bytes",
		e.Height, e.Size, e.Index, CommitmentSize)
}
