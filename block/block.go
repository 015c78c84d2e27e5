// Package block defines the header types flowing into the crawler and the
// verified block representation it produces and forwards downstream.
package block

import (
	"encoding/hex"
	"strings"

	"github.com/availproject/avail-crawler/matrix"
)

// CommitmentSize is the byte length of a single per-row KZG commitment
// carried by the header extension.
const CommitmentSize = 48

// Hash is a 32-byte block hash.
type Hash [32]byte

func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}

// MarshalText renders the hash as a 0x-prefixed hex string.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText parses a 0x-prefixed hex string.
func (h *Hash) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(b) != len(h) {
		return &ErrInvalidHashLength{Length: len(b)}
	}
	copy(h[:], b)
	return nil
}

// Extension is the erasure-coding commitment a header carries when its block
// holds data. Headers of empty blocks have no extension.
type Extension struct {
	Rows        uint16   `json:"rows"`
	Cols        uint16   `json:"cols"`
	Commitments [][]byte `json:"commitments"`
}

// RawHeader is a finalized block header as delivered by the chain's RPC
// subscription, not yet validated by this process.
type RawHeader struct {
	Number     uint32     `json:"number"`
	Hash       Hash       `json:"hash"`
	ParentHash Hash       `json:"parentHash"`
	StateRoot  Hash       `json:"stateRoot"`
	Extension  *Extension `json:"extension,omitempty"`
}

// Verified is a validated block ready for sampling and downstream
// consumption. Dimensions is nil for blocks without an erasure-coded
// payload; such blocks carry nothing to sample.
type Verified struct {
	Number      uint32
	Hash        Hash
	Dimensions  *matrix.Dimensions
	Commitments [][]byte
}

// HasExtension reports whether the block carries an erasure-coded payload.
func (b *Verified) HasExtension() bool {
	return b.Dimensions != nil
}

// NewVerified validates a raw header into a Verified block. Headers without
// an extension produce a valid block with nil Dimensions. Malformed headers
// are rejected with a structured error describing the offending shape.
func NewVerified(h *RawHeader) (*Verified, error) {
	if h == nil {
		return nil, ErrNilHeader
	}

	v := &Verified{
		Number: h.Number,
		Hash:   h.Hash,
	}
	if h.Extension == nil {
		return v, nil
	}

	dims, err := matrix.NewDimensions(h.Extension.Rows, h.Extension.Cols)
	if err != nil {
		return nil, &ErrInvalidDimensions{
			Height: h.Number,
			Rows:   h.Extension.Rows,
			Cols:   h.Extension.Cols,
		}
	}

	if got, want := len(h.Extension.Commitments), int(dims.ExtendedRows()); got != want {
		return nil, &ErrCommitmentCount{Height: h.Number, Want: want, Got: got}
	}
	for i, commitment := range h.Extension.Commitments {
		if len(commitment) != CommitmentSize {
			return nil, &ErrCommitmentSize{Height: h.Number, Index: i, Size: len(commitment)}
		}
	}

	v.Dimensions = &dims
	v.Commitments = h.Extension.Commitments
	return v, nil
}
