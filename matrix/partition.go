package matrix

import (
	"fmt"
	"strconv"
	"strings"
)

// Partition identifies the Number-th of Fraction equal slices of a block's
// extended matrix, e.g. 2/20 is the second twentieth of the matrix.
type Partition struct {
	Number   uint8
	Fraction uint8
}

// EntireBlock is the sentinel partition covering the whole extended matrix.
var EntireBlock = Partition{Number: 1, Fraction: 1}

func (p Partition) Validate() error {
	if p.Fraction < 1 {
		return fmt.Errorf("matrix: partition fraction must be at least 1, got %d", p.Fraction)
	}
	if p.Number < 1 || p.Number > p.Fraction {
		return fmt.Errorf("matrix: partition number must be in [1, %d], got %d", p.Fraction, p.Number)
	}
	return nil
}

func (p Partition) String() string {
	return fmt.Sprintf("%d/%d", p.Number, p.Fraction)
}

// ParsePartition parses a partition from its "N/F" form.
func ParsePartition(s string) (Partition, error) {
	number, fraction, found := strings.Cut(s, "/")
	if !found {
		return Partition{}, fmt.Errorf("matrix: partition must have the N/F form, got %q", s)
	}

	n, err := strconv.ParseUint(strings.TrimSpace(number), 10, 8)
	if err != nil {
		return Partition{}, fmt.Errorf("matrix: parsing partition number: %w", err)
	}
	f, err := strconv.ParseUint(strings.TrimSpace(fraction), 10, 8)
	if err != nil {
		return Partition{}, fmt.Errorf("matrix: parsing partition fraction: %w", err)
	}

	p := Partition{Number: uint8(n), Fraction: uint8(f)}
	return p, p.Validate()
}

// MarshalText implements encoding.TextMarshaler so partitions render as
// "N/F" in TOML configs.
func (p Partition) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Partition) UnmarshalText(text []byte) error {
	parsed, err := ParsePartition(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
