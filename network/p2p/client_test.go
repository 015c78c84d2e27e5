package p2p

import (
	"context"
	"testing"
	"time"

	"github.com/libp2p/go-libp2p/core/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/availproject/avail-crawler/matrix"
)

// mapValueStore serves lookups from a fixed key set.
type mapValueStore struct {
	values map[string][]byte
}

func (m *mapValueStore) GetValue(_ context.Context, key string, _ ...routing.Option) ([]byte, error) {
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return nil, routing.ErrNotFound
}

func (m *mapValueStore) PutValue(_ context.Context, key string, value []byte, _ ...routing.Option) error {
	m.values[key] = value
	return nil
}

func (m *mapValueStore) SearchValue(ctx context.Context, key string, _ ...routing.Option) (<-chan []byte, error) {
	ch := make(chan []byte, 1)
	if v, ok := m.values[key]; ok {
		ch <- v
	}
	close(ch)
	return ch, nil
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "/avail-cell/100:9:3", cellKey(100, matrix.Position{Row: 9, Col: 3}))
	assert.Equal(t, "/avail-row/100:8", rowKey(100, 8))
}

func TestFetchCells(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)

	dims, err := matrix.NewDimensions(2, 2)
	require.NoError(t, err)
	positions := dims.ExtendedPartitionPositions(matrix.EntireBlock)
	require.Len(t, positions, 8)

	store := &mapValueStore{values: map[string][]byte{}}
	for _, pos := range positions[:5] {
		store.values[cellKey(7, pos)] = []byte{0x01}
	}

	client := NewClient(store, WithConcurrency(2))
	fetched := client.FetchCells(ctx, 7, positions)
	assert.Len(t, fetched, 5)
	for _, cell := range fetched {
		assert.NotNil(t, cell.Data)
	}
}

func TestFetchRows(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)

	dims, err := matrix.NewDimensions(2, 2)
	require.NoError(t, err)

	store := &mapValueStore{values: map[string][]byte{
		rowKey(7, 0): []byte{0xaa},
	}}

	client := NewClient(store)
	payloads := client.FetchRows(ctx, 7, dims, []uint32{0, 2})
	require.Len(t, payloads, 2)
	assert.NotNil(t, payloads[0])
	assert.Nil(t, payloads[1])
}
