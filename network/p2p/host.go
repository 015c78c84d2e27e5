package p2p

import (
	"context"
	"fmt"

	"github.com/ipfs/go-datastore"
	dssync "github.com/ipfs/go-datastore/sync"
	"github.com/libp2p/go-libp2p"
	dht "github.com/libp2p/go-libp2p-kad-dht"
	record "github.com/libp2p/go-libp2p-record"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	"github.com/libp2p/go-libp2p/core/protocol"
	ma "github.com/multiformats/go-multiaddr"
)

// Config combines all configuration fields for the P2P subsystem.
type Config struct {
	// ListenAddresses - Addresses to listen to on local NIC.
	ListenAddresses []string
	// Bootstrappers are peers used to enter the DHT.
	Bootstrappers []string
	// ProtocolPrefix namespaces the DHT so crawlers of different networks
	// do not mix routing tables.
	ProtocolPrefix string
	// Concurrency bounds parallel DHT lookups per sampling call.
	Concurrency int
}

// DefaultConfig returns default configuration for the P2P subsystem.
func DefaultConfig() Config {
	return Config{
		ListenAddresses: []string{
			"/ip4/0.0.0.0/tcp/37000",
			"/ip6/::/tcp/37000",
		},
		Bootstrappers:  []string{},
		ProtocolPrefix: "avail",
		Concurrency:    DefaultConcurrency,
	}
}

func (cfg *Config) Validate() error {
	if cfg.ProtocolPrefix == "" {
		return fmt.Errorf("p2p: protocol prefix must be set")
	}
	if cfg.Concurrency < 1 {
		return fmt.Errorf("p2p: concurrency must be positive, got %d", cfg.Concurrency)
	}
	_, err := cfg.bootstrappers()
	return err
}

func (cfg *Config) bootstrappers() (_ []peer.AddrInfo, err error) {
	maddrs := make([]ma.Multiaddr, len(cfg.Bootstrappers))
	for i, addr := range cfg.Bootstrappers {
		maddrs[i], err = ma.NewMultiaddr(addr)
		if err != nil {
			return nil, fmt.Errorf("p2p: parsing bootstrapper address %q: %w", addr, err)
		}
	}

	return peer.AddrInfosFromP2pAddrs(maddrs...)
}

// NewHost constructs a libp2p host listening on the configured addresses.
func NewHost(cfg Config) (host.Host, error) {
	return libp2p.New(
		libp2p.ListenAddrStrings(cfg.ListenAddresses...),
	)
}

// NewDHT constructs a client-mode Kademlia DHT for cell/row record lookups.
func NewDHT(ctx context.Context, h host.Host, cfg Config) (*dht.IpfsDHT, error) {
	bootstrappers, err := cfg.bootstrappers()
	if err != nil {
		return nil, err
	}

	opts := []dht.Option{
		dht.Mode(dht.ModeClient),
		dht.ProtocolPrefix(protocol.ID(fmt.Sprintf("/%s", cfg.ProtocolPrefix))),
		dht.BootstrapPeers(bootstrappers...),
		dht.Datastore(dssync.MutexWrap(datastore.NewMapDatastore())),
		// record contents are opaque to the crawler, presence is all that
		// is measured
		dht.NamespacedValidator(cellNamespace, blankValidator{}),
		dht.NamespacedValidator(rowNamespace, blankValidator{}),
	}

	return dht.New(ctx, h, opts...)
}

type blankValidator struct{}

func (blankValidator) Validate(string, []byte) error        { return nil }
func (blankValidator) Select(string, [][]byte) (int, error) { return 0, nil }

var _ record.Validator = blankValidator{}
