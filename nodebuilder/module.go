package nodebuilder

import (
	"context"

	dht "github.com/libp2p/go-libp2p-kad-dht"
	"github.com/libp2p/go-libp2p/core/host"
	"go.opentelemetry.io/otel"
	"go.uber.org/fx"

	"github.com/availproject/avail-crawler/block"
	"github.com/availproject/avail-crawler/crawler"
	"github.com/availproject/avail-crawler/libs/broadcast"
	"github.com/availproject/avail-crawler/network"
	"github.com/availproject/avail-crawler/network/p2p"
	"github.com/availproject/avail-crawler/rpc"
	"github.com/availproject/avail-crawler/telemetry"
)

const (
	eventStreamBuffer = 128
	blockStreamBuffer = 128
)

// ConstructModule wires all subsystem components into a single DI module.
func ConstructModule(cfg *Config) fx.Option {
	baseComponents := fx.Options(
		fx.Supply(cfg),
		fx.Error(cfg.Validate()),
		fx.Provide(func() *broadcast.Broadcaster[rpc.Event] {
			return broadcast.New[rpc.Event](eventStreamBuffer)
		}),
		fx.Provide(func() *broadcast.Broadcaster[*block.Verified] {
			return broadcast.New[*block.Verified](blockStreamBuffer)
		}),
		fx.Provide(newHost),
		fx.Provide(newDHT),
		fx.Provide(func(d *dht.IpfsDHT) network.Sampler {
			return p2p.NewClient(d, p2p.WithConcurrency(cfg.P2P.Concurrency))
		}),
		fx.Provide(newRPCClient),
		fx.Provide(fx.Annotate(
			func(client *rpc.Client, events *broadcast.Broadcaster[rpc.Event]) *rpc.Listener {
				return rpc.NewListener(client, events)
			},
			fx.OnStart(func(ctx context.Context, l *rpc.Listener) error {
				return l.Start(ctx)
			}),
			fx.OnStop(func(ctx context.Context, l *rpc.Listener) error {
				return l.Stop(ctx)
			}),
		)),
		fx.Provide(newMetrics),
	)

	if !cfg.Crawler.Enabled {
		return fx.Module("crawler", baseComponents)
	}

	return fx.Module("crawler",
		baseComponents,
		fx.Provide(fx.Annotate(
			newCrawler,
			fx.OnStart(func(ctx context.Context, c *crawler.Crawler) error {
				return c.Start(ctx)
			}),
			fx.OnStop(func(ctx context.Context, c *crawler.Crawler) error {
				return c.Stop(ctx)
			}),
		)),
	)
}

func newHost(lc fx.Lifecycle, cfg *Config) (host.Host, error) {
	h, err := p2p.NewHost(cfg.P2P)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return h.Close()
		},
	})
	return h, nil
}

func newDHT(lc fx.Lifecycle, cfg *Config, h host.Host) (*dht.IpfsDHT, error) {
	d, err := p2p.NewDHT(context.Background(), h, cfg.P2P)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: d.Bootstrap,
		OnStop: func(context.Context) error {
			return d.Close()
		},
	})
	return d, nil
}

func newRPCClient(lc fx.Lifecycle, cfg *Config) (*rpc.Client, error) {
	client, err := rpc.NewClient(context.Background(), cfg.RPC)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			client.Close()
			return nil
		},
	})
	return client, nil
}

// newMetrics sets up the OTLP export pipeline when telemetry is enabled and
// hands out the metrics sink the crawler records into.
func newMetrics(lc fx.Lifecycle, cfg *Config) (telemetry.Metrics, error) {
	if !cfg.Telemetry.Enabled {
		return telemetry.NoopMetrics(), nil
	}

	provider, err := telemetry.NewMeterProvider(context.Background(), cfg.Telemetry)
	if err != nil {
		return nil, err
	}
	otel.SetMeterProvider(provider)
	lc.Append(fx.Hook{
		OnStop: provider.Shutdown,
	})

	return telemetry.NewMetrics(cfg.Telemetry.Origin)
}

func newCrawler(
	cfg *Config,
	events *broadcast.Broadcaster[rpc.Event],
	sampler network.Sampler,
	metrics telemetry.Metrics,
	blocks *broadcast.Broadcaster[*block.Verified],
) (*crawler.Crawler, error) {
	return crawler.New(events, sampler, metrics, blocks,
		crawler.WithDelay(cfg.Crawler.Delay),
		crawler.WithMode(cfg.Crawler.Mode),
		crawler.WithPartition(cfg.Crawler.Partition),
		crawler.WithForwardEmptyBlocks(cfg.Crawler.ForwardEmptyBlocks),
	)
}
