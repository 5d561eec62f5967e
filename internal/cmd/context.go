package cmd

import (
	"context"
	"io"
	"time"

	"github.com/jimezsa/opptrack/internal/config"
	"github.com/jimezsa/opptrack/internal/extract"
	"github.com/jimezsa/opptrack/internal/kv"
	"github.com/jimezsa/opptrack/internal/network"
	"github.com/jimezsa/opptrack/internal/tracker"
	"github.com/jimezsa/opptrack/internal/ui"
	"github.com/rs/zerolog"
)

const proxyBenchDuration = 5 * time.Minute

// NewContext loads configuration and builds the run context for the parsed
// global flags.
func NewContext(cli *CLI, version string, out io.Writer, errOut io.Writer) (*Context, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	configDir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}

	colorMode := ui.NormalizeColorMode(cli.Color)
	level := zerolog.InfoLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	return &Context{
		Out:        out,
		Err:        errOut,
		UI:         ui.New(out, errOut, colorMode, cli.JSON || cli.Plain),
		Config:     cfg,
		ConfigDir:  configDir,
		Logger:     zerolog.New(errOut).With().Timestamp().Logger(),
		Verbose:    cli.Verbose,
		JSONOutput: cli.JSON,
		PlainText:  cli.Plain,
		Version:    version,
		ColorMode:  colorMode,
	}, nil
}

type Context struct {
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Verbose    bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode

	// Store and Fetcher replace the configured store and read-proxy client
	// when set. Now replaces the wall clock.
	Store   kv.Store
	Fetcher extract.HTMLFetcher
	Now     func() time.Time
}

func (c *Context) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// openService opens the configured store and wraps it in a tracker
// service. The returned func closes a store opened here.
func (c *Context) openService(ctx context.Context) (*tracker.Service, func(), error) {
	store := c.Store
	closeStore := func() {}
	if store == nil {
		dsn, err := c.Config.StoreDSN()
		if err != nil {
			return nil, nil, err
		}
		opened, err := kv.Open(ctx, dsn, c.Logger)
		if err != nil {
			return nil, nil, err
		}
		store = opened
		closeStore = func() {
			if err := opened.Close(); err != nil {
				c.Logger.Warn().Err(err).Msg("closing store")
			}
		}
	}

	repo := tracker.NewRepository(store, c.Config.KeyPrefix, c.Logger)
	return tracker.NewService(repo, c.Logger), closeStore, nil
}

// loadState opens the store and loads the signed-in user's state.
func (c *Context) loadState(ctx context.Context) (*tracker.Service, tracker.State, func(), error) {
	svc, closeStore, err := c.openService(ctx)
	if err != nil {
		return nil, tracker.State{}, nil, err
	}
	state, err := svc.Load(ctx)
	if err != nil {
		closeStore()
		return nil, tracker.State{}, nil, err
	}
	return svc, state, closeStore, nil
}

// newLookup builds a metadata lookup over the read proxy, rotating through
// upstream proxies when any are configured.
func (c *Context) newLookup(proxiesFlag string) (*extract.Lookup, error) {
	if c.Fetcher != nil {
		return extract.NewLookup(c.Fetcher, c.Logger), nil
	}

	proxies, err := config.LoadProxies(proxiesFlag)
	if err != nil {
		return nil, err
	}
	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, proxyBenchDuration)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug().Int("proxies", rotator.Len()).Msg("rotating upstream proxies")
	}

	client, err := network.NewClient(network.Options{
		ProxyBase: c.Config.ProxyBase,
		Timeout:   c.Config.FetchTimeout(),
		Rotator:   rotator,
	})
	if err != nil {
		return nil, err
	}
	return extract.NewLookup(client, c.Logger), nil
}

func (c *Context) background() context.Context {
	return context.Background()
}
