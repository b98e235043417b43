package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/caasmo/webjarcors"
	"github.com/caasmo/webjarcors/config"
	"github.com/caasmo/webjarcors/server"
	"github.com/caasmo/webjarcors/webjars"
)

var (
	ErrLoadConfig    = errors.New("failed to load config")
	ErrInitApp       = errors.New("failed to initialize application")
	ErrAssetNotFound = errors.New("asset not found under webjars root")
)

// Globals are shared by every command.
type Globals struct {
	Config string `short:"c" type:"path" env:"WEBJARCORS_CONFIG" help:"Path to the TOML config file."`

	out io.Writer `kong:"-"`
}

func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	return cfg, nil
}

type CLI struct {
	Globals

	Serve      ServeCmd      `cmd:"" default:"1" help:"Serve webjars assets over HTTP."`
	Resolve    ResolveCmd    `cmd:"" help:"Show how a request path maps to a webjars asset."`
	DumpConfig DumpConfigCmd `cmd:"" name:"dump-config" help:"Print the effective configuration as TOML."`
}

type ServeCmd struct{}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	app, srv, err := webjarcors.New(cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInitApp, err)
	}
	defer app.Close()

	ctx, stop := server.SignalContext(context.Background())
	defer stop()
	return srv.Run(ctx)
}

type ResolveCmd struct {
	Path string `arg:"" help:"Request path, e.g. /webjars/momentjs/2.0.0/moment.js."`
}

func (c *ResolveCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	ref, err := webjars.NewResolver(cfg.Webjars.Prefix).Resolve(c.Path)
	if err != nil {
		return err
	}

	app, _, err := webjarcors.New(cfg, webjarcors.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInitApp, err)
	}
	defer app.Close()
	chain, err := app.Dispatcher().Chain(ref.Type())
	if err != nil {
		return err
	}

	file := filepath.Join(cfg.Webjars.Root, filepath.FromSlash(ref.AssetPath()))
	fmt.Fprintf(g.out, "namespace: %s\nversion:   %s\npath:      %s\nfile:      %s\nchain:     %s\n",
		ref.Namespace, ref.Version, ref.Path, file, strings.Join(chain.Names(), " -> "))

	info, err := os.Stat(file)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, file)
	}
	return err
}

type DumpConfigCmd struct{}

func (c *DumpConfigCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = g.out.Write(data)
	return err
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, output io.Writer) error {
	var cli CLI
	cli.out = output

	parser, err := kong.New(&cli,
		kong.Name("webjarcors"),
		kong.Description("Serves versioned webjars assets with a permissive Access-Control-Allow-Origin header."),
		kong.Writers(output, output),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	return ctx.Run(&cli.Globals)
}
