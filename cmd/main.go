package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/NCATS-Gamma/hashkache/internal/config"
	"github.com/NCATS-Gamma/hashkache/internal/hashid"
	"github.com/NCATS-Gamma/hashkache/internal/hashkache"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "hashkache",
		Usage: "Encode numeric IDs as short reversible hashes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (yaml, toml or json)",
				EnvVars: []string{"HASHKACHE_CONFIG"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serve,
			},
			{
				Name:      "encode",
				Usage:     "Encode one or more IDs into a single hash",
				ArgsUsage: "<id>...",
				Flags:     []cli.Flag{connectionFlag()},
				Action:    encode,
			},
			{
				Name:      "decode",
				Usage:     "Decode a hash back into its IDs",
				ArgsUsage: "<hash>",
				Flags:     []cli.Flag{connectionFlag()},
				Action:    decode,
			},
		},
	}
}

func connectionFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "connection",
		Usage: "Named connection to use (defaults to the configured default)",
	}
}

func loadConnections(c *cli.Context) (*config.Config, *hashkache.Connections, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	codecs, err := cfg.Codecs()
	if err != nil {
		return nil, nil, err
	}
	conns, err := hashkache.NewConnections(cfg.Default, codecs)
	if err != nil {
		return nil, nil, err
	}
	return cfg, conns, nil
}

func serve(c *cli.Context) error {
	cfg, conns, err := loadConnections(c)
	if err != nil {
		return err
	}
	hashkache.SetupLogging(cfg.Server.Debug)

	r := hashkache.SetupRouter(conns, cfg.Server.CORSOrigins)
	hashkache.AddGUI(r)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: r,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithFields(log.Fields{"error": err}).Warn("HTTP shutdown")
		}
	}()

	log.WithFields(log.Fields{"addr": cfg.Server.Addr}).Info("HTTP server listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func encode(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("encode needs at least one id", 2)
	}
	_, conns, err := loadConnections(c)
	if err != nil {
		return err
	}
	codec, err := conns.Get(c.String("connection"))
	if err != nil {
		return err
	}

	ids := make([]int64, 0, c.NArg())
	for _, raw := range c.Args().Slice() {
		id, err := hashid.ParseID(raw)
		if err != nil {
			return cli.Exit(red(err.Error()), 1)
		}
		ids = append(ids, id)
	}
	hash, err := codec.Encode(ids...)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, green(hash))
	return nil
}

func decode(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("decode needs exactly one hash", 2)
	}
	_, conns, err := loadConnections(c)
	if err != nil {
		return err
	}
	codec, err := conns.Get(c.String("connection"))
	if err != nil {
		return err
	}

	ids := codec.Decode(c.Args().First())
	if len(ids) == 0 {
		return cli.Exit(red("Invalid or corrupted hash"), 1)
	}
	for _, id := range ids {
		fmt.Fprintln(c.App.Writer, green(id))
	}
	return nil
}
