package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/mbta-board/board"
	"github.com/theoremus-urban-solutions/mbta-board/config"
	"github.com/theoremus-urban-solutions/mbta-board/display"
	"github.com/theoremus-urban-solutions/mbta-board/gtfsrt"
	"github.com/theoremus-urban-solutions/mbta-board/internal"
	"github.com/theoremus-urban-solutions/mbta-board/mbta"
	"github.com/theoremus-urban-solutions/mbta-board/poller"
)

var rootCmd = &cobra.Command{
	Use:          "mbta-board",
	Short:        "Shows the next MBTA arrivals for configured route/stop pairs",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         run,
}

var (
	displayName string
	configPath  string
	sourceName  string
	once        bool
)

func init() {
	rootCmd.Flags().StringVarP(&displayName, "display", "d", "stdout", "Output surface: stdout|pillow|pi|redis|amqp")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default config.yml or ./config/config.yml)")
	rootCmd.Flags().StringVar(&sourceName, "source", "", "Prediction source: api|gtfsrt (overrides config)")
	rootCmd.Flags().BoolVar(&once, "once", false, "Show every board once and exit")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	internal.InitLogging()

	cfg, err := config.LoadAppConfig(configPath)
	if err != nil {
		return err
	}
	if sourceName != "" {
		cfg.Source = sourceName
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}

	sink, err := display.DefaultRegistry(cfg, cmd.OutOrStdout()).Lookup(displayName)
	if err != nil {
		return err
	}
	if err := sink.Open(); err != nil {
		return fmt.Errorf("open %s display: %w", displayName, err)
	}
	defer func() {
		if err := sink.Close(); err != nil {
			log.Printf("Close %s display: %v", displayName, err)
		}
	}()

	loop := &poller.Loop{
		Builder:  board.NewBuilder(src),
		Sink:     sink,
		Pairs:    cfg.Boards,
		Interval: cfg.PollInterval(),
	}
	log.Printf("Starting: source=%s display=%s boards=%d interval=%s", cfg.Source, displayName, len(cfg.Boards), cfg.PollInterval())
	if once {
		return loop.RunOnce(ctx)
	}
	err = loop.Run(ctx)
	log.Printf("Shutting down")
	return err
}

func newSource(ctx context.Context, cfg config.AppConfig) (board.Source, error) {
	switch cfg.Source {
	case config.SourceGTFSRT:
		src, err := gtfsrt.NewSource(ctx, gtfsrt.NewClient(cfg.APITimeout()),
			cfg.GTFS.StaticURL, cfg.GTFSRT.TripUpdatesURL, cfg.GTFSRT.VehiclePositionsURL)
		if err != nil {
			return nil, err
		}
		src.Debug = cfg.Logging.Debug
		return src, nil
	default:
		c := mbta.NewClient(cfg.API.BaseURL, cfg.API.Key, cfg.APITimeout())
		c.Debug = cfg.Logging.Debug
		return c, nil
	}
}
