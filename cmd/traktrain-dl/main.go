package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/xaxaxzaazax/traktrain-downloader/internal/config"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/download"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/httpx"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/traktrain"
)

func main() {
	logger := log.New(os.Stderr)

	app := &cli.Command{
		Name:    "traktrain-dl",
		Usage:   "Download tracks from Traktrain pages",
		Version: "1.0.0",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (overrides config)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to TOML config file",
			},
			&cli.StringFlag{
				Name:  "page-type",
				Usage: "Force page type: auto, single, profile",
				Value: "auto",
			},
			&cli.BoolFlag{
				Name:    "playlist",
				Aliases: []string{"p"},
				Usage:   "Create playlist file",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Show verbose output",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Extract track info without downloading",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, logger)
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Warn("interrupted, cancelling")
		cancel()
	}()

	if err := app.Run(ctx, os.Args); err != nil {
		if ctx.Err() != nil {
			os.Exit(130)
		}
		logger.Fatalf("application error: %v", err)
	}
}

func run(ctx context.Context, cmd *cli.Command, logger *log.Logger) error {
	url := cmd.StringArg("url")
	if url == "" {
		return errors.New("a Traktrain URL is required; see --help")
	}

	if cmd.Bool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}

	settings := config.DefaultSettings()
	if path := cmd.String("config"); path != "" {
		var err error
		settings, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if output := cmd.String("output"); output != "" {
		settings.DownloadsPath = output
	}
	if cmd.Bool("playlist") {
		settings.CreatePlaylist = true
	}

	client := httpx.NewClient(settings.UserAgent)
	extractor := traktrain.NewExtractor(client, logger)

	pageType, err := resolvePageType(cmd.String("page-type"), url)
	if err != nil {
		return err
	}

	logger.Info("extracting", "url", url, "page_type", pageType)

	result, err := traktrain.FetchAndExtract(ctx, client, extractor, pageType, url)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}

	logger.Info("found tracks", "count", result.TrackCount(), "artist", result.Artist)
	for _, track := range result.Tracks {
		logger.Debug("track", "name", track.Name, "url", track.URL)
	}

	if cmd.Bool("dry-run") {
		for _, track := range result.Tracks {
			fmt.Printf("%s - %s\n\t%s\n", track.Artist, track.Name, track.URL)
		}
		return nil
	}

	verbose := cmd.Bool("verbose")
	manager := download.NewManager(settings, logger, func(event download.ProgressEvent) {
		if event.Message == "" {
			return
		}
		switch event.Level {
		case download.LevelError:
			logger.Error(event.Message)
		case download.LevelWarning:
			logger.Warn(event.Message)
		case download.LevelVerbose:
			if verbose {
				logger.Info(event.Message)
			}
		default:
			logger.Info(event.Message)
		}
	})

	summary, err := manager.Run(ctx, result)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("download: %w", err)
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d track(s) failed", summary.Failed, result.TrackCount())
	}
	return nil
}

// resolvePageType maps the --page-type flag to a PageType, falling back to
// URL-shape detection for "auto".
func resolvePageType(flag, url string) (traktrain.PageType, error) {
	switch flag {
	case "auto", "":
		return traktrain.GuessPageType(url), nil
	case "single":
		return traktrain.PageSingle, nil
	case "profile":
		return traktrain.PageProfile, nil
	default:
		return 0, fmt.Errorf("unknown page type %q (want auto, single, or profile)", flag)
	}
}
