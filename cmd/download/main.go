package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/charleschow/draw-progression/internal/adapters/outbound/footballdata_http"
	"github.com/charleschow/draw-progression/internal/config"
	"github.com/charleschow/draw-progression/internal/telemetry"
)

func main() {
	force := flag.Bool("force", false, "re-download files that already exist")
	workers := flag.Int("workers", 2, "concurrent downloads (still paced by DOWNLOAD_RATE_PER_SEC)")
	flag.Parse()

	cfg := config.Load()
	telemetry.Init(telemetry.ParseLogLevel(cfg.LogLevel))

	leagues, err := config.LoadLeagues(cfg.LeaguesConfigPath)
	if err != nil {
		telemetry.Errorf("Failed to load leagues config: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := footballdata_http.NewClient(cfg.DownloadBaseURL, cfg.DataDir, float64(cfg.DownloadRatePerSec))
	telemetry.Infof("Mirroring %s into %s  seasons=%d  force=%v", cfg.DownloadBaseURL, cfg.DataDir, leagues.SeasonCount, *force)

	sum, err := client.Mirror(ctx, leagues, *force, *workers)
	if err != nil {
		telemetry.Errorf("Download interrupted: %v", err)
	}
	telemetry.Infof("Download complete  downloaded=%d  existing=%d  not_found=%d  failed=%d",
		sum.Downloaded, sum.Existing, sum.NotFound, sum.Failed)
	if err != nil || sum.Failed > 0 {
		os.Exit(1)
	}
}
