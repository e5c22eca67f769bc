package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Match data layout: <DataDir>/<YYYY-YYYY>/<Country>/<code>.csv
	DataDir string

	// Outputs
	OutputDir     string
	ResultsDBPath string

	// Runs kept in the results database; older runs are pruned after each run.
	ResultsKeepRuns int

	// League/season/staking configuration (YAML). Empty = embedded default.
	LeaguesConfigPath string

	// Number of leagues processed concurrently.
	Workers int

	// football-data.co.uk mirror
	DownloadBaseURL    string
	DownloadRatePerSec int

	// Optional run summary notification
	DiscordWebhookURL string

	// Telemetry
	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DataDir: envStr("DATA_DIR", "data/football"),

		OutputDir:     envStr("OUTPUT_DIR", "data/results"),
		ResultsDBPath: envStr("RESULTS_DB_PATH", "data/results/draw_progression.db"),

		ResultsKeepRuns: envInt("RESULTS_KEEP_RUNS", 20),

		LeaguesConfigPath: envStr("LEAGUES_CONFIG_PATH", ""),

		Workers: envInt("WORKERS", 4),

		DownloadBaseURL:    envStr("DOWNLOAD_BASE_URL", "https://www.football-data.co.uk"),
		DownloadRatePerSec: envInt("DOWNLOAD_RATE_PER_SEC", 2),

		DiscordWebhookURL: envStr("DISCORD_WEBHOOK_URL", ""),

		LogLevel: envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
