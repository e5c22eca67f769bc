package footballdata_http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charleschow/draw-progression/internal/adapters/inbound/footballdata"
	"github.com/charleschow/draw-progression/internal/core/match"
	"github.com/charleschow/draw-progression/internal/telemetry"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

type Status int

const (
	Downloaded Status = iota
	Existing
	NotFound
)

func (s Status) String() string {
	switch s {
	case Downloaded:
		return "downloaded"
	case Existing:
		return "existing"
	}
	return "not_found"
}

// Client mirrors football-data.co.uk season files into the on-disk layout
// read by footballdata.FileProvider.
type Client struct {
	baseURL    string
	dataDir    string
	httpClient *http.Client
	limiter    *rate.Limiter
	sfGroup    singleflight.Group
}

func NewClient(baseURL, dataDir string, perSecond float64) *Client {
	if perSecond <= 0 {
		perSecond = 1
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		dataDir: dataDir,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// URL returns <base>/mmz4281/<yyYY>/<code>.csv for a "YYYY-YYYY" season.
func (c *Client) URL(league, season string) (string, error) {
	code, err := match.SeasonCode(season)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/mmz4281/%s/%s.csv", c.baseURL, code, league), nil
}

// Fetch downloads one season file unless it already exists (or force is
// set). A 404 is reported as NotFound, not as an error. Concurrent calls
// for the same file share one request.
func (c *Client) Fetch(ctx context.Context, country, league, season string, force bool) (Status, error) {
	path := footballdata.Path(c.dataDir, country, league, season)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return Existing, nil
		}
	}

	v, err, _ := c.sfGroup.Do(path, func() (any, error) {
		return c.download(ctx, league, season, path)
	})
	if err != nil {
		return NotFound, err
	}
	return v.(Status), nil
}

func (c *Client) download(ctx context.Context, league, season, path string) (Status, error) {
	url, err := c.URL(league, season)
	if err != nil {
		return NotFound, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return NotFound, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return NotFound, fmt.Errorf("new request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NotFound, fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	telemetry.Debugf("footballdata_http: GET %s -> %d (%s)", url, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusNotFound {
		telemetry.Metrics.DownloadMisses.Inc()
		telemetry.Warnf("footballdata_http: no file for %s %s (%s)", league, season, url)
		return NotFound, nil
	}
	if resp.StatusCode != http.StatusOK {
		return NotFound, fmt.Errorf("GET %s: status=%d", url, resp.StatusCode)
	}

	if err := writeAtomic(path, resp.Body); err != nil {
		return NotFound, err
	}
	telemetry.Metrics.Downloads.Inc()
	telemetry.Infof("footballdata_http: saved %s", path)
	return Downloaded, nil
}

// writeAtomic writes to a temp file in the target directory and renames it
// into place so readers never see a partial file.
func writeAtomic(path string, r io.Reader) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}
