package footballdata_http

import (
	"context"
	"sync"

	"github.com/charleschow/draw-progression/internal/config"
	"github.com/charleschow/draw-progression/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

type MirrorSummary struct {
	Downloaded int
	Existing   int
	NotFound   int
	Failed     int
}

// Mirror fetches every configured (country, league, season). Individual
// failures are logged and counted; only ctx cancellation aborts.
func (c *Client) Mirror(ctx context.Context, leagues config.Leagues, force bool, workers int) (MirrorSummary, error) {
	if workers < 1 {
		workers = 1
	}
	var (
		mu  sync.Mutex
		sum MirrorSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, country := range leagues.Countries {
		for _, code := range country.Leagues {
			for _, season := range leagues.SeasonLabels() {
				country, code, season := country, code, season
				g.Go(func() error {
					status, err := c.Fetch(gctx, country.Name, code, season, force)
					if ctxErr := gctx.Err(); ctxErr != nil {
						return ctxErr
					}
					mu.Lock()
					defer mu.Unlock()
					if err != nil {
						telemetry.Warnf("download %s/%s/%s: %v", country.Name, code, season, err)
						sum.Failed++
						return nil
					}
					switch status {
					case Downloaded:
						sum.Downloaded++
					case Existing:
						sum.Existing++
					case NotFound:
						sum.NotFound++
					}
					return nil
				})
			}
		}
	}
	err := g.Wait()
	return sum, err
}
