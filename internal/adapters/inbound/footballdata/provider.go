package footballdata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charleschow/draw-progression/internal/core/match"
	"github.com/charleschow/draw-progression/internal/telemetry"
)

// Path returns where a season file lives under dataDir:
// <dataDir>/<YYYY-YYYY>/<Country>/<code>.csv
func Path(dataDir, country, league, season string) string {
	return filepath.Join(dataDir, season, country, league+".csv")
}

// FileProvider loads season files from the on-disk layout written by the
// downloader.
type FileProvider struct {
	dataDir string
	aliases map[string]string
}

func NewFileProvider(dataDir string, aliases map[string]string) *FileProvider {
	return &FileProvider{dataDir: dataDir, aliases: aliases}
}

// Load returns the season's matches in file order. A missing file wraps
// match.ErrMissingInput.
func (p *FileProvider) Load(ctx context.Context, country, league, season string) ([]match.Match, match.Quality, error) {
	if err := ctx.Err(); err != nil {
		return nil, match.Quality{}, err
	}
	path := Path(p.dataDir, country, league, season)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, match.Quality{}, fmt.Errorf("%w: %s", match.ErrMissingInput, path)
	}
	if err != nil {
		return nil, match.Quality{}, fmt.Errorf("read %s: %w", path, err)
	}

	matches, report, err := Parse(raw, season, p.aliases)
	if err != nil {
		return nil, report.Quality, fmt.Errorf("%s: %w", path, err)
	}
	telemetry.Metrics.RowsLoaded.Add(int64(len(matches)))
	telemetry.Metrics.MalformedRows.Add(int64(report.Malformed))
	telemetry.Metrics.UndatedRows.Add(int64(report.Undated))
	if len(matches) == 0 {
		return nil, report.Quality, fmt.Errorf("%w: no usable rows in %s", match.ErrMissingInput, path)
	}
	if report.Latin1 {
		telemetry.Debugf("footballdata: %s decoded as latin-1", path)
	}
	return matches, report.Quality, nil
}
