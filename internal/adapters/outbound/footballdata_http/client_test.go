package footballdata_http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/charleschow/draw-progression/internal/adapters/inbound/footballdata"
	"github.com/charleschow/draw-progression/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const body = "Date,HomeTeam,AwayTeam,FTR\n01/09/2023,A,B,D\n"

func newServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/mmz4281/2324/E0.csv" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestURL(t *testing.T) {
	c := NewClient("https://www.football-data.co.uk/", t.TempDir(), 1)
	u, err := c.URL("E0", "1999-2000")
	require.NoError(t, err)
	assert.Equal(t, "https://www.football-data.co.uk/mmz4281/9900/E0.csv", u)

	_, err = c.URL("E0", "current")
	assert.Error(t, err)
}

func TestFetchWritesLayoutAndSkipsExisting(t *testing.T) {
	var hits atomic.Int64
	srv := newServer(t, &hits)
	dir := t.TempDir()
	c := NewClient(srv.URL, dir, 1000)
	ctx := context.Background()

	status, err := c.Fetch(ctx, "England", "E0", "2023-2024", false)
	require.NoError(t, err)
	assert.Equal(t, Downloaded, status)

	data, err := os.ReadFile(footballdata.Path(dir, "England", "E0", "2023-2024"))
	require.NoError(t, err)
	assert.Equal(t, body, string(data))

	status, err = c.Fetch(ctx, "England", "E0", "2023-2024", false)
	require.NoError(t, err)
	assert.Equal(t, Existing, status)
	assert.Equal(t, int64(1), hits.Load())

	status, err = c.Fetch(ctx, "England", "E0", "2023-2024", true)
	require.NoError(t, err)
	assert.Equal(t, Downloaded, status)
	assert.Equal(t, int64(2), hits.Load())
}

func TestFetchNotFoundIsNotAnError(t *testing.T) {
	var hits atomic.Int64
	srv := newServer(t, &hits)
	dir := t.TempDir()

	status, err := NewClient(srv.URL, dir, 1000).Fetch(context.Background(), "England", "E3", "2023-2024", false)
	require.NoError(t, err)
	assert.Equal(t, NotFound, status)
	_, err = os.Stat(footballdata.Path(dir, "England", "E3", "2023-2024"))
	assert.True(t, os.IsNotExist(err))
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, t.TempDir(), 1000).Fetch(context.Background(), "England", "E0", "2023-2024", false)
	assert.Error(t, err)
}

func TestMirror(t *testing.T) {
	var hits atomic.Int64
	srv := newServer(t, &hits)
	leagues := config.Leagues{
		Countries:            []config.CountryLeagues{{Name: "England", Leagues: []string{"E0", "E1"}}},
		SeasonCount:          2,
		CurrentSeasonEndYear: 2024,
	}

	sum, err := NewClient(srv.URL, t.TempDir(), 1000).Mirror(context.Background(), leagues, false, 3)
	require.NoError(t, err)
	// only E0 2023-2024 exists on the server
	assert.Equal(t, MirrorSummary{Downloaded: 1, NotFound: 3}, sum)
	assert.Equal(t, int64(4), hits.Load())
}
