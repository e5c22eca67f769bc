package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/charleschow/draw-progression/internal/core/progression"
	"gopkg.in/yaml.v3"
)

//go:embed leagues.yaml
var defaultLeaguesData []byte

type CountryLeagues struct {
	Name    string   `yaml:"name"`
	Leagues []string `yaml:"leagues"`
}

// Leagues is the start-up configuration handed to the orchestrator.
type Leagues struct {
	Countries            []CountryLeagues `yaml:"countries"`
	SeasonCount          int              `yaml:"season_count"`
	AnalysisSeasonCount  int              `yaml:"analysis_season_count"`
	CurrentSeasonEndYear int              `yaml:"current_season_end_year"`
	FibonacciSteps       int              `yaml:"fibonacci_steps"`
	Staking              []int64          `yaml:"staking"`
	DrawOdds             float64          `yaml:"draw_odds"`
	ScenarioTopN         int              `yaml:"scenario_top_n"`
	MaxProgressionSteps  int              `yaml:"max_progression_steps"`

	// Draw-prone table: top N teams by draw % with at least min matches
	// in the statistics window.
	DrawProneTopN       int `yaml:"draw_prone_top_n"`
	DrawProneMinMatches int `yaml:"draw_prone_min_matches"`
}

// LoadLeagues parses the YAML at path, or the embedded default when path is empty.
func LoadLeagues(path string) (Leagues, error) {
	data := defaultLeaguesData
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return Leagues{}, fmt.Errorf("read leagues config: %w", err)
		}
	}
	return ParseLeagues(data)
}

func ParseLeagues(data []byte) (Leagues, error) {
	var l Leagues
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Leagues{}, fmt.Errorf("parse leagues config: %w", err)
	}
	if len(l.Staking) == 0 && l.FibonacciSteps > 0 {
		l.Staking = progression.Fibonacci(l.FibonacciSteps)
	}
	if l.ScenarioTopN == 0 {
		l.ScenarioTopN = 3
	}
	if l.DrawProneTopN == 0 {
		l.DrawProneTopN = 10
	}
	if l.DrawProneMinMatches == 0 {
		l.DrawProneMinMatches = 30
	}
	if err := l.Validate(); err != nil {
		return Leagues{}, err
	}
	return l, nil
}

func (l Leagues) Validate() error {
	var errs []error
	if len(l.Countries) == 0 {
		errs = append(errs, errors.New("no countries configured"))
	}
	for _, c := range l.Countries {
		if c.Name == "" || len(c.Leagues) == 0 {
			errs = append(errs, fmt.Errorf("country %q: name and leagues are required", c.Name))
		}
	}
	if l.SeasonCount <= 0 {
		errs = append(errs, fmt.Errorf("season_count must be positive, got %d", l.SeasonCount))
	}
	if l.AnalysisSeasonCount < 0 || l.AnalysisSeasonCount > l.SeasonCount {
		errs = append(errs, fmt.Errorf("analysis_season_count must be within [0, %d], got %d", l.SeasonCount, l.AnalysisSeasonCount))
	}
	if l.CurrentSeasonEndYear < 1900 {
		errs = append(errs, fmt.Errorf("current_season_end_year looks wrong: %d", l.CurrentSeasonEndYear))
	}
	if err := progression.ValidateStaking(l.Staking, l.DrawOdds); err != nil {
		errs = append(errs, err)
	}
	if l.DrawProneTopN < 0 || l.DrawProneMinMatches < 0 {
		errs = append(errs, fmt.Errorf("draw_prone_top_n and draw_prone_min_matches must not be negative"))
	}
	if l.MaxProgressionSteps < 0 {
		errs = append(errs, fmt.Errorf("max_progression_steps must not be negative"))
	}
	return errors.Join(errs...)
}

// SeasonLabels returns the simulation window as "YYYY-YYYY" labels, newest first.
func (l Leagues) SeasonLabels() []string {
	return seasonLabels(l.CurrentSeasonEndYear, l.SeasonCount)
}

// AnalysisSeasonLabels returns the (possibly shorter) full-history window.
func (l Leagues) AnalysisSeasonLabels() []string {
	n := l.AnalysisSeasonCount
	if n == 0 {
		n = l.SeasonCount
	}
	return seasonLabels(l.CurrentSeasonEndYear, n)
}

func seasonLabels(lastEndYear, n int) []string {
	labels := make([]string, 0, n)
	for i := 0; i < n; i++ {
		end := lastEndYear - i
		labels = append(labels, fmt.Sprintf("%d-%d", end-1, end))
	}
	return labels
}
