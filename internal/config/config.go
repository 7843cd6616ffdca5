package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ezBadminton/bracketdesk/badminton"
	"github.com/ezBadminton/bracketdesk/core"
)

var (
	ErrNegativeBestThirds = errors.New("best third count must not be negative")
	ErrLogFormat          = errors.New("log format must be text or json")
)

type Config struct {
	ExtendedCategories []string `env:"EXTENDED_CATEGORIES"    envSeparator:","  envDocs:"categories that qualify the best 3rd places into the upper bracket"`
	BestThirdCount     int      `env:"BEST_THIRD_COUNT"       envDefault:"4"    envDocs:"number of 3rd places that join the upper bracket in extended categories"`

	PointsWin  int `env:"POINTS_WIN"  envDefault:"2" envDocs:"group points for a won match"`
	PointsDraw int `env:"POINTS_DRAW" envDefault:"1" envDocs:"group points for a drawn match"`
	PointsLoss int `env:"POINTS_LOSS" envDefault:"0" envDocs:"group points for a lost match"`

	ScoreWinningPoints  int  `env:"SCORE_WINNING_POINTS"   envDefault:"21"    envDocs:"points needed to win a set"`
	ScoreWinningSets    int  `env:"SCORE_WINNING_SETS"     envDefault:"2"     envDocs:"sets needed to win a match"`
	ScoreMaxPoints      int  `env:"SCORE_MAX_POINTS"       envDefault:"30"    envDocs:"points cap of a set when playing with two point margin"`
	ScoreTwoPointMargin bool `env:"SCORE_TWO_POINT_MARGIN" envDefault:"true"  envDocs:"a set has to be won by two points"`
	ScoreAllowDraws     bool `env:"SCORE_ALLOW_DRAWS"      envDefault:"false" envDocs:"accept group matches with equal set wins"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info" envDocs:"logrus level"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text" envDocs:"text or json"`
}

// Loads the configuration from the environment.
//
// Without envFiles an optional .env file in the working directory
// is loaded. Explicitly given files have to exist.
// Variables that are already set in the environment take precedence
// over the files.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("could not load env files: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("could not parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BestThirdCount < 0 {
		return ErrNegativeBestThirds
	}
	if _, err := c.ScoreSettings(); err != nil {
		return fmt.Errorf("invalid score settings: %w", err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return ErrLogFormat
	}
	return nil
}

// Returns the tournament configuration that the seeding
// operations are parameterized with
func (c *Config) Tournament() core.TournamentConfig {
	categories := make([]string, 0, len(c.ExtendedCategories))
	for _, category := range c.ExtendedCategories {
		category = strings.TrimSpace(category)
		if category != "" {
			categories = append(categories, category)
		}
	}

	return core.TournamentConfig{
		ExtendedCategories: categories,
		BestThirdCount:     c.BestThirdCount,
		Points: core.PointsConfig{
			Win:  c.PointsWin,
			Draw: c.PointsDraw,
			Loss: c.PointsLoss,
		},
	}
}

func (c *Config) ScoreSettings() (badminton.Settings, error) {
	return badminton.NewSettings(
		c.ScoreWinningPoints,
		c.ScoreWinningSets,
		c.ScoreMaxPoints,
		c.ScoreTwoPointMargin,
		c.ScoreAllowDraws,
	)
}

// Applies the log level and format to the logger
func (c *Config) ConfigureLogger(logger *logrus.Logger) error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)

	switch strings.ToLower(c.LogFormat) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return ErrLogFormat
	}

	return nil
}
