// Package config loads game settings from a file, the environment and
// command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"chess-rules/board"
	"chess-rules/engine"
)

// EnvPrefix is prepended to every environment override, e.g. CHESS_UNDO_DEPTH.
const EnvPrefix = "CHESS"

type Config struct {
	Placement string `mapstructure:"placement"`
	Starting  string `mapstructure:"starting"`
	UndoDepth int    `mapstructure:"undo_depth"`
	Promotion string `mapstructure:"promotion"`
	LogLevel  string `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("placement", board.StartPlacement)
	v.SetDefault("starting", "white")
	v.SetDefault("undo_depth", 1)
	v.SetDefault("promotion", "queen")
	v.SetDefault("log_level", "info")
}

// New returns a viper instance with defaults and environment overrides set.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags registers the settings on fs and binds them to v, so flags
// override the file and the environment.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String("placement", board.StartPlacement, "board placement or full FEN")
	fs.String("starting", "white", "colour to move first")
	fs.Int("undo-depth", 1, "moves kept for undo, 0 for unlimited")
	fs.String("promotion", "queen", "default promotion piece")
	fs.String("log-level", "info", "debug, info, warn or error")
	for _, name := range []string{"placement", "starting", "undo-depth", "promotion", "log-level"} {
		if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), fs.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

// Load reads path into v if path is set and decodes the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Setup loads path with defaults and environment overrides.
func Setup(path string) (*Config, error) {
	return Load(New(), path)
}

func (c *Config) check() error {
	if _, err := board.ParseColor(c.Starting); err != nil {
		return fmt.Errorf("%w: starting: %v", engine.ErrInvalidConfig, err)
	}
	if c.UndoDepth < 0 {
		return fmt.Errorf("%w: undo_depth must not be negative", engine.ErrInvalidConfig)
	}
	if _, err := c.promotion(); err != nil {
		return err
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", engine.ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) promotion() (board.PieceType, error) {
	s := strings.ToUpper(c.Promotion)
	for _, pt := range []board.PieceType{board.Queen, board.Rook, board.Bishop, board.Knight} {
		if s == pt.String() || (len(s) == 1 && s[0] == pt.Letter()) {
			return pt, nil
		}
	}
	return board.NoPieceType, fmt.Errorf("%w: promotion %q", engine.ErrInvalidConfig, c.Promotion)
}

// Game converts the settings into an engine configuration.
func (c *Config) Game() (engine.Config, error) {
	starting, err := board.ParseColor(c.Starting)
	if err != nil {
		return engine.Config{}, fmt.Errorf("%w: %v", engine.ErrInvalidConfig, err)
	}
	return engine.Config{Placement: c.Placement, Starting: starting}, nil
}

// Options returns the engine options the settings imply, logging to log.
func (c *Config) Options(log *zap.Logger) ([]engine.Option, error) {
	pt, err := c.promotion()
	if err != nil {
		return nil, err
	}
	opts := []engine.Option{engine.WithUndoDepth(c.UndoDepth), engine.WithPromotion(pt)}
	if log != nil {
		opts = append(opts, engine.WithLogger(log))
	}
	return opts, nil
}

// NewGame builds a game from the settings.
func (c *Config) NewGame(log *zap.Logger) (*engine.Game, error) {
	gc, err := c.Game()
	if err != nil {
		return nil, err
	}
	opts, err := c.Options(log)
	if err != nil {
		return nil, err
	}
	return engine.NewGame(gc, opts...)
}

// NewLogger builds a production logger at level.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: building logger: %w", err)
	}
	return logger, nil
}

func parseLevel(s string) (zapcore.Level, error) {
	var lvl zapcore.Level
	err := lvl.UnmarshalText([]byte(s))
	return lvl, err
}
