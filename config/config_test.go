package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"chess-rules/board"
	"chess-rules/config"
	"chess-rules/engine"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Setup("")
	require.NoError(t, err)
	require.Equal(t, board.StartPlacement, cfg.Placement)
	require.Equal(t, 1, cfg.UndoDepth)

	g, err := cfg.NewGame(nil)
	require.NoError(t, err)
	require.Equal(t, board.White, g.OnMove())
	require.Equal(t, 8, g.BoardSize())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"placement: k3/2RQ/4/3K\nstarting: black\nundo_depth: 0\npromotion: n\nlog_level: debug\n"), 0o600))

	cfg, err := config.Setup(path)
	require.NoError(t, err)
	require.Equal(t, "k3/2RQ/4/3K", cfg.Placement)

	g, err := cfg.NewGame(nil)
	require.NoError(t, err)
	require.Equal(t, 4, g.BoardSize())
	require.Equal(t, board.Black, g.OnMove())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte("undo_depth: 3\n"), 0o600))
	t.Setenv("CHESS_UNDO_DEPTH", "5")
	t.Setenv("CHESS_STARTING", "b")

	cfg, err := config.Setup(path)
	require.NoError(t, err)
	require.Equal(t, 5, cfg.UndoDepth)
	require.Equal(t, "b", cfg.Starting)
}

func TestFlagsOverrideEverything(t *testing.T) {
	t.Setenv("CHESS_PROMOTION", "rook")
	v := config.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, config.BindFlags(v, fs))
	require.NoError(t, fs.Parse([]string{"--promotion=bishop", "--undo-depth=2"}))

	cfg, err := config.Load(v, "")
	require.NoError(t, err)
	require.Equal(t, "bishop", cfg.Promotion)
	require.Equal(t, 2, cfg.UndoDepth)
}

func TestInvalidSettings(t *testing.T) {
	for name, env := range map[string][2]string{
		"starting":  {"CHESS_STARTING", "green"},
		"promotion": {"CHESS_PROMOTION", "king"},
		"undo":      {"CHESS_UNDO_DEPTH", "-1"},
		"log":       {"CHESS_LOG_LEVEL", "loud"},
	} {
		t.Run(name, func(t *testing.T) {
			t.Setenv(env[0], env[1])
			_, err := config.Setup("")
			require.ErrorIs(t, err, engine.ErrInvalidConfig)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := config.Setup(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	log, err := config.NewLogger("warn")
	require.NoError(t, err)
	require.False(t, log.Core().Enabled(-1))
	_, err = config.NewLogger("chatty")
	require.Error(t, err)
}
