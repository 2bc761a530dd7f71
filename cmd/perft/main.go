package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"chess-rules/config"
	"chess-rules/engine"
	"chess-rules/oracle"
)

func main() {
	fs := pflag.NewFlagSet("perft", pflag.ExitOnError)
	cfgPath := fs.String("config", "", "settings file (yaml, toml or json)")
	depth := fs.Int("depth", 0, "perft depth (required)")
	divide := fs.Bool("divide", false, "print per-move node counts at root")
	repeat := fs.Int("repeat", 1, "repeat perft N times and report aggregate")
	label := fs.String("label", "", "optional label prefix for one-line output")
	under := fs.Bool("under-promotions", true, "count rook, bishop and knight promotions")
	check := fs.String("oracle", "", "compare the divide with another generator: dragontooth or goose")
	cpuProf := fs.String("cpuprofile", "", "write CPU profile to file during run")
	memProf := fs.String("memprofile", "", "write heap profile to file after run")

	v := config.New()
	if err := config.BindFlags(v, fs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(v, *cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	base, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = base.Sync() }()
	logger := base.Sugar()

	if *depth <= 0 {
		logger.Fatal("--depth must be > 0")
	}

	g, err := cfg.NewGame(base)
	if err != nil {
		logger.Fatalw("Failed to set up game", zap.Error(err))
	}
	opts := engine.PerftOptions{UnderPromotions: *under}

	if *divide || *check != "" {
		div := oracle.Divide(engine.PerftDivide(g, *depth, opts))
		for _, m := range div.Moves() {
			fmt.Printf("%s: %d\n", m, div[m])
		}
		fmt.Printf("Total: %d\n", div.Total())
		if *check != "" {
			os.Exit(compare(logger, g, div, *check, *depth))
		}
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			logger.Fatalw("creating cpuprofile", zap.Error(err))
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			logger.Fatalw("start cpu profile", zap.Error(err))
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += engine.Perft(g, *depth, opts)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
	logger.Debugw("perft finished", "game", g.ID(), "depth", *depth, "nodes", totalNodes, "elapsed", elapsed)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			logger.Fatalw("creating memprofile", zap.Error(err))
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			logger.Fatalw("write heap profile", zap.Error(err))
		}
		_ = f.Close()
	}
}

// compare checks div against the named generator and returns the exit code.
func compare(logger *zap.SugaredLogger, g *engine.Game, div oracle.Divide, name string, depth int) int {
	if g.BoardSize() != 8 {
		logger.Errorw("oracle needs an 8x8 board", "size", g.BoardSize())
		return 2
	}
	fen := oracle.EngineFEN(g)
	var theirs oracle.Divide
	switch name {
	case "dragontooth":
		theirs = oracle.Dragontooth(fen, depth)
	case "goose":
		var err error
		if theirs, err = oracle.Goose(fen, depth); err != nil {
			logger.Errorw("oracle failed", "fen", fen, zap.Error(err))
			return 2
		}
	default:
		logger.Errorw("unknown oracle", "oracle", name)
		return 2
	}

	diff := oracle.Compare(div, theirs)
	if len(diff) == 0 {
		logger.Infow("counts match", "oracle", name, "fen", fen, "moves", len(div), "nodes", div.Total())
		return 0
	}
	for _, d := range diff {
		fmt.Println("mismatch", d)
	}
	logger.Warnw("counts differ", "oracle", name, "fen", fen, "mismatches", len(diff))
	return 1
}
