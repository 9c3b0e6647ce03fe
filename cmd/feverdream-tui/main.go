// feverdream-tui 终端版本
//
// 用法:
//
//	go run ./cmd/feverdream-tui [--config game_config.yaml] [--powerups powerups.yaml] [--seed N] [--log file]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/engine"
	"github.com/decker502/feverdream/pkg/game"
	"github.com/decker502/feverdream/pkg/tui"
)

var (
	configPath   = flag.String("config", "", "游戏配置文件（默认使用内置默认值）")
	powerUpsPath = flag.String("powerups", "", "道具表文件（默认使用内置默认值）")
	seed         = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	logPath      = flag.String("log", "", "日志文件（终端被占用，默认丢弃日志）")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		loaded, err := config.LoadGameConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	table := config.DefaultPowerUpTable()
	if *powerUpsPath != "" {
		loaded, err := config.LoadPowerUpTable(*powerUpsPath)
		if err != nil {
			return err
		}
		table = loaded
	}

	bindings, err := tui.ParseBindings(cfg.Bindings)
	if err != nil {
		return fmt.Errorf("invalid key bindings: %w", err)
	}

	storage, err := gdata.Open(gdata.Config{AppName: "feverdream"})
	if err != nil {
		log.Printf("[TUI] Warning: Failed to open storage: %v", err)
		storage = nil
	}
	leaderboard := game.NewLeaderboard(storage, game.DefaultLeaderboardSize)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}

	sched := engine.NewFrameScheduler()
	eng := engine.New(engine.Options{
		Config:   cfg,
		PowerUps: table,
		Ticks:    sched,
		Sink:     leaderboard,
		Random:   engine.NewRandom(*seed),
	})

	tui.NewRunner(screen, eng, sched, bindings).Run()
	screen.Fini()

	if best, ok := leaderboard.Best(); ok {
		fmt.Printf("best score: %d (level %d, wave %d)\n", best.Score, best.Level, best.Wave)
	}
	return nil
}
