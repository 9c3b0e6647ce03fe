// verify_simulation 无界面确定性模拟
//
// 用固定种子和脚本化输入驱动引擎，打印关卡/波次推进日志，
// 用于验证平衡参数修改后的整体节奏。相同种子两次运行输出一致。
//
// 用法:
//
//	go run ./cmd/verify_simulation --seed 42 --minutes 5
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/engine"
	"github.com/decker502/feverdream/pkg/game"
	"github.com/decker502/feverdream/pkg/types"
)

var (
	seed       = flag.Int64("seed", 42, "随机种子")
	minutes    = flag.Float64("minutes", 5, "最长模拟时长（游戏时间，分钟）")
	configPath = flag.String("config", "", "游戏配置文件（默认使用内置默认值）")
	verbose    = flag.Bool("verbose", false, "显示引擎日志")
)

// autopilot 脚本化输入：一直开火，水平追踪最低的敌人，狂热值满时释放
type autopilot struct {
	eng *engine.Engine
}

func (a *autopilot) IsHeld(c types.Control) bool {
	st := a.eng.Snapshot()
	switch c {
	case types.ControlFire:
		return true
	case types.ControlLeft, types.ControlRight:
		target, ok := lowestEnemyX(st)
		if !ok {
			return false
		}
		px := st.Player.Center().X
		if c == types.ControlLeft {
			return target < px-8
		}
		return target > px+8
	default:
		return false
	}
}

func lowestEnemyX(st game.GameState) (float64, bool) {
	best, found := 0.0, false
	bestY := 0.0
	for i := range st.Enemies {
		e := &st.Enemies[i]
		if !found || e.Position.Y > bestY {
			best, bestY, found = e.Center().X, e.Position.Y, true
		}
	}
	return best, found
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		loaded, err := config.LoadGameConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	var result game.ScoreRecord
	sched := engine.NewFrameScheduler()
	eng := engine.New(engine.Options{
		Config:   cfg,
		PowerUps: config.DefaultPowerUpTable(),
		Ticks:    sched,
		Sink:     sinkFunc(func(r game.ScoreRecord) error { result = r; return nil }),
		Random:   engine.NewRandom(*seed),
	})
	eng.SetInput(&autopilot{eng: eng})

	fmt.Printf("=== verify_simulation seed=%d ===\n", *seed)
	eng.Start()

	// 合成时间：固定 1/60 秒步长
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limit := time.Duration(*minutes * float64(time.Minute))
	level, wave := 1, 1
	for eng.Status() == types.StatusPlaying && eng.Snapshot().Elapsed < limit {
		if eng.Snapshot().Player.FeverMeter >= cfg.Fever.Max {
			eng.ActivateFever()
		}
		sched.Fire(now)
		now = now.Add(time.Second / 60)

		st := eng.Snapshot()
		if st.Level != level || st.Wave != wave {
			level, wave = st.Level, st.Wave
			fmt.Printf("[%7.2fs] level %d wave %d  score=%d kills=%d hp=%.0f\n",
				st.Elapsed.Seconds(), level, wave, st.Player.Score, st.Kills, st.Player.Health)
		}
	}

	st := eng.Snapshot()
	if eng.Status() == types.StatusGameOver {
		fmt.Printf("game over after %.2fs: score=%d level=%d wave=%d kills=%d fevers=%d\n",
			result.Duration.Seconds(), result.Score, result.Level, result.Wave, result.Kills, result.FeversUsed)
	} else {
		fmt.Printf("time limit reached: score=%d level=%d wave=%d kills=%d fevers=%d hp=%.0f\n",
			st.Player.Score, st.Level, st.Wave, st.Kills, st.FeversUsed, st.Player.Health)
	}
	if err := game.ValidateState(&st, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid final state: %v\n", err)
		os.Exit(1)
	}
}

// sinkFunc 把函数适配为 engine.ScoreSink
type sinkFunc func(game.ScoreRecord) error

func (f sinkFunc) Submit(r game.ScoreRecord) error { return f(r) }
