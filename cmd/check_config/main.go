// check_config 校验游戏配置与道具表
//
// 用法:
//
//	go run ./cmd/check_config [--root .]
//
// 以 root 目录作为数据文件系统初始化 embedded 包（与游戏运行时的 data/ 布局一致），
// 加载并校验 data/game_config.yaml 与 data/powerups.yaml，打印摘要。
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/embedded"
	"github.com/decker502/feverdream/pkg/systems"
	"github.com/decker502/feverdream/pkg/types"
)

var root = flag.String("root", ".", "包含 data/ 目录的项目根目录")

func main() {
	flag.Parse()
	embedded.Init(os.DirFS(*root))

	cfg, err := config.LoadEmbeddedGameConfig("data/game_config.yaml")
	if err != nil {
		fmt.Printf("❌ 游戏配置无效: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 游戏配置有效: 场地 %.0fx%.0f，玩家速度 %.0f，生命 %.0f\n",
		cfg.Playfield.Width, cfg.Playfield.Height, cfg.Player.Speed, cfg.Player.MaxHealth)

	for _, level := range []int{1, 2, 5, 10} {
		mini, boss := systems.BossChances(level, 1, &cfg.Enemies)
		fmt.Printf("   level %2d: 普通敌人上限 %d，mini-boss %.0f%%，boss %.0f%%\n",
			level, cfg.Enemies.MaxNormalCount(level), mini, boss)
	}

	table, err := config.LoadEmbeddedPowerUpTable("data/powerups.yaml")
	if err != nil {
		fmt.Printf("❌ 道具表无效: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ 道具表有效: %d 种，总权重 %.0f\n", len(table.Entries), table.TotalWeight())
	total := table.TotalWeight()
	for _, e := range table.Entries {
		fmt.Printf("   %-14s %-9s %5.1f%%  %v\n", e.Kind, e.Rarity, e.Weight/total*100, e.Duration)
	}

	missing := 0
	for _, kind := range types.AllPowerUpKinds {
		if _, ok := table.Lookup(kind); !ok {
			fmt.Printf("⚠️  道具 %s 不在表中，永远不会掉落\n", kind)
			missing++
		}
	}
	if missing == 0 {
		fmt.Printf("✅ 所有道具种类都可以掉落\n")
	}
}
