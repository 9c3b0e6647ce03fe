package systems

import (
	"math"
	"time"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/game"
	"github.com/decker502/feverdream/pkg/types"
)

// Frame 逐帧管线的输入与输出：状态值加上并列的计时表
type Frame struct {
	State game.GameState
	Side  game.SideTables
}

// NewFrame 新一局的初始帧（ready 状态）
func NewFrame(cfg *config.GameConfig) Frame {
	return Frame{
		State: game.NewGameState(cfg),
		Side:  game.NewSideTables(cfg.PowerUps.SpawnInterval),
	}
}

// Step 推进一帧
//
// 仅 playing 状态推进，其余状态原样返回。顺序：
// 采样输入 -> 玩家移动/开火 -> 子弹/敌人/风暴/道具移动 -> 战斗、拾取、接触
// -> 生成 -> 计时器 -> 进度 -> 清洗 -> 结束判定。
func Step(f Frame, in Input, dt float64, r Random, table *config.PowerUpTable, cfg *config.GameConfig) Frame {
	if f.State.Status != types.StatusPlaying {
		return f
	}
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	f.State.Elapsed += time.Duration(dt * float64(time.Second))

	held := SampleInput(in)

	// 移动
	f.State.Player = MovePlayer(f.State.Player, held, dt, cfg)
	f = FirePlayerBullets(f, held.Fire, cfg)
	f.State.Bullets = MoveBullets(f.State.Bullets, dt, &cfg.Playfield)
	f.State.Enemies = MoveEnemies(f.State, dt, cfg)
	f.State = ApplyStormChaos(f.State, r, cfg)
	f.State.PowerUps = MovePowerUps(f.State.PowerUps, f.State.Player, f.Side.Effects.Has(types.PowerUpMagnet), dt, cfg)

	// 碰撞
	var kills int
	f.State, kills = ResolveCombat(f.State, f.Side.Effects.Has(types.PowerUpScoreDoubler), cfg)
	f = CollectPowerUps(f, cfg)
	f.State = ResolveContact(f.State, f.Side.Effects.Has(types.PowerUpShield), cfg)

	// 生成
	f = SpawnEnemies(f, r, cfg)
	f = SpawnPowerUps(f, r, table, cfg)

	// 计时器
	f = PurgeEffects(f)
	f.State = tickTimers(f.State, dt, cfg)
	f.State = UpdateStorm(f.State, &cfg.Storm)

	f.State = AdvanceProgression(f.State, kills, &cfg.Progression)
	f.State = game.SanitizeState(f.State, cfg)

	if f.State.Player.Health <= 0 {
		f.State.Status = types.StatusGameOver
	}
	return f
}

// tickTimers 无敌时间倒计时与屏幕震动衰减
func tickTimers(s game.GameState, dt float64, cfg *config.GameConfig) game.GameState {
	p := s.Player
	if p.Invulnerable {
		p.InvulnerableFor -= time.Duration(dt * float64(time.Second))
		if p.InvulnerableFor <= 0 {
			p.Invulnerable = false
			p.InvulnerableFor = 0
		}
	}
	s.Player = p
	s.Shake = max(0, s.Shake-cfg.Effects.ShakeDecayPerSecond*dt)
	return s
}
