package systems

import (
	"math"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/entities"
	"github.com/decker502/feverdream/pkg/game"
)

// StartStorm 开启或刷新现实风暴
//
// 风暴进行中再次拾取只刷新结束时间，强度不叠加。
func StartStorm(s game.GameState, cfg *config.StormConfig) game.GameState {
	s.Storm = game.StormState{
		Active:    true,
		EndsAt:    s.Elapsed + cfg.Duration,
		Intensity: cfg.Intensity,
	}
	return s
}

// UpdateStorm 检查风暴是否结束；结束时玩家存活则奖励一次生存分
func UpdateStorm(s game.GameState, cfg *config.StormConfig) game.GameState {
	if !s.Storm.Active || s.Elapsed < s.Storm.EndsAt {
		return s
	}
	s.Storm = game.StormState{}
	if s.Player.Alive() {
		s.Player.Score += cfg.SurvivalBonus
	}
	return s
}

// ApplyStormChaos 风暴期间扰动敌人
//
// 每个非悬停敌人以 ChaosChance 的概率获得指向玩家、带向下偏置和随机抖动的新速度，
// 方向的纵向分量至少为 MinDownward（位于玩家下方的敌人也不会向上飞），
// 速度大小为 BaseSpeed*chaos*Intensity，chaos 每帧在 [ChaosMin, ChaosMax] 内重新抽取；
// 以 ResizeChance 的概率把尺寸设为基准尺寸的 [ResizeMin, ResizeMax] 倍。
// 屏幕震动至少保持 ShakeFloor。
func ApplyStormChaos(s game.GameState, r Random, cfg *config.GameConfig) game.GameState {
	if !s.Storm.Active {
		return s
	}
	sc := &cfg.Storm
	chaos := uniform(r, sc.ChaosMin, sc.ChaosMax)
	speed := cfg.Enemies.BaseSpeed * chaos * s.Storm.Intensity
	target := s.Player.Center()

	enemies := make([]entities.Enemy, len(s.Enemies))
	for i, e := range s.Enemies {
		if !e.Hover.Hovering && chance(r, sc.ChaosChance) {
			dir := target.Sub(e.Center()).Normalize()
			dir = dir.Add(entities.Vec2{
				X: uniform(r, -sc.Jitter, sc.Jitter),
				Y: sc.DownBias + uniform(r, -sc.Jitter, sc.Jitter),
			})
			e.Velocity = clampDownward(dir.Normalize(), sc.MinDownward).Scale(speed)
		}
		if chance(r, sc.ResizeChance) {
			scale := uniform(r, sc.ResizeMin, sc.ResizeMax)
			e.Width = e.BaseWidth * scale
			e.Height = e.BaseHeight * scale
		}
		enemies[i] = e
	}

	s.Enemies = enemies
	s.Shake = max(s.Shake, sc.ShakeFloor)
	return s
}

// clampDownward 把单位方向的纵向分量抬到至少 minY，保持横向符号和单位长度
func clampDownward(d entities.Vec2, minY float64) entities.Vec2 {
	if d.Y >= minY {
		return d
	}
	x := math.Sqrt(1 - minY*minY)
	if d.X < 0 {
		x = -x
	}
	return entities.Vec2{X: x, Y: minY}
}
