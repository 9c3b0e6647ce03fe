package systems

import (
	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/entities"
	"github.com/decker502/feverdream/pkg/game"
)

// ActivateFever 释放狂热技能
//
// 狂热值未满时不做任何事并返回 false。
// 每个敌人损失 MaxHealth*种类伤害比例，生命 <= 0 的敌人立即移除并奖励（计入击杀与进度）；
// 奖励结算后狂热值清零，屏幕震动至少为 ShakeIntensity，FeversUsed+1。
func ActivateFever(s game.GameState, scoreDoubler bool, cfg *config.GameConfig) (game.GameState, bool) {
	if s.Player.FeverMeter < cfg.Fever.Max {
		return s, false
	}

	survivors := make([]entities.Enemy, 0, len(s.Enemies))
	kills := 0
	for _, e := range s.Enemies {
		e.Health -= e.MaxHealth * cfg.Fever.FeverDamageFor(e.Variant)
		if e.Health <= 0 {
			kills++
			s.Player = rewardKill(s.Player, e, scoreDoubler, cfg)
			continue
		}
		survivors = append(survivors, e)
	}

	s.Enemies = survivors
	s.Kills += kills
	s = AdvanceProgression(s, kills, &cfg.Progression)

	s.Player.FeverMeter = 0
	s.Shake = max(s.Shake, cfg.Fever.ShakeIntensity)
	s.FeversUsed++
	return s, true
}
