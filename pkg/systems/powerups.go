package systems

import (
	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/entities"
	"github.com/decker502/feverdream/pkg/types"
)

// CollectPowerUps 玩家拾取相交的道具
//
// 普通道具注册或刷新效果 kind -> Elapsed+Duration；
// 现实扭曲不登记效果，而是开启或刷新现实风暴。
func CollectPowerUps(f Frame, cfg *config.GameConfig) Frame {
	s := f.State
	if len(s.PowerUps) == 0 {
		return f
	}

	effects := f.Side.Effects
	remaining := make([]entities.PowerUp, 0, len(s.PowerUps))
	for _, p := range s.PowerUps {
		if !Overlaps(s.Player.GameObject, p.GameObject) {
			remaining = append(remaining, p)
			continue
		}
		switch p.Kind {
		case types.PowerUpRealityWarp:
			s = StartStorm(s, &cfg.Storm)
		case types.PowerUpSpreadShot, types.PowerUpShield, types.PowerUpScoreDoubler,
			types.PowerUpMagnet, types.PowerUpSword:
			effects = effects.With(p.Kind, s.Elapsed+p.Duration)
		}
	}

	s.PowerUps = remaining
	s.Player.ActivePowerUps = effects.Kinds()
	f.State = s
	f.Side.Effects = effects
	return f
}

// PurgeEffects 删除已到期的效果并同步玩家的生效列表
func PurgeEffects(f Frame) Frame {
	f.Side.Effects = f.Side.Effects.Purge(f.State.Elapsed)
	f.State.Player.ActivePowerUps = f.Side.Effects.Kinds()
	return f
}
