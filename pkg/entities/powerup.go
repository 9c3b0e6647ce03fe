package entities

import (
	"time"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/types"
)

// PowerUp 掉落的道具实体
type PowerUp struct {
	GameObject

	Kind     types.PowerUpKind
	Rarity   types.Rarity
	Duration time.Duration
}

// NewPowerUp 在场地顶部 x 处创建一个按表项配置的道具
func NewPowerUp(id EntityID, cfg *config.PowerUpConfig, entry config.PowerUpEntry, x float64) PowerUp {
	return PowerUp{
		GameObject: GameObject{
			ID:        id,
			Position:  Vec2{X: x, Y: -cfg.Height},
			Velocity:  Vec2{Y: cfg.FallSpeed},
			Width:     cfg.Width,
			Height:    cfg.Height,
			Health:    1,
			MaxHealth: 1,
		},
		Kind:     entry.Kind,
		Rarity:   entry.Rarity,
		Duration: entry.Duration,
	}
}
