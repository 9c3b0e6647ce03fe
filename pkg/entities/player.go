package entities

import (
	"time"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/types"
)

// Player 玩家实体
type Player struct {
	GameObject

	Score      int
	FeverMeter float64 // 0 ~ Fever.Max

	// ActivePowerUps 当前生效的道具，每帧由效果表同步，按种类排序
	ActivePowerUps []types.PowerUpKind

	Invulnerable    bool
	InvulnerableFor time.Duration // 剩余无敌时间
}

// NewPlayer 按配置在出生点创建满血玩家
func NewPlayer(id EntityID, cfg *config.PlayerConfig) Player {
	return Player{
		GameObject: GameObject{
			ID:        id,
			Position:  Vec2{X: cfg.SpawnX, Y: cfg.SpawnY},
			Width:     cfg.Width,
			Height:    cfg.Height,
			Health:    cfg.MaxHealth,
			MaxHealth: cfg.MaxHealth,
		},
	}
}

// HasPowerUp 玩家当前是否拥有该道具效果
func (p *Player) HasPowerUp(kind types.PowerUpKind) bool {
	for _, k := range p.ActivePowerUps {
		if k == kind {
			return true
		}
	}
	return false
}

// Alive 生命值大于 0
func (p *Player) Alive() bool {
	return p.Health > 0
}
