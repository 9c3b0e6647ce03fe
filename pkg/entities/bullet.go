package entities

import (
	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/types"
)

// Bullet 子弹实体
type Bullet struct {
	GameObject

	Damage         float64
	IsPlayerBullet bool
	Type           types.BulletType
}

// NewPlayerBullet 在 (centerX, topY) 处创建一发向上飞行的玩家子弹
//
// 剑形子弹更大，伤害为普通伤害乘以 SwordDamageMultiplier。
// vx 为横向速度（散射侧弹使用）。
func NewPlayerBullet(id EntityID, cfg *config.BulletConfig, centerX, topY, vx float64, sword bool) Bullet {
	w, h := cfg.NormalWidth, cfg.NormalHeight
	damage := cfg.NormalDamage
	bulletType := types.BulletNormal
	if sword {
		w, h = cfg.SwordWidth, cfg.SwordHeight
		damage = cfg.NormalDamage * cfg.SwordDamageMultiplier
		bulletType = types.BulletSword
	}

	return Bullet{
		GameObject: GameObject{
			ID:        id,
			Position:  Vec2{X: centerX - w/2, Y: topY - h},
			Velocity:  Vec2{X: vx, Y: -cfg.Speed},
			Width:     w,
			Height:    h,
			Health:    1,
			MaxHealth: 1,
		},
		Damage:         damage,
		IsPlayerBullet: true,
		Type:           bulletType,
	}
}
