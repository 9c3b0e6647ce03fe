package systems

import (
	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/entities"
	"github.com/decker502/feverdream/pkg/types"
)

// scriptedRandom 按脚本依次返回随机数；脚本用尽后 Float64 返回 0.999、Intn 返回 0
type scriptedRandom struct {
	floats []float64
	ints   []int
}

func (r *scriptedRandom) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.999
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func (r *scriptedRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

// heldKeys 测试用输入源
type heldKeys map[types.Control]bool

func (h heldKeys) IsHeld(c types.Control) bool { return h[c] }

// playingFrame 进入 playing 状态的初始帧
func playingFrame(cfg *config.GameConfig) Frame {
	f := NewFrame(cfg)
	f.State.Status = types.StatusPlaying
	return f
}

func testEnemy(id entities.EntityID, x, y float64) entities.Enemy {
	return entities.Enemy{
		GameObject: entities.GameObject{
			ID:        id,
			Position:  entities.Vec2{X: x, Y: y},
			Width:     30,
			Height:    30,
			Health:    1,
			MaxHealth: 1,
		},
		Variant:    types.EnemyNormal,
		Points:     100,
		BaseSpeed:  50,
		BaseWidth:  30,
		BaseHeight: 30,
	}
}

func testBullet(id entities.EntityID, x, y, damage float64) entities.Bullet {
	return entities.Bullet{
		GameObject: entities.GameObject{
			ID:        id,
			Position:  entities.Vec2{X: x, Y: y},
			Width:     4,
			Height:    8,
			Health:    1,
			MaxHealth: 1,
		},
		Damage:         damage,
		IsPlayerBullet: true,
	}
}
