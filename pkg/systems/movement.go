package systems

import (
	"math"
	"time"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/entities"
	"github.com/decker502/feverdream/pkg/game"
	"github.com/decker502/feverdream/pkg/types"
)

// Held 一帧开始时采样到的控制键状态
type Held struct {
	Left, Right, Up, Down, Fire bool
}

// Input 输入源，只需回答某个逻辑控制键当前是否按住
type Input interface {
	IsHeld(c types.Control) bool
}

// SampleInput 一次性采样所有控制键，nil 输入视为全部松开
func SampleInput(in Input) Held {
	if in == nil {
		return Held{}
	}
	return Held{
		Left:  in.IsHeld(types.ControlLeft),
		Right: in.IsHeld(types.ControlRight),
		Up:    in.IsHeld(types.ControlUp),
		Down:  in.IsHeld(types.ControlDown),
		Fire:  in.IsHeld(types.ControlFire),
	}
}

// MovePlayer 根据按键重建玩家速度（无惯性）并移动，位置钳制在场地内
func MovePlayer(p entities.Player, held Held, dt float64, cfg *config.GameConfig) entities.Player {
	speed := cfg.Player.Speed
	var v entities.Vec2
	if held.Left {
		v.X -= speed
	}
	if held.Right {
		v.X += speed
	}
	if held.Up {
		v.Y -= speed
	}
	if held.Down {
		v.Y += speed
	}

	p.Velocity = v
	p.Position.X = clampf(p.Position.X+v.X*dt, 0, cfg.Playfield.Width-p.Width)
	p.Position.Y = clampf(p.Position.Y+v.Y*dt, 0, cfg.Playfield.Height-p.Height)
	return p
}

// FirePlayerBullets 按住开火且冷却结束时发射子弹
//
// 剑效果把子弹升级为剑气；散射效果额外发射两发带横向速度的侧弹。
func FirePlayerBullets(f Frame, fire bool, cfg *config.GameConfig) Frame {
	s := f.State
	if !fire || s.Elapsed < f.Side.NextShotAt {
		return f
	}

	sword := f.Side.Effects.Has(types.PowerUpSword)
	spread := f.Side.Effects.Has(types.PowerUpSpreadShot)

	cx := s.Player.Center().X
	top := s.Player.Position.Y

	bullets := make([]entities.Bullet, len(s.Bullets), len(s.Bullets)+3)
	copy(bullets, s.Bullets)
	bullets = append(bullets, entities.NewPlayerBullet(s.AllocID(), &cfg.Bullets, cx, top, 0, sword))
	if spread {
		vx := cfg.Bullets.SpreadHorizontalSpeed
		bullets = append(bullets,
			entities.NewPlayerBullet(s.AllocID(), &cfg.Bullets, cx, top, -vx, sword),
			entities.NewPlayerBullet(s.AllocID(), &cfg.Bullets, cx, top, vx, sword),
		)
	}

	s.Bullets = bullets
	f.State = s
	f.Side.NextShotAt = s.Elapsed + cfg.Player.FireInterval
	return f
}

// MoveBullets 移动子弹，移除超出场地 BulletMargin 以外的子弹
func MoveBullets(bullets []entities.Bullet, dt float64, pf *config.PlayfieldConfig) []entities.Bullet {
	out := make([]entities.Bullet, 0, len(bullets))
	m := pf.BulletMargin
	for _, b := range bullets {
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
		if b.Position.Y+b.Height < -m || b.Position.Y > pf.Height+m ||
			b.Position.X+b.Width < -m || b.Position.X > pf.Width+m {
			continue
		}
		out = append(out, b)
	}
	return out
}

// MovePowerUps 道具下落；磁铁生效时吸引半径内的道具
//
// 吸引: v = v*Damping + dir*Strength*dt，随后速度上限为 MaxVelocity。
func MovePowerUps(items []entities.PowerUp, player entities.Player, magnet bool, dt float64, cfg *config.GameConfig) []entities.PowerUp {
	mc := cfg.PowerUps.Magnet
	target := player.Center()

	out := make([]entities.PowerUp, 0, len(items))
	for _, p := range items {
		attracted := false
		if magnet {
			delta := target.Sub(p.Center())
			if dist := delta.Len(); dist > 0 && dist <= mc.Radius {
				v := p.Velocity.Scale(mc.Damping).Add(delta.Normalize().Scale(mc.Strength * dt))
				if speed := v.Len(); speed > mc.MaxVelocity {
					v = v.Scale(mc.MaxVelocity / speed)
				}
				p.Velocity = v
				attracted = true
			}
		}
		if !attracted {
			p.Velocity = entities.Vec2{Y: cfg.PowerUps.FallSpeed}
		}

		p.Position = p.Position.Add(p.Velocity.Scale(dt))
		if p.Position.Y > cfg.Playfield.Height+cfg.Playfield.PowerUpMargin {
			continue
		}
		out = append(out, p)
	}
	return out
}

// MoveEnemies 移动敌人并推进头目悬停状态机
//
// 纵向: Velocity.Y + (level-1)*SpeedPerLevel*倍率，悬停时为 0。
// 横向: Velocity.X + 移动模式的正弦偏移，X 钳制在场地内。
// Y > Height+EnemyMargin 的敌人被移除；向上移动且完全越过顶部 EnemyMargin 的敌人同样被移除。
func MoveEnemies(s game.GameState, dt float64, cfg *config.GameConfig) []entities.Enemy {
	ec := &cfg.Enemies
	pf := &cfg.Playfield
	now := s.Elapsed
	t := now.Seconds()
	levelBonus := float64(max(s.Level, 1)-1) * ec.SpeedPerLevel

	out := make([]entities.Enemy, 0, len(s.Enemies))
	for _, e := range s.Enemies {
		if e.IsBossClass() {
			e = endHover(e, now, ec)
		}

		vy := 0.0
		if !e.Hover.Hovering {
			mult := 1.0
			if e.IsBossClass() {
				mult = e.Hover.SpeedMultiplier()
			}
			vy = e.Velocity.Y + levelBonus*mult
		}
		vx := e.Velocity.X + patternOffset(e, t, ec)

		e.Position.X = clampf(e.Position.X+vx*dt, 0, pf.Width-e.Width)
		e.Position.Y += vy * dt

		if e.IsBossClass() {
			e = beginHover(e, now, pf.Height)
		}

		if e.Position.Y > pf.Height+pf.EnemyMargin {
			continue
		}
		if vy < 0 && e.Position.Y+e.Height < -pf.EnemyMargin {
			continue
		}
		out = append(out, e)
	}
	return out
}

// beginHover descending(p) -> hovering(p)：到达第 p 个高度阈值
func beginHover(e entities.Enemy, now time.Duration, height float64) entities.Enemy {
	h := &e.Hover
	if h.Hovering || h.Done() {
		return e
	}
	if e.Position.Y >= h.Thresholds[h.Phase]*height {
		h.Hovering = true
		h.PhaseStartedAt = now
		h.HealthAtHoverStart = e.Health
	}
	return e
}

// endHover hovering(p) -> descending(p+1)：悬停时间到，或护盾型头目在悬停中损失足够生命
func endHover(e entities.Enemy, now time.Duration, ec *config.EnemyConfig) entities.Enemy {
	h := &e.Hover
	if !h.Hovering {
		return e
	}

	expired := h.Phase < len(h.Durations) && now-h.PhaseStartedAt >= h.Durations[h.Phase]
	broken := false
	if e.Pattern == types.PatternShielded {
		if bc := ec.BossConfigFor(e.Variant); bc != nil && bc.ShieldBreakFraction > 0 {
			broken = h.HealthAtHoverStart-e.Health >= bc.ShieldBreakFraction*e.MaxHealth
		}
	}
	if !expired && !broken {
		return e
	}

	h.Hovering = false
	h.Phase++
	e.Velocity.Y = e.BaseSpeed * h.MultiplierAt(h.Phase)
	return e
}

// patternOffset 移动模式带来的横向速度
func patternOffset(e entities.Enemy, t float64, ec *config.EnemyConfig) float64 {
	switch e.Pattern {
	case types.PatternZigzag:
		return ec.ZigzagAmplitude * math.Sin(2*math.Pi*(t+e.PhaseOffset)/ec.ZigzagPeriod)
	case types.PatternShielded:
		return ec.ShieldedAmplitude * math.Sin(2*math.Pi*(t+e.PhaseOffset)/ec.ShieldedPeriod)
	case types.PatternStraight:
	}
	return 0
}

// clampf 钳制到 [lo, hi]；hi < lo 时返回 lo
func clampf(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
