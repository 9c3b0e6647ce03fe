package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/entities"
	"github.com/decker502/feverdream/pkg/types"
)

// ValidPlayer 玩家状态是否满足不变量
func ValidPlayer(p *entities.Player, feverMax float64) bool {
	return p.Position.IsFinite() &&
		p.Health >= 0 && p.Health <= p.MaxHealth &&
		p.FeverMeter >= 0 && p.FeverMeter <= feverMax &&
		p.Score >= 0
}

// ValidEnemy 敌人状态是否满足不变量
func ValidEnemy(e *entities.Enemy) bool {
	return e.Valid() &&
		e.Health >= 0 && e.Health <= e.MaxHealth &&
		e.Points >= 0
}

// ValidBullet 子弹状态是否满足不变量
func ValidBullet(b *entities.Bullet) bool {
	return b.Valid() && b.Damage > 0
}

// ValidPowerUp 道具状态是否满足不变量
func ValidPowerUp(p *entities.PowerUp) bool {
	return p.Valid() && p.Duration > 0
}

// ValidateState 检查整个状态，返回所有违反的不变量（errors.Join）
func ValidateState(s *GameState, cfg *config.GameConfig) error {
	var errs []error

	if s.Status < types.StatusReady || s.Status > types.StatusGameOver {
		errs = append(errs, fmt.Errorf("unknown status %d", int(s.Status)))
	}
	if !ValidPlayer(&s.Player, cfg.Fever.Max) {
		errs = append(errs, fmt.Errorf("invalid player: pos=%v health=%.2f/%.2f fever=%.2f score=%d",
			s.Player.Position, s.Player.Health, s.Player.MaxHealth, s.Player.FeverMeter, s.Player.Score))
	}
	for i := range s.Enemies {
		if !ValidEnemy(&s.Enemies[i]) {
			errs = append(errs, fmt.Errorf("invalid enemy %d", s.Enemies[i].ID))
		}
	}
	for i := range s.Bullets {
		if !ValidBullet(&s.Bullets[i]) {
			errs = append(errs, fmt.Errorf("invalid bullet %d", s.Bullets[i].ID))
		}
	}
	for i := range s.PowerUps {
		if !ValidPowerUp(&s.PowerUps[i]) {
			errs = append(errs, fmt.Errorf("invalid power-up %d", s.PowerUps[i].ID))
		}
	}
	if s.Level < 1 || s.Wave < 1 {
		errs = append(errs, fmt.Errorf("level/wave must be >= 1, got %d/%d", s.Level, s.Wave))
	}
	if s.WaveProgress < 0 || s.TotalWaves < 0 {
		errs = append(errs, fmt.Errorf("progress/total must be >= 0, got %d/%d", s.WaveProgress, s.TotalWaves))
	}
	if s.Elapsed < 0 {
		errs = append(errs, fmt.Errorf("elapsed must be >= 0, got %v", s.Elapsed))
	}
	return errors.Join(errs...)
}

// SanitizeState 把状态拉回合法范围，不会失败
//
//   - 玩家生命钳制到 [0, MaxHealth]，狂热值到 [0, Fever.Max]，分数 >= 0
//   - 玩家坐标非有限时回到出生点
//   - 不合法的敌人/子弹/道具被过滤
//   - level/wave >= 1，progress/total >= 0，elapsed >= 0
func SanitizeState(s GameState, cfg *config.GameConfig) GameState {
	p := s.Player
	if !(p.MaxHealth > 0) || math.IsInf(p.MaxHealth, 0) {
		p.MaxHealth = cfg.Player.MaxHealth
	}
	p.Health = clamp(p.Health, 0, p.MaxHealth)
	p.FeverMeter = clamp(p.FeverMeter, 0, cfg.Fever.Max)
	if p.Score < 0 {
		p.Score = 0
	}
	if !p.Position.IsFinite() {
		p.Position = entities.Vec2{X: cfg.Player.SpawnX, Y: cfg.Player.SpawnY}
	}
	if !p.Velocity.IsFinite() {
		p.Velocity = entities.Vec2{}
	}
	if p.InvulnerableFor < 0 {
		p.InvulnerableFor = 0
	}
	s.Player = p

	s.Enemies = filter(s.Enemies, ValidEnemy)
	s.Bullets = filter(s.Bullets, ValidBullet)
	s.PowerUps = filter(s.PowerUps, ValidPowerUp)

	s.Level = max(s.Level, 1)
	s.Wave = max(s.Wave, 1)
	s.WaveProgress = max(s.WaveProgress, 0)
	s.TotalWaves = max(s.TotalWaves, 0)
	if s.Elapsed < 0 {
		s.Elapsed = 0
	}
	if math.IsNaN(s.Shake) || s.Shake < 0 {
		s.Shake = 0
	}
	return s
}

// clamp NaN 视为下界
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// filter 保留满足条件的元素；全部满足时返回原切片，否则返回新切片
func filter[T any](items []T, keep func(*T) bool) []T {
	for i := range items {
		if keep(&items[i]) {
			continue
		}
		out := make([]T, 0, len(items)-1)
		out = append(out, items[:i]...)
		for j := i + 1; j < len(items); j++ {
			if keep(&items[j]) {
				out = append(out, items[j])
			}
		}
		return out
	}
	return items
}
