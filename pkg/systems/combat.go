package systems

import (
	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/entities"
	"github.com/decker502/feverdream/pkg/game"
)

// ResolveCombat 结算玩家子弹与敌人的碰撞
//
// 每发子弹至多命中一个敌人（按敌人顺序取第一个相交的存活敌人）。
// 生命首次降到 <= 0 的敌人进入本帧击杀集合，只奖励一次：
// 分数为敌人分值（双倍得分时乘 2），狂热值增加 Fever.PerKill。
// 返回新状态与本帧击杀数。
func ResolveCombat(s game.GameState, scoreDoubler bool, cfg *config.GameConfig) (game.GameState, int) {
	if len(s.Bullets) == 0 || len(s.Enemies) == 0 {
		return s, 0
	}

	enemies := make([]entities.Enemy, len(s.Enemies))
	copy(enemies, s.Enemies)
	killed := make(map[entities.EntityID]bool)

	bullets := make([]entities.Bullet, 0, len(s.Bullets))
	for _, b := range s.Bullets {
		if !b.IsPlayerBullet {
			bullets = append(bullets, b)
			continue
		}
		hit := false
		for i := range enemies {
			e := &enemies[i]
			if killed[e.ID] || !Overlaps(b.GameObject, e.GameObject) {
				continue
			}
			hit = true
			e.Health -= b.Damage
			if e.Health <= 0 {
				killed[e.ID] = true
				s.Player = rewardKill(s.Player, *e, scoreDoubler, cfg)
			}
			break
		}
		if !hit {
			bullets = append(bullets, b)
		}
	}

	if len(killed) > 0 {
		alive := make([]entities.Enemy, 0, len(enemies)-len(killed))
		for _, e := range enemies {
			if !killed[e.ID] {
				alive = append(alive, e)
			}
		}
		enemies = alive
	}

	s.Enemies = enemies
	s.Bullets = bullets
	s.Kills += len(killed)
	return s, len(killed)
}

// rewardKill 击杀奖励
func rewardKill(p entities.Player, e entities.Enemy, scoreDoubler bool, cfg *config.GameConfig) entities.Player {
	points := e.Points
	if scoreDoubler {
		points *= 2
	}
	p.Score += points
	p.FeverMeter = min(p.FeverMeter+cfg.Fever.PerKill, cfg.Fever.Max)
	return p
}

// ResolveContact 结算玩家与敌人的接触伤害
//
// 玩家无敌或有护盾时不受伤；否则只要与任一敌人相交，本帧恰好扣 1 点生命，
// 进入无敌时间并提高屏幕震动。
func ResolveContact(s game.GameState, shield bool, cfg *config.GameConfig) game.GameState {
	p := s.Player
	if p.Invulnerable || shield {
		return s
	}
	for _, e := range s.Enemies {
		if !Overlaps(p.GameObject, e.GameObject) {
			continue
		}
		p.Health--
		p.Invulnerable = true
		p.InvulnerableFor = cfg.Player.Invulnerability
		s.Player = p
		s.Shake = max(s.Shake, cfg.Effects.HitShake)
		return s
	}
	return s
}
