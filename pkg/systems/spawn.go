package systems

import (
	"sort"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/entities"
	"github.com/decker502/feverdream/pkg/game"
	"github.com/decker502/feverdream/pkg/types"
)

// BossChances 当前关卡/波次下小头目与头目的出现概率（百分比）
//
// chance = min(Base + (level-1)*LevelBonus + (wave-1)*WaveBonus, Max)
func BossChances(level, wave int, ec *config.EnemyConfig) (miniBoss, boss float64) {
	return bossChance(level, wave, &ec.MiniBoss.Chance), bossChance(level, wave, &ec.Boss.Chance)
}

func bossChance(level, wave int, c *config.BossChanceConfig) float64 {
	v := c.Base + float64(level-1)*c.LevelBonus + float64(wave-1)*c.WaveBonus
	return min(v, c.Max)
}

// SpawnEnemies 生成敌人，每个 SpawnInterval 至多决策一次
//
// 一次抽取 r ∈ [0,100)：r < boss 生成头目；r < boss+mini 生成小头目；
// 否则生成 1..MaxNormalCount(level) 个普通敌人。
func SpawnEnemies(f Frame, r Random, cfg *config.GameConfig) Frame {
	s := f.State
	if s.Elapsed < f.Side.NextEnemySpawnAt {
		return f
	}
	f.Side.NextEnemySpawnAt = s.Elapsed + cfg.Enemies.SpawnInterval

	ec := &cfg.Enemies
	miniPct, bossPct := BossChances(s.Level, s.Wave, ec)
	roll := r.Float64() * 100

	enemies := make([]entities.Enemy, len(s.Enemies), len(s.Enemies)+2)
	copy(enemies, s.Enemies)

	switch {
	case roll < bossPct:
		enemies = append(enemies, spawnBoss(&s, types.EnemyBoss, r, cfg))
	case roll < bossPct+miniPct:
		enemies = append(enemies, spawnBoss(&s, types.EnemyMiniBoss, r, cfg))
	default:
		count := 1 + r.Intn(ec.MaxNormalCount(s.Level))
		for i := 0; i < count; i++ {
			enemies = append(enemies, spawnNormal(&s, r, cfg))
		}
	}

	s.Enemies = enemies
	f.State = s
	return f
}

// spawnNormal 普通敌人：可能斜向移动，可能使用之字形模式
func spawnNormal(s *game.GameState, r Random, cfg *config.GameConfig) entities.Enemy {
	ec := &cfg.Enemies
	x := uniform(r, 0, cfg.Playfield.Width-ec.Normal.Width)
	vel := entities.Vec2{Y: ec.BaseSpeed}

	if chance(r, ec.DiagonalChance) {
		dir := 1.0
		if r.Float64() < 0.5 {
			dir = -1
		}
		vel.X = dir * ec.BaseSpeed * ec.DiagonalSpread
		vel.Y = ec.BaseSpeed * ec.DiagonalSpeedBoost
	}

	pattern := types.PatternStraight
	if chance(r, ec.ZigzagChance) {
		pattern = types.PatternZigzag
	}

	pos := entities.Vec2{X: x, Y: -ec.Normal.Height}
	return entities.NewNormalEnemy(s.AllocID(), ec, pos, vel, pattern, uniform(r, 0, ec.ZigzagPeriod))
}

// spawnBoss 头目类敌人：悬停阈值在配置值上抖动并重新排序
func spawnBoss(s *game.GameState, variant types.EnemyVariant, r Random, cfg *config.GameConfig) entities.Enemy {
	ec := &cfg.Enemies
	bc := ec.BossConfigFor(variant)

	thresholds := make([]float64, len(bc.Hover.Thresholds))
	for i, th := range bc.Hover.Thresholds {
		thresholds[i] = th + uniform(r, -bc.Hover.Jitter, bc.Hover.Jitter)
	}
	sort.Float64s(thresholds)

	x := uniform(r, 0, cfg.Playfield.Width-bc.Width)
	return entities.NewBossEnemy(s.AllocID(), variant, ec, s.Level, x, thresholds, uniform(r, 0, ec.ShieldedPeriod))
}

// SpawnPowerUps 每个 PowerUpSpawnInterval 掉落一个道具，种类按稀有度表加权选择
func SpawnPowerUps(f Frame, r Random, table *config.PowerUpTable, cfg *config.GameConfig) Frame {
	s := f.State
	if s.Elapsed < f.Side.NextPowerUpSpawnAt {
		return f
	}
	f.Side.NextPowerUpSpawnAt = s.Elapsed + cfg.PowerUps.SpawnInterval

	entry, ok := SelectWeighted(table, r.Float64()*table.TotalWeight())
	if !ok {
		return f
	}
	x := uniform(r, 0, cfg.Playfield.Width-cfg.PowerUps.Width)

	items := make([]entities.PowerUp, len(s.PowerUps), len(s.PowerUps)+1)
	copy(items, s.PowerUps)
	s.PowerUps = append(items, entities.NewPowerUp(s.AllocID(), &cfg.PowerUps, entry, x))
	f.State = s
	return f
}

// SelectWeighted 按累减法从稀有度表中选择一项
//
// roll 取值 [0, total)。按表顺序依次减去各项权重，首个使 roll <= 0 的项被选中；
// 权重为 0 的项永远不会被选中。roll 超出合计时返回最后一个非零项。
func SelectWeighted(table *config.PowerUpTable, roll float64) (config.PowerUpEntry, bool) {
	var last config.PowerUpEntry
	found := false
	for _, e := range table.Entries {
		if e.Weight <= 0 {
			continue
		}
		last, found = e, true
		roll -= e.Weight
		if roll <= 0 {
			return e, true
		}
	}
	return last, found
}
