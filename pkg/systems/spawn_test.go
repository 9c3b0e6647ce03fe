package systems

import (
	"math"
	"sort"
	"testing"
	"time"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/types"
)

func TestBossChances(t *testing.T) {
	cfg := config.DefaultGameConfig()
	tests := []struct {
		name         string
		level, wave  int
		wantMini     float64
		wantBoss     float64
	}{
		{"start", 1, 1, 1, 0.2},
		{"level 3 wave 2", 3, 2, 1 + 1 + 0.2, 0.2 + 0.6 + 0.1},
		{"capped", 40, 10, 8, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mini, boss := BossChances(tt.level, tt.wave, &cfg.Enemies)
			if math.Abs(mini-tt.wantMini) > 1e-9 || math.Abs(boss-tt.wantBoss) > 1e-9 {
				t.Errorf("BossChances(%d,%d) = %.3f/%.3f, want %.3f/%.3f",
					tt.level, tt.wave, mini, boss, tt.wantMini, tt.wantBoss)
			}
		})
	}
}

func TestSelectWeighted(t *testing.T) {
	table := config.DefaultPowerUpTable()
	total := table.TotalWeight()

	tests := []struct {
		name string
		roll float64
		want types.PowerUpKind
	}{
		{"zero picks first", 0, types.PowerUpSpreadShot},
		{"boundary of first", 30, types.PowerUpSpreadShot},
		{"just past first", 30.0001, types.PowerUpShield},
		{"total minus epsilon picks last", total - 1e-9, types.PowerUpRealityWarp},
		{"overflow picks last", total + 5, types.PowerUpRealityWarp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectWeighted(table, tt.roll)
			if !ok || got.Kind != tt.want {
				t.Errorf("SelectWeighted(%.6f) = %v (%v), want %v", tt.roll, got.Kind, ok, tt.want)
			}
		})
	}
}

func TestSelectWeightedSkipsZeroWeight(t *testing.T) {
	table := &config.PowerUpTable{Entries: []config.PowerUpEntry{
		{Kind: types.PowerUpSword, Weight: 0, Duration: time.Second},
		{Kind: types.PowerUpMagnet, Weight: 2, Duration: time.Second},
		{Kind: types.PowerUpShield, Weight: 0, Duration: time.Second},
	}}

	for _, roll := range []float64{0, 1, 2 - 1e-9} {
		got, ok := SelectWeighted(table, roll)
		if !ok || got.Kind != types.PowerUpMagnet {
			t.Errorf("SelectWeighted(%v) = %v, want magnet", roll, got.Kind)
		}
	}

	if _, ok := SelectWeighted(&config.PowerUpTable{}, 0); ok {
		t.Error("empty table should select nothing")
	}
}

func TestSpawnEnemiesInterval(t *testing.T) {
	cfg := config.DefaultGameConfig()
	f := playingFrame(cfg)

	f = SpawnEnemies(f, &scriptedRandom{}, cfg)
	if len(f.State.Enemies) != 1 {
		t.Fatalf("expected 1 enemy at t=0, got %d", len(f.State.Enemies))
	}
	if f.Side.NextEnemySpawnAt != cfg.Enemies.SpawnInterval {
		t.Errorf("NextEnemySpawnAt = %v", f.Side.NextEnemySpawnAt)
	}

	f.State.Elapsed = cfg.Enemies.SpawnInterval - time.Millisecond
	f = SpawnEnemies(f, &scriptedRandom{}, cfg)
	if len(f.State.Enemies) != 1 {
		t.Errorf("spawned before interval elapsed: %d enemies", len(f.State.Enemies))
	}
}

func TestSpawnEnemiesVariants(t *testing.T) {
	cfg := config.DefaultGameConfig()

	tests := []struct {
		name      string
		level     int
		rng       *scriptedRandom
		wantCount int
		variant   types.EnemyVariant
		pattern   types.EnemyPattern
	}{
		{
			name:      "boss roll",
			level:     1,
			rng:       &scriptedRandom{floats: []float64{0.001}}, // 0.1 < 0.2
			wantCount: 1,
			variant:   types.EnemyBoss,
			pattern:   types.PatternShielded,
		},
		{
			name:      "mini-boss roll",
			level:     1,
			rng:       &scriptedRandom{floats: []float64{0.01}}, // 1.0 in [0.2, 1.2)
			wantCount: 1,
			variant:   types.EnemyMiniBoss,
			pattern:   types.PatternZigzag,
		},
		{
			name:      "single normal",
			level:     1,
			rng:       &scriptedRandom{floats: []float64{0.5}},
			wantCount: 1,
			variant:   types.EnemyNormal,
			pattern:   types.PatternStraight,
		},
		{
			name:      "double normal from level 3",
			level:     3,
			rng:       &scriptedRandom{floats: []float64{0.5}, ints: []int{1}},
			wantCount: 2,
			variant:   types.EnemyNormal,
			pattern:   types.PatternStraight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := playingFrame(cfg)
			f.State.Level = tt.level
			f = SpawnEnemies(f, tt.rng, cfg)

			if len(f.State.Enemies) != tt.wantCount {
				t.Fatalf("spawned %d enemies, want %d", len(f.State.Enemies), tt.wantCount)
			}
			for _, e := range f.State.Enemies {
				if e.Variant != tt.variant || e.Pattern != tt.pattern {
					t.Errorf("got %v/%v, want %v/%v", e.Variant, e.Pattern, tt.variant, tt.pattern)
				}
				if e.Position.Y != -e.Height {
					t.Errorf("enemy should spawn just above the playfield, y=%.1f", e.Position.Y)
				}
				if e.Position.X < 0 || e.Position.X > cfg.Playfield.Width-e.Width {
					t.Errorf("enemy x=%.1f out of range", e.Position.X)
				}
			}
		})
	}
}

func TestSpawnNormalDiagonalAndZigzag(t *testing.T) {
	cfg := config.DefaultGameConfig()
	// roll, x, diagonal(<0.15), 方向(<0.5 向左), zigzag(<0.3), phase
	rng := &scriptedRandom{floats: []float64{0.5, 0.25, 0.1, 0.2, 0.1, 0.5}}

	f := SpawnEnemies(playingFrame(cfg), rng, cfg)
	e := f.State.Enemies[0]
	if e.Velocity.X != -cfg.Enemies.BaseSpeed*cfg.Enemies.DiagonalSpread {
		t.Errorf("vx = %.2f, want %.2f", e.Velocity.X, -cfg.Enemies.BaseSpeed*cfg.Enemies.DiagonalSpread)
	}
	if e.Velocity.Y != cfg.Enemies.BaseSpeed*cfg.Enemies.DiagonalSpeedBoost || e.BaseSpeed != e.Velocity.Y {
		t.Errorf("vy = %.2f, base = %.2f", e.Velocity.Y, e.BaseSpeed)
	}
	if e.Pattern != types.PatternZigzag {
		t.Errorf("pattern = %v, want zigzag", e.Pattern)
	}
}

func TestSpawnBossThresholdsJitteredAndSorted(t *testing.T) {
	cfg := config.DefaultGameConfig()
	// roll 选中头目，随后 4 个阈值抖动分别取 0 与 1 的两端
	rng := &scriptedRandom{floats: []float64{0.0, 0.999, 0.0, 0.999, 0.0}}

	f := SpawnEnemies(playingFrame(cfg), rng, cfg)
	e := f.State.Enemies[0]
	th := e.Hover.Thresholds
	if len(th) != 4 {
		t.Fatalf("thresholds = %v", th)
	}
	if !sort.Float64sAreSorted(th) {
		t.Errorf("thresholds not sorted: %v", th)
	}
	jitter := cfg.Enemies.Boss.Hover.Jitter
	for i, base := range cfg.Enemies.Boss.Hover.Thresholds {
		if math.Abs(th[i]-base) > jitter+1e-9 {
			t.Errorf("threshold %d = %.4f, more than %.2f from %.2f", i, th[i], jitter, base)
		}
	}
}

func TestSpawnPowerUps(t *testing.T) {
	cfg := config.DefaultGameConfig()
	table := config.DefaultPowerUpTable()
	f := playingFrame(cfg)

	f = SpawnPowerUps(f, &scriptedRandom{}, table, cfg)
	if len(f.State.PowerUps) != 0 {
		t.Fatal("power-up spawned before the first interval")
	}

	f.State.Elapsed = cfg.PowerUps.SpawnInterval
	f = SpawnPowerUps(f, &scriptedRandom{floats: []float64{0, 0.5}}, table, cfg)
	if len(f.State.PowerUps) != 1 {
		t.Fatalf("expected 1 power-up, got %d", len(f.State.PowerUps))
	}
	p := f.State.PowerUps[0]
	if p.Kind != types.PowerUpSpreadShot || p.Duration != 5*time.Second || p.Rarity != types.RarityCommon {
		t.Errorf("unexpected power-up %+v", p)
	}
	if f.Side.NextPowerUpSpawnAt != 2*cfg.PowerUps.SpawnInterval {
		t.Errorf("NextPowerUpSpawnAt = %v", f.Side.NextPowerUpSpawnAt)
	}
}
