package systems

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/entities"
	"github.com/decker502/feverdream/pkg/game"
	"github.com/decker502/feverdream/pkg/types"
)

func TestMovePlayer(t *testing.T) {
	cfg := config.DefaultGameConfig()
	base := entities.NewPlayer(1, &cfg.Player)

	tests := []struct {
		name    string
		start   entities.Vec2
		held    Held
		dt      float64
		wantPos entities.Vec2
	}{
		{"idle", entities.Vec2{X: 400, Y: 550}, Held{}, 0.1, entities.Vec2{X: 400, Y: 550}},
		{"left", entities.Vec2{X: 400, Y: 550}, Held{Left: true}, 0.1, entities.Vec2{X: 370, Y: 550}},
		{"left and right cancel", entities.Vec2{X: 400, Y: 550}, Held{Left: true, Right: true}, 0.1, entities.Vec2{X: 400, Y: 550}},
		{"clamp left edge", entities.Vec2{X: 5, Y: 300}, Held{Left: true}, 0.1, entities.Vec2{X: 0, Y: 300}},
		{"clamp bottom edge", entities.Vec2{X: 100, Y: 555}, Held{Down: true}, 1, entities.Vec2{X: 100, Y: 560}},
		{"clamp right edge", entities.Vec2{X: 750, Y: 0}, Held{Right: true, Up: true}, 1, entities.Vec2{X: 760, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			p.Position = tt.start
			got := MovePlayer(p, tt.held, tt.dt, cfg)
			if math.Abs(got.Position.X-tt.wantPos.X) > 1e-9 || math.Abs(got.Position.Y-tt.wantPos.Y) > 1e-9 {
				t.Errorf("position = %v, want %v", got.Position, tt.wantPos)
			}
		})
	}
}

func TestFirePlayerBullets(t *testing.T) {
	cfg := config.DefaultGameConfig()

	t.Run("cooldown", func(t *testing.T) {
		f := playingFrame(cfg)
		f = FirePlayerBullets(f, true, cfg)
		if len(f.State.Bullets) != 1 {
			t.Fatalf("expected 1 bullet, got %d", len(f.State.Bullets))
		}
		if f.Side.NextShotAt != cfg.Player.FireInterval {
			t.Errorf("NextShotAt = %v, want %v", f.Side.NextShotAt, cfg.Player.FireInterval)
		}

		f.State.Elapsed = cfg.Player.FireInterval - time.Millisecond
		f = FirePlayerBullets(f, true, cfg)
		if len(f.State.Bullets) != 1 {
			t.Errorf("fired during cooldown: %d bullets", len(f.State.Bullets))
		}

		f.State.Elapsed = cfg.Player.FireInterval
		f = FirePlayerBullets(f, true, cfg)
		if len(f.State.Bullets) != 2 {
			t.Errorf("expected second shot after cooldown, got %d bullets", len(f.State.Bullets))
		}
	})

	t.Run("not held", func(t *testing.T) {
		f := FirePlayerBullets(playingFrame(cfg), false, cfg)
		if len(f.State.Bullets) != 0 {
			t.Errorf("fired without fire held")
		}
	})

	t.Run("spread sword", func(t *testing.T) {
		f := playingFrame(cfg)
		f.Side.Effects = f.Side.Effects.
			With(types.PowerUpSpreadShot, time.Minute).
			With(types.PowerUpSword, time.Minute)
		f = FirePlayerBullets(f, true, cfg)

		if len(f.State.Bullets) != 3 {
			t.Fatalf("expected 3 bullets, got %d", len(f.State.Bullets))
		}
		vxs := map[float64]bool{}
		for _, b := range f.State.Bullets {
			if b.Type != types.BulletSword || b.Damage != 5 {
				t.Errorf("expected sword bullet with damage 5, got %v/%.1f", b.Type, b.Damage)
			}
			vxs[b.Velocity.X] = true
		}
		if !vxs[0] || !vxs[50] || !vxs[-50] {
			t.Errorf("unexpected spread velocities %v", vxs)
		}
		ids := map[entities.EntityID]bool{}
		for _, b := range f.State.Bullets {
			ids[b.ID] = true
		}
		if len(ids) != 3 {
			t.Errorf("bullet ids not unique: %v", ids)
		}
	})
}

func TestMoveBulletsMargin(t *testing.T) {
	cfg := config.DefaultGameConfig()
	bullets := []entities.Bullet{
		testBullet(1, 100, -10, 1),  // 底边 -2，仍在边距内
		testBullet(2, 100, -19, 1),  // 底边 -11，超出
		testBullet(3, 100, 300, 1),  // 场内
		testBullet(4, 811, 300, 1),  // 右侧超出
		testBullet(5, -13, 300, 1),  // 右边 -9，在边距内
	}
	for i := range bullets {
		bullets[i].Velocity = entities.Vec2{}
	}

	got := MoveBullets(bullets, 0.016, &cfg.Playfield)
	want := []entities.EntityID{1, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("kept %d bullets, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("bullet %d = %d, want %d", i, got[i].ID, id)
		}
	}
}

// TestMagnetSpeedCap 磁铁吸引后的速度永远不超过 MaxVelocity
func TestMagnetSpeedCap(t *testing.T) {
	cfg := config.DefaultGameConfig()
	player := entities.NewPlayer(1, &cfg.Player)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		p := entities.PowerUp{
			GameObject: entities.GameObject{
				ID:       entities.EntityID(i + 2),
				Position: entities.Vec2{X: 200 + rng.Float64()*400, Y: 300 + rng.Float64()*250},
				Velocity: entities.Vec2{X: (rng.Float64() - 0.5) * 4000, Y: (rng.Float64() - 0.5) * 4000},
				Width:    20,
				Height:   20,
			},
			Duration: time.Second,
		}
		dt := rng.Float64() * 0.1
		out := MovePowerUps([]entities.PowerUp{p}, player, true, dt, cfg)
		if len(out) == 0 {
			continue
		}
		if speed := out[0].Velocity.Len(); speed > cfg.PowerUps.Magnet.MaxVelocity+1e-9 {
			t.Fatalf("iteration %d: speed %.3f exceeds cap %.1f", i, speed, cfg.PowerUps.Magnet.MaxVelocity)
		}
	}
}

func TestMovePowerUps(t *testing.T) {
	cfg := config.DefaultGameConfig()
	player := entities.NewPlayer(1, &cfg.Player)

	far := entities.PowerUp{GameObject: entities.GameObject{ID: 2, Position: entities.Vec2{X: 10, Y: 0}, Width: 20, Height: 20}, Duration: time.Second}
	near := entities.PowerUp{GameObject: entities.GameObject{ID: 3, Position: entities.Vec2{X: 300, Y: 500}, Width: 20, Height: 20}, Duration: time.Second}
	gone := entities.PowerUp{GameObject: entities.GameObject{ID: 4, Position: entities.Vec2{X: 10, Y: 651}, Width: 20, Height: 20}, Duration: time.Second}

	out := MovePowerUps([]entities.PowerUp{far, near, gone}, player, true, 0.1, cfg)
	if len(out) != 2 {
		t.Fatalf("expected 2 power-ups, got %d", len(out))
	}
	if out[0].Velocity != (entities.Vec2{Y: 80}) {
		t.Errorf("power-up outside magnet radius should fall straight, v=%v", out[0].Velocity)
	}
	if out[1].Velocity.X <= 0 {
		t.Errorf("power-up left of the player should be pulled right, v=%v", out[1].Velocity)
	}

	noMagnet := MovePowerUps([]entities.PowerUp{near}, player, false, 0.1, cfg)
	if noMagnet[0].Velocity != (entities.Vec2{Y: 80}) || math.Abs(noMagnet[0].Position.Y-508) > 1e-9 {
		t.Errorf("without magnet: pos=%v v=%v", noMagnet[0].Position, noMagnet[0].Velocity)
	}
}

func bossForHover(cfg *config.GameConfig) entities.Enemy {
	thresholds := []float64{0.15, 0.30, 0.45, 0.60}
	e := entities.NewBossEnemy(5, types.EnemyMiniBoss, &cfg.Enemies, 1, 100, thresholds, 0)
	e.Pattern = types.PatternStraight
	return e
}

// TestHoverTransitionAtExactDuration 悬停恰好 Durations[0] 时进入下一阶段并使用 SpeedMultipliers[1]
func TestHoverTransitionAtExactDuration(t *testing.T) {
	cfg := config.DefaultGameConfig()
	start := 3 * time.Second

	e := bossForHover(cfg)
	e.Position.Y = 90
	e.Hover.Hovering = true
	e.Hover.PhaseStartedAt = start
	e.Hover.HealthAtHoverStart = e.Health

	s := game.GameState{Level: 1, Wave: 1, Enemies: []entities.Enemy{e}}

	s.Elapsed = start + e.Hover.Durations[0] - time.Nanosecond
	before := MoveEnemies(s, 0.016, cfg)
	if !before[0].Hover.Hovering || before[0].Hover.Phase != 0 {
		t.Fatalf("left hover early: %+v", before[0].Hover)
	}
	if before[0].Position.Y != 90 {
		t.Errorf("hovering enemy moved vertically to %.3f", before[0].Position.Y)
	}

	s.Elapsed = start + e.Hover.Durations[0]
	after := MoveEnemies(s, 0.016, cfg)
	got := after[0]
	if got.Hover.Hovering || got.Hover.Phase != 1 {
		t.Fatalf("expected descending(1), got %+v", got.Hover)
	}
	want := e.BaseSpeed * e.Hover.SpeedMultipliers[1]
	if math.Abs(got.Velocity.Y-want) > 1e-9 {
		t.Errorf("Velocity.Y = %.3f, want %.3f", got.Velocity.Y, want)
	}
	if got.Position.Y <= 90 {
		t.Errorf("enemy should descend after hover, y=%.3f", got.Position.Y)
	}
}

func TestHoverStartsAtThreshold(t *testing.T) {
	cfg := config.DefaultGameConfig()
	e := bossForHover(cfg)
	e.Position.Y = 89.9
	e.Velocity.Y = 10

	s := game.GameState{Level: 1, Wave: 1, Elapsed: 7 * time.Second, Enemies: []entities.Enemy{e}}
	got := MoveEnemies(s, 0.1, cfg)[0]

	if !got.Hover.Hovering || got.Hover.Phase != 0 {
		t.Fatalf("expected hovering(0), got %+v", got.Hover)
	}
	if got.Hover.PhaseStartedAt != 7*time.Second || got.Hover.HealthAtHoverStart != e.Health {
		t.Errorf("hover bookkeeping wrong: %+v", got.Hover)
	}
}

func TestHoverTerminalAfterLastPhase(t *testing.T) {
	cfg := config.DefaultGameConfig()
	e := bossForHover(cfg)
	e.Hover.Phase = len(e.Hover.Thresholds)
	e.Position.Y = 500
	e.Velocity.Y = e.BaseSpeed * 2

	s := game.GameState{Level: 1, Wave: 1, Enemies: []entities.Enemy{e}}
	got := MoveEnemies(s, 0.1, cfg)[0]
	if got.Hover.Hovering {
		t.Error("boss hovered after finishing all phases")
	}
	if math.Abs(got.Position.Y-(500+e.BaseSpeed*2*0.1)) > 1e-9 {
		t.Errorf("y = %.3f", got.Position.Y)
	}
}

func TestShieldedBossBreaksHoverEarly(t *testing.T) {
	cfg := config.DefaultGameConfig()
	e := entities.NewBossEnemy(9, types.EnemyBoss, &cfg.Enemies, 1, 100, []float64{0.15, 0.3}, 0)
	e.Position.Y = 90
	e.Hover.Hovering = true
	e.Hover.PhaseStartedAt = 0
	e.Hover.HealthAtHoverStart = e.MaxHealth
	e.Health = e.MaxHealth - cfg.Enemies.Boss.ShieldBreakFraction*e.MaxHealth

	s := game.GameState{Level: 1, Wave: 1, Elapsed: time.Second, Enemies: []entities.Enemy{e}}
	got := MoveEnemies(s, 0.016, cfg)[0]
	if got.Hover.Hovering || got.Hover.Phase != 1 {
		t.Errorf("shielded boss should break hover after losing enough health, got %+v", got.Hover)
	}
}

func TestMoveEnemiesLevelSpeedAndExit(t *testing.T) {
	cfg := config.DefaultGameConfig()
	e := testEnemy(1, 100, 100)
	e.Velocity = entities.Vec2{Y: 50}
	exiting := testEnemy(2, 100, 649)
	exiting.Velocity = entities.Vec2{Y: 50}

	s := game.GameState{Level: 3, Wave: 1, Enemies: []entities.Enemy{e, exiting}}
	got := MoveEnemies(s, 0.5, cfg)

	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only enemy 1 to remain, got %v", got)
	}
	// (50 + 2*20) * 0.5 = 45
	if math.Abs(got[0].Position.Y-145) > 1e-9 {
		t.Errorf("y = %.3f, want 145", got[0].Position.Y)
	}
}

func TestZigzagClampedToPlayfield(t *testing.T) {
	cfg := config.DefaultGameConfig()
	e := testEnemy(1, 769, 100)
	e.Pattern = types.PatternZigzag
	e.PhaseOffset = 0.5 // sin(π/2) = 1，向右摆动最大

	s := game.GameState{Level: 1, Wave: 1, Enemies: []entities.Enemy{e}}
	got := MoveEnemies(s, 0.1, cfg)[0]
	if got.Position.X != cfg.Playfield.Width-e.Width {
		t.Errorf("x = %.3f, want clamped to %.1f", got.Position.X, cfg.Playfield.Width-e.Width)
	}
}

func TestMoveEnemiesRemovesEnemiesLeavingTop(t *testing.T) {
	cfg := config.DefaultGameConfig()
	rising := testEnemy(1, 100, 10)
	rising.Velocity = entities.Vec2{Y: -100}
	// 已在顶部之外但仍向下移动的敌人保留
	entering := testEnemy(2, 200, -100)
	entering.Velocity = entities.Vec2{Y: 50}

	s := game.GameState{Level: 1, Wave: 1, Enemies: []entities.Enemy{rising, entering}}
	for i := 0; i < 60; i++ {
		s.Enemies = MoveEnemies(s, 1.0/60, cfg)
	}

	// rising: 10 - 100 = -90，-90+30 < -50
	if len(s.Enemies) != 1 || s.Enemies[0].ID != 2 {
		t.Fatalf("expected only the entering enemy to remain, got %v", s.Enemies)
	}
}
