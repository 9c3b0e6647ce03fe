package entities

import (
	"time"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/types"
)

// HoverState 头目类敌人的悬停阶段状态机
//
// 状态: descending(Phase) -> hovering(Phase) -> descending(Phase+1) ...
// Phase >= len(Thresholds) 后不再悬停。
// 三个表切片在生成后只读，敌人值复制时可共享底层数组。
type HoverState struct {
	Phase            int
	Thresholds       []float64 // 场地高度比例，升序
	Durations        []time.Duration
	SpeedMultipliers []float64

	Hovering           bool
	PhaseStartedAt     time.Duration // 进入当前悬停时的游戏时钟
	HealthAtHoverStart float64
}

// Done 所有悬停阶段均已完成
func (h *HoverState) Done() bool {
	return h.Phase >= len(h.Thresholds)
}

// SpeedMultiplier 当前阶段的纵向速度倍率，超出表长度时取最后一项
func (h *HoverState) SpeedMultiplier() float64 {
	return h.MultiplierAt(h.Phase)
}

// MultiplierAt 指定阶段的速度倍率 SpeedMultipliers[min(phase, n-1)]，空表返回 1
func (h *HoverState) MultiplierAt(phase int) float64 {
	n := len(h.SpeedMultipliers)
	if n == 0 {
		return 1
	}
	if phase >= n {
		phase = n - 1
	}
	if phase < 0 {
		phase = 0
	}
	return h.SpeedMultipliers[phase]
}

// Enemy 敌人实体
type Enemy struct {
	GameObject

	Variant types.EnemyVariant
	Points  int
	Pattern types.EnemyPattern

	BaseSpeed  float64 // 生成时的纵向速度
	BaseWidth  float64 // 风暴缩放以此为基准
	BaseHeight float64

	// PhaseOffset 正弦摆动的相位偏移（秒），避免同屏敌人同步摆动
	PhaseOffset float64

	Hover HoverState
}

// NewNormalEnemy 创建普通敌人
func NewNormalEnemy(id EntityID, cfg *config.EnemyConfig, pos, vel Vec2, pattern types.EnemyPattern, phaseOffset float64) Enemy {
	n := cfg.Normal
	return Enemy{
		GameObject: GameObject{
			ID:        id,
			Position:  pos,
			Velocity:  vel,
			Width:     n.Width,
			Height:    n.Height,
			Health:    n.Health,
			MaxHealth: n.Health,
		},
		Variant:     types.EnemyNormal,
		Points:      n.Points,
		Pattern:     pattern,
		BaseSpeed:   vel.Y,
		BaseWidth:   n.Width,
		BaseHeight:  n.Height,
		PhaseOffset: phaseOffset,
	}
}

// NewBossEnemy 创建小头目或头目
//
// 生命值与分值随关卡成长: base + (level-1)*perLevel。
// thresholds 由调用方完成抖动与排序。
func NewBossEnemy(id EntityID, variant types.EnemyVariant, cfg *config.EnemyConfig, level int, x float64, thresholds []float64, phaseOffset float64) Enemy {
	b := cfg.BossConfigFor(variant)
	if b == nil {
		b = &cfg.MiniBoss
		variant = types.EnemyMiniBoss
	}
	if level < 1 {
		level = 1
	}

	health := b.BaseHealth + float64(level-1)*b.HealthPerLevel
	speed := cfg.BaseSpeed * b.SpeedMultiplier

	pattern := types.PatternZigzag
	if variant == types.EnemyBoss {
		pattern = types.PatternShielded
	}

	return Enemy{
		GameObject: GameObject{
			ID:        id,
			Position:  Vec2{X: x, Y: -b.Height},
			Velocity:  Vec2{Y: speed},
			Width:     b.Width,
			Height:    b.Height,
			Health:    health,
			MaxHealth: health,
		},
		Variant:     variant,
		Points:      b.Points + (level-1)*b.PointsPerLevel,
		Pattern:     pattern,
		BaseSpeed:   speed,
		BaseWidth:   b.Width,
		BaseHeight:  b.Height,
		PhaseOffset: phaseOffset,
		Hover: HoverState{
			Thresholds:       thresholds,
			Durations:        b.Hover.Durations,
			SpeedMultipliers: b.Hover.SpeedMultipliers,
		},
	}
}

// IsBossClass 是否拥有悬停状态机
func (e *Enemy) IsBossClass() bool {
	return e.Variant.IsBossClass()
}
