package config

import (
	"fmt"
	"os"
	"time"

	"github.com/decker502/feverdream/pkg/embedded"
	"github.com/decker502/feverdream/pkg/types"
	"gopkg.in/yaml.v3"
)

// GameConfig 模拟核心的全部可调参数
//
// 配置文件位置: data/game_config.yaml
// 所有时间字段使用 Go duration 字符串（如 "200ms"、"10s"）。
type GameConfig struct {
	Playfield   PlayfieldConfig   `yaml:"playfield"`
	Player      PlayerConfig      `yaml:"player"`
	Bullets     BulletConfig      `yaml:"bullets"`
	Enemies     EnemyConfig       `yaml:"enemies"`
	PowerUps    PowerUpConfig     `yaml:"powerUps"`
	Fever       FeverConfig       `yaml:"fever"`
	Storm       StormConfig       `yaml:"storm"`
	Effects     EffectsConfig     `yaml:"effects"`
	Progression ProgressionConfig `yaml:"progression"`
	Loop        LoopConfig        `yaml:"loop"`

	// Bindings 逻辑控制键到按键名的映射（如 left: [A, ArrowLeft]）
	Bindings map[string][]string `yaml:"bindings"`
}

// PlayfieldConfig 场地尺寸与出界边距
type PlayfieldConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	BulletMargin  float64 `yaml:"bulletMargin"`  // 子弹超出场地该距离后移除
	EnemyMargin   float64 `yaml:"enemyMargin"`   // 敌人 Y > Height+EnemyMargin 后移除
	PowerUpMargin float64 `yaml:"powerUpMargin"` // 道具 Y > Height+PowerUpMargin 后移除
}

// PlayerConfig 玩家参数
type PlayerConfig struct {
	Speed           float64       `yaml:"speed"`
	Width           float64       `yaml:"width"`
	Height          float64       `yaml:"height"`
	MaxHealth       float64       `yaml:"maxHealth"`
	SpawnX          float64       `yaml:"spawnX"`
	SpawnY          float64       `yaml:"spawnY"`
	FireInterval    time.Duration `yaml:"fireInterval"`
	Invulnerability time.Duration `yaml:"invulnerability"` // 受击后的无敌时间
}

// BulletConfig 子弹参数
type BulletConfig struct {
	Speed                 float64 `yaml:"speed"`
	NormalWidth           float64 `yaml:"normalWidth"`
	NormalHeight          float64 `yaml:"normalHeight"`
	NormalDamage          float64 `yaml:"normalDamage"`
	SwordWidth            float64 `yaml:"swordWidth"`
	SwordHeight           float64 `yaml:"swordHeight"`
	SwordDamageMultiplier float64 `yaml:"swordDamageMultiplier"`
	SpreadHorizontalSpeed float64 `yaml:"spreadHorizontalSpeed"`
}

// EnemyConfig 敌人生成与移动参数
type EnemyConfig struct {
	BaseSpeed          float64       `yaml:"baseSpeed"`
	SpeedPerLevel      float64       `yaml:"speedPerLevel"`
	SpawnInterval      time.Duration `yaml:"spawnInterval"`
	DoubleSpawnLevel   int           `yaml:"doubleSpawnLevel"` // 从该关卡起一次最多生成 2 个普通敌人
	DiagonalChance     float64       `yaml:"diagonalChance"`
	DiagonalSpread     float64       `yaml:"diagonalSpread"`
	DiagonalSpeedBoost float64       `yaml:"diagonalSpeedBoost"`
	ZigzagChance       float64       `yaml:"zigzagChance"`
	ZigzagAmplitude    float64       `yaml:"zigzagAmplitude"`
	ZigzagPeriod       float64       `yaml:"zigzagPeriod"` // 秒
	ShieldedAmplitude  float64       `yaml:"shieldedAmplitude"`
	ShieldedPeriod     float64       `yaml:"shieldedPeriod"` // 秒

	Normal   NormalEnemyConfig `yaml:"normal"`
	MiniBoss BossConfig        `yaml:"miniBoss"`
	Boss     BossConfig        `yaml:"boss"`
}

// NormalEnemyConfig 普通敌人参数
type NormalEnemyConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Health float64 `yaml:"health"`
	Points int     `yaml:"points"`
}

// BossConfig 小头目/头目参数
type BossConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	BaseHealth      float64 `yaml:"baseHealth"`
	HealthPerLevel  float64 `yaml:"healthPerLevel"`
	Points          int     `yaml:"points"`
	PointsPerLevel  int     `yaml:"pointsPerLevel"`
	SpeedMultiplier float64 `yaml:"speedMultiplier"` // 生成时的纵向速度倍率

	Chance BossChanceConfig `yaml:"chance"`
	Hover  HoverConfig      `yaml:"hover"`

	// ShieldBreakFraction 护盾型头目在悬停期间损失该比例最大生命后提前离开
	ShieldBreakFraction float64 `yaml:"shieldBreakFraction"`
}

// BossChanceConfig 出现概率（百分比）
// chance = min(Base + (level-1)*LevelBonus + (wave-1)*WaveBonus, Max)
type BossChanceConfig struct {
	Base       float64 `yaml:"base"`
	Max        float64 `yaml:"max"`
	LevelBonus float64 `yaml:"levelBonus"`
	WaveBonus  float64 `yaml:"waveBonus"`
}

// HoverConfig 悬停阶段表，三个切片按阶段下标一一对应
type HoverConfig struct {
	Thresholds       []float64       `yaml:"thresholds"` // 场地高度的比例
	Jitter           float64         `yaml:"jitter"`
	Durations        []time.Duration `yaml:"durations"`
	SpeedMultipliers []float64       `yaml:"speedMultipliers"`
}

// PowerUpConfig 道具掉落参数
type PowerUpConfig struct {
	Width         float64       `yaml:"width"`
	Height        float64       `yaml:"height"`
	FallSpeed     float64       `yaml:"fallSpeed"`
	SpawnInterval time.Duration `yaml:"spawnInterval"`
	Magnet        MagnetConfig  `yaml:"magnet"`
}

// MagnetConfig 磁铁吸引参数
type MagnetConfig struct {
	Radius      float64 `yaml:"radius"`
	Strength    float64 `yaml:"strength"`
	Damping     float64 `yaml:"damping"`
	MaxVelocity float64 `yaml:"maxVelocity"`
}

// FeverConfig 狂热技能参数
type FeverConfig struct {
	PerKill        float64 `yaml:"perKill"`
	Max            float64 `yaml:"max"`
	ShakeIntensity float64 `yaml:"shakeIntensity"`
	NormalDamage   float64 `yaml:"normalDamage"`   // 普通敌人损失最大生命的比例
	MiniBossDamage float64 `yaml:"miniBossDamage"` // 小头目
	BossDamage     float64 `yaml:"bossDamage"`     // 头目
}

// StormConfig 现实风暴参数
type StormConfig struct {
	Duration      time.Duration `yaml:"duration"`
	Intensity     float64       `yaml:"intensity"`
	ChaosChance   float64       `yaml:"chaosChance"`
	ChaosMin      float64       `yaml:"chaosMin"`
	ChaosMax      float64       `yaml:"chaosMax"`
	DownBias      float64       `yaml:"downBias"`
	MinDownward   float64       `yaml:"minDownward"` // 扰动方向的最小纵向分量，保证敌人仍向下
	Jitter        float64       `yaml:"jitter"`
	ResizeChance  float64       `yaml:"resizeChance"`
	ResizeMin     float64       `yaml:"resizeMin"`
	ResizeMax     float64       `yaml:"resizeMax"`
	ShakeFloor    float64       `yaml:"shakeFloor"`
	SurvivalBonus int           `yaml:"survivalBonus"`
}

// EffectsConfig 屏幕震动参数
type EffectsConfig struct {
	HitShake            float64 `yaml:"hitShake"`
	ShakeDecayPerSecond float64 `yaml:"shakeDecayPerSecond"`
}

// ProgressionConfig 波次/关卡推进参数
// 波次击杀阈值 = KillsPerWaveBase + wave
// 每关波数 = WavesPerLevelBase + floor(level/2)
type ProgressionConfig struct {
	KillsPerWaveBase  int `yaml:"killsPerWaveBase"`
	WavesPerLevelBase int `yaml:"wavesPerLevelBase"`
}

// LoopConfig 主循环参数
type LoopConfig struct {
	MaxFrameDelta time.Duration `yaml:"maxFrameDelta"`
}

// DefaultGameConfig 返回内置默认配置，与 data/game_config.yaml 保持一致
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Playfield: PlayfieldConfig{
			Width:         800,
			Height:        600,
			BulletMargin:  10,
			EnemyMargin:   50,
			PowerUpMargin: 50,
		},
		Player: PlayerConfig{
			Speed:           300,
			Width:           40,
			Height:          40,
			MaxHealth:       3,
			SpawnX:          400,
			SpawnY:          550,
			FireInterval:    200 * time.Millisecond,
			Invulnerability: 2 * time.Second,
		},
		Bullets: BulletConfig{
			Speed:                 400,
			NormalWidth:           4,
			NormalHeight:          8,
			NormalDamage:          1,
			SwordWidth:            6,
			SwordHeight:           12,
			SwordDamageMultiplier: 5,
			SpreadHorizontalSpeed: 50,
		},
		Enemies: EnemyConfig{
			BaseSpeed:          50,
			SpeedPerLevel:      20,
			SpawnInterval:      800 * time.Millisecond,
			DoubleSpawnLevel:   3,
			DiagonalChance:     0.15,
			DiagonalSpread:     0.5,
			DiagonalSpeedBoost: 1.2,
			ZigzagChance:       0.3,
			ZigzagAmplitude:    100,
			ZigzagPeriod:       2,
			ShieldedAmplitude:  40,
			ShieldedPeriod:     4,
			Normal: NormalEnemyConfig{
				Width:  30,
				Height: 30,
				Health: 1,
				Points: 100,
			},
			MiniBoss: BossConfig{
				Width:           50,
				Height:          50,
				BaseHealth:      3,
				HealthPerLevel:  1,
				Points:          300,
				PointsPerLevel:  50,
				SpeedMultiplier: 0.8,
				Chance:          BossChanceConfig{Base: 1, Max: 8, LevelBonus: 0.5, WaveBonus: 0.2},
				Hover:           defaultHover(),
			},
			Boss: BossConfig{
				Width:               80,
				Height:              80,
				BaseHealth:          8,
				HealthPerLevel:      2,
				Points:              1000,
				PointsPerLevel:      200,
				SpeedMultiplier:     0.6,
				Chance:              BossChanceConfig{Base: 0.2, Max: 4, LevelBonus: 0.3, WaveBonus: 0.1},
				Hover:               defaultHover(),
				ShieldBreakFraction: 0.25,
			},
		},
		PowerUps: PowerUpConfig{
			Width:         20,
			Height:        20,
			FallSpeed:     80,
			SpawnInterval: 8 * time.Second,
			Magnet: MagnetConfig{
				Radius:      250,
				Strength:    800,
				Damping:     0.8,
				MaxVelocity: 600,
			},
		},
		Fever: FeverConfig{
			PerKill:        1,
			Max:            100,
			ShakeIntensity: 10,
			NormalDamage:   1,
			MiniBossDamage: 0.5,
			BossDamage:     0.25,
		},
		Storm: StormConfig{
			Duration:      10 * time.Second,
			Intensity:     1,
			ChaosChance:   0.02,
			ChaosMin:      0.5,
			ChaosMax:      2.5,
			DownBias:      0.5,
			MinDownward:   0.2,
			Jitter:        0.3,
			ResizeChance:  0.005,
			ResizeMin:     0.9,
			ResizeMax:     1.1,
			ShakeFloor:    3,
			SurvivalBonus: 5000,
		},
		Effects: EffectsConfig{
			HitShake:            15,
			ShakeDecayPerSecond: 30,
		},
		Progression: ProgressionConfig{
			KillsPerWaveBase:  5,
			WavesPerLevelBase: 3,
		},
		Loop: LoopConfig{
			MaxFrameDelta: 100 * time.Millisecond,
		},
		Bindings: DefaultBindings(),
	}
}

func defaultHover() HoverConfig {
	return HoverConfig{
		Thresholds:       []float64{0.15, 0.30, 0.45, 0.60},
		Jitter:           0.03,
		Durations:        []time.Duration{5 * time.Second, 4 * time.Second, 3 * time.Second, 2 * time.Second},
		SpeedMultipliers: []float64{1.0, 1.3, 1.6, 2.0},
	}
}

// DefaultBindings 默认按键绑定（ebiten 按键名）
func DefaultBindings() map[string][]string {
	return map[string][]string{
		"left":  {"A", "ArrowLeft"},
		"right": {"D", "ArrowRight"},
		"up":    {"W", "ArrowUp"},
		"down":  {"S", "ArrowDown"},
		"fire":  {"Space"},
	}
}

// LoadGameConfig 从外部文件加载配置
//
// 参数:
//   - path: 配置文件路径
//
// 返回:
//   - *GameConfig: 加载并校验后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// LoadEmbeddedGameConfig 从嵌入资源加载配置（如 "data/game_config.yaml"）
func LoadEmbeddedGameConfig(path string) (*GameConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded game config: %w", err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig 解析 YAML 配置
//
// 解析以默认配置为底，文件中未出现的字段保持默认值。
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
func (c *GameConfig) Validate() error {
	if c.Playfield.Width <= 0 || c.Playfield.Height <= 0 {
		return fmt.Errorf("playfield size must be > 0, got %.1fx%.1f", c.Playfield.Width, c.Playfield.Height)
	}
	if c.Player.Speed <= 0 {
		return fmt.Errorf("player.speed must be > 0, got %.1f", c.Player.Speed)
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		return fmt.Errorf("player size must be > 0, got %.1fx%.1f", c.Player.Width, c.Player.Height)
	}
	if c.Player.Width > c.Playfield.Width || c.Player.Height > c.Playfield.Height {
		return fmt.Errorf("player size %.1fx%.1f exceeds playfield", c.Player.Width, c.Player.Height)
	}
	if c.Player.MaxHealth <= 0 {
		return fmt.Errorf("player.maxHealth must be > 0, got %.1f", c.Player.MaxHealth)
	}
	if c.Player.FireInterval <= 0 {
		return fmt.Errorf("player.fireInterval must be > 0, got %v", c.Player.FireInterval)
	}
	if c.Bullets.Speed <= 0 {
		return fmt.Errorf("bullets.speed must be > 0, got %.1f", c.Bullets.Speed)
	}
	if c.Bullets.NormalDamage <= 0 {
		return fmt.Errorf("bullets.normalDamage must be > 0, got %.1f", c.Bullets.NormalDamage)
	}
	if c.Enemies.SpawnInterval <= 0 {
		return fmt.Errorf("enemies.spawnInterval must be > 0, got %v", c.Enemies.SpawnInterval)
	}
	if c.Enemies.ZigzagPeriod <= 0 || c.Enemies.ShieldedPeriod <= 0 {
		return fmt.Errorf("enemy pattern periods must be > 0, got zigzag=%.2f shielded=%.2f",
			c.Enemies.ZigzagPeriod, c.Enemies.ShieldedPeriod)
	}
	if c.Enemies.Normal.Health <= 0 {
		return fmt.Errorf("enemies.normal.health must be > 0, got %.1f", c.Enemies.Normal.Health)
	}
	if err := c.Enemies.MiniBoss.validate("miniBoss"); err != nil {
		return err
	}
	if err := c.Enemies.Boss.validate("boss"); err != nil {
		return err
	}
	if c.PowerUps.SpawnInterval <= 0 {
		return fmt.Errorf("powerUps.spawnInterval must be > 0, got %v", c.PowerUps.SpawnInterval)
	}
	if c.PowerUps.Magnet.MaxVelocity <= 0 {
		return fmt.Errorf("powerUps.magnet.maxVelocity must be > 0, got %.1f", c.PowerUps.Magnet.MaxVelocity)
	}
	if c.Fever.Max <= 0 {
		return fmt.Errorf("fever.max must be > 0, got %.1f", c.Fever.Max)
	}
	if c.Storm.ChaosMin > c.Storm.ChaosMax {
		return fmt.Errorf("storm chaos range invalid: min(%.2f) > max(%.2f)", c.Storm.ChaosMin, c.Storm.ChaosMax)
	}
	if c.Storm.MinDownward <= 0 || c.Storm.MinDownward > 1 {
		return fmt.Errorf("storm.minDownward must be in (0, 1], got %.2f", c.Storm.MinDownward)
	}
	if c.Storm.ResizeMin > c.Storm.ResizeMax {
		return fmt.Errorf("storm resize range invalid: min(%.2f) > max(%.2f)", c.Storm.ResizeMin, c.Storm.ResizeMax)
	}
	if c.Progression.KillsPerWaveBase < 0 || c.Progression.WavesPerLevelBase < 1 {
		return fmt.Errorf("progression invalid: killsPerWaveBase=%d wavesPerLevelBase=%d",
			c.Progression.KillsPerWaveBase, c.Progression.WavesPerLevelBase)
	}
	if c.Loop.MaxFrameDelta <= 0 {
		return fmt.Errorf("loop.maxFrameDelta must be > 0, got %v", c.Loop.MaxFrameDelta)
	}
	return nil
}

func (b *BossConfig) validate(name string) error {
	if b.BaseHealth <= 0 {
		return fmt.Errorf("enemies.%s.baseHealth must be > 0, got %.1f", name, b.BaseHealth)
	}
	if b.Chance.Base < 0 || b.Chance.Base > b.Chance.Max {
		return fmt.Errorf("enemies.%s.chance invalid: base(%.2f) max(%.2f)", name, b.Chance.Base, b.Chance.Max)
	}
	h := b.Hover
	if len(h.Durations) != len(h.Thresholds) {
		return fmt.Errorf("enemies.%s.hover: %d thresholds but %d durations", name, len(h.Thresholds), len(h.Durations))
	}
	if len(h.SpeedMultipliers) == 0 {
		return fmt.Errorf("enemies.%s.hover.speedMultipliers must not be empty", name)
	}
	for i, th := range h.Thresholds {
		if th <= 0 || th >= 1 {
			return fmt.Errorf("enemies.%s.hover.thresholds[%d] must be in (0,1), got %.2f", name, i, th)
		}
	}
	return nil
}

// MaxNormalCount 当前关卡一次生成的普通敌人数量上限
func (c *EnemyConfig) MaxNormalCount(level int) int {
	if c.DoubleSpawnLevel > 0 && level >= c.DoubleSpawnLevel {
		return 2
	}
	return 1
}

// BossConfigFor 返回头目类敌人的配置，普通敌人返回 nil
func (c *EnemyConfig) BossConfigFor(variant types.EnemyVariant) *BossConfig {
	switch variant {
	case types.EnemyMiniBoss:
		return &c.MiniBoss
	case types.EnemyBoss:
		return &c.Boss
	case types.EnemyNormal:
	}
	return nil
}

// FeverDamageFor 狂热技能对该种类敌人造成的最大生命比例
func (c *FeverConfig) FeverDamageFor(variant types.EnemyVariant) float64 {
	switch variant {
	case types.EnemyMiniBoss:
		return c.MiniBossDamage
	case types.EnemyBoss:
		return c.BossDamage
	case types.EnemyNormal:
	}
	return c.NormalDamage
}
