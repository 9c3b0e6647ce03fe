package game

import (
	"time"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/entities"
	"github.com/decker502/feverdream/pkg/types"
)

// GameState 一局游戏的完整状态快照
//
// GameState 是值类型：每个系统接收上一帧的状态并返回新状态，
// 切片字段只整体替换、从不原地修改，因此浅复制即为安全快照。
type GameState struct {
	Status types.GameStatus

	Player   entities.Player
	Enemies  []entities.Enemy
	Bullets  []entities.Bullet
	PowerUps []entities.PowerUp

	Level        int // >= 1
	Wave         int // 当前关卡内的波次，>= 1
	WaveProgress int // 当前波次的击杀数
	TotalWaves   int // 累计完成的波次

	// Elapsed 游戏时钟，只在 playing 状态推进，所有计时器以它为基准
	Elapsed time.Duration

	Shake      float64 // 屏幕震动强度
	SecretMode bool
	Storm      StormState

	FeversUsed int
	Kills      int // 累计击杀数

	NextID entities.EntityID // 下一个可分配的实体 ID
}

// StormState 现实风暴状态
type StormState struct {
	Active    bool
	EndsAt    time.Duration
	Intensity float64
}

// Remaining 风暴剩余时间，未激活时为 0
func (s StormState) Remaining(now time.Duration) time.Duration {
	if !s.Active || s.EndsAt <= now {
		return 0
	}
	return s.EndsAt - now
}

// NewGameState 创建 ready 状态的初始局面
func NewGameState(cfg *config.GameConfig) GameState {
	s := GameState{
		Status: types.StatusReady,
		Level:  1,
		Wave:   1,
		NextID: 1,
	}
	s.Player = entities.NewPlayer(s.AllocID(), &cfg.Player)
	return s
}

// AllocID 分配一个新的实体 ID
func (s *GameState) AllocID() entities.EntityID {
	if s.NextID == 0 {
		s.NextID = 1
	}
	id := s.NextID
	s.NextID++
	return id
}

// KillsForWave 当前波次所需击杀数: base + wave
func (s *GameState) KillsForWave(cfg *config.ProgressionConfig) int {
	return cfg.KillsPerWaveBase + s.Wave
}

// WavesForLevel 当前关卡的波数: base + floor(level/2)
func (s *GameState) WavesForLevel(cfg *config.ProgressionConfig) int {
	return cfg.WavesPerLevelBase + s.Level/2
}
