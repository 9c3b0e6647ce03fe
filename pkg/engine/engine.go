// Package engine 实现游戏主循环编排
//
// Engine 持有当前帧，驱动状态机 ready -> playing <-> paused -> game-over -> ready，
// 只在 playing 状态通过 TickSource 请求并执行逐帧管线。
package engine

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/game"
	"github.com/decker502/feverdream/pkg/systems"
	"github.com/decker502/feverdream/pkg/types"
)

// InputSource 输入源，只需回答逻辑控制键是否按住
type InputSource interface {
	IsHeld(c types.Control) bool
}

// ScoreSink 成绩接收方（本地排行榜或远程提交）
type ScoreSink interface {
	Submit(record game.ScoreRecord) error
}

// Options 创建 Engine 所需的依赖
type Options struct {
	Config   *config.GameConfig
	PowerUps *config.PowerUpTable
	Ticks    TickSource
	Input    InputSource
	Sink     ScoreSink      // 可为 nil
	Random   systems.Random // 可为 nil，此时使用当前时间作为种子
}

// Engine 游戏主循环编排器
type Engine struct {
	cfg   *config.GameConfig
	table *config.PowerUpTable
	ticks TickSource
	input InputSource
	sink  ScoreSink
	rng   systems.Random

	frame     systems.Frame
	lastFrame time.Time // 零值表示下一帧 dt 为 0
	runID     string
}

// New 创建处于 ready 状态的引擎
func New(opts Options) *Engine {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultGameConfig()
	}
	table := opts.PowerUps
	if table == nil {
		table = config.DefaultPowerUpTable()
	}
	rng := opts.Random
	if rng == nil {
		rng = NewRandom(time.Now().UnixNano())
	}
	ticks := opts.Ticks
	if ticks == nil {
		ticks = NewFrameScheduler()
	}

	return &Engine{
		cfg:   cfg,
		table: table,
		ticks: ticks,
		input: opts.Input,
		sink:  opts.Sink,
		rng:   rng,
		frame: systems.NewFrame(cfg),
	}
}

// Status 当前流程状态
func (e *Engine) Status() types.GameStatus {
	return e.frame.State.Status
}

// Snapshot 返回当前状态的副本，供渲染只读使用
func (e *Engine) Snapshot() game.GameState {
	return e.frame.State
}

// Effects 当前道具效果表（只读）
func (e *Engine) Effects() game.ActiveEffects {
	return e.frame.Side.Effects
}

// Config 引擎使用的配置
func (e *Engine) Config() *config.GameConfig {
	return e.cfg
}

// RunID 当前或最近一局的标识
func (e *Engine) RunID() string {
	return e.runID
}

// SetInput 替换输入源
func (e *Engine) SetInput(in InputSource) {
	e.input = in
}

// Start ready -> playing
//
// 重置所有对局计数器，保留 SecretMode。非 ready 状态调用无效果。
func (e *Engine) Start() bool {
	if e.frame.State.Status != types.StatusReady {
		return false
	}
	secret := e.frame.State.SecretMode

	e.frame = systems.NewFrame(e.cfg)
	e.frame.State.SecretMode = secret
	e.frame.State.Status = types.StatusPlaying
	e.runID = uuid.New().String()
	e.lastFrame = time.Time{}

	log.Printf("[Engine] Game started: run=%s secret=%v", e.runID, secret)
	e.ticks.RequestFrame(e.onFrame)
	return true
}

// TogglePause playing <-> paused
func (e *Engine) TogglePause() {
	switch e.frame.State.Status {
	case types.StatusPlaying:
		e.Pause()
	case types.StatusPaused:
		e.Resume()
	case types.StatusReady, types.StatusGameOver:
	}
}

// Pause playing -> paused，取消挂起的帧
func (e *Engine) Pause() {
	if e.frame.State.Status != types.StatusPlaying {
		return
	}
	e.frame.State.Status = types.StatusPaused
	e.ticks.CancelFrame()
	log.Printf("[Engine] Paused at %v", e.frame.State.Elapsed)
}

// Resume paused -> playing，恢复后的第一帧 dt 为 0
func (e *Engine) Resume() {
	if e.frame.State.Status != types.StatusPaused {
		return
	}
	e.frame.State.Status = types.StatusPlaying
	e.lastFrame = time.Time{}
	e.ticks.RequestFrame(e.onFrame)
	log.Printf("[Engine] Resumed")
}

// Reset 回到 ready 状态；进行中或暂停中的对局直接结束，不提交成绩
func (e *Engine) Reset() {
	prev := e.frame.State.Status
	secret := e.frame.State.SecretMode

	e.ticks.CancelFrame()
	e.frame = systems.NewFrame(e.cfg)
	e.frame.State.SecretMode = secret
	e.lastFrame = time.Time{}

	log.Printf("[Engine] Reset from %v", prev)
}

// ActivateFever 在 playing 状态释放狂热技能，狂热值未满时返回 false
func (e *Engine) ActivateFever() bool {
	if e.frame.State.Status != types.StatusPlaying {
		return false
	}
	doubler := e.frame.Side.Effects.Has(types.PowerUpScoreDoubler)
	next, ok := systems.ActivateFever(e.frame.State, doubler, e.cfg)
	if !ok {
		return false
	}
	e.frame.State = game.SanitizeState(next, e.cfg)
	log.Printf("[Engine] Fever activated (#%d)", e.frame.State.FeversUsed)
	return true
}

// SecretCode 在 ready 状态输入秘籍后切换 SecretMode
func (e *Engine) SecretCode() bool {
	if e.frame.State.Status != types.StatusReady {
		return false
	}
	e.frame.State.SecretMode = !e.frame.State.SecretMode
	log.Printf("[Engine] Secret mode: %v", e.frame.State.SecretMode)
	return true
}

// onFrame 帧回调：计算 dt、执行管线、处理结束
func (e *Engine) onFrame(now time.Time) {
	if e.frame.State.Status != types.StatusPlaying {
		return
	}

	dt := 0.0
	if !e.lastFrame.IsZero() {
		delta := now.Sub(e.lastFrame)
		if delta > e.cfg.Loop.MaxFrameDelta {
			delta = e.cfg.Loop.MaxFrameDelta
		}
		if delta > 0 {
			dt = delta.Seconds()
		}
	}
	e.lastFrame = now

	e.frame = systems.Step(e.frame, e.input, dt, e.rng, e.table, e.cfg)

	if e.frame.State.Status == types.StatusGameOver {
		e.ticks.CancelFrame()
		e.finish(now)
		return
	}
	e.ticks.RequestFrame(e.onFrame)
}

// finish 对局结束，把成绩交给 ScoreSink；提交失败只记录日志
func (e *Engine) finish(now time.Time) {
	s := e.frame.State
	log.Printf("[Engine] Game over: score=%d level=%d wave=%d kills=%d",
		s.Player.Score, s.Level, s.Wave, s.Kills)

	if e.sink == nil {
		return
	}
	record := game.ScoreRecord{
		RunID:      e.runID,
		Score:      s.Player.Score,
		Level:      s.Level,
		Wave:       s.Wave,
		TotalWaves: s.TotalWaves,
		FeversUsed: s.FeversUsed,
		Kills:      s.Kills,
		Duration:   s.Elapsed,
		SecretMode: s.SecretMode,
		Timestamp:  now,
	}
	if err := e.sink.Submit(record); err != nil {
		log.Printf("[Engine] Warning: Failed to submit score: %v", err)
	}
}
