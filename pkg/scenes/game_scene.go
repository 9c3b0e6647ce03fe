package scenes

import (
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/feverdream/pkg/engine"
	"github.com/decker502/feverdream/pkg/game"
	"github.com/decker502/feverdream/pkg/types"
	"github.com/decker502/feverdream/pkg/utils"
)

// BestScoreSource 提供历史最佳成绩（通常是 game.Leaderboard）
type BestScoreSource interface {
	Best() (game.ScoreRecord, bool)
}

// GameSceneOptions 创建 GameScene 所需的依赖
type GameSceneOptions struct {
	Engine    *engine.Engine
	Scheduler *engine.FrameScheduler
	Keyboard  *utils.KeyboardInput
	Settings  *game.SettingsManager // 可为 nil
	Scores    BestScoreSource       // 可为 nil
}

// GameScene 游戏主场景
//
// 把按键翻译成引擎动作，每次 Update 触发一次挂起的引擎帧，
// Draw 只读取 engine.Snapshot()。
type GameScene struct {
	engine    *engine.Engine
	scheduler *engine.FrameScheduler
	settings  *game.SettingsManager
	scores    BestScoreSource
	secret    *utils.SecretSequence

	clock     func() time.Time
	shakeRand *rand.Rand
}

// sceneKeys 本帧刚按下的动作键
type sceneKeys struct {
	start  bool // Space / Enter
	pause  bool // P
	escape bool
	fever  bool // F
	reset  bool // R
	runes  []rune
}

// NewGameScene 创建游戏场景
func NewGameScene(opts GameSceneOptions) *GameScene {
	if opts.Keyboard != nil {
		opts.Engine.SetInput(opts.Keyboard)
	}
	return &GameScene{
		engine:    opts.Engine,
		scheduler: opts.Scheduler,
		settings:  opts.Settings,
		scores:    opts.Scores,
		secret:    utils.NewSecretSequence(utils.DefaultSecretCode),
		clock:     time.Now,
		shakeRand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Update 处理按键并推进引擎
func (s *GameScene) Update(deltaTime float64) {
	s.applyKeys(sceneKeys{
		start:  inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		pause:  inpututil.IsKeyJustPressed(ebiten.KeyP),
		escape: inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		fever:  inpututil.IsKeyJustPressed(ebiten.KeyF),
		reset:  inpututil.IsKeyJustPressed(ebiten.KeyR),
		runes:  utils.JustPressedRunes(),
	})
	s.scheduler.Fire(s.clock())
}

// applyKeys 按当前状态把按键映射为引擎动作
func (s *GameScene) applyKeys(k sceneKeys) {
	switch s.engine.Status() {
	case types.StatusReady:
		for _, r := range k.runes {
			if s.secret.Feed(r) {
				s.engine.SecretCode()
			}
		}
		if k.start {
			s.secret.Reset()
			s.engine.Start()
		}

	case types.StatusPlaying:
		if k.reset {
			s.engine.Reset()
			return
		}
		if k.fever {
			s.engine.ActivateFever()
		}
		if k.escape {
			s.engine.Pause()
		} else if k.pause {
			s.engine.TogglePause()
		}

	case types.StatusPaused:
		if k.reset {
			s.engine.Reset()
			return
		}
		if k.pause || k.escape {
			s.engine.Resume()
		}

	case types.StatusGameOver:
		if k.reset || k.start {
			s.engine.Reset()
			log.Printf("[GameScene] Back to title")
		}
	}
}

// shakeEnabled 读取辅助功能设置，没有设置管理器时默认开启
func (s *GameScene) shakeEnabled() bool {
	if s.settings == nil {
		return true
	}
	return s.settings.GetSettings().ScreenShake
}

// shakeOffset 按震动强度随机抖动绘制原点
func (s *GameScene) shakeOffset(intensity float64) (float64, float64) {
	if intensity <= 0 || !s.shakeEnabled() {
		return 0, 0
	}
	dx := (s.shakeRand.Float64() - 0.5) * intensity
	dy := (s.shakeRand.Float64() - 0.5) * intensity
	return dx, dy
}
