// Package app 提供 ebiten 前端的应用包装器
//
// 该包把配置加载、存储、引擎和场景的装配从 main 包提取出来。
// 调用 NewApp 前必须先调用 embedded.Init() 初始化嵌入数据。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/engine"
	"github.com/decker502/feverdream/pkg/game"
	"github.com/decker502/feverdream/pkg/scenes"
	"github.com/decker502/feverdream/pkg/utils"
)

const (
	// AppName gdata 存储使用的应用名
	AppName = "feverdream"

	gameConfigPath = "data/game_config.yaml"
	powerUpsPath   = "data/powerups.yaml"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Seed 随机种子，0 表示使用当前时间
	Seed int64
	// ConfigPath 外部游戏配置文件，为空时使用嵌入的 data/game_config.yaml
	ConfigPath string
}

// App 实现 ebiten.Game 接口
type App struct {
	sceneManager *scenes.SceneManager
	settings     *game.SettingsManager
	gameConfig   *config.GameConfig
	verbose      bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// LoadConfigs 加载游戏配置与道具表
func LoadConfigs(configPath string) (*config.GameConfig, *config.PowerUpTable, error) {
	var (
		gameCfg *config.GameConfig
		err     error
	)
	if configPath != "" {
		gameCfg, err = config.LoadGameConfig(configPath)
		log.Printf("[Config] Loading game config from %s", configPath)
	} else {
		gameCfg, err = config.LoadEmbeddedGameConfig(gameConfigPath)
	}
	if err != nil {
		return nil, nil, err
	}

	table, err := config.LoadEmbeddedPowerUpTable(powerUpsPath)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[Config] Loaded %d power-up entries (total weight %.0f)", len(table.Entries), table.TotalWeight())
	return gameCfg, table, nil
}

// openStorage 打开 gdata 存储；失败时返回 nil，设置与排行榜退化为仅内存
func openStorage() *gdata.Manager {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: Failed to open storage: %v (settings and scores will not persist)", err)
		return nil
	}
	return m
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameCfg, table, err := LoadConfigs(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("配置加载失败: %w", err)
	}

	bindings, err := utils.ParseBindings(gameCfg.Bindings)
	if err != nil {
		return nil, fmt.Errorf("按键绑定无效: %w", err)
	}

	storage := openStorage()
	settings := game.NewSettingsManager(storage)
	leaderboard := game.NewLeaderboard(storage, game.DefaultLeaderboardSize)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Printf("[App] Random seed: %d", seed)

	scheduler := engine.NewFrameScheduler()
	eng := engine.New(engine.Options{
		Config:   gameCfg,
		PowerUps: table,
		Ticks:    scheduler,
		Sink:     leaderboard,
		Random:   engine.NewRandom(seed),
	})

	sceneManager := scenes.NewSceneManager()
	sceneManager.SwitchTo(scenes.NewGameScene(scenes.GameSceneOptions{
		Engine:    eng,
		Scheduler: scheduler,
		Keyboard:  utils.NewKeyboardInput(bindings),
		Settings:  settings,
		Scores:    leaderboard,
	}))

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		gameConfig:   gameCfg,
		verbose:      cfg.Verbose,
	}, nil
}

// WindowSize 逻辑屏幕尺寸
func (a *App) WindowSize() (int, int) {
	return int(a.gameConfig.Playfield.Width), int(a.gameConfig.Playfield.Height)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.WindowSize())
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settings.SetFullscreen(!a.settings.GetSettings().Fullscreen)
		a.saveSettings()
	}

	// F3 调试信息
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.settings.SetShowDebug(!a.settings.GetSettings().ShowDebug)
		a.saveSettings()
	}

	// F4 屏幕震动开关
	if inpututil.IsKeyJustPressed(ebiten.KeyF4) {
		a.settings.SetScreenShake(!a.settings.GetSettings().ScreenShake)
		a.saveSettings()
	}

	a.sceneManager.Update(1.0 / 60.0)
	return nil
}

func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口，全屏时用黑色 letterbox
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.WindowSize()
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
