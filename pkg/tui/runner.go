package tui

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/feverdream/pkg/engine"
	"github.com/decker502/feverdream/pkg/types"
	"github.com/decker502/feverdream/pkg/utils"
)

// frameInterval 终端刷新间隔（约 60 FPS）
const frameInterval = 16 * time.Millisecond

// Runner 终端前端主循环
type Runner struct {
	screen    tcell.Screen
	engine    *engine.Engine
	scheduler *engine.FrameScheduler
	renderer  *Renderer
	bindings  Bindings
	held      *HeldKeys
	secret    *utils.SecretSequence
}

// NewRunner 创建主循环；held 同时作为引擎的输入源
func NewRunner(screen tcell.Screen, eng *engine.Engine, sched *engine.FrameScheduler, bindings Bindings) *Runner {
	held := NewHeldKeys(DefaultHoldTimeout)
	eng.SetInput(held)
	return &Runner{
		screen:    screen,
		engine:    eng,
		scheduler: sched,
		renderer:  NewRenderer(screen, eng.Config()),
		bindings:  bindings,
		held:      held,
		secret:    utils.NewSecretSequence(utils.DefaultSecretCode),
	}
}

// HandleKey 处理一次按键，返回 false 表示退出
func (r *Runner) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return false
	}
	if ev.Key() == tcell.KeyEscape {
		r.engine.TogglePause()
		return true
	}

	var ch rune
	if ev.Key() == tcell.KeyRune {
		ch = toLower(ev.Rune())
	}

	switch r.engine.Status() {
	case types.StatusReady:
		if ch == 'q' {
			return false
		}
		if ch == ' ' || ev.Key() == tcell.KeyEnter {
			r.secret.Reset()
			r.engine.Start()
			return true
		}
		if ch != 0 && r.secret.Feed(ch) {
			r.engine.SecretCode()
		}

	case types.StatusPlaying:
		switch ch {
		case 'f':
			r.engine.ActivateFever()
			return true
		case 'p':
			r.engine.Pause()
			return true
		case 'r':
			r.engine.Reset()
			return true
		}
		if c, ok := r.bindings.Lookup(ev); ok {
			r.held.Press(c)
			if o, ok := opposite(c); ok {
				r.held.Release(o)
			}
		}

	case types.StatusPaused:
		switch ch {
		case 'p':
			r.engine.Resume()
		case 'r':
			r.engine.Reset()
		case 'q':
			return false
		}

	case types.StatusGameOver:
		switch {
		case ch == 'q':
			return false
		case ch == ' ' || ch == 'r' || ev.Key() == tcell.KeyEnter:
			r.engine.Reset()
		}
	}
	return true
}

// Tick 触发挂起的引擎帧并重绘
func (r *Runner) Tick(now time.Time) {
	r.scheduler.Fire(now)
	r.renderer.Draw(r.engine.Snapshot(), r.engine.Effects())
}

// pumpEvents 把终端事件转发到 events，直到屏幕关闭或 quit 被关闭
func (r *Runner) pumpEvents(events chan<- tcell.Event, quit <-chan struct{}) {
	defer close(events)
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-quit:
			return
		}
	}
}

// Run 运行主循环直到退出键
func (r *Runner) Run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go r.pumpEvents(events, quit)

	r.Tick(time.Now())
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !r.HandleKey(ev) {
					log.Printf("[TUI] Quit")
					return
				}
			case *tcell.EventResize:
				r.screen.Sync()
			}

		case now := <-ticker.C:
			r.Tick(now)
		}
	}
}
