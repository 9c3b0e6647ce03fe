package tui

import (
	"io"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/engine"
	"github.com/decker502/feverdream/pkg/entities"
	"github.com/decker502/feverdream/pkg/game"
	"github.com/decker502/feverdream/pkg/types"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestParseBindings(t *testing.T) {
	b, err := ParseBindings(config.DefaultBindings())
	if err != nil {
		t.Fatalf("ParseBindings() error = %v", err)
	}

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want types.Control
	}{
		{"a", runeKey('a'), types.ControlLeft},
		{"upper A", runeKey('A'), types.ControlLeft},
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), types.ControlLeft},
		{"d", runeKey('d'), types.ControlRight},
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), types.ControlUp},
		{"s", runeKey('s'), types.ControlDown},
		{"space", runeKey(' '), types.ControlFire},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := b.Lookup(tt.ev)
			if !ok || got != tt.want {
				t.Errorf("Lookup() = %v, %v; want %v", got, ok, tt.want)
			}
		})
	}

	if _, ok := b.Lookup(runeKey('x')); ok {
		t.Error("unbound key should not map to a control")
	}
	if _, err := ParseBindings(map[string][]string{"fire": {"F13"}}); err == nil {
		t.Error("unsupported key name should fail")
	}
	if _, err := ParseBindings(map[string][]string{"jump": {"J"}}); err == nil {
		t.Error("unknown control should fail")
	}
}

func TestHeldKeysTimeout(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewHeldKeys(100 * time.Millisecond)
	h.now = func() time.Time { return now }

	if h.IsHeld(types.ControlFire) {
		t.Fatal("nothing pressed yet")
	}
	h.Press(types.ControlFire)
	now = now.Add(99 * time.Millisecond)
	if !h.IsHeld(types.ControlFire) {
		t.Error("fire should still be held inside the timeout")
	}
	now = now.Add(time.Millisecond)
	if h.IsHeld(types.ControlFire) {
		t.Error("fire should be released once the timeout elapses")
	}

	h.Press(types.ControlLeft)
	h.Release(types.ControlLeft)
	if h.IsHeld(types.ControlLeft) {
		t.Error("released key should not be held")
	}
}

func newTestRunner(t *testing.T) (*Runner, *engine.Engine, *engine.FrameScheduler, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 25)

	cfg := config.DefaultGameConfig()
	sched := engine.NewFrameScheduler()
	eng := engine.New(engine.Options{
		Config:   cfg,
		PowerUps: config.DefaultPowerUpTable(),
		Ticks:    sched,
		Random:   engine.NewRandom(3),
	})
	b, err := ParseBindings(cfg.Bindings)
	if err != nil {
		t.Fatal(err)
	}
	return NewRunner(screen, eng, sched, b), eng, sched, screen
}

func TestRunnerHandleKey(t *testing.T) {
	r, eng, sched, _ := newTestRunner(t)

	for _, ch := range "hbd" {
		r.HandleKey(runeKey(ch))
	}
	if !eng.Snapshot().SecretMode {
		t.Fatal("h b d in ready should toggle secret mode")
	}

	r.HandleKey(runeKey(' '))
	if eng.Status() != types.StatusPlaying || !sched.Pending() {
		t.Fatalf("space should start the game, status = %v", eng.Status())
	}

	r.HandleKey(runeKey('a'))
	if !r.held.IsHeld(types.ControlLeft) {
		t.Error("a should hold left")
	}
	r.HandleKey(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if r.held.IsHeld(types.ControlLeft) || !r.held.IsHeld(types.ControlRight) {
		t.Error("pressing right should release left")
	}

	r.HandleKey(runeKey('p'))
	if eng.Status() != types.StatusPaused || sched.Pending() {
		t.Errorf("p should pause, status = %v", eng.Status())
	}
	r.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if eng.Status() != types.StatusPlaying {
		t.Errorf("escape should resume, status = %v", eng.Status())
	}

	r.HandleKey(runeKey('r'))
	if eng.Status() != types.StatusReady {
		t.Errorf("r should end the game, status = %v", eng.Status())
	}

	if r.HandleKey(runeKey('q')) {
		t.Error("q in ready should quit")
	}
	if r.HandleKey(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)) {
		t.Error("ctrl-c should quit")
	}
}

func screenText(s tcell.SimulationScreen) string {
	cells, w, h := s.GetContents()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) > 0 {
				b.WriteRune(c.Runes[0])
			} else {
				b.WriteRune(' ')
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func TestRendererDraw(t *testing.T) {
	r, eng, _, screen := newTestRunner(t)

	r.Tick(time.Now())
	text := screenText(screen)
	if !strings.Contains(text, "FEVER DREAM") {
		t.Error("ready screen should show the title panel")
	}
	if !strings.Contains(text, "SCORE 0") {
		t.Error("HUD should show the score")
	}

	st := eng.Snapshot()
	st.Status = types.StatusPlaying
	st.Enemies = []entities.Enemy{{
		GameObject: entities.GameObject{ID: 9, Position: entities.Vec2{X: 400, Y: 100}, Width: 30, Height: 30, Health: 5, MaxHealth: 5},
		Variant:    types.EnemyBoss,
	}}
	r.renderer.Draw(st, game.ActiveEffects{})
	text = screenText(screen)
	if !strings.ContainsRune(text, 'B') {
		t.Error("boss should be drawn as B")
	}
	if !strings.ContainsRune(text, 'A') {
		t.Error("player should be drawn as A")
	}
}

func TestHUDLine(t *testing.T) {
	cfg := config.DefaultGameConfig()
	st := game.NewGameState(cfg)
	st.Player.FeverMeter = cfg.Fever.Max
	st.Storm = game.StormState{Active: true, EndsAt: 4 * time.Second}
	effects := game.ActiveEffects{}.With(types.PowerUpShield, 3*time.Second)

	line := HUDLine(st, effects, cfg)
	for _, want := range []string{"FEVER READY", "STORM 4.0s", "shield 3s"} {
		if !strings.Contains(line, want) {
			t.Errorf("HUD %q missing %q", line, want)
		}
	}
}

func TestRunnerRunQuits(t *testing.T) {
	r, _, _, screen := newTestRunner(t)

	if err := screen.PostEvent(runeKey('q')); err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		r.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after q in ready")
	}
}

func TestPumpEventsStopsOnQuit(t *testing.T) {
	r, _, _, screen := newTestRunner(t)

	events := make(chan tcell.Event) // 无接收方，发送会一直阻塞
	quit := make(chan struct{})
	close(quit)

	done := make(chan struct{})
	go func() {
		r.pumpEvents(events, quit)
		close(done)
	}()

	if err := screen.PostEvent(runeKey('x')); err != nil {
		t.Fatal(err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pumpEvents stayed blocked on send after quit was closed")
	}
}
