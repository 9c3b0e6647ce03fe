package scenes

import (
	"io"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/engine"
	"github.com/decker502/feverdream/pkg/game"
	"github.com/decker502/feverdream/pkg/types"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func newTestScene(t *testing.T) (*GameScene, *engine.Engine, *engine.FrameScheduler) {
	t.Helper()
	sched := engine.NewFrameScheduler()
	eng := engine.New(engine.Options{
		Config:   config.DefaultGameConfig(),
		PowerUps: config.DefaultPowerUpTable(),
		Ticks:    sched,
		Random:   engine.NewRandom(7),
	})
	s := NewGameScene(GameSceneOptions{Engine: eng, Scheduler: sched})
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.clock = func() time.Time {
		now = now.Add(16 * time.Millisecond)
		return now
	}
	return s, eng, sched
}

func TestGameSceneKeyTransitions(t *testing.T) {
	s, eng, sched := newTestScene(t)

	steps := []struct {
		name string
		keys sceneKeys
		want types.GameStatus
	}{
		{"pause ignored in ready", sceneKeys{pause: true}, types.StatusReady},
		{"space starts", sceneKeys{start: true}, types.StatusPlaying},
		{"p pauses", sceneKeys{pause: true}, types.StatusPaused},
		{"p resumes", sceneKeys{pause: true}, types.StatusPlaying},
		{"escape pauses", sceneKeys{escape: true}, types.StatusPaused},
		{"escape resumes", sceneKeys{escape: true}, types.StatusPlaying},
		{"r ends the game", sceneKeys{reset: true}, types.StatusReady},
	}
	for _, step := range steps {
		s.applyKeys(step.keys)
		if got := eng.Status(); got != step.want {
			t.Fatalf("%s: status = %v, want %v", step.name, got, step.want)
		}
	}
	if sched.Pending() {
		t.Error("no frame should be pending after reset")
	}
}

func TestGameSceneSecretCode(t *testing.T) {
	s, eng, _ := newTestScene(t)

	s.applyKeys(sceneKeys{runes: []rune{'h', 'b'}})
	if eng.Snapshot().SecretMode {
		t.Fatal("partial code should not toggle secret mode")
	}
	s.applyKeys(sceneKeys{runes: []rune{'d'}})
	if !eng.Snapshot().SecretMode {
		t.Fatal("h b d should toggle secret mode")
	}

	s.applyKeys(sceneKeys{start: true})
	s.applyKeys(sceneKeys{runes: []rune{'h', 'b', 'd'}})
	if !eng.Snapshot().SecretMode {
		t.Error("typing the code while playing should not toggle secret mode")
	}
}

func TestGameSceneUpdateFiresFrame(t *testing.T) {
	s, eng, sched := newTestScene(t)
	s.applyKeys(sceneKeys{start: true})

	for i := 0; i < 10; i++ {
		sched.Fire(s.clock())
	}
	if eng.Snapshot().Elapsed <= 0 {
		t.Fatal("fired frames should advance the game clock")
	}

	s.applyKeys(sceneKeys{fever: true})
	if eng.Status() != types.StatusPlaying || eng.Snapshot().FeversUsed != 0 {
		t.Error("fever with an empty meter should be a no-op")
	}
}

type fixedBest struct{ record game.ScoreRecord }

func (f fixedBest) Best() (game.ScoreRecord, bool) { return f.record, true }

func TestGameOverText(t *testing.T) {
	s, eng, _ := newTestScene(t)
	s.scores = fixedBest{game.ScoreRecord{Score: 4200, Level: 3}}

	st := eng.Snapshot()
	st.Player.Score = 150
	text := s.gameOverText(&st)
	for _, want := range []string{"GAME OVER", "score 150", "best 4200 (level 3)"} {
		if !strings.Contains(text, want) {
			t.Errorf("game over text %q missing %q", text, want)
		}
	}
}

func TestShakeOffsetRespectsSetting(t *testing.T) {
	s, _, _ := newTestScene(t)
	sm := game.NewSettingsManager(nil)
	s.settings = sm

	sm.SetScreenShake(false)
	if dx, dy := s.shakeOffset(15); dx != 0 || dy != 0 {
		t.Errorf("shake disabled: offset = (%v, %v)", dx, dy)
	}

	sm.SetScreenShake(true)
	for i := 0; i < 50; i++ {
		dx, dy := s.shakeOffset(10)
		if dx < -5 || dx > 5 || dy < -5 || dy > 5 {
			t.Fatalf("offset (%v, %v) exceeds half the intensity", dx, dy)
		}
	}
	if dx, dy := s.shakeOffset(0); dx != 0 || dy != 0 {
		t.Error("zero intensity should not shake")
	}
}

type countingScene struct{ updates int }

func (c *countingScene) Update(float64)      { c.updates++ }
func (c *countingScene) Draw(*ebiten.Image) {}

func TestSceneManager(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(1.0 / 60) // 没有场景时不做任何事

	a, b := &countingScene{}, &countingScene{}
	sm.SwitchTo(a)
	sm.Update(1.0 / 60)
	sm.SwitchTo(b)
	sm.Update(1.0 / 60)
	sm.Update(1.0 / 60)

	if a.updates != 1 || b.updates != 2 {
		t.Errorf("updates a=%d b=%d, want 1 and 2", a.updates, b.updates)
	}
	if sm.GetCurrentScene() != Scene(b) {
		t.Error("current scene should be b")
	}
}
