package scenes

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/decker502/feverdream/pkg/entities"
	"github.com/decker502/feverdream/pkg/game"
	"github.com/decker502/feverdream/pkg/types"
)

var (
	backgroundColor = color.RGBA{R: 12, G: 8, B: 28, A: 255}
	stormColor      = color.RGBA{R: 60, G: 10, B: 70, A: 255}
	panelColor      = color.RGBA{A: 180}
)

// powerUpColors 道具配色
var powerUpColors = map[types.PowerUpKind]color.RGBA{
	types.PowerUpSpreadShot:   colornames.Orange,
	types.PowerUpShield:       colornames.Deepskyblue,
	types.PowerUpScoreDoubler: colornames.Gold,
	types.PowerUpMagnet:       colornames.Hotpink,
	types.PowerUpSword:        colornames.Silver,
	types.PowerUpRealityWarp:  colornames.Mediumorchid,
}

// enemyColor 普通/小 Boss/Boss 配色，秘籍模式下统一为绿色
func enemyColor(v types.EnemyVariant, secret bool) color.RGBA {
	if secret {
		return colornames.Limegreen
	}
	switch v {
	case types.EnemyMiniBoss:
		return colornames.Darkorange
	case types.EnemyBoss:
		return colornames.Crimson
	default:
		return colornames.Indianred
	}
}

// Draw 绘制当前快照
func (s *GameScene) Draw(screen *ebiten.Image) {
	st := s.engine.Snapshot()

	if st.Storm.Active {
		screen.Fill(stormColor)
	} else {
		screen.Fill(backgroundColor)
	}

	ox, oy := s.shakeOffset(st.Shake)

	for i := range st.PowerUps {
		p := &st.PowerUps[i]
		fillObject(screen, &p.GameObject, ox, oy, powerUpColors[p.Kind])
	}
	for i := range st.Enemies {
		e := &st.Enemies[i]
		fillObject(screen, &e.GameObject, ox, oy, enemyColor(e.Variant, st.SecretMode))
		if e.Variant.IsBossClass() {
			drawHealthBar(screen, &e.GameObject, ox, oy)
		}
	}
	for i := range st.Bullets {
		b := &st.Bullets[i]
		c := colornames.Yellow
		if b.Type == types.BulletSword {
			c = colornames.Lightcyan
		}
		fillObject(screen, &b.GameObject, ox, oy, c)
	}
	s.drawPlayer(screen, &st, ox, oy)

	s.drawHUD(screen, &st)

	switch st.Status {
	case types.StatusReady:
		s.drawPanel(screen, "FEVER DREAM\n\nSPACE  start\nWASD / arrows  move\nSPACE  fire    F  fever\nP / ESC  pause  R  end game")
	case types.StatusPaused:
		s.drawPanel(screen, "PAUSED\n\nP  resume\nR  end game")
	case types.StatusGameOver:
		s.drawPanel(screen, s.gameOverText(&st))
	}
}

func (s *GameScene) drawPlayer(screen *ebiten.Image, st *game.GameState, ox, oy float64) {
	p := &st.Player
	c := colornames.Deepskyblue
	if p.Invulnerable {
		c = translucent(c, 110)
	}
	fillObject(screen, &p.GameObject, ox, oy, c)

	if s.engine.Effects().Has(types.PowerUpShield) {
		center := p.Center()
		r := float32(max(p.Width, p.Height))*0.75 + 4
		vector.StrokeCircle(screen, float32(center.X+ox), float32(center.Y+oy), r, 2, colornames.Deepskyblue, true)
	}
}

func (s *GameScene) drawHUD(screen *ebiten.Image, st *game.GameState) {
	cfg := s.engine.Config()
	p := &st.Player

	hearts := strings.Repeat("<3 ", int(p.Health))
	fever := fmt.Sprintf("FEVER %3.0f%%", p.FeverMeter/cfg.Fever.Max*100)
	if p.FeverMeter >= cfg.Fever.Max {
		fever = "FEVER READY [F]"
	}

	lines := []string{
		fmt.Sprintf("SCORE %d", p.Score),
		fmt.Sprintf("LEVEL %d  WAVE %d  (%d/%d)", st.Level, st.Wave, st.WaveProgress, st.KillsForWave(&cfg.Progression)),
		"HP " + hearts,
		fever,
	}

	effects := s.engine.Effects()
	for _, kind := range effects.Kinds() {
		if until, ok := effects.ExpiresAt(kind); ok {
			lines = append(lines, fmt.Sprintf("%s %.1fs", kind, (until-st.Elapsed).Seconds()))
		}
	}
	if st.Storm.Active {
		lines = append(lines, fmt.Sprintf("REALITY STORM %.1fs", st.Storm.Remaining(st.Elapsed).Seconds()))
	}
	if st.SecretMode {
		lines = append(lines, "HBD!")
	}
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 8, 8)

	if s.settings != nil && s.settings.GetSettings().ShowDebug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  enemies %d  bullets %d  items %d",
			ebiten.ActualTPS(), len(st.Enemies), len(st.Bullets), len(st.PowerUps)),
			8, int(cfg.Playfield.Height)-20)
	}
}

func (s *GameScene) gameOverText(st *game.GameState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "GAME OVER\n\nscore %d\nlevel %d  wave %d\nkills %d  fevers %d\n",
		st.Player.Score, st.Level, st.Wave, st.Kills, st.FeversUsed)
	if s.scores != nil {
		if best, ok := s.scores.Best(); ok {
			fmt.Fprintf(&b, "\nbest %d (level %d)\n", best.Score, best.Level)
		}
	}
	b.WriteString("\nSPACE  continue")
	return b.String()
}

func (s *GameScene) drawPanel(screen *ebiten.Image, msg string) {
	cfg := s.engine.Config()
	w, h := float32(300), float32(180)
	x := float32(cfg.Playfield.Width)/2 - w/2
	y := float32(cfg.Playfield.Height)/2 - h/2
	vector.DrawFilledRect(screen, x, y, w, h, panelColor, false)
	vector.StrokeRect(screen, x, y, w, h, 1, colornames.White, false)
	ebitenutil.DebugPrintAt(screen, msg, int(x)+16, int(y)+16)
}

func fillObject(screen *ebiten.Image, o *entities.GameObject, ox, oy float64, c color.Color) {
	vector.DrawFilledRect(screen,
		float32(o.Position.X+ox), float32(o.Position.Y+oy),
		float32(o.Width), float32(o.Height), c, false)
}

func drawHealthBar(screen *ebiten.Image, o *entities.GameObject, ox, oy float64) {
	if o.MaxHealth <= 0 {
		return
	}
	x := float32(o.Position.X + ox)
	y := float32(o.Position.Y+oy) - 6
	w := float32(o.Width)
	vector.DrawFilledRect(screen, x, y, w, 3, colornames.Dimgray, false)
	vector.DrawFilledRect(screen, x, y, w*float32(o.Health/o.MaxHealth), 3, colornames.Lime, false)
}

// translucent 按 alpha 缩放预乘颜色
func translucent(c color.RGBA, alpha uint8) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(alpha) / 255) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: alpha}
}
