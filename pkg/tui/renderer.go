package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/feverdream/pkg/config"
	"github.com/decker502/feverdream/pkg/entities"
	"github.com/decker502/feverdream/pkg/game"
	"github.com/decker502/feverdream/pkg/types"
)

var (
	stylePlayer       = tcell.StyleDefault.Foreground(tcell.ColorDeepSkyBlue).Bold(true)
	stylePlayerBlink  = tcell.StyleDefault.Foreground(tcell.ColorSteelBlue).Dim(true)
	styleEnemy        = tcell.StyleDefault.Foreground(tcell.ColorIndianRed)
	styleMiniBoss     = tcell.StyleDefault.Foreground(tcell.ColorDarkOrange).Bold(true)
	styleBoss         = tcell.StyleDefault.Foreground(tcell.ColorCrimson).Bold(true)
	styleSecretEnemy  = tcell.StyleDefault.Foreground(tcell.ColorLimeGreen)
	styleBullet       = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleSword        = tcell.StyleDefault.Foreground(tcell.ColorLightCyan).Bold(true)
	stylePowerUp      = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGold)
	styleHUD          = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleStormHUD     = tcell.StyleDefault.Foreground(tcell.ColorMediumOrchid).Bold(true)
	stylePanel        = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	styleStormBorders = tcell.StyleDefault.Foreground(tcell.ColorMediumOrchid)
)

// powerUpGlyphs 道具在终端中的字符
var powerUpGlyphs = map[types.PowerUpKind]rune{
	types.PowerUpSpreadShot:   'S',
	types.PowerUpShield:       'O',
	types.PowerUpScoreDoubler: '2',
	types.PowerUpMagnet:       'U',
	types.PowerUpSword:        '/',
	types.PowerUpRealityWarp:  '?',
}

// Renderer 把 GameState 按比例映射到终端字符格
//
// 第一行留给 HUD，其余行对应整个场地。
type Renderer struct {
	screen tcell.Screen
	cfg    *config.GameConfig
}

// NewRenderer 创建渲染器
func NewRenderer(screen tcell.Screen, cfg *config.GameConfig) *Renderer {
	return &Renderer{screen: screen, cfg: cfg}
}

// cellRect 场地矩形对应的字符格范围 [x0,x1) x [y0,y1)，至少占一格
func (r *Renderer) cellRect(o *entities.GameObject, cols, rows int) (x0, y0, x1, y1 int) {
	pf := &r.cfg.Playfield
	sx := float64(cols) / pf.Width
	sy := float64(rows) / pf.Height

	x0 = int(o.Position.X * sx)
	y0 = int(o.Position.Y * sy)
	x1 = int((o.Position.X + o.Width) * sx)
	y1 = int((o.Position.Y + o.Height) * sy)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

// fill 在场地区域内填充字符，越界的格子被跳过
func (r *Renderer) fill(o *entities.GameObject, ch rune, style tcell.Style, cols, rows int) {
	x0, y0, x1, y1 := r.cellRect(o, cols, rows)
	for y := max(y0, 0); y < min(y1, rows); y++ {
		for x := max(x0, 0); x < min(x1, cols); x++ {
			r.screen.SetContent(x, y+1, ch, nil, style)
		}
	}
}

// Draw 绘制一帧；只读 state 与 effects
func (r *Renderer) Draw(st game.GameState, effects game.ActiveEffects) {
	r.screen.Clear()
	cols, rows := r.screen.Size()
	rows-- // HUD
	if cols <= 0 || rows <= 0 {
		r.screen.Show()
		return
	}

	if st.Storm.Active {
		for y := 1; y <= rows; y++ {
			r.screen.SetContent(0, y, '~', nil, styleStormBorders)
			r.screen.SetContent(cols-1, y, '~', nil, styleStormBorders)
		}
	}

	for i := range st.PowerUps {
		p := &st.PowerUps[i]
		r.fill(&p.GameObject, powerUpGlyphs[p.Kind], stylePowerUp, cols, rows)
	}
	for i := range st.Enemies {
		e := &st.Enemies[i]
		ch, style := enemyGlyph(e.Variant, st.SecretMode)
		r.fill(&e.GameObject, ch, style, cols, rows)
	}
	for i := range st.Bullets {
		b := &st.Bullets[i]
		if b.Type == types.BulletSword {
			r.fill(&b.GameObject, '!', styleSword, cols, rows)
		} else {
			r.fill(&b.GameObject, '|', styleBullet, cols, rows)
		}
	}

	style := stylePlayer
	if st.Player.Invulnerable {
		style = stylePlayerBlink
	}
	ch := 'A'
	if effects.Has(types.PowerUpShield) {
		ch = '@'
	}
	r.fill(&st.Player.GameObject, ch, style, cols, rows)

	r.drawHUD(st, effects, cols)

	switch st.Status {
	case types.StatusReady:
		r.drawPanel(cols, rows, []string{"FEVER DREAM", "", "space  start", "wasd/arrows  move", "space  fire   f  fever", "p  pause   r  end   q  quit"})
	case types.StatusPaused:
		r.drawPanel(cols, rows, []string{"PAUSED", "", "p  resume", "r  end game"})
	case types.StatusGameOver:
		r.drawPanel(cols, rows, []string{
			"GAME OVER",
			"",
			fmt.Sprintf("score %d", st.Player.Score),
			fmt.Sprintf("level %d  wave %d", st.Level, st.Wave),
			"",
			"space  continue",
		})
	}

	r.screen.Show()
}

func enemyGlyph(v types.EnemyVariant, secret bool) (rune, tcell.Style) {
	var ch rune
	var style tcell.Style
	switch v {
	case types.EnemyMiniBoss:
		ch, style = 'M', styleMiniBoss
	case types.EnemyBoss:
		ch, style = 'B', styleBoss
	default:
		ch, style = 'V', styleEnemy
	}
	if secret {
		style = styleSecretEnemy
	}
	return ch, style
}

// HUDLine HUD 文本
func HUDLine(st game.GameState, effects game.ActiveEffects, cfg *config.GameConfig) string {
	p := &st.Player
	parts := []string{
		fmt.Sprintf("SCORE %d", p.Score),
		fmt.Sprintf("L%d W%d %d/%d", st.Level, st.Wave, st.WaveProgress, st.KillsForWave(&cfg.Progression)),
		"HP " + strings.Repeat("♥", int(p.Health)),
	}
	if p.FeverMeter >= cfg.Fever.Max {
		parts = append(parts, "FEVER READY")
	} else {
		parts = append(parts, fmt.Sprintf("FEVER %.0f%%", p.FeverMeter/cfg.Fever.Max*100))
	}
	for _, kind := range effects.Kinds() {
		if until, ok := effects.ExpiresAt(kind); ok {
			parts = append(parts, fmt.Sprintf("%s %.0fs", kind, (until-st.Elapsed).Seconds()))
		}
	}
	if st.Storm.Active {
		parts = append(parts, fmt.Sprintf("STORM %.1fs", st.Storm.Remaining(st.Elapsed).Seconds()))
	}
	return strings.Join(parts, "  ")
}

func (r *Renderer) drawHUD(st game.GameState, effects game.ActiveEffects, cols int) {
	style := styleHUD
	if st.Storm.Active {
		style = styleStormHUD
	}
	r.drawText(0, 0, cols, HUDLine(st, effects, r.cfg), style)
}

func (r *Renderer) drawPanel(cols, rows int, lines []string) {
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	w += 4
	h := len(lines) + 2
	x0 := max((cols-w)/2, 0)
	y0 := max((rows-h)/2, 0) + 1

	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w && x < cols; x++ {
			r.screen.SetContent(x, y, ' ', nil, stylePanel)
		}
	}
	for i, l := range lines {
		r.drawText(x0+2, y0+1+i, cols, l, stylePanel)
	}
}

func (r *Renderer) drawText(x, y, cols int, s string, style tcell.Style) {
	for _, ch := range s {
		if x >= cols {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
