// Package tui 终端前端：tcell 渲染与按住按键模拟
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/feverdream/pkg/types"
)

// DefaultHoldTimeout 终端只上报按下（含自动重复），超过该时间未再收到按键即视为松开
const DefaultHoldTimeout = 150 * time.Millisecond

// keyBinding 一个物理按键：特殊键或字符
type keyBinding struct {
	key tcell.Key
	ch  rune
}

// namedKeys 配置中的按键名到 tcell 按键（名称小写）
var namedKeys = map[string]keyBinding{
	"arrowleft":  {key: tcell.KeyLeft},
	"arrowright": {key: tcell.KeyRight},
	"arrowup":    {key: tcell.KeyUp},
	"arrowdown":  {key: tcell.KeyDown},
	"left":       {key: tcell.KeyLeft},
	"right":      {key: tcell.KeyRight},
	"up":         {key: tcell.KeyUp},
	"down":       {key: tcell.KeyDown},
	"space":      {key: tcell.KeyRune, ch: ' '},
	"enter":      {key: tcell.KeyEnter},
}

// Bindings tcell 按键到逻辑控制键的映射
type Bindings map[keyBinding]types.Control

// ParseBindings 解析与 ebiten 前端共用的按键绑定配置
//
// 支持单个字母（A..Z，忽略大小写）、方向键与 Space/Enter。
func ParseBindings(raw map[string][]string) (Bindings, error) {
	b := make(Bindings)
	for name, keys := range raw {
		c, ok := types.ControlFromString(name)
		if !ok {
			return nil, fmt.Errorf("unknown control %q", name)
		}
		for _, k := range keys {
			kb, err := parseKey(k)
			if err != nil {
				return nil, fmt.Errorf("control %s: %w", name, err)
			}
			b[kb] = c
		}
	}
	return b, nil
}

func parseKey(name string) (keyBinding, error) {
	lower := strings.ToLower(name)
	if kb, ok := namedKeys[lower]; ok {
		return kb, nil
	}
	if len(lower) == 1 && lower[0] >= 'a' && lower[0] <= 'z' {
		return keyBinding{key: tcell.KeyRune, ch: rune(lower[0])}, nil
	}
	return keyBinding{}, fmt.Errorf("unsupported terminal key %q", name)
}

// Lookup 查找按键事件对应的控制键
func (b Bindings) Lookup(ev *tcell.EventKey) (types.Control, bool) {
	kb := keyBinding{key: ev.Key()}
	if ev.Key() == tcell.KeyRune {
		kb.ch = toLower(ev.Rune())
	}
	c, ok := b[kb]
	return c, ok
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// HeldKeys 用按键事件的时间戳模拟“按住”状态，实现 engine.InputSource
type HeldKeys struct {
	lastSeen map[types.Control]time.Time
	timeout  time.Duration
	now      func() time.Time
}

// NewHeldKeys 创建按住状态表，timeout <= 0 时使用 DefaultHoldTimeout
func NewHeldKeys(timeout time.Duration) *HeldKeys {
	if timeout <= 0 {
		timeout = DefaultHoldTimeout
	}
	return &HeldKeys{
		lastSeen: make(map[types.Control]time.Time),
		timeout:  timeout,
		now:      time.Now,
	}
}

// Press 记录一次按下
func (h *HeldKeys) Press(c types.Control) {
	h.lastSeen[c] = h.now()
}

// Release 立即松开（例如方向相反的键按下时）
func (h *HeldKeys) Release(c types.Control) {
	delete(h.lastSeen, c)
}

// IsHeld 最近 timeout 内收到过该控制键
func (h *HeldKeys) IsHeld(c types.Control) bool {
	at, ok := h.lastSeen[c]
	if !ok {
		return false
	}
	return h.now().Sub(at) < h.timeout
}

// opposite 相反方向，按下一侧时松开另一侧
func opposite(c types.Control) (types.Control, bool) {
	switch c {
	case types.ControlLeft:
		return types.ControlRight, true
	case types.ControlRight:
		return types.ControlLeft, true
	case types.ControlUp:
		return types.ControlDown, true
	case types.ControlDown:
		return types.ControlUp, true
	default:
		return c, false
	}
}
