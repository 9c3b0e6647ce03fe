// Package utils 提供前端共用的输入工具
package utils

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/feverdream/pkg/types"
)

// KeyBindings 逻辑控制键到物理按键的映射
type KeyBindings map[types.Control][]ebiten.Key

// ParseBindings 解析配置中的按键绑定
//
// 键为控制名（left/right/up/down/fire），值为 ebiten 按键名（如 A、ArrowLeft、Space），
// 大小写不敏感。未知的控制名或按键名返回错误。
func ParseBindings(raw map[string][]string) (KeyBindings, error) {
	bindings := make(KeyBindings, len(raw))

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c, ok := types.ControlFromString(name)
		if !ok {
			return nil, fmt.Errorf("unknown control %q", name)
		}
		for _, keyName := range raw[name] {
			var k ebiten.Key
			if err := k.UnmarshalText([]byte(keyName)); err != nil {
				return nil, fmt.Errorf("control %s: %w", name, err)
			}
			bindings[c] = append(bindings[c], k)
		}
	}
	return bindings, nil
}

// Keys 返回绑定到 c 的按键
func (b KeyBindings) Keys(c types.Control) []ebiten.Key {
	return b[c]
}

// KeyboardInput 基于 ebiten 键盘状态的输入源
//
// IsHeld 在 ebiten 的 Update 中调用才有意义。
type KeyboardInput struct {
	bindings KeyBindings
	pressed  func(ebiten.Key) bool
}

// NewKeyboardInput 创建键盘输入源
func NewKeyboardInput(bindings KeyBindings) *KeyboardInput {
	return &KeyboardInput{
		bindings: bindings,
		pressed:  ebiten.IsKeyPressed,
	}
}

// IsHeld 任一绑定按键按住即视为控制键按住
func (k *KeyboardInput) IsHeld(c types.Control) bool {
	for _, key := range k.bindings[c] {
		if k.pressed(key) {
			return true
		}
	}
	return false
}

// JustPressedRunes 返回本帧刚按下的字母键（小写），用于秘籍检测
func JustPressedRunes() []rune {
	keys := inpututil.AppendJustPressedKeys(nil)
	runes := make([]rune, 0, len(keys))
	for _, k := range keys {
		name := k.String()
		if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
			runes = append(runes, rune(name[0]-'A'+'a'))
		}
	}
	return runes
}
