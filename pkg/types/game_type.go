package types

import "fmt"

// GameStatus 游戏流程状态
type GameStatus int

const (
	StatusReady    GameStatus = iota // 等待开始
	StatusPlaying                    // 进行中，唯一运行逐帧管线的状态
	StatusPaused                     // 暂停
	StatusGameOver                   // 玩家生命归零
)

// BulletType 子弹类型
type BulletType int

const (
	BulletNormal BulletType = iota
	BulletSword
)

// Control 逻辑控制键，输入层只需回答"当前是否按住"
type Control int

const (
	ControlLeft Control = iota
	ControlRight
	ControlUp
	ControlDown
	ControlFire
)

// AllControls 所有逻辑控制键
var AllControls = []Control{ControlLeft, ControlRight, ControlUp, ControlDown, ControlFire}

var gameStatusNames = map[GameStatus]string{
	StatusReady:    "ready",
	StatusPlaying:  "playing",
	StatusPaused:   "paused",
	StatusGameOver: "game-over",
}

var controlNames = map[Control]string{
	ControlLeft:  "left",
	ControlRight: "right",
	ControlUp:    "up",
	ControlDown:  "down",
	ControlFire:  "fire",
}

var stringToControl map[string]Control

func init() {
	stringToControl = make(map[string]Control, len(controlNames))
	for c, s := range controlNames {
		stringToControl[s] = c
	}
}

func (s GameStatus) String() string {
	if name, ok := gameStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("GameStatus(%d)", int(s))
}

func (b BulletType) String() string {
	switch b {
	case BulletNormal:
		return "normal"
	case BulletSword:
		return "sword"
	}
	return fmt.Sprintf("BulletType(%d)", int(b))
}

func (c Control) String() string {
	if name, ok := controlNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Control(%d)", int(c))
}

// ControlFromString 将配置中的控制名转换为 Control
func ControlFromString(s string) (Control, bool) {
	c, ok := stringToControl[s]
	return c, ok
}
