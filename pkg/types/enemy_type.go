// Package types 定义共享的基础类型
//
// 所有在实体、配置和系统之间传递的标签（敌人种类、移动模式、道具种类、稀有度等）
// 都定义为带 String() 的整型常量，switch 时由 exhaustive 检查保证覆盖。
package types

import "fmt"

// EnemyVariant 敌人种类
type EnemyVariant int

const (
	EnemyNormal   EnemyVariant = iota // 普通敌人
	EnemyMiniBoss                     // 小头目
	EnemyBoss                         // 头目
)

// EnemyPattern 敌人横向移动模式
type EnemyPattern int

const (
	PatternStraight EnemyPattern = iota // 直线下落（可能带斜向速度）
	PatternZigzag                       // 正弦左右摆动
	PatternShielded                     // 护盾型，缓慢正弦摆动
)

var enemyVariantNames = map[EnemyVariant]string{
	EnemyNormal:   "normal",
	EnemyMiniBoss: "mini-boss",
	EnemyBoss:     "boss",
}

var enemyPatternNames = map[EnemyPattern]string{
	PatternStraight: "straight",
	PatternZigzag:   "zigzag",
	PatternShielded: "shielded",
}

// String 返回配置/日志中使用的名称
func (v EnemyVariant) String() string {
	if name, ok := enemyVariantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("EnemyVariant(%d)", int(v))
}

// IsBossClass 小头目与头目都拥有悬停阶段状态机
func (v EnemyVariant) IsBossClass() bool {
	return v == EnemyMiniBoss || v == EnemyBoss
}

// String 返回配置/日志中使用的名称
func (p EnemyPattern) String() string {
	if name, ok := enemyPatternNames[p]; ok {
		return name
	}
	return fmt.Sprintf("EnemyPattern(%d)", int(p))
}
