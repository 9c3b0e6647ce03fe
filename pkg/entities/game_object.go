// Package entities 定义模拟中的实体值类型及其工厂函数
//
// 实体均为纯数据值，由 GameState 以切片形式持有。系统在每帧产生新切片，
// 不原地修改上一帧的切片，因此实体可以安全地按值复制。
package entities

import "math"

// EntityID 实体唯一标识，由 GameState.NextID 分配，0 表示无效
type EntityID uint64

// Vec2 二维向量（像素或像素/秒）
type Vec2 struct {
	X float64
	Y float64
}

// Add 向量加法
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub 向量减法
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale 数乘
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Len 向量长度
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalize 返回单位向量，零向量原样返回
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// IsFinite 两个分量均为有限数
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// GameObject 所有实体共有的几何与生命属性
//
// Position 为左上角坐标，矩形覆盖 [X, X+Width) × [Y, Y+Height)。
type GameObject struct {
	ID        EntityID
	Position  Vec2
	Velocity  Vec2
	Width     float64
	Height    float64
	Health    float64
	MaxHealth float64
}

// Center 矩形中心点
func (o GameObject) Center() Vec2 {
	return Vec2{o.Position.X + o.Width/2, o.Position.Y + o.Height/2}
}

// Valid 检查几何量是否可用：坐标与速度有限、尺寸为正、生命值有限
func (o GameObject) Valid() bool {
	return o.Position.IsFinite() &&
		o.Velocity.IsFinite() &&
		isFinite(o.Width) && o.Width > 0 &&
		isFinite(o.Height) && o.Height > 0 &&
		isFinite(o.Health) && isFinite(o.MaxHealth)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
