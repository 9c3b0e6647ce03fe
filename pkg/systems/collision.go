package systems

import "github.com/decker502/feverdream/pkg/entities"

// Overlaps 判断两个轴对齐矩形是否相交
//
// 矩形按半开区间 [x, x+w) × [y, y+h) 处理，仅接触边缘不算相交；
// 宽或高不为正的矩形与任何矩形都不相交。
func Overlaps(a, b entities.GameObject) bool {
	if a.Width <= 0 || a.Height <= 0 || b.Width <= 0 || b.Height <= 0 {
		return false
	}
	return a.Position.X < b.Position.X+b.Width &&
		a.Position.X+a.Width > b.Position.X &&
		a.Position.Y < b.Position.Y+b.Height &&
		a.Position.Y+a.Height > b.Position.Y
}
