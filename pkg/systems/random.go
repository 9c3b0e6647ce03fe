// Package systems 实现逐帧模拟管线
//
// 每个子系统都是纯函数：接收上一帧的状态值，返回新状态值，不修改输入的切片。
// 随机数通过 Random 注入，相同种子与输入序列得到相同结果。
package systems

// Random 子系统使用的随机源，*rand.Rand 满足该接口
type Random interface {
	// Float64 返回 [0, 1) 内的均匀分布随机数
	Float64() float64
	// Intn 返回 [0, n) 内的随机整数
	Intn(n int) int
}

// uniform 返回 [lo, hi) 内的均匀分布随机数
func uniform(r Random, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// chance 以概率 p 返回 true
func chance(r Random, p float64) bool {
	if p <= 0 {
		return false
	}
	return r.Float64() < p
}
