package engine

import "math/rand"

// NewRandom 以给定种子创建随机源，相同种子产生相同对局
func NewRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
