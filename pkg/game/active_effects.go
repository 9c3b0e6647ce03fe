package game

import (
	"sort"
	"time"

	"github.com/decker502/feverdream/pkg/types"
)

// ActiveEffects 道具效果表: 种类 -> 到期时间（游戏时钟）
//
// 写操作均返回新表，旧表保持不变，上一帧的快照因此不受影响。
type ActiveEffects map[types.PowerUpKind]time.Duration

// Has 该种类效果是否存在
func (e ActiveEffects) Has(kind types.PowerUpKind) bool {
	_, ok := e[kind]
	return ok
}

// ExpiresAt 返回效果的到期时间
func (e ActiveEffects) ExpiresAt(kind types.PowerUpKind) (time.Duration, bool) {
	at, ok := e[kind]
	return at, ok
}

// With 注册或刷新效果，返回新表
func (e ActiveEffects) With(kind types.PowerUpKind, expiry time.Duration) ActiveEffects {
	next := make(ActiveEffects, len(e)+1)
	for k, v := range e {
		next[k] = v
	}
	next[kind] = expiry
	return next
}

// Purge 删除 expiry <= now 的效果；无变化时返回原表
func (e ActiveEffects) Purge(now time.Duration) ActiveEffects {
	expired := 0
	for _, at := range e {
		if at <= now {
			expired++
		}
	}
	if expired == 0 {
		return e
	}
	next := make(ActiveEffects, len(e)-expired)
	for k, at := range e {
		if at > now {
			next[k] = at
		}
	}
	return next
}

// Kinds 按种类排序返回所有生效的效果
func (e ActiveEffects) Kinds() []types.PowerUpKind {
	kinds := make([]types.PowerUpKind, 0, len(e))
	for k := range e {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// SideTables 与 GameState 并列保存的计时表
type SideTables struct {
	Effects ActiveEffects

	NextShotAt         time.Duration // 玩家下一次可开火时间
	NextEnemySpawnAt   time.Duration
	NextPowerUpSpawnAt time.Duration
}

// NewSideTables 新一局的计时表，首个道具在一个掉落间隔后出现
func NewSideTables(powerUpInterval time.Duration) SideTables {
	return SideTables{
		Effects:            ActiveEffects{},
		NextPowerUpSpawnAt: powerUpInterval,
	}
}
