package game

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ScoreRecord 一局游戏结束时提交的成绩
type ScoreRecord struct {
	RunID      string        `yaml:"runId"`
	Score      int           `yaml:"score"`
	Level      int           `yaml:"level"`
	Wave       int           `yaml:"wave"`
	TotalWaves int           `yaml:"totalWaves"`
	FeversUsed int           `yaml:"feversUsed"`
	Kills      int           `yaml:"kills"`
	Duration   time.Duration `yaml:"duration"` // 游戏时钟时长
	SecretMode bool          `yaml:"secretMode"`
	Timestamp  time.Time     `yaml:"timestamp"`
}

// DefaultLeaderboardSize 本地排行榜保留条数
const DefaultLeaderboardSize = 10

// 存储路径常量
const (
	leaderboardObject   = "leaderboard"
	leaderboardProperty = "local"
)

// leaderboardData 持久化格式
type leaderboardData struct {
	Entries []ScoreRecord `yaml:"entries"`
}

// Leaderboard 本地排行榜
//
// 按分数降序、同分时较早的记录在前，保留前 size 条。
// gdataManager 为 nil 时只保存在内存中。
type Leaderboard struct {
	mu           sync.Mutex
	gdataManager *gdata.Manager
	size         int
	entries      []ScoreRecord
}

// NewLeaderboard 创建排行榜并加载已保存的记录
//
// 加载失败不是致命错误，记录日志后以空榜开始。
func NewLeaderboard(gdataManager *gdata.Manager, size int) *Leaderboard {
	if size <= 0 {
		size = DefaultLeaderboardSize
	}
	lb := &Leaderboard{
		gdataManager: gdataManager,
		size:         size,
	}
	if err := lb.load(); err != nil {
		log.Printf("[Leaderboard] Warning: Failed to load leaderboard: %v (starting empty)", err)
	}
	return lb
}

func (lb *Leaderboard) load() error {
	if lb.gdataManager == nil {
		return nil
	}
	if !lb.gdataManager.ObjectPropExists(leaderboardObject, leaderboardProperty) {
		return nil
	}

	data, err := lb.gdataManager.LoadObjectProp(leaderboardObject, leaderboardProperty)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}

	var stored leaderboardData
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}

	lb.entries = rank(stored.Entries, lb.size)
	log.Printf("[Leaderboard] Loaded %d entries", len(lb.entries))
	return nil
}

func (lb *Leaderboard) save() error {
	if lb.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(leaderboardData{Entries: lb.entries})
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}
	if err := lb.gdataManager.SaveObjectProp(leaderboardObject, leaderboardProperty, data); err != nil {
		return fmt.Errorf("failed to save leaderboard: %w", err)
	}
	return nil
}

// Submit 提交一条成绩并持久化
//
// 未进入前 size 名的成绩被丢弃，不返回错误。
func (lb *Leaderboard) Submit(record ScoreRecord) error {
	lb.mu.Lock()
	defer lb.mu.Unlock()

	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	lb.entries = rank(append(append([]ScoreRecord(nil), lb.entries...), record), lb.size)

	if err := lb.save(); err != nil {
		return err
	}
	log.Printf("[Leaderboard] Submitted run %s: score=%d level=%d", record.RunID, record.Score, record.Level)
	return nil
}

// Entries 返回排行榜副本
func (lb *Leaderboard) Entries() []ScoreRecord {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	return append([]ScoreRecord(nil), lb.entries...)
}

// Best 返回最高成绩
func (lb *Leaderboard) Best() (ScoreRecord, bool) {
	lb.mu.Lock()
	defer lb.mu.Unlock()
	if len(lb.entries) == 0 {
		return ScoreRecord{}, false
	}
	return lb.entries[0], true
}

// rank 排序并截断
func rank(entries []ScoreRecord, size int) []ScoreRecord {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	if len(entries) > size {
		entries = entries[:size]
	}
	return entries
}
