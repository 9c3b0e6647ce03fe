package config

import (
	"fmt"
	"os"
	"time"

	"github.com/decker502/feverdream/pkg/embedded"
	"github.com/decker502/feverdream/pkg/types"
	"gopkg.in/yaml.v3"
)

// PowerUpEntry 稀有度表中的一项
type PowerUpEntry struct {
	Kind     types.PowerUpKind `yaml:"kind"`
	Rarity   types.Rarity      `yaml:"rarity"`
	Weight   float64           `yaml:"weight"`
	Duration time.Duration     `yaml:"duration"`
}

// PowerUpTable 道具稀有度与持续时间表
//
// 配置文件位置: data/powerups.yaml
// 表的顺序决定加权选择时的扣减顺序。
type PowerUpTable struct {
	Entries []PowerUpEntry `yaml:"entries"`
}

// DefaultPowerUpTable 返回内置道具表，权重合计 100
func DefaultPowerUpTable() *PowerUpTable {
	return &PowerUpTable{
		Entries: []PowerUpEntry{
			{Kind: types.PowerUpSpreadShot, Rarity: types.RarityCommon, Weight: 30, Duration: 5 * time.Second},
			{Kind: types.PowerUpShield, Rarity: types.RarityCommon, Weight: 25, Duration: 5 * time.Second},
			{Kind: types.PowerUpScoreDoubler, Rarity: types.RarityUncommon, Weight: 20, Duration: 10 * time.Second},
			{Kind: types.PowerUpMagnet, Rarity: types.RarityRare, Weight: 13, Duration: 10 * time.Second},
			{Kind: types.PowerUpSword, Rarity: types.RarityEpic, Weight: 8, Duration: 10 * time.Second},
			{Kind: types.PowerUpRealityWarp, Rarity: types.RarityLegendary, Weight: 4, Duration: 10 * time.Second},
		},
	}
}

// LoadPowerUpTable 从外部文件加载道具表
func LoadPowerUpTable(path string) (*PowerUpTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read power-up table: %w", err)
	}
	return ParsePowerUpTable(data)
}

// LoadEmbeddedPowerUpTable 从嵌入资源加载道具表（如 "data/powerups.yaml"）
func LoadEmbeddedPowerUpTable(path string) (*PowerUpTable, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded power-up table: %w", err)
	}
	return ParsePowerUpTable(data)
}

// ParsePowerUpTable 解析 YAML 道具表
func ParsePowerUpTable(data []byte) (*PowerUpTable, error) {
	var table PowerUpTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse power-up table: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid power-up table: %w", err)
	}
	return &table, nil
}

// Validate 验证道具表
//
// 检查：
//   - 至少一项权重大于 0
//   - 权重与持续时间不能为负
//   - 同一种类不能重复出现
func (t *PowerUpTable) Validate() error {
	seen := make(map[types.PowerUpKind]bool, len(t.Entries))
	for i, e := range t.Entries {
		if e.Weight < 0 {
			return fmt.Errorf("entries[%d] (%s): weight must be >= 0, got %.2f", i, e.Kind, e.Weight)
		}
		if e.Duration < 0 {
			return fmt.Errorf("entries[%d] (%s): duration must be >= 0, got %v", i, e.Kind, e.Duration)
		}
		if seen[e.Kind] {
			return fmt.Errorf("entries[%d]: duplicate kind %s", i, e.Kind)
		}
		seen[e.Kind] = true
	}
	if t.TotalWeight() <= 0 {
		return fmt.Errorf("total weight must be > 0")
	}
	return nil
}

// TotalWeight 权重合计
func (t *PowerUpTable) TotalWeight() float64 {
	total := 0.0
	for _, e := range t.Entries {
		total += e.Weight
	}
	return total
}

// Lookup 按种类查找表项
func (t *PowerUpTable) Lookup(kind types.PowerUpKind) (PowerUpEntry, bool) {
	for _, e := range t.Entries {
		if e.Kind == kind {
			return e, true
		}
	}
	return PowerUpEntry{}, false
}
