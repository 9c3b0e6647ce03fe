package types

import "fmt"

// PowerUpKind 道具种类
type PowerUpKind int

const (
	PowerUpSpreadShot   PowerUpKind = iota // 散射：额外两发侧向子弹
	PowerUpShield                          // 护盾：免疫接触伤害
	PowerUpScoreDoubler                    // 双倍得分
	PowerUpMagnet                          // 磁铁：吸引掉落的道具
	PowerUpSword                           // 剑：子弹升级为高伤害剑气
	PowerUpRealityWarp                     // 现实扭曲：拾取即触发现实风暴
)

// AllPowerUpKinds 按声明顺序列出所有道具种类
var AllPowerUpKinds = []PowerUpKind{
	PowerUpSpreadShot,
	PowerUpShield,
	PowerUpScoreDoubler,
	PowerUpMagnet,
	PowerUpSword,
	PowerUpRealityWarp,
}

// Rarity 道具稀有度，决定随机掉落权重
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

var powerUpKindNames = map[PowerUpKind]string{
	PowerUpSpreadShot:   "spread-shot",
	PowerUpShield:       "shield",
	PowerUpScoreDoubler: "score-doubler",
	PowerUpMagnet:       "magnet",
	PowerUpSword:        "sword",
	PowerUpRealityWarp:  "reality-warp",
}

var rarityNames = map[Rarity]string{
	RarityCommon:    "common",
	RarityUncommon:  "uncommon",
	RarityRare:      "rare",
	RarityEpic:      "epic",
	RarityLegendary: "legendary",
}

// 配置字符串到枚举的反向映射
var (
	stringToPowerUpKind map[string]PowerUpKind
	stringToRarity      map[string]Rarity
)

func init() {
	stringToPowerUpKind = make(map[string]PowerUpKind, len(powerUpKindNames))
	for k, s := range powerUpKindNames {
		stringToPowerUpKind[s] = k
	}
	stringToRarity = make(map[string]Rarity, len(rarityNames))
	for r, s := range rarityNames {
		stringToRarity[s] = r
	}
}

// String 返回道具种类的配置名称
func (k PowerUpKind) String() string {
	if name, ok := powerUpKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PowerUpKind(%d)", int(k))
}

// MarshalText 实现 encoding.TextMarshaler，YAML 中以名称保存
func (k PowerUpKind) MarshalText() ([]byte, error) {
	name, ok := powerUpKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown power-up kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (k *PowerUpKind) UnmarshalText(text []byte) error {
	kind, ok := stringToPowerUpKind[string(text)]
	if !ok {
		return fmt.Errorf("unknown power-up kind %q", string(text))
	}
	*k = kind
	return nil
}

// String 返回稀有度的配置名称
func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rarity(%d)", int(r))
}

// MarshalText 实现 encoding.TextMarshaler
func (r Rarity) MarshalText() ([]byte, error) {
	name, ok := rarityNames[r]
	if !ok {
		return nil, fmt.Errorf("unknown rarity %d", int(r))
	}
	return []byte(name), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (r *Rarity) UnmarshalText(text []byte) error {
	rarity, ok := stringToRarity[string(text)]
	if !ok {
		return fmt.Errorf("unknown rarity %q", string(text))
	}
	*r = rarity
	return nil
}
